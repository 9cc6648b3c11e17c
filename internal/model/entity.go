package model

// Entity is the capability shared by every record managed through the generic kernel.
type Entity interface {
	GetID() *int64
	Fields() Record
}

// Record holds the columns common to bank accounts and credit cards.
// A nil ID marks a draft that has not been stored yet.
type Record struct {
	ID     *int64  `json:"id,omitempty"`
	Type   *string `json:"type"`
	Number *string `json:"number"`
}

func (r Record) GetID() *int64 {
	return r.ID
}

func (r Record) Fields() Record {
	return r
}

func (r Record) IsDraft() bool {
	return r.ID == nil
}

// Meta names an entity type and where it lives on each side of the wire.
type Meta struct {
	Name      string // bankAccount
	RouteBase string // bank-account
	Resource  string // api/bank-accounts
	Table     string // bank_account
}

// Kind ties a Meta to the concrete Go type built from a Record.
type Kind[T Entity] struct {
	Meta
	Build func(Record) T
}

// New returns a blank draft.
func (k Kind[T]) New() T {
	return k.Build(Record{})
}

func Int64(v int64) *int64 {
	return &v
}

func String(v string) *string {
	return &v
}
