package views

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"bank-admin-go/internal/model"
	"bank-admin-go/internal/request"

	log "github.com/sirupsen/logrus"
)

type ListState int

const (
	Idle ListState = iota
	Loading
	Loaded
	Failed
)

func (s ListState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// List shows every entity of one kind and drives the delete dialog.
type List[T model.Entity] struct {
	kind    model.Kind[T]
	service ListService[T]
	host    DialogHost

	// Options is passed unchanged to every query.
	Options request.Encoder

	Entities   []T
	TotalCount int
	IsLoading  bool
	State      ListState
	Err        error
}

func NewList[T model.Entity](kind model.Kind[T], service ListService[T], host DialogHost) *List[T] {
	return &List[T]{
		kind:    kind,
		service: service,
		host:    host,
	}
}

func (l *List[T]) Init(ctx context.Context) {
	l.LoadAll(ctx)
}

// LoadAll replaces Entities with a fresh query. A failed query leaves the previous
// rows in place, clears IsLoading and records the error in Err.
func (l *List[T]) LoadAll(ctx context.Context) {
	l.IsLoading = true
	l.State = Loading
	l.Err = nil

	resp, err := l.service.Query(ctx, l.Options)
	l.IsLoading = false
	if err != nil {
		l.State = Failed
		l.Err = err
		log.Warnf("loading %s list: %v", l.kind.Name, err)
		return
	}

	l.Entities = resp.Body
	if l.Entities == nil {
		l.Entities = []T{}
	}
	l.TotalCount = resp.TotalCount
	l.State = Loaded
}

// Delete asks the dialog host to confirm removal of e and reloads when it was deleted.
func (l *List[T]) Delete(ctx context.Context, e T) Dismissal {
	dialog := NewDeleteDialog(l.kind, l.service, e)

	result := l.host.Open(ctx, dialog)
	if result == Deleted {
		l.LoadAll(ctx)
	}

	return result
}

// Find returns the loaded entity with the given id.
func (l *List[T]) Find(id int64) (T, bool) {
	for _, e := range l.Entities {
		if got := e.GetID(); got != nil && *got == id {
			return e, true
		}
	}
	var zero T
	return zero, false
}

// TrackID is the row identity used to keep rendering stable across reloads.
func (l *List[T]) TrackID(e T) int64 {
	if id := e.GetID(); id != nil {
		return *id
	}
	return 0
}

func (l *List[T]) Render(w io.Writer) error {
	if l.Err != nil {
		fmt.Fprintf(w, "could not load %s list: %v\n", l.kind.Name, l.Err)
	}
	if len(l.Entities) == 0 {
		_, err := fmt.Fprintf(w, "No %s found\n", l.kind.Name)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tType\tNumber")
	for _, e := range l.Entities {
		r := e.Fields()
		fmt.Fprintf(tw, "%d\t%s\t%s\n", l.TrackID(e), deref(r.Type), deref(r.Number))
	}
	return tw.Flush()
}
