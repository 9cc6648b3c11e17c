package views

import (
	"context"
	"fmt"
	"io"

	"bank-admin-go/internal/form"
	"bank-admin-go/internal/model"

	log "github.com/sirupsen/logrus"
)

const (
	FieldID     = "id"
	FieldType   = "type"
	FieldNumber = "number"
)

// Update edits a draft or a stored entity through a form.
type Update[T model.Entity] struct {
	kind      model.Kind[T]
	service   Saver[T]
	navigator Navigator

	Form     *form.Group
	IsSaving bool
	Err      error
}

func NewUpdate[T model.Entity](kind model.Kind[T], service Saver[T], navigator Navigator) *Update[T] {
	return &Update[T]{
		kind:      kind,
		service:   service,
		navigator: navigator,
		Form:      form.NewGroup(FieldID, FieldType, FieldNumber),
	}
}

func (u *Update[T]) Init(data RouteData[T]) {
	if data.Entity == nil {
		return
	}
	u.updateForm((*data.Entity).Fields())
}

// Save creates the entity when the form has no id and replaces it otherwise.
// On success the navigator goes back; on failure the form stays as it is and the
// error is kept in Err. IsSaving is false again once Save returns.
func (u *Update[T]) Save(ctx context.Context) error {
	u.IsSaving = true
	defer func() {
		u.IsSaving = false
	}()
	u.Err = nil

	e, err := u.createFromForm()
	if err != nil {
		return u.onSaveError(err)
	}

	if e.GetID() != nil {
		_, err = u.service.Update(ctx, e)
	} else {
		_, err = u.service.Create(ctx, e)
	}
	if err != nil {
		return u.onSaveError(err)
	}

	return u.PreviousState(ctx)
}

func (u *Update[T]) PreviousState(ctx context.Context) error {
	return u.navigator.Back(ctx)
}

func (u *Update[T]) onSaveError(err error) error {
	u.Err = fmt.Errorf("saving %s: %w", u.kind.Name, err)
	log.Warn(u.Err)
	return u.Err
}

func (u *Update[T]) updateForm(r model.Record) {
	u.Form.PatchValue(map[string]any{
		FieldID:     r.ID,
		FieldType:   r.Type,
		FieldNumber: r.Number,
	})
}

func (u *Update[T]) createFromForm() (T, error) {
	id, err := u.Form.Get(FieldID).Int64()
	if err != nil {
		var zero T
		return zero, err
	}

	return u.kind.Build(model.Record{
		ID:     id,
		Type:   u.Form.Get(FieldType).String(),
		Number: u.Form.Get(FieldNumber).String(),
	}), nil
}

func (u *Update[T]) Render(w io.Writer) error {
	e, err := u.createFromForm()
	if err != nil {
		return err
	}
	if e.GetID() == nil {
		fmt.Fprintf(w, "Create a new %s\n", u.kind.Name)
	} else {
		fmt.Fprintf(w, "Edit %s\n", u.kind.Name)
	}
	if u.Err != nil {
		fmt.Fprintf(w, "%v\n", u.Err)
	}
	return writeRecord(w, e.Fields())
}
