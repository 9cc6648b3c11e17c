package views

import (
	"context"
	"fmt"

	"bank-admin-go/internal/model"

	log "github.com/sirupsen/logrus"
)

// Dismissal is how a dialog was closed.
type Dismissal int

const (
	Dismissed Dismissal = iota
	Deleted
)

func (d Dismissal) String() string {
	if d == Deleted {
		return "deleted"
	}
	return "dismissed"
}

type DialogState int

const (
	Pending DialogState = iota
	Confirmed
	Cancelled
)

// Dialog is what a DialogHost shows to the user.
type Dialog interface {
	Prompt() string
	Confirm(ctx context.Context) error
	Cancel()
	State() DialogState
	Result() Dismissal
}

// DialogHost shows a dialog and blocks until it is closed.
type DialogHost interface {
	Open(ctx context.Context, d Dialog) Dismissal
}

// DeleteDialog confirms and performs the removal of one entity.
// A failed delete keeps the dialog pending with the error in Err so the host can
// report it and let the user retry or cancel.
type DeleteDialog[T model.Entity] struct {
	kind    model.Kind[T]
	service Deleter

	Entity T
	Err    error
	state  DialogState
}

func NewDeleteDialog[T model.Entity](kind model.Kind[T], service Deleter, e T) *DeleteDialog[T] {
	return &DeleteDialog[T]{
		kind:    kind,
		service: service,
		Entity:  e,
	}
}

func (d *DeleteDialog[T]) Prompt() string {
	return fmt.Sprintf("Are you sure you want to delete %s %s?", d.kind.Name, formatID(d.Entity.GetID()))
}

func (d *DeleteDialog[T]) Cancel() {
	if d.state == Pending {
		d.state = Cancelled
	}
}

func (d *DeleteDialog[T]) Confirm(ctx context.Context) error {
	id := d.Entity.GetID()
	if id == nil {
		d.Err = fmt.Errorf("deleting %s: no id", d.kind.Name)
		return d.Err
	}
	return d.ConfirmDelete(ctx, *id)
}

func (d *DeleteDialog[T]) ConfirmDelete(ctx context.Context, id int64) error {
	if d.state != Pending {
		return nil
	}

	if _, err := d.service.Delete(ctx, id); err != nil {
		d.Err = fmt.Errorf("deleting %s %d: %w", d.kind.Name, id, err)
		log.Warn(d.Err)
		return d.Err
	}

	d.Err = nil
	d.state = Confirmed
	return nil
}

func (d *DeleteDialog[T]) State() DialogState {
	return d.state
}

// Result is Deleted only once the entity was removed.
func (d *DeleteDialog[T]) Result() Dismissal {
	if d.state == Confirmed {
		return Deleted
	}
	return Dismissed
}
