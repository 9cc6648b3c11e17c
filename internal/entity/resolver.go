package entity

import (
	"context"
	"fmt"
	"strconv"

	"bank-admin-go/internal/model"

	log "github.com/sirupsen/logrus"
)

// NotFoundPath is where activations of unknown entities are sent.
const NotFoundPath = "404"

// Finder is the part of Service a Resolver needs.
type Finder[T model.Entity] interface {
	Find(ctx context.Context, id int64) (Response[T], error)
}

type Navigator interface {
	Navigate(ctx context.Context, path string) error
}

// Resolver loads the entity a view is about to show.
type Resolver[T model.Entity] struct {
	kind      model.Kind[T]
	service   Finder[T]
	navigator Navigator
}

func NewResolver[T model.Entity](kind model.Kind[T], service Finder[T], navigator Navigator) *Resolver[T] {
	return &Resolver[T]{
		kind:      kind,
		service:   service,
		navigator: navigator,
	}
}

// Resolve returns the entity identified by idParam, or a new draft when idParam is empty.
//
// When the entity does not exist the navigator is sent to NotFoundPath and Resolve
// returns a nil entity with a nil error: there is nothing to activate.
func (r *Resolver[T]) Resolve(ctx context.Context, idParam string) (*T, error) {
	if idParam == "" {
		draft := r.kind.New()
		return &draft, nil
	}

	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		log.Debugf("unparseable %s id %q", r.kind.Name, idParam)
		return nil, r.notFound(ctx)
	}

	resp, err := r.service.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolving %s %d: %w", r.kind.Name, id, err)
	}

	if resp.Body == nil {
		return nil, r.notFound(ctx)
	}

	return resp.Body, nil
}

func (r *Resolver[T]) notFound(ctx context.Context) error {
	if err := r.navigator.Navigate(ctx, NotFoundPath); err != nil {
		return fmt.Errorf("navigating to %s: %w", NotFoundPath, err)
	}
	return nil
}
