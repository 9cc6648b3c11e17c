package views

import (
	"context"
	"fmt"
	"io"

	"bank-admin-go/internal/model"
)

type Detail[T model.Entity] struct {
	kind      model.Kind[T]
	navigator Navigator

	Entity *T
}

func NewDetail[T model.Entity](kind model.Kind[T], navigator Navigator) *Detail[T] {
	return &Detail[T]{kind: kind, navigator: navigator}
}

// Init takes the already resolved entity; it never calls the API.
func (d *Detail[T]) Init(data RouteData[T]) {
	d.Entity = data.Entity
}

func (d *Detail[T]) PreviousState(ctx context.Context) error {
	return d.navigator.Back(ctx)
}

func (d *Detail[T]) Render(w io.Writer) error {
	if d.Entity == nil {
		_, err := fmt.Fprintf(w, "No %s\n", d.kind.Name)
		return err
	}
	return writeRecord(w, (*d.Entity).Fields())
}
