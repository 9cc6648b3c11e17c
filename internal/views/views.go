// Package views holds the screen state for listing, showing, editing and deleting
// entities. Views are driven by one goroutine at a time and keep their state in
// plain fields.
package views

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"bank-admin-go/internal/entity"
	"bank-admin-go/internal/model"
	"bank-admin-go/internal/request"
)

type Navigator interface {
	Navigate(ctx context.Context, path string) error
	Back(ctx context.Context) error
}

// RouteData is what the router hands a view once resolution finished.
type RouteData[T model.Entity] struct {
	Entity *T
}

type Querier[T model.Entity] interface {
	Query(ctx context.Context, opts request.Encoder) (entity.ListResponse[T], error)
}

type Saver[T model.Entity] interface {
	Create(ctx context.Context, e T) (entity.Response[T], error)
	Update(ctx context.Context, e T) (entity.Response[T], error)
}

type Deleter interface {
	Delete(ctx context.Context, id int64) (entity.Response[struct{}], error)
}

// ListService is what the list view and its delete dialog need.
type ListService[T model.Entity] interface {
	Querier[T]
	Deleter
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatID(id *int64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprint(*id)
}

func writeRecord(w io.Writer, r model.Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", formatID(r.ID))
	fmt.Fprintf(tw, "Type\t%s\n", deref(r.Type))
	fmt.Fprintf(tw, "Number\t%s\n", deref(r.Number))
	return tw.Flush()
}
