package nav

import (
	"context"

	"bank-admin-go/internal/entity"
	"bank-admin-go/internal/model"
	"bank-admin-go/internal/request"
	"bank-admin-go/internal/views"
)

// EntityService is everything the mounted views need from the REST client.
type EntityService[T model.Entity] interface {
	entity.Finder[T]
	views.ListService[T]
	views.Saver[T]
}

// Mount registers the list, view, new and edit routes of one entity kind:
//
//	/credit-card           list
//	/credit-card/{id}/view detail
//	/credit-card/new       update with a draft
//	/credit-card/{id}/edit update
//
// listOptions, which may be nil, is passed to every list query.
func Mount[T model.Entity](s *Shell, kind model.Kind[T], service EntityService[T], host views.DialogHost, listOptions request.Encoder) {
	base := "/" + kind.RouteBase
	resolver := entity.NewResolver[T](kind, service, s)

	s.Handle(base, kind.RouteBase+".list", true, func(ctx context.Context, _ map[string]string) (Page, error) {
		list := views.NewList[T](kind, service, host)
		list.Options = listOptions
		list.Init(ctx)
		return list, nil
	})

	s.Handle(base+"/new", kind.RouteBase+".new", true, func(ctx context.Context, _ map[string]string) (Page, error) {
		return resolveUpdate(ctx, kind, service, s, resolver, "")
	})

	s.Handle(base+"/{id}/view", kind.RouteBase+".view", true, func(ctx context.Context, vars map[string]string) (Page, error) {
		e, err := resolver.Resolve(ctx, vars["id"])
		if err != nil || e == nil {
			return nil, err
		}
		detail := views.NewDetail[T](kind, s)
		detail.Init(views.RouteData[T]{Entity: e})
		return detail, nil
	})

	s.Handle(base+"/{id}/edit", kind.RouteBase+".edit", true, func(ctx context.Context, vars map[string]string) (Page, error) {
		return resolveUpdate(ctx, kind, service, s, resolver, vars["id"])
	})
}

func resolveUpdate[T model.Entity](ctx context.Context, kind model.Kind[T], service views.Saver[T], s *Shell, resolver *entity.Resolver[T], id string) (Page, error) {
	e, err := resolver.Resolve(ctx, id)
	if err != nil || e == nil {
		return nil, err
	}
	update := views.NewUpdate[T](kind, service, s)
	update.Init(views.RouteData[T]{Entity: e})
	return update, nil
}
