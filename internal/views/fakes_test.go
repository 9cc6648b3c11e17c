package views

import (
	"context"

	"bank-admin-go/internal/entity"
	"bank-admin-go/internal/model"
	"bank-admin-go/internal/request"
)

type fakeService struct {
	queryBody  []model.CreditCard
	queryErr   error
	queryCalls int

	saveErr     error
	created     []model.CreditCard
	updated     []model.CreditCard
	savingSeen  []bool
	savingProbe func() bool

	deleteErr error
	deleted   []int64
}

func (f *fakeService) Query(_ context.Context, _ request.Encoder) (entity.ListResponse[model.CreditCard], error) {
	f.queryCalls++
	if f.queryErr != nil {
		return entity.ListResponse[model.CreditCard]{}, f.queryErr
	}
	return entity.ListResponse[model.CreditCard]{StatusCode: 200, Body: f.queryBody, TotalCount: len(f.queryBody)}, nil
}

func (f *fakeService) Create(_ context.Context, e model.CreditCard) (entity.Response[model.CreditCard], error) {
	f.probe()
	f.created = append(f.created, e)
	if f.saveErr != nil {
		return entity.Response[model.CreditCard]{}, f.saveErr
	}
	e.ID = model.Int64(1)
	return entity.Response[model.CreditCard]{StatusCode: 201, Body: &e}, nil
}

func (f *fakeService) Update(_ context.Context, e model.CreditCard) (entity.Response[model.CreditCard], error) {
	f.probe()
	f.updated = append(f.updated, e)
	if f.saveErr != nil {
		return entity.Response[model.CreditCard]{}, f.saveErr
	}
	return entity.Response[model.CreditCard]{StatusCode: 200, Body: &e}, nil
}

func (f *fakeService) Delete(_ context.Context, id int64) (entity.Response[struct{}], error) {
	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return entity.Response[struct{}]{}, f.deleteErr
	}
	return entity.Response[struct{}]{StatusCode: 204}, nil
}

func (f *fakeService) probe() {
	if f.savingProbe != nil {
		f.savingSeen = append(f.savingSeen, f.savingProbe())
	}
}

type fakeNavigator struct {
	paths []string
	backs int
}

func (n *fakeNavigator) Navigate(_ context.Context, path string) error {
	n.paths = append(n.paths, path)
	return nil
}

func (n *fakeNavigator) Back(_ context.Context) error {
	n.backs++
	return nil
}

// scriptedHost answers every dialog by confirming or cancelling it.
type scriptedHost struct {
	confirm bool
	opened  []Dialog
	errs    []error
}

func (h *scriptedHost) Open(ctx context.Context, d Dialog) Dismissal {
	h.opened = append(h.opened, d)
	if h.confirm {
		if err := d.Confirm(ctx); err != nil {
			h.errs = append(h.errs, err)
			d.Cancel()
		}
	} else {
		d.Cancel()
	}
	return d.Result()
}

func creditCard(id int64) model.CreditCard {
	return model.CreditCards.Build(model.Record{ID: model.Int64(id)})
}
