package views

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"bank-admin-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListInitLoadsAll(t *testing.T) {
	svc := &fakeService{queryBody: []model.CreditCard{creditCard(123)}}
	list := NewList(model.CreditCards, svc, &scriptedHost{})

	list.Init(context.Background())

	require.Len(t, list.Entities, 1)
	assert.Equal(t, int64(123), *list.Entities[0].ID)
	assert.False(t, list.IsLoading)
	assert.Equal(t, Loaded, list.State)
	assert.Equal(t, 1, svc.queryCalls)
	assert.NoError(t, list.Err)
}

func TestListLoadAllEmptyBody(t *testing.T) {
	list := NewList(model.CreditCards, &fakeService{}, &scriptedHost{})

	list.LoadAll(context.Background())

	assert.NotNil(t, list.Entities)
	assert.Empty(t, list.Entities)
}

func TestListLoadAllFailureKeepsRows(t *testing.T) {
	svc := &fakeService{queryBody: []model.CreditCard{creditCard(1)}}
	list := NewList(model.CreditCards, svc, &scriptedHost{})
	list.LoadAll(context.Background())

	svc.queryErr = errors.New("503")
	list.LoadAll(context.Background())

	assert.False(t, list.IsLoading)
	assert.Equal(t, Failed, list.State)
	assert.Error(t, list.Err)
	assert.Len(t, list.Entities, 1)
}

func TestListDeleteConfirmedReloads(t *testing.T) {
	svc := &fakeService{queryBody: []model.CreditCard{creditCard(123)}}
	host := &scriptedHost{confirm: true}
	list := NewList(model.CreditCards, svc, host)
	list.Init(context.Background())

	result := list.Delete(context.Background(), creditCard(123))

	assert.Equal(t, Deleted, result)
	assert.Equal(t, []int64{123}, svc.deleted)
	assert.Equal(t, 2, svc.queryCalls)
	require.Len(t, host.opened, 1)
	assert.Equal(t, Confirmed, host.opened[0].State())
}

func TestListDeleteCancelledDoesNotReload(t *testing.T) {
	svc := &fakeService{queryBody: []model.CreditCard{creditCard(123)}}
	list := NewList(model.CreditCards, svc, &scriptedHost{})
	list.Init(context.Background())

	result := list.Delete(context.Background(), creditCard(123))

	assert.Equal(t, Dismissed, result)
	assert.Empty(t, svc.deleted)
	assert.Equal(t, 1, svc.queryCalls)
}

func TestListDeleteFailureDoesNotReload(t *testing.T) {
	svc := &fakeService{queryBody: []model.CreditCard{creditCard(123)}, deleteErr: errors.New("500")}
	host := &scriptedHost{confirm: true}
	list := NewList(model.CreditCards, svc, host)
	list.Init(context.Background())

	result := list.Delete(context.Background(), creditCard(123))

	assert.Equal(t, Dismissed, result)
	assert.Len(t, host.errs, 1)
	assert.Equal(t, 1, svc.queryCalls)
}

func TestListFindAndTrackID(t *testing.T) {
	list := NewList(model.CreditCards, &fakeService{queryBody: []model.CreditCard{creditCard(5), creditCard(9)}}, &scriptedHost{})
	list.Init(context.Background())

	got, ok := list.Find(9)
	require.True(t, ok)
	assert.Equal(t, int64(9), list.TrackID(got))

	_, ok = list.Find(10)
	assert.False(t, ok)
}

func TestListRender(t *testing.T) {
	e := model.CreditCards.Build(model.Record{ID: model.Int64(5), Type: model.String("VISA"), Number: model.String("4111")})
	list := NewList(model.CreditCards, &fakeService{queryBody: []model.CreditCard{e}}, &scriptedHost{})
	list.Init(context.Background())

	var out bytes.Buffer
	require.NoError(t, list.Render(&out))

	assert.Contains(t, out.String(), "VISA")
	assert.Contains(t, out.String(), "4111")
}
