package views

import (
	"context"
	"errors"
	"testing"

	"bank-admin-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmDelete(t *testing.T) {
	svc := &fakeService{}
	d := NewDeleteDialog(model.CreditCards, svc, creditCard(123))

	require.NoError(t, d.ConfirmDelete(context.Background(), 123))

	assert.Equal(t, []int64{123}, svc.deleted)
	assert.Equal(t, Confirmed, d.State())
	assert.Equal(t, Deleted, d.Result())
}

func TestConfirmDeleteTwiceCallsOnce(t *testing.T) {
	svc := &fakeService{}
	d := NewDeleteDialog(model.CreditCards, svc, creditCard(123))

	require.NoError(t, d.Confirm(context.Background()))
	require.NoError(t, d.Confirm(context.Background()))

	assert.Equal(t, []int64{123}, svc.deleted)
}

func TestCancel(t *testing.T) {
	svc := &fakeService{}
	d := NewDeleteDialog(model.CreditCards, svc, creditCard(123))

	d.Cancel()

	assert.Equal(t, Cancelled, d.State())
	assert.Equal(t, Dismissed, d.Result())
	assert.Empty(t, svc.deleted)
}

func TestConfirmDeleteFailureStaysPending(t *testing.T) {
	boom := errors.New("500")
	svc := &fakeService{deleteErr: boom}
	d := NewDeleteDialog(model.CreditCards, svc, creditCard(123))

	err := d.ConfirmDelete(context.Background(), 123)

	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, d.Err, boom)
	assert.Equal(t, Pending, d.State())

	svc.deleteErr = nil
	require.NoError(t, d.ConfirmDelete(context.Background(), 123))
	assert.Equal(t, Deleted, d.Result())
	assert.Nil(t, d.Err)
}

func TestPrompt(t *testing.T) {
	d := NewDeleteDialog(model.CreditCards, &fakeService{}, creditCard(7))

	assert.Equal(t, "Are you sure you want to delete creditCard 7?", d.Prompt())
}
