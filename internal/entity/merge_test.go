package entity

import (
	"testing"

	"bank-admin-go/internal/model"

	"github.com/stretchr/testify/assert"
)

func card(id int64) model.CreditCard {
	return model.CreditCards.Build(model.Record{ID: model.Int64(id)})
}

func ids(cards []model.CreditCard) []int64 {
	out := make([]int64, 0, len(cards))
	for _, c := range cards {
		out = append(out, *c.ID)
	}
	return out
}

func TestMergeMissingNoCandidatesReturnsSameCollection(t *testing.T) {
	collection := []model.CreditCard{card(123)}

	merged := MergeMissing(collection)

	assert.Len(t, merged, 1)
	assert.Same(t, &collection[0], &merged[0])
}

func TestMergeMissingOnlyNilCandidates(t *testing.T) {
	collection := []model.CreditCard{card(123)}

	merged := MergeMissing(collection, nil, nil)

	assert.Same(t, &collection[0], &merged[0])
}

func TestMergeMissingAddsToEmptyCollection(t *testing.T) {
	a, b := card(123), card(456)

	merged := MergeMissing([]model.CreditCard{}, &a, &b)

	assert.Equal(t, []int64{123, 456}, ids(merged))
}

func TestMergeMissingPrependsInCandidateOrder(t *testing.T) {
	collection := []model.CreditCard{card(1), card(2)}
	a, b := card(30), card(20)

	merged := MergeMissing(collection, &a, &b)

	assert.Equal(t, []int64{30, 20, 1, 2}, ids(merged))
	assert.Equal(t, []int64{1, 2}, ids(collection))
}

func TestMergeMissingSkipsDuplicatesAndDrafts(t *testing.T) {
	collection := []model.CreditCard{card(123)}
	dup := card(123)
	fresh := card(456)
	again := card(456)
	draft := model.CreditCards.New()

	merged := MergeMissing(collection, &dup, nil, &draft, &fresh, &again)

	assert.Equal(t, []int64{456, 123}, ids(merged))
}

func TestMergeMissingAllRejectedStillCopies(t *testing.T) {
	collection := []model.CreditCard{card(123)}
	dup := card(123)

	merged := MergeMissing(collection, &dup)

	assert.Equal(t, []int64{123}, ids(merged))
	assert.NotSame(t, &collection[0], &merged[0])
}

func TestMergeMissingIsIdempotent(t *testing.T) {
	collection := []model.CreditCard{card(1)}
	x := card(2)

	once := MergeMissing(collection, &x)
	twice := MergeMissing(once, &x)

	assert.ElementsMatch(t, ids(once), ids(twice))
	assert.Len(t, twice, 2)
}

func TestMergeMissingBankAccounts(t *testing.T) {
	existing := model.BankAccounts.Build(model.Record{ID: model.Int64(7)})
	candidate := model.BankAccounts.Build(model.Record{ID: model.Int64(8)})

	merged := MergeMissing([]model.BankAccount{existing}, &candidate)

	assert.Len(t, merged, 2)
	assert.Equal(t, int64(8), *merged[0].ID)
}
