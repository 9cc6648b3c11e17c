package entity

import "bank-admin-go/internal/model"

// MergeMissing prepends the candidates whose id is not yet in collection.
//
// Nil candidates and candidates without an id are skipped, as are repeats among the
// candidates themselves. When nothing is left to consider the collection is returned
// as is, so callers can compare slices to detect a no-op. The input is never modified.
func MergeMissing[T model.Entity](collection []T, candidates ...*T) []T {
	present := make([]T, 0, len(candidates))
	for _, c := range candidates {
		if c != nil {
			present = append(present, *c)
		}
	}
	if len(present) == 0 {
		return collection
	}

	seen := make(map[int64]struct{}, len(collection)+len(present))
	for _, item := range collection {
		if id := item.GetID(); id != nil {
			seen[*id] = struct{}{}
		}
	}

	toAdd := make([]T, 0, len(present))
	for _, item := range present {
		id := item.GetID()
		if id == nil {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}
		toAdd = append(toAdd, item)
	}

	merged := make([]T, 0, len(toAdd)+len(collection))
	merged = append(merged, toAdd...)
	return append(merged, collection...)
}
