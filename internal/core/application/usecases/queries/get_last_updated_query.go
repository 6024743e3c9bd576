package queries

import (
	"errors"

	"restaurant/internal/pkg/guard"
)

var ErrGetLastUpdatedQueryIsNotConstructed = errors.New(
	"GetLastUpdatedQuery must be created via NewGetLastUpdatedQuery constructor",
)

// GetLastUpdatedQuery asks when any order last changed. Polling clients
// compare the answer with their previous one before reloading.
type GetLastUpdatedQuery struct {
	guard guard.ConstructorGuard
}

func NewGetLastUpdatedQuery() GetLastUpdatedQuery {
	return GetLastUpdatedQuery{guard: guard.NewConstructorGuard()}
}

func (q GetLastUpdatedQuery) Validate() error {
	return q.guard.Validate(ErrGetLastUpdatedQueryIsNotConstructed)
}
