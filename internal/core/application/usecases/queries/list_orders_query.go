package queries

import (
	"errors"
	"time"

	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders whose business date lies in [from, to]. Either
// bound may be nil. Only the calendar day of each bound is used.
type ListOrdersQuery struct {
	from  *time.Time
	to    *time.Time
	guard guard.ConstructorGuard
}

func NewListOrdersQuery(from, to *time.Time) (ListOrdersQuery, error) {
	from, to = calendarDay(from), calendarDay(to)
	if from != nil && to != nil && from.After(*to) {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError(
			"dateFrom", from.Format(time.DateOnly), "unbounded", to.Format(time.DateOnly))
	}
	return ListOrdersQuery{
		from:  from,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) From() *time.Time {
	return q.from
}

func (q ListOrdersQuery) To() *time.Time {
	return q.to
}

func calendarDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &day
}
