package order

import (
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/status"
	"restaurant/internal/pkg/errs"
)

// CategoryKey is the kitchen bucket an item belongs to.
type CategoryKey string

const (
	CategoryFood     CategoryKey = "food"
	CategoryBeverage CategoryKey = "beverage"
)

// Validate reports whether k is a known bucket.
func (k CategoryKey) Validate() error {
	switch k {
	case CategoryFood, CategoryBeverage:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("category is invalid", fmt.Errorf("%q is not a known category", string(k)))
	}
}

func (k CategoryKey) String() string {
	return string(k)
}

// CategoryStatus is the aggregated preparation status of all items of one
// category within an order. Records are created and removed by Order.Recompute.
type CategoryStatus struct {
	key       CategoryKey
	status    status.Status
	updatedAt time.Time
}

// RestoreCategoryStatus rebuilds a persisted record.
func RestoreCategoryStatus(key CategoryKey, st status.Status, updatedAt time.Time) (*CategoryStatus, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}
	return &CategoryStatus{key: key, status: st, updatedAt: updatedAt}, nil
}

func (c *CategoryStatus) Key() CategoryKey {
	return c.key
}

func (c *CategoryStatus) Status() status.Status {
	return c.status
}

func (c *CategoryStatus) UpdatedAt() time.Time {
	return c.updatedAt
}
