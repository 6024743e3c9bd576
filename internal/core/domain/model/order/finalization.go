package order

import (
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/status"
	"restaurant/internal/pkg/errs"
)

var (
	// ErrOrderIsFinalized is returned by every item, shipment and financial
	// mutation on a paid or delivered order.
	ErrOrderIsFinalized = errs.NewConflictError("order is finalized")

	// ErrFinalizedStatusIsTerminal is returned when a paid or delivered order
	// would move back to a non-finalized status.
	ErrFinalizedStatusIsTerminal = errs.NewConflictError("finalized order status cannot be reverted")
)

// EnsureMutable rejects changes to a finalized order.
func (o *Order) EnsureMutable() error {
	if o.status.IsFinalized() {
		return fmt.Errorf("%w: order %s is %s", ErrOrderIsFinalized, o.id, o.status)
	}
	return nil
}

// ChangeStatus sets the order status explicitly. It is the only operation
// allowed on a finalized order.
//
// Entering paid or delivered freezes subtotal and total after one final
// refresh from the current items. A finalized order may move between paid and
// delivered but never back to an earlier status.
//
// Pending, preparing and ready are derived from the items. Requesting one of
// them resumes item-driven status: the order takes the derived value, which
// may differ from the requested one. A request that derives the current
// status changes nothing.
func (o *Order) ChangeStatus(next status.Status, now time.Time) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if o.status.IsFinalized() && !next.IsFinalized() {
		return fmt.Errorf("%w: %s -> %s", ErrFinalizedStatusIsTerminal, o.status, next)
	}
	if !isExternallyDriven(next) {
		next = DeriveOrderStatus(o.items)
	}
	if next == o.status {
		return nil
	}

	if next.IsFinalized() && !o.status.IsFinalized() {
		o.refreshTotals()
	}
	o.status = next
	o.touch(now)
	o.record(EventTypeOrder, ActionUpdated, o.orderDetail(), now)
	return nil
}
