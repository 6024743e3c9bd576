package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/order"
)

// UpdateOrderCommandHandler applies explicit status changes and surcharge toggles.
//
// The surcharge is applied before the status, so a single request can add the
// service charge and close the bill; toggling it on an already finalized order
// is rejected.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{uowFactory: uowFactory}
}

// Handle returns the updated order.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order, now time.Time) error {
		if surcharge := cmd.Surcharge(); surcharge != nil && *surcharge != o.Surcharge() {
			if err := o.SetSurcharge(*surcharge, now); err != nil {
				return err
			}
		}
		if st := cmd.Status(); st != nil {
			return o.ChangeStatus(*st, now)
		}
		return nil
	})
}
