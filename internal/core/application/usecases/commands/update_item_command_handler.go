package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/order"
)

// UpdateItemCommandHandler applies an item patch.
//
// Errors:
//   - errs.ErrObjectNotFound for an unknown order or item
//   - order.ErrOrderIsFinalized when the order is paid or delivered
//   - order.ErrIllegalStatusTransition when delivering an item that is not ready
type UpdateItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateItemCommandHandler(uowFactory OrderUoWFactory) UpdateItemCommandHandler {
	return UpdateItemCommandHandler{uowFactory: uowFactory}
}

// Handle returns the updated order.
func (h *UpdateItemCommandHandler) Handle(ctx context.Context, cmd UpdateItemCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order, now time.Time) error {
		return o.UpdateItem(cmd.ItemID(), cmd.Patch(), now)
	})
}
