package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/order"
)

// DeleteItemCommandHandler removes items. Removing the last item of a
// category also removes that category's status record.
type DeleteItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDeleteItemCommandHandler(uowFactory OrderUoWFactory) DeleteItemCommandHandler {
	return DeleteItemCommandHandler{uowFactory: uowFactory}
}

// Handle returns the updated order.
func (h *DeleteItemCommandHandler) Handle(ctx context.Context, cmd DeleteItemCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order, now time.Time) error {
		return o.RemoveItem(cmd.ItemID(), now)
	})
}
