package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/order"
)

// DeleteShipmentCommandHandler removes shipments from mutable orders.
type DeleteShipmentCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDeleteShipmentCommandHandler(uowFactory OrderUoWFactory) DeleteShipmentCommandHandler {
	return DeleteShipmentCommandHandler{uowFactory: uowFactory}
}

// Handle returns the updated order.
func (h *DeleteShipmentCommandHandler) Handle(ctx context.Context, cmd DeleteShipmentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order, now time.Time) error {
		return o.RemoveShipment(cmd.ShipmentID(), now)
	})
}
