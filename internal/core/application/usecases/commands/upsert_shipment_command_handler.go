package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/order"
)

// UpsertShipmentCommandHandler creates or updates shipments and propagates a
// requested status to the items they own.
type UpsertShipmentCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpsertShipmentCommandHandler(uowFactory OrderUoWFactory) UpsertShipmentCommandHandler {
	return UpsertShipmentCommandHandler{uowFactory: uowFactory}
}

// Handle returns the updated order, category statuses included.
func (h *UpsertShipmentCommandHandler) Handle(ctx context.Context, cmd UpsertShipmentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order, now time.Time) error {
		_, err := o.UpsertShipment(cmd.ShipmentID(), cmd.Patch(), now)
		return err
	})
}
