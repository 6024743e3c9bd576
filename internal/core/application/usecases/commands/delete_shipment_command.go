package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrDeleteShipmentCommandIsNotConstructed = errors.New(
	"DeleteShipmentCommand must be created via NewDeleteShipmentCommand constructor",
)

// DeleteShipmentCommand removes a shipment; its items stay on the order unassigned.
type DeleteShipmentCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteShipmentCommand(orderID, shipmentID kernel.UUID) (DeleteShipmentCommand, error) {
	if err := errors.Join(orderID.Validate(), shipmentID.Validate()); err != nil {
		return DeleteShipmentCommand{}, err
	}

	return DeleteShipmentCommand{
		orderID:    orderID,
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteShipmentCommand) Validate() error {
	return c.guard.Validate(ErrDeleteShipmentCommandIsNotConstructed)
}

func (c DeleteShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c DeleteShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}
