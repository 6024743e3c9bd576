package commands

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/status"
	"restaurant/internal/pkg/guard"
)

var ErrUpsertShipmentCommandIsNotConstructed = errors.New(
	"UpsertShipmentCommand must be created via NewCreateShipmentCommand or NewUpdateShipmentCommand",
)

// ShipmentInput carries the raw shipment fields. Nil fields are left untouched.
type ShipmentInput struct {
	ItemIDs []kernel.UUID
	Kind    *string
	Address *string
	Note    *string
	Status  *string
}

// UpsertShipmentCommand creates a shipment (nil ShipmentID) or updates one,
// moving the listed items into it.
type UpsertShipmentCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	shipmentID *kernel.UUID
	patch      order.ShipmentPatch

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand builds a command that opens a new shipment.
//
// Example:
//
//	ready := "pronto"
//	cmd, err := NewCreateShipmentCommand(orderID, ShipmentInput{
//	    ItemIDs: []kernel.UUID{pizzaID, sodaID},
//	    Status:  &ready,
//	})
func NewCreateShipmentCommand(orderID kernel.UUID, in ShipmentInput) (UpsertShipmentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpsertShipmentCommand{}, err
	}
	return newUpsertShipmentCommand(orderID, nil, in), nil
}

// NewUpdateShipmentCommand builds a command that changes an existing shipment.
func NewUpdateShipmentCommand(orderID, shipmentID kernel.UUID, in ShipmentInput) (UpsertShipmentCommand, error) {
	if err := errors.Join(orderID.Validate(), shipmentID.Validate()); err != nil {
		return UpsertShipmentCommand{}, err
	}
	return newUpsertShipmentCommand(orderID, &shipmentID, in), nil
}

func newUpsertShipmentCommand(orderID kernel.UUID, shipmentID *kernel.UUID, in ShipmentInput) UpsertShipmentCommand {
	patch := order.ShipmentPatch{
		ItemIDs: in.ItemIDs,
		Note:    in.Note,
	}
	if in.Kind != nil {
		kind := order.NormalizeShipmentKind(*in.Kind)
		patch.Kind = &kind
	}
	if in.Address != nil {
		address := strings.TrimSpace(*in.Address)
		patch.Address = &address
	}
	if in.Status != nil {
		st := status.Normalize(*in.Status)
		patch.Status = &st
	}

	return UpsertShipmentCommand{
		orderID:    orderID,
		shipmentID: shipmentID,
		patch:      patch,
		guard:      guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through a constructor.
func (c UpsertShipmentCommand) Validate() error {
	return c.guard.Validate(ErrUpsertShipmentCommandIsNotConstructed)
}

func (c UpsertShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ShipmentID is nil when the command creates a shipment.
func (c UpsertShipmentCommand) ShipmentID() *kernel.UUID {
	return c.shipmentID
}

func (c UpsertShipmentCommand) Patch() order.ShipmentPatch {
	return c.patch
}
