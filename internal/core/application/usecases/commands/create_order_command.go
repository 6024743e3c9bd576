package commands

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand opens a new order with its initial shipment.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(nil, "12", "local", "", "", []ItemLine{
//	    {ProductID: &pizzaID, Quantity: decimal.NewFromInt(1)},
//	    {Name: "Guaraná", Quantity: decimal.NewFromInt(2)},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID   *kernel.UUID
	table        string
	shipmentKind order.ShipmentKind
	address      string
	note         string
	items        []ItemLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request. rawKind is normalized, so
// "delivery", "entrega" and "local" are all accepted. Items may be empty.
func NewCreateOrderCommand(
	customerID *kernel.UUID,
	table, rawKind, address, note string,
	items []ItemLine,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		table:        strings.TrimSpace(table),
		shipmentKind: order.NormalizeShipmentKind(rawKind),
		address:      strings.TrimSpace(address),
		note:         note,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerID() *kernel.UUID {
	return c.customerID
}

func (c CreateOrderCommand) Table() string {
	return c.table
}

func (c CreateOrderCommand) ShipmentKind() order.ShipmentKind {
	return c.shipmentKind
}

func (c CreateOrderCommand) Address() string {
	return c.address
}

func (c CreateOrderCommand) Note() string {
	return c.note
}

func (c CreateOrderCommand) Items() []ItemLine {
	return c.items
}

func (c *CreateOrderCommand) setCustomerID(customerID *kernel.UUID) error {
	if customerID == nil {
		return nil
	}
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemLine) error {
	if err := validateItemLines(items, false); err != nil {
		return err
	}
	c.items = items
	return nil
}
