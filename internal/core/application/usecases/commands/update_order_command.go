package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/status"
	"restaurant/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand changes the order status and/or the surcharge flag.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	status    *status.Status
	surcharge *bool

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand normalizes rawStatus ("pago", "entregue", ...).
func NewUpdateOrderCommand(orderID kernel.UUID, rawStatus *string, surcharge *bool) (UpdateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateOrderCommand{}, err
	}

	cmd := UpdateOrderCommand{
		orderID:   orderID,
		surcharge: surcharge,
		guard:     guard.NewConstructorGuard(),
	}
	if rawStatus != nil {
		st := status.Normalize(*rawStatus)
		cmd.status = &st
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the requested status, or nil to keep the current one.
func (c UpdateOrderCommand) Status() *status.Status {
	return c.status
}

// Surcharge returns the requested flag, or nil to keep the current one.
func (c UpdateOrderCommand) Surcharge() *bool {
	return c.surcharge
}
