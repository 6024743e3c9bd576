package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrAddItemsCommandIsNotConstructed = errors.New(
	"AddItemsCommand must be created via NewAddItemsCommand constructor",
)

// AddItemsCommand appends lines to an existing order.
type AddItemsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	items   []ItemLine

	guard guard.ConstructorGuard
}

// NewAddItemsCommand requires a valid order id and at least one line.
func NewAddItemsCommand(orderID kernel.UUID, items []ItemLine) (AddItemsCommand, error) {
	cmd := AddItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItems(items),
	); err != nil {
		return AddItemsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddItemsCommand) Validate() error {
	return c.guard.Validate(ErrAddItemsCommandIsNotConstructed)
}

func (c AddItemsCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AddItemsCommand) Items() []ItemLine {
	return c.items
}

func (c *AddItemsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AddItemsCommand) setItems(items []ItemLine) error {
	if err := validateItemLines(items, true); err != nil {
		return err
	}
	c.items = items
	return nil
}
