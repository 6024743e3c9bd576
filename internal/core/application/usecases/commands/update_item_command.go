package commands

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/status"
	"restaurant/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdateItemCommandIsNotConstructed = errors.New(
	"UpdateItemCommand must be created via NewUpdateItemCommand constructor",
)

// UpdateItemCommand changes quantity, price, status or note of one item.
//
// Field values arrive as raw text. A malformed or negative quantity or price,
// and a status that items cannot carry, is skipped instead of failing the
// whole update; SkippedFields lists what was dropped so callers can report it.
//
// Example:
//
//	qty, st := "0.5", "pronto"
//	cmd, err := NewUpdateItemCommand(orderID, itemID, &qty, nil, &st, nil)
//	// cmd.Patch() sets quantity 0.5 and status ready
type UpdateItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID
	patch   order.ItemPatch
	skipped []string

	guard guard.ConstructorGuard
}

// NewUpdateItemCommand validates the identifiers and parses the raw fields
// leniently. Nil arguments leave the field untouched.
func NewUpdateItemCommand(
	orderID, itemID kernel.UUID,
	rawQuantity, rawPrice, rawStatus, note *string,
) (UpdateItemCommand, error) {
	cmd := UpdateItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
	); err != nil {
		return UpdateItemCommand{}, err
	}

	cmd.patch.Quantity = cmd.parseAmount("quantity", rawQuantity)
	cmd.patch.Price = cmd.parseAmount("price", rawPrice)
	if rawStatus != nil {
		if st := status.Normalize(*rawStatus); st.IsItemStatus() {
			cmd.patch.Status = &st
		} else {
			cmd.skipped = append(cmd.skipped, "status")
		}
	}
	cmd.patch.Note = note

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateItemCommandIsNotConstructed)
}

func (c UpdateItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Patch returns the fields that survived parsing.
func (c UpdateItemCommand) Patch() order.ItemPatch {
	return c.patch
}

// SkippedFields names the fields ignored because their value was unusable.
func (c UpdateItemCommand) SkippedFields() []string {
	return c.skipped
}

func (c *UpdateItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}

func (c *UpdateItemCommand) parseAmount(field string, raw *string) *decimal.Decimal {
	if raw == nil {
		return nil
	}
	value, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(*raw, ",", ".")))
	if err != nil || value.IsNegative() {
		c.skipped = append(c.skipped, field)
		return nil
	}
	return &value
}
