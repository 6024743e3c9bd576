package commands

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdateProductCommandIsNotConstructed = errors.New(
	"UpdateProductCommand must be created via NewUpdateProductCommand constructor",
)

// UpdateProductCommand replaces a catalog entry. Items already on orders keep
// the name and price they were added with.
type UpdateProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	name      string
	price     decimal.Decimal
	category  string

	guard guard.ConstructorGuard
}

func NewUpdateProductCommand(
	productID kernel.UUID,
	name string,
	price decimal.Decimal,
	category string,
) (UpdateProductCommand, error) {
	name = strings.TrimSpace(name)
	if err := errors.Join(
		productID.Validate(),
		requireProductName(name),
		requireProductPrice(price),
	); err != nil {
		return UpdateProductCommand{}, err
	}

	return UpdateProductCommand{
		productID: productID,
		name:      name,
		price:     price,
		category:  strings.TrimSpace(category),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateProductCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProductCommandIsNotConstructed)
}

func (c UpdateProductCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c UpdateProductCommand) Name() string {
	return c.name
}

func (c UpdateProductCommand) Price() decimal.Decimal {
	return c.price
}

func (c UpdateProductCommand) Category() string {
	return c.category
}
