package commands

import (
	"errors"
	"strings"

	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand adds an entry to the catalog.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	name     string
	price    decimal.Decimal
	category string

	guard guard.ConstructorGuard
}

// NewCreateProductCommand validates the request. category is the free-form
// catalog label; the kitchen bucket is derived from it when items are added.
func NewCreateProductCommand(name string, price decimal.Decimal, category string) (CreateProductCommand, error) {
	name = strings.TrimSpace(name)
	if err := errors.Join(
		requireProductName(name),
		requireProductPrice(price),
	); err != nil {
		return CreateProductCommand{}, err
	}

	return CreateProductCommand{
		name:     name,
		price:    price,
		category: strings.TrimSpace(category),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

func (c CreateProductCommand) Name() string {
	return c.name
}

func (c CreateProductCommand) Price() decimal.Decimal {
	return c.price
}

func (c CreateProductCommand) Category() string {
	return c.category
}

func requireProductName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	return nil
}

func requireProductPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsOutOfRangeError("price", price.String(), 0, "unbounded")
	}
	return nil
}
