// Package product holds the catalog entry an order item may reference.
// Orders read the current price and category when an item is added; later
// catalog changes never touch items already on an order.
package product

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrProductIsNotConstructed is returned when a Product was not built through a constructor.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is a catalog entry. Category is the free-form label maintained by
// the catalog ("Pizzas", "Bebidas", ...); the kitchen bucket is derived from it.
type Product struct {
	id       kernel.UUID
	name     string
	price    decimal.Decimal
	category string
	guard    guard.ConstructorGuard
}

// NewProduct creates a catalog entry.
func NewProduct(id kernel.UUID, name string, price decimal.Decimal, category string) (*Product, error) {
	p := &Product{
		category: strings.TrimSpace(category),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPrice(price),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct rebuilds a persisted catalog entry.
func RestoreProduct(id kernel.UUID, name string, price decimal.Decimal, category string) (*Product, error) {
	return NewProduct(id, name, price, category)
}

// Validate ensures the product was built through a constructor.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

// Price returns the current catalog price.
func (p *Product) Price() decimal.Decimal {
	return p.price
}

func (p *Product) Category() string {
	return p.category
}

// Update replaces name, price and category. Nothing changes when any of them
// is invalid.
func (p *Product) Update(name string, price decimal.Decimal, category string) error {
	next := *p
	if err := errors.Join(
		next.setName(name),
		next.setPrice(price),
	); err != nil {
		return err
	}
	next.category = strings.TrimSpace(category)

	*p = next
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsOutOfRangeError("price", price.String(), 0, "unbounded")
	}
	p.price = price
	return nil
}
