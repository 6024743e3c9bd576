package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/product"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrItemsAreRequired is returned when a command that adds items carries none.
var ErrItemsAreRequired = errs.NewValueIsRequiredError("items")

// ItemLine is one requested order line. Either ProductID or Name identifies
// the product; a nil Price takes the current catalog price.
type ItemLine struct {
	ProductID *kernel.UUID
	Name      string
	Quantity  decimal.Decimal
	Price     *decimal.Decimal
	Note      string
}

func (l ItemLine) validate(idx int) error {
	if l.ProductID == nil && strings.TrimSpace(l.Name) == "" {
		return errs.NewValueIsRequiredError(fmt.Sprintf("items[%d]: product id or name", idx))
	}
	if l.Quantity.IsNegative() {
		return errs.NewValueIsOutOfRangeError(fmt.Sprintf("items[%d].quantity", idx), l.Quantity.String(), 0, "unbounded")
	}
	if l.Price != nil && l.Price.IsNegative() {
		return errs.NewValueIsOutOfRangeError(fmt.Sprintf("items[%d].price", idx), l.Price.String(), 0, "unbounded")
	}
	return nil
}

func validateItemLines(lines []ItemLine, required bool) error {
	if required && len(lines) == 0 {
		return ErrItemsAreRequired
	}
	validationErrors := make([]error, 0, len(lines))
	for i, l := range lines {
		validationErrors = append(validationErrors, l.validate(i))
	}
	return errors.Join(validationErrors...)
}

// buildItems resolves every line against the catalog and creates the items.
// A product id is looked up first; when it is missing or unknown the name is
// tried case-insensitively. Lines matching no product become free-text items.
func buildItems(
	ctx context.Context,
	products ports.ProductRepository,
	factory services.ItemFactory,
	lines []ItemLine,
	now time.Time,
) ([]*order.Item, error) {
	items := make([]*order.Item, 0, len(lines))
	for _, line := range lines {
		p, err := resolveProduct(ctx, products, line)
		if err != nil {
			return nil, err
		}

		item, err := factory.Build(services.ItemRequest{
			Name:     line.Name,
			Quantity: line.Quantity,
			Price:    line.Price,
			Note:     line.Note,
		}, p, now)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func resolveProduct(ctx context.Context, products ports.ProductRepository, line ItemLine) (*product.Product, error) {
	if line.ProductID != nil {
		p, err := products.Get(ctx, *line.ProductID)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
	}

	name := strings.TrimSpace(line.Name)
	if name == "" {
		return nil, errs.NewObjectNotFoundError("productID", *line.ProductID)
	}

	p, err := products.FindByName(ctx, name)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
