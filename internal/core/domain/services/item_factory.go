package services

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/product"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ItemRequest is what a caller asks for when adding a line to an order.
// A nil Price means "use the current catalog price".
type ItemRequest struct {
	Name     string
	Quantity decimal.Decimal
	Price    *decimal.Decimal
	Note     string
}

// ItemFactory builds order items, snapshotting the catalog price and bucketing
// the product category.
type ItemFactory struct {
	classifier CategoryClassifier
}

// NewItemFactory creates an ItemFactory.
func NewItemFactory(classifier CategoryClassifier) ItemFactory {
	return ItemFactory{classifier: classifier}
}

// Build creates a pending item from req. p is the resolved catalog product
// and may be nil for free-text items, which then need an explicit name and
// are bucketed as food.
//
// Rules:
//   - an explicit price wins over the catalog price
//   - an empty name falls back to the product name
//   - the item keeps the product reference when a product was resolved
func (f ItemFactory) Build(req ItemRequest, p *product.Product, now time.Time) (*order.Item, error) {
	in := order.ItemInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		Category: order.CategoryFood,
		Note:     req.Note,
	}

	if p != nil {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		productID := p.ID()
		in.ProductID = &productID
		in.Price = p.Price()
		in.Category = f.classifier.Classify(p.Category())
		if in.Name == "" {
			in.Name = p.Name()
		}
	}

	switch {
	case req.Price != nil:
		in.Price = *req.Price
	case p == nil:
		return nil, errs.NewValueIsRequiredError("price")
	}

	return order.NewItem(kernel.NewUUID(), in, now)
}
