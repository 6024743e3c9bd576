package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/product"
)

// ProductRepository persists the catalog. Orders read it when items are
// added; the catalog commands maintain it.
type ProductRepository interface {
	// Get returns the product with the given id.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// FindByName returns the product whose name matches case-insensitively.
	FindByName(ctx context.Context, name string) (*product.Product, error)

	// Add stores a new catalog entry.
	Add(ctx context.Context, p *product.Product) error

	// Update overwrites an existing catalog entry.
	Update(ctx context.Context, p *product.Product) error

	// Delete removes a catalog entry. Items already on orders keep their
	// snapshot of it.
	Delete(ctx context.Context, id kernel.UUID) error
}
