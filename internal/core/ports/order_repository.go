// Package ports defines the contracts between the restaurant order domain and
// its infrastructure: persistence of orders, catalog lookups and event
// publication.
package ports

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An order is always stored and loaded together with its items, shipments
// and category records.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update replaces the stored state of an existing order, children included.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order without locking it.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads an order and locks its row until the surrounding
	// transaction ends, serializing concurrent mutations of the same order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order and everything it owns. The aggregate is passed
	// so the events it recorded are dispatched with the unit of work.
	Delete(ctx context.Context, aggregate *order.Order) error

	// NextSequence returns max(sequence)+1 for the business date. It must run
	// in the same transaction as the Add that uses the number.
	NextSequence(ctx context.Context, businessDate time.Time) (int, error)
}
