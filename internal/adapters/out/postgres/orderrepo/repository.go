package orderrepo

import (
	"context"
	"errors"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sequenceLockNamespace keeps the advisory lock keys of the daily sequence
// apart from any other advisory lock taken on the same database.
const sequenceLockNamespace int64 = 0x5EC0 << 32

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its children.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update overwrites the order row and replaces its children. Rows of removed
// items, shipments and categories are deleted.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit(clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderID", aggregate.ID().String())
	}

	if err := r.replaceChildren(db, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) replaceChildren(db *gorm.DB, dto OrderDTO) error {
	for _, child := range []any{&ItemDTO{}, &ShipmentDTO{}, &CategoryStatusDTO{}} {
		if err := db.Where("order_id = ?", dto.ID).Delete(child).Error; err != nil {
			return err
		}
	}

	if len(dto.Shipments) > 0 {
		if err := db.Create(&dto.Shipments).Error; err != nil {
			return err
		}
	}
	if len(dto.Items) > 0 {
		if err := db.Create(&dto.Items).Error; err != nil {
			return err
		}
	}
	if len(dto.Categories) > 0 {
		if err := db.Create(&dto.Categories).Error; err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order and holds a row lock on it until the
// transaction ends. Outside a transaction the lock is released immediately.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) load(db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := db.
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at, id") }).
		Preload("Shipments", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at, id") }).
		Preload("Categories").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderID", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes an order and everything it owns.
func (r *GormOrderRepository) Delete(ctx context.Context, aggregate *order.Order) error {
	if aggregate == nil {
		return errs.NewValueIsRequiredError("order")
	}
	id := aggregate.ID()

	result := r.db.WithContext(ctx).
		Select(clause.Associations).
		Delete(&OrderDTO{ID: id.Bytes()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderID", id.String())
	}

	r.tracker.TrackAggregate(id, aggregate)
	return nil
}

// NextSequence returns the next daily number for businessDate. A
// transaction-scoped advisory lock keyed by the date serializes concurrent
// callers until their transactions end, so the number is only safe to use
// when NextSequence and the following Add share one transaction.
func (r *GormOrderRepository) NextSequence(ctx context.Context, businessDate time.Time) (int, error) {
	day := dateOnly(businessDate)
	db := r.db.WithContext(ctx)

	if err := db.Exec("SELECT pg_advisory_xact_lock(?)", sequenceLockKey(day)).Error; err != nil {
		return 0, err
	}

	var next int
	err := db.Model(&OrderDTO{}).
		Select("COALESCE(MAX(sequence), 0) + 1").
		Where("business_date = ?", day).
		Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

func sequenceLockKey(day time.Time) int64 {
	return sequenceLockNamespace | int64(day.Year()*10000+int(day.Month())*100+day.Day())
}
