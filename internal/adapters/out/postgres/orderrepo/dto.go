// Package orderrepo persists order aggregates in four tables: orders,
// order_items, order_shipments and order_category_statuses. Children are
// always written and loaded together with their order.
package orderrepo

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/status"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Timestamps are owned by the aggregate, so
// GORM's automatic time tracking is disabled.
type OrderDTO struct {
	ID           uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Sequence     int                 `gorm:"not null;uniqueIndex:idx_orders_business_date_sequence"`
	BusinessDate time.Time           `gorm:"type:date;not null;uniqueIndex:idx_orders_business_date_sequence"`
	CustomerID   *uuid.UUID          `gorm:"type:uuid;index"`
	TableLabel   string              `gorm:"type:varchar(64)"`
	Note         string              `gorm:"type:text"`
	Status       string              `gorm:"type:varchar(16);not null;index"`
	Subtotal     decimal.Decimal     `gorm:"type:numeric(14,2);not null"`
	Surcharge    bool                `gorm:"not null;default:false"`
	Total        decimal.Decimal     `gorm:"type:numeric(14,2);not null"`
	CreatedAt    time.Time           `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt    time.Time           `gorm:"not null;index;autoUpdateTime:false"`
	Items        []ItemDTO           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Shipments    []ShipmentDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Categories   []CategoryStatusDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line. Price is the snapshot taken when the item was added.
type ItemDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShipmentID *uuid.UUID      `gorm:"type:uuid;index"`
	ProductID  *uuid.UUID      `gorm:"type:uuid"`
	Name       string          `gorm:"type:varchar(255);not null"`
	Quantity   decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	Price      decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	Status     string          `gorm:"type:varchar(16);not null"`
	Category   string          `gorm:"type:varchar(16);not null"`
	Note       string          `gorm:"type:text"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime:false"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

// ShipmentDTO is one batch of items handed out together.
type ShipmentDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind      string    `gorm:"type:varchar(16);not null"`
	Address   string    `gorm:"type:text"`
	Note      string    `gorm:"type:text"`
	Status    string    `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
}

func (ShipmentDTO) TableName() string {
	return "order_shipments"
}

// CategoryStatusDTO is keyed by order and category; an order has at most one
// row per category.
type CategoryStatusDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Category  string    `gorm:"type:varchar(16);primaryKey"`
	Status    string    `gorm:"type:varchar(16);not null"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (CategoryStatusDTO) TableName() string {
	return "order_category_statuses"
}

// dateOnly keeps the calendar day of t as UTC midnight, which is how the date
// column round-trips on a UTC session.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreOptionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	items := make([]ItemDTO, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, ItemDTO{
			ID:         it.ID().Bytes(),
			OrderID:    orderID,
			ShipmentID: optionalUUID(it.ShipmentID()),
			ProductID:  optionalUUID(it.ProductID()),
			Name:       it.Name(),
			Quantity:   it.Quantity(),
			Price:      it.Price(),
			Status:     it.Status().String(),
			Category:   it.Category().String(),
			Note:       it.Note(),
			CreatedAt:  it.CreatedAt(),
		})
	}

	shipments := make([]ShipmentDTO, 0, len(o.Shipments()))
	for _, s := range o.Shipments() {
		shipments = append(shipments, ShipmentDTO{
			ID:        s.ID().Bytes(),
			OrderID:   orderID,
			Kind:      string(s.Kind()),
			Address:   s.Address(),
			Note:      s.Note(),
			Status:    s.Status().String(),
			CreatedAt: s.CreatedAt(),
		})
	}

	categories := make([]CategoryStatusDTO, 0, len(o.CategoryStatuses()))
	for _, c := range o.CategoryStatuses() {
		categories = append(categories, CategoryStatusDTO{
			OrderID:   orderID,
			Category:  c.Key().String(),
			Status:    c.Status().String(),
			UpdatedAt: c.UpdatedAt(),
		})
	}

	return OrderDTO{
		ID:           orderID,
		Sequence:     o.Sequence(),
		BusinessDate: dateOnly(o.BusinessDate()),
		CustomerID:   optionalUUID(o.CustomerID()),
		TableLabel:   o.Table(),
		Note:         o.Note(),
		Status:       o.Status().String(),
		Subtotal:     o.Subtotal(),
		Surcharge:    o.Surcharge(),
		Total:        o.Total(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
		Items:        items,
		Shipments:    shipments,
		Categories:   categories,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := restoreOptionalUUID(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	st, err := status.Parse(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		it, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, it)
	}

	shipments := make([]*order.Shipment, 0, len(dto.Shipments))
	for _, shipmentDTO := range dto.Shipments {
		s, shipmentErr := shipmentToDomain(shipmentDTO)
		if shipmentErr != nil {
			return nil, shipmentErr
		}
		shipments = append(shipments, s)
	}

	categories := make([]*order.CategoryStatus, 0, len(dto.Categories))
	for _, categoryDTO := range dto.Categories {
		categoryStatus, parseErr := status.Parse(categoryDTO.Status)
		if parseErr != nil {
			return nil, parseErr
		}
		c, categoryErr := order.RestoreCategoryStatus(
			order.CategoryKey(categoryDTO.Category), categoryStatus, categoryDTO.UpdatedAt)
		if categoryErr != nil {
			return nil, categoryErr
		}
		categories = append(categories, c)
	}

	return order.RestoreOrder(order.State{
		ID:           id,
		Sequence:     dto.Sequence,
		BusinessDate: dto.BusinessDate,
		CustomerID:   customerID,
		Table:        dto.TableLabel,
		Note:         dto.Note,
		Status:       st,
		Subtotal:     dto.Subtotal,
		Surcharge:    dto.Surcharge,
		Total:        dto.Total,
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
		Items:        items,
		Shipments:    shipments,
		Categories:   categories,
	})
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := restoreOptionalUUID(dto.ProductID)
	if err != nil {
		return nil, err
	}
	shipmentID, err := restoreOptionalUUID(dto.ShipmentID)
	if err != nil {
		return nil, err
	}
	st, err := status.Parse(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(id, order.ItemInput{
		ProductID: productID,
		Name:      dto.Name,
		Quantity:  dto.Quantity,
		Price:     dto.Price,
		Category:  order.CategoryKey(dto.Category),
		Note:      dto.Note,
	}, shipmentID, st, dto.CreatedAt)
}

func shipmentToDomain(dto ShipmentDTO) (*order.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	st, err := status.Parse(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreShipment(id, order.ShipmentKind(dto.Kind), dto.Address, dto.Note, st, dto.CreatedAt)
}
