package queries

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/status"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Row types mirror the columns selected by the handlers.
type (
	orderRow struct {
		ID           uuid.UUID
		Sequence     int
		BusinessDate time.Time
		CustomerID   *uuid.UUID
		TableLabel   string
		Note         string
		Status       string
		Subtotal     decimal.Decimal
		Surcharge    bool
		Total        decimal.Decimal
		CreatedAt    time.Time
		UpdatedAt    time.Time
		ItemCount    int
	}

	itemRow struct {
		ID         uuid.UUID
		ShipmentID *uuid.UUID
		ProductID  *uuid.UUID
		Name       string
		Quantity   decimal.Decimal
		Price      decimal.Decimal
		Status     string
		Category   string
		Note       string
		CreatedAt  time.Time
	}

	shipmentRow struct {
		ID        uuid.UUID
		Kind      string
		Address   string
		Note      string
		Status    string
		CreatedAt time.Time
	}

	categoryRow struct {
		Category  string
		Status    string
		UpdatedAt time.Time
	}
)

func toUUID(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}

func toOptionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := toUUID(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (r orderRow) summary() (OrderSummary, error) {
	id, err := toUUID(r.ID)
	if err != nil {
		return OrderSummary{}, err
	}
	st, err := status.Parse(r.Status)
	if err != nil {
		return OrderSummary{}, err
	}
	return OrderSummary{
		ID:           id,
		Sequence:     r.Sequence,
		BusinessDate: r.BusinessDate,
		Table:        r.TableLabel,
		Status:       st,
		Total:        r.Total,
		ItemCount:    r.ItemCount,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}, nil
}

func (r orderRow) view() (OrderView, error) {
	id, err := toUUID(r.ID)
	if err != nil {
		return OrderView{}, err
	}
	customerID, err := toOptionalUUID(r.CustomerID)
	if err != nil {
		return OrderView{}, err
	}
	st, err := status.Parse(r.Status)
	if err != nil {
		return OrderView{}, err
	}
	return OrderView{
		ID:           id,
		Sequence:     r.Sequence,
		BusinessDate: r.BusinessDate,
		CustomerID:   customerID,
		Table:        r.TableLabel,
		Note:         r.Note,
		Status:       st,
		Subtotal:     r.Subtotal,
		Surcharge:    r.Surcharge,
		Total:        r.Total,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}, nil
}

func (r itemRow) view() (ItemView, error) {
	id, err := toUUID(r.ID)
	if err != nil {
		return ItemView{}, err
	}
	shipmentID, err := toOptionalUUID(r.ShipmentID)
	if err != nil {
		return ItemView{}, err
	}
	productID, err := toOptionalUUID(r.ProductID)
	if err != nil {
		return ItemView{}, err
	}
	st, err := status.Parse(r.Status)
	if err != nil {
		return ItemView{}, err
	}
	return ItemView{
		ID:         id,
		ShipmentID: shipmentID,
		ProductID:  productID,
		Name:       r.Name,
		Quantity:   r.Quantity,
		Price:      r.Price,
		LineTotal:  r.Price.Mul(r.Quantity),
		Status:     st,
		Category:   order.CategoryKey(r.Category),
		Note:       r.Note,
		CreatedAt:  r.CreatedAt,
	}, nil
}

func (r shipmentRow) view() (ShipmentView, error) {
	id, err := toUUID(r.ID)
	if err != nil {
		return ShipmentView{}, err
	}
	st, err := status.Parse(r.Status)
	if err != nil {
		return ShipmentView{}, err
	}
	return ShipmentView{
		ID:        id,
		Kind:      order.ShipmentKind(r.Kind),
		Address:   r.Address,
		Note:      r.Note,
		Status:    st,
		CreatedAt: r.CreatedAt,
		ItemIDs:   make([]kernel.UUID, 0),
	}, nil
}

func (r categoryRow) view() (CategoryView, error) {
	st, err := status.Parse(r.Status)
	if err != nil {
		return CategoryView{}, err
	}
	return CategoryView{
		Key:       order.CategoryKey(r.Category),
		Status:    st,
		UpdatedAt: r.UpdatedAt,
	}, nil
}
