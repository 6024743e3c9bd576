package order

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/status"

	"github.com/shopspring/decimal"
)

// EventType is the kind of record an event is about.
type EventType string

const (
	EventTypeOrder     EventType = "order"
	EventTypeOrderItem EventType = "order_item"
	EventTypeShipment  EventType = "shipment"
)

// Action is what happened to the record.
type Action string

const (
	ActionAdded   Action = "added"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
	ActionMoved   Action = "moved"
)

// Event is the structured notification broadcast to kitchen observers.
// Detail holds an OrderDetail, ItemDetail or ShipmentDetail matching Type.
type Event struct {
	Type       EventType   `json:"type"`
	Action     Action      `json:"action"`
	OrderID    kernel.UUID `json:"order_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Detail     any         `json:"detail,omitempty"`
}

// OrderDetail is the order-level payload.
type OrderDetail struct {
	Sequence   int              `json:"sequence"`
	Status     status.Status    `json:"status"`
	Table      string           `json:"table,omitempty"`
	CustomerID *kernel.UUID     `json:"customer_id,omitempty"`
	Subtotal   decimal.Decimal  `json:"subtotal"`
	Surcharge  bool             `json:"surcharge"`
	Total      decimal.Decimal  `json:"total"`
	Categories []CategoryDetail `json:"categories"`
}

// CategoryDetail is one category status inside OrderDetail.
type CategoryDetail struct {
	Category CategoryKey   `json:"category"`
	Status   status.Status `json:"status"`
}

// ItemDetail is the order_item payload.
type ItemDetail struct {
	ID         kernel.UUID     `json:"id"`
	ProductID  *kernel.UUID    `json:"product_id,omitempty"`
	ShipmentID *kernel.UUID    `json:"shipment_id,omitempty"`
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Status     status.Status   `json:"status"`
	Category   CategoryKey     `json:"category"`
	Note       string          `json:"note,omitempty"`
}

// ShipmentDetail is the shipment payload.
type ShipmentDetail struct {
	ID      kernel.UUID   `json:"id"`
	Kind    ShipmentKind  `json:"kind"`
	Address string        `json:"address,omitempty"`
	Status  status.Status `json:"status"`
	ItemIDs []kernel.UUID `json:"item_ids"`
}

func (o *Order) record(typ EventType, action Action, detail any, now time.Time) {
	o.events = append(o.events, Event{
		Type:       typ,
		Action:     action,
		OrderID:    o.id,
		OccurredAt: now,
		Detail:     detail,
	})
}

func (o *Order) orderDetail() OrderDetail {
	categories := make([]CategoryDetail, 0, len(o.categories))
	for _, c := range o.CategoryStatuses() {
		categories = append(categories, CategoryDetail{Category: c.key, Status: c.status})
	}
	return OrderDetail{
		Sequence:   o.sequence,
		Status:     o.status,
		Table:      o.table,
		CustomerID: o.customerID,
		Subtotal:   o.subtotal,
		Surcharge:  o.surcharge,
		Total:      o.total,
		Categories: categories,
	}
}

func itemDetail(i *Item) ItemDetail {
	return ItemDetail{
		ID:         i.id,
		ProductID:  i.productID,
		ShipmentID: i.shipmentID,
		Name:       i.name,
		Quantity:   i.quantity,
		Price:      i.price,
		Status:     i.status,
		Category:   i.category,
		Note:       i.note,
	}
}

func (o *Order) shipmentDetail(s *Shipment) ShipmentDetail {
	ids := make([]kernel.UUID, 0)
	for _, it := range o.items {
		if it.belongsTo(s.id) {
			ids = append(ids, it.id)
		}
	}
	return ShipmentDetail{
		ID:      s.id,
		Kind:    s.kind,
		Address: s.address,
		Status:  s.status,
		ItemIDs: ids,
	}
}

// PullEvents returns the events recorded since the last call and clears them.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}
