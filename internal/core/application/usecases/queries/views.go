// Package queries contains the read side: order snapshots, order listings,
// the catalog and the last-updated marker polled by clients. Handlers read straight from the
// database and never lock rows.
package queries

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/status"

	"github.com/shopspring/decimal"
)

// OrderView is the full snapshot of one order.
type OrderView struct {
	ID           kernel.UUID
	Sequence     int
	BusinessDate time.Time
	CustomerID   *kernel.UUID
	Table        string
	Note         string
	Status       status.Status
	Subtotal     decimal.Decimal
	Surcharge    bool
	Total        decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Items        []ItemView
	Shipments    []ShipmentView
	Categories   []CategoryView
}

type ItemView struct {
	ID         kernel.UUID
	ShipmentID *kernel.UUID
	ProductID  *kernel.UUID
	Name       string
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	LineTotal  decimal.Decimal
	Status     status.Status
	Category   order.CategoryKey
	Note       string
	CreatedAt  time.Time
}

type ShipmentView struct {
	ID        kernel.UUID
	Kind      order.ShipmentKind
	Address   string
	Note      string
	Status    status.Status
	CreatedAt time.Time
	ItemIDs   []kernel.UUID
}

type CategoryView struct {
	Key       order.CategoryKey
	Status    status.Status
	UpdatedAt time.Time
}

// OrderSummary is one row of an order listing.
type OrderSummary struct {
	ID           kernel.UUID
	Sequence     int
	BusinessDate time.Time
	Table        string
	Status       status.Status
	Total        decimal.Decimal
	ItemCount    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProductView is one catalog entry. Kitchen is the bucket items of this
// product are counted under.
type ProductView struct {
	ID       kernel.UUID
	Name     string
	Price    decimal.Decimal
	Category string
	Kitchen  order.CategoryKey
}

// NewOrderView builds the snapshot of an aggregate held in memory, such as
// the one a command handler returns, in the same shape GetOrder reads.
func NewOrderView(o *order.Order) OrderView {
	view := OrderView{
		ID:           o.ID(),
		Sequence:     o.Sequence(),
		BusinessDate: o.BusinessDate(),
		CustomerID:   o.CustomerID(),
		Table:        o.Table(),
		Note:         o.Note(),
		Status:       o.Status(),
		Subtotal:     o.Subtotal(),
		Surcharge:    o.Surcharge(),
		Total:        o.Total(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
		Items:        make([]ItemView, 0, len(o.Items())),
		Shipments:    make([]ShipmentView, 0, len(o.Shipments())),
		Categories:   make([]CategoryView, 0, len(o.CategoryStatuses())),
	}

	for _, it := range o.Items() {
		view.Items = append(view.Items, ItemView{
			ID:         it.ID(),
			ShipmentID: it.ShipmentID(),
			ProductID:  it.ProductID(),
			Name:       it.Name(),
			Quantity:   it.Quantity(),
			Price:      it.Price(),
			LineTotal:  it.LineTotal(),
			Status:     it.Status(),
			Category:   it.Category(),
			Note:       it.Note(),
			CreatedAt:  it.CreatedAt(),
		})
	}

	for _, s := range o.Shipments() {
		itemIDs := make([]kernel.UUID, 0)
		for _, it := range o.ItemsOf(s.ID()) {
			itemIDs = append(itemIDs, it.ID())
		}
		view.Shipments = append(view.Shipments, ShipmentView{
			ID:        s.ID(),
			Kind:      s.Kind(),
			Address:   s.Address(),
			Note:      s.Note(),
			Status:    s.Status(),
			CreatedAt: s.CreatedAt(),
			ItemIDs:   itemIDs,
		})
	}

	for _, c := range o.CategoryStatuses() {
		view.Categories = append(view.Categories, CategoryView{
			Key:       c.Key(),
			Status:    c.Status(),
			UpdatedAt: c.UpdatedAt(),
		})
	}

	return view
}
