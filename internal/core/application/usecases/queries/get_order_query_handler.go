package queries

import (
	"context"

	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order snapshot with four plain selects.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns ObjectNotFound for an unknown order. Items and shipments are
// ordered by creation time.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	orderID := query.OrderID().Bytes()

	var head orderRow
	result := db.Raw(`
		SELECT
			id, sequence, business_date, customer_id, table_label, note,
			status, subtotal, surcharge, total, created_at, updated_at
		FROM orders
		WHERE id = ?
	`, orderID).Scan(&head)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("orderID", query.OrderID().String())
	}

	view, err := head.view()
	if err != nil {
		return nil, err
	}

	var items []itemRow
	err = db.Raw(`
		SELECT id, shipment_id, product_id, name, quantity, price, status, category, note, created_at
		FROM order_items
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID).Scan(&items).Error
	if err != nil {
		return nil, err
	}

	var shipments []shipmentRow
	err = db.Raw(`
		SELECT id, kind, address, note, status, created_at
		FROM order_shipments
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID).Scan(&shipments).Error
	if err != nil {
		return nil, err
	}

	var categories []categoryRow
	err = db.Raw(`
		SELECT category, status, updated_at
		FROM order_category_statuses
		WHERE order_id = ?
		ORDER BY category
	`, orderID).Scan(&categories).Error
	if err != nil {
		return nil, err
	}

	view.Shipments = make([]ShipmentView, 0, len(shipments))
	byShipment := make(map[string]int, len(shipments))
	for _, row := range shipments {
		s, rowErr := row.view()
		if rowErr != nil {
			return nil, rowErr
		}
		byShipment[s.ID.String()] = len(view.Shipments)
		view.Shipments = append(view.Shipments, s)
	}

	view.Items = make([]ItemView, 0, len(items))
	for _, row := range items {
		it, rowErr := row.view()
		if rowErr != nil {
			return nil, rowErr
		}
		if it.ShipmentID != nil {
			if idx, ok := byShipment[it.ShipmentID.String()]; ok {
				view.Shipments[idx].ItemIDs = append(view.Shipments[idx].ItemIDs, it.ID)
			}
		}
		view.Items = append(view.Items, it)
	}

	view.Categories = make([]CategoryView, 0, len(categories))
	for _, row := range categories {
		c, rowErr := row.view()
		if rowErr != nil {
			return nil, rowErr
		}
		view.Categories = append(view.Categories, c)
	}

	return &view, nil
}
