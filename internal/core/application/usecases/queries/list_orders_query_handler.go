package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns the matching orders, newest first.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx).
		Table("orders AS o").
		Select(`
			o.id, o.sequence, o.business_date, o.table_label, o.status, o.total,
			o.created_at, o.updated_at,
			(SELECT COUNT(*) FROM order_items i WHERE i.order_id = o.id) AS item_count
		`)
	if from := query.From(); from != nil {
		db = db.Where("o.business_date >= ?", *from)
	}
	if to := query.To(); to != nil {
		db = db.Where("o.business_date <= ?", *to)
	}

	var rows []orderRow
	if err := db.Order("o.created_at DESC, o.sequence DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]OrderSummary, 0, len(rows))
	for _, row := range rows {
		s, err := row.summary()
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}
