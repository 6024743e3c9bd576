package queries

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type GetLastUpdatedQueryHandler struct {
	db *gorm.DB
}

func NewGetLastUpdatedQueryHandler(db *gorm.DB) GetLastUpdatedQueryHandler {
	return GetLastUpdatedQueryHandler{db: db}
}

// Handle returns the latest updated_at over all orders, or the Unix epoch
// when there are none.
func (h GetLastUpdatedQueryHandler) Handle(ctx context.Context, query GetLastUpdatedQuery) (time.Time, error) {
	if err := query.Validate(); err != nil {
		return time.Time{}, err
	}

	var last sql.NullTime
	if err := h.db.WithContext(ctx).Raw("SELECT MAX(updated_at) FROM orders").Row().Scan(&last); err != nil {
		return time.Time{}, err
	}
	if !last.Valid {
		return time.Unix(0, 0).UTC(), nil
	}
	return last.Time, nil
}
