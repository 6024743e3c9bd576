package queries

import (
	"context"

	"restaurant/internal/core/domain/model/product"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type productRow struct {
	ID       uuid.UUID
	Name     string
	Price    decimal.Decimal
	Category string
}

func (r productRow) view(classifier services.CategoryClassifier) (ProductView, error) {
	id, err := toUUID(r.ID)
	if err != nil {
		return ProductView{}, err
	}
	return ProductView{
		ID:       id,
		Name:     r.Name,
		Price:    r.Price,
		Category: r.Category,
		Kitchen:  classifier.Classify(r.Category),
	}, nil
}

// NewProductView builds the view of a product a command handler returned.
func NewProductView(p *product.Product) ProductView {
	return ProductView{
		ID:       p.ID(),
		Name:     p.Name(),
		Price:    p.Price(),
		Category: p.Category(),
		Kitchen:  services.NewCategoryClassifier().Classify(p.Category()),
	}
}

type GetProductQueryHandler struct {
	db         *gorm.DB
	classifier services.CategoryClassifier
}

func NewGetProductQueryHandler(db *gorm.DB) GetProductQueryHandler {
	return GetProductQueryHandler{db: db, classifier: services.NewCategoryClassifier()}
}

// Handle returns ObjectNotFound for an unknown product.
func (h GetProductQueryHandler) Handle(ctx context.Context, query GetProductQuery) (*ProductView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var row productRow
	result := h.db.WithContext(ctx).Raw(`
		SELECT id, name, price, category
		FROM products
		WHERE id = ?
	`, query.ProductID().Bytes()).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("productID", query.ProductID().String())
	}

	view, err := row.view(h.classifier)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

type ListProductsQueryHandler struct {
	db         *gorm.DB
	classifier services.CategoryClassifier
}

func NewListProductsQueryHandler(db *gorm.DB) ListProductsQueryHandler {
	return ListProductsQueryHandler{db: db, classifier: services.NewCategoryClassifier()}
}

// Handle returns the catalog sorted by category, then name.
func (h ListProductsQueryHandler) Handle(ctx context.Context, query ListProductsQuery) ([]ProductView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []productRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, price, category
		FROM products
		ORDER BY lower(category), lower(name), id
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(rows))
	for _, row := range rows {
		v, rowErr := row.view(h.classifier)
		if rowErr != nil {
			return nil, rowErr
		}
		views = append(views, v)
	}
	return views, nil
}
