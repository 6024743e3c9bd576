package services_test

import (
	"testing"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/product"
	"restaurant/internal/core/domain/model/status"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemFactory_Build(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	factory := services.NewItemFactory(services.NewCategoryClassifier())
	soda, err := product.NewProduct(kernel.NewUUID(), "Guaraná", decimal.RequireFromString("6.50"), "Refrigerantes")
	require.NoError(t, err)

	t.Run("should snapshot the catalog price and bucket the category", func(t *testing.T) {
		item, err := factory.Build(services.ItemRequest{Quantity: decimal.NewFromInt(2)}, soda, now)

		require.NoError(t, err)
		assert.Equal(t, "Guaraná", item.Name())
		assert.True(t, decimal.RequireFromString("6.5").Equal(item.Price()))
		assert.Equal(t, order.CategoryBeverage, item.Category())
		assert.Equal(t, status.Pending, item.Status())
		require.NotNil(t, item.ProductID())
		assert.True(t, soda.ID().IsEqual(*item.ProductID()))
	})

	t.Run("explicit price and name win", func(t *testing.T) {
		price := decimal.RequireFromString("5")
		item, err := factory.Build(services.ItemRequest{Name: "Guaraná lata", Quantity: decimal.NewFromInt(1), Price: &price}, soda, now)

		require.NoError(t, err)
		assert.Equal(t, "Guaraná lata", item.Name())
		assert.True(t, price.Equal(item.Price()))
	})

	t.Run("free-text item is food and needs a price", func(t *testing.T) {
		price := decimal.RequireFromString("12")
		item, err := factory.Build(services.ItemRequest{Name: "Porção extra", Quantity: decimal.RequireFromString("0.5"), Price: &price}, nil, now)
		require.NoError(t, err)
		assert.Equal(t, order.CategoryFood, item.Category())
		assert.Nil(t, item.ProductID())

		_, err = factory.Build(services.ItemRequest{Name: "Porção extra", Quantity: decimal.NewFromInt(1)}, nil, now)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
