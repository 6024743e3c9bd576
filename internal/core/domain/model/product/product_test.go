package product_test

import (
	"testing"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/product"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("should create a valid product", func(t *testing.T) {
		p, err := product.NewProduct(kernel.NewUUID(), " Calabresa ", decimal.RequireFromString("45.90"), " Pizzas ")

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, "Calabresa", p.Name())
		assert.Equal(t, "Pizzas", p.Category())
		assert.Equal(t, "45.9", p.Price().String())
	})

	t.Run("should join validation errors", func(t *testing.T) {
		p, err := product.NewProduct(kernel.UUID{}, "  ", decimal.RequireFromString("-1"), "")

		require.Error(t, err)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestProduct_Validate(t *testing.T) {
	var p *product.Product
	assert.ErrorIs(t, p.Validate(), product.ErrProductIsNotConstructed)
	assert.ErrorIs(t, (&product.Product{}).Validate(), product.ErrProductIsNotConstructed)
}

func TestProduct_Update(t *testing.T) {
	t.Run("replaces the catalog fields", func(t *testing.T) {
		p, err := product.NewProduct(kernel.NewUUID(), "Soda", decimal.RequireFromString("5"), "Bebidas")
		require.NoError(t, err)

		require.NoError(t, p.Update(" Soda Zero ", decimal.RequireFromString("6.50"), " Refrigerantes "))

		assert.Equal(t, "Soda Zero", p.Name())
		assert.Equal(t, "Refrigerantes", p.Category())
		assert.True(t, decimal.RequireFromString("6.5").Equal(p.Price()))
	})

	t.Run("invalid input leaves the product untouched", func(t *testing.T) {
		p, err := product.NewProduct(kernel.NewUUID(), "Soda", decimal.RequireFromString("5"), "Bebidas")
		require.NoError(t, err)

		err = p.Update("Juice", decimal.RequireFromString("-2"), "Sucos")

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, "Soda", p.Name())
		assert.Equal(t, "Bebidas", p.Category())
		assert.True(t, decimal.RequireFromString("5").Equal(p.Price()))
	})
}
