package http_test

import (
	"encoding/json"
	"net/http"
	"testing"

	httpadapter "restaurant/internal/adapters/in/http"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/product"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProduct(t *testing.T, name, price, category string) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), name, decimal.RequireFromString(price), category)
	require.NoError(t, err)
	return p
}

func TestCreateProduct(t *testing.T) {
	f := newFixture(t)
	created := newProduct(t, "Guaraná", "6.5", "Bebidas")

	f.createProduct.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateProductCommand) bool {
		return cmd.Name() == "Guaraná" &&
			cmd.Price().Equal(decimal.RequireFromString("6.5")) &&
			cmd.Category() == "Bebidas"
	})).Return(created, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/products", `{"name": "Guaraná", "price": "6,50", "category": "Bebidas"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var body httpadapter.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.ID.IsEqual(created.ID()))
	assert.Equal(t, order.CategoryBeverage, body.Kitchen)
	assert.True(t, body.Price.Equal(decimal.RequireFromString("6.5")))
	f.createProduct.AssertExpectations(t)
}

func TestCreateProduct_RejectedByContract(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/products", `{"price": 10}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.createProduct.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestCreateProduct_InvalidPrice(t *testing.T) {
	tests := map[string]string{
		"malformed": `{"name": "Soda", "price": "five"}`,
		"negative":  `{"name": "Soda", "price": -1}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(http.MethodPost, "/api/v1/products", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeError(t, rec).Message, "price")
			f.createProduct.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	f := newFixture(t)
	updated := newProduct(t, "Calabresa", "45", "Pizzas")

	f.updateProduct.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateProductCommand) bool {
		return cmd.ProductID().IsEqual(updated.ID()) && cmd.Price().Equal(decimal.NewFromInt(45))
	})).Return(updated, nil).Once()

	rec := f.do(http.MethodPut, "/api/v1/products/"+updated.ID().String(), `{"name": "Calabresa", "price": 45, "category": "Pizzas"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body httpadapter.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Calabresa", body.Name)
	assert.Equal(t, order.CategoryFood, body.Kitchen)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	f := newFixture(t)
	productID := kernel.NewUUID()
	f.updateProduct.On("Handle", mock.Anything, mock.Anything).
		Return(nil, errs.NewObjectNotFoundError("productID", productID)).Once()

	rec := f.do(http.MethodPut, "/api/v1/products/"+productID.String(), `{"name": "Soda", "price": 5}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture(t)
	productID := kernel.NewUUID()
	f.deleteProduct.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DeleteProductCommand) bool {
		return cmd.ProductID().IsEqual(productID)
	})).Return(nil).Once()

	rec := f.do(http.MethodDelete, "/api/v1/products/"+productID.String(), "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.deleteProduct.AssertExpectations(t)
}

func TestGetProduct(t *testing.T) {
	f := newFixture(t)
	view := queries.NewProductView(newProduct(t, "Margherita", "39.90", "Pizzas"))
	f.getProduct.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetProductQuery) bool {
		return q.ProductID().IsEqual(view.ID)
	})).Return(&view, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/products/"+view.ID.String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Margherita", body["name"])
	assert.Equal(t, "39.9", body["price"])
	assert.Equal(t, "food", body["kitchen"])
}

func TestListProducts(t *testing.T) {
	f := newFixture(t)
	list := []queries.ProductView{
		queries.NewProductView(newProduct(t, "Guaraná", "6.5", "Bebidas")),
		queries.NewProductView(newProduct(t, "Margherita", "39.90", "Pizzas")),
	}
	f.listProducts.On("Handle", mock.Anything, mock.Anything).Return(list, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/products", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []httpadapter.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "Guaraná", body[0].Name)
	assert.Equal(t, "Margherita", body[1].Name)
}
