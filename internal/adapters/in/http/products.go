package http

import (
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/product"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// ListProducts handles GET /api/v1/products.
func (s *Server) ListProducts(ctx echo.Context) error {
	list, err := s.handlers.ListProducts.Handle(ctx.Request().Context(), queries.NewListProductsQuery())
	if err != nil {
		return err
	}

	resp := make([]Product, 0, len(list))
	for _, v := range list {
		resp = append(resp, Product(v))
	}
	return ctx.JSON(http.StatusOK, resp)
}

// CreateProduct handles POST /api/v1/products.
func (s *Server) CreateProduct(ctx echo.Context) error {
	var req ProductInput
	if err := ctx.Bind(&req); err != nil {
		return invalidBody(err)
	}

	price, err := req.price()
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateProductCommand(req.Name, price, req.Category)
	if err != nil {
		return err
	}

	return respondWithProduct(ctx, http.StatusCreated)(s.handlers.CreateProduct.Handle(ctx.Request().Context(), cmd))
}

// GetProduct handles GET /api/v1/products/{productId}.
func (s *Server) GetProduct(ctx echo.Context, productID openapi_types.UUID) error {
	id, err := toKernelUUID("productId", productID)
	if err != nil {
		return err
	}

	query, err := queries.NewGetProductQuery(id)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetProduct.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, Product(*view))
}

// UpdateProduct handles PUT /api/v1/products/{productId}.
func (s *Server) UpdateProduct(ctx echo.Context, productID openapi_types.UUID) error {
	var req ProductInput
	if err := ctx.Bind(&req); err != nil {
		return invalidBody(err)
	}

	id, err := toKernelUUID("productId", productID)
	if err != nil {
		return err
	}

	price, err := req.price()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateProductCommand(id, req.Name, price, req.Category)
	if err != nil {
		return err
	}

	return respondWithProduct(ctx, http.StatusOK)(s.handlers.UpdateProduct.Handle(ctx.Request().Context(), cmd))
}

// DeleteProduct handles DELETE /api/v1/products/{productId}.
func (s *Server) DeleteProduct(ctx echo.Context, productID openapi_types.UUID) error {
	id, err := toKernelUUID("productId", productID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteProductCommand(id)
	if err != nil {
		return err
	}

	if err := s.handlers.DeleteProduct.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

func respondWithProduct(ctx echo.Context, code int) func(*product.Product, error) error {
	return func(p *product.Product, err error) error {
		if err != nil {
			return err
		}
		return ctx.JSON(code, Product(queries.NewProductView(p)))
	}
}

func (in ProductInput) price() (decimal.Decimal, error) {
	if in.Price == nil {
		return decimal.Decimal{}, errs.NewValueIsRequiredError("price")
	}
	price, err := in.Price.decimal()
	if err != nil {
		return decimal.Decimal{}, errs.NewValueIsInvalidErrorWithCause("price", err)
	}
	return price, nil
}
