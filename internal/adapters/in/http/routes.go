package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists the operations of api/openapi.yml plus the
// websocket endpoint, which the contract cannot describe.
type ServerInterface interface {
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	CreateOrder(ctx echo.Context) error
	GetLastUpdated(ctx echo.Context) error
	GetOrder(ctx echo.Context, orderID openapi_types.UUID) error
	UpdateOrder(ctx echo.Context, orderID openapi_types.UUID) error
	DeleteOrder(ctx echo.Context, orderID openapi_types.UUID) error
	AddItems(ctx echo.Context, orderID openapi_types.UUID) error
	UpdateItem(ctx echo.Context, orderID, itemID openapi_types.UUID) error
	DeleteItem(ctx echo.Context, orderID, itemID openapi_types.UUID) error
	CreateShipment(ctx echo.Context, orderID openapi_types.UUID) error
	UpdateShipment(ctx echo.Context, orderID, shipmentID openapi_types.UUID) error
	DeleteShipment(ctx echo.Context, orderID, shipmentID openapi_types.UUID) error
	ListProducts(ctx echo.Context) error
	CreateProduct(ctx echo.Context) error
	GetProduct(ctx echo.Context, productID openapi_types.UUID) error
	UpdateProduct(ctx echo.Context, productID openapi_types.UUID) error
	DeleteProduct(ctx echo.Context, productID openapi_types.UUID) error
	KitchenStream(ctx echo.Context) error
	KitchenStatus(ctx echo.Context) error
	KitchenSocket(ctx echo.Context) error
}

// ListOrdersParams are the query parameters of GET /api/v1/orders.
type ListOrdersParams struct {
	DateFrom *openapi_types.Date `form:"dateFrom,omitempty" json:"dateFrom,omitempty"`
	DateTo   *openapi_types.Date `form:"dateTo,omitempty" json:"dateTo,omitempty"`
}

// EchoRouter is the part of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// ServerInterfaceWrapper binds path and query parameters before calling the server.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// RegisterHandlers mounts every route of the contract on router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.GET("/api/v1/orders", w.ListOrders)
	router.POST("/api/v1/orders", w.CreateOrder)
	router.GET("/api/v1/orders/last_updated", w.GetLastUpdated)
	router.GET("/api/v1/orders/:orderId", w.GetOrder)
	router.PATCH("/api/v1/orders/:orderId", w.UpdateOrder)
	router.DELETE("/api/v1/orders/:orderId", w.DeleteOrder)
	router.POST("/api/v1/orders/:orderId/items", w.AddItems)
	router.PATCH("/api/v1/orders/:orderId/items/:itemId", w.UpdateItem)
	router.DELETE("/api/v1/orders/:orderId/items/:itemId", w.DeleteItem)
	router.POST("/api/v1/orders/:orderId/shipments", w.CreateShipment)
	router.PATCH("/api/v1/orders/:orderId/shipments/:shipmentId", w.UpdateShipment)
	router.DELETE("/api/v1/orders/:orderId/shipments/:shipmentId", w.DeleteShipment)
	router.GET("/api/v1/products", w.ListProducts)
	router.POST("/api/v1/products", w.CreateProduct)
	router.GET("/api/v1/products/:productId", w.GetProduct)
	router.PUT("/api/v1/products/:productId", w.UpdateProduct)
	router.DELETE("/api/v1/products/:productId", w.DeleteProduct)
	router.GET("/api/v1/kitchen/stream", w.KitchenStream)
	router.GET("/api/v1/kitchen/status", w.KitchenStatus)
	router.GET("/api/v1/kitchen/ws", w.KitchenSocket)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams

	if err := runtime.BindQueryParameter("form", true, false, "dateFrom", ctx.QueryParams(), &params.DateFrom); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter dateFrom: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "dateTo", ctx.QueryParams(), &params.DateTo); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter dateTo: %s", err))
	}

	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetLastUpdated(ctx echo.Context) error {
	return w.Handler.GetLastUpdated(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) UpdateOrder(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) DeleteOrder(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.DeleteOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) AddItems(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.AddItems(ctx, orderID)
}

func (w *ServerInterfaceWrapper) UpdateItem(ctx echo.Context) error {
	orderID, itemID, err := bindPathUUIDPair(ctx, "orderId", "itemId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateItem(ctx, orderID, itemID)
}

func (w *ServerInterfaceWrapper) DeleteItem(ctx echo.Context) error {
	orderID, itemID, err := bindPathUUIDPair(ctx, "orderId", "itemId")
	if err != nil {
		return err
	}
	return w.Handler.DeleteItem(ctx, orderID, itemID)
}

func (w *ServerInterfaceWrapper) CreateShipment(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.CreateShipment(ctx, orderID)
}

func (w *ServerInterfaceWrapper) UpdateShipment(ctx echo.Context) error {
	orderID, shipmentID, err := bindPathUUIDPair(ctx, "orderId", "shipmentId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateShipment(ctx, orderID, shipmentID)
}

func (w *ServerInterfaceWrapper) DeleteShipment(ctx echo.Context) error {
	orderID, shipmentID, err := bindPathUUIDPair(ctx, "orderId", "shipmentId")
	if err != nil {
		return err
	}
	return w.Handler.DeleteShipment(ctx, orderID, shipmentID)
}

func (w *ServerInterfaceWrapper) ListProducts(ctx echo.Context) error {
	return w.Handler.ListProducts(ctx)
}

func (w *ServerInterfaceWrapper) CreateProduct(ctx echo.Context) error {
	return w.Handler.CreateProduct(ctx)
}

func (w *ServerInterfaceWrapper) GetProduct(ctx echo.Context) error {
	productID, err := bindPathUUID(ctx, "productId")
	if err != nil {
		return err
	}
	return w.Handler.GetProduct(ctx, productID)
}

func (w *ServerInterfaceWrapper) UpdateProduct(ctx echo.Context) error {
	productID, err := bindPathUUID(ctx, "productId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateProduct(ctx, productID)
}

func (w *ServerInterfaceWrapper) DeleteProduct(ctx echo.Context) error {
	productID, err := bindPathUUID(ctx, "productId")
	if err != nil {
		return err
	}
	return w.Handler.DeleteProduct(ctx, productID)
}

func (w *ServerInterfaceWrapper) KitchenStream(ctx echo.Context) error {
	return w.Handler.KitchenStream(ctx)
}

func (w *ServerInterfaceWrapper) KitchenStatus(ctx echo.Context) error {
	return w.Handler.KitchenStatus(ctx)
}

func (w *ServerInterfaceWrapper) KitchenSocket(ctx echo.Context) error {
	return w.Handler.KitchenSocket(ctx)
}

func bindPathUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func bindPathUUIDPair(ctx echo.Context, first, second string) (openapi_types.UUID, openapi_types.UUID, error) {
	a, err := bindPathUUID(ctx, first)
	if err != nil {
		return a, openapi_types.UUID{}, err
	}
	b, err := bindPathUUID(ctx, second)
	return a, b, err
}
