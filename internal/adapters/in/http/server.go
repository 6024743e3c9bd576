package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"restaurant/internal/adapters/out/hub"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/product"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const defaultKeepalive = 30 * time.Second

// Use case ports the server calls. The command and query handlers satisfy them.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	AddItemsHandler interface {
		Handle(ctx context.Context, cmd commands.AddItemsCommand) (*order.Order, error)
	}
	UpdateItemHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateItemCommand) (*order.Order, error)
	}
	DeleteItemHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteItemCommand) (*order.Order, error)
	}
	UpsertShipmentHandler interface {
		Handle(ctx context.Context, cmd commands.UpsertShipmentCommand) (*order.Order, error)
	}
	DeleteShipmentHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteShipmentCommand) (*order.Order, error)
	}
	UpdateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
	}
	DeleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (*queries.OrderView, error)
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderSummary, error)
	}
	LastUpdatedHandler interface {
		Handle(ctx context.Context, query queries.GetLastUpdatedQuery) (time.Time, error)
	}

	CreateProductHandler interface {
		Handle(ctx context.Context, cmd commands.CreateProductCommand) (*product.Product, error)
	}
	UpdateProductHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateProductCommand) (*product.Product, error)
	}
	DeleteProductHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteProductCommand) error
	}
	GetProductHandler interface {
		Handle(ctx context.Context, query queries.GetProductQuery) (*queries.ProductView, error)
	}
	ListProductsHandler interface {
		Handle(ctx context.Context, query queries.ListProductsQuery) ([]queries.ProductView, error)
	}

	// Notifier is the observer side of the notification hub.
	Notifier interface {
		Subscribe() (string, <-chan order.Event)
		Unsubscribe(id string)
		Attach(conn hub.Conn) string
		Detach(id string)
		Stats() hub.Stats
	}
)

// Handlers groups the use cases behind the order and catalog routes.
type Handlers struct {
	CreateOrder    CreateOrderHandler
	AddItems       AddItemsHandler
	UpdateItem     UpdateItemHandler
	DeleteItem     DeleteItemHandler
	UpsertShipment UpsertShipmentHandler
	DeleteShipment DeleteShipmentHandler
	UpdateOrder    UpdateOrderHandler
	DeleteOrder    DeleteOrderHandler
	GetOrder       GetOrderHandler
	ListOrders     ListOrdersHandler
	LastUpdated    LastUpdatedHandler

	CreateProduct CreateProductHandler
	UpdateProduct UpdateProductHandler
	DeleteProduct DeleteProductHandler
	GetProduct    GetProductHandler
	ListProducts  ListProductsHandler
}

// Server implements ServerInterface. Domain errors are returned as is and
// turned into responses by the error handler installed in NewRouter.
type Server struct {
	handlers  Handlers
	notifier  Notifier
	upgrader  websocket.Upgrader
	keepalive time.Duration
	logger    *slog.Logger
}

// Option tweaks a Server.
type Option func(*Server)

// WithKeepalive sets how often an idle kitchen stream gets a comment line.
func WithKeepalive(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.keepalive = d
		}
	}
}

func NewServer(handlers Handlers, notifier Notifier, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		handlers: handlers,
		notifier: notifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		keepalive: defaultKeepalive,
		logger:    logger.With("component", "http_server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	query, err := queries.NewListOrdersQuery(dateOf(params.DateFrom), dateOf(params.DateTo))
	if err != nil {
		return err
	}

	list, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toOrderSummaries(list))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrder
	if err := ctx.Bind(&req); err != nil {
		return invalidBody(err)
	}

	lines, err := itemLines(req.Items)
	if err != nil {
		return err
	}

	var customerID *kernel.UUID
	if req.CustomerID != nil {
		id, err := toKernelUUID("customerId", *req.CustomerID)
		if err != nil {
			return err
		}
		customerID = &id
	}

	cmd, err := commands.NewCreateOrderCommand(customerID, req.Table, req.ShipmentKind, req.Address, req.Note, lines)
	if err != nil {
		return err
	}

	o, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, toOrder(queries.NewOrderView(o)))
}

// GetLastUpdated handles GET /api/v1/orders/last_updated.
func (s *Server) GetLastUpdated(ctx echo.Context) error {
	last, err := s.handlers.LastUpdated.Handle(ctx.Request().Context(), queries.NewGetLastUpdatedQuery())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, LastUpdated{LastUpdated: last.UTC()})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := toKernelUUID("orderId", orderID)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toOrder(*view))
}

// UpdateOrder handles PATCH /api/v1/orders/{orderId}.
func (s *Server) UpdateOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	var req OrderPatch
	if err := ctx.Bind(&req); err != nil {
		return invalidBody(err)
	}

	id, err := toKernelUUID("orderId", orderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderCommand(id, req.Status, req.Surcharge)
	if err != nil {
		return err
	}

	return respondWith(ctx, http.StatusOK)(s.handlers.UpdateOrder.Handle(ctx.Request().Context(), cmd))
}

// DeleteOrder handles DELETE /api/v1/orders/{orderId}.
func (s *Server) DeleteOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := toKernelUUID("orderId", orderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return err
	}

	if err := s.handlers.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddItems handles POST /api/v1/orders/{orderId}/items.
func (s *Server) AddItems(ctx echo.Context, orderID openapi_types.UUID) error {
	var req NewItems
	if err := ctx.Bind(&req); err != nil {
		return invalidBody(err)
	}

	id, err := toKernelUUID("orderId", orderID)
	if err != nil {
		return err
	}

	lines, err := itemLines(req.Items)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAddItemsCommand(id, lines)
	if err != nil {
		return err
	}

	return respondWith(ctx, http.StatusOK)(s.handlers.AddItems.Handle(ctx.Request().Context(), cmd))
}

// UpdateItem handles PATCH /api/v1/orders/{orderId}/items/{itemId}. Fields
// that could not be applied are listed in skippedFields.
func (s *Server) UpdateItem(ctx echo.Context, orderID, itemID openapi_types.UUID) error {
	var req ItemPatch
	if err := ctx.Bind(&req); err != nil {
		return invalidBody(err)
	}

	oid, err := toKernelUUID("orderId", orderID)
	if err != nil {
		return err
	}
	iid, err := toKernelUUID("itemId", itemID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateItemCommand(oid, iid, req.Quantity.Text(), req.Price.Text(), req.Status, req.Note)
	if err != nil {
		return err
	}

	o, err := s.handlers.UpdateItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	resp := toOrder(queries.NewOrderView(o))
	resp.SkippedFields = cmd.SkippedFields()
	return ctx.JSON(http.StatusOK, resp)
}

// DeleteItem handles DELETE /api/v1/orders/{orderId}/items/{itemId}.
func (s *Server) DeleteItem(ctx echo.Context, orderID, itemID openapi_types.UUID) error {
	oid, err := toKernelUUID("orderId", orderID)
	if err != nil {
		return err
	}
	iid, err := toKernelUUID("itemId", itemID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteItemCommand(oid, iid)
	if err != nil {
		return err
	}

	return respondWith(ctx, http.StatusOK)(s.handlers.DeleteItem.Handle(ctx.Request().Context(), cmd))
}

// CreateShipment handles POST /api/v1/orders/{orderId}/shipments.
func (s *Server) CreateShipment(ctx echo.Context, orderID openapi_types.UUID) error {
	var req ShipmentInput
	if err := ctx.Bind(&req); err != nil {
		return invalidBody(err)
	}

	id, err := toKernelUUID("orderId", orderID)
	if err != nil {
		return err
	}

	in, err := req.command()
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateShipmentCommand(id, in)
	if err != nil {
		return err
	}

	return respondWith(ctx, http.StatusCreated)(s.handlers.UpsertShipment.Handle(ctx.Request().Context(), cmd))
}

// UpdateShipment handles PATCH /api/v1/orders/{orderId}/shipments/{shipmentId}.
func (s *Server) UpdateShipment(ctx echo.Context, orderID, shipmentID openapi_types.UUID) error {
	var req ShipmentInput
	if err := ctx.Bind(&req); err != nil {
		return invalidBody(err)
	}

	oid, err := toKernelUUID("orderId", orderID)
	if err != nil {
		return err
	}
	sid, err := toKernelUUID("shipmentId", shipmentID)
	if err != nil {
		return err
	}

	in, err := req.command()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateShipmentCommand(oid, sid, in)
	if err != nil {
		return err
	}

	return respondWith(ctx, http.StatusOK)(s.handlers.UpsertShipment.Handle(ctx.Request().Context(), cmd))
}

// DeleteShipment handles DELETE /api/v1/orders/{orderId}/shipments/{shipmentId}.
func (s *Server) DeleteShipment(ctx echo.Context, orderID, shipmentID openapi_types.UUID) error {
	oid, err := toKernelUUID("orderId", orderID)
	if err != nil {
		return err
	}
	sid, err := toKernelUUID("shipmentId", shipmentID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteShipmentCommand(oid, sid)
	if err != nil {
		return err
	}

	return respondWith(ctx, http.StatusOK)(s.handlers.DeleteShipment.Handle(ctx.Request().Context(), cmd))
}

// KitchenStatus handles GET /api/v1/kitchen/status.
func (s *Server) KitchenStatus(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, s.notifier.Stats())
}

// respondWith renders the snapshot a command handler returned.
func respondWith(ctx echo.Context, code int) func(*order.Order, error) error {
	return func(o *order.Order, err error) error {
		if err != nil {
			return err
		}
		return ctx.JSON(code, toOrder(queries.NewOrderView(o)))
	}
}

func dateOf(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
