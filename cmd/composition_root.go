package cmd

import (
	"log/slog"

	httpin "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/hub"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	hub        *hub.Hub
	items      services.ItemFactory
	logger     *slog.Logger
}

// NewCompositionRoot wires the shared infrastructure. Committed units of work
// publish the events of the orders they wrote to the hub.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	h := hub.New(hub.Config{
		QueueSize:      cfg.HubQueueSize,
		ObserverBuffer: cfg.HubObserverBuffer,
		WriteTimeout:   cfg.HubWriteTimeout,
	}, logger)

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, h),
		hub:        h,
		items:      services.NewItemFactory(services.NewCategoryClassifier()),
		logger:     logger,
	}
}

// Hub is the notification hub shared by the command handlers and the kitchen routes.
func (c *CompositionRoot) Hub() *hub.Hub {
	return c.hub
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) catalogUoWFactory() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) productUoWFactory() commands.ProductUoWFactory {
	return FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.catalogUoWFactory(), c.items, c.cfg.BusinessLocation)
}

func (c *CompositionRoot) CreateAddItemsCommandHandler() commands.AddItemsCommandHandler {
	return commands.NewAddItemsCommandHandler(c.catalogUoWFactory(), c.items)
}

func (c *CompositionRoot) CreateUpdateItemCommandHandler() commands.UpdateItemCommandHandler {
	return commands.NewUpdateItemCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeleteItemCommandHandler() commands.DeleteItemCommandHandler {
	return commands.NewDeleteItemCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpsertShipmentCommandHandler() commands.UpsertShipmentCommandHandler {
	return commands.NewUpsertShipmentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeleteShipmentCommandHandler() commands.DeleteShipmentCommandHandler {
	return commands.NewDeleteShipmentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLastUpdatedQueryHandler() queries.GetLastUpdatedQueryHandler {
	return queries.NewGetLastUpdatedQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	return commands.NewCreateProductCommandHandler(c.productUoWFactory())
}

func (c *CompositionRoot) CreateUpdateProductCommandHandler() commands.UpdateProductCommandHandler {
	return commands.NewUpdateProductCommandHandler(c.productUoWFactory())
}

func (c *CompositionRoot) CreateDeleteProductCommandHandler() commands.DeleteProductCommandHandler {
	return commands.NewDeleteProductCommandHandler(c.productUoWFactory())
}

func (c *CompositionRoot) CreateGetProductQueryHandler() queries.GetProductQueryHandler {
	return queries.NewGetProductQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListProductsQueryHandler() queries.ListProductsQueryHandler {
	return queries.NewListProductsQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	createOrder := c.CreateCreateOrderCommandHandler()
	addItems := c.CreateAddItemsCommandHandler()
	updateItem := c.CreateUpdateItemCommandHandler()
	deleteItem := c.CreateDeleteItemCommandHandler()
	upsertShipment := c.CreateUpsertShipmentCommandHandler()
	deleteShipment := c.CreateDeleteShipmentCommandHandler()
	updateOrder := c.CreateUpdateOrderCommandHandler()
	deleteOrder := c.CreateDeleteOrderCommandHandler()
	createProduct := c.CreateCreateProductCommandHandler()
	updateProduct := c.CreateUpdateProductCommandHandler()
	deleteProduct := c.CreateDeleteProductCommandHandler()

	return httpin.NewServer(httpin.Handlers{
		CreateOrder:    &createOrder,
		AddItems:       &addItems,
		UpdateItem:     &updateItem,
		DeleteItem:     &deleteItem,
		UpsertShipment: &upsertShipment,
		DeleteShipment: &deleteShipment,
		UpdateOrder:    &updateOrder,
		DeleteOrder:    &deleteOrder,
		GetOrder:       c.CreateGetOrderQueryHandler(),
		ListOrders:     c.CreateListOrdersQueryHandler(),
		LastUpdated:    c.CreateGetLastUpdatedQueryHandler(),
		CreateProduct:  &createProduct,
		UpdateProduct:  &updateProduct,
		DeleteProduct:  &deleteProduct,
		GetProduct:     c.CreateGetProductQueryHandler(),
		ListProducts:   c.CreateListProductsQueryHandler(),
	}, c.hub, c.logger, httpin.WithKeepalive(c.cfg.StreamKeepalive))
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.hub, jobs.Schedules{
		Heartbeat: c.cfg.HubPingSchedule,
		Stats:     c.cfg.HubStatsSchedule,
	}, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}
