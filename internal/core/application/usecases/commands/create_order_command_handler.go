package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
)

// CreateOrderCommandHandler opens orders.
//
// The daily sequence number is computed inside the same transaction that
// inserts the order, so two orders created at the same moment never share a
// number.
type CreateOrderCommandHandler struct {
	uowFactory CatalogUoWFactory
	items      services.ItemFactory
	location   *time.Location
}

// NewCreateOrderCommandHandler creates the handler. location is the business
// timezone that decides which calendar day an order belongs to.
func NewCreateOrderCommandHandler(
	uowFactory CatalogUoWFactory,
	items services.ItemFactory,
	location *time.Location,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		items:      items,
		location:   location,
	}
}

// Handle creates the order and returns its snapshot.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now()
	items, err := buildItems(ctx, uow.ProductRepository(), h.items, cmd.Items(), now)
	if err != nil {
		return nil, err
	}

	shipment, err := order.NewShipment(kernel.NewUUID(), cmd.ShipmentKind(), cmd.Address(), "", now)
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	businessDate := kernel.BusinessDate(now, h.location)
	sequence, err := orderRepo.NextSequence(ctx, businessDate)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(order.Draft{
		ID:           kernel.NewUUID(),
		Sequence:     sequence,
		BusinessDate: businessDate,
		CustomerID:   cmd.CustomerID(),
		Table:        cmd.Table(),
		Note:         cmd.Note(),
		Shipment:     shipment,
		Items:        items,
	}, now)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}
