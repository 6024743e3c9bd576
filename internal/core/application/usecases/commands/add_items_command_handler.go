package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
)

// AddItemsCommandHandler appends items to an order that is not finalized.
type AddItemsCommandHandler struct {
	uowFactory CatalogUoWFactory
	items      services.ItemFactory
}

func NewAddItemsCommandHandler(
	uowFactory CatalogUoWFactory,
	items services.ItemFactory,
) AddItemsCommandHandler {
	return AddItemsCommandHandler{
		uowFactory: uowFactory,
		items:      items,
	}
}

// Handle returns the updated order. A finalized order is rejected before the
// catalog is consulted.
func (h *AddItemsCommandHandler) Handle(ctx context.Context, cmd AddItemsCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = o.EnsureMutable(); err != nil {
		return nil, err
	}

	now := time.Now()
	items, err := buildItems(ctx, uow.ProductRepository(), h.items, cmd.Items(), now)
	if err != nil {
		return nil, err
	}

	if err = o.AddItems(items, now); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}
