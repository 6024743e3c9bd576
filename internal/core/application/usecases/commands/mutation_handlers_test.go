package commands_test

import (
	"errors"
	"testing"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/status"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// expectMutation sets up the happy path of a single-order unit of work.
func expectMutation(t *testing.T, uow *MockUoW, repo *MockOrderRepository, o *order.Order) {
	t.Helper()
	ctx := t.Context()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
}

// expectRejectedMutation sets up a unit of work whose mutation fails after the load.
func expectRejectedMutation(t *testing.T, uow *MockUoW, repo *MockOrderRepository, o *order.Order) {
	t.Helper()
	ctx := t.Context()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
}

func TestUpdateItemCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("marks the only item ready and the order follows", func(t *testing.T) {
		item := newStoredItem(t, "Pizza", "food", "40")
		o := newStoredOrder(t, item)
		uow, factory := newOrderUoWFactory()
		repo := new(MockOrderRepository)
		expectMutation(t, uow, repo, o)

		cmd, err := commands.NewUpdateItemCommand(o.ID(), item.ID(), nil, nil, strPtr("pronto"), nil)
		require.NoError(t, err)

		handler := commands.NewUpdateItemCommandHandler(factory)
		got, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Contains(t, recordedKinds(got), "order_item updated")
		assert.Equal(t, status.Ready, got.Status())
		updated, err := got.Item(item.ID())
		require.NoError(t, err)
		assert.Equal(t, status.Ready, updated.Status())
		uow.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("delivered before ready is rejected", func(t *testing.T) {
		item := newStoredItem(t, "Pizza", "food", "40")
		o := newStoredOrder(t, item)
		uow, factory := newOrderUoWFactory()
		repo := new(MockOrderRepository)
		expectRejectedMutation(t, uow, repo, o)

		cmd, err := commands.NewUpdateItemCommand(o.ID(), item.ID(), nil, nil, strPtr("delivered"), nil)
		require.NoError(t, err)

		handler := commands.NewUpdateItemCommandHandler(factory)
		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, order.ErrIllegalStatusTransition)
		assert.ErrorIs(t, err, errs.ErrConflict)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("unknown item", func(t *testing.T) {
		o := newStoredOrder(t, newStoredItem(t, "Pizza", "food", "40"))
		uow, factory := newOrderUoWFactory()
		repo := new(MockOrderRepository)
		expectRejectedMutation(t, uow, repo, o)

		cmd, err := commands.NewUpdateItemCommand(o.ID(), kernel.NewUUID(), strPtr("2"), nil, nil, nil)
		require.NoError(t, err)

		handler := commands.NewUpdateItemCommandHandler(factory)
		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("unknown order", func(t *testing.T) {
		uow, factory := newOrderUoWFactory()
		repo := new(MockOrderRepository)
		orderID := kernel.NewUUID()
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("GetForUpdate", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("orderID", orderID)).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		cmd, err := commands.NewUpdateItemCommand(orderID, kernel.NewUUID(), strPtr("2"), nil, nil, nil)
		require.NoError(t, err)

		handler := commands.NewUpdateItemCommandHandler(factory)
		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		uow.AssertExpectations(t)
	})
}

func TestDeleteItemCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	pizza := newStoredItem(t, "Pizza", "food", "40")
	soda := newStoredItem(t, "Soda", "beverage", "5")
	o := newStoredOrder(t, pizza, soda)
	uow, factory := newOrderUoWFactory()
	repo := new(MockOrderRepository)
	expectMutation(t, uow, repo, o)

	cmd, err := commands.NewDeleteItemCommand(o.ID(), soda.ID())
	require.NoError(t, err)

	handler := commands.NewDeleteItemCommandHandler(factory)
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Contains(t, recordedKinds(got), "order_item deleted")
	assert.Len(t, got.Items(), 1)
	assert.True(t, decimal.NewFromInt(40).Equal(got.Total()))
	_, hasBeverage := got.CategoryStatus(order.CategoryBeverage)
	assert.False(t, hasBeverage)
}

func TestUpsertShipmentCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("moves items into a new delivery shipment", func(t *testing.T) {
		pizza := newStoredItem(t, "Pizza", "food", "40")
		soda := newStoredItem(t, "Soda", "beverage", "5")
		o := newStoredOrder(t, pizza, soda)
		uow, factory := newOrderUoWFactory()
		repo := new(MockOrderRepository)
		expectMutation(t, uow, repo, o)

		cmd, err := commands.NewCreateShipmentCommand(o.ID(), commands.ShipmentInput{
			ItemIDs: []kernel.UUID{soda.ID(), kernel.NewUUID()},
			Kind:    strPtr("entrega"),
			Address: strPtr("Rua B, 10"),
		})
		require.NoError(t, err)

		handler := commands.NewUpsertShipmentCommandHandler(factory)
		got, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Contains(t, recordedKinds(got), "shipment added")
		require.Len(t, got.Shipments(), 2)
		moved, err := got.Item(soda.ID())
		require.NoError(t, err)
		require.NotNil(t, moved.ShipmentID())
		shipment, err := got.Shipment(*moved.ShipmentID())
		require.NoError(t, err)
		assert.Equal(t, order.KindDelivery, shipment.Kind())
		assert.Equal(t, "Rua B, 10", shipment.Address())
	})

	t.Run("status propagates to items and completes the order", func(t *testing.T) {
		pizza := newStoredItem(t, "Pizza", "food", "40")
		o := newStoredOrder(t, pizza)
		shipmentID := o.Shipments()[0].ID()
		uow, factory := newOrderUoWFactory()
		repo := new(MockOrderRepository)
		expectMutation(t, uow, repo, o)

		cmd, err := commands.NewUpdateShipmentCommand(o.ID(), shipmentID, commands.ShipmentInput{Status: strPtr("ready")})
		require.NoError(t, err)

		handler := commands.NewUpsertShipmentCommandHandler(factory)
		got, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Contains(t, recordedKinds(got), "shipment updated")
		assert.Equal(t, status.Ready, got.Status())
		item, err := got.Item(pizza.ID())
		require.NoError(t, err)
		assert.Equal(t, status.Ready, item.Status())
	})

	t.Run("finalized order is rejected", func(t *testing.T) {
		o := newStoredOrder(t, newStoredItem(t, "Pizza", "food", "40"))
		require.NoError(t, o.ChangeStatus(status.Paid, o.CreatedAt()))
		o.PullEvents()
		uow, factory := newOrderUoWFactory()
		repo := new(MockOrderRepository)
		expectRejectedMutation(t, uow, repo, o)

		cmd, err := commands.NewCreateShipmentCommand(o.ID(), commands.ShipmentInput{})
		require.NoError(t, err)

		handler := commands.NewUpsertShipmentCommandHandler(factory)
		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, order.ErrOrderIsFinalized)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}

func TestDeleteShipmentCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	pizza := newStoredItem(t, "Pizza", "food", "40")
	o := newStoredOrder(t, pizza)
	shipmentID := o.Shipments()[0].ID()
	uow, factory := newOrderUoWFactory()
	repo := new(MockOrderRepository)
	expectMutation(t, uow, repo, o)

	cmd, err := commands.NewDeleteShipmentCommand(o.ID(), shipmentID)
	require.NoError(t, err)

	handler := commands.NewDeleteShipmentCommandHandler(factory)
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Contains(t, recordedKinds(got), "shipment deleted")
	assert.Empty(t, got.Shipments())
	item, err := got.Item(pizza.ID())
	require.NoError(t, err)
	assert.Nil(t, item.ShipmentID())
}

func TestUpdateOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("surcharge then payment freezes the total", func(t *testing.T) {
		o := newStoredOrder(t, newStoredItem(t, "Pizza", "food", "40"))
		uow, factory := newOrderUoWFactory()
		repo := new(MockOrderRepository)
		expectMutation(t, uow, repo, o)

		on := true
		cmd, err := commands.NewUpdateOrderCommand(o.ID(), strPtr("pago"), &on)
		require.NoError(t, err)

		handler := commands.NewUpdateOrderCommandHandler(factory)
		got, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Contains(t, recordedKinds(got), "order updated")
		assert.Equal(t, status.Paid, got.Status())
		assert.True(t, got.Surcharge())
		assert.True(t, decimal.NewFromInt(44).Equal(got.Total()))
	})

	t.Run("a paid order cannot go back to pending", func(t *testing.T) {
		o := newStoredOrder(t, newStoredItem(t, "Pizza", "food", "40"))
		require.NoError(t, o.ChangeStatus(status.Paid, o.CreatedAt()))
		o.PullEvents()
		uow, factory := newOrderUoWFactory()
		repo := new(MockOrderRepository)
		expectRejectedMutation(t, uow, repo, o)

		cmd, err := commands.NewUpdateOrderCommand(o.ID(), strPtr("pending"), nil)
		require.NoError(t, err)

		handler := commands.NewUpdateOrderCommandHandler(factory)
		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, order.ErrFinalizedStatusIsTerminal)
		assert.Equal(t, status.Paid, o.Status())
	})

	t.Run("update error rolls back without publishing", func(t *testing.T) {
		o := newStoredOrder(t, newStoredItem(t, "Pizza", "food", "40"))
		uow, factory := newOrderUoWFactory()
		repo := new(MockOrderRepository)
		updateErr := errors.New("disk full")
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
			repo.On("Update", ctx, o).Return(updateErr).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		cmd, err := commands.NewUpdateOrderCommand(o.ID(), strPtr("canceled"), nil)
		require.NoError(t, err)

		handler := commands.NewUpdateOrderCommandHandler(factory)
		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, updateErr)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}

func TestAddItemsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("adds unassigned items", func(t *testing.T) {
		o := newStoredOrder(t, newStoredItem(t, "Pizza", "food", "40"))
		uow, factory := newCatalogFactory()
		orderRepo := new(MockOrderRepository)
		productRepo := new(MockProductRepository)
		price := decimal.RequireFromString("6.5")

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
			uow.On("ProductRepository").Return(productRepo).Once(),
			productRepo.On("FindByName", ctx, "Juice").Return(nil, errs.NewObjectNotFoundError("name", "Juice")).Once(),
			orderRepo.On("Update", ctx, o).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		cmd, err := commands.NewAddItemsCommand(o.ID(), []commands.ItemLine{
			{Name: "Juice", Quantity: decimal.NewFromInt(2), Price: &price},
		})
		require.NoError(t, err)

		handler := commands.NewAddItemsCommandHandler(factory, services.NewItemFactory(services.NewCategoryClassifier()))
		got, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Contains(t, recordedKinds(got), "order_item added")
		require.Len(t, got.Items(), 2)
		assert.True(t, decimal.NewFromInt(53).Equal(got.Total()))
	})

	t.Run("finalized order is rejected before the catalog is read", func(t *testing.T) {
		o := newStoredOrder(t, newStoredItem(t, "Pizza", "food", "40"))
		require.NoError(t, o.ChangeStatus(status.Delivered, o.CreatedAt()))
		o.PullEvents()
		uow, factory := newCatalogFactory()
		orderRepo := new(MockOrderRepository)

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		cmd, err := commands.NewAddItemsCommand(o.ID(), []commands.ItemLine{{Name: "Juice"}})
		require.NoError(t, err)

		handler := commands.NewAddItemsCommandHandler(factory, services.NewItemFactory(services.NewCategoryClassifier()))
		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, order.ErrOrderIsFinalized)
		uow.AssertNotCalled(t, "ProductRepository")
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}

func TestDeleteOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	o := newStoredOrder(t, newStoredItem(t, "Pizza", "food", "40"))
	require.NoError(t, o.ChangeStatus(status.Paid, o.CreatedAt()))
	o.PullEvents()

	uow, factory := newOrderUoWFactory()
	repo := new(MockOrderRepository)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Delete", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewDeleteOrderCommand(o.ID())
	require.NoError(t, err)

	handler := commands.NewDeleteOrderCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, []string{"order deleted"}, recordedKinds(o))

	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
}
