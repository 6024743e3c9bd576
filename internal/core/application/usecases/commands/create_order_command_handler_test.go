package commands_test

import (
	"errors"
	"testing"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/product"
	"restaurant/internal/core/domain/model/status"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCatalogFactory() (*MockUoW, *MockCatalogUoWFactory) {
	uow := new(MockUoW)
	factory := new(MockCatalogUoWFactory)
	factory.On("Create").Return(uow).Once()
	return uow, factory
}

func newCreateOrderHandler(factory commands.CatalogUoWFactory) commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		factory,
		services.NewItemFactory(services.NewCategoryClassifier()),
		time.UTC,
	)
}

func TestCreateOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("creates an order with catalog items and the next sequence", func(t *testing.T) {
		uow, factory := newCatalogFactory()
		orderRepo := new(MockOrderRepository)
		productRepo := new(MockProductRepository)

		soda, err := product.NewProduct(kernel.NewUUID(), "Soda", decimal.RequireFromString("5.00"), "Bebidas")
		require.NoError(t, err)
		pizza, err := product.NewProduct(kernel.NewUUID(), "Pizza", decimal.RequireFromString("40.00"), "Pizzas")
		require.NoError(t, err)
		sodaID := soda.ID()

		cmd, err := commands.NewCreateOrderCommand(nil, "7", "local", "", "", []commands.ItemLine{
			{ProductID: &sodaID, Quantity: decimal.NewFromInt(2)},
			{Name: "pizza", Quantity: decimal.NewFromInt(1)},
		})
		require.NoError(t, err)

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("ProductRepository").Return(productRepo).Once(),
			productRepo.On("Get", ctx, sodaID).Return(soda, nil).Once(),
			productRepo.On("FindByName", ctx, "pizza").Return(pizza, nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("NextSequence", ctx, mock.AnythingOfType("time.Time")).Return(5, nil).Once(),
			orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := newCreateOrderHandler(factory)
		o, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		require.NotNil(t, o)
		assert.Equal(t, 5, o.Sequence())
		assert.Equal(t, "7", o.Table())
		assert.Equal(t, status.Pending, o.Status())
		assert.True(t, decimal.RequireFromString("50.00").Equal(o.Total()))
		require.Len(t, o.Shipments(), 1)
		assert.Len(t, o.ItemsOf(o.Shipments()[0].ID()), 2)
		_, hasBeverage := o.CategoryStatus(order.CategoryBeverage)
		assert.True(t, hasBeverage)
		assert.Equal(t, []string{"order added", "order_item added", "order_item added"}, recordedKinds(o))

		uow.AssertExpectations(t)
		orderRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
	})

	t.Run("invalid command", func(t *testing.T) {
		factory := new(MockCatalogUoWFactory)

		handler := newCreateOrderHandler(factory)
		_, err := handler.Handle(ctx, commands.CreateOrderCommand{})

		assert.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
		factory.AssertNotCalled(t, "Create")
	})

	t.Run("begin error", func(t *testing.T) {
		uow, factory := newCatalogFactory()
		cmd, err := commands.NewCreateOrderCommand(nil, "", "", "", "", nil)
		require.NoError(t, err)

		beginErr := errors.New("connection refused")
		uow.On("Begin", ctx).Return(beginErr).Once()

		handler := newCreateOrderHandler(factory)
		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, beginErr)
		uow.AssertNotCalled(t, "Rollback", mock.Anything)
	})

	t.Run("unknown product without a name rolls back", func(t *testing.T) {
		uow, factory := newCatalogFactory()
		productRepo := new(MockProductRepository)
		missing := kernel.NewUUID()

		cmd, err := commands.NewCreateOrderCommand(nil, "", "", "", "", []commands.ItemLine{
			{ProductID: &missing, Quantity: decimal.NewFromInt(1)},
		})
		require.NoError(t, err)

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("ProductRepository").Return(productRepo).Once(),
			productRepo.On("Get", ctx, missing).Return(nil, errs.NewObjectNotFoundError("productID", missing)).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := newCreateOrderHandler(factory)
		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("free text item without price", func(t *testing.T) {
		uow, factory := newCatalogFactory()
		productRepo := new(MockProductRepository)

		cmd, err := commands.NewCreateOrderCommand(nil, "", "", "", "", []commands.ItemLine{
			{Name: "Special", Quantity: decimal.NewFromInt(1)},
		})
		require.NoError(t, err)

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("ProductRepository").Return(productRepo).Once(),
			productRepo.On("FindByName", ctx, "Special").Return(nil, errs.NewObjectNotFoundError("name", "Special")).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := newCreateOrderHandler(factory)
		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("commit error is returned", func(t *testing.T) {
		uow, factory := newCatalogFactory()
		orderRepo := new(MockOrderRepository)
		productRepo := new(MockProductRepository)
		price := decimal.RequireFromString("3.50")

		cmd, err := commands.NewCreateOrderCommand(nil, "", "", "", "", []commands.ItemLine{
			{Name: "Water", Quantity: decimal.NewFromInt(1), Price: &price},
		})
		require.NoError(t, err)

		commitErr := errors.New("serialization failure")
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("ProductRepository").Return(productRepo).Once(),
			productRepo.On("FindByName", ctx, "Water").Return(nil, errs.NewObjectNotFoundError("name", "Water")).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("NextSequence", ctx, mock.AnythingOfType("time.Time")).Return(1, nil).Once(),
			orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
			uow.On("Commit", ctx).Return(commitErr).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := newCreateOrderHandler(factory)
		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, commitErr)
		uow.AssertExpectations(t)
	})
}
