package order_test

import (
	"testing"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/status"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_UpsertShipment(t *testing.T) {
	t.Run("moving items into a ready shipment makes them and the order ready", func(t *testing.T) {
		i1 := newItem(t, "Pizza", "1", "40", order.CategoryFood)
		i2 := newItem(t, "Soda", "1", "6", order.CategoryBeverage)
		o := newOrder(t, i1, i2)
		ready := status.Ready

		shipment, err := o.UpsertShipment(nil, order.ShipmentPatch{
			ItemIDs: []kernel.UUID{i1.ID(), i2.ID()},
			Status:  &ready,
		}, testNow)

		require.NoError(t, err)
		assert.Equal(t, status.Ready, i1.Status())
		assert.Equal(t, status.Ready, i2.Status())
		assert.Equal(t, status.Ready, o.Status())
		assert.Equal(t, status.Ready, categoryStatus(t, o, order.CategoryFood))
		assert.Equal(t, status.Ready, categoryStatus(t, o, order.CategoryBeverage))
		assert.True(t, shipment.ID().IsEqual(*i1.ShipmentID()))
		assert.Len(t, o.Shipments(), 2)
		assert.Empty(t, o.ItemsOf(o.Shipments()[0].ID()), "ownership is exclusive")
		assert.Equal(t,
			[]string{"order_item moved", "order_item moved", "shipment added", "order updated"},
			eventKinds(o.PullEvents()))
	})

	t.Run("foreign item ids are ignored", func(t *testing.T) {
		i1 := newItem(t, "Pizza", "1", "40", order.CategoryFood)
		o := newOrder(t, i1)

		shipment, err := o.UpsertShipment(nil, order.ShipmentPatch{
			ItemIDs: []kernel.UUID{kernel.NewUUID(), i1.ID()},
		}, testNow)

		require.NoError(t, err)
		assert.Len(t, o.ItemsOf(shipment.ID()), 1)
	})

	t.Run("updates kind address and note of an existing shipment", func(t *testing.T) {
		o := newOrder(t, newItem(t, "Pizza", "1", "40", order.CategoryFood))
		existing := o.Shipments()[0]
		kind, address, note := order.KindDelivery, "Rua B, 20", "ring twice"

		updated, err := o.UpsertShipment(idPtr(existing.ID()), order.ShipmentPatch{
			Kind: &kind, Address: &address, Note: &note,
		}, testNow)

		require.NoError(t, err)
		assert.Same(t, existing, updated)
		assert.Equal(t, order.KindDelivery, updated.Kind())
		assert.Equal(t, "Rua B, 20", updated.Address())
		assert.Equal(t, "ring twice", updated.Note())
	})

	t.Run("delivering requires every owned item to be done", func(t *testing.T) {
		i1 := newItem(t, "Pizza", "1", "40", order.CategoryFood)
		i2 := newItem(t, "Pasta", "1", "30", order.CategoryFood)
		o := newOrder(t, i1, i2)
		setItemStatus(t, o, i1, status.Ready)
		o.PullEvents()
		delivered := status.Delivered

		_, err := o.UpsertShipment(idPtr(o.Shipments()[0].ID()), order.ShipmentPatch{Status: &delivered}, testNow)

		assert.ErrorIs(t, err, order.ErrIllegalStatusTransition)
		assert.Equal(t, status.Ready, i1.Status())
		assert.Equal(t, status.Pending, i2.Status())
		assert.Empty(t, o.PullEvents())
	})

	t.Run("paid is not a shipment status", func(t *testing.T) {
		o := newOrder(t)
		paid := status.Paid

		_, err := o.UpsertShipment(nil, order.ShipmentPatch{Status: &paid}, testNow)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Len(t, o.Shipments(), 1)
	})

	t.Run("unknown shipment is not found", func(t *testing.T) {
		o := newOrder(t)

		_, err := o.UpsertShipment(idPtr(kernel.NewUUID()), order.ShipmentPatch{}, testNow)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestOrder_RemoveShipment(t *testing.T) {
	i1 := newItem(t, "Pizza", "1", "40", order.CategoryFood)
	o := newOrder(t, i1)
	shipmentID := o.Shipments()[0].ID()

	require.NoError(t, o.RemoveShipment(shipmentID, testNow))

	assert.Empty(t, o.Shipments())
	assert.Nil(t, i1.ShipmentID())
	assert.Len(t, o.Items(), 1)

	assert.ErrorIs(t, o.RemoveShipment(shipmentID, testNow), errs.ErrObjectNotFound)
}

func idPtr(id kernel.UUID) *kernel.UUID {
	return &id
}
