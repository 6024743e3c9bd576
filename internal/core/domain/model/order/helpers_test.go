package order_test

import (
	"testing"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/status"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 10, 19, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newItem(t *testing.T, name, qty, price string, category order.CategoryKey) *order.Item {
	t.Helper()
	it, err := order.NewItem(kernel.NewUUID(), order.ItemInput{
		Name:     name,
		Quantity: dec(qty),
		Price:    dec(price),
		Category: category,
	}, testNow)
	require.NoError(t, err)
	return it
}

func newOrder(t *testing.T, items ...*order.Item) *order.Order {
	t.Helper()
	shipment, err := order.NewShipment(kernel.NewUUID(), order.KindOnPremises, "", "", testNow)
	require.NoError(t, err)

	o, err := order.NewOrder(order.Draft{
		ID:           kernel.NewUUID(),
		Sequence:     1,
		BusinessDate: kernel.BusinessDate(testNow, time.UTC),
		Table:        "7",
		Shipment:     shipment,
		Items:        items,
	}, testNow)
	require.NoError(t, err)
	o.PullEvents()
	return o
}

func setItemStatus(t *testing.T, o *order.Order, item *order.Item, st status.Status) {
	t.Helper()
	require.NoError(t, o.UpdateItem(item.ID(), order.ItemPatch{Status: &st}, testNow))
}

func categoryStatus(t *testing.T, o *order.Order, key order.CategoryKey) status.Status {
	t.Helper()
	record, ok := o.CategoryStatus(key)
	require.True(t, ok, "expected a %s category record", key)
	return record.Status()
}

func eventKinds(events []order.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, string(e.Type)+" "+string(e.Action))
	}
	return out
}
