package order

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/status"

	"github.com/shopspring/decimal"
)

var surchargeRate = decimal.RequireFromString("1.1")

// DeriveCategoryStatus aggregates the statuses of the items of one category.
//
//   - Ready when every item is ready or delivered
//   - Preparing when some item is preparing, ready or delivered, but not all are done
//   - Pending otherwise
//
// The boolean is false for an empty set: such a category has no record.
func DeriveCategoryStatus(items []*Item) (status.Status, bool) {
	if len(items) == 0 {
		return status.Unknown, false
	}

	done, started := 0, 0
	for _, it := range items {
		if it.status.IsDone() {
			done++
		}
		if it.status.IsDone() || it.status == status.Preparing {
			started++
		}
	}

	switch {
	case done == len(items):
		return status.Ready, true
	case started > 0:
		return status.Preparing, true
	default:
		return status.Pending, true
	}
}

// DeriveOrderStatus aggregates the statuses of all items of an order.
//
//   - Ready when at least one item exists and every item is ready or delivered
//   - Preparing when at least one item is ready or delivered but not all are
//   - Pending otherwise, including an order without items
func DeriveOrderStatus(items []*Item) status.Status {
	done := 0
	for _, it := range items {
		if it.status.IsDone() {
			done++
		}
	}

	switch {
	case len(items) > 0 && done == len(items):
		return status.Ready
	case done > 0:
		return status.Preparing
	default:
		return status.Pending
	}
}

// isExternallyDriven reports whether the order status was set by an operator
// and must survive item-driven recomputation.
func isExternallyDriven(st status.Status) bool {
	return st == status.Paid || st == status.Delivered || st == status.Canceled
}

// Recompute re-establishes every derived field from the current items:
// subtotal and total, category records, shipment completion and the order
// status. Paid, delivered and canceled orders keep their status.
//
// Recompute is idempotent. It records an "order updated" event only when
// something actually changed.
func (o *Order) Recompute(now time.Time) {
	if o.recompute(now) {
		o.touch(now)
		o.record(EventTypeOrder, ActionUpdated, o.orderDetail(), now)
	}
}

func (o *Order) recompute(now time.Time) bool {
	changed := o.refreshTotals()
	if o.rebuildCategories(now) {
		changed = true
	}
	if o.promoteShipments(now) {
		changed = true
	}
	if !isExternallyDriven(o.status) {
		if derived := DeriveOrderStatus(o.items); derived != o.status {
			o.status = derived
			changed = true
		}
	}
	return changed
}

// refreshTotals rebuilds subtotal and total from item line totals.
func (o *Order) refreshTotals() bool {
	sum := decimal.Zero
	for _, it := range o.items {
		sum = sum.Add(it.LineTotal())
	}
	subtotal := kernel.RoundMoney(sum)
	total := subtotal
	if o.surcharge {
		total = kernel.RoundMoney(subtotal.Mul(surchargeRate))
	}

	if subtotal.Equal(o.subtotal) && total.Equal(o.total) {
		return false
	}
	o.subtotal = subtotal
	o.total = total
	return true
}

func (o *Order) rebuildCategories(now time.Time) bool {
	byCategory := make(map[CategoryKey][]*Item)
	for _, it := range o.items {
		byCategory[it.category] = append(byCategory[it.category], it)
	}

	changed := false
	for key := range o.categories {
		if _, ok := byCategory[key]; !ok {
			delete(o.categories, key)
			changed = true
		}
	}
	for key, items := range byCategory {
		derived, _ := DeriveCategoryStatus(items)
		record, ok := o.categories[key]
		switch {
		case !ok:
			o.categories[key] = &CategoryStatus{key: key, status: derived, updatedAt: now}
			changed = true
		case record.status != derived:
			record.status = derived
			record.updatedAt = now
			changed = true
		}
	}
	return changed
}

// promoteShipments moves a shipment forward once all its items are done:
// delivered when every item is delivered, ready otherwise. Shipments are never
// demoted here and canceled shipments are left alone.
func (o *Order) promoteShipments(now time.Time) bool {
	changed := false
	for _, s := range o.shipments {
		if s.status == status.Canceled {
			continue
		}
		owned := o.ItemsOf(s.id)
		if len(owned) == 0 {
			continue
		}

		allDelivered, allDone := true, true
		for _, it := range owned {
			allDelivered = allDelivered && it.status == status.Delivered
			allDone = allDone && it.status.IsDone()
		}

		next := s.status
		switch {
		case allDelivered:
			next = status.Delivered
		case allDone && s.status != status.Delivered:
			next = status.Ready
		}
		if next != s.status {
			s.status = next
			o.record(EventTypeShipment, ActionUpdated, o.shipmentDetail(s), now)
			changed = true
		}
	}
	return changed
}
