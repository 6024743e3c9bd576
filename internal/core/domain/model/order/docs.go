// Package order implements the Order aggregate of the restaurant service.
//
// An Order owns its Items, its Shipments and one CategoryStatus record per
// category present among its items. Every mutation goes through the aggregate
// root, which keeps the derived fields consistent:
//   - subtotal and total are rebuilt from item line totals on every recompute
//   - category and order statuses are derived from item statuses only
//   - a shipment whose items are all done is promoted to ready or delivered
//
// Finalized orders (paid or delivered) reject every item, shipment and
// financial mutation with ErrOrderIsFinalized. ChangeStatus is the only way in
// or out of those states.
//
// Mutations record Events. Callers pull them with PullEvents after the unit of
// work commits and hand them to the notification hub.
package order
