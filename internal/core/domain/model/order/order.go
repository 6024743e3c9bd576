package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/status"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not built through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrInitialShipmentIsRequired is returned by NewOrder without a shipment.
	ErrInitialShipmentIsRequired = errs.NewValueIsRequiredError("initial shipment")
)

// Draft holds everything NewOrder needs to open an order.
//
// Sequence is the daily number handed out by the repository for BusinessDate.
// All Items are placed into Shipment.
type Draft struct {
	ID           kernel.UUID
	Sequence     int
	BusinessDate time.Time
	CustomerID   *kernel.UUID
	Table        string
	Note         string
	Shipment     *Shipment
	Items        []*Item
}

// State is the persisted form of an order, used by RestoreOrder.
type State struct {
	ID           kernel.UUID
	Sequence     int
	BusinessDate time.Time
	CustomerID   *kernel.UUID
	Table        string
	Note         string
	Status       status.Status
	Subtotal     decimal.Decimal
	Surcharge    bool
	Total        decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Items        []*Item
	Shipments    []*Shipment
	Categories   []*CategoryStatus
}

// Order is a customer's complete request: line items split across shipments
// and categories, with a derived status and totals.
//
// Order invariants:
//   - total = round(subtotal × 1.1, 2) with the surcharge flag, else subtotal
//   - one CategoryStatus per category present among the items, none otherwise
//   - every item references a shipment of this order or none
//   - a finalized order (paid or delivered) never changes its items, shipments or money
//
// The derived fields are re-established by Recompute, which every mutation
// calls before returning.
type Order struct {
	id           kernel.UUID
	sequence     int
	businessDate time.Time
	customerID   *kernel.UUID
	table        string
	note         string
	status       status.Status
	subtotal     decimal.Decimal
	surcharge    bool
	total        decimal.Decimal
	createdAt    time.Time
	updatedAt    time.Time
	items        []*Item
	shipments    []*Shipment
	categories   map[CategoryKey]*CategoryStatus
	events       []Event
	guard        guard.ConstructorGuard
}

// NewOrder opens a pending order with its initial shipment holding every
// initial item. Subtotal, total and category statuses are computed before it
// returns. An "order added" event and one "order_item added" event per item
// are recorded.
//
// Example:
//
//	shipment, _ := order.NewShipment(kernel.NewUUID(), order.KindOnPremises, "", "", now)
//	o, err := order.NewOrder(order.Draft{
//	    ID:           kernel.NewUUID(),
//	    Sequence:     seq,
//	    BusinessDate: kernel.BusinessDate(now, loc),
//	    Table:        "12",
//	    Shipment:     shipment,
//	    Items:        items,
//	}, now)
func NewOrder(d Draft, now time.Time) (*Order, error) {
	o := &Order{
		status:     status.Pending,
		createdAt:  now,
		updatedAt:  now,
		categories: make(map[CategoryKey]*CategoryStatus),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(d.ID),
		o.setSequence(d.Sequence),
		o.setBusinessDate(d.BusinessDate),
		o.setCustomerID(d.CustomerID),
		o.setInitialShipment(d.Shipment),
		o.setItems(d.Items),
	); err != nil {
		return nil, err
	}
	o.table = strings.TrimSpace(d.Table)
	o.note = d.Note

	shipmentID := d.Shipment.id
	for _, it := range o.items {
		it.shipmentID = &shipmentID
	}
	o.recompute(now)

	o.record(EventTypeOrder, ActionAdded, o.orderDetail(), now)
	for _, it := range o.items {
		o.record(EventTypeOrderItem, ActionAdded, itemDetail(it), now)
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence without recomputing it.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		table:      s.Table,
		note:       s.Note,
		subtotal:   s.Subtotal,
		surcharge:  s.Surcharge,
		total:      s.Total,
		createdAt:  s.CreatedAt,
		updatedAt:  s.UpdatedAt,
		categories: make(map[CategoryKey]*CategoryStatus, len(s.Categories)),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setSequence(s.Sequence),
		o.setBusinessDate(s.BusinessDate),
		o.setCustomerID(s.CustomerID),
		o.setStatus(s.Status),
		o.setShipments(s.Shipments),
		o.setItems(s.Items),
		o.setCategories(s.Categories),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// Sequence returns the daily order number within BusinessDate.
func (o *Order) Sequence() int {
	return o.sequence
}

func (o *Order) BusinessDate() time.Time {
	return o.businessDate
}

func (o *Order) CustomerID() *kernel.UUID {
	return o.customerID
}

func (o *Order) Table() string {
	return o.table
}

func (o *Order) Note() string {
	return o.note
}

func (o *Order) Status() status.Status {
	return o.status
}

func (o *Order) Subtotal() decimal.Decimal {
	return o.subtotal
}

func (o *Order) Surcharge() bool {
	return o.surcharge
}

func (o *Order) Total() decimal.Decimal {
	return o.total
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Items returns a copy of the item list in insertion order.
func (o *Order) Items() []*Item {
	return slices.Clone(o.items)
}

// Shipments returns a copy of the shipment list in creation order.
func (o *Order) Shipments() []*Shipment {
	return slices.Clone(o.shipments)
}

// CategoryStatuses returns the category records sorted by key.
func (o *Order) CategoryStatuses() []*CategoryStatus {
	out := make([]*CategoryStatus, 0, len(o.categories))
	for _, c := range o.categories {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *CategoryStatus) int {
		return strings.Compare(string(a.key), string(b.key))
	})
	return out
}

// CategoryStatus returns the record for key, if the order has items of that category.
func (o *Order) CategoryStatus(key CategoryKey) (*CategoryStatus, bool) {
	c, ok := o.categories[key]
	return c, ok
}

// Item looks an item up by identifier.
func (o *Order) Item(id kernel.UUID) (*Item, error) {
	for _, it := range o.items {
		if it.id.IsEqual(id) {
			return it, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("itemID", id)
}

// Shipment looks a shipment up by identifier.
func (o *Order) Shipment(id kernel.UUID) (*Shipment, error) {
	for _, s := range o.shipments {
		if s.id.IsEqual(id) {
			return s, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("shipmentID", id)
}

// ItemsOf returns the items owned by the shipment.
func (o *Order) ItemsOf(shipmentID kernel.UUID) []*Item {
	var out []*Item
	for _, it := range o.items {
		if it.belongsTo(shipmentID) {
			out = append(out, it)
		}
	}
	return out
}

// AddItems appends items to a mutable order. They start without a shipment.
func (o *Order) AddItems(items []*Item, now time.Time) error {
	if err := o.EnsureMutable(); err != nil {
		return err
	}
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
		if _, err := o.Item(it.id); err == nil {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item %s is already part of the order", it.id))
		}
	}

	for _, it := range items {
		it.shipmentID = nil
		o.items = append(o.items, it)
		o.record(EventTypeOrderItem, ActionAdded, itemDetail(it), now)
	}
	o.touch(now)
	o.Recompute(now)
	return nil
}

// UpdateItem applies a patch to one item. The patch is rejected as a whole
// when it would deliver an item that is not ready.
func (o *Order) UpdateItem(itemID kernel.UUID, patch ItemPatch, now time.Time) error {
	if err := o.EnsureMutable(); err != nil {
		return err
	}
	it, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return nil
	}
	if err := it.apply(patch); err != nil {
		return err
	}

	o.record(EventTypeOrderItem, ActionUpdated, itemDetail(it), now)
	o.touch(now)
	o.Recompute(now)
	return nil
}

// RemoveItem deletes an item. The category record disappears with its last item.
func (o *Order) RemoveItem(itemID kernel.UUID, now time.Time) error {
	if err := o.EnsureMutable(); err != nil {
		return err
	}
	it, err := o.Item(itemID)
	if err != nil {
		return err
	}

	o.items = slices.DeleteFunc(o.items, func(candidate *Item) bool {
		return candidate == it
	})
	o.record(EventTypeOrderItem, ActionDeleted, itemDetail(it), now)
	o.touch(now)
	o.Recompute(now)
	return nil
}

// SetSurcharge toggles the 10% service surcharge.
func (o *Order) SetSurcharge(on bool, now time.Time) error {
	if err := o.EnsureMutable(); err != nil {
		return err
	}
	if o.surcharge == on {
		return nil
	}

	o.surcharge = on
	o.touch(now)
	o.Recompute(now)
	return nil
}

// MarkDeleted records the "order deleted" event. Deletion itself is done by
// the repository; finalized orders may be deleted too.
func (o *Order) MarkDeleted(now time.Time) {
	o.record(EventTypeOrder, ActionDeleted, o.orderDetail(), now)
}

func (o *Order) touch(now time.Time) {
	o.updatedAt = now
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setSequence(sequence int) error {
	if sequence <= 0 {
		return errs.NewValueIsOutOfRangeError("sequence", sequence, 1, "unbounded")
	}
	o.sequence = sequence
	return nil
}

func (o *Order) setBusinessDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("business date")
	}
	o.businessDate = date
	return nil
}

func (o *Order) setCustomerID(customerID *kernel.UUID) error {
	if customerID == nil {
		return nil
	}
	if err := customerID.Validate(); err != nil {
		return err
	}
	id := *customerID
	o.customerID = &id
	return nil
}

func (o *Order) setStatus(st status.Status) error {
	if err := st.Validate(); err != nil {
		return err
	}
	o.status = st
	return nil
}

func (o *Order) setInitialShipment(shipment *Shipment) error {
	if shipment == nil {
		return ErrInitialShipmentIsRequired
	}
	if err := shipment.Validate(); err != nil {
		return err
	}
	o.shipments = []*Shipment{shipment}
	return nil
}

func (o *Order) setShipments(shipments []*Shipment) error {
	for _, s := range shipments {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	o.shipments = slices.Clone(shipments)
	return nil
}

// setItems expects shipments to be set already so references can be checked.
func (o *Order) setItems(items []*Item) error {
	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
		if _, dup := seen[it.id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item %s appears twice", it.id))
		}
		seen[it.id] = struct{}{}
		if it.shipmentID != nil {
			if _, err := o.Shipment(*it.shipmentID); err != nil {
				return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item %s references unknown shipment", it.id))
			}
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setCategories(categories []*CategoryStatus) error {
	for _, c := range categories {
		if c == nil {
			return errs.NewValueIsRequiredError("category status")
		}
		o.categories[c.key] = c
	}
	return nil
}
