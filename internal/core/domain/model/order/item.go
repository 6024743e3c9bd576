package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/status"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrItemIsNotConstructed is returned when an Item was not built through NewItem or RestoreItem.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

	// ErrIllegalStatusTransition is returned when an item would be delivered before it is ready.
	ErrIllegalStatusTransition = errs.NewConflictError("item must be ready before it is delivered")
)

// ItemInput carries the caller-controlled attributes of a new line item.
// Price is the catalog price at the moment the item is added; it is never
// re-read afterwards.
type ItemInput struct {
	ProductID *kernel.UUID
	Name      string
	Quantity  decimal.Decimal
	Price     decimal.Decimal
	Category  CategoryKey
	Note      string
}

// ItemPatch lists the fields UpdateItem should change. Nil fields are left as is.
type ItemPatch struct {
	Quantity *decimal.Decimal
	Price    *decimal.Decimal
	Status   *status.Status
	Note     *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Quantity == nil && p.Price == nil && p.Status == nil && p.Note == nil
}

// Item is one line of an order: a product, a quantity and a price snapshot,
// with its own preparation status.
//
// Quantity may be fractional (0.5 is a half portion). Items are entities inside
// the Order aggregate and are only changed through Order methods.
type Item struct {
	id         kernel.UUID
	shipmentID *kernel.UUID
	productID  *kernel.UUID
	name       string
	quantity   decimal.Decimal
	price      decimal.Decimal
	status     status.Status
	category   CategoryKey
	note       string
	createdAt  time.Time
	guard      guard.ConstructorGuard
}

// NewItem creates a pending item that does not belong to any shipment yet.
//
// Example:
//
//	item, err := order.NewItem(kernel.NewUUID(), order.ItemInput{
//	    Name:     "Margherita",
//	    Quantity: decimal.RequireFromString("0.5"),
//	    Price:    decimal.RequireFromString("42.00"),
//	    Category: order.CategoryFood,
//	}, time.Now())
func NewItem(id kernel.UUID, in ItemInput, now time.Time) (*Item, error) {
	item := &Item{
		status:    status.Pending,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(in.ProductID),
		item.setName(in.Name),
		item.setQuantity(in.Quantity),
		item.setPrice(in.Price),
		item.setCategory(in.Category),
	); err != nil {
		return nil, err
	}
	item.note = in.Note

	return item, nil
}

// RestoreItem rebuilds a persisted item, including its shipment and status.
func RestoreItem(
	id kernel.UUID,
	in ItemInput,
	shipmentID *kernel.UUID,
	st status.Status,
	createdAt time.Time,
) (*Item, error) {
	item := &Item{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(in.ProductID),
		item.setName(in.Name),
		item.setQuantity(in.Quantity),
		item.setPrice(in.Price),
		item.setCategory(in.Category),
		item.setShipmentID(shipmentID),
		item.setStatus(st),
	); err != nil {
		return nil, err
	}
	item.note = in.Note

	return item, nil
}

// Validate ensures the item was built through a constructor.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

// ShipmentID returns the owning shipment, or nil when the item is unassigned.
func (i *Item) ShipmentID() *kernel.UUID {
	return i.shipmentID
}

func (i *Item) ProductID() *kernel.UUID {
	return i.productID
}

func (i *Item) Name() string {
	return i.name
}

func (i *Item) Quantity() decimal.Decimal {
	return i.quantity
}

// Price returns the unit price captured when the item was added.
func (i *Item) Price() decimal.Decimal {
	return i.price
}

// LineTotal returns price × quantity, unrounded.
func (i *Item) LineTotal() decimal.Decimal {
	return i.price.Mul(i.quantity)
}

func (i *Item) Status() status.Status {
	return i.status
}

func (i *Item) Category() CategoryKey {
	return i.category
}

func (i *Item) Note() string {
	return i.note
}

func (i *Item) CreatedAt() time.Time {
	return i.createdAt
}

// belongsTo reports whether the item is owned by the given shipment.
func (i *Item) belongsTo(shipmentID kernel.UUID) bool {
	return i.shipmentID != nil && i.shipmentID.IsEqual(shipmentID)
}

// checkTransition rejects delivering an item that is not ready yet.
func (i *Item) checkTransition(next status.Status) error {
	if next == status.Delivered && !i.status.IsDone() {
		return fmt.Errorf("%w: item %s is %s", ErrIllegalStatusTransition, i.id, i.status)
	}
	return nil
}

// apply validates the whole patch first and only then changes the item, so a
// rejected patch leaves the item untouched.
func (i *Item) apply(p ItemPatch) error {
	if p.Quantity != nil && p.Quantity.IsNegative() {
		return errs.NewValueIsOutOfRangeError("quantity", p.Quantity.String(), 0, "unbounded")
	}
	if p.Price != nil && p.Price.IsNegative() {
		return errs.NewValueIsOutOfRangeError("price", p.Price.String(), 0, "unbounded")
	}
	if p.Status != nil {
		if !p.Status.IsItemStatus() {
			return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%s is not an item status", p.Status))
		}
		if err := i.checkTransition(*p.Status); err != nil {
			return err
		}
	}

	if p.Quantity != nil {
		i.quantity = *p.Quantity
	}
	if p.Price != nil {
		i.price = *p.Price
	}
	if p.Status != nil {
		i.status = *p.Status
	}
	if p.Note != nil {
		i.note = *p.Note
	}
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(productID *kernel.UUID) error {
	if productID == nil {
		return nil
	}
	if err := productID.Validate(); err != nil {
		return err
	}
	id := *productID
	i.productID = &id
	return nil
}

func (i *Item) setShipmentID(shipmentID *kernel.UUID) error {
	if shipmentID == nil {
		i.shipmentID = nil
		return nil
	}
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	id := *shipmentID
	i.shipmentID = &id
	return nil
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return errs.NewValueIsOutOfRangeError("quantity", quantity.String(), 0, "unbounded")
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsOutOfRangeError("price", price.String(), 0, "unbounded")
	}
	i.price = price
	return nil
}

func (i *Item) setCategory(category CategoryKey) error {
	if err := category.Validate(); err != nil {
		return err
	}
	i.category = category
	return nil
}

func (i *Item) setStatus(st status.Status) error {
	if !st.IsItemStatus() {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%s is not an item status", st))
	}
	i.status = st
	return nil
}
