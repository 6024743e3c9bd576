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
)

// ErrShipmentIsNotConstructed is returned when a Shipment was not built through a constructor.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

// ShipmentKind tells on-site consumption apart from delivery.
type ShipmentKind string

const (
	KindOnPremises ShipmentKind = "on_premises"
	KindDelivery   ShipmentKind = "delivery"
)

// NormalizeShipmentKind maps free-form input to a kind. Anything that does not
// look like a delivery ("delivery", "entrega", ...) is on premises.
func NormalizeShipmentKind(raw string) ShipmentKind {
	token := strings.ToLower(strings.TrimSpace(raw))
	if strings.Contains(token, "deliv") || strings.Contains(token, "entreg") {
		return KindDelivery
	}
	return KindOnPremises
}

// Validate reports whether k is a known kind.
func (k ShipmentKind) Validate() error {
	switch k {
	case KindOnPremises, KindDelivery:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("shipment kind is invalid", fmt.Errorf("%q is not a known kind", string(k)))
	}
}

// ShipmentPatch describes a shipment creation or update. Nil fields are left
// untouched; ItemIDs moves the listed items into the shipment.
type ShipmentPatch struct {
	ItemIDs []kernel.UUID
	Kind    *ShipmentKind
	Address *string
	Note    *string
	Status  *status.Status
}

// Shipment groups items of one order that travel or complete together, such
// as a delivery parcel or the first half of a table's order.
//
// An item belongs to at most one shipment. Shipment status is informative for
// delivery tracking; the order status is always derived from items.
type Shipment struct {
	id        kernel.UUID
	kind      ShipmentKind
	address   string
	status    status.Status
	note      string
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewShipment creates a pending shipment.
func NewShipment(id kernel.UUID, kind ShipmentKind, address, note string, now time.Time) (*Shipment, error) {
	shipment := &Shipment{
		status:    status.Pending,
		address:   strings.TrimSpace(address),
		note:      note,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipment.setID(id),
		shipment.setKind(kind),
	); err != nil {
		return nil, err
	}

	return shipment, nil
}

// RestoreShipment rebuilds a persisted shipment.
func RestoreShipment(
	id kernel.UUID,
	kind ShipmentKind,
	address, note string,
	st status.Status,
	createdAt time.Time,
) (*Shipment, error) {
	shipment := &Shipment{
		address:   address,
		note:      note,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipment.setID(id),
		shipment.setKind(kind),
		shipment.setStatus(st),
	); err != nil {
		return nil, err
	}

	return shipment, nil
}

// Validate ensures the shipment was built through a constructor.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) ID() kernel.UUID {
	return s.id
}

func (s *Shipment) Kind() ShipmentKind {
	return s.kind
}

func (s *Shipment) Address() string {
	return s.address
}

func (s *Shipment) Status() status.Status {
	return s.status
}

func (s *Shipment) Note() string {
	return s.note
}

func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setKind(kind ShipmentKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	s.kind = kind
	return nil
}

// setStatus accepts item statuses and Canceled. Paid only makes sense for a whole order.
func (s *Shipment) setStatus(st status.Status) error {
	if !st.IsItemStatus() && st != status.Canceled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%s is not a shipment status", st))
	}
	s.status = st
	return nil
}
