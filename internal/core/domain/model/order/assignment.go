package order

import (
	"fmt"
	"slices"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/status"
)

// UpsertShipment creates a shipment when id is nil and updates the shipment
// with that id otherwise.
//
// Listed item ids that do not belong to the order are ignored; the others are
// moved into the shipment, leaving whatever shipment they had before. When the
// patch carries an item status it becomes the status of every item the
// shipment owns afterwards. Delivering a shipment requires all of those items
// to be ready or delivered already.
//
// Example:
//
//	ready := status.Ready
//	shipment, err := o.UpsertShipment(nil, order.ShipmentPatch{
//	    ItemIDs: []kernel.UUID{pizzaID, sodaID},
//	    Status:  &ready,
//	}, now)
func (o *Order) UpsertShipment(id *kernel.UUID, patch ShipmentPatch, now time.Time) (*Shipment, error) {
	if err := o.EnsureMutable(); err != nil {
		return nil, err
	}

	var (
		target  *Shipment
		created bool
		err     error
	)
	if id == nil {
		kind := KindOnPremises
		if patch.Kind != nil {
			kind = *patch.Kind
		}
		target, err = NewShipment(kernel.NewUUID(), kind, "", "", now)
		created = true
	} else {
		target, err = o.Shipment(*id)
	}
	if err != nil {
		return nil, err
	}

	if patch.Kind != nil {
		if err := patch.Kind.Validate(); err != nil {
			return nil, err
		}
	}

	moving := o.ownedItems(patch.ItemIDs)
	owned := o.ItemsOf(target.id)
	for _, it := range moving {
		if !it.belongsTo(target.id) {
			owned = append(owned, it)
		}
	}

	if patch.Status != nil {
		if err := o.checkShipmentStatus(target, *patch.Status, owned); err != nil {
			return nil, err
		}
	}

	// Every check has passed; apply.
	if created {
		o.shipments = append(o.shipments, target)
	}
	if patch.Kind != nil {
		target.kind = *patch.Kind
	}
	if patch.Address != nil {
		target.address = *patch.Address
	}
	if patch.Note != nil {
		target.note = *patch.Note
	}

	moved := make(map[kernel.UUID]bool, len(moving))
	for _, it := range moving {
		if it.belongsTo(target.id) {
			continue
		}
		shipmentID := target.id
		it.shipmentID = &shipmentID
		moved[it.id] = true
	}

	if patch.Status != nil {
		target.status = *patch.Status
		if patch.Status.IsItemStatus() {
			for _, it := range owned {
				if it.status != *patch.Status {
					it.status = *patch.Status
					if !moved[it.id] {
						o.record(EventTypeOrderItem, ActionUpdated, itemDetail(it), now)
					}
				}
			}
		}
	}

	for _, it := range owned {
		if moved[it.id] {
			o.record(EventTypeOrderItem, ActionMoved, itemDetail(it), now)
		}
	}

	action := ActionUpdated
	if created {
		action = ActionAdded
	}
	o.record(EventTypeShipment, action, o.shipmentDetail(target), now)
	o.touch(now)
	o.Recompute(now)

	return target, nil
}

// RemoveShipment detaches the shipment's items and deletes it.
func (o *Order) RemoveShipment(id kernel.UUID, now time.Time) error {
	if err := o.EnsureMutable(); err != nil {
		return err
	}
	target, err := o.Shipment(id)
	if err != nil {
		return err
	}

	detail := o.shipmentDetail(target)
	for _, it := range o.ItemsOf(id) {
		it.shipmentID = nil
	}
	o.shipments = slices.DeleteFunc(o.shipments, func(s *Shipment) bool {
		return s == target
	})

	o.record(EventTypeShipment, ActionDeleted, detail, now)
	o.touch(now)
	o.Recompute(now)
	return nil
}

// ownedItems resolves ids against the order's items, skipping unknown and duplicate ids.
func (o *Order) ownedItems(ids []kernel.UUID) []*Item {
	seen := make(map[kernel.UUID]bool, len(ids))
	out := make([]*Item, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if it, err := o.Item(id); err == nil {
			out = append(out, it)
		}
	}
	return out
}

func (o *Order) checkShipmentStatus(target *Shipment, next status.Status, owned []*Item) error {
	candidate := *target
	if err := candidate.setStatus(next); err != nil {
		return err
	}
	if next != status.Delivered {
		return nil
	}
	for _, it := range owned {
		if err := it.checkTransition(next); err != nil {
			return fmt.Errorf("shipment %s: %w", target.id, err)
		}
	}
	return nil
}
