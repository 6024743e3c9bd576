package ports

import "restaurant/internal/core/domain/model/order"

// EventPublisher hands committed order events to observers. Publish must not
// block on observer I/O and never reports delivery failures.
type EventPublisher interface {
	Publish(events ...order.Event)
}
