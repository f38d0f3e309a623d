package ports

import (
	"quickdrop/internal/core/domain/events"
	"quickdrop/internal/core/domain/model/kernel"
)

// Topic is a named fan-out channel on the event bus. Topic names are flat
// strings; there is no wildcard or hierarchy matching.
type Topic string

const (
	// TopicPartners carries claimable-order announcements to every connected
	// partner.
	TopicPartners Topic = "partners"

	// TopicAdmin carries all order activity and periodic stats to the admin
	// console.
	TopicAdmin Topic = "admin"
)

// TopicCustomer returns the per-customer topic carrying events for every
// order that customer owns.
func TopicCustomer(customerID kernel.UUID) Topic {
	return Topic("customer:" + customerID.String())
}

// TopicOrder returns the per-order topic carrying status and location events
// for a single order.
func TopicOrder(orderID kernel.UUID) Topic {
	return Topic("order:" + orderID.String())
}

// Subscription is a live feed of events for one topic. The channel returned
// by Events is closed after Close; events published while the subscriber's
// buffer is full are dropped, not queued.
type Subscription interface {
	// Topic returns the topic this subscription is attached to.
	Topic() Topic

	// Events returns the channel delivering published events in publish
	// order.
	Events() <-chan events.Event

	// Close detaches the subscription and closes the events channel. Safe to
	// call more than once.
	Close()
}

// EventBus fans events out to the current subscribers of a topic.
//
// Delivery is best-effort and at-most-once: publishing to a topic with no
// subscribers discards the event, and a slow subscriber loses events rather
// than stalling the publisher.
type EventBus interface {
	// Publish delivers the event to every current subscriber of the topic.
	// It never blocks.
	Publish(topic Topic, event events.Event)

	// Subscribe attaches a new subscriber to the topic.
	Subscribe(topic Topic) Subscription
}
