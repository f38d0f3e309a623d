// Package inmem provides the in-process event bus behind the live-status
// fan-out. Delivery is best-effort and at-most-once by design: events exist
// only in subscriber channel buffers and are gone the moment nobody is
// listening.
package inmem

import (
	"log/slog"
	"sync"

	"quickdrop/internal/core/domain/events"
	"quickdrop/internal/core/ports"
)

// DefaultSubscriberBuffer is the per-subscriber channel capacity used when
// the configured value is not positive.
const DefaultSubscriberBuffer = 16

// TopicBus implements ports.EventBus with plain Go channels.
//
// Publishing never blocks: a subscriber whose buffer is full loses the event
// rather than stalling the publisher or other subscribers. Within one
// subscriber, events that are delivered arrive in publish order.
type TopicBus struct {
	logger     *slog.Logger
	bufferSize int

	mu          sync.RWMutex
	subscribers map[ports.Topic]map[*subscription]struct{}
}

// NewTopicBus creates an empty bus. bufferSize is the per-subscriber channel
// capacity.
func NewTopicBus(logger *slog.Logger, bufferSize int) *TopicBus {
	if bufferSize <= 0 {
		bufferSize = DefaultSubscriberBuffer
	}
	return &TopicBus{
		logger:      logger.With("component", "topic_bus"),
		bufferSize:  bufferSize,
		subscribers: make(map[ports.Topic]map[*subscription]struct{}),
	}
}

// Publish delivers the event to every current subscriber of the topic.
// Publishing to a topic with no subscribers discards the event silently.
func (b *TopicBus) Publish(topic ports.Topic, event events.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subscribers[topic] {
		select {
		case sub.events <- event:
		default:
			b.logger.Warn("subscriber buffer full, dropping event",
				"topic", topic, "event", event.EventKind())
		}
	}
}

// Subscribe attaches a new subscriber to the topic.
func (b *TopicBus) Subscribe(topic ports.Topic) ports.Subscription {
	sub := &subscription{
		bus:    b,
		topic:  topic,
		events: make(chan events.Event, b.bufferSize),
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subscribers[topic] == nil {
		b.subscribers[topic] = make(map[*subscription]struct{})
	}
	b.subscribers[topic][sub] = struct{}{}

	return sub
}

// SubscriberCount returns the number of current subscribers of the topic.
func (b *TopicBus) SubscriberCount(topic ports.Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[topic])
}

type subscription struct {
	bus       *TopicBus
	topic     ports.Topic
	events    chan events.Event
	closeOnce sync.Once
}

func (s *subscription) Topic() ports.Topic {
	return s.topic
}

func (s *subscription) Events() <-chan events.Event {
	return s.events
}

// Close detaches the subscription and closes the events channel. The write
// lock excludes concurrent publishers, so closing the channel is safe.
func (s *subscription) Close() {
	s.closeOnce.Do(func() {
		s.bus.mu.Lock()
		defer s.bus.mu.Unlock()

		if subs := s.bus.subscribers[s.topic]; subs != nil {
			delete(subs, s)
			if len(subs) == 0 {
				delete(s.bus.subscribers, s.topic)
			}
		}
		close(s.events)
	})
}
