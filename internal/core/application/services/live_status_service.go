// Package services contains application services that sit outside the
// command/query split: stateful coordination that serves both.
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/core/domain/model/principal"
	"quickdrop/internal/core/domain/model/tracking"
	"quickdrop/internal/core/ports"
	"quickdrop/internal/pkg/errs"
)

// OrderAccessChecker resolves whether a principal is attached to an order,
// either as its customer or as its assigned partner. Backed by the order
// store in production.
type OrderAccessChecker interface {
	CanAccessOrder(ctx context.Context, actor principal.Principal, orderID kernel.UUID) (bool, error)
}

// OrderAccessCheckerFunc adapts a function to the OrderAccessChecker
// interface.
type OrderAccessCheckerFunc func(
	ctx context.Context,
	actor principal.Principal,
	orderID kernel.UUID,
) (bool, error)

// CanAccessOrder calls the wrapped function.
func (f OrderAccessCheckerFunc) CanAccessOrder(
	ctx context.Context,
	actor principal.Principal,
	orderID kernel.UUID,
) (bool, error) {
	return f(ctx, actor, orderID)
}

// LiveStatusService owns the ephemeral live view of deliveries: the
// last-known courier position per order and the authorization rules for who
// may watch which topic.
//
// The position cache holds at most one sample per order. A newer sample
// replaces the older one wholesale; eviction on terminal status is the only
// other way out. Everything here is in memory and intentionally lost on
// restart.
type LiveStatusService struct {
	access OrderAccessChecker

	mu      sync.RWMutex
	samples map[kernel.UUID]tracking.LocationSample
	evicted map[kernel.UUID]time.Time
}

// evictionTombstoneTTL is how long an evicted order keeps rejecting new
// samples. A report that raced the terminal transition arrives within its
// own request's lifetime, so a short window is enough.
const evictionTombstoneTTL = time.Minute

// NewLiveStatusService creates the service with an empty position cache.
func NewLiveStatusService(access OrderAccessChecker) *LiveStatusService {
	return &LiveStatusService{
		access:  access,
		samples: make(map[kernel.UUID]tracking.LocationSample),
		evicted: make(map[kernel.UUID]time.Time),
	}
}

// Record stores the sample as the order's last-known position, replacing any
// previous one. Samples for recently evicted orders are dropped: the
// reporting handler checks terminal status on a read taken before the
// transition commits, so a report can arrive after the eviction it should
// have been rejected for.
func (s *LiveStatusService) Record(sample tracking.LocationSample) {
	if err := sample.Validate(); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneTombstones(time.Now())
	if _, gone := s.evicted[sample.OrderID()]; gone {
		return
	}
	s.samples[sample.OrderID()] = sample
}

// Evict drops the cached position for the order and tombstones it. Called
// when the order reaches a terminal status; evicting an untracked order is a
// no-op apart from the tombstone.
func (s *LiveStatusService) Evict(orderID kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.samples, orderID)
	s.evicted[orderID] = time.Now()
}

// pruneTombstones removes expired eviction markers. Caller holds the write
// lock.
func (s *LiveStatusService) pruneTombstones(now time.Time) {
	for orderID, at := range s.evicted {
		if now.Sub(at) > evictionTombstoneTTL {
			delete(s.evicted, orderID)
		}
	}
}

// Last returns the order's last-known position and whether one is cached.
// This is what a late-joining watcher gets as the current position; anything
// older than the cached sample is gone for good.
func (s *LiveStatusService) Last(orderID kernel.UUID) (tracking.LocationSample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sample, ok := s.samples[orderID]
	return sample, ok
}

// TrackedCount returns how many orders currently have a cached position.
func (s *LiveStatusService) TrackedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.samples)
}

// Authorize decides whether the actor may subscribe to the topic.
//
// Rules:
//   - admins may watch everything
//   - the partners feed is for partners
//   - customer:<id> belongs to that customer alone
//   - order:<id> is open to the owning customer and the assigned partner
//
// Returns a ForbiddenError when the actor is not entitled, and a
// ValueIsInvalidError for topics that do not exist.
func (s *LiveStatusService) Authorize(
	ctx context.Context,
	actor principal.Principal,
	topic ports.Topic,
) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	if actor.IsAdmin() {
		return nil
	}

	switch {
	case topic == ports.TopicPartners:
		if actor.IsPartner() {
			return nil
		}

	case topic == ports.TopicAdmin:
		// non-admins fall through to Forbidden

	case strings.HasPrefix(string(topic), "customer:"):
		customerID, err := topicID(topic, "customer:")
		if err != nil {
			return err
		}
		if actor.IsCustomer() && actor.ID().IsEqual(customerID) {
			return nil
		}

	case strings.HasPrefix(string(topic), "order:"):
		orderID, err := topicID(topic, "order:")
		if err != nil {
			return err
		}
		allowed, err := s.access.CanAccessOrder(ctx, actor, orderID)
		if err != nil {
			return err
		}
		if allowed {
			return nil
		}

	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"topic", fmt.Errorf("%q is not a known topic", topic))
	}

	return errs.NewForbiddenErrorWithCause("topic",
		fmt.Errorf("%s may not subscribe to %q", actor, topic))
}

func topicID(topic ports.Topic, prefix string) (kernel.UUID, error) {
	raw := strings.TrimPrefix(string(topic), prefix)
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(
			"topic", fmt.Errorf("%q does not end in a valid id", topic))
	}
	return id, nil
}
