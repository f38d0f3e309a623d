// Package tracking contains the ephemeral courier-location value object.
//
// LocationSamples are a best-effort live view: only the most recent sample
// per order is retained, in memory, and samples may be lost on restart. They
// are never the authoritative order record.
package tracking

import (
	"errors"
	"fmt"
	"time"

	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/core/domain/model/order"
	"quickdrop/internal/pkg/errs"
	"quickdrop/internal/pkg/guard"
)

// Valid coordinate bounds in decimal degrees.
const (
	LatMin float64 = -90
	LatMax float64 = 90
	LngMin float64 = -180
	LngMax float64 = 180
)

// ErrLocationSampleIsNotConstructed is returned when validating a zero-value
// LocationSample that was not created via NewLocationSample.
var ErrLocationSampleIsNotConstructed = errs.NewValueIsRequiredError(
	"LocationSample must be created via NewLocationSample constructor")

// LocationSample is one courier position report for an order: coordinates,
// the status the partner reported alongside them, and the observation time.
// It is immutable; a newer sample replaces an older one wholesale.
type LocationSample struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	lat        float64
	lng        float64
	status     order.Status
	observedAt time.Time

	guard guard.ConstructorGuard
}

// NewLocationSample creates a validated sample. Latitude must be within
// [LatMin..LatMax] and longitude within [LngMin..LngMax]; the status must be
// a valid lifecycle status.
func NewLocationSample(
	orderID kernel.UUID,
	lat float64,
	lng float64,
	status order.Status,
	observedAt time.Time,
) (LocationSample, error) {
	sample := LocationSample{
		status:     status,
		observedAt: observedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		sample.setOrderID(orderID),
		sample.setLat(lat),
		sample.setLng(lng),
		status.Validate(),
	); err != nil {
		return LocationSample{}, err
	}

	return sample, nil
}

// Validate checks the sample was created via NewLocationSample.
func (s LocationSample) Validate() error {
	return s.guard.Validate(ErrLocationSampleIsNotConstructed)
}

// OrderID returns the order the sample belongs to.
func (s LocationSample) OrderID() kernel.UUID {
	return s.orderID
}

// Lat returns the latitude in decimal degrees.
func (s LocationSample) Lat() float64 {
	return s.lat
}

// Lng returns the longitude in decimal degrees.
func (s LocationSample) Lng() float64 {
	return s.lng
}

// Status returns the lifecycle status reported alongside the coordinates.
func (s LocationSample) Status() order.Status {
	return s.status
}

// ObservedAt returns when the partner's device observed the position.
func (s LocationSample) ObservedAt() time.Time {
	return s.observedAt
}

// String returns a compact representation for logging.
func (s LocationSample) String() string {
	return fmt.Sprintf("LocationSample(%s %.5f,%.5f %s)", s.orderID, s.lat, s.lng, s.status)
}

func (s *LocationSample) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

func (s *LocationSample) setLat(lat float64) error {
	if lat < LatMin || lat > LatMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatMin, LatMax)
	}
	s.lat = lat
	return nil
}

func (s *LocationSample) setLng(lng float64) error {
	if lng < LngMin || lng > LngMax {
		return errs.NewValueIsOutOfRangeError("lng", lng, LngMin, LngMax)
	}
	s.lng = lng
	return nil
}
