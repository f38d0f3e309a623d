package http

import (
	"errors"
	"net/http"
	"time"

	"quickdrop/internal/pkg/errs"
)

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusFor maps domain error categories to HTTP status codes. Anything
// unrecognized is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrNoOp):
		return http.StatusConflict
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrIllegalTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewOrderRequest is the body of POST /api/v1/orders.
type NewOrderRequest struct {
	Items         []OrderItem  `json:"items"`
	Total         float64      `json:"total"`
	CustomerEmail string       `json:"customerEmail"`
	Address       OrderAddress `json:"address"`
}

// OrderItem is one line of an order payload.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// OrderAddress is the delivery destination payload.
type OrderAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Phone   string `json:"phone"`
}

// NewOrderResponse is returned by POST /api/v1/orders.
type NewOrderResponse struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// AvailableOrder is one entry of GET /api/v1/orders/available.
type AvailableOrder struct {
	OrderID       string    `json:"orderId"`
	CustomerEmail string    `json:"customerEmail"`
	Total         float64   `json:"total"`
	Street        string    `json:"street"`
	City          string    `json:"city"`
	PlacedAt      time.Time `json:"placedAt"`
}

// PartnerOrder is one entry of GET /api/v1/partners/me/orders.
type PartnerOrder struct {
	OrderID       string    `json:"orderId"`
	CustomerEmail string    `json:"customerEmail"`
	Total         float64   `json:"total"`
	Street        string    `json:"street"`
	City          string    `json:"city"`
	Status        string    `json:"status"`
	AcceptedAt    time.Time `json:"acceptedAt"`
}

// UpdateStatusRequest is the body of PUT /api/v1/orders/:orderID/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ReportLocationRequest is the body of POST /api/v1/orders/:orderID/location.
type ReportLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TrackingResponse is returned by GET /api/v1/orders/:orderID/tracking.
// Location is null when no courier position is currently cached.
type TrackingResponse struct {
	OrderID         string            `json:"orderId"`
	Status          string            `json:"status"`
	AssignedPartner *string           `json:"assignedPartner,omitempty"`
	Timeline        map[string]string `json:"timeline"`
	Location        *TrackingLocation `json:"location,omitempty"`
}

// TrackingLocation is the cached last-known courier position.
type TrackingLocation struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	ObservedAt time.Time `json:"observedAt"`
}

// DashboardStats is returned by GET /api/v1/admin/stats.
type DashboardStats struct {
	Total     int64 `json:"total"`
	Claimable int64 `json:"claimable"`
	Active    int64 `json:"active"`
	Delivered int64 `json:"delivered"`
	Cancelled int64 `json:"cancelled"`
}
