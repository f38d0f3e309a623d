// Package events defines the notification payloads fanned out through the
// topic bus when an order changes state or a courier reports a position.
//
// Events are a best-effort live view: publishing is fire-and-forget,
// at-most-once, with no persistence. A subscriber connected after an event is
// published never receives it; the authoritative record is always the stored
// order.
package events

import "time"

// Kind names an event type on the wire.
type Kind string

const (
	// KindOrderAvailable tells partners a new order is open for a claim.
	KindOrderAvailable Kind = "order_available"

	// KindOrderCreated tells the admin console a new order entered the system.
	KindOrderCreated Kind = "order_created"

	// KindOrderRemoved tells partners an order is no longer claimable.
	KindOrderRemoved Kind = "order_removed"

	// KindOrderAssigned tells the admin console who won an order.
	KindOrderAssigned Kind = "order_assigned"

	// KindOrderAccepted tells a customer their order was claimed.
	KindOrderAccepted Kind = "order_accepted"

	// KindStatusChanged carries every lifecycle transition of an order.
	KindStatusChanged Kind = "status_changed"

	// KindLocationUpdate carries a courier position report.
	KindLocationUpdate Kind = "location_update"

	// KindDashboardStats carries periodic order counts for the admin console.
	KindDashboardStats Kind = "dashboard_stats"
)

// Event is implemented by every payload in this package.
type Event interface {
	EventKind() Kind
}

// OrderAvailable is published to the partners topic when an order is created.
type OrderAvailable struct {
	OrderID       string    `json:"orderId"`
	CustomerEmail string    `json:"customerEmail"`
	Total         float64   `json:"total"`
	Street        string    `json:"street"`
	City          string    `json:"city"`
	PlacedAt      time.Time `json:"placedAt"`
}

func (OrderAvailable) EventKind() Kind { return KindOrderAvailable }

// OrderCreated is published to the admin topic when an order is created.
type OrderCreated struct {
	OrderID       string    `json:"orderId"`
	CustomerEmail string    `json:"customerEmail"`
	Total         float64   `json:"total"`
	PlacedAt      time.Time `json:"placedAt"`
}

func (OrderCreated) EventKind() Kind { return KindOrderCreated }

// OrderRemoved is published to the partners topic when somebody wins a claim
// or the order is cancelled while still claimable.
type OrderRemoved struct {
	OrderID string `json:"orderId"`
}

func (OrderRemoved) EventKind() Kind { return KindOrderRemoved }

// OrderAssigned is published to the admin topic when a claim succeeds.
type OrderAssigned struct {
	OrderID       string    `json:"orderId"`
	PartnerID     string    `json:"partnerId"`
	CustomerEmail string    `json:"customerEmail"`
	AssignedAt    time.Time `json:"assignedAt"`
}

func (OrderAssigned) EventKind() Kind { return KindOrderAssigned }

// OrderAccepted is published to the owning customer's topic when a claim
// succeeds.
type OrderAccepted struct {
	OrderID    string    `json:"orderId"`
	PartnerID  string    `json:"partnerId"`
	AcceptedAt time.Time `json:"acceptedAt"`
}

func (OrderAccepted) EventKind() Kind { return KindOrderAccepted }

// StatusChanged is published to the order, customer and admin topics on every
// lifecycle transition.
type StatusChanged struct {
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changedAt"`
}

func (StatusChanged) EventKind() Kind { return KindStatusChanged }

// LocationUpdate is published to the order and customer topics on each
// accepted courier position report.
type LocationUpdate struct {
	OrderID    string    `json:"orderId"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Status     string    `json:"status"`
	ObservedAt time.Time `json:"observedAt"`
}

func (LocationUpdate) EventKind() Kind { return KindLocationUpdate }

// DashboardStats is broadcast periodically to the admin topic.
type DashboardStats struct {
	Total      int64     `json:"total"`
	Claimable  int64     `json:"claimable"`
	Active     int64     `json:"active"`
	Delivered  int64     `json:"delivered"`
	Cancelled  int64     `json:"cancelled"`
	ObservedAt time.Time `json:"observedAt"`
}

func (DashboardStats) EventKind() Kind { return KindDashboardStats }
