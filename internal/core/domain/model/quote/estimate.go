package quote

import (
	"time"

	"freightquote/internal/core/domain/model/kernel"
)

// ShipUrgency classifies how soon a reverse-mode estimate requires shipping.
type ShipUrgency int

const (
	// UrgencyOK: more than two days until the ship date.
	UrgencyOK ShipUrgency = iota

	// UrgencyAttention: one or two days until the ship date.
	UrgencyAttention

	// UrgencyUrgent: the shipment must leave today.
	UrgencyUrgent

	// UrgencyLate: the ship date has passed; the option is infeasible.
	UrgencyLate
)

// ClassifyDaysUntilShip maps days-until-ship to an urgency class.
func ClassifyDaysUntilShip(days int) ShipUrgency {
	switch {
	case days > 2:
		return UrgencyOK
	case days >= 1:
		return UrgencyAttention
	case days == 0:
		return UrgencyUrgent
	default:
		return UrgencyLate
	}
}

// Feasible reports whether the shipment can still be dispatched in time.
func (u ShipUrgency) Feasible() bool {
	return u != UrgencyLate
}

// String returns the urgency label used in API responses.
func (u ShipUrgency) String() string {
	switch u {
	case UrgencyOK:
		return "OK"
	case UrgencyAttention:
		return "ATTENTION"
	case UrgencyUrgent:
		return "URGENT"
	case UrgencyLate:
		return "LATE"
	default:
		return "UNKNOWN"
	}
}

// DeliveryEstimate is one carrier's delivery-window option for a destination.
// Forward mode fills DeliveryDate from a ship date; reverse mode fills
// ShipDate and Urgency from a desired delivery date.
type DeliveryEstimate struct {
	CarrierID    kernel.UUID
	CarrierName  string
	TableName    string
	LeadTimeDays int

	ShipDate     time.Time
	DeliveryDate time.Time

	// Urgency is meaningful in reverse mode only.
	Urgency ShipUrgency

	// Best marks the fastest option (forward) or the most comfortable
	// feasible option (reverse).
	Best bool

	// StateFallback records that the estimate came from the state-only
	// fallback because no binding serves the exact locality.
	StateFallback bool
}

// EstimateResult is the outcome of a lead-time computation.
// In reverse mode Feasible is false when every option classifies LATE,
// in which case no option is marked Best.
type EstimateResult struct {
	Estimates []DeliveryEstimate
	Feasible  bool
}
