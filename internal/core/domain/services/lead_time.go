package services

import (
	"sort"
	"strings"
	"time"

	"freightquote/internal/core/domain/model/quote"
	"freightquote/internal/pkg/errs"
)

// Date layouts accepted by ParseDateExpression, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
}

// ParseDateExpression parses a user-supplied date expression relative to now.
// Accepted forms are the literals "today" and "tomorrow" (case-insensitive)
// and the calendar layouts ISO (2006-01-02), DD/MM/YYYY and DD-MM-YYYY.
// The result is truncated to midnight in now's location.
func ParseDateExpression(expr string, now time.Time) (time.Time, error) {
	today := midnight(now)

	switch strings.ToLower(strings.TrimSpace(expr)) {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	for _, layout := range dateLayouts {
		parsed, err := time.ParseInLocation(layout, strings.TrimSpace(expr), now.Location())
		if err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, errs.NewValueIsInvalidError("date expression")
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole calendar days from a to b, negative when b is
// before a. Both are truncated to midnight first so the clock time of "now"
// never shifts the bucket.
func daysBetween(a, b time.Time) int {
	return int(midnight(b).Sub(midnight(a)).Hours() / 24)
}

// LeadTimeCalculator turns service-binding lead times into delivery windows.
// Forward mode answers "shipping on D, when does each carrier deliver";
// reverse mode answers "to deliver by D, when must each carrier ship, and is
// that still possible".
type LeadTimeCalculator struct{}

func NewLeadTimeCalculator() LeadTimeCalculator {
	return LeadTimeCalculator{}
}

// Forward computes delivery dates for a ship date. Options are sorted by
// ascending lead time and the fastest is marked best.
func (LeadTimeCalculator) Forward(bindings []EstimateBinding, shipDate time.Time) quote.EstimateResult {
	ship := midnight(shipDate)

	estimates := make([]quote.DeliveryEstimate, 0, len(bindings))
	for _, eb := range bindings {
		estimates = append(estimates, quote.DeliveryEstimate{
			CarrierID:     eb.Carrier.ID(),
			CarrierName:   eb.Carrier.LegalName(),
			TableName:     eb.Binding.TableName(),
			LeadTimeDays:  eb.Binding.LeadTimeDays(),
			ShipDate:      ship,
			DeliveryDate:  ship.AddDate(0, 0, eb.Binding.LeadTimeDays()),
			StateFallback: eb.StateFallback,
		})
	}

	sort.SliceStable(estimates, func(i, j int) bool {
		if estimates[i].LeadTimeDays != estimates[j].LeadTimeDays {
			return estimates[i].LeadTimeDays < estimates[j].LeadTimeDays
		}
		return estimates[i].CarrierName < estimates[j].CarrierName
	})

	if len(estimates) > 0 {
		estimates[0].Best = true
	}

	return quote.EstimateResult{Estimates: estimates, Feasible: len(estimates) > 0}
}

// Reverse computes latest ship dates for a desired delivery date. Each
// option's ship date is the delivery date minus its lead time; urgency
// classifies how many days remain until that ship date, counted from now.
// Feasible options sort before late ones, most comfortable first; when every
// option is late the result is infeasible and nothing is marked best.
func (LeadTimeCalculator) Reverse(
	bindings []EstimateBinding,
	deliveryDate time.Time,
	now time.Time,
) quote.EstimateResult {
	delivery := midnight(deliveryDate)

	estimates := make([]quote.DeliveryEstimate, 0, len(bindings))
	for _, eb := range bindings {
		ship := delivery.AddDate(0, 0, -eb.Binding.LeadTimeDays())
		estimates = append(estimates, quote.DeliveryEstimate{
			CarrierID:     eb.Carrier.ID(),
			CarrierName:   eb.Carrier.LegalName(),
			TableName:     eb.Binding.TableName(),
			LeadTimeDays:  eb.Binding.LeadTimeDays(),
			ShipDate:      ship,
			DeliveryDate:  delivery,
			Urgency:       quote.ClassifyDaysUntilShip(daysBetween(now, ship)),
			StateFallback: eb.StateFallback,
		})
	}

	sort.SliceStable(estimates, func(i, j int) bool {
		fi, fj := estimates[i].Urgency.Feasible(), estimates[j].Urgency.Feasible()
		if fi != fj {
			return fi
		}
		if !estimates[i].ShipDate.Equal(estimates[j].ShipDate) {
			// The later the ship date, the more slack remains.
			return estimates[i].ShipDate.After(estimates[j].ShipDate)
		}
		return estimates[i].CarrierName < estimates[j].CarrierName
	})

	feasible := len(estimates) > 0 && estimates[0].Urgency.Feasible()
	if feasible {
		estimates[0].Best = true
	}

	return quote.EstimateResult{Estimates: estimates, Feasible: feasible}
}
