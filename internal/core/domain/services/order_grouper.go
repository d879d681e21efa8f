package services

import (
	"fmt"
	"sort"

	"freightquote/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// CustomerGroup is the consolidated-pricing unit: every line of one customer,
// with the totals its candidates are priced at.
type CustomerGroup struct {
	CustomerTaxID string
	Lines         []*order.OrderLine
	TotalWeightKg decimal.Decimal
	TotalValue    decimal.Decimal
}

// LineResolution pairs an order line with its destination resolution.
type LineResolution struct {
	Line       *order.OrderLine
	Resolution Resolution
}

// OrderGrouper partitions order lines for the two pricing policies.
type OrderGrouper struct{}

// NewOrderGrouper creates an OrderGrouper.
func NewOrderGrouper() OrderGrouper {
	return OrderGrouper{}
}

// GroupByCustomer partitions lines by customer tax id, in stable order.
func (OrderGrouper) GroupByCustomer(lines []*order.OrderLine) []CustomerGroup {
	byCustomer := make(map[string]*CustomerGroup)
	for _, line := range lines {
		group, ok := byCustomer[line.CustomerTaxID()]
		if !ok {
			group = &CustomerGroup{
				CustomerTaxID: line.CustomerTaxID(),
				TotalWeightKg: decimal.Zero,
				TotalValue:    decimal.Zero,
			}
			byCustomer[line.CustomerTaxID()] = group
		}

		group.Lines = append(group.Lines, line)
		group.TotalWeightKg = group.TotalWeightKg.Add(line.WeightKg())
		group.TotalValue = group.TotalValue.Add(line.DeclaredValue())
	}

	out := make([]CustomerGroup, 0, len(byCustomer))
	for _, group := range byCustomer {
		out = append(out, *group)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CustomerTaxID < out[j].CustomerTaxID
	})
	return out
}

// DedicatedEligibility decides whether a batch qualifies for dedicated-truck
// pricing: every resolved line must land in the same state and carry the same
// sub-route tag. Pickup-only lines are not part of the route and are ignored.
// When the batch does not qualify the engine silently falls back to
// consolidated-only results; reason feeds the log line, nothing else.
func (OrderGrouper) DedicatedEligibility(resolutions []LineResolution) (state string, eligible bool, reason string) {
	subRoute := ""
	first := true

	for _, lr := range resolutions {
		if lr.Resolution.Kind == ResolutionNoDelivery {
			continue
		}
		if lr.Resolution.Kind != ResolutionResolved {
			return "", false, fmt.Sprintf("destination %q not resolved", lr.Line.DestinationName())
		}

		locState := NormalizeState(lr.Resolution.Location.State())
		if first {
			state = locState
			subRoute = lr.Line.SubRoute()
			first = false
			continue
		}

		if locState != state {
			return "", false, fmt.Sprintf("destinations span states %s and %s", state, locState)
		}
		if lr.Line.SubRoute() != subRoute {
			return "", false, "lines carry different sub-route tags"
		}
	}

	if first {
		return "", false, "no deliverable lines in batch"
	}
	return state, true, ""
}
