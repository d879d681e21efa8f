package queries

import (
	"context"
	"fmt"
	"time"

	"freightquote/internal/core/domain/model/order"
	"freightquote/internal/core/domain/model/quote"
	"freightquote/internal/core/domain/services"
	"freightquote/internal/core/ports"
)

// DeliveryEstimateQueryResponse is the tagged result of a delivery-window
// query. Kind follows the same three-way split as rate shopping: OK carries
// the estimates, Ambiguous carries the candidate states, NoCoverage a reason.
type DeliveryEstimateQueryResponse struct {
	Kind            quote.OutcomeKind
	Destination     string
	CandidateStates []string
	Reason          string
	Result          quote.EstimateResult
}

// DeliveryEstimateQueryHandler resolves the destination and computes delivery
// windows from the service bindings that cover it, falling back to state-wide
// bindings when no exact one exists.
type DeliveryEstimateQueryHandler struct {
	snapshots ports.SnapshotProvider
	resolver  services.LocationResolver
	index     services.BindingIndex
	leadTimes services.LeadTimeCalculator

	// now is swapped in tests; reverse-mode urgency depends on it.
	now func() time.Time
}

// NewDeliveryEstimateQueryHandler creates a handler for delivery-window queries.
func NewDeliveryEstimateQueryHandler(
	snapshots ports.SnapshotProvider,
	resolver services.LocationResolver,
	index services.BindingIndex,
	leadTimes services.LeadTimeCalculator,
) DeliveryEstimateQueryHandler {
	return DeliveryEstimateQueryHandler{
		snapshots: snapshots,
		resolver:  resolver,
		index:     index,
		leadTimes: leadTimes,
		now:       time.Now,
	}
}

// WithClock returns a copy of the handler using a fixed clock.
func (h DeliveryEstimateQueryHandler) WithClock(now func() time.Time) DeliveryEstimateQueryHandler {
	h.now = now
	return h
}

// Handle resolves the destination, parses the date expression and computes
// the delivery windows for the requested mode.
func (h DeliveryEstimateQueryHandler) Handle(
	ctx context.Context,
	query DeliveryEstimateQuery,
) (DeliveryEstimateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return DeliveryEstimateQueryResponse{}, err
	}

	if err := ctx.Err(); err != nil {
		return DeliveryEstimateQueryResponse{}, err
	}

	now := h.now()
	date, err := services.ParseDateExpression(query.DateExpression(), now)
	if err != nil {
		return DeliveryEstimateQueryResponse{}, err
	}

	refs := h.snapshots.Snapshot()
	res := h.resolver.Resolve(refs, query.DestinationName(), query.DestinationState(), order.RouteTagNormal)

	switch res.Kind {
	case services.ResolutionResolved:
		// fall through to the window computation
	case services.ResolutionAmbiguous:
		return DeliveryEstimateQueryResponse{
			Kind:            quote.OutcomeAmbiguous,
			Destination:     res.Input,
			CandidateStates: res.CandidateStates,
		}, nil
	case services.ResolutionNoDelivery:
		return DeliveryEstimateQueryResponse{
			Kind:        quote.OutcomeNoCoverage,
			Destination: res.Input,
			Reason:      fmt.Sprintf("destination %q is pickup-only", res.Input),
		}, nil
	default:
		return DeliveryEstimateQueryResponse{
			Kind:        quote.OutcomeNoCoverage,
			Destination: res.Input,
			Reason:      fmt.Sprintf("destination %q not found in reference data", res.Input),
		}, nil
	}

	bindings := h.index.EstimateBindings(refs, res.Location)
	if len(bindings) == 0 {
		return DeliveryEstimateQueryResponse{
			Kind:        quote.OutcomeNoCoverage,
			Destination: res.Input,
			Reason:      fmt.Sprintf("no carrier serves %s", res.Location),
		}, nil
	}

	var result quote.EstimateResult
	if query.Mode() == EstimateModeForward {
		result = h.leadTimes.Forward(bindings, date)
	} else {
		result = h.leadTimes.Reverse(bindings, date, now)
	}

	return DeliveryEstimateQueryResponse{
		Kind:        quote.OutcomeOK,
		Destination: res.Input,
		Result:      result,
	}, nil
}
