package queries

import (
	"context"

	"freightquote/internal/core/domain/model/quote"
	"freightquote/internal/core/domain/services"
	"freightquote/internal/core/ports"
)

// QuoteOrdersQueryHandler runs the rate-shopping pipeline over the current
// reference snapshot. The handler is stateless; every request prices against
// whatever snapshot the provider holds at that moment.
type QuoteOrdersQueryHandler struct {
	snapshots ports.SnapshotProvider
	shopper   services.RateShopper
}

// NewQuoteOrdersQueryHandler creates a handler for rate-shopping queries.
func NewQuoteOrdersQueryHandler(
	snapshots ports.SnapshotProvider,
	shopper services.RateShopper,
) QuoteOrdersQueryHandler {
	return QuoteOrdersQueryHandler{
		snapshots: snapshots,
		shopper:   shopper,
	}
}

// Handle prices the batch and returns the full result: consolidated outcomes
// per customer plus the dedicated-truck outcome when the batch qualifies.
func (h QuoteOrdersQueryHandler) Handle(
	ctx context.Context,
	query QuoteOrdersQuery,
) (quote.BatchResult, error) {
	if err := query.Validate(); err != nil {
		return quote.BatchResult{}, err
	}

	if err := ctx.Err(); err != nil {
		return quote.BatchResult{}, err
	}

	refs := h.snapshots.Snapshot()
	return h.shopper.Shop(refs, query.Lines(), query.OriginState()), nil
}
