package queries_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"freightquote/internal/core/application/usecases/queries"
	"freightquote/internal/core/domain/model/carrier"
	"freightquote/internal/core/domain/model/kernel"
	"freightquote/internal/core/domain/model/location"
	"freightquote/internal/core/domain/model/order"
	"freightquote/internal/core/domain/model/quote"
	"freightquote/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSnapshots struct{ refs *services.ReferenceSet }

func (s stubSnapshots) Snapshot() *services.ReferenceSet { return s.refs }

func estimateRefs(t *testing.T) *services.ReferenceSet {
	t.Helper()

	rio, err := location.NewLocation(
		kernel.NewUUID(), "Rio de Janeiro", "RJ", "3304557",
		decimal.NewFromInt(20), false, false)
	require.NoError(t, err)
	niteroi, err := location.NewLocation(
		kernel.NewUUID(), "Niterói", "RJ", "3303302",
		decimal.NewFromInt(20), false, false)
	require.NoError(t, err)

	fast, err := carrier.NewCarrier(
		kernel.NewUUID(), "ALFA LOGISTICA LTDA", "11.111.111/0001-11", true, false, true, nil)
	require.NoError(t, err)
	slow, err := carrier.NewCarrier(
		kernel.NewUUID(), "BETA LOGISTICA LTDA", "22.222.222/0001-22", true, false, true, nil)
	require.NoError(t, err)

	fastBinding, err := carrier.NewServiceBinding(fast.ID(), "FRETE RJ", "3304557", 2, "")
	require.NoError(t, err)
	slowBinding, err := carrier.NewServiceBinding(slow.ID(), "FRETE RJ", "3304557", 6, "")
	require.NoError(t, err)

	return services.NewReferenceSet(
		[]*location.Location{rio, niteroi},
		[]*carrier.Carrier{fast, slow}, nil,
		[]*carrier.ServiceBinding{fastBinding, slowBinding}, nil)
}

func newEstimateHandler(refs *services.ReferenceSet, now time.Time) queries.DeliveryEstimateQueryHandler {
	return queries.NewDeliveryEstimateQueryHandler(
		stubSnapshots{refs: refs},
		services.NewLocationResolver(services.DefaultResolverConfig()),
		services.NewBindingIndex(),
		services.NewLeadTimeCalculator(),
	).WithClock(func() time.Time { return now })
}

func TestDeliveryEstimateQueryHandler_Handle(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	refs := estimateRefs(t)

	t.Run("should compute forward windows sorted by lead time", func(t *testing.T) {
		h := newEstimateHandler(refs, now)
		q, err := queries.NewDeliveryEstimateQuery(
			"Rio de Janeiro", "RJ", queries.EstimateModeForward, "2026-03-12")
		require.NoError(t, err)

		resp, err := h.Handle(t.Context(), q)

		require.NoError(t, err)
		require.Equal(t, quote.OutcomeOK, resp.Kind)
		require.Len(t, resp.Result.Estimates, 2)

		fastest := resp.Result.Estimates[0]
		assert.Equal(t, "ALFA LOGISTICA LTDA", fastest.CarrierName)
		assert.True(t, fastest.Best)
		assert.True(t, fastest.DeliveryDate.Equal(
			time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("should compute reverse windows with urgency", func(t *testing.T) {
		h := newEstimateHandler(refs, now)
		q, err := queries.NewDeliveryEstimateQuery(
			"Rio de Janeiro", "RJ", queries.EstimateModeReverse, "2026-03-20")
		require.NoError(t, err)

		resp, err := h.Handle(t.Context(), q)

		require.NoError(t, err)
		require.Equal(t, quote.OutcomeOK, resp.Kind)
		require.True(t, resp.Result.Feasible)
		require.Len(t, resp.Result.Estimates, 2)

		// Lead 2 ships on the 18th, lead 6 on the 14th; both comfortably OK.
		best := resp.Result.Estimates[0]
		assert.Equal(t, "ALFA LOGISTICA LTDA", best.CarrierName)
		assert.Equal(t, quote.UrgencyOK, best.Urgency)
		assert.True(t, best.Best)
	})

	t.Run("should report infeasible when the deadline already passed", func(t *testing.T) {
		h := newEstimateHandler(refs, now)
		q, err := queries.NewDeliveryEstimateQuery(
			"Rio de Janeiro", "RJ", queries.EstimateModeReverse, "today")
		require.NoError(t, err)

		resp, err := h.Handle(t.Context(), q)

		require.NoError(t, err)
		require.Equal(t, quote.OutcomeOK, resp.Kind)
		assert.False(t, resp.Result.Feasible)
		for _, e := range resp.Result.Estimates {
			assert.Equal(t, quote.UrgencyLate, e.Urgency)
		}
	})

	t.Run("should fall back to state bindings for uncovered locality", func(t *testing.T) {
		h := newEstimateHandler(refs, now)
		q, err := queries.NewDeliveryEstimateQuery(
			"Niterói", "RJ", queries.EstimateModeForward, "tomorrow")
		require.NoError(t, err)

		resp, err := h.Handle(t.Context(), q)

		require.NoError(t, err)
		require.Equal(t, quote.OutcomeOK, resp.Kind)
		require.NotEmpty(t, resp.Result.Estimates)
		for _, e := range resp.Result.Estimates {
			assert.True(t, e.StateFallback)
		}
	})

	t.Run("should report no coverage for unknown destination", func(t *testing.T) {
		h := newEstimateHandler(refs, now)
		q, err := queries.NewDeliveryEstimateQuery(
			"Cidade Fantasma", "", queries.EstimateModeForward, "today")
		require.NoError(t, err)

		resp, err := h.Handle(t.Context(), q)

		require.NoError(t, err)
		assert.Equal(t, quote.OutcomeNoCoverage, resp.Kind)
		assert.Contains(t, resp.Reason, "not found")
	})

	t.Run("should return error for invalid date expression", func(t *testing.T) {
		h := newEstimateHandler(refs, now)
		q, err := queries.NewDeliveryEstimateQuery(
			"Rio de Janeiro", "RJ", queries.EstimateModeForward, "soonish")
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), q)

		require.Error(t, err)
	})
}

func TestQuoteOrdersQueryHandler_Handle(t *testing.T) {
	t.Run("should price the batch against the snapshot", func(t *testing.T) {
		rio, err := location.NewLocation(
			kernel.NewUUID(), "Rio de Janeiro", "RJ", "3304557",
			decimal.Zero, false, false)
		require.NoError(t, err)
		c, err := carrier.NewCarrier(
			kernel.NewUUID(), "ALFA LOGISTICA LTDA", "11.111.111/0001-11", true, false, true, nil)
		require.NoError(t, err)
		table, err := carrier.NewRateTable(carrier.RateTableParams{
			ID:               kernel.NewUUID(),
			CarrierID:        c.ID(),
			OriginState:      "SP",
			DestinationState: "RJ",
			Name:             "FRETE RJ",
			CargoType:        carrier.CargoTypeConsolidated,
			Modality:         carrier.ModalityByWeight,
			PerKgRate:        decimal.NewFromInt(2),
		})
		require.NoError(t, err)
		binding, err := carrier.NewServiceBinding(c.ID(), "FRETE RJ", "3304557", 3, "")
		require.NoError(t, err)

		refs := services.NewReferenceSet(
			[]*location.Location{rio},
			[]*carrier.Carrier{c},
			[]*carrier.RateTable{table},
			[]*carrier.ServiceBinding{binding}, nil)

		shopper := services.NewRateShopper(
			services.NewLocationResolver(services.DefaultResolverConfig()),
			services.NewBindingIndex(),
			services.NewFeeCalculator(),
			services.NewVehicleCapacityFilter(nil),
			services.NewOrderGrouper(),
			slog.New(slog.NewTextHandler(io.Discard, nil)),
		)
		h := queries.NewQuoteOrdersQueryHandler(stubSnapshots{refs: refs}, shopper)

		lines := []*order.OrderLine{batchLine(t, "111", "Rio de Janeiro", "RJ")}
		q, err := queries.NewQuoteOrdersQuery(lines, "SP")
		require.NoError(t, err)

		result, err := h.Handle(t.Context(), q)

		require.NoError(t, err)
		require.Len(t, result.Consolidated, 1)
		require.True(t, result.Consolidated[0].Outcome.IsOK())
		options := result.Consolidated[0].Outcome.Options()
		require.Len(t, options, 1)
		assert.True(t, options[0].Fees.Gross.Equal(decimal.NewFromInt(100)))
	})

	t.Run("should reject query not built through constructor", func(t *testing.T) {
		h := queries.NewQuoteOrdersQueryHandler(stubSnapshots{}, services.RateShopper{})

		_, err := h.Handle(t.Context(), queries.QuoteOrdersQuery{})

		require.ErrorIs(t, err, queries.ErrQuoteOrdersQueryIsNotConstructed)
	})
}
