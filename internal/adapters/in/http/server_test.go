package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpadapter "freightquote/internal/adapters/in/http"
	"freightquote/internal/core/application/usecases/commands"
	"freightquote/internal/core/application/usecases/queries"
	"freightquote/internal/core/domain/model/carrier"
	"freightquote/internal/core/domain/model/kernel"
	"freightquote/internal/core/domain/model/location"
	"freightquote/internal/core/domain/model/order"
	"freightquote/internal/core/domain/services"
	"freightquote/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubSnapshots struct {
	refs *services.ReferenceSet
}

func (s stubSnapshots) Snapshot() *services.ReferenceSet {
	return s.refs
}

// MockOrderLineRepository is a mock implementation of ports.OrderLineRepository.
type MockOrderLineRepository struct {
	mock.Mock
}

func (m *MockOrderLineRepository) Add(ctx context.Context, line *order.OrderLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockOrderLineRepository) Update(ctx context.Context, line *order.OrderLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockOrderLineRepository) Get(ctx context.Context, id kernel.UUID) (*order.OrderLine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.OrderLine), args.Error(1)
}

func (m *MockOrderLineRepository) GetByOrderRef(ctx context.Context, ref string) ([]*order.OrderLine, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.OrderLine), args.Error(1)
}

// MockOrderLineUoW is a mock implementation of commands.OrderLineUoW.
type MockOrderLineUoW struct {
	mock.Mock
	repo *MockOrderLineRepository
}

func (m *MockOrderLineUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderLineUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderLineUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderLineUoW) OrderLineRepository() ports.OrderLineRepository {
	return m.repo
}

// MockOrderLineUoWFactory is a mock implementation of commands.OrderLineUoWFactory.
type MockOrderLineUoWFactory struct {
	uow *MockOrderLineUoW
}

func (f *MockOrderLineUoWFactory) Create() commands.OrderLineUoW {
	return f.uow
}

// serverRefs builds a snapshot with one served destination: Rio de Janeiro/RJ,
// carried by ALFA on a simplified-regime weight table so quoted amounts stay flat.
func serverRefs(t *testing.T) *services.ReferenceSet {
	t.Helper()

	rio, err := location.NewLocation(kernel.NewUUID(), "Rio de Janeiro", "RJ", "3304557",
		decimal.RequireFromString("12"), false, false)
	require.NoError(t, err)

	alfa, err := carrier.NewCarrier(kernel.NewUUID(), "ALFA LOGISTICA LTDA", "11222333000144",
		true, true, true, nil)
	require.NoError(t, err)

	table, err := carrier.NewRateTable(carrier.RateTableParams{
		ID:               kernel.NewUUID(),
		CarrierID:        alfa.ID(),
		OriginState:      "SP",
		DestinationState: "RJ",
		Name:             "FRETE RJ",
		CargoType:        carrier.CargoTypeConsolidated,
		Modality:         carrier.ModalityByWeight,
		PerKgRate:        decimal.RequireFromString("2"),
		MinWeightFee:     decimal.RequireFromString("50"),
	})
	require.NoError(t, err)

	binding, err := carrier.NewServiceBinding(alfa.ID(), "FRETE RJ", "3304557", 3, "")
	require.NoError(t, err)

	return services.NewReferenceSet(
		[]*location.Location{rio},
		[]*carrier.Carrier{alfa},
		[]*carrier.RateTable{table},
		[]*carrier.ServiceBinding{binding},
		nil,
	)
}

func newTestServer(t *testing.T, uowFactory commands.OrderLineUoWFactory) *httpadapter.Server {
	t.Helper()

	snapshots := stubSnapshots{refs: serverRefs(t)}
	resolver := services.NewLocationResolver(services.DefaultResolverConfig())
	shopper := services.NewRateShopper(
		resolver,
		services.NewBindingIndex(),
		services.NewFeeCalculator(),
		services.NewVehicleCapacityFilter(nil),
		services.NewOrderGrouper(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	return httpadapter.NewServer(
		commands.NewPersistDestinationCommandHandler(uowFactory, snapshots, resolver),
		queries.NewQuoteOrdersQueryHandler(snapshots, shopper),
		queries.NewDeliveryEstimateQueryHandler(
			snapshots, resolver, services.NewBindingIndex(), services.NewLeadTimeCalculator()),
	)
}

func doJSON(server *httpadapter.Server, handler func(echo.Context) error,
	method, path, body string, params map[string]string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	for name, value := range params {
		ctx.SetParamNames(name)
		ctx.SetParamValues(value)
	}
	_ = handler(ctx)
	return rec
}

func TestServer_QuoteOrders(t *testing.T) {
	server := newTestServer(t, &MockOrderLineUoWFactory{})

	t.Run("should quote a valid batch", func(t *testing.T) {
		body := `{
			"origin_state": "SP",
			"lines": [{
				"order_ref": "PED-100",
				"customer_tax_id": "12345678000190",
				"destination_city": "Rio de Janeiro",
				"destination_state": "RJ",
				"weight_kg": 50,
				"declared_value": 1000
			}]
		}`

		rec := doJSON(server, server.QuoteOrders, http.MethodPost, "/api/v1/quotes", body, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp httpadapter.QuoteResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Consolidated, 1)

		outcome := resp.Consolidated[0].Outcome
		require.Equal(t, "OK", outcome.Kind)
		require.Len(t, outcome.Options, 1)

		option := outcome.Options[0]
		require.Equal(t, "ALFA LOGISTICA LTDA", option.CarrierName)
		require.True(t, option.Best)
		// 50kg at 2/kg clears the 50 floor; simplified regime means no gross-up
		require.True(t, option.Fees.Gross.Equal(decimal.RequireFromString("100")))
		require.NotNil(t, option.LeadTimeDays)
		require.Equal(t, 3, *option.LeadTimeDays)
	})

	t.Run("should report no coverage for an unknown destination", func(t *testing.T) {
		body := `{
			"origin_state": "SP",
			"lines": [{
				"order_ref": "PED-101",
				"customer_tax_id": "12345678000190",
				"destination_city": "Cidade Inexistente",
				"weight_kg": 10,
				"declared_value": 100
			}]
		}`

		rec := doJSON(server, server.QuoteOrders, http.MethodPost, "/api/v1/quotes", body, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp httpadapter.QuoteResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Consolidated, 1)
		require.Equal(t, "NO_COVERAGE", resp.Consolidated[0].Outcome.Kind)
	})

	t.Run("should reject a line with non-positive weight", func(t *testing.T) {
		body := `{
			"origin_state": "SP",
			"lines": [{
				"order_ref": "PED-102",
				"customer_tax_id": "12345678000190",
				"destination_city": "Rio de Janeiro",
				"weight_kg": 0,
				"declared_value": 100
			}]
		}`

		rec := doJSON(server, server.QuoteOrders, http.MethodPost, "/api/v1/quotes", body, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject an empty batch", func(t *testing.T) {
		rec := doJSON(server, server.QuoteOrders, http.MethodPost, "/api/v1/quotes",
			`{"origin_state": "SP", "lines": []}`, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject a malformed body", func(t *testing.T) {
		rec := doJSON(server, server.QuoteOrders, http.MethodPost, "/api/v1/quotes", "{not json", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_EstimateDelivery(t *testing.T) {
	server := newTestServer(t, &MockOrderLineUoWFactory{})

	t.Run("should compute forward delivery windows", func(t *testing.T) {
		body := `{
			"destination_city": "Rio de Janeiro",
			"destination_state": "RJ",
			"mode": "forward",
			"date": "2026-03-10"
		}`

		rec := doJSON(server, server.EstimateDelivery, http.MethodPost, "/api/v1/delivery-estimates", body, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp httpadapter.EstimateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "OK", resp.Kind)
		require.True(t, resp.Feasible)
		require.Len(t, resp.Estimates, 1)
		require.Equal(t, "2026-03-13", resp.Estimates[0].DeliveryDate)
		require.True(t, resp.Estimates[0].Best)
	})

	t.Run("should compute reverse ship dates with urgency", func(t *testing.T) {
		body := `{
			"destination_city": "Rio de Janeiro",
			"mode": "reverse",
			"date": "31/12/2099"
		}`

		rec := doJSON(server, server.EstimateDelivery, http.MethodPost, "/api/v1/delivery-estimates", body, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp httpadapter.EstimateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "OK", resp.Kind)
		require.Len(t, resp.Estimates, 1)
		require.Equal(t, "2099-12-28", resp.Estimates[0].ShipDate)
		require.Equal(t, "OK", resp.Estimates[0].Urgency)
	})

	t.Run("should report no coverage for an unknown city", func(t *testing.T) {
		body := `{"destination_city": "Cidade Inexistente", "mode": "forward", "date": "today"}`

		rec := doJSON(server, server.EstimateDelivery, http.MethodPost, "/api/v1/delivery-estimates", body, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp httpadapter.EstimateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "NO_COVERAGE", resp.Kind)
	})

	t.Run("should reject an unparseable date", func(t *testing.T) {
		body := `{"destination_city": "Rio de Janeiro", "mode": "forward", "date": "someday"}`

		rec := doJSON(server, server.EstimateDelivery, http.MethodPost, "/api/v1/delivery-estimates", body, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject an unknown mode", func(t *testing.T) {
		body := `{"destination_city": "Rio de Janeiro", "mode": "sideways", "date": "today"}`

		rec := doJSON(server, server.EstimateDelivery, http.MethodPost, "/api/v1/delivery-estimates", body, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_PersistDestination(t *testing.T) {
	newPendingLine := func(t *testing.T, city, state string) *order.OrderLine {
		t.Helper()
		line, err := order.NewOrderLine(kernel.NewUUID(), "PED-200", "12345678000190",
			city, state, decimal.NewFromInt(10), decimal.NewFromInt(100), order.RouteTagNormal, "")
		require.NoError(t, err)
		return line
	}

	t.Run("should persist a resolved destination", func(t *testing.T) {
		line := newPendingLine(t, "Rio de Janeiro", "RJ")

		repo := new(MockOrderLineRepository)
		uow := &MockOrderLineUoW{repo: repo}
		uow.On("Begin", mock.Anything).Return(nil).Once()
		repo.On("Get", mock.Anything, line.ID()).Return(line, nil).Once()
		repo.On("Update", mock.Anything, line).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Maybe()

		server := newTestServer(t, &MockOrderLineUoWFactory{uow: uow})

		rec := doJSON(server, server.PersistDestination, http.MethodPost,
			"/api/v1/order-lines/"+line.ID().String()+"/destination", "",
			map[string]string{"id": line.ID().String()})

		require.Equal(t, http.StatusNoContent, rec.Code)
		uow.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("should answer 404 when the destination cannot be resolved", func(t *testing.T) {
		line := newPendingLine(t, "Cidade Inexistente", "")

		repo := new(MockOrderLineRepository)
		uow := &MockOrderLineUoW{repo: repo}
		uow.On("Begin", mock.Anything).Return(nil).Once()
		repo.On("Get", mock.Anything, line.ID()).Return(line, nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()

		server := newTestServer(t, &MockOrderLineUoWFactory{uow: uow})

		rec := doJSON(server, server.PersistDestination, http.MethodPost,
			"/api/v1/order-lines/"+line.ID().String()+"/destination", "",
			map[string]string{"id": line.ID().String()})

		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should answer 400 for a malformed line id", func(t *testing.T) {
		server := newTestServer(t, &MockOrderLineUoWFactory{})

		rec := doJSON(server, server.PersistDestination, http.MethodPost,
			"/api/v1/order-lines/not-a-uuid/destination", "",
			map[string]string{"id": "not-a-uuid"})

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
