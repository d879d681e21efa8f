// Package http exposes the quotation engine over a small JSON API.
// It coordinates between HTTP handlers and application use cases.
package http

import (
	"errors"
	"net/http"

	"freightquote/internal/core/application/usecases/commands"
	"freightquote/internal/core/application/usecases/queries"
	"freightquote/internal/core/domain/model/kernel"
	"freightquote/internal/core/domain/model/order"
	"freightquote/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires the HTTP endpoints to command and query handlers.
type Server struct {
	// Command handlers
	persistDestinationHandler commands.PersistDestinationCommandHandler

	// Query handlers
	quoteOrdersHandler      queries.QuoteOrdersQueryHandler
	deliveryEstimateHandler queries.DeliveryEstimateQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	persistDestinationHandler commands.PersistDestinationCommandHandler,
	quoteOrdersHandler queries.QuoteOrdersQueryHandler,
	deliveryEstimateHandler queries.DeliveryEstimateQueryHandler,
) *Server {
	return &Server{
		persistDestinationHandler: persistDestinationHandler,
		quoteOrdersHandler:        quoteOrdersHandler,
		deliveryEstimateHandler:   deliveryEstimateHandler,
	}
}

// RegisterRoutes mounts all endpoints on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/quotes", s.QuoteOrders)
	api.POST("/delivery-estimates", s.EstimateDelivery)
	api.POST("/order-lines/:id/destination", s.PersistDestination)
}

// QuoteOrders handles POST /api/v1/quotes - prices a batch of pending lines.
func (s *Server) QuoteOrders(ctx echo.Context) error {
	var req QuoteRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	lines := make([]*order.OrderLine, 0, len(req.Lines))
	for _, lineReq := range req.Lines {
		line, err := toDomainLine(lineReq)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid order line: " + err.Error(),
			})
		}
		lines = append(lines, line)
	}

	query, err := queries.NewQuoteOrdersQuery(lines, req.OriginState)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid quote request: " + err.Error(),
		})
	}

	result, err := s.quoteOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to quote orders",
		})
	}

	return ctx.JSON(http.StatusOK, batchResultToDTO(result))
}

// EstimateDelivery handles POST /api/v1/delivery-estimates - computes
// delivery windows for a destination.
func (s *Server) EstimateDelivery(ctx echo.Context) error {
	var req EstimateRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	mode := queries.EstimateMode(req.Mode)
	query, err := queries.NewDeliveryEstimateQuery(req.DestinationCity, req.DestinationState, mode, req.Date)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid estimate request: " + err.Error(),
		})
	}

	resp, err := s.deliveryEstimateHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		var invalidErr *errs.ValueIsInvalidError
		if errors.As(err, &invalidErr) {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid estimate request: " + err.Error(),
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to compute delivery estimate",
		})
	}

	return ctx.JSON(http.StatusOK, estimateResponseToDTO(resp, mode))
}

// PersistDestination handles POST /api/v1/order-lines/:id/destination -
// resolves the line's destination and stores the normalized fields.
func (s *Server) PersistDestination(ctx echo.Context) error {
	lineID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order line id",
		})
	}

	cmd, err := commands.NewPersistDestinationCommand(lineID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request: " + err.Error(),
		})
	}

	if handleErr := s.persistDestinationHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		switch {
		case errors.Is(handleErr, commands.ErrDestinationAmbiguous):
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: handleErr.Error(),
			})
		case isNotFound(handleErr):
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: handleErr.Error(),
			})
		default:
			return ctx.JSON(http.StatusInternalServerError, Error{
				Code:    http.StatusInternalServerError,
				Message: "Failed to persist destination",
			})
		}
	}

	return ctx.NoContent(http.StatusNoContent)
}

func isNotFound(err error) bool {
	var notFoundErr *errs.ObjectNotFoundError
	return errors.Is(err, commands.ErrDestinationNotFound) || errors.As(err, &notFoundErr)
}

// toDomainLine converts a request line into the domain entity, generating an
// identifier when the caller did not supply one.
func toDomainLine(req QuoteRequestLine) (*order.OrderLine, error) {
	id := kernel.NewUUID()
	if req.ID != "" {
		parsed, err := kernel.UUIDFromString(req.ID)
		if err != nil {
			return nil, err
		}
		id = parsed
	}

	tag, err := order.RouteTagFromString(req.RouteTag)
	if err != nil {
		return nil, err
	}

	return order.NewOrderLine(
		id,
		req.OrderRef,
		req.CustomerTaxID,
		req.DestinationCity,
		req.DestinationState,
		req.WeightKg,
		req.DeclaredValue,
		tag,
		req.SubRoute,
	)
}
