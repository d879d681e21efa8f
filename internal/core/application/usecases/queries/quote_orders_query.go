// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Rate shopping and delivery estimation are both pure reads over the
// reference snapshot, so they live here.
package queries

import (
	"errors"

	"freightquote/internal/core/domain/model/order"
	"freightquote/internal/pkg/guard"
)

var (
	ErrQuoteOrdersQueryIsNotConstructed = errors.New(
		"QuoteOrdersQuery must be created via NewQuoteOrdersQuery constructor",
	)
	ErrNoOrderLines       = errors.New("at least one order line is required")
	ErrOriginStateInvalid = errors.New("origin state must be a two-letter code")
)

// QuoteOrdersQuery requests a rate-shopping run over a batch of order lines
// departing from one origin state.
type QuoteOrdersQuery struct { //nolint:recvcheck //using for validation
	lines       []*order.OrderLine
	originState string

	guard guard.ConstructorGuard
}

// NewQuoteOrdersQuery creates a query for one batch. Every line must already
// be a constructed order.OrderLine; originState is the departure state code.
func NewQuoteOrdersQuery(lines []*order.OrderLine, originState string) (QuoteOrdersQuery, error) {
	q := QuoteOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setLines(lines),
		q.setOriginState(originState),
	); err != nil {
		return QuoteOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrQuoteOrdersQueryIsNotConstructed if validation fails.
func (q QuoteOrdersQuery) Validate() error {
	return q.guard.Validate(ErrQuoteOrdersQueryIsNotConstructed)
}

// Lines returns the batch of order lines to price.
func (q QuoteOrdersQuery) Lines() []*order.OrderLine {
	return q.lines
}

// OriginState returns the departure state code.
func (q QuoteOrdersQuery) OriginState() string {
	return q.originState
}

func (q *QuoteOrdersQuery) setLines(lines []*order.OrderLine) error {
	if len(lines) == 0 {
		return ErrNoOrderLines
	}

	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	q.lines = lines
	return nil
}

func (q *QuoteOrdersQuery) setOriginState(state string) error {
	if len(state) != 2 {
		return ErrOriginStateInvalid
	}

	q.originState = state
	return nil
}
