package queries

import (
	"errors"

	"freightquote/internal/pkg/guard"
)

// EstimateMode selects the direction of a delivery-window computation.
type EstimateMode string

const (
	// EstimateModeForward answers "shipping on D, when does it arrive".
	EstimateModeForward EstimateMode = "forward"

	// EstimateModeReverse answers "to arrive by D, when must it ship".
	EstimateModeReverse EstimateMode = "reverse"
)

var (
	ErrDeliveryEstimateQueryIsNotConstructed = errors.New(
		"DeliveryEstimateQuery must be created via NewDeliveryEstimateQuery constructor",
	)
	ErrDestinationIsRequired = errors.New("destination name is required")
	ErrEstimateModeInvalid   = errors.New("mode must be forward or reverse")
	ErrDateIsRequired        = errors.New("date expression is required")
)

// DeliveryEstimateQuery requests delivery-window options for one destination.
// The date expression is interpreted as the ship date in forward mode and as
// the desired delivery date in reverse mode.
type DeliveryEstimateQuery struct { //nolint:recvcheck //using for validation
	destinationName  string
	destinationState string
	mode             EstimateMode
	dateExpression   string

	guard guard.ConstructorGuard
}

// NewDeliveryEstimateQuery creates a delivery-window query.
// destinationState may be empty; the resolver then disambiguates by name.
func NewDeliveryEstimateQuery(
	destinationName string,
	destinationState string,
	mode EstimateMode,
	dateExpression string,
) (DeliveryEstimateQuery, error) {
	q := DeliveryEstimateQuery{
		destinationState: destinationState,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setDestinationName(destinationName),
		q.setMode(mode),
		q.setDateExpression(dateExpression),
	); err != nil {
		return DeliveryEstimateQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrDeliveryEstimateQueryIsNotConstructed if validation fails.
func (q DeliveryEstimateQuery) Validate() error {
	return q.guard.Validate(ErrDeliveryEstimateQueryIsNotConstructed)
}

// DestinationName returns the literal destination city text.
func (q DeliveryEstimateQuery) DestinationName() string {
	return q.destinationName
}

// DestinationState returns the supplied state code, possibly empty.
func (q DeliveryEstimateQuery) DestinationState() string {
	return q.destinationState
}

// Mode returns the computation direction.
func (q DeliveryEstimateQuery) Mode() EstimateMode {
	return q.mode
}

// DateExpression returns the raw date expression to parse.
func (q DeliveryEstimateQuery) DateExpression() string {
	return q.dateExpression
}

func (q *DeliveryEstimateQuery) setDestinationName(name string) error {
	if name == "" {
		return ErrDestinationIsRequired
	}

	q.destinationName = name
	return nil
}

func (q *DeliveryEstimateQuery) setMode(mode EstimateMode) error {
	if mode != EstimateModeForward && mode != EstimateModeReverse {
		return ErrEstimateModeInvalid
	}

	q.mode = mode
	return nil
}

func (q *DeliveryEstimateQuery) setDateExpression(expr string) error {
	if expr == "" {
		return ErrDateIsRequired
	}

	q.dateExpression = expr
	return nil
}
