package order

import (
	"errors"

	"freightquote/internal/core/domain/model/kernel"
	"freightquote/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderLineIsNotConstructed is returned when an OrderLine instance was
	// not created through the NewOrderLine factory method.
	ErrOrderLineIsNotConstructed = errors.New("OrderLine must be created via NewOrderLine constructor")

	// ErrNormalizationIncomplete is returned when ApplyNormalization is called
	// with partial destination data.
	ErrNormalizationIncomplete = errors.New("normalized destination requires locality code, name and state")
)

// OrderLine is one pending order awaiting a freight quote. Lines are supplied
// per request by the order-management collaborator; the engine reads them,
// prices them, and discards them.
//
// Invariants:
//   - Must have a valid unique identifier and a non-empty order reference
//   - Customer tax id and destination name are required
//   - Weight and declared value are positive
//   - Route tag is one of NORMAL, FOB, RED
//
// The normalized-destination fields are the one mutable part: resolution is a
// pure computation, and writing its outcome back onto the line happens only
// through the explicit ApplyNormalization call invoked by the persist command.
type OrderLine struct {
	id              kernel.UUID
	orderRef        string
	customerTaxID   string
	destinationName string
	// destinationState may be empty; the resolver then disambiguates by name
	// and reports an ambiguous outcome when several states match.
	destinationState string
	weightKg         decimal.Decimal
	declaredValue    decimal.Decimal
	routeTag         RouteTag
	subRoute         string

	normalizedLocalityCode string
	normalizedName         string
	normalizedState        string

	isConstructed bool
}

// NewOrderLine creates an OrderLine with validation.
func NewOrderLine(
	id kernel.UUID,
	orderRef string,
	customerTaxID string,
	destinationName string,
	destinationState string,
	weightKg decimal.Decimal,
	declaredValue decimal.Decimal,
	routeTag RouteTag,
	subRoute string,
) (*OrderLine, error) {
	line := &OrderLine{
		destinationState: destinationState,
		subRoute:         subRoute,
		isConstructed:    true,
	}

	if err := errors.Join(
		line.setID(id),
		line.setOrderRef(orderRef),
		line.setCustomerTaxID(customerTaxID),
		line.setDestinationName(destinationName),
		line.setWeightKg(weightKg),
		line.setDeclaredValue(declaredValue),
		line.setRouteTag(routeTag),
	); err != nil {
		return nil, err
	}

	return line, nil
}

// RestoreOrderLine reconstructs a line from persistence, including a
// previously persisted normalized destination. Used by repository adapters.
func RestoreOrderLine(
	id kernel.UUID,
	orderRef string,
	customerTaxID string,
	destinationName string,
	destinationState string,
	weightKg decimal.Decimal,
	declaredValue decimal.Decimal,
	routeTag RouteTag,
	subRoute string,
	normalizedLocalityCode string,
	normalizedName string,
	normalizedState string,
) (*OrderLine, error) {
	line, err := NewOrderLine(id, orderRef, customerTaxID, destinationName, destinationState,
		weightKg, declaredValue, routeTag, subRoute)
	if err != nil {
		return nil, err
	}

	line.normalizedLocalityCode = normalizedLocalityCode
	line.normalizedName = normalizedName
	line.normalizedState = normalizedState
	return line, nil
}

// Validate ensures the OrderLine was constructed through NewOrderLine.
func (l *OrderLine) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrOrderLineIsNotConstructed
	}
	return nil
}

// IsEqual compares two order lines by their unique identifiers.
func (l *OrderLine) IsEqual(other *OrderLine) bool {
	return other != nil && l.id.IsEqual(other.id)
}

// ID returns the line's unique identifier.
func (l *OrderLine) ID() kernel.UUID {
	return l.id
}

// OrderRef returns the order-management reference this line belongs to.
func (l *OrderLine) OrderRef() string {
	return l.orderRef
}

// CustomerTaxID returns the customer's tax identifier, the consolidated
// pricing grouping key.
func (l *OrderLine) CustomerTaxID() string {
	return l.customerTaxID
}

// DestinationName returns the literal destination city text as supplied.
func (l *OrderLine) DestinationName() string {
	return l.destinationName
}

// DestinationState returns the supplied state code, possibly empty.
func (l *OrderLine) DestinationState() string {
	return l.destinationState
}

// WeightKg returns the shipment weight of this line.
func (l *OrderLine) WeightKg() decimal.Decimal {
	return l.weightKg
}

// DeclaredValue returns the declared cargo value of this line.
func (l *OrderLine) DeclaredValue() decimal.Decimal {
	return l.declaredValue
}

// RouteTag returns the routing classification (NORMAL, FOB, RED).
func (l *OrderLine) RouteTag() RouteTag {
	return l.routeTag
}

// SubRoute returns the optional sub-route tag used for dedicated-pricing
// eligibility; empty when not tagged.
func (l *OrderLine) SubRoute() string {
	return l.subRoute
}

// NormalizedDestination returns the persisted resolution outcome
// (locality code, canonical name, state). ok is false when the line has
// never been normalized.
func (l *OrderLine) NormalizedDestination() (localityCode, name, state string, ok bool) {
	if l.normalizedLocalityCode == "" {
		return "", "", "", false
	}
	return l.normalizedLocalityCode, l.normalizedName, l.normalizedState, true
}

// ApplyNormalization records a resolved destination on the line. Resolution
// itself never mutates the line; callers decide if and when to persist by
// issuing the persist command, which calls this and saves the aggregate.
func (l *OrderLine) ApplyNormalization(localityCode, name, state string) error {
	if err := l.Validate(); err != nil {
		return err
	}

	if localityCode == "" || name == "" || state == "" {
		return ErrNormalizationIncomplete
	}

	l.normalizedLocalityCode = localityCode
	l.normalizedName = name
	l.normalizedState = state
	return nil
}

func (l *OrderLine) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	l.id = id
	return nil
}

func (l *OrderLine) setOrderRef(ref string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("orderRef")
	}

	l.orderRef = ref
	return nil
}

func (l *OrderLine) setCustomerTaxID(taxID string) error {
	if taxID == "" {
		return errs.NewValueIsRequiredError("customerTaxID")
	}

	l.customerTaxID = taxID
	return nil
}

func (l *OrderLine) setDestinationName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("destinationName")
	}

	l.destinationName = name
	return nil
}

func (l *OrderLine) setWeightKg(w decimal.Decimal) error {
	if !w.IsPositive() {
		return errs.NewValueIsInvalidError("weightKg")
	}

	l.weightKg = w
	return nil
}

func (l *OrderLine) setDeclaredValue(v decimal.Decimal) error {
	if !v.IsPositive() {
		return errs.NewValueIsInvalidError("declaredValue")
	}

	l.declaredValue = v
	return nil
}

func (l *OrderLine) setRouteTag(tag RouteTag) error {
	if err := tag.Validate(); err != nil {
		return err
	}

	l.routeTag = tag
	return nil
}
