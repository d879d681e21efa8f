package location

import (
	"errors"
	"fmt"

	"freightquote/internal/core/domain/model/kernel"
	"freightquote/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrLocationIsNotConstructed is returned when a Location instance was not
// created through the NewLocation factory method.
var ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation constructor")

// Location is a canonical delivery destination from the reference data.
// It is read-only to the quotation engine: the back-office maintenance
// collaborator owns the records, the engine only resolves against them.
//
// Invariants:
//   - Must have a valid unique identifier
//   - Name and state code are required; state codes are two letters
//   - Locality code is the national city registry code and is required
//   - ICMS percent is within [0, 100)
//
// Two markers alter resolution behavior:
//   - PickupOnly (FOB): the destination has no delivery leg and is excluded
//     from pricing entirely.
//   - RedispatchHub (RED): any order routed here is re-pointed at the fixed
//     redispatch hub regardless of the literal city field.
type Location struct {
	id            kernel.UUID
	name          string
	state         string
	localityCode  string
	icmsPercent   decimal.Decimal
	pickupOnly    bool
	redispatchHub bool

	isConstructed bool
}

// NewLocation creates a Location with validation. This is the only way to
// obtain a valid instance; the adapters use it when mapping reference rows.
func NewLocation(
	id kernel.UUID,
	name string,
	state string,
	localityCode string,
	icmsPercent decimal.Decimal,
	pickupOnly bool,
	redispatchHub bool,
) (*Location, error) {
	loc := &Location{
		pickupOnly:    pickupOnly,
		redispatchHub: redispatchHub,
		isConstructed: true,
	}

	if err := errors.Join(
		loc.setID(id),
		loc.setName(name),
		loc.setState(state),
		loc.setLocalityCode(localityCode),
		loc.setICMSPercent(icmsPercent),
	); err != nil {
		return nil, err
	}

	return loc, nil
}

// Validate ensures the Location was constructed through NewLocation.
func (l *Location) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLocationIsNotConstructed
	}
	return nil
}

// IsEqual compares two locations by their unique identifiers.
func (l *Location) IsEqual(other *Location) bool {
	return other != nil && l.id.IsEqual(other.id)
}

// ID returns the location's unique identifier.
func (l *Location) ID() kernel.UUID {
	return l.id
}

// Name returns the canonical city name.
func (l *Location) Name() string {
	return l.name
}

// State returns the two-letter state code.
func (l *Location) State() string {
	return l.state
}

// LocalityCode returns the national city registry code used by service bindings.
func (l *Location) LocalityCode() string {
	return l.localityCode
}

// ICMSPercent returns the destination's ICMS rate as a percentage (e.g. 12 for 12%).
func (l *Location) ICMSPercent() decimal.Decimal {
	return l.icmsPercent
}

// IsPickupOnly reports the FOB marker: no delivery leg, excluded from pricing.
func (l *Location) IsPickupOnly() bool {
	return l.pickupOnly
}

// IsRedispatchHub reports the RED marker: orders resolve to the fixed hub.
func (l *Location) IsRedispatchHub() bool {
	return l.redispatchHub
}

// String returns a human-readable "City/ST" representation.
func (l *Location) String() string {
	return fmt.Sprintf("%s/%s", l.name, l.state)
}

func (l *Location) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	l.id = id
	return nil
}

func (l *Location) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	l.name = name
	return nil
}

func (l *Location) setState(state string) error {
	if len(state) != 2 {
		return errs.NewValueIsInvalidError("state")
	}

	l.state = state
	return nil
}

func (l *Location) setLocalityCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("localityCode")
	}

	l.localityCode = code
	return nil
}

func (l *Location) setICMSPercent(p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return errs.NewValueIsOutOfRangeError("icmsPercent", p.String(), 0, 100)
	}

	l.icmsPercent = p
	return nil
}
