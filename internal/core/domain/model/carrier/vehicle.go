package carrier

import (
	"errors"

	"freightquote/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrVehicleIsNotConstructed is returned when a Vehicle instance was not
// created through the NewVehicle factory method.
var ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")

// Vehicle is a truck class from the reference data: a canonical class name and
// the maximum payload it can carry. The capacity filter uses it to discard
// dedicated-cargo tables whose vehicle cannot take the shipment.
type Vehicle struct {
	className    string
	maxPayloadKg decimal.Decimal

	isConstructed bool
}

// NewVehicle creates a Vehicle with validation. maxPayloadKg must be positive.
func NewVehicle(className string, maxPayloadKg decimal.Decimal) (*Vehicle, error) {
	v := &Vehicle{
		isConstructed: true,
	}

	if err := errors.Join(
		v.setClassName(className),
		v.setMaxPayloadKg(maxPayloadKg),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// Validate ensures the Vehicle was constructed through NewVehicle.
func (v *Vehicle) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrVehicleIsNotConstructed
	}
	return nil
}

// ClassName returns the canonical vehicle class name.
func (v *Vehicle) ClassName() string {
	return v.className
}

// MaxPayloadKg returns the maximum shipment weight the class can carry.
func (v *Vehicle) MaxPayloadKg() decimal.Decimal {
	return v.maxPayloadKg
}

// CanCarry reports whether a shipment of the given total weight fits.
func (v *Vehicle) CanCarry(totalWeightKg decimal.Decimal) bool {
	return v.maxPayloadKg.GreaterThanOrEqual(totalWeightKg)
}

func (v *Vehicle) setClassName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("className")
	}

	v.className = name
	return nil
}

func (v *Vehicle) setMaxPayloadKg(payload decimal.Decimal) error {
	if !payload.IsPositive() {
		return errs.NewValueIsInvalidError("maxPayloadKg")
	}

	v.maxPayloadKg = payload
	return nil
}
