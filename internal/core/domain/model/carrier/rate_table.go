package carrier

import (
	"errors"
	"fmt"

	"freightquote/internal/core/domain/model/kernel"
	"freightquote/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrRateTableIsNotConstructed is returned when a RateTable instance was not
// created through the NewRateTable factory method.
var ErrRateTableIsNotConstructed = errors.New("RateTable must be created via NewRateTable constructor")

// RateTableParams carries the full rate configuration of a contracted table.
// The parameter struct keeps NewRateTable readable: a table has a dozen and a
// half rate fields and listing them positionally invites transposition bugs.
//
// All monetary fields are absolute amounts; percent fields are percentages
// (12 means 12%). Missing optional fields stay at decimal zero.
type RateTableParams struct {
	ID               kernel.UUID
	CarrierID        kernel.UUID
	OriginState      string
	DestinationState string
	Name             string
	CargoType        CargoType
	Modality         Modality

	PerKgRate      decimal.Decimal
	MinWeightFee   decimal.Decimal
	PercentOfValue decimal.Decimal
	MinValueFee    decimal.Decimal

	InsurancePercent     decimal.Decimal
	InsuranceMinimum     decimal.Decimal
	DeclaredValuePercent decimal.Decimal
	DeclaredValueMinimum decimal.Decimal
	LiabilityPercent     decimal.Decimal
	TollPer100Kg         decimal.Decimal
	DispatchFee          decimal.Decimal
	InvoiceFee           decimal.Decimal
	ClearanceFee         decimal.Decimal

	ICMSIncluded bool
	// ICMSOverride, when set, replaces the destination location's ICMS percent
	// in the gross-up. Carrier-specific negotiated rates use this.
	ICMSOverride *decimal.Decimal
}

// RateTable is a carrier's contracted rate table for one origin/destination
// state lane. The engine treats tables as read-only reference data.
//
// Invariant (owned by the back office, relied upon here): (carrier,
// destination state, table name, modality) is unique.
type RateTable struct {
	params RateTableParams

	isConstructed bool
}

// NewRateTable creates a RateTable with validation.
func NewRateTable(params RateTableParams) (*RateTable, error) {
	t := &RateTable{
		params:        params,
		isConstructed: true,
	}

	if err := errors.Join(
		params.ID.Validate(),
		params.CarrierID.Validate(),
		t.validateStates(),
		t.validateName(),
		params.CargoType.Validate(),
		params.Modality.Validate(),
		t.validateRates(),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate ensures the RateTable was constructed through NewRateTable.
func (t *RateTable) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrRateTableIsNotConstructed
	}
	return nil
}

// ID returns the table's unique identifier.
func (t *RateTable) ID() kernel.UUID { return t.params.ID }

// CarrierID returns the owning carrier's identifier.
func (t *RateTable) CarrierID() kernel.UUID { return t.params.CarrierID }

// OriginState returns the lane's origin state code.
func (t *RateTable) OriginState() string { return t.params.OriginState }

// DestinationState returns the lane's destination state code.
func (t *RateTable) DestinationState() string { return t.params.DestinationState }

// Name returns the table name referenced by service bindings.
func (t *RateTable) Name() string { return t.params.Name }

// CargoType returns whether the table prices dedicated or consolidated cargo.
func (t *RateTable) CargoType() CargoType { return t.params.CargoType }

// Modality returns the charging modality (BY_WEIGHT, BY_VALUE, or a vehicle class).
func (t *RateTable) Modality() Modality { return t.params.Modality }

// PerKgRate returns the weight rate per kilogram.
func (t *RateTable) PerKgRate() decimal.Decimal { return t.params.PerKgRate }

// MinWeightFee returns the floor applied to the weight basis.
func (t *RateTable) MinWeightFee() decimal.Decimal { return t.params.MinWeightFee }

// PercentOfValue returns the declared-value rate as a percentage.
func (t *RateTable) PercentOfValue() decimal.Decimal { return t.params.PercentOfValue }

// MinValueFee returns the floor applied to the value basis.
func (t *RateTable) MinValueFee() decimal.Decimal { return t.params.MinValueFee }

// InsurancePercent returns the GRIS percentage applied to the basis.
func (t *RateTable) InsurancePercent() decimal.Decimal { return t.params.InsurancePercent }

// InsuranceMinimum returns the GRIS floor.
func (t *RateTable) InsuranceMinimum() decimal.Decimal { return t.params.InsuranceMinimum }

// DeclaredValuePercent returns the declared-value surcharge percentage.
func (t *RateTable) DeclaredValuePercent() decimal.Decimal { return t.params.DeclaredValuePercent }

// DeclaredValueMinimum returns the declared-value surcharge floor.
func (t *RateTable) DeclaredValueMinimum() decimal.Decimal { return t.params.DeclaredValueMinimum }

// LiabilityPercent returns the civil-liability surcharge percentage.
func (t *RateTable) LiabilityPercent() decimal.Decimal { return t.params.LiabilityPercent }

// TollPer100Kg returns the toll amount charged per 100kg unit.
func (t *RateTable) TollPer100Kg() decimal.Decimal { return t.params.TollPer100Kg }

// DispatchFee returns the flat dispatch fee.
func (t *RateTable) DispatchFee() decimal.Decimal { return t.params.DispatchFee }

// InvoiceFee returns the flat invoice-issuance fee.
func (t *RateTable) InvoiceFee() decimal.Decimal { return t.params.InvoiceFee }

// ClearanceFee returns the flat cargo-clearance fee.
func (t *RateTable) ClearanceFee() decimal.Decimal { return t.params.ClearanceFee }

// ICMSIncluded reports whether ICMS is already embedded in the table's rates.
func (t *RateTable) ICMSIncluded() bool { return t.params.ICMSIncluded }

// ICMSOverride returns the carrier-specific ICMS percentage, if negotiated.
func (t *RateTable) ICMSOverride() (decimal.Decimal, bool) {
	if t.params.ICMSOverride == nil {
		return decimal.Decimal{}, false
	}
	return *t.params.ICMSOverride, true
}

// String returns a human-readable identifier for log lines.
func (t *RateTable) String() string {
	return fmt.Sprintf("%s %s->%s %s/%s",
		t.params.Name, t.params.OriginState, t.params.DestinationState,
		t.params.CargoType, t.params.Modality)
}

func (t *RateTable) validateStates() error {
	var err error
	if len(t.params.OriginState) != 2 {
		err = errors.Join(err, errs.NewValueIsInvalidError("originState"))
	}
	if len(t.params.DestinationState) != 2 {
		err = errors.Join(err, errs.NewValueIsInvalidError("destinationState"))
	}
	return err
}

func (t *RateTable) validateName() error {
	if t.params.Name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	return nil
}

// validateRates rejects negative rate fields. Zero is a legitimate value for
// every one of them: plenty of contracted tables carry no toll or no flat fees.
func (t *RateTable) validateRates() error {
	fields := map[string]decimal.Decimal{
		"perKgRate":            t.params.PerKgRate,
		"minWeightFee":         t.params.MinWeightFee,
		"percentOfValue":       t.params.PercentOfValue,
		"minValueFee":          t.params.MinValueFee,
		"insurancePercent":     t.params.InsurancePercent,
		"insuranceMinimum":     t.params.InsuranceMinimum,
		"declaredValuePercent": t.params.DeclaredValuePercent,
		"declaredValueMinimum": t.params.DeclaredValueMinimum,
		"liabilityPercent":     t.params.LiabilityPercent,
		"tollPer100Kg":         t.params.TollPer100Kg,
		"dispatchFee":          t.params.DispatchFee,
		"invoiceFee":           t.params.InvoiceFee,
		"clearanceFee":         t.params.ClearanceFee,
	}

	var err error
	for name, v := range fields {
		if v.IsNegative() {
			err = errors.Join(err, errs.NewValueIsInvalidError(name))
		}
	}

	if t.params.ICMSOverride != nil {
		if t.params.ICMSOverride.IsNegative() ||
			t.params.ICMSOverride.GreaterThanOrEqual(decimal.NewFromInt(100)) {
			err = errors.Join(err, errs.NewValueIsOutOfRangeError(
				"icmsOverride", t.params.ICMSOverride.String(), 0, 100))
		}
	}

	return err
}
