package carrier

import (
	"errors"

	"freightquote/internal/core/domain/model/kernel"
	"freightquote/internal/pkg/errs"
)

// ErrCarrierIsNotConstructed is returned when a Carrier instance was not
// created through the NewCarrier factory method.
var ErrCarrierIsNotConstructed = errors.New("Carrier must be created via NewCarrier constructor")

// Carrier is a freight carrier from the reference data. Besides identity it
// carries the billing configuration the fee calculator needs: the simplified
// tax regime flag (no ICMS gross-up), per-surcharge "apply after minimum"
// timing, and the toll-rounding flag.
//
// Carriers whose stripped legal names share a common prefix form a business
// group; rate tables of any member are eligible under a binding pointing to
// one member. Group derivation lives in the binding index service.
type Carrier struct {
	id                  kernel.UUID
	legalName           string
	taxID               string
	active              bool
	simplifiedTaxRegime bool
	roundTollUp         bool
	afterMinimum        map[SurchargeKind]bool

	isConstructed bool
}

// NewCarrier creates a Carrier with validation.
//
// afterMinimum lists the surcharge kinds this carrier adds only after the
// table minimum has been applied; every kind not listed defaults to
// before-minimum. roundTollUp controls rounding the toll weight up to the
// next 100kg unit (the usual billing practice; some carriers disable it).
func NewCarrier(
	id kernel.UUID,
	legalName string,
	taxID string,
	active bool,
	simplifiedTaxRegime bool,
	roundTollUp bool,
	afterMinimum []SurchargeKind,
) (*Carrier, error) {
	c := &Carrier{
		active:              active,
		simplifiedTaxRegime: simplifiedTaxRegime,
		roundTollUp:         roundTollUp,
		afterMinimum:        make(map[SurchargeKind]bool, len(afterMinimum)),
		isConstructed:       true,
	}

	for _, kind := range afterMinimum {
		c.afterMinimum[kind] = true
	}

	if err := errors.Join(
		c.setID(id),
		c.setLegalName(legalName),
		c.setTaxID(taxID),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the Carrier was constructed through NewCarrier.
func (c *Carrier) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCarrierIsNotConstructed
	}
	return nil
}

// IsEqual compares two carriers by their unique identifiers.
func (c *Carrier) IsEqual(other *Carrier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the carrier's unique identifier.
func (c *Carrier) ID() kernel.UUID {
	return c.id
}

// LegalName returns the registered legal name, including entity suffixes.
func (c *Carrier) LegalName() string {
	return c.legalName
}

// TaxID returns the carrier's tax identifier (CNPJ).
func (c *Carrier) TaxID() string {
	return c.taxID
}

// IsActive reports whether the carrier currently accepts shipments.
// Bindings of inactive carriers are discarded by the binding index.
func (c *Carrier) IsActive() bool {
	return c.active
}

// InSimplifiedTaxRegime reports whether the carrier bills under the simplified
// tax regime. Such carriers never get an ICMS gross-up, regardless of table flags.
func (c *Carrier) InSimplifiedTaxRegime() bool {
	return c.simplifiedTaxRegime
}

// RoundsTollUp reports whether the toll weight is rounded up to the next
// started 100kg unit.
func (c *Carrier) RoundsTollUp() bool {
	return c.roundTollUp
}

// AppliesAfterMinimum reports the timing of a surcharge kind for this carrier.
// The default is before-minimum.
func (c *Carrier) AppliesAfterMinimum(kind SurchargeKind) bool {
	return c.afterMinimum[kind]
}

func (c *Carrier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

func (c *Carrier) setLegalName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("legalName")
	}

	c.legalName = name
	return nil
}

func (c *Carrier) setTaxID(taxID string) error {
	if taxID == "" {
		return errs.NewValueIsRequiredError("taxID")
	}

	c.taxID = taxID
	return nil
}
