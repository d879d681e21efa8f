package carrier

import (
	"errors"

	"freightquote/internal/core/domain/model/kernel"
	"freightquote/internal/pkg/errs"
)

// ErrServiceBindingIsNotConstructed is returned when a ServiceBinding instance
// was not created through the NewServiceBinding factory method.
var ErrServiceBindingIsNotConstructed = errors.New(
	"ServiceBinding must be created via NewServiceBinding constructor")

// ServiceBinding declares that a carrier serves a location (by locality code)
// under a named rate table, with a quoted lead time in days. The back office
// guarantees exactly one table name per (carrier, location).
//
// An optional modality restricts the binding to a single charging modality;
// when empty, every modality of the bound table name is eligible.
type ServiceBinding struct {
	carrierID    kernel.UUID
	tableName    string
	localityCode string
	leadTimeDays int
	modality     Modality

	isConstructed bool
}

// NewServiceBinding creates a ServiceBinding with validation.
// modality may be empty; leadTimeDays must not be negative.
func NewServiceBinding(
	carrierID kernel.UUID,
	tableName string,
	localityCode string,
	leadTimeDays int,
	modality Modality,
) (*ServiceBinding, error) {
	b := &ServiceBinding{
		modality:      modality,
		isConstructed: true,
	}

	if err := errors.Join(
		b.setCarrierID(carrierID),
		b.setTableName(tableName),
		b.setLocalityCode(localityCode),
		b.setLeadTimeDays(leadTimeDays),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// Validate ensures the ServiceBinding was constructed through NewServiceBinding.
func (b *ServiceBinding) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrServiceBindingIsNotConstructed
	}
	return nil
}

// CarrierID returns the bound carrier's identifier.
func (b *ServiceBinding) CarrierID() kernel.UUID {
	return b.carrierID
}

// TableName returns the name of the rate table governing this agreement.
func (b *ServiceBinding) TableName() string {
	return b.tableName
}

// LocalityCode returns the served location's national registry code.
func (b *ServiceBinding) LocalityCode() string {
	return b.localityCode
}

// LeadTimeDays returns the quoted shipment-to-delivery time in days.
func (b *ServiceBinding) LeadTimeDays() int {
	return b.leadTimeDays
}

// Modality returns the optional modality restriction; empty means any.
func (b *ServiceBinding) Modality() Modality {
	return b.modality
}

func (b *ServiceBinding) setCarrierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	b.carrierID = id
	return nil
}

func (b *ServiceBinding) setTableName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("tableName")
	}

	b.tableName = name
	return nil
}

func (b *ServiceBinding) setLocalityCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("localityCode")
	}

	b.localityCode = code
	return nil
}

func (b *ServiceBinding) setLeadTimeDays(days int) error {
	if days < 0 {
		return errs.NewValueIsInvalidError("leadTimeDays")
	}

	b.leadTimeDays = days
	return nil
}
