// Package refrepo provides data transfer objects and mapping functions for the
// reference tables the quotation engine reads: locations, carriers, rate tables,
// service bindings and the vehicle capacity registry. The back office owns the
// rows; this package only maps them into domain objects for snapshot loads.
package refrepo

import (
	"strings"

	"freightquote/internal/core/domain/model/carrier"
	"freightquote/internal/core/domain/model/kernel"
	"freightquote/internal/core/domain/model/location"
	"freightquote/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LocationDTO represents the database structure for served localities.
type LocationDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"type:varchar(255);not null"`
	State         string          `gorm:"type:varchar(2);not null;index"`
	LocalityCode  string          `gorm:"type:varchar(16);not null;uniqueIndex"`
	ICMSPercent   decimal.Decimal `gorm:"type:numeric(7,4);not null"`
	PickupOnly    bool            `gorm:"not null"`
	RedispatchHub bool            `gorm:"not null"`
}

// TableName specifies the database table name for locality entities.
func (LocationDTO) TableName() string {
	return "locations"
}

// CarrierDTO represents the database structure for carriers.
// AfterMinimum holds the comma-separated surcharge labels the carrier adds
// only after the table minimum; empty means every surcharge folds in before.
type CarrierDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	LegalName           string    `gorm:"type:varchar(255);not null"`
	TaxID               string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Active              bool      `gorm:"not null"`
	SimplifiedTaxRegime bool      `gorm:"not null"`
	RoundTollUp         bool      `gorm:"not null"`
	AfterMinimum        string    `gorm:"type:varchar(255)"`
}

// TableName specifies the database table name for carrier entities.
func (CarrierDTO) TableName() string {
	return "carriers"
}

// RateTableDTO represents the database structure for contracted rate tables.
// Percent columns are percentages, not fractions; money columns are absolute
// amounts in the contract currency.
type RateTableDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	CarrierID        uuid.UUID `gorm:"type:uuid;not null;index"`
	OriginState      string    `gorm:"type:varchar(2);not null"`
	DestinationState string    `gorm:"type:varchar(2);not null;index"`
	Name             string    `gorm:"type:varchar(128);not null"`
	CargoType        string    `gorm:"type:varchar(16);not null"`
	Modality         string    `gorm:"type:varchar(32);not null"`

	PerKgRate      decimal.Decimal `gorm:"type:numeric(12,4);not null"`
	MinWeightFee   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PercentOfValue decimal.Decimal `gorm:"type:numeric(7,4);not null"`
	MinValueFee    decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	InsurancePercent     decimal.Decimal `gorm:"type:numeric(7,4);not null"`
	InsuranceMinimum     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeclaredValuePercent decimal.Decimal `gorm:"type:numeric(7,4);not null"`
	DeclaredValueMinimum decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	LiabilityPercent     decimal.Decimal `gorm:"type:numeric(7,4);not null"`
	TollPer100Kg         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DispatchFee          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	InvoiceFee           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ClearanceFee         decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	ICMSIncluded bool             `gorm:"not null"`
	ICMSOverride *decimal.Decimal `gorm:"type:numeric(7,4)"`
}

// TableName specifies the database table name for rate table entities.
func (RateTableDTO) TableName() string {
	return "rate_tables"
}

// ServiceBindingDTO represents the database structure for carrier-to-locality
// service agreements. The row ID exists only for persistence; the domain
// identifies a binding by its carrier, table name and locality.
type ServiceBindingDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CarrierID     uuid.UUID `gorm:"type:uuid;not null;index"`
	RateTableName string    `gorm:"column:table_name;type:varchar(128);not null"`
	LocalityCode  string    `gorm:"type:varchar(16);not null;index"`
	LeadTimeDays  int       `gorm:"type:int;not null"`
	Modality      string    `gorm:"type:varchar(32)"`
}

// TableName specifies the database table name for service binding entities.
func (ServiceBindingDTO) TableName() string {
	return "service_bindings"
}

// VehicleDTO represents the database structure for the vehicle capacity registry.
type VehicleDTO struct {
	ClassName    string          `gorm:"type:varchar(64);primaryKey"`
	MaxPayloadKg decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// TableName specifies the database table name for vehicle entities.
func (VehicleDTO) TableName() string {
	return "vehicles"
}

// locationToDomain converts a locality DTO to its domain entity.
func locationToDomain(dto LocationDTO) (*location.Location, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return location.NewLocation(id, dto.Name, dto.State, dto.LocalityCode,
		dto.ICMSPercent, dto.PickupOnly, dto.RedispatchHub)
}

// carrierToDomain converts a carrier DTO to its domain entity.
func carrierToDomain(dto CarrierDTO) (*carrier.Carrier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	afterMinimum, err := surchargeKindsFromLabels(dto.AfterMinimum)
	if err != nil {
		return nil, err
	}

	return carrier.NewCarrier(id, dto.LegalName, dto.TaxID, dto.Active,
		dto.SimplifiedTaxRegime, dto.RoundTollUp, afterMinimum)
}

// rateTableToDomain converts a rate table DTO to its domain entity.
func rateTableToDomain(dto RateTableDTO) (*carrier.RateTable, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}

	cargoType, err := carrier.CargoTypeFromString(dto.CargoType)
	if err != nil {
		return nil, err
	}

	return carrier.NewRateTable(carrier.RateTableParams{
		ID:               id,
		CarrierID:        carrierID,
		OriginState:      dto.OriginState,
		DestinationState: dto.DestinationState,
		Name:             dto.Name,
		CargoType:        cargoType,
		Modality:         carrier.Modality(dto.Modality),

		PerKgRate:      dto.PerKgRate,
		MinWeightFee:   dto.MinWeightFee,
		PercentOfValue: dto.PercentOfValue,
		MinValueFee:    dto.MinValueFee,

		InsurancePercent:     dto.InsurancePercent,
		InsuranceMinimum:     dto.InsuranceMinimum,
		DeclaredValuePercent: dto.DeclaredValuePercent,
		DeclaredValueMinimum: dto.DeclaredValueMinimum,
		LiabilityPercent:     dto.LiabilityPercent,
		TollPer100Kg:         dto.TollPer100Kg,
		DispatchFee:          dto.DispatchFee,
		InvoiceFee:           dto.InvoiceFee,
		ClearanceFee:         dto.ClearanceFee,

		ICMSIncluded: dto.ICMSIncluded,
		ICMSOverride: dto.ICMSOverride,
	})
}

// serviceBindingToDomain converts a service binding DTO to its domain entity.
func serviceBindingToDomain(dto ServiceBindingDTO) (*carrier.ServiceBinding, error) {
	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}

	return carrier.NewServiceBinding(carrierID, dto.RateTableName, dto.LocalityCode,
		dto.LeadTimeDays, carrier.Modality(dto.Modality))
}

// vehicleToDomain converts a vehicle DTO to its domain entity.
func vehicleToDomain(dto VehicleDTO) (*carrier.Vehicle, error) {
	return carrier.NewVehicle(dto.ClassName, dto.MaxPayloadKg)
}

// surchargeKindsFromLabels parses a comma-separated after-minimum column into
// surcharge kinds, matching the labels SurchargeKind.String produces.
func surchargeKindsFromLabels(column string) ([]carrier.SurchargeKind, error) {
	column = strings.TrimSpace(column)
	if column == "" {
		return nil, nil
	}

	byLabel := make(map[string]carrier.SurchargeKind, len(carrier.AllSurchargeKinds()))
	for _, kind := range carrier.AllSurchargeKinds() {
		byLabel[kind.String()] = kind
	}

	labels := strings.Split(column, ",")
	kinds := make([]carrier.SurchargeKind, 0, len(labels))
	for _, label := range labels {
		kind, ok := byLabel[strings.TrimSpace(label)]
		if !ok {
			return nil, errs.NewValueIsInvalidError("after minimum surcharge: " + label)
		}
		kinds = append(kinds, kind)
	}

	return kinds, nil
}
