package refrepo

import (
	"context"

	"freightquote/internal/core/domain/model/carrier"
	"freightquote/internal/core/domain/model/location"

	"gorm.io/gorm"
)

// GormReferenceRepository implements ReferenceRepository using GORM.
// All methods read full tables; the snapshot refresh job is the only caller
// and it rebuilds the in-memory reference set from scratch on every run.
type GormReferenceRepository struct {
	db *gorm.DB
}

// NewGormReferenceRepository creates a new GORM reference repository.
func NewGormReferenceRepository(db *gorm.DB) *GormReferenceRepository {
	return &GormReferenceRepository{db: db}
}

// GetAllLocations retrieves every served locality.
func (r *GormReferenceRepository) GetAllLocations(ctx context.Context) ([]*location.Location, error) {
	var dtos []LocationDTO
	if err := r.db.WithContext(ctx).Order("locality_code").Find(&dtos).Error; err != nil {
		return nil, err
	}

	locations := make([]*location.Location, 0, len(dtos))
	for _, dto := range dtos {
		loc, err := locationToDomain(dto)
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}

	return locations, nil
}

// GetAllCarriers retrieves every carrier, active or not.
func (r *GormReferenceRepository) GetAllCarriers(ctx context.Context) ([]*carrier.Carrier, error) {
	var dtos []CarrierDTO
	if err := r.db.WithContext(ctx).Order("legal_name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	carriers := make([]*carrier.Carrier, 0, len(dtos))
	for _, dto := range dtos {
		c, err := carrierToDomain(dto)
		if err != nil {
			return nil, err
		}
		carriers = append(carriers, c)
	}

	return carriers, nil
}

// GetAllRateTables retrieves every contracted rate table.
func (r *GormReferenceRepository) GetAllRateTables(ctx context.Context) ([]*carrier.RateTable, error) {
	var dtos []RateTableDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	tables := make([]*carrier.RateTable, 0, len(dtos))
	for _, dto := range dtos {
		t, err := rateTableToDomain(dto)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}

	return tables, nil
}

// GetAllServiceBindings retrieves every carrier-to-locality agreement.
func (r *GormReferenceRepository) GetAllServiceBindings(ctx context.Context) ([]*carrier.ServiceBinding, error) {
	var dtos []ServiceBindingDTO
	if err := r.db.WithContext(ctx).Order("locality_code, table_name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	bindings := make([]*carrier.ServiceBinding, 0, len(dtos))
	for _, dto := range dtos {
		b, err := serviceBindingToDomain(dto)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}

	return bindings, nil
}

// GetAllVehicles retrieves the vehicle capacity registry.
func (r *GormReferenceRepository) GetAllVehicles(ctx context.Context) ([]*carrier.Vehicle, error) {
	var dtos []VehicleDTO
	if err := r.db.WithContext(ctx).Order("class_name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	vehicles := make([]*carrier.Vehicle, 0, len(dtos))
	for _, dto := range dtos {
		v, err := vehicleToDomain(dto)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, nil
}
