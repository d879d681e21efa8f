// Package ports defines repository interfaces for the quotation domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"freightquote/internal/core/domain/model/carrier"
	"freightquote/internal/core/domain/model/location"
)

// ReferenceRepository is the read contract for the five reference tables the
// engine quotes against. The back office owns the rows; the engine only loads
// full snapshots, so there are no point lookups here.
type ReferenceRepository interface {
	// GetAllLocations retrieves every served locality.
	GetAllLocations(ctx context.Context) ([]*location.Location, error)

	// GetAllCarriers retrieves every carrier, active or not. Filtering by
	// active status is a pricing concern and happens in the domain.
	GetAllCarriers(ctx context.Context) ([]*carrier.Carrier, error)

	// GetAllRateTables retrieves every contracted rate table.
	GetAllRateTables(ctx context.Context) ([]*carrier.RateTable, error)

	// GetAllServiceBindings retrieves every carrier-to-locality agreement.
	GetAllServiceBindings(ctx context.Context) ([]*carrier.ServiceBinding, error)

	// GetAllVehicles retrieves the vehicle capacity registry.
	GetAllVehicles(ctx context.Context) ([]*carrier.Vehicle, error)
}
