// Package orderrepo provides data transfer objects and mapping functions for order line persistence.
// This package implements the repository pattern for the order line aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"freightquote/internal/core/domain/model/kernel"
	"freightquote/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineDTO represents the database structure for persisting order lines.
// The normalized_* columns hold the resolved destination written back by the
// persist-destination command; they are empty until a line has been resolved.
type OrderLineDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderRef         string          `gorm:"type:varchar(64);not null;index"`
	CustomerTaxID    string          `gorm:"type:varchar(32);not null;index"`
	DestinationName  string          `gorm:"type:varchar(255);not null"`
	DestinationState string          `gorm:"type:varchar(2)"`
	WeightKg         decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	DeclaredValue    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	RouteTag         string          `gorm:"type:varchar(16);not null"`
	SubRoute         string          `gorm:"type:varchar(64)"`

	NormalizedLocalityCode string `gorm:"type:varchar(16)"`
	NormalizedName         string `gorm:"type:varchar(255)"`
	NormalizedState        string `gorm:"type:varchar(2)"`
}

// TableName specifies the database table name for order line entities.
// Overrides GORM's default naming convention to use "order_lines".
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order line to its database representation.
func fromDomain(line *order.OrderLine) OrderLineDTO {
	dto := OrderLineDTO{
		ID:               line.ID().Bytes(),
		OrderRef:         line.OrderRef(),
		CustomerTaxID:    line.CustomerTaxID(),
		DestinationName:  line.DestinationName(),
		DestinationState: line.DestinationState(),
		WeightKg:         line.WeightKg(),
		DeclaredValue:    line.DeclaredValue(),
		RouteTag:         line.RouteTag().String(),
		SubRoute:         line.SubRoute(),
	}

	if code, name, state, ok := line.NormalizedDestination(); ok {
		dto.NormalizedLocalityCode = code
		dto.NormalizedName = name
		dto.NormalizedState = state
	}

	return dto
}

// toDomain converts a database DTO to an order line.
// Reconstructs the line including any persisted normalized destination
// using RestoreOrderLine.
func toDomain(dto OrderLineDTO) (*order.OrderLine, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tag, err := order.RouteTagFromString(dto.RouteTag)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrderLine(
		id,
		dto.OrderRef,
		dto.CustomerTaxID,
		dto.DestinationName,
		dto.DestinationState,
		dto.WeightKg,
		dto.DeclaredValue,
		tag,
		dto.SubRoute,
		dto.NormalizedLocalityCode,
		dto.NormalizedName,
		dto.NormalizedState,
	)
}
