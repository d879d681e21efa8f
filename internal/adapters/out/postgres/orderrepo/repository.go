package orderrepo

import (
	"context"
	"errors"

	"freightquote/internal/core/domain/model/kernel"
	"freightquote/internal/core/domain/model/order"
	"freightquote/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderLineRepository implements OrderLineRepository using GORM.
type GormOrderLineRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderLineRepository creates a new GORM order line repository.
func NewGormOrderLineRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderLineRepository {
	return &GormOrderLineRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order line to the database.
func (r *GormOrderLineRepository) Add(ctx context.Context, line *order.OrderLine) error {
	if err := line.Validate(); err != nil {
		return err
	}

	dto := fromDomain(line)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(line.ID(), line)
	return nil
}

// Update saves an existing order line to the database. The normalized
// destination columns are written as a group so a resolved destination is
// never persisted half-filled.
func (r *GormOrderLineRepository) Update(ctx context.Context, line *order.OrderLine) error {
	if err := line.Validate(); err != nil {
		return err
	}

	dto := fromDomain(line)
	result := r.db.WithContext(ctx).
		Model(&OrderLineDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(line.ID(), line)
	return nil
}

// Get retrieves an order line by ID.
func (r *GormOrderLineRepository) Get(ctx context.Context, id kernel.UUID) (*order.OrderLine, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderLineDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order line", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderRef retrieves every line belonging to one order reference.
// Returns an empty slice when the reference is unknown.
func (r *GormOrderLineRepository) GetByOrderRef(ctx context.Context, orderRef string) ([]*order.OrderLine, error) {
	if orderRef == "" {
		return nil, errs.NewValueIsRequiredError("orderRef")
	}

	var dtos []OrderLineDTO
	if err := r.db.WithContext(ctx).
		Order("id").
		Find(&dtos, "order_ref = ?", orderRef).Error; err != nil {
		return nil, err
	}

	lines := make([]*order.OrderLine, 0, len(dtos))
	for _, dto := range dtos {
		line, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, nil
}
