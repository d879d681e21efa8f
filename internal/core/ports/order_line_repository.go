package ports

import (
	"context"

	"freightquote/internal/core/domain/model/kernel"
	"freightquote/internal/core/domain/model/order"
)

// OrderLineRepository defines the persistence contract for order lines.
// Quotation itself never writes; the single write path is the explicit
// persist-destination command that stores a resolved destination back onto
// a line so later requests skip re-resolution.
type OrderLineRepository interface {
	// Add persists a new order line.
	Add(ctx context.Context, line *order.OrderLine) error

	// Update persists changes to an existing order line, including its
	// normalized destination fields.
	Update(ctx context.Context, line *order.OrderLine) error

	// Get retrieves an order line by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.OrderLine, error)

	// GetByOrderRef retrieves every line of one order reference.
	GetByOrderRef(ctx context.Context, orderRef string) ([]*order.OrderLine, error)
}
