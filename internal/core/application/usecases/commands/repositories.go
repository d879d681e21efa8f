// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Quotation is read-only; the only write the engine performs is persisting a
// resolved destination back onto an order line.
package commands

import (
	"context"

	"freightquote/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderLineRepoFactory provides access to the order line repository
	// within a transaction.
	OrderLineRepoFactory interface {
		OrderLineRepository() ports.OrderLineRepository
	}

	// OrderLineUoW manages transactions for order line operations.
	OrderLineUoW interface {
		TxManager
		OrderLineRepoFactory
	}

	// OrderLineUoWFactory creates new order line unit of work instances.
	OrderLineUoWFactory interface {
		Create() OrderLineUoW
	}
)
