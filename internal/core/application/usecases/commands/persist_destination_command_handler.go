package commands

import (
	"context"
	"errors"
	"fmt"

	"freightquote/internal/core/domain/services"
	"freightquote/internal/core/ports"
)

var (
	// ErrDestinationAmbiguous is returned when the line's destination exists
	// in several states; the caller must resupply a state before persisting.
	ErrDestinationAmbiguous = errors.New("destination is ambiguous across states")

	// ErrDestinationNotFound is returned when no served locality matches.
	ErrDestinationNotFound = errors.New("destination not found in reference data")
)

// PersistDestinationCommandHandler resolves an order line's destination
// against the current snapshot and stores the outcome on the line.
// FOB lines have no delivery destination to persist, so the handler rejects
// them the same way it rejects unresolved ones.
type PersistDestinationCommandHandler struct {
	uowFactory OrderLineUoWFactory
	snapshots  ports.SnapshotProvider
	resolver   services.LocationResolver
}

// NewPersistDestinationCommandHandler creates a handler for destination
// persistence. Requires a unit of work factory, the snapshot provider and
// the resolver.
func NewPersistDestinationCommandHandler(
	uowFactory OrderLineUoWFactory,
	snapshots ports.SnapshotProvider,
	resolver services.LocationResolver,
) PersistDestinationCommandHandler {
	return PersistDestinationCommandHandler{
		uowFactory: uowFactory,
		snapshots:  snapshots,
		resolver:   resolver,
	}
}

// Handle resolves the line's destination and persists the normalized fields.
// Uses a transaction so the line is updated atomically or not at all.
func (h *PersistDestinationCommandHandler) Handle(ctx context.Context, cmd PersistDestinationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderLineRepository()
	line, err := repo.Get(ctx, cmd.LineID())
	if err != nil {
		return err
	}

	refs := h.snapshots.Snapshot()
	res := h.resolver.Resolve(refs, line.DestinationName(), line.DestinationState(), line.RouteTag())

	switch res.Kind {
	case services.ResolutionResolved:
		// fall through to persist
	case services.ResolutionAmbiguous:
		return fmt.Errorf("%w: %v", ErrDestinationAmbiguous, res.CandidateStates)
	default:
		return fmt.Errorf("%w: %q", ErrDestinationNotFound, res.Input)
	}

	loc := res.Location
	if err = line.ApplyNormalization(loc.LocalityCode(), loc.Name(), loc.State()); err != nil {
		return err
	}

	if err = repo.Update(ctx, line); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
