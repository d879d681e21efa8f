package commands

import (
	"errors"

	"freightquote/internal/core/domain/model/kernel"
	"freightquote/internal/pkg/guard"
)

var ErrPersistDestinationCommandIsNotConstructed = errors.New(
	"PersistDestinationCommand must be created via NewPersistDestinationCommand constructor",
)

// PersistDestinationCommand requests storing a line's resolved destination
// so later quotations skip re-resolution. Resolution itself stays a pure
// computation; this command is the explicit write that follows it.
type PersistDestinationCommand struct { //nolint:recvcheck //using for validation
	lineID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPersistDestinationCommand creates a command for one order line.
func NewPersistDestinationCommand(lineID kernel.UUID) (PersistDestinationCommand, error) {
	cmd := PersistDestinationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setLineID(lineID); err != nil {
		return PersistDestinationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPersistDestinationCommandIsNotConstructed if validation fails.
func (c PersistDestinationCommand) Validate() error {
	return c.guard.Validate(ErrPersistDestinationCommandIsNotConstructed)
}

// LineID returns the identifier of the order line to normalize.
func (c PersistDestinationCommand) LineID() kernel.UUID {
	return c.lineID
}

func (c *PersistDestinationCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}

	c.lineID = lineID
	return nil
}
