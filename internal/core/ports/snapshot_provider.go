package ports

import (
	"freightquote/internal/core/domain/services"
)

// SnapshotProvider hands out the current reference-data snapshot. Providers
// must return a fully indexed, immutable set; swapping in a fresh snapshot
// must never mutate one already handed out.
type SnapshotProvider interface {
	Snapshot() *services.ReferenceSet
}
