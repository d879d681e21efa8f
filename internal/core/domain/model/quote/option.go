package quote

import (
	"freightquote/internal/core/domain/model/carrier"
	"freightquote/internal/core/domain/model/kernel"
)

// Option is one quoted shipping option. Options are ephemeral: produced per
// request, ranked, returned to the caller, and discarded. Persisting an
// accepted option is the caller's responsibility.
type Option struct {
	CarrierID   kernel.UUID
	CarrierName string
	TableName   string
	Modality    carrier.Modality
	CargoType   carrier.CargoType

	Fees FeeBreakdown

	// LeadTimeDays is the binding's quoted lead time; -1 when the option was
	// priced through a business-group sibling's table, since the sibling never
	// quoted a lead time for the lane.
	LeadTimeDays int

	// Best marks the selected option of a ranked list; the rest are alternatives.
	Best bool

	// SelectionRationale is a human-readable audit note, e.g.
	// "cheapest of 4 options, priced for Resende/RJ" or
	// "most expensive among 3 stops, priced for Volta Redonda/RJ".
	SelectionRationale string
}
