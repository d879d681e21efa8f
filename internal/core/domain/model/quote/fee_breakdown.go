package quote

import (
	"github.com/shopspring/decimal"
)

// FeeTerm is one priced term of a freight charge: the basis or a surcharge.
// AfterMinimum records whether the term was added after the table minimum was
// applied, for audit of the carrier's surcharge timing.
type FeeTerm struct {
	Label        string
	Amount       decimal.Decimal
	AfterMinimum bool
}

// FeeBreakdown is the per-term result of evaluating a rate table's formula.
// Net is the charge before tax gross-up, Gross the final quoted amount.
// All amounts are unrounded; presentation layers round for display.
type FeeBreakdown struct {
	// BasisLabel names the selected basis: "weight" or "value".
	BasisLabel string

	// Basis is the raw basis amount before the minimum floor.
	Basis decimal.Decimal

	// Minimum is the table floor applied to the basis.
	Minimum decimal.Decimal

	Terms []FeeTerm

	Net   decimal.Decimal
	Gross decimal.Decimal
}
