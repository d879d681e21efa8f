package carrier

// SurchargeKind enumerates the fee terms a rate table can add on top of its
// basis. Each kind is timed per carrier: folded into the basis before the
// table minimum is applied (the default), or added only after the minimum.
// The timing reproduces real billing practice where small shipments that hit
// the minimum are exempt from some surcharges but never from others.
type SurchargeKind int

const (
	// SurchargeInsurance is the cargo-insurance (GRIS) fee: a percentage of
	// the basis with a configured minimum.
	SurchargeInsurance SurchargeKind = iota

	// SurchargeDeclaredValue is proportional to the declared cargo value,
	// with a configured minimum.
	SurchargeDeclaredValue

	// SurchargeLiability is the percentage fee covering carrier civil liability.
	SurchargeLiability

	// SurchargeToll is charged per started 100kg unit of shipment weight.
	SurchargeToll

	// SurchargeDispatch is the flat dispatch fee.
	SurchargeDispatch

	// SurchargeInvoiceFee is the flat invoice-issuance fee.
	SurchargeInvoiceFee

	// SurchargeClearance is the flat cargo-clearance fee.
	SurchargeClearance
)

// AllSurchargeKinds lists every kind in a stable order, used when iterating
// fee terms deterministically.
func AllSurchargeKinds() []SurchargeKind {
	return []SurchargeKind{
		SurchargeInsurance,
		SurchargeDeclaredValue,
		SurchargeLiability,
		SurchargeToll,
		SurchargeDispatch,
		SurchargeInvoiceFee,
		SurchargeClearance,
	}
}

// String returns the term label used in fee breakdowns.
func (k SurchargeKind) String() string {
	switch k {
	case SurchargeInsurance:
		return "insurance"
	case SurchargeDeclaredValue:
		return "declared_value"
	case SurchargeLiability:
		return "liability"
	case SurchargeToll:
		return "toll"
	case SurchargeDispatch:
		return "dispatch"
	case SurchargeInvoiceFee:
		return "invoice_fee"
	case SurchargeClearance:
		return "clearance"
	default:
		return "unknown"
	}
}
