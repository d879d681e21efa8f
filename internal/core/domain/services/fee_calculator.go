package services

import (
	"freightquote/internal/core/domain/model/carrier"
	"freightquote/internal/core/domain/model/quote"
	"freightquote/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// FeeCalculator evaluates a rate table's fee formula. It is a pure function
// of (weight, value, table, carrier, destination ICMS): calling it twice with
// the same inputs returns identical output, and it touches no shared state.
//
// The formula, in order:
//
//  1. weight_component = max(W * per_kg, min_weight_fee) and
//     value_component = max(V * pct_of_value, min_value_fee); the table's
//     modality selects which one is the basis.
//  2. Every surcharge is timed per carrier: before-minimum terms fold into
//     the raw basis prior to the floor, after-minimum terms are added once
//     the floor has been applied. Default is before-minimum.
//  3. net = max(raw_basis + before_terms, basis_minimum) + after_terms.
//  4. ICMS gross-up unless the carrier is in the simplified regime or the
//     table embeds ICMS: gross = net / (1 - rate), with the table's override
//     taking precedence over the destination's percent.
type FeeCalculator struct{}

// NewFeeCalculator creates a FeeCalculator.
func NewFeeCalculator() FeeCalculator {
	return FeeCalculator{}
}

// Calculate prices one shipment against one table. weightKg and declaredValue
// must be positive; destinationICMSPercent is the resolved location's rate.
func (fc FeeCalculator) Calculate(
	weightKg decimal.Decimal,
	declaredValue decimal.Decimal,
	table *carrier.RateTable,
	c *carrier.Carrier,
	destinationICMSPercent decimal.Decimal,
) (quote.FeeBreakdown, error) {
	if !weightKg.IsPositive() {
		return quote.FeeBreakdown{}, errs.NewValueIsInvalidError("weightKg")
	}
	if !declaredValue.IsPositive() {
		return quote.FeeBreakdown{}, errs.NewValueIsInvalidError("declaredValue")
	}
	if err := table.Validate(); err != nil {
		return quote.FeeBreakdown{}, err
	}
	if err := c.Validate(); err != nil {
		return quote.FeeBreakdown{}, err
	}

	breakdown := quote.FeeBreakdown{}

	var rawBasis, minimum decimal.Decimal
	if table.Modality().UsesValueBasis() {
		breakdown.BasisLabel = "value"
		rawBasis = declaredValue.Mul(table.PercentOfValue()).Div(oneHundred)
		minimum = table.MinValueFee()
	} else {
		breakdown.BasisLabel = "weight"
		rawBasis = weightKg.Mul(table.PerKgRate())
		minimum = table.MinWeightFee()
	}
	breakdown.Basis = rawBasis
	breakdown.Minimum = minimum

	before := decimal.Zero
	after := decimal.Zero
	for _, kind := range carrier.AllSurchargeKinds() {
		amount := fc.surchargeAmount(kind, weightKg, declaredValue, rawBasis, table, c)
		if amount.IsZero() {
			continue
		}

		term := quote.FeeTerm{
			Label:        kind.String(),
			Amount:       amount,
			AfterMinimum: c.AppliesAfterMinimum(kind),
		}
		breakdown.Terms = append(breakdown.Terms, term)

		if term.AfterMinimum {
			after = after.Add(amount)
		} else {
			before = before.Add(amount)
		}
	}

	floored := decimal.Max(rawBasis.Add(before), minimum)
	net := floored.Add(after)
	breakdown.Net = net
	breakdown.Gross = fc.grossUp(net, table, c, destinationICMSPercent)

	return breakdown, nil
}

// surchargeAmount computes one term. Percentage terms with a configured
// minimum (insurance, declared value) are floored individually before timing
// is applied.
func (FeeCalculator) surchargeAmount(
	kind carrier.SurchargeKind,
	weightKg decimal.Decimal,
	declaredValue decimal.Decimal,
	rawBasis decimal.Decimal,
	table *carrier.RateTable,
	c *carrier.Carrier,
) decimal.Decimal {
	switch kind {
	case carrier.SurchargeInsurance:
		if table.InsurancePercent().IsZero() && table.InsuranceMinimum().IsZero() {
			return decimal.Zero
		}
		return decimal.Max(
			rawBasis.Mul(table.InsurancePercent()).Div(oneHundred),
			table.InsuranceMinimum(),
		)

	case carrier.SurchargeDeclaredValue:
		if table.DeclaredValuePercent().IsZero() && table.DeclaredValueMinimum().IsZero() {
			return decimal.Zero
		}
		return decimal.Max(
			declaredValue.Mul(table.DeclaredValuePercent()).Div(oneHundred),
			table.DeclaredValueMinimum(),
		)

	case carrier.SurchargeLiability:
		return rawBasis.Mul(table.LiabilityPercent()).Div(oneHundred)

	case carrier.SurchargeToll:
		if table.TollPer100Kg().IsZero() {
			return decimal.Zero
		}
		units := weightKg.Div(oneHundred)
		if c.RoundsTollUp() {
			units = units.Ceil()
		}
		return units.Mul(table.TollPer100Kg())

	case carrier.SurchargeDispatch:
		return table.DispatchFee()

	case carrier.SurchargeInvoiceFee:
		return table.InvoiceFee()

	case carrier.SurchargeClearance:
		return table.ClearanceFee()

	default:
		return decimal.Zero
	}
}

// grossUp applies the ICMS gross-up. Simplified-regime carriers never gross
// up, regardless of table flags; tables with ICMS embedded return net as-is.
func (FeeCalculator) grossUp(
	net decimal.Decimal,
	table *carrier.RateTable,
	c *carrier.Carrier,
	destinationICMSPercent decimal.Decimal,
) decimal.Decimal {
	if c.InSimplifiedTaxRegime() || table.ICMSIncluded() {
		return net
	}

	rate := destinationICMSPercent
	if override, ok := table.ICMSOverride(); ok {
		rate = override
	}
	if rate.IsZero() {
		return net
	}

	return net.Div(decimal.NewFromInt(1).Sub(rate.Div(oneHundred)))
}
