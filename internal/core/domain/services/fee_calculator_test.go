package services_test

import (
	"testing"

	"freightquote/internal/core/domain/model/carrier"
	"freightquote/internal/core/domain/services"
	"freightquote/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeeCalculator_WeightBasis(t *testing.T) {
	calc := services.NewFeeCalculator()
	c := newCarrier(t, "RODOCARGO EXPRESS SA", true, false, true, nil)

	t.Run("should floor the weight basis at the table minimum", func(t *testing.T) {
		// 50kg at 0.50/kg is 25.00, below the 100.00 minimum.
		table := newTable(t, weightTableParams(t, c.ID(), "FRETE RJ"))

		fees, err := calc.Calculate(dec(t, "50"), dec(t, "1000"), table, c, dec(t, "0"))

		require.NoError(t, err)
		assert.Equal(t, "weight", fees.BasisLabel)
		assert.True(t, fees.Basis.Equal(dec(t, "25")))
		assert.True(t, fees.Net.Equal(dec(t, "100")))
		assert.True(t, fees.Gross.Equal(dec(t, "100")))
	})

	t.Run("should use the raw basis when above the minimum", func(t *testing.T) {
		table := newTable(t, weightTableParams(t, c.ID(), "FRETE RJ"))

		fees, err := calc.Calculate(dec(t, "400"), dec(t, "1000"), table, c, dec(t, "0"))

		require.NoError(t, err)
		assert.True(t, fees.Net.Equal(dec(t, "200")))
	})

	t.Run("should be a pure function of its inputs", func(t *testing.T) {
		table := newTable(t, weightTableParams(t, c.ID(), "FRETE RJ"))

		first, err := calc.Calculate(dec(t, "320"), dec(t, "5000"), table, c, dec(t, "12"))
		require.NoError(t, err)
		second, err := calc.Calculate(dec(t, "320"), dec(t, "5000"), table, c, dec(t, "12"))
		require.NoError(t, err)

		assert.True(t, first.Gross.Equal(second.Gross))
		assert.Equal(t, first.Terms, second.Terms)
	})
}

func TestFeeCalculator_ValueBasis(t *testing.T) {
	calc := services.NewFeeCalculator()
	c := newCarrier(t, "RODOCARGO EXPRESS SA", true, false, true, nil)

	t.Run("should charge a percentage of declared value", func(t *testing.T) {
		params := weightTableParams(t, c.ID(), "FRETE VALOR")
		params.Modality = carrier.ModalityByValue
		params.PercentOfValue = dec(t, "2")
		params.MinValueFee = dec(t, "50")
		table := newTable(t, params)

		fees, err := calc.Calculate(dec(t, "100"), dec(t, "10000"), table, c, dec(t, "0"))

		require.NoError(t, err)
		assert.Equal(t, "value", fees.BasisLabel)
		assert.True(t, fees.Net.Equal(dec(t, "200")))
	})

	t.Run("should floor the value basis at its own minimum", func(t *testing.T) {
		params := weightTableParams(t, c.ID(), "FRETE VALOR")
		params.Modality = carrier.ModalityByValue
		params.PercentOfValue = dec(t, "2")
		params.MinValueFee = dec(t, "50")
		table := newTable(t, params)

		fees, err := calc.Calculate(dec(t, "100"), dec(t, "1000"), table, c, dec(t, "0"))

		require.NoError(t, err)
		assert.True(t, fees.Net.Equal(dec(t, "50")))
	})
}

func TestFeeCalculator_SurchargeTiming(t *testing.T) {
	calc := services.NewFeeCalculator()

	// 50kg at 0.50/kg gives a raw basis of 25.00 against a 100.00 minimum;
	// the 30.00 dispatch fee lands on either side of the floor depending on
	// the carrier's timing.
	t.Run("should absorb before-minimum surcharge into the floor", func(t *testing.T) {
		c := newCarrier(t, "RODOCARGO EXPRESS SA", true, false, true, nil)
		p := weightTableParams(t, c.ID(), "FRETE RJ")
		p.DispatchFee = dec(t, "30")
		table := newTable(t, p)

		fees, err := calc.Calculate(dec(t, "50"), dec(t, "1000"), table, c, dec(t, "0"))

		require.NoError(t, err)
		// 25 + 30 = 55, still under the 100 floor.
		assert.True(t, fees.Net.Equal(dec(t, "100")))
	})

	t.Run("should add after-minimum surcharge on top of the floor", func(t *testing.T) {
		c := newCarrier(t, "RODOCARGO EXPRESS SA", true, false, true,
			[]carrier.SurchargeKind{carrier.SurchargeDispatch})
		p := weightTableParams(t, c.ID(), "FRETE RJ")
		p.DispatchFee = dec(t, "30")
		table := newTable(t, p)

		fees, err := calc.Calculate(dec(t, "50"), dec(t, "1000"), table, c, dec(t, "0"))

		require.NoError(t, err)
		assert.True(t, fees.Net.Equal(dec(t, "130")))
	})

	t.Run("should floor percentage surcharges individually", func(t *testing.T) {
		c := newCarrier(t, "RODOCARGO EXPRESS SA", true, false, true, nil)
		p := weightTableParams(t, c.ID(), "FRETE RJ")
		p.InsurancePercent = dec(t, "1")
		p.InsuranceMinimum = dec(t, "15")
		table := newTable(t, p)

		// Raw basis 25.00; 1% of that is 0.25, floored to the 15.00 minimum.
		fees, err := calc.Calculate(dec(t, "50"), dec(t, "1000"), table, c, dec(t, "0"))

		require.NoError(t, err)
		require.Len(t, fees.Terms, 1)
		assert.Equal(t, "insurance", fees.Terms[0].Label)
		assert.True(t, fees.Terms[0].Amount.Equal(dec(t, "15")))
	})

	t.Run("should omit zero-amount surcharges from the breakdown", func(t *testing.T) {
		c := newCarrier(t, "RODOCARGO EXPRESS SA", true, false, true, nil)
		table := newTable(t, weightTableParams(t, c.ID(), "FRETE RJ"))

		fees, err := calc.Calculate(dec(t, "50"), dec(t, "1000"), table, c, dec(t, "0"))

		require.NoError(t, err)
		assert.Empty(t, fees.Terms)
	})
}

func TestFeeCalculator_Toll(t *testing.T) {
	calc := services.NewFeeCalculator()

	t.Run("should round toll weight up to the next 100kg unit", func(t *testing.T) {
		c := newCarrier(t, "RODOCARGO EXPRESS SA", true, false, true, nil)
		p := weightTableParams(t, c.ID(), "FRETE RJ")
		p.TollPer100Kg = dec(t, "8")
		table := newTable(t, p)

		// 250kg rounds up to 3 units of 100kg.
		fees, err := calc.Calculate(dec(t, "250"), dec(t, "1000"), table, c, dec(t, "0"))

		require.NoError(t, err)
		require.Len(t, fees.Terms, 1)
		assert.True(t, fees.Terms[0].Amount.Equal(dec(t, "24")))
	})

	t.Run("should charge proportional toll when rounding is disabled", func(t *testing.T) {
		c := newCarrier(t, "RODOCARGO EXPRESS SA", true, false, false, nil)
		p := weightTableParams(t, c.ID(), "FRETE RJ")
		p.TollPer100Kg = dec(t, "8")
		table := newTable(t, p)

		fees, err := calc.Calculate(dec(t, "250"), dec(t, "1000"), table, c, dec(t, "0"))

		require.NoError(t, err)
		require.Len(t, fees.Terms, 1)
		assert.True(t, fees.Terms[0].Amount.Equal(dec(t, "20")))
	})
}

func TestFeeCalculator_GrossUp(t *testing.T) {
	calc := services.NewFeeCalculator()

	t.Run("should gross up by the destination rate", func(t *testing.T) {
		c := newCarrier(t, "RODOCARGO EXPRESS SA", true, false, true, nil)
		table := newTable(t, weightTableParams(t, c.ID(), "FRETE RJ"))

		fees, err := calc.Calculate(dec(t, "50"), dec(t, "1000"), table, c, dec(t, "12"))

		require.NoError(t, err)
		// 100 / (1 - 0.12)
		assert.True(t, fees.Gross.Round(2).Equal(dec(t, "113.64")))
	})

	t.Run("should prefer the table override over the destination rate", func(t *testing.T) {
		c := newCarrier(t, "RODOCARGO EXPRESS SA", true, false, true, nil)
		p := weightTableParams(t, c.ID(), "FRETE RJ")
		override := dec(t, "7")
		p.ICMSOverride = &override
		table := newTable(t, p)

		fees, err := calc.Calculate(dec(t, "50"), dec(t, "1000"), table, c, dec(t, "12"))

		require.NoError(t, err)
		// 100 / (1 - 0.07)
		assert.True(t, fees.Gross.Round(2).Equal(dec(t, "107.53")))
	})

	t.Run("should skip gross-up for simplified regime carrier", func(t *testing.T) {
		c := newCarrier(t, "RODOCARGO EXPRESS SA", true, true, true, nil)
		table := newTable(t, weightTableParams(t, c.ID(), "FRETE RJ"))

		fees, err := calc.Calculate(dec(t, "50"), dec(t, "1000"), table, c, dec(t, "12"))

		require.NoError(t, err)
		assert.True(t, fees.Gross.Equal(dec(t, "100")))
	})

	t.Run("should skip gross-up when the table embeds the tax", func(t *testing.T) {
		c := newCarrier(t, "RODOCARGO EXPRESS SA", true, false, true, nil)
		p := weightTableParams(t, c.ID(), "FRETE RJ")
		p.ICMSIncluded = true
		table := newTable(t, p)

		fees, err := calc.Calculate(dec(t, "50"), dec(t, "1000"), table, c, dec(t, "12"))

		require.NoError(t, err)
		assert.True(t, fees.Gross.Equal(dec(t, "100")))
	})
}

func TestFeeCalculator_InvalidInput(t *testing.T) {
	calc := services.NewFeeCalculator()
	c := newCarrier(t, "RODOCARGO EXPRESS SA", true, false, true, nil)
	table := newTable(t, weightTableParams(t, c.ID(), "FRETE RJ"))

	t.Run("should reject non-positive weight", func(t *testing.T) {
		_, err := calc.Calculate(dec(t, "0"), dec(t, "1000"), table, c, dec(t, "0"))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject non-positive declared value", func(t *testing.T) {
		_, err := calc.Calculate(dec(t, "50"), dec(t, "-1"), table, c, dec(t, "0"))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject table not built through its constructor", func(t *testing.T) {
		var zero carrier.RateTable

		_, err := calc.Calculate(dec(t, "50"), dec(t, "1000"), &zero, c, dec(t, "0"))

		require.Error(t, err)
		assert.ErrorIs(t, err, carrier.ErrRateTableIsNotConstructed)
	})
}
