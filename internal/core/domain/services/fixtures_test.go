package services_test

import (
	"testing"

	"freightquote/internal/core/domain/model/carrier"
	"freightquote/internal/core/domain/model/kernel"
	"freightquote/internal/core/domain/model/location"
	"freightquote/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Shared fixture builders for the service tests. Reference entities are
// constructor-validated, so each builder fails the test on invalid input
// instead of threading errors through every scenario.

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func newLocation(t *testing.T, name, state, code, icmsPercent string, pickupOnly, redispatchHub bool) *location.Location {
	t.Helper()
	loc, err := location.NewLocation(
		kernel.NewUUID(), name, state, code, dec(t, icmsPercent), pickupOnly, redispatchHub)
	require.NoError(t, err)
	return loc
}

func newCarrier(t *testing.T, legalName string, active, simplified, roundTollUp bool, afterMinimum []carrier.SurchargeKind) *carrier.Carrier {
	t.Helper()
	c, err := carrier.NewCarrier(
		kernel.NewUUID(), legalName, "04.884.082/0001-35", active, simplified, roundTollUp, afterMinimum)
	require.NoError(t, err)
	return c
}

// weightTableParams is the minimal by-weight configuration; scenarios override
// the rate fields they exercise.
func weightTableParams(t *testing.T, carrierID kernel.UUID, name string) carrier.RateTableParams {
	t.Helper()
	return carrier.RateTableParams{
		ID:               kernel.NewUUID(),
		CarrierID:        carrierID,
		OriginState:      "SP",
		DestinationState: "RJ",
		Name:             name,
		CargoType:        carrier.CargoTypeConsolidated,
		Modality:         carrier.ModalityByWeight,
		PerKgRate:        dec(t, "0.5"),
		MinWeightFee:     dec(t, "100"),
	}
}

func newTable(t *testing.T, params carrier.RateTableParams) *carrier.RateTable {
	t.Helper()
	table, err := carrier.NewRateTable(params)
	require.NoError(t, err)
	return table
}

func newBinding(t *testing.T, carrierID kernel.UUID, tableName, localityCode string, leadTimeDays int, modality carrier.Modality) *carrier.ServiceBinding {
	t.Helper()
	b, err := carrier.NewServiceBinding(carrierID, tableName, localityCode, leadTimeDays, modality)
	require.NoError(t, err)
	return b
}

func newVehicle(t *testing.T, className, maxPayloadKg string) *carrier.Vehicle {
	t.Helper()
	v, err := carrier.NewVehicle(className, dec(t, maxPayloadKg))
	require.NoError(t, err)
	return v
}

func newOrderLine(t *testing.T, customerTaxID, destinationName, destinationState, weightKg, declaredValue string, tag order.RouteTag, subRoute string) *order.OrderLine {
	t.Helper()
	line, err := order.NewOrderLine(
		kernel.NewUUID(), "PED-100", customerTaxID, destinationName, destinationState,
		dec(t, weightKg), dec(t, declaredValue), tag, subRoute)
	require.NoError(t, err)
	return line
}
