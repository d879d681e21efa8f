package location_test

import (
	"testing"

	"freightquote/internal/core/domain/model/kernel"
	"freightquote/internal/core/domain/model/location"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	validID := kernel.NewUUID()
	icms := decimal.NewFromInt(12)

	t.Run("should create valid location with all valid parameters", func(t *testing.T) {
		loc, err := location.NewLocation(validID, "CAMPINAS", "SP", "6291", icms, false, false)

		require.NoError(t, err)
		require.NoError(t, loc.Validate())
		assert.True(t, loc.ID().IsEqual(validID))
		assert.Equal(t, "CAMPINAS", loc.Name())
		assert.Equal(t, "SP", loc.State())
		assert.Equal(t, "6291", loc.LocalityCode())
		assert.True(t, loc.ICMSPercent().Equal(icms))
		assert.False(t, loc.IsPickupOnly())
		assert.False(t, loc.IsRedispatchHub())
		assert.Equal(t, "CAMPINAS/SP", loc.String())
	})

	t.Run("should keep FOB and RED markers", func(t *testing.T) {
		fob, err := location.NewLocation(kernel.NewUUID(), "ITAJAI", "SC", "8161", icms, true, false)
		require.NoError(t, err)
		assert.True(t, fob.IsPickupOnly())

		red, err := location.NewLocation(kernel.NewUUID(), "GUARULHOS", "SP", "6477", icms, false, true)
		require.NoError(t, err)
		assert.True(t, red.IsRedispatchHub())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		loc, err := location.NewLocation(invalidID, "CAMPINAS", "SP", "6291", icms, false, false)

		require.Error(t, err)
		assert.Nil(t, loc)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		_, err := location.NewLocation(validID, "", "SP", "6291", icms, false, false)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("should fail with malformed state code", func(t *testing.T) {
		_, err := location.NewLocation(validID, "CAMPINAS", "SAO", "6291", icms, false, false)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "state")
	})

	t.Run("should fail with empty locality code", func(t *testing.T) {
		_, err := location.NewLocation(validID, "CAMPINAS", "SP", "", icms, false, false)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "localityCode")
	})

	t.Run("should fail with ICMS percent out of range", func(t *testing.T) {
		_, err := location.NewLocation(validID, "CAMPINAS", "SP", "6291", decimal.NewFromInt(100), false, false)
		require.Error(t, err)

		_, err = location.NewLocation(validID, "CAMPINAS", "SP", "6291", decimal.NewFromInt(-1), false, false)
		require.Error(t, err)
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := location.NewLocation(invalidID, "", "X", "", icms, false, false)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "state")
	})
}

func TestLocation_Validate(t *testing.T) {
	t.Run("should fail for nil and zero value", func(t *testing.T) {
		var loc *location.Location
		require.Error(t, loc.Validate())

		zero := &location.Location{}
		require.ErrorIs(t, zero.Validate(), location.ErrLocationIsNotConstructed)
	})
}
