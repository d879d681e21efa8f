package services_test

import (
	"testing"

	"freightquote/internal/core/domain/model/carrier"
	"freightquote/internal/core/domain/model/location"
	"freightquote/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceSet_LocationIndexes(t *testing.T) {
	saoPaulo := newLocation(t, "São Paulo", "SP", "3550308", "18", false, false)
	campinas := newLocation(t, "Campinas", "SP", "3509502", "18", false, false)
	rio := newLocation(t, "Rio de Janeiro", "RJ", "3304557", "20", false, false)

	refs := services.NewReferenceSet(
		[]*location.Location{saoPaulo, campinas, rio}, nil, nil, nil, nil)

	t.Run("should index locations by normalized name", func(t *testing.T) {
		matches := refs.LocationsByName("SAO PAULO")
		require.Len(t, matches, 1)
		assert.True(t, matches[0].IsEqual(saoPaulo))
	})

	t.Run("should index locations by state", func(t *testing.T) {
		assert.Len(t, refs.LocationsByState("SP"), 2)
		assert.Len(t, refs.LocationsByState(" rj "), 1)
		assert.Empty(t, refs.LocationsByState("MG"))
	})

	t.Run("should index locations by locality code", func(t *testing.T) {
		loc, ok := refs.LocationByCode("3304557")
		require.True(t, ok)
		assert.True(t, loc.IsEqual(rio))

		_, ok = refs.LocationByCode("0000000")
		assert.False(t, ok)
	})
}

func TestReferenceSet_BusinessGroups(t *testing.T) {
	t.Run("should group carriers whose stripped legal names share a prefix", func(t *testing.T) {
		matriz := newCarrier(t, "TRANSLOG SUL LTDA", true, false, true, nil)
		filial := newCarrier(t, "TRANSLOG SUL EIRELI", true, false, true, nil)
		other := newCarrier(t, "RODOCARGO EXPRESS SA", true, false, true, nil)

		refs := services.NewReferenceSet(nil,
			[]*carrier.Carrier{matriz, filial, other}, nil, nil, nil)

		group := refs.GroupMembers(matriz.ID())
		require.Len(t, group, 2)
		assert.Len(t, refs.GroupMembers(other.ID()), 1)
	})

	t.Run("should strip stacked legal entity suffixes", func(t *testing.T) {
		a := newCarrier(t, "VIA NORTE TRANSPORTES LTDA ME", true, false, true, nil)
		b := newCarrier(t, "Via Norte Transportes S/A", true, false, true, nil)

		refs := services.NewReferenceSet(nil, []*carrier.Carrier{a, b}, nil, nil, nil)

		assert.Len(t, refs.GroupMembers(a.ID()), 2)
	})

	t.Run("should not group carriers with distinct prefixes", func(t *testing.T) {
		a := newCarrier(t, "ALFA LOGISTICA LTDA", true, false, true, nil)
		b := newCarrier(t, "BETA LOGISTICA LTDA", true, false, true, nil)

		refs := services.NewReferenceSet(nil, []*carrier.Carrier{a, b}, nil, nil, nil)

		assert.Len(t, refs.GroupMembers(a.ID()), 1)
		assert.Len(t, refs.GroupMembers(b.ID()), 1)
	})
}

func TestReferenceSet_BindingsByState(t *testing.T) {
	t.Run("should collect bindings of every locality in the state", func(t *testing.T) {
		rio := newLocation(t, "Rio de Janeiro", "RJ", "3304557", "20", false, false)
		niteroi := newLocation(t, "Niterói", "RJ", "3303302", "20", false, false)

		c := newCarrier(t, "RODOCARGO EXPRESS SA", true, false, true, nil)
		b1 := newBinding(t, c.ID(), "FRETE RJ", "3304557", 3, "")
		b2 := newBinding(t, c.ID(), "FRETE RJ", "3303302", 4, "")

		refs := services.NewReferenceSet(
			[]*location.Location{rio, niteroi},
			[]*carrier.Carrier{c}, nil,
			[]*carrier.ServiceBinding{b1, b2}, nil)

		assert.Len(t, refs.BindingsByState("RJ"), 2)
		assert.Empty(t, refs.BindingsByState("SP"))
	})
}

func TestReferenceSet_VehicleByClass(t *testing.T) {
	t.Run("should match vehicle class case insensitively", func(t *testing.T) {
		truck := newVehicle(t, "TRUCK", "12000")
		refs := services.NewReferenceSet(nil, nil, nil, nil,
			[]*carrier.Vehicle{truck})

		v, ok := refs.VehicleByClass("truck")
		require.True(t, ok)
		assert.Equal(t, "TRUCK", v.ClassName())

		_, ok = refs.VehicleByClass("ZEPPELIN")
		assert.False(t, ok)
	})
}
