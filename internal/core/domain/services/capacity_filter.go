package services

import (
	"freightquote/internal/core/domain/model/carrier"

	"github.com/shopspring/decimal"
)

// VehicleCapacityFilter excludes dedicated-truck candidates whose vehicle
// cannot carry the shipment. Modality labels arrive with assorted spellings,
// so a tolerant synonym table maps them onto canonical vehicle classes first.
//
// Fail-safe rule: a dedicated table whose modality cannot be mapped to a known
// vehicle class is excluded, since its capacity is unknowable. Consolidated
// tables are never filtered; no capacity assumption applies to LTL.
type VehicleCapacityFilter struct {
	synonyms map[string]string
}

// DefaultVehicleSynonyms returns the production synonym table. Keys are
// normalized modality spellings, values the canonical vehicle class.
func DefaultVehicleSynonyms() map[string]string {
	return map[string]string{
		"FIORINO":        "FIORINO",
		"FIORINO FURGAO": "FIORINO",
		"VAN":            "VAN",
		"DUCATO":         "VAN",
		"VUC":            "VUC",
		"3/4":            "3/4",
		"TRES QUARTOS":   "3/4",
		"TOCO":           "TOCO",
		"TRUCK":          "TRUCK",
		"TRUCADO":        "TRUCK",
		"CARRETA":        "CARRETA",
		"CARRETA LS":     "CARRETA",
		"BITREM":         "BITREM",
	}
}

// NewVehicleCapacityFilter creates a filter with the given synonym table.
// A nil table falls back to DefaultVehicleSynonyms.
func NewVehicleCapacityFilter(synonyms map[string]string) VehicleCapacityFilter {
	if synonyms == nil {
		synonyms = DefaultVehicleSynonyms()
	}

	normalized := make(map[string]string, len(synonyms))
	for spelling, class := range synonyms {
		normalized[NormalizeText(spelling)] = class
	}
	return VehicleCapacityFilter{synonyms: normalized}
}

// CanonicalClass maps a modality label to its canonical vehicle class.
func (f VehicleCapacityFilter) CanonicalClass(m carrier.Modality) (string, bool) {
	class, ok := f.synonyms[NormalizeText(m.String())]
	return class, ok
}

// Filter returns the candidates that survive the capacity check for the total
// shipment weight.
func (f VehicleCapacityFilter) Filter(
	refs *ReferenceSet,
	candidates []Candidate,
	totalWeightKg decimal.Decimal,
) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for _, cand := range candidates {
		if cand.Table.CargoType() != carrier.CargoTypeDedicated {
			out = append(out, cand)
			continue
		}

		class, ok := f.CanonicalClass(cand.Table.Modality())
		if !ok {
			continue
		}

		vehicle, ok := refs.VehicleByClass(class)
		if !ok {
			continue
		}

		if vehicle.CanCarry(totalWeightKg) {
			out = append(out, cand)
		}
	}
	return out
}
