package services

import (
	"sort"

	"freightquote/internal/core/domain/model/carrier"
	"freightquote/internal/core/domain/model/location"
)

// Candidate pairs a service binding with one eligible rate table. The table's
// owner may differ from the binding's carrier when the table was picked up
// through business-group expansion.
type Candidate struct {
	Binding *carrier.ServiceBinding
	Table   *carrier.RateTable
	Owner   *carrier.Carrier
}

// EstimateBinding is a binding usable for delivery-window estimates.
// StateFallback marks bindings found through the state-only fallback.
type EstimateBinding struct {
	Binding       *carrier.ServiceBinding
	Carrier       *carrier.Carrier
	StateFallback bool
}

// BindingIndex finds the (binding, table) candidates serving a resolved
// location. Bindings of inactive carriers are discarded, table names are
// matched case- and whitespace-insensitively, and rate tables owned by any
// business-group member of the bound carrier are eligible, so sibling legal
// entities do not need duplicate agreement rows.
type BindingIndex struct{}

// NewBindingIndex creates a BindingIndex.
func NewBindingIndex() BindingIndex {
	return BindingIndex{}
}

// Candidates returns the deduplicated candidate list for a location.
// cargoFilter narrows to one cargo type; pass carrier.CargoTypeUnknown for all.
func (BindingIndex) Candidates(
	refs *ReferenceSet,
	loc *location.Location,
	originState string,
	cargoFilter carrier.CargoType,
) []Candidate {
	origin := NormalizeState(originState)
	destState := NormalizeState(loc.State())

	type dedupeKey struct {
		carrierID string
		tableName string
		cargoType carrier.CargoType
		modality  carrier.Modality
	}
	seen := make(map[dedupeKey]bool)

	var out []Candidate
	for _, binding := range refs.BindingsByLocality(loc.LocalityCode()) {
		bound, ok := refs.CarrierByID(binding.CarrierID())
		if !ok || !bound.IsActive() {
			continue
		}

		wantName := NormalizeText(binding.TableName())
		for _, member := range refs.GroupMembers(binding.CarrierID()) {
			if !member.IsActive() {
				continue
			}

			for _, table := range refs.TablesByOwner(member.ID()) {
				if NormalizeText(table.Name()) != wantName {
					continue
				}
				if NormalizeState(table.OriginState()) != origin ||
					NormalizeState(table.DestinationState()) != destState {
					continue
				}
				if cargoFilter != carrier.CargoTypeUnknown && table.CargoType() != cargoFilter {
					continue
				}
				if binding.Modality() != "" &&
					NormalizeText(table.Modality().String()) != NormalizeText(binding.Modality().String()) {
					continue
				}

				key := dedupeKey{
					carrierID: member.ID().String(),
					tableName: wantName,
					cargoType: table.CargoType(),
					modality:  table.Modality(),
				}
				if seen[key] {
					continue
				}
				seen[key] = true

				out = append(out, Candidate{Binding: binding, Table: table, Owner: member})
			}
		}
	}

	sortCandidates(out)
	return out
}

// EstimateBindings returns bindings for delivery-window estimates: the exact
// bindings for the locality when any exist, otherwise the state-only fallback.
func (BindingIndex) EstimateBindings(refs *ReferenceSet, loc *location.Location) []EstimateBinding {
	exact := activeBindings(refs, refs.BindingsByLocality(loc.LocalityCode()), false)
	if len(exact) > 0 {
		return exact
	}
	return activeBindings(refs, refs.BindingsByState(loc.State()), true)
}

func activeBindings(
	refs *ReferenceSet,
	bindings []*carrier.ServiceBinding,
	fallback bool,
) []EstimateBinding {
	var out []EstimateBinding
	for _, b := range bindings {
		c, ok := refs.CarrierByID(b.CarrierID())
		if !ok || !c.IsActive() {
			continue
		}
		out = append(out, EstimateBinding{Binding: b, Carrier: c, StateFallback: fallback})
	}
	return out
}

// sortCandidates gives the candidate list a stable order before pricing,
// so batch results never depend on map iteration.
func sortCandidates(candidates []Candidate) {
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Owner.LegalName() != b.Owner.LegalName() {
			return a.Owner.LegalName() < b.Owner.LegalName()
		}
		if a.Table.Name() != b.Table.Name() {
			return a.Table.Name() < b.Table.Name()
		}
		return a.Table.Modality() < b.Table.Modality()
	})
}
