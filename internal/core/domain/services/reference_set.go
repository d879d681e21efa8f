package services

import (
	"strings"

	"freightquote/internal/core/domain/model/carrier"
	"freightquote/internal/core/domain/model/kernel"
	"freightquote/internal/core/domain/model/location"

	"github.com/google/uuid"
)

// ReferenceSet is an immutable, indexed snapshot of the five reference tables.
// It is built once (per refresh or per request) and then only read, so any
// number of concurrent quotations may share one instance. Full-collection
// scans during disambiguation are the dominant cost risk, which is why every
// lookup the engine performs has a prebuilt index here.
type ReferenceSet struct {
	locations        []*location.Location
	locationsByName  map[string][]*location.Location
	locationsByState map[string][]*location.Location
	locationsByCode  map[string]*location.Location

	carriers       []*carrier.Carrier
	carriersByID   map[uuid.UUID]*carrier.Carrier
	carrierGroups  map[uuid.UUID][]*carrier.Carrier
	tablesByOwner  map[uuid.UUID][]*carrier.RateTable
	bindingsByCode map[string][]*carrier.ServiceBinding
	vehiclesByName map[string]*carrier.Vehicle
}

// businessGroupPrefixLen is the fixed prefix length compared between stripped
// legal names when inferring business groups. See groupKey.
const businessGroupPrefixLen = 10

// legalEntitySuffixes are trimmed from the end of a legal name before group
// comparison, so "TRANSLOG SUL LTDA" and "TRANSLOG SUL EIRELI" land in one group.
func legalEntitySuffixes() []string {
	return []string{"LTDA", "EIRELI", "S.A.", "S/A", "SA", "ME", "EPP"}
}

// NewReferenceSet indexes a snapshot of the reference data. Inputs are not
// copied; callers hand over slices they will not mutate afterwards.
func NewReferenceSet(
	locations []*location.Location,
	carriers []*carrier.Carrier,
	tables []*carrier.RateTable,
	bindings []*carrier.ServiceBinding,
	vehicles []*carrier.Vehicle,
) *ReferenceSet {
	rs := &ReferenceSet{
		locations:        locations,
		locationsByName:  make(map[string][]*location.Location),
		locationsByState: make(map[string][]*location.Location),
		locationsByCode:  make(map[string]*location.Location),
		carriers:         carriers,
		carriersByID:     make(map[uuid.UUID]*carrier.Carrier, len(carriers)),
		carrierGroups:    make(map[uuid.UUID][]*carrier.Carrier),
		tablesByOwner:    make(map[uuid.UUID][]*carrier.RateTable),
		bindingsByCode:   make(map[string][]*carrier.ServiceBinding),
		vehiclesByName:   make(map[string]*carrier.Vehicle, len(vehicles)),
	}

	for _, loc := range locations {
		name := NormalizeText(loc.Name())
		state := NormalizeState(loc.State())
		rs.locationsByName[name] = append(rs.locationsByName[name], loc)
		rs.locationsByState[state] = append(rs.locationsByState[state], loc)
		rs.locationsByCode[loc.LocalityCode()] = loc
	}

	for _, c := range carriers {
		rs.carriersByID[c.ID().Bytes()] = c
	}
	rs.indexGroups()

	for _, t := range tables {
		owner := t.CarrierID().Bytes()
		rs.tablesByOwner[owner] = append(rs.tablesByOwner[owner], t)
	}

	for _, b := range bindings {
		rs.bindingsByCode[b.LocalityCode()] = append(rs.bindingsByCode[b.LocalityCode()], b)
	}

	for _, v := range vehicles {
		rs.vehiclesByName[NormalizeText(v.ClassName())] = v
	}

	return rs
}

// indexGroups precomputes business-group membership. Carriers whose stripped
// legal names share a fixed-length prefix are treated as one group, so rate
// tables of sibling legal entities become mutually eligible without duplicate
// agreement rows.
func (rs *ReferenceSet) indexGroups() {
	byKey := make(map[string][]*carrier.Carrier)
	for _, c := range rs.carriers {
		key := groupKey(c.LegalName())
		byKey[key] = append(byKey[key], c)
	}

	for _, members := range byKey {
		for _, c := range members {
			rs.carrierGroups[c.ID().Bytes()] = members
		}
	}
}

// groupKey strips legal-entity suffixes from a normalized legal name and
// truncates to a fixed-length prefix. The heuristic is literal-compatible
// with the historical billing data; replacing it with a stable parent-entity
// identifier would require a reference-data change.
func groupKey(legalName string) string {
	name := NormalizeText(legalName)
	for changed := true; changed; {
		changed = false
		for _, suffix := range legalEntitySuffixes() {
			trimmed, found := cutSuffixWord(name, suffix)
			if found {
				name = trimmed
				changed = true
			}
		}
	}

	// Truncate by runes, not bytes, so a multi-byte character at the cut
	// point is never split and keys stay valid UTF-8 in logs.
	if runes := []rune(name); len(runes) > businessGroupPrefixLen {
		return string(runes[:businessGroupPrefixLen])
	}
	return name
}

// cutSuffixWord removes a trailing whole word from a normalized name.
func cutSuffixWord(name, word string) (string, bool) {
	if name == word {
		return "", true
	}
	if trimmed, ok := strings.CutSuffix(name, " "+word); ok {
		return trimmed, true
	}
	return name, false
}

// LocationsByName returns the locations whose normalized name matches exactly.
func (rs *ReferenceSet) LocationsByName(normalizedName string) []*location.Location {
	return rs.locationsByName[normalizedName]
}

// LocationsByState returns every location in a state.
func (rs *ReferenceSet) LocationsByState(state string) []*location.Location {
	return rs.locationsByState[NormalizeState(state)]
}

// LocationByCode returns the location with the given locality code, if any.
func (rs *ReferenceSet) LocationByCode(code string) (*location.Location, bool) {
	loc, ok := rs.locationsByCode[code]
	return loc, ok
}

// CarrierByID returns the carrier with the given id, if any.
func (rs *ReferenceSet) CarrierByID(id kernel.UUID) (*carrier.Carrier, bool) {
	c, ok := rs.carriersByID[id.Bytes()]
	return c, ok
}

// GroupMembers returns the business group a carrier belongs to, including the
// carrier itself. Unknown carriers yield an empty group.
func (rs *ReferenceSet) GroupMembers(id kernel.UUID) []*carrier.Carrier {
	return rs.carrierGroups[id.Bytes()]
}

// TablesByOwner returns the rate tables owned by one carrier.
func (rs *ReferenceSet) TablesByOwner(id kernel.UUID) []*carrier.RateTable {
	return rs.tablesByOwner[id.Bytes()]
}

// BindingsByLocality returns the service bindings for a locality code.
func (rs *ReferenceSet) BindingsByLocality(code string) []*carrier.ServiceBinding {
	return rs.bindingsByCode[code]
}

// BindingsByState returns every binding whose served locality is in the given
// state. This is the documented fallback used solely for delivery-window
// estimates when no exact binding exists.
func (rs *ReferenceSet) BindingsByState(state string) []*carrier.ServiceBinding {
	var out []*carrier.ServiceBinding
	for _, loc := range rs.LocationsByState(state) {
		out = append(out, rs.bindingsByCode[loc.LocalityCode()]...)
	}
	return out
}

// VehicleByClass returns the vehicle for a canonical class name, if any.
func (rs *ReferenceSet) VehicleByClass(canonicalClass string) (*carrier.Vehicle, bool) {
	v, ok := rs.vehiclesByName[NormalizeText(canonicalClass)]
	return v, ok
}
