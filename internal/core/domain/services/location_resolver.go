package services

import (
	"sort"

	"freightquote/internal/core/domain/model/location"
	"freightquote/internal/core/domain/model/order"
)

// ResolutionKind tags the possible outcomes of destination resolution.
type ResolutionKind int

const (
	// ResolutionResolved means exactly one canonical location matched.
	ResolutionResolved ResolutionKind = iota

	// ResolutionNoDelivery means the line is pickup-only (FOB) and has no
	// delivery leg; it is excluded from pricing.
	ResolutionNoDelivery

	// ResolutionAmbiguous means the normalized name exists in more than one
	// state and no state was supplied. Structured outcome, not an error: the
	// caller must resupply with one of CandidateStates.
	ResolutionAmbiguous

	// ResolutionNotFound means no location matched the normalized name.
	ResolutionNotFound
)

// Resolution is the result of resolving one destination.
type Resolution struct {
	Kind     ResolutionKind
	Location *location.Location

	// CandidateStates enumerates the matching states when Kind is Ambiguous.
	CandidateStates []string

	// Input is the normalized name that was looked up, kept for messages.
	Input string
}

// CityAbbreviation expands a recognized short form to one canonical city.
type CityAbbreviation struct {
	City  string
	State string
}

// ResolverConfig is the injected alias configuration of a LocationResolver.
// It is owned by the resolver instance, never process-wide state.
type ResolverConfig struct {
	// HubCity/HubState is the fixed redispatch hub every RED line points at.
	HubCity  string
	HubState string

	// Abbreviations maps recognized short destination texts to one canonical
	// city per state, e.g. "SP" to the state capital.
	Abbreviations map[string]CityAbbreviation
}

// DefaultResolverConfig returns the production alias tables: the Guarulhos/SP
// redispatch hub and the state-capital abbreviations.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		HubCity:  "GUARULHOS",
		HubState: "SP",
		Abbreviations: map[string]CityAbbreviation{
			"SP":  {City: "SAO PAULO", State: "SP"},
			"RJ":  {City: "RIO DE JANEIRO", State: "RJ"},
			"BH":  {City: "BELO HORIZONTE", State: "MG"},
			"POA": {City: "PORTO ALEGRE", State: "RS"},
		},
	}
}

// LocationResolver normalizes and disambiguates destination names against the
// reference snapshot. Matching is exact on normalized text, never substring or
// fuzzy, to avoid false positives; the only fallback is the state-only lookup
// used for delivery-window estimates.
//
// Route-tag precedence comes first: FOB short-circuits to NoDelivery, RED
// always resolves to the configured hub irrespective of the literal city.
type LocationResolver struct {
	config ResolverConfig
}

// NewLocationResolver creates a resolver with the given alias configuration.
func NewLocationResolver(config ResolverConfig) LocationResolver {
	if config.Abbreviations == nil {
		config.Abbreviations = map[string]CityAbbreviation{}
	}
	return LocationResolver{config: config}
}

// Resolve resolves one destination. It is pure: the outcome is returned as a
// value and nothing is written back to the order line; persisting a
// normalization is a separate, explicit command.
func (r LocationResolver) Resolve(
	refs *ReferenceSet,
	destinationName string,
	destinationState string,
	tag order.RouteTag,
) Resolution {
	if tag == order.RouteTagFOB {
		return Resolution{Kind: ResolutionNoDelivery, Input: NormalizeText(destinationName)}
	}

	if tag == order.RouteTagRedispatch {
		return r.resolveHub(refs)
	}

	name := NormalizeText(destinationName)
	state := NormalizeState(destinationState)

	if abbrev, ok := r.config.Abbreviations[name]; ok {
		if state == "" || state == abbrev.State {
			name = NormalizeText(abbrev.City)
			state = abbrev.State
		}
	}

	candidates := refs.LocationsByName(name)
	if len(candidates) == 0 {
		return Resolution{Kind: ResolutionNotFound, Input: name}
	}

	if state != "" {
		for _, loc := range candidates {
			if NormalizeState(loc.State()) == state {
				return r.resolved(refs, loc, name)
			}
		}
		return Resolution{Kind: ResolutionNotFound, Input: name}
	}

	if len(candidates) == 1 {
		return r.resolved(refs, candidates[0], name)
	}

	states := make([]string, 0, len(candidates))
	seen := make(map[string]bool)
	for _, loc := range candidates {
		s := NormalizeState(loc.State())
		if !seen[s] {
			seen[s] = true
			states = append(states, s)
		}
	}

	// Same name twice in one state would be a reference-data defect; treat a
	// single distinct state as resolved rather than ambiguous.
	if len(states) == 1 {
		return r.resolved(refs, candidates[0], name)
	}

	sort.Strings(states)
	return Resolution{Kind: ResolutionAmbiguous, CandidateStates: states, Input: name}
}

// ResolveByState returns every location of a state. This is the documented
// fallback used solely for delivery-window estimates when no exact service
// binding exists; pricing never uses it.
func (r LocationResolver) ResolveByState(refs *ReferenceSet, state string) []*location.Location {
	return refs.LocationsByState(state)
}

// resolved applies the RED marker: a location flagged as redispatch hub alias
// re-points at the configured hub regardless of the matched record.
func (r LocationResolver) resolved(refs *ReferenceSet, loc *location.Location, input string) Resolution {
	if loc.IsRedispatchHub() && !r.isHub(loc) {
		return r.resolveHub(refs)
	}
	if loc.IsPickupOnly() {
		return Resolution{Kind: ResolutionNoDelivery, Input: input}
	}
	return Resolution{Kind: ResolutionResolved, Location: loc, Input: input}
}

func (r LocationResolver) resolveHub(refs *ReferenceSet) Resolution {
	hubName := NormalizeText(r.config.HubCity)
	hubState := NormalizeState(r.config.HubState)

	for _, loc := range refs.LocationsByName(hubName) {
		if NormalizeState(loc.State()) == hubState {
			return Resolution{Kind: ResolutionResolved, Location: loc, Input: hubName}
		}
	}

	return Resolution{Kind: ResolutionNotFound, Input: hubName}
}

func (r LocationResolver) isHub(loc *location.Location) bool {
	return NormalizeText(loc.Name()) == NormalizeText(r.config.HubCity) &&
		NormalizeState(loc.State()) == NormalizeState(r.config.HubState)
}
