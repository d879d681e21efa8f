package quote

// OutcomeKind tags the three possible results of a rate-shopping run.
type OutcomeKind int

const (
	// OutcomeOK means options were priced; Options carries the ranked list.
	OutcomeOK OutcomeKind = iota

	// OutcomeAmbiguous means a destination name exists in several states and
	// no state was supplied. Not an error: the caller must resupply the
	// destination with one of CandidateStates.
	OutcomeAmbiguous

	// OutcomeNoCoverage means no service binding resolves for the destination.
	// Not an error either: the option list is empty and Reason explains why.
	OutcomeNoCoverage
)

// Outcome is the tagged result of pricing one destination group. Every caller
// must handle all three kinds; none of them is ever surfaced as a Go error.
type Outcome struct {
	kind            OutcomeKind
	options         []Option
	destination     string
	candidateStates []string
	reason          string
}

// OkOutcome wraps a ranked option list.
func OkOutcome(options []Option) Outcome {
	return Outcome{kind: OutcomeOK, options: options}
}

// AmbiguousOutcome reports a destination name found in several states.
func AmbiguousOutcome(destination string, candidateStates []string) Outcome {
	return Outcome{
		kind:            OutcomeAmbiguous,
		destination:     destination,
		candidateStates: candidateStates,
	}
}

// NoCoverageOutcome reports that no carrier serves the destination.
func NoCoverageOutcome(reason string) Outcome {
	return Outcome{kind: OutcomeNoCoverage, reason: reason}
}

// Kind returns the outcome tag.
func (o Outcome) Kind() OutcomeKind {
	return o.kind
}

// IsOK reports whether options were priced.
func (o Outcome) IsOK() bool {
	return o.kind == OutcomeOK
}

// Options returns the ranked option list; empty unless Kind is OutcomeOK.
func (o Outcome) Options() []Option {
	return o.options
}

// Destination returns the ambiguous destination name; empty unless
// Kind is OutcomeAmbiguous.
func (o Outcome) Destination() string {
	return o.destination
}

// CandidateStates enumerates the states a resupplied request may pick from;
// empty unless Kind is OutcomeAmbiguous.
func (o Outcome) CandidateStates() []string {
	return o.candidateStates
}

// Reason returns the no-coverage explanation; empty unless
// Kind is OutcomeNoCoverage.
func (o Outcome) Reason() string {
	return o.reason
}

// CustomerQuote pairs a consolidated-pricing customer group with its outcome.
type CustomerQuote struct {
	CustomerTaxID string
	Outcome       Outcome
}

// BatchResult is the full result of rate-shopping a batch of order lines:
// consolidated outcomes per customer group, plus the dedicated-truck outcome
// when the batch is eligible for it.
type BatchResult struct {
	Consolidated []CustomerQuote

	// Dedicated is nil when dedicated pricing was skipped;
	// DedicatedSkipped then explains why (mixed states, capacity, ...).
	Dedicated        *Outcome
	DedicatedSkipped string
}
