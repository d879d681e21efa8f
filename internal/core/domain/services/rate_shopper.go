package services

import (
	"fmt"
	"log/slog"
	"sort"

	"freightquote/internal/core/domain/model/carrier"
	"freightquote/internal/core/domain/model/location"
	"freightquote/internal/core/domain/model/order"
	"freightquote/internal/core/domain/model/quote"

	"github.com/shopspring/decimal"
)

// RateShopper applies the two ranking policies over a batch of order lines.
//
// Consolidated (LTL): per customer group, every valid candidate is priced at
// the group's totals and ranked ascending by gross fee; the cheapest is best.
//
// Dedicated (FTL): one truck covers every stop, so the quote must not
// under-price any of them. For each (carrier, modality) pair the fee is
// computed at every destination and the maximum taken as that pair's
// route-level price; the final quote is the minimum across pairs. The
// max-over-stops-then-min-over-candidates selection is annotated in each
// option's rationale for audit.
type RateShopper struct {
	resolver   LocationResolver
	index      BindingIndex
	calculator FeeCalculator
	filter     VehicleCapacityFilter
	grouper    OrderGrouper
	logger     *slog.Logger
}

// NewRateShopper wires the pipeline services together.
func NewRateShopper(
	resolver LocationResolver,
	index BindingIndex,
	calculator FeeCalculator,
	filter VehicleCapacityFilter,
	grouper OrderGrouper,
	logger *slog.Logger,
) RateShopper {
	return RateShopper{
		resolver:   resolver,
		index:      index,
		calculator: calculator,
		filter:     filter,
		grouper:    grouper,
		logger:     logger.With("component", "rate_shopper"),
	}
}

// Shop rate-shops a batch: consolidated outcomes per customer group, plus the
// dedicated outcome when the batch qualifies. The computation is synchronous
// and pure over the snapshot; the resolution cache below lives and dies with
// this call.
func (s RateShopper) Shop(
	refs *ReferenceSet,
	lines []*order.OrderLine,
	originState string,
) quote.BatchResult {
	resolutions := s.resolveAll(refs, lines)

	var result quote.BatchResult
	for _, group := range s.grouper.GroupByCustomer(lines) {
		result.Consolidated = append(result.Consolidated, quote.CustomerQuote{
			CustomerTaxID: group.CustomerTaxID,
			Outcome:       s.shopConsolidated(refs, group, originState, resolutions),
		})
	}

	all := make([]LineResolution, 0, len(lines))
	for _, line := range lines {
		all = append(all, LineResolution{Line: line, Resolution: resolutions[line.ID().String()]})
	}

	state, eligible, reason := s.grouper.DedicatedEligibility(all)
	if !eligible {
		s.logger.Info("dedicated pricing skipped", "reason", reason)
		result.DedicatedSkipped = reason
		return result
	}

	dedicated, skipReason, ok := s.shopDedicated(refs, all, originState, state)
	if !ok {
		s.logger.Info("dedicated pricing skipped", "reason", skipReason)
		result.DedicatedSkipped = skipReason
		return result
	}

	result.Dedicated = &dedicated
	return result
}

// resolveAll resolves every line once, memoized by line id for the duration
// of the request.
func (s RateShopper) resolveAll(
	refs *ReferenceSet,
	lines []*order.OrderLine,
) map[string]Resolution {
	byInput := make(map[string]Resolution)
	byLine := make(map[string]Resolution, len(lines))

	for _, line := range lines {
		cacheKey := fmt.Sprintf("%s|%s|%s", line.DestinationName(), line.DestinationState(), line.RouteTag())
		res, ok := byInput[cacheKey]
		if !ok {
			res = s.resolver.Resolve(refs, line.DestinationName(), line.DestinationState(), line.RouteTag())
			byInput[cacheKey] = res
		}
		byLine[line.ID().String()] = res
	}

	return byLine
}

func (s RateShopper) shopConsolidated(
	refs *ReferenceSet,
	group CustomerGroup,
	originState string,
	resolutions map[string]Resolution,
) quote.Outcome {
	destinations := make(map[string]*location.Location)
	deliverable := 0

	for _, line := range group.Lines {
		res := resolutions[line.ID().String()]
		switch res.Kind {
		case ResolutionAmbiguous:
			// No fee is computed for an ambiguous destination; the caller
			// must resupply the line with one of the candidate states.
			return quote.AmbiguousOutcome(res.Input, res.CandidateStates)
		case ResolutionResolved:
			destinations[res.Location.LocalityCode()] = res.Location
			deliverable++
		case ResolutionNoDelivery:
			// Pickup-only lines are excluded from pricing.
		case ResolutionNotFound:
			return quote.NoCoverageOutcome(
				fmt.Sprintf("destination %q not found in reference data", res.Input))
		}
	}

	if deliverable == 0 {
		return quote.NoCoverageOutcome("every line is pickup-only (FOB)")
	}

	var options []quote.Option
	for _, loc := range destinations {
		candidates := s.index.Candidates(refs, loc, originState, carrier.CargoTypeConsolidated)
		for _, cand := range candidates {
			fees, err := s.calculator.Calculate(
				group.TotalWeightKg, group.TotalValue, cand.Table, cand.Owner, loc.ICMSPercent())
			if err != nil {
				// A malformed table row aborts only its own candidate.
				s.logger.Warn("skipping malformed rate table",
					"table", cand.Table.String(), "error", err)
				continue
			}

			options = append(options, quote.Option{
				CarrierID:          cand.Owner.ID(),
				CarrierName:        cand.Owner.LegalName(),
				TableName:          cand.Table.Name(),
				Modality:           cand.Table.Modality(),
				CargoType:          carrier.CargoTypeConsolidated,
				Fees:               fees,
				LeadTimeDays:       optionLeadTime(cand),
				SelectionRationale: fmt.Sprintf("priced for %s", loc),
			})
		}
	}

	if len(options) == 0 {
		return quote.NoCoverageOutcome("no active carrier serves the destination")
	}

	rankAscending(options)
	annotateConsolidated(options)
	return quote.OkOutcome(options)
}

// shopDedicated prices the whole batch as one truck. ok is false when a
// dedicated precondition fails after eligibility, e.g. no vehicle can carry
// the total weight; the engine then falls back to consolidated-only results.
func (s RateShopper) shopDedicated(
	refs *ReferenceSet,
	resolutions []LineResolution,
	originState string,
	state string,
) (quote.Outcome, string, bool) {
	stops := make(map[string]*location.Location)
	totalWeight := decimal.Zero
	totalValue := decimal.Zero

	for _, lr := range resolutions {
		if lr.Resolution.Kind != ResolutionResolved {
			continue
		}
		stops[lr.Resolution.Location.LocalityCode()] = lr.Resolution.Location
		totalWeight = totalWeight.Add(lr.Line.WeightKg())
		totalValue = totalValue.Add(lr.Line.DeclaredValue())
	}

	stopCodes := make([]string, 0, len(stops))
	for code := range stops {
		stopCodes = append(stopCodes, code)
	}
	sort.Strings(stopCodes)

	type stopFee struct {
		stop *location.Location
		cand Candidate
		fees quote.FeeBreakdown
	}
	type pairPricing struct {
		cand   Candidate
		byStop map[string]stopFee
	}
	perPair := make(map[string]*pairPricing)

	for _, code := range stopCodes {
		loc := stops[code]
		candidates := s.index.Candidates(refs, loc, originState, carrier.CargoTypeDedicated)
		candidates = s.filter.Filter(refs, candidates, totalWeight)

		for _, cand := range candidates {
			fees, err := s.calculator.Calculate(
				totalWeight, totalValue, cand.Table, cand.Owner, loc.ICMSPercent())
			if err != nil {
				s.logger.Warn("skipping malformed rate table",
					"table", cand.Table.String(), "error", err)
				continue
			}

			key := cand.Owner.ID().String() + "|" + cand.Table.Modality().String()
			pair, ok := perPair[key]
			if !ok {
				pair = &pairPricing{cand: cand, byStop: make(map[string]stopFee, len(stops))}
				perPair[key] = pair
			}
			pair.byStop[code] = stopFee{stop: loc, cand: cand, fees: fees}
		}
	}

	if len(perPair) == 0 {
		return quote.Outcome{}, fmt.Sprintf(
			"no dedicated table can carry %skg to state %s", totalWeight, state), false
	}

	options := make([]quote.Option, 0, len(perPair))
	for _, pair := range perPair {
		// One truck serves every stop, so a pair bound at only some of them
		// is still priced at all of them before its maximum is taken. The
		// pair's lane covers the whole shared state; only the tax rate
		// differs per stop.
		priced := true
		for _, code := range stopCodes {
			if _, ok := pair.byStop[code]; ok {
				continue
			}
			loc := stops[code]
			fees, err := s.calculator.Calculate(
				totalWeight, totalValue, pair.cand.Table, pair.cand.Owner, loc.ICMSPercent())
			if err != nil {
				s.logger.Warn("skipping malformed rate table",
					"table", pair.cand.Table.String(), "error", err)
				priced = false
				break
			}
			pair.byStop[code] = stopFee{stop: loc, cand: pair.cand, fees: fees}
		}
		if !priced {
			continue
		}

		// Minimax, first half: the pair's route-level price is its most
		// expensive stop, so a multi-stop route is never under-quoted.
		worst := pair.byStop[stopCodes[0]]
		for _, code := range stopCodes[1:] {
			if sf := pair.byStop[code]; sf.fees.Gross.GreaterThan(worst.fees.Gross) {
				worst = sf
			}
		}

		rationale := fmt.Sprintf("single stop, priced for %s", worst.stop)
		if len(stopCodes) > 1 {
			rationale = fmt.Sprintf(
				"most expensive among %d stops, priced for %s", len(stopCodes), worst.stop)
		}

		options = append(options, quote.Option{
			CarrierID:          worst.cand.Owner.ID(),
			CarrierName:        worst.cand.Owner.LegalName(),
			TableName:          worst.cand.Table.Name(),
			Modality:           worst.cand.Table.Modality(),
			CargoType:          carrier.CargoTypeDedicated,
			Fees:               worst.fees,
			LeadTimeDays:       optionLeadTime(worst.cand),
			SelectionRationale: rationale,
		})
	}

	if len(options) == 0 {
		return quote.Outcome{}, fmt.Sprintf(
			"no dedicated table can carry %skg to state %s", totalWeight, state), false
	}

	// Minimax, second half: the cheapest route-level price wins.
	rankAscending(options)
	options[0].Best = true
	return quote.OkOutcome(options), "", true
}

// optionLeadTime returns the binding's quoted lead time, or -1 when the priced
// table belongs to a business-group sibling of the bound carrier. The sibling
// never quoted a lead time for this lane, so the option carries none.
func optionLeadTime(cand Candidate) int {
	if !cand.Owner.ID().IsEqual(cand.Binding.CarrierID()) {
		return -1
	}
	return cand.Binding.LeadTimeDays()
}

func rankAscending(options []quote.Option) {
	sort.Slice(options, func(i, j int) bool {
		if !options[i].Fees.Gross.Equal(options[j].Fees.Gross) {
			return options[i].Fees.Gross.LessThan(options[j].Fees.Gross)
		}
		return options[i].CarrierName < options[j].CarrierName
	})
}

func annotateConsolidated(options []quote.Option) {
	options[0].Best = true
	if len(options) == 1 {
		options[0].SelectionRationale = fmt.Sprintf(
			"single option, %s", options[0].SelectionRationale)
		return
	}

	options[0].SelectionRationale = fmt.Sprintf(
		"cheapest of %d options, %s", len(options), options[0].SelectionRationale)
	for i := 1; i < len(options); i++ {
		options[i].SelectionRationale = fmt.Sprintf(
			"alternative, %s", options[i].SelectionRationale)
	}
}
