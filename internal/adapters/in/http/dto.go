package http

import (
	"time"

	"freightquote/internal/core/application/usecases/queries"
	"freightquote/internal/core/domain/model/quote"

	"github.com/shopspring/decimal"
)

// Error is the uniform error body for all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// QuoteRequest is the body of POST /api/v1/quotes: the pending batch as the
// order-management system hands it over.
type QuoteRequest struct {
	OriginState string             `json:"origin_state"`
	Lines       []QuoteRequestLine `json:"lines"`
}

// QuoteRequestLine carries one pending order line. ID is optional; omitted
// IDs are generated, which suits callers that quote without persisting.
type QuoteRequestLine struct {
	ID               string          `json:"id,omitempty"`
	OrderRef         string          `json:"order_ref"`
	CustomerTaxID    string          `json:"customer_tax_id"`
	DestinationCity  string          `json:"destination_city"`
	DestinationState string          `json:"destination_state,omitempty"`
	WeightKg         decimal.Decimal `json:"weight_kg"`
	DeclaredValue    decimal.Decimal `json:"declared_value"`
	RouteTag         string          `json:"route_tag,omitempty"`
	SubRoute         string          `json:"sub_route,omitempty"`
}

// QuoteResponse mirrors quote.BatchResult: one outcome per customer group
// plus the dedicated-truck outcome when the batch qualifies for one.
type QuoteResponse struct {
	Consolidated     []CustomerQuoteDTO `json:"consolidated"`
	Dedicated        *OutcomeDTO        `json:"dedicated,omitempty"`
	DedicatedSkipped string             `json:"dedicated_skipped,omitempty"`
}

// CustomerQuoteDTO is one customer group's quoted outcome.
type CustomerQuoteDTO struct {
	CustomerTaxID string     `json:"customer_tax_id"`
	Outcome       OutcomeDTO `json:"outcome"`
}

// OutcomeDTO is the tagged result of a rate-shopping run. Exactly one of the
// optional field groups is populated, selected by Kind.
type OutcomeDTO struct {
	Kind            string      `json:"kind"`
	Options         []OptionDTO `json:"options,omitempty"`
	Destination     string      `json:"destination,omitempty"`
	CandidateStates []string    `json:"candidate_states,omitempty"`
	Reason          string      `json:"reason,omitempty"`
}

// OptionDTO is one ranked shipping option with its fee breakdown.
// Amounts are rounded to cents for presentation; the domain keeps them exact.
type OptionDTO struct {
	CarrierID          string       `json:"carrier_id"`
	CarrierName        string       `json:"carrier_name"`
	TableName          string       `json:"table_name"`
	Modality           string       `json:"modality"`
	CargoType          string       `json:"cargo_type"`
	Fees               FeesDTO      `json:"fees"`
	LeadTimeDays       *int         `json:"lead_time_days,omitempty"`
	Best               bool         `json:"best"`
	SelectionRationale string       `json:"selection_rationale"`
}

// FeesDTO is the per-term fee breakdown of an option.
type FeesDTO struct {
	BasisLabel string          `json:"basis_label"`
	Basis      decimal.Decimal `json:"basis"`
	Minimum    decimal.Decimal `json:"minimum"`
	Terms      []FeeTermDTO    `json:"terms"`
	Net        decimal.Decimal `json:"net"`
	Gross      decimal.Decimal `json:"gross"`
}

// FeeTermDTO is one priced term of the breakdown.
type FeeTermDTO struct {
	Label        string          `json:"label"`
	Amount       decimal.Decimal `json:"amount"`
	AfterMinimum bool            `json:"after_minimum,omitempty"`
}

// EstimateRequest is the body of POST /api/v1/delivery-estimates.
// Mode is "forward" (ship date known) or "reverse" (deadline known); Date
// accepts ISO and Brazilian layouts plus the today/tomorrow literals.
type EstimateRequest struct {
	DestinationCity  string `json:"destination_city"`
	DestinationState string `json:"destination_state,omitempty"`
	Mode             string `json:"mode"`
	Date             string `json:"date"`
}

// EstimateResponse is the tagged result of a delivery-window computation.
type EstimateResponse struct {
	Kind            string        `json:"kind"`
	Destination     string        `json:"destination,omitempty"`
	CandidateStates []string      `json:"candidate_states,omitempty"`
	Reason          string        `json:"reason,omitempty"`
	Feasible        bool          `json:"feasible"`
	Estimates       []EstimateDTO `json:"estimates,omitempty"`
}

// EstimateDTO is one carrier's delivery window.
type EstimateDTO struct {
	CarrierID     string `json:"carrier_id"`
	CarrierName   string `json:"carrier_name"`
	TableName     string `json:"table_name"`
	LeadTimeDays  int    `json:"lead_time_days"`
	ShipDate      string `json:"ship_date,omitempty"`
	DeliveryDate  string `json:"delivery_date,omitempty"`
	Urgency       string `json:"urgency,omitempty"`
	Best          bool   `json:"best"`
	StateFallback bool   `json:"state_fallback,omitempty"`
}

const dateLayout = "2006-01-02"

func outcomeKindLabel(kind quote.OutcomeKind) string {
	switch kind {
	case quote.OutcomeAmbiguous:
		return "AMBIGUOUS"
	case quote.OutcomeNoCoverage:
		return "NO_COVERAGE"
	default:
		return "OK"
	}
}

func outcomeToDTO(o quote.Outcome) OutcomeDTO {
	dto := OutcomeDTO{
		Kind:            outcomeKindLabel(o.Kind()),
		Destination:     o.Destination(),
		CandidateStates: o.CandidateStates(),
		Reason:          o.Reason(),
	}

	for _, opt := range o.Options() {
		dto.Options = append(dto.Options, optionToDTO(opt))
	}

	return dto
}

func optionToDTO(opt quote.Option) OptionDTO {
	dto := OptionDTO{
		CarrierID:          opt.CarrierID.String(),
		CarrierName:        opt.CarrierName,
		TableName:          opt.TableName,
		Modality:           opt.Modality.String(),
		CargoType:          opt.CargoType.String(),
		Fees:               feesToDTO(opt.Fees),
		Best:               opt.Best,
		SelectionRationale: opt.SelectionRationale,
	}

	if opt.LeadTimeDays >= 0 {
		days := opt.LeadTimeDays
		dto.LeadTimeDays = &days
	}

	return dto
}

func feesToDTO(fees quote.FeeBreakdown) FeesDTO {
	dto := FeesDTO{
		BasisLabel: fees.BasisLabel,
		Basis:      fees.Basis.Round(2),
		Minimum:    fees.Minimum.Round(2),
		Net:        fees.Net.Round(2),
		Gross:      fees.Gross.Round(2),
	}

	for _, term := range fees.Terms {
		dto.Terms = append(dto.Terms, FeeTermDTO{
			Label:        term.Label,
			Amount:       term.Amount.Round(2),
			AfterMinimum: term.AfterMinimum,
		})
	}

	return dto
}

func batchResultToDTO(result quote.BatchResult) QuoteResponse {
	resp := QuoteResponse{
		Consolidated:     make([]CustomerQuoteDTO, 0, len(result.Consolidated)),
		DedicatedSkipped: result.DedicatedSkipped,
	}

	for _, cq := range result.Consolidated {
		resp.Consolidated = append(resp.Consolidated, CustomerQuoteDTO{
			CustomerTaxID: cq.CustomerTaxID,
			Outcome:       outcomeToDTO(cq.Outcome),
		})
	}

	if result.Dedicated != nil {
		dedicated := outcomeToDTO(*result.Dedicated)
		resp.Dedicated = &dedicated
	}

	return resp
}

func estimateResponseToDTO(resp queries.DeliveryEstimateQueryResponse, mode queries.EstimateMode) EstimateResponse {
	out := EstimateResponse{
		Kind:            outcomeKindLabel(resp.Kind),
		Destination:     resp.Destination,
		CandidateStates: resp.CandidateStates,
		Reason:          resp.Reason,
		Feasible:        resp.Result.Feasible,
	}

	for _, est := range resp.Result.Estimates {
		dto := EstimateDTO{
			CarrierID:     est.CarrierID.String(),
			CarrierName:   est.CarrierName,
			TableName:     est.TableName,
			LeadTimeDays:  est.LeadTimeDays,
			Best:          est.Best,
			StateFallback: est.StateFallback,
		}

		switch mode {
		case queries.EstimateModeForward:
			dto.DeliveryDate = formatDate(est.DeliveryDate)
		case queries.EstimateModeReverse:
			dto.ShipDate = formatDate(est.ShipDate)
			dto.Urgency = est.Urgency.String()
		}

		out.Estimates = append(out.Estimates, dto)
	}

	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
