// Package quote contains the ephemeral result types of the quotation engine:
// ranked shipping options with per-term fee breakdowns, the tagged outcome
// that forces callers to handle ambiguity and missing coverage explicitly,
// and delivery-date estimates. Nothing in this package is persisted by the
// engine.
package quote
