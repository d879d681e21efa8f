// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the quotation engine. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - LocationResolver: normalizes free-text destinations and matches them
//     against the served-locality registry, including pickup-only and
//     redispatch-hub route tags
//   - BindingIndex: expands business groups and collects the rate-table
//     candidates that serve a destination
//   - FeeCalculator: evaluates one rate table against a shipment, including
//     minimum-charge flooring, surcharge timing and ICMS gross-up
//   - VehicleCapacityFilter: excludes dedicated tables whose vehicle class
//     cannot carry the batch weight
//   - OrderGrouper: groups order lines per customer and decides dedicated
//     eligibility for the batch
//   - RateShopper: ranks consolidated options per customer and applies the
//     max-over-stops, min-over-candidates selection for dedicated routes
//   - LeadTimeCalculator: forward and reverse delivery-window estimation
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
