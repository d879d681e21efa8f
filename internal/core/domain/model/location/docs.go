// Package location contains the canonical destination reference entity.
// Destinations carry the tax context (ICMS percent) and the routing markers
// (FOB pickup-only, RED redispatch hub) that drive destination resolution.
package location
