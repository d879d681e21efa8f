package order

import (
	"fmt"

	"freightquote/internal/pkg/errs"
)

// RouteTag classifies how an order line's destination is to be treated.
//
// Resolution precedence:
//
//	FOB ──> pickup only, no delivery leg, excluded from pricing
//	RED ──> destination forced to the fixed redispatch hub
//	NORMAL ─> destination resolved from the literal city/state fields
type RouteTag int

const (
	// RouteTagUnknown represents an invalid or undefined route tag.
	// This value (0) helps catch uninitialized RouteTag values.
	RouteTagUnknown RouteTag = iota

	// RouteTagNormal resolves the destination from the literal fields.
	RouteTagNormal

	// RouteTagFOB marks a pickup-only order with no delivery leg.
	RouteTagFOB

	// RouteTagRedispatch forces the destination to the fixed hub,
	// regardless of the literal city field.
	RouteTagRedispatch
)

func getRouteTagStrings() map[RouteTag]string {
	return map[RouteTag]string{
		RouteTagUnknown:    "UNKNOWN",
		RouteTagNormal:     "NORMAL",
		RouteTagFOB:        "FOB",
		RouteTagRedispatch: "RED",
	}
}

func getValidRouteTagStrings() map[RouteTag]string {
	//nolint:exhaustive // RouteTagUnknown is intentionally excluded as it's invalid
	return map[RouteTag]string{
		RouteTagNormal:     "NORMAL",
		RouteTagFOB:        "FOB",
		RouteTagRedispatch: "RED",
	}
}

// Validate checks if the RouteTag value is valid.
func (r RouteTag) Validate() error {
	if _, ok := getValidRouteTagStrings()[r]; !ok {
		return errs.NewValueIsInvalidError(fmt.Sprintf("route tag: %d", int(r)))
	}
	return nil
}

// String returns the string representation of the route tag.
func (r RouteTag) String() string {
	if s, ok := getRouteTagStrings()[r]; ok {
		return s
	}
	return getRouteTagStrings()[RouteTagUnknown]
}

// RouteTagFromString parses a route tag from its order-management representation.
// An empty string maps to NORMAL, which is how untagged lines arrive.
func RouteTagFromString(s string) (RouteTag, error) {
	if s == "" {
		return RouteTagNormal, nil
	}
	for tag, str := range getValidRouteTagStrings() {
		if str == s {
			return tag, nil
		}
	}
	return RouteTagUnknown, errs.NewValueIsInvalidError(fmt.Sprintf("route tag: %s", s))
}
