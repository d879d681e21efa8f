package carrier

import (
	"fmt"

	"freightquote/internal/pkg/errs"
)

// CargoType distinguishes the two pricing modes a rate table can serve.
//
// Consolidated (LTL) cargo shares a truck and is priced per customer group.
// Dedicated (FTL) cargo books a whole truck and is priced conservatively
// across every stop of the route.
type CargoType int

const (
	// CargoTypeUnknown represents an invalid or undefined cargo type.
	// This value (0) helps catch uninitialized CargoType values.
	CargoTypeUnknown CargoType = iota

	// CargoTypeDedicated is full-truckload pricing: one vehicle for the batch.
	CargoTypeDedicated

	// CargoTypeConsolidated is less-than-truckload pricing: shared vehicle,
	// fees computed per customer group.
	CargoTypeConsolidated
)

func getCargoTypeStrings() map[CargoType]string {
	return map[CargoType]string{
		CargoTypeUnknown:      "UNKNOWN",
		CargoTypeDedicated:    "DEDICATED",
		CargoTypeConsolidated: "CONSOLIDATED",
	}
}

func getValidCargoTypeStrings() map[CargoType]string {
	//nolint:exhaustive // CargoTypeUnknown is intentionally excluded as it's invalid
	return map[CargoType]string{
		CargoTypeDedicated:    "DEDICATED",
		CargoTypeConsolidated: "CONSOLIDATED",
	}
}

// Validate checks if the CargoType value is valid.
// Valid cargo types are Dedicated and Consolidated.
func (c CargoType) Validate() error {
	if _, ok := getValidCargoTypeStrings()[c]; !ok {
		return errs.NewValueIsInvalidError(fmt.Sprintf("cargo type: %d", int(c)))
	}
	return nil
}

// String returns the string representation of the cargo type.
func (c CargoType) String() string {
	if s, ok := getCargoTypeStrings()[c]; ok {
		return s
	}
	return getCargoTypeStrings()[CargoTypeUnknown]
}

// CargoTypeFromString parses a cargo type from its reference-data representation.
func CargoTypeFromString(s string) (CargoType, error) {
	for ct, str := range getValidCargoTypeStrings() {
		if str == s {
			return ct, nil
		}
	}
	return CargoTypeUnknown, errs.NewValueIsInvalidError(fmt.Sprintf("cargo type: %s", s))
}
