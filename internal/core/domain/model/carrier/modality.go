package carrier

import "freightquote/internal/pkg/errs"

// Modality identifies how a rate table charges: by shipment weight, by declared
// value, or by a named vehicle class (dedicated-truck tables such as "TOCO" or
// "CARRETA"). Vehicle-class modalities use the weight basis in the fee formula.
type Modality string

const (
	// ModalityByWeight charges on the weight basis of the shipment.
	ModalityByWeight Modality = "BY_WEIGHT"

	// ModalityByValue charges on the declared-value basis of the shipment.
	ModalityByValue Modality = "BY_VALUE"
)

// Validate checks that the modality is not empty.
func (m Modality) Validate() error {
	if m == "" {
		return errs.NewValueIsRequiredError("modality")
	}
	return nil
}

// UsesValueBasis reports whether the fee basis is the declared value.
// All other modalities, including vehicle classes, use the weight basis.
func (m Modality) UsesValueBasis() bool {
	return m == ModalityByValue
}

// IsVehicleClass reports whether the modality names a vehicle class rather
// than one of the generic weight/value charging modes.
func (m Modality) IsVehicleClass() bool {
	return m != ModalityByWeight && m != ModalityByValue
}

// String returns the raw modality label.
func (m Modality) String() string {
	return string(m)
}
