package ingest

import (
	"errors"
	"strings"
)

// Variant selects one of the two historical checkup workbook layouts.
type Variant string

const (
	VariantAuto           Variant = "auto"
	VariantStandard       Variant = "standard"
	VariantAnthropometric Variant = "anthropometric"
)

// ErrInvalidVariant is returned for an unknown variant name.
var ErrInvalidVariant = errors.New("unknown checkup variant")

// anthropometricMarkers flag the anthropometric layout when any normalized
// header contains one of them.
var anthropometricMarkers = []string{"tinggi", "berat", "bmi", "height", "weight", "imt"}

// ParseVariant reads a variant name; "" means auto.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case "", VariantAuto:
		return VariantAuto, nil
	case VariantStandard:
		return VariantStandard, nil
	case VariantAnthropometric:
		return VariantAnthropometric, nil
	}
	return "", ErrInvalidVariant
}

// DetectVariant sniffs the header union of a workbook. Any anthropometric
// marker selects the anthropometric layout.
func DetectVariant(wb *Workbook) Variant {
	for _, h := range wb.Headers() {
		n := NormalizeHeader(h)
		for _, m := range anthropometricMarkers {
			if strings.Contains(n, m) {
				return VariantAnthropometric
			}
		}
	}
	return VariantStandard
}

// Resolve returns v, or the detected variant when v is auto.
func (v Variant) Resolve(wb *Workbook) Variant {
	if v == VariantAuto || v == "" {
		return DetectVariant(wb)
	}
	return v
}
