package models

import (
	"encoding/json"
	"strings"
)

// GenderCode is the locale-neutral audience of a product.
type GenderCode string

const (
	GenderBoys    GenderCode = "forBoys"
	GenderGirls   GenderCode = "forGirls"
	GenderUnisex  GenderCode = "unisex"
	GenderUnknown GenderCode = ""
)

// GenderCodes lists the known codes in display order.
var GenderCodes = []GenderCode{GenderBoys, GenderGirls, GenderUnisex}

// genderLabels is the code -> display label table, per locale.
var genderLabels = map[GenderCode]map[string]string{
	GenderBoys:   {"en": "Boys", "he": "לבנים"},
	GenderGirls:  {"en": "Girls", "he": "לבנות"},
	GenderUnisex: {"en": "Unisex", "he": "יוניסקס"},
}

// Label returns the display label of the code for a locale ("en" or "he"), falling back to
// English and finally to the raw code.
func (g GenderCode) Label(locale string) string {
	labels, ok := genderLabels[g]
	if !ok {
		return string(g)
	}
	if l, ok := labels[locale]; ok {
		return l
	}
	return labels["en"]
}

// Known reports whether g is one of GenderCodes.
func (g GenderCode) Known() bool {
	_, ok := genderLabels[g]
	return ok
}

// NormalizeGender maps a stored value to its code. Stored values have been written both as codes
// and as display labels in either language; ok is false when the value matches neither.
func NormalizeGender(raw string) (GenderCode, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return GenderUnknown, false
	}
	for code, labels := range genderLabels {
		if strings.EqualFold(v, string(code)) {
			return code, true
		}
		for _, l := range labels {
			if strings.EqualFold(v, l) {
				return code, true
			}
		}
	}
	switch strings.ToLower(v) {
	case "boy", "male":
		return GenderBoys, true
	case "girl", "female":
		return GenderGirls, true
	case "בנים":
		return GenderBoys, true
	case "בנות":
		return GenderGirls, true
	}
	return GenderCode(v), false
}

// UnmarshalJSON normalises labels to codes while decoding. Unrecognised values are kept as-is
// so callers can report them; they never match a gender filter.
func (g *GenderCode) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil {
		*g = GenderUnknown
		return nil
	}
	code, _ := NormalizeGender(*s)
	*g = code
	return nil
}
