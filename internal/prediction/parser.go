package prediction

import (
	"fmt"
	"strconv"
	"strings"

	"geomed/internal/prediction/models"
)

// The generation service is instructed to answer with exactly these labeled
// lines. Matching is an exact, case-sensitive prefix check; anything else in
// the response is ignored.
const (
	labelCountry    = "COUNTRY:"
	labelCity       = "CITY:"
	labelConfidence = "CONFIDENCE:"
	labelReasoning  = "REASONING:"
	labelIsDoctor   = "IS_DOCTOR:"
	labelSpecialty  = "SPECIALTY:"
	labelProfileURL = "PROFILE_URL:"
)

// Defaults applied when a label is missing or its value is unusable.
const (
	defaultCountry    = "Unknown"
	defaultConfidence = 50.0
	defaultReasoning  = "Unable to determine with high confidence"
)

var recognizedLabels = []string{
	labelCountry,
	labelCity,
	labelConfidence,
	labelReasoning,
	labelIsDoctor,
	labelSpecialty,
	labelProfileURL,
}

// Absence vocabularies, compared case-insensitively against trimmed values.
var (
	cityAbsent       = map[string]struct{}{"not specified": {}, "unknown": {}, "n/a": {}, "": {}}
	specialtyAbsent  = map[string]struct{}{"none": {}, "unknown": {}, "n/a": {}, "": {}}
	profileURLAbsent = map[string]struct{}{"not found": {}, "none": {}, "unknown": {}, "n/a": {}, "": {}}
)

type labeledValue struct {
	label string
	value string
}

// scanLabels tokenizes the raw response into ordered (label, value) pairs,
// dropping unrecognized lines. Keeping this pass separate from the reduction
// makes the grammar testable against literal strings.
func scanLabels(raw string) []labeledValue {
	var pairs []labeledValue
	for _, line := range strings.Split(raw, "\n") {
		for _, label := range recognizedLabels {
			if strings.HasPrefix(line, label) {
				pairs = append(pairs, labeledValue{
					label: label,
					value: strings.TrimSpace(line[len(label):]),
				})
				break
			}
		}
	}
	return pairs
}

// ParseAttributes converts the generation service's free-text response into
// a fully defaulted attribute set. It is total: any input, including the
// empty string, produces a complete result. Duplicate labels apply in input
// order, so the last occurrence wins.
func ParseAttributes(raw string) models.Attributes {
	attrs := models.Attributes{
		Country:    defaultCountry,
		Confidence: defaultConfidence,
		Reasoning:  defaultReasoning,
		IsDoctor:   true,
	}

	for _, pair := range scanLabels(raw) {
		switch pair.label {
		case labelCountry:
			attrs.Country = pair.value
		case labelCity:
			attrs.City = optional(pair.value, cityAbsent)
		case labelConfidence:
			attrs.Confidence = parseConfidence(pair.value)
		case labelReasoning:
			attrs.Reasoning = pair.value
		case labelIsDoctor:
			v := strings.ToLower(pair.value)
			attrs.IsDoctor = v == "yes" || v == "true" || v == "y"
		case labelSpecialty:
			attrs.Specialty = optional(pair.value, specialtyAbsent)
		case labelProfileURL:
			attrs.ProfileURL = optional(pair.value, profileURLAbsent)
		}
	}

	if attrs.Country == "" {
		attrs.Country = defaultCountry
	}
	return attrs
}

// DegradedAttributes is the single fallback constructor used when the
// generation call itself fails. Distinct from parser defaulting: confidence
// drops to zero and the reasoning names the cause.
func DegradedAttributes(cause error) models.Attributes {
	return models.Attributes{
		Country:    defaultCountry,
		Confidence: 0.0,
		Reasoning:  fmt.Sprintf("Error during prediction: %v", cause),
		IsDoctor:   true,
	}
}

// optional maps absence-vocabulary values to nil and keeps everything else
// verbatim.
func optional(value string, absent map[string]struct{}) *string {
	if _, ok := absent[strings.ToLower(value)]; ok {
		return nil
	}
	return &value
}

// parseConfidence treats non-numeric or out-of-range scores as malformed
// and falls back to the neutral default.
func parseConfidence(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 || f > 100 {
		return defaultConfidence
	}
	return f
}
