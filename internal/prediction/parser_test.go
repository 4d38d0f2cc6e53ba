package prediction

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttributesWellFormed(t *testing.T) {
	raw := strings.Join([]string{
		"COUNTRY: Scotland",
		"CITY: Edinburgh",
		"CONFIDENCE: 85",
		"REASONING: NHS Lothian affiliation and ed.ac.uk email domain.",
		"IS_DOCTOR: yes",
		"SPECIALTY: Cardiology",
		"PROFILE_URL: https://www.researchgate.net/profile/Jane-Doe",
	}, "\n")

	attrs := ParseAttributes(raw)

	assert.Equal(t, "Scotland", attrs.Country)
	require.NotNil(t, attrs.City)
	assert.Equal(t, "Edinburgh", *attrs.City)
	assert.Equal(t, 85.0, attrs.Confidence)
	assert.Equal(t, "NHS Lothian affiliation and ed.ac.uk email domain.", attrs.Reasoning)
	assert.True(t, attrs.IsDoctor)
	require.NotNil(t, attrs.Specialty)
	assert.Equal(t, "Cardiology", *attrs.Specialty)
	require.NotNil(t, attrs.ProfileURL)
	assert.Equal(t, "https://www.researchgate.net/profile/Jane-Doe", *attrs.ProfileURL)
}

// The parser is total: arbitrary input still yields a complete, defaulted
// attribute set.
func TestParseAttributesTotality(t *testing.T) {
	inputs := []string{
		"",
		"completely unrelated text\nwith no labels at all",
		"COUNTRY:",
		"country: lowercase label is not recognized",
		"  COUNTRY: indented labels are not recognized",
		"CONFIDENCE: CONFIDENCE: 12",
	}

	for _, raw := range inputs {
		attrs := ParseAttributes(raw)
		assert.NotEmpty(t, attrs.Country)
		assert.GreaterOrEqual(t, attrs.Confidence, 0.0)
		assert.LessOrEqual(t, attrs.Confidence, 100.0)
		assert.NotEmpty(t, attrs.Reasoning)
	}
}

func TestParseAttributesDefaults(t *testing.T) {
	attrs := ParseAttributes("")

	assert.Equal(t, "Unknown", attrs.Country)
	assert.Nil(t, attrs.City)
	assert.Equal(t, 50.0, attrs.Confidence)
	assert.Equal(t, "Unable to determine with high confidence", attrs.Reasoning)
	assert.True(t, attrs.IsDoctor, "absent IS_DOCTOR label defaults to doctor")
	assert.Nil(t, attrs.Specialty)
	assert.Nil(t, attrs.ProfileURL)
}

func TestParseAttributesLastWins(t *testing.T) {
	attrs := ParseAttributes("COUNTRY: A\nCOUNTRY: B")
	assert.Equal(t, "B", attrs.Country)

	attrs = ParseAttributes("CONFIDENCE: 90\nCONFIDENCE: 10")
	assert.Equal(t, 10.0, attrs.Confidence)
}

func TestParseAttributesConfidence(t *testing.T) {
	cases := map[string]float64{
		"CONFIDENCE: not-a-number": 50.0,
		"CONFIDENCE: -5":           50.0,
		"CONFIDENCE: 150":          50.0,
		"CONFIDENCE: 0":            0.0,
		"CONFIDENCE: 100":          100.0,
		"CONFIDENCE: 72.5":         72.5,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseAttributes(raw).Confidence, "input %q", raw)
	}
}

func TestParseAttributesAbsenceNormalization(t *testing.T) {
	for _, value := range []string{"Not specified", "not specified", "Unknown", "N/A", ""} {
		attrs := ParseAttributes("CITY: " + value)
		assert.Nil(t, attrs.City, "city value %q should map to absent", value)
	}

	for _, value := range []string{"None", "none", "unknown", "n/a", ""} {
		attrs := ParseAttributes("SPECIALTY: " + value)
		assert.Nil(t, attrs.Specialty, "specialty value %q should map to absent", value)
	}

	for _, value := range []string{"Not found", "not found", "None", "unknown", "N/A", ""} {
		attrs := ParseAttributes("PROFILE_URL: " + value)
		assert.Nil(t, attrs.ProfileURL, "profile URL value %q should map to absent", value)
	}
}

func TestParseAttributesIsDoctor(t *testing.T) {
	trueValues := []string{"yes", "Yes", "YES", "true", "y"}
	for _, v := range trueValues {
		assert.True(t, ParseAttributes("IS_DOCTOR: "+v).IsDoctor, "value %q", v)
	}

	falseValues := []string{"no", "No", "false", "n", "maybe", ""}
	for _, v := range falseValues {
		assert.False(t, ParseAttributes("IS_DOCTOR: "+v).IsDoctor, "value %q", v)
	}
}

func TestDegradedAttributes(t *testing.T) {
	attrs := DegradedAttributes(errors.New("connection refused"))

	assert.Equal(t, "Unknown", attrs.Country)
	assert.Equal(t, 0.0, attrs.Confidence)
	assert.Equal(t, "Error during prediction: connection refused", attrs.Reasoning)
	assert.True(t, attrs.IsDoctor)
	assert.Nil(t, attrs.City)
	assert.Nil(t, attrs.Specialty)
	assert.Nil(t, attrs.ProfileURL)
}
