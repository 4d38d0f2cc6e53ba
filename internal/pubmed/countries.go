package pubmed

import (
	"strings"
	"unicode"

	pstrings "geomed/pkg/platform/strings"
)

// Country names and aliases scanned for in fetched article text. The list
// mirrors where biomedical publishing actually concentrates; anything else
// is left to the generation service to infer.
var countryVocabulary = []string{
	"united states", "usa", "u.s.a", "china", "united kingdom", "uk",
	"germany", "france", "japan", "canada", "australia", "india",
	"italy", "spain", "brazil", "netherlands", "switzerland",
	"sweden", "south korea", "singapore", "israel",
}

// extractCountrySignals scans article markup for vocabulary matches,
// case-insensitively, returning title-cased deduplicated candidates. Records
// without affiliation data yield no signals at all.
func extractCountrySignals(text string) []string {
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "affiliation") {
		return nil
	}

	var signals []string
	for _, country := range countryVocabulary {
		if strings.Contains(lower, country) {
			signals = append(signals, titleCase(country))
		}
	}
	return pstrings.DedupeAndTrim(signals)
}

// titleCase capitalizes the first letter of every letter run, so dotted
// aliases canonicalize too ("u.s.a" becomes "U.S.A", not "U.s.a").
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
