// Package email holds the small amount of address handling the service
// needs: a syntactic sanity check for request validation and domain
// extraction for provenance reporting.
package email

import "strings"

// IsValid reports whether the address is syntactically plausible: exactly
// one non-leading "@" with a non-empty local part and a dotted domain. This
// is intentionally loose; the service never sends mail.
func IsValid(address string) bool {
	domain, ok := Domain(address)
	if !ok {
		return false
	}
	at := strings.IndexByte(address, '@')
	if at <= 0 || strings.Count(address, "@") != 1 {
		return false
	}
	return !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

// Domain returns the part after the first "@" when the address contains
// both an "@" and a "." somewhere after it. The bool is false otherwise,
// so callers can skip domain-derived evidence for non-derivable addresses.
func Domain(address string) (string, bool) {
	at := strings.IndexByte(address, '@')
	if at < 0 {
		return "", false
	}
	domain := address[at+1:]
	if !strings.Contains(domain, ".") {
		return "", false
	}
	return domain, true
}
