package forms

import "strings"

// IsInstitutionalEmail reports whether value ends with the required domain
// suffix, case-insensitively. The check is local: no backend round-trip.
func IsInstitutionalEmail(value, domain string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(value)), strings.ToLower(domain))
}
