package domain

import "strings"

// Network is the telecom a mobile number belongs to.
type Network string

const (
	NetworkMTN     Network = "mtn"
	NetworkAirtel  Network = "airtel"
	NetworkUnknown Network = "unknown"
)

// ValidPhone reports whether s is a plausible Ugandan mobile number:
// optional +256/256 country code or a leading 0, then a 3 or 7 and eight
// more digits. Spaces and dashes are ignored.
func ValidPhone(s string) bool {
	national, ok := nationalize(s)
	if !ok {
		return false
	}
	if national[0] != '3' && national[0] != '7' {
		return false
	}
	return true
}

// ResolveNetwork maps a number to its network by prefix. MTN owns 77, 78,
// 76 and 39; Airtel owns 70, 75 and 74. Anything else, or an invalid
// number, is NetworkUnknown.
func ResolveNetwork(s string) Network {
	national, ok := nationalize(s)
	if !ok {
		return NetworkUnknown
	}

	switch national[:2] {
	case "77", "78", "76", "39":
		return NetworkMTN
	case "70", "75", "74":
		return NetworkAirtel
	default:
		return NetworkUnknown
	}
}

// nationalize strips spaces/dashes and country-code or trunk prefixes,
// returning the 9-digit national form.
func nationalize(s string) (string, bool) {
	var b strings.Builder
	for _, r := range s {
		if r == ' ' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	n := b.String()

	switch {
	case strings.HasPrefix(n, "+256"):
		n = n[4:]
	case strings.HasPrefix(n, "256") && len(n) == 12:
		n = n[3:]
	case strings.HasPrefix(n, "0"):
		n = n[1:]
	}

	if len(n) != 9 {
		return "", false
	}
	for _, r := range n {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return n, true
}
