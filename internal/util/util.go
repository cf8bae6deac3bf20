package util

import (
	"strings"
)

// NormalizeDomain 规范化域名
func NormalizeDomain(domain string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(domain)), ".")
}

// ReverseLabels turns "sub.example.com" into "com.example.sub".
func ReverseLabels(domain string) string {
	parts := strings.Split(domain, ".")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// IsDottedQuad reports whether s looks like a.b.c.d with 1-3 digits per octet.
// It does not check octet ranges, matching the check done in the PAC script.
func IsDottedQuad(s string) bool {
	octets := strings.Split(s, ".")
	if len(octets) != 4 {
		return false
	}
	for _, o := range octets {
		if len(o) == 0 || len(o) > 3 {
			return false
		}
		for _, ch := range o {
			if ch < '0' || ch > '9' {
				return false
			}
		}
	}
	return true
}
