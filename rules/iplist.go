package rules

import (
	"net/netip"
	"strings"

	"pacgen/logger"
)

// ParseIPList extracts IP-CIDR values from Clash style rule rows such as
// "IP-CIDR,1.2.3.0/24,no-resolve". Host bits may be set; the literal is kept
// as written. Values that are not IPv4 prefixes are logged and rejected.
func ParseIPList(content string) IPList {
	var result IPList

	// no per-line length cap: an oversized row must not hide the rows after it.
	for raw := range strings.Lines(content) {
		result.Stats.Lines++
		line := strings.TrimSpace(raw)
		if isCommentOrBlank(line) {
			result.Stats.Comments++
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			result.Stats.Ignored++
			continue
		}

		ruleType := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if ruleType != CIDRRuleType {
			result.Stats.Ignored++
			continue
		}

		if !ValidCIDR(value) {
			logger.Warnf("Invalid CIDR ignored: %s", value)
			result.Rejected = append(result.Rejected, value)
			result.Stats.Rejected++
			continue
		}
		result.CIDRs = append(result.CIDRs, value)
	}

	return result
}

// ValidCIDR reports whether value is an IPv4 prefix in a.b.c.d/n form.
// Host bits are allowed ("10.1.2.3/8" is accepted).
func ValidCIDR(value string) bool {
	prefix, err := netip.ParsePrefix(value)
	if err != nil {
		return false
	}
	return prefix.Addr().Is4()
}
