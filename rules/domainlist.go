package rules

import (
	"regexp"
	"sort"
	"strings"

	"pacgen/internal/util"
	"pacgen/logger"

	"github.com/miekg/dns"
)

// server=/example.com/114.114.114.114
var serverDirective = regexp.MustCompile(`server=/(.+?)/`)

// ParseDomainList extracts domain suffixes from dnsmasq server= lines.
// Lines that do not carry a server=/<domain>/ directive are skipped and counted.
func ParseDomainList(content string) DomainList {
	var result DomainList
	seen := make(map[string]struct{})

	// no per-line length cap: an oversized row must not hide the rows after it.
	for raw := range strings.Lines(content) {
		result.Stats.Lines++
		line := strings.TrimSpace(raw)
		if isCommentOrBlank(line) {
			result.Stats.Comments++
			continue
		}

		match := serverDirective.FindStringSubmatch(line)
		if match == nil {
			result.Stats.Ignored++
			continue
		}

		domain := util.NormalizeDomain(match[1])
		if !ValidSuffix(domain) {
			logger.Debugf("Invalid domain ignored: %s", match[1])
			result.Stats.Rejected++
			continue
		}

		if _, dup := seen[domain]; dup {
			result.Stats.Duplicates++
			continue
		}
		seen[domain] = struct{}{}
	}

	result.Suffixes = make([]string, 0, len(seen))
	for domain := range seen {
		result.Suffixes = append(result.Suffixes, domain)
	}
	sort.Strings(result.Suffixes)
	return result
}

// ValidSuffix reports whether domain can be used as a suffix table key.
// "#" is dnsmasq's match-everything marker and is never a suffix.
func ValidSuffix(domain string) bool {
	if domain == "" || domain == "#" || strings.ContainsAny(domain, "/# \t") {
		return false
	}
	_, ok := dns.IsDomainName(domain)
	return ok
}
