package rules

// ParseStats counts what a parser did with each line of its input.
type ParseStats struct {
	Lines      int `json:"lines"`      // total lines seen
	Comments   int `json:"comments"`   // blank or comment lines
	Ignored    int `json:"ignored"`    // lines that do not match the expected pattern
	Rejected   int `json:"rejected"`   // matched lines whose value failed validation
	Duplicates int `json:"duplicates"` // values already seen (domain list only)
}

// DomainList is the result of parsing a dnsmasq style list.
type DomainList struct {
	Suffixes []string // sorted, deduplicated
	Stats    ParseStats
}

// IPList is the result of parsing a Clash style rule list.
type IPList struct {
	CIDRs    []string // first-seen order, literals as written
	Rejected []string // invalid IP-CIDR values
	Stats    ParseStats
}

// CIDRRuleType is the type tag an IP list row must carry to be used.
const CIDRRuleType = "IP-CIDR"

func isCommentOrBlank(line string) bool {
	return line == "" || line[0] == '#'
}
