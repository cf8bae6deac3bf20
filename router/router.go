// Package router evaluates the decision procedure of the generated PAC
// script in Go, so the tables can be checked without a browser.
package router

import (
	"fmt"
	"net"
	"strings"

	"pacgen/internal/util"

	radix "github.com/hashicorp/go-immutable-radix"
	"github.com/yl2chen/cidranger"
)

// Direct is the directive returned for traffic that bypasses the proxy.
const Direct = "DIRECT"

// Reason says which step of the procedure produced a decision.
type Reason string

const (
	ReasonPlainHost Reason = "plain-host"
	ReasonSuffix    Reason = "suffix"
	ReasonCIDR      Reason = "cidr"
	ReasonDefault   Reason = "default"
)

// Decision is the outcome of routing one host.
type Decision struct {
	Directive string // "DIRECT" or the proxy directive
	Reason    Reason
	Rule      string // matched suffix or CIDR literal, empty otherwise
}

// IsDirect reports whether the host bypasses the proxy.
func (d Decision) IsDirect() bool {
	return d.Directive == Direct
}

// Router holds the same tables a rendered script embeds.
type Router struct {
	proxy    string
	suffixes *radix.Tree
	cidrs    cidranger.Ranger
	nSuffix  int
	nCIDR    int
}

// cidrEntry keeps the literal as written next to the parsed network.
type cidrEntry struct {
	network net.IPNet
	literal string
	index   int
}

func (e *cidrEntry) Network() net.IPNet {
	return e.network
}

// New builds a Router. Suffixes are matched on label boundaries; CIDRs may
// have host bits set, as in the rendered script.
func New(proxy string, suffixes, cidrs []string) (*Router, error) {
	txn := radix.New().Txn()
	for _, s := range suffixes {
		s = util.NormalizeDomain(s)
		if s == "" {
			continue
		}
		txn.Insert(suffixKey(s), s)
	}

	ranger := cidranger.NewPCTrieRanger()
	seen := make(map[string]struct{})
	for i, c := range cidrs {
		_, network, err := net.ParseCIDR(c)
		if err != nil {
			return nil, fmt.Errorf("cidr %q: %w", c, err)
		}
		if network.IP.To4() == nil {
			return nil, fmt.Errorf("cidr %q: not an IPv4 network", c)
		}
		// The trie keeps one entry per network; the first literal wins.
		if _, dup := seen[network.String()]; dup {
			continue
		}
		seen[network.String()] = struct{}{}
		if err := ranger.Insert(&cidrEntry{network: *network, literal: c, index: i}); err != nil {
			return nil, fmt.Errorf("cidr %q: %w", c, err)
		}
	}

	tree := txn.Commit()
	return &Router{
		proxy:    proxy,
		suffixes: tree,
		cidrs:    ranger,
		nSuffix:  tree.Len(),
		nCIDR:    len(cidrs),
	}, nil
}

// suffixKey reverses the labels and appends a dot so that a prefix match in
// the tree always ends on a label boundary: "com.example." is a prefix of
// "com.example.www." but not of "com.examples.".
func suffixKey(domain string) []byte {
	return []byte(util.ReverseLabels(domain) + ".")
}

// FindProxyForURL mirrors the function of the same name in the script.
func (r *Router) FindProxyForURL(url, host string) string {
	return r.Route(host).Directive
}

// Route applies the decision procedure to host.
func (r *Router) Route(host string) Decision {
	host = strings.ToLower(host)

	if IsPlainHostName(host) {
		return Decision{Directive: Direct, Reason: ReasonPlainHost}
	}

	if suffix, ok := r.MatchSuffix(host); ok {
		return Decision{Directive: Direct, Reason: ReasonSuffix, Rule: suffix}
	}

	if util.IsDottedQuad(host) {
		if cidr, ok := r.MatchCIDR(host); ok {
			return Decision{Directive: Direct, Reason: ReasonCIDR, Rule: cidr}
		}
	}

	return Decision{Directive: r.proxy, Reason: ReasonDefault}
}

// MatchSuffix returns the longest table suffix of host, if any.
func (r *Router) MatchSuffix(host string) (string, bool) {
	_, v, found := r.suffixes.Root().LongestPrefix(suffixKey(host))
	if !found {
		return "", false
	}
	return v.(string), true
}

// MatchCIDR returns the first listed CIDR containing the dotted-quad ip.
func (r *Router) MatchCIDR(ip string) (string, bool) {
	addr := net.ParseIP(ip)
	if addr == nil || addr.To4() == nil {
		return "", false
	}
	entries, err := r.cidrs.ContainingNetworks(addr)
	if err != nil || len(entries) == 0 {
		return "", false
	}
	first := entries[0].(*cidrEntry)
	for _, e := range entries[1:] {
		if ce := e.(*cidrEntry); ce.index < first.index {
			first = ce
		}
	}
	return first.literal, true
}

// Len returns the number of distinct suffixes and the number of CIDRs.
func (r *Router) Len() (suffixes, cidrs int) {
	return r.nSuffix, r.nCIDR
}

// IsPlainHostName reports whether host has no dots, like the PAC builtin.
func IsPlainHostName(host string) bool {
	return !strings.Contains(host, ".")
}

// ConvertMask turns a prefix length into a dotted-quad netmask, filling
// octets greedily from the left. Lengths outside 0..32 are clamped.
func ConvertMask(bits int) string {
	bits = max(0, min(bits, 32))
	octets := make([]string, 4)
	for i := range octets {
		n := min(bits, 8)
		octets[i] = fmt.Sprint(256 - (1 << (8 - n)))
		bits -= n
	}
	return strings.Join(octets, ".")
}
