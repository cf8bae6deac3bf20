package pac

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Data is everything embedded into a generated script.
type Data struct {
	Proxy    string
	Suffixes []string
	// Keywords is accepted for list formats that carry keyword rules.
	// The script does not match on keywords.
	Keywords []string
	CIDRs    []string
	// Sources are listed in the header comment.
	Sources []string
}

// Render writes the PAC script for d to w.
func Render(w io.Writer, d Data) error {
	if err := scriptTmpl.Execute(w, d); err != nil {
		return fmt.Errorf("render pac: %w", err)
	}
	return nil
}

// RenderString is Render into a string.
func RenderString(d Data) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var (
	errNoProxy = errors.New("proxy declaration not found")

	proxyDecl   = regexp.MustCompile(`(?m)^var proxy = (".*");$`)
	suffixEntry = regexp.MustCompile(`^\s*(".*"): 1,?$`)
	cidrEntry   = regexp.MustCompile(`^\s*(".*"),?$`)
)

// Extract reads the proxy, suffix and CIDR literals back out of a script
// produced by Render. Sources and Keywords are not recovered.
func Extract(script string) (Data, error) {
	var d Data

	m := proxyDecl.FindStringSubmatch(script)
	if m == nil {
		return d, errNoProxy
	}
	if err := json.Unmarshal([]byte(m[1]), &d.Proxy); err != nil {
		return d, fmt.Errorf("proxy literal: %w", err)
	}

	suffixes, err := extractBlock(script, "var directSuffixes = {", "};", suffixEntry)
	if err != nil {
		return d, fmt.Errorf("directSuffixes: %w", err)
	}
	cidrs, err := extractBlock(script, "var directCIDRs = [", "];", cidrEntry)
	if err != nil {
		return d, fmt.Errorf("directCIDRs: %w", err)
	}
	d.Suffixes = suffixes
	d.CIDRs = cidrs
	return d, nil
}

// extractBlock decodes one string literal per line between the line opening
// the block and the first line equal to closer.
func extractBlock(script, opener, closer string, entry *regexp.Regexp) ([]string, error) {
	start := strings.Index(script, opener+"\n")
	if start < 0 {
		return nil, fmt.Errorf("%q not found", opener)
	}
	body := script[start+len(opener)+1:]

	out := []string{}
	for _, line := range strings.Split(body, "\n") {
		if line == closer {
			return out, nil
		}
		m := entry.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("unexpected line %q", line)
		}
		var s string
		if err := json.Unmarshal([]byte(m[1]), &s); err != nil {
			return nil, fmt.Errorf("literal %s: %w", m[1], err)
		}
		out = append(out, s)
	}
	return nil, fmt.Errorf("%q not closed", opener)
}
