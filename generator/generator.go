package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"pacgen/config"
	"pacgen/logger"
	"pacgen/pac"
	"pacgen/rules"
)

// Fetcher returns the text behind a URL. On failure it returns empty content
// and a non-nil error.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Result describes one run.
type Result struct {
	Suffixes        int
	CIDRs           int
	DomainStats     rules.ParseStats
	IPStats         rules.ParseStats
	RejectedCIDRs   []string
	FailedSources   []string
	OutputPath      string
	BytesWritten    int
	Verified        bool
	DurationSeconds float64
	// Data is what was embedded into the script.
	Data pac.Data
}

// Generator runs fetch → parse → render → write once per Run call.
type Generator struct {
	cfg     *config.Config
	fetcher Fetcher
}

func New(cfg *config.Config, f Fetcher) *Generator {
	return &Generator{
		cfg:     cfg,
		fetcher: f,
	}
}

// Run produces the PAC file. A failed download is logged and treated as an
// empty list unless fetch.fail_on_error is set. Writing the output overwrites
// the file in place; an error part way through can leave it truncated.
func (g *Generator) Run(ctx context.Context) (Result, error) {
	startTime := time.Now()
	result := Result{OutputPath: g.cfg.Output.Path}

	logger.Info("Fetching domain list...")
	domainContent, err := g.fetch(ctx, g.cfg.Sources.DomainListURL, &result)
	if err != nil {
		return result, err
	}
	domains := rules.ParseDomainList(domainContent)
	result.DomainStats = domains.Stats
	result.Suffixes = len(domains.Suffixes)
	logger.Infof("Found %d domains (%d ignored, %d invalid, %d duplicates).",
		len(domains.Suffixes), domains.Stats.Ignored, domains.Stats.Rejected, domains.Stats.Duplicates)

	logger.Info("Fetching IP list...")
	ipContent, err := g.fetch(ctx, g.cfg.Sources.IPListURL, &result)
	if err != nil {
		return result, err
	}
	ips := rules.ParseIPList(ipContent)
	result.IPStats = ips.Stats
	result.CIDRs = len(ips.CIDRs)
	result.RejectedCIDRs = ips.Rejected
	logger.Infof("Found %d IP ranges (%d ignored, %d invalid).",
		len(ips.CIDRs), ips.Stats.Ignored, ips.Stats.Rejected)

	result.Data = pac.Data{
		Proxy:    g.cfg.PAC.Proxy,
		Suffixes: domains.Suffixes,
		CIDRs:    ips.CIDRs,
		Sources:  []string{g.cfg.Sources.DomainListURL, g.cfg.Sources.IPListURL},
	}

	logger.Infof("Generating %s...", g.cfg.Output.Path)
	script, err := pac.RenderString(result.Data)
	if err != nil {
		return result, err
	}
	if err := writeOutput(g.cfg.Output.Path, script); err != nil {
		return result, err
	}
	result.BytesWritten = len(script)

	if g.cfg.Output.Verify {
		if err := verifyOutput(g.cfg.Output.Path, result.Data); err != nil {
			return result, err
		}
		result.Verified = true
		logger.Debugf("Verified %s", g.cfg.Output.Path)
	}

	if len(result.FailedSources) > 0 {
		logger.Warnf("%d source(s) failed to download; %s was generated from partial data: %v",
			len(result.FailedSources), g.cfg.Output.Path, result.FailedSources)
	}

	result.DurationSeconds = time.Since(startTime).Seconds()
	logger.Infof("Done! %s generated (%d bytes).", g.cfg.Output.Path, result.BytesWritten)
	return result, nil
}

func (g *Generator) fetch(ctx context.Context, url string, result *Result) (string, error) {
	content, err := g.fetcher.Fetch(ctx, url)
	if err == nil {
		return content, nil
	}
	result.FailedSources = append(result.FailedSources, url)
	if g.cfg.Fetch.FailOnError {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	return "", nil
}

func writeOutput(path, script string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// verifyOutput reads path back and checks the embedded tables against want.
func verifyOutput(path string, want pac.Data) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("verify %s: %w", path, err)
	}
	got, err := pac.Extract(string(data))
	if err != nil {
		return fmt.Errorf("verify %s: %w", path, err)
	}
	switch {
	case got.Proxy != want.Proxy:
		return fmt.Errorf("verify %s: proxy is %q, want %q", path, got.Proxy, want.Proxy)
	case !slices.Equal(got.Suffixes, want.Suffixes):
		return fmt.Errorf("verify %s: %d suffixes embedded, want %d", path, len(got.Suffixes), len(want.Suffixes))
	case !slices.Equal(got.CIDRs, want.CIDRs):
		return fmt.Errorf("verify %s: %d CIDRs embedded, want %d", path, len(got.CIDRs), len(want.CIDRs))
	}
	return nil
}
