package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"pacgen/config"
	"pacgen/logger"
)

const (
	defaultDownloadTimeout = 30 * time.Second
	defaultMaxSize         = 50 * 1024 * 1024
)

var (
	// ErrTooLarge is returned when a body exceeds the configured size limit.
	ErrTooLarge = errors.New("body exceeds size limit")
	// ErrNotUTF8 is returned when a body cannot be decoded as UTF-8 text.
	ErrNotUTF8 = errors.New("body is not valid UTF-8")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Fetcher retrieves list content from http(s) URLs or local files.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxSize   int64
}

func New(cfg *config.FetchConfig) *Fetcher {
	timeout := defaultDownloadTimeout
	maxSize := int64(defaultMaxSize)
	userAgent := ""
	if cfg != nil {
		if cfg.TimeoutSeconds > 0 {
			timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		if cfg.MaxSizeMB > 0 {
			maxSize = int64(cfg.MaxSizeMB) * 1024 * 1024
		}
		userAgent = cfg.UserAgent
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
		maxSize:   maxSize,
	}
}

// Fetch downloads source and returns its text. On failure the error is logged
// and the content is empty, so callers that only want best-effort content can
// ignore the error and carry on with an empty list.
func (f *Fetcher) Fetch(ctx context.Context, source string) (string, error) {
	logger.Infof("Downloading %s...", source)
	content, err := f.Download(ctx, source)
	if err != nil {
		logger.Errorf("Error downloading %s: %v", source, err)
		return "", err
	}
	logger.Infof("Downloaded %s (%d bytes)", source, len(content))
	return content, nil
}

// Download retrieves source and returns its decoded text.
// http and https URLs are fetched over the network; a file:// URL or any
// other value is read from disk.
func (f *Fetcher) Download(ctx context.Context, source string) (string, error) {
	u, err := url.Parse(source)
	if err != nil {
		return f.readLocalFile(source)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return f.downloadRemoteFile(ctx, source)
	case "file":
		return f.readLocalFile(source[len("file://"):])
	default:
		return f.readLocalFile(source)
	}
}

func (f *Fetcher) downloadRemoteFile(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	return f.decode(resp.Body)
}

func (f *Fetcher) readLocalFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return f.decode(file)
}

// decode reads at most maxSize bytes and checks that they are UTF-8 text.
func (f *Fetcher) decode(r io.Reader) (string, error) {
	// One extra byte tells "exactly at the limit" apart from "over the limit".
	limitedReader := &io.LimitedReader{R: r, N: f.maxSize + 1}
	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return "", err
	}
	if int64(len(data)) > f.maxSize {
		return "", fmt.Errorf("%w (%d bytes)", ErrTooLarge, f.maxSize)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", ErrNotUTF8
	}
	return string(data), nil
}
