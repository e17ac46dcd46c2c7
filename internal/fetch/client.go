// Package fetch provides the HTTP page fetcher used by the smoke checks.
//
// The client wraps the standard http.Client and adds:
//   - Transparent decompression (gzip, deflate, brotli)
//   - Structured request/response logging
//   - A bounded per-request timeout
//
// It deliberately performs no retries: a transient network failure must
// surface as a failed check, not be papered over.
package fetch

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"

	"github.com/sitefy/sitecheck/internal/version"
)

// Default configuration values.
const (
	DefaultTimeout              = 10 * time.Second
	DefaultAcceptEncodingHeader = "gzip, deflate, br"
)

// HTTP header constants.
const (
	HeaderAcceptEncoding  = "Accept-Encoding"
	HeaderContentEncoding = "Content-Encoding"
	HeaderUserAgent       = "User-Agent"

	EncodingGzip    = "gzip"
	EncodingDeflate = "deflate"
	EncodingBrotli  = "br"
)

// Config holds the configuration for the page fetcher.
type Config struct {
	// BaseURL is the root address page paths are resolved against.
	BaseURL string

	// Timeout is the overall per-request timeout.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with requests.
	// Empty means the built-in sitecheck/<version> string.
	UserAgent string

	// Logger is the structured logger for request/response logging.
	Logger *slog.Logger

	// EnableDecompression enables automatic response decompression.
	EnableDecompression bool

	// BaseClient is the underlying http.Client to use.
	// If nil, a default client is created.
	BaseClient *http.Client
}

// DefaultConfig returns a Config with sensible defaults for the given base URL.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:             baseURL,
		Timeout:             DefaultTimeout,
		UserAgent:           version.UserAgent(),
		Logger:              slog.Default(),
		EnableDecompression: true,
	}
}

// Page is the result of fetching one page: the HTTP status and the full
// (decompressed) body text. The body is treated as an opaque string; callers
// parse it ad hoc.
type Page struct {
	URL        string
	StatusCode int
	Body       string
}

// OK reports whether the page was served with HTTP 200.
func (p *Page) OK() bool {
	return p.StatusCode == http.StatusOK
}

// Contains reports whether the raw body contains the given substring.
func (p *Page) Contains(s string) bool {
	return strings.Contains(p.Body, s)
}

// Client fetches pages from the configured base URL.
type Client struct {
	config Config
	client *http.Client
	logger *slog.Logger
}

// New creates a new page fetcher with the given configuration.
func New(cfg Config) *Client {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = version.UserAgent()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	baseClient := cfg.BaseClient
	if baseClient == nil {
		baseClient = &http.Client{
			Timeout: cfg.Timeout,
		}
	}

	return &Client{
		config: cfg,
		client: baseClient,
		logger: cfg.Logger,
	}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// GetPage performs a GET against the given path relative to the base URL and
// returns the status code together with the fully read body. A non-200 status
// is NOT an error here: callers decide what statuses mean for their check.
func (c *Client) GetPage(ctx context.Context, path string) (*Page, error) {
	pageURL, err := joinURL(c.config.BaseURL, path)
	if err != nil {
		return nil, fmt.Errorf("resolving page URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(HeaderUserAgent, c.config.UserAgent)
	if c.config.EnableDecompression {
		req.Header.Set(HeaderAcceptEncoding, DefaultAcceptEncodingHeader)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.Warn("request failed",
			slog.String("url", pageURL),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("GET %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	body := resp.Body
	if c.config.EnableDecompression {
		body = c.wrapDecompression(resp)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading %s body: %w", pageURL, err)
	}

	c.logger.Debug("request completed",
		slog.String("url", pageURL),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
		slog.Int("body_bytes", len(data)),
	)

	return &Page{
		URL:        pageURL,
		StatusCode: resp.StatusCode,
		Body:       string(data),
	}, nil
}

// joinURL resolves a page path against the base URL.
func joinURL(base, path string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	return u.JoinPath(path).String(), nil
}

// wrapDecompression wraps the response body with appropriate decompression.
func (c *Client) wrapDecompression(resp *http.Response) io.ReadCloser {
	encoding := resp.Header.Get(HeaderContentEncoding)
	if encoding == "" {
		return resp.Body
	}

	switch strings.ToLower(encoding) {
	case EncodingGzip:
		reader, err := gzip.NewReader(resp.Body)
		if err != nil {
			c.logger.Warn("failed to create gzip reader, returning raw body",
				slog.String("error", err.Error()),
			)
			return resp.Body
		}
		return &decompressReader{reader: reader, closer: resp.Body}

	case EncodingDeflate:
		reader := flate.NewReader(resp.Body)
		return &decompressReader{reader: reader, closer: resp.Body}

	case EncodingBrotli:
		reader := brotli.NewReader(resp.Body)
		return &decompressReader{reader: reader, closer: resp.Body}

	default:
		c.logger.Debug("unknown content encoding, returning raw body",
			slog.String("encoding", encoding),
		)
		return resp.Body
	}
}

// decompressReader wraps a decompression reader with the original body closer.
type decompressReader struct {
	reader io.Reader
	closer io.Closer
}

func (d *decompressReader) Read(p []byte) (int, error) {
	return d.reader.Read(p)
}

func (d *decompressReader) Close() error {
	if closer, ok := d.reader.(io.Closer); ok {
		closer.Close()
	}
	return d.closer.Close()
}
