package timemap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Fetcher loads the dashboard domain. It is implemented by *Client and
// *BundleFile.
type Fetcher interface {
	FetchDomain(ctx context.Context) (*Domain, error)
}

var (
	_ Fetcher = (*Client)(nil)
	_ Fetcher = (*BundleFile)(nil)
)

// Endpoints are the paths appended to the server root. Empty paths are
// skipped.
type Endpoints struct {
	Events       string
	Associations string
	Sources      string
}

// Client talks to the timemap data server.
type Client struct {
	baseURL   *url.URL
	endpoints Endpoints
	http      *http.Client
	userAgent string
}

const (
	defaultServerRoot = "http://localhost:4040"
	defaultUserAgent  = "cardstack/0.1"
	requestTimeout    = 10 * time.Second
)

// NewClient builds a Client for serverRoot.
func NewClient(serverRoot string, endpoints Endpoints) (*Client, error) {
	base, err := parseBaseURL(serverRoot)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   base,
		endpoints: endpoints,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchDomain retrieves events, associations and sources.
func (c *Client) FetchDomain(ctx context.Context) (*Domain, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(c.endpoints.Events) == "" {
		return nil, fmt.Errorf("events endpoint is not configured")
	}

	var domain Domain
	if err := c.get(ctx, c.endpoints.Events, &domain.Events); err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	if ext := strings.TrimSpace(c.endpoints.Associations); ext != "" {
		if err := c.get(ctx, ext, &domain.Associations); err != nil {
			return nil, fmt.Errorf("fetch associations: %w", err)
		}
	}
	if ext := strings.TrimSpace(c.endpoints.Sources); ext != "" {
		var raw json.RawMessage
		if err := c.get(ctx, ext, &raw); err != nil {
			return nil, fmt.Errorf("fetch sources: %w", err)
		}
		sources, err := decodeSources(raw)
		if err != nil {
			return nil, fmt.Errorf("decode sources: %w", err)
		}
		domain.Sources = sources
	}
	return &domain, nil
}

func (c *Client) get(ctx context.Context, ext string, dest any) error {
	rel, err := url.Parse(ext)
	if err != nil {
		return fmt.Errorf("parse endpoint %q: %w", ext, err)
	}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(serverRoot string) (*url.URL, error) {
	trimmed := strings.TrimSpace(serverRoot)
	if trimmed == "" {
		trimmed = defaultServerRoot
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server root %q: %w", serverRoot, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// BundleFile reads a domain bundle from disk:
//
//	{"events": [...], "sources": {...} | [...], "associations": [...]}
type BundleFile struct {
	Path string
}

// FetchDomain reads and decodes the bundle.
func (b *BundleFile) FetchDomain(context.Context) (*Domain, error) {
	data, err := os.ReadFile(b.Path)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}
	return ParseBundle(data)
}

// ParseBundle decodes a domain bundle.
func ParseBundle(data []byte) (*Domain, error) {
	var raw struct {
		Events       []Event         `json:"events"`
		Sources      json.RawMessage `json:"sources"`
		Associations []Association   `json:"associations"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	sources, err := decodeSources(raw.Sources)
	if err != nil {
		return nil, fmt.Errorf("decode bundle sources: %w", err)
	}
	return &Domain{Events: raw.Events, Sources: sources, Associations: raw.Associations}, nil
}
