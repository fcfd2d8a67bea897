package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/five82/dex/internal/logging"
)

var (
	// ErrNotFound reports that the API has no record for the requested identifier.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable covers transport, status and decode failures.
	ErrUnavailable = errors.New("unavailable")
)

// Fetcher defines the read-only operations dex needs from the remote catalog.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	ListPage(ctx context.Context, pageNumber, pageSize int) (CatalogPage, error)
	GetItem(ctx context.Context, nameOrID string) (DetailRecord, error)
	GetSpecies(ctx context.Context, id int) (SpeciesMetadata, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the PokeAPI HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

const (
	// DefaultBaseURL is the public PokeAPI v2 root.
	DefaultBaseURL   = "https://pokeapi.co/api/v2"
	defaultUserAgent = "dex/0.1"
	requestTimeout   = 10 * time.Second

	listPath    = "pokemon"
	itemPath    = "pokemon"
	speciesPath = "pokemon-species"
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a Client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListPage retrieves one page of catalog entries. Page numbers below one are
// treated as the first page.
func (c *Client) ListPage(ctx context.Context, pageNumber, pageSize int) (CatalogPage, error) {
	if c == nil {
		return CatalogPage{}, fmt.Errorf("client is nil")
	}
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize <= 0 {
		pageSize = PageSize
	}
	values := url.Values{}
	values.Set("limit", strconv.Itoa(pageSize))
	values.Set("offset", strconv.Itoa(Offset(pageNumber, pageSize)))
	rel := &url.URL{Path: listPath, RawQuery: values.Encode()}

	var payload listResponse
	if err := c.doURL(ctx, rel, &payload); err != nil {
		return CatalogPage{}, err
	}
	return CatalogPage{
		Items:      payload.Results,
		TotalCount: max(payload.Count, 0),
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}, nil
}

// GetItem retrieves a single record by name or numeric id.
func (c *Client) GetItem(ctx context.Context, nameOrID string) (DetailRecord, error) {
	if c == nil {
		return DetailRecord{}, fmt.Errorf("client is nil")
	}
	ident := strings.ToLower(strings.TrimSpace(nameOrID))
	if ident == "" {
		return DetailRecord{}, fmt.Errorf("%w: empty identifier", ErrNotFound)
	}
	rel := &url.URL{Path: itemPath + "/" + url.PathEscape(ident)}
	var payload DetailRecord
	if err := c.doURL(ctx, rel, &payload); err != nil {
		return DetailRecord{}, err
	}
	return payload, nil
}

// GetSpecies retrieves the species metadata for a resolved record id.
func (c *Client) GetSpecies(ctx context.Context, id int) (SpeciesMetadata, error) {
	if c == nil {
		return SpeciesMetadata{}, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return SpeciesMetadata{}, fmt.Errorf("species id required")
	}
	rel := &url.URL{Path: speciesPath + "/" + strconv.Itoa(id)}
	var payload SpeciesMetadata
	if err := c.doURL(ctx, rel, &payload); err != nil {
		return SpeciesMetadata{}, err
	}
	return payload, nil
}

// Offset converts a 1-based page number into the API's offset parameter.
func Offset(pageNumber, pageSize int) int {
	if pageNumber < 1 {
		pageNumber = 1
	}
	return (pageNumber - 1) * pageSize
}

func (c *Client) doURL(ctx context.Context, rel *url.URL, dest any) error {
	reqURL := c.baseURL.JoinPath(rel.Path)
	reqURL.RawQuery = rel.RawQuery
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("request %s: %w", rel.Path, ctxErr)
		}
		return fmt.Errorf("%w: execute request: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("api request",
		slog.String("path", rel.String()),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)))

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: api %s returned status 404", ErrNotFound, rel.Path)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: api %s returned status %d", ErrUnavailable, rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("request %s: %w", rel.Path, ctxErr)
		}
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base %q: missing host", raw)
	}
	u.Path = "/" + strings.Trim(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
