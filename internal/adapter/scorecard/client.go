package scorecard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/college-tracker/internal/config"
	"github.com/couchcryptid/college-tracker/internal/domain"
	"github.com/couchcryptid/college-tracker/internal/observability"
	"github.com/jonboulle/clockwork"
)

const (
	opSearchByName = "search_by_name"
	opSearch       = "search"
	opGetByID      = "get_by_id"

	// maxErrorBody caps how much of an upstream error body is kept for logs.
	maxErrorBody = 4096
)

// KeySource returns the current Scorecard API key. It is called once per
// operation so credential changes apply without a restart.
type KeySource func() string

// Client queries the College Scorecard API and normalizes its records.
// It holds no per-request state and is safe for concurrent use.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	apiKey         KeySource
	defaultPerPage int
	clock          clockwork.Clock
	metrics        *observability.Metrics
	logger         *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the Scorecard endpoint.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.httpClient = hc } }

// WithKeySource replaces the environment-backed credential lookup.
func WithKeySource(ks KeySource) Option { return func(c *Client) { c.apiKey = ks } }

// WithDefaultPerPage sets the page size used when filters leave it unset.
func WithDefaultPerPage(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.defaultPerPage = n
		}
	}
}

// WithClock sets the clock used to time upstream requests.
func WithClock(clk clockwork.Clock) Option { return func(c *Client) { c.clock = clk } }

// NewClient creates a Scorecard client. Without options it targets the public
// API and reads the key from COLLEGE_SCORECARD_API_KEY on every call.
func NewClient(timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:        config.DefaultScorecardBaseURL,
		httpClient:     &http.Client{Timeout: timeout},
		apiKey:         config.APIKey,
		defaultPerPage: defaultPerPage,
		clock:          clockwork.NewRealClock(),
		metrics:        metrics,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckReadiness reports whether a usable API key is configured. It does not
// contact the API.
func (c *Client) CheckReadiness(_ context.Context) error {
	return domain.ValidateAPIKey(c.apiKey())
}

// SearchByName returns four-year institutions whose name matches. A limit of
// zero or less requests 20 records. Rejected records are dropped and do not
// count against the limit.
func (c *Client) SearchByName(ctx context.Context, name string, limit int) ([]domain.NormalizedCollege, error) {
	key, err := c.credential(opSearchByName)
	if err != nil {
		return nil, err
	}

	resp, err := c.fetch(ctx, opSearchByName, nameParams(key, name, limit))
	if err != nil {
		return nil, err
	}

	c.metrics.ScorecardRequests.WithLabelValues(opSearchByName, "success").Inc()
	return c.normalize(resp.Results), nil
}

// SearchColleges runs a filtered search. Total is the upstream match count,
// which is computed before admission filtering.
func (c *Client) SearchColleges(ctx context.Context, filters domain.SearchFilters) (domain.SearchResult, error) {
	key, err := c.credential(opSearch)
	if err != nil {
		return domain.SearchResult{}, err
	}

	resp, err := c.fetch(ctx, opSearch, filterParams(key, filters, c.defaultPerPage))
	if err != nil {
		return domain.SearchResult{}, err
	}

	c.metrics.ScorecardRequests.WithLabelValues(opSearch, "success").Inc()
	return domain.SearchResult{
		Colleges: c.normalize(resp.Results),
		Total:    resp.Metadata.Total,
	}, nil
}

// GetCollegeByID looks up one institution. An upstream failure status, an
// empty result and a rejected record are all reported as not found.
func (c *Client) GetCollegeByID(ctx context.Context, id int) (domain.NormalizedCollege, bool, error) {
	key, err := c.credential(opGetByID)
	if err != nil {
		return domain.NormalizedCollege{}, false, err
	}

	resp, err := c.fetch(ctx, opGetByID, idParams(key, id))
	if err != nil {
		if isUpstream(err) {
			return domain.NormalizedCollege{}, false, nil
		}
		return domain.NormalizedCollege{}, false, err
	}

	if len(resp.Results) == 0 {
		c.metrics.ScorecardRequests.WithLabelValues(opGetByID, "not_found").Inc()
		return domain.NormalizedCollege{}, false, nil
	}

	colleges := c.normalize(resp.Results[:1])
	if len(colleges) == 0 {
		c.metrics.ScorecardRequests.WithLabelValues(opGetByID, "not_found").Inc()
		return domain.NormalizedCollege{}, false, nil
	}

	c.metrics.ScorecardRequests.WithLabelValues(opGetByID, "success").Inc()
	return colleges[0], true, nil
}

// credential reads and validates the API key before any network call.
func (c *Client) credential(op string) (string, error) {
	key := c.apiKey()
	if err := domain.ValidateAPIKey(key); err != nil {
		c.metrics.ScorecardRequests.WithLabelValues(op, "config_error").Inc()
		return "", err
	}
	return key, nil
}

// fetch issues one GET and decodes the response. Non-2xx statuses become
// *domain.UpstreamError. Failures are counted here; success is counted by the
// caller once the outcome is known.
func (c *Client) fetch(ctx context.Context, op string, params url.Values) (domain.ScorecardResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		c.metrics.ScorecardRequests.WithLabelValues(op, "error").Inc()
		return domain.ScorecardResponse{}, fmt.Errorf("create request: %w", err)
	}

	start := c.clock.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ScorecardDuration.WithLabelValues(op).Observe(c.clock.Since(start).Seconds())
	if err != nil {
		c.metrics.ScorecardRequests.WithLabelValues(op, "error").Inc()
		return domain.ScorecardResponse{}, fmt.Errorf("scorecard %s request: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("scorecard API error",
			"operation", op,
			"status", resp.StatusCode,
			"body", string(body),
		)
		c.metrics.ScorecardRequests.WithLabelValues(op, "upstream_error").Inc()
		return domain.ScorecardResponse{}, &domain.UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out domain.ScorecardResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.metrics.ScorecardRequests.WithLabelValues(op, "error").Inc()
		return domain.ScorecardResponse{}, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

// normalize decodes and admits result entries. Malformed entries are
// rejected like any other record that fails admission.
func (c *Client) normalize(entries []json.RawMessage) []domain.NormalizedCollege {
	raws, malformed := domain.DecodeRecords(entries)
	colleges := domain.NormalizeAll(raws)
	if rejected := len(entries) - len(colleges); rejected > 0 {
		c.metrics.RecordsRejected.Add(float64(rejected))
		c.logger.Debug("dropped scorecard records",
			"rejected", rejected,
			"malformed", malformed,
			"admitted", len(colleges),
		)
	}
	return colleges
}

func isUpstream(err error) bool {
	var upErr *domain.UpstreamError
	return errors.As(err, &upErr)
}
