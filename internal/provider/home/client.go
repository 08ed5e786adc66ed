// Package home provides the HTTP client for the Pokemon HOME battle-data
// service: the rank-match competition listing on the API host and the
// ranking resources on the static resource host.
//
// Both hosts expect the same fixed header set. Requests go through a token
// bucket limiter; nothing is retried.
package home

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/albapepper/pokedata/internal/metrics"
)

const (
	listPath = "/tt/cbd/competition/rankmatch/list"

	// softScarletViolet selects the Scarlet/Violet competitions in the listing.
	softScarletViolet = `{"soft":"Sc"}`

	// DetailShards is the number of pdetail-N pages per ranking snapshot.
	DetailShards = 5
)

// Descriptor addresses one ranking snapshot: competition ID, result-set ID
// and timestamp, in the order they appear in resource paths.
type Descriptor struct {
	CompetitionID string `json:"cId"`
	ResultSetID   string `json:"rst"`
	Timestamp     string `json:"ts2"`
}

func (d Descriptor) path() string {
	return "/ranking/scvi/" + url.PathEscape(d.CompetitionID) +
		"/" + url.PathEscape(d.ResultSetID) +
		"/" + url.PathEscape(d.Timestamp)
}

// Client is the HTTP client for both battle-data hosts.
type Client struct {
	httpClient      *http.Client
	apiBaseURL      string
	resourceBaseURL string
	limiter         *rate.Limiter
	logger          *slog.Logger
}

// NewClient creates a client with rate limiting. A non-positive
// requestsPerMinute disables the limiter.
func NewClient(apiBaseURL, resourceBaseURL string, timeout time.Duration, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Limit(float64(requestsPerMinute) / 60.0)
	}
	return &Client{
		httpClient:      &http.Client{Timeout: timeout},
		apiBaseURL:      apiBaseURL,
		resourceBaseURL: resourceBaseURL,
		limiter:         rate.NewLimiter(limit, 1),
		logger:          logger,
	}
}

// RankMatchList posts the competition listing query and returns the raw
// response body.
func (c *Client) RankMatchList(ctx context.Context) ([]byte, error) {
	return c.do(ctx, "list", http.MethodPost, c.apiBaseURL+listPath, []byte(softScarletViolet))
}

// UsageRanking returns the raw usage-ranking array for d.
func (c *Client) UsageRanking(ctx context.Context, d Descriptor) ([]byte, error) {
	return c.do(ctx, "ranking", http.MethodGet, c.resourceBaseURL+d.path()+"/pokemon", nil)
}

// DetailShard returns the raw pdetail-N document for d. shard is 1-based.
func (c *Client) DetailShard(ctx context.Context, d Descriptor, shard int) ([]byte, error) {
	if shard < 1 || shard > DetailShards {
		return nil, fmt.Errorf("detail shard %d out of range 1..%d", shard, DetailShards)
	}
	u := c.resourceBaseURL + d.path() + "/pdetail-" + strconv.Itoa(shard)
	return c.do(ctx, "detail", http.MethodGet, u, nil)
}

func (c *Client) do(ctx context.Context, endpoint, method, u string, body []byte) ([]byte, error) {
	data, err := c.send(ctx, method, u, body)
	if err != nil {
		metrics.RecordUpstream(endpoint, metrics.OutcomeError)
		return nil, err
	}
	metrics.RecordUpstream(endpoint, metrics.OutcomeOK)
	return data, nil
}

func (c *Client) send(ctx context.Context, method, u string, body []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("CountryCode", "304")
	req.Header.Set("LangCode", "1")
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Upstream request", "method", method, "url", u)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http %s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s returned %d: %s", method, u, resp.StatusCode, truncate(data, 200))
	}
	return data, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
