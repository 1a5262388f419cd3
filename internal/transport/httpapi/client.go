// Package httpapi is the outbound client for the remote search API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/nitinanarwal/Search-AI/internal/domain"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/request"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/result"
	"github.com/nitinanarwal/Search-AI/internal/metrics"
	"github.com/nitinanarwal/Search-AI/internal/version"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:5000"

const (
	searchPath     = "/api/search"
	healthPath     = "/health"
	businessesPath = "/api/businesses"

	defaultTimeout = 30 * time.Second
	// maxBodyBytes bounds how much of a response is read into memory.
	maxBodyBytes = 8 << 20
)

// Config holds the search API client settings.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	UserAgent  string
	Logger     *zap.Logger
}

// Client talks to the search API over HTTP.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	logger    *zap.Logger
}

// New creates a search API client.
func New(cfg *Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = version.UserAgent()
	}
	return &Client{baseURL: baseURL, http: hc, userAgent: ua, logger: logger}
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Search implements the lifecycle transport: POST /api/search.
// Returns nil records when the response has no results field.
func (c *Client) Search(ctx context.Context, payload request.Payload) ([]result.Raw, error) {
	body, err := payload.Encode()
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, "search", http.MethodPost, searchPath, body)
	if err != nil {
		return nil, err
	}
	return parseSearchBody(data)
}

// Health is the search API /health response.
type Health struct {
	Status    string `json:"status"`
	Count     int    `json:"count"`
	Timestamp string `json:"ts"`
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (Health, error) {
	data, err := c.do(ctx, "health", http.MethodGet, healthPath, nil)
	if err != nil {
		return Health{}, err
	}
	var h Health
	if err := json.Unmarshal(data, &h); err != nil {
		return Health{}, fmt.Errorf("decode health: %w: %w", domain.ErrInvalidResponse, err)
	}
	return h, nil
}

// HealthCheck reports whether the search API answers /health with status ok.
func (c *Client) HealthCheck(ctx context.Context) error {
	h, err := c.Health(ctx)
	if err != nil {
		return err
	}
	if h.Status != "ok" {
		return fmt.Errorf("search api status %q", h.Status)
	}
	return nil
}

// Business fetches one raw record via GET /api/businesses/{id}.
// A 404 matches domain.ErrNotFound.
func (c *Client) Business(ctx context.Context, id string) (result.Raw, error) {
	data, err := c.do(ctx, "business", http.MethodGet, businessesPath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("decode business: %w", domain.ErrInvalidResponse)
	}
	if err := rejection(data); err != nil {
		return nil, err
	}
	np := gjson.GetBytes(data, "nonprofit")
	if !np.Exists() {
		return nil, fmt.Errorf("business %q: %w", id, domain.ErrNotFound)
	}
	return result.Raw(np.Raw), nil
}

// Businesses lists every raw record via GET /api/businesses.
// Returns nil records when the response has no nonprofits field.
func (c *Client) Businesses(ctx context.Context) ([]result.Raw, error) {
	data, err := c.do(ctx, "businesses", http.MethodGet, businessesPath, nil)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("decode businesses: %w", domain.ErrInvalidResponse)
	}
	if err := rejection(data); err != nil {
		return nil, err
	}
	list := gjson.GetBytes(data, "nonprofits")
	if !list.IsArray() {
		return nil, nil
	}
	return rawArray(list), nil
}

// do sends a request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, endpoint, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	requestID := uuid.NewString()
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	log := c.logger.With(zap.String("endpoint", endpoint), zap.String("request_id", requestID))
	start := time.Now()

	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "transport_error").Inc()
		log.Warn("search api unreachable", zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w: %w", method, path, domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warn("read search api response", zap.Error(err))
		return nil, fmt.Errorf("read %s response: %w: %w", endpoint, domain.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("search api error status",
			zap.Int("status", resp.StatusCode),
			zap.Duration("latency", time.Since(start)),
		)
		return nil, domain.NewStatusError(resp.StatusCode, statusText(resp), string(data))
	}

	log.Debug("search api response",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)),
		zap.Duration("latency", time.Since(start)),
	)
	return data, nil
}

// parseSearchBody extracts the raw result records from a 2xx body.
// Accepts {"results": [...]} and a bare top-level array.
func parseSearchBody(data []byte) ([]result.Raw, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("decode search response: %w", domain.ErrInvalidResponse)
	}
	doc := gjson.ParseBytes(data)
	if doc.IsArray() {
		return rawArray(doc), nil
	}
	if err := rejection(data); err != nil {
		return nil, err
	}
	results := doc.Get("results")
	if !results.IsArray() {
		return nil, nil
	}
	return rawArray(results), nil
}

func rawArray(arr gjson.Result) []result.Raw {
	items := arr.Array()
	out := make([]result.Raw, len(items))
	for i, item := range items {
		out[i] = result.Raw(item.Raw)
	}
	return out
}

// rejection returns a RejectedError for {"success": false, "message": ...} envelopes.
func rejection(data []byte) error {
	if gjson.GetBytes(data, "success").Type != gjson.False {
		return nil
	}
	return &domain.RejectedError{Message: gjson.GetBytes(data, "message").String()}
}

// statusText strips the numeric code from resp.Status ("500 Internal Server Error").
func statusText(resp *http.Response) string {
	s := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if s == "" {
		return http.StatusText(resp.StatusCode)
	}
	return s
}
