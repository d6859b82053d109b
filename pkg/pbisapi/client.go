// Package pbisapi is the HTTP client for the PBIS data API. Every method maps
// one upstream endpoint; failures are normalised into pkg/errors values.
package pbisapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/pbis-gateway/pkg/config"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
	"github.com/noah-isme/pbis-gateway/pkg/middleware/requestid"
)

const (
	apiPrefix     = "/api/v1"
	maxErrorBody  = 4 << 10
	userAgent     = "pbis-gateway"
	contentTypeJS = "application/json"
)

// Observer receives one sample per upstream call.
type Observer interface {
	ObserveUpstream(endpoint string, status int, duration time.Duration)
}

// Client talks to the PBIS API.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	observer Observer
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient swaps the transport, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithObserver records call latency and status.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// New builds a client for cfg.BaseURL. A zero timeout leaves requests bounded
// only by the caller's context.
func New(cfg config.UpstreamConfig, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = config.DefaultUpstreamURL
	}
	c := &Client{
		baseURL: base,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the upstream root the client is bound to.
func (c *Client) BaseURL() string { return c.baseURL }

// Do performs a JSON request against path (relative to /api/v1). body is
// encoded when non-nil; out is decoded when non-nil and the response has content.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := apiPrefix + path
	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode upstream request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build upstream request")
	}
	req.Header.Set("Accept", contentTypeJS)
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJS)
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.HeaderKey, id)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.observe(method, path, 0, duration)
		c.logger.Warn("upstream request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
		if errors.Is(err, context.Canceled) {
			return appErrors.Wrap(err, appErrors.ErrUpstream.Code, http.StatusServiceUnavailable, "request cancelled")
		}
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}
	defer resp.Body.Close() //nolint:errcheck
	c.observe(method, path, resp.StatusCode, duration)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp)
		c.logger.Warn("upstream returned error",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", apiErr.Detail),
		)
		return apiErr.normalise()
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		c.logger.Warn("upstream response undecodable", zap.String("endpoint", endpoint), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "invalid upstream response")
	}
	return nil
}

func (c *Client) observe(method, path string, status int, d time.Duration) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveUpstream(method+" "+templatePath(path), status, d)
}

// templatePath collapses path segments that carry identifiers so metric
// cardinality stays bounded.
func templatePath(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if i > 0 && isIdentifier(parts[i-1], p) {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}

func isIdentifier(prev, seg string) bool {
	switch prev {
	case "users", "holidays", "board", "students":
		return seg != "" && seg != "tier-update"
	}
	return false
}

// APIError is a non-2xx upstream reply.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pbis api status %d: %s", e.Status, e.Detail)
}

func (e *APIError) normalise() error {
	detail := e.Detail
	switch {
	case e.Status == http.StatusNotFound:
		if detail == "" {
			detail = appErrors.ErrNotFound.Message
		}
		return appErrors.Wrap(e, appErrors.ErrNotFound.Code, http.StatusNotFound, detail)
	case e.Status == http.StatusUnauthorized:
		if detail == "" {
			detail = appErrors.ErrInvalidCredentials.Message
		}
		return appErrors.Wrap(e, appErrors.ErrInvalidCredentials.Code, http.StatusUnauthorized, detail)
	case e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity:
		if detail == "" {
			detail = appErrors.ErrValidation.Message
		}
		return appErrors.Wrap(e, appErrors.ErrValidation.Code, http.StatusBadRequest, detail)
	default:
		if detail == "" {
			detail = appErrors.ErrUpstream.Message
		}
		return appErrors.Wrap(e, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, detail)
	}
}

// decodeError reads a FastAPI style {"detail": ...} body. Validation errors
// carry a list of objects with a msg field.
func decodeError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		apiErr.Detail = strings.TrimSpace(string(raw))
		return apiErr
	}
	if body.Error != "" {
		apiErr.Detail = body.Error
	}

	var text string
	if err := json.Unmarshal(body.Detail, &text); err == nil {
		apiErr.Detail = text
		return apiErr
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		if len(msgs) > 0 {
			apiErr.Detail = strings.Join(msgs, "; ")
		}
	}
	return apiErr
}

func pathEscape(segment string) string {
	return url.PathEscape(segment)
}

// Ping checks the upstream /health endpoint, which lives outside /api/v1.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build health request")
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(http.MethodGet, "/health", 0, time.Since(start))
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, http.StatusServiceUnavailable, "pbis api unreachable")
	}
	defer resp.Body.Close() //nolint:errcheck
	_, _ = io.Copy(io.Discard, resp.Body)
	c.observe(http.MethodGet, "/health", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return appErrors.New(appErrors.ErrUpstream.Code, http.StatusServiceUnavailable, fmt.Sprintf("pbis api health returned %d", resp.StatusCode))
	}
	return nil
}
