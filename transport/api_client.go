// Package transport is the shared request layer: it resolves a valid token,
// builds the request URL, dispatches with bounded retry on 429, and decodes
// the JSON response.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-openfinance/core"
	"github.com/goliatone/go-openfinance/ratelimit"
)

const (
	defaultClientTimeout     = 30 * time.Second
	defaultResponseBodyLimit = 10 << 20 // 10 MiB
	headerAPIKey             = "X-API-KEY"
	headerRequestID          = "X-Request-Id"
	headerContentType        = "Content-Type"
	contentTypeJSON          = "application/json"
)

type APIClientConfig struct {
	BaseURL              string
	TokenSource          core.TokenSource
	HTTPClient           core.HTTPDoer
	Retry                *ratelimit.RetryPolicy
	Logger               core.Logger
	Metrics              core.MetricsRecorder
	MaxResponseBodyBytes int64
	// NewRequestID stamps each outbound call; defaults to uuid.NewString.
	NewRequestID func() string
}

type APIClient struct {
	baseURL      string
	tokens       core.TokenSource
	httpClient   core.HTTPDoer
	retry        *ratelimit.RetryPolicy
	logger       core.Logger
	metrics      core.MetricsRecorder
	maxBodyBytes int64
	newRequestID func() string
}

func NewAPIClient(cfg APIClientConfig) (*APIClient, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, core.NewConfigError("transport: base url is required")
	}
	if cfg.TokenSource == nil {
		return nil, core.NewConfigError("transport: token source is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultClientTimeout}
	}
	retry := cfg.Retry
	if retry == nil {
		retry = ratelimit.NewRetryPolicy()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = core.NopMetricsRecorder{}
	}
	maxBodyBytes := cfg.MaxResponseBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultResponseBodyLimit
	}
	newRequestID := cfg.NewRequestID
	if newRequestID == nil {
		newRequestID = uuid.NewString
	}
	return &APIClient{
		baseURL:      baseURL,
		tokens:       cfg.TokenSource,
		httpClient:   httpClient,
		retry:        retry,
		logger:       cfg.Logger,
		metrics:      metrics,
		maxBodyBytes: maxBodyBytes,
		newRequestID: newRequestID,
	}, nil
}

func (c *APIClient) Get(ctx context.Context, path string, query *core.Query, out any) error {
	return c.Request(ctx, http.MethodGet, path, query, nil, out)
}

func (c *APIClient) Post(ctx context.Context, path string, query *core.Query, body any, out any) error {
	return c.Request(ctx, http.MethodPost, path, query, body, out)
}

func (c *APIClient) Put(ctx context.Context, path string, query *core.Query, body any, out any) error {
	return c.Request(ctx, http.MethodPut, path, query, body, out)
}

func (c *APIClient) Patch(ctx context.Context, path string, query *core.Query, body any, out any) error {
	return c.Request(ctx, http.MethodPatch, path, query, body, out)
}

func (c *APIClient) Delete(ctx context.Context, path string, query *core.Query, body any, out any) error {
	return c.Request(ctx, http.MethodDelete, path, query, body, out)
}

func (c *APIClient) Request(ctx context.Context, method string, path string, query *core.Query, body any, out any) error {
	if c == nil || c.httpClient == nil {
		return core.NewConfigError("transport: api client is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	method = strings.TrimSpace(strings.ToUpper(method))
	if method == "" {
		method = http.MethodGet
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	requestURL := c.baseURL + "/" + strings.TrimLeft(strings.TrimSpace(path), "/") + encodeQuery(query)
	payload, err := encodeJSONBody(body)
	if err != nil {
		return err
	}

	startedAt := time.Now().UTC()
	status, headers, raw, attempts, err := c.dispatch(ctx, method, requestURL, token, payload)
	c.observe(ctx, method, path, status, startedAt, err)
	if err != nil {
		return err
	}

	switch {
	case status >= http.StatusOK && status < http.StatusMultipleChoices:
		if decodeErr := decodeResponse(raw, out); decodeErr != nil {
			c.logError("response decode failed", "method", method, "path", path, "error", decodeErr.Error())
			return decodeErr
		}
		return nil
	case status == http.StatusTooManyRequests:
		return &core.RateLimitError{
			Attempts:   attempts,
			RetryAfter: c.retry.Delay(headers),
			Body:       decodeErrorBody(raw),
		}
	default:
		return &core.RemoteError{StatusCode: status, Body: decodeErrorBody(raw)}
	}
}

// dispatch performs the HTTP exchange, retrying on 429 up to the policy
// bound. It returns the final status, headers, and body; err is non-nil only
// for transport-level failures (request build, network, body read).
func (c *APIClient) dispatch(
	ctx context.Context,
	method string,
	requestURL string,
	token string,
	payload []byte,
) (int, http.Header, []byte, int, error) {
	attempt := 0
	for {
		attempt++
		status, headers, raw, err := c.roundTrip(ctx, method, requestURL, token, payload)
		if err != nil {
			return 0, nil, nil, attempt, err
		}
		if !c.retry.ShouldRetry(status, attempt) {
			return status, headers, raw, attempt, nil
		}
		delay := c.retry.Delay(headers)
		c.logInfo("rate limited, retrying",
			"method", method,
			"attempt", attempt,
			"delay_ms", delay.Milliseconds(),
		)
		if waitErr := c.retry.Wait(ctx, delay); waitErr != nil {
			return 0, nil, nil, attempt, remoteWrapError(waitErr, "transport: retry wait interrupted", map[string]any{
				"method":  method,
				"attempt": attempt,
			})
		}
	}
}

func (c *APIClient) roundTrip(
	ctx context.Context,
	method string,
	requestURL string,
	token string,
	payload []byte,
) (int, http.Header, []byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return 0, nil, nil, remoteWrapError(err, "transport: create http request", map[string]any{
			"method": method,
			"url":    requestURL,
		})
	}
	httpReq.Header.Set(headerAPIKey, token)
	httpReq.Header.Set("Accept", contentTypeJSON)
	httpReq.Header.Set(headerRequestID, c.newRequestID())
	if payload != nil {
		httpReq.Header.Set(headerContentType, contentTypeJSON)
	}

	httpRes, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logError("http request failed", "method", method, "url", requestURL, "error", err.Error())
		return 0, nil, nil, remoteWrapError(err, "transport: execute http request", map[string]any{
			"method": method,
			"url":    requestURL,
		})
	}
	defer httpRes.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpRes.Body, c.maxBodyBytes+1))
	if err != nil {
		return 0, nil, nil, remoteWrapError(err, "transport: read response body", map[string]any{
			"status_code": httpRes.StatusCode,
		})
	}
	if int64(len(raw)) > c.maxBodyBytes {
		return 0, nil, nil, remoteError(
			fmt.Sprintf("transport: response body exceeds limit of %d bytes", c.maxBodyBytes),
			map[string]any{"status_code": httpRes.StatusCode},
		)
	}
	return httpRes.StatusCode, httpRes.Header, raw, nil
}

func (c *APIClient) observe(ctx context.Context, method string, path string, status int, startedAt time.Time, err error) {
	outcome := "success"
	if err != nil || status >= http.StatusBadRequest {
		outcome = "failure"
	}
	tags := map[string]string{
		"method": method,
		"status": outcome,
	}
	c.metrics.IncCounter(ctx, "openfinance.request.total", 1, tags)
	c.metrics.ObserveHistogram(ctx, "openfinance.request.duration_ms", float64(time.Since(startedAt).Milliseconds()), tags)
}

func (c *APIClient) logInfo(message string, args ...any) {
	if c == nil || c.logger == nil {
		return
	}
	c.logger.Info(message, args...)
}

func (c *APIClient) logError(message string, args ...any) {
	if c == nil || c.logger == nil {
		return
	}
	c.logger.Error(message, args...)
}

var _ core.Transport = (*APIClient)(nil)
