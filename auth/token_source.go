package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-openfinance/core"
)

const (
	defaultExchangeTimeout       = 30 * time.Second
	maxExchangeResponseBodyBytes = 1 << 20
)

type exchangeRequest struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	NonExpiring  bool   `json:"nonExpiring"`
}

type exchangeResponse struct {
	APIKey string `json:"apiKey"`
}

type TokenSourceConfig struct {
	ClientID     string
	ClientSecret string
	// AuthURL is the absolute URL of the credential exchange endpoint,
	// normally <base>/auth.
	AuthURL         string
	NonExpiring     bool
	ExchangeTimeout time.Duration
	HTTPClient      core.HTTPDoer
	Now             func() time.Time
	Logger          core.Logger
}

// ClientCredentialsTokenSource exchanges a client id/secret pair for a
// short-lived API key and caches it until the key's exp claim passes. The
// mutex is held across the exchange so concurrent callers that observe an
// expired token coalesce into a single renewal.
type ClientCredentialsTokenSource struct {
	config     TokenSourceConfig
	httpClient core.HTTPDoer

	mu        sync.Mutex
	token     string
	expiresAt time.Time
	cached    bool
}

func NewClientCredentialsTokenSource(cfg TokenSourceConfig) (*ClientCredentialsTokenSource, error) {
	clientID := strings.TrimSpace(cfg.ClientID)
	clientSecret := strings.TrimSpace(cfg.ClientSecret)
	if clientID == "" || clientSecret == "" {
		return nil, core.NewConfigError("auth: missing authorization for API communication")
	}
	authURL := strings.TrimSpace(cfg.AuthURL)
	if authURL == "" {
		return nil, core.NewConfigError("auth: exchange url is required")
	}
	timeout := cfg.ExchangeTimeout
	if timeout <= 0 {
		timeout = defaultExchangeTimeout
	}
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &ClientCredentialsTokenSource{
		config: TokenSourceConfig{
			ClientID:        clientID,
			ClientSecret:    clientSecret,
			AuthURL:         authURL,
			NonExpiring:     cfg.NonExpiring,
			ExchangeTimeout: timeout,
			Now:             now,
			Logger:          cfg.Logger,
		},
		httpClient: httpClient,
	}, nil
}

func (s *ClientCredentialsTokenSource) Token(ctx context.Context) (string, error) {
	if s == nil || s.httpClient == nil {
		return "", core.NewAuthError(nil, "auth: token source is not configured", nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached && s.validLocked() {
		return s.token, nil
	}

	token, err := s.exchange(ctx)
	if err != nil {
		return "", err
	}

	expiresAt, ok := tokenExpiry(token)
	switch {
	case ok:
		s.token = token
		s.expiresAt = expiresAt
		s.cached = true
	case s.config.NonExpiring:
		s.token = token
		s.expiresAt = time.Time{}
		s.cached = true
	default:
		// A token with no decodable expiry is never cached: the next call
		// performs a fresh exchange rather than trusting it forever.
		s.cached = false
	}
	return token, nil
}

func (s *ClientCredentialsTokenSource) Invalidate() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
	s.cached = false
}

func (s *ClientCredentialsTokenSource) validLocked() bool {
	if s.expiresAt.IsZero() {
		return s.config.NonExpiring
	}
	return s.expiresAt.After(s.config.Now().UTC())
}

func (s *ClientCredentialsTokenSource) exchange(ctx context.Context) (string, error) {
	payload, err := json.Marshal(exchangeRequest{
		ClientID:     s.config.ClientID,
		ClientSecret: s.config.ClientSecret,
		NonExpiring:  s.config.NonExpiring,
	})
	if err != nil {
		return "", core.NewAuthError(err, "auth: marshal exchange request", nil)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	requestCtx := ctx
	cancel := func() {}
	if s.config.ExchangeTimeout > 0 {
		requestCtx, cancel = context.WithTimeout(ctx, s.config.ExchangeTimeout)
	}
	defer cancel()

	httpReq, err := http.NewRequestWithContext(requestCtx, http.MethodPost, s.config.AuthURL, bytes.NewReader(payload))
	if err != nil {
		return "", core.NewAuthError(err, "auth: build exchange request", nil)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	response, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", core.NewAuthError(err, "auth: credential exchange failed", map[string]any{
			"auth_url": s.config.AuthURL,
		})
	}
	defer response.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(response.Body, maxExchangeResponseBodyBytes+1))
	if readErr != nil {
		return "", core.NewAuthError(readErr, "auth: read exchange response", nil)
	}
	if int64(len(body)) > maxExchangeResponseBodyBytes {
		return "", core.NewAuthError(nil, fmt.Sprintf("auth: exchange response exceeds %d bytes", maxExchangeResponseBodyBytes), nil)
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		s.logExchangeFailure(response.StatusCode, body)
		return "", core.NewAuthError(nil, "auth: credential exchange rejected", map[string]any{
			"status_code": response.StatusCode,
			"response":    strings.TrimSpace(string(body)),
		})
	}

	decoded := exchangeResponse{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", core.NewAuthError(err, "auth: decode exchange response", nil)
	}
	token := strings.TrimSpace(decoded.APIKey)
	if token == "" {
		return "", core.NewAuthError(nil, "auth: exchange response missing api key", nil)
	}
	return token, nil
}

func (s *ClientCredentialsTokenSource) logExchangeFailure(statusCode int, body []byte) {
	if s.config.Logger == nil {
		return
	}
	s.config.Logger.Error("credential exchange rejected",
		"status_code", statusCode,
		"response", strings.TrimSpace(string(body)),
	)
}

var _ core.TokenSource = (*ClientCredentialsTokenSource)(nil)
