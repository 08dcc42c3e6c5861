package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/golang-jwt/jwt/v5"

	"github.com/goliatone/go-openfinance/core"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{}
	if !expiresAt.IsZero() {
		claims["exp"] = expiresAt.Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func exchangeServer(t *testing.T, calls *int, token func() string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth" {
			t.Fatalf("unexpected exchange request %s %s", r.Method, r.URL.Path)
		}
		payload := map[string]any{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode exchange body: %v", err)
		}
		if payload["clientId"] != "client-id" || payload["clientSecret"] != "client-secret" {
			t.Fatalf("unexpected exchange payload: %v", payload)
		}
		apiKey := token()
		*calls++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"apiKey": apiKey})
	}))
}

func TestNewClientCredentialsTokenSource_MissingCredentials(t *testing.T) {
	_, err := NewClientCredentialsTokenSource(TokenSourceConfig{
		ClientID: "client-id",
		AuthURL:  "https://example.test/auth",
	})
	if err == nil {
		t.Fatal("expected configuration error")
	}
	var svcErr *goerrors.Error
	if !goerrors.As(err, &svcErr) {
		t.Fatalf("expected *goerrors.Error, got %T", err)
	}
	if svcErr.TextCode != core.ClientErrorBadConfig {
		t.Fatalf("expected text code %q, got %q", core.ClientErrorBadConfig, svcErr.TextCode)
	}
}

func TestTokenSource_ReusesCachedToken(t *testing.T) {
	calls := 0
	token := signedToken(t, time.Now().Add(2*time.Hour))
	server := exchangeServer(t, &calls, func() string { return token })
	defer server.Close()

	source, err := NewClientCredentialsTokenSource(TokenSourceConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		AuthURL:      server.URL + "/auth",
	})
	if err != nil {
		t.Fatalf("build token source: %v", err)
	}

	first, err := source.Token(context.Background())
	if err != nil {
		t.Fatalf("first token: %v", err)
	}
	second, err := source.Token(context.Background())
	if err != nil {
		t.Fatalf("second token: %v", err)
	}
	if first != token || second != token {
		t.Fatal("expected the signed token on both calls")
	}
	if calls != 1 {
		t.Fatalf("expected one exchange, got %d", calls)
	}
}

func TestTokenSource_RenewsExpiredToken(t *testing.T) {
	calls := 0
	expired := signedToken(t, time.Now().Add(time.Minute))
	fresh := signedToken(t, time.Now().Add(2*time.Hour))
	server := exchangeServer(t, &calls, func() string {
		if calls == 0 {
			return expired
		}
		return fresh
	})
	defer server.Close()

	now := time.Now()
	source, err := NewClientCredentialsTokenSource(TokenSourceConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		AuthURL:      server.URL + "/auth",
		Now:          func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("build token source: %v", err)
	}

	first, err := source.Token(context.Background())
	if err != nil {
		t.Fatalf("first token: %v", err)
	}
	if first != expired {
		t.Fatal("expected the first exchange token")
	}

	// advance the clock past the first token's expiry
	now = now.Add(time.Hour)

	second, err := source.Token(context.Background())
	if err != nil {
		t.Fatalf("second token: %v", err)
	}
	if second != fresh {
		t.Fatal("expected a renewed token after expiry")
	}
	if calls != 2 {
		t.Fatalf("expected two exchanges, got %d", calls)
	}
}

func TestTokenSource_TokenWithoutExpiryNotCached(t *testing.T) {
	calls := 0
	server := exchangeServer(t, &calls, func() string { return "opaque-token" })
	defer server.Close()

	source, err := NewClientCredentialsTokenSource(TokenSourceConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		AuthURL:      server.URL + "/auth",
	})
	if err != nil {
		t.Fatalf("build token source: %v", err)
	}

	for i := 0; i < 2; i++ {
		token, err := source.Token(context.Background())
		if err != nil {
			t.Fatalf("token call %d: %v", i, err)
		}
		if token != "opaque-token" {
			t.Fatalf("unexpected token %q", token)
		}
	}
	if calls != 2 {
		t.Fatalf("expected an exchange per call, got %d", calls)
	}
}

func TestTokenSource_NonExpiringTokenCached(t *testing.T) {
	calls := 0
	server := exchangeServer(t, &calls, func() string { return "opaque-token" })
	defer server.Close()

	source, err := NewClientCredentialsTokenSource(TokenSourceConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		AuthURL:      server.URL + "/auth",
		NonExpiring:  true,
	})
	if err != nil {
		t.Fatalf("build token source: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := source.Token(context.Background()); err != nil {
			t.Fatalf("token call %d: %v", i, err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected a single exchange, got %d", calls)
	}
}

func TestTokenSource_ExchangeRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}))
	defer server.Close()

	source, err := NewClientCredentialsTokenSource(TokenSourceConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		AuthURL:      server.URL + "/auth",
	})
	if err != nil {
		t.Fatalf("build token source: %v", err)
	}

	_, err = source.Token(context.Background())
	if err == nil {
		t.Fatal("expected an authentication error")
	}
	var svcErr *goerrors.Error
	if !goerrors.As(err, &svcErr) {
		t.Fatalf("expected *goerrors.Error, got %T", err)
	}
	if svcErr.TextCode != core.ClientErrorAuthFailed {
		t.Fatalf("expected text code %q, got %q", core.ClientErrorAuthFailed, svcErr.TextCode)
	}
	if svcErr.Category != goerrors.CategoryAuth {
		t.Fatalf("expected auth category, got %v", svcErr.Category)
	}
}

func TestTokenSource_InvalidateForcesExchange(t *testing.T) {
	calls := 0
	token := signedToken(t, time.Now().Add(time.Hour))
	server := exchangeServer(t, &calls, func() string { return token })
	defer server.Close()

	source, err := NewClientCredentialsTokenSource(TokenSourceConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		AuthURL:      server.URL + "/auth",
	})
	if err != nil {
		t.Fatalf("build token source: %v", err)
	}

	if _, err := source.Token(context.Background()); err != nil {
		t.Fatalf("first token: %v", err)
	}
	source.Invalidate()
	if _, err := source.Token(context.Background()); err != nil {
		t.Fatalf("second token: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected two exchanges after invalidate, got %d", calls)
	}
}

func TestTokenExpiry_DecodesExpClaim(t *testing.T) {
	expiresAt := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	token := signedToken(t, expiresAt)
	decoded, ok := tokenExpiry(token)
	if !ok {
		t.Fatal("expected a decodable expiry")
	}
	if !decoded.Equal(expiresAt.UTC()) {
		t.Fatalf("expected %v, got %v", expiresAt.UTC(), decoded)
	}
	if _, ok := tokenExpiry("not-a-jwt"); ok {
		t.Fatal("expected no expiry for a malformed token")
	}
}
