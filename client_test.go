package openfinance

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-openfinance/core"
)

type fakeCall struct {
	method string
	path   string
	query  *core.Query
	body   any
}

type fakeTransport struct {
	calls   []fakeCall
	handler func(call fakeCall, out any) error
}

func (f *fakeTransport) Request(_ context.Context, method string, path string, query *core.Query, body any, out any) error {
	call := fakeCall{method: method, path: path, query: query, body: body}
	f.calls = append(f.calls, call)
	if f.handler == nil {
		return nil
	}
	return f.handler(call, out)
}

func (f *fakeTransport) Get(ctx context.Context, path string, query *core.Query, out any) error {
	return f.Request(ctx, "GET", path, query, nil, out)
}

func (f *fakeTransport) Post(ctx context.Context, path string, query *core.Query, body any, out any) error {
	return f.Request(ctx, "POST", path, query, body, out)
}

func (f *fakeTransport) Put(ctx context.Context, path string, query *core.Query, body any, out any) error {
	return f.Request(ctx, "PUT", path, query, body, out)
}

func (f *fakeTransport) Patch(ctx context.Context, path string, query *core.Query, body any, out any) error {
	return f.Request(ctx, "PATCH", path, query, body, out)
}

func (f *fakeTransport) Delete(ctx context.Context, path string, query *core.Query, body any, out any) error {
	return f.Request(ctx, "DELETE", path, query, body, out)
}

var _ core.Transport = (*fakeTransport)(nil)

func newFakeClient(t *testing.T, fake *fakeTransport) *Client {
	t.Helper()
	client, err := New(core.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}, WithTransport(fake))
	if err != nil {
		t.Fatalf("build client: %v", err)
	}
	return client
}

func TestNew_MissingCredentials(t *testing.T) {
	_, err := New(core.Config{})
	if err == nil {
		t.Fatal("expected a configuration error")
	}
	if !strings.Contains(err.Error(), "missing authorization for API communication") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNew_SubClientsShareTransport(t *testing.T) {
	fake := &fakeTransport{}
	client := newFakeClient(t, fake)

	if client.Payments() == nil || client.Acquirer() == nil {
		t.Fatal("expected payments and acquirer sub-clients")
	}
	if _, err := client.FetchCategories(context.Background()); err != nil {
		t.Fatalf("categories: %v", err)
	}
	if _, err := client.Payments().FetchPaymentRequests(context.Background(), nil); err != nil {
		t.Fatalf("payment requests: %v", err)
	}
	if _, err := client.Acquirer().FetchSales(context.Background(), "item-1"); err != nil {
		t.Fatalf("sales: %v", err)
	}
	if len(fake.calls) != 3 {
		t.Fatalf("expected all calls through the shared transport, got %d", len(fake.calls))
	}
	if fake.calls[1].path != "payments/requests" || fake.calls[2].path != "acquirer-sales" {
		t.Fatalf("unexpected paths: %+v", fake.calls)
	}
}

func TestNew_ResolvedConfigFillsDefaults(t *testing.T) {
	client := newFakeClient(t, &fakeTransport{})
	cfg := client.Config()
	if cfg.BaseURL != core.DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", cfg.BaseURL)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Fatalf("expected default retry attempts, got %d", cfg.Retry.MaxAttempts)
	}
}

func TestClient_ResourcePathsAndQueries(t *testing.T) {
	fake := &fakeTransport{}
	client := newFakeClient(t, fake)
	ctx := context.Background()

	if _, err := client.FetchConnector(ctx, 201); err != nil {
		t.Fatalf("connector: %v", err)
	}
	accountType := AccountBank
	if _, err := client.FetchAccounts(ctx, "item-1", &accountType); err != nil {
		t.Fatalf("accounts: %v", err)
	}
	if err := client.DeleteItem(ctx, "item-1"); err != nil {
		t.Fatalf("delete item: %v", err)
	}

	if fake.calls[0].path != "connectors/201" || fake.calls[0].method != "GET" {
		t.Fatalf("unexpected connector call: %+v", fake.calls[0])
	}
	accountsQuery := fake.calls[1].query.Params()
	if len(accountsQuery) != 2 || accountsQuery[0].Key != "itemId" || accountsQuery[1].Key != "type" {
		t.Fatalf("unexpected accounts query: %+v", accountsQuery)
	}
	if fake.calls[2].method != "DELETE" || fake.calls[2].path != "items/item-1" {
		t.Fatalf("unexpected delete call: %+v", fake.calls[2])
	}
}

func TestClient_CreateConnectToken(t *testing.T) {
	fake := &fakeTransport{
		handler: func(call fakeCall, out any) error {
			decoded, ok := out.(*connectTokenResponse)
			if !ok {
				t.Fatalf("unexpected out type %T", out)
			}
			decoded.AccessToken = "connect-token"
			return nil
		},
	}
	client := newFakeClient(t, fake)

	token, err := client.CreateConnectToken(context.Background(), "item-1", &ConnectTokenOptions{
		WebhookURL: "https://example.test/hook",
	})
	if err != nil {
		t.Fatalf("connect token: %v", err)
	}
	if token != "connect-token" {
		t.Fatalf("unexpected token %q", token)
	}
	payload, ok := fake.calls[0].body.(createConnectTokenRequest)
	if !ok || payload.ItemID != "item-1" || payload.Options.WebhookURL != "https://example.test/hook" {
		t.Fatalf("unexpected payload: %+v", fake.calls[0].body)
	}
}
