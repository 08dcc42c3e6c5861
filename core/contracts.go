package core

import (
	"context"
	"net/http"

	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource yields a currently valid API key, performing the credential
// exchange lazily and renewing once the cached token expires.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	// Invalidate drops any cached token so the next Token call performs a
	// fresh exchange.
	Invalidate()
}

// Transport is the shared request layer every resource client calls into.
// The out argument receives the decoded response body: a pointer to a typed
// value, a *any for reviver-based decoding, or nil to discard the body.
type Transport interface {
	Request(ctx context.Context, method string, path string, query *Query, body any, out any) error
	Get(ctx context.Context, path string, query *Query, out any) error
	Post(ctx context.Context, path string, query *Query, body any, out any) error
	Put(ctx context.Context, path string, query *Query, body any, out any) error
	Patch(ctx context.Context, path string, query *Query, body any, out any) error
	Delete(ctx context.Context, path string, query *Query, body any, out any) error
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}
