package openfinance

import (
	"time"

	"github.com/goliatone/go-openfinance/core"
	"github.com/goliatone/go-openfinance/ratelimit"
)

type clientBuilder struct {
	runtimeConfig   core.Config
	logger          core.Logger
	loggerProvider  core.LoggerProvider
	httpClient      core.HTTPDoer
	metricsRecorder core.MetricsRecorder
	configProvider  core.ConfigProvider
	optionsResolver core.OptionsResolver
	tokenSource     core.TokenSource
	transport       core.Transport
	retryPolicy     *ratelimit.RetryPolicy
	now             func() time.Time
}

type Option func(*clientBuilder)

func WithLogger(logger core.Logger) Option {
	return func(b *clientBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(b *clientBuilder) {
		b.loggerProvider = provider
	}
}

// WithHTTPClient swaps the underlying HTTP client used for both the
// credential exchange and resource requests.
func WithHTTPClient(client core.HTTPDoer) Option {
	return func(b *clientBuilder) {
		b.httpClient = client
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(b *clientBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithConfigProvider(provider core.ConfigProvider) Option {
	return func(b *clientBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver core.OptionsResolver) Option {
	return func(b *clientBuilder) {
		b.optionsResolver = resolver
	}
}

// WithTokenSource replaces the default client-credentials token source, for
// callers that manage API keys themselves.
func WithTokenSource(source core.TokenSource) Option {
	return func(b *clientBuilder) {
		b.tokenSource = source
	}
}

// WithTransport replaces the whole request layer; mainly useful in tests.
func WithTransport(transport core.Transport) Option {
	return func(b *clientBuilder) {
		b.transport = transport
	}
}

func WithRetryPolicy(policy *ratelimit.RetryPolicy) Option {
	return func(b *clientBuilder) {
		b.retryPolicy = policy
	}
}

// WithNow injects the clock used for token expiry checks.
func WithNow(now func() time.Time) Option {
	return func(b *clientBuilder) {
		b.now = now
	}
}
