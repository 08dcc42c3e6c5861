package openfinance

import (
	"context"
	"net/http"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-openfinance/auth"
	"github.com/goliatone/go-openfinance/core"
	"github.com/goliatone/go-openfinance/ratelimit"
	"github.com/goliatone/go-openfinance/transport"
)

// Client is the aggregate API client. Resource methods for the core banking
// data live directly on it; payment initiation and acquirer operations hang
// off the Payments and Acquirer sub-clients, which share the same transport
// and token cache.
type Client struct {
	config   core.Config
	api      core.Transport
	logger   core.Logger
	payments *PaymentsClient
	acquirer *AcquirerClient
}

// New builds a Client from the given configuration. Credentials are
// validated here; the first credential exchange happens lazily on the first
// request.
func New(cfg core.Config, opts ...Option) (*Client, error) {
	builder := clientBuilder{runtimeConfig: cfg}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("openfinance", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("openfinance"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.metricsRecorder == nil {
		builder.metricsRecorder = core.NopMetricsRecorder{}
	}
	if builder.configProvider == nil {
		builder.configProvider = core.NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = core.GoOptionsResolver{}
	}

	defaults := core.DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, core.NewConfigError("openfinance: load configuration: " + err.Error())
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, core.NewConfigError("openfinance: " + err.Error())
	}

	httpClient := builder.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: finalConfig.RequestTimeout}
	}

	tokens := builder.tokenSource
	if tokens == nil {
		tokens, err = auth.NewClientCredentialsTokenSource(auth.TokenSourceConfig{
			ClientID:        finalConfig.ClientID,
			ClientSecret:    finalConfig.ClientSecret,
			AuthURL:         finalConfig.BaseURL + "/auth",
			NonExpiring:     finalConfig.NonExpiringToken,
			ExchangeTimeout: finalConfig.RequestTimeout,
			HTTPClient:      httpClient,
			Now:             builder.now,
			Logger:          logger,
		})
		if err != nil {
			return nil, err
		}
	}

	api := builder.transport
	if api == nil {
		retry := builder.retryPolicy
		if retry == nil {
			retry = ratelimit.NewRetryPolicy()
			retry.MaxAttempts = finalConfig.Retry.MaxAttempts
			retry.DefaultDelay = finalConfig.Retry.DefaultDelay
		}
		api, err = transport.NewAPIClient(transport.APIClientConfig{
			BaseURL:     finalConfig.BaseURL,
			TokenSource: tokens,
			HTTPClient:  httpClient,
			Retry:       retry,
			Logger:      logger,
			Metrics:     builder.metricsRecorder,
		})
		if err != nil {
			return nil, err
		}
	}

	client := &Client{
		config: finalConfig,
		api:    api,
		logger: logger,
	}
	client.payments = &PaymentsClient{api: api}
	client.acquirer = &AcquirerClient{api: api}
	return client, nil
}

// Payments exposes the payment initiation resources.
func (c *Client) Payments() *PaymentsClient {
	return c.payments
}

// Acquirer exposes the acquirer operation resources.
func (c *Client) Acquirer() *AcquirerClient {
	return c.acquirer
}

// Config returns the resolved configuration the client runs with.
func (c *Client) Config() core.Config {
	return c.config
}

// NewPaymentsClient builds a standalone payments client with its own
// transport and token cache.
func NewPaymentsClient(cfg core.Config, opts ...Option) (*PaymentsClient, error) {
	client, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return client.Payments(), nil
}

// NewAcquirerClient builds a standalone acquirer client with its own
// transport and token cache.
func NewAcquirerClient(cfg core.Config, opts ...Option) (*AcquirerClient, error) {
	client, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return client.Acquirer(), nil
}
