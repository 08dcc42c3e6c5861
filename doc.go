// Package openfinance is a typed client for the Open Finance aggregation
// API. The top-level Client exposes the core banking data resources
// (connectors, items, accounts, transactions, investments, identity,
// categories, webhooks); payment initiation and acquirer operations live on
// the PaymentsClient and AcquirerClient, reachable from the aggregate client
// or constructible on their own.
//
// All clients share one transport that owns credential exchange, token
// renewal, 429 retry, and response decoding; resource methods stay thin.
package openfinance
