package openfinance

import (
	"context"
	"time"
)

// ItemStatus is the sync state of a connection: UPDATED, UPDATING,
// WAITING_USER_INPUT, LOGIN_ERROR or OUTDATED.
type ItemStatus string

const (
	ItemUpdated          ItemStatus = "UPDATED"
	ItemUpdating         ItemStatus = "UPDATING"
	ItemWaitingUserInput ItemStatus = "WAITING_USER_INPUT"
	ItemLoginError       ItemStatus = "LOGIN_ERROR"
	ItemOutdated         ItemStatus = "OUTDATED"
)

// ExecutionStatus is the fine-grained state of the current or last item
// execution, e.g. LOGIN_IN_PROGRESS, TRANSACTIONS_IN_PROGRESS, SUCCESS,
// PARTIAL_SUCCESS or one of the error codes.
type ExecutionStatus string

// ExecutionErrorCode identifies why an execution failed, e.g.
// INVALID_CREDENTIALS, SITE_NOT_AVAILABLE, USER_INPUT_TIMEOUT.
type ExecutionErrorCode string

type ExecutionErrorMetadata struct {
	ProviderID  *string           `json:"providerId,omitempty"`
	HasMFA      *bool             `json:"hasMFA,omitempty"`
	Credentials map[string]string `json:"credentials,omitempty"`
}

type ExecutionError struct {
	Code            ExecutionErrorCode      `json:"code"`
	Message         string                  `json:"message"`
	ProviderMessage *string                 `json:"providerMessage,omitempty"`
	Metadata        *ExecutionErrorMetadata `json:"metadata,omitempty"`
	Attributes      map[string]string       `json:"attributes,omitempty"`
}

type ItemProductState struct {
	IsUpdated     bool       `json:"isUpdated"`
	LastUpdatedAt *time.Time `json:"lastUpdatedAt"`
}

// ItemProductsStatusDetail reports, per product, whether the last execution
// collected it. Products that were never requested are nil.
type ItemProductsStatusDetail struct {
	Accounts     *ItemProductState `json:"accounts"`
	CreditCards  *ItemProductState `json:"creditCards"`
	Transactions *ItemProductState `json:"transactions"`
	Investments  *ItemProductState `json:"investments"`
	Identity     *ItemProductState `json:"identity"`
	PaymentData  *ItemProductState `json:"paymentData"`
}

// Item is a connection between a user and an institution.
type Item struct {
	ID              string                    `json:"id"`
	Connector       Connector                 `json:"connector"`
	Status          ItemStatus                `json:"status"`
	StatusDetail    *ItemProductsStatusDetail `json:"statusDetail"`
	Error           *ExecutionError           `json:"error"`
	ExecutionStatus ExecutionStatus           `json:"executionStatus"`
	CreatedAt       time.Time                 `json:"createdAt"`
	UpdatedAt       time.Time                 `json:"updatedAt"`
	LastUpdatedAt   *time.Time                `json:"lastUpdatedAt"`
	Parameter       *ConnectorCredential      `json:"parameter"`
	WebhookURL      *string                   `json:"webhookUrl"`
	ClientUserID    *string                   `json:"clientUserId"`
}

// CreateItemOptions are the optional settings accepted when opening a
// connection.
type CreateItemOptions struct {
	WebhookURL   string `json:"webhookUrl,omitempty"`
	ClientUserID string `json:"clientUserId,omitempty"`
}

type createItemRequest struct {
	ConnectorID  int               `json:"connectorId"`
	Parameters   map[string]string `json:"parameters"`
	WebhookURL   string            `json:"webhookUrl,omitempty"`
	ClientUserID string            `json:"clientUserId,omitempty"`
}

type updateItemRequest struct {
	ID         string            `json:"id"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// CreateItem opens a connection against a connector with the given
// credentials.
func (c *Client) CreateItem(ctx context.Context, connectorID int, parameters map[string]string, options *CreateItemOptions) (Item, error) {
	payload := createItemRequest{
		ConnectorID: connectorID,
		Parameters:  parameters,
	}
	if options != nil {
		payload.WebhookURL = options.WebhookURL
		payload.ClientUserID = options.ClientUserID
	}
	var item Item
	err := c.api.Post(ctx, "items", nil, payload, &item)
	return item, err
}

// FetchItem retrieves a single connection by id.
func (c *Client) FetchItem(ctx context.Context, id string) (Item, error) {
	var item Item
	err := c.api.Get(ctx, "items/"+id, nil, &item)
	return item, err
}

// UpdateItem triggers a sync, optionally submitting refreshed credentials.
func (c *Client) UpdateItem(ctx context.Context, id string, parameters map[string]string) (Item, error) {
	var item Item
	err := c.api.Patch(ctx, "items/"+id, nil, updateItemRequest{ID: id, Parameters: parameters}, &item)
	return item, err
}

// UpdateItemMFA submits the MFA parameter an execution is waiting on.
func (c *Client) UpdateItemMFA(ctx context.Context, id string, parameters map[string]string) (Item, error) {
	var item Item
	err := c.api.Post(ctx, "items/"+id+"/mfa", nil, parameters, &item)
	return item, err
}

// DeleteItem removes a connection and every resource collected through it.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.api.Delete(ctx, "items/"+id, nil, nil, nil)
}
