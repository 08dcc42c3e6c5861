package openfinance

import "context"

// WebhookEvent is an event type a webhook can subscribe to.
type WebhookEvent string

const (
	WebhookItemCreated            WebhookEvent = "item/created"
	WebhookItemUpdated            WebhookEvent = "item/updated"
	WebhookItemError              WebhookEvent = "item/error"
	WebhookItemDeleted            WebhookEvent = "item/deleted"
	WebhookItemWaitingUserInput   WebhookEvent = "item/waiting_user_input"
	WebhookItemLoginSucceeded     WebhookEvent = "item/login_succeeded"
	WebhookConnectorStatusUpdated WebhookEvent = "connector/status_updated"
	WebhookAllEvents              WebhookEvent = "all"
)

// Webhook is a registered notification subscription.
type Webhook struct {
	ID      string            `json:"id"`
	Event   WebhookEvent      `json:"event"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers"`
}

// WebhookEventPayload is the body delivered to a webhook URL when a
// subscribed event fires.
type WebhookEventPayload struct {
	ID      string            `json:"id"`
	Event   WebhookEvent      `json:"event"`
	URL     *string           `json:"url,omitempty"`
	ItemID  *string           `json:"itemId,omitempty"`
	Error   map[string]any    `json:"error,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// UpdateWebhookFields are the mutable fields of a webhook subscription. Nil
// fields are left unchanged.
type UpdateWebhookFields struct {
	Event *WebhookEvent `json:"event,omitempty"`
	URL   *string       `json:"url,omitempty"`
}

// FetchWebhooks lists every registered webhook.
func (c *Client) FetchWebhooks(ctx context.Context) (PageResponse[Webhook], error) {
	var page PageResponse[Webhook]
	err := c.api.Get(ctx, "webhooks", nil, &page)
	return page, err
}

// FetchWebhook retrieves a single webhook by id.
func (c *Client) FetchWebhook(ctx context.Context, id string) (Webhook, error) {
	var webhook Webhook
	err := c.api.Get(ctx, "webhooks/"+id, nil, &webhook)
	return webhook, err
}

// CreateWebhook subscribes a URL to an event type.
func (c *Client) CreateWebhook(ctx context.Context, event WebhookEvent, url string) (Webhook, error) {
	var webhook Webhook
	err := c.api.Post(ctx, "webhooks", nil, map[string]any{
		"event": event,
		"url":   url,
	}, &webhook)
	return webhook, err
}

// UpdateWebhook changes the event or URL of an existing subscription.
func (c *Client) UpdateWebhook(ctx context.Context, id string, fields UpdateWebhookFields) (Webhook, error) {
	var webhook Webhook
	err := c.api.Patch(ctx, "webhooks/"+id, nil, fields, &webhook)
	return webhook, err
}

// DeleteWebhook removes a subscription.
func (c *Client) DeleteWebhook(ctx context.Context, id string) error {
	return c.api.Delete(ctx, "webhooks/"+id, nil, nil, nil)
}
