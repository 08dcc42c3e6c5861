package openfinance

import "context"

// ConnectTokenOptions are the optional settings attached to a connect
// token.
type ConnectTokenOptions struct {
	WebhookURL       string `json:"webhookUrl,omitempty"`
	ClientUserID     string `json:"clientUserId,omitempty"`
	OAuthRedirectURI string `json:"oauthRedirectUri,omitempty"`
	AvoidDuplicates  bool   `json:"avoidDuplicates,omitempty"`
}

type createConnectTokenRequest struct {
	ItemID  string               `json:"itemId,omitempty"`
	Options *ConnectTokenOptions `json:"options,omitempty"`
}

type connectTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// CreateConnectToken issues a restricted access token that a frontend can
// use to connect or update items. An empty itemID requests a token for new
// connections.
func (c *Client) CreateConnectToken(ctx context.Context, itemID string, options *ConnectTokenOptions) (string, error) {
	var decoded connectTokenResponse
	err := c.api.Post(ctx, "connect_token", nil, createConnectTokenRequest{
		ItemID:  itemID,
		Options: options,
	}, &decoded)
	if err != nil {
		return "", err
	}
	return decoded.AccessToken, nil
}
