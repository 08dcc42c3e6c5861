package openfinance

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-openfinance/core"
)

// ConnectorType classifies the institution behind a connector.
type ConnectorType string

const (
	ConnectorPersonalBank      ConnectorType = "PERSONAL_BANK"
	ConnectorBusinessBank      ConnectorType = "BUSINESS_BANK"
	ConnectorInvoice           ConnectorType = "INVOICE"
	ConnectorInvestment        ConnectorType = "INVESTMENT"
	ConnectorTelecommunication ConnectorType = "TELECOMMUNICATION"
	ConnectorDigitalEconomy    ConnectorType = "DIGITAL_ECONOMY"
	ConnectorPaymentAccount    ConnectorType = "PAYMENT_ACCOUNT"
	ConnectorOther             ConnectorType = "OTHER"
)

// ProductType is a data product an institution can expose.
type ProductType string

const (
	ProductAccounts                ProductType = "ACCOUNTS"
	ProductCreditCards             ProductType = "CREDIT_CARDS"
	ProductTransactions            ProductType = "TRANSACTIONS"
	ProductPaymentData             ProductType = "PAYMENT_DATA"
	ProductInvestments             ProductType = "INVESTMENTS"
	ProductInvestmentsTransactions ProductType = "INVESTMENTS_TRANSACTIONS"
	ProductIdentity                ProductType = "IDENTITY"
	ProductBrokerageNote           ProductType = "BROKERAGE_NOTE"
	ProductMoveSecurity            ProductType = "MOVE_SECURITY"
	ProductLoans                   ProductType = "LOANS"
)

// CredentialType drives the form input a credential should be collected
// with: "number", "password", "text", "image", "select", "ethaddress" or
// "hcaptcha".
type CredentialType string

type CredentialSelectOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ConnectorCredential describes one parameter the institution requires to
// open a connection.
type ConnectorCredential struct {
	Label             string                   `json:"label"`
	Name              string                   `json:"name"`
	Type              CredentialType           `json:"type,omitempty"`
	MFA               bool                     `json:"mfa,omitempty"`
	Data              *string                  `json:"data,omitempty"`
	AssistiveText     *string                  `json:"assistiveText,omitempty"`
	Options           []CredentialSelectOption `json:"options,omitempty"`
	Validation        *string                  `json:"validation,omitempty"`
	ValidationMessage *string                  `json:"validationMessage,omitempty"`
	Placeholder       *string                  `json:"placeholder,omitempty"`
	Optional          bool                     `json:"optional,omitempty"`
	Instructions      *string                  `json:"instructions,omitempty"`
	ExpiresAt         *time.Time               `json:"expiresAt,omitempty"`
}

type ConnectorHealthDetails struct {
	ConnectionRateLast6Hours *float64 `json:"connectionRateLast6Hours"`
	ConnectionsLast6Hours    *int     `json:"connectionsLast6Hours"`
	Error                    *string  `json:"error,omitempty"`
}

// ConnectorHealth is the current operational state of a connector: status
// ONLINE, OFFLINE or UNSTABLE, stage BETA while newly released.
type ConnectorHealth struct {
	Status  string                  `json:"status"`
	Stage   *string                 `json:"stage"`
	Details *ConnectorHealthDetails `json:"details,omitempty"`
}

// Connector is a financial institution integration.
type Connector struct {
	ID                        int                   `json:"id"`
	Name                      string                `json:"name"`
	InstitutionURL            string                `json:"institutionUrl"`
	ImageURL                  string                `json:"imageUrl"`
	PrimaryColor              string                `json:"primaryColor"`
	Type                      ConnectorType         `json:"type"`
	Country                   string                `json:"country"`
	Credentials               []ConnectorCredential `json:"credentials"`
	HasMFA                    bool                  `json:"hasMFA"`
	OAuth                     bool                  `json:"oauth,omitempty"`
	OAuthURL                  *string               `json:"oauthUrl,omitempty"`
	Health                    ConnectorHealth       `json:"health"`
	IsOpenFinance             bool                  `json:"isOpenFinance"`
	IsSandbox                 bool                  `json:"isSandbox"`
	SupportsPaymentInitiation bool                  `json:"supportsPaymentInitiation"`
	SupportsScheduledPayments bool                  `json:"supportsScheduledPayments"`
	SupportsSmartTransfers    bool                  `json:"supportsSmartTransfers"`
	ResetPasswordURL          *string               `json:"resetPasswordUrl,omitempty"`
	Products                  []ProductType         `json:"products"`
	CreatedAt                 time.Time             `json:"createdAt"`
}

// ConnectorFilters narrows the connector listing. Nil fields are omitted
// from the request entirely.
type ConnectorFilters struct {
	Name                      *string
	Countries                 []string
	Types                     []ConnectorType
	Sandbox                   *bool
	IsOpenFinance             *bool
	SupportsPaymentInitiation *bool
}

func (f *ConnectorFilters) query() *core.Query {
	q := core.NewQuery()
	if f == nil {
		return q
	}
	q.Set("name", f.Name)
	q.Set("countries", f.Countries)
	if len(f.Types) > 0 {
		types := make([]string, len(f.Types))
		for i, t := range f.Types {
			types[i] = string(t)
		}
		q.Set("types", types)
	}
	q.Set("sandbox", f.Sandbox)
	q.Set("isOpenFinance", f.IsOpenFinance)
	q.Set("supportsPaymentInitiation", f.SupportsPaymentInitiation)
	return q
}

type ValidationError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Parameter string `json:"parameter"`
}

// ValidationResult reports which connector parameters passed validation and
// which failed.
type ValidationResult struct {
	Parameters map[string]string `json:"parameters"`
	Errors     []ValidationError `json:"errors"`
}

// FetchConnectors lists the available connectors, optionally filtered.
func (c *Client) FetchConnectors(ctx context.Context, filters *ConnectorFilters) (PageResponse[Connector], error) {
	var page PageResponse[Connector]
	err := c.api.Get(ctx, "connectors", filters.query(), &page)
	return page, err
}

// FetchConnector retrieves a single connector by id.
func (c *Client) FetchConnector(ctx context.Context, id int) (Connector, error) {
	var connector Connector
	err := c.api.Get(ctx, fmt.Sprintf("connectors/%d", id), nil, &connector)
	return connector, err
}

// ValidateParameters checks credential values against a connector's rules
// without opening a connection.
func (c *Client) ValidateParameters(ctx context.Context, id int, parameters map[string]string) (ValidationResult, error) {
	var result ValidationResult
	err := c.api.Post(ctx, fmt.Sprintf("connectors/%d/validate", id), nil, parameters, &result)
	return result, err
}
