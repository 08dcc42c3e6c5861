package openfinance

import (
	"context"

	"github.com/goliatone/go-openfinance/core"
)

// AccountType is either BANK or CREDIT.
type AccountType string

const (
	AccountBank   AccountType = "BANK"
	AccountCredit AccountType = "CREDIT"
)

// AccountSubType refines the account type.
type AccountSubType string

const (
	AccountSavings    AccountSubType = "SAVINGS_ACCOUNT"
	AccountChecking   AccountSubType = "CHECKING_ACCOUNT"
	AccountCreditCard AccountSubType = "CREDIT_CARD"
)

// BankData is present on BANK accounts.
type BankData struct {
	TransferNumber *string  `json:"transferNumber"`
	ClosingBalance *float64 `json:"closingBalance"`
}

// CreditData is present on CREDIT accounts. The close and due dates arrive
// as calendar dates, not instants.
type CreditData struct {
	Level                  *string  `json:"level"`
	Brand                  *string  `json:"brand"`
	BalanceCloseDate       *Date    `json:"balanceCloseDate"`
	BalanceDueDate         *Date    `json:"balanceDueDate"`
	AvailableCreditLimit   *float64 `json:"availableCreditLimit"`
	BalanceForeignCurrency *float64 `json:"balanceForeignCurrency"`
	MinimumPayment         *float64 `json:"minimumPayment"`
	CreditLimit            *float64 `json:"creditLimit"`
}

// Account is a bank account or credit card collected from an item.
type Account struct {
	ID            string         `json:"id"`
	ItemID        string         `json:"itemId"`
	Type          AccountType    `json:"type"`
	Subtype       AccountSubType `json:"subtype"`
	Number        string         `json:"number"`
	Balance       float64        `json:"balance"`
	Name          string         `json:"name"`
	MarketingName *string        `json:"marketingName"`
	Owner         *string        `json:"owner"`
	TaxNumber     *string        `json:"taxNumber"`
	CurrencyCode  CurrencyCode   `json:"currencyCode"`
	BankData      *BankData      `json:"bankData"`
	CreditData    *CreditData    `json:"creditData"`
}

// FetchAccounts lists the accounts of an item, optionally filtered by type.
func (c *Client) FetchAccounts(ctx context.Context, itemID string, accountType *AccountType) (PageResponse[Account], error) {
	q := core.NewQuery().
		Set("itemId", itemID).
		Set("type", accountType)
	var page PageResponse[Account]
	err := c.api.Get(ctx, "accounts", q, &page)
	return page, err
}

// FetchAccount retrieves a single account by id.
func (c *Client) FetchAccount(ctx context.Context, id string) (Account, error) {
	var account Account
	err := c.api.Get(ctx, "accounts/"+id, nil, &account)
	return account, err
}
