package openfinance

import (
	"context"

	"github.com/goliatone/go-openfinance/core"
)

// InvestmentType is the asset class of an investment.
type InvestmentType string

const (
	InvestmentMutualFund  InvestmentType = "MUTUAL_FUND"
	InvestmentSecurity    InvestmentType = "SECURITY"
	InvestmentEquity      InvestmentType = "EQUITY"
	InvestmentCOE         InvestmentType = "COE"
	InvestmentFixedIncome InvestmentType = "FIXED_INCOME"
	InvestmentETF         InvestmentType = "ETF"
	InvestmentOther       InvestmentType = "OTHER"
)

// InvestmentStatus is ACTIVE, PENDING or TOTAL_WITHDRAWAL.
type InvestmentStatus string

// InvestmentSubtype refines the asset class, e.g. CDB, TREASURY, STOCK,
// INVESTMENT_FUND.
type InvestmentSubtype string

// InvestmentTransactionType is BUY, SELL, TAX or TRANSFER.
type InvestmentTransactionType string

// InvestmentRateType is the index the rate is based on, e.g. CDI, SELIC,
// IPCA.
type InvestmentRateType string

// InvestmentExpenses itemizes the taxes and fees applied to an investment
// transaction.
type InvestmentExpenses struct {
	ServiceTax             *float64 `json:"serviceTax,omitempty"`
	BrokerageFee           *float64 `json:"brokerageFee,omitempty"`
	IncomeTax              *float64 `json:"incomeTax,omitempty"`
	Other                  *float64 `json:"other,omitempty"`
	TradingAssetsNoticeFee *float64 `json:"tradingAssetsNoticeFee,omitempty"`
	MaintenanceFee         *float64 `json:"maintenanceFee,omitempty"`
	SettlementFee          *float64 `json:"settlementFee,omitempty"`
	ClearingFee            *float64 `json:"clearingFee,omitempty"`
	StockExchangeFee       *float64 `json:"stockExchangeFee,omitempty"`
	CustodyFee             *float64 `json:"custodyFee,omitempty"`
	OperatingFee           *float64 `json:"operatingFee,omitempty"`
}

type InvestmentMetadata struct {
	TaxRegime      *string `json:"taxRegime,omitempty"`
	ProposalNumber *string `json:"proposalNumber,omitempty"`
	ProcessNumber  *string `json:"processNumber,omitempty"`
}

type InvestmentTransaction struct {
	ID              string                    `json:"id"`
	Type            InvestmentTransactionType `json:"type"`
	OperationID     *string                   `json:"operationId,omitempty"`
	Description     *string                   `json:"description,omitempty"`
	InvestmentID    *string                   `json:"investmentId,omitempty"`
	Quantity        *float64                  `json:"quantity,omitempty"`
	Value           *float64                  `json:"value,omitempty"`
	Amount          *float64                  `json:"amount,omitempty"`
	Date            Date                      `json:"date"`
	TradeDate       Date                      `json:"tradeDate"`
	BrokerageNumber *string                   `json:"brokerageNumber,omitempty"`
	NetAmount       *float64                  `json:"netAmount,omitempty"`
	Expenses        *InvestmentExpenses       `json:"expenses,omitempty"`
}

type InvestmentInstitution struct {
	Name   *string `json:"name,omitempty"`
	Number *string `json:"number,omitempty"`
}

// Investment is a position collected from an item. Quota date, due date and
// issue date arrive as calendar dates.
type Investment struct {
	ID                   string                  `json:"id"`
	Code                 string                  `json:"code"`
	Number               string                  `json:"number"`
	ISIN                 *string                 `json:"isin,omitempty"`
	ItemID               string                  `json:"itemId"`
	Type                 InvestmentType          `json:"type"`
	Subtype              InvestmentSubtype       `json:"subtype,omitempty"`
	Name                 string                  `json:"name"`
	CurrencyCode         CurrencyCode            `json:"currencyCode"`
	Date                 *Date                   `json:"date,omitempty"`
	Value                *float64                `json:"value,omitempty"`
	Quantity             *float64                `json:"quantity,omitempty"`
	Taxes                *float64                `json:"taxes,omitempty"`
	Taxes2               *float64                `json:"taxes2,omitempty"`
	Balance              float64                 `json:"balance"`
	Amount               *float64                `json:"amount,omitempty"`
	AmountWithdrawal     *float64                `json:"amountWithdrawal,omitempty"`
	AmountProfit         *float64                `json:"amountProfit,omitempty"`
	AmountOriginal       *float64                `json:"amountOriginal,omitempty"`
	DueDate              *Date                   `json:"dueDate,omitempty"`
	Issuer               *string                 `json:"issuer,omitempty"`
	IssueDate            *Date                   `json:"issueDate,omitempty"`
	Rate                 *float64                `json:"rate,omitempty"`
	RateType             InvestmentRateType      `json:"rateType,omitempty"`
	FixedAnnualRate      *float64                `json:"fixedAnnualRate,omitempty"`
	LastMonthRate        *float64                `json:"lastMonthRate,omitempty"`
	AnnualRate           *float64                `json:"annualRate,omitempty"`
	LastTwelveMonthsRate *float64                `json:"lastTwelveMonthsRate,omitempty"`
	Status               InvestmentStatus        `json:"status,omitempty"`
	Transactions         []InvestmentTransaction `json:"transactions,omitempty"`
	Metadata             *InvestmentMetadata     `json:"metadata,omitempty"`
	Owner                *string                 `json:"owner,omitempty"`
	ProviderID           *string                 `json:"providerId,omitempty"`
	Institution          *InvestmentInstitution  `json:"institution,omitempty"`
}

// FetchInvestments lists the investments of an item, optionally filtered by
// type.
func (c *Client) FetchInvestments(ctx context.Context, itemID string, investmentType *InvestmentType) (PageResponse[Investment], error) {
	q := core.NewQuery().
		Set("itemId", itemID).
		Set("type", investmentType)
	var page PageResponse[Investment]
	err := c.api.Get(ctx, "investments", q, &page)
	return page, err
}

// FetchInvestment retrieves a single investment by id.
func (c *Client) FetchInvestment(ctx context.Context, id string) (Investment, error) {
	var investment Investment
	err := c.api.Get(ctx, "investments/"+id, nil, &investment)
	return investment, err
}
