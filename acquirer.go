package openfinance

import (
	"context"
	"time"

	"github.com/goliatone/go-openfinance/core"
)

// AcquirerClient exposes the acquirer operation resources collected from
// card acquirer connectors: sales, receivables and anticipations.
type AcquirerClient struct {
	api core.Transport
}

// CardBrand is the card network, e.g. VISA, MASTERCARD, ELO.
type CardBrand string

// SaleStatus is APPROVED or CANCELLED.
type SaleStatus string

// SettlementStatus tracks a receivable: PAID, SENT, REJECTED, EXPECTED or
// OTHER.
type SettlementStatus string

// AnticipationStatus tracks an anticipation: SIMULATED, REQUESTED,
// CANCELLED, IN_ANALYSIS or APPROVED.
type AnticipationStatus string

// CardFundingSource is CREDIT or DEBIT.
type CardFundingSource string

// SalePaymentMethod is CARD or PIX.
type SalePaymentMethod string

type SaleInstallment struct {
	Number      int       `json:"number"`
	NetAmount   float64   `json:"netAmount"`
	GrossAmount float64   `json:"grossAmount"`
	ReceiptDate time.Time `json:"receiptDate"`
}

type DestinationAccount struct {
	ReceivingBank string `json:"receivingBank"`
	Agency        string `json:"agency"`
	Account       string `json:"account"`
}

// AcquirerSale is a card or PIX sale captured by the acquirer.
type AcquirerSale struct {
	ID                string            `json:"id"`
	ItemID            string            `json:"itemId"`
	Description       string            `json:"description"`
	Date              time.Time         `json:"date"`
	CurrencyCode      CurrencyCode      `json:"currencyCode"`
	GrossAmount       float64           `json:"grossAmount"`
	InstallmentCount  *int              `json:"installmentCount,omitempty"`
	PaymentMethod     SalePaymentMethod `json:"paymentMethod,omitempty"`
	AuthorizationCode *string           `json:"authorizationCode,omitempty"`
	CardFlag          CardBrand         `json:"cardFlag,omitempty"`
	CardNumber        *string           `json:"cardNumber,omitempty"`
	CardFundingSource CardFundingSource `json:"cardFundingSource,omitempty"`
	NSU               *string           `json:"nsu,omitempty"`
	Status            SaleStatus        `json:"status,omitempty"`
	NetAmount         *float64          `json:"netAmount,omitempty"`
	MDRFee            *float64          `json:"mdrFee,omitempty"`
	MDRFeeAmount      *float64          `json:"mdrFeeAmount,omitempty"`
	Installments      []SaleInstallment `json:"installments,omitempty"`
	TerminalID        *string           `json:"terminalId,omitempty"`
	OperationID       *string           `json:"operationId,omitempty"`
}

// AcquirerReceivable is an amount the acquirer will settle to the merchant.
type AcquirerReceivable struct {
	ID                 string              `json:"id"`
	ItemID             string              `json:"itemId"`
	Description        string              `json:"description"`
	Date               time.Time           `json:"date"`
	CurrencyCode       CurrencyCode        `json:"currencyCode"`
	GrossAmount        float64             `json:"grossAmount"`
	NetAmount          float64             `json:"netAmount"`
	PaymentID          *string             `json:"paymentId,omitempty"`
	SettlementStatus   SettlementStatus    `json:"settlementStatus,omitempty"`
	DestinationAccount *DestinationAccount `json:"destinationAccount,omitempty"`
	CardFlag           CardBrand           `json:"cardFlag,omitempty"`
	OperationID        *string             `json:"operationId,omitempty"`
}

// AcquirerAnticipation is an early settlement of future receivables.
type AcquirerAnticipation struct {
	ID           string             `json:"id"`
	ItemID       string             `json:"itemId"`
	Description  string             `json:"description"`
	Date         time.Time          `json:"date"`
	CurrencyCode CurrencyCode       `json:"currencyCode"`
	GrossAmount  float64            `json:"grossAmount"`
	Status       AnticipationStatus `json:"status,omitempty"`
	NetAmount    *float64           `json:"netAmount,omitempty"`
	Fee          *float64           `json:"fee,omitempty"`
	FeeAmount    *float64           `json:"feeAmount,omitempty"`
	OperationID  *string            `json:"operationId,omitempty"`
}

// FetchSales lists the sale operations of an item.
func (a *AcquirerClient) FetchSales(ctx context.Context, itemID string) (PageResponse[AcquirerSale], error) {
	q := core.NewQuery().Set("itemId", itemID)
	var page PageResponse[AcquirerSale]
	err := a.api.Get(ctx, "acquirer-sales", q, &page)
	return page, err
}

// FetchReceivables lists the receivables of an item.
func (a *AcquirerClient) FetchReceivables(ctx context.Context, itemID string) (PageResponse[AcquirerReceivable], error) {
	q := core.NewQuery().Set("itemId", itemID)
	var page PageResponse[AcquirerReceivable]
	err := a.api.Get(ctx, "acquirer-receivables", q, &page)
	return page, err
}

// FetchAnticipations lists the anticipations of an item.
func (a *AcquirerClient) FetchAnticipations(ctx context.Context, itemID string) (PageResponse[AcquirerAnticipation], error) {
	q := core.NewQuery().Set("itemId", itemID)
	var page PageResponse[AcquirerAnticipation]
	err := a.api.Get(ctx, "acquirer-anticipations", q, &page)
	return page, err
}
