package openfinance

import (
	"context"
	"time"

	"github.com/goliatone/go-openfinance/core"
)

// maxPageSize is the largest page the API serves; FetchAllTransactions
// drains with it to minimize round trips.
const maxPageSize = 500

// TransactionType is the direction of a movement: DEBIT out of the account,
// CREDIT into it.
type TransactionType string

const (
	TransactionDebit  TransactionType = "DEBIT"
	TransactionCredit TransactionType = "CREDIT"
)

// TransactionStatus is PENDING or POSTED.
type TransactionStatus string

const (
	TransactionPending TransactionStatus = "PENDING"
	TransactionPosted  TransactionStatus = "POSTED"
)

type PaymentParticipantDocument struct {
	Value *string `json:"value,omitempty"`
	Type  *string `json:"type,omitempty"`
}

type PaymentParticipant struct {
	DocumentNumber *PaymentParticipantDocument `json:"documentNumber,omitempty"`
	Name           *string                     `json:"name,omitempty"`
	AccountNumber  *string                     `json:"accountNumber,omitempty"`
	BranchNumber   *string                     `json:"branchNumber,omitempty"`
	RoutingNumber  *string                     `json:"routingNumber,omitempty"`
}

type BoletoMetadata struct {
	DigitableLine  *string  `json:"digitableLine"`
	Barcode        *string  `json:"barcode"`
	BaseAmount     *float64 `json:"baseAmount"`
	PenaltyAmount  *float64 `json:"penaltyAmount"`
	InterestAmount *float64 `json:"interestAmount"`
	DiscountAmount *float64 `json:"discountAmount"`
}

type TransactionPaymentData struct {
	Payer               *PaymentParticipant `json:"payer,omitempty"`
	Receiver            *PaymentParticipant `json:"receiver,omitempty"`
	ReceiverReferenceID *string             `json:"receiverReferenceId,omitempty"`
	PaymentMethod       *string             `json:"paymentMethod,omitempty"`
	ReferenceNumber     *string             `json:"referenceNumber,omitempty"`
	Reason              *string             `json:"reason,omitempty"`
	BoletoMetadata      *BoletoMetadata     `json:"boletoMetadata"`
}

type MerchantData struct {
	Name         string  `json:"name"`
	BusinessName string  `json:"businessName"`
	CNPJ         string  `json:"cnpj"`
	CNAE         *string `json:"cnae,omitempty"`
	Category     *string `json:"category,omitempty"`
}

type CreditCardMetadata struct {
	InstallmentNumber *int     `json:"installmentNumber,omitempty"`
	TotalInstallments *int     `json:"totalInstallments,omitempty"`
	TotalAmount       *float64 `json:"totalAmount,omitempty"`
	PayeeMCC          *int     `json:"payeeMCC,omitempty"`
	PurchaseDate      *Date    `json:"purchaseDate,omitempty"`
}

// Transaction is a single account movement.
type Transaction struct {
	ID                      string                  `json:"id"`
	AccountID               string                  `json:"accountId"`
	Date                    time.Time               `json:"date"`
	Description             string                  `json:"description"`
	DescriptionRaw          *string                 `json:"descriptionRaw"`
	Type                    TransactionType         `json:"type"`
	Amount                  float64                 `json:"amount"`
	AmountInAccountCurrency *float64                `json:"amountInAccountCurrency"`
	Balance                 float64                 `json:"balance"`
	CurrencyCode            CurrencyCode            `json:"currencyCode"`
	Category                *string                 `json:"category"`
	Status                  TransactionStatus       `json:"status,omitempty"`
	ProviderCode            *string                 `json:"providerCode,omitempty"`
	PaymentData             *TransactionPaymentData `json:"paymentData,omitempty"`
	CreditCardMetadata      *CreditCardMetadata     `json:"creditCardMetadata"`
	Merchant                *MerchantData           `json:"merchant,omitempty"`
	CategoryID              *string                 `json:"categoryId"`
	OperationType           *string                 `json:"operationType"`
	ProviderID              *string                 `json:"providerId"`
}

// TransactionFilters bounds a transaction listing by date and page. From and
// To accept ISO instants or plain YYYY-MM-DD strings.
type TransactionFilters struct {
	PageFilters
	From *string
	To   *string
}

func (f *TransactionFilters) query(accountID string) *core.Query {
	q := core.NewQuery()
	if f != nil {
		q.Set("from", f.From)
		q.Set("to", f.To)
		f.PageFilters.applyQuery(q)
	}
	q.Set("accountId", accountID)
	return q
}

// FetchTransactions lists one page of an account's transactions.
func (c *Client) FetchTransactions(ctx context.Context, accountID string, filters *TransactionFilters) (PageResponse[Transaction], error) {
	var page PageResponse[Transaction]
	err := c.api.Get(ctx, "transactions", filters.query(accountID), &page)
	return page, err
}

// FetchAllTransactions drains every page of an account's transactions in
// page order, using the maximum page size.
func (c *Client) FetchAllTransactions(ctx context.Context, accountID string) ([]Transaction, error) {
	size := maxPageSize
	page := 1
	first, err := c.FetchTransactions(ctx, accountID, &TransactionFilters{
		PageFilters: PageFilters{Page: &page, PageSize: &size},
	})
	if err != nil {
		return nil, err
	}
	transactions := first.Results
	for page < first.TotalPages {
		page++
		next, err := c.FetchTransactions(ctx, accountID, &TransactionFilters{
			PageFilters: PageFilters{Page: &page, PageSize: &size},
		})
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, next.Results...)
	}
	return transactions, nil
}

// FetchTransaction retrieves a single transaction by id.
func (c *Client) FetchTransaction(ctx context.Context, id string) (Transaction, error) {
	var transaction Transaction
	err := c.api.Get(ctx, "transactions/"+id, nil, &transaction)
	return transaction, err
}

// UpdateTransactionCategory reassigns the user category of a transaction.
func (c *Client) UpdateTransactionCategory(ctx context.Context, id string, categoryID string) (Transaction, error) {
	var transaction Transaction
	err := c.api.Patch(ctx, "transactions/"+id, nil, map[string]any{"categoryId": categoryID}, &transaction)
	return transaction, err
}
