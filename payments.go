package openfinance

import (
	"context"
	"time"

	"github.com/goliatone/go-openfinance/core"
)

// PaymentsClient exposes the payment initiation resources: payment
// requests, intents, customers, recipients, institutions, bulk payments,
// smart accounts and receipts.
type PaymentsClient struct {
	api core.Transport
}

// PaymentRequestStatus tracks a payment request from CREATED through
// COMPLETED or ERROR.
type PaymentRequestStatus string

const (
	PaymentRequestCreated                   PaymentRequestStatus = "CREATED"
	PaymentRequestInProgress                PaymentRequestStatus = "IN_PROGRESS"
	PaymentRequestWaitingPayerAuthorization PaymentRequestStatus = "WAITING_PAYER_AUTHORIZATION"
	PaymentRequestCompleted                 PaymentRequestStatus = "COMPLETED"
	PaymentRequestError                     PaymentRequestStatus = "ERROR"
)

// PaymentIntentStatus tracks a payment intent through the consent and
// settlement flow, e.g. STARTED, CONSENT_AUTHORIZED, PAYMENT_COMPLETED, or
// one of the error statuses such as PAYMENT_REJECTED or EXPIRED.
type PaymentIntentStatus string

// PaymentCustomerType is INDIVIDUAL or BUSINESS.
type PaymentCustomerType string

const (
	PaymentCustomerIndividual PaymentCustomerType = "INDIVIDUAL"
	PaymentCustomerBusiness   PaymentCustomerType = "BUSINESS"
)

// RecipientAccountType is the bank account type of a payment recipient:
// SAVINGS_ACCOUNT, CHECKING_ACCOUNT or GUARANTEED_ACCOUNT.
type RecipientAccountType string

// BulkPaymentStatus tracks a bulk payment from CREATED through COMPLETED or
// ERROR.
type BulkPaymentStatus string

type CallbackURLs struct {
	Success *string `json:"success,omitempty"`
	Error   *string `json:"error,omitempty"`
}

type CreatePaymentRequest struct {
	Amount       float64       `json:"amount"`
	CallbackURLs *CallbackURLs `json:"callbackUrls,omitempty"`
	Description  string        `json:"description,omitempty"`
	RecipientID  string        `json:"recipientId,omitempty"`
	CustomerID   string        `json:"customerId,omitempty"`
}

type PaymentRequest struct {
	ID           string               `json:"id"`
	Amount       float64              `json:"amount"`
	Description  string               `json:"description,omitempty"`
	PaymentURL   string               `json:"paymentUrl"`
	Status       PaymentRequestStatus `json:"status"`
	CallbackURLs *CallbackURLs        `json:"callbackUrls,omitempty"`
	Recipient    *PaymentRecipient    `json:"recipient,omitempty"`
	Customer     *PaymentCustomer     `json:"customer,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

type CreatePaymentIntent struct {
	ConnectorID      int               `json:"connectorId"`
	Parameters       map[string]string `json:"parameters"`
	PaymentRequestID string            `json:"paymentRequestId"`
}

type PaymentIntent struct {
	ID             string              `json:"id"`
	Connector      Connector           `json:"connector"`
	ConsentURL     *string             `json:"consentUrl"`
	PaymentRequest PaymentRequest      `json:"paymentRequest"`
	Status         PaymentIntentStatus `json:"status"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

type CreatePaymentCustomer struct {
	Name  string              `json:"name"`
	Email string              `json:"email"`
	CPF   string              `json:"cpf,omitempty"`
	CNPJ  string              `json:"cnpj,omitempty"`
	Type  PaymentCustomerType `json:"type"`
}

type PaymentCustomer struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Email     string              `json:"email"`
	CPF       string              `json:"cpf,omitempty"`
	CNPJ      string              `json:"cnpj,omitempty"`
	Type      PaymentCustomerType `json:"type"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

type RecipientAccount struct {
	Type   RecipientAccountType `json:"type"`
	Number string               `json:"number"`
	Branch string               `json:"branch"`
}

type CreatePaymentRecipient struct {
	Name                 string           `json:"name"`
	TaxNumber            string           `json:"taxNumber"`
	PaymentInstitutionID string           `json:"paymentInstitutionId"`
	IsDefault            *bool            `json:"isDefault,omitempty"`
	Account              RecipientAccount `json:"account"`
}

type UpdatePaymentRecipient struct {
	Name      string            `json:"name,omitempty"`
	TaxNumber string            `json:"taxNumber,omitempty"`
	IsDefault *bool             `json:"isDefault,omitempty"`
	Account   *RecipientAccount `json:"account,omitempty"`
}

type PaymentRecipient struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	TaxNumber          string             `json:"taxNumber"`
	IsDefault          bool               `json:"isDefault"`
	PaymentInstitution PaymentInstitution `json:"paymentInstitution"`
	Account            RecipientAccount   `json:"account"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

type PaymentInstitution struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TradeName string    `json:"tradeName"`
	ISPB      string    `json:"ispb"`
	COMPE     *string   `json:"compe"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateBulkPayment struct {
	SmartAccountID     string   `json:"smartAccountId"`
	PaymentRequestsIDs []string `json:"paymentRequestsIds"`
}

type BulkPayment struct {
	ID              string            `json:"id"`
	Status          BulkPaymentStatus `json:"status"`
	ReferenceID     *string           `json:"referenceId"`
	TotalAmount     float64           `json:"totalAmount"`
	PaymentURL      string            `json:"paymentUrl"`
	PaymentRequests []PaymentRequest  `json:"paymentRequests"`
	SmartAccount    SmartAccount      `json:"smartAccount"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

type CreateSmartAccount struct {
	Name        string `json:"name"`
	TaxNumber   string `json:"taxNumber"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	IsSandbox   bool   `json:"isSandbox,omitempty"`
}

type SmartAccount struct {
	ID             string `json:"id"`
	Agency         string `json:"agency"`
	Number         string `json:"number"`
	VerifyingDigit string `json:"verifyingDigit"`
	Type           string `json:"type"`
	IsSandbox      bool   `json:"isSandbox"`
}

type SmartAccountBalance struct {
	LastUpdatedAt    string  `json:"lastUpdatedAt"`
	Balance          float64 `json:"balance"`
	BlockedBalance   float64 `json:"blockedBalance"`
	ScheduledBalance float64 `json:"scheduledBalance"`
}

type ReceiptBankAccount struct {
	Account *string `json:"account"`
	Agency  *string `json:"agency"`
	Name    *string `json:"name"`
}

type ReceiptParticipant struct {
	BankAccount ReceiptBankAccount `json:"bankAccount"`
	Name        *string            `json:"name"`
	TaxNumber   *string            `json:"taxNumber"`
}

type PaymentReceipt struct {
	ID               string             `json:"id"`
	PaymentRequestID string             `json:"paymentRequestId"`
	Amount           float64            `json:"amount"`
	Creditor         ReceiptParticipant `json:"creditor"`
	Debtor           ReceiptParticipant `json:"debtor"`
	Date             *string            `json:"date"`
	Description      *string            `json:"description"`
	ExpiresAt        string             `json:"expiresAt"`
	ReceiptURL       string             `json:"receiptUrl"`
	ReferenceID      string             `json:"referenceId"`
}

// PaymentRequestFilters pages and date-bounds a payment request listing.
type PaymentRequestFilters struct {
	PageFilters
	DateFilters
}

func (f *PaymentRequestFilters) query() *core.Query {
	q := core.NewQuery()
	if f != nil {
		f.PageFilters.applyQuery(q)
		f.DateFilters.applyQuery(q)
	}
	return q
}

// PaymentIntentFilters pages and date-bounds a payment intent listing.
type PaymentIntentFilters = PaymentRequestFilters

// PaymentInstitutionFilters pages an institution listing, optionally
// narrowed by name.
type PaymentInstitutionFilters struct {
	PageFilters
	Name *string
}

func (f *PaymentInstitutionFilters) query() *core.Query {
	q := core.NewQuery()
	if f != nil {
		f.PageFilters.applyQuery(q)
		q.Set("name", f.Name)
	}
	return q
}

func pageQuery(filters *PageFilters) *core.Query {
	q := core.NewQuery()
	filters.applyQuery(q)
	return q
}

// CreatePaymentRequest registers a new payment request.
func (p *PaymentsClient) CreatePaymentRequest(ctx context.Context, payload CreatePaymentRequest) (PaymentRequest, error) {
	var request PaymentRequest
	err := p.api.Post(ctx, "payments/requests", nil, payload, &request)
	return request, err
}

// FetchPaymentRequest retrieves a single payment request by id.
func (p *PaymentsClient) FetchPaymentRequest(ctx context.Context, id string) (PaymentRequest, error) {
	var request PaymentRequest
	err := p.api.Get(ctx, "payments/requests/"+id, nil, &request)
	return request, err
}

// FetchPaymentRequests lists payment requests.
func (p *PaymentsClient) FetchPaymentRequests(ctx context.Context, filters *PaymentRequestFilters) (PageResponse[PaymentRequest], error) {
	var page PageResponse[PaymentRequest]
	err := p.api.Get(ctx, "payments/requests", filters.query(), &page)
	return page, err
}

// DeletePaymentRequest removes a payment request.
func (p *PaymentsClient) DeletePaymentRequest(ctx context.Context, id string) error {
	return p.api.Delete(ctx, "payments/requests/"+id, nil, nil, nil)
}

// CreatePaymentIntent starts the payment flow for a request against a
// connector.
func (p *PaymentsClient) CreatePaymentIntent(ctx context.Context, payload CreatePaymentIntent) (PaymentIntent, error) {
	var intent PaymentIntent
	err := p.api.Post(ctx, "payments/intents", nil, payload, &intent)
	return intent, err
}

// FetchPaymentIntent retrieves a single payment intent by id.
func (p *PaymentsClient) FetchPaymentIntent(ctx context.Context, id string) (PaymentIntent, error) {
	var intent PaymentIntent
	err := p.api.Get(ctx, "payments/intents/"+id, nil, &intent)
	return intent, err
}

// FetchPaymentIntents lists payment intents.
func (p *PaymentsClient) FetchPaymentIntents(ctx context.Context, filters *PaymentIntentFilters) (PageResponse[PaymentIntent], error) {
	var page PageResponse[PaymentIntent]
	err := p.api.Get(ctx, "payments/intents", filters.query(), &page)
	return page, err
}

// CreatePaymentCustomer registers a payer.
func (p *PaymentsClient) CreatePaymentCustomer(ctx context.Context, payload CreatePaymentCustomer) (PaymentCustomer, error) {
	var customer PaymentCustomer
	err := p.api.Post(ctx, "payments/customers", nil, payload, &customer)
	return customer, err
}

// FetchPaymentCustomer retrieves a single customer by id.
func (p *PaymentsClient) FetchPaymentCustomer(ctx context.Context, id string) (PaymentCustomer, error) {
	var customer PaymentCustomer
	err := p.api.Get(ctx, "payments/customers/"+id, nil, &customer)
	return customer, err
}

// FetchPaymentCustomers lists customers.
func (p *PaymentsClient) FetchPaymentCustomers(ctx context.Context, filters *PageFilters) (PageResponse[PaymentCustomer], error) {
	var page PageResponse[PaymentCustomer]
	err := p.api.Get(ctx, "payments/customers", pageQuery(filters), &page)
	return page, err
}

// UpdatePaymentCustomer changes the mutable fields of a customer.
func (p *PaymentsClient) UpdatePaymentCustomer(ctx context.Context, id string, payload CreatePaymentCustomer) (PaymentCustomer, error) {
	var customer PaymentCustomer
	err := p.api.Patch(ctx, "payments/customers/"+id, nil, payload, &customer)
	return customer, err
}

// DeletePaymentCustomer removes a customer.
func (p *PaymentsClient) DeletePaymentCustomer(ctx context.Context, id string) error {
	return p.api.Delete(ctx, "payments/customers/"+id, nil, nil, nil)
}

// CreatePaymentRecipient registers a payee bank account.
func (p *PaymentsClient) CreatePaymentRecipient(ctx context.Context, payload CreatePaymentRecipient) (PaymentRecipient, error) {
	var recipient PaymentRecipient
	err := p.api.Post(ctx, "payments/recipients", nil, payload, &recipient)
	return recipient, err
}

// FetchPaymentRecipient retrieves a single recipient by id.
func (p *PaymentsClient) FetchPaymentRecipient(ctx context.Context, id string) (PaymentRecipient, error) {
	var recipient PaymentRecipient
	err := p.api.Get(ctx, "payments/recipients/"+id, nil, &recipient)
	return recipient, err
}

// FetchPaymentRecipients lists recipients.
func (p *PaymentsClient) FetchPaymentRecipients(ctx context.Context, filters *PageFilters) (PageResponse[PaymentRecipient], error) {
	var page PageResponse[PaymentRecipient]
	err := p.api.Get(ctx, "payments/recipients", pageQuery(filters), &page)
	return page, err
}

// UpdatePaymentRecipient changes the mutable fields of a recipient.
func (p *PaymentsClient) UpdatePaymentRecipient(ctx context.Context, id string, payload UpdatePaymentRecipient) (PaymentRecipient, error) {
	var recipient PaymentRecipient
	err := p.api.Patch(ctx, "payments/recipients/"+id, nil, payload, &recipient)
	return recipient, err
}

// DeletePaymentRecipient removes a recipient.
func (p *PaymentsClient) DeletePaymentRecipient(ctx context.Context, id string) error {
	return p.api.Delete(ctx, "payments/recipients/"+id, nil, nil, nil)
}

// FetchPaymentInstitution retrieves a single payment institution by id.
func (p *PaymentsClient) FetchPaymentInstitution(ctx context.Context, id string) (PaymentInstitution, error) {
	var institution PaymentInstitution
	err := p.api.Get(ctx, "payments/recipients/institutions/"+id, nil, &institution)
	return institution, err
}

// FetchPaymentInstitutions lists the institutions recipients can belong to.
func (p *PaymentsClient) FetchPaymentInstitutions(ctx context.Context, filters *PaymentInstitutionFilters) (PageResponse[PaymentInstitution], error) {
	var page PageResponse[PaymentInstitution]
	err := p.api.Get(ctx, "payments/recipients/institutions", filters.query(), &page)
	return page, err
}

// CreateBulkPayment groups several payment requests into one authorization.
func (p *PaymentsClient) CreateBulkPayment(ctx context.Context, payload CreateBulkPayment) (BulkPayment, error) {
	var bulk BulkPayment
	err := p.api.Post(ctx, "payments/bulk", nil, payload, &bulk)
	return bulk, err
}

// FetchBulkPayment retrieves a single bulk payment by id.
func (p *PaymentsClient) FetchBulkPayment(ctx context.Context, id string) (BulkPayment, error) {
	var bulk BulkPayment
	err := p.api.Get(ctx, "payments/bulk/"+id, nil, &bulk)
	return bulk, err
}

// FetchBulkPayments lists bulk payments.
func (p *PaymentsClient) FetchBulkPayments(ctx context.Context, filters *PageFilters) (PageResponse[BulkPayment], error) {
	var page PageResponse[BulkPayment]
	err := p.api.Get(ctx, "payments/bulk", pageQuery(filters), &page)
	return page, err
}

// DeleteBulkPayment removes a bulk payment.
func (p *PaymentsClient) DeleteBulkPayment(ctx context.Context, id string) error {
	return p.api.Delete(ctx, "payments/bulk/"+id, nil, nil, nil)
}

// CreateSmartAccount opens a smart account to fund payments from.
func (p *PaymentsClient) CreateSmartAccount(ctx context.Context, payload CreateSmartAccount) (SmartAccount, error) {
	var account SmartAccount
	err := p.api.Post(ctx, "payments/smart-accounts", nil, payload, &account)
	return account, err
}

// FetchSmartAccount retrieves a single smart account by id.
func (p *PaymentsClient) FetchSmartAccount(ctx context.Context, id string) (SmartAccount, error) {
	var account SmartAccount
	err := p.api.Get(ctx, "payments/smart-accounts/"+id, nil, &account)
	return account, err
}

// FetchSmartAccounts lists smart accounts.
func (p *PaymentsClient) FetchSmartAccounts(ctx context.Context, filters *PageFilters) (PageResponse[SmartAccount], error) {
	var page PageResponse[SmartAccount]
	err := p.api.Get(ctx, "payments/smart-accounts", pageQuery(filters), &page)
	return page, err
}

// FetchSmartAccountBalance retrieves the current balance of a smart
// account.
func (p *PaymentsClient) FetchSmartAccountBalance(ctx context.Context, id string) (SmartAccountBalance, error) {
	var balance SmartAccountBalance
	err := p.api.Get(ctx, "payments/smart-accounts/"+id+"/balance", nil, &balance)
	return balance, err
}

// CreatePaymentRequestReceipt issues a receipt for a completed payment
// request.
func (p *PaymentsClient) CreatePaymentRequestReceipt(ctx context.Context, requestID string) (PaymentReceipt, error) {
	var receipt PaymentReceipt
	err := p.api.Post(ctx, "payments/requests/"+requestID+"/receipt", nil, nil, &receipt)
	return receipt, err
}

// FetchPaymentRequestReceipts lists the receipts of a payment request.
func (p *PaymentsClient) FetchPaymentRequestReceipts(ctx context.Context, requestID string) (PageResponse[PaymentReceipt], error) {
	var page PageResponse[PaymentReceipt]
	err := p.api.Get(ctx, "payments/requests/"+requestID+"/receipts", nil, &page)
	return page, err
}

// FetchPaymentRequestReceipt retrieves a single receipt of a payment
// request.
func (p *PaymentsClient) FetchPaymentRequestReceipt(ctx context.Context, requestID string, receiptID string) (PaymentReceipt, error) {
	var receipt PaymentReceipt
	err := p.api.Get(ctx, "payments/requests/"+requestID+"/receipts/"+receiptID, nil, &receipt)
	return receipt, err
}
