package openfinance

import (
	"context"
	"time"

	"github.com/goliatone/go-openfinance/core"
)

type PhoneNumber struct {
	Type  *string `json:"type"`
	Value string  `json:"value"`
}

type Email struct {
	Type  *string `json:"type"`
	Value string  `json:"value"`
}

type IdentityRelation struct {
	Type     *string `json:"type"`
	Name     *string `json:"name"`
	Document *string `json:"document"`
}

type Address struct {
	FullAddress    *string `json:"fullAddress"`
	PrimaryAddress *string `json:"primaryAddress"`
	City           *string `json:"city"`
	PostalCode     *string `json:"postalCode"`
	State          *string `json:"state"`
	Country        *string `json:"country"`
	Type           *string `json:"type"`
}

// Identity is the personal data the institution holds for the account
// owner. BirthDate is a calendar date, not an instant.
type Identity struct {
	ID           string             `json:"id"`
	ItemID       string             `json:"itemId"`
	BirthDate    *Date              `json:"birthDate"`
	TaxNumber    *string            `json:"taxNumber"`
	Document     *string            `json:"document"`
	DocumentType *string            `json:"documentType"`
	JobTitle     *string            `json:"jobTitle"`
	CompanyName  *string            `json:"companyName"`
	FullName     *string            `json:"fullName"`
	PhoneNumbers []PhoneNumber      `json:"phoneNumbers"`
	Emails       []Email            `json:"emails"`
	Addresses    []Address          `json:"addresses"`
	Relations    []IdentityRelation `json:"relations"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// FetchIdentity retrieves an identity record by its own id.
func (c *Client) FetchIdentity(ctx context.Context, id string) (Identity, error) {
	var identity Identity
	err := c.api.Get(ctx, "identity/"+id, nil, &identity)
	return identity, err
}

// FetchIdentityByItemID retrieves the identity collected through an item.
func (c *Client) FetchIdentityByItemID(ctx context.Context, itemID string) (Identity, error) {
	q := core.NewQuery().Set("itemId", itemID)
	var identity Identity
	err := c.api.Get(ctx, "identity", q, &identity)
	return identity, err
}
