package openfinance

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/goliatone/go-openfinance/core"
)

// CurrencyCode is an ISO-4217 currency code supported by the API.
type CurrencyCode string

const (
	CurrencyUSD CurrencyCode = "USD"
	CurrencyARS CurrencyCode = "ARS"
	CurrencyBRL CurrencyCode = "BRL"
	CurrencyEUR CurrencyCode = "EUR"
	CurrencyMXN CurrencyCode = "MXN"
	CurrencyCOP CurrencyCode = "COP"
	CurrencyCLP CurrencyCode = "CLP"
	CurrencyUYU CurrencyCode = "UYU"
	CurrencyPYG CurrencyCode = "PYG"
	CurrencyPEN CurrencyCode = "PEN"
)

// CountryCode is an ISO-3166-1 alpha-2 country where connectors are
// available.
type CountryCode string

const (
	CountryAR CountryCode = "AR"
	CountryBR CountryCode = "BR"
	CountryCO CountryCode = "CO"
	CountryMX CountryCode = "MX"
)

// PageResponse is the paged envelope every list endpoint returns.
type PageResponse[T any] struct {
	Results    []T `json:"results"`
	Page       int `json:"page"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// PageFilters selects a page of results. PageSize defaults to 20 server
// side; the maximum supported is 500.
type PageFilters struct {
	Page     *int
	PageSize *int
}

func (f *PageFilters) applyQuery(q *core.Query) {
	if f == nil {
		return
	}
	q.Set("page", f.Page)
	q.Set("pageSize", f.PageSize)
}

// DateFilters bounds a listing by date. Values accept ISO instants or plain
// YYYY-MM-DD strings, forwarded to the API untouched.
type DateFilters struct {
	From *string
	To   *string
}

func (f *DateFilters) applyQuery(q *core.Query) {
	if f == nil {
		return
	}
	q.Set("from", f.From)
	q.Set("to", f.To)
}

const dateOnlyLayout = "2006-01-02"

// Date is a calendar date field. The API is inconsistent about these: some
// connectors return plain YYYY-MM-DD strings, others full ISO instants, so
// Date accepts both when decoding and always serializes as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("openfinance: date field is not a string: %w", err)
	}
	if raw == nil || *raw == "" {
		*d = Date{}
		return nil
	}
	for _, layout := range []string{dateOnlyLayout, "2006-01-02T15:04:05.000Z", time.RFC3339} {
		if parsed, err := time.Parse(layout, *raw); err == nil {
			d.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("openfinance: invalid date value %q", *raw)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateOnlyLayout))
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateOnlyLayout)
}

// String returns a pointer to s; convenience for optional filter fields.
func String(s string) *string { return &s }

// Int returns a pointer to i; convenience for optional filter fields.
func Int(i int) *int { return &i }

// Bool returns a pointer to b; convenience for optional filter fields.
func Bool(b bool) *bool { return &b }
