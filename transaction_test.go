package openfinance

import (
	"context"
	"fmt"
	"testing"
)

func transactionPages(t *testing.T, totalPages int) func(call fakeCall, out any) error {
	t.Helper()
	return func(call fakeCall, out any) error {
		page := 1
		for _, param := range call.query.Params() {
			if param.Key == "page" {
				if value, ok := param.Value.(*int); ok {
					page = *value
				}
			}
			if param.Key == "pageSize" {
				if value, ok := param.Value.(*int); !ok || *value != maxPageSize {
					t.Fatalf("expected max page size, got %v", param.Value)
				}
			}
		}
		decoded, ok := out.(*PageResponse[Transaction])
		if !ok {
			t.Fatalf("unexpected out type %T", out)
		}
		*decoded = PageResponse[Transaction]{
			Results:    []Transaction{{ID: fmt.Sprintf("tx-%d", page)}},
			Page:       page,
			Total:      totalPages,
			TotalPages: totalPages,
		}
		return nil
	}
}

func TestClient_FetchAllTransactionsDrainsEveryPage(t *testing.T) {
	fake := &fakeTransport{}
	fake.handler = transactionPages(t, 3)
	client := newFakeClient(t, fake)

	transactions, err := client.FetchAllTransactions(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(fake.calls) != 3 {
		t.Fatalf("expected three page requests, got %d", len(fake.calls))
	}
	if len(transactions) != 3 {
		t.Fatalf("expected three transactions, got %d", len(transactions))
	}
	for i, tx := range transactions {
		if tx.ID != fmt.Sprintf("tx-%d", i+1) {
			t.Fatalf("pages must concatenate in order, got %v", transactions)
		}
	}
}

func TestClient_FetchAllTransactionsSinglePage(t *testing.T) {
	fake := &fakeTransport{}
	fake.handler = transactionPages(t, 1)
	client := newFakeClient(t, fake)

	transactions, err := client.FetchAllTransactions(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(fake.calls) != 1 {
		t.Fatalf("a single page needs a single request, got %d", len(fake.calls))
	}
	if len(transactions) != 1 || transactions[0].ID != "tx-1" {
		t.Fatalf("unexpected result: %v", transactions)
	}
}

func TestClient_FetchTransactionsQueryShape(t *testing.T) {
	fake := &fakeTransport{}
	client := newFakeClient(t, fake)

	from := "2024-01-01"
	page := 2
	_, err := client.FetchTransactions(context.Background(), "acc-1", &TransactionFilters{
		PageFilters: PageFilters{Page: &page},
		From:        &from,
	})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	params := fake.calls[0].query.Params()
	keys := make([]string, len(params))
	for i, param := range params {
		keys[i] = param.Key
	}
	if len(keys) != 3 || keys[0] != "from" || keys[1] != "page" || keys[2] != "accountId" {
		t.Fatalf("unexpected query keys: %v", keys)
	}
}
