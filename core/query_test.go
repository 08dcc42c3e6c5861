package core

import "testing"

func TestQuery_PreservesInsertionOrder(t *testing.T) {
	q := NewQuery().
		Set("from", "2024-01-01").
		Set("to", "2024-02-01").
		Set("accountId", "acc-1")
	params := q.Params()
	if len(params) != 3 {
		t.Fatalf("expected three params, got %d", len(params))
	}
	keys := []string{params[0].Key, params[1].Key, params[2].Key}
	if keys[0] != "from" || keys[1] != "to" || keys[2] != "accountId" {
		t.Fatalf("unexpected order: %v", keys)
	}
}

func TestQuery_SkipsNilValues(t *testing.T) {
	var name *string
	var types []string
	q := NewQuery().
		Set("itemId", "item-1").
		Set("name", name).
		Set("types", types).
		Set("sandbox", nil).
		Set("", "blank-key")
	if q.Len() != 1 {
		t.Fatalf("expected only itemId kept, got %d params", q.Len())
	}
	if q.Params()[0].Key != "itemId" {
		t.Fatalf("unexpected surviving key %q", q.Params()[0].Key)
	}
}

func TestQuery_SetOverwritesExistingKey(t *testing.T) {
	q := NewQuery().
		Set("page", 1).
		Set("pageSize", 500).
		Set("page", 2)
	params := q.Params()
	if len(params) != 2 {
		t.Fatalf("expected two params, got %d", len(params))
	}
	if params[0].Key != "page" || params[0].Value != 2 {
		t.Fatalf("expected page overwritten in place, got %+v", params[0])
	}
}
