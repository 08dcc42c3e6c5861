package core

import (
	"reflect"
	"strings"
)

type QueryParam struct {
	Key   string
	Value any
}

// Query is an ordered set of query-string parameters. Parameters are
// serialized in insertion order; nil values (including typed nil pointers)
// are dropped at Set time so an unset optional filter never reaches the
// wire.
type Query struct {
	params []QueryParam
}

func NewQuery() *Query {
	return &Query{}
}

func (q *Query) Set(key string, value any) *Query {
	if q == nil {
		return q
	}
	key = strings.TrimSpace(key)
	if key == "" || isNilValue(value) {
		return q
	}
	for i := range q.params {
		if q.params[i].Key == key {
			q.params[i].Value = value
			return q
		}
	}
	q.params = append(q.params, QueryParam{Key: key, Value: value})
	return q
}

func (q *Query) Params() []QueryParam {
	if q == nil || len(q.params) == 0 {
		return nil
	}
	out := make([]QueryParam, len(q.params))
	copy(out, q.params)
	return out
}

func (q *Query) Len() int {
	if q == nil {
		return 0
	}
	return len(q.params)
}

func isNilValue(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		return rv.IsNil()
	}
	return false
}
