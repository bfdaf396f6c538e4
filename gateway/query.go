package gateway

import (
	"fmt"
	"net/url"
	"strconv"
)

// Query builds the filter predicates the rows API understands: equality,
// ranges, ordering and a limit.
type Query struct {
	filters []filter
	order   string
	limit   int
}

type filter struct {
	column string
	op     string
	value  string
}

func NewQuery() *Query {
	return &Query{}
}

func (q *Query) Eq(column string, value any) *Query {
	q.filters = append(q.filters, filter{column, "eq", fmt.Sprint(value)})
	return q
}

func (q *Query) Neq(column string, value any) *Query {
	q.filters = append(q.filters, filter{column, "neq", fmt.Sprint(value)})
	return q
}

func (q *Query) Gte(column string, value any) *Query {
	q.filters = append(q.filters, filter{column, "gte", fmt.Sprint(value)})
	return q
}

// OrderBy sets the result ordering. Only one order column is supported, which
// is all the views need.
func (q *Query) OrderBy(column string, ascending bool) *Query {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	q.order = column + "." + dir
	return q
}

func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// String renders the query as it goes on the wire, for logs and diagnostics.
func (q *Query) String() string {
	params := url.Values{}
	q.encode(params)
	return params.Encode()
}

func (q *Query) encode(params url.Values) {
	for _, f := range q.filters {
		// Add, not Set: two filters on one column form a range.
		params.Add(f.column, f.op+"."+f.value)
	}
	if q.order != "" {
		params.Set("order", q.order)
	}
	if q.limit > 0 {
		params.Set("limit", strconv.Itoa(q.limit))
	}
}
