package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery_EncodesFiltersOrderAndLimit(t *testing.T) {
	q := NewQuery().Eq("status", "online").OrderBy("created_at", false).Limit(50)

	encoded := q.String()
	assert.Contains(t, encoded, "status=eq.online")
	assert.Contains(t, encoded, "order=created_at.desc")
	assert.Contains(t, encoded, "limit=50")
}

func TestQuery_KeepsRepeatedColumnFilters(t *testing.T) {
	// A range on one column is two predicates; both must survive encoding.
	q := NewQuery().Gte("created_at", "2026-08-01").Neq("created_at", "2026-08-15")

	encoded := q.String()
	assert.Contains(t, encoded, "created_at=gte.2026-08-01")
	assert.Contains(t, encoded, "created_at=neq.2026-08-15")
}
