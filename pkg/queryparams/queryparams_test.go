package queryparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/apiclient"
)

func TestListParams_Validate(t *testing.T) {
	p := ListParams{Page: -1, PerPage: 500, OrderBy: "SIDEWAYS", Search: "  lina "}
	p.Validate()
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, MaxPerPage, p.PerPage)
	assert.Equal(t, DefaultOrderBy, p.OrderBy)
	assert.Equal(t, "lina", p.Search)
}

func TestListParams_Query(t *testing.T) {
	p := DefaultListParams("created_at")
	p.Search = "gold"
	q := p.Query()
	assert.Equal(t, "10", q.Get("per_page"))
	assert.Equal(t, "gold", q.Get("search"))
	assert.Equal(t, "created_at", q.Get("sort_by"))
	assert.Equal(t, "desc", q.Get("order_by"))
	assert.Empty(t, q.Get("status"))
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
	assert.Equal(t, 0, CalculateTotalPages(5, 0))
}

func TestFromPagination(t *testing.T) {
	params := DefaultListParams("id")
	meta := FromPagination(apiclient.Pagination{CurrentPage: 2, PerPage: 10, Total: 25}, params)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasPrev())
	assert.True(t, meta.HasNext())
	assert.Equal(t, 3, meta.NextPage())

	meta = FromPagination(apiclient.Pagination{}, params)
	assert.Equal(t, 1, meta.CurrentPage)
	assert.Equal(t, 10, meta.PerPage)
	assert.False(t, meta.HasNext())
}
