package queryparams

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/apiclient"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
	DefaultOrderBy = "desc"
)

// ListParams admin liste ekranlarının sorgu parametreleri.
type ListParams struct {
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
	Search  string `query:"search"`
	SortBy  string `query:"sort_by"`
	OrderBy string `query:"order_by"`
	Status  string `query:"status"`
}

// DefaultListParams varsayılan sıralama alanıyla parametre üretir.
func DefaultListParams(sortBy string) ListParams {
	return ListParams{Page: DefaultPage, PerPage: DefaultPerPage, SortBy: sortBy, OrderBy: DefaultOrderBy}
}

// Validate sınır dışı değerleri düzeltir.
func (p *ListParams) Validate() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	p.OrderBy = strings.ToLower(p.OrderBy)
	if p.OrderBy != "asc" && p.OrderBy != "desc" {
		p.OrderBy = DefaultOrderBy
	}
	p.Search = strings.TrimSpace(p.Search)
}

// Query backend'e gönderilecek sorgu (sayfa numarası hariç; Resource.Page ekler).
func (p ListParams) Query() url.Values {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(p.PerPage))
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.SortBy != "" {
		q.Set("sort_by", p.SortBy)
		q.Set("order_by", p.OrderBy)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	return q
}

// PaginationMeta view'ların sayfalama bilgisi.
type PaginationMeta struct {
	CurrentPage int
	PerPage     int
	TotalItems  int64
	TotalPages  int
}

// HasPrev önceki sayfa var mı?
func (m PaginationMeta) HasPrev() bool { return m.CurrentPage > 1 }

// HasNext sonraki sayfa var mı?
func (m PaginationMeta) HasNext() bool { return m.CurrentPage < m.TotalPages }

// PrevPage önceki sayfa numarası.
func (m PaginationMeta) PrevPage() int { return m.CurrentPage - 1 }

// NextPage sonraki sayfa numarası.
func (m PaginationMeta) NextPage() int { return m.CurrentPage + 1 }

// PaginatedResult liste ekranına giden veri.
type PaginatedResult struct {
	Data interface{}
	Meta PaginationMeta
}

// CalculateTotalPages toplam sayfa sayısı.
func CalculateTotalPages(totalItems int64, perPage int) int {
	if perPage <= 0 || totalItems <= 0 {
		return 0
	}
	return int((totalItems + int64(perPage) - 1) / int64(perPage))
}

// FromPagination backend sayfalamasını view meta'sına çevirir. Backend toplam
// sayfa bildirmezse toplam kayıttan hesaplanır.
func FromPagination(p apiclient.Pagination, params ListParams) PaginationMeta {
	meta := PaginationMeta{
		CurrentPage: p.CurrentPage,
		PerPage:     p.PerPage,
		TotalItems:  int64(p.Total),
		TotalPages:  p.LastPage,
	}
	if meta.CurrentPage < 1 {
		meta.CurrentPage = params.Page
	}
	if meta.PerPage < 1 {
		meta.PerPage = params.PerPage
	}
	if meta.TotalPages < 1 {
		meta.TotalPages = CalculateTotalPages(meta.TotalItems, meta.PerPage)
	}
	return meta
}
