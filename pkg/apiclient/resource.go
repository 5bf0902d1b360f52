package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Pagination backend liste yanıtlarındaki sayfalama bilgisi.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// HasNext sonraki sayfa var mı?
func (p Pagination) HasNext() bool { return p.CurrentPage < p.LastPage }

// HasPrev önceki sayfa var mı?
func (p Pagination) HasPrev() bool { return p.CurrentPage > 1 }

// Page tek sayfalık liste sonucu.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

type pageBody[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Resource tek bir REST kaynağı için liste/getir/oluştur/güncelle/sil yetenekleri.
// Admin ekranlarındaki tüm CRUD tabloları bunun üzerine kuruludur.
type Resource[T any] struct {
	client *Client
	path   string
}

// NewResource path'e (örn: "testimonials") bağlı bir kaynak oluşturur.
func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{client: c, path: strings.Trim(path, "/")}
}

// Path kaynağın göreli yolu.
func (r *Resource[T]) Path() string { return r.path }

// Page sayfalı liste. Backend sayfalama olmadan düz dizi dönerse tek sayfa kabul edilir.
func (r *Resource[T]) Page(ctx context.Context, page int, query url.Values) (*Page[T], error) {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	raw, err := r.client.do(ctx, http.MethodGet, r.path, q, nil)
	if err != nil {
		return nil, err
	}
	return decodePage[T](raw)
}

// List ilk sayfanın kayıtlarını döndürür.
func (r *Resource[T]) List(ctx context.Context, query url.Values) ([]T, error) {
	p, err := r.Page(ctx, 0, query)
	if err != nil {
		return nil, err
	}
	return p.Items, nil
}

// Get id ile tek kayıt.
func (r *Resource[T]) Get(ctx context.Context, id uint) (*T, error) {
	var out T
	if err := r.client.Do(ctx, http.MethodGet, r.itemPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create yeni kayıt oluşturur.
func (r *Resource[T]) Create(ctx context.Context, body Body) (*T, error) {
	var out T
	if err := r.client.Do(ctx, http.MethodPost, r.path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update kaydı günceller.
func (r *Resource[T]) Update(ctx context.Context, id uint, body Body) (*T, error) {
	var out T
	if err := r.client.Do(ctx, http.MethodPut, r.itemPath(id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete kaydı siler.
func (r *Resource[T]) Delete(ctx context.Context, id uint) error {
	return r.client.Do(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil)
}

func (r *Resource[T]) itemPath(id uint) string {
	return r.path + "/" + strconv.FormatUint(uint64(id), 10)
}

// decodePage {data: {data: [...], pagination}} veya {data: [...]} biçimlerini çözer.
func decodePage[T any](raw []byte) (*Page[T], error) {
	var env dataEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("apiclient: decoding list: %w", err)
	}
	inner := []byte(strings.TrimSpace(string(env.Data)))
	if len(inner) == 0 || string(inner) == "null" {
		return &Page[T]{Items: []T{}, Pagination: Pagination{CurrentPage: 1, LastPage: 1}}, nil
	}
	if inner[0] == '[' {
		var items []T
		if err := json.Unmarshal(inner, &items); err != nil {
			return nil, fmt.Errorf("apiclient: decoding list: %w", err)
		}
		return &Page[T]{Items: items, Pagination: Pagination{CurrentPage: 1, LastPage: 1, PerPage: len(items), Total: len(items)}}, nil
	}
	var pb pageBody[T]
	if err := json.Unmarshal(inner, &pb); err != nil {
		return nil, fmt.Errorf("apiclient: decoding list: %w", err)
	}
	if pb.Data == nil {
		pb.Data = []T{}
	}
	return &Page[T]{Items: pb.Data, Pagination: pb.Pagination}, nil
}
