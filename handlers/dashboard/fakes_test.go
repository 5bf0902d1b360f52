package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/apiclient"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/queryparams"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/services"

	"github.com/stretchr/testify/mock"
)

type adminMock[T any] struct {
	mock.Mock
	name string
}

var _ services.IAdminService[struct{}] = (*adminMock[struct{}])(nil)

func (m *adminMock[T]) Name() string { return m.name }

func (m *adminMock[T]) List(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	args := m.Called(ctx, params)
	res, _ := args.Get(0).(*queryparams.PaginatedResult)
	return res, args.Error(1)
}

func (m *adminMock[T]) Get(ctx context.Context, id uint) (*T, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*T)
	return item, args.Error(1)
}

func (m *adminMock[T]) Create(ctx context.Context, body apiclient.Body) (*T, error) {
	args := m.Called(ctx, encodeBody(body))
	item, _ := args.Get(0).(*T)
	return item, args.Error(1)
}

func (m *adminMock[T]) Update(ctx context.Context, id uint, body apiclient.Body) (*T, error) {
	args := m.Called(ctx, id, encodeBody(body))
	item, _ := args.Get(0).(*T)
	return item, args.Error(1)
}

func (m *adminMock[T]) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// encodeBody beklentilerde karşılaştırmak için gövdeyi metne çevirir.
func encodeBody(b apiclient.Body) string {
	ct, r, err := b.Encode()
	if err != nil {
		return "error: " + err.Error()
	}
	raw, _ := io.ReadAll(r)
	if strings.HasPrefix(ct, "multipart/") {
		return "multipart"
	}
	return string(raw)
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
