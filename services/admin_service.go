package services

import (
	"context"
	"errors"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/apiclient"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/queryparams"

	"go.uber.org/zap"
)

// AdminServiceError admin CRUD hataları.
type AdminServiceError string

func (e AdminServiceError) Error() string { return string(e) }

const (
	ErrAdminRecordNotFound AdminServiceError = "record not found"
	ErrAdminUnavailable    AdminServiceError = "the backend is not reachable, please try again"
)

// IAdminService bir backend kaynağı üzerinde liste/getir/oluştur/güncelle/sil.
type IAdminService[T any] interface {
	Name() string
	List(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, body apiclient.Body) (*T, error)
	Update(ctx context.Context, id uint, body apiclient.Body) (*T, error)
	Delete(ctx context.Context, id uint) error
}

// AdminService tüm admin tablolarında kullanılan generic servis.
type AdminService[T any] struct {
	res      *apiclient.Resource[T]
	name     string
	onChange func(ctx context.Context, resource string)
}

// NewAdminService yeni bir AdminService örneği oluşturur. onChange her başarılı
// değişiklikten sonra çağrılır (katalog önbelleğini temizlemek için).
func NewAdminService[T any](client *apiclient.Client, path, name string, onChange func(ctx context.Context, resource string)) *AdminService[T] {
	return &AdminService[T]{
		res:      apiclient.NewResource[T](client, path),
		name:     name,
		onChange: onChange,
	}
}

// Name kaynağın görünen adı.
func (s *AdminService[T]) Name() string { return s.name }

// List sayfalı liste.
func (s *AdminService[T]) List(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	page, err := s.res.Page(ctx, params.Page, params.Query())
	if err != nil {
		return nil, s.wrap("list", 0, err)
	}
	return &queryparams.PaginatedResult{
		Data: page.Items,
		Meta: queryparams.FromPagination(page.Pagination, params),
	}, nil
}

func (s *AdminService[T]) Get(ctx context.Context, id uint) (*T, error) {
	item, err := s.res.Get(ctx, id)
	if err != nil {
		return nil, s.wrap("get", id, err)
	}
	return item, nil
}

func (s *AdminService[T]) Create(ctx context.Context, body apiclient.Body) (*T, error) {
	item, err := s.res.Create(ctx, body)
	if err != nil {
		return nil, s.wrap("create", 0, err)
	}
	s.changed(ctx)
	configslog.SLog.Infof("%s kaydı oluşturuldu", s.name)
	return item, nil
}

func (s *AdminService[T]) Update(ctx context.Context, id uint, body apiclient.Body) (*T, error) {
	item, err := s.res.Update(ctx, id, body)
	if err != nil {
		return nil, s.wrap("update", id, err)
	}
	s.changed(ctx)
	configslog.SLog.Infof("%s kaydı güncellendi: %d", s.name, id)
	return item, nil
}

func (s *AdminService[T]) Delete(ctx context.Context, id uint) error {
	if err := s.res.Delete(ctx, id); err != nil {
		return s.wrap("delete", id, err)
	}
	s.changed(ctx)
	configslog.SLog.Infof("%s kaydı silindi: %d", s.name, id)
	return nil
}

func (s *AdminService[T]) changed(ctx context.Context) {
	if s.onChange != nil {
		s.onChange(ctx, s.res.Path())
	}
}

// wrap backend hatalarını servis hatalarına çevirir. Doğrulama ve yetki
// hataları olduğu gibi döner; handler bunlara göre davranır.
func (s *AdminService[T]) wrap(op string, id uint, err error) error {
	switch {
	case errors.Is(err, apiclient.ErrUnauthorized):
		return err
	case errors.Is(err, apiclient.ErrNotFound):
		return ErrAdminRecordNotFound
	}
	if apiErr, ok := apiclient.AsAPIError(err); ok && apiErr.IsValidation() {
		return apiErr
	}
	configslog.Log.Error("Admin işlemi başarısız",
		zap.String("resource", s.res.Path()), zap.String("op", op), zap.Uint("id", id), zap.Error(err))
	return ErrAdminUnavailable
}
