package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/apiclient"

	"go.uber.org/zap"
)

// AuthServiceError kimlik doğrulama hataları.
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrInvalidCredentials AuthServiceError = "invalid email or password"
	ErrAuthUnavailable    AuthServiceError = "login is temporarily unavailable"
)

// LoginForm yönetici giriş formu.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// IAuthService yönetici girişini backend'e devreder.
type IAuthService interface {
	Login(ctx context.Context, form LoginForm) (*apiclient.LoginResult, error)
	Logout(ctx context.Context)
}

// AuthService IAuthService arayüzünü uygular.
type AuthService struct {
	client *apiclient.Client
}

// NewAuthService yeni bir AuthService örneği oluşturur.
func NewAuthService(client *apiclient.Client) *AuthService {
	return &AuthService{client: client}
}

var _ IAuthService = (*AuthService)(nil)

// Login kimlik bilgilerini doğrular ve token döndürür.
func (s *AuthService) Login(ctx context.Context, form LoginForm) (*apiclient.LoginResult, error) {
	if err := ValidateForm(form); err != nil {
		return nil, ErrInvalidCredentials
	}
	res, err := s.client.Login(ctx, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		if apiErr, ok := apiclient.AsAPIError(err); ok && (apiErr.IsValidation() || apiErr.Status == http.StatusForbidden) {
			return nil, ErrInvalidCredentials
		}
		configslog.Log.Error("Giriş isteği başarısız", zap.String("email", form.Email), zap.Error(err))
		return nil, ErrAuthUnavailable
	}
	if res.Token == "" {
		configslog.Log.Error("Backend boş token döndürdü", zap.String("email", form.Email))
		return nil, ErrAuthUnavailable
	}
	configslog.SLog.Infof("Yönetici girişi: %s", form.Email)
	return res, nil
}

// Logout backend token'ını iptal etmeyi dener; hata yerel çıkışı engellemez.
func (s *AuthService) Logout(ctx context.Context) {
	if err := s.client.Do(ctx, http.MethodPost, "logout", nil, nil, nil); err != nil && !errors.Is(err, apiclient.ErrUnauthorized) {
		configslog.Log.Warn("Backend çıkışı başarısız", zap.Error(err))
	}
}
