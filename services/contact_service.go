package services

import (
	"context"
	"errors"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/models"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/apiclient"

	"go.uber.org/zap"
)

// ContactServiceError iletişim servis hataları.
type ContactServiceError string

func (e ContactServiceError) Error() string { return string(e) }

const (
	ErrContactSendFailed ContactServiceError = "your message could not be sent, please try again later"
	ErrAlreadySubscribed ContactServiceError = "this email is already subscribed"
	ErrSubscribeFailed   ContactServiceError = "subscription failed, please try again later"
)

// ContactForm iletişim sayfası formu.
type ContactForm struct {
	Name    string `form:"name" json:"name" validate:"required,min=2,max=100"`
	Email   string `form:"email" json:"email" validate:"required,email"`
	Phone   string `form:"phone" json:"phone,omitempty" validate:"omitempty,e164"`
	Subject string `form:"subject" json:"subject,omitempty" validate:"max=150"`
	Message string `form:"message" json:"message" validate:"required,min=5,max=2000"`
}

// SubscribeForm bülten aboneliği.
type SubscribeForm struct {
	Email string `form:"email" json:"email" validate:"required,email"`
}

// IContactService ziyaretçi mesajları ve abonelikler.
type IContactService interface {
	SendMessage(ctx context.Context, form ContactForm) error
	Subscribe(ctx context.Context, form SubscribeForm) error
}

// ContactService IContactService arayüzünü uygular.
type ContactService struct {
	messages    *apiclient.Resource[models.Message]
	subscribers *apiclient.Resource[models.Subscriber]
}

// NewContactService yeni bir ContactService örneği oluşturur.
func NewContactService(client *apiclient.Client) *ContactService {
	return &ContactService{
		messages:    apiclient.NewResource[models.Message](client, ResourceMessages),
		subscribers: apiclient.NewResource[models.Subscriber](client, ResourceSubscribers),
	}
}

var _ IContactService = (*ContactService)(nil)

// SendMessage formu doğrular ve backend'e iletir.
func (s *ContactService) SendMessage(ctx context.Context, form ContactForm) error {
	if err := ValidateForm(form); err != nil {
		return err
	}
	if _, err := s.messages.Create(ctx, apiclient.JSONBody(form)); err != nil {
		if apiErr, ok := apiclient.AsAPIError(err); ok && apiErr.IsValidation() {
			return apiFieldErrors(apiErr)
		}
		configslog.Log.Error("İletişim mesajı gönderilemedi", zap.Error(err))
		return ErrContactSendFailed
	}
	configslog.SLog.Infof("Yeni iletişim mesajı alındı: %s", form.Email)
	return nil
}

// Subscribe e-postayı bültene ekler.
func (s *ContactService) Subscribe(ctx context.Context, form SubscribeForm) error {
	if err := ValidateForm(form); err != nil {
		return err
	}
	if _, err := s.subscribers.Create(ctx, apiclient.JSONBody(form)); err != nil {
		if apiErr, ok := apiclient.AsAPIError(err); ok && apiErr.IsValidation() {
			if _, dup := apiErr.Fields["email"]; dup {
				return ErrAlreadySubscribed
			}
			return apiFieldErrors(apiErr)
		}
		configslog.Log.Error("Abonelik başarısız", zap.Error(err))
		return ErrSubscribeFailed
	}
	return nil
}

// apiFieldErrors backend doğrulama hatasını form hatalarına çevirir.
func apiFieldErrors(apiErr *apiclient.APIError) error {
	if len(apiErr.Fields) == 0 {
		return errors.New(apiErr.FirstMessage())
	}
	out := make(FormErrors, len(apiErr.Fields))
	for k, msgs := range apiErr.Fields {
		if len(msgs) > 0 {
			out[k] = msgs[0]
		}
	}
	return out
}
