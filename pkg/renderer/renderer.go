package renderer

import (
	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// View'larda kullanılan flash anahtarları
const (
	FlashSuccessKeyView = "Success"
	FlashErrorKeyView   = "Error"
)

// SetFlashMessages okunan flash mesajlarını render verisine ekler.
func SetFlashMessages(data fiber.Map, fm flashmessages.FlashMessages) {
	if fm.Success != "" {
		data[FlashSuccessKeyView] = fm.Success
	}
	if fm.Error != "" {
		data[FlashErrorKeyView] = fm.Error
	}
}

// Render şablonu layout ile işler. CSRF token'ı ve ortak local'ler otomatik eklenir;
// flash mesajları daha önce eklenmemişse oturumdan okunur.
func Render(c *fiber.Ctx, template, layout string, data fiber.Map, statusCode ...int) error {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["CsrfToken"]; !ok {
		data["CsrfToken"] = c.Locals("csrf")
	}
	for _, key := range []string{"UserName", "AdminPrefix", "AppName", "Currency", "CurrentPath", "SocialLinks"} {
		if _, ok := data[key]; !ok {
			if v := c.Locals(key); v != nil {
				data[key] = v
			}
		}
	}
	_, hasSuccess := data[FlashSuccessKeyView]
	_, hasError := data[FlashErrorKeyView]
	if !hasSuccess && !hasError {
		if fm, err := flashmessages.GetFlashMessages(c); err == nil {
			SetFlashMessages(data, fm)
		}
	}

	status := fiber.StatusOK
	if len(statusCode) > 0 {
		status = statusCode[0]
	}
	if err := c.Status(status).Render(template, data, layout); err != nil {
		configslog.Log.Error("Şablon işlenemedi", zap.String("template", template), zap.Error(err))
		return err
	}
	return nil
}
