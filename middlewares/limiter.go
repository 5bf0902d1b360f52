package middlewares

import (
	"net/url"
	"time"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

// FormLimiter aynı IP'den gelen form gönderimlerini (sipariş, iletişim)
// pencere başına max ile sınırlar. Limit aşılınca önceki sayfaya döner.
func FormLimiter(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() != fiber.MethodPost
		},
		LimitReached: func(c *fiber.Ctx) error {
			configslog.Log.Warn("Form gönderim limiti aşıldı", zap.String("ip", c.IP()), zap.String("path", c.Path()))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Too many requests. Please wait a moment and try again.")
			return c.Redirect(backOr(c, "/"), fiber.StatusSeeOther)
		},
	})
}

// backOr Referer'ın yolunu döndürür; başka siteye yönlendirme yapılmaz.
func backOr(c *fiber.Ctx, fallback string) string {
	ref, err := url.Parse(c.Get(fiber.HeaderReferer))
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != c.Hostname()) {
		return fallback
	}
	return ref.RequestURI()
}
