package configs

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/fiber/v2/utils"
)

// SessionCookieName ziyaretçi oturum çerezinin adı.
const SessionCookieName = "nfc_session"

var sessionStore *session.Store

// SetupSession fiber session store'u oluşturur (tekil).
func SetupSession() *session.Store {
	if sessionStore != nil {
		return sessionStore
	}
	sessionStore = session.New(session.Config{
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:" + SessionCookieName,
		CookieHTTPOnly: true,
		CookieSecure:   GetEnvWithDefault("COOKIE_SECURE", "false") == "true",
		CookieSameSite: "Lax",
		KeyGenerator:   utils.UUIDv4,
	})
	return sessionStore
}

// SetupCSRF form gönderimleri için CSRF middleware'ini döndürür.
// Token view'lara "csrf" local'i ile taşınır.
func SetupCSRF() fiber.Handler {
	return csrf.New(csrf.Config{
		KeyLookup:      "form:_csrf",
		CookieName:     "nfc_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   GetEnvWithDefault("COOKIE_SECURE", "false") == "true",
		Expiration:     2 * time.Hour,
		ContextKey:     "csrf",
		KeyGenerator:   utils.UUIDv4,
	})
}
