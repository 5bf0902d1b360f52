package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestScope isteğe süre sınırlı bir context bağlar ve handler bitince
// iptal eder. Backend çağrıları bu context'i kullanır; istek bittikten sonra
// hiçbir çağrı sonucu işlenmez.
func RequestScope(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
