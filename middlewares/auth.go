package middlewares

import (
	"errors"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/apiclient"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/flashmessages"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DefaultAdminPrefix AdminPrefix local'i yoksa kullanılır.
const DefaultAdminPrefix = "/admin-panel"

// AdminPath yönetim paneli altındaki bir yolu üretir.
func AdminPath(c *fiber.Ctx, path string) string {
	prefix, ok := c.Locals("AdminPrefix").(string)
	if !ok || prefix == "" {
		prefix = DefaultAdminPrefix
	}
	return prefix + path
}

// AuthMiddleware oturumda backend token'ı yoksa giriş sayfasına yönlendirir.
// İstek sırasında backend 401 dönerse oturum temizlenmiş olur ve kullanıcı
// yine giriş sayfasına gönderilir.
func AuthMiddleware(c *fiber.Ctx) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return c.Redirect(AdminPath(c, "/login"), fiber.StatusSeeOther)
	}
	if _, err := utils.GetAuthToken(sess); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Please sign in to continue.")
		return c.Redirect(AdminPath(c, "/login"), fiber.StatusSeeOther)
	}
	if name, ok := sess.Get(utils.SessionUserNameKey).(string); ok {
		c.Locals("UserName", name)
	}

	err = c.Next()
	if errors.Is(err, apiclient.ErrUnauthorized) || c.Locals("authCleared") == true {
		configslog.Log.Info("Backend oturumu sona erdi, girişe yönlendiriliyor", zap.String("path", c.Path()))
		c.Response().ResetBody()
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Your session has expired. Please sign in again.")
		return c.Redirect(AdminPath(c, "/login"), fiber.StatusSeeOther)
	}
	return err
}

// GuestMiddleware giriş yapmış yöneticiyi panele yönlendirir.
func GuestMiddleware(c *fiber.Ctx) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return c.Next()
	}
	if _, err := utils.GetAuthToken(sess); err == nil {
		return c.Redirect(AdminPath(c, ""), fiber.StatusFound)
	}
	return c.Next()
}
