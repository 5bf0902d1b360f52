package handlers

import (
	"errors"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/middlewares"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/flashmessages"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/renderer"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/services"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler yönetici giriş/çıkış.
type AuthHandler struct {
	service services.IAuthService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler(service services.IAuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// ShowLogin giriş formu.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return renderer.Render(c, "auth/login", "layouts/auth_layout", fiber.Map{
		"Title":    "Sign in",
		"FormData": flashmessages.GetFlashFormData(c),
	})
}

// Login kimlik bilgilerini backend'e doğrulatır ve token'ı oturuma yazar.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var form services.LoginForm
	if err := c.BodyParser(&form); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Invalid form data.")
		return c.Redirect(middlewares.AdminPath(c, "/login"), fiber.StatusSeeOther)
	}

	res, err := h.service.Login(c.UserContext(), form)
	if err != nil {
		msg := services.ErrAuthUnavailable.Error()
		if errors.Is(err, services.ErrInvalidCredentials) {
			msg = err.Error()
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, msg)
		_ = flashmessages.SetFlashFormData(c, fiber.Map{"email": form.Email})
		return c.Redirect(middlewares.AdminPath(c, "/login"), fiber.StatusSeeOther)
	}

	if err := utils.SetAuth(c, res.Token, res.User.ID, res.User.Name); err != nil {
		configslog.Log.Error("Oturum kaydedilemedi", zap.String("email", form.Email), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Could not start your session. Please try again.")
		return c.Redirect(middlewares.AdminPath(c, "/login"), fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Welcome back, "+res.User.Name+".")
	return c.Redirect(middlewares.AdminPath(c, ""), fiber.StatusFound)
}

// Logout backend token'ını iptal eder ve oturumu temizler.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.service.Logout(utils.RequestContext(c))
	utils.ClearAuth(c)
	// Çıkışta backend'in 401 dönmesi "oturum sona erdi" sayılmaz
	c.Locals("authCleared", nil)
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "You have been signed out.")
	return c.Redirect(middlewares.AdminPath(c, "/login"), fiber.StatusFound)
}
