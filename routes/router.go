package routes

import (
	"errors"
	"strings"
	"time"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	storefront "github.com/zaidalsharkasi/NFC-frontend-sub000/handlers/storefront"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/middlewares"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/apiclient"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Form gönderim limitleri (IP başına, pencere süresince)
const (
	limiterWindow = time.Minute
	loginLimit    = 10
	submitLimit   = 5
	contactLimit  = 5
)

// Deps rotaların ihtiyaç duyduğu servisler. main.go'da bir kez kurulur.
type Deps struct {
	Config  *configs.AppConfig
	Client  *apiclient.Client
	Catalog services.ICatalogService
	Drafts  services.IOrderDraftService
	Contact services.IContactService
	Auth    services.IAuthService
	Files   storefront.FileStore
}

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App, deps Deps) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())
	app.Use(middlewares.RequestScope(deps.Config.APITimeout))
	app.Use(initializeLocals(deps))
	app.Use(configs.SetupCSRF())

	registerAuthRoutes(app, deps)
	registerDashboardRoutes(app, deps)
	registerOrderRoutes(app, deps)
	registerStorefrontRoutes(app, deps)

	app.Use(notFoundHandler)
}

// initializeLocals layout'ların okuduğu ortak değerleri ayarlar. Vitrin
// sayfalarında footer için sosyal medya bağlantıları da yüklenir.
func initializeLocals(deps Deps) fiber.Handler {
	cfg := deps.Config
	return func(c *fiber.Ctx) error {
		c.Locals("AdminPrefix", cfg.AdminPrefix)
		c.Locals("AppName", cfg.AppName)
		c.Locals("Currency", cfg.Currency)
		c.Locals("CurrentPath", c.Path())

		if c.Method() == fiber.MethodGet && !strings.HasPrefix(c.Path(), cfg.AdminPrefix) {
			links, err := deps.Catalog.SocialLinks(c.UserContext())
			if err != nil {
				configslog.Log.Warn("Sosyal medya bağlantıları okunamadı", zap.Error(err))
			} else {
				c.Locals("SocialLinks", links)
			}
		}
		return c.Next()
	}
}

// ErrorHandler handler'lardan dönen hataları sayfa olarak gösterir.
// Şablon işlenirken oluşan hatalar da buraya düşer; bu durumda düz metin döner.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	} else if errors.Is(err, apiclient.ErrNotFound) {
		code = fiber.StatusNotFound
	}
	if code >= fiber.StatusInternalServerError {
		configslog.Log.Error("İstek işlenemedi", zap.String("path", c.Path()), zap.Error(err))
	}

	if c.Accepts("application/json", "text/html") == "application/json" {
		return c.Status(code).JSON(fiber.Map{"error": fiber.ErrInternalServerError.Message})
	}

	tmpl, title := "errors/500", "Something went wrong"
	switch code {
	case fiber.StatusNotFound:
		tmpl, title = "errors/404", "Page not found"
	case fiber.StatusForbidden:
		title = "This form has expired. Please go back and try again."
	}
	c.Response().ResetBody()
	if rerr := c.Status(code).Render(tmpl, fiber.Map{"Title": title, "AppName": c.Locals("AppName")}, "layouts/error_layout"); rerr != nil {
		configslog.Log.Error("Hata sayfası işlenemedi", zap.Error(rerr))
		return c.Status(code).SendString(title)
	}
	return nil
}

func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("application/json", "text/html")
	switch accepts {
	case "application/json":
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found"})
	default:
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Page not found", "AppName": c.Locals("AppName")}, "layouts/error_layout")
	}
}
