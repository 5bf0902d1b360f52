package routes

import (
	handlers "github.com/zaidalsharkasi/NFC-frontend-sub000/handlers/dashboard"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/middlewares"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/models"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/services"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes yönetim paneli rotalarını tanımlar. Tüm kaynaklar
// aynı generic handler ile listelenir ve düzenlenir.
func registerDashboardRoutes(app *fiber.App, deps Deps) {
	client, onChange := deps.Client, deps.Catalog.Invalidate

	products := services.NewAdminService[models.Product](client, services.ResourceProducts, "Products", onChange)
	addons := services.NewAdminService[models.Addon](client, services.ResourceAddons, "Add-ons", onChange)
	countries := services.NewAdminService[models.Country](client, services.ResourceCountries, "Countries", onChange)
	cities := services.NewAdminService[models.City](client, services.ResourceCities, "Cities", onChange)
	testimonials := services.NewAdminService[models.Testimonial](client, services.ResourceTestimonials, "Testimonials", onChange)
	headerImages := services.NewAdminService[models.HeaderImage](client, services.ResourceHeaderImages, "Header Images", onChange)
	socialMedia := services.NewAdminService[models.SocialMedia](client, services.ResourceSocialMedia, "Social Links", onChange)
	subscribers := services.NewAdminService[models.Subscriber](client, services.ResourceSubscribers, "Subscribers", nil)
	messages := services.NewAdminService[models.Message](client, services.ResourceMessages, "Messages", nil)
	orders := services.NewAdminService[models.Order](client, services.ResourceOrders, "Orders", nil)
	bulkOrders := services.NewAdminService[models.BulkOrder](client, services.ResourceBulkOrders, "Bulk Orders", nil)

	homeHandler := handlers.NewHomeHandler(
		[]handlers.Counter{orders, bulkOrders, products, messages, subscribers},
		[]string{
			"/" + handlers.OrderResource.Slug, "/" + handlers.BulkOrderResource.Slug,
			"/" + handlers.ProductResource.Slug, "/" + handlers.MessageResource.Slug,
			"/" + handlers.SubscriberResource.Slug,
		},
	)

	dashboardGroup := app.Group(deps.Config.AdminPrefix)
	dashboardGroup.Use(middlewares.AuthMiddleware)

	dashboardGroup.Get("/", homeHandler.HomePage)

	handlers.NewOrderHandler[models.Order](orders, handlers.OrderResource).Register(dashboardGroup)
	handlers.NewOrderHandler[models.BulkOrder](bulkOrders, handlers.BulkOrderResource).Register(dashboardGroup)

	handlers.NewResourceHandler[models.Product](products, handlers.ProductResource).Register(dashboardGroup)
	handlers.NewResourceHandler[models.Addon](addons, handlers.AddonResource).Register(dashboardGroup)
	handlers.NewResourceHandler[models.Country](countries, handlers.CountryResource).Register(dashboardGroup)
	handlers.NewResourceHandler[models.City](cities, handlers.CityResource(deps.Catalog)).Register(dashboardGroup)
	handlers.NewResourceHandler[models.Testimonial](testimonials, handlers.TestimonialResource).Register(dashboardGroup)
	handlers.NewResourceHandler[models.HeaderImage](headerImages, handlers.HeaderImageResource).Register(dashboardGroup)
	handlers.NewResourceHandler[models.SocialMedia](socialMedia, handlers.SocialMediaResource).Register(dashboardGroup)
	handlers.NewResourceHandler[models.Subscriber](subscribers, handlers.SubscriberResource).Register(dashboardGroup)
	handlers.NewResourceHandler[models.Message](messages, handlers.MessageResource).Register(dashboardGroup)
}
