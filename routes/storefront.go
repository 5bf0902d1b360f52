package routes

import (
	handlers "github.com/zaidalsharkasi/NFC-frontend-sub000/handlers/storefront"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerStorefrontRoutes herkese açık vitrin sayfaları.
func registerStorefrontRoutes(app *fiber.App, deps Deps) {
	storefrontHandler := handlers.NewStorefrontHandler(deps.Catalog, deps.Contact)

	app.Get("/", storefrontHandler.Home)
	app.Get("/products/:id<int>", storefrontHandler.Product)
	app.Get("/bulk-orders", storefrontHandler.BulkOrders)
	app.Get("/contact", storefrontHandler.ShowContact)
	app.Post("/contact", middlewares.FormLimiter(contactLimit, limiterWindow), storefrontHandler.Contact)
	app.Post("/subscribe", middlewares.FormLimiter(contactLimit, limiterWindow), storefrontHandler.Subscribe)

	storefrontHandler.RegisterPolicies(app)
}
