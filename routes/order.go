package routes

import (
	handlers "github.com/zaidalsharkasi/NFC-frontend-sub000/handlers/storefront"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerOrderRoutes sipariş sihirbazı. Sabit yollar :token'dan önce tanımlanır.
func registerOrderRoutes(app *fiber.App, deps Deps) {
	orderHandler := handlers.NewOrderHandler(deps.Drafts, deps.Catalog, deps.Files)

	app.Post("/order/start/:productId<int>", orderHandler.StartProductOrder)
	app.Post("/bulk-orders/start", orderHandler.StartBulkOrder)

	orderGroup := app.Group("/order")
	orderGroup.Get("/thank-you", orderHandler.ThankYou)
	orderGroup.Get("/cities/:countryId<int>", orderHandler.Cities)

	orderGroup.Get("/:token", orderHandler.Show)
	orderGroup.Get("/:token/step/:step<int>", orderHandler.GoTo)
	orderGroup.Post("/:token/next", orderHandler.Next)
	orderGroup.Post("/:token/back", orderHandler.Back)
	orderGroup.Post("/:token/submit", middlewares.FormLimiter(submitLimit, limiterWindow), orderHandler.Submit)
	orderGroup.Post("/:token/discard", orderHandler.Discard)
}
