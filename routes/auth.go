package routes

import (
	auth_handlers "github.com/zaidalsharkasi/NFC-frontend-sub000/handlers/auth"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/middlewares"

	"github.com/gofiber/fiber/v2"
)

func registerAuthRoutes(app *fiber.App, deps Deps) {
	authHandler := auth_handlers.NewAuthHandler(deps.Auth)
	authGroup := app.Group(deps.Config.AdminPrefix)

	guestRoutes := authGroup.Group("")
	guestRoutes.Use("/login", middlewares.GuestMiddleware)
	guestRoutes.Get("/login", authHandler.ShowLogin)
	guestRoutes.Post("/login", middlewares.FormLimiter(loginLimit, limiterWindow), authHandler.Login)

	authGroup.Post("/logout", middlewares.AuthMiddleware, authHandler.Logout)
}
