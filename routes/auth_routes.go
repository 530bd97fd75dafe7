package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yenthanh/chemistry_tutor/handlers"
)

func SetupAuthRoutes(app *fiber.App) {
	app.Get("/api/auth/url", handlers.GetAuthURL)
	app.Get("/auth/callback", handlers.AuthCallback)
	app.Get("/api/user", handlers.GetCurrentUser)
	app.Post("/api/logout", handlers.Logout)
}
