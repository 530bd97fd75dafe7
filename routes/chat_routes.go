package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/yenthanh/chemistry_tutor/middleware"
	ws "github.com/yenthanh/chemistry_tutor/websocket"
)

func SetupChatRoutes(app *fiber.App, hub *ws.Hub) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/chat", middleware.Protected(), websocket.New(hub.ServeChat))
}
