package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/yenthanh/chemistry_tutor/bank"
	config "github.com/yenthanh/chemistry_tutor/configs"
	"github.com/yenthanh/chemistry_tutor/routes"
	"github.com/yenthanh/chemistry_tutor/services"
	ws "github.com/yenthanh/chemistry_tutor/websocket"
)

func main() {
	bank.Load()
	services.InitZaloService()
	services.InitGeminiService()

	hub := ws.NewHub()
	go hub.Run()

	app := fiber.New(fiber.Config{
		AppName: "Chemistry Tutor API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigOr("APP_URL", "http://localhost:3000"),
		AllowCredentials: true,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "questions": bank.Store.Len()})
	})

	routes.SetupAuthRoutes(app)
	routes.SetupQuestionRoutes(app)
	routes.SetupQuizRoutes(app)
	routes.SetupChatRoutes(app, hub)

	app.Static("/", "./public")

	port := config.ConfigOr("PORT", "3000")
	log.Fatal(app.Listen(":" + port))
}
