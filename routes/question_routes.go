package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yenthanh/chemistry_tutor/handlers"
)

func SetupQuestionRoutes(app *fiber.App) {
	questions := app.Group("/api/questions")
	questions.Get("/", handlers.ListQuestions)
	questions.Post("/generate", handlers.GenerateQuestions)
}
