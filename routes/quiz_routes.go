package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yenthanh/chemistry_tutor/handlers"
)

func SetupQuizRoutes(app *fiber.App) {
	app.Post("/api/quiz/start", handlers.StartQuiz)
}
