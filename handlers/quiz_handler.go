package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yenthanh/chemistry_tutor/bank"
	"github.com/yenthanh/chemistry_tutor/models"
	"github.com/yenthanh/chemistry_tutor/quiz"
)

type StartQuizRequest struct {
	Chapter int `json:"chapter" validate:"omitempty,gte=1"`
}

// StartQuiz samples a fresh quiz from the question bank, optionally
// restricted to one chapter, and returns the drawn questions in play
// order. The client walks the questions itself; scoring rules live in
// the quiz package.
func StartQuiz(c *fiber.Ctx) error {
	req := StartQuizRequest{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	session := quiz.NewSession(bank.Store.All(), req.Chapter, quiz.DefaultSize)
	questions := session.Questions
	if questions == nil {
		questions = []models.Question{}
	}

	return c.JSON(fiber.Map{
		"chapter":   req.Chapter,
		"count":     len(questions),
		"questions": questions,
	})
}
