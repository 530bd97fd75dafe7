package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/yenthanh/chemistry_tutor/bank"
	"github.com/yenthanh/chemistry_tutor/models"
	"github.com/yenthanh/chemistry_tutor/services"
)

var validate = validator.New()

// ListQuestions returns a page of the question bank, optionally
// filtered by chapter and a search term over question text and topic.
func ListQuestions(c *fiber.Ctx) error {
	search := c.Query("search")
	chapter := c.QueryInt("chapter", 0)
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)

	if chapter < 0 || limit < 0 || offset < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid query parameters"})
	}

	matched := bank.Store.Search(search, chapter)
	total := len(matched)

	if offset > total {
		offset = total
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	if matched == nil {
		matched = []models.Question{}
	}

	return c.JSON(fiber.Map{
		"total":     total,
		"questions": matched,
	})
}

type GenerateRequest struct {
	Count int `json:"count" validate:"omitempty,gte=1,lte=20"`
}

// GenerateQuestions asks the generator for new questions and appends
// whatever came back to the bank. A generator failure is not an error
// here; the response just reports zero added questions.
func GenerateQuestions(c *fiber.Ctx) error {
	req := GenerateRequest{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}
	if req.Count == 0 {
		req.Count = 10
	}

	generated := services.GetGeminiService().GenerateQuestions(req.Count)
	added := bank.Store.Append(generated)
	if added == nil {
		added = []models.Question{}
	}

	return c.JSON(fiber.Map{
		"added":     len(added),
		"questions": added,
		"total":     bank.Store.Len(),
	})
}
