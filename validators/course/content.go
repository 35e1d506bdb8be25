package courseValidator

import (
	"encoding/json"
	"lms/middleware"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title      string `json:"title"`
			Content    string `json:"content"`
			VideoURL   string `json:"video_url"`
			OrderIndex int    `json:"order_index"`
			Status     string `json:"status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index must not be negative!"
		}
		if reqData.Status != "" && reqData.Status != "draft" && reqData.Status != "published" {
			errors["status"] = "Status must be draft or published!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := new(struct {
			Title       string          `json:"title"`
			Description string          `json:"description"`
			Questions   json.RawMessage `json:"questions"`
			Deadline    *time.Time      `json:"deadline"`
		})

		if err := c.BodyParser(body); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(body.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if len(body.Questions) > 0 && !json.Valid(body.Questions) {
			errors["questions"] = "Questions must be valid JSON!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData := &struct {
			Title       string     `json:"title"`
			Description string     `json:"description"`
			Questions   []byte     `json:"questions"`
			Deadline    *time.Time `json:"deadline"`
		}{
			Title:       body.Title,
			Description: body.Description,
			Questions:   body.Questions,
			Deadline:    body.Deadline,
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

func CreateAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string     `json:"title"`
			Description string     `json:"description"`
			Deadline    *time.Time `json:"deadline"`
			MaxScore    *int       `json:"max_score"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.MaxScore != nil && *reqData.MaxScore < 1 {
			errors["max_score"] = "Max score must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssignment", reqData)
		return c.Next()
	}
}

func CreateAnnouncement() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Message string `json:"message"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Message) == "" {
			errors["message"] = "Message is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAnnouncement", reqData)
		return c.Next()
	}
}
