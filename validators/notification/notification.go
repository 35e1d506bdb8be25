package notificationValidator

import (
	"lms/middleware"
	"lms/models"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

func Publish() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint       `json:"course_id"`
			Kind     string     `json:"kind"`
			Title    string     `json:"title"`
			Deadline *time.Time `json:"deadline"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		switch reqData.Kind {
		case models.NotificationNewLesson, models.NotificationNewQuiz,
			models.NotificationNewAssignment, models.NotificationGeneric:
		case "":
			reqData.Kind = models.NotificationGeneric
		default:
			errors["kind"] = "Kind must be new_lesson, new_quiz, new_assignment or generic!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPublish", reqData)
		return c.Next()
	}
}

// NotificationID validates the :id route param.
func NotificationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		notificationID, err := strconv.Atoi(c.Params("id"))
		if err != nil || notificationID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification ID!", nil)
		}
		c.Locals("notificationID", notificationID)
		return c.Next()
	}
}
