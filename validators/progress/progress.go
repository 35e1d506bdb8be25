package progressValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// RecordCompletion validates a completion submit. Exactly zero or one of
// lesson_id/quiz_id/assignment_id may be present.
func RecordCompletion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID     uint     `json:"course_id"`
			LessonID     *uint    `json:"lesson_id"`
			QuizID       *uint    `json:"quiz_id"`
			AssignmentID *uint    `json:"assignment_id"`
			Completed    *bool    `json:"completed"`
			Score        *float64 `json:"score"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Course ID
		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}

		// Validate item exclusivity
		set := 0
		for _, id := range []*uint{reqData.LessonID, reqData.QuizID, reqData.AssignmentID} {
			if id != nil {
				set++
			}
		}
		if set > 1 {
			errors["item"] = "Only one of lesson_id, quiz_id or assignment_id may be set!"
		}

		// Validate Score
		if reqData.Score != nil && *reqData.Score < 0 {
			errors["score"] = "Score must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCompletion", reqData)
		return c.Next()
	}
}
