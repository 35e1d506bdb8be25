package progressRoutes

import (
	progressController "lms/controllers/progress"
	"lms/middleware"
	courseValidator "lms/validators/course"
	progressValidator "lms/validators/progress"

	"github.com/gofiber/fiber/v2"
)

// SetupProgressRoutes sets up completion submit and progress read routes
func SetupProgressRoutes(app *fiber.App) {
	progressGroup := app.Group("/progress")

	// Completion event submit (lesson finished, quiz/assignment submitted)
	progressGroup.Post("/", middleware.JWTMiddleware, progressValidator.RecordCompletion(), progressController.RecordCompletion)

	// Per-course progress summary
	progressGroup.Get("/course/:id", middleware.JWTMiddleware, courseValidator.CourseID(), progressController.GetCourseProgress)
}
