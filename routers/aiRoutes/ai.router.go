package aiRoutes

import (
	aiController "lms/controllers/ai"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// SetupAiRoutes sets up the AI quiz-generation proxy
func SetupAiRoutes(app *fiber.App) {
	aiGroup := app.Group("/ai")

	aiGroup.Post("/generate-quiz", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), aiController.GenerateQuiz)
}
