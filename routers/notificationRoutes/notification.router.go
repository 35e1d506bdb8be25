package notificationRoutes

import (
	notificationController "lms/controllers/notification"
	"lms/middleware"
	"lms/models"
	notificationValidator "lms/validators/notification"

	"github.com/gofiber/fiber/v2"
)

// SetupNotificationRoutes sets up the student notification feed and the
// teacher publish endpoint
func SetupNotificationRoutes(app *fiber.App) {
	notificationGroup := app.Group("/notifications")

	notificationGroup.Get("/", middleware.JWTMiddleware, notificationController.GetNotifications)
	notificationGroup.Patch("/:id/read", middleware.JWTMiddleware, notificationValidator.NotificationID(), notificationController.MarkNotificationRead)
	notificationGroup.Post("/publish", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), notificationValidator.Publish(), notificationController.PublishNotification)
}
