package progressController

import (
	"errors"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"
	"lms/services/progress"

	"github.com/gofiber/fiber/v2"
)

// RecordCompletion handles a student completion event (lesson finished, quiz
// or assignment submitted). The record write and the enrollment recompute are
// a two-step pipeline: if the recompute fails the record is kept and the
// failure is reported as a warning, not an error.
func RecordCompletion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated completion data
	reqData, ok := c.Locals("validatedCompletion").(*struct {
		CourseID     uint     `json:"course_id"`
		LessonID     *uint    `json:"lesson_id"`
		QuizID       *uint    `json:"quiz_id"`
		AssignmentID *uint    `json:"assignment_id"`
		Completed    *bool    `json:"completed"`
		Score        *float64 `json:"score"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	svc := progress.NewService(database.Database.Db)
	result, err := svc.RecordCompletion(progress.CompletionInput{
		StudentID:    userID,
		CourseID:     reqData.CourseID,
		LessonID:     reqData.LessonID,
		QuizID:       reqData.QuizID,
		AssignmentID: reqData.AssignmentID,
		Completed:    reqData.Completed,
		Score:        reqData.Score,
	})
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record progress!", nil)
	}

	response := fiber.Map{
		"record":                result.Record,
		"aggregation_triggered": result.AggregationTriggered,
	}
	if result.AggregationErr != nil {
		response["warning"] = "Progress saved, but the course percentage could not be refreshed."
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress recorded successfully!", response)
}

// GetCourseProgress returns the cached percentage plus the completion records
// behind it.
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	svc := progress.NewService(database.Database.Db)
	summary, err := svc.CourseProgress(userID, uint(courseID))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", summary)
}
