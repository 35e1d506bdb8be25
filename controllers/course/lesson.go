package courseController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services/notify"
	"lms/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// notifyEnrolledStudents fans out an in-app notification to the course
// roster. Creation of the content is never rolled back when fan-out fails;
// the failure comes back as a warning string for the response instead.
func notifyEnrolledStudents(c *fiber.Ctx, course models.Course, kind string, title string, deadline *time.Time) (notify.DispatchResult, string) {
	dispatcher := notify.NewDispatcher(database.Database.Db)
	result, err := dispatcher.DispatchContentNotification(c.Context(), course.ID, kind, notify.ContentPayload{
		Title:       title,
		TeacherName: course.TeacherName,
		Deadline:    deadline,
	})
	if err != nil {
		log.Printf("Error dispatching %s notifications for course %d: %v", kind, course.ID, err)
		return result, "Content saved, but students could not be notified."
	}
	if failed := result.Failures(); len(failed) > 0 {
		log.Printf("Partial %s fan-out for course %d: %d of %d recipients failed", kind, course.ID, len(failed), len(result.Outcomes))
		return result, "Content saved, but some students could not be notified."
	}

	go utils.SendNewContentEmails(course.ID, course.Title, notify.RenderMessage(kind, notify.ContentPayload{Title: title, Deadline: deadline}))

	return result, ""
}

func GetLessons(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var lessons []models.Lesson
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", lessons)
}

func CreateLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	// Check if course exists
	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.TeacherID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	// Retrieve validated lesson data
	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title      string `json:"title"`
		Content    string `json:"content"`
		VideoURL   string `json:"video_url"`
		OrderIndex int    `json:"order_index"`
		Status     string `json:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	status := reqData.Status
	if status == "" {
		status = "published"
	}

	lesson := models.Lesson{
		CourseID:   uint(courseID),
		Title:      reqData.Title,
		Content:    reqData.Content,
		VideoURL:   reqData.VideoURL,
		OrderIndex: reqData.OrderIndex,
		Status:     status,
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	result, warning := notifyEnrolledStudents(c, course, models.NotificationNewLesson, lesson.Title, nil)

	response := fiber.Map{
		"lesson":         lesson,
		"notified_count": result.NotifiedCount,
	}
	if warning != "" {
		response["warning"] = warning
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", response)
}

func DeleteLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("itemID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if course.TeacherID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	var lesson models.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	lesson.IsDeleted = true
	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}
