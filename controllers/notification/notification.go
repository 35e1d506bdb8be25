package notificationController

import (
	"errors"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"
	"lms/services/notify"
	"time"

	"github.com/gofiber/fiber/v2"
)

func GetNotifications(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	limit := c.QueryInt("limit", 10)

	feed := notify.NewFeed(database.Database.Db)
	notifications, err := feed.List(userID, limit)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	unread, err := feed.UnreadCount(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully!", fiber.Map{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

func MarkNotificationRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	notificationID := c.Locals("notificationID").(int)

	feed := notify.NewFeed(database.Database.Db)
	notification, err := feed.MarkRead(uint(notificationID), userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
		case errors.Is(err, services.ErrForbidden):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This notification belongs to another student!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark notification as read!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read!", notification)
}

// PublishNotification lets a teacher push a notification to every approved
// student of a course without creating content, e.g. a schedule change.
func PublishNotification(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Retrieve validated publish data
	reqData, ok := c.Locals("validatedPublish").(*struct {
		CourseID uint       `json:"course_id"`
		Kind     string     `json:"kind"`
		Title    string     `json:"title"`
		Deadline *time.Time `json:"deadline"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if course.TeacherID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	dispatcher := notify.NewDispatcher(database.Database.Db)
	result, err := dispatcher.DispatchContentNotification(c.Context(), course.ID, reqData.Kind, notify.ContentPayload{
		Title:       reqData.Title,
		TeacherName: course.TeacherName,
		Deadline:    reqData.Deadline,
	})
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish notification!", nil)
	}

	response := fiber.Map{
		"notified_count": result.NotifiedCount,
	}
	if failed := result.Failures(); len(failed) > 0 {
		response["failed"] = failed
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification published!", response)
}
