package courseRoutes

import (
	courseController "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all course routes, student-facing and authoring.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Course listing and details
	courseGroup.Get("/list", middleware.JWTMiddleware, courseValidator.CourseList(), courseController.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, courseController.GetCourseDetails)

	// Authoring (teacher role)
	courseGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), courseValidator.CreateCourse(), courseController.CreateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), courseValidator.CourseID(), courseController.DeleteCourse)

	// Lessons
	courseGroup.Get("/:id/lessons", middleware.JWTMiddleware, courseValidator.CourseID(), courseController.GetLessons)
	courseGroup.Post("/:id/lessons", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), courseValidator.CourseID(), courseValidator.CreateLesson(), courseController.CreateLesson)
	courseGroup.Delete("/:id/lessons/:lesson_id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), courseValidator.CourseItemID("lesson_id"), courseController.DeleteLesson)

	// Quizzes
	courseGroup.Get("/:id/quizzes", middleware.JWTMiddleware, courseValidator.CourseID(), courseController.GetQuizzes)
	courseGroup.Post("/:id/quizzes", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), courseValidator.CourseID(), courseValidator.CreateQuiz(), courseController.CreateQuiz)
	courseGroup.Delete("/:id/quizzes/:quiz_id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), courseValidator.CourseItemID("quiz_id"), courseController.DeleteQuiz)

	// Assignments
	courseGroup.Get("/:id/assignments", middleware.JWTMiddleware, courseValidator.CourseID(), courseController.GetAssignments)
	courseGroup.Post("/:id/assignments", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), courseValidator.CourseID(), courseValidator.CreateAssignment(), courseController.CreateAssignment)

	// Announcements
	courseGroup.Get("/:id/announcements", middleware.JWTMiddleware, courseValidator.CourseID(), courseController.GetAnnouncements)
	courseGroup.Post("/:id/announcements", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), courseValidator.CourseID(), courseValidator.CreateAnnouncement(), courseController.CreateAnnouncement)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, courseValidator.CourseID(), courseController.EnrollInCourse)
	courseGroup.Post("/:id/students/:student_id/approve", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), courseValidator.CourseItemID("student_id"), courseController.ApproveEnrollment)
	courseGroup.Get("/:id/students", middleware.JWTMiddleware, courseValidator.CourseID(), courseController.GetCourseStudents)

	// Student's own enrollments
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, courseController.GetMyEnrollments)
}
