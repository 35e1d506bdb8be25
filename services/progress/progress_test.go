package progress

import (
	"lms/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // keep every query on the one :memory: database

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Lesson{},
		&models.Quiz{},
		&models.Assignment{},
		&models.Enrollment{},
		&models.StudentProgress{},
	))
	return db
}

func seedCourse(t *testing.T, db *gorm.DB, lessons, quizzes, assignments int) models.Course {
	t.Helper()

	course := models.Course{Title: "Algebra Basics", Slug: "algebra-basics"}
	require.NoError(t, db.Create(&course).Error)

	for i := 0; i < lessons; i++ {
		require.NoError(t, db.Create(&models.Lesson{CourseID: course.ID, Title: "Lesson"}).Error)
	}
	for i := 0; i < quizzes; i++ {
		require.NoError(t, db.Create(&models.Quiz{CourseID: course.ID, Title: "Quiz", Questions: []byte("[]")}).Error)
	}
	for i := 0; i < assignments; i++ {
		require.NoError(t, db.Create(&models.Assignment{CourseID: course.ID, Title: "Assignment"}).Error)
	}
	return course
}

func seedEnrollment(t *testing.T, db *gorm.DB, studentID, courseID uint) models.Enrollment {
	t.Helper()

	enrollment := models.Enrollment{StudentID: studentID, CourseID: courseID, Status: models.EnrollmentApproved}
	require.NoError(t, db.Create(&enrollment).Error)
	return enrollment
}

// spyCatalog counts aggregation runs; every RecomputeEnrollment call counts
// items exactly once.
type spyCatalog struct {
	inner Catalog
	calls int
}

func (s *spyCatalog) CountItems(courseID uint) (ItemCounts, error) {
	s.calls++
	return s.inner.CountItems(courseID)
}

func uintPtr(v uint) *uint        { return &v }
func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestRecordCompletionUpsertIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	course := seedCourse(t, db, 2, 0, 0)
	seedEnrollment(t, db, 1, course.ID)
	svc := NewService(db)

	in := CompletionInput{StudentID: 1, CourseID: course.ID, LessonID: uintPtr(10)}

	first, err := svc.RecordCompletion(in)
	require.NoError(t, err)
	second, err := svc.RecordCompletion(in)
	require.NoError(t, err)

	assert.Equal(t, first.Record.ID, second.Record.ID)

	var count int64
	require.NoError(t, db.Model(&models.StudentProgress{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRecordCompletionDistinctTuplesCreateDistinctRecords(t *testing.T) {
	db := setupTestDB(t)
	course := seedCourse(t, db, 1, 1, 0)
	seedEnrollment(t, db, 1, course.ID)
	svc := NewService(db)

	// Same numeric id, but one is a lesson and one is a quiz
	_, err := svc.RecordCompletion(CompletionInput{StudentID: 1, CourseID: course.ID, LessonID: uintPtr(7)})
	require.NoError(t, err)
	_, err = svc.RecordCompletion(CompletionInput{StudentID: 1, CourseID: course.ID, QuizID: uintPtr(7)})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.StudentProgress{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestRecordCompletionValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.RecordCompletion(CompletionInput{StudentID: 1})
	assert.ErrorContains(t, err, "course id is required")

	_, err = svc.RecordCompletion(CompletionInput{
		StudentID: 1,
		CourseID:  1,
		LessonID:  uintPtr(1),
		QuizID:    uintPtr(2),
	})
	assert.ErrorContains(t, err, "only one of lesson, quiz or assignment")
}

func TestRecordCompletionDefaultsAndPreservation(t *testing.T) {
	db := setupTestDB(t)
	course := seedCourse(t, db, 1, 0, 0)
	seedEnrollment(t, db, 1, course.ID)
	svc := NewService(db)

	// Completed omitted on a fresh record defaults to true
	res, err := svc.RecordCompletion(CompletionInput{StudentID: 1, CourseID: course.ID, QuizID: uintPtr(3), Score: floatPtr(80)})
	require.NoError(t, err)
	assert.True(t, res.Record.Completed)
	require.NotNil(t, res.Record.Score)
	assert.Equal(t, 80.0, *res.Record.Score)

	// Omitting both on resubmission preserves the prior values
	res, err = svc.RecordCompletion(CompletionInput{StudentID: 1, CourseID: course.ID, QuizID: uintPtr(3)})
	require.NoError(t, err)
	assert.True(t, res.Record.Completed)
	require.NotNil(t, res.Record.Score)
	assert.Equal(t, 80.0, *res.Record.Score)

	// A new score updates in place without touching the completed flag
	res, err = svc.RecordCompletion(CompletionInput{StudentID: 1, CourseID: course.ID, QuizID: uintPtr(3), Score: floatPtr(95)})
	require.NoError(t, err)
	assert.True(t, res.Record.Completed)
	assert.Equal(t, 95.0, *res.Record.Score)
}

func TestAggregationFiresOnlyOnCompletionTransition(t *testing.T) {
	db := setupTestDB(t)
	course := seedCourse(t, db, 2, 0, 0)
	seedEnrollment(t, db, 1, course.ID)

	svc := NewService(db)
	spy := &spyCatalog{inner: svc.Catalog}
	svc.Catalog = spy

	// Fresh completion triggers aggregation
	res, err := svc.RecordCompletion(CompletionInput{StudentID: 1, CourseID: course.ID, LessonID: uintPtr(1)})
	require.NoError(t, err)
	assert.True(t, res.AggregationTriggered)
	assert.Equal(t, 1, spy.calls)

	// Resubmitting an already-completed item does not re-trigger it
	res, err = svc.RecordCompletion(CompletionInput{StudentID: 1, CourseID: course.ID, LessonID: uintPtr(1), Completed: boolPtr(true), Score: floatPtr(100)})
	require.NoError(t, err)
	assert.False(t, res.AggregationTriggered)
	assert.Equal(t, 1, spy.calls)

	// An incomplete record does not trigger it either
	res, err = svc.RecordCompletion(CompletionInput{StudentID: 1, CourseID: course.ID, LessonID: uintPtr(2), Completed: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, res.AggregationTriggered)
	assert.Equal(t, 1, spy.calls)

	// ...until it transitions to completed
	res, err = svc.RecordCompletion(CompletionInput{StudentID: 1, CourseID: course.ID, LessonID: uintPtr(2), Completed: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, res.AggregationTriggered)
	assert.Equal(t, 2, spy.calls)
}

func TestRecomputeEnrollmentPercentage(t *testing.T) {
	db := setupTestDB(t)
	course := seedCourse(t, db, 4, 2, 0) // 6 items total
	seedEnrollment(t, db, 1, course.ID)
	svc := NewService(db)

	for i := uint(1); i <= 3; i++ {
		_, err := svc.RecordCompletion(CompletionInput{StudentID: 1, CourseID: course.ID, LessonID: uintPtr(i)})
		require.NoError(t, err)
	}

	var enrollment models.Enrollment
	require.NoError(t, db.Where("student_id = ? AND course_id = ?", 1, course.ID).First(&enrollment).Error)
	assert.Equal(t, 50, enrollment.Progress) // round(100*3/6)
	assert.NotNil(t, enrollment.LastAccessed)
}

func TestRecomputeEnrollmentRoundsHalfUp(t *testing.T) {
	db := setupTestDB(t)
	course := seedCourse(t, db, 3, 0, 0)
	seedEnrollment(t, db, 1, course.ID)
	svc := NewService(db)

	_, err := svc.RecordCompletion(CompletionInput{StudentID: 1, CourseID: course.ID, LessonID: uintPtr(1)})
	require.NoError(t, err)

	var enrollment models.Enrollment
	require.NoError(t, db.Where("student_id = ? AND course_id = ?", 1, course.ID).First(&enrollment).Error)
	assert.Equal(t, 33, enrollment.Progress) // round(100/3), not truncated 33.33 or 34

	// 3/8 = 37.5 rounds up to 38
	db2 := setupTestDB(t)
	course2 := seedCourse(t, db2, 8, 0, 0)
	seedEnrollment(t, db2, 1, course2.ID)
	svc2 := NewService(db2)
	for i := uint(1); i <= 3; i++ {
		_, err := svc2.RecordCompletion(CompletionInput{StudentID: 1, CourseID: course2.ID, LessonID: uintPtr(i)})
		require.NoError(t, err)
	}
	var enrollment2 models.Enrollment
	require.NoError(t, db2.Where("student_id = ? AND course_id = ?", 1, course2.ID).First(&enrollment2).Error)
	assert.Equal(t, 38, enrollment2.Progress)
}

func TestRecomputeEnrollmentZeroItemsIsZeroNotError(t *testing.T) {
	db := setupTestDB(t)
	course := seedCourse(t, db, 0, 0, 0)
	seedEnrollment(t, db, 1, course.ID)
	svc := NewService(db)

	require.NoError(t, svc.RecomputeEnrollment(1, course.ID))

	var enrollment models.Enrollment
	require.NoError(t, db.Where("student_id = ? AND course_id = ?", 1, course.ID).First(&enrollment).Error)
	assert.Equal(t, 0, enrollment.Progress)
}

func TestCourseProgressSummary(t *testing.T) {
	db := setupTestDB(t)
	course := seedCourse(t, db, 2, 1, 0)
	seedEnrollment(t, db, 1, course.ID)
	svc := NewService(db)

	_, err := svc.RecordCompletion(CompletionInput{StudentID: 1, CourseID: course.ID, LessonID: uintPtr(1)})
	require.NoError(t, err)

	summary, err := svc.CourseProgress(1, course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.CompletedItems)
	assert.Equal(t, int64(3), summary.TotalItems)
	assert.Equal(t, 33, summary.Enrollment.Progress)
	assert.Len(t, summary.Records, 1)

	_, err = svc.CourseProgress(2, course.ID)
	assert.ErrorContains(t, err, "not found")
}
