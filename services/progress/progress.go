// Package progress maintains student completion records and keeps the cached
// progress percentage on enrollments in sync with them.
package progress

import (
	"fmt"
	"lms/models"
	"lms/services"
	"log"
	"math"
	"time"

	"gorm.io/gorm"
)

// ItemCounts is the live catalog size of a course at aggregation time.
type ItemCounts struct {
	Lessons     int64
	Quizzes     int64
	Assignments int64
}

func (c ItemCounts) Total() int64 {
	return c.Lessons + c.Quizzes + c.Assignments
}

// Catalog reads item counts for a course. Counted fresh on every recompute
// so the percentage always reflects committed catalog state; do not cache.
type Catalog interface {
	CountItems(courseID uint) (ItemCounts, error)
}

// GormCatalog counts published, non-deleted items straight from the tables.
type GormCatalog struct {
	DB *gorm.DB
}

func (g GormCatalog) CountItems(courseID uint) (ItemCounts, error) {
	var counts ItemCounts

	if err := g.DB.Model(&models.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Count(&counts.Lessons).Error; err != nil {
		return counts, fmt.Errorf("count lessons: %w", err)
	}
	if err := g.DB.Model(&models.Quiz{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Count(&counts.Quizzes).Error; err != nil {
		return counts, fmt.Errorf("count quizzes: %w", err)
	}
	if err := g.DB.Model(&models.Assignment{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Count(&counts.Assignments).Error; err != nil {
		return counts, fmt.Errorf("count assignments: %w", err)
	}

	return counts, nil
}

// Service is the progress aggregator. DB and Catalog are injected so tests
// can swap in an in-memory database and a counting spy.
type Service struct {
	DB      *gorm.DB
	Catalog Catalog
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db, Catalog: GormCatalog{DB: db}}
}

// CompletionInput identifies one completion event. At most one of
// LessonID/QuizID/AssignmentID may be set; none means a course-level record.
type CompletionInput struct {
	StudentID    uint
	CourseID     uint
	LessonID     *uint
	QuizID       *uint
	AssignmentID *uint
	Completed    *bool // nil: true on insert, preserved on update
	Score        *float64
}

// CompletionResult reports the persisted record plus what happened to the
// secondary aggregation step; AggregationErr never undoes the record write.
type CompletionResult struct {
	Record               models.StudentProgress
	AggregationTriggered bool
	AggregationErr       error
}

// RecordCompletion upserts the progress record for the input's tuple and, on
// a not-completed -> completed transition, recomputes the enrollment's cached
// percentage. Resubmitting an already-completed item updates the record but
// does not re-trigger aggregation.
func (s *Service) RecordCompletion(in CompletionInput) (CompletionResult, error) {
	var res CompletionResult

	if in.CourseID == 0 {
		return res, fmt.Errorf("%w: course id is required", services.ErrValidation)
	}
	set := 0
	for _, id := range []*uint{in.LessonID, in.QuizID, in.AssignmentID} {
		if id != nil {
			set++
		}
	}
	if set > 1 {
		return res, fmt.Errorf("%w: only one of lesson, quiz or assignment may be set", services.ErrValidation)
	}

	// Lookup keys on the full tuple; unset item columns must be NULL so a
	// lesson record never collides with a quiz record for the same ids.
	query := s.DB.Where("student_id = ? AND course_id = ? AND is_deleted = ?", in.StudentID, in.CourseID, false)
	query = tupleCondition(query, "lesson_id", in.LessonID)
	query = tupleCondition(query, "quiz_id", in.QuizID)
	query = tupleCondition(query, "assignment_id", in.AssignmentID)

	var existing models.StudentProgress
	err := query.First(&existing).Error

	wasCompleted := false

	switch {
	case err == nil:
		wasCompleted = existing.Completed
		if in.Completed != nil {
			existing.Completed = *in.Completed
		}
		if in.Score != nil {
			existing.Score = in.Score
		}
		existing.SubmittedAt = time.Now()
		if err := s.DB.Save(&existing).Error; err != nil {
			return res, fmt.Errorf("update progress record: %w", err)
		}
		res.Record = existing

	case err == gorm.ErrRecordNotFound:
		completed := true
		if in.Completed != nil {
			completed = *in.Completed
		}
		record := models.StudentProgress{
			StudentID:    in.StudentID,
			CourseID:     in.CourseID,
			LessonID:     in.LessonID,
			QuizID:       in.QuizID,
			AssignmentID: in.AssignmentID,
			Completed:    completed,
			Score:        in.Score,
			SubmittedAt:  time.Now(),
		}
		if err := s.DB.Create(&record).Error; err != nil {
			return res, fmt.Errorf("create progress record: %w", err)
		}
		res.Record = record

	default:
		return res, fmt.Errorf("lookup progress record: %w", err)
	}

	// Aggregation fires only on a fresh completion, so resubmissions of an
	// already-completed item never double-count.
	if res.Record.Completed && !wasCompleted {
		res.AggregationTriggered = true
		if err := s.RecomputeEnrollment(in.StudentID, in.CourseID); err != nil {
			log.Printf("Error updating enrollment progress for student %d course %d: %v", in.StudentID, in.CourseID, err)
			res.AggregationErr = err
		}
	}

	return res, nil
}

func tupleCondition(q *gorm.DB, column string, id *uint) *gorm.DB {
	if id != nil {
		return q.Where(column+" = ?", *id)
	}
	return q.Where(column + " IS NULL")
}

// RecomputeEnrollment recalculates the completion percentage for a
// (student, course) pair from durable state and writes it onto the
// enrollment. Total item count is recounted fresh every call. Concurrent
// callers race last-writer-wins; the value is a cache and re-converges on the
// next completion.
func (s *Service) RecomputeEnrollment(studentID, courseID uint) error {
	var completedCount int64
	if err := s.DB.Model(&models.StudentProgress{}).
		Where("student_id = ? AND course_id = ? AND completed = ? AND is_deleted = ?", studentID, courseID, true, false).
		Count(&completedCount).Error; err != nil {
		return fmt.Errorf("count completed items: %w", err)
	}

	counts, err := s.Catalog.CountItems(courseID)
	if err != nil {
		return err
	}
	totalCount := counts.Total()

	progress := 0
	if totalCount > 0 {
		progress = int(math.Round(float64(completedCount) / float64(totalCount) * 100))
	}

	now := time.Now()
	if err := s.DB.Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ? AND is_deleted = ?", studentID, courseID, false).
		Updates(map[string]interface{}{"progress": progress, "last_accessed": &now}).Error; err != nil {
		return fmt.Errorf("update enrollment progress: %w", err)
	}

	log.Printf("Updated progress for student %d course %d: %d%% (%d/%d items)", studentID, courseID, progress, completedCount, totalCount)
	return nil
}

// CourseSummary is the per-course progress view consumed by dashboards.
type CourseSummary struct {
	Enrollment     models.Enrollment        `json:"enrollment"`
	CompletedItems int64                    `json:"completed_items"`
	TotalItems     int64                    `json:"total_items"`
	Records        []models.StudentProgress `json:"records"`
}

// CourseProgress returns the student's enrollment with its cached percentage
// plus the underlying completion records.
func (s *Service) CourseProgress(studentID, courseID uint) (CourseSummary, error) {
	var summary CourseSummary

	err := s.DB.Where("student_id = ? AND course_id = ? AND is_deleted = ?", studentID, courseID, false).
		First(&summary.Enrollment).Error
	if err == gorm.ErrRecordNotFound {
		return summary, fmt.Errorf("%w: enrollment", services.ErrNotFound)
	}
	if err != nil {
		return summary, fmt.Errorf("lookup enrollment: %w", err)
	}

	if err := s.DB.Where("student_id = ? AND course_id = ? AND is_deleted = ?", studentID, courseID, false).
		Order("submitted_at desc").Find(&summary.Records).Error; err != nil {
		return summary, fmt.Errorf("list progress records: %w", err)
	}
	for _, r := range summary.Records {
		if r.Completed {
			summary.CompletedItems++
		}
	}

	counts, err := s.Catalog.CountItems(courseID)
	if err != nil {
		return summary, err
	}
	summary.TotalItems = counts.Total()

	return summary, nil
}
