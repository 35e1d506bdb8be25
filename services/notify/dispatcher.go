// Package notify fans out in-app notifications to course rosters and serves
// the per-student notification feed.
package notify

import (
	"context"
	"fmt"
	"lms/models"
	"lms/services"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const defaultConcurrency = 8

// Writer persists a single notification. Injected so tests can fail
// individual recipients without a real storage fault.
type Writer interface {
	Create(ctx context.Context, n *models.Notification) error
}

type gormWriter struct {
	db *gorm.DB
}

func (w gormWriter) Create(ctx context.Context, n *models.Notification) error {
	return w.db.WithContext(ctx).Create(n).Error
}

// ContentPayload carries the rendered-message inputs for a content event.
type ContentPayload struct {
	Title       string
	TeacherName string
	Deadline    *time.Time
}

// RecipientOutcome is the per-student result of a fan-out.
type RecipientOutcome struct {
	StudentID      uint   `json:"student_id"`
	NotificationID uint   `json:"notification_id,omitempty"`
	Error          string `json:"error,omitempty"`
}

// DispatchResult reports how many recipients were notified. Partial failure
// is carried here, not escalated: one student's failed write never blocks
// the rest.
type DispatchResult struct {
	NotifiedCount int                `json:"notified_count"`
	Outcomes      []RecipientOutcome `json:"outcomes,omitempty"`
}

func (r DispatchResult) Failures() []RecipientOutcome {
	var failed []RecipientOutcome
	for _, o := range r.Outcomes {
		if o.Error != "" {
			failed = append(failed, o)
		}
	}
	return failed
}

// Dispatcher fans out one notification per approved enrollment when a
// teacher publishes new content.
type Dispatcher struct {
	DB          *gorm.DB
	Writer      Writer
	Concurrency int
}

func NewDispatcher(db *gorm.DB) *Dispatcher {
	return &Dispatcher{DB: db, Writer: gormWriter{db: db}, Concurrency: defaultConcurrency}
}

// DispatchContentNotification creates one notification per approved student
// of the course. Writes are issued concurrently and independently; the
// result carries a per-recipient outcome list.
func (d *Dispatcher) DispatchContentNotification(ctx context.Context, courseID uint, kind string, payload ContentPayload) (DispatchResult, error) {
	var res DispatchResult

	if courseID == 0 {
		return res, fmt.Errorf("%w: course id is required", services.ErrValidation)
	}
	switch kind {
	case models.NotificationNewLesson, models.NotificationNewQuiz,
		models.NotificationNewAssignment, models.NotificationDeadlineReminder,
		models.NotificationGeneric:
	default:
		return res, fmt.Errorf("%w: unknown notification kind %q", services.ErrValidation, kind)
	}

	var roster []models.Enrollment
	if err := d.DB.Where("course_id = ? AND status = ? AND is_deleted = ?", courseID, models.EnrollmentApproved, false).
		Find(&roster).Error; err != nil {
		return res, fmt.Errorf("fetch roster: %w", err)
	}

	message := RenderMessage(kind, payload)
	outcomes := make([]RecipientOutcome, len(roster))

	limit := d.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}
	var g errgroup.Group
	g.SetLimit(limit)

	for i, enrollment := range roster {
		i, enrollment := i, enrollment
		g.Go(func() error {
			n := models.Notification{
				StudentID:   enrollment.StudentID,
				CourseID:    courseID,
				TeacherName: payload.TeacherName,
				Message:     message,
				Kind:        kind,
			}
			if err := d.Writer.Create(ctx, &n); err != nil {
				log.Printf("Error notifying student %d for course %d: %v", enrollment.StudentID, courseID, err)
				outcomes[i] = RecipientOutcome{StudentID: enrollment.StudentID, Error: err.Error()}
				return nil // isolate this recipient; keep going
			}
			outcomes[i] = RecipientOutcome{StudentID: enrollment.StudentID, NotificationID: n.ID}
			return nil
		})
	}
	_ = g.Wait()

	res.Outcomes = outcomes
	for _, o := range outcomes {
		if o.Error == "" {
			res.NotifiedCount++
		}
	}

	return res, nil
}

// RenderMessage builds the feed message for a content event, matching the
// "New quiz available: <title> - Due <date>" wording students see.
func RenderMessage(kind string, payload ContentPayload) string {
	var message string
	switch kind {
	case models.NotificationNewLesson:
		message = fmt.Sprintf("New lesson available: %s", payload.Title)
	case models.NotificationNewQuiz:
		message = fmt.Sprintf("New quiz available: %s", payload.Title)
	case models.NotificationNewAssignment:
		message = fmt.Sprintf("New assignment available: %s", payload.Title)
	case models.NotificationDeadlineReminder:
		message = fmt.Sprintf("Reminder: %s is due soon", payload.Title)
	default:
		message = payload.Title
	}
	if payload.Deadline != nil {
		message += " - Due " + payload.Deadline.Format("1/2/2006")
	}
	return message
}
