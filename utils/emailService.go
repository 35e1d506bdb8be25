package utils

import (
	"fmt"
	"lms/config"
	"lms/database"
	"lms/models"
	"log"
	"net/smtp"
	"strings"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LearnSpace <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper for a consistent look across triggers
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B3B6F; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B3B6F; line-height: 1.6; }
			.content h2 { color: #1B3B6F; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #5B8C5A; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LEARNSPACE</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 LearnSpace. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to LearnSpace"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>LearnSpace</strong>! Your account has been created.</p>
		<p>Browse the course catalog and enroll to start learning.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// SendNewContentEmails emails every approved student of a course about new
// content. Fire-and-forget companion to the in-app notification fan-out; an
// email failure is only logged.
func SendNewContentEmails(courseID uint, courseTitle, message string) {
	var enrollments []models.Enrollment
	if err := database.Database.Db.
		Where("course_id = ? AND status = ? AND is_deleted = ?", courseID, models.EnrollmentApproved, false).
		Preload("Student").Find(&enrollments).Error; err != nil {
		log.Printf("Error fetching roster for course %d emails: %v", courseID, err)
		return
	}

	subject := "Course update: " + courseTitle
	for _, enrollment := range enrollments {
		if enrollment.Student.Email == "" {
			continue
		}
		body := fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>There is new content in <strong>%s</strong>.</p>
			<div class="info-box">%s</div>
			<p>Log in to view it.</p>
		`, enrollment.Student.Name, courseTitle, message)

		go SendEmail([]string{enrollment.Student.Email}, subject, getEmailTemplate("New Course Content", body))
	}
}
