package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"sprintpath/config"
	"sprintpath/database"
	"sprintpath/models"
)

// CreateNotification persists one in-app notification
func CreateNotification(userID uint, notifType, title, body, link string) error {
	notification := models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Link:   link,
	}
	return database.Database.Db.Create(&notification).Error
}

// Notify creates a notification fire-and-forget. Core flows never block or
// fail on notification delivery.
func Notify(userID uint, notifType, title, body, link string) {
	go func() {
		if err := CreateNotification(userID, notifType, title, body, link); err != nil {
			log.Printf("[NOTIFY] failed to create notification for user %d: %v", userID, err)
		}
	}()
}

// NotifyWithEmail creates the in-app notification and mirrors it to the
// user's email inbox. Used for review outcomes the coach should not miss.
func NotifyWithEmail(userID uint, notifType, title, body, link string) {
	Notify(userID, notifType, title, body, link)
	go func() {
		var user models.User
		if err := database.Database.Db.First(&user, userID).Error; err != nil || user.Email == "" {
			return
		}
		if err := SendEmail([]string{user.Email}, title, "<p>"+body+"</p>"); err != nil {
			log.Printf("[NOTIFY] failed to email user %d: %v", userID, err)
		}
	}()
}

// SendEmail sends an HTML email over SMTP. Sending is skipped when no
// sender address is configured.
func SendEmail(to []string, subject string, htmlBody string) error {
	if config.AppConfig == nil || config.AppConfig.EmailSender == "" {
		return nil
	}

	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: SprintPath <%s>\r\n", from)
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
