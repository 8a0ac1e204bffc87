package models

import "gorm.io/gorm"

// Notification types
const (
	NotificationSubmission     = "SUBMISSION"
	NotificationSprintApproved = "SPRINT_APPROVED"
	NotificationSprintRejected = "SPRINT_REJECTED"
	NotificationPaymentSuccess = "PAYMENT_SUCCESS"
	NotificationMilestone      = "MILESTONE"
)

// Notification is an in-app notification created fire-and-forget by core flows.
// Delivery/rendering is the client's concern.
type Notification struct {
	gorm.Model
	UserID    uint   `gorm:"not null;index" json:"userId"`
	Type      string `gorm:"type:varchar(50);not null" json:"type"`
	Title     string `gorm:"type:varchar(255)" json:"title"`
	Body      string `gorm:"type:text" json:"body"`
	Link      string `gorm:"type:varchar(255)" json:"link"` // optional deep link
	IsRead    bool   `gorm:"default:false" json:"isRead"`
	IsDeleted bool   `gorm:"default:false" json:"isDeleted"`
}
