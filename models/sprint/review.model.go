package sprint

import "gorm.io/gorm"

// Review status enum values
const (
	ReviewStatusPending  = "PENDING"
	ReviewStatusApproved = "APPROVED"
	ReviewStatusRejected = "REJECTED"
)

// SprintReview is a participant's rating of a sprint, moderated by admins
type SprintReview struct {
	gorm.Model
	SprintID  uint   `gorm:"not null;index" json:"sprintId"`
	UserID    uint   `gorm:"not null;index" json:"userId"`
	Rating    int    `gorm:"not null" json:"rating"` // 1-5
	Review    string `gorm:"type:text" json:"review"`
	Status    string `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	IsDeleted bool   `gorm:"default:false" json:"isDeleted"`
}

func (SprintReview) TableName() string {
	return "sprint_reviews"
}
