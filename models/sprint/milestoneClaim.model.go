package sprint

import (
	"time"

	"gorm.io/gorm"
)

// MilestoneClaim records one claimed milestone for one user. The unique
// index is what makes claiming at-most-once under concurrent retries.
type MilestoneClaim struct {
	gorm.Model
	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_milestone" json:"userId"`
	MilestoneID string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_user_milestone" json:"milestoneId"`
	Points      uint      `gorm:"not null" json:"points"`
	ClaimedAt   time.Time `gorm:"not null" json:"claimedAt"`
}

func (MilestoneClaim) TableName() string {
	return "milestone_claims"
}
