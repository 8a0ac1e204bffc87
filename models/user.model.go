package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleParticipant = "PARTICIPANT"
	RoleCoach       = "COACH"
	RoleAdmin       = "ADMIN"
)

type User struct {
	gorm.Model
	ProfileImage  string    `gorm:"default:''"`
	Name          string    `gorm:"default:''"`
	Email         string    `gorm:"unique;not null"`
	Role          string    `gorm:"default:'PARTICIPANT'"` // PARTICIPANT, COACH, ADMIN
	Password      string    `gorm:"not null"`
	Bio           string    `gorm:"type:text"`
	WalletBalance uint      `gorm:"default:0"` // reward credits, only ever added to
	HelpedCount   int       `gorm:"default:0"` // peers helped in community threads
	LastLogin     time.Time `gorm:"default:NULL"`
	IsDeleted     bool      `gorm:"default:false"`
}
