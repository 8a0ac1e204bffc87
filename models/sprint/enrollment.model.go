package sprint

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Enrollment status values
const (
	EnrollmentEnrolled   = "ENROLLED"
	EnrollmentInProgress = "IN_PROGRESS"
	EnrollmentCompleted  = "COMPLETED"
)

// DayProgress is one day's completion/submission state inside an enrollment
type DayProgress struct {
	Day               int        `json:"day"`
	Completed         bool       `json:"completed"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
	Submission        string     `json:"submission,omitempty"`
	SubmissionFileURL string     `json:"submissionFileUrl,omitempty"`
	Reflection        string     `json:"reflection,omitempty"`
	ProofSelection    string     `json:"proofSelection,omitempty"`
}

// Enrollment is one participant's attempt at one sprint. Created once,
// never deleted; days are only ever flipped to completed, never removed.
type Enrollment struct {
	gorm.Model
	EnrollmentRef string `gorm:"type:varchar(100);uniqueIndex" json:"enrollmentRef"`
	UserID        uint   `gorm:"not null;uniqueIndex:idx_user_sprint" json:"userId"`
	SprintID      uint   `gorm:"not null;uniqueIndex:idx_user_sprint;index" json:"sprintId"`

	Status        string         `gorm:"type:varchar(20);default:'ENROLLED'" json:"status"`
	Progress      datatypes.JSON `json:"progress"` // []DayProgress, one per sprint day
	CompletedDays int            `gorm:"default:0" json:"completedDays"`
	TotalDays     int            `gorm:"default:0" json:"totalDays"`

	StartedAt   time.Time  `gorm:"not null" json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	PaymentID   *uint      `json:"paymentId"` // nil for free sprints

	IsDeleted bool `gorm:"default:false" json:"isDeleted"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// EnrollmentRefFor builds the deterministic enrollment id for a user/sprint pair
func EnrollmentRefFor(userID, sprintID uint) string {
	return fmt.Sprintf("enrollment_%d_%d", userID, sprintID)
}
