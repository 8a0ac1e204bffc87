package sprint

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ApprovalStatus enum values
const (
	StatusDraft           = "DRAFT"
	StatusPendingApproval = "PENDING_APPROVAL"
	StatusApproved        = "APPROVED"
	StatusRejected        = "REJECTED"
	StatusArchived        = "ARCHIVED"
)

// DayContent is one day's curriculum inside a sprint
type DayContent struct {
	Day        int    `json:"day"`
	LessonText string `json:"lessonText"`
	TaskPrompt string `json:"taskPrompt"`
}

// MethodStep is one phase/action/outcome triplet of the coach's method snapshot
type MethodStep struct {
	Phase   string `json:"phase"`
	Action  string `json:"action"`
	Outcome string `json:"outcome"`
}

// Sprint is the authored content unit of the marketplace.
//
// Canonical fields are what enrolled participants see. PendingChanges is a
// staged overlay of content edits made while the sprint is live; it is merged
// into the canonical fields only on admin approval.
type Sprint struct {
	gorm.Model
	CoachID uint `gorm:"not null;index" json:"coachId"` // immutable after creation

	Title          string  `gorm:"type:varchar(255)" json:"title"`
	Transformation string  `gorm:"type:text" json:"transformation"` // what the participant walks away with
	Category       string  `gorm:"type:varchar(100);index" json:"category"`
	DurationDays   int     `gorm:"default:0" json:"durationDays"`
	PriceNaira     float64 `gorm:"default:0" json:"priceNaira"` // 0 = free sprint
	CoverImageURL  string  `gorm:"type:varchar(512)" json:"coverImageUrl"`

	DailyContent   datatypes.JSON `json:"dailyContent"`   // []DayContent, one per day
	Outcomes       datatypes.JSON `json:"outcomes"`       // []string
	ForAudience    datatypes.JSON `json:"forAudience"`    // []string
	NotForAudience datatypes.JSON `json:"notForAudience"` // []string
	MethodSnapshot datatypes.JSON `json:"methodSnapshot"` // []MethodStep

	ApprovalStatus string `gorm:"type:varchar(20);default:'DRAFT';index" json:"approvalStatus"`
	Published      bool   `gorm:"default:false" json:"published"`

	// PendingChanges holds a lifecycle.ContentPatch awaiting admin audit.
	// Null when no edit is in flight.
	PendingChanges datatypes.JSON `json:"pendingChanges"`
	// ReviewFeedback maps field name -> admin comment from the last rejection.
	ReviewFeedback datatypes.JSON `json:"reviewFeedback"`

	SubmittedAt *time.Time `json:"submittedAt"`
	ApprovedAt  *time.Time `json:"approvedAt"`
	ApprovedBy  *uint      `json:"approvedBy"`

	IsDeleted bool `gorm:"default:false" json:"isDeleted"`
}

func (Sprint) TableName() string {
	return "sprints"
}
