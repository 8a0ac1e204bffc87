package lifecycle

import (
	"encoding/json"
	"errors"
	"time"

	sprintModels "sprintpath/models/sprint"

	"gorm.io/datatypes"
)

var (
	ErrArchived         = errors.New("sprint is archived and can no longer be edited")
	ErrNotSubmittable   = errors.New("only draft or rejected sprints can be submitted for review")
	ErrNotPending       = errors.New("sprint is not pending approval")
	ErrRegistryFields   = errors.New("registry fields are incomplete")
	ErrCurriculumFields = errors.New("curriculum is incomplete")
)

// ContentPatch is the set of coach-editable content fields. Nil means
// "not provided" so a patch can distinguish clearing from omitting.
// Slice fields replace the canonical value wholesale on merge.
type ContentPatch struct {
	Title          *string                    `json:"title,omitempty"`
	Transformation *string                    `json:"transformation,omitempty"`
	Category       *string                    `json:"category,omitempty"`
	DurationDays   *int                       `json:"durationDays,omitempty"`
	PriceNaira     *float64                   `json:"priceNaira,omitempty"`
	CoverImageURL  *string                    `json:"coverImageUrl,omitempty"`
	DailyContent   []sprintModels.DayContent  `json:"dailyContent,omitempty"`
	Outcomes       []string                   `json:"outcomes,omitempty"`
	ForAudience    []string                   `json:"forAudience,omitempty"`
	NotForAudience []string                   `json:"notForAudience,omitempty"`
	MethodSnapshot []sprintModels.MethodStep  `json:"methodSnapshot,omitempty"`
}

// IsEmpty reports whether the patch carries no fields at all
func (p ContentPatch) IsEmpty() bool {
	return p.Title == nil && p.Transformation == nil && p.Category == nil &&
		p.DurationDays == nil && p.PriceNaira == nil && p.CoverImageURL == nil &&
		p.DailyContent == nil && p.Outcomes == nil && p.ForAudience == nil &&
		p.NotForAudience == nil && p.MethodSnapshot == nil
}

// ApplyOptions controls edit routing
type ApplyOptions struct {
	ActorIsAdmin bool
	// Foundational categories are platform-authored; admin edits to them
	// apply directly and stay live without a separate audit step.
	Foundational bool
}

// ApplyEdit routes a content edit according to the sprint's approval state.
//
// Draft and rejected sprints take direct writes (a rejected sprint silently
// reverts to draft). An approved sprint never takes direct writes: the patch
// is merged into PendingChanges and the sprint re-enters pending approval,
// leaving the live view untouched. The caller persists the mutated record.
func ApplyEdit(s *sprintModels.Sprint, patch ContentPatch, opts ApplyOptions) (staged bool, err error) {
	if s.ApprovalStatus == sprintModels.StatusArchived {
		return false, ErrArchived
	}

	// Platform-authored sprints bypass staged review: admin writes land
	// directly and the sprint stays approved and published.
	if opts.ActorIsAdmin && opts.Foundational {
		applyPatch(s, patch)
		if s.ApprovalStatus == sprintModels.StatusApproved || s.ApprovalStatus == sprintModels.StatusDraft {
			s.ApprovalStatus = sprintModels.StatusApproved
			s.Published = true
		}
		return false, nil
	}

	switch s.ApprovalStatus {
	case sprintModels.StatusApproved, sprintModels.StatusPendingApproval:
		if s.ApprovalStatus == sprintModels.StatusPendingApproval && !s.Published {
			// A first-time submission that was never live takes direct writes;
			// staging only protects a live canonical view.
			applyPatch(s, patch)
			return false, nil
		}
		merged, err := mergeOverlay(s.PendingChanges, patch)
		if err != nil {
			return false, err
		}
		s.PendingChanges = merged
		s.ApprovalStatus = sprintModels.StatusPendingApproval
		return true, nil

	case sprintModels.StatusRejected:
		applyPatch(s, patch)
		s.ApprovalStatus = sprintModels.StatusDraft
		return false, nil

	default: // DRAFT
		applyPatch(s, patch)
		return false, nil
	}
}

// Submit moves a draft or rejected sprint to pending approval after checking
// both completeness predicates over the edit view.
func Submit(s *sprintModels.Sprint) error {
	if s.ApprovalStatus != sprintModels.StatusDraft && s.ApprovalStatus != sprintModels.StatusRejected {
		return ErrNotSubmittable
	}
	view, err := EditView(*s)
	if err != nil {
		return err
	}
	if RegistryIncomplete(view) {
		return ErrRegistryFields
	}
	if CurriculumIncomplete(view) {
		return ErrCurriculumFields
	}
	now := time.Now()
	s.ApprovalStatus = sprintModels.StatusPendingApproval
	s.SubmittedAt = &now
	return nil
}

// Approve merges staged changes into the canonical fields, applies any admin
// overrides on top, clears the overlay and review feedback, and marks the
// sprint approved and published. The caller must persist the whole record in
// one write so no reader sees a cleared overlay with pre-merge canonicals.
func Approve(s *sprintModels.Sprint, adminOverrides ContentPatch, adminID uint) error {
	if s.ApprovalStatus != sprintModels.StatusPendingApproval {
		return ErrNotPending
	}
	if len(s.PendingChanges) > 0 {
		var staged ContentPatch
		if err := json.Unmarshal(s.PendingChanges, &staged); err != nil {
			return err
		}
		applyPatch(s, staged)
	}
	applyPatch(s, adminOverrides)

	now := time.Now()
	s.PendingChanges = nil
	s.ReviewFeedback = nil
	s.ApprovalStatus = sprintModels.StatusApproved
	s.Published = true
	s.ApprovedAt = &now
	s.ApprovedBy = &adminID
	return nil
}

// Reject marks the sprint rejected with per-field feedback. The staged
// overlay is left intact so the coach can keep refining the same edit.
func Reject(s *sprintModels.Sprint, feedback map[string]string) error {
	if s.ApprovalStatus != sprintModels.StatusPendingApproval {
		return ErrNotPending
	}
	if len(feedback) > 0 {
		raw, err := json.Marshal(feedback)
		if err != nil {
			return err
		}
		s.ReviewFeedback = datatypes.JSON(raw)
	}
	s.ApprovalStatus = sprintModels.StatusRejected
	return nil
}

// Archive retires a sprint. Terminal for new enrollments; existing
// enrollments keep reading the canonical content.
func Archive(s *sprintModels.Sprint) {
	s.ApprovalStatus = sprintModels.StatusArchived
	s.Published = false
}

// EditView returns the sprint with PendingChanges overlaid on the canonical
// fields. This is what the coach and the reviewing admin see; participants
// always see the canonical record.
func EditView(s sprintModels.Sprint) (sprintModels.Sprint, error) {
	if len(s.PendingChanges) == 0 {
		return s, nil
	}
	var staged ContentPatch
	if err := json.Unmarshal(s.PendingChanges, &staged); err != nil {
		return s, err
	}
	applyPatch(&s, staged)
	return s, nil
}

// RegistryIncomplete reports whether any of the listing fields required for
// review are still empty.
func RegistryIncomplete(s sprintModels.Sprint) bool {
	if s.Title == "" || s.Transformation == "" || s.Category == "" || s.CoverImageURL == "" {
		return true
	}
	var outcomes []string
	if len(s.Outcomes) > 0 {
		_ = json.Unmarshal(s.Outcomes, &outcomes)
	}
	return len(outcomes) == 0
}

// CurriculumIncomplete reports whether any day 1..duration is missing lesson
// text or a task prompt.
func CurriculumIncomplete(s sprintModels.Sprint) bool {
	if s.DurationDays < 1 {
		return true
	}
	var days []sprintModels.DayContent
	if len(s.DailyContent) > 0 {
		if err := json.Unmarshal(s.DailyContent, &days); err != nil {
			return true
		}
	}
	byDay := make(map[int]sprintModels.DayContent, len(days))
	for _, d := range days {
		byDay[d.Day] = d
	}
	for day := 1; day <= s.DurationDays; day++ {
		d, ok := byDay[day]
		if !ok || d.LessonText == "" || d.TaskPrompt == "" {
			return true
		}
	}
	return false
}

// applyPatch writes the provided patch fields onto the sprint. Scalars are
// pointer-guarded; slice fields replace the stored JSON wholesale.
func applyPatch(s *sprintModels.Sprint, p ContentPatch) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Transformation != nil {
		s.Transformation = *p.Transformation
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.DurationDays != nil {
		s.DurationDays = *p.DurationDays
	}
	if p.PriceNaira != nil {
		s.PriceNaira = *p.PriceNaira
	}
	if p.CoverImageURL != nil {
		s.CoverImageURL = *p.CoverImageURL
	}
	if p.DailyContent != nil {
		s.DailyContent = mustJSON(p.DailyContent)
	}
	if p.Outcomes != nil {
		s.Outcomes = mustJSON(p.Outcomes)
	}
	if p.ForAudience != nil {
		s.ForAudience = mustJSON(p.ForAudience)
	}
	if p.NotForAudience != nil {
		s.NotForAudience = mustJSON(p.NotForAudience)
	}
	if p.MethodSnapshot != nil {
		s.MethodSnapshot = mustJSON(p.MethodSnapshot)
	}
}

// mergeOverlay folds a new patch into an existing staged overlay,
// field-group last-write-wins.
func mergeOverlay(existing datatypes.JSON, patch ContentPatch) (datatypes.JSON, error) {
	merged := ContentPatch{}
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &merged); err != nil {
			return nil, err
		}
	}
	if patch.Title != nil {
		merged.Title = patch.Title
	}
	if patch.Transformation != nil {
		merged.Transformation = patch.Transformation
	}
	if patch.Category != nil {
		merged.Category = patch.Category
	}
	if patch.DurationDays != nil {
		merged.DurationDays = patch.DurationDays
	}
	if patch.PriceNaira != nil {
		merged.PriceNaira = patch.PriceNaira
	}
	if patch.CoverImageURL != nil {
		merged.CoverImageURL = patch.CoverImageURL
	}
	if patch.DailyContent != nil {
		merged.DailyContent = patch.DailyContent
	}
	if patch.Outcomes != nil {
		merged.Outcomes = patch.Outcomes
	}
	if patch.ForAudience != nil {
		merged.ForAudience = patch.ForAudience
	}
	if patch.NotForAudience != nil {
		merged.NotForAudience = patch.NotForAudience
	}
	if patch.MethodSnapshot != nil {
		merged.MethodSnapshot = patch.MethodSnapshot
	}
	raw, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func mustJSON(v interface{}) datatypes.JSON {
	raw, _ := json.Marshal(v)
	return datatypes.JSON(raw)
}
