package lifecycle

import (
	"encoding/json"
	"testing"

	sprintModels "sprintpath/models/sprint"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string   { return &s }
func intPtr(n int) *int         { return &n }
func f64Ptr(f float64) *float64 { return &f }

// completeSprint builds a sprint that passes both submission predicates
func completeSprint(status string, days int) sprintModels.Sprint {
	content := make([]sprintModels.DayContent, 0, days)
	for d := 1; d <= days; d++ {
		content = append(content, sprintModels.DayContent{
			Day:        d,
			LessonText: "lesson",
			TaskPrompt: "task",
		})
	}
	return sprintModels.Sprint{
		CoachID:        7,
		Title:          "Find Your Niche",
		Transformation: "You will know who you serve",
		Category:       "Clarity",
		DurationDays:   days,
		CoverImageURL:  "https://cdn.example.com/cover.png",
		DailyContent:   mustJSON(content),
		Outcomes:       mustJSON([]string{"a clear niche statement"}),
		ApprovalStatus: status,
	}
}

func TestApplyEditDraftWritesDirectly(t *testing.T) {
	s := completeSprint(sprintModels.StatusDraft, 3)

	staged, err := ApplyEdit(&s, ContentPatch{Title: strPtr("New Title")}, ApplyOptions{})
	require.NoError(t, err)

	assert.False(t, staged)
	assert.Equal(t, "New Title", s.Title)
	assert.Empty(t, s.PendingChanges)
	assert.Equal(t, sprintModels.StatusDraft, s.ApprovalStatus)
}

func TestApplyEditApprovedStagesWithoutTouchingCanonical(t *testing.T) {
	s := completeSprint(sprintModels.StatusApproved, 3)
	s.Published = true
	canonicalBefore := s.DailyContent

	staged, err := ApplyEdit(&s, ContentPatch{
		Title:    strPtr("Sharper Title"),
		Outcomes: []string{"a different outcome"},
	}, ApplyOptions{})
	require.NoError(t, err)

	assert.True(t, staged)
	assert.Equal(t, "Find Your Niche", s.Title)
	assert.Equal(t, []byte(canonicalBefore), []byte(s.DailyContent))
	assert.JSONEq(t, `["a clear niche statement"]`, string(s.Outcomes))
	assert.Equal(t, sprintModels.StatusPendingApproval, s.ApprovalStatus)
	assert.True(t, s.Published)

	var overlay ContentPatch
	require.NoError(t, json.Unmarshal(s.PendingChanges, &overlay))
	require.NotNil(t, overlay.Title)
	assert.Equal(t, "Sharper Title", *overlay.Title)
	assert.Equal(t, []string{"a different outcome"}, overlay.Outcomes)
}

func TestApplyEditOverlayLastWriteWins(t *testing.T) {
	s := completeSprint(sprintModels.StatusApproved, 3)
	s.Published = true

	_, err := ApplyEdit(&s, ContentPatch{
		Title:    strPtr("First Edit"),
		Outcomes: []string{"kept outcome"},
	}, ApplyOptions{})
	require.NoError(t, err)

	_, err = ApplyEdit(&s, ContentPatch{Title: strPtr("Second Edit")}, ApplyOptions{})
	require.NoError(t, err)

	var overlay ContentPatch
	require.NoError(t, json.Unmarshal(s.PendingChanges, &overlay))
	assert.Equal(t, "Second Edit", *overlay.Title)
	// Fields the second edit did not touch survive from the first
	assert.Equal(t, []string{"kept outcome"}, overlay.Outcomes)
}

func TestApplyEditRejectedRevertsToDraft(t *testing.T) {
	s := completeSprint(sprintModels.StatusRejected, 3)

	staged, err := ApplyEdit(&s, ContentPatch{Title: strPtr("Fixed Title")}, ApplyOptions{})
	require.NoError(t, err)

	assert.False(t, staged)
	assert.Equal(t, "Fixed Title", s.Title)
	assert.Equal(t, sprintModels.StatusDraft, s.ApprovalStatus)
}

func TestApplyEditArchivedRefused(t *testing.T) {
	s := completeSprint(sprintModels.StatusArchived, 3)

	_, err := ApplyEdit(&s, ContentPatch{Title: strPtr("Too Late")}, ApplyOptions{})
	assert.ErrorIs(t, err, ErrArchived)
	assert.Equal(t, "Find Your Niche", s.Title)
}

func TestApplyEditFoundationalAdminBypassesReview(t *testing.T) {
	s := completeSprint(sprintModels.StatusApproved, 3)
	s.Published = true
	s.Category = "Core Platform Sprint"

	staged, err := ApplyEdit(&s, ContentPatch{Title: strPtr("Platform Update")},
		ApplyOptions{ActorIsAdmin: true, Foundational: true})
	require.NoError(t, err)

	assert.False(t, staged)
	assert.Equal(t, "Platform Update", s.Title)
	assert.Equal(t, sprintModels.StatusApproved, s.ApprovalStatus)
	assert.True(t, s.Published)
	assert.Empty(t, s.PendingChanges)
}

func TestApplyEditFirstSubmissionTakesDirectWrites(t *testing.T) {
	// Pending but never published: nothing live to protect
	s := completeSprint(sprintModels.StatusPendingApproval, 3)

	staged, err := ApplyEdit(&s, ContentPatch{Title: strPtr("Refined Before Review")}, ApplyOptions{})
	require.NoError(t, err)

	assert.False(t, staged)
	assert.Equal(t, "Refined Before Review", s.Title)
	assert.Empty(t, s.PendingChanges)
}

func TestSubmitHappyPath(t *testing.T) {
	s := completeSprint(sprintModels.StatusDraft, 5)

	require.NoError(t, Submit(&s))
	assert.Equal(t, sprintModels.StatusPendingApproval, s.ApprovalStatus)
	require.NotNil(t, s.SubmittedAt)
}

func TestSubmitIncompleteCurriculum(t *testing.T) {
	s := completeSprint(sprintModels.StatusDraft, 5)

	// Knock out day 4's task prompt
	var days []sprintModels.DayContent
	require.NoError(t, json.Unmarshal(s.DailyContent, &days))
	days[3].TaskPrompt = ""
	s.DailyContent = mustJSON(days)

	assert.ErrorIs(t, Submit(&s), ErrCurriculumFields)
	assert.Equal(t, sprintModels.StatusDraft, s.ApprovalStatus)
}

func TestSubmitIncompleteRegistryFields(t *testing.T) {
	s := completeSprint(sprintModels.StatusDraft, 3)
	s.CoverImageURL = ""

	assert.ErrorIs(t, Submit(&s), ErrRegistryFields)
}

func TestSubmitChecksEditViewNotCanonical(t *testing.T) {
	// Canonical lacks a cover image, but the staged overlay supplies one
	s := completeSprint(sprintModels.StatusRejected, 3)
	s.CoverImageURL = ""
	s.PendingChanges = mustJSON(ContentPatch{CoverImageURL: strPtr("https://cdn.example.com/new.png")})

	assert.NoError(t, Submit(&s))
}

func TestSubmitApprovedRefused(t *testing.T) {
	s := completeSprint(sprintModels.StatusApproved, 3)
	assert.ErrorIs(t, Submit(&s), ErrNotSubmittable)
}

func TestApproveMergesOverlayAndClears(t *testing.T) {
	s := completeSprint(sprintModels.StatusApproved, 3)
	s.Published = true

	_, err := ApplyEdit(&s, ContentPatch{Title: strPtr("Approved Title")}, ApplyOptions{})
	require.NoError(t, err)
	require.Equal(t, sprintModels.StatusPendingApproval, s.ApprovalStatus)

	require.NoError(t, Approve(&s, ContentPatch{}, 99))

	assert.Equal(t, "Approved Title", s.Title)
	assert.Empty(t, s.PendingChanges)
	assert.Empty(t, s.ReviewFeedback)
	assert.Equal(t, sprintModels.StatusApproved, s.ApprovalStatus)
	assert.True(t, s.Published)
	require.NotNil(t, s.ApprovedBy)
	assert.Equal(t, uint(99), *s.ApprovedBy)
	assert.NotNil(t, s.ApprovedAt)
}

func TestApproveAdminOverridesWin(t *testing.T) {
	s := completeSprint(sprintModels.StatusApproved, 3)
	s.Published = true

	_, err := ApplyEdit(&s, ContentPatch{
		Title:      strPtr("Coach Title"),
		PriceNaira: f64Ptr(15000),
	}, ApplyOptions{})
	require.NoError(t, err)

	require.NoError(t, Approve(&s, ContentPatch{Title: strPtr("Admin Title")}, 99))

	assert.Equal(t, "Admin Title", s.Title)
	assert.Equal(t, float64(15000), s.PriceNaira)
}

func TestApproveNotPendingRefused(t *testing.T) {
	s := completeSprint(sprintModels.StatusDraft, 3)
	assert.ErrorIs(t, Approve(&s, ContentPatch{}, 99), ErrNotPending)
}

func TestRejectKeepsOverlayAndStoresFeedback(t *testing.T) {
	s := completeSprint(sprintModels.StatusApproved, 3)
	s.Published = true

	_, err := ApplyEdit(&s, ContentPatch{Title: strPtr("Needs Work")}, ApplyOptions{})
	require.NoError(t, err)

	require.NoError(t, Reject(&s, map[string]string{"title": "too vague"}))

	assert.Equal(t, sprintModels.StatusRejected, s.ApprovalStatus)
	assert.NotEmpty(t, s.PendingChanges)

	var feedback map[string]string
	require.NoError(t, json.Unmarshal(s.ReviewFeedback, &feedback))
	assert.Equal(t, "too vague", feedback["title"])
}

func TestArchiveUnpublishes(t *testing.T) {
	s := completeSprint(sprintModels.StatusApproved, 3)
	s.Published = true

	Archive(&s)

	assert.Equal(t, sprintModels.StatusArchived, s.ApprovalStatus)
	assert.False(t, s.Published)
}

func TestEditViewOverlaysStagedFields(t *testing.T) {
	s := completeSprint(sprintModels.StatusPendingApproval, 3)
	s.Published = true
	s.PendingChanges = mustJSON(ContentPatch{
		Title:        strPtr("Staged Title"),
		DurationDays: intPtr(7),
	})

	view, err := EditView(s)
	require.NoError(t, err)

	assert.Equal(t, "Staged Title", view.Title)
	assert.Equal(t, 7, view.DurationDays)
	// The underlying record is untouched
	assert.Equal(t, "Find Your Niche", s.Title)
}

func TestCurriculumIncompleteZeroDuration(t *testing.T) {
	s := completeSprint(sprintModels.StatusDraft, 3)
	s.DurationDays = 0
	assert.True(t, CurriculumIncomplete(s))
}
