package registry

import (
	"testing"

	sprintModels "sprintpath/models/sprint"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedSprint(id uint, category string) sprintModels.Sprint {
	s := sprintModels.Sprint{
		Category:       category,
		ApprovalStatus: sprintModels.StatusApproved,
		Published:      true,
	}
	s.ID = id
	return s
}

func TestEligibleFoundationExactCategory(t *testing.T) {
	r := Default()
	slot, ok := r.Slot("slot_found_clarity")
	require.True(t, ok)

	assert.True(t, r.Eligible(slot, approvedSprint(1, "Clarity"), nil))
	assert.False(t, r.Eligible(slot, approvedSprint(2, "Offer Design"), nil))
	// Same stage but wrong category still fails an exact-match slot
	assert.False(t, r.Eligible(slot, approvedSprint(3, "Growth Fundamentals"), nil))
}

func TestEligibleStageMapping(t *testing.T) {
	r := Default()
	slot, ok := r.Slot("slot_direction_main")
	require.True(t, ok)

	assert.True(t, r.Eligible(slot, approvedSprint(1, "Offer Design"), nil))
	assert.True(t, r.Eligible(slot, approvedSprint(2, "Audience Research"), nil))
	assert.False(t, r.Eligible(slot, approvedSprint(3, "Clarity"), nil))
	assert.False(t, r.Eligible(slot, approvedSprint(4, "Unmapped Category"), nil))
}

func TestEligibleRequiresApprovedOrPublished(t *testing.T) {
	r := Default()
	slot, _ := r.Slot("slot_direction_main")

	draft := approvedSprint(1, "Offer Design")
	draft.ApprovalStatus = sprintModels.StatusDraft
	draft.Published = false
	assert.False(t, r.Eligible(slot, draft, nil))

	// Published but not re-approved stays offerable
	draft.Published = true
	assert.True(t, r.Eligible(slot, draft, nil))
}

func TestEligibleOccupantAlwaysEligible(t *testing.T) {
	r := Default()
	slot, _ := r.Slot("slot_direction_main")

	occupant := approvedSprint(42, "Clarity") // wrong stage for this slot
	occupant.ApprovalStatus = sprintModels.StatusDraft
	occupant.Published = false

	current := &sprintModels.SlotAssignment{SprintID: 42}
	assert.True(t, r.Eligible(slot, occupant, current))

	other := &sprintModels.SlotAssignment{SprintID: 43}
	assert.False(t, r.Eligible(slot, occupant, other))
}

func TestSprintStages(t *testing.T) {
	r := Default()
	assignments := map[string]sprintModels.SlotAssignment{
		"slot_found_clarity":  {SprintID: 1},
		"slot_direction_main": {SprintID: 2},
		"slot_proof_main":     {SprintID: 0}, // empty slot
		"slot_unknown":        {SprintID: 3}, // not in config
	}

	stages := r.SprintStages(assignments)
	assert.Equal(t, StageFoundation, stages[1])
	assert.Equal(t, StageDirection, stages[2])
	assert.NotContains(t, stages, uint(0))
	assert.NotContains(t, stages, uint(3))
}

func TestIsLiveRequiresApprovalAndAssignment(t *testing.T) {
	r := Default()
	assignments := map[string]sprintModels.SlotAssignment{
		"slot_direction_main": {SprintID: 5},
	}

	assert.True(t, r.IsLive(approvedSprint(5, "Offer Design"), assignments))
	assert.False(t, r.IsLive(approvedSprint(6, "Offer Design"), assignments))

	pending := approvedSprint(5, "Offer Design")
	pending.ApprovalStatus = sprintModels.StatusPendingApproval
	assert.False(t, r.IsLive(pending, assignments))
}

func TestDuplicateSprints(t *testing.T) {
	assignments := map[string]sprintModels.SlotAssignment{
		"slot_a": {SprintID: 1},
		"slot_b": {SprintID: 1},
		"slot_c": {SprintID: 2},
		"slot_d": {SprintID: 0},
		"slot_e": {SprintID: 0},
	}

	dups := DuplicateSprints(assignments)
	require.Len(t, dups, 1)
	assert.Equal(t, uint(1), dups[0])
}

func TestDecodeAssignments(t *testing.T) {
	assignments, err := DecodeAssignments(nil)
	require.NoError(t, err)
	assert.Empty(t, assignments)

	assignments, err = DecodeAssignments([]byte(`{"slot_direction_main":{"sprintId":9,"focusCriteria":["launch"]}}`))
	require.NoError(t, err)
	require.Contains(t, assignments, "slot_direction_main")
	assert.Equal(t, uint(9), assignments["slot_direction_main"].SprintID)
	assert.Equal(t, []string{"launch"}, assignments["slot_direction_main"].FocusCriteria)

	_, err = DecodeAssignments([]byte(`{broken`))
	assert.Error(t, err)
}

func TestIsFoundational(t *testing.T) {
	r := Default()
	assert.True(t, r.IsFoundational("Core Platform Sprint"))
	assert.True(t, r.IsFoundational("Growth Fundamentals"))
	assert.False(t, r.IsFoundational("Clarity"))
}

func TestInjectedConfig(t *testing.T) {
	r := New(Config{
		Slots: []Slot{
			{ID: "only_slot", Stage: StageProof},
		},
		CategoryStages: map[string]Stage{
			"Case Studies": StageProof,
		},
	})

	slot, ok := r.Slot("only_slot")
	require.True(t, ok)
	assert.True(t, r.Eligible(slot, approvedSprint(1, "Case Studies"), nil))
	assert.False(t, r.Eligible(slot, approvedSprint(2, "Clarity"), nil))
	assert.Len(t, r.Slots(), 1)
}
