package lifecycle

import (
	"testing"

	sprintModels "sprintpath/models/sprint"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffFieldWordExistence(t *testing.T) {
	d := DiffField("title", "the quick fox", "quick the fox jumps")

	assert.True(t, d.Changed)
	require.Len(t, d.Tokens, 4)

	// Reordered tokens are not flagged; only a genuinely new word is
	byText := make(map[string]bool)
	for _, tok := range d.Tokens {
		byText[tok.Text] = tok.New
	}
	assert.False(t, byText["quick"])
	assert.False(t, byText["the"])
	assert.False(t, byText["fox"])
	assert.True(t, byText["jumps"])
}

func TestDiffFieldUnchanged(t *testing.T) {
	d := DiffField("title", "  same value ", "same value")

	assert.False(t, d.Changed)
	assert.Empty(t, d.Tokens)
}

func TestDiffFieldRemovalOnly(t *testing.T) {
	d := DiffField("transformation", "launch your first offer", "launch your offer")

	assert.True(t, d.Changed)
	for _, tok := range d.Tokens {
		assert.False(t, tok.New, "token %q should not be flagged", tok.Text)
	}
}

func TestDiffSprintOnlyChangedFields(t *testing.T) {
	s := sprintModels.Sprint{
		Title:          "Original Title",
		Transformation: "the same transformation",
		Outcomes:       mustJSON([]string{"outcome one"}),
	}
	s.PendingChanges = mustJSON(ContentPatch{
		Title:          strPtr("Fresh Title"),
		Transformation: strPtr("the same transformation"),
		Outcomes:       []string{"outcome one", "outcome two"},
	})

	diffs, err := DiffSprint(s)
	require.NoError(t, err)
	require.Len(t, diffs, 2)

	fields := []string{diffs[0].Field, diffs[1].Field}
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "outcomes")
	assert.NotContains(t, fields, "transformation")
}

func TestDiffSprintNoOverlay(t *testing.T) {
	diffs, err := DiffSprint(sprintModels.Sprint{Title: "Anything"})
	require.NoError(t, err)
	assert.Nil(t, diffs)
}
