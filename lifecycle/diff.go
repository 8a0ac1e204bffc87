package lifecycle

import (
	"encoding/json"
	"strings"

	sprintModels "sprintpath/models/sprint"
)

// DiffToken is one whitespace token of the staged value. New is true when the
// token does not occur anywhere in the canonical value.
type DiffToken struct {
	Text string `json:"text"`
	New  bool   `json:"new"`
}

// FieldDiff shows an admin what changed in one reviewed field. The canonical
// value renders struck through above the staged value; tokens flagged New get
// emphasis. This is a word-existence diff, not a positional one: a token that
// merely moved is not flagged.
type FieldDiff struct {
	Field     string      `json:"field"`
	Canonical string      `json:"canonical"`
	Staged    string      `json:"staged"`
	Changed   bool        `json:"changed"`
	Tokens    []DiffToken `json:"tokens,omitempty"`
}

// DiffField compares one canonical/staged value pair
func DiffField(field, canonical, staged string) FieldDiff {
	canonical = strings.TrimSpace(canonical)
	staged = strings.TrimSpace(staged)

	d := FieldDiff{Field: field, Canonical: canonical, Staged: staged}
	if canonical == staged {
		return d
	}
	d.Changed = true

	known := make(map[string]bool)
	for _, tok := range strings.Fields(canonical) {
		known[tok] = true
	}
	for _, tok := range strings.Fields(staged) {
		d.Tokens = append(d.Tokens, DiffToken{Text: tok, New: !known[tok]})
	}
	return d
}

// DiffSprint builds the review diff for every staged field of a sprint.
// List fields are compared through a newline-joined rendering.
func DiffSprint(s sprintModels.Sprint) ([]FieldDiff, error) {
	if len(s.PendingChanges) == 0 {
		return nil, nil
	}
	var staged ContentPatch
	if err := json.Unmarshal(s.PendingChanges, &staged); err != nil {
		return nil, err
	}

	var diffs []FieldDiff
	add := func(d FieldDiff) {
		if d.Changed {
			diffs = append(diffs, d)
		}
	}

	if staged.Title != nil {
		add(DiffField("title", s.Title, *staged.Title))
	}
	if staged.Transformation != nil {
		add(DiffField("transformation", s.Transformation, *staged.Transformation))
	}
	if staged.Category != nil {
		add(DiffField("category", s.Category, *staged.Category))
	}
	if staged.CoverImageURL != nil {
		add(DiffField("coverImageUrl", s.CoverImageURL, *staged.CoverImageURL))
	}
	if staged.Outcomes != nil {
		add(DiffField("outcomes", joinStringList(s.Outcomes), strings.Join(staged.Outcomes, "\n")))
	}
	if staged.ForAudience != nil {
		add(DiffField("forAudience", joinStringList(s.ForAudience), strings.Join(staged.ForAudience, "\n")))
	}
	if staged.NotForAudience != nil {
		add(DiffField("notForAudience", joinStringList(s.NotForAudience), strings.Join(staged.NotForAudience, "\n")))
	}
	if staged.DailyContent != nil {
		add(DiffField("dailyContent", renderDays(canonicalDays(s)), renderDays(staged.DailyContent)))
	}
	if staged.MethodSnapshot != nil {
		add(DiffField("methodSnapshot", renderMethod(canonicalMethod(s)), renderMethod(staged.MethodSnapshot)))
	}
	return diffs, nil
}

func joinStringList(raw []byte) string {
	var items []string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &items)
	}
	return strings.Join(items, "\n")
}

func canonicalDays(s sprintModels.Sprint) []sprintModels.DayContent {
	var days []sprintModels.DayContent
	if len(s.DailyContent) > 0 {
		_ = json.Unmarshal(s.DailyContent, &days)
	}
	return days
}

func canonicalMethod(s sprintModels.Sprint) []sprintModels.MethodStep {
	var steps []sprintModels.MethodStep
	if len(s.MethodSnapshot) > 0 {
		_ = json.Unmarshal(s.MethodSnapshot, &steps)
	}
	return steps
}

func renderDays(days []sprintModels.DayContent) string {
	var b strings.Builder
	for i, d := range days {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(d.LessonText)
		b.WriteString(" ")
		b.WriteString(d.TaskPrompt)
	}
	return b.String()
}

func renderMethod(steps []sprintModels.MethodStep) string {
	var b strings.Builder
	for i, m := range steps {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.Phase)
		b.WriteString(" ")
		b.WriteString(m.Action)
		b.WriteString(" ")
		b.WriteString(m.Outcome)
	}
	return b.String()
}
