package earnings

import (
	"sort"
	"time"

	"sprintpath/registry"

	sprintModels "sprintpath/models/sprint"
)

// Entry status values
const (
	StatusEarned  = "earned"
	StatusPending = "pending_orchestration"
)

// StageCuts is the fixed platform commission per lifecycle stage, in percent
var StageCuts = map[registry.Stage]int{
	registry.StageFoundation:  40,
	registry.StageDirection:   35,
	registry.StageExecution:   30,
	registry.StageProof:       25,
	registry.StagePositioning: 20,
	registry.StageStability:   20,
	registry.StageExpansion:   15,
}

// Entry is one cash enrollment's earning line for a coach. A sprint with no
// orchestrated stage reports zero net with a nil cut and pending status; a
// default commission is never guessed.
type Entry struct {
	EnrollmentID uint           `json:"enrollmentId"`
	SprintID     uint           `json:"sprintId"`
	SprintTitle  string         `json:"sprintTitle"`
	Stage        registry.Stage `json:"stage,omitempty"`
	EnrolledAt   time.Time      `json:"enrolledAt"`
	GrossNaira   float64        `json:"grossNaira"`
	CutPercent   *int           `json:"platformCutPercent"` // nil when untagged
	NetNaira     float64        `json:"netNaira"`
	Status       string         `json:"status"`
}

// Summary aggregates a coach's entries
type Summary struct {
	TotalGross   float64 `json:"totalGross"`
	TotalNet     float64 `json:"totalNet"`
	EntryCount   int     `json:"entryCount"`
	PendingCount int     `json:"pendingCount"`
}

// Compute derives earnings entries for a coach's cash sprints. Pure over its
// inputs: the current orchestration assignments, the coach's sprints, and the
// enrollments for those sprints. Entries come back newest-first.
func Compute(reg *registry.Registry, assignments map[string]sprintModels.SlotAssignment,
	sprints []sprintModels.Sprint, enrollments []sprintModels.Enrollment) ([]Entry, Summary) {

	stages := reg.SprintStages(assignments)

	byID := make(map[uint]sprintModels.Sprint, len(sprints))
	for _, s := range sprints {
		if s.PriceNaira > 0 {
			byID[s.ID] = s
		}
	}

	var entries []Entry
	var sum Summary
	for _, e := range enrollments {
		s, ok := byID[e.SprintID]
		if !ok {
			continue // free sprint or not this coach's
		}
		entry := Entry{
			EnrollmentID: e.ID,
			SprintID:     s.ID,
			SprintTitle:  s.Title,
			EnrolledAt:   e.StartedAt,
			GrossNaira:   s.PriceNaira,
		}
		if stage, tagged := stages[s.ID]; tagged {
			cut := StageCuts[stage]
			entry.Stage = stage
			entry.CutPercent = &cut
			entry.NetNaira = s.PriceNaira * (1 - float64(cut)/100)
			entry.Status = StatusEarned
		} else {
			entry.NetNaira = 0
			entry.Status = StatusPending
			sum.PendingCount++
		}
		sum.TotalGross += entry.GrossNaira
		sum.TotalNet += entry.NetNaira
		sum.EntryCount++
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].EnrolledAt.After(entries[j].EnrolledAt)
	})
	return entries, sum
}
