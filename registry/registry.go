package registry

import (
	"encoding/json"

	sprintModels "sprintpath/models/sprint"
)

// Registry answers slot/stage/eligibility questions against an injected
// curriculum configuration. It holds no mutable state; the current
// assignments live in the single OrchestrationMap row.
type Registry struct {
	cfg     Config
	slots   map[string]Slot
	founded map[string]bool
}

// New builds a Registry from configuration
func New(cfg Config) *Registry {
	r := &Registry{
		cfg:     cfg,
		slots:   make(map[string]Slot, len(cfg.Slots)),
		founded: make(map[string]bool, len(cfg.FoundationalCategories)),
	}
	for _, s := range cfg.Slots {
		r.slots[s.ID] = s
	}
	for _, c := range cfg.FoundationalCategories {
		r.founded[c] = true
	}
	return r
}

var defaultRegistry = New(DefaultConfig())

// Default returns the registry built from the production curriculum config
func Default() *Registry {
	return defaultRegistry
}

// Slots returns the configured slots in declaration order
func (r *Registry) Slots() []Slot {
	return r.cfg.Slots
}

// Slot looks up one slot by id
func (r *Registry) Slot(id string) (Slot, bool) {
	s, ok := r.slots[id]
	return s, ok
}

// IsFoundational reports whether a category is platform-authored
func (r *Registry) IsFoundational(category string) bool {
	return r.founded[category]
}

// CategoryStage resolves a sprint category to its lifecycle stage
func (r *Registry) CategoryStage(category string) (Stage, bool) {
	st, ok := r.cfg.CategoryStages[category]
	return st, ok
}

// Eligible reports whether a sprint may be offered in a slot's assignment
// pool. A sprint currently occupying the slot is always eligible so the
// client cannot invalidate an existing assignment; otherwise the sprint must
// be approved or published, and must match the slot's category rules.
func (r *Registry) Eligible(slot Slot, s sprintModels.Sprint, current *sprintModels.SlotAssignment) bool {
	if current != nil && current.SprintID == s.ID {
		return true
	}
	if s.ApprovalStatus != sprintModels.StatusApproved && !s.Published {
		return false
	}
	if len(slot.Categories) > 0 {
		for _, c := range slot.Categories {
			if s.Category == c {
				return true
			}
		}
		return false
	}
	stage, ok := r.CategoryStage(s.Category)
	return ok && stage == slot.Stage
}

// SprintStages resolves every assigned sprint to its slot's stage
func (r *Registry) SprintStages(assignments map[string]sprintModels.SlotAssignment) map[uint]Stage {
	stages := make(map[uint]Stage)
	for slotID, a := range assignments {
		if a.SprintID == 0 {
			continue
		}
		if slot, ok := r.slots[slotID]; ok {
			stages[a.SprintID] = slot.Stage
		}
	}
	return stages
}

// IsLive reports public discoverability: approved AND currently occupying
// some slot. Approval alone is not sufficient.
func (r *Registry) IsLive(s sprintModels.Sprint, assignments map[string]sprintModels.SlotAssignment) bool {
	if s.ApprovalStatus != sprintModels.StatusApproved {
		return false
	}
	for _, a := range assignments {
		if a.SprintID == s.ID {
			return true
		}
	}
	return false
}

// DuplicateSprints scans an assignment map for sprints occupying more than
// one slot. Uniqueness is advisory: the save is not rejected, but the admin
// client is told.
func DuplicateSprints(assignments map[string]sprintModels.SlotAssignment) []uint {
	seen := make(map[uint]int)
	for _, a := range assignments {
		if a.SprintID != 0 {
			seen[a.SprintID]++
		}
	}
	var dups []uint
	for id, n := range seen {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	return dups
}

// DecodeAssignments unmarshals the stored assignments JSON. An empty
// document decodes to an empty map.
func DecodeAssignments(raw []byte) (map[string]sprintModels.SlotAssignment, error) {
	assignments := make(map[string]sprintModels.SlotAssignment)
	if len(raw) == 0 {
		return assignments, nil
	}
	if err := json.Unmarshal(raw, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}
