package registry

// Stage is one step of the fixed lifecycle curriculum
type Stage string

const (
	StageFoundation  Stage = "Foundation"
	StageDirection   Stage = "Direction"
	StageExecution   Stage = "Execution"
	StageProof       Stage = "Proof"
	StagePositioning Stage = "Positioning"
	StageStability   Stage = "Stability"
	StageExpansion   Stage = "Expansion"
)

// Slot is one pre-defined curriculum position. Slots are configuration, not
// user data: each holds at most one sprint. A non-empty Categories list means
// eligibility is an exact category match (Foundation slots); otherwise the
// sprint's category must map to the slot's stage.
type Slot struct {
	ID         string   `json:"id"`
	Stage      Stage    `json:"stage"`
	Categories []string `json:"categories,omitempty"`
}

// Config is the static curriculum configuration injected into a Registry.
// Tests substitute alternate slot layouts through this.
type Config struct {
	Slots          []Slot
	CategoryStages map[string]Stage
	// Foundational categories are platform-authored; sprints in them skip
	// staged review entirely.
	FoundationalCategories []string
}

// DefaultConfig is the production curriculum map
func DefaultConfig() Config {
	return Config{
		Slots: []Slot{
			{ID: "slot_found_clarity", Stage: StageFoundation, Categories: []string{"Clarity"}},
			{ID: "slot_found_orient", Stage: StageFoundation, Categories: []string{"Core Platform Sprint"}},
			{ID: "slot_found_core", Stage: StageFoundation, Categories: []string{"Growth Fundamentals"}},
			{ID: "slot_direction_main", Stage: StageDirection},
			{ID: "slot_execution_main", Stage: StageExecution},
			{ID: "slot_proof_main", Stage: StageProof},
			{ID: "slot_positioning_main", Stage: StagePositioning},
			{ID: "slot_stability_main", Stage: StageStability},
			{ID: "slot_expansion_main", Stage: StageExpansion},
		},
		CategoryStages: map[string]Stage{
			"Clarity":              StageFoundation,
			"Core Platform Sprint": StageFoundation,
			"Growth Fundamentals":  StageFoundation,
			"Audience Research":    StageDirection,
			"Offer Design":         StageDirection,
			"Content Systems":      StageExecution,
			"Sales Execution":      StageExecution,
			"Case Studies":         StageProof,
			"Testimonials & Proof": StageProof,
			"Brand Positioning":    StagePositioning,
			"Retention Systems":    StageStability,
			"Operations":           StageStability,
			"Scaling & Teams":      StageExpansion,
			"Partnerships":         StageExpansion,
		},
		FoundationalCategories: []string{"Core Platform Sprint", "Growth Fundamentals"},
	}
}
