package milestones

import (
	"encoding/json"
	"sort"
	"time"

	"sprintpath/models"

	sprintModels "sprintpath/models/sprint"
)

// Metric names the deterministic counter a milestone thresholds against
type Metric string

const (
	MetricSprintsStarted   Metric = "sprints_started"
	MetricSprintsCompleted Metric = "sprints_completed"
	MetricReflections      Metric = "reflections"
	MetricDaysSinceJoin    Metric = "days_since_join"
	MetricHelpedCount      Metric = "helped_count"
	MetricStreak           Metric = "streak"
)

// Milestone is a pure threshold over one counter
type Milestone struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Metric Metric `json:"metric"`
	Target int    `json:"target"`
	Points uint   `json:"points"`
}

// Defaults is the fixed milestone catalogue
func Defaults() []Milestone {
	return []Milestone{
		{ID: "s1", Title: "First Sprint Started", Metric: MetricSprintsStarted, Target: 1, Points: 5},
		{ID: "s3", Title: "Three Sprints Started", Metric: MetricSprintsStarted, Target: 3, Points: 10},
		{ID: "c1", Title: "First Sprint Completed", Metric: MetricSprintsCompleted, Target: 1, Points: 20},
		{ID: "c3", Title: "Three Sprints Completed", Metric: MetricSprintsCompleted, Target: 3, Points: 50},
		{ID: "r10", Title: "Ten Reflections Written", Metric: MetricReflections, Target: 10, Points: 15},
		{ID: "d30", Title: "Thirty Days On The Path", Metric: MetricDaysSinceJoin, Target: 30, Points: 10},
		{ID: "h5", Title: "Helped Five Peers", Metric: MetricHelpedCount, Target: 5, Points: 25},
		{ID: "k7", Title: "Seven Day Streak", Metric: MetricStreak, Target: 7, Points: 30},
	}
}

// Find looks up a milestone definition by id
func Find(id string) (Milestone, bool) {
	for _, m := range Defaults() {
		if m.ID == id {
			return m, true
		}
	}
	return Milestone{}, false
}

// Counters is a deterministic snapshot of a participant's progress numbers
type Counters struct {
	SprintsStarted   int `json:"sprintsStarted"`
	SprintsCompleted int `json:"sprintsCompleted"`
	Reflections      int `json:"reflections"`
	DaysSinceJoin    int `json:"daysSinceJoin"`
	HelpedCount      int `json:"helpedCount"`
	Streak           int `json:"streak"`
}

// CountersFor computes the counters from the participant's record and
// enrollments as of now.
func CountersFor(user models.User, enrollments []sprintModels.Enrollment, now time.Time) Counters {
	c := Counters{
		SprintsStarted: len(enrollments),
		DaysSinceJoin:  int(now.Sub(user.CreatedAt).Hours() / 24),
		HelpedCount:    user.HelpedCount,
	}

	var completionDates []time.Time
	for _, e := range enrollments {
		if e.TotalDays > 0 && e.CompletedDays >= e.TotalDays {
			c.SprintsCompleted++
		}
		var days []sprintModels.DayProgress
		if len(e.Progress) > 0 {
			if err := json.Unmarshal(e.Progress, &days); err != nil {
				continue
			}
		}
		for _, d := range days {
			if d.Reflection != "" {
				c.Reflections++
			}
			if d.Completed && d.CompletedAt != nil {
				completionDates = append(completionDates, *d.CompletedAt)
			}
		}
	}

	c.Streak = streakOf(completionDates, now)
	return c
}

// Value reads one counter by metric name
func (c Counters) Value(m Metric) int {
	switch m {
	case MetricSprintsStarted:
		return c.SprintsStarted
	case MetricSprintsCompleted:
		return c.SprintsCompleted
	case MetricReflections:
		return c.Reflections
	case MetricDaysSinceJoin:
		return c.DaysSinceJoin
	case MetricHelpedCount:
		return c.HelpedCount
	case MetricStreak:
		return c.Streak
	default:
		return 0
	}
}

// Unlocked is the pure threshold check
func Unlocked(m Milestone, c Counters) bool {
	return c.Value(m.Metric) >= m.Target
}

// streakOf counts consecutive calendar days with at least one completion,
// ending today or yesterday.
func streakOf(dates []time.Time, now time.Time) int {
	if len(dates) == 0 {
		return 0
	}
	dayKey := func(t time.Time) string { return t.Format("2006-01-02") }

	days := make(map[string]bool, len(dates))
	for _, d := range dates {
		days[dayKey(d)] = true
	}

	// The streak anchors on today, or yesterday if nothing happened yet today
	anchor := now
	if !days[dayKey(anchor)] {
		anchor = anchor.AddDate(0, 0, -1)
		if !days[dayKey(anchor)] {
			return 0
		}
	}

	streak := 0
	for days[dayKey(anchor)] {
		streak++
		anchor = anchor.AddDate(0, 0, -1)
	}
	return streak
}

// SortByTarget orders milestones ascending by target within metric, for
// stable client display.
func SortByTarget(ms []Milestone) {
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].Metric != ms[j].Metric {
			return ms[i].Metric < ms[j].Metric
		}
		return ms[i].Target < ms[j].Target
	})
}
