// Package seeddata holds the static demo tier used for non-critical read
// fallbacks and local development seeding. It is never merged into live
// query results; callers choose the tier explicitly.
package seeddata

// CatalogSprint is the shape of a demo catalog entry
type CatalogSprint struct {
	Title          string   `json:"title"`
	Transformation string   `json:"transformation"`
	Category       string   `json:"category"`
	Stage          string   `json:"stage"`
	DurationDays   int      `json:"durationDays"`
	PriceNaira     float64  `json:"priceNaira"`
	FocusCriteria  []string `json:"focusCriteria"`
}

// Catalog is the static fallback catalog for the public listing. Served
// only when the store is unreachable and the demo fallback is enabled;
// financial and approval reads never use it.
func Catalog() []CatalogSprint {
	return []CatalogSprint{
		{
			Title:          "Find Your One Thing",
			Transformation: "Leave with a single clear offer statement you can say in one breath.",
			Category:       "Clarity",
			Stage:          "Foundation",
			DurationDays:   5,
			PriceNaira:     0,
			FocusCriteria:  []string{"clarity", "offer"},
		},
		{
			Title:          "Platform Onboarding Sprint",
			Transformation: "Know the platform, the cadence, and how proof-of-work reviews happen.",
			Category:       "Core Platform Sprint",
			Stage:          "Foundation",
			DurationDays:   3,
			PriceNaira:     0,
			FocusCriteria:  []string{"onboarding"},
		},
		{
			Title:          "Audience Interviews in 7 Days",
			Transformation: "Ten real conversations with people who match your target audience.",
			Category:       "Audience Research",
			Stage:          "Direction",
			DurationDays:   7,
			PriceNaira:     10000,
			FocusCriteria:  []string{"research", "interviews"},
		},
		{
			Title:          "Ship Daily Content",
			Transformation: "Fourteen straight days of published content with a repeatable system.",
			Category:       "Content Systems",
			Stage:          "Execution",
			DurationDays:   14,
			PriceNaira:     15000,
			FocusCriteria:  []string{"content", "consistency"},
		},
	}
}
