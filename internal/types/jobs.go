package types

import "fmt"

// JobRecord is a single scored job listing returned to the caller.
type JobRecord struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	SalaryMin   *float64 `json:"salary_min,omitempty"`
	SalaryMax   *float64 `json:"salary_max,omitempty"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	MatchScore  int      `json:"match_score"`
	MatchReason string   `json:"match_reason"`
}

// JobFilter narrows a job search. All fields are optional.
type JobFilter struct {
	Location  string `json:"location,omitempty"`
	Level     string `json:"level,omitempty"` // "entry_level", "mid_level", "senior"
	Remote    bool   `json:"remote,omitempty"`
	SalaryMin int    `json:"salary_min,omitempty"`
	What      string `json:"what,omitempty"` // explicit search query override
}

// Fingerprint returns a stable cache-key component covering every filter
// field. Two filters with the same fingerprint produce the same search.
func (f JobFilter) Fingerprint() string {
	return fmt.Sprintf("%s-%s-%t-%d-%s", f.Location, f.Level, f.Remote, f.SalaryMin, f.What)
}
