package model

// ComponentScores breaks a composite score down into its weighted inputs.
// Every component is in [0,100].
type ComponentScores struct {
	Certification float64 `json:"certification"`
	Availability  float64 `json:"availability"`
	Travel        float64 `json:"travel"`
}

// Recommendation is one ranked candidate for a dispatch requirement. It is
// produced fresh per matching call and never stored by the engine.
type Recommendation struct {
	CandidateID     string          `json:"candidate_id"`
	CompositeScore  float64         `json:"composite_score"`
	ComponentScores ComponentScores `json:"component_scores"`
	// Reasons explains the score in fixed priority order: certification fit,
	// availability, then travel. At least one entry is always present.
	Reasons       []string      `json:"reasons"`
	RouteEstimate RouteEstimate `json:"route_estimate"`
	IsTopChoice   bool          `json:"is_top_choice"`
}
