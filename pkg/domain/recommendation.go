package domain

// Priority ranks how urgently a recommendation should be acted upon.
type Priority string

// Recommendation priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// PriorityForImpact classifies a deviation impact: above 50 is high, above 20 medium, otherwise low.
func PriorityForImpact(impact float64) Priority {
	switch {
	case impact > 50:
		return PriorityHigh
	case impact > 20:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Rank orders priorities for sorting, high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Recommendation is a human-readable improvement suggestion for one deviation.
// Location fields are only set when recommendations are aggregated across locations.
type Recommendation struct {
	Factor              string   `json:"factor"`
	Issue               string   `json:"issue"`
	Recommendation      string   `json:"recommendation"`
	ExpectedImprovement string   `json:"expectedImprovement"`
	Priority            Priority `json:"priority"`
	EstimatedCost       string   `json:"estimatedCost,omitempty"`
	LocationID          string   `json:"locationId,omitempty"`
	LocationName        string   `json:"locationName,omitempty"`
	IsDemoData          bool     `json:"isDemoData,omitempty"`
}
