package scoring

// Status is the display label for a location's optimality score.
type Status string

// Status labels.
const (
	StatusOptimal    Status = "Optimal"
	StatusModerate   Status = "Moderate"
	StatusNotOptimal Status = "Not Optimal"
)

// StatusForScore labels a score: 80 and above is optimal, 60 and above moderate.
func StatusForScore(score float64) Status {
	switch {
	case score >= 80:
		return StatusOptimal
	case score >= 60:
		return StatusModerate
	default:
		return StatusNotOptimal
	}
}

// Color returns the hex colour used to render the status.
func (s Status) Color() string {
	switch s {
	case StatusOptimal:
		return "#16a34a"
	case StatusModerate:
		return "#f59e0b"
	case StatusNotOptimal:
		return "#dc2626"
	default:
		return "#6b7280"
	}
}
