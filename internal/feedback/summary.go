package feedback

import (
	"sort"
	"time"

	"studyspace/pkg/domain"
)

// LocationSummary aggregates the ratings one location received.
type LocationSummary struct {
	LocationID    string    `json:"locationId"`
	Count         int       `json:"count"`
	AverageRating float64   `json:"averageRating"`
	Histogram     [5]int    `json:"histogram"` // index 0 counts 1-star ratings
	LatestAt      time.Time `json:"latestAt"`
}

// Summarize groups entries by location, ordered by location ID.
func Summarize(entries []domain.Feedback) []LocationSummary {
	byLocation := make(map[string]*LocationSummary)
	totals := make(map[string]int)
	for _, fb := range entries {
		s, ok := byLocation[fb.LocationID]
		if !ok {
			s = &LocationSummary{LocationID: fb.LocationID}
			byLocation[fb.LocationID] = s
		}
		s.Count++
		totals[fb.LocationID] += fb.Rating
		if fb.Rating >= domain.MinRating && fb.Rating <= domain.MaxRating {
			s.Histogram[fb.Rating-1]++
		}
		if fb.Timestamp.After(s.LatestAt) {
			s.LatestAt = fb.Timestamp
		}
	}
	out := make([]LocationSummary, 0, len(byLocation))
	for id, s := range byLocation {
		s.AverageRating = float64(totals[id]) / float64(s.Count)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocationID < out[j].LocationID })
	return out
}

// NewestFirst returns a copy of entries ordered by timestamp, latest first.
// Entries with equal timestamps keep their log order.
func NewestFirst(entries []domain.Feedback) []domain.Feedback {
	out := append([]domain.Feedback(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}
