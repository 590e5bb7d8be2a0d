package domain

import "time"

// Feedback is a student's rating of a study location.
type Feedback struct {
	ID          string    `json:"id"`
	LocationID  string    `json:"locationId"`
	StudentID   string    `json:"studentId"`
	Section     string    `json:"section,omitempty"`
	StudentName string    `json:"studentName"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Rating bounds accepted for feedback.
const (
	MinRating = 1
	MaxRating = 5
)
