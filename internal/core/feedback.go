package core

import (
	"context"

	"studyspace/internal/feedback"
	"studyspace/pkg/domain"
)

// LocationRating is a feedback summary annotated with the location name.
type LocationRating struct {
	feedback.LocationSummary
	LocationName string `json:"locationName"`
}

// SubmitFeedback records a rating for a known location.
func (s *Service) SubmitFeedback(ctx context.Context, fb domain.Feedback) (domain.Feedback, error) {
	var saved domain.Feedback
	err := s.run(ctx, "submit_feedback", func(ctx context.Context) error {
		if _, err := s.Location(fb.LocationID); err != nil {
			return err
		}
		var err error
		saved, err = s.feedback.Save(ctx, fb)
		if err != nil {
			return err
		}
		s.logger.Info("feedback recorded", "feedback_id", saved.ID, "location", saved.LocationID, "rating", saved.Rating)
		return nil
	})
	return saved, err
}

// FeedbackHistory returns a student's submissions, newest first. An empty
// studentID returns every entry.
func (s *Service) FeedbackHistory(ctx context.Context, studentID string) ([]domain.Feedback, error) {
	var out []domain.Feedback
	err := s.run(ctx, "feedback_history", func(ctx context.Context) error {
		var (
			entries []domain.Feedback
			err     error
		)
		if studentID == "" {
			entries, err = s.feedback.All(ctx)
		} else {
			entries, err = s.feedback.ForStudent(ctx, studentID)
		}
		if err != nil {
			return err
		}
		out = feedback.NewestFirst(entries)
		return nil
	})
	return out, err
}

// LocationFeedback returns the entries for one location, newest first.
func (s *Service) LocationFeedback(ctx context.Context, locationID string) ([]domain.Feedback, error) {
	var out []domain.Feedback
	err := s.run(ctx, "location_feedback", func(ctx context.Context) error {
		if _, err := s.Location(locationID); err != nil {
			return err
		}
		entries, err := s.feedback.ForLocation(ctx, locationID)
		if err != nil {
			return err
		}
		out = feedback.NewestFirst(entries)
		return nil
	})
	return out, err
}

// FeedbackSummary aggregates ratings per location.
func (s *Service) FeedbackSummary(ctx context.Context) ([]LocationRating, error) {
	var out []LocationRating
	err := s.run(ctx, "feedback_summary", func(ctx context.Context) error {
		entries, err := s.feedback.All(ctx)
		if err != nil {
			return err
		}
		out = s.ratings(entries)
		return nil
	})
	return out, err
}

// ClearFeedback deletes the whole feedback log.
func (s *Service) ClearFeedback(ctx context.Context) error {
	return s.run(ctx, "clear_feedback", func(ctx context.Context) error {
		if err := s.feedback.Clear(ctx); err != nil {
			return err
		}
		s.logger.Warn("feedback log cleared")
		return nil
	})
}

func (s *Service) ratings(entries []domain.Feedback) []LocationRating {
	summaries := feedback.Summarize(entries)
	out := make([]LocationRating, 0, len(summaries))
	for _, sum := range summaries {
		r := LocationRating{LocationSummary: sum}
		if loc, ok := s.catalog.Location(sum.LocationID); ok {
			r.LocationName = loc.Name
		}
		out = append(out, r)
	}
	return out
}
