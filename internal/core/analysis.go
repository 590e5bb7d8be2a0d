package core

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"studyspace/internal/catalog"
	"studyspace/internal/scoring"
	"studyspace/pkg/domain"
)

// Analysis is the scored view of one reading.
type Analysis struct {
	Reading         domain.EnvironmentReading `json:"reading"`
	Result          domain.OptimalityResult   `json:"result"`
	Recommendations []domain.Recommendation   `json:"recommendations"`
	Status          scoring.Status            `json:"status"`
	StatusColor     string                    `json:"statusColor"`
}

// LocationAnalysis pairs a catalog location with its analysis.
type LocationAnalysis struct {
	Location catalog.Location `json:"location"`
	Analysis
}

// Locations lists the catalog in display order.
func (s *Service) Locations() []catalog.Location { return s.catalog.Locations() }

// Location looks up one location by id.
func (s *Service) Location(id string) (catalog.Location, error) {
	loc, ok := s.catalog.Location(id)
	if !ok {
		return catalog.Location{}, ErrNotFound{Entity: EntityLocation, ID: id}
	}
	return loc, nil
}

// Analyze scores a reading and derives its recommendations.
func (s *Service) Analyze(ctx context.Context, reading domain.EnvironmentReading) (Analysis, error) {
	var out Analysis
	err := s.run(ctx, "analyze", func(context.Context) error {
		var err error
		out, err = s.analyze(reading)
		return err
	})
	return out, err
}

// AnalyzeLocation scores the displayed metrics of one location.
func (s *Service) AnalyzeLocation(ctx context.Context, id string) (LocationAnalysis, error) {
	var out LocationAnalysis
	err := s.run(ctx, "analyze_location", func(context.Context) error {
		loc, err := s.Location(id)
		if err != nil {
			return err
		}
		out, err = s.analyzeLocation(loc)
		return err
	})
	return out, err
}

// AnalyzeAll scores every location concurrently and returns the results in
// catalog order. The first failure cancels the rest.
func (s *Service) AnalyzeAll(ctx context.Context) ([]LocationAnalysis, error) {
	var out []LocationAnalysis
	err := s.run(ctx, "analyze_all", func(ctx context.Context) error {
		var err error
		out, err = s.analyzeAll(ctx)
		return err
	})
	return out, err
}

// AdminRecommendations collects the recommendations of every location that
// has data, tagged with the location and ordered high priority first. Ties
// keep catalog then impact order.
func (s *Service) AdminRecommendations(ctx context.Context) ([]domain.Recommendation, error) {
	var out []domain.Recommendation
	err := s.run(ctx, "admin_recommendations", func(ctx context.Context) error {
		all, err := s.analyzeAll(ctx)
		if err != nil {
			return err
		}
		out = make([]domain.Recommendation, 0)
		for _, la := range all {
			if la.Location.DataSource == catalog.DataSourceNone {
				continue
			}
			for _, rec := range la.Recommendations {
				rec.LocationID = la.Location.ID
				rec.LocationName = la.Location.Name
				rec.IsDemoData = la.Location.DataSource == catalog.DataSourceDemo
				out = append(out, rec)
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Priority.Rank() < out[j].Priority.Rank() })
		return nil
	})
	return out, err
}

// History scores the hourly demo readings, oldest first.
func (s *Service) History(ctx context.Context) ([]Analysis, error) {
	var out []Analysis
	err := s.run(ctx, "history", func(context.Context) error {
		readings := catalog.HistoricalReadings()
		out = make([]Analysis, 0, len(readings))
		for _, r := range readings {
			a, err := s.analyze(r)
			if err != nil {
				return err
			}
			out = append(out, a)
		}
		return nil
	})
	return out, err
}

func (s *Service) analyzeAll(ctx context.Context) ([]LocationAnalysis, error) {
	locations := s.catalog.Locations()
	out := make([]LocationAnalysis, len(locations))
	g, ctx := errgroup.WithContext(ctx)
	for i, loc := range locations {
		i, loc := i, loc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			la, err := s.analyzeLocation(loc)
			if err != nil {
				return err
			}
			out[i] = la
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) analyzeLocation(loc catalog.Location) (LocationAnalysis, error) {
	reading, err := loc.Reading(s.now())
	if err != nil {
		return LocationAnalysis{}, fmt.Errorf("location %s: %w", loc.ID, err)
	}
	a, err := s.analyze(reading)
	if err != nil {
		return LocationAnalysis{}, fmt.Errorf("location %s: %w", loc.ID, err)
	}
	return LocationAnalysis{Location: loc, Analysis: a}, nil
}

func (s *Service) analyze(reading domain.EnvironmentReading) (Analysis, error) {
	result, err := s.scorer.Score(reading)
	if err != nil {
		return Analysis{}, err
	}
	status := scoring.StatusForScore(result.OptimalScore)
	return Analysis{
		Reading:         reading,
		Result:          result,
		Recommendations: scoring.Recommend(result),
		Status:          status,
		StatusColor:     status.Color(),
	}, nil
}
