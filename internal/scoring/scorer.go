package scoring

import (
	"math"
	"sort"

	"studyspace/pkg/domain"
)

// OptimalThreshold is the lowest score still considered optimal.
const OptimalThreshold = 70

type bounds struct{ min, max float64 }

// plausible rejects readings no real sensor could produce.
var plausible = map[domain.Factor]bounds{
	domain.FactorTemperature:     {-50, 70},
	domain.FactorHumidity:        {0, 100},
	domain.FactorNoiseLevel:      {0, 194},
	domain.FactorLightIntensity:  {0, 200000},
	domain.FactorAirQualityIndex: {0, 1000},
}

// Scorer rates readings against a RangeTable. It holds no mutable state and
// is safe for concurrent use.
type Scorer struct {
	ranges RangeTable
}

// NewScorer returns a scorer using the supplied table.
func NewScorer(ranges RangeTable) *Scorer {
	return &Scorer{ranges: ranges}
}

// NewDefaultScorer returns a scorer using DefaultRanges.
func NewDefaultScorer() *Scorer {
	return NewScorer(DefaultRanges())
}

// Ranges exposes the scorer's range table.
func (s *Scorer) Ranges() RangeTable { return s.ranges }

// Score computes the optimality score for reading. Impacts of out-of-range
// factors are summed without a cap and subtracted from 100, flooring at 0.
// Deviations are ordered by impact descending; ties keep check order.
func (s *Scorer) Score(reading domain.EnvironmentReading) (domain.OptimalityResult, error) {
	if err := ValidateReading(reading); err != nil {
		return domain.OptimalityResult{}, err
	}
	deviations := make([]domain.FactorDeviation, 0, len(domain.Factors()))
	var totalImpact float64
	for _, factor := range domain.Factors() {
		r, ok := s.ranges.Lookup(factor)
		if !ok {
			return domain.OptimalityResult{}, &domain.ConfigurationError{Factor: factor, Reason: "has no optimal range"}
		}
		value, _ := reading.Value(factor)
		impact := Impact(value, r.Min, r.Max)
		if impact <= 0 {
			continue
		}
		totalImpact += impact
		deviations = append(deviations, domain.FactorDeviation{
			Factor:       factor,
			CurrentValue: value,
			OptimalRange: r,
			Impact:       impact,
		})
	}
	sort.SliceStable(deviations, func(i, j int) bool {
		return deviations[i].Impact > deviations[j].Impact
	})
	score := math.Max(0, 100-totalImpact)
	return domain.OptimalityResult{
		IsOptimal:         score >= OptimalThreshold,
		OptimalScore:      score,
		SuboptimalFactors: deviations,
	}, nil
}

// ValidateReading rejects non-finite and physically implausible values.
func ValidateReading(reading domain.EnvironmentReading) error {
	for _, factor := range domain.Factors() {
		value, _ := reading.Value(factor)
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return &domain.InvalidInputError{Field: string(factor), Value: value, Reason: "must be a finite number"}
		}
		b := plausible[factor]
		if value < b.min || value > b.max {
			return &domain.InvalidInputError{Field: string(factor), Value: value, Reason: "is outside the plausible range"}
		}
	}
	return nil
}
