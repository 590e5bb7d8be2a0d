// Package scoring rates environmental readings against optimal study
// conditions and turns the deviations into prioritised recommendations.
package scoring

import (
	"fmt"

	"studyspace/pkg/domain"
)

// RangeTable maps every monitored factor to its optimal range. Tables are
// immutable once constructed.
type RangeTable struct {
	ranges map[domain.Factor]domain.OptimalRange
}

var defaultRanges = map[domain.Factor]domain.OptimalRange{
	domain.FactorTemperature:     {Min: 21, Max: 25, Unit: "°C"},
	domain.FactorHumidity:        {Min: 40, Max: 60, Unit: "%"},
	domain.FactorNoiseLevel:      {Min: 0, Max: 40, Unit: "dB"},
	domain.FactorLightIntensity:  {Min: 300, Max: 700, Unit: "lux"},
	domain.FactorAirQualityIndex: {Min: 0, Max: 100, Unit: "AQI"},
}

// DefaultRanges returns the built-in optimal range table.
func DefaultRanges() RangeTable {
	return MustRangeTable(defaultRanges)
}

// NewRangeTable validates and copies the supplied ranges. Every monitored
// factor must be present with Min < Max.
func NewRangeTable(ranges map[domain.Factor]domain.OptimalRange) (RangeTable, error) {
	out := make(map[domain.Factor]domain.OptimalRange, len(ranges))
	for factor, r := range ranges {
		if !factor.Valid() {
			return RangeTable{}, &domain.ConfigurationError{Factor: factor, Reason: "is not a monitored factor"}
		}
		if !(r.Min < r.Max) {
			return RangeTable{}, &domain.ConfigurationError{Factor: factor, Reason: fmt.Sprintf("has empty range [%g, %g]", r.Min, r.Max)}
		}
		out[factor] = r
	}
	for _, factor := range domain.Factors() {
		if _, ok := out[factor]; !ok {
			return RangeTable{}, &domain.ConfigurationError{Factor: factor, Reason: "has no optimal range"}
		}
	}
	return RangeTable{ranges: out}, nil
}

// MustRangeTable is like NewRangeTable but panics on error. Intended for
// package-level tables known to be valid.
func MustRangeTable(ranges map[domain.Factor]domain.OptimalRange) RangeTable {
	t, err := NewRangeTable(ranges)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the optimal range for factor.
func (t RangeTable) Lookup(factor domain.Factor) (domain.OptimalRange, bool) {
	r, ok := t.ranges[factor]
	return r, ok
}

// Entries returns a copy of the table.
func (t RangeTable) Entries() map[domain.Factor]domain.OptimalRange {
	out := make(map[domain.Factor]domain.OptimalRange, len(t.ranges))
	for k, v := range t.ranges {
		out[k] = v
	}
	return out
}
