// Package domain holds the study-space records shared by the scoring engine,
// the feedback store and the outer surfaces.
package domain

import "time"

// Factor names a monitored environmental factor.
type Factor string

// Monitored factors in the order they are checked during scoring.
const (
	FactorTemperature     Factor = "temperature"
	FactorHumidity        Factor = "humidity"
	FactorNoiseLevel      Factor = "noiseLevel"
	FactorLightIntensity  Factor = "lightIntensity"
	FactorAirQualityIndex Factor = "airQualityIndex"
)

var factorOrder = []Factor{
	FactorTemperature,
	FactorHumidity,
	FactorNoiseLevel,
	FactorLightIntensity,
	FactorAirQualityIndex,
}

// Factors returns the monitored factors in check order. The returned slice is a copy.
func Factors() []Factor {
	out := make([]Factor, len(factorOrder))
	copy(out, factorOrder)
	return out
}

// Valid reports whether f is one of the monitored factors.
func (f Factor) Valid() bool {
	for _, known := range factorOrder {
		if f == known {
			return true
		}
	}
	return false
}

// Label returns the human-readable factor name used in recommendations.
func (f Factor) Label() string {
	switch f {
	case FactorTemperature:
		return "Temperature"
	case FactorHumidity:
		return "Humidity"
	case FactorNoiseLevel:
		return "Noise Level"
	case FactorLightIntensity:
		return "Light Intensity"
	case FactorAirQualityIndex:
		return "Air Quality"
	default:
		return string(f)
	}
}

// EnvironmentReading is a single snapshot of environmental metrics for a location.
// Timestamp is carried for traceability only and never affects scoring.
type EnvironmentReading struct {
	Timestamp       time.Time `json:"timestamp"`
	Temperature     float64   `json:"temperature"`
	Humidity        float64   `json:"humidity"`
	NoiseLevel      float64   `json:"noiseLevel"`
	LightIntensity  float64   `json:"lightIntensity"`
	AirQualityIndex float64   `json:"airQualityIndex"`
}

// Value returns the reading's value for the given factor.
func (r EnvironmentReading) Value(f Factor) (float64, bool) {
	switch f {
	case FactorTemperature:
		return r.Temperature, true
	case FactorHumidity:
		return r.Humidity, true
	case FactorNoiseLevel:
		return r.NoiseLevel, true
	case FactorLightIntensity:
		return r.LightIntensity, true
	case FactorAirQualityIndex:
		return r.AirQualityIndex, true
	default:
		return 0, false
	}
}

// OptimalRange is the inclusive band within which a factor is comfortable for studying.
type OptimalRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Unit string  `json:"unit,omitempty"`
}

// Contains reports whether v lies within the inclusive band.
func (r OptimalRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Width returns the band width used to normalise impacts.
func (r OptimalRange) Width() float64 {
	return r.Max - r.Min
}

// Direction tells on which side of its optimal range a value falls.
type Direction int

const (
	// DirectionTooLow marks a value below the range minimum.
	DirectionTooLow Direction = iota
	// DirectionTooHigh marks a value above the range maximum.
	DirectionTooHigh
)

func (d Direction) String() string {
	if d == DirectionTooLow {
		return "too low"
	}
	return "too high"
}

// FactorDeviation is a factor whose current value falls outside its optimal range.
type FactorDeviation struct {
	Factor       Factor       `json:"factor"`
	CurrentValue float64      `json:"currentValue"`
	OptimalRange OptimalRange `json:"optimalRange"`
	Impact       float64      `json:"impact"`
}

// Direction classifies the deviation; anything not below the minimum is too high.
func (d FactorDeviation) Direction() Direction {
	if d.CurrentValue < d.OptimalRange.Min {
		return DirectionTooLow
	}
	return DirectionTooHigh
}

// OptimalityResult is the scorer output for one reading.
type OptimalityResult struct {
	IsOptimal         bool              `json:"isOptimal"`
	OptimalScore      float64           `json:"optimalScore"`
	SuboptimalFactors []FactorDeviation `json:"suboptimalFactors"`
}
