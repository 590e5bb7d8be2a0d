package catalog

import (
	"time"

	"studyspace/pkg/domain"
)

func at(hour int) time.Time {
	return time.Date(2025, time.May, 9, hour, 0, 0, 0, time.UTC)
}

// HistoricalReadings returns the hourly demo readings collected on 9 May 2025.
func HistoricalReadings() []domain.EnvironmentReading {
	return []domain.EnvironmentReading{
		{Timestamp: at(8), Temperature: 24.6, Humidity: 62.0, NoiseLevel: 38.6, LightIntensity: 640.4, AirQualityIndex: 91.7},
		{Timestamp: at(9), Temperature: 24.1, Humidity: 63.0, NoiseLevel: 39.1, LightIntensity: 501.3, AirQualityIndex: 91.3},
		{Timestamp: at(10), Temperature: 26.2, Humidity: 59.6, NoiseLevel: 35.6, LightIntensity: 561.9, AirQualityIndex: 110.4},
		{Timestamp: at(11), Temperature: 21.5, Humidity: 50.3, NoiseLevel: 37.8, LightIntensity: 700.7, AirQualityIndex: 104.3},
		{Timestamp: at(12), Temperature: 26.7, Humidity: 49.0, NoiseLevel: 43.8, LightIntensity: 582.1, AirQualityIndex: 97.4},
	}
}

// MetricLevel is the badge shown next to a single displayed metric.
type MetricLevel string

// Metric levels.
const (
	LevelGood     MetricLevel = "good"
	LevelModerate MetricLevel = "moderate"
	LevelBad      MetricLevel = "bad"
)

// MetricStatus grades one displayed metric (noise, temp, humidity, lighting).
// Unknown metrics grade as moderate.
func MetricStatus(metric string, value float64) MetricLevel {
	switch metric {
	case "noise":
		switch {
		case value < 40:
			return LevelGood
		case value < 60:
			return LevelModerate
		default:
			return LevelBad
		}
	case "temp":
		switch {
		case value >= 22 && value <= 26:
			return LevelGood
		case (value >= 18 && value < 22) || (value > 26 && value <= 28):
			return LevelModerate
		default:
			return LevelBad
		}
	case "humidity":
		switch {
		case value >= 40 && value <= 60:
			return LevelGood
		case (value >= 30 && value < 40) || (value > 60 && value <= 70):
			return LevelModerate
		default:
			return LevelBad
		}
	case "lighting":
		switch {
		case value >= 250 && value <= 500:
			return LevelGood
		case (value >= 150 && value < 250) || (value > 500 && value <= 700):
			return LevelModerate
		default:
			return LevelBad
		}
	default:
		return LevelModerate
	}
}

// MetricLevels grades each displayed metric of the location.
func (l Location) MetricLevels() map[string]MetricLevel {
	return map[string]MetricLevel{
		"noise":    MetricStatus("noise", l.Metrics.Noise),
		"temp":     MetricStatus("temp", l.Metrics.Temp),
		"humidity": MetricStatus("humidity", l.Metrics.Humidity),
		"lighting": MetricStatus("lighting", l.Metrics.Lighting),
	}
}
