package scoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"studyspace/pkg/domain"
)

// wireReading mirrors domain.EnvironmentReading with optional fields so that
// absent values can be told apart from zeros.
type wireReading struct {
	Timestamp       string   `json:"timestamp"`
	Temperature     *float64 `json:"temperature"`
	Humidity        *float64 `json:"humidity"`
	NoiseLevel      *float64 `json:"noiseLevel"`
	LightIntensity  *float64 `json:"lightIntensity"`
	AirQualityIndex *float64 `json:"airQualityIndex"`
}

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05"}

// ParseReading decodes a JSON reading, failing with an InvalidInputError when
// a numeric field is missing or not a number.
func ParseReading(data []byte) (domain.EnvironmentReading, error) {
	var w wireReading
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&w); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return domain.EnvironmentReading{}, &domain.InvalidInputError{Field: typeErr.Field, Reason: "must be a number"}
		}
		return domain.EnvironmentReading{}, &domain.InvalidInputError{Field: "reading", Reason: fmt.Sprintf("is not valid JSON: %v", err)}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.EnvironmentReading{}, &domain.InvalidInputError{Field: "reading", Reason: "has trailing data after the JSON object"}
	}
	fields := []struct {
		name string
		v    *float64
	}{
		{string(domain.FactorTemperature), w.Temperature},
		{string(domain.FactorHumidity), w.Humidity},
		{string(domain.FactorNoiseLevel), w.NoiseLevel},
		{string(domain.FactorLightIntensity), w.LightIntensity},
		{string(domain.FactorAirQualityIndex), w.AirQualityIndex},
	}
	for _, f := range fields {
		if f.v == nil {
			return domain.EnvironmentReading{}, &domain.InvalidInputError{Field: f.name, Reason: "is required"}
		}
	}
	ts, err := parseTimestamp(w.Timestamp)
	if err != nil {
		return domain.EnvironmentReading{}, err
	}
	reading := domain.EnvironmentReading{
		Timestamp:       ts,
		Temperature:     *w.Temperature,
		Humidity:        *w.Humidity,
		NoiseLevel:      *w.NoiseLevel,
		LightIntensity:  *w.LightIntensity,
		AirQualityIndex: *w.AirQualityIndex,
	}
	if err := ValidateReading(reading); err != nil {
		return domain.EnvironmentReading{}, err
	}
	return reading, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, &domain.InvalidInputError{Field: "timestamp", Value: raw, Reason: "is not a recognised timestamp"}
}
