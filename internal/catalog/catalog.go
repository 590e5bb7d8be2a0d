// Package catalog provides the campus study locations and converts their
// displayed metrics into readings the scorer understands.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"studyspace/pkg/domain"
)

//go:embed locations.yaml
var defaultCatalog []byte

// AirQuality is the three-level air quality category shown for a location.
type AirQuality string

// Air quality categories.
const (
	AirQualityGood     AirQuality = "Good"
	AirQualityModerate AirQuality = "Moderate"
	AirQualityPoor     AirQuality = "Poor"
)

// Index maps the category to the numeric index used for scoring.
func (a AirQuality) Index() (float64, error) {
	switch a {
	case AirQualityGood:
		return 80, nil
	case AirQualityModerate:
		return 110, nil
	case AirQualityPoor:
		return 150, nil
	default:
		return 0, &domain.InvalidInputError{Field: "airQuality", Value: string(a), Reason: "is not a known category"}
	}
}

// DataSource labels where a location's metrics come from. It is display
// metadata only.
type DataSource string

// Data sources.
const (
	DataSourceTrainedModel DataSource = "trained-model"
	DataSourceDemo         DataSource = "demo"
	DataSourceNone         DataSource = "no-data"
)

// Details describes opening hours and amenities.
type Details struct {
	Hours     string   `yaml:"hours" json:"hours,omitempty"`
	Amenities []string `yaml:"amenities" json:"amenities"`
	Capacity  int      `yaml:"capacity" json:"capacity,omitempty"`
}

// Metrics are the environmental values displayed for a location.
type Metrics struct {
	Noise      float64    `yaml:"noise" json:"noise"`
	Temp       float64    `yaml:"temp" json:"temp"`
	Humidity   float64    `yaml:"humidity" json:"humidity"`
	Lighting   float64    `yaml:"lighting" json:"lighting"`
	AirQuality AirQuality `yaml:"airQuality" json:"airQuality"`
}

// Location is a campus study location.
type Location struct {
	ID            string     `yaml:"id" json:"id"`
	Name          string     `yaml:"name" json:"name"`
	Status        string     `yaml:"status" json:"status"`
	Description   string     `yaml:"description" json:"description"`
	DataSource    DataSource `yaml:"dataSource" json:"dataSource"`
	Details       Details    `yaml:"details" json:"details"`
	Metrics       Metrics    `yaml:"metrics" json:"metrics"`
	Images        []string   `yaml:"images" json:"images"`
	AverageRating float64    `yaml:"averageRating" json:"averageRating"`
}

// Reading converts the location's displayed metrics into a scorer input.
func (l Location) Reading(at time.Time) (domain.EnvironmentReading, error) {
	aqi, err := l.Metrics.AirQuality.Index()
	if err != nil {
		return domain.EnvironmentReading{}, err
	}
	return domain.EnvironmentReading{
		Timestamp:       at.UTC(),
		Temperature:     l.Metrics.Temp,
		Humidity:        l.Metrics.Humidity,
		NoiseLevel:      l.Metrics.Noise,
		LightIntensity:  l.Metrics.Lighting,
		AirQualityIndex: aqi,
	}, nil
}

func (l Location) clone() Location {
	out := l
	out.Details.Amenities = append([]string(nil), l.Details.Amenities...)
	out.Images = append([]string(nil), l.Images...)
	return out
}

// Catalog is an immutable, ordered set of locations.
type Catalog struct {
	locations []Location
	byID      map[string]int
}

type document struct {
	Locations []Location `yaml:"locations"`
}

// Parse decodes a YAML catalog document and validates it.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	c := &Catalog{byID: make(map[string]int, len(doc.Locations))}
	for _, loc := range doc.Locations {
		if strings.TrimSpace(loc.ID) == "" {
			return nil, fmt.Errorf("catalog location %q has no id", loc.Name)
		}
		if _, dup := c.byID[loc.ID]; dup {
			return nil, fmt.Errorf("catalog location id %s duplicated", loc.ID)
		}
		if _, err := loc.Metrics.AirQuality.Index(); err != nil {
			return nil, fmt.Errorf("catalog location %s: %w", loc.ID, err)
		}
		switch loc.DataSource {
		case "":
			loc.DataSource = DataSourceDemo
		case DataSourceTrainedModel, DataSourceDemo, DataSourceNone:
		default:
			return nil, fmt.Errorf("catalog location %s: unknown data source %s", loc.ID, loc.DataSource)
		}
		c.byID[loc.ID] = len(c.locations)
		c.locations = append(c.locations, loc)
	}
	return c, nil
}

// Load reads a YAML catalog from path. An empty path yields the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- operator supplied catalog path
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in campus catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

// Locations returns copies of all locations in catalog order.
func (c *Catalog) Locations() []Location {
	out := make([]Location, 0, len(c.locations))
	for _, loc := range c.locations {
		out = append(out, loc.clone())
	}
	return out
}

// Location looks a location up by id.
func (c *Catalog) Location(id string) (Location, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Location{}, false
	}
	return c.locations[idx].clone(), true
}

// Len returns the number of locations.
func (c *Catalog) Len() int { return len(c.locations) }
