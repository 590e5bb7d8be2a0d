package scoring

import "math"

// Impact measures how far value lies outside the inclusive band [min, max],
// normalised by the band width and capped at 100. Values inside the band
// have zero impact. min must be strictly less than max; RangeTable enforces it.
func Impact(value, min, max float64) float64 {
	if value >= min && value <= max {
		return 0
	}
	var distance float64
	if value < min {
		distance = min - value
	} else {
		distance = value - max
	}
	return math.Min(100, distance/(max-min)*100)
}
