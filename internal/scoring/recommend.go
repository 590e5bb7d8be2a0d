package scoring

import (
	"fmt"
	"strconv"

	"studyspace/pkg/domain"
)

type templateKey struct {
	factor    domain.Factor
	direction domain.Direction
}

type template struct {
	issue          string // single %.1f verb for the current value
	recommendation string
	improvement    func(r domain.OptimalRange) string
	cost           string
}

func bandText(r domain.OptimalRange) string {
	return strconv.FormatFloat(r.Min, 'g', -1, 64) + "-" + strconv.FormatFloat(r.Max, 'g', -1, 64) + r.Unit
}

var templates = map[templateKey]template{
	{domain.FactorTemperature, domain.DirectionTooLow}: {
		issue:          "Temperature is too low (%.1f°C)",
		recommendation: "Increase heating or adjust thermostat settings. Consider installing smart thermostats to maintain optimal temperature ranges.",
		improvement: func(r domain.OptimalRange) string {
			return fmt.Sprintf("Increasing temperature to optimal range (%s) would improve student comfort and cognitive performance by up to 15%%.", bandText(r))
		},
		cost: "Low to Medium",
	},
	{domain.FactorTemperature, domain.DirectionTooHigh}: {
		issue:          "Temperature is too high (%.1f°C)",
		recommendation: "Improve cooling systems or adjust air conditioning. Consider installing ceiling fans for better air circulation.",
		improvement: func(r domain.OptimalRange) string {
			return fmt.Sprintf("Decreasing temperature to optimal range (%s) would improve concentration and reduce discomfort by up to 20%%.", bandText(r))
		},
		cost: "Medium",
	},
	{domain.FactorHumidity, domain.DirectionTooLow}: {
		issue:          "Humidity is too low (%.1f%%)",
		recommendation: "Install humidifiers or place water containers in the room to increase ambient humidity levels.",
		improvement: func(r domain.OptimalRange) string {
			return fmt.Sprintf("Increasing humidity to optimal range (%s) would reduce respiratory issues and eye strain by up to 25%%.", bandText(r))
		},
		cost: "Low",
	},
	{domain.FactorHumidity, domain.DirectionTooHigh}: {
		issue:          "Humidity is too high (%.1f%%)",
		recommendation: "Install dehumidifiers or improve ventilation systems to reduce moisture levels.",
		improvement: func(r domain.OptimalRange) string {
			return fmt.Sprintf("Decreasing humidity to optimal range (%s) would improve comfort and reduce mold risk by up to 30%%.", bandText(r))
		},
		cost: "Medium",
	},
	{domain.FactorNoiseLevel, domain.DirectionTooLow}: {
		issue:          "Noise level is too low (%.1fdB)",
		recommendation: "Introduce soft ambient sound to mask sudden distractions in very quiet rooms.",
		improvement: func(r domain.OptimalRange) string {
			return fmt.Sprintf("Raising ambient sound to optimal levels (%s) would make intermittent noises less disruptive.", bandText(r))
		},
		cost: "Low",
	},
	{domain.FactorNoiseLevel, domain.DirectionTooHigh}: {
		issue:          "Noise level is too high (%.1fdB)",
		recommendation: "Install sound-absorbing panels on walls and ceilings. Consider implementing noise policies and creating designated quiet zones.",
		improvement: func(r domain.OptimalRange) string {
			return fmt.Sprintf("Reducing noise to optimal levels (below %s%s) would improve concentration and reduce stress by up to 40%%.", strconv.FormatFloat(r.Max, 'g', -1, 64), r.Unit)
		},
		cost: "Medium to High",
	},
	{domain.FactorLightIntensity, domain.DirectionTooLow}: {
		issue:          "Light intensity is too low (%.1f lux)",
		recommendation: "Increase natural light by rearranging furniture or install additional lighting fixtures with adjustable brightness.",
		improvement: func(r domain.OptimalRange) string {
			return fmt.Sprintf("Increasing light intensity to optimal range (%g-%g %s) would reduce eye strain and increase alertness by up to 35%%.", r.Min, r.Max, r.Unit)
		},
		cost: "Low to Medium",
	},
	{domain.FactorLightIntensity, domain.DirectionTooHigh}: {
		issue:          "Light intensity is too high (%.1f lux)",
		recommendation: "Install window blinds or shades to control natural light. Consider using anti-glare filters on light sources.",
		improvement: func(r domain.OptimalRange) string {
			return fmt.Sprintf("Decreasing light intensity to optimal range (%g-%g %s) would reduce headaches and eye fatigue by up to 30%%.", r.Min, r.Max, r.Unit)
		},
		cost: "Low",
	},
	{domain.FactorAirQualityIndex, domain.DirectionTooLow}: {
		issue:          "Air quality index is unusually low (AQI: %.1f)",
		recommendation: "Verify the air quality sensor calibration; readings below the expected band usually indicate a faulty sensor.",
		improvement: func(domain.OptimalRange) string {
			return "Accurate air quality readings keep ventilation decisions grounded in real conditions."
		},
		cost: "Low",
	},
	{domain.FactorAirQualityIndex, domain.DirectionTooHigh}: {
		issue:          "Air quality is poor (AQI: %.1f)",
		recommendation: "Install air purifiers with HEPA filters and improve ventilation systems. Consider adding indoor plants to naturally improve air quality.",
		improvement: func(domain.OptimalRange) string {
			return "Improving air quality to optimal levels would enhance cognitive function by up to 15% and reduce respiratory issues."
		},
		cost: "Medium to High",
	},
}

// Recommend produces one recommendation per deviation in result, preserving
// the deviation order.
func Recommend(result domain.OptimalityResult) []domain.Recommendation {
	out := make([]domain.Recommendation, 0, len(result.SuboptimalFactors))
	for _, dev := range result.SuboptimalFactors {
		out = append(out, recommendationFor(dev))
	}
	return out
}

func recommendationFor(dev domain.FactorDeviation) domain.Recommendation {
	rec := domain.Recommendation{
		Factor:   dev.Factor.Label(),
		Priority: domain.PriorityForImpact(dev.Impact),
	}
	tpl, ok := templates[templateKey{dev.Factor, dev.Direction()}]
	if !ok {
		// unknown factors still yield a recommendation
		rec.Issue = fmt.Sprintf("%s is %s (%.1f)", dev.Factor.Label(), dev.Direction(), dev.CurrentValue)
		rec.Recommendation = fmt.Sprintf("Bring %s back within %g-%g.", dev.Factor.Label(), dev.OptimalRange.Min, dev.OptimalRange.Max)
		return rec
	}
	rec.Issue = fmt.Sprintf(tpl.issue, dev.CurrentValue)
	rec.Recommendation = tpl.recommendation
	rec.ExpectedImprovement = tpl.improvement(dev.OptimalRange)
	rec.EstimatedCost = tpl.cost
	return rec
}
