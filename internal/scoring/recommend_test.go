package scoring

import (
	"strings"
	"testing"

	"studyspace/pkg/domain"
)

func TestRecommendDirection(t *testing.T) {
	res, err := NewDefaultScorer().Score(reading(18, 45, 30, 400, 50))
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	recs := Recommend(res)
	if len(recs) != 1 {
		t.Fatalf("expected one recommendation, got %d", len(recs))
	}
	rec := recs[0]
	if rec.Issue != "Temperature is too low (18.0°C)" {
		t.Fatalf("unexpected issue %q", rec.Issue)
	}
	if !strings.Contains(rec.ExpectedImprovement, "optimal range (21-25°C)") {
		t.Fatalf("unexpected improvement %q", rec.ExpectedImprovement)
	}
	if rec.Priority != domain.PriorityHigh || rec.EstimatedCost != "Low to Medium" {
		t.Fatalf("unexpected priority/cost %+v", rec)
	}
}

func TestRecommendTextsForEveryTemplate(t *testing.T) {
	table := DefaultRanges()
	for _, f := range domain.Factors() {
		r, _ := table.Lookup(f)
		for _, dev := range []domain.FactorDeviation{
			{Factor: f, CurrentValue: r.Min - 1, OptimalRange: r, Impact: 10},
			{Factor: f, CurrentValue: r.Max + 1, OptimalRange: r, Impact: 10},
		} {
			rec := recommendationFor(dev)
			if rec.Issue == "" || rec.Recommendation == "" || rec.ExpectedImprovement == "" || rec.EstimatedCost == "" {
				t.Fatalf("incomplete recommendation for %s %s: %+v", f, dev.Direction(), rec)
			}
			if strings.Contains(rec.Issue, "%!") || strings.Contains(rec.ExpectedImprovement, "%!") {
				t.Fatalf("format error in %+v", rec)
			}
			if rec.Factor != f.Label() {
				t.Fatalf("unexpected label %q", rec.Factor)
			}
		}
	}
}

func TestRecommendPreservesOrder(t *testing.T) {
	res, err := NewDefaultScorer().Score(reading(26, 45, 70, 400, 50))
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	recs := Recommend(res)
	if len(recs) != 2 || recs[0].Factor != "Noise Level" || recs[1].Factor != "Temperature" {
		t.Fatalf("unexpected order %+v", recs)
	}
	if recs[0].Issue != "Noise level is too high (70.0dB)" {
		t.Fatalf("unexpected noise issue %q", recs[0].Issue)
	}
}

func TestRecommendUnknownFactorFallback(t *testing.T) {
	rec := recommendationFor(domain.FactorDeviation{Factor: "co2", CurrentValue: 1200, OptimalRange: domain.OptimalRange{Min: 400, Max: 800}, Impact: 100})
	if rec.Issue == "" || rec.Priority != domain.PriorityHigh {
		t.Fatalf("unexpected fallback %+v", rec)
	}
}
