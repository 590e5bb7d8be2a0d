package scoring

import "testing"

func TestStatusForScore(t *testing.T) {
	cases := []struct {
		score float64
		want  Status
		color string
	}{
		{100, StatusOptimal, "#16a34a"},
		{80, StatusOptimal, "#16a34a"},
		{79.9, StatusModerate, "#f59e0b"},
		{60, StatusModerate, "#f59e0b"},
		{59.9, StatusNotOptimal, "#dc2626"},
		{0, StatusNotOptimal, "#dc2626"},
	}
	for _, c := range cases {
		got := StatusForScore(c.score)
		if got != c.want || got.Color() != c.color {
			t.Fatalf("StatusForScore(%v) = %s (%s), want %s (%s)", c.score, got, got.Color(), c.want, c.color)
		}
	}
	if Status("unknown").Color() != "#6b7280" {
		t.Fatalf("unexpected fallback colour")
	}
}
