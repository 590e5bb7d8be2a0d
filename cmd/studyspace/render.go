package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"studyspace/internal/core"
	"studyspace/internal/scoring"
	"studyspace/pkg/domain"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	labelStyle = lipgloss.NewStyle().Width(18)

	priorityColors = map[domain.Priority]lipgloss.Color{
		domain.PriorityHigh:   lipgloss.Color("#dc2626"),
		domain.PriorityMedium: lipgloss.Color("#f59e0b"),
		domain.PriorityLow:    lipgloss.Color("#16a34a"),
	}
)

func statusBadge(status scoring.Status) string {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(status.Color())).Render(string(status))
}

func priorityBadge(p domain.Priority) string {
	color, ok := priorityColors[p]
	if !ok {
		color = lipgloss.Color("#6b7280")
	}
	return lipgloss.NewStyle().Foreground(color).Render(strings.ToUpper(string(p)))
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.0f/100", score)
}

func renderLocationRow(la core.LocationAnalysis) string {
	return fmt.Sprintf("%s %s %s %s  %s",
		lipgloss.NewStyle().Width(3).Render(la.Location.ID),
		lipgloss.NewStyle().Width(36).Render(la.Location.Name),
		lipgloss.NewStyle().Width(8).Render(formatScore(la.Result.OptimalScore)),
		statusBadge(la.Status),
		mutedStyle.Render(string(la.Location.DataSource)),
	)
}

func renderAnalysis(title string, a core.Analysis) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s%s  %s\n", labelStyle.Render("Optimal score"), formatScore(a.Result.OptimalScore), statusBadge(a.Status))
	for _, factor := range domain.Factors() {
		value, _ := a.Reading.Value(factor)
		fmt.Fprintf(&b, "%s%g\n", labelStyle.Render(factor.Label()), value)
	}
	if len(a.Recommendations) == 0 {
		b.WriteString(mutedStyle.Render("All factors are within their optimal ranges."))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString("\n")
	for _, rec := range a.Recommendations {
		b.WriteString(renderRecommendation(rec))
	}
	return b.String()
}

func renderRecommendation(rec domain.Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", priorityBadge(rec.Priority), rec.Factor)
	if rec.LocationName != "" {
		fmt.Fprintf(&b, " @ %s", rec.LocationName)
		if rec.IsDemoData {
			b.WriteString(mutedStyle.Render(" (demo data)"))
		}
	}
	fmt.Fprintf(&b, "\n  %s\n  %s\n  %s\n", rec.Issue, rec.Recommendation, mutedStyle.Render(rec.ExpectedImprovement))
	return b.String()
}

func renderFeedback(fb domain.Feedback) string {
	line := fmt.Sprintf("%s  %s  %s  %s",
		fb.Timestamp.Format("2006-01-02 15:04"),
		lipgloss.NewStyle().Width(6).Render(strings.Repeat("*", fb.Rating)),
		lipgloss.NewStyle().Width(4).Render(fb.LocationID),
		fb.StudentName,
	)
	if fb.Comment != "" {
		line += mutedStyle.Render("  " + fb.Comment)
	}
	return line
}

func renderRating(r core.LocationRating) string {
	return fmt.Sprintf("%s %s avg %.1f from %d ratings  %v",
		lipgloss.NewStyle().Width(3).Render(r.LocationID),
		lipgloss.NewStyle().Width(36).Render(r.LocationName),
		r.AverageRating,
		r.Count,
		r.Histogram,
	)
}
