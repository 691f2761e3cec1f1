package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ukaji3/attendance-go/pkg/attendance/models"
)

const (
	white  = lipgloss.Color("#FFFFFF")
	blue   = lipgloss.Color("#0043a8")
	grey   = lipgloss.Color("#626262")
	green  = lipgloss.Color("#50FA7B")
	yellow = lipgloss.Color("#F1FA8C")
	red    = lipgloss.Color("#FF5555")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(white).Background(blue).Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Foreground(grey)
	cardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(blue).Padding(0, 1)
	courseCol  = lipgloss.NewStyle().Width(14)
	sectionCol = lipgloss.NewStyle().Width(6)
	countCol   = lipgloss.NewStyle().Width(12).Align(lipgloss.Right)
)

// BandColor returns the display colour for a band.
func BandColor(b models.Band) lipgloss.Color {
	switch b {
	case models.BandHigh:
		return green
	case models.BandMedium:
		return yellow
	default:
		return red
	}
}

func bandStyle(b models.Band) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(BandColor(b))
}

// RenderReport renders a report as a styled terminal card.
func RenderReport(r *models.Report) string {
	var b strings.Builder

	name := r.StudentName
	if name == "" {
		name = "Unknown student"
	}
	b.WriteString(titleStyle.Render(name) + " " + labelStyle.Render(r.RollNumber) + "\n\n")
	fmt.Fprintf(&b, "%s %d   %s %d   %s %d\n",
		labelStyle.Render("Total Classes"), r.TotalClasses,
		labelStyle.Render("Present"), r.TotalPresent,
		labelStyle.Render("Absent"), r.TotalAbsent,
	)
	fmt.Fprintf(&b, "%s %s %s\n\n",
		labelStyle.Render("Overall:"),
		bandStyle(r.Band).Render(fmt.Sprintf("%.1f%%", r.OverallPercentage)),
		progressBar(r.OverallPercentage, 20, r.Band),
	)

	for _, s := range r.Subjects {
		b.WriteString(courseCol.Render(s.CourseName))
		b.WriteString(sectionCol.Render(s.Section))
		b.WriteString(countCol.Render(fmt.Sprintf("%d/%d", s.TotalPresent, s.TotalClasses)))
		b.WriteString("  ")
		b.WriteString(bandStyle(s.Band).Render(fmt.Sprintf("%6.2f%%", s.Percentage)))
		b.WriteString("\n")
	}

	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func progressBar(pct float64, width int, band models.Band) string {
	filled := int(pct / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return bandStyle(band).Render(strings.Repeat("█", filled)) +
		labelStyle.Render(strings.Repeat("░", width-filled))
}

// PlainReport renders a report without styling, for chat messages.
func PlainReport(r *models.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s)\n", r.StudentName, r.RollNumber)
	fmt.Fprintf(&b, "Overall: %.1f%% (%s), %d/%d present\n",
		r.OverallPercentage, r.Band, r.TotalPresent, r.TotalClasses)
	for _, s := range r.Subjects {
		fmt.Fprintf(&b, "- %s", s.CourseName)
		if s.Section != "" {
			fmt.Fprintf(&b, " [%s]", s.Section)
		}
		fmt.Fprintf(&b, ": %.2f%% (%d/%d)\n", s.Percentage, s.TotalPresent, s.TotalClasses)
	}
	return strings.TrimRight(b.String(), "\n")
}
