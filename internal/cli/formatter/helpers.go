package formatter

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const dateLayout = "2006-01-02"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Format(dateLayout)
}

// FormatDateRange renders "2025-01-06 → 2025-01-12".
func FormatDateRange(from, to time.Time) string {
	return FormatDate(from) + " → " + FormatDate(to)
}

// DayHeader renders a grid column label such as "Mon 01-06".
func DayHeader(t time.Time) string {
	return t.Format("Mon 01-02")
}

// FormatHours renders labor hours without trailing zeros: 64, 7.5.
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

// WeekLabel renders a one-based week position such as "Week 2 of 3".
func WeekLabel(week, total int) string {
	return "Week " + strconv.Itoa(week+1) + " of " + strconv.Itoa(total)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
