package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/lookahead/internal/calendar"
	"github.com/alexanderramin/lookahead/internal/domain"
	"github.com/alexanderramin/lookahead/internal/editor"
)

// ScheduleInspectData holds what the inspect view shows beyond the schedule.
type ScheduleInspectData struct {
	Schedule    *domain.Schedule
	TotalWeeks  int
	CurrentWeek int
	// TaskHours maps task id to labor hours across all weeks.
	TaskHours map[string]float64
}

// FormatScheduleList renders schedules inside a bordered box.
func FormatScheduleList(schedules []*domain.Schedule) string {
	headers := []string{"ID", "NAME", "START", "END", "WEEKS", "TASKS"}
	rows := make([][]string, 0, len(schedules))
	for _, s := range schedules {
		rows = append(rows, []string{
			s.DisplayID(),
			Bold(s.Name),
			FormatDate(s.StartDate),
			FormatDate(s.EndDate),
			strconv.Itoa(calendar.TotalWeeks(s)),
			strconv.Itoa(len(s.Tasks)),
		})
	}
	return RenderBox("Schedules", RenderTable(headers, rows, AlignRight(4, 5)))
}

// FormatScheduleInspect renders a schedule's settings and its task list.
func FormatScheduleInspect(data ScheduleInspectData) string {
	s := data.Schedule
	var b strings.Builder

	b.WriteString(StyleBold.Render(s.Name) + "  " + Dim(s.DisplayID()) + "\n\n")
	field := func(label, value string) {
		fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render(fmt.Sprintf("%-9s", label)), value)
	}
	field("DATES", FormatDateRange(s.StartDate, s.EndDate))
	field("WEEKS", strconv.Itoa(data.TotalWeeks))
	if data.TotalWeeks > 0 {
		field("CURRENT", WeekLabel(data.CurrentWeek, data.TotalWeeks))
	}
	field("WORK DAYS", s.WorkDays.String())
	field("HOURS/DAY", FormatHours(s.HoursPerDay))
	b.WriteString("\n")

	if len(s.Tasks) == 0 {
		b.WriteString(Dim("No tasks yet."))
		return RenderBox("", b.String())
	}

	headers := []string{"#", "TASK", "HOURS"}
	rows := make([][]string, 0, len(s.Tasks))
	var total float64
	for i, t := range s.Tasks {
		h := data.TaskHours[t.ID]
		total += h
		rows = append(rows, []string{strconv.Itoa(i + 1), t.Name, FormatHours(h)})
	}
	b.WriteString(RenderTable(headers, rows, AlignRight(0, 2), WithFooter("", "Total", FormatHours(total))))
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

// CellFunc decorates a rendered grid cell. row and col are zero-based
// positions in the grid's task rows and day columns.
type CellFunc func(row, col int, text string) string

// FormatWeekGrid renders one week as a task × day table with per-task hours
// and a daily total footer.
func FormatWeekGrid(g editor.Grid, cell CellFunc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n\n",
		StyleBold.Render(g.ScheduleName),
		StyleHeader.Render(WeekLabel(g.Week, g.TotalWeeks)),
		Dim(FormatDateRange(g.WeekStart, g.WeekEnd)))

	headers := make([]string, 0, len(g.Days)+2)
	headers = append(headers, "TASK")
	for _, d := range g.Days {
		headers = append(headers, DayHeader(d.Date))
	}
	headers = append(headers, "HOURS")

	numeric := make([]int, 0, len(g.Days)+1)
	for i := range g.Days {
		numeric = append(numeric, i+1)
	}
	numeric = append(numeric, len(g.Days)+1)

	rows := make([][]string, 0, len(g.Rows))
	for r, row := range g.Rows {
		cells := make([]string, 0, len(headers))
		cells = append(cells, row.Name)
		for c, n := range row.Counts {
			text := CountStyle(n).Render(strconv.Itoa(n))
			if cell != nil {
				text = cell(r, c, text)
			}
			cells = append(cells, text)
		}
		cells = append(cells, FormatHours(row.Hours))
		rows = append(rows, cells)
	}

	footer := make([]string, 0, len(headers))
	footer = append(footer, "Total")
	for _, n := range g.DayTotals {
		footer = append(footer, strconv.Itoa(n))
	}
	footer = append(footer, FormatHours(g.TotalHours))

	if len(g.Days) == 0 {
		b.WriteString(Dim("No work days fall in this week."))
		return b.String()
	}
	if len(g.Rows) == 0 {
		b.WriteString(Dim("No tasks yet."))
		return b.String()
	}
	b.WriteString(RenderTable(headers, rows, AlignRight(numeric...), WithFooter(footer...)))
	return b.String()
}
