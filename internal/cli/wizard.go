package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/lookahead/internal/calendar"
	"github.com/alexanderramin/lookahead/internal/cli/formatter"
	"github.com/alexanderramin/lookahead/internal/domain"
	"github.com/alexanderramin/lookahead/internal/form"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// lookaheadHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func lookaheadHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardValues is what the huh fields edit. Fields are exported so huh can
// hash them to notice changes for the end-date note.
type wizardValues struct {
	Name     string
	ShortID  string
	Start    string
	Weeks    string
	Hours    string
	WorkDays []domain.Weekday
	Confirm  bool
}

// scheduleWizard drives a form.ScheduleForm from huh inputs. The end date
// shown to the user is the form's derived value, recomputed as the start
// date and week count are typed.
type scheduleWizard struct {
	form   *form.ScheduleForm
	values wizardValues
}

func newScheduleWizard(hours float64, days domain.WorkDayPattern) *scheduleWizard {
	return &scheduleWizard{
		form: form.NewScheduleForm(hours, days),
		values: wizardValues{
			Hours:    strconv.FormatFloat(hours, 'f', -1, 64),
			WorkDays: append([]domain.Weekday(nil), days...),
			Confirm:  true,
		},
	}
}

func (w *scheduleWizard) Close() { w.form.Close() }

func (w *scheduleWizard) validateName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("name is required")
	}
	w.form.Name.Set(s)
	return nil
}

func (w *scheduleWizard) validateShortID(s string) error {
	probe := domain.Schedule{ShortID: domain.NormalizeShortID(s)}
	if err := probe.ValidateShortID(); err != nil {
		return err
	}
	w.form.ShortID.Set(probe.ShortID)
	return nil
}

func (w *scheduleWizard) validateStart(s string) error {
	if strings.TrimSpace(s) == "" {
		w.form.StartDate.Clear()
		return fmt.Errorf("start date is required")
	}
	return w.form.SetStartDateText(s)
}

func (w *scheduleWizard) validateWeeks(s string) error {
	if strings.TrimSpace(s) == "" {
		w.form.TotalWeeks.Clear()
		return fmt.Errorf("number of weeks is required")
	}
	return w.form.SetTotalWeeksText(s)
}

func (w *scheduleWizard) validateHours(s string) error {
	h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || h <= 0 {
		return fmt.Errorf("enter a positive number of hours")
	}
	w.form.HoursPerDay.Set(h)
	return nil
}

func (w *scheduleWizard) validateWorkDays(days []domain.Weekday) error {
	if len(days) == 0 {
		return fmt.Errorf("pick at least one work day")
	}
	w.form.WorkDays.Set(domain.NewWorkDayPattern(days...))
	return nil
}

// sync pushes every current value into the form, ignoring invalid ones.
func (w *scheduleWizard) sync() {
	_ = w.validateName(w.values.Name)
	_ = w.validateShortID(w.values.ShortID)
	_ = w.validateStart(w.values.Start)
	_ = w.validateWeeks(w.values.Weeks)
	_ = w.validateHours(w.values.Hours)
	_ = w.validateWorkDays(w.values.WorkDays)
}

// endDateSummary describes the derived end date.
func (w *scheduleWizard) endDateSummary() string {
	w.sync()
	end := w.form.EndDateText()
	if end == "" {
		return "Enter a start date and number of weeks."
	}
	weeks, _ := w.form.TotalWeeks.Get()
	return fmt.Sprintf("Ends %s (%d weeks)", end, weeks)
}

func (w *scheduleWizard) Form() *huh.Form {
	selected, _ := w.form.WorkDays.Get()
	dayOptions := make([]huh.Option[domain.Weekday], 0, 7)
	for d := domain.Monday; d <= domain.Sunday; d++ {
		dayOptions = append(dayOptions, huh.NewOption(d.String(), d).Selected(selected.Contains(d)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Schedule Name").
				Placeholder("Level 2 slab").
				Value(&w.values.Name).
				Validate(w.validateName),
			huh.NewInput().
				Title("Short ID").
				Placeholder("LAS01").
				Value(&w.values.ShortID).
				Validate(w.validateShortID),
			huh.NewInput().
				Title("Start Date (YYYY-MM-DD)").
				Placeholder("2025-01-06").
				Value(&w.values.Start).
				Validate(w.validateStart),
			huh.NewInput().
				Title("Number of Weeks").
				Placeholder("3").
				Value(&w.values.Weeks).
				Validate(w.validateWeeks),
			huh.NewNote().
				Title("End Date").
				DescriptionFunc(w.endDateSummary, &w.values),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Hours per Day").
				Value(&w.values.Hours).
				Validate(w.validateHours),
			huh.NewMultiSelect[domain.Weekday]().
				Title("Work Days").
				Options(dayOptions...).
				Value(&w.values.WorkDays).
				Validate(w.validateWorkDays),
			huh.NewConfirm().
				Title("Create schedule?").
				Affirmative("Yes").
				Negative("No").
				Value(&w.values.Confirm),
		),
	).WithTheme(lookaheadHuhTheme()).WithShowHelp(false)
}

// Build returns the schedule described by the current values.
func (w *scheduleWizard) Build() (*domain.Schedule, error) {
	w.sync()
	return w.form.Build()
}

func newNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create a schedule with an interactive wizard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("new needs an interactive terminal; use 'lookahead schedule add' instead")
			}

			hours, days := app.scheduleDefaults()
			w := newScheduleWizard(hours, days)
			defer w.Close()

			if err := w.Form().RunWithContext(cmd.Context()); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
				return err
			}
			if !w.values.Confirm {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
				return nil
			}

			s, err := w.Build()
			if err != nil {
				return err
			}
			if err := app.Schedules.Create(cmd.Context(), s); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf(
				"Created schedule %s [%s] %s, %d weeks",
				s.Name, s.ShortID, formatter.FormatDateRange(s.StartDate, s.EndDate), calendar.TotalWeeks(s))))
			return nil
		},
	}
}
