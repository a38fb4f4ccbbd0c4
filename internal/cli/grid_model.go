package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/lookahead/internal/cli/formatter"
	"github.com/alexanderramin/lookahead/internal/domain"
	"github.com/alexanderramin/lookahead/internal/editor"
	"github.com/alexanderramin/lookahead/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type gridMode int

const (
	modeNavigate gridMode = iota
	modeEditCell
	modeAddTask
	modeRenameTask
	modeConfirmDelete
)

type gridKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PrevWeek key.Binding
	NextWeek key.Binding
	Edit     key.Binding
	Add      key.Binding
	Rename   key.Binding
	Delete   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultGridKeys() gridKeyMap {
	return gridKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		PrevWeek: key.NewBinding(key.WithKeys("[", "pgup"), key.WithHelp("[", "prev week")),
		NextWeek: key.NewBinding(key.WithKeys("]", "pgdown"), key.WithHelp("]", "next week")),
		Edit:     key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("0-9/enter", "set crew")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Rename:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Delete:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		MoveUp:   key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "move down")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k gridKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.PrevWeek, k.NextWeek, k.Add, k.Help, k.Quit}
}

func (k gridKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.PrevWeek, k.NextWeek, k.Edit},
		{k.Add, k.Rename, k.Delete, k.MoveUp, k.MoveDown},
		{k.Help, k.Quit},
	}
}

// gridModel is the interactive week editor. Every change goes through the
// session's Store, which persists it.
type gridModel struct {
	ctx     context.Context
	session *service.EditorSession
	keys    gridKeyMap
	help    help.Model
	input   textinput.Model

	mode     gridMode
	row, col int
	status   string
	failures int
}

func newGridModel(ctx context.Context, session *service.EditorSession) *gridModel {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 80
	return &gridModel{
		ctx:     ctx,
		session: session,
		keys:    defaultGridKeys(),
		help:    help.New(),
		input:   in,
	}
}

func (m *gridModel) ed() *editor.Editor { return m.session.Editor }

func (m *gridModel) grid() (editor.Grid, bool) { return m.ed().Grid() }

func (m *gridModel) Init() tea.Cmd { return nil }

func (m *gridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		switch m.mode {
		case modeNavigate:
			cmd = m.updateNavigate(msg)
		case modeConfirmDelete:
			m.updateConfirmDelete(msg)
		default:
			cmd = m.updateInput(msg)
		}
		m.checkPersistence()
		return m, cmd
	}
	return m, nil
}

func (m *gridModel) updateNavigate(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	m.clampCursor()
	g, ok := m.grid()

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] >= '0' && msg.Runes[0] <= '9' {
		if ok && len(g.Rows) > 0 && len(g.Days) > 0 {
			return m.startInput(modeEditCell, string(msg.Runes))
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.row = max(0, m.row-1)
	case key.Matches(msg, m.keys.Down):
		if ok {
			m.row = min(max(0, len(g.Rows)-1), m.row+1)
		}
	case key.Matches(msg, m.keys.Left):
		m.col = max(0, m.col-1)
	case key.Matches(msg, m.keys.Right):
		if ok {
			m.col = min(max(0, len(g.Days)-1), m.col+1)
		}
	case key.Matches(msg, m.keys.PrevWeek):
		if !m.ed().PrevWeek(m.ctx) {
			m.status = "Already at the first week."
		}
		m.clampCursor()
	case key.Matches(msg, m.keys.NextWeek):
		if !m.ed().NextWeek(m.ctx) {
			m.status = "Already at the last week."
		}
		m.clampCursor()
	case key.Matches(msg, m.keys.Edit):
		if ok && len(g.Rows) > 0 && len(g.Days) > 0 {
			return m.startInput(modeEditCell, strconv.Itoa(g.Rows[m.row].Counts[m.col]))
		}
	case key.Matches(msg, m.keys.Add):
		if ok {
			return m.startInput(modeAddTask, "")
		}
	case key.Matches(msg, m.keys.Rename):
		if task := m.currentTask(); task != nil {
			return m.startInput(modeRenameTask, task.Name)
		}
	case key.Matches(msg, m.keys.Delete):
		if task := m.currentTask(); task != nil {
			m.mode = modeConfirmDelete
			m.status = fmt.Sprintf("Delete %q and its manpower? (y/n)", task.Name)
		}
	case key.Matches(msg, m.keys.MoveUp):
		if task := m.currentTask(); task != nil && m.row > 0 {
			m.session.Store.MoveTask(m.ctx, task.ID, m.row-1)
			m.row--
		}
	case key.Matches(msg, m.keys.MoveDown):
		if task := m.currentTask(); task != nil && m.row < len(g.Rows)-1 {
			m.session.Store.MoveTask(m.ctx, task.ID, m.row+1)
			m.row++
		}
	}
	return nil
}

func (m *gridModel) startInput(mode gridMode, value string) tea.Cmd {
	m.mode = mode
	m.input.SetValue(value)
	m.input.CursorEnd()
	switch mode {
	case modeEditCell:
		m.input.Placeholder = "0"
		m.input.Width = 4
	default:
		m.input.Placeholder = "Task name"
		m.input.Width = 40
	}
	return m.input.Focus()
}

func (m *gridModel) stopInput() {
	m.mode = modeNavigate
	m.input.Blur()
	m.input.SetValue("")
}

func (m *gridModel) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.stopInput()
		return nil
	case tea.KeyEnter:
		m.commitInput()
		m.stopInput()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *gridModel) commitInput() {
	value := m.input.Value()
	switch m.mode {
	case modeEditCell:
		task := m.currentTask()
		week, ok := m.ed().CurrentWeek()
		if task == nil || !ok {
			return
		}
		m.session.Store.UpdateManpowerInput(m.ctx, task.ID, week, m.col, value)
	case modeAddTask:
		id := m.session.Store.AddTask(m.ctx, value)
		if _, idx, found := m.session.Store.Schedule().TaskByID(id); found {
			m.row = idx
		}
	case modeRenameTask:
		task := m.currentTask()
		name := strings.TrimSpace(value)
		if task == nil || name == "" {
			return
		}
		m.session.Store.UpdateTask(m.ctx, task.ID, domain.TaskPatch{Name: &name})
	}
}

func (m *gridModel) updateConfirmDelete(msg tea.KeyMsg) {
	m.mode = modeNavigate
	m.status = ""
	if msg.String() != "y" {
		return
	}
	if task := m.currentTask(); task != nil {
		m.session.Store.RemoveTask(m.ctx, task.ID)
		m.status = "Deleted " + task.Name + "."
	}
	m.clampCursor()
}

func (m *gridModel) currentTask() *domain.Task {
	tasks := m.session.Store.Tasks()
	if m.row < 0 || m.row >= len(tasks) {
		return nil
	}
	return tasks[m.row]
}

func (m *gridModel) clampCursor() {
	g, ok := m.grid()
	if !ok {
		m.row, m.col = 0, 0
		return
	}
	m.row = max(0, min(m.row, len(g.Rows)-1))
	m.col = max(0, min(m.col, len(g.Days)-1))
}

// checkPersistence surfaces new save failures in the status line.
func (m *gridModel) checkPersistence() {
	err := m.session.Err()
	if err == nil {
		return
	}
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	if len(errs) > m.failures {
		m.failures = len(errs)
		m.status = "Save failed: " + errs[len(errs)-1].Error()
	}
}

func (m *gridModel) View() string {
	var b strings.Builder

	g, ok := m.grid()
	if !ok {
		b.WriteString(formatter.Warning("This schedule has no weeks to edit."))
		b.WriteString("\n\n" + m.help.View(m.keys))
		return b.String()
	}

	b.WriteString(formatter.FormatWeekGrid(g, func(row, col int, text string) string {
		if row != m.row || col != m.col {
			return text
		}
		if m.mode == modeEditCell {
			return m.input.View()
		}
		return formatter.StyleCursor.Render(strconv.Itoa(g.Rows[row].Counts[col]))
	}))
	b.WriteString("\n")

	prev, next := formatter.Bold("◀ prev"), formatter.Bold("next ▶")
	if g.PrevDisabled {
		prev = formatter.Dim("◀ prev")
	}
	if g.NextDisabled {
		next = formatter.Dim("next ▶")
	}
	b.WriteString(prev + "  " + next + "\n")

	switch m.mode {
	case modeAddTask:
		b.WriteString("\n" + formatter.StyleHeader.Render("New task: ") + m.input.View() + "\n")
	case modeRenameTask:
		b.WriteString("\n" + formatter.StyleHeader.Render("Rename: ") + m.input.View() + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}
