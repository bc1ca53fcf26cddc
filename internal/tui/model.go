// Package tui is a terminal front end for the task list. It keeps no task state of its own:
// every key that changes something becomes a tasklist action on the shared Store.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/mrklmrrr/TODOIST/internal/clock"
	"github.com/mrklmrrr/TODOIST/internal/task"
	"github.com/mrklmrrr/TODOIST/internal/tasklist"
)

// EmptyText replaces the list when no task passes the filters.
const EmptyText = "No tasks match your filters."

type focus int

const (
	focusList focus = iota
	focusTitle
	focusDescription
	focusSearch
	focusCount
)

const (
	inputTitle = iota
	inputDescription
	inputSearch
)

type Options struct {
	Title         string
	GenerateCount int
	TimeFormat    string
	// MaxRows caps how many rows are drawn at once; the window follows the cursor.
	MaxRows int
	Clock   clock.Clock
}

type styles struct {
	title       lipgloss.Style
	label       lipgloss.Style
	cursor      lipgloss.Style
	done        lipgloss.Style
	placeholder lipgloss.Style
	help        lipgloss.Style
	focused     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true).MarginBottom(1),
		label:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		cursor:      lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		done:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		placeholder: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")),
		help:        lipgloss.NewStyle().Faint(true),
		focused:     lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
	}
}

type Model struct {
	store  *tasklist.Store
	opts   Options
	inputs []textinput.Model
	focus  focus
	cursor int
	styles styles
}

func New(store *tasklist.Store, opts Options) Model {
	if opts.GenerateCount <= 0 {
		opts.GenerateCount = 1000
	}
	if opts.MaxRows <= 0 {
		opts.MaxRows = 15
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Title == "" {
		opts.Title = "Task list"
	}

	inputs := make([]textinput.Model, 3)
	for i, ph := range []string{"Task title", "Task description", "Search..."} {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = ph
		ti.CharLimit = 256
		ti.Width = 40
		inputs[i] = ti
	}

	m := Model{
		store:  store,
		opts:   opts,
		inputs: inputs,
		focus:  focusList,
		styles: defaultStyles(),
	}
	m.syncInputs()
	return m
}

func Run(store *tasklist.Store, opts Options) error {
	_, err := tea.NewProgram(New(store, opts), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) dispatch(actions ...tasklist.Action) tasklist.State {
	return m.store.DispatchAll(context.Background(), actions...)
}

// syncInputs copies drafts and search text from the store into the text inputs.
func (m *Model) syncInputs() {
	st := m.store.Snapshot()
	m.inputs[inputTitle].SetValue(st.Drafts.Title)
	m.inputs[inputDescription].SetValue(st.Drafts.Description)
	m.inputs[inputSearch].SetValue(st.Filters.Search)
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	switch f {
	case focusTitle:
		return m.inputs[inputTitle].Focus()
	case focusDescription:
		return m.inputs[inputDescription].Focus()
	case focusSearch:
		return m.inputs[inputSearch].Focus()
	}
	return nil
}

func (m *Model) clampCursor() {
	n := len(m.store.View().Visible)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		w := msg.Width - 20
		if w < 10 {
			w = 10
		}
		for i := range m.inputs {
			m.inputs[i].Width = w
		}
		if msg.Height > 16 {
			m.opts.MaxRows = msg.Height - 14
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global keys work in every focus.
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		return m, m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab":
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	case "esc":
		return m, m.setFocus(focusList)
	case "ctrl+s":
		st := m.store.Snapshot()
		m.dispatch(tasklist.SetSeverityDraft{Severity: st.Drafts.Severity.Next()})
		return m, nil
	case "ctrl+f":
		st := m.store.Snapshot()
		m.dispatch(tasklist.SetSeverityFilter{Filter: st.Filters.Severity.Next()})
		m.clampCursor()
		return m, nil
	case "ctrl+d":
		m.dispatch(tasklist.ToggleShowDone{})
		m.clampCursor()
		return m, nil
	case "ctrl+g":
		m.dispatch(tasklist.GenerateTasks{Count: m.opts.GenerateCount})
		return m, nil
	}

	if m.focus == focusList {
		return m.updateList(key)
	}
	return m.updateInput(key, msg)
}

func (m Model) updateList(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		m.cursor++
		m.clampCursor()
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = len(m.store.View().Visible) - 1
		m.clampCursor()
	case " ", "enter", "x":
		visible := m.store.View().Visible
		if len(visible) == 0 {
			return m, nil
		}
		m.dispatch(tasklist.ToggleDone{ID: visible[m.cursor].ID})
		m.clampCursor()
	case "a":
		return m, m.setFocus(focusTitle)
	case "/":
		return m, m.setFocus(focusSearch)
	case "s":
		st := m.store.Snapshot()
		m.dispatch(tasklist.SetSeverityDraft{Severity: st.Drafts.Severity.Next()})
	case "f":
		st := m.store.Snapshot()
		m.dispatch(tasklist.SetSeverityFilter{Filter: st.Filters.Severity.Next()})
		m.clampCursor()
	case "d":
		m.dispatch(tasklist.ToggleShowDone{})
		m.clampCursor()
	case "g":
		m.dispatch(tasklist.GenerateTasks{Count: m.opts.GenerateCount})
	}
	return m, nil
}

func (m Model) updateInput(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key == "enter" {
		if m.focus == focusSearch {
			return m, m.setFocus(focusList)
		}
		m.dispatch(tasklist.AddTask{})
		m.syncInputs()
		return m, nil
	}

	var idx int
	switch m.focus {
	case focusTitle:
		idx = inputTitle
	case focusDescription:
		idx = inputDescription
	default:
		idx = inputSearch
	}

	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	value := m.inputs[idx].Value()

	switch idx {
	case inputTitle:
		m.dispatch(tasklist.SetTitleDraft{Title: value})
	case inputDescription:
		m.dispatch(tasklist.SetDescriptionDraft{Description: value})
	case inputSearch:
		m.dispatch(tasklist.SetSearch{Text: value})
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) View() string {
	v := m.store.View()
	st := v.State
	now := m.opts.Clock.Now()

	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.opts.Title))
	b.WriteString("\n")

	// filter panel
	b.WriteString(m.fieldLabel("Search", focusSearch))
	b.WriteString(m.inputs[inputSearch].View())
	b.WriteString("\n")
	b.WriteString(m.styles.label.Render(fmt.Sprintf("Severity: %s   Show done: %s   Showing %s of %s",
		st.Filters.Severity.Label(), yesNo(st.Filters.ShowDone),
		humanize.Comma(int64(len(v.Visible))), humanize.Comma(int64(v.Total)))))
	b.WriteString("\n\n")

	// task list
	if v.Empty() {
		b.WriteString(m.styles.placeholder.Render(EmptyText))
		b.WriteString("\n")
	} else {
		start, end := window(m.cursor, len(v.Visible), m.opts.MaxRows)
		for i := start; i < end; i++ {
			b.WriteString(m.renderRow(task.NewRow(v.Visible[i], m.opts.TimeFormat, now), i == m.cursor && m.focus == focusList))
			b.WriteString("\n")
		}
		if end-start < len(v.Visible) {
			b.WriteString(m.styles.help.Render(fmt.Sprintf("rows %d-%d of %d", start+1, end, len(v.Visible))))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	// input panel
	b.WriteString(m.fieldLabel("Title", focusTitle))
	b.WriteString(m.inputs[inputTitle].View())
	b.WriteString("\n")
	b.WriteString(m.fieldLabel("Description", focusDescription))
	b.WriteString(m.inputs[inputDescription].View())
	b.WriteString("\n")
	b.WriteString(m.styles.label.Render("Severity: "))
	for _, sev := range task.Severities {
		mark := "( )"
		if sev == st.Drafts.Severity {
			mark = "(•)"
		}
		b.WriteString(fmt.Sprintf("%s %s  ", mark, sev.Label()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.help.Render(fmt.Sprintf(
		"tab focus • enter add/toggle • space toggle • s/ctrl+s severity • f/ctrl+f filter • d/ctrl+d show done • g/ctrl+g generate %s • q quit",
		humanize.Comma(int64(m.opts.GenerateCount)))))
	return b.String()
}

func (m Model) fieldLabel(name string, f focus) string {
	label := fmt.Sprintf("%-13s", name+":")
	if m.focus == f {
		return m.styles.focused.Render(label)
	}
	return m.styles.label.Render(label)
}

func (m Model) renderRow(r task.Row, selected bool) string {
	box := "[ ]"
	if r.Done {
		box = "[x]"
	}
	line := fmt.Sprintf("%s %s: %s (Severity: %s) (Added: %s)", box, r.Title, r.Description, r.Severity, r.Created)
	if r.Done {
		line = m.styles.done.Render(line)
	}
	if selected {
		return m.styles.cursor.Render("> ") + line
	}
	return "  " + line
}

// window returns the half-open row range to draw so that cursor stays visible.
func window(cursor, n, max int) (int, int) {
	if n <= max {
		return 0, n
	}
	start := cursor - max/2
	if start < 0 {
		start = 0
	}
	end := start + max
	if end > n {
		end = n
		start = n - max
	}
	return start, end
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
