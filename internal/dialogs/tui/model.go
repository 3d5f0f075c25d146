// Package tui is an interactive terminal dialog for confirming power roll
// modifiers.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/KirkDiggler/vagabond-api/internal/dialogs"
	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/i18n"
	"github.com/KirkDiggler/vagabond-api/internal/rolls"
)

const (
	fieldEdges = iota
	fieldBanes
	fieldBonuses
	fieldCount
)

var fieldNames = [fieldCount]string{"Edges", "Banes", "Bonuses"}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Inc     key.Binding
	Dec     key.Binding
	Mode    key.Binding
	Skill   key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Inc, k.Dec, k.Mode, k.Skill, k.Confirm, k.Cancel}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Inc, k.Dec, k.Mode, k.Skill},
		{k.Confirm, k.Cancel},
	}
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev roll")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next roll")),
	Left:    key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/h", "prev field")),
	Right:   key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next field")),
	Inc:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "increase")),
	Dec:     key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "decrease")),
	Mode:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "roll mode")),
	Skill:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skill")),
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "roll")),
	Cancel:  key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4D96FF")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFD93D"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// Model is the bubbletea model behind the terminal dialog
type Model struct {
	req  *dialogs.Request
	loc  i18n.Localizer
	help help.Model

	rows     []dialogs.RollContext
	cursor   int
	field    int
	modeIdx  int
	skillIdx int

	result    *dialogs.Result
	done      bool
	cancelled bool
}

// NewModel builds the model for a request
func NewModel(req *dialogs.Request, loc i18n.Localizer) Model {
	if loc == nil {
		loc = i18n.DefaultLocalizer()
	}
	return Model{
		req:      req,
		loc:      loc,
		help:     help.New(),
		rows:     dialogs.DefaultRolls(req.Context),
		skillIdx: -1,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Cancel):
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, keys.Confirm):
			m.result = m.buildResult()
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Left):
			m.field = (m.field + fieldCount - 1) % fieldCount
		case key.Matches(msg, keys.Right):
			m.field = (m.field + 1) % fieldCount
		case key.Matches(msg, keys.Inc):
			m.adjust(1)
		case key.Matches(msg, keys.Dec):
			m.adjust(-1)
		case key.Matches(msg, keys.Mode):
			m.modeIdx = (m.modeIdx + 1) % len(entities.RollModes())
		case key.Matches(msg, keys.Skill):
			if n := len(m.req.Context.Skills); n > 0 {
				// cycles through "no skill" as well
				m.skillIdx = (m.skillIdx+2)%(n+1) - 1
			}
		}
	}
	return m, nil
}

func (m *Model) adjust(delta int) {
	row := &m.rows[m.cursor]
	switch m.field {
	case fieldEdges:
		row.Edges = clamp(row.Edges+delta, 0, rolls.MaxEdge)
	case fieldBanes:
		row.Banes = clamp(row.Banes+delta, 0, rolls.MaxBane)
	case fieldBonuses:
		row.Bonuses += delta
	}
}

func (m Model) buildResult() *dialogs.Result {
	res := &dialogs.Result{
		Rolls:    append([]dialogs.RollContext(nil), m.rows...),
		RollMode: entities.RollModes()[m.modeIdx],
	}
	if m.skillIdx >= 0 {
		res.Skill = m.req.Context.Skills[m.skillIdx]
	}
	return res
}

// Result is the confirmed result, nil when cancelled or still running
func (m Model) Result() *dialogs.Result {
	if m.cancelled {
		return nil
	}
	return m.result
}

// Done reports whether the user confirmed or cancelled
func (m Model) Done() bool { return m.done }

// View implements tea.Model
func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.req.Window.Title))
	b.WriteString("\n")

	for i, row := range m.rows {
		label := row.Target
		if label == "" {
			label = m.loc.Localize(m.req.Context.Type.Info().Label)
		}

		cells := make([]string, fieldCount)
		for f, v := range []int{row.Edges, row.Banes, row.Bonuses} {
			cell := fmt.Sprintf("%s %+d", fieldNames[f], v)
			if i == m.cursor && f == m.field {
				cell = selectedStyle.Render(cell)
			}
			cells[f] = cell
		}

		prefix := "  "
		if i == m.cursor {
			prefix = selectedStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%-20s %s\n", prefix, label, strings.Join(cells, "  "))
	}

	mode := entities.RollModes()[m.modeIdx]
	fmt.Fprintf(&b, "\n%s %s", dimStyle.Render("Roll mode:"), m.loc.Localize("VAGABOND.Roll.Modes."+string(mode)))
	if m.skillIdx >= 0 {
		skill := m.req.Context.Skills[m.skillIdx]
		fmt.Fprintf(&b, "  %s %s", dimStyle.Render("Skill:"), skill)
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
