package display

import (
	"fmt"
	"strings"

	"sales-briefing/internal/models"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Toggle, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Toggle, k.Help, k.Quit},
	}
}

func defaultKeys() keyMap {
	return keyMap{
		Left:   key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/h", "prev tab")),
		Right:  key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next tab")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the tabbed briefing viewer. All view state lives in the value:
// two models over the same briefing never share a selection or an
// expanded card.
type Model struct {
	sections []Section
	topLine  string
	tab      int
	selected int
	expanded int // -1 when nothing is expanded

	keys     keyMap
	help     help.Model
	styles   Styles
	width    int
	quitting bool
}

func NewModel(b *models.BriefingResult, st Styles) Model {
	return Model{
		sections: Sections(b),
		topLine:  topPickLine(b, st),
		expanded: -1,
		keys:     defaultKeys(),
		help:     help.New(),
		styles:   st,
	}
}

func (m Model) Tab() int      { return m.tab }
func (m Model) Selected() int { return m.selected }
func (m Model) Expanded() int { return m.expanded }

func (m Model) CurrentSection() Section { return m.sections[m.tab] }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Right):
			m = m.switchTab((m.tab + 1) % len(m.sections))
		case key.Matches(msg, m.keys.Left):
			m = m.switchTab((m.tab - 1 + len(m.sections)) % len(m.sections))
		case key.Matches(msg, m.keys.Down):
			if m.selected < len(m.CurrentSection().Items)-1 {
				m.selected++
			}
		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, m.keys.Toggle):
			if len(m.CurrentSection().Items) == 0 {
				break
			}
			if m.expanded == m.selected {
				m.expanded = -1
			} else {
				m.expanded = m.selected
			}
		}
	}
	return m, nil
}

func (m Model) switchTab(tab int) Model {
	m.tab = tab
	m.selected = 0
	m.expanded = -1
	return m
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	st := m.styles

	tabs := make([]string, len(m.sections))
	for i, sec := range m.sections {
		label := fmt.Sprintf("%s (%d)", sec.Title, len(sec.Items))
		if i == m.tab {
			tabs[i] = st.TabOn.Render(label)
		} else {
			tabs[i] = st.Tab.Render(label)
		}
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(tabs, " "))
	sb.WriteString("\n")
	sb.WriteString(m.topLine)
	sb.WriteString("\n\n")

	sec := m.CurrentSection()
	if sec.Empty() {
		sb.WriteString(st.Empty.Render("Nothing to show in this section."))
		sb.WriteString("\n")
	}
	for i, it := range sec.Items {
		line := renderItemText(it, st, i == m.expanded)
		if i == m.selected {
			line = st.Selected.Render(">") + line[1:]
		}
		sb.WriteString(line)
	}

	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}
