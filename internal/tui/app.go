package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/catalogctl/internal/tui/detail"
)

// AppModel is the console: one tab per resource screen.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type AppModel struct {
	ctx     context.Context
	screens []*ListModel
	active  int
	started map[int]bool
	width   int
	height  int
}

// NewAppModel creates the console with the given screens, starting on the
// screen named initial (or the first one).
func NewAppModel(ctx context.Context, screens []*ListModel, initial string) (AppModel, error) {
	if len(screens) == 0 {
		return AppModel{}, fmt.Errorf("console needs at least one screen")
	}
	m := AppModel{ctx: ctx, screens: screens, started: map[int]bool{}, width: defaultWidth, height: defaultHeight}
	if initial != "" {
		found := false
		for i, s := range screens {
			if s.Name() == initial || strings.EqualFold(s.Title(), initial) {
				m.active = i
				found = true
				break
			}
		}
		if !found {
			return AppModel{}, fmt.Errorf("unknown screen %q", initial)
		}
	}
	return m, nil
}

// Active returns the visible screen.
func (m AppModel) Active() *ListModel {
	return m.screens[m.active]
}

// Init loads the initial screen.
func (m AppModel) Init() tea.Cmd {
	m.started[m.active] = true
	return m.screens[m.active].Init()
}

// Update routes messages to screens.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: max(msg.Height-1, minHeight)}
		cmds := make([]tea.Cmd, 0, len(m.screens))
		for _, s := range m.screens {
			cmds = append(cmds, s.Update(inner))
		}
		return m, tea.Batch(cmds...)
	case spinner.TickMsg:
		// Each spinner ignores ticks addressed to another.
		cmds := make([]tea.Cmd, 0, len(m.screens))
		for _, s := range m.screens {
			cmds = append(cmds, s.Update(msg))
		}
		return m, tea.Batch(cmds...)
	case targeted:
		for _, s := range m.screens {
			if s.Name() == msg.target() {
				return m, s.Update(msg)
			}
		}
		return m, nil
	case detail.LoadedMsg:
		return m, m.Active().Update(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, m.Active().Update(msg)
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keyCtrlC {
		return m, tea.Quit
	}

	if m.Active().ViewState() == ViewStateList {
		switch msg.String() {
		case keyTab:
			return m.switchTo((m.active + 1) % len(m.screens))
		case keyShiftTab:
			return m.switchTo((m.active - 1 + len(m.screens)) % len(m.screens))
		}
	}
	return m, m.Active().Update(msg)
}

// switchTo activates screen i, loading it the first time it is shown.
func (m AppModel) switchTo(i int) (tea.Model, tea.Cmd) {
	m.active = i
	if m.started[i] {
		return m, nil
	}
	m.started[i] = true
	return m, m.screens[i].Init()
}

// View renders the tab bar and the active screen.
func (m AppModel) View() string {
	if m.Active().ViewState() == ViewStateQuitting {
		return ""
	}
	tabs := make([]string, len(m.screens))
	for i, s := range m.screens {
		if i == m.active {
			tabs[i] = ActiveTabStyle.Render(s.Title())
		} else {
			tabs[i] = TabStyle.Render(s.Title())
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return lipgloss.JoinVertical(lipgloss.Left, bar, m.Active().View())
}
