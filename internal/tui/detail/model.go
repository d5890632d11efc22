package detail

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/rshade/catalogctl/internal/api"
)

// halfViewportDivisor is used to keep the selection centred.
const halfViewportDivisor = 2

var (
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	ageStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// Loader fetches the full record for id.
type Loader func(ctx context.Context, id string) (api.Item, error)

// Field is one displayed key/value pair.
type Field struct {
	Key   string
	Value string
	// Age is the relative age of a timestamp value, e.g. "3 days ago".
	Age string
}

// Fields flattens an item for display. Values that parse as RFC 3339
// timestamps get a relative age computed against now.
func Fields(item api.Item, now time.Time) []Field {
	keys := item.Keys()
	out := make([]Field, len(keys))
	for i, k := range keys {
		v := item.Display(k)
		f := Field{Key: k, Value: v}
		if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
			f.Age = humanize.RelTime(ts, now, "ago", "from now")
		}
		out[i] = f
	}
	return out
}

// LoadedMsg carries the outcome of a lazy load.
type LoadedMsg struct {
	ID   string
	Item api.Item
	Err  error
}

// Model is the detail view of one record.
type Model struct {
	ctx    context.Context
	id     string
	loader Loader
	now    func() time.Time

	fields  []Field
	loading bool
	err     error

	selected    int
	visibleFrom int
	visibleTo   int
	height      int
	width       int
}

// New returns a detail view showing item. When loader is set the full
// record is loaded by the command returned from Init.
func New(ctx context.Context, item api.Item, loader Loader, height, width int) *Model {
	m := &Model{
		ctx:    ctx,
		id:     item.ID(),
		loader: loader,
		now:    time.Now,
		height: height,
		width:  width,
	}
	m.fields = Fields(item, m.now())
	m.updateVisibleRange()
	return m
}

// SetClock replaces the clock used for relative ages.
func (m *Model) SetClock(now func() time.Time) {
	m.now = now
}

// Init starts the lazy load.
func (m *Model) Init() tea.Cmd {
	return m.load()
}

func (m *Model) load() tea.Cmd {
	if m.loader == nil || m.id == "" {
		return nil
	}
	m.loading = true
	m.err = nil
	ctx, id, loader := m.ctx, m.id, m.loader
	return func() tea.Msg {
		item, err := loader(ctx, id)
		return LoadedMsg{ID: id, Item: item, Err: err}
	}
}

// Loading reports whether the full record is being fetched.
func (m *Model) Loading() bool {
	return m.loading
}

// Err returns the last load error.
func (m *Model) Err() error {
	return m.err
}

// Fields returns the displayed fields.
func (m *Model) Fields() []Field {
	return m.fields
}

// Selected returns the selected field index.
func (m *Model) Selected() int {
	return m.selected
}

// VisibleFrom returns the first visible field index (inclusive).
func (m *Model) VisibleFrom() int {
	return m.visibleFrom
}

// VisibleTo returns the last visible field index (exclusive).
func (m *Model) VisibleTo() int {
	return m.visibleTo
}

// Update handles load results, retry, scrolling and resize.
//
//nolint:exhaustive // Only navigation keys are handled.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.ID != m.id {
			return nil
		}
		m.loading = false
		if msg.Err != nil {
			// Row data stays on screen.
			m.err = msg.Err
			return nil
		}
		m.fields = Fields(msg.Item, m.now())
		m.selected = min(m.selected, max(len(m.fields)-1, 0))
		m.updateVisibleRange()
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.width = msg.Width
		m.updateVisibleRange()
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyUp:
			m.move(-1)
		case tea.KeyDown:
			m.move(1)
		case tea.KeyPgUp:
			m.move(-m.height)
		case tea.KeyPgDown:
			m.move(m.height)
		case tea.KeyHome:
			m.move(-len(m.fields))
		case tea.KeyEnd:
			m.move(len(m.fields))
		case tea.KeyRunes:
			switch msg.String() {
			case "j":
				m.move(1)
			case "k":
				m.move(-1)
			case "r":
				if m.err != nil && !m.loading {
					return m.load()
				}
			}
		}
	}
	return nil
}

func (m *Model) move(delta int) {
	if len(m.fields) == 0 {
		return
	}
	m.selected = min(max(m.selected+delta, 0), len(m.fields)-1)
	m.updateVisibleRange()
}

// updateVisibleRange keeps the selected field inside the viewport.
func (m *Model) updateVisibleRange() {
	if len(m.fields) == 0 || m.height <= 0 {
		m.visibleFrom, m.visibleTo = 0, len(m.fields)
		return
	}

	half := m.height / halfViewportDivisor
	from := m.selected - half
	to := from + m.height

	if from < 0 {
		from = 0
		to = m.height
	}
	if to > len(m.fields) {
		to = len(m.fields)
		from = max(to-m.height, 0)
	}
	m.visibleFrom, m.visibleTo = from, to
}

// View renders the visible fields and the load status.
func (m *Model) View() string {
	keyWidth := 0
	for _, f := range m.fields {
		keyWidth = max(keyWidth, len(f.Key))
	}

	var b strings.Builder
	for i := m.visibleFrom; i < m.visibleTo; i++ {
		f := m.fields[i]
		key := fmt.Sprintf("%-*s", keyWidth, f.Key)
		line := keyStyle.Render(key) + "  " + valueStyle.Render(f.Value)
		if f.Age != "" {
			line += " " + ageStyle.Render("("+f.Age+")")
		}
		if i == m.selected {
			line = selectedStyle.Render(key + "  " + f.Value)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	switch {
	case m.loading:
		b.WriteString(infoStyle.Render("Loading full record..."))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(errorStyle.Render("Could not load record: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(ageStyle.Render("Press 'r' to retry"))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
