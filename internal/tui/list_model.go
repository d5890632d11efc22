package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/catalogctl/internal/api"
	"github.com/rshade/catalogctl/internal/forms"
	"github.com/rshade/catalogctl/internal/listview"
	"github.com/rshade/catalogctl/internal/logging"
	"github.com/rshade/catalogctl/internal/pagination"
	"github.com/rshade/catalogctl/internal/store"
	"github.com/rshade/catalogctl/internal/tui/detail"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultDebounce            = time.Second
	DefaultNotificationTimeout = 5 * time.Second
)

// Options tunes a list screen.
type Options struct {
	// Limit is the page length.
	Limit int
	// Debounce delays the re-fetch after filter input. Zero fetches on the
	// next tick; a negative value selects DefaultDebounce.
	Debounce time.Duration
	// NotificationTimeout is how long an error banner stays visible.
	NotificationTimeout time.Duration
}

// Messages addressed to one screen carry its name.
type (
	fetchResultMsg struct {
		screen    string
		requestID uint64
		result    api.ListResult
		err       error
	}
	filterDebounceMsg struct {
		screen string
		seq    int
	}
	noticeExpiredMsg struct {
		screen string
		seq    int
	}
	saveResultMsg struct {
		screen  string
		formSeq int
		err     error
		filter  string
		page    api.Page
	}
	removeResultMsg struct {
		screen string
		id     string
		err    error
	}
)

// targeted is implemented by messages addressed to one screen.
type targeted interface {
	target() string
}

func (m fetchResultMsg) target() string    { return m.screen }
func (m filterDebounceMsg) target() string { return m.screen }
func (m noticeExpiredMsg) target() string  { return m.screen }
func (m saveResultMsg) target() string     { return m.screen }
func (m removeResultMsg) target() string   { return m.screen }

// ListModel is one resource screen: a filterable, paginated table with
// add/edit forms, removal and a detail view.
type ListModel struct {
	ctx      context.Context
	resource Resource
	store    *store.Store

	// Interactive components
	keys    KeyMap
	help    help.Model
	table   table.Model
	filter  textinput.Model
	loading *LoadingState
	form    *FormModel
	formSeq int
	detail  *detail.Model

	state     ViewState
	items     []api.Item
	columns   []string
	sortIndex int
	sortOrder string
	confirmID string

	// Timing
	limit         int
	debounce      time.Duration
	debounceSeq   int
	notifyTimeout time.Duration
	notice        string
	noticeSeq     int

	// Display configuration
	width  int
	height int
}

// NewListModel creates a screen for resource.
func NewListModel(ctx context.Context, resource Resource, opts Options) *ListModel {
	if opts.Limit <= 0 {
		opts.Limit = pagination.DefaultLimit
	}
	if opts.Debounce < 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.NotificationTimeout <= 0 {
		opts.NotificationTimeout = DefaultNotificationTimeout
	}

	ti := textinput.New()
	ti.Placeholder = "Filter by name..."
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth

	t := table.New(table.WithFocused(true), table.WithHeight(defaultHeight-chromeHeight))
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return &ListModel{
		ctx:           ctx,
		resource:      resource,
		store:         store.New(),
		keys:          DefaultKeyMap(),
		help:          help.New(),
		table:         t,
		filter:        ti,
		loading:       NewLoadingState("Loading " + strings.ToLower(resource.Title) + "..."),
		state:         ViewStateList,
		sortIndex:     -1,
		sortOrder:     pagination.SortOrderAsc,
		limit:         opts.Limit,
		debounce:      opts.Debounce,
		notifyTimeout: opts.NotificationTimeout,
		width:         defaultWidth,
		height:        defaultHeight,
	}
}

// Name returns the resource name.
func (m *ListModel) Name() string {
	return m.resource.Name
}

// Title returns the tab label.
func (m *ListModel) Title() string {
	return m.resource.Title
}

// Store exposes the screen state.
func (m *ListModel) Store() *store.Store {
	return m.store
}

// ViewState returns the current mode.
func (m *ListModel) ViewState() ViewState {
	return m.state
}

// Form returns the open form, if any.
func (m *ListModel) Form() *FormModel {
	return m.form
}

// Notice returns the visible notification text.
func (m *ListModel) Notice() string {
	return m.notice
}

// Items returns the displayed items in display order.
func (m *ListModel) Items() []api.Item {
	return m.items
}

// Init loads the first page.
func (m *ListModel) Init() tea.Cmd {
	return m.fetch("", api.Page{Limit: m.limit, Offset: 0})
}

// fetch starts a request through the store and returns the command that
// performs it.
func (m *ListModel) fetch(filter string, page api.Page) tea.Cmd {
	id := m.store.Begin(filter, page)
	ctx, fetcher, screen := m.ctx, m.resource.Fetcher, m.resource.Name

	return tea.Batch(m.loading.Init(), func() tea.Msg {
		result, err := fetcher.Fetch(ctx, filter, page)
		return fetchResultMsg{screen: screen, requestID: id, result: result, err: err}
	})
}

// notify shows a transient banner.
func (m *ListModel) notify(text string) tea.Cmd {
	m.notice = text
	m.noticeSeq++
	seq, screen := m.noticeSeq, m.resource.Name
	return tea.Tick(m.notifyTimeout, func(time.Time) tea.Msg {
		return noticeExpiredMsg{screen: screen, seq: seq}
	})
}

// Update handles a message and returns follow-up commands.
func (m *ListModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(m.height-chromeHeight, minHeight))
		if m.detail != nil {
			return m.detail.Update(tea.WindowSizeMsg{Width: m.width, Height: max(m.height-chromeHeight, minHeight)})
		}
		return nil
	case spinner.TickMsg:
		if m.store.State().IsLoading() {
			return m.loading.Update(msg)
		}
		return nil
	case fetchResultMsg:
		return m.handleFetchResult(msg)
	case filterDebounceMsg:
		if msg.seq != m.debounceSeq {
			return nil
		}
		return m.fetch(m.filter.Value(), api.Page{Limit: m.limit, Offset: 0})
	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return nil
	case formSubmitMsg:
		return m.handleSubmit()
	case formCancelMsg:
		m.closeForm()
		return nil
	case saveResultMsg:
		return m.handleSaveResult(msg)
	case removeResultMsg:
		return m.handleRemoveResult(msg)
	case detail.LoadedMsg:
		if m.detail != nil {
			return m.detail.Update(msg)
		}
		return nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == ViewStateForm && m.form != nil {
		return m.form.Update(msg)
	}
	return nil
}

func (m *ListModel) handleFetchResult(msg fetchResultMsg) tea.Cmd {
	state := m.store.Complete(msg.requestID, msg.result, msg.err)
	if state.RequestID != msg.requestID {
		logging.FromContext(m.ctx).Debug().
			Str("screen", m.resource.Name).
			Uint64("request_id", msg.requestID).
			Msg("ignoring superseded list result")
		return nil
	}

	m.refreshTable()
	if msg.err != nil {
		return m.notify(fmt.Sprintf("Failed to load %s: %v", strings.ToLower(m.resource.Title), msg.err))
	}
	return nil
}

func (m *ListModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.state {
	case ViewStateFilter:
		return m.handleFilterKey(msg)
	case ViewStateForm:
		if m.form != nil {
			return m.form.Update(msg)
		}
		return nil
	case ViewStateConfirm:
		return m.handleConfirmKey(msg)
	case ViewStateDetail:
		return m.handleDetailKey(msg)
	case ViewStateList:
		return m.handleListKey(msg)
	default:
		return nil
	}
}

//nolint:gocognit // One branch per binding.
func (m *ListModel) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state = ViewStateQuitting
		return tea.Quit
	case key.Matches(msg, m.keys.Filter):
		m.state = ViewStateFilter
		m.filter.Focus()
		return textinput.Blink
	case key.Matches(msg, m.keys.First):
		return m.Navigate(pagination.First)
	case key.Matches(msg, m.keys.Previous):
		return m.Navigate(pagination.Previous)
	case key.Matches(msg, m.keys.Next):
		return m.Navigate(pagination.Next)
	case key.Matches(msg, m.keys.Last):
		return m.Navigate(pagination.Last)
	case key.Matches(msg, m.keys.Refresh):
		state := m.store.State()
		if state.Page.Limit == 0 {
			return m.Init()
		}
		return m.fetch(state.Filter, state.Page)
	case key.Matches(msg, m.keys.Sort):
		m.cycleSort()
		return nil
	case key.Matches(msg, m.keys.SortOrder):
		if m.sortOrder == pagination.SortOrderAsc {
			m.sortOrder = pagination.SortOrderDesc
		} else {
			m.sortOrder = pagination.SortOrderAsc
		}
		m.refreshTable()
		return nil
	case key.Matches(msg, m.keys.Add):
		m.OpenForm("")
		return nil
	case key.Matches(msg, m.keys.Edit):
		if item, ok := m.selectedItem(); ok {
			m.OpenForm(item.ID())
		}
		return nil
	case key.Matches(msg, m.keys.Remove):
		if item, ok := m.selectedItem(); ok && m.resource.Remove != nil && item.ID() != "" {
			m.confirmID = item.ID()
			m.state = ViewStateConfirm
		}
		return nil
	case key.Matches(msg, m.keys.Detail):
		return m.openDetail()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return cmd
}

func (m *ListModel) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case keyEnter, keyEsc:
		m.state = ViewStateList
		m.filter.Blur()
		return nil
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, m.scheduleFilterFetch())
}

// scheduleFilterFetch starts a debounce timer. Only the timer of the latest
// keystroke triggers a fetch.
func (m *ListModel) scheduleFilterFetch() tea.Cmd {
	m.debounceSeq++
	seq, screen := m.debounceSeq, m.resource.Name
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return filterDebounceMsg{screen: screen, seq: seq}
	})
}

// SetFilter replaces the filter text and schedules a debounced fetch.
func (m *ListModel) SetFilter(text string) tea.Cmd {
	m.filter.SetValue(text)
	return m.scheduleFilterFetch()
}

func (m *ListModel) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	id := m.confirmID
	m.confirmID = ""
	m.state = ViewStateList
	if msg.String() != keyYes || id == "" {
		return nil
	}

	ctx, remove, screen := m.ctx, m.resource.Remove, m.resource.Name
	return func() tea.Msg {
		return removeResultMsg{screen: screen, id: id, err: remove(ctx, id)}
	}
}

func (m *ListModel) handleRemoveResult(msg removeResultMsg) tea.Cmd {
	if msg.err != nil {
		return m.notify(fmt.Sprintf("Failed to remove %s: %v", msg.id, msg.err))
	}
	state := m.store.State()
	return m.fetch(state.Filter, state.Page)
}

func (m *ListModel) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case keyEsc:
		m.state = ViewStateList
		m.detail = nil
		return nil
	case keyCtrlC, keyQuit:
		m.state = ViewStateQuitting
		return tea.Quit
	}
	return m.detail.Update(msg)
}

// Navigate fetches the page a pagination control points at. Disabled
// controls do nothing.
func (m *ListModel) Navigate(d pagination.Direction) tea.Cmd {
	state := m.store.State()
	if !state.HasData {
		return nil
	}
	page, ok := pagination.NewNavigator(state.Data.Meta).Page(d)
	if !ok {
		return nil
	}
	return m.fetch(state.Filter, page)
}

// OpenForm opens the add form (id == "") or the edit form for id.
func (m *ListModel) OpenForm(id string) {
	if m.resource.Editor == nil {
		return
	}
	initial := map[string]string{}
	if id != "" {
		for _, it := range m.items {
			if it.ID() == id {
				initial = formValues(it)
				break
			}
		}
	}
	m.formSeq++
	m.form = NewFormModel(m.resource.Editor.Schema(id != ""), id, initial)
	m.state = ViewStateForm
}

func (m *ListModel) closeForm() {
	m.form = nil
	m.state = ViewStateList
}

// formValues prefills an edit form from a row.
func formValues(it api.Item) map[string]string {
	values := map[string]string{
		forms.FieldName:        it.Display(forms.FieldName),
		forms.FieldDescription: it.Display(forms.FieldDescription),
	}
	if raw, ok := it.Get(forms.FieldGroupRefs); ok {
		if msg, isRaw := raw.(json.RawMessage); isRaw {
			var refs []api.GroupRef
			if json.Unmarshal(msg, &refs) == nil {
				values[forms.FieldGroupRefs] = forms.FormatGroups(refs)
			}
		}
	}
	return values
}

// handleSubmit validates the open form and starts the save. The filter and
// page active now are the ones re-fetched after a successful save.
func (m *ListModel) handleSubmit() tea.Cmd {
	if m.form == nil || m.resource.Editor == nil {
		return nil
	}
	values := m.form.Values()

	if err := m.resource.Editor.Validate(values); err != nil {
		var verrs forms.ValidationErrors
		if errors.As(err, &verrs) {
			m.form.SetErrors(verrs.Map())
			return nil
		}
		return m.notify(err.Error())
	}

	m.form.SetErrors(nil)
	m.form.SetSubmitting(true)

	state := m.store.State()
	filter, page := state.Filter, state.Page
	if page.Limit == 0 {
		page = api.Page{Limit: m.limit}
	}
	ctx, save, screen, id, seq := m.ctx, m.resource.Editor.Save, m.resource.Name, m.form.EditID(), m.formSeq
	return func() tea.Msg {
		return saveResultMsg{screen: screen, formSeq: seq, err: save(ctx, id, values), filter: filter, page: page}
	}
}

// handleSaveResult applies a save outcome. Only the form that submitted it
// is updated or closed; a successful save re-fetches even when that form was
// cancelled in the meantime.
func (m *ListModel) handleSaveResult(msg saveResultMsg) tea.Cmd {
	own := m.form != nil && msg.formSeq == m.formSeq
	if own {
		m.form.SetSubmitting(false)
	}

	if msg.err != nil {
		var verrs forms.ValidationErrors
		if own && errors.As(msg.err, &verrs) {
			m.form.SetErrors(verrs.Map())
			return nil
		}
		return m.notify(msg.err.Error())
	}

	if own {
		m.closeForm()
	}
	return m.fetch(msg.filter, msg.page)
}

func (m *ListModel) openDetail() tea.Cmd {
	item, ok := m.selectedItem()
	if !ok {
		return nil
	}
	m.detail = detail.New(m.ctx, item, m.resource.Load, max(m.height-chromeHeight, minHeight), m.width)
	m.state = ViewStateDetail
	return m.detail.Init()
}

func (m *ListModel) selectedItem() (api.Item, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.items) {
		return api.Item{}, false
	}
	return m.items[i], true
}

func (m *ListModel) cycleSort() {
	if len(m.columns) == 0 {
		m.sortIndex = -1
		return
	}
	m.sortIndex++
	if m.sortIndex >= len(m.columns) {
		m.sortIndex = -1
	}
	m.refreshTable()
}

func (m *ListModel) sortField() string {
	if m.sortIndex < 0 || m.sortIndex >= len(m.columns) {
		return ""
	}
	return m.columns[m.sortIndex]
}

// refreshTable rebuilds the table from the store.
func (m *ListModel) refreshTable() {
	raw := m.store.State().Items()
	m.columns = listview.Columns(raw)
	if m.sortIndex >= len(m.columns) {
		m.sortIndex = -1
	}

	sorter := &pagination.ItemSorter{Field: m.sortField(), Order: m.sortOrder}
	m.items = sorter.Sort(raw)

	rows := listview.Rows(m.items, m.columns)
	columns := make([]table.Column, len(m.columns))
	for i, c := range m.columns {
		width := len(c)
		for _, r := range rows {
			width = max(width, len(r[i]))
		}
		columns[i] = table.Column{Title: c, Width: min(max(width, minColumnWidth), maxColumnWidth)}
	}

	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		tableRows[i] = table.Row(r)
	}

	// Rows are cleared first so they never outnumber the columns.
	m.table.SetRows(nil)
	m.table.SetColumns(columns)
	m.table.SetRows(tableRows)
	if m.table.Cursor() >= len(tableRows) {
		m.table.SetCursor(max(len(tableRows)-1, 0))
	}
}

// listView is the render-policy input for the current state.
func (m *ListModel) listView() listview.View {
	state := m.store.State()
	return listview.View{
		Resource: m.resource.Name,
		Items:    m.items,
		Loading:  state.IsLoading(),
		Meta:     state.Data.Meta,
	}
}

// View renders the screen.
func (m *ListModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	var sections []string
	if m.notice != "" {
		sections = append(sections, NotificationStyle.Width(m.width-borderPadding).Render(m.notice))
	}

	switch m.state {
	case ViewStateForm:
		if m.form != nil {
			sections = append(sections, lipgloss.Place(
				m.width, max(m.height-chromeHeight, minHeight),
				lipgloss.Center, lipgloss.Center,
				m.form.View(m.width),
			))
			return lipgloss.JoinVertical(lipgloss.Left, sections...)
		}
	case ViewStateDetail:
		if m.detail != nil {
			sections = append(sections,
				BoxStyle.Width(m.width-borderPadding).Render(m.detail.View()),
				SubtleStyle.Render("Press ESC to return"))
			return lipgloss.JoinVertical(lipgloss.Left, sections...)
		}
	}

	sections = append(sections, LabelStyle.Render("Filter: ")+m.filter.View())
	sections = append(sections, m.renderBody())
	sections = append(sections, m.renderStatusBar())

	if m.state == ViewStateConfirm {
		sections = append(sections, WarningStyle.Render(fmt.Sprintf("Remove %s? (y/n)", m.confirmID)))
	} else {
		sections = append(sections, m.help.View(m.keys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderBody applies the list render policy.
func (m *ListModel) renderBody() string {
	v := m.listView()
	if v.Mode() == listview.ModeEmpty {
		return BoxStyle.Width(m.width - borderPadding).Render(InfoStyle.Render(v.EmptyTitle()))
	}

	var parts []string
	if v.ShowLoading() {
		parts = append(parts, RenderLoading(m.loading))
	}
	if v.ShowTable() {
		parts = append(parts, m.table.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *ListModel) renderStatusBar() string {
	status := pagination.NewMeta(m.store.State().Data.Meta).Footer()
	if field := m.sortField(); field != "" {
		status += fmt.Sprintf(" | Sort: %s %s", field, m.sortOrder)
	}
	return SubtleStyle.Render(status)
}
