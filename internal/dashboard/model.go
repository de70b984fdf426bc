// Package dashboard provides the Bubble Tea library interface.
package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/willbradshaw/gameplot/internal/facet"
	"github.com/willbradshaw/gameplot/internal/gamestats"
	"github.com/willbradshaw/gameplot/internal/model"
	"github.com/willbradshaw/gameplot/internal/report"
)

const (
	tabOverview = iota
	tabTags
	tabHours
	tabScatter
	tabGames
)

const (
	plotHeight     = 10
	searchDebounce = 300 * time.Millisecond
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// searchTickMsg fires after the debounce interval; only the tick matching
// the latest edit sequence triggers a rebuild.
type searchTickMsg struct {
	seq int
}

// Model implements the Bubble Tea dashboard.
type Model struct {
	records []model.GameRecord
	catalog facet.Catalog
	sel     model.Selection
	dim     gamestats.Dimension

	rep report.Report

	tabs      []string
	activeTab int
	viewports []viewport.Model

	gamesTable table.Model
	tagsTable  table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string

	searchInput  textinput.Model
	searchFocus  bool
	searchSeq    int
	lastImported time.Time
}

// NewModel constructs a dashboard over the given library.
func NewModel(records []model.GameRecord, dim gamestats.Dimension) *Model {
	catalog := facet.BuildCatalog(records)
	m := &Model{
		records: records,
		catalog: catalog,
		sel:     model.NewSelection(catalog.Statuses),
		dim:     dim,
		tabs:    []string{"Overview", "Tags", "Hours", "Scatter", "Games"},
	}
	m.initInputs()
	m.initSearchInput()
	m.initTables()
	m.initViewports()
	m.refresh()
	return m
}

// SetLastImported records the library import timestamp shown in the
// header. A zero time hides it.
func (m *Model) SetLastImported(t time.Time) {
	m.lastImported = t
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.rebuildTables()
		m.renderTabContents()
		return m, nil
	case searchTickMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.sel.Search = strings.TrimSpace(m.searchInput.Value())
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.searchFocus {
			return m.updateSearch(msg)
		}
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.moveTab(-1)
		return m, tea.ClearScreen
	case "right", "l":
		m.moveTab(1)
		return m, tea.ClearScreen
	case "/":
		return m.startFilter()
	case "d":
		m.cycleDimension()
		return m, nil
	case "r":
		m.resetSelection()
		return m, nil
	case "s":
		if m.activeTab == tabGames {
			m.searchFocus = true
			return m, m.searchInput.Focus()
		}
		return m, nil
	case "enter":
		if m.activeTab == tabTags {
			m.selectTagFromTable()
			return m, nil
		}
		return m, nil
	case "g", "home":
		m.gotoEdge(true)
		return m, nil
	case "G", "end":
		m.gotoEdge(false)
		return m, nil
	default:
		return m.updateActivePane(msg)
	}
}

func (m *Model) updateActivePane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case tabGames:
		m.gamesTable, cmd = m.gamesTable.Update(msg)
	case tabTags:
		m.tagsTable, cmd = m.tagsTable.Update(msg)
	default:
		vp := m.viewports[m.activeTab]
		vp, cmd = vp.Update(msg)
		m.viewports[m.activeTab] = vp
	}
	return m, cmd
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchFocus = false
		m.searchInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.searchFocus = false
		m.searchInput.Blur()
		m.sel.Search = strings.TrimSpace(m.searchInput.Value())
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	before := m.searchInput.Value()
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != before {
		m.searchSeq++
		seq := m.searchSeq
		debounce := tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return searchTickMsg{seq: seq}
		})
		return m, tea.Batch(cmd, debounce)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Platforms: "),
		newFilterInput("Tags: "),
		newFilterInput("Statuses: "),
		newFilterInput("Ratings: "),
		newFilterInput("From (YYYY-MM-DD): "),
		newFilterInput("To (YYYY-MM-DD): "),
	}
	if m.catalog.HasDates {
		m.filterInputs[4].Placeholder = m.catalog.DateMin.Format(model.DateLayout)
		m.filterInputs[5].Placeholder = m.catalog.DateMax.Format(model.DateLayout)
	}
	m.setInputsFromSelection()
}

func (m *Model) initSearchInput() {
	m.searchInput = newFilterInput("Search: ")
	m.searchInput.Placeholder = "title substring"
}

func (m *Model) initTables() {
	m.gamesTable = table.New(
		table.WithColumns(gamesColumns(0)),
		table.WithHeight(1),
	)
	m.gamesTable.SetStyles(dashboardTableStyles())
	m.tagsTable = table.New(
		table.WithColumns(tagsColumns()),
		table.WithHeight(1),
	)
	m.tagsTable.SetStyles(dashboardTableStyles())
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	// The games pane keeps one line for the search input.
	m.gamesTable.SetWidth(m.width)
	m.gamesTable.SetHeight(maxInt(1, bodyHeight-2))
	m.tagsTable.SetWidth(m.width)
	m.tagsTable.SetHeight(maxInt(1, bodyHeight-1))
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
	m.searchInput.Width = maxInt(10, m.width-lipgloss.Width(m.searchInput.Prompt)-2)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	switch m.activeTab {
	case tabGames:
		m.gamesTable.Focus()
		m.tagsTable.Blur()
	case tabTags:
		m.tagsTable.Focus()
		m.gamesTable.Blur()
	default:
		m.gamesTable.Blur()
		m.tagsTable.Blur()
	}
}

func (m *Model) cycleDimension() {
	dims := gamestats.Dimensions()
	for i, d := range dims {
		if d == m.dim {
			m.dim = dims[(i+1)%len(dims)]
			m.refresh()
			return
		}
	}
	m.dim = dims[0]
	m.refresh()
}

func (m *Model) resetSelection() {
	m.sel = model.NewSelection(m.catalog.Statuses)
	m.searchInput.SetValue("")
	m.searchSeq++
	m.refresh()
}

func (m *Model) selectTagFromTable() {
	row := m.tagsTable.SelectedRow()
	if len(row) == 0 {
		return
	}
	m.sel.Tags = map[string]struct{}{row[0]: {}}
	m.refresh()
}

func (m *Model) gotoEdge(top bool) {
	switch m.activeTab {
	case tabGames:
		if top {
			m.gamesTable.GotoTop()
		} else {
			m.gamesTable.GotoBottom()
		}
	case tabTags:
		if top {
			m.tagsTable.GotoTop()
		} else {
			m.tagsTable.GotoBottom()
		}
	default:
		if top {
			m.viewports[m.activeTab].GotoTop()
		} else {
			m.viewports[m.activeTab].GotoBottom()
		}
	}
}

// refresh recomputes the report from the current selection and re-renders
// every tab, so the views always describe the same subset.
func (m *Model) refresh() {
	m.rep = report.Build(m.records, m.catalog, m.sel, m.dim)
	m.rebuildTables()
	m.renderTabContents()
}

func (m *Model) rebuildTables() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.gamesTable.SetColumns(gamesColumns(width))
	m.gamesTable.SetRows(gamesRows(m.rep.Filtered))
	m.tagsTable.SetColumns(tagsColumns())
	m.tagsTable.SetRows(tagsRows(m.rep.Boxplots))
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.rep, width))
	m.viewports[tabHours].SetContent(renderHoursChart(m.rep, width, m.viewports[tabHours].Height))
	m.viewports[tabScatter].SetContent(renderScatter(m.rep, width))
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + filters
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderFilterSummary() string {
	summary := fmt.Sprintf("Games: %d/%d  %s  dim=%s",
		len(m.rep.Filtered), len(m.records), describeSelection(m.sel, m.catalog), m.dim)
	if !m.lastImported.IsZero() {
		summary += "  updated " + m.lastImported.Format(model.DateLayout)
	}
	return headerStyle.Render(truncateLine(summary, m.width))
}

func describeSelection(sel model.Selection, catalog facet.Catalog) string {
	parts := []string{
		setSummary("platforms", sel.Platforms, len(catalog.Platforms)),
		setSummary("tags", sel.Tags, len(catalog.Tags)),
		setSummary("statuses", sel.Statuses, len(catalog.Statuses)),
		setSummary("rating", sel.RatingBuckets, len(catalog.RatingBuckets)),
	}
	if sel.StartDate != nil || sel.EndDate != nil {
		from, to := "...", "..."
		if sel.StartDate != nil {
			from = sel.StartDate.Format(model.DateLayout)
		}
		if sel.EndDate != nil {
			to = sel.EndDate.Format(model.DateLayout)
		}
		parts = append(parts, fmt.Sprintf("dates=%s..%s", from, to))
	}
	if sel.Search != "" {
		parts = append(parts, fmt.Sprintf("search=%q", sel.Search))
	}
	return strings.Join(parts, "  ")
}

func setSummary(name string, set map[string]struct{}, total int) string {
	if len(set) == 0 {
		if name == "statuses" {
			return name + "=none"
		}
		return name + "=any"
	}
	if len(set) == total {
		return name + "=all"
	}
	if len(set) <= 2 {
		values := make([]string, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		sort.Strings(values)
		return name + "=" + strings.Join(values, ",")
	}
	return fmt.Sprintf("%s=%d/%d", name, len(set), total)
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right  Scroll: up/down  Dimension: d  Filters: /  Reset: r  Quit: q"
	switch m.activeTab {
	case tabTags:
		help = "Nav: left/right  Select tag: enter  Filters: /  Reset: r  Quit: q"
	case tabGames:
		help = "Nav: left/right  Search: s  Filters: /  Reset: r  Quit: q"
	}
	return headerStyle.Render(help)
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	return m.renderHelp()
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	switch m.activeTab {
	case tabGames:
		search := m.searchInput.View()
		if !m.searchFocus && m.searchInput.Value() == "" {
			search = headerStyle.Render("Search: press s to search titles")
		}
		if len(m.rep.Filtered) == 0 {
			return fitLines(search+"\n\nNo games match the current filters.", m.width, height)
		}
		view := search + "\n" + tableMutedStyle.Render(m.gamesTable.View())
		return fitLines(view, m.width, height)
	case tabTags:
		if len(m.rep.Boxplots) == 0 {
			return fitLines("No rated games for the selected tags.", m.width, height)
		}
		header := headerStyle.Render("Rating distribution per tag (enter to focus one tag)")
		return fitLines(header+"\n"+tableMutedStyle.Render(m.tagsTable.View()), m.width, height)
	default:
		return fitLines(m.viewports[m.activeTab].View(), m.width, height)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
