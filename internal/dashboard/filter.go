package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/willbradshaw/gameplot/internal/facet"
	"github.com/willbradshaw/gameplot/internal/model"
)

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromSelection()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.refresh()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) setInputsFromSelection() {
	if len(m.filterInputs) == 0 {
		return
	}
	m.filterInputs[0].SetValue(joinSet(m.sel.Platforms))
	m.filterInputs[1].SetValue(joinSet(m.sel.Tags))
	if len(m.sel.Statuses) == len(m.catalog.Statuses) {
		// All statuses checked reads as no constraint in the form.
		m.filterInputs[2].SetValue("")
	} else {
		m.filterInputs[2].SetValue(joinSet(m.sel.Statuses))
	}
	m.filterInputs[3].SetValue(joinSet(m.sel.RatingBuckets))
	if m.sel.StartDate != nil {
		m.filterInputs[4].SetValue(m.sel.StartDate.Format(model.DateLayout))
	} else {
		m.filterInputs[4].SetValue("")
	}
	if m.sel.EndDate != nil {
		m.filterInputs[5].SetValue(m.sel.EndDate.Format(model.DateLayout))
	} else {
		m.filterInputs[5].SetValue("")
	}
}

// applyFilter parses the form into the selection. An empty statuses field
// means every status, since an empty status set would blank the whole
// dashboard.
func (m *Model) applyFilter() error {
	sel := model.NewSelection(nil)
	sel.Platforms = splitSet(m.filterInputs[0].Value())
	sel.Tags = splitSet(m.filterInputs[1].Value())

	statuses := splitSet(m.filterInputs[2].Value())
	if len(statuses) == 0 {
		statuses = map[string]struct{}{}
		for _, s := range m.catalog.Statuses {
			statuses[s] = struct{}{}
		}
	}
	sel.Statuses = statuses

	buckets := splitSet(m.filterInputs[3].Value())
	for bucket := range buckets {
		if !facet.ValidBucket(bucket) {
			return fmt.Errorf("unknown rating bucket %q", bucket)
		}
	}
	sel.RatingBuckets = buckets

	from, err := parseFormDate(m.filterInputs[4].Value(), "from")
	if err != nil {
		return err
	}
	to, err := parseFormDate(m.filterInputs[5].Value(), "to")
	if err != nil {
		return err
	}
	if from != nil && to != nil && to.Before(*from) {
		return fmt.Errorf("date range is reversed")
	}
	sel.StartDate = from
	sel.EndDate = to

	sel.Search = m.sel.Search
	m.sel = sel
	return nil
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Filters (enter to apply, esc to cancel, comma-separated values)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	lines = append(lines, headerStyle.Render(
		"Rating buckets: "+strings.Join(m.catalog.RatingBuckets, ", ")))
	if m.catalog.HasDates {
		lines = append(lines, headerStyle.Render(fmt.Sprintf("Library dates: %s to %s",
			m.catalog.DateMin.Format(model.DateLayout),
			m.catalog.DateMax.Format(model.DateLayout))))
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func parseFormDate(value, field string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, ok := model.ParseDate(value)
	if !ok {
		return nil, fmt.Errorf("invalid %s date (expected YYYY-MM-DD)", field)
	}
	return &parsed, nil
}

func joinSet(set map[string]struct{}) string {
	if len(set) == 0 {
		return ""
	}
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return strings.Join(values, ", ")
}

func splitSet(value string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out[part] = struct{}{}
	}
	return out
}
