package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janekbaraniewski/facetpanel/internal/catalog"
	"github.com/janekbaraniewski/facetpanel/internal/selection"
	"github.com/janekbaraniewski/facetpanel/internal/telemetry"
	"github.com/samber/lo"
)

// mountedMsg flips the panel from its loading placeholder to the interactive
// view. Init emits it, so exactly one frame renders as a placeholder.
type mountedMsg struct{}

// CatalogReloadedMsg carries a category table re-read from disk.
type CatalogReloadedMsg struct {
	Table catalog.Table
	Err   error
}

type rowKind int

const (
	rowSection rowKind = iota // category header, toggles expansion
	rowOption                 // checkbox inside an expanded category
	rowApply
	rowClear
)

type row struct {
	kind     rowKind
	category string
	value    string
}

// listing stands in for the product listing next to the panel. It is told
// about every selection change and, in controlled mode, owns the selection.
type listing struct {
	state     selection.State
	refetches int
}

func (l *listing) onChange(s selection.State) {
	l.state = s
	l.refetches++
}

type Options struct {
	// Controlled hands ownership of the selection to the listing.
	Controlled bool
	// Expanded lists sections open at start.
	Expanded []string
	Initial  selection.State
}

type Model struct {
	table      catalog.Table
	sel        *selection.Model
	listing    *listing
	controlled bool
	session    string

	cursor  int
	mounted bool
	width   int
	height  int

	status    string
	statusErr bool

	// onEvent receives every interaction. Set from main to wire telemetry.
	onEvent func(telemetry.Event)
}

func NewModel(table catalog.Table, opts Options) Model {
	m := Model{
		table:      table,
		controlled: opts.Controlled,
		listing:    &listing{},
		session:    telemetry.NewSession(),
	}
	m.sel = m.buildSelection(opts.Initial)
	m.sel.SetExpanded(lo.Filter(opts.Expanded, func(k string, _ int) bool {
		_, ok := table.Category(k)
		return ok
	})...)
	return m
}

// SetOnEvent sets a callback invoked (off the UI goroutine) for each interaction.
func (m *Model) SetOnEvent(fn func(telemetry.Event)) {
	m.onEvent = fn
}

// Selection exposes the underlying selection model.
func (m Model) Selection() *selection.Model { return m.sel }

// Refetches is how many change notifications the listing has received.
func (m Model) Refetches() int { return m.listing.refetches }

func (m Model) Session() string { return m.session }

func (m Model) buildSelection(state selection.State) *selection.Model {
	keys := m.table.Keys()
	l := m.listing

	if m.controlled {
		if state == nil {
			state = m.table.Empty()
		}
		l.state = state.Clone()
		table := m.table
		return selection.New(keys, selection.Options{
			External: l.state,
			OnChange: l.onChange,
			OnClear: func() {
				l.state = table.Empty()
				l.refetches++
			},
		})
	}

	l.state = nil
	return selection.New(keys, selection.Options{
		Initial:  state,
		OnChange: l.onChange,
	})
}

// syncOwner pushes the listing's state back into a controlled selection,
// the way a parent re-renders its child with new props.
func (m Model) syncOwner() {
	if m.controlled {
		m.sel.Sync(m.listing.state)
	}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return mountedMsg{} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mountedMsg:
		m.mounted = true
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case CatalogReloadedMsg:
		return m.applyCatalog(msg), nil

	case tea.KeyMsg:
		if !m.mounted {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.rows()
	m.cursor = clamp(m.cursor, 0, len(rows)-1)
	current := rows[m.cursor]

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(rows) - 1
	case "left", "h":
		if current.category != "" && m.sel.IsExpanded(current.category) {
			return m.toggleSection(current.category)
		}
	case "right", "l":
		if current.kind == rowSection && !m.sel.IsExpanded(current.category) {
			return m.toggleSection(current.category)
		}
	case " ", "enter":
		return m.activate(current)
	case "a":
		return m.apply()
	case "c", "x":
		return m.clearAll()
	}
	return m, nil
}

func (m Model) activate(r row) (tea.Model, tea.Cmd) {
	switch r.kind {
	case rowSection:
		return m.toggleSection(r.category)
	case rowOption:
		return m.toggleOption(r.category, r.value)
	case rowApply:
		return m.apply()
	case rowClear:
		return m.clearAll()
	}
	return m, nil
}

func (m Model) toggleSection(key string) (tea.Model, tea.Cmd) {
	kind := telemetry.KindCollapse
	if m.sel.ToggleExpansion(key) {
		kind = telemetry.KindExpand
	}
	m.cursor = m.sectionRow(key)
	m.status, m.statusErr = "", false
	return m, m.eventCmd(telemetry.Event{Kind: kind, Category: key})
}

func (m Model) toggleOption(key, value string) (tea.Model, tea.Cmd) {
	selected := !m.sel.IsSelected(key, value)
	m.sel.SetOptionSelected(key, value, selected)
	m.syncOwner()

	kind := telemetry.KindDeselect
	if selected {
		kind = telemetry.KindSelect
	}
	m.status, m.statusErr = "", false
	return m, m.eventCmd(telemetry.Event{Kind: kind, Category: key, Value: value})
}

func (m Model) apply() (tea.Model, tea.Cmd) {
	if m.sel.TotalSelectedCount() == 0 {
		m.status, m.statusErr = "nothing selected", false
		return m, nil
	}
	applied := m.sel.ApplyFilters()
	m.status, m.statusErr = fmt.Sprintf("applied %d filters", applied.Total()), false
	return m, m.eventCmd(telemetry.Event{Kind: telemetry.KindApply})
}

func (m Model) clearAll() (tea.Model, tea.Cmd) {
	if m.sel.TotalSelectedCount() == 0 {
		m.status, m.statusErr = "nothing to clear", false
		return m, nil
	}
	m.sel.ClearAll()
	m.syncOwner()
	m.status, m.statusErr = "filters cleared", false
	return m, m.eventCmd(telemetry.Event{Kind: telemetry.KindClear})
}

func (m Model) applyCatalog(msg CatalogReloadedMsg) Model {
	if msg.Err != nil {
		m.status, m.statusErr = "catalog reload failed: "+msg.Err.Error(), true
		return m
	}

	state, dropped := msg.Table.Sanitize(m.sel.State())
	expanded := lo.Filter(m.sel.Expanded(), func(k string, _ int) bool {
		_, ok := msg.Table.Category(k)
		return ok
	})

	m.table = msg.Table
	m.sel = m.buildSelection(state)
	m.sel.SetExpanded(expanded...)
	m.cursor = clamp(m.cursor, 0, len(m.rows())-1)

	m.status, m.statusErr = fmt.Sprintf("catalog %s %s loaded", msg.Table.Name, msg.Table.SemVer()), false
	if len(dropped) > 0 {
		m.status += fmt.Sprintf(" · %d selections dropped", len(dropped))
	}
	return m
}

func (m Model) eventCmd(ev telemetry.Event) tea.Cmd {
	if m.onEvent == nil {
		return nil
	}
	ev.Session = m.session
	ev.Total = m.sel.TotalSelectedCount()
	ev.OccurredAt = time.Now()
	fn := m.onEvent
	return func() tea.Msg {
		fn(ev)
		return nil
	}
}

func (m Model) rows() []row {
	rows := make([]row, 0, len(m.table.Categories)+2)
	for _, c := range m.table.Categories {
		rows = append(rows, row{kind: rowSection, category: c.Key})
		if !m.sel.IsExpanded(c.Key) {
			continue
		}
		for _, o := range c.Options {
			rows = append(rows, row{kind: rowOption, category: c.Key, value: o.Value})
		}
	}
	return append(rows, row{kind: rowApply}, row{kind: rowClear})
}

func (m Model) sectionRow(key string) int {
	_, idx, ok := lo.FindIndexOf(m.rows(), func(r row) bool {
		return r.kind == rowSection && r.category == key
	})
	if !ok {
		return 0
	}
	return idx
}

func clamp(val, low, high int) int {
	if val < low {
		return low
	}
	if val > high {
		return high
	}
	return val
}
