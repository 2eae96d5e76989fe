package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/janekbaraniewski/facetpanel/internal/selection"
)

const (
	defaultPanelWidth = 56
	minPanelWidth     = 24
	maxPanelWidth     = 80
	skeletonRows      = 6
)

func (m Model) View() string {
	if !m.mounted {
		return m.renderPlaceholder()
	}

	w := m.panelWidth()
	header := m.renderHeader()
	footer := m.renderFooter(w)

	rows := m.rows()
	cursor := clamp(m.cursor, 0, len(rows)-1)
	visible := len(rows)
	if m.height > 0 {
		visible = m.height - 2 - len(footer)
		if visible < 3 {
			visible = 3
		}
	}
	start, end := listWindow(len(rows), cursor, visible)

	lines := []string{header, separatorStyle.Render(strings.Repeat("─", w))}
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(rows[i], i == cursor))
	}
	lines = append(lines, footer...)

	for i, line := range lines {
		lines[i] = ansi.Truncate(line, w, "…")
	}
	return strings.Join(lines, "\n")
}

func (m Model) panelWidth() int {
	if m.width <= 0 {
		return defaultPanelWidth
	}
	return clamp(m.width, minPanelWidth, maxPanelWidth)
}

// renderPlaceholder is the static first frame: title and skeleton bars only,
// no state reads.
func (m Model) renderPlaceholder() string {
	w := m.panelWidth()
	lines := []string{
		titleStyle.Render("⚙ Filters"),
		separatorStyle.Render(strings.Repeat("─", w)),
	}
	bar := skeletonStyle.Render(strings.Repeat("░", w-4))
	for i := 0; i < skeletonRows; i++ {
		lines = append(lines, "  "+bar)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("⚙ Filters")
	if total := m.sel.TotalSelectedCount(); total > 0 {
		title += " " + totalBadgeStyle.Render(fmt.Sprintf("%d", total))
	}
	if m.controlled {
		title += dimStyle.Render("  controlled")
	}
	return title
}

func (m Model) renderRow(r row, selected bool) string {
	prefix := "  "
	if selected {
		prefix = cursorStyle.Render("➤ ")
	}

	switch r.kind {
	case rowSection:
		return prefix + m.renderSection(r.category)
	case rowOption:
		box := uncheckedStyle.Render("☐")
		if m.sel.IsSelected(r.category, r.value) {
			box = checkedStyle.Render("☑")
		}
		return prefix + "    " + box + " " + optionStyle.Render(m.table.Label(r.category, r.value))
	case rowApply:
		label := "Apply Filters"
		if total := m.sel.TotalSelectedCount(); total > 0 {
			label += fmt.Sprintf(" (%d)", total)
		}
		return prefix + m.renderButton(label, buttonPrimaryStyle)
	case rowClear:
		return prefix + m.renderButton("Clear All", buttonStyle)
	}
	return prefix
}

func (m Model) renderSection(key string) string {
	c, _ := m.table.Category(key)
	chevron := "▸"
	if m.sel.IsExpanded(key) {
		chevron = "▾"
	}

	title := c.Title
	if title == "" {
		title = c.Key
	}
	line := fmt.Sprintf("%s %s %s", dimStyle.Render(chevron), iconGlyph(c.Icon), sectionTitleStyle.Render(title))
	if n := m.sel.CategoryCount(key); n > 0 {
		line += " " + sectionBadgeStyle.Render(fmt.Sprintf("(%d)", n))
	}
	return line
}

// renderButton draws an action; both actions are disabled with nothing selected.
func (m Model) renderButton(label string, style lipgloss.Style) string {
	if m.sel.TotalSelectedCount() == 0 {
		return buttonDisabledStyle.Render("[" + label + "]")
	}
	return style.Render(label)
}

func (m Model) renderFooter(w int) []string {
	query := selection.Encode(m.sel.State())
	if query == "" {
		query = "(none)"
	}
	queryLine := dimStyle.Render("query ") + queryStyle.Render(query)
	if m.listing.refetches > 0 {
		queryLine += dimStyle.Render(fmt.Sprintf("  · %d refetches", m.listing.refetches))
	}

	lines := []string{
		separatorStyle.Render(strings.Repeat("─", w)),
		queryLine,
	}
	if m.status != "" {
		style := dimStyle
		if m.statusErr {
			style = errorStyle
		}
		lines = append(lines, style.Render(m.status))
	}
	return append(lines, dimStyle.Render("↑/↓ move · space toggle · a apply · c clear · q quit"))
}

func listWindow(total, cursor, visible int) (int, int) {
	if total <= 0 {
		return 0, 0
	}
	if visible <= 0 || visible > total {
		visible = total
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > total {
		end = total
		start = end - visible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}
