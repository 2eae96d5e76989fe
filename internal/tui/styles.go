package tui

import "github.com/charmbracelet/lipgloss"

// ─── Color Palette (Catppuccin Mocha) ───────────────────────────────────────

var (
	colorBase     = lipgloss.Color("#1E1E2E") // background
	colorSurface0 = lipgloss.Color("#313244") // skeleton bars
	colorSurface1 = lipgloss.Color("#45475A") // separators
	colorText     = lipgloss.Color("#CDD6F4") // primary text
	colorSubtext  = lipgloss.Color("#A6ADC8") // option labels
	colorDim      = lipgloss.Color("#585B70") // muted, disabled

	colorAccent   = lipgloss.Color("#CBA6F7") // mauve, cursor
	colorBlue     = lipgloss.Color("#89B4FA") // section titles, badges
	colorSapphire = lipgloss.Color("#74C7EC") // query line
	colorGreen    = lipgloss.Color("#A6E3A1") // checked boxes
	colorRed      = lipgloss.Color("#F38BA8") // errors
	colorLavender = lipgloss.Color("#B4BEFE") // panel title
)

// ─── Reusable Styles ────────────────────────────────────────────────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorLavender)

	sectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorText)

	optionStyle = lipgloss.NewStyle().
			Foreground(colorSubtext)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	// Per-section count pill.
	sectionBadgeStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	// Total count pill next to the panel title.
	totalBadgeStyle = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorBlue).
			Bold(true).
			Padding(0, 1)

	checkedStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	uncheckedStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface1).
			Padding(0, 1)

	buttonPrimaryStyle = lipgloss.NewStyle().
				Foreground(colorBase).
				Background(colorBlue).
				Bold(true).
				Padding(0, 1)

	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Padding(0, 1)

	queryStyle = lipgloss.NewStyle().
			Foreground(colorSapphire)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	skeletonStyle = lipgloss.NewStyle().
			Foreground(colorSurface0)

	separatorStyle = lipgloss.NewStyle().
			Foreground(colorSurface1)
)

// sectionIcons maps catalog icon names to terminal glyphs.
var sectionIcons = map[string]string{
	"sparkles": "✦",
	"squares":  "▦",
	"beaker":   "⚗",
	"swatch":   "◐",
	"star":     "★",
	"currency": "$",
}

func iconGlyph(name string) string {
	if g, ok := sectionIcons[name]; ok {
		return g
	}
	return "•"
}
