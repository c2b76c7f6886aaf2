package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ptran/pastel-priority/internal/model"
	"github.com/ptran/pastel-priority/internal/priority"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// Pastel palette backing the category color tags.
var paletteColors = map[string]lipgloss.AdaptiveColor{
	model.ColorPink:     {Dark: "#FFB3C6", Light: "#D6336C"},
	model.ColorPeach:    {Dark: "#FFD8A8", Light: "#D9480F"},
	model.ColorMint:     {Dark: "#B2F2BB", Light: "#2B8A3E"},
	model.ColorLavender: {Dark: "#D0BFFF", Light: "#6741D9"},
	model.ColorSky:      {Dark: "#A5D8FF", Light: "#1971C2"},
	model.ColorButter:   {Dark: "#FFF3BF", Light: "#E67700"},
}

// CategoryColor maps a palette tag to its terminal color.
func CategoryColor(tag string) lipgloss.AdaptiveColor {
	if c, ok := paletteColors[tag]; ok {
		return c
	}
	return ColorGray
}

// CategoryBadgeStyle renders a small colored category label.
func CategoryBadgeStyle(tag string) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(CategoryColor(tag)).
		Padding(0, 1)
}

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// PanelStyle wraps bordered content areas such as the calendar day panel.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// DimmedStyle renders completed tasks and other de-emphasized text.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Strikethrough(true)

// TodayCellStyle highlights the current day in the calendar grid.
var TodayCellStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue)

// OtherMonthStyle dims leading/trailing cells from neighboring months.
var OtherMonthStyle = lipgloss.NewStyle().
	Foreground(ColorSubtle)

// PriorityTagStyle returns a color-coded style for a manual priority tag.
func PriorityTagStyle(tag string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch tag {
	case model.PriorityHigh:
		return base.Foreground(ColorRed)
	case model.PriorityMedium:
		return base.Foreground(ColorYellow)
	case model.PriorityLow:
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// GroupHeaderStyle returns the style for a today-view group header.
func GroupHeaderStyle(label string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch label {
	case "due-today-or-overdue":
		return base.Foreground(ColorRed)
	case "future-due":
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorGray)
	}
}

// BucketGlyph returns the urgency marker shown next to a task.
func BucketGlyph(b priority.Bucket) string {
	switch b {
	case priority.BucketOverdue:
		return "●!"
	case priority.BucketDueToday:
		return "●"
	case priority.BucketRecurring:
		return "↻"
	case priority.BucketUpcoming:
		return "○"
	default:
		return "·"
	}
}

// BucketStyle returns the style for a bucket glyph.
func BucketStyle(b priority.Bucket) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch b {
	case priority.BucketOverdue:
		return base.Foreground(ColorRed)
	case priority.BucketDueToday:
		return base.Foreground(ColorYellow)
	case priority.BucketRecurring:
		return base.Foreground(ColorBlue)
	case priority.BucketUpcoming:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}
