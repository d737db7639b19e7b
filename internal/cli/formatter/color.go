package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/alexanderramin/loadsheet/internal/planner"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TierColor returns the lipgloss style corresponding to a utilization tier.
func TierColor(tier domain.UtilizationTier) lipgloss.Style {
	switch tier {
	case domain.TierCritical:
		return StyleRed
	case domain.TierHigh:
		return StyleYellow
	case domain.TierModerate:
		return StyleBlue
	case domain.TierLow:
		return StyleGreen
	default:
		return StyleDim
	}
}

// TierIndicator returns a colored tier indicator string such as "● CRITICAL".
func TierIndicator(tier domain.UtilizationTier) string {
	switch tier {
	case domain.TierCritical:
		return StyleRed.Render("● CRITICAL")
	case domain.TierHigh:
		return StyleYellow.Render("● HIGH")
	case domain.TierModerate:
		return StyleBlue.Render("● MODERATE")
	case domain.TierLow:
		return StyleGreen.Render("● LOW")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// DriftIndicator returns a short colored marker for a cell's drift state.
func DriftIndicator(mark planner.DriftMark) string {
	switch mark {
	case planner.DriftShiftGapOccupied:
		return StyleRed.Render("▲ shifted")
	case planner.DriftShiftGapIdle:
		return StyleYellow.Render("△ gap")
	case planner.DriftOutOfRange:
		return StylePurple.Render("◇ off-plan")
	default:
		return ""
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
