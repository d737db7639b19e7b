package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/loadsheet/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderUtilizationBar renders a budget-consumption bar like [████░░░░] 45%,
// colored by the utilization tier. Percentages above 100 render a full bar.
func RenderUtilizationBar(percent int, tier domain.UtilizationTier, width int) string {
	if width < 2 {
		width = 2
	}

	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	empty := width - filled

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)
	return fmt.Sprintf("[%s] %3d%%", TierColor(tier).Render(bar), percent)
}
