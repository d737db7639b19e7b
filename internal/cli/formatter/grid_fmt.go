package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/loadsheet/internal/contract"
)

// FormatGrid renders one project-department planning row: a week-by-week
// table of cell totals with drift markers, the department capacity line
// underneath, and the budget summary.
func FormatGrid(grid *contract.GridResponse) string {
	headers := []string{"WEEK", "HOURS", "EXTERNAL", "STAGE", "AVAILABLE", "NOTES"}
	rows := make([][]string, 0, len(grid.Cells))

	capacityByWeek := make(map[string]contract.CapacityRow, len(grid.Capacity))
	for _, row := range grid.Capacity {
		capacityByWeek[row.Week.Format("2006-01-02")] = row
	}

	for i, cell := range grid.Cells {
		week := grid.Weeks[i]

		hours := Dim("--")
		if cell.TotalHours != 0 {
			hours = Bold(FormatHours(cell.TotalHours))
		}

		external := Dim("--")
		if cell.ExternalHours != 0 {
			external = StylePurple.Render(FormatHours(cell.ExternalHours))
		}

		stage := Dim("--")
		if cell.DominantStage != "" {
			stage = StyleBlue.Render(string(cell.DominantStage))
		}

		available := Dim("--")
		if row, ok := capacityByWeek[week.Format("2006-01-02")]; ok {
			available = SignedHours(row.Available)
		}

		notes := cellNotes(cell.Comment, DriftIndicator(cell.Drift))

		rows = append(rows, []string{
			StyleFg.Render(WeekLabel(week)),
			hours,
			external,
			stage,
			available,
			notes,
		})
	}

	var b strings.Builder
	b.WriteString(StyleBold.Render(grid.ProjectName))
	b.WriteString(Dim(" · "))
	b.WriteString(StylePurple.Render(string(grid.Department)))
	b.WriteString("\n\n")
	b.WriteString(RenderTable(headers, rows))

	if grid.Utilization != nil {
		u := grid.Utilization
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s  %s %s\n",
			StyleDim.Render("BUDGET"),
			RenderUtilizationBar(u.Percent, u.Tier, 20),
			TierIndicator(u.Tier)))
		b.WriteString(fmt.Sprintf("%s  quoted %s  +co %s  used %s  forecast %s\n",
			StyleDim.Render("HOURS "),
			StyleFg.Render(FormatHours(u.Quoted)),
			StyleFg.Render(FormatHours(u.ChangeOrder)),
			StyleFg.Render(FormatHours(u.Used)),
			StyleFg.Render(FormatHours(u.Forecast))))
	}

	return RenderBox("Loadsheet", b.String())
}

func cellNotes(comment, drift string) string {
	switch {
	case comment != "" && drift != "":
		return drift + " " + Dim(comment)
	case comment != "":
		return Dim(comment)
	case drift != "":
		return drift
	default:
		return ""
	}
}

// FormatCapacityRows renders a department capacity table across weeks.
func FormatCapacityRows(rows []contract.CapacityRow) string {
	headers := []string{"WEEK", "TOTAL", "OCCUPIED", "AVAILABLE"}
	out := make([][]string, 0, len(rows))

	for _, row := range rows {
		out = append(out, []string{
			StyleFg.Render(WeekLabel(row.Week)),
			StyleFg.Render(FormatHours(row.Total)),
			StyleFg.Render(FormatHours(row.Occupied)),
			SignedHours(row.Available),
		})
	}

	title := "Capacity"
	if len(rows) > 0 {
		title = fmt.Sprintf("Capacity · %s", rows[0].Department)
	}
	return RenderBox(title, RenderTable(headers, out))
}

// FormatUtilization renders a standalone budget-consumption card.
func FormatUtilization(u *contract.UtilizationReport) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("DEPT    "), StylePurple.Render(string(u.Department))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("QUOTED  "), StyleFg.Render(FormatHours(u.Quoted))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CHANGE  "), StyleFg.Render(FormatHours(u.ChangeOrder))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("USED    "), StyleFg.Render(FormatHours(u.Used))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("FORECAST"), StyleFg.Render(FormatHours(u.Forecast))))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s", RenderUtilizationBar(u.Percent, u.Tier, 24), TierIndicator(u.Tier)))
	return RenderBox("Utilization", b.String())
}
