package formatter

import (
	"fmt"

	"github.com/alexanderramin/loadsheet/internal/contract"
	"github.com/alexanderramin/loadsheet/internal/domain"
)

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "CLIENT", "FACILITY", "START", "WEEKS"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		client := Dim("--")
		if p.Client != "" {
			client = StyleFg.Render(p.Client)
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			client,
			StylePurple.Render(string(p.Facility)),
			StyleFg.Render(p.StartDate.Format("2006-01-02")),
			StyleFg.Render(fmt.Sprintf("%d", p.NumberOfWeeks)),
		})
	}

	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatEmployeeList renders the department roster.
func FormatEmployeeList(employees []*domain.Employee) string {
	headers := []string{"ID", "NAME", "ROLE", "DEPT", "CAP", "STATUS"}
	rows := make([][]string, 0, len(employees))

	for _, e := range employees {
		status := StyleGreen.Render("● Active")
		if !e.IsActive {
			status = StyleDim.Render("✖ Inactive")
		}
		name := Bold(e.Name)
		if e.IsExternal {
			name = Bold(e.Name) + " " + StylePurple.Render("["+e.ExternalTeam+"]")
		}
		role := Dim("--")
		if e.Role != "" {
			role = StyleFg.Render(e.Role)
		}
		rows = append(rows, []string{
			TruncID(e.ID),
			name,
			role,
			StylePurple.Render(string(e.Department)),
			StyleFg.Render(FormatHours(e.Capacity)),
			status,
		})
	}

	return RenderBox("Roster", RenderTable(headers, rows))
}

// FormatChangeOrderList renders change orders with derived consumption.
func FormatChangeOrderList(orders []contract.ChangeOrderView) string {
	headers := []string{"ID", "NAME", "DEPT", "QUOTED", "USED"}
	rows := make([][]string, 0, len(orders))

	for _, co := range orders {
		used := StyleFg.Render(FormatHours(co.HoursUsed))
		if co.HoursQuoted > 0 && co.HoursUsed > co.HoursQuoted {
			used = StyleRed.Render(FormatHours(co.HoursUsed))
		}
		rows = append(rows, []string{
			TruncID(co.ID),
			Bold(co.Name),
			StylePurple.Render(string(co.Department)),
			StyleFg.Render(FormatHours(co.HoursQuoted)),
			used,
		})
	}

	return RenderBox("Change Orders", RenderTable(headers, rows))
}

// FormatStageConfig renders a project's per-department schedule windows.
func FormatStageConfig(entries []domain.StageConfigEntry) string {
	headers := []string{"ID", "DEPT", "STAGE", "WEEKS", "OVERRIDE"}
	rows := make([][]string, 0, len(entries))

	for _, e := range entries {
		span := fmt.Sprintf("%d–%d", e.WeekStart, e.WeekEnd)
		override := Dim("--")
		if e.DepartmentStartDate != nil {
			override = StyleYellow.Render("starts " + e.DepartmentStartDate.Format("2006-01-02"))
			if e.DurationWeeks != nil {
				override += StyleYellow.Render(fmt.Sprintf(", %dw", *e.DurationWeeks))
			}
		} else if e.DurationWeeks != nil {
			override = StyleYellow.Render(fmt.Sprintf("%dw", *e.DurationWeeks))
		}
		stage := Dim("--")
		if e.Stage != "" {
			stage = StyleBlue.Render(string(e.Stage))
		}
		rows = append(rows, []string{
			TruncID(e.ID),
			StylePurple.Render(string(e.Department)),
			stage,
			StyleFg.Render(span),
			override,
		})
	}

	return RenderBox("Schedule", RenderTable(headers, rows))
}
