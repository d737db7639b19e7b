package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/alexanderramin/loadsheet/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects     service.ProjectService
	Employees    service.EmployeeService
	Cells        service.CellService
	Summaries    service.SummaryService
	Capacity     service.CapacityService
	ChangeOrders service.ChangeOrderService
	StageConfig  service.StageConfigService

	// IsInteractive reports whether stdin is a terminal; destructive
	// commands prompt for confirmation only when it returns true.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "loadsheet" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "loadsheet",
		Short: "Department capacity planner",
	}

	root.AddCommand(
		newProjectCmd(app),
		newEmployeeCmd(app),
		newGridCmd(app),
		newCellCmd(app),
		newCapacityCmd(app),
		newTeamCmd(app),
		newChangeOrderCmd(app),
		newUtilizationCmd(app),
		newStageCmd(app),
		newSeedCmd(app),
	)

	return root
}

func parseDepartment(input string) (domain.Department, error) {
	dept := domain.Department(strings.ToUpper(input))
	if !domain.ValidDepartments[dept] {
		return "", fmt.Errorf("unknown department %q", input)
	}
	return dept, nil
}

// parseWeek parses a YYYY-MM-DD date and snaps it to its week start.
func parseWeek(input string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, input)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", input, err)
	}
	return domain.WeekStart(t), nil
}

func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}

	// 1. Exact name match (case-insensitive)
	for _, p := range projects {
		if strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
	}

	// 2. Exact UUID match
	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	// 3. UUID prefix match
	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func resolveEmployeeID(ctx context.Context, app *App, dept domain.Department, input string) (string, error) {
	employees, err := app.Employees.List(ctx, dept, true)
	if err != nil {
		return "", err
	}

	for _, e := range employees {
		if strings.EqualFold(e.Name, input) {
			return e.ID, nil
		}
	}
	for _, e := range employees {
		if e.ID == input || strings.HasPrefix(e.ID, input) {
			return e.ID, nil
		}
	}
	return "", fmt.Errorf("employee not found in %s: %q", dept, input)
}
