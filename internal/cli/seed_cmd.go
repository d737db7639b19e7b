package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// buildSubcontractors are the standard BUILD-department subcontract
// companies available for external capacity tracking.
var buildSubcontractors = []string{"AMI", "VICER", "ITAX", "MCI", "MG Electrical"}

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load a demo project with roster, budgets and teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			start := domain.WeekStart(time.Now().UTC())

			project := &domain.Project{
				ID:            uuid.New().String(),
				Name:          "Demo Assembly Line",
				Client:        "Acme Automotive",
				StartDate:     start,
				Facility:      domain.FacilityAL,
				NumberOfWeeks: 16,
			}
			if err := app.Projects.Create(ctx, project); err != nil {
				return err
			}

			budgets := map[domain.Department]float64{
				domain.DeptPM:    320,
				domain.DeptMED:   1200,
				domain.DeptHD:    800,
				domain.DeptMFG:   600,
				domain.DeptBUILD: 2400,
				domain.DeptPRG:   1600,
			}
			for dept, hours := range budgets {
				if err := app.Projects.SetBudget(ctx, project.ID, dept, hours); err != nil {
					return err
				}
			}

			roster := []struct {
				name string
				role string
				dept domain.Department
			}{
				{"Dana Whitfield", "Project Manager", domain.DeptPM},
				{"Marcus Lee", "Mechanical Designer", domain.DeptMED},
				{"Priya Raman", "Mechanical Designer", domain.DeptMED},
				{"Tom Kowalski", "Controls Designer", domain.DeptHD},
				{"Elena Vasquez", "Machinist", domain.DeptMFG},
				{"Ray Donnelly", "Build Lead", domain.DeptBUILD},
				{"Sam Okafor", "Robot Programmer", domain.DeptPRG},
				{"Jess Tran", "Controls Programmer", domain.DeptPRG},
			}
			for _, r := range roster {
				e := &domain.Employee{
					ID:         uuid.New().String(),
					Name:       r.name,
					Role:       r.role,
					Department: r.dept,
					Capacity:   40,
				}
				if err := app.Employees.Create(ctx, e); err != nil {
					return err
				}
			}

			for _, key := range buildSubcontractors {
				if err := app.Capacity.RegisterTeam(ctx, key, domain.DeptBUILD); err != nil {
					return err
				}
			}

			for week := 0; week < project.NumberOfWeeks; week++ {
				weekStart := start.AddDate(0, 0, 7*week)
				for dept := range budgets {
					capacity := 2.0
					if dept == domain.DeptBUILD {
						// BUILD capacity is tracked in raw hours.
						capacity = 90
					}
					if err := app.Capacity.SetDepartmentCapacity(ctx, dept, weekStart, capacity, 0, 0); err != nil {
						return err
					}
				}
			}
			if err := app.Capacity.Flush(ctx); err != nil {
				return err
			}

			fmt.Printf("Seeded project %s [%s] with %d resources and %d teams\n",
				project.Name, project.DisplayID(), len(roster), len(buildSubcontractors))
			return nil
		},
	}
}
