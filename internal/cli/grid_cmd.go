package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/loadsheet/internal/cli/formatter"
	"github.com/alexanderramin/loadsheet/internal/contract"
	"github.com/spf13/cobra"
)

func newGridCmd(app *App) *cobra.Command {
	var deptStr, from, to string

	cmd := &cobra.Command{
		Use:   "grid PROJECT",
		Short: "Show a project-department planning row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			dept, err := parseDepartment(deptStr)
			if err != nil {
				return err
			}

			req := contract.GridRequest{ProjectID: projectID, Department: dept}

			// Default the window to the project's planned span.
			project, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}
			req.From = project.StartDate
			req.To = project.StartDate.AddDate(0, 0, 7*(project.NumberOfWeeks-1))

			if from != "" {
				if req.From, err = parseWeek(from); err != nil {
					return err
				}
			}
			if to != "" {
				if req.To, err = parseWeek(to); err != nil {
					return err
				}
			}

			grid, err := app.Summaries.Grid(ctx, req)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatGrid(grid))
			return nil
		},
	}

	cmd.Flags().StringVar(&deptStr, "dept", "", "Department code")
	cmd.Flags().StringVar(&from, "from", "", "First week (YYYY-MM-DD), defaults to the project start")
	cmd.Flags().StringVar(&to, "to", "", "Last week (YYYY-MM-DD), defaults to the project end")
	_ = cmd.MarkFlagRequired("dept")

	return cmd
}

func newUtilizationCmd(app *App) *cobra.Command {
	var deptStr string

	cmd := &cobra.Command{
		Use:   "utilization PROJECT",
		Short: "Show budget consumption for a project department",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			dept, err := parseDepartment(deptStr)
			if err != nil {
				return err
			}

			report, err := app.Summaries.Utilization(ctx, projectID, dept)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatUtilization(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&deptStr, "dept", "", "Department code")
	_ = cmd.MarkFlagRequired("dept")

	return cmd
}
