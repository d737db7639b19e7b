package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/loadsheet/internal/cli/formatter"
	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectBudgetCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, client, start, facility string
	var weeks int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := time.Parse(domain.DateLayout, start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}

			p := &domain.Project{
				ID:            uuid.New().String(),
				Name:          name,
				Client:        client,
				StartDate:     startDate,
				Facility:      domain.Facility(facility),
				NumberOfWeeks: weeks,
			}

			if err := app.Projects.Create(context.Background(), p); err != nil {
				return err
			}

			fmt.Printf("Created project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&client, "client", "", "Client name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD), snapped to its Monday")
	cmd.Flags().StringVar(&facility, "facility", string(domain.FacilityAL), "Facility code (AL, MI, MX)")
	cmd.Flags().IntVar(&weeks, "weeks", 12, "Number of planning weeks")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectBudgetCmd(app *App) *cobra.Command {
	var deptStr string
	var hours float64

	cmd := &cobra.Command{
		Use:   "budget PROJECT",
		Short: "Set the quoted hours budget for a department",
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

			if err := app.Projects.SetBudget(ctx, projectID, dept, hours); err != nil {
				return err
			}

			fmt.Printf("Set %s budget to %s hours\n", dept, formatter.FormatHours(hours))
			return nil
		},
	}

	cmd.Flags().StringVar(&deptStr, "dept", "", "Department code")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Quoted hours")
	_ = cmd.MarkFlagRequired("dept")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PROJECT",
		Short: "Delete a project and its assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if app.IsInteractive != nil && app.IsInteractive() {
				fmt.Printf("Delete project %q and all its assignments? [y/N] ", args[0])
				var answer string
				_, _ = fmt.Scanln(&answer)
				if answer != "y" && answer != "Y" {
					fmt.Println("Aborted.")
					return nil
				}
			}
			if err := app.Projects.Delete(ctx, projectID); err != nil {
				return err
			}
			fmt.Println("Project removed.")
			return nil
		},
	}
}
