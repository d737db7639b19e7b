package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/loadsheet/internal/cli/formatter"
	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newStageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Manage per-department schedule windows",
	}

	cmd.AddCommand(
		newStageAddCmd(app),
		newStageListCmd(app),
		newStageShiftCmd(app),
		newStageRemoveCmd(app),
	)

	return cmd
}

func newStageAddCmd(app *App) *cobra.Command {
	var deptStr, stage string
	var weekStart, weekEnd int

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Add a schedule window entry",
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

			e := &domain.StageConfigEntry{
				ID:         uuid.New().String(),
				ProjectID:  projectID,
				Department: dept,
				Stage:      domain.Stage(strings.ToUpper(stage)),
				WeekStart:  weekStart,
				WeekEnd:    weekEnd,
			}

			if err := app.StageConfig.Add(ctx, e); err != nil {
				return err
			}

			fmt.Printf("Scheduled %s weeks %d–%d\n", dept, weekStart, weekEnd)
			return nil
		},
	}

	cmd.Flags().StringVar(&deptStr, "dept", "", "Department code")
	cmd.Flags().StringVar(&stage, "stage", "", "Stage tag for the window")
	cmd.Flags().IntVar(&weekStart, "week-start", 0, "First project week of the window (1-based)")
	cmd.Flags().IntVar(&weekEnd, "week-end", 0, "Last project week of the window (inclusive)")
	_ = cmd.MarkFlagRequired("dept")
	_ = cmd.MarkFlagRequired("week-start")
	_ = cmd.MarkFlagRequired("week-end")

	return cmd
}

func newStageListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's schedule windows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			entries, err := app.StageConfig.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No schedule entries found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatStageConfig(entries))
			return nil
		},
	}
}

func newStageShiftCmd(app *App) *cobra.Command {
	var start string
	var duration int

	cmd := &cobra.Command{
		Use:   "shift ENTRY-ID",
		Short: "Override a window's start date or duration",
		Long: "Shift records an out-of-band timing change for one schedule entry. " +
			"Weeks between the planned and the shifted start are flagged on the grid.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// The entry must be loaded through its project; list lookups by
			// bare entry ID are not part of the service surface.
			entry, err := findStageEntry(ctx, app, args[0])
			if err != nil {
				return err
			}

			if start != "" {
				startDate, err := parseWeek(start)
				if err != nil {
					return err
				}
				entry.DepartmentStartDate = &startDate
			}
			if cmd.Flags().Changed("duration") {
				entry.DurationWeeks = &duration
			}

			if err := app.StageConfig.Update(ctx, entry); err != nil {
				return err
			}

			fmt.Println("Schedule entry updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Shifted start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Override duration in weeks")

	return cmd
}

func findStageEntry(ctx context.Context, app *App, id string) (*domain.StageConfigEntry, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		entries, err := app.StageConfig.ListByProject(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		for i := range entries {
			if entries[i].ID == id || strings.HasPrefix(entries[i].ID, id) {
				return &entries[i], nil
			}
		}
	}
	return nil, fmt.Errorf("schedule entry not found: %q", id)
}

func newStageRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ENTRY-ID",
		Short: "Delete a schedule window entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			entry, err := findStageEntry(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.StageConfig.Remove(ctx, entry.ID); err != nil {
				return err
			}
			fmt.Println("Schedule entry removed.")
			return nil
		},
	}
}
