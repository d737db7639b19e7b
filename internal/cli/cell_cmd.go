package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/loadsheet/internal/contract"
	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/alexanderramin/loadsheet/internal/planner"
	"github.com/spf13/cobra"
)

func newCellCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cell",
		Short: "Edit planning cells",
	}

	cmd.AddCommand(
		newCellSetCmd(app),
		newCellClearCmd(app),
		newCellCopyCmd(app),
	)

	return cmd
}

// parseBreakdown parses "STAGE=hours,STAGE=hours" into stage lines.
func parseBreakdown(input string) ([]planner.StageHours, error) {
	if input == "" {
		return nil, nil
	}
	parts := strings.Split(input, ",")
	lines := make([]planner.StageHours, 0, len(parts))
	for _, part := range parts {
		stage, hoursStr, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return nil, fmt.Errorf("invalid breakdown entry %q (want STAGE=hours)", part)
		}
		hours, err := strconv.ParseFloat(hoursStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid hours in breakdown entry %q: %w", part, err)
		}
		lines = append(lines, planner.StageHours{
			Stage: domain.Stage(strings.ToUpper(stage)),
			Hours: hours,
		})
	}
	return lines, nil
}

func newCellSetCmd(app *App) *cobra.Command {
	var deptStr, week, stage, breakdown, comment, changeOrder string
	var employees []string
	var hours, scio, external float64

	cmd := &cobra.Command{
		Use:   "set PROJECT",
		Short: "Set the hours, stage and crew of one cell",
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
			weekStart, err := parseWeek(week)
			if err != nil {
				return err
			}
			lines, err := parseBreakdown(breakdown)
			if err != nil {
				return err
			}

			req := contract.CellEditRequest{
				ProjectID:      projectID,
				Department:     dept,
				Week:           weekStart,
				TotalHours:     hours,
				Stage:          domain.Stage(strings.ToUpper(stage)),
				Breakdown:      lines,
				Comment:        comment,
				ChangeOrderID:  changeOrder,
				UseChangeOrder: changeOrder != "",
			}

			for _, name := range employees {
				id, err := resolveEmployeeID(ctx, app, dept, name)
				if err != nil {
					return err
				}
				req.EmployeeIDs = append(req.EmployeeIDs, id)
			}

			if cmd.Flags().Changed("scio") {
				req.ScioHours = &scio
			}
			if cmd.Flags().Changed("external") {
				req.ExternalHours = &external
			}

			result, err := app.Cells.EditCell(ctx, req)
			if err != nil {
				return err
			}

			fmt.Printf("Cell updated (%d created, %d updated, %d zeroed)\n",
				result.Created, result.Updated, result.Zeroed)
			return nil
		},
	}

	cmd.Flags().StringVar(&deptStr, "dept", "", "Department code")
	cmd.Flags().StringVar(&week, "week", "", "Week (YYYY-MM-DD), snapped to its Monday")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Total hours for the cell")
	cmd.Flags().StringVar(&stage, "stage", "", "Stage tag for all hours")
	cmd.Flags().StringVar(&breakdown, "breakdown", "", "Per-stage split, e.g. CONCEPT=24,DETAIL_DESIGN=16")
	cmd.Flags().StringSliceVar(&employees, "employee", nil, "Resource name (repeatable); omit to use the department placeholder")
	cmd.Flags().StringVar(&comment, "comment", "", "Cell comment")
	cmd.Flags().StringVar(&changeOrder, "change-order", "", "Change order ID to bill the hours against")
	cmd.Flags().Float64Var(&scio, "scio", 0, "Internal (scio) hours of the split")
	cmd.Flags().Float64Var(&external, "external", 0, "External hours of the split")
	_ = cmd.MarkFlagRequired("dept")
	_ = cmd.MarkFlagRequired("week")

	return cmd
}

func newCellClearCmd(app *App) *cobra.Command {
	var deptStr, week string

	cmd := &cobra.Command{
		Use:   "clear PROJECT",
		Short: "Remove every record in one cell",
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
			weekStart, err := parseWeek(week)
			if err != nil {
				return err
			}

			cell := domain.CellRef{ProjectID: projectID, Department: dept, WeekStart: weekStart}
			if err := app.Cells.ClearCell(ctx, cell); err != nil {
				return err
			}

			fmt.Println("Cell cleared.")
			return nil
		},
	}

	cmd.Flags().StringVar(&deptStr, "dept", "", "Department code")
	cmd.Flags().StringVar(&week, "week", "", "Week (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("dept")
	_ = cmd.MarkFlagRequired("week")

	return cmd
}

func newCellCopyCmd(app *App) *cobra.Command {
	var deptStr, week, toProject, toWeek string

	cmd := &cobra.Command{
		Use:   "copy PROJECT",
		Short: "Copy one cell's breakdown into another cell",
		Long: "Copy snapshots the source cell and pastes it onto the target week. " +
			"Pasting across projects keeps the breakdown but drops change-order references.",
		Args: cobra.ExactArgs(1),
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
			weekStart, err := parseWeek(week)
			if err != nil {
				return err
			}
			targetWeek, err := parseWeek(toWeek)
			if err != nil {
				return err
			}

			targetProject := projectID
			if toProject != "" {
				if targetProject, err = resolveProjectID(ctx, app, toProject); err != nil {
					return err
				}
			}

			source := domain.CellRef{ProjectID: projectID, Department: dept, WeekStart: weekStart}
			snap, err := app.Cells.CopyCell(ctx, source)
			if err != nil {
				return err
			}
			if len(snap.Entries) == 0 {
				return fmt.Errorf("source cell is empty")
			}

			target := domain.CellRef{ProjectID: targetProject, Department: dept, WeekStart: targetWeek}
			result, err := app.Cells.PasteCell(ctx, snap, target)
			if err != nil {
				return err
			}

			fmt.Printf("Pasted %d records (%d created, %d updated)\n",
				len(snap.Entries), result.Created, result.Updated)
			return nil
		},
	}

	cmd.Flags().StringVar(&deptStr, "dept", "", "Department code")
	cmd.Flags().StringVar(&week, "week", "", "Source week (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toWeek, "to-week", "", "Target week (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toProject, "to-project", "", "Target project, defaults to the source project")
	_ = cmd.MarkFlagRequired("dept")
	_ = cmd.MarkFlagRequired("week")
	_ = cmd.MarkFlagRequired("to-week")

	return cmd
}
