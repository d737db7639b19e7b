package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/loadsheet/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCapacityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Manage department capacity",
	}

	cmd.AddCommand(
		newCapacitySetCmd(app),
		newCapacityShowCmd(app),
	)

	return cmd
}

func newCapacitySetCmd(app *App) *cobra.Command {
	var deptStr, week string
	var capacity, pto, training float64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set a department's weekly capacity figures",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			dept, err := parseDepartment(deptStr)
			if err != nil {
				return err
			}
			weekStart, err := parseWeek(week)
			if err != nil {
				return err
			}

			if err := app.Capacity.SetDepartmentCapacity(ctx, dept, weekStart, capacity, pto, training); err != nil {
				return err
			}
			// Drain the debounced write before the process exits.
			if err := app.Capacity.Flush(ctx); err != nil {
				return err
			}

			fmt.Printf("Set %s capacity for week of %s\n", dept, weekStart.Format("Jan 2"))
			return nil
		},
	}

	cmd.Flags().StringVar(&deptStr, "dept", "", "Department code")
	cmd.Flags().StringVar(&week, "week", "", "Week (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&capacity, "capacity", 0, "Available capacity (headcount, or hours for raw-hours departments)")
	cmd.Flags().Float64Var(&pto, "pto", 0, "Capacity lost to PTO")
	cmd.Flags().Float64Var(&training, "training", 0, "Capacity lost to training")
	_ = cmd.MarkFlagRequired("dept")
	_ = cmd.MarkFlagRequired("week")

	return cmd
}

func newCapacityShowCmd(app *App) *cobra.Command {
	var deptStr, from, to string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a department's capacity across weeks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			dept, err := parseDepartment(deptStr)
			if err != nil {
				return err
			}
			fromWeek, err := parseWeek(from)
			if err != nil {
				return err
			}
			toWeek, err := parseWeek(to)
			if err != nil {
				return err
			}

			rows, err := app.Summaries.CapacityRows(ctx, dept, fromWeek, toWeek)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatCapacityRows(rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&deptStr, "dept", "", "Department code")
	cmd.Flags().StringVar(&from, "from", "", "First week (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last week (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("dept")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newTeamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage external team capacity",
	}

	cmd.AddCommand(
		newTeamRegisterCmd(app),
		newTeamSetCmd(app),
		newTeamActiveCmd(app, "activate", true),
		newTeamActiveCmd(app, "deactivate", false),
	)

	return cmd
}

func newTeamRegisterCmd(app *App) *cobra.Command {
	var deptStr string

	cmd := &cobra.Command{
		Use:   "register KEY",
		Short: "Register an external team against a department",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dept, err := parseDepartment(deptStr)
			if err != nil {
				return err
			}

			key := strings.ToUpper(args[0])
			if err := app.Capacity.RegisterTeam(context.Background(), key, dept); err != nil {
				return err
			}

			fmt.Printf("Registered team %s for %s\n", key, dept)
			return nil
		},
	}

	cmd.Flags().StringVar(&deptStr, "dept", "", "Department code")
	_ = cmd.MarkFlagRequired("dept")

	return cmd
}

func newTeamSetCmd(app *App) *cobra.Command {
	var week string
	var capacity float64

	cmd := &cobra.Command{
		Use:   "set KEY",
		Short: "Set an external team's weekly capacity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			weekStart, err := parseWeek(week)
			if err != nil {
				return err
			}

			key := strings.ToUpper(args[0])
			if err := app.Capacity.SetTeamCapacity(ctx, key, weekStart, capacity); err != nil {
				return err
			}
			if err := app.Capacity.Flush(ctx); err != nil {
				return err
			}

			fmt.Printf("Set %s capacity for week of %s\n", key, weekStart.Format("Jan 2"))
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Week (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&capacity, "capacity", 0, "Weekly capacity (headcount); zero removes the record")
	_ = cmd.MarkFlagRequired("week")
	_ = cmd.MarkFlagRequired("capacity")

	return cmd
}

func newTeamActiveCmd(app *App, verb string, active bool) *cobra.Command {
	short := "Activate an external team"
	if !active {
		short = "Deactivate an external team, keeping its history"
	}
	return &cobra.Command{
		Use:   verb + " KEY",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToUpper(args[0])
			if err := app.Capacity.SetTeamActive(context.Background(), key, active); err != nil {
				return err
			}
			fmt.Printf("Team %s %sd\n", key, verb)
			return nil
		},
	}
}
