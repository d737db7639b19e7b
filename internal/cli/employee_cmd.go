package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/loadsheet/internal/cli/formatter"
	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newEmployeeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage department resources",
	}

	cmd.AddCommand(
		newEmployeeAddCmd(app),
		newEmployeeListCmd(app),
		newEmployeeDeactivateCmd(app),
	)

	return cmd
}

func newEmployeeAddCmd(app *App) *cobra.Command {
	var name, role, deptStr, team string
	var capacity float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a resource to a department",
		RunE: func(cmd *cobra.Command, args []string) error {
			dept, err := parseDepartment(deptStr)
			if err != nil {
				return err
			}

			e := &domain.Employee{
				ID:           uuid.New().String(),
				Name:         name,
				Role:         role,
				Department:   dept,
				Capacity:     capacity,
				IsExternal:   team != "",
				ExternalTeam: team,
			}

			if err := app.Employees.Create(context.Background(), e); err != nil {
				return err
			}

			fmt.Printf("Added %s to %s\n", e.Name, dept)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Resource name")
	cmd.Flags().StringVar(&role, "role", "", "Role description")
	cmd.Flags().StringVar(&deptStr, "dept", "", "Department code")
	cmd.Flags().Float64Var(&capacity, "capacity", 40, "Weekly capacity in hours")
	cmd.Flags().StringVar(&team, "team", "", "External team key (marks the resource external)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("dept")

	return cmd
}

func newEmployeeListCmd(app *App) *cobra.Command {
	var deptStr string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a department's resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			dept, err := parseDepartment(deptStr)
			if err != nil {
				return err
			}

			employees, err := app.Employees.List(context.Background(), dept, all)
			if err != nil {
				return err
			}

			if len(employees) == 0 {
				fmt.Println("No resources found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatEmployeeList(employees))
			return nil
		},
	}

	cmd.Flags().StringVar(&deptStr, "dept", "", "Department code")
	cmd.Flags().BoolVar(&all, "all", false, "Include inactive resources")
	_ = cmd.MarkFlagRequired("dept")

	return cmd
}

func newEmployeeDeactivateCmd(app *App) *cobra.Command {
	var deptStr string

	cmd := &cobra.Command{
		Use:   "deactivate NAME",
		Short: "Deactivate a resource, keeping its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			dept, err := parseDepartment(deptStr)
			if err != nil {
				return err
			}
			id, err := resolveEmployeeID(ctx, app, dept, args[0])
			if err != nil {
				return err
			}

			if err := app.Employees.Deactivate(ctx, id); err != nil {
				return err
			}

			fmt.Printf("Deactivated %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&deptStr, "dept", "", "Department code")
	_ = cmd.MarkFlagRequired("dept")

	return cmd
}
