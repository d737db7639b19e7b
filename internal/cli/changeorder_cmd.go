package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/loadsheet/internal/cli/formatter"
	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newChangeOrderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "changeorder",
		Aliases: []string{"co"},
		Short:   "Manage change orders",
	}

	cmd.AddCommand(
		newChangeOrderAddCmd(app),
		newChangeOrderListCmd(app),
		newChangeOrderRemoveCmd(app),
	)

	return cmd
}

func newChangeOrderAddCmd(app *App) *cobra.Command {
	var deptStr, name string
	var hours float64

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Create a change order",
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

			co := &domain.ChangeOrder{
				ID:          uuid.New().String(),
				ProjectID:   projectID,
				Department:  dept,
				Name:        name,
				HoursQuoted: hours,
			}

			if err := app.ChangeOrders.Create(ctx, co); err != nil {
				return err
			}

			fmt.Printf("Created change order %s [%s]\n", co.Name, co.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&deptStr, "dept", "", "Department code")
	cmd.Flags().StringVar(&name, "name", "", "Change order name")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Quoted hours")
	_ = cmd.MarkFlagRequired("dept")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newChangeOrderListCmd(app *App) *cobra.Command {
	var deptStr string

	cmd := &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's change orders with consumed hours",
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

			orders, err := app.ChangeOrders.List(ctx, projectID, dept)
			if err != nil {
				return err
			}

			if len(orders) == 0 {
				fmt.Println("No change orders found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatChangeOrderList(orders))
			return nil
		},
	}

	cmd.Flags().StringVar(&deptStr, "dept", "", "Department code")
	_ = cmd.MarkFlagRequired("dept")

	return cmd
}

func newChangeOrderRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a change order with no assigned hours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ChangeOrders.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Change order removed.")
			return nil
		},
	}
}
