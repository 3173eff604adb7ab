package cli

import (
	"fmt"
	"strconv"
	"strings"

	"hospital-inventory-dashboard/internal/models"
	"hospital-inventory-dashboard/internal/service"

	"github.com/spf13/cobra"
)

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint(id), nil
}

// authed wraps a command body with the session check and 401 handling
func authed(appFn func() *app, run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a := appFn()
		if err := a.requireUser(cmd.Context()); err != nil {
			return err
		}
		return a.check(run(cmd, a, args))
	}
}

func hospitalsCmd(appFn func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hospitals",
		Short: "List and inspect hospitals",
		RunE: authed(appFn, func(cmd *cobra.Command, a *app, args []string) error {
			hospitals, err := a.services.Hospitals.List(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(hospitals)
		}),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get ID",
		Short: "Show one hospital",
		Args:  cobra.ExactArgs(1),
		RunE: authed(appFn, func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			hospital, err := a.services.Hospitals.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.print(hospital)
		}),
	})

	inventory := &cobra.Command{
		Use:   "inventory ID",
		Short: "List one hospital's inventory",
		Args:  cobra.ExactArgs(1),
		RunE: authed(appFn, func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			list := a.services.Hospitals.Inventory
			if low, _ := cmd.Flags().GetBool("low-stock"); low {
				list = a.services.Hospitals.LowStock
			}
			items, err := list(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.print(items)
		}),
	}
	inventory.Flags().Bool("low-stock", false, "Only rows at or below their reorder level")
	cmd.AddCommand(inventory)
	return cmd
}

type inventoryLine struct {
	ID       uint               `json:"id"`
	Hospital string             `json:"hospital"`
	Medicine string             `json:"medicine"`
	Stock    int                `json:"current_stock"`
	Reorder  int                `json:"reorder_level"`
	Status   models.StockStatus `json:"status"`
}

func inventoryCmd(appFn func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "List inventory with stock status",
		RunE: authed(appFn, func(cmd *cobra.Command, a *app, args []string) error {
			list := a.services.Inventory.List
			switch view, _ := cmd.Flags().GetString("view"); view {
			case "", "all":
			case string(models.StockStatusLowStock):
				list = a.services.Inventory.LowStock
			case string(models.StockStatusOutOfStock):
				list = a.services.Inventory.OutOfStock
			default:
				return fmt.Errorf("unknown view %q", view)
			}
			items, err := list(cmd.Context())
			if err != nil {
				return err
			}
			lines := make([]inventoryLine, 0, len(items))
			for _, item := range items {
				lines = append(lines, inventoryLine{
					ID:       item.ID,
					Hospital: item.HospitalName,
					Medicine: item.MedicineName,
					Stock:    item.CurrentStock,
					Reorder:  item.ReorderLevel,
					Status:   item.Status(),
				})
			}
			return a.print(lines)
		}),
	}
	cmd.Flags().String("view", "", "all, low_stock or out_of_stock")

	update := &cobra.Command{
		Use:   "set-stock ID COUNT",
		Short: "Set the current stock of an inventory row",
		Args:  cobra.ExactArgs(2),
		RunE: authed(appFn, func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			count, err := strconv.Atoi(args[1])
			if err != nil || count < 0 {
				return fmt.Errorf("invalid stock count %q", args[1])
			}
			item, err := a.services.Inventory.Update(cmd.Context(), id, models.InventoryUpdate{CurrentStock: &count})
			if err != nil {
				return err
			}
			return a.print(item)
		}),
	}
	cmd.AddCommand(update)
	return cmd
}

func medicinesCmd(appFn func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "medicines",
		Short: "List the medicine catalog",
		RunE: authed(appFn, func(cmd *cobra.Command, a *app, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			essential, _ := cmd.Flags().GetBool("essential")

			var (
				medicines []models.Medicine
				err       error
			)
			switch {
			case category != "":
				medicines, err = a.services.Medicines.ByCategory(cmd.Context(), category)
			case essential:
				medicines, err = a.services.Medicines.Essential(cmd.Context())
			default:
				medicines, err = a.services.Medicines.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			return a.print(medicines)
		}),
	}
	cmd.Flags().String("category", "", "Only medicines in this category")
	cmd.Flags().Bool("essential", false, "Only essential medicines")
	return cmd
}

func alertsCmd(appFn func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List and manage shortage alerts",
		RunE: authed(appFn, func(cmd *cobra.Command, a *app, args []string) error {
			alerts, err := a.services.Alerts.List(cmd.Context())
			if err != nil {
				return err
			}
			status, _ := cmd.Flags().GetString("status")
			if status != "" {
				filtered := alerts[:0]
				for _, alert := range alerts {
					if string(alert.Status) == strings.ToUpper(status) {
						filtered = append(filtered, alert)
					}
				}
				alerts = filtered
			}
			return a.print(alerts)
		}),
	}
	cmd.Flags().String("status", "", "ACTIVE, ACKNOWLEDGED or RESOLVED")

	transition := func(use, short string, apply func(a *app, cmd *cobra.Command, id uint) (*models.Alert, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use + " ID",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: authed(appFn, func(cmd *cobra.Command, a *app, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				alert, err := apply(a, cmd, id)
				if err != nil {
					return err
				}
				return a.print(alert)
			}),
		}
	}
	cmd.AddCommand(
		transition("ack", "Acknowledge an alert", func(a *app, cmd *cobra.Command, id uint) (*models.Alert, error) {
			return a.services.Alerts.Acknowledge(cmd.Context(), id)
		}),
		transition("resolve", "Resolve an alert", func(a *app, cmd *cobra.Command, id uint) (*models.Alert, error) {
			return a.services.Alerts.Resolve(cmd.Context(), id)
		}),
	)
	return cmd
}

func predictCmd(appFn func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Shortage predictions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Predict shortage risk for every inventory row",
		RunE: authed(appFn, func(cmd *cobra.Command, a *app, args []string) error {
			inventory, err := a.services.Inventory.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(inventory) == 0 {
				fmt.Fprintln(a.out, "No inventory to analyze")
				return nil
			}
			resp, err := a.services.Predictions.BatchPredict(cmd.Context(), service.BuildBatch(inventory))
			if err != nil {
				return err
			}
			return a.print(map[string]any{
				"total_predictions": resp.TotalPredictions,
				"risk_summary":      resp.RiskSummary,
				"summary":           service.Summarize(resp.Predictions),
				"predictions":       resp.Predictions,
			})
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored predictions",
		RunE: authed(appFn, func(cmd *cobra.Command, a *app, args []string) error {
			predictions, err := a.services.Predictions.List(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(predictions)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether the prediction model is loaded",
		RunE: authed(appFn, func(cmd *cobra.Command, a *app, args []string) error {
			status, err := a.services.Predictions.ModelStatus(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(status)
		}),
	})
	return cmd
}
