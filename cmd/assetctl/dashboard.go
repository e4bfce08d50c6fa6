package main

import (
	"fmt"
	"strconv"

	"asset-tracker/internal/inventory"
	"asset-tracker/internal/view"

	"github.com/spf13/cobra"
)

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show asset totals and status counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			s := inventory.NewSession(a.client)
			if err := s.Load(ctx); err != nil {
				return fmt.Errorf("load inventory: %w", err)
			}
			sum := s.Dashboard()
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), sum)
			}
			printTable(cmd.OutOrStdout(), []string{"METRIC", "VALUE"}, [][]string{
				{"Total records", strconv.Itoa(sum.TotalRecords)},
				{"Total quantity", strconv.Itoa(sum.TotalQuantity)},
				{"Categories", strconv.Itoa(sum.Categories)},
				{"In use", strconv.Itoa(sum.InUse)},
				{"In storage", strconv.Itoa(sum.InStorage)},
				{"For repair", strconv.Itoa(sum.ForRepair)},
			})
			return nil
		},
	}
}

func newSubscriptionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "subscriptions",
		Short: "List subscription assets and the estimated monthly cost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			assets, err := a.client.ListAssets(ctx)
			if err != nil {
				return fmt.Errorf("list assets: %w", err)
			}
			subs := view.Subscriptions(assets)
			monthly := view.MonthlySubscriptionCost(assets)
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"subscriptions":     subs,
					"estimated_monthly": monthly,
				})
			}
			if len(subs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No subscriptions found.")
				return nil
			}
			rows := make([][]string, 0, len(subs))
			for _, sub := range subs {
				rows = append(rows, []string{
					sub.AssetName, orDash(sub.SubscriptionVendor), orDash(sub.SubscriptionBillingCycle),
					orDash(sub.SubscriptionRenewalDate), strconv.FormatFloat(view.MonthlyCost(sub), 'f', 0, 64),
				})
			}
			printTable(cmd.OutOrStdout(), []string{"NAME", "VENDOR", "BILLING", "RENEWAL", "MONTHLY"}, rows)
			fmt.Fprintf(cmd.OutOrStdout(), "%d subscription(s), approx %.0f/month\n", len(subs), monthly)
			return nil
		},
	}
}
