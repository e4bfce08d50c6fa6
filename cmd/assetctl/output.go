package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"asset-tracker/internal/models"

	"github.com/spf13/cobra"
)

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

// printTable writes rows under header with aligned columns, trimming trailing spaces.
func printTable(w io.Writer, header []string, rows [][]string) {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	tw.Flush()
	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func intOrDash(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}

func moneyOrDash(f *float64) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'f', 2, 64)
}

func printAssets(w io.Writer, assets []models.Asset) {
	if len(assets) == 0 {
		fmt.Fprintln(w, "No assets found.")
		return
	}
	rows := make([][]string, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, []string{
			strconv.FormatInt(a.ID, 10), a.AssetCode, a.AssetName, orDash(a.Category),
			a.Status, intOrDash(a.Quantity), orDash(a.Location), orDash(a.AssignedTo),
		})
	}
	printTable(w, []string{"ID", "CODE", "NAME", "CATEGORY", "STATUS", "QTY", "LOCATION", "ASSIGNED TO"}, rows)
	fmt.Fprintf(w, "Total: %d asset(s)\n", len(assets))
}

func printAsset(w io.Writer, a *models.Asset) {
	fields := [][2]string{
		{"ID", strconv.FormatInt(a.ID, 10)},
		{"Code", a.AssetCode},
		{"Name", a.AssetName},
		{"Category", orDash(a.Category)},
		{"Status", a.Status},
		{"Model", orDash(a.Model)},
		{"FA ledger", orDash(a.FALedger)},
		{"Purchased", orDash(a.DateOfPurchase)},
		{"Cost", moneyOrDash(a.CostOfAsset)},
		{"Useful life", orDash(a.UsefulLife)},
		{"Number marked", orDash(a.NumberMarked)},
		{"Quantity", intOrDash(a.Quantity)},
		{"Assigned to", orDash(a.AssignedTo)},
		{"Location", orDash(a.Location)},
		{"Closing stock", moneyOrDash(a.ClosingStockRs)},
		{"Remarks", orDash(a.Remarks)},
	}
	if a.IsSubscription {
		fields = append(fields,
			[2]string{"Vendor", orDash(a.SubscriptionVendor)},
			[2]string{"Renewal", orDash(a.SubscriptionRenewalDate)},
			[2]string{"Billing", orDash(a.SubscriptionBillingCycle)},
			[2]string{"URL", orDash(a.SubscriptionURL)},
		)
	}
	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, []string{f[0] + ":", f[1]})
	}
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 1, ' ', 0)
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	tw.Flush()
	fmt.Fprint(w, sb.String())
}

// confirm asks a yes/no question on the command's input. Only y or yes agree.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
