package main

import (
	"errors"
	"fmt"
	"strings"

	"asset-tracker/internal/apiclient"
	"asset-tracker/internal/inventory"
	"asset-tracker/internal/models"
	"asset-tracker/internal/view"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newAssetsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assets",
		Aliases: []string{"asset"},
		Short:   "List and manage assets",
	}
	cmd.AddCommand(
		newAssetListCmd(a),
		newAssetGetCmd(a),
		newAssetAddCmd(a),
		newAssetEditCmd(a),
		newAssetDeleteCmd(a),
	)
	return cmd
}

func newAssetListCmd(a *app) *cobra.Command {
	var (
		category string
		search   string
		status   string
		sorts    []string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets with optional filters",
		Long: `List fetches every asset and shows the ones matching all filters.

Repeating --sort with the same key flips the direction, like clicking a
column header twice.

Example:
  assetctl assets list --category Laptops --search pune
  assetctl assets list --status "in use" --sort quantity --sort quantity`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			s := inventory.NewSession(a.client)
			if category != "" {
				s.SelectCategory(category)
			}
			s.SetSearch(search)
			f, ok := view.ParseStatusFilter(status)
			if !ok {
				return fmt.Errorf("unknown status %q (valid: in_use, in_storage, for_repair)", status)
			}
			s.ToggleStatus(f)
			for _, raw := range sorts {
				key, err := view.ParseSortKey(raw)
				if err != nil {
					return err
				}
				s.ToggleSort(key)
			}

			if err := s.Load(ctx); err != nil {
				return fmt.Errorf("load assets: %w", err)
			}
			visible := s.Visible()
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), visible)
			}
			printAssets(cmd.OutOrStdout(), visible)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", view.AllCategories, "category name (exact match)")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive match on name, code, assignee or location")
	cmd.Flags().StringVar(&status, "status", "", "in_use, in_storage or for_repair")
	cmd.Flags().StringArrayVar(&sorts, "sort", nil, "sort key; repeat to toggle direction")
	return cmd
}

func newAssetGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()

			asset, err := a.client.GetAsset(ctx, id)
			if err != nil {
				if apiclient.IsNotFound(err) {
					return fmt.Errorf("asset %d not found", id)
				}
				return fmt.Errorf("get asset: %w", err)
			}
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), asset)
			}
			printAsset(cmd.OutOrStdout(), asset)
			return nil
		},
	}
}

// assetFlags are the editable asset fields. Only flags the user set are applied.
type assetFlags struct {
	code, name, model, faLedger, purchased, usefulLife, numberMarked string
	assignedTo, location, status, remarks, category                  string
	vendor, renewal, billing, url                                    string
	quantity                                                         int
	cost, closingStock                                               float64
	subscription                                                     bool
}

func (f *assetFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.code, "code", "", "asset code")
	fs.StringVar(&f.name, "name", "", "asset name")
	fs.StringVar(&f.model, "model", "", "model")
	fs.StringVar(&f.faLedger, "fa-ledger", "", "fixed asset ledger")
	fs.StringVar(&f.purchased, "purchased", "", "date of purchase (YYYY-MM-DD)")
	fs.Float64Var(&f.cost, "cost", 0, "cost of asset")
	fs.StringVar(&f.usefulLife, "useful-life", "", "useful life")
	fs.StringVar(&f.numberMarked, "number-marked", "", "number marked")
	fs.IntVar(&f.quantity, "quantity", 0, "quantity")
	fs.StringVar(&f.assignedTo, "assigned-to", "", "assignee")
	fs.StringVar(&f.location, "location", "", "location")
	fs.Float64Var(&f.closingStock, "closing-stock", 0, "closing stock (Rs)")
	fs.StringVar(&f.status, "status", "", "In Use, In Storage or For Repair")
	fs.StringVar(&f.remarks, "remarks", "", "remarks")
	fs.StringVar(&f.category, "category", "", "category name; empty clears it")
	fs.BoolVar(&f.subscription, "subscription", false, "mark as a subscription")
	fs.StringVar(&f.vendor, "vendor", "", "subscription vendor")
	fs.StringVar(&f.renewal, "renewal", "", "subscription renewal date (YYYY-MM-DD)")
	fs.StringVar(&f.billing, "billing", "", "subscription billing cycle")
	fs.StringVar(&f.url, "url", "", "subscription URL")
}

// apply copies the changed flags onto dst. categories resolves --category to an id.
func (f *assetFlags) apply(fs *pflag.FlagSet, dst *models.Asset, categories []models.Category) error {
	text := map[string]**string{
		"model": &dst.Model, "fa-ledger": &dst.FALedger, "purchased": &dst.DateOfPurchase,
		"useful-life": &dst.UsefulLife, "number-marked": &dst.NumberMarked,
		"assigned-to": &dst.AssignedTo, "location": &dst.Location, "remarks": &dst.Remarks,
		"vendor": &dst.SubscriptionVendor, "renewal": &dst.SubscriptionRenewalDate,
		"billing": &dst.SubscriptionBillingCycle, "url": &dst.SubscriptionURL,
	}
	values := map[string]string{
		"model": f.model, "fa-ledger": f.faLedger, "purchased": f.purchased,
		"useful-life": f.usefulLife, "number-marked": f.numberMarked,
		"assigned-to": f.assignedTo, "location": f.location, "remarks": f.remarks,
		"vendor": f.vendor, "renewal": f.renewal, "billing": f.billing, "url": f.url,
	}
	for name, field := range text {
		if fs.Changed(name) {
			*field = models.String(values[name])
		}
	}
	if fs.Changed("code") {
		dst.AssetCode = f.code
	}
	if fs.Changed("name") {
		dst.AssetName = f.name
	}
	if fs.Changed("status") {
		dst.Status = f.status
	}
	if fs.Changed("quantity") {
		q := f.quantity
		dst.Quantity = &q
	}
	if fs.Changed("cost") {
		c := f.cost
		dst.CostOfAsset = &c
	}
	if fs.Changed("closing-stock") {
		c := f.closingStock
		dst.ClosingStockRs = &c
	}
	if fs.Changed("subscription") {
		dst.IsSubscription = f.subscription
	}
	if fs.Changed("category") {
		dst.CategoryID = nil
		if name := strings.TrimSpace(f.category); name != "" {
			id, ok := categoryID(categories, name)
			if !ok {
				return fmt.Errorf("unknown category %q", name)
			}
			dst.CategoryID = &id
		}
	}
	dst.Category = nil
	return nil
}

func categoryID(categories []models.Category, name string) (int64, bool) {
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c.ID, true
		}
	}
	return 0, false
}

func newAssetAddCmd(a *app) *cobra.Command {
	var f assetFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an asset",
		Long: `Add creates an asset. --code and --name are required.

Example:
  assetctl assets add --code LP-003 --name "MacBook Air" --category Laptops --status "In Use" --quantity 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			s := inventory.NewSession(a.client)
			if err := s.Load(ctx); err != nil {
				return fmt.Errorf("load inventory: %w", err)
			}
			var asset models.Asset
			if err := f.apply(cmd.Flags(), &asset, s.Store.Snapshot().Categories); err != nil {
				return err
			}
			if asset.MissingRequired() {
				return errors.New("--code and --name are required")
			}

			s.OpenAdd()
			if err := s.AddAsset(ctx, &asset); err != nil {
				return fmt.Errorf("add asset: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added asset: %s\n", asset.AssetCode)
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newAssetEditCmd(a *app) *cobra.Command {
	var f assetFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an asset",
		Long: `Edit fetches the asset, applies the flags given and saves the whole record.

Example:
  assetctl assets edit 12 --status "For Repair" --remarks "Screen cracked"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()

			s := inventory.NewSession(a.client)
			if err := s.Load(ctx); err != nil {
				return fmt.Errorf("load inventory: %w", err)
			}
			current, err := a.client.GetAsset(ctx, id)
			if err != nil {
				if apiclient.IsNotFound(err) {
					return fmt.Errorf("asset %d not found", id)
				}
				return fmt.Errorf("get asset: %w", err)
			}

			s.SelectAsset(*current)
			updated := *current
			if err := f.apply(cmd.Flags(), &updated, s.Store.Snapshot().Categories); err != nil {
				return err
			}
			if err := s.UpdateAsset(ctx, &updated); err != nil {
				return fmt.Errorf("update asset: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated asset: %d\n", id)
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newAssetDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()

			s := inventory.NewSession(a.client)
			s.RequestAssetDelete(id)
			if !yes && !confirm(cmd, fmt.Sprintf("Delete asset %d?", id)) {
				s.AssetDelete.Cancel()
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			if err := s.ConfirmAssetDelete(ctx); err != nil {
				if apiclient.IsNotFound(err) {
					return fmt.Errorf("asset %d not found", id)
				}
				return fmt.Errorf("delete asset: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted asset: %d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
