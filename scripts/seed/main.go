// Seed loads a sample inventory. Run from project root: go run ./scripts/seed
// It does nothing when assets already exist. With KAFKA_BROKERS set, running
// API instances are told to drop their cached lists.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"asset-tracker/internal/config"
	"asset-tracker/internal/database"
	"asset-tracker/internal/models"
	"asset-tracker/internal/queue"
	"asset-tracker/internal/repository"
	"asset-tracker/pkg/logger"
)

type seedAsset struct {
	category string
	asset    models.Asset
}

var categories = []struct{ name, description string }{
	{"Laptops", "Portable computers issued to staff"},
	{"Furniture", "Desks, chairs and storage"},
	{"Networking", "Switches, routers and access points"},
	{"Software", "Licences and SaaS subscriptions"},
}

func qty(n int) *int           { return &n }
func money(f float64) *float64 { return &f }

var assets = []seedAsset{
	{"Laptops", models.Asset{AssetCode: "LP-001", AssetName: "MacBook Pro 14", Model: models.String("M3 Pro"), DateOfPurchase: models.String("2024-03-18"), CostOfAsset: money(219900), Quantity: qty(1), AssignedTo: models.String("Priya Nair"), Location: models.String("Pune"), Status: models.StatusInUse}},
	{"Laptops", models.Asset{AssetCode: "LP-002", AssetName: "ThinkPad T14", Model: models.String("Gen 4"), DateOfPurchase: models.String("2023-11-02"), CostOfAsset: money(124500), Quantity: qty(1), Location: models.String("Mumbai HQ"), Status: models.StatusForRepair, Remarks: models.String("Battery swelling")}},
	{"Furniture", models.Asset{AssetCode: "FN-010", AssetName: "Ergonomic Chair", CostOfAsset: money(18500), Quantity: qty(24), Location: models.String("Mumbai HQ"), ClosingStockRs: money(310000), Status: models.StatusInUse}},
	{"Furniture", models.Asset{AssetCode: "FN-011", AssetName: "Standing Desk", CostOfAsset: money(42000), Quantity: qty(6), Location: models.String("Warehouse"), Status: models.StatusInStorage}},
	{"Networking", models.Asset{AssetCode: "NW-003", AssetName: "Core Switch", Model: models.String("48-port PoE"), CostOfAsset: money(96000), Quantity: qty(2), Location: models.String("Server room"), Status: models.StatusInUse}},
	{"Software", models.Asset{AssetCode: "SW-001", AssetName: "Figma Organization", CostOfAsset: money(54000), Status: models.StatusInUse, IsSubscription: true, SubscriptionVendor: models.String("Figma"), SubscriptionRenewalDate: models.String("2026-01-15"), SubscriptionBillingCycle: models.String("Yearly"), SubscriptionURL: models.String("https://www.figma.com")}},
	{"Software", models.Asset{AssetCode: "SW-002", AssetName: "Slack Pro", CostOfAsset: money(6200), Status: models.StatusInUse, IsSubscription: true, SubscriptionVendor: models.String("Slack"), SubscriptionBillingCycle: models.String("Monthly")}},
	{"", models.Asset{AssetCode: "MS-100", AssetName: "Projector", Quantity: qty(1), Location: models.String("Conference room"), Status: models.StatusInStorage}},
}

var todos = []string{
	"Renew Figma licence before January",
	"Send ThinkPad T14 for battery replacement",
	"Tag new chairs with asset codes",
}

func main() {
	cfg := config.Get()
	logger.Init(os.Stderr, cfg.LogLevel)
	ctx := context.Background()

	db := database.DB(ctx)
	if db == nil {
		fmt.Fprintln(os.Stderr, "Database not available")
		os.Exit(1)
	}
	if err := database.MigrateOrCreateSchema(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Schema failed:", err)
		os.Exit(1)
	}

	assetRepo := repository.NewAssetRepository(db)
	n, err := assetRepo.Count(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Count failed:", err)
		os.Exit(1)
	}
	if n > 0 {
		fmt.Printf("Skipping: %d assets already present\n", n)
		return
	}

	events := queue.Producer(ctx)
	defer events.Close()
	publish := func(entity string, id int64) {
		ev := &models.ChangeEvent{Entity: entity, Action: models.ActionCreate, ID: id, OccurredAt: time.Now().UTC()}
		if err := events.Publish(ctx, ev); err != nil {
			logger.Warn(ctx, "Publish change event failed", "error", err)
		}
	}

	start := time.Now()
	ids, err := seedCategories(ctx, repository.NewCategoryRepository(db), publish)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Categories failed:", err)
		os.Exit(1)
	}

	for _, s := range assets {
		a := s.asset
		if id, ok := ids[s.category]; ok {
			a.CategoryID = &id
		}
		a.Normalize()
		created, err := assetRepo.Create(ctx, &a)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Insert asset failed:", a.AssetCode, err)
			os.Exit(1)
		}
		publish(models.EntityAsset, created.ID)
	}

	todoRepo := repository.NewTodoRepository(db)
	for _, text := range todos {
		if _, err := todoRepo.Create(ctx, text, nil); err != nil {
			fmt.Fprintln(os.Stderr, "Insert todo failed:", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Done: %d categories, %d assets, %d todos in %v\n", len(ids), len(assets), len(todos), time.Since(start))
}

// seedCategories creates the sample categories and returns every category id
// by name, including ones that already existed.
func seedCategories(ctx context.Context, repo *repository.CategoryRepository, publish func(string, int64)) (map[string]int64, error) {
	for _, c := range categories {
		desc := c.description
		created, err := repo.Create(ctx, c.name, &desc)
		if errors.Is(err, repository.ErrDuplicate) {
			continue
		}
		if err != nil {
			return nil, err
		}
		publish(models.EntityCategory, created.ID)
	}
	existing, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]int64, len(existing))
	for _, c := range existing {
		ids[c.Name] = c.ID
	}
	return ids, nil
}
