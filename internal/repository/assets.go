package repository

import (
	"context"
	"database/sql"

	"asset-tracker/internal/models"
	"asset-tracker/pkg/logger"
)

// assetColumns lists every column explicitly so schema drift shows up as a query error
// rather than silently changed JSON. Dates are rendered as YYYY-MM-DD.
const assetColumns = `a.id,
	a.asset_code,
	a.asset_name,
	a.model,
	a.fa_ledger,
	to_char(a.date_of_purchase, 'YYYY-MM-DD'),
	a.cost_of_asset,
	a.useful_life,
	a.number_marked,
	a.quantity,
	a.assigned_to,
	a.location,
	a.closing_stock_rs,
	a.status,
	a.remarks,
	a.category_id,
	a.is_subscription,
	a.subscription_vendor,
	to_char(a.subscription_renewal_date, 'YYYY-MM-DD'),
	a.subscription_billing_cycle,
	a.subscription_url,
	c.name AS category`

const assetWriteColumns = `asset_code, asset_name, model, fa_ledger, date_of_purchase,
	cost_of_asset, useful_life, number_marked, quantity, assigned_to,
	location, closing_stock_rs, status, remarks, category_id,
	is_subscription, subscription_vendor, subscription_renewal_date, subscription_billing_cycle, subscription_url`

// AssetRepository reads and writes assets joined with their category name.
type AssetRepository struct {
	db *sql.DB
}

func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (models.Asset, error) {
	var a models.Asset
	err := row.Scan(
		&a.ID, &a.AssetCode, &a.AssetName, &a.Model, &a.FALedger,
		&a.DateOfPurchase, &a.CostOfAsset, &a.UsefulLife, &a.NumberMarked, &a.Quantity,
		&a.AssignedTo, &a.Location, &a.ClosingStockRs, &a.Status, &a.Remarks,
		&a.CategoryID, &a.IsSubscription, &a.SubscriptionVendor, &a.SubscriptionRenewalDate,
		&a.SubscriptionBillingCycle, &a.SubscriptionURL, &a.Category,
	)
	return a, err
}

func assetArgs(a *models.Asset) []any {
	return []any{
		a.AssetCode, a.AssetName, a.Model, a.FALedger, a.DateOfPurchase,
		a.CostOfAsset, a.UsefulLife, a.NumberMarked, a.Quantity, a.AssignedTo,
		a.Location, a.ClosingStockRs, a.Status, a.Remarks, a.CategoryID,
		a.IsSubscription, a.SubscriptionVendor, a.SubscriptionRenewalDate, a.SubscriptionBillingCycle, a.SubscriptionURL,
	}
}

// List returns all assets ordered by asset_name.
func (r *AssetRepository) List(ctx context.Context) ([]models.Asset, error) {
	if err := requireDB(r.db); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+assetColumns+`
		FROM assets a
		LEFT JOIN categories c ON a.category_id = c.id
		ORDER BY a.asset_name`)
	if err != nil {
		logger.Error(ctx, "Repository ListAssets failed", "error", err)
		return nil, classify("list assets", err)
	}
	defer rows.Close()
	assets := make([]models.Asset, 0)
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			logger.Error(ctx, "Repository scan asset failed", "error", err)
			return nil, classify("scan asset", err)
		}
		assets = append(assets, a)
	}
	return assets, classify("list assets", rows.Err())
}

// Get returns one asset by id, or ErrNotFound.
func (r *AssetRepository) Get(ctx context.Context, id int64) (*models.Asset, error) {
	if err := requireDB(r.db); err != nil {
		return nil, err
	}
	a, err := scanAsset(r.db.QueryRowContext(ctx, `SELECT `+assetColumns+`
		FROM assets a
		LEFT JOIN categories c ON a.category_id = c.id
		WHERE a.id = $1`, id))
	if err != nil {
		return nil, classify("get asset", err)
	}
	return &a, nil
}

// Create inserts the asset and returns the stored row, category name included.
func (r *AssetRepository) Create(ctx context.Context, in *models.Asset) (*models.Asset, error) {
	if err := requireDB(r.db); err != nil {
		return nil, err
	}
	a, err := scanAsset(r.db.QueryRowContext(ctx, `WITH a AS (
			INSERT INTO assets (`+assetWriteColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
			RETURNING *
		)
		SELECT `+assetColumns+` FROM a LEFT JOIN categories c ON a.category_id = c.id`,
		assetArgs(in)...))
	if err != nil {
		logger.Error(ctx, "Repository CreateAsset failed", "error", err)
		return nil, classify("create asset", err)
	}
	return &a, nil
}

// Update replaces every writable column of the asset with the given id.
// It returns ErrNotFound when no row matched.
func (r *AssetRepository) Update(ctx context.Context, id int64, in *models.Asset) (*models.Asset, error) {
	if err := requireDB(r.db); err != nil {
		return nil, err
	}
	args := append(assetArgs(in), id)
	a, err := scanAsset(r.db.QueryRowContext(ctx, `WITH a AS (
			UPDATE assets SET
				asset_code = $1,
				asset_name = $2,
				model = $3,
				fa_ledger = $4,
				date_of_purchase = $5,
				cost_of_asset = $6,
				useful_life = $7,
				number_marked = $8,
				quantity = $9,
				assigned_to = $10,
				location = $11,
				closing_stock_rs = $12,
				status = $13,
				remarks = $14,
				category_id = $15,
				is_subscription = $16,
				subscription_vendor = $17,
				subscription_renewal_date = $18,
				subscription_billing_cycle = $19,
				subscription_url = $20
			WHERE id = $21
			RETURNING *
		)
		SELECT `+assetColumns+` FROM a LEFT JOIN categories c ON a.category_id = c.id`,
		args...))
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Error(ctx, "Repository UpdateAsset failed", "error", err, "id", id)
		}
		return nil, classify("update asset", err)
	}
	return &a, nil
}

// Delete removes the asset with the given id, or returns ErrNotFound.
func (r *AssetRepository) Delete(ctx context.Context, id int64) error {
	if err := requireDB(r.db); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		logger.Error(ctx, "Repository DeleteAsset failed", "error", err, "id", id)
		return classify("delete asset", err)
	}
	return rowsAffected("delete asset", res)
}

// Count returns the number of asset rows.
func (r *AssetRepository) Count(ctx context.Context) (int, error) {
	if err := requireDB(r.db); err != nil {
		return 0, err
	}
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assets`).Scan(&n); err != nil {
		return 0, classify("count assets", err)
	}
	return n, nil
}
