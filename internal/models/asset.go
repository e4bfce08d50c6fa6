package models

import "strings"

// Known asset statuses. Status is free text; these are the values the dashboard counts.
const (
	StatusInUse     = "In Use"
	StatusInStorage = "In Storage"
	StatusForRepair = "For Repair"
)

// Asset is a trackable inventory record (equipment or subscription).
// Category is filled from a join on categories and is never written.
type Asset struct {
	ID                       int64    `json:"id"`
	AssetCode                string   `json:"asset_code"`
	AssetName                string   `json:"asset_name"`
	Model                    *string  `json:"model"`
	FALedger                 *string  `json:"fa_ledger"`
	DateOfPurchase           *string  `json:"date_of_purchase"`
	CostOfAsset              *float64 `json:"cost_of_asset"`
	UsefulLife               *string  `json:"useful_life"`
	NumberMarked             *string  `json:"number_marked"`
	Quantity                 *int     `json:"quantity"`
	AssignedTo               *string  `json:"assigned_to"`
	Location                 *string  `json:"location"`
	ClosingStockRs           *float64 `json:"closing_stock_rs"`
	Status                   string   `json:"status"`
	Remarks                  *string  `json:"remarks"`
	CategoryID               *int64   `json:"category_id"`
	Category                 *string  `json:"category"`
	IsSubscription           bool     `json:"is_subscription"`
	SubscriptionVendor       *string  `json:"subscription_vendor"`
	SubscriptionRenewalDate  *string  `json:"subscription_renewal_date"`
	SubscriptionBillingCycle *string  `json:"subscription_billing_cycle"`
	SubscriptionURL          *string  `json:"subscription_url"`
}

// Normalize turns blank optional text into nil and defaults a blank status to
// In Storage. Non-blank values are stored as sent.
func (a *Asset) Normalize() {
	if strings.TrimSpace(a.Status) == "" {
		a.Status = StatusInStorage
	}
	for _, p := range []**string{
		&a.Model, &a.FALedger, &a.DateOfPurchase, &a.UsefulLife, &a.NumberMarked,
		&a.AssignedTo, &a.Location, &a.Remarks, &a.SubscriptionVendor,
		&a.SubscriptionRenewalDate, &a.SubscriptionBillingCycle, &a.SubscriptionURL,
	} {
		*p = NullIfBlank(*p)
	}
	a.Category = nil
}

// NullIfBlank returns nil for nil or whitespace-only strings.
func NullIfBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// MissingRequired reports whether asset_code or asset_name is blank.
func (a *Asset) MissingRequired() bool {
	return strings.TrimSpace(a.AssetCode) == "" || strings.TrimSpace(a.AssetName) == ""
}

// String returns a pointer to s, for building optional fields.
func String(s string) *string { return &s }
