package view

import (
	"strings"

	"asset-tracker/internal/models"
)

// Summary holds the dashboard card counts. It is always computed on the
// full collection, never the filtered one.
type Summary struct {
	TotalRecords  int `json:"total_records"`
	TotalQuantity int `json:"total_quantity"`
	Categories    int `json:"categories"`
	InUse         int `json:"in_use"`
	InStorage     int `json:"in_storage"`
	ForRepair     int `json:"for_repair"`
}

func Summarize(assets []models.Asset, categories []models.Category) Summary {
	s := Summary{TotalRecords: len(assets), Categories: len(categories)}
	for _, a := range assets {
		if a.Quantity != nil {
			s.TotalQuantity += *a.Quantity
		}
		switch {
		case strings.EqualFold(a.Status, models.StatusInUse):
			s.InUse++
		case strings.EqualFold(a.Status, models.StatusInStorage):
			s.InStorage++
		case strings.EqualFold(a.Status, models.StatusForRepair):
			s.ForRepair++
		}
	}
	return s
}

// Subscriptions returns the assets flagged as subscriptions, in input order.
func Subscriptions(assets []models.Asset) []models.Asset {
	var out []models.Asset
	for _, a := range assets {
		if a.IsSubscription {
			out = append(out, a)
		}
	}
	return out
}

// MonthlyCost is the monthly share of a subscription's cost. A billing cycle
// mentioning "year" is spread over twelve months; missing cost counts as 0.
func MonthlyCost(a models.Asset) float64 {
	if a.CostOfAsset == nil || *a.CostOfAsset == 0 {
		return 0
	}
	if a.SubscriptionBillingCycle != nil && strings.Contains(strings.ToLower(*a.SubscriptionBillingCycle), "year") {
		return *a.CostOfAsset / 12
	}
	return *a.CostOfAsset
}

// MonthlySubscriptionCost estimates the monthly spend across all subscription assets.
func MonthlySubscriptionCost(assets []models.Asset) float64 {
	var total float64
	for _, a := range Subscriptions(assets) {
		total += MonthlyCost(a)
	}
	return total
}
