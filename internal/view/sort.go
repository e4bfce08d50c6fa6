package view

import (
	"fmt"
	"slices"
	"strings"

	"asset-tracker/internal/models"
)

type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// SortKey names a sortable asset column by its JSON field name.
type SortKey string

const (
	SortNone           SortKey = ""
	SortAssetCode      SortKey = "asset_code"
	SortAssetName      SortKey = "asset_name"
	SortStatus         SortKey = "status"
	SortQuantity       SortKey = "quantity"
	SortLocation       SortKey = "location"
	SortAssignedTo     SortKey = "assigned_to"
	SortCostOfAsset    SortKey = "cost_of_asset"
	SortClosingStockRs SortKey = "closing_stock_rs"
	SortCategory       SortKey = "category"
)

// SortKeys lists every key Sort understands.
var SortKeys = []SortKey{
	SortAssetCode, SortAssetName, SortStatus, SortQuantity, SortLocation,
	SortAssignedTo, SortCostOfAsset, SortClosingStockRs, SortCategory,
}

// ParseSortKey validates a key given on the command line.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys, k) {
		return k, nil
	}
	return SortNone, fmt.Errorf("unknown sort key %q", s)
}

func (k SortKey) numeric() bool {
	switch k {
	case SortQuantity, SortCostOfAsset, SortClosingStockRs:
		return true
	}
	return false
}

// Sort is the column sort state. The zero value keeps server order.
type Sort struct {
	Key       SortKey
	Direction Direction
}

// Toggle returns the state after clicking key: the same key flips the
// direction, a new key starts ascending.
func (s Sort) Toggle(key SortKey) Sort {
	if s.Key == key {
		if s.Direction == Ascending {
			return Sort{Key: key, Direction: Descending}
		}
		return Sort{Key: key, Direction: Ascending}
	}
	return Sort{Key: key, Direction: Ascending}
}

// Apply returns a sorted copy of assets. Equal keys keep their input order.
func (s Sort) Apply(assets []models.Asset) []models.Asset {
	out := slices.Clone(assets)
	if s.Key == SortNone {
		return out
	}
	slices.SortStableFunc(out, func(a, b models.Asset) int {
		c := compare(s.Key, a, b)
		if s.Direction == Descending {
			return -c
		}
		return c
	})
	return out
}

func compare(key SortKey, a, b models.Asset) int {
	if key.numeric() {
		x, y := number(key, a), number(key, b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	return strings.Compare(strings.ToLower(text(key, a)), strings.ToLower(text(key, b)))
}

func number(key SortKey, a models.Asset) float64 {
	switch key {
	case SortQuantity:
		if a.Quantity != nil {
			return float64(*a.Quantity)
		}
	case SortCostOfAsset:
		if a.CostOfAsset != nil {
			return *a.CostOfAsset
		}
	case SortClosingStockRs:
		if a.ClosingStockRs != nil {
			return *a.ClosingStockRs
		}
	}
	return 0
}

func text(key SortKey, a models.Asset) string {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	switch key {
	case SortAssetCode:
		return a.AssetCode
	case SortAssetName:
		return a.AssetName
	case SortStatus:
		return a.Status
	case SortLocation:
		return deref(a.Location)
	case SortAssignedTo:
		return deref(a.AssignedTo)
	case SortCategory:
		return deref(a.Category)
	}
	return ""
}

// Visible filters then sorts.
func Visible(assets []models.Asset, f Filter, s Sort) []models.Asset {
	return s.Apply(f.Apply(assets))
}
