// Package view derives what the inventory screens show from a snapshot of
// assets and categories. Everything here is a pure function of its inputs.
package view

import (
	"strings"

	"asset-tracker/internal/models"
)

// AllCategories selects every asset regardless of category.
const AllCategories = "All"

// StatusFilter is the dashboard quick filter. The zero value filters nothing.
type StatusFilter string

const (
	StatusAll       StatusFilter = ""
	StatusInUse     StatusFilter = "in_use"
	StatusInStorage StatusFilter = "in_storage"
	StatusForRepair StatusFilter = "for_repair"
)

var statusTargets = map[StatusFilter]string{
	StatusInUse:     "in use",
	StatusInStorage: "in storage",
	StatusForRepair: "for repair",
}

// ParseStatusFilter accepts the filter keys and the human status names ("In Use").
func ParseStatusFilter(s string) (StatusFilter, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "", "all":
		return StatusAll, true
	}
	key = strings.ReplaceAll(strings.ReplaceAll(key, " ", "_"), "-", "_")
	f := StatusFilter(key)
	if _, ok := statusTargets[f]; !ok {
		return StatusAll, false
	}
	return f, true
}

// Toggle returns the filter after clicking card: the active card clears it,
// any other card activates.
func (f StatusFilter) Toggle(card StatusFilter) StatusFilter {
	if card == f {
		return StatusAll
	}
	return card
}

// Target is the lower-cased status the filter matches, or "" for no filter.
func (f StatusFilter) Target() string { return statusTargets[f] }

// Filter is the UI filter state.
type Filter struct {
	Category string
	Search   string
	Status   StatusFilter
}

// Matches reports whether a passes the category, search and status checks.
func (f Filter) Matches(a models.Asset) bool {
	return f.categoryMatch(a) && f.searchMatch(a) && f.statusMatch(a)
}

func (f Filter) categoryMatch(a models.Asset) bool {
	if f.Category == "" || f.Category == AllCategories {
		return true
	}
	return a.Category != nil && *a.Category == f.Category
}

func (f Filter) searchMatch(a models.Asset) bool {
	if f.Search == "" {
		return true
	}
	term := strings.ToLower(f.Search)
	contains := func(s *string) bool {
		return s != nil && strings.Contains(strings.ToLower(*s), term)
	}
	return strings.Contains(strings.ToLower(a.AssetName), term) ||
		strings.Contains(strings.ToLower(a.AssetCode), term) ||
		contains(a.AssignedTo) ||
		contains(a.Location)
}

func (f Filter) statusMatch(a models.Asset) bool {
	target := f.Status.Target()
	if target == "" {
		return true
	}
	return strings.ToLower(strings.TrimSpace(a.Status)) == target
}

// Apply returns the assets that match f, in their original order.
func (f Filter) Apply(assets []models.Asset) []models.Asset {
	out := make([]models.Asset, 0, len(assets))
	for _, a := range assets {
		if f.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}
