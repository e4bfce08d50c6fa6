package inventory

import (
	"context"
	"errors"
	"strings"

	"asset-tracker/internal/models"
	"asset-tracker/internal/view"
)

var (
	ErrBlankCategory     = errors.New("category name is required")
	ErrDuplicateCategory = errors.New("category already exists")
)

const (
	keyAddAsset       = "asset:add"
	keyEditAsset      = "asset:edit"
	keyDeleteAsset    = "asset:delete"
	keyAddCategory    = "category:add"
	keyDeleteCategory = "category:delete"
)

// Session is the state behind the main asset screen. The UI fields are meant
// to be driven from a single goroutine; Store, modals and delete slots are
// safe to share.
type Session struct {
	api   API
	Store *Store

	Filter view.Filter
	Sort   view.Sort

	AddModal       *Modal
	EditModal      *Modal
	AssetDelete    *PendingDelete
	CategoryDelete *PendingDelete
}

func NewSession(api API) *Session {
	st := NewStore(api)
	return &Session{
		api:            api,
		Store:          st,
		Filter:         view.Filter{Category: view.AllCategories},
		AddModal:       newModal(st, keyAddAsset),
		EditModal:      newModal(st, keyEditAsset),
		AssetDelete:    newPendingDelete(st, keyDeleteAsset, api.DeleteAsset),
		CategoryDelete: newPendingDelete(st, keyDeleteCategory, api.DeleteCategory),
	}
}

func (s *Session) Load(ctx context.Context) error { return s.Store.Load(ctx) }

// Visible is the filtered and sorted asset list.
func (s *Session) Visible() []models.Asset {
	return view.Visible(s.Store.Snapshot().Assets, s.Filter, s.Sort)
}

// Dashboard summarizes the full collection, ignoring the filter.
func (s *Session) Dashboard() view.Summary {
	snap := s.Store.Snapshot()
	return view.Summarize(snap.Assets, snap.Categories)
}

func (s *Session) SelectCategory(name string) { s.Filter.Category = name }

func (s *Session) SetSearch(term string) { s.Filter.Search = term }

// ToggleStatus handles a click on a dashboard status card.
func (s *Session) ToggleStatus(card view.StatusFilter) {
	s.Filter.Status = s.Filter.Status.Toggle(card)
}

// ToggleSort handles a click on a column header.
func (s *Session) ToggleSort(key view.SortKey) {
	s.Sort = s.Sort.Toggle(key)
}

// AddCategory creates a category unless the name is blank or already used
// (case-insensitive), in which case nothing is sent.
func (s *Session) AddCategory(ctx context.Context, name string, description *string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrBlankCategory
	}
	for _, c := range s.Store.Snapshot().Categories {
		if strings.EqualFold(c.Name, name) {
			return ErrDuplicateCategory
		}
	}
	return s.Store.Mutate(ctx, keyAddCategory, func(ctx context.Context) error {
		_, err := s.api.CreateCategory(ctx, name, description)
		return err
	})
}

// RequestCategoryDelete opens the category delete prompt.
func (s *Session) RequestCategoryDelete(id int64) { s.CategoryDelete.Request(id) }

// ConfirmCategoryDelete deletes the pending category. On success the
// category selection goes back to All, as the deleted one may be selected.
func (s *Session) ConfirmCategoryDelete(ctx context.Context) error {
	if _, err := s.CategoryDelete.Confirm(ctx); err != nil {
		return err
	}
	s.Filter.Category = view.AllCategories
	return nil
}

func (s *Session) OpenAdd() { s.AddModal.Open(nil) }

// AddAsset submits the add form.
func (s *Session) AddAsset(ctx context.Context, a *models.Asset) error {
	return s.AddModal.Submit(ctx, func(ctx context.Context) error {
		_, err := s.api.CreateAsset(ctx, a)
		return err
	})
}

// SelectAsset opens the edit form for a.
func (s *Session) SelectAsset(a models.Asset) { s.EditModal.Open(&a) }

// UpdateAsset submits the edit form.
func (s *Session) UpdateAsset(ctx context.Context, a *models.Asset) error {
	return s.EditModal.Submit(ctx, func(ctx context.Context) error {
		_, err := s.api.UpdateAsset(ctx, a.ID, a)
		return err
	})
}

// RequestAssetDelete opens the asset delete prompt and closes the edit form
// if it shows the same asset.
func (s *Session) RequestAssetDelete(id int64) {
	s.AssetDelete.Request(id)
	if t := s.EditModal.Target(); t != nil && t.ID == id {
		s.EditModal.Close()
	}
}

func (s *Session) ConfirmAssetDelete(ctx context.Context) error {
	_, err := s.AssetDelete.Confirm(ctx)
	return err
}
