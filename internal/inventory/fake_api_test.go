package inventory

import (
	"context"
	"errors"
	"sync"

	"asset-tracker/internal/models"
)

var errServer = errors.New("api: status 500: Internal Server Error")

// fakeAPI is an in-memory backend. Hooks let a test block or fail single calls.
type fakeAPI struct {
	mu         sync.Mutex
	nextID     int64
	assets     []models.Asset
	categories []models.Category
	calls      map[string]int

	failAssets     error
	failCategories error
	failMutations  error
	beforeList     func(call int)
	beforeMutation func()
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{nextID: 100, calls: map[string]int{}}
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) record(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.calls[name]
}

func (f *fakeAPI) mutation(name string) error {
	f.record(name)
	if f.beforeMutation != nil {
		f.beforeMutation()
	}
	return f.failMutations
}

func (f *fakeAPI) ListAssets(context.Context) ([]models.Asset, error) {
	call := f.record("ListAssets")
	if f.beforeList != nil {
		f.beforeList(call)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAssets != nil {
		return nil, f.failAssets
	}
	out := make([]models.Asset, len(f.assets))
	copy(out, f.assets)
	for i := range out {
		out[i].Category = nil
		for _, c := range f.categories {
			if out[i].CategoryID != nil && *out[i].CategoryID == c.ID {
				name := c.Name
				out[i].Category = &name
			}
		}
	}
	return out, nil
}

func (f *fakeAPI) ListCategories(context.Context) ([]models.Category, error) {
	f.record("ListCategories")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCategories != nil {
		return nil, f.failCategories
	}
	out := make([]models.Category, len(f.categories))
	copy(out, f.categories)
	return out, nil
}

func (f *fakeAPI) CreateAsset(_ context.Context, a *models.Asset) (*models.Asset, error) {
	if err := f.mutation("CreateAsset"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	stored := *a
	stored.ID = f.nextID
	f.assets = append(f.assets, stored)
	return &stored, nil
}

func (f *fakeAPI) UpdateAsset(_ context.Context, id int64, a *models.Asset) (*models.Asset, error) {
	if err := f.mutation("UpdateAsset"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.assets {
		if f.assets[i].ID == id {
			f.assets[i] = *a
			f.assets[i].ID = id
			return &f.assets[i], nil
		}
	}
	return nil, errors.New("api: status 404: Asset not found")
}

func (f *fakeAPI) DeleteAsset(_ context.Context, id int64) error {
	if err := f.mutation("DeleteAsset"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.assets {
		if f.assets[i].ID == id {
			f.assets = append(f.assets[:i], f.assets[i+1:]...)
			return nil
		}
	}
	return errors.New("api: status 404: Asset not found")
}

func (f *fakeAPI) CreateCategory(_ context.Context, name string, description *string) (*models.Category, error) {
	if err := f.mutation("CreateCategory"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c := models.Category{ID: f.nextID, Name: name, Description: description}
	f.categories = append(f.categories, c)
	return &c, nil
}

func (f *fakeAPI) DeleteCategory(_ context.Context, id int64) error {
	if err := f.mutation("DeleteCategory"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			for j := range f.assets {
				if f.assets[j].CategoryID != nil && *f.assets[j].CategoryID == id {
					f.assets[j].CategoryID = nil
				}
			}
			return nil
		}
	}
	return errors.New("api: status 404: Category not found")
}
