package controller_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"asset-tracker/internal/cache"
	"asset-tracker/internal/models"
	"asset-tracker/internal/repository"
)

// memStore mimics the postgres repositories, including ON DELETE SET NULL.
type memStore struct {
	mu         sync.Mutex
	nextID     int64
	assets     map[int64]models.Asset
	categories map[int64]models.Category
	todos      []models.Todo
	failWith   error

	// listLoaded and listRelease hold the next asset List after it has read
	// its rows, until the test closes listRelease.
	listLoaded  chan struct{}
	listRelease chan struct{}
}

func newMemStore() *memStore {
	return &memStore{
		assets:     map[int64]models.Asset{},
		categories: map[int64]models.Category{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) join(a models.Asset) models.Asset {
	a.Category = nil
	if a.CategoryID != nil {
		if c, ok := m.categories[*a.CategoryID]; ok {
			name := c.Name
			a.Category = &name
		}
	}
	return a
}

type memAssets struct{ *memStore }
type memCategories struct{ *memStore }
type memTodos struct{ *memStore }

func (s memAssets) List(context.Context) ([]models.Asset, error) {
	s.mu.Lock()
	if s.failWith != nil {
		s.mu.Unlock()
		return nil, s.failWith
	}
	out := make([]models.Asset, 0, len(s.assets))
	for _, a := range s.assets {
		out = append(out, s.join(a))
	}
	loaded, release := s.listLoaded, s.listRelease
	s.listLoaded, s.listRelease = nil, nil
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].AssetName < out[j].AssetName })
	if loaded != nil {
		close(loaded)
		<-release
	}
	return out, nil
}

// holdNextAssetList makes the next asset List block after reading its rows.
// release may be called more than once.
func (m *memStore) holdNextAssetList() (loaded <-chan struct{}, release func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, r := make(chan struct{}), make(chan struct{})
	m.listLoaded, m.listRelease = l, r
	var once sync.Once
	return l, func() { once.Do(func() { close(r) }) }
}

func (s memAssets) Get(_ context.Context, id int64) (*models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a = s.join(a)
	return &a, nil
}

func (s memAssets) checkCategory(a *models.Asset) error {
	if a.CategoryID == nil {
		return nil
	}
	if _, ok := s.categories[*a.CategoryID]; !ok {
		return repository.ErrInvalidReference
	}
	return nil
}

func (s memAssets) Create(_ context.Context, a *models.Asset) (*models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	if err := s.checkCategory(a); err != nil {
		return nil, err
	}
	stored := *a
	stored.ID = s.id()
	s.assets[stored.ID] = stored
	out := s.join(stored)
	return &out, nil
}

func (s memAssets) Update(_ context.Context, id int64, a *models.Asset) (*models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[id]; !ok {
		return nil, repository.ErrNotFound
	}
	if err := s.checkCategory(a); err != nil {
		return nil, err
	}
	stored := *a
	stored.ID = id
	s.assets[id] = stored
	out := s.join(stored)
	return &out, nil
}

func (s memAssets) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.assets, id)
	return nil
}

func (s memCategories) List(context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, models.Category{ID: c.ID, Name: c.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s memCategories) Create(_ context.Context, name string, description *string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.Name == name {
			return nil, repository.ErrDuplicate
		}
	}
	c := models.Category{ID: s.id(), Name: name, Description: description}
	s.categories[c.ID] = c
	return &c, nil
}

func (s memCategories) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.categories, id)
	for aid, a := range s.assets {
		if a.CategoryID != nil && *a.CategoryID == id {
			a.CategoryID = nil
			s.assets[aid] = a
		}
	}
	return nil
}

func (s memTodos) List(context.Context) ([]models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := make([]models.Todo, len(s.todos))
	for i, t := range s.todos {
		out[len(s.todos)-1-i] = t
	}
	return out, nil
}

func (s memTodos) Create(_ context.Context, text string, note *string) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := models.Todo{ID: s.id(), Text: text, Note: note}
	s.todos = append(s.todos, t)
	return &t, nil
}

func (s memTodos) Update(_ context.Context, id int64, done bool, note *string) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos[i].Done = done
			s.todos[i].Note = note
			t := s.todos[i]
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s memTodos) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// memCache is an in-process ListCache.
type memCache struct {
	mu          sync.Mutex
	data        map[string][]byte
	gens        map[string]int64
	invalidated []string
	pingErr     error
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, gens: map[string]int64{}}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	return b, ok
}

func (c *memCache) Generation(_ context.Context, key string) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[key], true
}

func (c *memCache) SetIfGeneration(_ context.Context, key string, b []byte, gen int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[key] == gen {
		c.data[key] = b
	}
}

func (c *memCache) Invalidate(_ context.Context, entity string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, entity)
	for _, k := range cache.KeysFor(entity) {
		c.gens[k]++
		delete(c.data, k)
	}
}

func (c *memCache) Ping(context.Context) error { return c.pingErr }

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.ChangeEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev *models.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, *ev)
	return p.err
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

var errBoom = errors.New("pq: connection refused")
