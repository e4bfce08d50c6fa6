// Package inventory holds the client-side state of the asset screens: the
// fetched snapshot, the UI filter and sort, modals and delete confirmations.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"asset-tracker/internal/models"
	"asset-tracker/pkg/logger"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrInFlight is returned when a mutation with the same key has not finished.
	ErrInFlight = errors.New("request already in flight")
	// ErrStale is returned by Load when a newer load was issued before it finished.
	ErrStale = errors.New("superseded by a newer load")
)

// API is the subset of the REST client the store needs.
type API interface {
	ListAssets(ctx context.Context) ([]models.Asset, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateAsset(ctx context.Context, a *models.Asset) (*models.Asset, error)
	UpdateAsset(ctx context.Context, id int64, a *models.Asset) (*models.Asset, error)
	DeleteAsset(ctx context.Context, id int64) error
	CreateCategory(ctx context.Context, name string, description *string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// Snapshot is one consistent result of fetching both collections.
type Snapshot struct {
	Assets     []models.Asset
	Categories []models.Category
	// Seq is the load that produced this snapshot; 0 before the first load.
	Seq uint64
}

// Store owns the authoritative snapshot. It is safe for concurrent use.
type Store struct {
	api API

	mu       sync.Mutex
	snap     Snapshot
	issued   uint64
	inFlight map[string]bool
}

func NewStore(api API) *Store {
	return &Store{api: api, inFlight: map[string]bool{}}
}

// Snapshot returns the current state. Callers must not modify the slices.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Load fetches assets and categories concurrently and replaces the snapshot
// once both succeed. A failure leaves the previous snapshot in place. If
// another Load was issued after this one, the result is dropped and ErrStale
// returned.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	var (
		assets     []models.Asset
		categories []models.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assets, err = s.api.ListAssets(gctx)
		if err != nil {
			return fmt.Errorf("list assets: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = s.api.ListCategories(gctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error(ctx, "Failed to fetch data", "error", err, "seq", seq)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.issued {
		logger.Debug(ctx, "Dropping stale load", "seq", seq, "latest", s.issued)
		return ErrStale
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	if categories == nil {
		categories = []models.Category{}
	}
	s.snap = Snapshot{Assets: assets, Categories: categories, Seq: seq}
	return nil
}

// InFlight reports whether a mutation with key is running.
func (s *Store) InFlight(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[key]
}

// Mutate runs op, one request, and reloads everything when it succeeds. A
// second call with the same key while op runs gets ErrInFlight without
// sending anything. A failed op is logged and leaves the snapshot alone. A
// failed reload is logged by Load and does not fail the mutation.
func (s *Store) Mutate(ctx context.Context, key string, op func(ctx context.Context) error) error {
	s.mu.Lock()
	if s.inFlight[key] {
		s.mu.Unlock()
		return ErrInFlight
	}
	s.inFlight[key] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, key)
		s.mu.Unlock()
	}()

	if err := op(ctx); err != nil {
		logger.Error(ctx, "Mutation failed", "key", key, "error", err)
		return err
	}
	if err := s.Load(ctx); err != nil && !errors.Is(err, ErrStale) {
		logger.Warn(ctx, "Reload after mutation failed", "key", key, "error", err)
	}
	return nil
}
