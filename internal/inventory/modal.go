package inventory

import (
	"context"
	"errors"
	"sync"

	"asset-tracker/internal/models"
)

var ErrModalClosed = errors.New("modal is not open")

// Modal is an add or edit form. Submitting goes through the store under the
// modal's key, so a second submit while the first is pending is rejected.
type Modal struct {
	store *Store
	key   string

	mu     sync.Mutex
	open   bool
	target *models.Asset
}

func newModal(store *Store, key string) *Modal {
	return &Modal{store: store, key: key}
}

// Open shows the modal, optionally bound to the asset being edited.
func (m *Modal) Open(target *models.Asset) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
	m.target = target
}

func (m *Modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
	m.target = nil
}

func (m *Modal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Target is the asset the modal was opened for, or nil.
func (m *Modal) Target() *models.Asset {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target
}

// Submitting reports whether a submit is waiting on the server.
func (m *Modal) Submitting() bool {
	return m.store.InFlight(m.key)
}

// Submit runs op through the store. Success closes the modal; failure keeps
// it open with its data.
func (m *Modal) Submit(ctx context.Context, op func(ctx context.Context) error) error {
	if !m.IsOpen() {
		return ErrModalClosed
	}
	if err := m.store.Mutate(ctx, m.key, op); err != nil {
		return err
	}
	m.Close()
	return nil
}
