package inventory

import (
	"context"
	"errors"
	"sync"
)

var ErrNothingPending = errors.New("no delete pending")

// PendingDelete is a two-step delete. Request only records the target;
// nothing is sent until Confirm.
type PendingDelete struct {
	store *Store
	key   string
	del   func(ctx context.Context, id int64) error

	mu      sync.Mutex
	id      int64
	pending bool
}

func newPendingDelete(store *Store, key string, del func(ctx context.Context, id int64) error) *PendingDelete {
	return &PendingDelete{store: store, key: key, del: del}
}

// Request records id and opens the confirmation prompt.
func (p *PendingDelete) Request(id int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.id = id
	p.pending = true
}

// Cancel closes the prompt without a request.
func (p *PendingDelete) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.id = 0
	p.pending = false
}

// Pending returns the id awaiting confirmation.
func (p *PendingDelete) Pending() (int64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id, p.pending
}

// Confirm sends the DELETE. The prompt closes whatever the outcome.
func (p *PendingDelete) Confirm(ctx context.Context) (int64, error) {
	p.mu.Lock()
	id, ok := p.id, p.pending
	p.mu.Unlock()
	if !ok {
		return 0, ErrNothingPending
	}
	err := p.store.Mutate(ctx, p.key, func(ctx context.Context) error {
		return p.del(ctx, id)
	})
	if errors.Is(err, ErrInFlight) {
		return id, err
	}
	p.Cancel()
	return id, err
}
