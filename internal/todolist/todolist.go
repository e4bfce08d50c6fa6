// Package todolist keeps the client copy of the to-do list in step with the
// server. Unlike the asset screens it patches its slice from each response
// and reports failures as a short message for the user.
package todolist

import (
	"context"
	"errors"
	"strings"
	"sync"

	"asset-tracker/internal/models"
	"asset-tracker/pkg/logger"
)

// Messages shown to the user when a request fails.
const (
	MsgLoadFailed   = "Unable to load tasks from the server."
	MsgAddFailed    = "Unable to add task right now."
	MsgToggleFailed = "Unable to update task status."
	MsgNoteFailed   = "Unable to save note."
	MsgDeleteFailed = "Unable to delete task."
)

var ErrUnknownTodo = errors.New("todo is not in the list")

type API interface {
	ListTodos(ctx context.Context) ([]models.Todo, error)
	CreateTodo(ctx context.Context, text string) (*models.Todo, error)
	UpdateTodo(ctx context.Context, id int64, done bool, note *string) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id int64) error
}

// List is safe for concurrent use.
type List struct {
	api API

	mu    sync.Mutex
	items []models.Todo
	msg   string
}

func New(api API) *List {
	return &List{api: api}
}

// Items returns a copy of the list, newest first.
func (l *List) Items() []models.Todo {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Todo, len(l.items))
	copy(out, l.items)
	return out
}

// Error is the message from the last failed request, or "".
func (l *List) Error() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.msg
}

func (l *List) fail(ctx context.Context, msg string, err error, args ...any) error {
	logger.Error(ctx, msg, append([]any{"error", err}, args...)...)
	l.mu.Lock()
	l.msg = msg
	l.mu.Unlock()
	return err
}

func (l *List) find(id int64) (models.Todo, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.items {
		if t.ID == id {
			return t, true
		}
	}
	return models.Todo{}, false
}

func (l *List) replace(updated models.Todo) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		if l.items[i].ID == updated.ID {
			l.items[i] = updated
		}
	}
}

// Load replaces the list with the server's.
func (l *List) Load(ctx context.Context) error {
	l.mu.Lock()
	l.msg = ""
	l.mu.Unlock()

	todos, err := l.api.ListTodos(ctx)
	if err != nil {
		return l.fail(ctx, MsgLoadFailed, err)
	}
	if todos == nil {
		todos = []models.Todo{}
	}
	l.mu.Lock()
	l.items = todos
	l.mu.Unlock()
	return nil
}

// Add creates a todo from the trimmed text and puts it first. Blank text is ignored.
func (l *List) Add(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	created, err := l.api.CreateTodo(ctx, text)
	if err != nil {
		return l.fail(ctx, MsgAddFailed, err)
	}
	l.mu.Lock()
	l.items = append([]models.Todo{*created}, l.items...)
	l.mu.Unlock()
	return nil
}

// Toggle flips done and keeps the note.
func (l *List) Toggle(ctx context.Context, id int64) error {
	item, ok := l.find(id)
	if !ok {
		return ErrUnknownTodo
	}
	updated, err := l.api.UpdateTodo(ctx, id, !item.Done, item.Note)
	if err != nil {
		return l.fail(ctx, MsgToggleFailed, err, "id", id)
	}
	l.replace(*updated)
	return nil
}

// SaveNote stores the trimmed note; a blank note clears it.
func (l *List) SaveNote(ctx context.Context, id int64, note string) error {
	item, ok := l.find(id)
	if !ok {
		return ErrUnknownTodo
	}
	l.mu.Lock()
	l.msg = ""
	l.mu.Unlock()

	var notePtr *string
	if trimmed := strings.TrimSpace(note); trimmed != "" {
		notePtr = &trimmed
	}
	updated, err := l.api.UpdateTodo(ctx, id, item.Done, notePtr)
	if err != nil {
		return l.fail(ctx, MsgNoteFailed, err, "id", id)
	}
	l.replace(*updated)
	return nil
}

func (l *List) Delete(ctx context.Context, id int64) error {
	if err := l.api.DeleteTodo(ctx, id); err != nil {
		return l.fail(ctx, MsgDeleteFailed, err, "id", id)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.items[:0]
	for _, t := range l.items {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	l.items = kept
	return nil
}
