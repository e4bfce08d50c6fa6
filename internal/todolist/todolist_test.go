package todolist

import (
	"context"
	"errors"
	"testing"

	"asset-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDown = errors.New("connection refused")

type update struct {
	id   int64
	done bool
	note *string
}

type fakeAPI struct {
	todos   []models.Todo
	nextID  int64
	fail    error
	updates []update
	creates []string
}

func (f *fakeAPI) ListTodos(context.Context) ([]models.Todo, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return append([]models.Todo(nil), f.todos...), nil
}

func (f *fakeAPI) CreateTodo(_ context.Context, text string) (*models.Todo, error) {
	f.creates = append(f.creates, text)
	if f.fail != nil {
		return nil, f.fail
	}
	f.nextID++
	t := models.Todo{ID: f.nextID, Text: text}
	f.todos = append([]models.Todo{t}, f.todos...)
	return &t, nil
}

func (f *fakeAPI) UpdateTodo(_ context.Context, id int64, done bool, note *string) (*models.Todo, error) {
	f.updates = append(f.updates, update{id, done, note})
	if f.fail != nil {
		return nil, f.fail
	}
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos[i].Done = done
			f.todos[i].Note = note
			t := f.todos[i]
			return &t, nil
		}
	}
	return nil, errors.New("api: status 404: Todo not found")
}

func (f *fakeAPI) DeleteTodo(_ context.Context, id int64) error {
	if f.fail != nil {
		return f.fail
	}
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return nil
		}
	}
	return errors.New("api: status 404: Todo not found")
}

func note(s string) *string { return &s }

func TestLoad(t *testing.T) {
	api := &fakeAPI{todos: []models.Todo{{ID: 2, Text: "b"}, {ID: 1, Text: "a"}}}
	l := New(api)
	require.NoError(t, l.Load(context.Background()))
	assert.Len(t, l.Items(), 2)
	assert.Empty(t, l.Error())

	api.fail = errDown
	assert.ErrorIs(t, l.Load(context.Background()), errDown)
	assert.Equal(t, MsgLoadFailed, l.Error())
	assert.Len(t, l.Items(), 2, "failed load keeps the list")

	api.fail = nil
	require.NoError(t, l.Load(context.Background()))
	assert.Empty(t, l.Error(), "load clears the message")
}

func TestAdd(t *testing.T) {
	api := &fakeAPI{todos: []models.Todo{{ID: 1, Text: "old"}}, nextID: 1}
	l := New(api)
	require.NoError(t, l.Load(context.Background()))

	require.NoError(t, l.Add(context.Background(), "  renew licence "))
	items := l.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "renew licence", items[0].Text)
	assert.Equal(t, []string{"renew licence"}, api.creates)

	require.NoError(t, l.Add(context.Background(), "   "))
	assert.Len(t, api.creates, 1, "blank text sends nothing")

	api.fail = errDown
	assert.Error(t, l.Add(context.Background(), "x"))
	assert.Equal(t, MsgAddFailed, l.Error())
	assert.Len(t, l.Items(), 2)
}

func TestToggleKeepsNote(t *testing.T) {
	api := &fakeAPI{todos: []models.Todo{{ID: 1, Text: "a", Note: note("keep")}}}
	l := New(api)
	require.NoError(t, l.Load(context.Background()))

	require.NoError(t, l.Toggle(context.Background(), 1))
	require.Len(t, api.updates, 1)
	assert.True(t, api.updates[0].done)
	assert.Equal(t, "keep", *api.updates[0].note)
	assert.True(t, l.Items()[0].Done)

	assert.ErrorIs(t, l.Toggle(context.Background(), 99), ErrUnknownTodo)
	assert.Len(t, api.updates, 1)

	api.fail = errDown
	assert.Error(t, l.Toggle(context.Background(), 1))
	assert.Equal(t, MsgToggleFailed, l.Error())
	assert.True(t, l.Items()[0].Done, "failed toggle leaves the item")
}

func TestSaveNote(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *string
	}{
		{"trimmed", "  called vendor ", note("called vendor")},
		{"blank clears", "   ", nil},
		{"empty clears", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{todos: []models.Todo{{ID: 1, Text: "a", Done: true, Note: note("old")}}}
			l := New(api)
			require.NoError(t, l.Load(context.Background()))

			require.NoError(t, l.SaveNote(context.Background(), 1, tt.in))
			require.Len(t, api.updates, 1)
			assert.True(t, api.updates[0].done, "done is preserved")
			assert.Equal(t, tt.want, api.updates[0].note)
			assert.Equal(t, tt.want, l.Items()[0].Note)
		})
	}
}

func TestSaveNoteFailure(t *testing.T) {
	api := &fakeAPI{todos: []models.Todo{{ID: 1, Text: "a"}}}
	l := New(api)
	require.NoError(t, l.Load(context.Background()))

	api.fail = errDown
	assert.Error(t, l.SaveNote(context.Background(), 1, "x"))
	assert.Equal(t, MsgNoteFailed, l.Error())
	assert.Nil(t, l.Items()[0].Note)
}

func TestDelete(t *testing.T) {
	api := &fakeAPI{todos: []models.Todo{{ID: 2, Text: "b"}, {ID: 1, Text: "a"}}}
	l := New(api)
	require.NoError(t, l.Load(context.Background()))

	require.NoError(t, l.Delete(context.Background(), 2))
	items := l.Items()
	require.Len(t, items, 1)
	assert.EqualValues(t, 1, items[0].ID)

	assert.Error(t, l.Delete(context.Background(), 2))
	assert.Equal(t, MsgDeleteFailed, l.Error())
	assert.Len(t, l.Items(), 1)
}
