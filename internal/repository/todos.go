package repository

import (
	"context"
	"database/sql"

	"asset-tracker/internal/models"
	"asset-tracker/pkg/logger"
)

// TodoRepository reads and writes the to-do list.
type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// List returns all todos, newest first.
func (r *TodoRepository) List(ctx context.Context) ([]models.Todo, error) {
	if err := requireDB(r.db); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, text, done, note FROM todos ORDER BY created_at DESC, id DESC`)
	if err != nil {
		logger.Error(ctx, "Repository ListTodos failed", "error", err)
		return nil, classify("list todos", err)
	}
	defer rows.Close()
	todos := make([]models.Todo, 0)
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.Text, &t.Done, &t.Note); err != nil {
			logger.Error(ctx, "Repository scan todo failed", "error", err)
			return nil, classify("scan todo", err)
		}
		todos = append(todos, t)
	}
	return todos, classify("list todos", rows.Err())
}

// Create inserts a new todo with done=false.
func (r *TodoRepository) Create(ctx context.Context, text string, note *string) (*models.Todo, error) {
	if err := requireDB(r.db); err != nil {
		return nil, err
	}
	var t models.Todo
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO todos (text, note) VALUES ($1, $2) RETURNING id, text, done, note`,
		text, note,
	).Scan(&t.ID, &t.Text, &t.Done, &t.Note)
	if err != nil {
		logger.Error(ctx, "Repository CreateTodo failed", "error", err)
		return nil, classify("create todo", err)
	}
	return &t, nil
}

// Update sets done and note of a todo, or returns ErrNotFound.
func (r *TodoRepository) Update(ctx context.Context, id int64, done bool, note *string) (*models.Todo, error) {
	if err := requireDB(r.db); err != nil {
		return nil, err
	}
	var t models.Todo
	err := r.db.QueryRowContext(ctx,
		`UPDATE todos SET done = $1, note = $2 WHERE id = $3 RETURNING id, text, done, note`,
		done, note, id,
	).Scan(&t.ID, &t.Text, &t.Done, &t.Note)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Error(ctx, "Repository UpdateTodo failed", "error", err, "id", id)
		}
		return nil, classify("update todo", err)
	}
	return &t, nil
}

// Delete removes a todo by id, or returns ErrNotFound.
func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	if err := requireDB(r.db); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		logger.Error(ctx, "Repository DeleteTodo failed", "error", err, "id", id)
		return classify("delete todo", err)
	}
	return rowsAffected("delete todo", res)
}
