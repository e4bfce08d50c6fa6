package repository

import (
	"context"
	"database/sql"

	"asset-tracker/internal/models"
	"asset-tracker/pkg/logger"
)

// CategoryRepository reads and writes categories.
type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns id and name of every category ordered by name. Descriptions are not loaded.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	if err := requireDB(r.db); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		logger.Error(ctx, "Repository ListCategories failed", "error", err)
		return nil, classify("list categories", err)
	}
	defer rows.Close()
	categories := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, classify("scan category", err)
		}
		categories = append(categories, c)
	}
	return categories, classify("list categories", rows.Err())
}

// Create inserts a category. A name that already exists yields ErrDuplicate.
func (r *CategoryRepository) Create(ctx context.Context, name string, description *string) (*models.Category, error) {
	if err := requireDB(r.db); err != nil {
		return nil, err
	}
	var c models.Category
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id, name, description`,
		name, models.NullIfBlank(description),
	).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		logger.Error(ctx, "Repository CreateCategory failed", "error", err, "name", name)
		return nil, classify("create category", err)
	}
	return &c, nil
}

// Delete removes a category. The assets.category_id foreign key is ON DELETE SET NULL,
// so dependent assets lose their category in the same statement.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	if err := requireDB(r.db); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		logger.Error(ctx, "Repository DeleteCategory failed", "error", err, "id", id)
		return classify("delete category", err)
	}
	return rowsAffected("delete category", res)
}
