package repository

import (
	"context"
	"fmt"

	"github.com/chetan-code/missioncontrol/internal/db"
	"github.com/chetan-code/missioncontrol/internal/models"
)

// SQLTaxonomyRepo stores the category/type/item collections. Cascading
// deletes issue several statements and must run on a transaction-backed
// DBTX to be atomic.
type SQLTaxonomyRepo struct {
	q db.DBTX
}

func NewTaxonomyRepo(q db.DBTX) *SQLTaxonomyRepo {
	return &SQLTaxonomyRepo{q: q}
}

func (r *SQLTaxonomyRepo) CreateCategory(ctx context.Context, c *models.Category) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO taxonomy_categories (id, name, created_at) VALUES ($1, $2, $3)`,
		c.ID, c.Name, formatTime(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting category: %w", err)
	}
	return nil
}

// CreateType inserts t only if its category exists, in one statement.
func (r *SQLTaxonomyRepo) CreateType(ctx context.Context, t *models.Type) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO taxonomy_types (id, name, category_id, created_at)
		SELECT CAST($1 AS TEXT), CAST($2 AS TEXT), CAST($3 AS TEXT), CAST($4 AS TEXT)
		WHERE EXISTS (SELECT 1 FROM taxonomy_categories WHERE id = $3)`,
		t.ID, t.Name, t.CategoryID, formatTime(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting type: %w", err)
	}
	return affectedOne(res, "category")
}

// CreateItem inserts i only if its type exists, in one statement.
func (r *SQLTaxonomyRepo) CreateItem(ctx context.Context, i *models.Item) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO taxonomy_items (id, name, type_id, created_at)
		SELECT CAST($1 AS TEXT), CAST($2 AS TEXT), CAST($3 AS TEXT), CAST($4 AS TEXT)
		WHERE EXISTS (SELECT 1 FROM taxonomy_types WHERE id = $3)`,
		i.ID, i.Name, i.TypeID, formatTime(i.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	return affectedOne(res, "type")
}

func (r *SQLTaxonomyRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, name, created_at FROM taxonomy_categories ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	out := []models.Category{}
	for rows.Next() {
		var c models.Category
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLTaxonomyRepo) ListTypes(ctx context.Context, categoryID string) ([]models.Type, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, name, category_id, created_at FROM taxonomy_types
		WHERE category_id = $1 ORDER BY created_at, id`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("listing types: %w", err)
	}
	defer rows.Close()

	out := []models.Type{}
	for rows.Next() {
		var t models.Type
		var createdAt string
		if err := rows.Scan(&t.ID, &t.Name, &t.CategoryID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning type: %w", err)
		}
		if t.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLTaxonomyRepo) ListItems(ctx context.Context, typeID string) ([]models.Item, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, name, type_id, created_at FROM taxonomy_items
		WHERE type_id = $1 ORDER BY created_at, id`, typeID)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	out := []models.Item{}
	for rows.Next() {
		var i models.Item
		var createdAt string
		if err := rows.Scan(&i.ID, &i.Name, &i.TypeID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		if i.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// DeleteCategory removes the items under the category's types, the types,
// then the category.
func (r *SQLTaxonomyRepo) DeleteCategory(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx,
		`DELETE FROM taxonomy_items WHERE type_id IN (SELECT id FROM taxonomy_types WHERE category_id = $1)`,
		id); err != nil {
		return fmt.Errorf("deleting items of category: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, `DELETE FROM taxonomy_types WHERE category_id = $1`, id); err != nil {
		return fmt.Errorf("deleting types of category: %w", err)
	}
	res, err := r.q.ExecContext(ctx, `DELETE FROM taxonomy_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	return affectedOne(res, "category")
}

// DeleteType removes the type's items, then the type.
func (r *SQLTaxonomyRepo) DeleteType(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM taxonomy_items WHERE type_id = $1`, id); err != nil {
		return fmt.Errorf("deleting items of type: %w", err)
	}
	res, err := r.q.ExecContext(ctx, `DELETE FROM taxonomy_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting type: %w", err)
	}
	return affectedOne(res, "type")
}

func (r *SQLTaxonomyRepo) DeleteItem(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM taxonomy_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return affectedOne(res, "item")
}
