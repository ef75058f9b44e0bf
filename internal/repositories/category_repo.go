package repositories

import (
	"context"
	"errors"
	"fmt"

	"toyshop/internal/models"

	"github.com/jackc/pgx/v5"
)

type CategoryRepository interface {
	List(ctx context.Context, includeInactive bool) ([]models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int64) error
	ToggleActive(ctx context.Context, id int64) (*models.Category, error)
	Reorder(ctx context.Context, ids []int64) error
	CountChildren(ctx context.Context, id int64) (int, error)
}

type categoryRepo struct {
	db Database
}

func NewCategoryRepo(db Database) CategoryRepository {
	return &categoryRepo{db: db}
}

const categoryColumns = `id, parent_id, name, name_he, image, sort_order, active`

func scanCategory(row pgx.Row, c *models.Category) error {
	return row.Scan(&c.ID, &c.ParentID, &c.Name, &c.NameHe, &c.Image, &c.Order, &c.Active)
}

func (r *categoryRepo) List(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE active OR $1
		ORDER BY parent_id NULLS FIRST, sort_order ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	c := &models.Category{}
	if err := scanCategory(r.db.QueryRow(ctx, query, id), c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}
	return c, nil
}

// Create appends the category after its last sibling and fills in ID and Order.
func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (parent_id, name, name_he, image, sort_order, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4,
			(SELECT COALESCE(MAX(sort_order) + 1, 0) FROM categories WHERE parent_id IS NOT DISTINCT FROM $1),
			$5, NOW(), NOW())
		RETURNING id, sort_order
	`
	err := r.db.QueryRow(ctx, query, category.ParentID, category.Name, category.NameHe, category.Image, category.Active).
		Scan(&category.ID, &category.Order)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Update writes the editable fields and fills in Order. A category moved to another parent
// is appended after its new siblings; otherwise its order is kept.
func (r *categoryRepo) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET parent_id = $1, name = $2, name_he = $3, image = $4, active = $5, updated_at = NOW(),
			sort_order = CASE
				WHEN parent_id IS NOT DISTINCT FROM $1 THEN sort_order
				ELSE (SELECT COALESCE(MAX(s.sort_order) + 1, 0) FROM categories s WHERE s.parent_id IS NOT DISTINCT FROM $1)
			END
		WHERE id = $6
		RETURNING sort_order
	`
	err := r.db.QueryRow(ctx, query, category.ParentID, category.Name, category.NameHe, category.Image,
		category.Active, category.ID).Scan(&category.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to update category %d: %w", category.ID, err)
	}
	return nil
}

// Delete removes the category; subcategories go with it through the foreign key cascade.
func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepo) ToggleActive(ctx context.Context, id int64) (*models.Category, error) {
	query := `
		UPDATE categories
		SET active = NOT active, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + categoryColumns
	c := &models.Category{}
	if err := scanCategory(r.db.QueryRow(ctx, query, id), c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to toggle category %d: %w", id, err)
	}
	return c, nil
}

// Reorder stores ids as the new sibling order (sort_order = index) in one transaction.
// Every id must exist, all must share a parent and together they must be that parent's
// complete set of children.
func (r *categoryRepo) Reorder(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin reorder: %w", err)
	}

	if err := checkSiblings(ctx, tx, ids); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	for i, id := range ids {
		if _, err := tx.Exec(ctx, `UPDATE categories SET sort_order = $1, updated_at = NOW() WHERE id = $2`, i, id); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("failed to update order of category %d: %w", id, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}
	return nil
}

func checkSiblings(ctx context.Context, tx pgx.Tx, ids []int64) error {
	locked, err := lockCategories(ctx, tx, ids)
	if err != nil {
		return err
	}

	first := locked[ids[0]]
	for _, id := range ids {
		c, ok := locked[id]
		if !ok {
			return fmt.Errorf("category %d: %w", id, ErrCategoryNotFound)
		}
		if !c.SameParent(first) {
			return ErrNotSiblings
		}
	}

	var n int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE parent_id IS NOT DISTINCT FROM $1`, first.ParentID).Scan(&n)
	if err != nil {
		return fmt.Errorf("failed to count siblings: %w", err)
	}
	if n != len(ids) {
		return fmt.Errorf("got %d of %d siblings: %w", len(ids), n, ErrIncompleteReorder)
	}
	return nil
}

func lockCategories(ctx context.Context, tx pgx.Tx, ids []int64) (map[int64]models.Category, error) {
	rows, err := tx.Query(ctx, `SELECT id, parent_id FROM categories WHERE id = ANY($1) FOR UPDATE`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories for reorder: %w", err)
	}
	defer rows.Close()

	locked := make(map[int64]models.Category, len(ids))
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.ParentID); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		locked[c.ID] = c
	}
	return locked, rows.Err()
}

func (r *categoryRepo) CountChildren(ctx context.Context, id int64) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE parent_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count children of category %d: %w", id, err)
	}
	return n, nil
}
