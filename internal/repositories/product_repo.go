package repositories

import (
	"context"
	"errors"
	"fmt"

	"toyshop/internal/models"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProductRepository interface {
	List(ctx context.Context, includeHidden bool) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
}

type productRepo struct {
	db     Database
	logger *zap.Logger
}

func NewProductRepo(db Database, logger *zap.Logger) ProductRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &productRepo{db: db, logger: logger}
}

const productSelect = `
	SELECT p.id, p.name, p.name_he, COALESCE(p.price::text, ''), p.brand, p.age_group, p.gender,
		p.category_id, COALESCE(c.name, ''), COALESCE(c.name_he, ''),
		p.description, p.description_he, p.created_at, p.rating, p.hidden
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
`

func (r *productRepo) scanProduct(row pgx.Row) (models.Product, error) {
	var (
		p      models.Product
		price  string
		gender string
	)
	err := row.Scan(&p.ID, &p.Name, &p.NameHe, &price, &p.Brand, &p.AgeGroup, &gender,
		&p.Category.ID, &p.Category.Name, &p.Category.NameHe,
		&p.Description, &p.DescriptionHe, &p.CreatedAt, &p.Rating, &p.Hidden)
	if err != nil {
		return p, err
	}
	p.Price = models.Price(price)
	p.Gender = r.normalizeGender(p.ID, gender)
	return p, nil
}

// Stored genders are normalised to codes here. Values outside the code table are kept but
// can never satisfy a gender filter, so they are reported.
func (r *productRepo) normalizeGender(id int64, raw string) models.GenderCode {
	code, ok := models.NormalizeGender(raw)
	if !ok && raw != "" {
		r.logger.Warn("unrecognised product gender",
			zap.Int64("product_id", id),
			zap.String("gender", raw))
	}
	return code
}

func (r *productRepo) List(ctx context.Context, includeHidden bool) ([]models.Product, error) {
	query := productSelect + `
		WHERE NOT p.hidden OR $1
		ORDER BY p.id ASC
	`
	rows, err := r.db.Query(ctx, query, includeHidden)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	p, err := r.scanProduct(r.db.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &p, nil
}
