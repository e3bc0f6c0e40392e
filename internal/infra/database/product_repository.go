package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
)

// Postgres class 23 integrity violation raised by ON DELETE RESTRICT.
const foreignKeyViolation = pq.ErrorCode("23503")

type ProductRepositoryImpl struct {
	db DBTX
}

func NewProductRepository(db DBTX) *ProductRepositoryImpl {
	return &ProductRepositoryImpl{db: db}
}

func (r *ProductRepositoryImpl) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	var p entity.Product
	err := r.db.QueryRowContext(ctx,
		`SELECT product_id, name, category, price_cents FROM products WHERE product_id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.Category, &p.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: product %d", entity.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query product: %w", entity.ErrStorage, err)
	}
	return &p, nil
}

func (r *ProductRepositoryImpl) List(ctx context.Context, category, search string) ([]*entity.Product, error) {
	query := `SELECT product_id, name, category, price_cents FROM products WHERE 1=1`
	args := []any{}

	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		query += fmt.Sprintf(" AND (name ILIKE $%d OR category ILIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %w", entity.ErrStorage, err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price); err != nil {
			return nil, fmt.Errorf("%w: scan product: %w", entity.ErrStorage, err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list products: %w", entity.ErrStorage, err)
	}
	return products, nil
}

func (r *ProductRepositoryImpl) Save(ctx context.Context, product *entity.Product) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO products (name, category, price_cents)
		 VALUES ($1, $2, $3)
		 RETURNING product_id`,
		product.Name, product.Category, int64(product.Price),
	).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("%w: insert product: %w", entity.ErrStorage, err)
	}
	return nil
}

func (r *ProductRepositoryImpl) Update(ctx context.Context, product *entity.Product) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = $1, category = $2, price_cents = $3
		 WHERE product_id = $4`,
		product.Name, product.Category, int64(product.Price), product.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: update product: %w", entity.ErrStorage, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: update product: %w", entity.ErrStorage, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: product %d", entity.ErrNotFound, product.ID)
	}
	return nil
}

func (r *ProductRepositoryImpl) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return fmt.Errorf("%w: product %d is referenced by order items", entity.ErrValidation, id)
		}
		return fmt.Errorf("%w: delete product: %w", entity.ErrStorage, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: delete product: %w", entity.ErrStorage, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: product %d", entity.ErrNotFound, id)
	}
	return nil
}

func (r *ProductRepositoryImpl) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("%w: list categories: %w", entity.ErrStorage, err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("%w: scan category: %w", entity.ErrStorage, err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list categories: %w", entity.ErrStorage, err)
	}
	return categories, nil
}
