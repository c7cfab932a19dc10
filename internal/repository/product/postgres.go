package product

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"
	"storefront/internal/pgnotify"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// productsChannel is notified by a trigger on every products table change.
const productsChannel = "products_changed"

type postgresRepo struct {
	pool     *pgxpool.Pool
	listener *pgnotify.Listener
	logger   *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, listener *pgnotify.Listener, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, listener: listener, logger: logger}
}

const productColumns = `id::text, name, image_url, COALESCE(description, ''), category, price_cents, offer_price_cents, average_rating, review_count, created_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *postgresRepo) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE category = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, category)
	if err != nil {
		r.logger.Printf("product repo: list category=%s error=%v", category, err)
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.Name, &p.ImageURL, &p.Description, &p.Category,
		&p.PriceCents, &p.OfferPriceCents, &p.AverageRating, &p.ReviewCount, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT id::text, name, image_url
FROM categories
ORDER BY name
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list categories error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ImageURL); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// Upsert inserts or updates a product keyed by its unique name.
func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, image_url, description, category, price_cents, offer_price_cents, average_rating, review_count)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (name) DO UPDATE
SET image_url = EXCLUDED.image_url,
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents,
    offer_price_cents = EXCLUDED.offer_price_cents,
    average_rating = EXCLUDED.average_rating,
    review_count = EXCLUDED.review_count
RETURNING ` + productColumns + `
`
	var out domain.Product
	err := r.pool.QueryRow(ctx, q,
		p.Name, p.ImageURL, p.Description, p.Category,
		p.PriceCents, p.OfferPriceCents, p.AverageRating, p.ReviewCount,
	).Scan(
		&out.ID, &out.Name, &out.ImageURL, &out.Description, &out.Category,
		&out.PriceCents, &out.OfferPriceCents, &out.AverageRating, &out.ReviewCount, &out.CreatedAt,
	)
	if err != nil {
		r.logger.Printf("product repo: upsert name=%s error=%v", p.Name, err)
		return nil, err
	}
	return &out, nil
}

// SubscribeAll pushes the full product list now and after every catalog
// change.
func (r *postgresRepo) SubscribeAll(ctx context.Context, fn func([]domain.Product)) (func(), error) {
	return r.subscribe(ctx, fn, r.List)
}

// SubscribeByCategory behaves like SubscribeAll scoped to one category.
func (r *postgresRepo) SubscribeByCategory(ctx context.Context, category string, fn func([]domain.Product)) (func(), error) {
	return r.subscribe(ctx, fn, func(ctx context.Context) ([]domain.Product, error) {
		return r.ListByCategory(ctx, category)
	})
}

func (r *postgresRepo) subscribe(ctx context.Context, fn func([]domain.Product), query func(context.Context) ([]domain.Product, error)) (func(), error) {
	push := func() {
		products, err := query(context.Background())
		if err != nil {
			r.logger.Printf("product repo: subscription query error=%v", err)
			return
		}
		fn(products)
	}
	unsubscribe, err := r.listener.Listen(ctx, productsChannel, func(string) { push() })
	if err != nil {
		return nil, err
	}
	push()
	return unsubscribe, nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.ImageURL, &p.Description, &p.Category,
			&p.PriceCents, &p.OfferPriceCents, &p.AverageRating, &p.ReviewCount, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
