package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type categorySeed struct {
	Name     string
	ImageURL string
}

type productSeed struct {
	Name            string
	ImageURL        string
	Description     string
	Category        string
	PriceCents      int64
	OfferPriceCents *int64
	AverageRating   *float64
	ReviewCount     *int
}

func cents(v int64) *int64 { return &v }

func rating(v float64) *float64 { return &v }

func reviews(v int) *int { return &v }

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := []categorySeed{
		{Name: "Electronics", ImageURL: "https://cdn.example.com/categories/electronics.jpg"},
		{Name: "Fashion", ImageURL: "https://cdn.example.com/categories/fashion.jpg"},
		{Name: "Home & Kitchen", ImageURL: "https://cdn.example.com/categories/home-kitchen.jpg"},
	}

	for _, c := range categories {
		if err := upsertCategory(ctx, pool, c); err != nil {
			return fmt.Errorf("upsert category %s: %w", c.Name, err)
		}
	}

	products := []productSeed{
		{
			Name:            "Wireless Headphones",
			ImageURL:        "https://cdn.example.com/products/wireless-headphones.jpg",
			Description:     "Over-ear headphones with active noise cancellation",
			Category:        "Electronics",
			PriceCents:      12999,
			OfferPriceCents: cents(9999),
			AverageRating:   rating(4.4),
			ReviewCount:     reviews(210),
		},
		{
			Name:          "Smart Watch",
			ImageURL:      "https://cdn.example.com/products/smart-watch.jpg",
			Description:   "Fitness tracking watch with heart-rate monitor",
			Category:      "Electronics",
			PriceCents:    8999,
			AverageRating: rating(4.1),
			ReviewCount:   reviews(134),
		},
		{
			Name:            "Denim Jacket",
			ImageURL:        "https://cdn.example.com/products/denim-jacket.jpg",
			Description:     "Classic fit denim jacket",
			Category:        "Fashion",
			PriceCents:      5499,
			OfferPriceCents: cents(4299),
			AverageRating:   rating(4.6),
			ReviewCount:     reviews(87),
		},
		{
			Name:        "Ceramic Dinner Set",
			ImageURL:    "https://cdn.example.com/products/ceramic-dinner-set.jpg",
			Description: "16-piece ceramic dinner set, dishwasher safe",
			Category:    "Home & Kitchen",
			PriceCents:  7499,
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	return nil
}

func upsertCategory(ctx context.Context, pool *pgxpool.Pool, c categorySeed) error {
	const q = `
INSERT INTO categories (name, image_url)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET image_url = EXCLUDED.image_url
`
	_, err := pool.Exec(ctx, q, c.Name, c.ImageURL)
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
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
`
	_, err := pool.Exec(ctx, q, p.Name, p.ImageURL, p.Description, p.Category, p.PriceCents, p.OfferPriceCents, p.AverageRating, p.ReviewCount)
	return err
}
