package wishlist

import (
	"context"
	"io"
	"log"

	"storefront/internal/pgnotify"
	"github.com/jackc/pgx/v5/pgxpool"
)

// wishlistChannel carries the owning user id as notification payload.
const wishlistChannel = "wishlist_changed"

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

func (r *postgresRepo) Subscribe(ctx context.Context, userID string, fn func([]string)) (func(), error) {
	push := func() {
		ids, err := r.productIDs(context.Background(), userID)
		if err != nil {
			r.logger.Printf("wishlist repo: subscription query user=%s error=%v", userID, err)
			return
		}
		fn(ids)
	}
	unsubscribe, err := r.listener.Listen(ctx, wishlistChannel, func(payload string) {
		if payload == userID {
			push()
		}
	})
	if err != nil {
		return nil, err
	}
	push()
	return unsubscribe, nil
}

// SetMembership is a single-key write: insert when present, delete otherwise.
// Both forms are idempotent.
func (r *postgresRepo) SetMembership(ctx context.Context, userID, productID string, present bool) error {
	if present {
		const q = `
INSERT INTO wishlist_items (user_id, product_id)
VALUES ($1, $2)
ON CONFLICT (user_id, product_id) DO NOTHING
`
		if _, err := r.pool.Exec(ctx, q, userID, productID); err != nil {
			r.logger.Printf("wishlist repo: add user=%s product=%s error=%v", userID, productID, err)
			return err
		}
		return nil
	}
	const q = `DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`
	if _, err := r.pool.Exec(ctx, q, userID, productID); err != nil {
		r.logger.Printf("wishlist repo: remove user=%s product=%s error=%v", userID, productID, err)
		return err
	}
	return nil
}

func (r *postgresRepo) productIDs(ctx context.Context, userID string) ([]string, error) {
	const q = `
SELECT product_id
FROM wishlist_items
WHERE user_id = $1
ORDER BY created_at
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
