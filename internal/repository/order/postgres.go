package order

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

// ordersChannel carries the owning user id as notification payload.
const ordersChannel = "orders_changed"

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

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const insertOrder = `
INSERT INTO orders (transaction_id, user_id, user_name, address, phone, payment_method, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING key::text
`
	out := o
	if err := tx.QueryRow(ctx, insertOrder,
		o.TransactionID, o.UserID, o.UserName, o.Address, o.Phone, o.PaymentMethod, o.Status, o.CreatedAt,
	).Scan(&out.Key); err != nil {
		r.logger.Printf("order repo: create txn=%s error=%v", o.TransactionID, err)
		return nil, err
	}

	const insertLine = `
INSERT INTO order_lines (order_key, product_id, name, image_url, quantity, unit_price_cents, total_cents)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	for _, line := range o.Lines {
		if _, err := tx.Exec(ctx, insertLine,
			out.Key, line.ProductID, line.Name, line.ImageURL, line.Quantity, line.UnitPriceCents, line.TotalCents,
		); err != nil {
			r.logger.Printf("order repo: create line key=%s product=%s error=%v", out.Key, line.ProductID, err)
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created key=%s txn=%s user=%s lines=%d", out.Key, out.TransactionID, out.UserID, len(out.Lines))
	return &out, nil
}

const orderColumns = `key::text, transaction_id, user_id::text, user_name, address, phone, payment_method, status, created_at`

func (r *postgresRepo) GetByKey(ctx context.Context, key string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE key = $1
`
	var o domain.Order
	err := r.pool.QueryRow(ctx, q, key).Scan(
		&o.Key, &o.TransactionID, &o.UserID, &o.UserName, &o.Address, &o.Phone, &o.PaymentMethod, &o.Status, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get key=%s error=%v", key, err)
		return nil, err
	}
	if err := r.loadLines(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Printf("order repo: list user=%s error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.Key, &o.TransactionID, &o.UserID, &o.UserName, &o.Address, &o.Phone, &o.PaymentMethod, &o.Status, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		if err := r.loadLines(ctx, &result[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *postgresRepo) DeleteByKey(ctx context.Context, key string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE key = $1`, key)
	if err != nil {
		r.logger.Printf("order repo: delete key=%s error=%v", key, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("order repo: deleted key=%s", key)
	return nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, key, status string) (*domain.Order, error) {
	const q = `
UPDATE orders
SET status = $1
WHERE key = $2
RETURNING key::text
`
	var updated string
	if err := r.pool.QueryRow(ctx, q, status, key).Scan(&updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: update status key=%s error=%v", key, err)
		return nil, err
	}
	return r.GetByKey(ctx, key)
}

// SubscribeByUser pushes the user's order list now and whenever a trigger
// reports a change to one of their orders.
func (r *postgresRepo) SubscribeByUser(ctx context.Context, userID string, fn func([]domain.Order)) (func(), error) {
	push := func() {
		orders, err := r.ListByUser(context.Background(), userID)
		if err != nil {
			r.logger.Printf("order repo: subscription query user=%s error=%v", userID, err)
			return
		}
		fn(orders)
	}
	unsubscribe, err := r.listener.Listen(ctx, ordersChannel, func(payload string) {
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

func (r *postgresRepo) loadLines(ctx context.Context, o *domain.Order) error {
	const q = `
SELECT product_id, name, image_url, quantity, unit_price_cents, total_cents
FROM order_lines
WHERE order_key = $1
ORDER BY id
`
	rows, err := r.pool.Query(ctx, q, o.Key)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ProductID, &line.Name, &line.ImageURL, &line.Quantity, &line.UnitPriceCents, &line.TotalCents); err != nil {
			return err
		}
		o.Lines = append(o.Lines, line)
	}
	return rows.Err()
}
