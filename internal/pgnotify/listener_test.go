package pgnotify

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func TestListenerSharesOneConnectionPerChannel(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	l := New(pool, nil)
	got := make(chan string, 4)

	unsub1, err := l.Listen(ctx, "listener_test", func(p string) { got <- "a:" + p })
	if err != nil {
		t.Fatalf("first Listen: %v", err)
	}
	unsub2, err := l.Listen(ctx, "listener_test", func(p string) { got <- "b:" + p })
	if err != nil {
		t.Fatalf("second Listen: %v", err)
	}

	if n := pool.Stat().AcquiredConns(); n != 1 {
		t.Fatalf("expected 1 pinned connection for the shared channel, got %d", n)
	}

	if _, err := pool.Exec(ctx, `SELECT pg_notify('listener_test', 'x')`); err != nil {
		t.Fatalf("notify: %v", err)
	}

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case v := <-got:
			seen[v] = true
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for notifications, saw %v", seen)
		}
	}
	if !seen["a:x"] || !seen["b:x"] {
		t.Fatalf("expected both subscribers notified, saw %v", seen)
	}

	unsub1()
	if n := pool.Stat().AcquiredConns(); n != 1 {
		t.Fatalf("expected connection kept while a subscriber remains, got %d", n)
	}
	unsub2()
	if n := pool.Stat().AcquiredConns(); n != 0 {
		t.Fatalf("expected connection released after last unsubscribe, got %d", n)
	}

	// Unsubscribing twice is a no-op.
	unsub1()
}
