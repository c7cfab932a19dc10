// Package pgnotify wraps Postgres LISTEN/NOTIFY for the repositories that
// offer change subscriptions.
package pgnotify

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Listener dispatches NOTIFY payloads to subscriber callbacks. Subscribers of
// the same channel share one dedicated pool connection, so the number of
// pinned connections is bounded by the number of distinct channels, not by the
// number of subscribers. The connection is acquired by the first subscriber
// and released when the last one unsubscribes.
type Listener struct {
	pool   *pgxpool.Pool
	logger *log.Logger

	mu       sync.Mutex
	channels map[string]*channelState
}

type channelState struct {
	cancel      context.CancelFunc
	done        chan struct{}
	subscribers map[int]func(payload string)
	nextID      int
}

func New(pool *pgxpool.Pool, logger *log.Logger) *Listener {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Listener{
		pool:     pool,
		logger:   logger,
		channels: make(map[string]*channelState),
	}
}

// Listen registers fn for channel and invokes it with each notification
// payload. The returned function removes the registration; the last removal
// stops the channel's listen loop and releases its connection. fn runs on the
// channel's listener goroutine; callers that need ordering with their own
// state must synchronize internally.
func (l *Listener) Listen(ctx context.Context, channel string, fn func(payload string)) (func(), error) {
	channel = sanitizeIdent(channel)

	l.mu.Lock()
	defer l.mu.Unlock()

	st, ok := l.channels[channel]
	if !ok {
		conn, err := l.pool.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		if _, err := conn.Exec(ctx, "LISTEN "+channel); err != nil {
			conn.Release()
			return nil, err
		}
		loopCtx, cancel := context.WithCancel(context.Background())
		st = &channelState{
			cancel:      cancel,
			done:        make(chan struct{}),
			subscribers: make(map[int]func(string)),
		}
		l.channels[channel] = st
		go l.run(loopCtx, conn, channel, st)
	}

	id := st.nextID
	st.nextID++
	st.subscribers[id] = fn

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			l.mu.Lock()
			delete(st.subscribers, id)
			var done chan struct{}
			if len(st.subscribers) == 0 && l.channels[channel] == st {
				st.cancel()
				done = st.done
				delete(l.channels, channel)
			}
			l.mu.Unlock()
			if done != nil {
				<-done
			}
		})
	}
	return unsubscribe, nil
}

func (l *Listener) run(ctx context.Context, conn *pgxpool.Conn, channel string, st *channelState) {
	defer close(st.done)
	defer conn.Release()
	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				l.logger.Printf("pgnotify: channel=%s listener stopped: %v", channel, err)
			}
			// Drop the dead state so the next Listen starts a fresh
			// connection instead of joining a stopped loop.
			l.mu.Lock()
			if l.channels[channel] == st {
				delete(l.channels, channel)
			}
			l.mu.Unlock()
			return
		}

		l.mu.Lock()
		fns := make([]func(string), 0, len(st.subscribers))
		for _, fn := range st.subscribers {
			fns = append(fns, fn)
		}
		l.mu.Unlock()
		for _, fn := range fns {
			fn(n.Payload)
		}
	}
}

// sanitizeIdent keeps channel names to the safe identifier charset; LISTEN
// cannot take bind parameters.
func sanitizeIdent(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			out = append(out, r)
		}
	}
	return string(out)
}
