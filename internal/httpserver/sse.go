package httpserver

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
)

// streamSSE runs a server-sent event loop. next blocks until it has an event
// to emit and reports false when the stream should end.
func streamSSE(c *gin.Context, next func() (name string, data any, ok bool)) {
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		name, data, ok := next()
		if !ok {
			return false
		}
		c.SSEvent(name, data)
		return true
	})
}

// sendLatest puts v on a 1-buffered latest-value channel, replacing any
// pending value so a slow reader always gets the newest snapshot.
func sendLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

// recvLatest takes the pending value if one is buffered, else waits for the
// next value or context cancellation. A pending value wins over a cancelled
// context so buffered snapshots are flushed before the stream ends.
func recvLatest[T any](ctx context.Context, ch chan T) (T, bool) {
	select {
	case v := <-ch:
		return v, true
	default:
	}
	select {
	case v := <-ch:
		return v, true
	case <-ctx.Done():
		var zero T
		return zero, false
	}
}
