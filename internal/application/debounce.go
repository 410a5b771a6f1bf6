package application

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/turtacn/cdnflush/pkg/logger"
)

// Debouncer suppresses repeated purges of the same URL inside a time window.
// It is best-effort deduplication, not a correctness guarantee, but the
// check-and-refresh of each URL's timestamp happens under one lock so two
// racing refreshes cannot both accept the same URL.
type Debouncer struct {
	window time.Duration

	mu   sync.Mutex
	seen *gocache.Cache
	now  func() time.Time

	logger logger.Logger
}

// NewDebouncer creates a debouncer with the given window. Entries expire from
// the backing cache after twice the window. A window of zero disables
// debouncing entirely: Filter passes every URL through and records nothing.
func NewDebouncer(window time.Duration, log logger.Logger) *Debouncer {
	return &Debouncer{
		window: window,
		seen:   gocache.New(2*window, 2*window),
		now:    time.Now,
		logger: log.WithComponent("Debouncer"),
	}
}

// Filter returns the URLs whose last accepted purge is older than the window
// (or unseen), and records "now" as the last purge for every URL it keeps.
// The timestamp is written before Filter returns, so a concurrent call sees
// the accepted URLs as fresh.
func (d *Debouncer) Filter(ctx context.Context, urls []string) []string {
	if d.window <= 0 {
		return urls
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	kept := make([]string, 0, len(urls))
	for _, u := range urls {
		if v, ok := d.seen.Get(u); ok {
			if last, ok := v.(time.Time); ok && now.Sub(last) < d.window {
				d.logger.Debug(ctx, "url inside debounce window, skipping",
					logger.String("url", u))
				continue
			}
		}
		d.seen.Set(u, now, gocache.DefaultExpiration)
		kept = append(kept, u)
	}
	return kept
}

// Window returns the configured debounce window.
func (d *Debouncer) Window() time.Duration {
	return d.window
}
