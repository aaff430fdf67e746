// Package netx tracks network reachability for the client. An
// OnlineWatcher periodically probes the backend and exposes the result
// as a boolean flag that other components read without blocking.
package netx

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/bpkeeper/internal/logging"
)

// Prober checks backend reachability. The remote store satisfies this.
type Prober interface {
	Ping(ctx context.Context) error
}

const probeTimeout = 3 * time.Second

// OnlineWatcher polls a Prober on a fixed interval and records whether
// the backend is reachable. The zero value is offline; construct with
// NewOnlineWatcher.
type OnlineWatcher struct {
	probe    Prober
	interval time.Duration
	log      logging.Logger
	online   atomic.Bool
}

func NewOnlineWatcher(probe Prober, interval time.Duration, log logging.Logger) *OnlineWatcher {
	w := &OnlineWatcher{probe: probe, interval: interval, log: log.With("component", "netx")}
	return w
}

// Online reports the result of the most recent probe.
func (w *OnlineWatcher) Online() bool {
	return w.online.Load()
}

// SetOnline overrides the flag directly. Used at startup (before the
// first tick) and by tests.
func (w *OnlineWatcher) SetOnline(v bool) {
	w.online.Store(v)
}

// Run probes immediately, then on every interval tick until ctx is
// cancelled. Transitions are logged once per flip.
func (w *OnlineWatcher) Run(ctx context.Context) {
	w.check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (w *OnlineWatcher) check(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	err := w.probe.Ping(probeCtx)
	cancel()

	reachable := err == nil
	if w.online.Swap(reachable) != reachable {
		if reachable {
			w.log.Info(ctx, "back online")
		} else {
			w.log.Warn(ctx, "went offline", "error", err)
		}
	}
}
