package source

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

// Feed consumes pushed JSON snapshots from a WebSocket endpoint and offers
// them to an Applier. The connection is redialed with linear backoff until
// the context is cancelled.
type Feed[D any] struct {
	url     string
	applier *Applier[D]
	dialer  *websocket.Dialer
	logger  *slog.Logger

	// redial wait grows by backoffStep per consecutive failure, up to
	// backoffMax.
	backoffStep time.Duration
	backoffMax  time.Duration
}

// NewFeed creates a Feed for a ws:// or wss:// snapshot endpoint.
func NewFeed[D any](url string, applier *Applier[D]) *Feed[D] {
	return &Feed[D]{
		url:         url,
		applier:     applier,
		dialer:      websocket.DefaultDialer,
		logger:      slog.Default(),
		backoffStep: time.Second,
		backoffMax:  30 * time.Second,
	}
}

// WithDialer sets the WebSocket dialer.
func (f *Feed[D]) WithDialer(dialer *websocket.Dialer) *Feed[D] {
	f.dialer = dialer
	return f
}

// WithFeedLogger sets the logger.
func (f *Feed[D]) WithFeedLogger(logger *slog.Logger) *Feed[D] {
	f.logger = logger
	return f
}

// Run connects and reads snapshots until ctx is cancelled.
func (f *Feed[D]) Run(ctx context.Context) error {
	failures := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		connected, err := f.readConn(ctx)
		if err != nil && ctx.Err() == nil {
			f.logger.Warn("snapshot feed disconnected", "url", f.url, "error", err)
		}
		if connected {
			failures = 0
		}

		failures++
		wait := time.Duration(failures) * f.backoffStep
		if wait > f.backoffMax {
			wait = f.backoffMax
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// readConn dials once and reads snapshots until the connection drops. The
// first return value reports whether the dial succeeded, which resets the
// redial backoff.
func (f *Feed[D]) readConn(ctx context.Context) (bool, error) {
	conn, _, err := f.dialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	// Close the connection when the context ends so ReadMessage unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return true, err
		}

		var snapshot []D
		if err := json.Unmarshal(msg, &snapshot); err != nil {
			f.logger.Warn("snapshot feed decode error", "error", err)
			continue
		}
		f.applier.Offer(snapshot)
	}
}
