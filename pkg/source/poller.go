package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Poller periodically fetches a JSON snapshot from an HTTP endpoint and
// offers it to an Applier. Fetch failures are logged and the next tick
// retries; the poller never fails permanently while its context lives.
type Poller[D any] struct {
	url      string
	interval time.Duration
	applier  *Applier[D]
	client   *http.Client
	logger   *slog.Logger
}

// NewPoller creates a Poller hitting url every interval.
func NewPoller[D any](url string, interval time.Duration, applier *Applier[D]) *Poller[D] {
	return &Poller[D]{
		url:      url,
		interval: interval,
		applier:  applier,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   slog.Default(),
	}
}

// WithClient sets the HTTP client.
func (p *Poller[D]) WithClient(client *http.Client) *Poller[D] {
	p.client = client
	return p
}

// WithPollLogger sets the logger.
func (p *Poller[D]) WithPollLogger(logger *slog.Logger) *Poller[D] {
	p.logger = logger
	return p
}

// Run polls until ctx is cancelled. The first fetch happens immediately.
func (p *Poller[D]) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	if err := p.fetchOnce(ctx); err != nil {
		p.logger.Warn("snapshot poll failed", "url", p.url, "error", err)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := p.fetchOnce(ctx); err != nil {
				p.logger.Warn("snapshot poll failed", "url", p.url, "error", err)
			}
		}
	}
}

func (p *Poller[D]) fetchOnce(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return fmt.Errorf("source: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("source: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("source: fetch: unexpected status %s", resp.Status)
	}

	var snapshot []D
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return fmt.Errorf("source: decode snapshot: %w", err)
	}

	p.applier.Offer(snapshot)
	return nil
}
