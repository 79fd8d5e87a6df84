// Package alko fetches and parses the retailer's price-list feed.
package alko

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/drinkdex/backend/internal/domain"
	"golang.org/x/time/rate"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/114.0.0.0 Safari/537.36"

// ClientConfig holds the feed endpoint and local file locations.
type ClientConfig struct {
	FeedURL    string
	LocalPath  string // latest successfully fetched feed
	BackupPath string // fallback when the fetch fails
	Timeout    time.Duration
}

// Client downloads the price-list feed. The feed host serves a static file;
// one request per refresh is plenty, so the limiter mainly guards against a
// misbehaving caller hammering refresh.
type Client struct {
	httpClient  *http.Client
	cfg         ClientConfig
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new feed client with an explicit request timeout.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	// One fetch per 10 seconds with a small burst
	limiter := rate.NewLimiter(rate.Limit(0.1), 3)

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cfg:         cfg,
		rateLimiter: limiter,
	}
}

// SetDebug enables request logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the sleep before the next retry attempt.
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(attempt) * 500 * time.Millisecond
}

// FetchPriceList downloads the latest feed, persists it to LocalPath, and
// returns its contents. When the download or validation fails it falls back
// to the backup file; only when that is also missing does it return
// ErrFeedUnavailable.
func (c *Client) FetchPriceList(ctx context.Context) (*domain.FeedFile, error) {
	data, err := c.download(ctx)
	if err == nil {
		if saveErr := c.saveLocal(data); saveErr != nil {
			log.Printf("[FEED] Could not persist fetched feed: %v", saveErr)
		}
		return &domain.FeedFile{Data: data}, nil
	}

	log.Printf("[FEED] Fetch failed, trying backup: %v", err)

	backup, backupErr := os.ReadFile(c.cfg.BackupPath)
	if backupErr != nil {
		return nil, fmt.Errorf("%w: fetch: %v", domain.ErrFeedUnavailable, err)
	}
	return &domain.FeedFile{Data: backup, FromBackup: true}, nil
}

// download fetches the feed with retries for transient failures.
func (c *Client) download(ctx context.Context) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "GET", c.cfg.FeedURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			log.Printf("[FEED] Request error (attempt %d): %v", attempt, err)
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			log.Printf("[FEED] Status %d (attempt %d)", resp.StatusCode, attempt)
			lastErr = fmt.Errorf("feed returned status %d", resp.StatusCode)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}
		if readErr != nil {
			lastErr = fmt.Errorf("read feed body: %w", readErr)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		// The feed host occasionally serves an HTML error page with
		// status 200. Reject anything that does not look tabular.
		contentType := resp.Header.Get("Content-Type")
		if strings.Contains(contentType, "text/html") {
			lastErr = fmt.Errorf("feed served unexpected content-type %q", contentType)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		if c.debug {
			log.Printf("[FEED] Fetched %d bytes (content-type %q)", len(body), contentType)
		}
		return body, nil
	}
	return nil, lastErr
}

// saveLocal replaces the local copy so the freshest feed doubles as the
// next session's starting point.
func (c *Client) saveLocal(data []byte) error {
	if c.cfg.LocalPath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.cfg.LocalPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.cfg.LocalPath, data, 0o644)
}
