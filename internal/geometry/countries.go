package geometry

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"radio-orbit/internal/config"
)

// Client fetches the static country-boundary document the globe draws.
type Client struct {
	http     *http.Client
	primary  string
	fallback string

	mu     sync.Mutex
	cached []byte
}

func New(cfg *config.Config) *Client {
	return &Client{
		http:     &http.Client{Timeout: 15 * time.Second},
		primary:  cfg.Geometry.PrimaryURL,
		fallback: cfg.Geometry.FallbackURL,
	}
}

// Countries returns the boundary document, trying the primary source
// and then the fallback. The data is static, so the first successful
// fetch is cached for the life of the process.
func (c *Client) Countries(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil {
		return c.cached, nil
	}

	body, err := c.fetch(ctx, c.primary)
	if err != nil {
		log.Printf("⚠️ [Geometry] primary source failed (%v), trying fallback", err)
		body, err = c.fetch(ctx, c.fallback)
	}
	if err != nil {
		return nil, fmt.Errorf("country geometry unavailable: %w", err)
	}

	c.cached = body
	return body, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
