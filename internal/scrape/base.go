// Package scrape pulls stats pages from boardgamearena.com and converts
// them into the same delimited payloads the bookmarklets produce, so the
// output feeds straight into the import pipeline.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/askelund/bgastats/internal/config"
	"github.com/chromedp/chromedp"
)

// userAgent for all page loads. A desktop browser string keeps the site
// from serving the mobile layout.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client drives a headless browser against the site with rate limiting.
// All page loads share one allocator; each load gets a fresh tab.
type Client struct {
	cfg config.ScrapeConfig

	mu          sync.Mutex
	lastRequest time.Time

	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewClient creates a scrape client. Call Close to release the browser.
func NewClient(cfg config.ScrapeConfig) *Client {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Client{
		cfg:      cfg,
		allocCtx: allocCtx,
		cancel:   cancel,
	}
}

// Close releases the browser allocator.
func (c *Client) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// fetchPage loads a URL and returns the rendered HTML, enforcing the
// configured minimum delay between page loads.
func (c *Client) fetchPage(ctx context.Context, url string) (string, error) {
	c.waitTurn()

	browserCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, c.cfg.PageTimeout)
	defer cancel()

	// Honor caller cancellation alongside the page timeout.
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-browserCtx.Done():
		}
	}()

	var htmlContent string
	err := chromedp.Run(browserCtx,
		c.sessionCookies(),
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.Sleep(1*time.Second), // Allow JS to render
		chromedp.OuterHTML(`html`, &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}

	if htmlContent == "" {
		return "", fmt.Errorf("fetch %s: empty page content", url)
	}

	return htmlContent, nil
}

// waitTurn sleeps so consecutive page loads respect MinDelay.
func (c *Client) waitTurn() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.lastRequest.IsZero() {
		elapsed := time.Since(c.lastRequest)
		if elapsed < c.cfg.MinDelay {
			wait := c.cfg.MinDelay - elapsed
			slog.Debug("rate limiting page load", "wait", wait)
			time.Sleep(wait)
		}
	}
	c.lastRequest = time.Now()
}

// parseHTML converts rendered HTML into a goquery document.
func parseHTML(htmlContent string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse page html: %w", err)
	}
	return doc, nil
}
