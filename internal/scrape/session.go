package scrape

// session.go persists login cookies between runs so the scraper does not
// re-authenticate on every pull. Cookies are stored as plain JSON next to
// the app; the file is created on successful login and replayed into
// every new browser tab.

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"
)

// cookieRecord is the on-disk shape of one session cookie.
type cookieRecord struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	Secure   bool    `json:"secure"`
	HTTPOnly bool    `json:"httpOnly"`
}

// HasSession reports whether a saved session file exists.
func (c *Client) HasSession() bool {
	_, err := os.Stat(c.cfg.SessionFile)
	return err == nil
}

// ClearSession deletes the saved session file.
func (c *Client) ClearSession() error {
	err := os.Remove(c.cfg.SessionFile)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Login authenticates against the site with the configured credentials
// and saves the resulting cookies for later page loads.
func (c *Client) Login(ctx context.Context) error {
	if c.cfg.Email == "" || c.cfg.Password == "" {
		return fmt.Errorf("login: SCRAPE_EMAIL and SCRAPE_PASSWORD must be set")
	}

	browserCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, 2*c.cfg.PageTimeout)
	defer cancel()

	var cookies []cookieRecord
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(c.cfg.BaseURL+"/account"),
		chromedp.WaitVisible(`input[name="email"]`, chromedp.ByQuery),
		chromedp.SendKeys(`input[name="email"]`, c.cfg.Email, chromedp.ByQuery),
		chromedp.SendKeys(`input[name="password"]`, c.cfg.Password, chromedp.ByQuery),
		chromedp.Click(`button[type="submit"]`, chromedp.ByQuery),
		chromedp.Sleep(3*time.Second), // Let the redirect settle
		chromedp.ActionFunc(func(ctx context.Context) error {
			got, err := storage.GetCookies().Do(ctx)
			if err != nil {
				return err
			}
			for _, ck := range got {
				cookies = append(cookies, cookieRecord{
					Name:     ck.Name,
					Value:    ck.Value,
					Domain:   ck.Domain,
					Path:     ck.Path,
					Expires:  ck.Expires,
					Secure:   ck.Secure,
					HTTPOnly: ck.HTTPOnly,
				})
			}
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if len(cookies) == 0 {
		return fmt.Errorf("login: no session cookies returned")
	}

	if err := c.saveCookies(cookies); err != nil {
		return err
	}

	slog.Info("scrape session saved", "cookies", len(cookies), "file", c.cfg.SessionFile)
	return nil
}

// sessionCookies returns an action that replays saved cookies into the
// current tab. A missing or unreadable session file is not an error;
// pages that need authentication will fail later with their own message.
func (c *Client) sessionCookies() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		cookies, err := c.loadCookies()
		if err != nil {
			slog.Debug("no scrape session to restore", "error", err)
			return nil
		}

		params := make([]*network.CookieParam, 0, len(cookies))
		for _, ck := range cookies {
			p := &network.CookieParam{
				Name:     ck.Name,
				Value:    ck.Value,
				Domain:   ck.Domain,
				Path:     ck.Path,
				Secure:   ck.Secure,
				HTTPOnly: ck.HTTPOnly,
			}
			if ck.Expires > 0 {
				expires := cdp.TimeSinceEpoch(time.Unix(int64(ck.Expires), 0))
				p.Expires = &expires
			}
			params = append(params, p)
		}

		return network.SetCookies(params).Do(ctx)
	})
}

func (c *Client) saveCookies(cookies []cookieRecord) error {
	if err := os.MkdirAll(filepath.Dir(c.cfg.SessionFile), 0o700); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	data, err := json.MarshalIndent(cookies, "", "  ")
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	if err := os.WriteFile(c.cfg.SessionFile, data, 0o600); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (c *Client) loadCookies() ([]cookieRecord, error) {
	data, err := os.ReadFile(c.cfg.SessionFile)
	if err != nil {
		return nil, err
	}

	var cookies []cookieRecord
	if err := json.Unmarshal(data, &cookies); err != nil {
		return nil, fmt.Errorf("session file corrupt: %w", err)
	}
	return cookies, nil
}
