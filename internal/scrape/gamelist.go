package scrape

// gamelist.go pulls the complete game catalog. The site embeds the
// catalog as a JSON array inside an inline script; the page script keys
// it as "game_list", immediately followed by "game_tags". The output is
// the tab-separated game_list payload:
//
//	ID \t NAME \t DISPLAY_NAME \t STATUS \t PREMIUM
//
// with status "private" mapped to "alpha", "public" to "published", and
// premium rendered as 0 or 1.

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// catalogEntry is one game as embedded in the page script.
type catalogEntry struct {
	ID            json.Number `json:"id"`
	Name          string      `json:"name"`
	DisplayNameEn string      `json:"display_name_en"`
	DisplayName   string      `json:"display_name"`
	Status        string      `json:"status"`
	Premium       bool        `json:"premium"`
}

// PullGameList fetches the full catalog page and converts it into the
// game_list payload.
func (c *Client) PullGameList(ctx context.Context) (string, error) {
	htmlContent, err := c.fetchPage(ctx, c.cfg.BaseURL+"/gamelist?allGames=")
	if err != nil {
		return "", err
	}

	doc, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	jsonStr, err := extractCatalogJSON(doc)
	if err != nil {
		return "", err
	}

	payload, count, err := catalogToPayload(jsonStr)
	if err != nil {
		return "", err
	}

	slog.Info("game catalog pulled", "games", count)
	return payload, nil
}

// catalogToPayload converts the embedded catalog JSON into payload rows.
func catalogToPayload(jsonStr string) (string, int, error) {
	var games []catalogEntry
	if err := json.Unmarshal([]byte(jsonStr), &games); err != nil {
		return "", 0, fmt.Errorf("decode game catalog: %w", err)
	}
	if len(games) == 0 {
		return "", 0, fmt.Errorf("game catalog is empty")
	}

	var rows []string
	for _, g := range games {
		// Skip entries missing the essentials
		if g.ID.String() == "" || g.Name == "" {
			continue
		}

		displayName := g.DisplayNameEn
		if displayName == "" {
			displayName = g.DisplayName
		}

		status := g.Status
		switch status {
		case "private":
			status = "alpha"
		case "public":
			status = "published"
		case "":
			status = "published"
		}

		premium := "0"
		if g.Premium {
			premium = "1"
		}

		rows = append(rows, strings.Join([]string{
			g.ID.String(), g.Name, displayName, status, premium,
		}, "\t"))
	}

	if len(rows) == 0 {
		return "", 0, fmt.Errorf("no valid games in catalog")
	}

	return strings.Join(rows, "\n"), len(rows), nil
}

// extractCatalogJSON finds the inline script carrying the catalog and
// slices out the JSON array between the "game_list" key and the
// "game_tags" key that always follows it.
func extractCatalogJSON(doc *goquery.Document) (string, error) {
	var found string
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		start := strings.Index(text, `"game_list"`)
		end := strings.Index(text, `"game_tags"`)
		if start < 0 || end < 0 || end <= start {
			return true
		}

		// Skip past the key, its colon, and the trailing comma before
		// the next key.
		start += len(`"game_list"`) + 1
		found = strings.TrimSpace(text[start : end-1])
		found = strings.TrimSuffix(found, ",")
		return false
	})

	if found == "" {
		return "", fmt.Errorf("game catalog not found in page")
	}
	return found, nil
}
