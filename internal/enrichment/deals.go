package enrichment

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/valuation"
)

// Deals is the HTTP client for the deals feed.
type Deals struct {
	c *httpClient
}

func NewDeals(baseURL string, timeout time.Duration) *Deals {
	return &Deals{c: newHTTPClient("deals", baseURL, timeout)}
}

// The feed sends prices as decimal strings.
type dealResult struct {
	Title       string `json:"title"`
	SalePrice   string `json:"salePrice"`
	NormalPrice string `json:"normalPrice"`
	Savings     string `json:"savings"`
	StoreID     string `json:"storeID"`
}

var storeNames = map[string]string{
	"1":  "Steam",
	"2":  "GamersGate",
	"3":  "GreenManGaming",
	"7":  "GOG",
	"8":  "Origin",
	"11": "Humble Store",
	"13": "Uplay",
	"15": "Fanatical",
	"25": "Epic Games Store",
}

func storeName(id string) string {
	if name, ok := storeNames[id]; ok {
		return name
	}
	return "Store #" + id
}

func parsePrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// Search returns every deal the feed lists for title. Entries with an
// unparseable sale price are dropped.
func (d *Deals) Search(ctx context.Context, title string) ([]models.Deal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return []models.Deal{}, nil
	}
	var payload []dealResult
	if err := d.c.getJSON(ctx, "/deals", url.Values{"title": {title}}, &payload); err != nil {
		return nil, err
	}

	out := make([]models.Deal, 0, len(payload))
	for _, r := range payload {
		sale, err := strconv.ParseFloat(strings.TrimSpace(r.SalePrice), 64)
		if err != nil {
			continue
		}
		normal := parsePrice(r.NormalPrice)
		discount := parsePrice(r.Savings)
		if discount == 0 && normal > 0 {
			discount = (normal - sale) / normal * 100
		}
		out = append(out, models.Deal{
			Title:           r.Title,
			SalePrice:       sale,
			NormalPrice:     normal,
			StoreName:       storeName(r.StoreID),
			DiscountPercent: valuation.Round(discount, 1),
		})
	}
	return out, nil
}
