package enrichment

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/vytor/gameshelf/internal/classify"
	"github.com/vytor/gameshelf/internal/models"
)

// MetadataClient looks up catalogue data for a title.
type MetadataClient interface {
	Lookup(ctx context.Context, name string) (*models.Metadata, error)
}

// DealsClient searches storefront deals for a title.
type DealsClient interface {
	Search(ctx context.Context, title string) ([]models.Deal, error)
}

var (
	_ MetadataClient = (*Metadata)(nil)
	_ DealsClient    = (*Deals)(nil)
)

// Metadata is the HTTP client for the catalogue service.
type Metadata struct {
	c *httpClient
}

func NewMetadata(baseURL string, timeout time.Duration) *Metadata {
	return &Metadata{c: newHTTPClient("metadata", baseURL, timeout)}
}

type metadataResult struct {
	Name            string  `json:"name"`
	BackgroundImage string  `json:"background_image"`
	Released        string  `json:"released"`
	Metacritic      float64 `json:"metacritic"`
	Rating          float64 `json:"rating"`
}

// Lookup searches by name and prefers an exact title match over the
// service's top hit.
func (m *Metadata) Lookup(ctx context.Context, name string) (*models.Metadata, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNotFound
	}
	var payload struct {
		Results []metadataResult `json:"results"`
	}
	q := url.Values{"search": {name}, "page_size": {"5"}}
	if err := m.c.getJSON(ctx, "/games", q, &payload); err != nil {
		return nil, err
	}
	if len(payload.Results) == 0 {
		return nil, ErrNotFound
	}

	best := payload.Results[0]
	want := classify.NormalizeTitle(name)
	for _, r := range payload.Results {
		if classify.NormalizeTitle(r.Name) == want {
			best = r
			break
		}
	}
	return &models.Metadata{
		Name:            best.Name,
		Thumbnail:       best.BackgroundImage,
		ReleaseDate:     best.Released,
		CriticScore:     best.Metacritic,
		CommunityRating: best.Rating,
	}, nil
}
