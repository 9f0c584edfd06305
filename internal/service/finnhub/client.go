package finnhub

import (
	"context"
	"strings"
	"time"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	xhttp "StockPulse/pkg/http"
)

// Client implements News backed by the Finnhub company-news REST API.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
}

// New creates a new Finnhub news provider.
func New(apiKey, baseURL string, timeout time.Duration) drepo.News {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type fhArticle struct {
	Category string `json:"category"`
	Datetime int64  `json:"datetime"` // unix seconds
	Headline string `json:"headline"`
	ID       int64  `json:"id"`
	Related  string `json:"related"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}

// CompanyNews fetches articles for the symbol between from and to, inclusive.
// Finnhub indexes BIST tickers without the exchange suffix, so ".IS" is
// stripped before querying. A symbol with no coverage yields an empty slice.
func (c *Client) CompanyNews(ctx context.Context, symbol string, from, to time.Time) ([]models.NewsItem, error) {
	query := strings.TrimSuffix(symbol, ".IS")

	var articles []fhArticle
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/company-news",
		QueryParams: map[string][]string{
			"symbol": {query},
			"from":   {from.Format("2006-01-02")},
			"to":     {to.Format("2006-01-02")},
			"token":  {c.apiKey},
		},
	}, &articles)
	if err != nil {
		return nil, models.NewProviderError("finnhub", "company-news", err)
	}

	items := make([]models.NewsItem, 0, len(articles))
	for _, a := range articles {
		item := models.NewsItem{
			Headline: a.Headline,
			Summary:  a.Summary,
			Source:   a.Source,
			URL:      a.URL,
		}
		if a.Datetime > 0 {
			item.PublishedAt = time.Unix(a.Datetime, 0).UTC()
		}
		items = append(items, item)
	}
	return items, nil
}
