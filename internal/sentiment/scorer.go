package sentiment

import (
	"strings"
	"time"

	"StockPulse/internal/domain/models"
	domsvc "StockPulse/internal/domain/service"
)

const topHeadlineCount = 5

// Scorer turns a batch of news items into a SentimentSignal using a pluggable
// polarity strategy.
type Scorer struct {
	polarity domsvc.PolarityScorer
}

// NewScorer builds a scorer around the given polarity strategy.
func NewScorer(p domsvc.PolarityScorer) *Scorer {
	return &Scorer{polarity: p}
}

// Score analyzes a batch of news items. Empty input yields a neutral signal,
// not an error. Items with both headline and summary blank are skipped and
// not counted. The headline carries double the summary's weight.
func (s *Scorer) Score(symbol string, items []models.NewsItem) models.SentimentSignal {
	var sum float64
	analyzed := 0
	for _, item := range items {
		headline := strings.TrimSpace(item.Headline)
		summary := strings.TrimSpace(item.Summary)
		if headline == "" && summary == "" {
			continue
		}

		itemScore := (2*s.polarity.Polarity(headline) + s.polarity.Polarity(summary)) / 3
		sum += itemScore
		analyzed++
	}

	score := 0.0
	if analyzed > 0 {
		score = sum / float64(analyzed)
	}

	return models.SentimentSignal{
		Symbol:           symbol,
		Score:            score,
		Explanation:      models.ExplanationFor(score),
		ArticlesAnalyzed: analyzed,
		TopHeadlines:     topHeadlines(items),
	}
}

// topHeadlines keeps the first items in provider order, each with a
// best-effort formatted publish date. An unusable timestamp formats as
// "Unknown" rather than failing.
func topHeadlines(items []models.NewsItem) []models.Headline {
	out := make([]models.Headline, 0, topHeadlineCount)
	for _, item := range items {
		if len(out) == topHeadlineCount {
			break
		}
		if strings.TrimSpace(item.Headline) == "" {
			continue
		}
		out = append(out, models.Headline{
			Headline: item.Headline,
			Date:     formatPublishDate(item.PublishedAt),
			Source:   item.Source,
			URL:      item.URL,
		})
	}
	return out
}

func formatPublishDate(t time.Time) string {
	if t.IsZero() || t.Unix() <= 0 {
		return "Unknown"
	}
	return t.Format("2006-01-02 15:04")
}
