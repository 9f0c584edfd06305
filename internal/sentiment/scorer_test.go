package sentiment

import (
	"math"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
)

func TestScoreEmptyInput(t *testing.T) {
	sig := NewScorer(NewLexicon()).Score("AKBNK.IS", nil)
	if sig.Score != 0 {
		t.Fatalf("empty input must score 0, got %v", sig.Score)
	}
	if sig.Explanation != models.Neutral {
		t.Fatalf("empty input must be Neutral, got %v", sig.Explanation)
	}
	if sig.ArticlesAnalyzed != 0 {
		t.Fatalf("empty input must analyze 0 articles, got %d", sig.ArticlesAnalyzed)
	}
}

func TestScoreSkipsBlankItems(t *testing.T) {
	items := []models.NewsItem{
		{Headline: "  ", Summary: ""},
		{Headline: "Profit surges to record high", Summary: "Strong growth reported"},
	}
	sig := NewScorer(NewLexicon()).Score("AKBNK.IS", items)
	if sig.ArticlesAnalyzed != 1 {
		t.Fatalf("blank item must be skipped, analyzed=%d", sig.ArticlesAnalyzed)
	}
	if sig.Score <= 0 {
		t.Fatalf("positive headline should score positive, got %v", sig.Score)
	}
}

type fixedPolarity struct {
	headline float64
	summary  float64
}

func (p fixedPolarity) Polarity(text string) float64 {
	if text == "H" {
		return p.headline
	}
	if text == "S" {
		return p.summary
	}
	return 0
}

func TestHeadlineWeightedDouble(t *testing.T) {
	s := NewScorer(fixedPolarity{headline: 0.9, summary: -0.3})
	sig := s.Score("X", []models.NewsItem{{Headline: "H", Summary: "S"}})
	want := (2*0.9 + -0.3) / 3
	if math.Abs(sig.Score-want) > 1e-9 {
		t.Fatalf("score %v, want %v", sig.Score, want)
	}
}

func TestScoreAveragesOverItems(t *testing.T) {
	s := NewScorer(fixedPolarity{headline: 0.6})
	items := []models.NewsItem{
		{Headline: "H"},
		{Headline: "other words entirely"},
	}
	sig := s.Score("X", items)
	want := ((2 * 0.6 / 3) + 0) / 2
	if math.Abs(sig.Score-want) > 1e-9 {
		t.Fatalf("score %v, want %v", sig.Score, want)
	}
	if sig.ArticlesAnalyzed != 2 {
		t.Fatalf("analyzed %d, want 2", sig.ArticlesAnalyzed)
	}
}

func TestExplanationThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  models.Explanation
	}{
		{0.35, models.VeryPositive},
		{0.3, models.Positive},
		{0.15, models.Positive},
		{0.1, models.Neutral},
		{-0.05, models.Neutral},
		{-0.1, models.Negative},
		{-0.3, models.VeryNegative},
		{-0.5, models.VeryNegative},
	}
	for _, tc := range cases {
		if got := models.ExplanationFor(tc.score); got != tc.want {
			t.Fatalf("ExplanationFor(%v) = %v, want %v", tc.score, got, tc.want)
		}
	}
}

func TestTopHeadlinesLimitAndDateFallback(t *testing.T) {
	items := make([]models.NewsItem, 0, 7)
	for i := 0; i < 7; i++ {
		items = append(items, models.NewsItem{
			Headline:    "headline",
			PublishedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		})
	}
	items[0].PublishedAt = time.Time{} // unparseable upstream timestamp

	sig := NewScorer(NewLexicon()).Score("X", items)
	if len(sig.TopHeadlines) != 5 {
		t.Fatalf("expected 5 top headlines, got %d", len(sig.TopHeadlines))
	}
	if sig.TopHeadlines[0].Date != "Unknown" {
		t.Fatalf("zero timestamp must format as Unknown, got %q", sig.TopHeadlines[0].Date)
	}
	if sig.TopHeadlines[1].Date != "2025-06-01 12:00" {
		t.Fatalf("unexpected date format %q", sig.TopHeadlines[1].Date)
	}
}

func TestLexiconNegation(t *testing.T) {
	l := NewLexicon()
	pos := l.Polarity("strong growth")
	neg := l.Polarity("not strong growth")
	if pos <= 0 {
		t.Fatalf("expected positive polarity, got %v", pos)
	}
	if neg >= pos {
		t.Fatalf("negation should pull the score down: %v >= %v", neg, pos)
	}
}

func TestLexiconBounds(t *testing.T) {
	l := NewLexicon()
	for _, text := range []string{
		"crash collapse bankruptcy fraud crisis",
		"soar surge record outstanding excellent",
		"",
	} {
		p := l.Polarity(text)
		if p < -1 || p > 1 {
			t.Fatalf("polarity out of bounds for %q: %v", text, p)
		}
	}
}
