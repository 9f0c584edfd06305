package sentiment

import (
	"strings"
	"unicode"
)

// Lexicon scores text polarity from a weighted word list. Weights live in
// [-1, 1]; the text score is the mean weight of matched tokens, with simple
// negation flipping ("not good" scores like "bad").
type Lexicon struct {
	weights map[string]float64
}

// NewLexicon returns the built-in financial-news lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{weights: lexiconWeights}
}

// Polarity scores one piece of text in [-1, 1]. Empty or unmatched text
// scores 0.
func (l *Lexicon) Polarity(text string) float64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	var sum float64
	var matched int
	negated := false
	for _, tok := range tokens {
		if negators[tok] {
			negated = true
			continue
		}
		w, ok := l.weights[tok]
		if !ok {
			// Negation only reaches the next scored token.
			continue
		}
		if negated {
			w = -w
			negated = false
		}
		sum += w
		matched++
	}
	if matched == 0 {
		return 0
	}

	score := sum / float64(matched)
	if score > 1 {
		score = 1
	} else if score < -1 {
		score = -1
	}
	return score
}

var negators = map[string]bool{
	"not":     true,
	"no":      true,
	"never":   true,
	"without": true,
	"n't":     true,
	"dont":    true,
	"doesnt":  true,
	"isnt":    true,
	"wont":    true,
	"cannot":  true,
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})
}
