package sentiment

import (
	"strings"

	"uplift-backend/internal/models"
)

var positiveWords = map[string]struct{}{
	"great":     {},
	"excellent": {},
	"good":      {},
	"amazing":   {},
	"wonderful": {},
	"fantastic": {},
	"helpful":   {},
}

// "needs improvement" can never match a single whitespace token; it is
// kept anyway so the word lists stay in sync with the product taxonomy.
var negativeWords = map[string]struct{}{
	"poor":              {},
	"bad":               {},
	"terrible":          {},
	"unhelpful":         {},
	"disappointing":     {},
	"needs improvement": {},
}

// Classify assigns a coarse sentiment to a feedback message by counting
// exact keyword matches over lowercased whitespace tokens. Ties
// (including no matches at all) are neutral. Pure and deterministic.
func Classify(message string) models.Sentiment {
	var positive, negative int
	for _, word := range strings.Fields(strings.ToLower(message)) {
		if _, ok := positiveWords[word]; ok {
			positive++
		}
		if _, ok := negativeWords[word]; ok {
			negative++
		}
	}

	switch {
	case positive > negative:
		return models.SentimentPositive
	case negative > positive:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
