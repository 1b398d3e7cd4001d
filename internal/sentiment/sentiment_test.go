package sentiment

import (
	"testing"

	"uplift-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    models.Sentiment
	}{
		{"positive words only", "great amazing helpful", models.SentimentPositive},
		{"negative words only", "poor bad terrible", models.SentimentNegative},
		{"empty message", "", models.SentimentNeutral},
		{"no keywords", "the quarterly report is on the shared drive", models.SentimentNeutral},
		{"positive outweighs negative", "great great work despite the bad start", models.SentimentPositive},
		{"negative outweighs positive", "good effort but terrible unhelpful delivery", models.SentimentNegative},
		{"tie is neutral", "good but bad", models.SentimentNeutral},
		{"case insensitive", "GREAT Excellent WONDERFUL", models.SentimentPositive},
		{"exact token match only", "greatness is not a keyword", models.SentimentNeutral},
		{"single positive word", "helpful", models.SentimentPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.message))
		})
	}
}

// The negative list carries the phrase "needs improvement", but
// tokenization is per whitespace token, so the phrase never matches.
// That mirrors the scoring the product has always used.
func TestClassifyMultiWordPhraseNeverMatches(t *testing.T) {
	assert.Equal(t, models.SentimentNeutral, Classify("this needs improvement"))
	assert.Equal(t, models.SentimentNeutral, Classify("needs improvement"))
}

func TestClassifyDeterministic(t *testing.T) {
	msg := "great work but disappointing follow-up"
	first := Classify(msg)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(msg))
	}
}
