package service

import (
	"strings"
	"unicode"

	"festivalhub/internal/microservices/http-api/models"
)

// SentimentClassifier labels free-text feedback.
type SentimentClassifier interface {
	Classify(text string) models.Sentiment
}

// LexiconClassifier sums per-word scores and labels the text by the sign of the total.
// A negator flips the score of the word right after it.
type LexiconClassifier struct {
	scores   map[string]int
	negators map[string]struct{}
}

func NewLexiconClassifier() *LexiconClassifier {
	return &LexiconClassifier{scores: defaultLexicon, negators: defaultNegators}
}

func (c *LexiconClassifier) Score(text string) int {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})

	score := 0
	negate := false
	for _, w := range words {
		if _, ok := c.negators[w]; ok {
			negate = true
			continue
		}
		s := c.scores[w]
		if negate {
			s = -s
			negate = false
		}
		score += s
	}
	return score
}

func (c *LexiconClassifier) Classify(text string) models.Sentiment {
	switch score := c.Score(text); {
	case score > 0:
		return models.SentimentPositive
	case score < 0:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

var defaultNegators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "don't": {}, "didn't": {}, "isn't": {}, "wasn't": {}, "wouldn't": {}, "hardly": {},
}

var defaultLexicon = map[string]int{
	"amazing": 4, "awesome": 4, "best": 3, "brilliant": 4, "clean": 2, "delicious": 3, "enjoy": 2,
	"enjoyed": 2, "excellent": 3, "fantastic": 4, "fast": 1, "fresh": 1, "friendly": 2, "fun": 4,
	"good": 3, "great": 3, "happy": 3, "helpful": 2, "like": 2, "liked": 2, "love": 3, "loved": 3,
	"nice": 3, "perfect": 3, "pleasant": 3, "recommend": 2, "tasty": 2, "wonderful": 4, "worth": 2,
	"awful": -3, "bad": -3, "boring": -3, "cold": -1, "crowded": -1, "dirty": -2, "disappointed": -2,
	"disappointing": -2, "expensive": -1, "hate": -3, "horrible": -3, "late": -1, "mess": -2,
	"overpriced": -2, "poor": -2, "rude": -2, "slow": -2, "terrible": -3, "waste": -1, "worst": -3,
	"wrong": -2,
}
