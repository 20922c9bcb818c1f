package service

import (
	"strings"
	"unicode/utf8"

	"lob-summary/internal/models"
)

// DefaultMinClassifyChars is the input length at or below which no
// classification is attempted.
const DefaultMinClassifyChars = 10

// Scorer rates how well query tokens fit one lower-cased VOC example.
type Scorer interface {
	Score(tokens []string, loweredExample string) int
}

// KeywordOverlapScorer counts query tokens longer than three characters that
// occur as substrings of the example. Repeated tokens count each time.
type KeywordOverlapScorer struct{}

func (KeywordOverlapScorer) Score(tokens []string, loweredExample string) int {
	score := 0
	for _, t := range tokens {
		if utf8.RuneCountInString(t) > 3 && strings.Contains(loweredExample, t) {
			score++
		}
	}
	return score
}

// Classifier suggests an issue type for free text.
type Classifier struct {
	scorer   Scorer
	minChars int
}

func NewClassifier(scorer Scorer, minChars int) *Classifier {
	if scorer == nil {
		scorer = KeywordOverlapScorer{}
	}
	if minChars <= 0 {
		minChars = DefaultMinClassifyChars
	}
	return &Classifier{scorer: scorer, minChars: minChars}
}

// Classify returns the issue type of a stored example equal to text, ignoring
// case. Otherwise it scans every example in sheet order and keeps the strictly
// highest score, so ties go to the first issue type seen.
func (c *Classifier) Classify(kb *models.KnowledgeBase, text string) models.Match {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= c.minChars {
		return models.Match{}
	}

	lowered := strings.ToLower(text)
	tokens := strings.Fields(lowered)

	if m, ok := c.exact(kb, tokens, lowered); ok {
		return m
	}

	var best models.Match
	kb.EachExample(func(issueType, example, lowered string) bool {
		score := c.scorer.Score(tokens, lowered)
		if score > best.Score {
			best = models.Match{IssueType: issueType, Example: example, Score: score, Found: true}
		}
		return true
	})

	return best
}

func (c *Classifier) exact(kb *models.KnowledgeBase, tokens []string, text string) (models.Match, bool) {
	var m models.Match
	kb.EachExample(func(issueType, example, lowered string) bool {
		if strings.TrimSpace(lowered) != text {
			return true
		}
		m = models.Match{IssueType: issueType, Example: example, Score: c.scorer.Score(tokens, lowered), Found: true}
		return false
	})
	return m, m.Found
}
