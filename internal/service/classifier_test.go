package service

import (
	"strings"
	"testing"

	"lob-summary/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifyMatchesBestExample(t *testing.T) {
	kb := ingestFixture(t, policyCSV)
	c := NewClassifier(nil, 0)

	m := c.Classify(kb, "The phone screen is cracked and damaged")
	assert.True(t, m.Found)
	assert.Equal(t, "Product Damaged", m.IssueType)
	assert.Equal(t, "The screen is cracked on delivery", m.Example)
	assert.Equal(t, 2, m.Score)

	m = c.Classify(kb, "I ordered this by mistake")
	assert.Equal(t, "Ordered by Mistake", m.IssueType)
	assert.Equal(t, 3, m.Score)
}

func TestClassifyIsDeterministic(t *testing.T) {
	kb := ingestFixture(t, policyCSV)
	c := NewClassifier(nil, 0)
	first := c.Classify(kb, "I accidentally ordered the wrong product")
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, c.Classify(kb, "I accidentally ordered the wrong product"))
	}
}

func TestClassifyShortOrUnmatchedText(t *testing.T) {
	kb := ingestFixture(t, policyCSV)
	c := NewClassifier(nil, 0)

	assert.Equal(t, models.Match{}, c.Classify(kb, "broken"))
	assert.Equal(t, models.Match{}, c.Classify(kb, "  1234567890  "))
	assert.False(t, c.Classify(kb, "xyzzy plugh qwerty").Found)
	assert.False(t, c.Classify(models.EmptyKnowledgeBase(), "I ordered this by mistake").Found)
}

func TestClassifyTieGoesToFirstIssueType(t *testing.T) {
	kb := models.NewKnowledgeBase([]models.IssueRecord{
		{IssueType: "First", VOCExamples: []string{"package never arrived"}},
		{IssueType: "Second", VOCExamples: []string{"package never arrived"}},
	}, nil, models.SourceMeta{})

	m := NewClassifier(nil, 0).Classify(kb, "my package never arrived")
	assert.Equal(t, "First", m.IssueType)
}

func TestKeywordOverlapScorer(t *testing.T) {
	var s KeywordOverlapScorer
	assert.Equal(t, 0, s.Score([]string{"the", "box"}, "the box"))
	assert.Equal(t, 2, s.Score([]string{"refund", "refund"}, "refund please"))
	assert.Equal(t, 1, s.Score([]string{"fund"}, "refund please"))
}

type lengthScorer struct{}

func (lengthScorer) Score(tokens []string, loweredExample string) int {
	return len(loweredExample) - len(strings.Join(tokens, " "))
}

func TestClassifierUsesPluggableScorer(t *testing.T) {
	kb := ingestFixture(t, policyCSV)
	m := NewClassifier(lengthScorer{}, 0).Classify(kb, "short text!")
	assert.Equal(t, "I accidentally ordered the wrong product", m.Example)
}

func TestClassifyStoredExampleReturnsItsIssueType(t *testing.T) {
	kb := ingestFixture(t, policyCSV)
	c := NewClassifier(nil, 0)

	kb.EachExample(func(issueType, example, _ string) bool {
		m := c.Classify(kb, strings.ToUpper(example))
		assert.Equal(t, issueType, m.IssueType, example)
		return true
	})
}

func TestClassifyExactExampleBeatsLongerOverlap(t *testing.T) {
	kb := ingestFixture(t, `Nodes,Sub-type / VOC,Gold
Product Damaged,item arrived damaged and the box was also torn,Replacement
Transit Damage,item arrived damaged,Refund
`)
	c := NewClassifier(nil, 0)

	m := c.Classify(kb, "Item arrived damaged")
	assert.True(t, m.Found)
	assert.Equal(t, "Transit Damage", m.IssueType)
	assert.Equal(t, "item arrived damaged", m.Example)
	assert.Equal(t, 3, m.Score)

	m = c.Classify(kb, "  ITEM ARRIVED DAMAGED ")
	assert.Equal(t, "Transit Damage", m.IssueType)
}
