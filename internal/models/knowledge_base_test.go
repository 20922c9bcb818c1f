package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []IssueRecord {
	return []IssueRecord{
		{
			IssueType:   "Ordered by Mistake",
			VOCExamples: []string{"I ordered by mistake", "Did not mean to order"},
			Resolutions: []TierResolution{{Tier: "Gold", Text: "Service No"}},
		},
		{
			IssueType:   "Wrong Item",
			VOCExamples: []string{"Received a different item"},
		},
	}
}

func TestKnowledgeBase_Lookup(t *testing.T) {
	kb := NewKnowledgeBase(sampleRecords(), []Tier{"Gold"}, SourceMeta{Name: "kb.csv"})

	name, ok := kb.Lookup("Ordered by Mistake")
	require.True(t, ok)
	assert.Equal(t, "Ordered by Mistake", name)

	name, ok = kb.Lookup("  ordered BY mistake ")
	require.True(t, ok)
	assert.Equal(t, "Ordered by Mistake", name)

	_, ok = kb.Lookup("Damaged")
	assert.False(t, ok)
}

func TestKnowledgeBase_RecordsAreCopies(t *testing.T) {
	records := sampleRecords()
	kb := NewKnowledgeBase(records, nil, SourceMeta{})

	records[0].VOCExamples[0] = "mutated input"
	rec, ok := kb.Record("Ordered by Mistake")
	require.True(t, ok)
	assert.Equal(t, "I ordered by mistake", rec.VOCExamples[0])

	rec.VOCExamples[0] = "mutated output"
	again, _ := kb.Record("Ordered by Mistake")
	assert.Equal(t, "I ordered by mistake", again.VOCExamples[0])
}

func TestKnowledgeBase_EachExampleOrder(t *testing.T) {
	kb := NewKnowledgeBase(sampleRecords(), nil, SourceMeta{})

	var seen []string
	kb.EachExample(func(issueType, example, lowered string) bool {
		seen = append(seen, issueType+"|"+lowered)
		return true
	})

	want := []string{
		"Ordered by Mistake|i ordered by mistake",
		"Ordered by Mistake|did not mean to order",
		"Wrong Item|received a different item",
	}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("EachExample order mismatch (-want +got):\n%s", diff)
	}
}

func TestIssueRecord_Resolution(t *testing.T) {
	rec := sampleRecords()[0]

	text, ok := rec.Resolution("gold")
	require.True(t, ok)
	assert.Equal(t, "Service No", text)

	_, ok = rec.Resolution("Silver & Bronze")
	assert.False(t, ok)
	assert.Equal(t, map[string]string{"Gold": "Service No"}, rec.ResolutionMap())
}

func TestEmptyKnowledgeBase(t *testing.T) {
	kb := EmptyKnowledgeBase()
	assert.Equal(t, 0, kb.Len())
	assert.Empty(t, kb.IssueTypes())
}
