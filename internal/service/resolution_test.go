package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"lob-summary/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLabel(t *testing.T) {
	tests := []struct {
		text  string
		label string
		rest  string
	}{
		{"Cancellation – Cancel the order before dispatch", "Cancellation", "Cancel the order before dispatch"},
		{"Refund: process within 7 days", "Refund", "process within 7 days"},
		{"Replacement\nSend a new unit", "Replacement", "Send a new unit"},
		{"• Exchange - offer exchange", "Exchange", "offer exchange"},
		{"Plain resolution", "Plain resolution", ""},
		{"", notAvailable, ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			label, rest := splitLabel(tt.text)
			assert.Equal(t, tt.label, label)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestSplitLabelCapsLength(t *testing.T) {
	label, _ := splitLabel(strings.Repeat("word ", 30))
	assert.LessOrEqual(t, utf8.RuneCountInString(label), maxLabelRunes)
}

func TestSelectTiers(t *testing.T) {
	kb := ingestFixture(t, policyCSV)
	s := NewResolutionSelector("", testLogger())

	fields, err := s.Select(kb, "ordered by mistake", ResolutionFlags{Tier: "silver & bronze", Stock: models.StockNo})
	require.NoError(t, err)
	assert.Equal(t, models.Tier("Silver & Bronze"), fields.Tier)
	assert.Equal(t, "Cancellation", fields.OfferedResolution)
	assert.Equal(t, "Cancellation – Cancel before dispatch only", fields.Reason)
	assert.True(t, fields.ServiceOffered)
	assert.Equal(t, models.StockNo, fields.Stock)

	fields, err = s.Select(kb, "Ordered by Mistake", ResolutionFlags{Tier: "Platinum"})
	require.NoError(t, err)
	assert.Equal(t, models.Tier("Gold"), fields.Tier)

	fields, err = NewResolutionSelector("New & Iron", testLogger()).Select(kb, "Ordered by Mistake", ResolutionFlags{})
	require.NoError(t, err)
	assert.Equal(t, models.Tier("New & Iron"), fields.Tier)
	assert.Equal(t, "Service No", fields.OfferedResolution)
	assert.False(t, fields.ServiceOffered)
}

func TestSelectPrefersDefaultTier(t *testing.T) {
	kb := models.NewKnowledgeBase([]models.IssueRecord{{
		IssueType: "Late Delivery",
		Resolutions: []models.TierResolution{
			{Tier: "Gold", Text: "Escalation – priority"},
			{Tier: "Default", Text: "Apology – share tracking link"},
		},
	}}, []models.Tier{"Gold", "Default"}, models.SourceMeta{})

	fields, err := NewResolutionSelector("", testLogger()).Select(kb, "Late Delivery", ResolutionFlags{})
	require.NoError(t, err)
	assert.Equal(t, models.Tier("Default"), fields.Tier)
	assert.Equal(t, "Apology", fields.OfferedResolution)
}

func TestSelectWithoutResolutions(t *testing.T) {
	kb := models.NewKnowledgeBase([]models.IssueRecord{{
		IssueType:  "Warranty",
		SOPDetails: "Warranty\nCheck the invoice date",
	}}, nil, models.SourceMeta{})

	fields, err := NewResolutionSelector("", testLogger()).Select(kb, "Warranty", ResolutionFlags{})
	require.NoError(t, err)
	assert.Equal(t, notAvailable, fields.OfferedResolution)
	assert.Equal(t, "Check the invoice date", fields.Reason)
	assert.False(t, fields.ServiceOffered)
}

func TestSelectUnknownIssueType(t *testing.T) {
	kb := ingestFixture(t, policyCSV)
	_, err := NewResolutionSelector("", testLogger()).Select(kb, "Nope", ResolutionFlags{})
	assert.ErrorIs(t, err, ErrUnknownIssueType)
}

func TestReasonText(t *testing.T) {
	assert.Equal(t, "Refund – after pickup", reasonText("Refund", "after pickup", "sop"))
	assert.Equal(t, "Refund – check invoice", reasonText("Refund", "", "check invoice"))
	assert.Equal(t, "Refund", reasonText("Refund", "", "refund"))
	assert.Equal(t, notAvailable, reasonText(notAvailable, "", ""))
}
