package service

import (
	"strings"
	"testing"

	"lob-summary/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStock(t *testing.T) {
	for _, in := range []string{"Yes", "yes", " Y ", "true", "1"} {
		got, err := ParseStock(in)
		require.NoError(t, err, in)
		assert.Equal(t, models.StockYes, got)
	}
	for _, in := range []string{"No", "n", "FALSE", "0"} {
		got, err := ParseStock(in)
		require.NoError(t, err, in)
		assert.Equal(t, models.StockNo, got)
	}

	_, err := ParseStock("maybe")
	assert.ErrorIs(t, err, ErrValidation)
	var verr *ValidationError
	_, err = ParseStock("")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "stock_available", verr.Field)
}

func TestFormatFollowUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "NA"},
		{"2025-06-25", "25-06-2025"},
		{"25-06-2025", "25-06-2025"},
		{"25/06/2025", "25-06-2025"},
		{"2025-06-25T14:30:00Z", "25-06-2025 14:30"},
		{"2025-06-25 09:05", "25-06-2025 09:05"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := FormatFollowUp(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := FormatFollowUp("next tuesday")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParaphraseVOC(t *testing.T) {
	assert.Equal(t, "I accidentally ordered the wrong product", paraphraseVOC("I accidentally ordered the wrong product. Did not open the package."))
	assert.Equal(t, "one two three four five six seven eight nine ten eleven twelve...", paraphraseVOC("one two three four five six seven eight nine ten eleven twelve thirteen"))
	assert.Equal(t, "NA", paraphraseVOC("   "))
	assert.Equal(t, "v1.2 is broken", paraphraseVOC("v1.2 is broken"))
}

func TestRenderScenario(t *testing.T) {
	kb := ingestFixture(t, policyCSV)
	fields, err := NewResolutionSelector("", testLogger()).Select(kb, "Ordered by Mistake", ResolutionFlags{Stock: models.StockNo})
	require.NoError(t, err)

	req := models.GenerationRequest{
		IssueType:      "Ordered by Mistake",
		VOC:            "I accidentally ordered the wrong product, did not open the package.",
		StockAvailable: "No",
		FollowUpDate:   "2025-06-25",
	}
	summary, err := NewRenderer().Render(req, "Ordered by Mistake", fields)
	require.NoError(t, err)

	want := strings.Join([]string{
		"Brief summary of customer concern: Ordered by Mistake / I accidentally ordered the wrong product, did not open the package / Service Yes",
		"DP/SM call: NA",
		"Resolution shared along with the reason: Cancellation – Cancel the order before dispatch",
		"Stock/Slot Available: No",
		"Offered resolution: Cancellation",
		"Customer response: Pending",
		"Follow up – date and time: 25-06-2025",
	}, "\n\n")
	assert.Equal(t, want, summary)

	again, err := NewRenderer().Render(req, "Ordered by Mistake", fields)
	require.NoError(t, err)
	assert.Equal(t, summary, again)
}

func TestRenderUnclassified(t *testing.T) {
	summary, err := NewRenderer().Render(models.GenerationRequest{
		VOC:            "broken",
		StockAvailable: "yes",
		DPSMCall:       "Done",
	}, "", models.ResolutionFields{})
	require.NoError(t, err)

	sections := strings.Split(summary, "\n\n")
	require.Len(t, sections, 7)
	assert.Equal(t, "Brief summary of customer concern: Unclassified / broken / Service No", sections[0])
	assert.Equal(t, "DP/SM call: Done", sections[1])
	assert.Equal(t, "Resolution shared along with the reason: NA", sections[2])
	assert.Equal(t, "Stock/Slot Available: Yes", sections[3])
	assert.Equal(t, "Offered resolution: NA", sections[4])
	assert.Equal(t, "Follow up – date and time: NA", sections[6])
}

func TestRenderRejectsBadInput(t *testing.T) {
	_, err := NewRenderer().Render(models.GenerationRequest{StockAvailable: "perhaps"}, "", models.ResolutionFields{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewRenderer().Render(models.GenerationRequest{StockAvailable: "No", FollowUpDate: "31-31-2025"}, "", models.ResolutionFields{})
	assert.ErrorIs(t, err, ErrValidation)
}
