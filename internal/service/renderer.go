package service

import (
	"regexp"
	"strings"
	"time"

	"lob-summary/internal/models"
)

const (
	unclassifiedIssue = "Unclassified"
	customerResponse  = "Pending"
	paraphraseWords   = 12
)

var (
	dateLayouts = []string{"2006-01-02", "02-01-2006", "02/01/2006"}

	dateTimeLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"02-01-2006 15:04",
		"02/01/2006 15:04",
	}

	sentenceEnd = regexp.MustCompile(`[.!?](\s|$)`)
)

// ParseStock accepts yes/no style answers.
func ParseStock(raw string) (models.StockAvailability, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true", "1":
		return models.StockYes, nil
	case "no", "n", "false", "0":
		return models.StockNo, nil
	case "":
		return "", invalid("stock_available", "value is required (Yes or No)")
	default:
		return "", invalid("stock_available", "%q is not Yes or No", raw)
	}
}

// FormatFollowUp renders a follow-up date as DD-MM-YYYY, adding HH:MM when
// the input carries a time. Blank input renders as NA.
func FormatFollowUp(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return notAvailable, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("02-01-2006"), nil
		}
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("02-01-2006 15:04"), nil
		}
	}
	return "", invalid("follow_up_date", "%q is not a date (use YYYY-MM-DD, DD-MM-YYYY or DD/MM/YYYY)", raw)
}

// paraphraseVOC keeps the first sentence of the statement, capped in words.
func paraphraseVOC(voc string) string {
	voc = collapseSpace(voc)
	if voc == "" {
		return notAvailable
	}
	if loc := sentenceEnd.FindStringIndex(voc); loc != nil {
		voc = voc[:loc[0]]
	}
	words := strings.Fields(voc)
	if len(words) > paraphraseWords {
		return strings.Join(words[:paraphraseWords], " ") + "..."
	}
	return strings.TrimRight(strings.Join(words, " "), ",;:")
}

func orNA(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return notAvailable
	}
	return s
}

// Renderer produces the LOB summary document.
type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

// Render fills the fixed template. An empty matchedIssueType renders the
// concern as unclassified with NA resolution fields.
func (r *Renderer) Render(req models.GenerationRequest, matchedIssueType string, fields models.ResolutionFields) (string, error) {
	stock, err := ParseStock(req.StockAvailable)
	if err != nil {
		return "", err
	}
	followUp, err := FormatFollowUp(req.FollowUpDate)
	if err != nil {
		return "", err
	}

	issue := strings.TrimSpace(matchedIssueType)
	offered, reason := orNA(fields.OfferedResolution), orNA(fields.Reason)
	service := "Service No"
	if issue == "" {
		issue, offered, reason = unclassifiedIssue, notAvailable, notAvailable
	} else if fields.ServiceOffered {
		service = "Service Yes"
	}

	sections := []string{
		"Brief summary of customer concern: " + issue + " / " + paraphraseVOC(req.VOC) + " / " + service,
		"DP/SM call: " + orNA(req.DPSMCall),
		"Resolution shared along with the reason: " + reason,
		"Stock/Slot Available: " + string(stock),
		"Offered resolution: " + offered,
		"Customer response: " + customerResponse,
		"Follow up – date and time: " + followUp,
	}
	return strings.Join(sections, "\n\n"), nil
}
