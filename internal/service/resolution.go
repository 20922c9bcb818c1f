package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"lob-summary/internal/models"

	"go.uber.org/zap"
)

const (
	notAvailable  = "NA"
	maxLabelRunes = 60
)

var labelSeparators = []string{" – ", " — ", " - ", ":"}

// ResolutionFlags are the request inputs the selector looks at.
type ResolutionFlags struct {
	Tier     models.Tier
	Stock    models.StockAvailability
	DPSMCall string
}

// ResolutionSelector picks the tier text for an issue type. The fallback
// order is: requested tier, configured default tier, a tier named Default or
// General, then the first declared tier that has text.
type ResolutionSelector struct {
	defaultTier models.Tier
	logger      *zap.Logger
}

func NewResolutionSelector(defaultTier models.Tier, logger *zap.Logger) *ResolutionSelector {
	return &ResolutionSelector{defaultTier: defaultTier, logger: logger}
}

func (s *ResolutionSelector) Select(kb *models.KnowledgeBase, issueType string, flags ResolutionFlags) (models.ResolutionFields, error) {
	name, ok := kb.Lookup(issueType)
	if !ok {
		return models.ResolutionFields{}, fmt.Errorf("%w: %q", ErrUnknownIssueType, issueType)
	}
	rec, _ := kb.Record(name)

	tier, text := s.pickTier(rec, flags.Tier)
	if flags.Tier != "" && !strings.EqualFold(string(flags.Tier), string(tier)) {
		s.logger.Warn("Requested tier missing, using fallback",
			zap.String("issue_type", name),
			zap.String("requested", string(flags.Tier)),
			zap.String("used", string(tier)),
		)
	}

	label, rest := splitLabel(text)
	fields := models.ResolutionFields{
		Tier:              tier,
		TierText:          text,
		OfferedResolution: label,
		Reason:            reasonText(label, rest, sopLine(rec.SOPDetails, name)),
		ServiceOffered:    serviceOffered(label),
		SOPDetails:        rec.SOPDetails,
		Stock:             flags.Stock,
		DPSMCall:          flags.DPSMCall,
	}
	return fields, nil
}

func (s *ResolutionSelector) pickTier(rec models.IssueRecord, requested models.Tier) (models.Tier, string) {
	candidates := []models.Tier{requested, s.defaultTier, "Default", "General"}
	for _, tier := range candidates {
		if tier == "" {
			continue
		}
		for _, res := range rec.Resolutions {
			if strings.EqualFold(string(res.Tier), string(tier)) {
				return res.Tier, res.Text
			}
		}
	}
	if len(rec.Resolutions) > 0 {
		return rec.Resolutions[0].Tier, rec.Resolutions[0].Text
	}
	return "", ""
}

// splitLabel cuts tier text into a short label and the remainder.
func splitLabel(text string) (string, string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return notAvailable, ""
	}

	first, tail, _ := strings.Cut(text, "\n")
	label, rest := first, ""
	for _, sep := range labelSeparators {
		if before, after, ok := strings.Cut(first, sep); ok && strings.TrimSpace(before) != "" {
			label, rest = before, after
			break
		}
	}

	label = collapseSpace(stripBullet(label))
	if utf8.RuneCountInString(label) > maxLabelRunes {
		label = string([]rune(label)[:maxLabelRunes])
	}

	rest = strings.TrimSpace(strings.Join([]string{strings.TrimSpace(rest), strings.TrimSpace(tail)}, " "))
	return strings.TrimSpace(label), collapseSpace(rest)
}

func reasonText(label, rest, sop string) string {
	switch {
	case label == notAvailable && rest == "":
		if sop != "" {
			return sop
		}
		return notAvailable
	case rest != "":
		return label + " – " + rest
	case sop != "" && !strings.EqualFold(sop, label):
		return label + " – " + sop
	default:
		return label
	}
}

// sopLine returns the first SOP line that is not just the issue type, which
// sheets without a dedicated SOP column repeat at the top of the cell.
func sopLine(sop, issueType string) string {
	for _, line := range strings.Split(sop, "\n") {
		line = strings.TrimSpace(strings.TrimRight(collapseSpace(stripBullet(line)), ":"))
		if line != "" && !strings.EqualFold(line, issueType) {
			return line
		}
	}
	return ""
}

func serviceOffered(label string) bool {
	if label == "" || label == notAvailable {
		return false
	}
	return !strings.HasPrefix(strings.ToLower(label), "service no")
}
