package dto

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FlexibleString accepts a JSON string, boolean or number and keeps it as text.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null":
		*f = ""
	case trimmed == "true":
		*f = "Yes"
	case trimmed == "false":
		*f = "No"
	case strings.HasPrefix(trimmed, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexibleString(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected string or boolean, got %s", trimmed)
		}
		*f = FlexibleString(n.String())
	}
	return nil
}

type GenerateRequest struct {
	IssueType      string         `json:"issue_type" example:"Ordered by Mistake"`
	VOC            string         `json:"voc" example:"I ordered this by mistake and want to cancel"`
	StockAvailable FlexibleString `json:"stock_available" swaggertype:"string" example:"No"`
	FollowUpDate   string         `json:"follow_up_date,omitempty" example:"2025-06-25"`
	DPSMCall       string         `json:"dp_sm_call,omitempty" example:"NA"`
	Tier           string         `json:"tier,omitempty" example:"Gold"`
}

type CSVValidation struct {
	MatchedIssueType    string   `json:"matched_issue_type,omitempty"`
	SuggestedResolution string   `json:"suggested_resolution,omitempty"`
	SOPDetails          string   `json:"sop_details,omitempty"`
	VOCExamples         []string `json:"voc_examples,omitempty"`
	MatchScore          int      `json:"match_score,omitempty"`
}

type GenerateResponse struct {
	Summary       string         `json:"summary"`
	CSVValidation *CSVValidation `json:"csv_validation,omitempty"`
}
