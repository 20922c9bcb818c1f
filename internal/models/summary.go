package models

import "time"

type StockAvailability string

const (
	StockYes StockAvailability = "Yes"
	StockNo  StockAvailability = "No"
)

// GenerationRequest carries the fields of one LOB summary. Optional fields are
// empty strings when absent.
type GenerationRequest struct {
	IssueType      string
	VOC            string
	StockAvailable string
	FollowUpDate   string
	DPSMCall       string
	Tier           Tier
}

// Match is the classifier outcome for a piece of VOC text.
type Match struct {
	IssueType string
	Example   string
	Score     int
	Found     bool
}

// ResolutionFields is what the selector derives for a record.
type ResolutionFields struct {
	Tier              Tier
	TierText          string
	OfferedResolution string
	Reason            string
	ServiceOffered    bool
	SOPDetails        string
	Stock             StockAvailability
	DPSMCall          string
}

type GenerationResult struct {
	Summary             string
	MatchedIssueType    string
	SuggestedResolution string
	SOPDetails          string
	VOCExamples         []string
	Match               Match
}

type ValidationResult struct {
	IssueType   string
	Exists      bool
	VOCExamples []string
	Resolutions map[string]string
	SOPDetails  string
	Suggestions []string
}

// KnowledgeInfo summarizes the active snapshot.
type KnowledgeInfo struct {
	TotalIssueTypes int
	Source          string
	Checksum        string
	LoadedAt        time.Time
	IssueTypes      []string
	Status          string
}
