package dto

type IssueEntry struct {
	VOCExamples []string          `json:"voc_examples"`
	Resolutions map[string]string `json:"resolutions"`
	SOPDetails  string            `json:"sop_details"`
}

type IssueTypesResponse struct {
	IssueTypes    []string              `json:"issue_types"`
	KnowledgeBase map[string]IssueEntry `json:"knowledge_base"`
}

type CSVInfoResponse struct {
	TotalIssueTypes int      `json:"total_issue_types"`
	CSVFile         string   `json:"csv_file"`
	Checksum        string   `json:"checksum,omitempty"`
	LoadedAt        string   `json:"loaded_at,omitempty"`
	IssueTypes      []string `json:"issue_types"`
	Status          string   `json:"status"`
}

type ValidateResponse struct {
	IssueType   string            `json:"issue_type"`
	Exists      bool              `json:"exists"`
	VOCExamples []string          `json:"voc_examples,omitempty"`
	Resolutions map[string]string `json:"resolutions,omitempty"`
	SOPDetails  string            `json:"sop_details,omitempty"`
	Suggestions []string          `json:"suggestions,omitempty"`
}

type UploadResponse struct {
	Message         string `json:"message"`
	CSVFile         string `json:"csv_file"`
	TotalIssueTypes int    `json:"total_issue_types"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
