// Package model - API types for request/response payloads.
package model

// Performance carries lightweight timing metadata on suggestion responses.
type Performance struct {
	ProcessingTime       float64 `json:"processing_time"` // seconds
	SuggestionsGenerated int     `json:"suggestions_generated"`
	MLScoringEnabled     bool    `json:"ml_scoring_enabled"`
}

// SuggestionResponse is the per-owner suggestion payload.
type SuggestionResponse struct {
	OwnerID     string                 `json:"ao_id"`
	OwnerName   string                 `json:"ao_name"`
	Suggestions []Suggestion           `json:"suggestions"`
	Metrics     map[string]interface{} `json:"metrics"`
	Performance Performance            `json:"performance"`
}

// MultiSuggestionsRequest asks for suggestions across several owners at once.
type MultiSuggestionsRequest struct {
	OwnerIDs []string `json:"owner_ids"`
}

// MultiSuggestionsResponse merges the per-owner results into a single list
// sorted by relevance.
type MultiSuggestionsResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
	TotalOwners int          `json:"total_aos"`
	Performance Performance  `json:"performance"`
}

// ChatRequest is a chatbot question, optionally scoped to an owner.
type ChatRequest struct {
	OwnerID  string `json:"ao_id,omitempty"`
	Question string `json:"question"`
}

// ChatResponse is the chatbot answer with its confidence score.
type ChatResponse struct {
	Response       string  `json:"response"`
	Confidence     float64 `json:"confidence"`
	ProcessingTime float64 `json:"processing_time"`
}

// OwnerRef is an id/name pair for the catalog endpoints.
type OwnerRef struct {
	OwnerID   string `json:"ao_id"`
	OwnerName string `json:"ao_name"`
}

// AnalyticsSummary is the dataset-wide rollup served by /analytics/summary.
type AnalyticsSummary struct {
	TotalVulnerabilities    int      `json:"total_vulnerabilities"`
	CriticalVulnerabilities int      `json:"critical_vulnerabilities"`
	HighVulnerabilities     int      `json:"high_vulnerabilities"`
	OpenVulnerabilities     int      `json:"open_vulnerabilities"`
	AverageCVSSScore        float64  `json:"average_cvss_score"`
	AverageRiskScore        float64  `json:"average_risk_score"`
	AverageDaysToClose      *float64 `json:"average_days_to_close"`
	DepartmentsCount        int      `json:"departments_count"`
	OwnersCount             int      `json:"application_owners_count"`
	ApplicationsCount       int      `json:"applications_count"`
}
