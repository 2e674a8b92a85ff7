package dto

// AnalysisResponse is the body of a successful POST /api/analyze.
// Transactions and CategorySummary are omitted when the profile does not
// extract transactions, and are empty arrays when nothing could be parsed.
type AnalysisResponse struct {
	Summary         string                     `json:"summary"`
	Filename        string                     `json:"filename"`
	Pages           int                        `json:"pages"`
	TextLength      int                        `json:"textLength"`
	Profile         string                     `json:"profile"`
	Transactions    *[]TransactionResponse     `json:"transactions,omitempty"`
	CategorySummary *[]CategorySummaryResponse `json:"categorySummary,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ServerErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

type HealthResponse struct {
	Status   string   `json:"status"`
	Provider string   `json:"provider"`
	Profile  string   `json:"profile"`
	Profiles []string `json:"profiles"`
}
