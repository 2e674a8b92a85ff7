package dto

import "statement-analyzer/internal/models"

type TransactionResponse struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category,omitempty"`
}

type CategorySummaryResponse struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

func NewTransactionResponses(records []models.TransactionRecord) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(records))
	for _, r := range records {
		out = append(out, TransactionResponse{
			Date:        r.Date,
			Description: r.Description,
			Amount:      r.Amount.InexactFloat64(),
			Category:    string(r.Category),
		})
	}
	return out
}

func NewCategorySummaryResponses(summary []models.CategorySummary) []CategorySummaryResponse {
	out := make([]CategorySummaryResponse, 0, len(summary))
	for _, s := range summary {
		out = append(out, CategorySummaryResponse{
			Category: string(s.Category),
			Amount:   s.Amount.InexactFloat64(),
		})
	}
	return out
}
