package service

import (
	"strings"

	"statement-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

// NormalizeCategory maps a model-supplied label to its aggregation key.
func NormalizeCategory(c models.TransactionCategory) models.TransactionCategory {
	key := strings.ToLower(strings.TrimSpace(string(c)))
	if key == "" {
		return models.CategoryUncategorized
	}
	return models.TransactionCategory(key)
}

// SummarizeCategories sums signed amounts per category and reports the
// absolute net value, in order of first appearance.
func SummarizeCategories(records []models.TransactionRecord) []models.CategorySummary {
	totals := make(map[models.TransactionCategory]decimal.Decimal)
	order := make([]models.TransactionCategory, 0)

	for _, r := range records {
		key := NormalizeCategory(r.Category)
		total, seen := totals[key]
		if !seen {
			order = append(order, key)
		}
		totals[key] = total.Add(r.Amount)
	}

	summary := make([]models.CategorySummary, 0, len(order))
	for _, key := range order {
		summary = append(summary, models.CategorySummary{
			Category: key,
			Amount:   totals[key].Abs(),
		})
	}
	return summary
}
