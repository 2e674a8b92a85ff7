package service

import (
	"testing"

	"statement-analyzer/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(category string, amount int64) models.TransactionRecord {
	return models.TransactionRecord{
		Category: models.TransactionCategory(category),
		Amount:   decimal.NewFromInt(amount),
	}
}

func TestSummarizeCategories(t *testing.T) {
	summary := SummarizeCategories([]models.TransactionRecord{
		record("food", -100),
		record("food", -50),
		record("salary", 200),
	})

	require.Len(t, summary, 2)
	assert.Equal(t, models.TransactionCategory("food"), summary[0].Category)
	assert.True(t, decimal.NewFromInt(150).Equal(summary[0].Amount))
	assert.Equal(t, models.TransactionCategory("salary"), summary[1].Category)
	assert.True(t, decimal.NewFromInt(200).Equal(summary[1].Amount))
}

func TestSummarizeCategories_NetsDebitsAndCredits(t *testing.T) {
	summary := SummarizeCategories([]models.TransactionRecord{
		record("transfer", -300),
		record("transfer", 100),
	})

	require.Len(t, summary, 1)
	assert.True(t, decimal.NewFromInt(200).Equal(summary[0].Amount))
}

func TestSummarizeCategories_NormalizesKeys(t *testing.T) {
	summary := SummarizeCategories([]models.TransactionRecord{
		record(" Food ", -10),
		record("FOOD", -5),
		record("", -20),
		record("   ", -1),
	})

	require.Len(t, summary, 2)
	assert.Equal(t, models.CategoryFood, summary[0].Category)
	assert.Equal(t, "15", summary[0].Amount.String())
	assert.Equal(t, models.CategoryUncategorized, summary[1].Category)
	assert.Equal(t, "21", summary[1].Amount.String())
}

func TestSummarizeCategories_DecimalPrecision(t *testing.T) {
	records := make([]models.TransactionRecord, 0, 10)
	for i := 0; i < 10; i++ {
		records = append(records, models.TransactionRecord{
			Category: "fees",
			Amount:   decimal.RequireFromString("0.1"),
		})
	}

	summary := SummarizeCategories(records)
	require.Len(t, summary, 1)
	assert.Equal(t, "1", summary[0].Amount.String())
}

func TestSummarizeCategories_Empty(t *testing.T) {
	summary := SummarizeCategories(nil)
	assert.NotNil(t, summary)
	assert.Empty(t, summary)
}
