package models

import "github.com/shopspring/decimal"

type TransactionCategory string

// Categories the extraction prompt asks the model to choose from. Aggregation
// accepts any label the model returns.
const (
	CategoryFood          TransactionCategory = "food"
	CategoryTransport     TransactionCategory = "transport"
	CategoryUtilities     TransactionCategory = "utilities"
	CategoryShopping      TransactionCategory = "shopping"
	CategoryEntertainment TransactionCategory = "entertainment"
	CategoryHealthcare    TransactionCategory = "healthcare"
	CategoryEducation     TransactionCategory = "education"
	CategoryHousing       TransactionCategory = "housing"
	CategoryIncome        TransactionCategory = "income"
	CategoryTransfer      TransactionCategory = "transfer"
	CategoryInvestment    TransactionCategory = "investment"
	CategoryFees          TransactionCategory = "fees"
	CategoryOther         TransactionCategory = "other"

	// CategoryUncategorized collects records the model left without a category.
	CategoryUncategorized TransactionCategory = "uncategorized"
)

// KnownCategories lists the prompt categories in display order.
var KnownCategories = []TransactionCategory{
	CategoryFood, CategoryTransport, CategoryUtilities, CategoryShopping,
	CategoryEntertainment, CategoryHealthcare, CategoryEducation, CategoryHousing,
	CategoryIncome, CategoryTransfer, CategoryInvestment, CategoryFees, CategoryOther,
}

// TransactionRecord is a best-effort row parsed out of model output.
// Date is kept as the model wrote it.
type TransactionRecord struct {
	Date        string
	Description string
	Amount      decimal.Decimal // negative = debit
	Category    TransactionCategory
}

// CategorySummary is the absolute net total of one category.
type CategorySummary struct {
	Category TransactionCategory
	Amount   decimal.Decimal
}
