package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"statement-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

// ParseTransactions pulls a JSON array of transactions out of a model reply.
// The whole reply is tried first, then the span between the first '[' and the
// last ']'. ok is false when neither decodes; records is then empty, never nil.
// Items that are not objects or carry no usable amount are dropped.
func ParseTransactions(reply string) (records []models.TransactionRecord, ok bool) {
	items, ok := decodeArray(strings.TrimSpace(reply))
	if !ok {
		start := strings.Index(reply, "[")
		end := strings.LastIndex(reply, "]")
		if start < 0 || end < start {
			return []models.TransactionRecord{}, false
		}
		items, ok = decodeArray(reply[start : end+1])
		if !ok {
			return []models.TransactionRecord{}, false
		}
	}

	records = make([]models.TransactionRecord, 0, len(items))
	for _, item := range items {
		record, valid := decodeRecord(item)
		if valid {
			records = append(records, record)
		}
	}

	return records, true
}

func decodeArray(s string) ([]json.RawMessage, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, false
	}
	return items, true
}

func decodeRecord(raw json.RawMessage) (models.TransactionRecord, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return models.TransactionRecord{}, false
	}

	amount, ok := parseAmount(fields["amount"])
	if !ok {
		return models.TransactionRecord{}, false
	}

	return models.TransactionRecord{
		Date:        stringField(fields["date"]),
		Description: stringField(fields["description"]),
		Amount:      amount,
		Category:    NormalizeCategory(models.TransactionCategory(stringField(fields["category"]))),
	}, true
}

func stringField(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// parseAmount accepts JSON numbers and money strings such as "₹1,234.50",
// "Rs. -45.00", "(20.00)", "20.00-" or "1,234.50 Dr".
func parseAmount(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(val), true
	case string:
		return parseAmountString(val)
	default:
		return decimal.Decimal{}, false
	}
}

var amountPattern = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// parseAmountString finds the single number in s and reads the sign from its
// surroundings: parentheses, a minus anywhere before the first digit, or a
// trailing minus or "Dr" all mean a debit. Strings holding more than one
// number are rejected.
func parseAmountString(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	loc := amountPattern.FindStringIndex(s)
	if loc == nil {
		return decimal.Decimal{}, false
	}
	prefix, number, suffix := s[:loc[0]], s[loc[0]:loc[1]], s[loc[1]:]
	if strings.ContainsAny(suffix, "0123456789") {
		return decimal.Decimal{}, false
	}

	if strings.ContainsAny(prefix, "-−") || isDebitSuffix(suffix) {
		negative = true
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(number, ",", ""))
	if err != nil {
		return decimal.Decimal{}, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

func isDebitSuffix(suffix string) bool {
	suffix = strings.ToLower(strings.TrimSpace(suffix))
	if strings.HasPrefix(suffix, "-") || strings.HasPrefix(suffix, "−") {
		return true
	}
	return strings.TrimSuffix(suffix, ".") == "dr"
}
