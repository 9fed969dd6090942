package finance

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Entry is any ledger record that carries a type tag and an amount.
type Entry[K ~string] interface {
	EntryType() K
	EntryAmount() decimal.Decimal
}

// CategoryTotal is the signed net cost of one category: expenses add,
// income subtracts.
type CategoryTotal struct {
	Category string          `json:"category"`
	Net      decimal.Decimal `json:"net"`
}

// MonthTotal holds income and expense sums for one YYYY-MM month.
type MonthTotal struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// SumByType sums the amounts of entries whose type equals kind.
func SumByType[K ~string, E Entry[K]](entries []E, kind K) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.EntryType() == kind {
			total = total.Add(e.EntryAmount())
		}
	}
	return total
}

// GroupByCategory buckets transactions by category name in order of first
// occurrence.
func GroupByCategory(transactions []Transaction) []CategoryTotal {
	index := make(map[string]int)
	var out []CategoryTotal
	for _, t := range transactions {
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryTotal{Category: t.Category, Net: decimal.Zero})
		}
		switch t.Type {
		case TransactionExpense:
			out[i].Net = out[i].Net.Add(t.Amount)
		case TransactionIncome:
			out[i].Net = out[i].Net.Sub(t.Amount)
		}
	}
	return out
}

// MonthKey formats the calendar month of t as YYYY-MM.
func MonthKey(t Transaction) string {
	return t.Date.Format("2006-01")
}

// GroupByMonth sums income and expense per calendar month, ascending.
func GroupByMonth(transactions []Transaction) []MonthTotal {
	index := make(map[string]int)
	var out []MonthTotal
	for _, t := range transactions {
		key := MonthKey(t)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, MonthTotal{Month: key, Income: decimal.Zero, Expense: decimal.Zero})
		}
		switch t.Type {
		case TransactionIncome:
			out[i].Income = out[i].Income.Add(t.Amount)
		case TransactionExpense:
			out[i].Expense = out[i].Expense.Add(t.Amount)
		}
	}
	// Zero-padded keys sort chronologically.
	slices.SortFunc(out, func(a, b MonthTotal) int { return strings.Compare(a.Month, b.Month) })
	return out
}

// FilterTransactions returns the transactions for which keep reports true.
func FilterTransactions(transactions []Transaction, keep func(Transaction) bool) []Transaction {
	var out []Transaction
	for _, t := range transactions {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
