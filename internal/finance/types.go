// Package finance derives balances, period aggregates and chart series from
// ledger snapshots. Every function here is pure: callers pass complete
// snapshots in and get plain values back.
package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes income from expense entries.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// SavingsType distinguishes money moved into a fund from money moved out.
type SavingsType string

const (
	SavingsDeposit    SavingsType = "deposit"
	SavingsWithdrawal SavingsType = "withdrawal"
)

// Transaction is an income/expense ledger entry. Category holds the category
// name, not its id.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

func (t Transaction) EntryType() TransactionType { return t.Type }
func (t Transaction) EntryAmount() decimal.Decimal { return t.Amount }

// SavingsTransaction is a deposit into or withdrawal from a savings fund.
type SavingsTransaction struct {
	ID          string          `json:"id"`
	FundID      string          `json:"fund_id"`
	Type        SavingsType     `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

func (s SavingsTransaction) EntryType() SavingsType { return s.Type }
func (s SavingsTransaction) EntryAmount() decimal.Decimal { return s.Amount }

// Category is a user or default category. Color is a display hint only.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// SavingsFund is a named sub-account holding part of the available money.
type SavingsFund struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Color       string          `json:"color"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Snapshot is the full current state of all four ledgers.
type Snapshot struct {
	Transactions        []Transaction
	SavingsTransactions []SavingsTransaction
	SavingsFunds        []SavingsFund
	Categories          []Category
}
