package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsType is the direction of money moving between the available
// balance and a fund.
type SavingsType string

const (
	SavingsTypeDeposit    SavingsType = "deposit"
	SavingsTypeWithdrawal SavingsType = "withdrawal"
)

// SavingsFund is a named pot of money set aside from the available balance.
// Balance is a cached value kept equal to the sum of its savings
// transactions.
type SavingsFund struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Color       string          `gorm:"not null" json:"color"`
	Balance     decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"balance"`

	SavingsTransactions []SavingsTransaction `gorm:"foreignKey:SavingsFundID" json:"savings_transactions,omitempty"`
}

// SavingsTransaction moves money into (deposit) or out of (withdrawal) a
// fund.
type SavingsTransaction struct {
	Base
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	SavingsFundID string          `gorm:"type:uuid;not null;index" json:"savings_fund_id"`
	Type          SavingsType     `gorm:"not null" json:"type"`
	Amount        decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"amount"`
	Description   string          `json:"description"`
	Date          time.Time       `gorm:"not null" json:"date"`

	SavingsFund *SavingsFund `gorm:"foreignKey:SavingsFundID" json:"savings_fund,omitempty"`
}
