package finance

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "ledgerly/internal/errors"
)

// CheckDeposit rejects a deposit larger than the current available balance.
// It is advisory: the caller runs it before committing the ledger entry.
func CheckDeposit(amount decimal.Decimal, transactions []Transaction, savings []SavingsTransaction) error {
	if !amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	available := AvailableBalance(transactions, savings)
	if amount.GreaterThan(available) {
		return apperrors.WithMessage(apperrors.ErrInsufficientAvailableBalance,
			fmt.Sprintf("deposit of %s exceeds available balance %s", amount.StringFixed(2), available.StringFixed(2)))
	}
	return nil
}

// CheckWithdrawal rejects a withdrawal larger than the fund's balance.
func CheckWithdrawal(amount decimal.Decimal, fundID string, savings []SavingsTransaction) error {
	if !amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	balance := FundBalance(fundID, savings)
	if amount.GreaterThan(balance) {
		return apperrors.WithMessage(apperrors.ErrInsufficientFundBalance,
			fmt.Sprintf("withdrawal of %s exceeds fund balance %s", amount.StringFixed(2), balance.StringFixed(2)))
	}
	return nil
}

// CheckSavingsTransaction dispatches to CheckDeposit or CheckWithdrawal.
func CheckSavingsTransaction(kind SavingsType, amount decimal.Decimal, fundID string, transactions []Transaction, savings []SavingsTransaction) error {
	switch kind {
	case SavingsDeposit:
		return CheckDeposit(amount, transactions, savings)
	case SavingsWithdrawal:
		return CheckWithdrawal(amount, fundID, savings)
	}
	return apperrors.WithMessage(apperrors.ErrInvalidSavingsType, fmt.Sprintf("unknown savings transaction type %q", kind))
}
