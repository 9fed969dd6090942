package finance

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "ledgerly/internal/errors"
)

// AvailableBalance is the money not yet spent or moved into a fund:
// max(0, income - expense - deposits + withdrawals) over the whole history.
// Anything that needs "how much can go into savings" must call this rather
// than re-deriving it.
func AvailableBalance(transactions []Transaction, savings []SavingsTransaction) decimal.Decimal {
	income := SumByType(transactions, TransactionIncome)
	expense := SumByType(transactions, TransactionExpense)
	deposits := SumByType(savings, SavingsDeposit)
	withdrawals := SumByType(savings, SavingsWithdrawal)

	return floorZero(income.Sub(expense).Sub(deposits).Add(withdrawals))
}

// NetTotal is the signed running total of all transactions. Unlike
// AvailableBalance it may be negative.
func NetTotal(transactions []Transaction) decimal.Decimal {
	return SumByType(transactions, TransactionIncome).Sub(SumByType(transactions, TransactionExpense))
}

// FundBalance derives a fund's balance from its savings transactions,
// floored at zero.
func FundBalance(fundID string, savings []SavingsTransaction) decimal.Decimal {
	var own []SavingsTransaction
	for _, s := range savings {
		if s.FundID == fundID {
			own = append(own, s)
		}
	}
	return floorZero(SumByType(own, SavingsDeposit).Sub(SumByType(own, SavingsWithdrawal)))
}

// ReconcileFunds returns copies of funds with balances derived from the
// savings ledger.
func ReconcileFunds(funds []SavingsFund, savings []SavingsTransaction) []SavingsFund {
	out := make([]SavingsFund, len(funds))
	for i, f := range funds {
		f.Balance = FundBalance(f.ID, savings)
		out[i] = f
	}
	return out
}

// VerifyFundBalance checks a server-provided balance against the fund's
// ledger.
func VerifyFundBalance(fund SavingsFund, savings []SavingsTransaction) error {
	derived := FundBalance(fund.ID, savings)
	if !fund.Balance.Equal(derived) {
		return apperrors.WithMessage(apperrors.ErrFundBalanceMismatch,
			fmt.Sprintf("fund %s reports balance %s but its transactions sum to %s", fund.ID, fund.Balance.StringFixed(2), derived.StringFixed(2)))
	}
	return nil
}

// TotalSavings sums the balances of all funds.
func TotalSavings(funds []SavingsFund) decimal.Decimal {
	total := decimal.Zero
	for _, f := range funds {
		total = total.Add(f.Balance)
	}
	return total
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
