package finance

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "ledgerly/internal/errors"
)

var amountPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// ParseAmount converts a plain decimal string into an amount. Signs,
// exponents, NaN and Inf are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !amountPattern.MatchString(s) {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrDataIntegrity, fmt.Sprintf("invalid amount %q", s))
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrDataIntegrity, err)
	}
	return d, nil
}

// Validate checks that a snapshot can be aggregated: known entry types,
// non-negative amounts and no savings transaction pointing at a missing fund.
func (s Snapshot) Validate() error {
	for _, t := range s.Transactions {
		if t.Type != TransactionIncome && t.Type != TransactionExpense {
			return apperrors.WithMessage(apperrors.ErrDataIntegrity, fmt.Sprintf("transaction %s has unknown type %q", t.ID, t.Type))
		}
		if t.Amount.IsNegative() {
			return apperrors.WithMessage(apperrors.ErrDataIntegrity, fmt.Sprintf("transaction %s has negative amount %s", t.ID, t.Amount))
		}
	}

	funds := make(map[string]struct{}, len(s.SavingsFunds))
	for _, f := range s.SavingsFunds {
		if f.Balance.IsNegative() {
			return apperrors.WithMessage(apperrors.ErrDataIntegrity, fmt.Sprintf("fund %s has negative balance %s", f.ID, f.Balance))
		}
		funds[f.ID] = struct{}{}
	}

	for _, st := range s.SavingsTransactions {
		if st.Type != SavingsDeposit && st.Type != SavingsWithdrawal {
			return apperrors.WithMessage(apperrors.ErrDataIntegrity, fmt.Sprintf("savings transaction %s has unknown type %q", st.ID, st.Type))
		}
		if st.Amount.IsNegative() {
			return apperrors.WithMessage(apperrors.ErrDataIntegrity, fmt.Sprintf("savings transaction %s has negative amount %s", st.ID, st.Amount))
		}
		if _, ok := funds[st.FundID]; !ok {
			return apperrors.WithMessage(apperrors.ErrOrphanedSavingsTransaction,
				fmt.Sprintf("savings transaction %s references missing fund %s", st.ID, st.FundID))
		}
	}
	return nil
}

// WithoutFund returns the snapshot as it looks after fund id is deleted:
// the fund and every savings transaction pointing at it are gone.
func (s Snapshot) WithoutFund(id string) Snapshot {
	out := s
	out.SavingsFunds = nil
	for _, f := range s.SavingsFunds {
		if f.ID != id {
			out.SavingsFunds = append(out.SavingsFunds, f)
		}
	}
	out.SavingsTransactions = nil
	for _, st := range s.SavingsTransactions {
		if st.FundID != id {
			out.SavingsTransactions = append(out.SavingsTransactions, st)
		}
	}
	return out
}
