package services

import (
	"gorm.io/gorm"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/finance"
	"ledgerly/internal/models"
)

// loadSnapshot reads every ledger row the user owns and converts it into
// the form the finance package aggregates over. db may be a transaction.
func loadSnapshot(db *gorm.DB, userID string) (finance.Snapshot, error) {
	var (
		transactions []models.Transaction
		savings      []models.SavingsTransaction
		funds        []models.SavingsFund
		categories   []models.Category
	)

	if err := db.Where("user_id = ?", userID).Order("date ASC").Order("created_at ASC").Find(&transactions).Error; err != nil {
		return finance.Snapshot{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := db.Where("user_id = ?", userID).Order("date ASC").Order("created_at ASC").Find(&savings).Error; err != nil {
		return finance.Snapshot{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&funds).Error; err != nil {
		return finance.Snapshot{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&categories).Error; err != nil {
		return finance.Snapshot{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s := finance.Snapshot{
		Transactions:        make([]finance.Transaction, len(transactions)),
		SavingsTransactions: make([]finance.SavingsTransaction, len(savings)),
		SavingsFunds:        make([]finance.SavingsFund, len(funds)),
		Categories:          make([]finance.Category, len(categories)),
	}
	for i, t := range transactions {
		s.Transactions[i] = toFinanceTransaction(t)
	}
	for i, st := range savings {
		s.SavingsTransactions[i] = toFinanceSavingsTransaction(st)
	}
	for i, f := range funds {
		s.SavingsFunds[i] = toFinanceFund(f)
	}
	for i, c := range categories {
		s.Categories[i] = finance.Category{ID: c.ID, Name: c.Name, Color: c.Color}
	}
	return s, nil
}

func toFinanceTransaction(t models.Transaction) finance.Transaction {
	return finance.Transaction{
		ID:          t.ID,
		Type:        finance.TransactionType(t.Type),
		Amount:      t.Amount,
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date,
	}
}

func toFinanceSavingsTransaction(st models.SavingsTransaction) finance.SavingsTransaction {
	return finance.SavingsTransaction{
		ID:          st.ID,
		FundID:      st.SavingsFundID,
		Type:        finance.SavingsType(st.Type),
		Amount:      st.Amount,
		Description: st.Description,
		Date:        st.Date,
	}
}

func toFinanceFund(f models.SavingsFund) finance.SavingsFund {
	return finance.SavingsFund{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Color:       f.Color,
		Balance:     f.Balance,
		CreatedAt:   f.CreatedAt,
	}
}
