package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/finance"
	"ledgerly/internal/models"
	"ledgerly/internal/pagination"
)

// savingsTransactionService moves money between the available balance and
// savings funds.
type savingsTransactionService struct {
	db *gorm.DB
}

// NewSavingsTransactionService creates a new SavingsTransactionServicer.
func NewSavingsTransactionService(db *gorm.DB) SavingsTransactionServicer {
	return &savingsTransactionService{db: db}
}

// CreateSavingsTransaction records a deposit or withdrawal. Deposits may not
// exceed the available balance and withdrawals may not exceed the fund's
// balance, both computed from the persisted ledgers. The fund's cached
// balance is recomputed from its ledger after the insert.
func (s *savingsTransactionService) CreateSavingsTransaction(
	userID string,
	fundID string,
	kind models.SavingsType,
	amount decimal.Decimal,
	description string,
	date time.Time,
) (*SavingsTransactionResult, error) {
	if kind != models.SavingsTypeDeposit && kind != models.SavingsTypeWithdrawal {
		return nil, apperrors.ErrInvalidSavingsType
	}
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if date.IsZero() {
		date = time.Now()
	}
	amount = amount.Round(2)

	var result *SavingsTransactionResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		fund, err := getFund(tx, userID, fundID)
		if err != nil {
			return err
		}

		snapshot, err := loadSnapshot(tx, userID)
		if err != nil {
			return err
		}
		if err := finance.CheckSavingsTransaction(finance.SavingsType(kind), amount, fund.ID,
			snapshot.Transactions, snapshot.SavingsTransactions); err != nil {
			return err
		}

		st := models.SavingsTransaction{
			UserID:        userID,
			SavingsFundID: fund.ID,
			Type:          kind,
			Amount:        amount,
			Description:   strings.TrimSpace(description),
			Date:          date,
		}
		if err := tx.Create(&st).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		ledger := append(snapshot.SavingsTransactions, toFinanceSavingsTransaction(st))
		balance := finance.FundBalance(fund.ID, ledger)
		if err := tx.Model(fund).Update("balance", balance).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		result = &SavingsTransactionResult{SavingsTransaction: st, FundBalance: balance}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetUserSavingsTransactions lists savings transactions, newest first, with
// their fund's name and color. fundID narrows the list to one fund.
func (s *savingsTransactionService) GetUserSavingsTransactions(userID string, fundID *string, page pagination.PageRequest) (*pagination.PageResponse[SavingsTransactionView], error) {
	var totalItems int64
	base := s.db.Model(&models.SavingsTransaction{}).Where("user_id = ?", userID)
	if fundID != nil {
		base = base.Where("savings_fund_id = ?", *fundID)
	}
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var rows []models.SavingsTransaction
	if err := base.
		Preload("SavingsFund").
		Order("date DESC").
		Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	views := make([]SavingsTransactionView, len(rows))
	for i, row := range rows {
		views[i] = SavingsTransactionView{SavingsTransaction: row}
		if row.SavingsFund != nil {
			views[i].FundName = row.SavingsFund.Name
			views[i].FundColor = row.SavingsFund.Color
		}
		views[i].SavingsFund = nil
	}

	result := pagination.NewPageResponse(views, page, totalItems)
	return &result, nil
}
