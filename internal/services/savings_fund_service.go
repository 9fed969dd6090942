package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/finance"
	"ledgerly/internal/models"
	"ledgerly/internal/pagination"
)

// savingsFundService manages savings funds.
type savingsFundService struct {
	db *gorm.DB
}

// NewSavingsFundService creates a new SavingsFundServicer.
func NewSavingsFundService(db *gorm.DB) SavingsFundServicer {
	return &savingsFundService{db: db}
}

// CreateFund creates an empty fund. An empty color picks the next palette
// color.
func (s *savingsFundService) CreateFund(userID, name, description, color string) (*models.SavingsFund, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "fund name is required")
	}
	if color != "" && !hexColorPattern.MatchString(color) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "color must be a hex value like #3b82f6")
	}

	if color == "" {
		var count int64
		if err := s.db.Model(&models.SavingsFund{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		color = finance.PaletteColor(int(count))
	}

	fund := &models.SavingsFund{
		UserID:      userID,
		Name:        name,
		Description: strings.TrimSpace(description),
		Color:       color,
		Balance:     decimal.Zero,
	}
	if err := s.db.Create(fund).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return fund, nil
}

// GetUserFunds lists the user's funds in creation order.
func (s *savingsFundService) GetUserFunds(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.SavingsFund], error) {
	var totalItems int64
	base := s.db.Model(&models.SavingsFund{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var funds []models.SavingsFund
	if err := base.Order("created_at ASC").Scopes(pagination.Paginate(page)).Find(&funds).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(funds, page, totalItems)
	return &result, nil
}

// GetFundByID retrieves a fund by ID for a specific user.
func (s *savingsFundService) GetFundByID(userID, fundID string) (*models.SavingsFund, error) {
	return getFund(s.db, userID, fundID)
}

// DeleteFund removes a fund together with every savings transaction that
// references it, atomically.
func (s *savingsFundService) DeleteFund(userID, fundID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		fund, err := getFund(tx, userID, fundID)
		if err != nil {
			return err
		}
		if err := tx.Where("savings_fund_id = ? AND user_id = ?", fund.ID, userID).Delete(&models.SavingsTransaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(fund).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

func getFund(db *gorm.DB, userID, fundID string) (*models.SavingsFund, error) {
	var fund models.SavingsFund
	if err := db.Where("id = ? AND user_id = ?", fundID, userID).First(&fund).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSavingsFundNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &fund, nil
}
