package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/metrics"
	"ledgerly/internal/models"
	"ledgerly/internal/services"
	"ledgerly/internal/uuid"
	"ledgerly/internal/wire"
)

// SavingsTransactionHandler handles deposits into and withdrawals from
// savings funds.
type SavingsTransactionHandler struct {
	savingsService services.SavingsTransactionServicer
	auditService   services.AuditServicer
}

// NewSavingsTransactionHandler creates a new SavingsTransactionHandler.
func NewSavingsTransactionHandler(savingsService services.SavingsTransactionServicer, auditService services.AuditServicer) *SavingsTransactionHandler {
	return &SavingsTransactionHandler{savingsService: savingsService, auditService: auditService}
}

// CreateSavingsTransactionRequest represents a deposit or withdrawal.
type CreateSavingsTransactionRequest struct {
	SavingsFundID wire.ID            `json:"savings_fund_id" binding:"required" swaggertype:"string"`
	Type          models.SavingsType `json:"type" binding:"required,savings_type"`
	Amount        *wire.Amount       `json:"amount" binding:"required" swaggertype:"string" example:"100.00"`
	Description   string             `json:"description" binding:"max=500"`
	Date          *wire.Date         `json:"date" swaggertype:"string" example:"2025-03-02"`
}

// CreateSavingsTransaction records a deposit or withdrawal
// @Summary     Create a savings transaction
// @Description Deposit into or withdraw from a fund. Deposits are limited to the available balance, withdrawals to the fund balance.
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateSavingsTransactionRequest true "Savings transaction"
// @Success     201 {object} services.SavingsTransactionResult "Recorded, with the fund's new balance"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Fund not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings-transactions [post]
func (h *SavingsTransactionHandler) CreateSavingsTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSavingsTransactionRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	fundID := req.SavingsFundID.String()
	if !uuid.IsValid(fundID) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid savings_fund_id"))
		return
	}

	var date time.Time
	if req.Date != nil {
		date = req.Date.Time
	}

	result, err := h.savingsService.CreateSavingsTransaction(userID, fundID, req.Type, req.Amount.Decimal, req.Description, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientAvailableBalance) || errors.Is(err, apperrors.ErrInsufficientFundBalance) {
			var appErr *apperrors.AppError
			errors.As(err, &appErr)
			metrics.SavingsRejected.WithLabelValues(appErr.Code).Inc()
		}
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_SAVINGS_TRANSACTION", "savings_transaction", result.ID, c.ClientIP(),
		map[string]interface{}{"fund_id": fundID, "type": req.Type, "amount": result.Amount.String()})

	respondSuccess(c, http.StatusCreated, "Savings transaction recorded successfully", result)
}

// GetUserSavingsTransactions lists savings transactions
// @Summary     List savings transactions
// @Description List savings transactions newest first, with fund name and color
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       savings_fund_id query string false "Only this fund"
// @Param       page            query int    false "Page number"
// @Param       page_size       query int    false "Items per page (max 100)"
// @Success     200 {array}  services.SavingsTransactionView "Savings transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings-transactions [get]
func (h *SavingsTransactionHandler) GetUserSavingsTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var fundID *string
	if v := c.Query("savings_fund_id"); v != "" {
		if !uuid.IsValid(v) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid savings_fund_id"))
			return
		}
		fundID = &v
	}

	result, err := h.savingsService.GetUserSavingsTransactions(userID, fundID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondList(c, page, result)
}
