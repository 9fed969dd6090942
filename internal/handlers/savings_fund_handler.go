package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerly/internal/services"
)

// SavingsFundHandler handles savings fund requests.
type SavingsFundHandler struct {
	fundService  services.SavingsFundServicer
	auditService services.AuditServicer
}

// NewSavingsFundHandler creates a new SavingsFundHandler.
func NewSavingsFundHandler(fundService services.SavingsFundServicer, auditService services.AuditServicer) *SavingsFundHandler {
	return &SavingsFundHandler{fundService: fundService, auditService: auditService}
}

// CreateSavingsFundRequest represents the request payload for creating a fund.
type CreateSavingsFundRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
	Color       string `json:"color" binding:"omitempty,hex_color"`
}

// CreateFund handles the creation of a savings fund
// @Summary     Create a savings fund
// @Description Create an empty savings fund
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateSavingsFundRequest true "Fund details"
// @Success     201 {object} models.SavingsFund "Fund created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings-funds [post]
func (h *SavingsFundHandler) CreateFund(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSavingsFundRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	fund, err := h.fundService.CreateFund(userID, req.Name, req.Description, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_SAVINGS_FUND", "savings_fund", fund.ID, c.ClientIP(),
		map[string]interface{}{"name": fund.Name})

	respondSuccess(c, http.StatusCreated, "Savings fund created successfully", fund)
}

// GetUserFunds lists the user's savings funds
// @Summary     List savings funds
// @Description List the user's savings funds in creation order
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Items per page (max 100)"
// @Success     200 {array}  models.SavingsFund "Funds"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings-funds [get]
func (h *SavingsFundHandler) GetUserFunds(c *gin.Context) {
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

	result, err := h.fundService.GetUserFunds(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondList(c, page, result)
}

// GetFundByID returns one savings fund
// @Summary     Get savings fund
// @Description Get a savings fund by ID
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Fund ID"
// @Success     200 {object} models.SavingsFund "Fund"
// @Failure     400 {object} ErrorResponse "Invalid fund ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Fund not found"
// @Router      /savings-funds/{id} [get]
func (h *SavingsFundHandler) GetFundByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fundID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	fund, err := h.fundService.GetFundByID(userID, fundID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "", fund)
}

// DeleteFund deletes a fund and all of its savings transactions
// @Summary     Delete savings fund
// @Description Delete a savings fund together with its savings transactions
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Fund ID"
// @Success     200 {object} MessageResponse "Fund deleted"
// @Failure     400 {object} ErrorResponse "Invalid fund ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Fund not found"
// @Router      /savings-funds/{id} [delete]
func (h *SavingsFundHandler) DeleteFund(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fundID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.fundService.DeleteFund(userID, fundID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_SAVINGS_FUND", "savings_fund", fundID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Status: "success", Message: "Savings fund deleted successfully"})
}
