package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ledgerly/internal/finance"
	"ledgerly/internal/services"
)

// DashboardHandler serves the derived dashboard figures.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
	now              func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, now: time.Now}
}

// GetDashboard computes the dashboard for a period
// @Summary     Get dashboard
// @Description Balances over the whole history, period income/expense and category breakdown, and the monthly trend
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       period query string false "week, biweekly or month (default month)"
// @Success     200 {object} finance.Dashboard "Dashboard"
// @Failure     400 {object} ErrorResponse "Invalid period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Ledger data is inconsistent"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	period, err := finance.ParsePeriod(c.DefaultQuery("period", string(finance.PeriodMonth)))
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(userID, period, h.now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "", dashboard)
}
