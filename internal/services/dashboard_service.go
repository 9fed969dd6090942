package services

import (
	"time"

	"gorm.io/gorm"

	"ledgerly/internal/finance"
	"ledgerly/internal/logger"
	"ledgerly/internal/metrics"
)

// dashboardService derives dashboard figures from the persisted ledgers.
type dashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB) DashboardServicer {
	return &dashboardService{db: db}
}

// LoadSnapshot reads all four of the user's ledgers.
func (s *dashboardService) LoadSnapshot(userID string) (finance.Snapshot, error) {
	return loadSnapshot(s.db, userID)
}

// GetDashboard computes the dashboard for the given period. Stored fund
// balances that disagree with their ledgers are logged and counted; the
// dashboard itself always shows ledger-derived balances.
func (s *dashboardService) GetDashboard(userID string, period finance.Period, now time.Time) (*finance.Dashboard, error) {
	start := time.Now()
	defer func() {
		metrics.DashboardComputeDuration.Observe(time.Since(start).Seconds())
	}()

	if _, err := finance.ResolveWindow(period, now); err != nil {
		return nil, err
	}

	snapshot, err := loadSnapshot(s.db, userID)
	if err != nil {
		return nil, err
	}

	for _, fund := range snapshot.SavingsFunds {
		if err := finance.VerifyFundBalance(fund, snapshot.SavingsTransactions); err != nil {
			metrics.FundBalanceMismatches.Inc()
			logger.Get().Warnw("stored fund balance disagrees with ledger",
				"user_id", userID,
				"fund_id", fund.ID,
				"error", err.Error(),
			)
		}
	}

	return finance.Compute(snapshot, period, now)
}
