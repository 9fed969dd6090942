package services

import (
	"time"

	"github.com/shopspring/decimal"

	"ledgerly/internal/finance"
	"ledgerly/internal/models"
	"ledgerly/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name, color string) (*models.Category, error)
	GetUserCategories(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID, name, color string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Type     *models.TransactionType
	Category *string
}

// TransactionInput carries every user-editable field of a transaction. An
// update replaces all of them.
type TransactionInput struct {
	Type        models.TransactionType
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, in TransactionInput) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, in TransactionInput) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// SavingsFundServicer defines the contract for savings fund business logic.
type SavingsFundServicer interface {
	CreateFund(userID, name, description, color string) (*models.SavingsFund, error)
	GetUserFunds(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.SavingsFund], error)
	GetFundByID(userID, fundID string) (*models.SavingsFund, error)
	DeleteFund(userID, fundID string) error
}

// SavingsTransactionView is a savings transaction joined with the display
// fields of its fund.
type SavingsTransactionView struct {
	models.SavingsTransaction
	FundName  string `json:"fund_name"`
	FundColor string `json:"fund_color"`
}

// SavingsTransactionResult is returned after recording a savings
// transaction. FundBalance is the fund's balance recomputed from its ledger.
type SavingsTransactionResult struct {
	models.SavingsTransaction
	FundBalance decimal.Decimal `json:"fund_balance"`
}

// SavingsTransactionServicer defines the contract for moving money between
// the available balance and savings funds.
type SavingsTransactionServicer interface {
	CreateSavingsTransaction(userID, fundID string, kind models.SavingsType, amount decimal.Decimal, description string, date time.Time) (*SavingsTransactionResult, error)
	GetUserSavingsTransactions(userID string, fundID *string, page pagination.PageRequest) (*pagination.PageResponse[SavingsTransactionView], error)
}

// DashboardServicer defines the contract for computing derived figures over
// a user's ledgers.
type DashboardServicer interface {
	LoadSnapshot(userID string) (finance.Snapshot, error)
	GetDashboard(userID string, period finance.Period, now time.Time) (*finance.Dashboard, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
