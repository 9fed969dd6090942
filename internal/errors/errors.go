// Package errors provides custom error types for the Ledgerly API.
// Service and core errors use AppError so handlers can render consistent
// responses without leaking internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so wrapped
// copies still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Too many failed login attempts, try again later", StatusCode: http.StatusTooManyRequests}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Invalid argument errors.
var (
	ErrInvalidPeriod = &AppError{Code: "INVALID_PERIOD", Message: "Period must be one of week, biweekly or month", StatusCode: http.StatusBadRequest}
)

// Data integrity errors. Raised when a ledger snapshot cannot be aggregated
// without producing wrong numbers.
var (
	ErrDataIntegrity              = &AppError{Code: "DATA_INTEGRITY", Message: "Ledger data is inconsistent", StatusCode: http.StatusUnprocessableEntity}
	ErrOrphanedSavingsTransaction = &AppError{Code: "ORPHANED_SAVINGS_TRANSACTION", Message: "Savings transaction references a missing fund", StatusCode: http.StatusUnprocessableEntity}
	ErrFundBalanceMismatch        = &AppError{Code: "FUND_BALANCE_MISMATCH", Message: "Fund balance does not match its transactions", StatusCode: http.StatusUnprocessableEntity}
)

// Precondition errors. Checked before a ledger mutation is committed.
var (
	ErrInsufficientAvailableBalance = &AppError{Code: "INSUFFICIENT_AVAILABLE_BALANCE", Message: "Amount exceeds the available balance", StatusCode: http.StatusBadRequest}
	ErrInsufficientFundBalance      = &AppError{Code: "INSUFFICIENT_FUND_BALANCE", Message: "Amount exceeds the fund balance", StatusCode: http.StatusBadRequest}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Category errors.
var (
	ErrCategoryNotFound  = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCategory = &AppError{Code: "DUPLICATE_CATEGORY", Message: "A category with this name already exists", StatusCode: http.StatusConflict}
)

// Transaction errors.
var (
	ErrTransactionNotFound    = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransactionType = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Unsupported transaction type", StatusCode: http.StatusBadRequest}
)

// Savings errors.
var (
	ErrSavingsFundNotFound = &AppError{Code: "SAVINGS_FUND_NOT_FOUND", Message: "Savings fund not found", StatusCode: http.StatusNotFound}
	ErrInvalidSavingsType  = &AppError{Code: "INVALID_SAVINGS_TYPE", Message: "Unsupported savings transaction type", StatusCode: http.StatusBadRequest}
)
