package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ledgerly/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
		Color:  "#3b82f6",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction dated now. amount is a plain
// decimal string such as "12.50".
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, amount, category string) *models.Transaction {
	t.Helper()
	return CreateTestTransactionOn(t, db, userID, txType, amount, category, time.Now())
}

// CreateTestTransactionOn creates a transaction on the given date.
func CreateTestTransactionOn(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, amount, category string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:   userID,
		Type:     txType,
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Date:     date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestSavingsFund creates an empty fund.
func CreateTestSavingsFund(t *testing.T, db *gorm.DB, userID string) *models.SavingsFund {
	t.Helper()

	fund := &models.SavingsFund{
		UserID:  userID,
		Name:    fmt.Sprintf("Test Fund %d", nextID()),
		Color:   "#10b981",
		Balance: decimal.Zero,
	}
	if err := db.Create(fund).Error; err != nil {
		t.Fatalf("failed to create test savings fund: %v", err)
	}
	return fund
}

// CreateTestSavingsTransaction inserts a savings transaction and bumps the
// fund's cached balance so the two stay consistent.
func CreateTestSavingsTransaction(t *testing.T, db *gorm.DB, fund *models.SavingsFund, kind models.SavingsType, amount string) *models.SavingsTransaction {
	t.Helper()

	st := &models.SavingsTransaction{
		UserID:        fund.UserID,
		SavingsFundID: fund.ID,
		Type:          kind,
		Amount:        decimal.RequireFromString(amount),
		Date:          time.Now(),
	}
	if err := db.Create(st).Error; err != nil {
		t.Fatalf("failed to create test savings transaction: %v", err)
	}

	if kind == models.SavingsTypeDeposit {
		fund.Balance = fund.Balance.Add(st.Amount)
	} else {
		fund.Balance = fund.Balance.Sub(st.Amount)
	}
	if err := db.Model(fund).Update("balance", fund.Balance).Error; err != nil {
		t.Fatalf("failed to update test fund balance: %v", err)
	}
	return st
}
