// Package store holds the client's view of the ledgers. Every mutation is a
// request to the backend followed by a full reload; balances are never
// patched locally.
package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/finance"
	"ledgerly/internal/logger"
)

// TransactionInput is a new income or expense entry.
type TransactionInput struct {
	Type        finance.TransactionType
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
}

// FundInput is a new savings fund.
type FundInput struct {
	Name        string
	Description string
	Color       string
}

// SavingsInput moves money into or out of a fund.
type SavingsInput struct {
	FundID      string
	Type        finance.SavingsType
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

// Ledger is the remote side of the store.
type Ledger interface {
	ListTransactions(ctx context.Context) ([]finance.Transaction, error)
	ListCategories(ctx context.Context) ([]finance.Category, error)
	ListFunds(ctx context.Context) ([]finance.SavingsFund, error)
	ListSavingsTransactions(ctx context.Context) ([]finance.SavingsTransaction, error)

	CreateTransaction(ctx context.Context, in TransactionInput) (finance.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	CreateCategory(ctx context.Context, name, color string) (finance.Category, error)
	CreateFund(ctx context.Context, in FundInput) (finance.SavingsFund, error)
	DeleteFund(ctx context.Context, id string) error
	CreateSavingsTransaction(ctx context.Context, in SavingsInput) error
}

// Store is the process-wide application state.
type Store struct {
	ledger Ledger

	mu       sync.RWMutex
	snapshot finance.Snapshot
}

// New returns an empty store. Call Reload before reading from it.
func New(ledger Ledger) *Store {
	return &Store{
		ledger:   ledger,
		snapshot: finance.Snapshot{Categories: finance.DefaultCategories()},
	}
}

// Reload fetches all four collections concurrently and swaps the snapshot in
// one step. On error the previous snapshot is kept.
func (s *Store) Reload(ctx context.Context) error {
	var next finance.Snapshot
	var userCategories []finance.Category

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		next.Transactions, err = s.ledger.ListTransactions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		userCategories, err = s.ledger.ListCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		next.SavingsFunds, err = s.ledger.ListFunds(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		next.SavingsTransactions, err = s.ledger.ListSavingsTransactions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Get().Warnw("Reload failed, keeping previous snapshot", "error", err)
		return fmt.Errorf("reload: %w", err)
	}
	next.Categories = finance.MergeCategories(userCategories)

	s.mu.Lock()
	s.snapshot = next
	s.mu.Unlock()

	logger.Get().Debugw("Snapshot reloaded",
		"transactions", len(next.Transactions),
		"funds", len(next.SavingsFunds),
		"savings_transactions", len(next.SavingsTransactions),
		"categories", len(next.Categories))
	return nil
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() finance.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return finance.Snapshot{
		Transactions:        slices.Clone(s.snapshot.Transactions),
		SavingsTransactions: slices.Clone(s.snapshot.SavingsTransactions),
		SavingsFunds:        slices.Clone(s.snapshot.SavingsFunds),
		Categories:          slices.Clone(s.snapshot.Categories),
	}
}

// Dashboard computes the dashboard over the current snapshot.
func (s *Store) Dashboard(period finance.Period, now time.Time) (*finance.Dashboard, error) {
	return finance.Compute(s.Snapshot(), period, now)
}

// AddTransaction records a transaction and reloads.
func (s *Store) AddTransaction(ctx context.Context, in TransactionInput) (finance.Transaction, error) {
	t, err := s.ledger.CreateTransaction(ctx, in)
	if err != nil {
		return finance.Transaction{}, err
	}
	return t, s.Reload(ctx)
}

// DeleteTransaction removes a transaction and reloads.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.ledger.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	return s.Reload(ctx)
}

// AddCategory creates a category and reloads. An empty color picks the next
// palette color.
func (s *Store) AddCategory(ctx context.Context, name, color string) (finance.Category, error) {
	if color == "" {
		color = finance.PaletteColor(len(s.Snapshot().Categories))
	}
	c, err := s.ledger.CreateCategory(ctx, name, color)
	if err != nil {
		return finance.Category{}, err
	}
	return c, s.Reload(ctx)
}

// CreateFund creates an empty savings fund and reloads.
func (s *Store) CreateFund(ctx context.Context, in FundInput) (finance.SavingsFund, error) {
	f, err := s.ledger.CreateFund(ctx, in)
	if err != nil {
		return finance.SavingsFund{}, err
	}
	return f, s.Reload(ctx)
}

// DeleteFund removes a fund together with its savings transactions and
// reloads.
func (s *Store) DeleteFund(ctx context.Context, id string) error {
	if err := s.ledger.DeleteFund(ctx, id); err != nil {
		return err
	}
	return s.Reload(ctx)
}

// Deposit moves amount from the available balance into a fund. The request
// is not sent when the current snapshot shows too little available money.
func (s *Store) Deposit(ctx context.Context, fundID string, amount decimal.Decimal, description string, date time.Time) error {
	return s.moveSavings(ctx, SavingsInput{
		FundID:      fundID,
		Type:        finance.SavingsDeposit,
		Amount:      amount,
		Description: description,
		Date:        date,
	})
}

// Withdraw moves amount out of a fund back into the available balance. The
// request is not sent when the fund holds less than amount.
func (s *Store) Withdraw(ctx context.Context, fundID string, amount decimal.Decimal, description string, date time.Time) error {
	return s.moveSavings(ctx, SavingsInput{
		FundID:      fundID,
		Type:        finance.SavingsWithdrawal,
		Amount:      amount,
		Description: description,
		Date:        date,
	})
}

func (s *Store) moveSavings(ctx context.Context, in SavingsInput) error {
	snap := s.Snapshot()
	if !slices.ContainsFunc(snap.SavingsFunds, func(f finance.SavingsFund) bool { return f.ID == in.FundID }) {
		return apperrors.ErrSavingsFundNotFound
	}
	if err := finance.CheckSavingsTransaction(in.Type, in.Amount, in.FundID, snap.Transactions, snap.SavingsTransactions); err != nil {
		return err
	}
	if err := s.ledger.CreateSavingsTransaction(ctx, in); err != nil {
		return err
	}
	return s.Reload(ctx)
}
