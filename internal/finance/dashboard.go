package finance

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Summary holds the balance cards.
type Summary struct {
	Total            decimal.Decimal `json:"total"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	PeriodIncome     decimal.Decimal `json:"period_income"`
	PeriodExpense    decimal.Decimal `json:"period_expense"`
	PeriodDifference decimal.Decimal `json:"period_difference"`
	TotalSavings     decimal.Decimal `json:"total_savings"`
}

// CategorySlice is one category of the breakdown chart. Amount is the
// magnitude of Net; Net keeps the sign (positive means net spending).
type CategorySlice struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Net      decimal.Decimal `json:"net"`
	Color    string          `json:"color"`
}

// Charts holds the chart series.
type Charts struct {
	CategoryBreakdown []CategorySlice `json:"category_breakdown"`
	MonthlyTrend      []MonthTotal    `json:"monthly_trend"`
}

// Dashboard is everything the presentation layer renders.
type Dashboard struct {
	Period  Period        `json:"period"`
	Window  Window        `json:"window"`
	Summary Summary       `json:"summary"`
	Charts  Charts        `json:"charts"`
	Funds   []SavingsFund `json:"funds"`
}

// Compute derives the dashboard from a full snapshot.
//
// Balances are computed over the whole history. Period income, period
// expense and the category breakdown only look at transactions inside the
// period window. The monthly trend always uses the whole history so the line
// chart keeps enough points whatever period is selected.
func Compute(s Snapshot, period Period, now time.Time) (*Dashboard, error) {
	window, err := ResolveWindow(period, now)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	inWindow := FilterTransactions(s.Transactions, func(t Transaction) bool {
		return window.Contains(t.Date)
	})

	funds := ReconcileFunds(s.SavingsFunds, s.SavingsTransactions)

	periodIncome := SumByType(inWindow, TransactionIncome)
	periodExpense := SumByType(inWindow, TransactionExpense)

	return &Dashboard{
		Period: period,
		Window: window,
		Summary: Summary{
			Total:            NetTotal(s.Transactions),
			AvailableBalance: AvailableBalance(s.Transactions, s.SavingsTransactions),
			PeriodIncome:     periodIncome,
			PeriodExpense:    periodExpense,
			PeriodDifference: periodIncome.Sub(periodExpense),
			TotalSavings:     TotalSavings(funds),
		},
		Charts: Charts{
			CategoryBreakdown: CategoryBreakdown(inWindow, MergeCategories(s.Categories)),
			MonthlyTrend:      GroupByMonth(s.Transactions),
		},
		Funds: funds,
	}, nil
}

// CategoryBreakdown groups transactions by category and sorts by magnitude,
// largest first. Ties keep first-occurrence order.
func CategoryBreakdown(transactions []Transaction, categories []Category) []CategorySlice {
	totals := GroupByCategory(transactions)
	out := make([]CategorySlice, len(totals))
	for i, t := range totals {
		out[i] = CategorySlice{
			Category: t.Category,
			Amount:   t.Net.Abs(),
			Net:      t.Net,
			Color:    CategoryColor(t.Category, categories),
		}
	}
	slices.SortStableFunc(out, func(a, b CategorySlice) int {
		return b.Amount.Cmp(a.Amount)
	})
	return out
}
