package cli

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"ledgerly/internal/finance"
	"ledgerly/internal/wire"
)

// newTable returns a borderless table so output stays grep-friendly.
func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	if len(header) > 0 {
		t.SetHeader(header)
		t.SetHeaderLine(false)
	}
	t.SetAutoWrapText(false)
	t.SetBorder(false)
	t.SetColumnSeparator("")
	t.SetCenterSeparator("")
	t.SetTablePadding("  ")
	t.SetNoWhiteSpace(true)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	return t
}

func renderDashboard(w io.Writer, d *finance.Dashboard) {
	fmt.Fprintf(w, "Period %s: %s to %s\n\n", d.Period,
		d.Window.Start.Format(wire.DateLayout), d.Window.End.Format(wire.DateLayout))

	summary := newTable(w)
	summary.AppendBulk([][]string{
		{"Total", d.Summary.Total.StringFixed(2)},
		{"Available", d.Summary.AvailableBalance.StringFixed(2)},
		{"Savings", d.Summary.TotalSavings.StringFixed(2)},
		{"Period income", d.Summary.PeriodIncome.StringFixed(2)},
		{"Period expense", d.Summary.PeriodExpense.StringFixed(2)},
		{"Period difference", d.Summary.PeriodDifference.StringFixed(2)},
	})
	summary.Render()

	if len(d.Charts.CategoryBreakdown) > 0 {
		fmt.Fprintln(w, "\nBy category")
		t := newTable(w, "Category", "Amount", "Net", "Color")
		for _, s := range d.Charts.CategoryBreakdown {
			t.Append([]string{s.Category, s.Amount.StringFixed(2), s.Net.StringFixed(2), s.Color})
		}
		t.Render()
	}

	if len(d.Charts.MonthlyTrend) > 0 {
		fmt.Fprintln(w, "\nMonthly trend")
		t := newTable(w, "Month", "Income", "Expense")
		for _, m := range d.Charts.MonthlyTrend {
			t.Append([]string{m.Month, m.Income.StringFixed(2), m.Expense.StringFixed(2)})
		}
		t.Render()
	}

	if len(d.Funds) > 0 {
		fmt.Fprintln(w, "\nSavings funds")
		renderFunds(w, d.Funds)
	}
}

func renderTransactions(w io.Writer, txs []finance.Transaction) {
	t := newTable(w, "Date", "Type", "Amount", "Category", "Description", "ID")
	for _, tx := range txs {
		t.Append([]string{
			tx.Date.Local().Format(wire.DateLayout), string(tx.Type), tx.Amount.StringFixed(2),
			tx.Category, tx.Description, tx.ID,
		})
	}
	t.Render()
}

func renderCategories(w io.Writer, categories []finance.Category) {
	t := newTable(w, "Name", "Color", "ID")
	for _, c := range categories {
		t.Append([]string{c.Name, c.Color, c.ID})
	}
	t.Render()
}

func renderFunds(w io.Writer, funds []finance.SavingsFund) {
	t := newTable(w, "Name", "Balance", "Color", "ID")
	for _, f := range funds {
		t.Append([]string{f.Name, f.Balance.StringFixed(2), f.Color, f.ID})
	}
	t.Render()
}
