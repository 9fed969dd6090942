package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ledgerly/internal/finance"
	"ledgerly/internal/store"
	"ledgerly/internal/wire"
)

// ─── auth ───────────────────────────────────────────────────────────────────

func (a *app) loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a bearer token",
		Long: `Log in with email and password. The token is printed on stdout so it can
be exported: export LEDGER_TOKEN=$(ledgerctl login --email me@example.com)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, err := passwordFlag(cmd)
			if err != nil {
				return err
			}
			c := a.client()
			if _, err := c.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Token())
			return nil
		},
	}
	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password (default $LEDGER_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and print a bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, err := passwordFlag(cmd)
			if err != nil {
				return err
			}
			c := a.client()
			if _, err := c.Register(cmd.Context(), name, email, password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Token())
			return nil
		},
	}
	cmd.Flags().String("name", "", "Display name")
	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password (default $LEDGER_PASSWORD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func passwordFlag(cmd *cobra.Command) (string, error) {
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = os.Getenv("LEDGER_PASSWORD")
	}
	if password == "" {
		return "", fmt.Errorf("password required: pass --password or set LEDGER_PASSWORD")
	}
	return password, nil
}

// ─── dashboard ──────────────────────────────────────────────────────────────

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print balances, period totals and charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			period, err := a.period()
			if err != nil {
				return err
			}
			s, err := a.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			d, err := s.Dashboard(period, a.now())
			if err != nil {
				return err
			}
			renderDashboard(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

// ─── transactions ───────────────────────────────────────────────────────────

func (a *app) transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "List, add and delete income and expense entries",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List transactions in the selected period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			period, err := a.period()
			if err != nil {
				return err
			}
			window, err := finance.ResolveWindow(period, a.now())
			if err != nil {
				return err
			}
			s, err := a.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			txs := finance.FilterTransactions(s.Snapshot().Transactions, func(t finance.Transaction) bool {
				return window.Contains(t.Date)
			})
			renderTransactions(cmd.OutOrStdout(), txs)
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Record an income or expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := transactionInput(cmd)
			if err != nil {
				return err
			}
			s, err := a.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			t, err := s.AddTransaction(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s %s (%s) %s\n", t.Type, t.Amount.StringFixed(2), t.Category, t.ID)
			return nil
		},
	}
	add.Flags().String("type", string(finance.TransactionExpense), "income or expense")
	add.Flags().String("amount", "", "Amount, e.g. 12.50")
	add.Flags().String("category", "", "Category name")
	add.Flags().String("description", "", "Free text")
	add.Flags().String("date", "", "YYYY-MM-DD or RFC 3339 (default now)")
	_ = add.MarkFlagRequired("amount")
	_ = add.MarkFlagRequired("category")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.DeleteTransaction(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted transaction %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, add, del)
	return cmd
}

func transactionInput(cmd *cobra.Command) (store.TransactionInput, error) {
	typ, _ := cmd.Flags().GetString("type")
	rawAmount, _ := cmd.Flags().GetString("amount")
	category, _ := cmd.Flags().GetString("category")
	description, _ := cmd.Flags().GetString("description")

	kind := finance.TransactionType(typ)
	if kind != finance.TransactionIncome && kind != finance.TransactionExpense {
		return store.TransactionInput{}, fmt.Errorf("--type must be income or expense, got %q", typ)
	}
	amount, err := finance.ParseAmount(rawAmount)
	if err != nil {
		return store.TransactionInput{}, err
	}
	date, err := dateFlag(cmd)
	if err != nil {
		return store.TransactionInput{}, err
	}
	return store.TransactionInput{
		Type:        kind,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date,
	}, nil
}

func dateFlag(cmd *cobra.Command) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("date")
	if raw == "" {
		return time.Time{}, nil
	}
	return wire.ParseDate(raw, time.Local)
}

// ─── categories ─────────────────────────────────────────────────────────────

func (a *app) categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List and add categories",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your categories merged with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			renderCategories(cmd.OutOrStdout(), s.Snapshot().Categories)
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			color, _ := cmd.Flags().GetString("color")
			s, err := a.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			c, err := s.AddCategory(cmd.Context(), args[0], color)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created category %s %s\n", c.Name, c.Color)
			return nil
		},
	}
	add.Flags().String("color", "", "Hex color such as #10b981 (default next palette color)")

	cmd.AddCommand(list, add)
	return cmd
}

// ─── savings funds ──────────────────────────────────────────────────────────

func (a *app) fundsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "funds",
		Short: "List, create and delete savings funds",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List funds with balances derived from their savings transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			snap := s.Snapshot()
			renderFunds(cmd.OutOrStdout(), finance.ReconcileFunds(snap.SavingsFunds, snap.SavingsTransactions))
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Create an empty fund",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, _ := cmd.Flags().GetString("description")
			color, _ := cmd.Flags().GetString("color")
			s, err := a.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			f, err := s.CreateFund(cmd.Context(), store.FundInput{Name: args[0], Description: description, Color: color})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created fund %s %s\n", f.Name, f.ID)
			return nil
		},
	}
	add.Flags().String("description", "", "Free text")
	add.Flags().String("color", "", "Hex color such as #10b981")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a fund and all of its savings transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.DeleteFund(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted fund %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, add, del)
	return cmd
}

// ─── deposit / withdraw ─────────────────────────────────────────────────────

func (a *app) savingsCmd(kind finance.SavingsType) *cobra.Command {
	use, short := "deposit", "Move money from the available balance into a fund"
	if kind == finance.SavingsWithdrawal {
		use, short = "withdraw", "Move money from a fund back to the available balance"
	}

	cmd := &cobra.Command{
		Use:   use + " FUND_ID AMOUNT",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := finance.ParseAmount(args[1])
			if err != nil {
				return err
			}
			description, _ := cmd.Flags().GetString("description")
			date, err := dateFlag(cmd)
			if err != nil {
				return err
			}
			s, err := a.loadStore(cmd.Context())
			if err != nil {
				return err
			}

			move := s.Deposit
			if kind == finance.SavingsWithdrawal {
				move = s.Withdraw
			}
			if err := move(cmd.Context(), args[0], amount, description, date); err != nil {
				return err
			}

			snap := s.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s of %s; fund balance %s, available %s\n",
				kind, amount.StringFixed(2),
				finance.FundBalance(args[0], snap.SavingsTransactions).StringFixed(2),
				finance.AvailableBalance(snap.Transactions, snap.SavingsTransactions).StringFixed(2))
			return nil
		},
	}
	cmd.Flags().String("description", "", "Free text")
	cmd.Flags().String("date", "", "YYYY-MM-DD or RFC 3339 (default now)")
	return cmd
}
