// Package cli implements ledgerctl, the command line client for the Ledgerly
// API. Every command loads the full ledger state into a store, so figures
// shown here are derived the same way the dashboard derives them.
package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ledgerly/internal/client"
	"ledgerly/internal/finance"
	"ledgerly/internal/store"
)

const (
	keyAPIURL = "api_url"
	keyToken  = "token"
	keyPeriod = "period"
)

// app carries what every subcommand needs: settings resolved through viper
// and the HTTP client used to build the store.
type app struct {
	v          *viper.Viper
	httpClient *http.Client
	now        func() time.Time
}

// NewRootCommand builds the ledgerctl command tree. httpClient may be nil.
//
// Settings come from flags, then LEDGER_* environment variables, then
// defaults: --api-url / LEDGER_API_URL, --token / LEDGER_TOKEN and
// --period / LEDGER_PERIOD.
func NewRootCommand(httpClient *http.Client) *cobra.Command {
	a := &app{v: viper.New(), httpClient: httpClient, now: time.Now}

	root := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Command line client for Ledgerly",
		Long:          `ledgerctl records income, expenses and savings against a Ledgerly API and prints the derived dashboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("api-url", "http://localhost:8080", "Ledgerly API base URL")
	flags.String("token", "", "Bearer token from 'ledgerctl login'")
	flags.String("period", string(finance.PeriodMonth), "Dashboard period: week, biweekly or month")

	a.v.SetEnvPrefix("LEDGER")
	a.v.AutomaticEnv()
	_ = a.v.BindPFlag(keyAPIURL, flags.Lookup("api-url"))
	_ = a.v.BindPFlag(keyToken, flags.Lookup("token"))
	_ = a.v.BindPFlag(keyPeriod, flags.Lookup("period"))

	root.AddCommand(
		a.loginCmd(),
		a.registerCmd(),
		a.dashboardCmd(),
		a.transactionsCmd(),
		a.categoriesCmd(),
		a.fundsCmd(),
		a.savingsCmd(finance.SavingsDeposit),
		a.savingsCmd(finance.SavingsWithdrawal),
	)
	return root
}

// Execute runs ledgerctl with os.Args.
func Execute() error {
	return NewRootCommand(nil).Execute()
}

func (a *app) client() *client.Client {
	return client.New(a.v.GetString(keyAPIURL), a.v.GetString(keyToken), a.httpClient)
}

// loadStore returns a store populated from the API. Commands that need a
// token fail early without one.
func (a *app) loadStore(ctx context.Context) (*store.Store, error) {
	if a.v.GetString(keyToken) == "" {
		return nil, fmt.Errorf("no token: run 'ledgerctl login' and set LEDGER_TOKEN or pass --token")
	}
	s := store.New(a.client())
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (a *app) period() (finance.Period, error) {
	return finance.ParsePeriod(a.v.GetString(keyPeriod))
}
