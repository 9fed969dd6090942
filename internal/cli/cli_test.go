package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"ledgerly/internal/config"
	"ledgerly/internal/logger"
	"ledgerly/internal/server"
	"ledgerly/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test", "")
}

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{Env: "test", JWTSecret: "cli-test-secret", JWTExpirationDur: time.Hour}
	config.Set(cfg)
	t.Cleanup(func() { config.Set(nil) })

	db := testutil.SetupTestDB(t)
	sqlDB, err := db.DB()
	testutil.AssertNoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	srv := httptest.NewServer(server.NewRouter(db, cfg))
	t.Cleanup(srv.Close)
	return srv
}

// run executes ledgerctl against srv and returns stdout.
func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(srv.Client())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api-url", srv.URL}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, srv *httptest.Server, args ...string) string {
	t.Helper()
	out, err := run(t, srv, args...)
	if err != nil {
		t.Fatalf("ledgerctl %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func lastField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func TestLedgerctlFlow(t *testing.T) {
	t.Setenv("LEDGER_TOKEN", "")
	t.Setenv("LEDGER_PERIOD", "")
	srv := newAPIServer(t)

	token := strings.TrimSpace(mustRun(t, srv, "register", "--name", "Cli", "--email", "cli@test.com", "--password", "password123"))
	if token == "" {
		t.Fatal("expected a token from register")
	}

	login := strings.TrimSpace(mustRun(t, srv, "login", "--email", "cli@test.com", "--password", "password123"))
	if login == "" {
		t.Fatal("expected a token from login")
	}

	mustRun(t, srv, "--token", token, "transactions", "add", "--type", "income", "--amount", "1000", "--category", "Paycheck")
	mustRun(t, srv, "--token", token, "tx", "add", "--amount", "150.25", "--category", "Food", "--description", "groceries")

	out := mustRun(t, srv, "--token", token, "transactions", "list")
	if !strings.Contains(out, "groceries") || !strings.Contains(out, "1000.00") {
		t.Errorf("expected both transactions listed, got:\n%s", out)
	}

	fundID := lastField(mustRun(t, srv, "--token", token, "funds", "add", "Emergency", "--color", "#10b981"))

	out = mustRun(t, srv, "--token", token, "deposit", fundID, "300")
	if !strings.Contains(out, "fund balance 300.00") || !strings.Contains(out, "available 549.75") {
		t.Errorf("unexpected deposit output: %s", out)
	}

	_, err := run(t, srv, "--token", token, "withdraw", fundID, "300.01")
	testutil.AssertAppError(t, err, "INSUFFICIENT_FUND_BALANCE")

	out = mustRun(t, srv, "--token", token, "--period", "week", "dashboard")
	for _, want := range []string{"Period week", "Available", "549.75", "Emergency", "By category", "Food"} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard output missing %q:\n%s", want, out)
		}
	}

	out = mustRun(t, srv, "--token", token, "funds", "list")
	if !strings.Contains(out, "BALANCE") || !strings.Contains(out, "300.00") {
		t.Errorf("expected fund table with header and balance, got:\n%s", out)
	}

	out = mustRun(t, srv, "--token", token, "categories", "list")
	if !strings.Contains(out, "Transport") {
		t.Errorf("expected default categories listed, got:\n%s", out)
	}

	mustRun(t, srv, "--token", token, "funds", "delete", fundID)
	out = mustRun(t, srv, "--token", token, "funds", "list")
	if strings.Contains(out, "Emergency") {
		t.Errorf("expected fund gone, got:\n%s", out)
	}
}

func TestLedgerctlErrors(t *testing.T) {
	t.Setenv("LEDGER_TOKEN", "")
	t.Setenv("LEDGER_PERIOD", "")
	srv := newAPIServer(t)

	t.Run("missing_token", func(t *testing.T) {
		_, err := run(t, srv, "dashboard")
		if err == nil || !strings.Contains(err.Error(), "no token") {
			t.Errorf("expected no token error, got %v", err)
		}
	})

	t.Run("period_from_environment", func(t *testing.T) {
		t.Setenv("LEDGER_PERIOD", "year")
		_, err := run(t, srv, "--token", "anything", "dashboard")
		testutil.AssertAppError(t, err, "INVALID_PERIOD")
	})

	t.Run("invalid_amount", func(t *testing.T) {
		_, err := run(t, srv, "--token", "anything", "deposit", "fund", "1e3")
		testutil.AssertAppError(t, err, "DATA_INTEGRITY")
	})

	t.Run("bad_token", func(t *testing.T) {
		_, err := run(t, srv, "--token", "not-a-jwt", "funds", "list")
		testutil.AssertAppError(t, err, "UNAUTHORIZED")
	})
}
