package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"ledgerly/internal/config"
	"ledgerly/internal/logger"
	"ledgerly/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test", "")
}

func testConfig() *config.Config {
	return &config.Config{
		Env:              "test",
		JWTSecret:        "router-test-secret",
		JWTExpirationDur: time.Hour,
	}
}

// testApp is the full router on top of an isolated in-memory database.
type testApp struct {
	router *gin.Engine
}

func setupApp(t *testing.T, cfg *config.Config) *testApp {
	t.Helper()
	config.Set(cfg)
	t.Cleanup(func() { config.Set(nil) })

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	return &testApp{router: NewRouter(db, cfg)}
}

func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) map[string]interface{} {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)
}

func errorCode(result map[string]interface{}) string {
	errObj, _ := result["error"].(map[string]interface{})
	code, _ := errObj["code"].(string)
	return code
}

func assertAmount(t *testing.T, name string, got interface{}, want string) {
	t.Helper()
	d, err := decimal.NewFromString(fmt.Sprint(got))
	if err != nil {
		t.Fatalf("%s: %v is not a decimal", name, got)
	}
	if !d.Equal(decimal.RequireFromString(want)) {
		t.Errorf("expected %s %s, got %s", name, want, d)
	}
}

func (app *testApp) registerUser(t *testing.T, email string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":"Test User","email":%q,"password":"password123","password_confirmation":"password123"}`, email)
	result := expectStatus(t, app.request(http.MethodPost, "/api/v1/auth/register", body, ""), http.StatusCreated)
	token, _ := result["token"].(string)
	if token == "" {
		t.Fatalf("expected token in register response: %v", result)
	}
	return token
}

func (app *testApp) create(t *testing.T, path, body, token string) map[string]interface{} {
	t.Helper()
	result := expectStatus(t, app.request(http.MethodPost, path, body, token), http.StatusCreated)
	return result["data"].(map[string]interface{})
}

func TestAuthFlow(t *testing.T) {
	app := setupApp(t, testConfig())

	token := app.registerUser(t, "auth@test.com")

	t.Run("login", func(t *testing.T) {
		result := expectStatus(t, app.request(http.MethodPost, "/api/v1/auth/login",
			`{"email":"auth@test.com","password":"password123"}`, ""), http.StatusOK)
		if result["token_type"] != "Bearer" {
			t.Errorf("expected Bearer token type, got %v", result["token_type"])
		}
	})

	t.Run("profile", func(t *testing.T) {
		result := expectStatus(t, app.request(http.MethodGet, "/api/v1/profile", "", token), http.StatusOK)
		user := result["data"].(map[string]interface{})
		if user["email"] != "auth@test.com" {
			t.Errorf("expected email auth@test.com, got %v", user["email"])
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		body := `{"name":"Again","email":"auth@test.com","password":"password123","password_confirmation":"password123"}`
		result := expectStatus(t, app.request(http.MethodPost, "/api/v1/auth/register", body, ""), http.StatusConflict)
		if errorCode(result) != "DUPLICATE_EMAIL" {
			t.Errorf("expected DUPLICATE_EMAIL, got %v", result)
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		result := expectStatus(t, app.request(http.MethodPost, "/api/v1/auth/login",
			`{"email":"auth@test.com","password":"nope-nope"}`, ""), http.StatusUnauthorized)
		if errorCode(result) != "INVALID_CREDENTIALS" {
			t.Errorf("expected INVALID_CREDENTIALS, got %v", result)
		}
	})

	t.Run("missing_token", func(t *testing.T) {
		result := expectStatus(t, app.request(http.MethodGet, "/api/v1/dashboard", "", ""), http.StatusUnauthorized)
		if result["status"] != "error" {
			t.Errorf("expected error envelope, got %v", result)
		}
	})
}

func TestTransactionFlow(t *testing.T) {
	app := setupApp(t, testConfig())
	token := app.registerUser(t, "tx@test.com")

	created := app.create(t, "/api/v1/transactions",
		`{"type":"income","amount":1000,"category":"Paycheck","date":"2025-03-01"}`, token)
	id := created["id"].(string)
	assertAmount(t, "amount", created["amount"], "1000")

	app.create(t, "/api/v1/transactions",
		`{"type":"expense","amount":"42.50","category":"Food","description":"groceries"}`, token)

	result := expectStatus(t, app.request(http.MethodGet, "/api/v1/transactions", "", token), http.StatusOK)
	if items := result["data"].([]interface{}); len(items) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(items))
	}
	if _, paged := result["pagination"]; paged {
		t.Error("unpaged listing should not carry pagination")
	}

	result = expectStatus(t, app.request(http.MethodGet, "/api/v1/transactions?type=expense&page=1&page_size=10", "", token), http.StatusOK)
	if items := result["data"].([]interface{}); len(items) != 1 {
		t.Errorf("expected 1 expense, got %d", len(items))
	}
	if _, paged := result["pagination"]; !paged {
		t.Error("paged listing should carry pagination")
	}

	update := `{"type":"income","amount":"1200","category":"Salary","description":"raise","date":"2025-03-01"}`
	result = expectStatus(t, app.request(http.MethodPut, "/api/v1/transactions/"+id, update, token), http.StatusOK)
	updated := result["data"].(map[string]interface{})
	if updated["category"] != "Salary" || updated["description"] != "raise" {
		t.Errorf("expected full replace, got %v", updated)
	}

	expectStatus(t, app.request(http.MethodDelete, "/api/v1/transactions/"+id, "", token), http.StatusOK)
	result = expectStatus(t, app.request(http.MethodGet, "/api/v1/transactions/"+id, "", token), http.StatusNotFound)
	if errorCode(result) != "TRANSACTION_NOT_FOUND" {
		t.Errorf("expected TRANSACTION_NOT_FOUND, got %v", result)
	}

	t.Run("negative_amount_rejected", func(t *testing.T) {
		result := expectStatus(t, app.request(http.MethodPost, "/api/v1/transactions",
			`{"type":"expense","amount":-5,"category":"Food"}`, token), http.StatusBadRequest)
		if errorCode(result) != "INVALID_INPUT" {
			t.Errorf("expected INVALID_INPUT, got %v", result)
		}
	})
}

func TestTransactionsAreScopedByUser(t *testing.T) {
	app := setupApp(t, testConfig())
	alice := app.registerUser(t, "alice@test.com")
	bob := app.registerUser(t, "bob@test.com")

	created := app.create(t, "/api/v1/transactions",
		`{"type":"income","amount":10,"category":"Paycheck"}`, alice)

	expectStatus(t, app.request(http.MethodGet, "/api/v1/transactions/"+created["id"].(string), "", bob), http.StatusNotFound)
	result := expectStatus(t, app.request(http.MethodGet, "/api/v1/transactions", "", bob), http.StatusOK)
	if items := result["data"].([]interface{}); len(items) != 0 {
		t.Errorf("expected bob to see no transactions, got %d", len(items))
	}
}

func TestSavingsFlow(t *testing.T) {
	app := setupApp(t, testConfig())
	token := app.registerUser(t, "savings@test.com")

	app.create(t, "/api/v1/transactions", `{"type":"income","amount":1000,"category":"Paycheck"}`, token)
	app.create(t, "/api/v1/transactions", `{"type":"expense","amount":200,"category":"Food"}`, token)

	fund := app.create(t, "/api/v1/savings-funds", `{"name":"Emergency","color":"#10b981"}`, token)
	fundID := fund["id"].(string)

	deposit := app.create(t, "/api/v1/savings-transactions",
		fmt.Sprintf(`{"savings_fund_id":%q,"type":"deposit","amount":300}`, fundID), token)
	assertAmount(t, "fund balance", deposit["fund_balance"], "300")

	t.Run("deposit_over_available_rejected", func(t *testing.T) {
		body := fmt.Sprintf(`{"savings_fund_id":%q,"type":"deposit","amount":"500.01"}`, fundID)
		result := expectStatus(t, app.request(http.MethodPost, "/api/v1/savings-transactions", body, token), http.StatusBadRequest)
		if errorCode(result) != "INSUFFICIENT_AVAILABLE_BALANCE" {
			t.Errorf("expected INSUFFICIENT_AVAILABLE_BALANCE, got %v", result)
		}
	})

	t.Run("withdrawal_over_fund_rejected", func(t *testing.T) {
		body := fmt.Sprintf(`{"savings_fund_id":%q,"type":"withdrawal","amount":301}`, fundID)
		result := expectStatus(t, app.request(http.MethodPost, "/api/v1/savings-transactions", body, token), http.StatusBadRequest)
		if errorCode(result) != "INSUFFICIENT_FUND_BALANCE" {
			t.Errorf("expected INSUFFICIENT_FUND_BALANCE, got %v", result)
		}
	})

	withdrawal := app.create(t, "/api/v1/savings-transactions",
		fmt.Sprintf(`{"savings_fund_id":%q,"type":"withdrawal","amount":100}`, fundID), token)
	assertAmount(t, "fund balance", withdrawal["fund_balance"], "200")

	result := expectStatus(t, app.request(http.MethodGet, "/api/v1/savings-transactions?savings_fund_id="+fundID, "", token), http.StatusOK)
	items := result["data"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("expected 2 savings transactions, got %d", len(items))
	}
	if first := items[0].(map[string]interface{}); first["fund_name"] != "Emergency" {
		t.Errorf("expected fund_name Emergency, got %v", first["fund_name"])
	}

	result = expectStatus(t, app.request(http.MethodGet, "/api/v1/dashboard?period=month", "", token), http.StatusOK)
	summary := result["data"].(map[string]interface{})["summary"].(map[string]interface{})
	assertAmount(t, "total", summary["total"], "800")
	assertAmount(t, "available balance", summary["available_balance"], "600")
	assertAmount(t, "total savings", summary["total_savings"], "200")
}

func TestFundDeleteCascades(t *testing.T) {
	app := setupApp(t, testConfig())
	token := app.registerUser(t, "cascade@test.com")

	app.create(t, "/api/v1/transactions", `{"type":"income","amount":500,"category":"Paycheck"}`, token)
	fund := app.create(t, "/api/v1/savings-funds", `{"name":"Trip"}`, token)
	fundID := fund["id"].(string)
	app.create(t, "/api/v1/savings-transactions",
		fmt.Sprintf(`{"savings_fund_id":%q,"type":"deposit","amount":150}`, fundID), token)

	expectStatus(t, app.request(http.MethodDelete, "/api/v1/savings-funds/"+fundID, "", token), http.StatusOK)

	result := expectStatus(t, app.request(http.MethodGet, "/api/v1/savings-transactions", "", token), http.StatusOK)
	if items := result["data"].([]interface{}); len(items) != 0 {
		t.Errorf("expected savings transactions of the deleted fund to be gone, got %d", len(items))
	}

	result = expectStatus(t, app.request(http.MethodGet, "/api/v1/dashboard", "", token), http.StatusOK)
	summary := result["data"].(map[string]interface{})["summary"].(map[string]interface{})
	assertAmount(t, "available balance", summary["available_balance"], "500")
	assertAmount(t, "total savings", summary["total_savings"], "0")
}

func TestCategoryFlow(t *testing.T) {
	app := setupApp(t, testConfig())
	token := app.registerUser(t, "cat@test.com")

	created := app.create(t, "/api/v1/categories", `{"name":"Rent","color":"#112233"}`, token)
	id := created["id"].(string)

	result := expectStatus(t, app.request(http.MethodPost, "/api/v1/categories", `{"name":"Rent"}`, token), http.StatusConflict)
	if errorCode(result) != "DUPLICATE_CATEGORY" {
		t.Errorf("expected DUPLICATE_CATEGORY, got %v", result)
	}

	result = expectStatus(t, app.request(http.MethodPut, "/api/v1/categories/"+id, `{"name":"Housing"}`, token), http.StatusOK)
	if updated := result["data"].(map[string]interface{}); updated["name"] != "Housing" {
		t.Errorf("expected renamed category, got %v", updated)
	}

	expectStatus(t, app.request(http.MethodDelete, "/api/v1/categories/"+id, "", token), http.StatusOK)
	expectStatus(t, app.request(http.MethodGet, "/api/v1/categories/"+id, "", token), http.StatusNotFound)
}

func TestDashboardInvalidPeriod(t *testing.T) {
	app := setupApp(t, testConfig())
	token := app.registerUser(t, "period@test.com")

	result := expectStatus(t, app.request(http.MethodGet, "/api/v1/dashboard?period=year", "", token), http.StatusBadRequest)
	if errorCode(result) != "INVALID_PERIOD" {
		t.Errorf("expected INVALID_PERIOD, got %v", result)
	}
}

func TestOperationalRoutes(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsAPIKey = "scrape-key"
	app := setupApp(t, cfg)

	t.Run("health", func(t *testing.T) {
		result := expectStatus(t, app.request(http.MethodGet, "/api/health", "", ""), http.StatusOK)
		if result["status"] != "ok" {
			t.Errorf("expected ok, got %v", result)
		}
	})

	t.Run("metrics_requires_key", func(t *testing.T) {
		rec := app.request(http.MethodGet, "/metrics", "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("metrics_with_key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		req.Header.Set("X-API-Key", "scrape-key")
		rec := httptest.NewRecorder()
		app.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "ledgerly_http_requests_total") {
			t.Error("expected ledgerly_http_requests_total in exposition")
		}
	})

	t.Run("unknown_route", func(t *testing.T) {
		result := expectStatus(t, app.request(http.MethodGet, "/api/v1/nope", "", ""), http.StatusNotFound)
		if errorCode(result) != "NOT_FOUND" {
			t.Errorf("expected NOT_FOUND, got %v", result)
		}
	})
}

func TestCORSConfig(t *testing.T) {
	t.Run("wildcard", func(t *testing.T) {
		cfg := corsConfig([]string{"*"})
		if !cfg.AllowAllOrigins || cfg.AllowCredentials {
			t.Errorf("expected all origins without credentials, got %+v", cfg)
		}
	})

	t.Run("explicit", func(t *testing.T) {
		cfg := corsConfig([]string{"http://localhost:5173"})
		if cfg.AllowAllOrigins || len(cfg.AllowOrigins) != 1 {
			t.Errorf("expected explicit origin list, got %+v", cfg)
		}
	})
}
