package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/models"
	"ledgerly/internal/pagination"
	"ledgerly/internal/services"
)

const testTxID = "0190b2a4-7d3c-7c1e-9f00-0000000000b1"

// --- mock transaction service ---

type mockTransactionService struct {
	createTransactionFn   func(userID string, in services.TransactionInput) (*models.Transaction, error)
	getUserTransactionsFn func(userID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	getTransactionByIDFn  func(userID, transactionID string) (*models.Transaction, error)
	updateTransactionFn   func(userID, transactionID string, in services.TransactionInput) (*models.Transaction, error)
	deleteTransactionFn   func(userID, transactionID string) error
}

func (m *mockTransactionService) CreateTransaction(userID string, in services.TransactionInput) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(userID, in)
	}
	return &models.Transaction{Base: models.Base{ID: testTxID}, UserID: userID, Type: in.Type, Amount: in.Amount, Category: in.Category}, nil
}

func (m *mockTransactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if m.getUserTransactionsFn != nil {
		return m.getUserTransactionsFn(userID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, page, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(userID, transactionID)
	}
	return &models.Transaction{Base: models.Base{ID: transactionID}}, nil
}

func (m *mockTransactionService) UpdateTransaction(userID, transactionID string, in services.TransactionInput) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(userID, transactionID, in)
	}
	return &models.Transaction{Base: models.Base{ID: transactionID}, Type: in.Type, Amount: in.Amount, Category: in.Category}, nil
}

func (m *mockTransactionService) DeleteTransaction(userID, transactionID string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(userID, transactionID)
	}
	return nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/transactions", handler.CreateTransaction)
	auth.GET("/transactions", handler.GetUserTransactions)
	auth.GET("/transactions/:id", handler.GetTransactionByID)
	auth.PUT("/transactions/:id", handler.UpdateTransaction)
	auth.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("accepts a numeric amount", func(t *testing.T) {
		var got services.TransactionInput
		txSvc := &mockTransactionService{
			createTransactionFn: func(userID string, in services.TransactionInput) (*models.Transaction, error) {
				got = in
				return &models.Transaction{Base: models.Base{ID: testTxID}, UserID: userID, Type: in.Type, Amount: in.Amount, Category: in.Category}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, audit))

		rec := doRequest(r, "POST", "/transactions",
			`{"type":"income","amount":1000,"category":"Paycheck","description":"Salary","date":"2025-03-01"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !got.Amount.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected amount 1000, got %s", got.Amount)
		}
		if want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local); !got.Date.Equal(want) {
			t.Errorf("expected local midnight %v, got %v", want, got.Date)
		}
		data := dataObject(t, parseJSON(t, rec))
		if data["id"] != testTxID {
			t.Errorf("expected id %s, got %v", testTxID, data["id"])
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "CREATE_TRANSACTION" {
			t.Errorf("expected CREATE_TRANSACTION audit entry, got %+v", audit.entries)
		}
	})

	t.Run("accepts a string amount", func(t *testing.T) {
		var got services.TransactionInput
		txSvc := &mockTransactionService{
			createTransactionFn: func(_ string, in services.TransactionInput) (*models.Transaction, error) {
				got = in
				return &models.Transaction{Base: models.Base{ID: testTxID}}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transactions", `{"type":"expense","amount":"12.34","category":"Food"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !got.Amount.Equal(decimal.RequireFromString("12.34")) {
			t.Errorf("expected amount 12.34, got %s", got.Amount)
		}
		if !got.Date.IsZero() {
			t.Errorf("expected zero date to be left for the service, got %v", got.Date)
		}
	})

	invalid := map[string]string{
		"missing amount":   `{"type":"income","category":"Paycheck"}`,
		"negative amount":  `{"type":"income","amount":-5,"category":"Paycheck"}`,
		"garbage amount":   `{"type":"income","amount":"ten","category":"Paycheck"}`,
		"invalid type":     `{"type":"transfer","amount":5,"category":"Paycheck"}`,
		"missing category": `{"type":"income","amount":5}`,
		"bad date":         `{"type":"income","amount":5,"category":"Paycheck","date":"03/01/2025"}`,
	}
	for name, body := range invalid {
		t.Run("returns 400 on "+name, func(t *testing.T) {
			r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

			rec := doRequest(r, "POST", "/transactions", body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
		})
	}
}

func TestTransactionHandler_GetUserTransactions(t *testing.T) {
	t.Run("returns a plain array when unpaged", func(t *testing.T) {
		txSvc := &mockTransactionService{
			getUserTransactionsFn: func(_ string, page pagination.PageRequest, _ services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
				if page.Paged() {
					t.Errorf("expected unpaged request, got %+v", page)
				}
				resp := pagination.NewPageResponse([]models.Transaction{{Base: models.Base{ID: testTxID}}}, page, 1)
				return &resp, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if len(dataArray(t, result)) != 1 {
			t.Errorf("expected 1 transaction, got %v", result["data"])
		}
		if _, ok := result["pagination"]; ok {
			t.Error("expected no pagination metadata for unpaged request")
		}
	})

	t.Run("passes filters and paging", func(t *testing.T) {
		var gotFilter services.TransactionFilter
		var gotPage pagination.PageRequest
		txSvc := &mockTransactionService{
			getUserTransactionsFn: func(_ string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
				gotFilter, gotPage = filter, page
				resp := pagination.NewPageResponse([]models.Transaction{}, page, 0)
				return &resp, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions?page=2&type=expense&category=Food&from_date=2025-01-01", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPage.Page != 2 || gotPage.PageSize != 20 {
			t.Errorf("expected page 2 size 20, got %+v", gotPage)
		}
		if gotFilter.Type == nil || *gotFilter.Type != models.TransactionTypeExpense {
			t.Errorf("expected expense filter, got %v", gotFilter.Type)
		}
		if gotFilter.Category == nil || *gotFilter.Category != "Food" {
			t.Errorf("expected Food filter, got %v", gotFilter.Category)
		}
		if gotFilter.FromDate == nil {
			t.Error("expected from_date filter")
		}
		if _, ok := parseJSON(t, rec)["pagination"]; !ok {
			t.Error("expected pagination metadata")
		}
	})

	t.Run("returns 400 on invalid type filter", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions?type=transfer", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_GetTransactionByID(t *testing.T) {
	t.Run("returns 400 on malformed id", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions/42", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		txSvc := &mockTransactionService{
			getTransactionByIDFn: func(_, _ string) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions/"+testTxID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("replaces every field", func(t *testing.T) {
		var got services.TransactionInput
		var gotID string
		txSvc := &mockTransactionService{
			updateTransactionFn: func(_, id string, in services.TransactionInput) (*models.Transaction, error) {
				gotID, got = id, in
				return &models.Transaction{Base: models.Base{ID: id}, Type: in.Type, Amount: in.Amount, Category: in.Category}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, audit))

		rec := doRequest(r, "PUT", "/transactions/"+testTxID,
			`{"type":"expense","amount":"40","category":"Transport","description":"","date":"2025-02-10T09:00:00Z"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotID != testTxID || got.Category != "Transport" || got.Type != models.TransactionTypeExpense {
			t.Errorf("unexpected update %s %+v", gotID, got)
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "UPDATE_TRANSACTION" {
			t.Errorf("expected UPDATE_TRANSACTION audit entry, got %+v", audit.entries)
		}
	})

	t.Run("rejects a partial body", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/transactions/"+testTxID, `{"amount":"40"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, audit))

		rec := doRequest(r, "DELETE", "/transactions/"+testTxID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if len(audit.entries) != 1 || audit.entries[0].resourceID != testTxID {
			t.Errorf("expected audit entry for %s, got %+v", testTxID, audit.entries)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		txSvc := &mockTransactionService{
			deleteTransactionFn: func(_, _ string) error { return apperrors.ErrTransactionNotFound },
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/transactions/"+testTxID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
