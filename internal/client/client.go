// Package client provides an HTTP client for the Ledgerly API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/finance"
	"ledgerly/internal/store"
	"ledgerly/internal/wire"
)

// Client talks to the /api/v1 routes with a bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ store.Ledger = (*Client)(nil)

// New creates a client. token may be empty until Login or Register.
func New(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

// Token returns the bearer token in use.
func (c *Client) Token() string { return c.token }

// envelope is the shape of every non-auth response.
type envelope struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Error   *apperrors.AppError `json:"error"`
}

// User is the profile returned by auth and profile routes.
type User struct {
	ID        wire.ID   `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	User      User   `json:"user"`
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

// Register creates an account and keeps the returned token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	body := map[string]string{
		"name":                  name,
		"email":                 email,
		"password":              password,
		"password_confirmation": password,
	}
	return c.authenticate(ctx, "/auth/register", body)
}

// Login exchanges credentials for a token and keeps it.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	return c.authenticate(ctx, "/auth/login", body)
}

func (c *Client) authenticate(ctx context.Context, path string, body interface{}) (*User, error) {
	raw, err := c.send(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	var result authResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decoding auth response: %w", err)
	}
	if result.Token == "" {
		return nil, fmt.Errorf("auth response carried no token")
	}
	c.token = result.Token
	return &result.User, nil
}

// Profile returns the authenticated user.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

type transactionRecord struct {
	ID          wire.ID     `json:"id"`
	Type        string      `json:"type"`
	Amount      wire.Amount `json:"amount"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Date        wire.Date   `json:"date"`
}

func (r transactionRecord) toFinance() finance.Transaction {
	return finance.Transaction{
		ID:          r.ID.String(),
		Type:        finance.TransactionType(r.Type),
		Amount:      r.Amount.Decimal,
		Category:    r.Category,
		Description: r.Description,
		Date:        r.Date.Time,
	}
}

type categoryRecord struct {
	ID    wire.ID `json:"id"`
	Name  string  `json:"name"`
	Color string  `json:"color"`
}

type fundRecord struct {
	ID          wire.ID     `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Color       string      `json:"color"`
	Balance     wire.Amount `json:"balance"`
	CreatedAt   wire.Date   `json:"created_at"`
}

func (r fundRecord) toFinance() finance.SavingsFund {
	return finance.SavingsFund{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
		Color:       r.Color,
		Balance:     r.Balance.Decimal,
		CreatedAt:   r.CreatedAt.Time,
	}
}

type savingsRecord struct {
	ID          wire.ID     `json:"id"`
	FundID      wire.ID     `json:"savings_fund_id"`
	Type        string      `json:"type"`
	Amount      wire.Amount `json:"amount"`
	Description string      `json:"description"`
	Date        wire.Date   `json:"date"`
}

// ListTransactions fetches every transaction of the user.
func (c *Client) ListTransactions(ctx context.Context) ([]finance.Transaction, error) {
	var records []transactionRecord
	if err := c.do(ctx, http.MethodGet, "/transactions", nil, &records); err != nil {
		return nil, err
	}
	out := make([]finance.Transaction, len(records))
	for i, r := range records {
		out[i] = r.toFinance()
	}
	return out, nil
}

// ListCategories fetches the user's own categories. Defaults are not
// included.
func (c *Client) ListCategories(ctx context.Context) ([]finance.Category, error) {
	var records []categoryRecord
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &records); err != nil {
		return nil, err
	}
	out := make([]finance.Category, len(records))
	for i, r := range records {
		out[i] = finance.Category{ID: r.ID.String(), Name: r.Name, Color: r.Color}
	}
	return out, nil
}

// ListFunds fetches every savings fund.
func (c *Client) ListFunds(ctx context.Context) ([]finance.SavingsFund, error) {
	var records []fundRecord
	if err := c.do(ctx, http.MethodGet, "/savings-funds", nil, &records); err != nil {
		return nil, err
	}
	out := make([]finance.SavingsFund, len(records))
	for i, r := range records {
		out[i] = r.toFinance()
	}
	return out, nil
}

// ListSavingsTransactions fetches every savings transaction.
func (c *Client) ListSavingsTransactions(ctx context.Context) ([]finance.SavingsTransaction, error) {
	var records []savingsRecord
	if err := c.do(ctx, http.MethodGet, "/savings-transactions", nil, &records); err != nil {
		return nil, err
	}
	out := make([]finance.SavingsTransaction, len(records))
	for i, r := range records {
		out[i] = finance.SavingsTransaction{
			ID:          r.ID.String(),
			FundID:      r.FundID.String(),
			Type:        finance.SavingsType(r.Type),
			Amount:      r.Amount.Decimal,
			Description: r.Description,
			Date:        r.Date.Time,
		}
	}
	return out, nil
}

type transactionRequest struct {
	Type        finance.TransactionType `json:"type"`
	Amount      wire.Amount             `json:"amount"`
	Category    string                  `json:"category"`
	Description string                  `json:"description,omitempty"`
	Date        string                  `json:"date,omitempty"`
}

// CreateTransaction records an income or expense entry.
func (c *Client) CreateTransaction(ctx context.Context, in store.TransactionInput) (finance.Transaction, error) {
	req := transactionRequest{
		Type:        in.Type,
		Amount:      wire.NewAmount(in.Amount),
		Category:    in.Category,
		Description: in.Description,
		Date:        formatDate(in.Date),
	}
	var record transactionRecord
	if err := c.do(ctx, http.MethodPost, "/transactions", req, &record); err != nil {
		return finance.Transaction{}, err
	}
	return record.toFinance(), nil
}

// DeleteTransaction removes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+url.PathEscape(id), nil, nil)
}

// CreateCategory creates a user category.
func (c *Client) CreateCategory(ctx context.Context, name, color string) (finance.Category, error) {
	req := map[string]string{"name": name}
	if color != "" {
		req["color"] = color
	}
	var record categoryRecord
	if err := c.do(ctx, http.MethodPost, "/categories", req, &record); err != nil {
		return finance.Category{}, err
	}
	return finance.Category{ID: record.ID.String(), Name: record.Name, Color: record.Color}, nil
}

// CreateFund creates an empty savings fund.
func (c *Client) CreateFund(ctx context.Context, in store.FundInput) (finance.SavingsFund, error) {
	req := map[string]string{"name": in.Name}
	if in.Description != "" {
		req["description"] = in.Description
	}
	if in.Color != "" {
		req["color"] = in.Color
	}
	var record fundRecord
	if err := c.do(ctx, http.MethodPost, "/savings-funds", req, &record); err != nil {
		return finance.SavingsFund{}, err
	}
	return record.toFinance(), nil
}

// DeleteFund removes a fund and its savings transactions.
func (c *Client) DeleteFund(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/savings-funds/"+url.PathEscape(id), nil, nil)
}

type savingsRequest struct {
	FundID      string              `json:"savings_fund_id"`
	Type        finance.SavingsType `json:"type"`
	Amount      wire.Amount         `json:"amount"`
	Description string              `json:"description,omitempty"`
	Date        string              `json:"date,omitempty"`
}

// CreateSavingsTransaction records a deposit or withdrawal.
func (c *Client) CreateSavingsTransaction(ctx context.Context, in store.SavingsInput) error {
	req := savingsRequest{
		FundID:      in.FundID,
		Type:        in.Type,
		Amount:      wire.NewAmount(in.Amount),
		Description: in.Description,
		Date:        formatDate(in.Date),
	}
	return c.do(ctx, http.MethodPost, "/savings-transactions", req, nil)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// do sends a request and decodes the data field of the success envelope
// into out when out is not nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	raw, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding %s %s data: %w", method, path, err)
	}
	return nil
}

// send performs the request and returns the raw body of a 2xx response.
// Error envelopes come back as *apperrors.AppError so callers can match
// them against the sentinels.
func (c *Client) send(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/v1"+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil && env.Error != nil && env.Error.Code != "" {
			env.Error.StatusCode = resp.StatusCode
			return nil, env.Error
		}
		return nil, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	return raw, nil
}
