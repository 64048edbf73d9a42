package fintrack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultBaseURL is the backend the client talks to unless configured
// otherwise.
const DefaultBaseURL = "http://localhost:8080/api/v1"

// Client is the HTTP client for the personal-finance backend. All calls
// except Register and Login bear the bearer credential set with SetToken.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient returns a client for the backend at baseURL. An empty baseURL
// selects DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs the bearer credential used on authenticated calls.
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the current bearer credential.
func (c *Client) Token() string { return c.token }

// TokenExpired reports whether the installed credential is a JWT whose
// expiry has passed. The token is inspected without verification: the
// client has no server secret, and the server re-checks anyway. An opaque
// or missing expiry reads as not expired.
func (c *Client) TokenExpired() bool {
	if c.token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// APIError is the error shape the backend serves on failed requests.
type APIError struct {
	Message   string   `json:"message"`
	Status    int      `json:"status"`
	ErrorText string   `json:"error"`
	Timestamp string   `json:"timestamp"`
	Path      string   `json:"path"`
	Details   []string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return e.Message + "\n" + strings.Join(e.Details, "\n")
	}
	return e.Message
}

// do performs a request against the backend, decoding the JSON response
// into out when out is non-nil. A non-2xx response decodes into an
// *APIError; an unparseable error body falls back to the status text.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("cannot encode %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cannot %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := new(APIError)
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
			return fmt.Errorf("request failed: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("cannot decode %s %s response: %w", method, path, err)
	}
	return nil
}

// --- authentication ---

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the payload returned on successful login or registration.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Login exchanges credentials for a bearer token and installs it on the
// client.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", credentials{email, password}, &resp); err != nil {
		return resp, err
	}
	if resp.Token == "" {
		return resp, fmt.Errorf("login failed: no token received")
	}
	c.token = resp.Token
	return resp, nil
}

// Register creates an account, exchanges it for a bearer token and installs
// the token on the client.
func (c *Client) Register(ctx context.Context, email, password string) (AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", credentials{email, password}, &resp); err != nil {
		return resp, err
	}
	if resp.Token == "" {
		return resp, fmt.Errorf("registration failed: no token received")
	}
	c.token = resp.Token
	return resp, nil
}

// --- subscriptions ---

// NewSubscription is the payload to create a subscription. The server
// assigns the id and the (initially empty) paid cycle.
type NewSubscription struct {
	Name       string               `json:"name"`
	Amount     Money                `json:"amount"`
	PaymentDay int                  `json:"paymentDay"`
	Category   SubscriptionCategory `json:"category"`
}

func (c *Client) Subscriptions(ctx context.Context) ([]Subscription, error) {
	var subs []Subscription
	err := c.do(ctx, http.MethodGet, "/subscriptions", nil, &subs)
	return subs, err
}

func (c *Client) AddSubscription(ctx context.Context, data NewSubscription) (Subscription, error) {
	var sub Subscription
	err := c.do(ctx, http.MethodPost, "/subscriptions", data, &sub)
	return sub, err
}

func (c *Client) UpdateSubscription(ctx context.Context, id uuid.UUID, data Subscription) (Subscription, error) {
	var sub Subscription
	err := c.do(ctx, http.MethodPut, "/subscriptions/"+id.String(), data, &sub)
	return sub, err
}

func (c *Client) DeleteSubscription(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/subscriptions/"+id.String(), nil, nil)
}

// ToggleSubscription flips the paid-for-current-cycle marker. This is a
// dedicated call rather than a generic update: the server computes the
// cycle token.
func (c *Client) ToggleSubscription(ctx context.Context, id uuid.UUID) (Subscription, error) {
	var sub Subscription
	err := c.do(ctx, http.MethodPatch, "/subscriptions/"+id.String()+"/toggle", nil, &sub)
	return sub, err
}

// --- expenses ---

// NewExpense is the payload to create an expense. The server assigns the
// id and dates it.
type NewExpense struct {
	Description string          `json:"description"`
	Amount      Money           `json:"amount"`
	Category    ExpenseCategory `json:"category"`
}

func (c *Client) Expenses(ctx context.Context) ([]Expense, error) {
	var exps []Expense
	err := c.do(ctx, http.MethodGet, "/expenses", nil, &exps)
	return exps, err
}

func (c *Client) AddExpense(ctx context.Context, data NewExpense) (Expense, error) {
	var exp Expense
	err := c.do(ctx, http.MethodPost, "/expenses", data, &exp)
	return exp, err
}

func (c *Client) UpdateExpense(ctx context.Context, id uuid.UUID, data Expense) (Expense, error) {
	var exp Expense
	err := c.do(ctx, http.MethodPut, "/expenses/"+id.String(), data, &exp)
	return exp, err
}

func (c *Client) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/expenses/"+id.String(), nil, nil)
}

// --- investments ---

// NewInvestment is the payload to create an investment. The server computes
// initialValue as amount times purchasePrice and freezes it as the cost
// basis.
type NewInvestment struct {
	Type          InstrumentType `json:"type"`
	Name          string         `json:"name"`
	Amount        Quantity       `json:"amount"`
	PurchasePrice Money          `json:"purchasePrice"`
	APIID         string         `json:"apiId,omitempty"`
}

// UpdateInvestment is the payload to edit an investment. The server
// recomputes initialValue from the new amount and unit price.
type UpdateInvestment struct {
	Name          string   `json:"name"`
	Amount        Quantity `json:"amount"`
	PurchasePrice Money    `json:"purchasePrice"`
	APIID         string   `json:"apiId,omitempty"`
}

func (c *Client) Investments(ctx context.Context) ([]Investment, error) {
	var invs []Investment
	err := c.do(ctx, http.MethodGet, "/investments", nil, &invs)
	return invs, err
}

func (c *Client) AddInvestment(ctx context.Context, data NewInvestment) (Investment, error) {
	var inv Investment
	err := c.do(ctx, http.MethodPost, "/investments", data, &inv)
	return inv, err
}

func (c *Client) UpdateInvestment(ctx context.Context, id uuid.UUID, data UpdateInvestment) (Investment, error) {
	var inv Investment
	err := c.do(ctx, http.MethodPut, "/investments/"+id.String(), data, &inv)
	return inv, err
}

func (c *Client) DeleteInvestment(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/investments/"+id.String(), nil, nil)
}

// --- assets ---

// NewAsset is the payload to create an asset.
type NewAsset struct {
	Name         string    `json:"name"`
	Type         AssetType `json:"type"`
	CurrentValue Money     `json:"currentValue"`
	IBAN         string    `json:"iban,omitempty"`
}

func (c *Client) Assets(ctx context.Context) ([]Asset, error) {
	var assets []Asset
	err := c.do(ctx, http.MethodGet, "/assets", nil, &assets)
	return assets, err
}

func (c *Client) AddAsset(ctx context.Context, data NewAsset) (Asset, error) {
	var asset Asset
	err := c.do(ctx, http.MethodPost, "/assets", data, &asset)
	return asset, err
}

func (c *Client) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/assets/"+id.String(), nil, nil)
}

// --- reports ---

// MonthlyTotal is one month of backend-computed spending history.
type MonthlyTotal struct {
	Month         string `json:"month"`
	TotalSpending Money  `json:"totalSpending"`
}

func (c *Client) MonthlySummary(ctx context.Context) ([]MonthlyTotal, error) {
	var totals []MonthlyTotal
	err := c.do(ctx, http.MethodGet, "/reports/monthly-summary", nil, &totals)
	return totals, err
}
