package fintrack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// testClient returns a client against a handler, with a token installed.
func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL)
	client.SetToken("test-token")
	return client
}

func TestClientBearerHeader(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q want Bearer test-token", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q want application/json", got)
		}
		fmt.Fprint(w, `[]`)
	})
	if _, err := client.Expenses(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestClientAPIError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{
			"message": "Validation failed",
			"status": 400,
			"error": "Bad Request",
			"timestamp": "2026-08-28T10:00:00Z",
			"path": "/api/v1/expenses",
			"details": ["amount must be positive", "description is required"]
		}`)
	})
	_, err := client.AddExpense(context.Background(), NewExpense{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %T want *APIError: %v", err, err)
	}
	if apiErr.Status != 400 || apiErr.Message != "Validation failed" {
		t.Errorf("got %+v", apiErr)
	}
	msg := apiErr.Error()
	if msg != "Validation failed\namount must be positive\ndescription is required" {
		t.Errorf("Error() = %q, details not joined", msg)
	}
}

// A non-JSON error body falls back to the HTTP status text.
func TestClientErrorFallback(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})
	_, err := client.Expenses(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("got *APIError from a non-JSON body: %v", err)
	}
}

func TestClientNoContent(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	if err := client.DeleteExpense(context.Background(), uuid.New()); err != nil {
		t.Fatal(err)
	}
}

func TestClientLogin(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %s want /auth/login", r.URL.Path)
		}
		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatal(err)
		}
		if creds["email"] != "you@example.com" || creds["password"] != "secret" {
			t.Errorf("credentials = %v", creds)
		}
		fmt.Fprint(w, `{"message":"Welcome back","token":"fresh-token"}`)
	})
	resp, err := client.Login(context.Background(), "you@example.com", "secret")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Token != "fresh-token" || client.Token() != "fresh-token" {
		t.Errorf("token not installed: resp=%q client=%q", resp.Token, client.Token())
	}
}

// A 200 login without a token is still a failure.
func TestClientLoginNoToken(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message":"ok"}`)
	})
	if _, err := client.Login(context.Background(), "you@example.com", "secret"); err == nil {
		t.Fatal("expected an error when no token is returned")
	}
}

func TestClientToggleSubscription(t *testing.T) {
	id := uuid.New()
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s want PATCH", r.Method)
		}
		want := "/subscriptions/" + id.String() + "/toggle"
		if r.URL.Path != want {
			t.Errorf("path = %s want %s", r.URL.Path, want)
		}
		fmt.Fprintf(w, `{"id":%q,"name":"Netflix","amount":15.99,"paymentDay":12,"lastPaidCycle":"2026-08","category":"streaming"}`, id)
	})
	sub, err := client.ToggleSubscription(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if sub.LastPaidCycle.IsZero() {
		t.Error("toggled subscription has no paid cycle")
	}
}

// Investments decode the wire shapes: tagged decimals and instant dates.
func TestClientInvestmentsCoercion(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{
			"id": "c1a6bdb0-93a0-4f59-8b5f-2f2d4b6ff001",
			"type": "coin",
			"name": "Bitcoin",
			"amount": {"floatValue": 0.5},
			"purchaseDate": {"epochSecond": 1756339200, "nano": 0},
			"initialValue": "15000",
			"apiId": "bitcoin"
		}]`)
	})
	invs, err := client.Investments(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(invs) != 1 {
		t.Fatalf("got %d investments want 1", len(invs))
	}
	inv := invs[0]
	if !inv.Amount.Equal(Q(0.5)) {
		t.Errorf("amount = %s want 0.5", inv.Amount)
	}
	if !inv.InitialValue.Equal(M(15000)) {
		t.Errorf("initialValue = %s want $15000.00", inv.InitialValue)
	}
	if inv.PurchaseDate.String() != "2025-08-28" {
		t.Errorf("purchaseDate = %s want 2025-08-28", inv.PurchaseDate)
	}
}

func TestTokenExpired(t *testing.T) {
	signed := func(exp time.Time) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()})
		s, err := token.SignedString([]byte("irrelevant"))
		if err != nil {
			t.Fatal(err)
		}
		return s
	}

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"empty", "", false},
		{"opaque", "not-a-jwt", false},
		{"live", signed(time.Now().Add(time.Hour)), false},
		{"expired", signed(time.Now().Add(-time.Hour)), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := NewClient("")
			client.SetToken(tc.token)
			if got := client.TokenExpired(); got != tc.want {
				t.Errorf("TokenExpired() = %v want %v", got, tc.want)
			}
		})
	}
}
