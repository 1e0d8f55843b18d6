package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/nexapay/admin-portal/internal/core/domain"
	"github.com/nexapay/admin-portal/internal/infra/config"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(config.GatewaySettings{
		BaseURL:     srv.URL,
		Timeout:     2 * time.Second,
		LongTimeout: 2 * time.Second,
	}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	return client, srv
}

func TestLoginSuccess(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["username"] != "alice" || body["password"] != "pw" {
			t.Errorf("unexpected credentials %v", body)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data": map[string]any{
				"token":    "t1",
				"uid":      "u1",
				"username": "alice",
				"roles":    []string{"Viewer"},
			},
		})
	}))

	result, err := client.Login(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if !result.Status || result.Data == nil {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Data.Token != "t1" || result.Data.UID != "u1" {
		t.Fatalf("unexpected data %+v", result.Data)
	}
}

func TestLoginRejectedReturnsEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  false,
			"message": "Invalid credentials",
		})
	}))

	result, err := client.Login(context.Background(), "alice", "wrong")
	if err != nil {
		t.Fatalf("login transport error: %v", err)
	}

	if result.Status {
		t.Fatal("expected rejected login")
	}
	if result.Message != "Invalid credentials" {
		t.Fatalf("unexpected message %q", result.Message)
	}
}

func TestLoginUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client, err := NewClient(config.GatewaySettings{BaseURL: srv.URL}, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Login(context.Background(), "alice", "pw")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestGetUserSendsBearer(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("unexpected authorization header %q", got)
		}
		if r.URL.Path != "/users/u1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data": map[string]any{
				"id":       "u1",
				"username": "alice",
				"email":    "alice@example.com",
			},
		})
	}))

	user, err := client.GetUser(context.Background(), "tok-1", "u1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.ID != "u1" || user.Username != "alice" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestUnauthorizedStatusMapsToErrUnauthorized(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.GetUser(context.Background(), "stale-token", "u1")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestListTransactionsPagination(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("pageSize") != "50" {
			t.Errorf("unexpected pagination params %v", q)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data": map[string]any{
				"items": []map[string]any{
					{"id": "tx-1", "amount": 1500, "currency": "USD", "status": "settled"},
				},
				"page":     2,
				"pageSize": 50,
				"total":    120,
			},
		})
	}))

	page, err := client.ListTransactions(context.Background(), "tok", domain.PageQuery{Page: 2, PageSize: 50})
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}

	if page.Total != 120 || len(page.Items) != 1 || page.Items[0].ID != "tx-1" {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestPageQueryNormalized(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "1" || q.Get("pageSize") != "20" {
			t.Errorf("expected normalized pagination, got %v", q)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data":   map[string]any{"items": []any{}, "page": 1, "pageSize": 20, "total": 0},
		})
	}))

	if _, err := client.ListMerchants(context.Background(), "tok", domain.PageQuery{Page: -3, PageSize: 0}); err != nil {
		t.Fatalf("list merchants: %v", err)
	}
}

func TestTimeoutClassification(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.GetTransaction(ctx, "tok", "tx-1")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestAPIErrorCarriesMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  false,
			"message": "disbursement already approved",
		})
	}))

	_, err := client.ApproveDisbursement(context.Background(), "tok", "d-1")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "disbursement already approved" || apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("unexpected APIError %+v", apiErr)
	}
}
