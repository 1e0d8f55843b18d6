package routes_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"

	"github.com/nexapay/admin-portal/internal/infra/config"
	"github.com/nexapay/admin-portal/internal/infra/security"
	httproutes "github.com/nexapay/admin-portal/internal/transport/http/routes"
	"github.com/nexapay/admin-portal/internal/transport/http/sessioncookie"
	"github.com/nexapay/admin-portal/internal/usecase"
)

func testDependencies(t *testing.T) httproutes.Dependencies {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.AppConfig{
		App: config.AppSettings{Env: "test"},
		Session: config.SessionSettings{
			Secret:   "routes-test-signing-secret",
			Expiry:   8 * time.Hour,
			TokenTTL: 12 * time.Hour,
		},
	}

	codec, err := security.NewSessionCodec(cfg.Session.Secret, cfg.Session.TokenTTL)
	if err != nil {
		t.Fatalf("NewSessionCodec: %v", err)
	}

	logger := zaptest.NewLogger(t)
	store := sessioncookie.New(sessioncookie.DefaultName, false)
	sessions := usecase.NewSessionService(cfg, nil, codec, store, nil, nil, logger)

	return httproutes.Dependencies{
		Config:   cfg,
		Logger:   logger,
		Sessions: sessions,
	}
}

func TestHealthEndpoint(t *testing.T) {
	r := httproutes.Register(testDependencies(t))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestMetricsEndpointOpen(t *testing.T) {
	r := httproutes.Register(testDependencies(t))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestProtectedPageRedirectsToLogin(t *testing.T) {
	r := httproutes.Register(testDependencies(t))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/dashboard", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestLoginPageServedAnonymously(t *testing.T) {
	r := httproutes.Register(testDependencies(t))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/login", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestFrontendBundleServedAnonymously(t *testing.T) {
	r := httproutes.Register(testDependencies(t))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/assets/portal.js", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/javascript") {
		t.Fatalf("expected a javascript content type, got %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Fatal("expected a non-empty bundle")
	}
}

func TestAnonymousLogoutIsNoOp(t *testing.T) {
	r := httproutes.Register(testDependencies(t))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}
}

func TestAnonymousAPICallGets401(t *testing.T) {
	r := httproutes.Register(testDependencies(t))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/me", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}
