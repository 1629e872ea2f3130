package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appdb "nutriplan/internal/db"
	"nutriplan/internal/handlers"
	"nutriplan/internal/plan"
	"nutriplan/models"
)

func TestNewAppliesSessionDefaults(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:server-session?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := appdb.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := db.Create(&models.User{Email: "user@example.com", PasswordHash: string(hash)}).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	store := appdb.NewMenuStore(db)
	cfg := Config{
		Addr:     ":8080",
		Session:  SessionConfig{CookieSecure: true},
		Database: db,
		Planning: handlers.Planning{
			Service: plan.NewService(plan.NewGenerator(nil), store),
			Reader:  plan.NewReader(store),
			Store:   store,
		},
	}
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	t.Cleanup(func() {
		handlers.Configure(nil, nil)
		handlers.ConfigurePlanning(handlers.Planning{})
	})

	if srv.httpServer.Addr != ":8080" {
		t.Fatalf("expected server addr :8080, got %q", srv.httpServer.Addr)
	}
	if srv.httpServer.Handler == nil {
		t.Fatal("expected handler to be configured")
	}

	data := url.Values{}
	data.Set("email", "user@example.com")
	data.Set("password", "password123")
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(data.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after login, got %d", rr.Code)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie to be set")
	}
	if cookies[0].Name != "nutriplan_session" {
		t.Fatalf("expected default session cookie name, got %q", cookies[0].Name)
	}
	if !cookies[0].Secure {
		t.Fatal("expected cookie secure flag to be true")
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/app/api/plans", strings.NewReader(`{"lifestyle":"efficient"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookies[0])
	srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected plan creation through the router, got %d: %s", rr.Code, rr.Body.String())
	}

	var count int64
	db.Model(&models.DailyMenu{}).Count(&count)
	if count != plan.Days {
		t.Fatalf("expected %d stored menus, got %d", plan.Days, count)
	}
}

func TestServerHandler(t *testing.T) {
	cfg := Config{Addr: ":9090"}
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		handlers.Configure(nil, nil)
	})

	handler := srv.Handler()
	if handler == nil {
		t.Fatal("expected non-nil handler")
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected /healthz to return 200, got %d", rr.Code)
	}
}

func TestHandlerTagsRequestID(t *testing.T) {
	srv, err := New(Config{Addr: ":9091"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		handlers.Configure(nil, nil)
	})

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a generated request id")
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-123")
	srv.Handler().ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Request-ID"); got != "req-123" {
		t.Fatalf("expected the caller's request id to be kept, got %q", got)
	}
}
