package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/crewplan/crewplan/api"
	dbfs "github.com/crewplan/crewplan/db"
	"github.com/crewplan/crewplan/internal/config"
	"github.com/crewplan/crewplan/internal/db"
)

// Full-stack test: migrations, signup, token-protected schedule routes.
func TestSetupRoutes_EndToEnd(t *testing.T) {
	ctx := context.Background()
	d, err := db.New(ctx, "file:routes_e2e?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	defer d.Close()

	if err := db.Migrate(ctx, d, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	cfg := &config.Config{
		Addr:          ":0",
		JWTSecret:     "routes-test-secret",
		APITimeout:    5 * time.Second,
		DatabasePath:  "unused",
		TokenDuration: time.Hour,
	}

	srv := httptest.NewServer(api.SetupRoutes(cfg, "test", "now", d))
	defer func() {
		srv.Close()
		http.DefaultClient.CloseIdleConnections()
	}()

	// open endpoints work without a token
	res, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("health: expected 200 got %d", res.StatusCode)
	}

	// protected endpoint rejects missing token
	res, err = http.Get(srv.URL + "/v1/schedules/user-role/1")
	if err != nil {
		t.Fatalf("user-role: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}

	// sign up and use the issued token
	res, err = http.Post(srv.URL+"/v1/auth/signup", "application/json",
		strings.NewReader(`{"name":"Rita","email":"rita@test.local","password":"pw12345"}`))
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	var auth struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&auth); err != nil {
		t.Fatalf("decode signup: %v", err)
	}
	res.Body.Close()
	if auth.Token == "" {
		t.Fatalf("expected a token from signup")
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/v1/schedules/user-role/1", nil)
	req.Header.Set("Authorization", "Bearer "+auth.Token)
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("user-role with token: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", res.StatusCode)
	}
	var role map[string]string
	if err := json.NewDecoder(res.Body).Decode(&role); err != nil {
		t.Fatalf("decode role: %v", err)
	}
	if role["role"] == "" {
		t.Fatalf("expected a role in response")
	}
}
