package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cadastro-app/cadastro/internal/config"
	"github.com/cadastro-app/cadastro/internal/infra"
	"github.com/cadastro-app/cadastro/internal/logging"
)

func TestNewServesPingAndJSONErrors(t *testing.T) {
	srv, err := New(config.Config{AppName: "test", AppEnv: "development", Port: "0"}, infra.Backends{}, logging.Discard())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	if resp.StatusCode != http.StatusOK || resp.Header.Get("X-Request-ID") == "" {
		t.Fatalf("unexpected ping response %d", resp.StatusCode)
	}

	resp, err = srv.App().Test(httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if err != nil {
		t.Fatalf("not found: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("expected json error body: %v", err)
	}
	if body["error"] == "" {
		t.Fatalf("expected error message, got %v", body)
	}
}

func TestNewFailsWithoutBackendsInProduction(t *testing.T) {
	if _, err := New(config.Config{AppEnv: "production"}, infra.Backends{}, logging.Discard()); err == nil {
		t.Fatalf("expected error without backends")
	}
}
