package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: test-secret
users:
  - username: user1
    password: pass1
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.Log.Level)
	}
	if cfg.Storage.Backend != "local" {
		t.Errorf("Expected default storage backend local, got %s", cfg.Storage.Backend)
	}
	if cfg.Tika.ServerURL != "http://localhost:9998" {
		t.Errorf("Unexpected tika server url: %s", cfg.Tika.ServerURL)
	}
	if cfg.Tika.TimeoutSeconds != 60 {
		t.Errorf("Expected default tika timeout 60, got %d", cfg.Tika.TimeoutSeconds)
	}
	if cfg.Gemini.TimeoutSeconds != 60 {
		t.Errorf("Expected default gemini timeout 60, got %d", cfg.Gemini.TimeoutSeconds)
	}
	if cfg.Auth.TokenExpireHours != 24 {
		t.Errorf("Expected default token expiry 24h, got %d", cfg.Auth.TokenExpireHours)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
log:
  level: debug
storage:
  backend: minio
tika:
  server_url: http://tika:9998
  timeout_seconds: 10
gemini:
  api_key: file-key
store:
  max_documents: 500
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Log.Level)
	}
	if cfg.Storage.Backend != "minio" {
		t.Errorf("Expected storage backend minio, got %s", cfg.Storage.Backend)
	}
	if cfg.Tika.TimeoutSeconds != 10 {
		t.Errorf("Expected tika timeout 10, got %d", cfg.Tika.TimeoutSeconds)
	}
	if cfg.Gemini.APIKey != "file-key" {
		t.Errorf("Expected api key from file, got %s", cfg.Gemini.APIKey)
	}
	if cfg.Store.MaxDocuments != 500 {
		t.Errorf("Expected max documents 500, got %d", cfg.Store.MaxDocuments)
	}
}

func TestLoadEnvSecrets(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("LEGALEASE_JWT_SECRET", "env-secret")

	path := writeConfig(t, `
gemini:
  api_key: file-key
auth:
  jwt_secret: file-secret
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Gemini.APIKey != "env-key" {
		t.Errorf("Expected env to override api key, got %s", cfg.Gemini.APIKey)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Errorf("Expected env to override jwt secret, got %s", cfg.Auth.JWTSecret)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestFindUser(t *testing.T) {
	cfg := &Config{Users: []User{
		{Username: "user1", Password: "pass1"},
		{Username: "user2", Password: "pass2"},
	}}

	u := cfg.FindUser("user2")
	if u == nil || u.Password != "pass2" {
		t.Errorf("Expected user2, got %+v", u)
	}
	if cfg.FindUser("nobody") != nil {
		t.Error("Expected nil for unknown user")
	}
}
