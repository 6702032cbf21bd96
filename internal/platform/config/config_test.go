package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", c.Addr)
	}
	if c.Auth.Mode != "none" {
		t.Fatalf("expected auth mode none, got %q", c.Auth.Mode)
	}
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
addr: ":9090"
public_base_url: "https://cal.example.com"
auth:
  mode: jwt
  jwt_secret: file-secret
smtp:
  addr: "localhost:1025"
  from: "noreply@example.com"
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("JWT_SECRET", "env-secret") // env pisa al archivo

	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Addr != ":9090" {
		t.Fatalf("expected addr from file, got %q", c.Addr)
	}
	if c.PublicBaseURL != "https://cal.example.com" {
		t.Fatalf("expected base url from file, got %q", c.PublicBaseURL)
	}
	if c.Auth.JWTSecret != "env-secret" {
		t.Fatalf("expected env override, got %q", c.Auth.JWTSecret)
	}
	if c.SMTP.Addr != "localhost:1025" {
		t.Fatalf("expected smtp addr from file, got %q", c.SMTP.Addr)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("AUTH_MODE", "jwt")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for jwt mode without secret")
	}

	t.Setenv("AUTH_MODE", "gotrue")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for gotrue mode without idp url")
	}

	t.Setenv("AUTH_MODE", "carrier-pigeon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
