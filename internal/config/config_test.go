package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Use a non-existent path so no file is loaded.
	cfg, err := LoadConfigFrom("/tmp/non-existent-mgn-test/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfigFrom returned error: %v", err)
	}

	if cfg.API.BaseURL != "https://localhost:8090" {
		t.Errorf("API.BaseURL = %q, want https://localhost:8090", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v, want 30s", cfg.API.Timeout)
	}
	if cfg.API.VerifyTLS {
		t.Error("API.VerifyTLS should default to false for self-signed deployments")
	}
	if cfg.Defaults.Format != "table" {
		t.Errorf("Defaults.Format = %q, want table", cfg.Defaults.Format)
	}
	if cfg.Dashboard.Refresh != 5*time.Second {
		t.Errorf("Dashboard.Refresh = %v, want 5s", cfg.Dashboard.Refresh)
	}
}

func TestLoadConfig_CustomFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	content := `api:
  base_url: https://guildnet.internal:8443
  token: abc123
  timeout: 10s
  verify_tls: true
defaults:
  cluster: prod-east
  format: json
dashboard:
  refresh: 2s
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFrom(cfgPath)
	if err != nil {
		t.Fatalf("LoadConfigFrom returned error: %v", err)
	}

	if cfg.API.BaseURL != "https://guildnet.internal:8443" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Token != "abc123" {
		t.Errorf("API.Token = %q", cfg.API.Token)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("API.Timeout = %v, want 10s", cfg.API.Timeout)
	}
	if !cfg.API.VerifyTLS {
		t.Error("API.VerifyTLS should be true from file")
	}
	if cfg.Defaults.Cluster != "prod-east" {
		t.Errorf("Defaults.Cluster = %q", cfg.Defaults.Cluster)
	}
	if cfg.Dashboard.Refresh != 2*time.Second {
		t.Errorf("Dashboard.Refresh = %v, want 2s", cfg.Dashboard.Refresh)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	content := `api:
  token: only-a-token
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFrom(cfgPath)
	if err != nil {
		t.Fatalf("LoadConfigFrom returned error: %v", err)
	}

	if cfg.API.Token != "only-a-token" {
		t.Errorf("API.Token = %q", cfg.API.Token)
	}
	if cfg.API.BaseURL != "https://localhost:8090" {
		t.Errorf("API.BaseURL = %q, want default kept", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v, want default kept", cfg.API.Timeout)
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("api: [not a mapping"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfigFrom(cfgPath); err == nil {
		t.Error("LoadConfigFrom should fail on malformed yaml")
	}
}

func TestLoadConfig_UnreadableFile(t *testing.T) {
	// A path that exists but cannot be read as a file must surface the
	// error instead of silently falling back to defaults.
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.Mkdir(cfgPath, 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfigFrom(cfgPath); err == nil {
		t.Error("LoadConfigFrom should fail when the config path is unreadable")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("MGN_API_URL", "https://env.example:9000")
	t.Setenv("MGN_API_TOKEN", "env-token")
	t.Setenv("MGN_DEFAULT_CLUSTER", "env-cluster")

	cfg, err := LoadConfigFrom("/tmp/non-existent-mgn-test/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfigFrom returned error: %v", err)
	}

	if cfg.API.BaseURL != "https://env.example:9000" {
		t.Errorf("API.BaseURL = %q, want env override", cfg.API.BaseURL)
	}
	if cfg.API.Token != "env-token" {
		t.Errorf("API.Token = %q, want env override", cfg.API.Token)
	}
	if cfg.Defaults.Cluster != "env-cluster" {
		t.Errorf("Defaults.Cluster = %q, want env override", cfg.Defaults.Cluster)
	}
}

func TestClientConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://localhost:8090/"
	cfg.API.Token = "tok"

	cc := cfg.ClientConfig()
	if cc.BaseURL != "https://localhost:8090/" {
		t.Errorf("BaseURL = %q", cc.BaseURL)
	}
	if cc.Token != "tok" || cc.Timeout != 30*time.Second || cc.VerifyTLS {
		t.Errorf("ClientConfig() = %+v, want API section frozen", cc)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.API.Token = "persisted"
	if err := cfg.Save(cfgPath); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadConfigFrom(cfgPath)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if loaded.API.Token != "persisted" {
		t.Errorf("API.Token = %q, want persisted", loaded.API.Token)
	}
}
