package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/docxology/metaguildnet/internal/guildnet"
)

// AppConfig holds all configuration for mgn. Resolution is layered:
// defaults, then the config file, then environment overrides; flags
// are applied last by the CLI. The result is read once at startup and
// never re-read per call.
type AppConfig struct {
	API       APIConfig       `yaml:"api"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
	Install   InstallConfig   `yaml:"install"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// APIConfig locates the Host App.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Token     string        `yaml:"token"`
	Timeout   time.Duration `yaml:"timeout"`
	VerifyTLS bool          `yaml:"verify_tls"`
}

// DefaultsConfig holds per-command defaults.
type DefaultsConfig struct {
	Cluster string `yaml:"cluster"`
	Format  string `yaml:"format"`
}

// InstallConfig locates the installation scripts.
type InstallConfig struct {
	ScriptsDir string `yaml:"scripts_dir"`
}

// DashboardConfig tunes the terminal dashboard.
type DashboardConfig struct {
	Refresh time.Duration `yaml:"refresh"`
}

// DefaultConfig returns a config with sensible defaults. Local
// deployments serve self-signed certificates, so TLS verification
// defaults to off.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			BaseURL:   "https://localhost:8090",
			Timeout:   30 * time.Second,
			VerifyTLS: false,
		},
		Defaults: DefaultsConfig{
			Format: "table",
		},
		Install: InstallConfig{
			ScriptsDir: "scripts",
		},
		Dashboard: DashboardConfig{
			Refresh: 5 * time.Second,
		},
	}
}

// LoadConfig loads from the default path ~/.metaguildnet/config.yaml.
func LoadConfig() (*AppConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return applyEnv(DefaultConfig()), nil
	}
	return LoadConfigFrom(filepath.Join(home, ".metaguildnet", "config.yaml"))
}

// LoadConfigFrom loads config from a specific file path, then applies
// environment overrides. A missing file is not an error; defaults apply.
func LoadConfigFrom(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Apply defaults for zero values
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://localhost:8090"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.Defaults.Format == "" {
		cfg.Defaults.Format = "table"
	}
	if cfg.Install.ScriptsDir == "" {
		cfg.Install.ScriptsDir = "scripts"
	}
	if cfg.Dashboard.Refresh == 0 {
		cfg.Dashboard.Refresh = 5 * time.Second
	}

	return applyEnv(cfg), nil
}

// applyEnv applies environment variable overrides on top of file values.
func applyEnv(cfg *AppConfig) *AppConfig {
	if url := os.Getenv("MGN_API_URL"); url != "" {
		cfg.API.BaseURL = url
	}
	if token := os.Getenv("MGN_API_TOKEN"); token != "" {
		cfg.API.Token = token
	}
	if cluster := os.Getenv("MGN_DEFAULT_CLUSTER"); cluster != "" {
		cfg.Defaults.Cluster = cluster
	}
	return cfg
}

// ClientConfig freezes the API section into the immutable client config.
func (c *AppConfig) ClientConfig() guildnet.Config {
	return guildnet.Config{
		BaseURL:   c.API.BaseURL,
		Token:     c.API.Token,
		Timeout:   c.API.Timeout,
		VerifyTLS: c.API.VerifyTLS,
	}
}

// Save writes the config back to path, creating parent directories.
func (c *AppConfig) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
