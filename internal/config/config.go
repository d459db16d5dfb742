// Package config loads application settings from an optional YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	ListenAddr            string `yaml:"listen_addr"`
	GitHubToken           string `yaml:"-"`
	GitHubAPIURL          string `yaml:"github_api_url"`
	GitHubGraphQLURL      string `yaml:"github_graphql_url"`
	RequestTimeoutSecs    int    `yaml:"request_timeout_secs"`
	RateLimitMaxSleepSecs int    `yaml:"rate_limit_max_sleep_secs"`
	UserRepoLimit         int    `yaml:"user_repo_limit"`
	IssueTitleLimit       *int   `yaml:"issue_title_limit"`
	AdminUser             string `yaml:"admin_user"`
	AdminPassword         string `yaml:"admin_password"`
}

// ConfigPathEnv names the variable consulted when no --config flag is given.
const ConfigPathEnv = "REPO_DETECTIVE_CONFIG"

// Load reads configuration from path, applies defaults and environment
// overrides, then validates. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	applyDefaults(cfg)
	applyEnvironmentOverrides(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// GetConfigPath returns the config file path from the flag value or environment.
func GetConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(ConfigPathEnv)
}

// RequestTimeout is the per-call bound for GitHub requests.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

// RateLimitMaxSleep bounds a single secondary rate limit sleep.
func (c *Config) RateLimitMaxSleep() time.Duration {
	return time.Duration(c.RateLimitMaxSleepSecs) * time.Second
}

// AdminEnabled reports whether admin credentials are configured.
func (c *Config) AdminEnabled() bool {
	return c.AdminUser != "" && c.AdminPassword != ""
}

func applyDefaults(cfg *Config) {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.RequestTimeoutSecs == 0 {
		cfg.RequestTimeoutSecs = 10
	}
	if cfg.RateLimitMaxSleepSecs == 0 {
		cfg.RateLimitMaxSleepSecs = 60
	}
	if cfg.UserRepoLimit == 0 {
		cfg.UserRepoLimit = 10
	}
	if cfg.IssueTitleLimit == nil {
		n := 5
		cfg.IssueTitleLimit = &n
	}
}

func applyEnvironmentOverrides(cfg *Config) {
	cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")
	if port := os.Getenv("PORT"); port != "" {
		cfg.ListenAddr = ":" + port
	}
	if user := os.Getenv("REPO_DETECTIVE_ADMIN_USER"); user != "" {
		cfg.AdminUser = user
	}
	if password := os.Getenv("REPO_DETECTIVE_ADMIN_PASSWORD"); password != "" {
		cfg.AdminPassword = password
	}
}

func validate(cfg *Config) error {
	if cfg.RequestTimeoutSecs < 0 {
		return fmt.Errorf("request_timeout_secs must be positive, got %d", cfg.RequestTimeoutSecs)
	}
	if cfg.RateLimitMaxSleepSecs < 0 {
		return fmt.Errorf("rate_limit_max_sleep_secs must be positive, got %d", cfg.RateLimitMaxSleepSecs)
	}
	if cfg.UserRepoLimit < 0 || cfg.UserRepoLimit > 100 {
		return fmt.Errorf("user_repo_limit must be between 1 and 100, got %d", cfg.UserRepoLimit)
	}
	if *cfg.IssueTitleLimit < 0 || *cfg.IssueTitleLimit > 100 {
		return fmt.Errorf("issue_title_limit must be between 0 and 100, got %d", *cfg.IssueTitleLimit)
	}
	if (cfg.AdminUser == "") != (cfg.AdminPassword == "") {
		return errors.New("admin_user and admin_password must be set together")
	}
	for name, raw := range map[string]string{
		"github_api_url":     cfg.GitHubAPIURL,
		"github_graphql_url": cfg.GitHubGraphQLURL,
	} {
		if raw == "" {
			continue
		}
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute url, got %q", name, raw)
		}
	}
	return nil
}
