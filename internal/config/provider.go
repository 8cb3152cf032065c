package config

import (
	"fmt"
	"os"
	"strconv"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// agentEnv names the environment variables that override one provider role.
type agentEnv struct {
	Enabled      string
	ProviderName string
	BaseURL      string
	Token        string
	Deployment   string
	APIVersion   string
	AuthType     string
	ModelName    string
}

var fastAgentEnv = &agentEnv{
	Enabled:      "PLAZO_FAST_ENABLED",
	ProviderName: "PLAZO_FAST_PROVIDER_NAME",
	BaseURL:      "PLAZO_FAST_BASE_URL",
	Token:        "PLAZO_FAST_TOKEN",
	Deployment:   "PLAZO_FAST_DEPLOYMENT",
	APIVersion:   "PLAZO_FAST_API_VERSION",
	AuthType:     "PLAZO_FAST_AUTH_TYPE",
	ModelName:    "PLAZO_FAST_MODEL_NAME",
}

var primaryAgentEnv = &agentEnv{
	Enabled:      "PLAZO_PRIMARY_ENABLED",
	ProviderName: "PLAZO_PRIMARY_PROVIDER_NAME",
	BaseURL:      "PLAZO_PRIMARY_BASE_URL",
	Token:        "PLAZO_PRIMARY_TOKEN",
	Deployment:   "PLAZO_PRIMARY_DEPLOYMENT",
	APIVersion:   "PLAZO_PRIMARY_API_VERSION",
	AuthType:     "PLAZO_PRIMARY_AUTH_TYPE",
	ModelName:    "PLAZO_PRIMARY_MODEL_NAME",
}

// ProvidersConfig holds the two model provider roles the processing
// runtime depends on: a fast provider for hint extraction and result
// validation, and a primary provider for authoritative extraction.
type ProvidersConfig struct {
	Fast    ProviderConfig `toml:"fast"`
	Primary ProviderConfig `toml:"primary"`
}

// Finalize applies defaults, environment variable overrides, and validation
// to both provider roles.
func (c *ProvidersConfig) Finalize() error {
	if err := c.Fast.Finalize(fastAgentEnv); err != nil {
		return fmt.Errorf("fast: %w", err)
	}
	if err := c.Primary.Finalize(primaryAgentEnv); err != nil {
		return fmt.Errorf("primary: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across both roles.
func (c *ProvidersConfig) Merge(overlay *ProvidersConfig) {
	c.Fast.Merge(&overlay.Fast)
	c.Primary.Merge(&overlay.Primary)
}

// ProviderConfig describes a single model provider role. A role with no
// provider or model name is treated as unconfigured rather than invalid;
// the runtime degrades around unconfigured roles.
type ProviderConfig struct {
	Enabled      *bool  `toml:"enabled"`
	ProviderName string `toml:"provider_name"`
	BaseURL      string `toml:"base_url"`
	Token        string `toml:"token"`
	Deployment   string `toml:"deployment"`
	APIVersion   string `toml:"api_version"`
	AuthType     string `toml:"auth_type"`
	ModelName    string `toml:"model_name"`
}

// Configured reports whether the role names both a provider and a model.
func (c *ProviderConfig) Configured() bool {
	return c.ProviderName != "" && c.ModelName != ""
}

// IsEnabled reports whether the role is configured and not explicitly disabled.
func (c *ProviderConfig) IsEnabled() bool {
	if !c.Configured() {
		return false
	}
	return c.Enabled == nil || *c.Enabled
}

// Agent assembles a go-agents AgentConfig for the role, filling unset
// fields from the go-agents defaults.
func (c *ProviderConfig) Agent(name string) gaconfig.AgentConfig {
	cfg := gaconfig.AgentConfig{
		Name: name,
		Provider: &gaconfig.ProviderConfig{
			Name:    c.ProviderName,
			BaseURL: c.BaseURL,
			Options: make(map[string]any),
		},
		Model: &gaconfig.ModelConfig{
			Name: c.ModelName,
		},
	}

	setOption := func(key, value string) {
		if value != "" {
			cfg.Provider.Options[key] = value
		}
	}

	setOption("token", c.Token)
	setOption("deployment", c.Deployment)
	setOption("api_version", c.APIVersion)
	setOption("auth_type", c.AuthType)

	defaults := gaconfig.DefaultAgentConfig()
	defaults.Merge(&cfg)
	return defaults
}

// Finalize applies environment variable overrides and validation.
func (c *ProviderConfig) Finalize(env *agentEnv) error {
	c.loadEnv(env)
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ProviderConfig) Merge(overlay *ProviderConfig) {
	if overlay.Enabled != nil {
		c.Enabled = overlay.Enabled
	}
	if overlay.ProviderName != "" {
		c.ProviderName = overlay.ProviderName
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Token != "" {
		c.Token = overlay.Token
	}
	if overlay.Deployment != "" {
		c.Deployment = overlay.Deployment
	}
	if overlay.APIVersion != "" {
		c.APIVersion = overlay.APIVersion
	}
	if overlay.AuthType != "" {
		c.AuthType = overlay.AuthType
	}
	if overlay.ModelName != "" {
		c.ModelName = overlay.ModelName
	}
}

func (c *ProviderConfig) loadEnv(env *agentEnv) {
	if v := os.Getenv(env.Enabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Enabled = &enabled
		}
	}
	if v := os.Getenv(env.ProviderName); v != "" {
		c.ProviderName = v
	}
	if v := os.Getenv(env.BaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(env.Token); v != "" {
		c.Token = v
	}
	if v := os.Getenv(env.Deployment); v != "" {
		c.Deployment = v
	}
	if v := os.Getenv(env.APIVersion); v != "" {
		c.APIVersion = v
	}
	if v := os.Getenv(env.AuthType); v != "" {
		c.AuthType = v
	}
	if v := os.Getenv(env.ModelName); v != "" {
		c.ModelName = v
	}
}

func (c *ProviderConfig) validate() error {
	if c.ProviderName != "" && c.ModelName == "" {
		return fmt.Errorf("model name required for provider %s", c.ProviderName)
	}
	if c.ModelName != "" && c.ProviderName == "" {
		return fmt.Errorf("provider name required for model %s", c.ModelName)
	}
	return nil
}
