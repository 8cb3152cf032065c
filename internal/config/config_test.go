package config

import (
	"strings"
	"testing"
	"time"
)

func TestServerConfigFinalizeDefaults(t *testing.T) {
	var cfg ServerConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
	if cfg.ReadTimeoutDuration() != time.Minute {
		t.Errorf("ReadTimeoutDuration() = %v", cfg.ReadTimeoutDuration())
	}
}

func TestServerConfigEnvOverride(t *testing.T) {
	t.Setenv(EnvServerPort, "9090")
	t.Setenv(EnvServerHost, "127.0.0.1")

	var cfg ServerConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

func TestServerConfigInvalidPort(t *testing.T) {
	cfg := ServerConfig{Port: 70000}
	if err := cfg.Finalize(); err == nil {
		t.Error("expected error for out-of-range port")
	}
}

func TestPipelineConfigDefaults(t *testing.T) {
	var cfg PipelineConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.PreprocessTimeoutDuration() != 30*time.Second {
		t.Errorf("PreprocessTimeoutDuration() = %v", cfg.PreprocessTimeoutDuration())
	}
	if cfg.ExtractTimeoutDuration() != 2*time.Minute {
		t.Errorf("ExtractTimeoutDuration() = %v", cfg.ExtractTimeoutDuration())
	}
	if cfg.VerifyThreshold != 0.85 {
		t.Errorf("VerifyThreshold = %g", cfg.VerifyThreshold)
	}
	if cfg.BatchLimit != 4 {
		t.Errorf("BatchLimit = %d", cfg.BatchLimit)
	}
}

func TestPipelineConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  PipelineConfig
		want string
	}{
		{
			name: "bad timeout",
			cfg:  PipelineConfig{ExtractTimeout: "later"},
			want: "extract_timeout",
		},
		{
			name: "threshold above one",
			cfg:  PipelineConfig{VerifyThreshold: 1.5},
			want: "verify_threshold",
		},
		{
			name: "negative batch limit",
			cfg:  PipelineConfig{BatchLimit: -2},
			want: "batch_limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestPipelineConfigEnvOverride(t *testing.T) {
	t.Setenv(EnvPipelineValidateTimeout, "10s")
	t.Setenv(EnvPipelineVerifyThreshold, "0.7")

	var cfg PipelineConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.ValidateTimeoutDuration() != 10*time.Second {
		t.Errorf("ValidateTimeoutDuration() = %v", cfg.ValidateTimeoutDuration())
	}
	if cfg.VerifyThreshold != 0.7 {
		t.Errorf("VerifyThreshold = %g", cfg.VerifyThreshold)
	}
}

func TestProviderConfigAvailability(t *testing.T) {
	disabled := false

	tests := []struct {
		name string
		cfg  ProviderConfig
		want bool
	}{
		{
			name: "unconfigured",
			cfg:  ProviderConfig{},
			want: false,
		},
		{
			name: "configured",
			cfg:  ProviderConfig{ProviderName: "ollama", ModelName: "llama3.2"},
			want: true,
		},
		{
			name: "explicitly disabled",
			cfg: ProviderConfig{
				Enabled:      &disabled,
				ProviderName: "ollama",
				ModelName:    "llama3.2",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.IsEnabled(); got != tt.want {
				t.Errorf("IsEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProviderConfigValidation(t *testing.T) {
	cfg := ProviderConfig{ProviderName: "ollama"}
	if err := cfg.Finalize(fastAgentEnv); err == nil {
		t.Error("expected error for provider without model")
	}

	cfg = ProviderConfig{ModelName: "llama3.2"}
	if err := cfg.Finalize(primaryAgentEnv); err == nil {
		t.Error("expected error for model without provider")
	}

	cfg = ProviderConfig{}
	if err := cfg.Finalize(fastAgentEnv); err != nil {
		t.Errorf("unconfigured role should finalize cleanly: %v", err)
	}
}

func TestProviderConfigEnvOverride(t *testing.T) {
	t.Setenv(fastAgentEnv.ProviderName, "azure")
	t.Setenv(fastAgentEnv.ModelName, "gpt-4o-mini")
	t.Setenv(fastAgentEnv.Token, "secret")
	t.Setenv(fastAgentEnv.Deployment, "fast-deploy")

	var cfg ProviderConfig
	if err := cfg.Finalize(fastAgentEnv); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	agent := cfg.Agent("test-fast")
	if agent.Provider.Name != "azure" {
		t.Errorf("Provider.Name = %q", agent.Provider.Name)
	}
	if agent.Model.Name != "gpt-4o-mini" {
		t.Errorf("Model.Name = %q", agent.Model.Name)
	}
	if agent.Provider.Options["token"] != "secret" {
		t.Errorf("token option = %v", agent.Provider.Options["token"])
	}
	if agent.Provider.Options["deployment"] != "fast-deploy" {
		t.Errorf("deployment option = %v", agent.Provider.Options["deployment"])
	}
}

func TestProvidersConfigMerge(t *testing.T) {
	base := ProvidersConfig{
		Fast: ProviderConfig{ProviderName: "ollama", ModelName: "llama3.2"},
	}
	overlay := ProvidersConfig{
		Fast:    ProviderConfig{ModelName: "phi4"},
		Primary: ProviderConfig{ProviderName: "azure", ModelName: "gpt-4o"},
	}

	base.Merge(&overlay)

	if base.Fast.ProviderName != "ollama" {
		t.Errorf("Fast.ProviderName = %q", base.Fast.ProviderName)
	}
	if base.Fast.ModelName != "phi4" {
		t.Errorf("Fast.ModelName = %q", base.Fast.ModelName)
	}
	if base.Primary.ProviderName != "azure" {
		t.Errorf("Primary.ProviderName = %q", base.Primary.ProviderName)
	}
}

func TestConfigMerge(t *testing.T) {
	base := Config{
		ShutdownTimeout: "30s",
		Server:          ServerConfig{Port: 8080},
	}
	overlay := Config{
		ShutdownTimeout: "1m",
		Server:          ServerConfig{Port: 9000},
		Pipeline:        PipelineConfig{VerifyThreshold: 0.9},
	}

	base.Merge(&overlay)

	if base.ShutdownTimeout != "1m" {
		t.Errorf("ShutdownTimeout = %q", base.ShutdownTimeout)
	}
	if base.Server.Port != 9000 {
		t.Errorf("Server.Port = %d", base.Server.Port)
	}
	if base.Pipeline.VerifyThreshold != 0.9 {
		t.Errorf("Pipeline.VerifyThreshold = %g", base.Pipeline.VerifyThreshold)
	}
}
