package pipeline

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Provider is the capability interface over one external text analysis
// model. Two instances exist per deployment: a fast provider used for
// preprocessing and validation, and a primary provider used for
// authoritative extraction. Callers depend only on this interface and
// never special-case by instance.
type Provider interface {
	// Name identifies the provider in logs and error messages.
	Name() string
	// Available reports whether the provider is configured. The check is
	// performed once at construction and never issues a network call.
	Available() bool
	// Analyze sends prompt to the model and returns the raw response
	// content. Returns ErrUnavailable without a remote call when the
	// provider is not configured.
	Analyze(ctx context.Context, prompt string) (string, error)
}

type agentProvider struct {
	name      string
	cfg       gaconfig.AgentConfig
	available bool
}

// NewProvider creates a Provider backed by a go-agents chat agent.
// Availability is fixed at construction from the enabled flag, so an
// unconfigured provider fails fast without touching the network.
func NewProvider(name string, cfg gaconfig.AgentConfig, enabled bool) Provider {
	return &agentProvider{
		name:      name,
		cfg:       cfg,
		available: enabled,
	}
}

func (p *agentProvider) Name() string {
	return p.name
}

func (p *agentProvider) Available() bool {
	return p.available
}

func (p *agentProvider) Analyze(ctx context.Context, prompt string) (string, error) {
	if !p.available {
		return "", fmt.Errorf("%s: %w", p.name, ErrUnavailable)
	}

	a, err := agent.New(&p.cfg)
	if err != nil {
		return "", fmt.Errorf("create agent %s: %w", p.name, err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("analyze with %s: %w", p.name, err)
	}

	return resp.Content(), nil
}
