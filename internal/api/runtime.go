package api

import (
	"github.com/plazo-io/plazo/internal/config"
	"github.com/plazo-io/plazo/internal/infrastructure"
	"github.com/plazo-io/plazo/pkg/pagination"
	"github.com/plazo-io/plazo/pkg/workdays"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Providers  config.ProvidersConfig
	Pipeline   config.PipelineConfig
	Calendar   *workdays.Calendar
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Pagination: cfg.API.Pagination,
		Providers:  cfg.Providers,
		Pipeline:   cfg.Pipeline,
		Calendar:   workdays.NewCalendar(),
	}
}
