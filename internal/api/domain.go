package api

import (
	"context"

	"github.com/plazo-io/plazo/internal/clients"
	"github.com/plazo-io/plazo/internal/deadlines"
	"github.com/plazo-io/plazo/internal/documents"
	"github.com/plazo-io/plazo/internal/extractions"
	"github.com/plazo-io/plazo/internal/prompts"
	"github.com/plazo-io/plazo/pipeline"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Clients     clients.System
	Documents   documents.System
	Prompts     prompts.System
	Deadlines   deadlines.System
	Extractions extractions.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	clientsSystem := clients.New(db, runtime.Logger, runtime.Pagination)

	docsSystem := documents.New(
		db,
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	promptsSystem := prompts.New(db, runtime.Logger, runtime.Pagination)

	deadlinesSystem := deadlines.New(
		db,
		runtime.Calendar,
		runtime.Logger,
		runtime.Pagination,
	)

	pipelineRuntime := newPipelineRuntime(runtime, promptsSystem)

	extractionsSystem := extractions.New(
		db,
		pipelineRuntime,
		docsSystem,
		deadlinesSystem,
		runtime.Logger,
		runtime.Pipeline.BatchLimit,
	)

	return &Domain{
		Clients:     clientsSystem,
		Documents:   docsSystem,
		Prompts:     promptsSystem,
		Deadlines:   deadlinesSystem,
		Extractions: extractionsSystem,
	}
}

func newPipelineRuntime(runtime *Runtime, promptsSystem prompts.System) *pipeline.Runtime {
	return &pipeline.Runtime{
		Fast: pipeline.NewProvider(
			"plazo-fast",
			runtime.Providers.Fast.Agent("plazo-fast"),
			runtime.Providers.Fast.IsEnabled(),
		),
		Primary: pipeline.NewProvider(
			"plazo-primary",
			runtime.Providers.Primary.Agent("plazo-primary"),
			runtime.Providers.Primary.IsEnabled(),
		),
		Prompts:  &promptSource{prompts: promptsSystem},
		Calendar: runtime.Calendar,
		Config: pipeline.Config{
			PreprocessTimeout: runtime.Pipeline.PreprocessTimeoutDuration(),
			ExtractTimeout:    runtime.Pipeline.ExtractTimeoutDuration(),
			ValidateTimeout:   runtime.Pipeline.ValidateTimeoutDuration(),
			VerifyThreshold:   runtime.Pipeline.VerifyThreshold,
		},
		Logger: runtime.Logger.With("system", "pipeline"),
	}
}

// promptSource adapts the prompts domain system to the pipeline's
// prompt resolution contract.
type promptSource struct {
	prompts prompts.System
}

func (s *promptSource) Instructions(ctx context.Context, stage pipeline.Stage) (string, error) {
	return s.prompts.Instructions(ctx, prompts.Stage(stage))
}

func (s *promptSource) Spec(ctx context.Context, stage pipeline.Stage) (string, error) {
	return s.prompts.Spec(ctx, prompts.Stage(stage))
}
