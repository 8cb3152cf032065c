package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/plazo-io/plazo/pkg/workdays"
)

// Stage identifies one prompt-bearing step of the pipeline.
type Stage string

const (
	StagePreprocess Stage = "preprocess"
	StageClassify   Stage = "classify"
	StageDeadlines  Stage = "deadlines"
	StageValidate   Stage = "validate"
)

// PromptSource supplies the tunable instructions and immutable output
// specification for each pipeline stage.
type PromptSource interface {
	Instructions(ctx context.Context, stage Stage) (string, error)
	Spec(ctx context.Context, stage Stage) (string, error)
}

// Config carries the orchestration tuning values. Each stage call runs
// under its own timeout. VerifyThreshold marks verdicts whose confidence
// falls below it as low-confidence in logs; it never changes a verdict's
// status.
type Config struct {
	PreprocessTimeout time.Duration
	ExtractTimeout    time.Duration
	ValidateTimeout   time.Duration
	VerifyThreshold   float64
}

// Runtime bundles the dependencies that pipeline stages require. It is
// constructed by higher-level composition code and holds no mutable state
// across runs, so a single Runtime serves concurrent document requests.
type Runtime struct {
	Fast     Provider
	Primary  Provider
	Prompts  PromptSource
	Calendar *workdays.Calendar
	Config   Config
	Logger   *slog.Logger

	// NewID generates extraction identifiers. Injectable so stubbed runs
	// produce deterministic envelopes.
	NewID func() uuid.UUID

	// Now anchors working-day calculations. Injectable for tests.
	Now func() time.Time
}

func (rt *Runtime) newID() uuid.UUID {
	if rt.NewID != nil {
		return rt.NewID()
	}
	return uuid.New()
}

func (rt *Runtime) now() time.Time {
	if rt.Now != nil {
		return rt.Now()
	}
	return time.Now()
}

func (rt *Runtime) calendar() *workdays.Calendar {
	if rt.Calendar == nil {
		return workdays.NewCalendar()
	}
	return rt.Calendar
}
