package pipeline

import (
	"context"
	"strings"
)

// Degradation reasons reported in PreprocessResult.Error. These are data,
// not errors: preprocessing failure never escalates past this stage.
const (
	ReasonEmptyInput    = "empty input"
	ReasonNotConfigured = "not configured"
	ReasonMalformed     = "malformed response"
)

// PreprocessResult is the tagged outcome of the preprocessing stage.
// Hints is nil whenever Success is false; downstream stages treat a nil
// bundle as "no hints", never as a fault.
type PreprocessResult struct {
	Success bool        `json:"success"`
	Hints   *HintBundle `json:"hints,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func preprocessFailure(reason string) PreprocessResult {
	return PreprocessResult{Success: false, Error: reason}
}

// ExtractHints runs the fast provider over raw text to produce an advisory
// hint bundle. Every failure mode is absorbed into the result: empty input
// and an unconfigured provider are detected without a remote call, and
// call or parse failures degrade to a tagged failure.
func ExtractHints(ctx context.Context, rt *Runtime, rawText, documentName string) PreprocessResult {
	if strings.TrimSpace(rawText) == "" {
		return preprocessFailure(ReasonEmptyInput)
	}

	if !rt.Fast.Available() {
		rt.Logger.InfoContext(ctx, "preprocessing skipped", "reason", ReasonNotConfigured)
		return preprocessFailure(ReasonNotConfigured)
	}

	prompt, err := ComposePrompt(ctx, rt.Prompts, StagePreprocess, documentSection(documentName, rawText))
	if err != nil {
		rt.Logger.ErrorContext(ctx, "preprocessing prompt composition failed", "error", err)
		return preprocessFailure(err.Error())
	}

	callCtx, cancel := context.WithTimeout(ctx, rt.Config.PreprocessTimeout)
	defer cancel()

	content, err := rt.Fast.Analyze(callCtx, prompt)
	if err != nil {
		rt.Logger.WarnContext(ctx, "preprocessing call failed",
			"provider", rt.Fast.Name(),
			"error", err,
		)
		return preprocessFailure(err.Error())
	}

	hints, err := decodeChecked[HintBundle](content, hintsValidator)
	if err != nil {
		rt.Logger.WarnContext(ctx, "preprocessing returned malformed output",
			"provider", rt.Fast.Name(),
		)
		return preprocessFailure(ReasonMalformed)
	}

	hints.normalize()

	rt.Logger.InfoContext(ctx, "preprocessing complete",
		"document", documentName,
		"entities", len(hints.Entities),
		"candidate_dates", len(hints.CandidateDates),
	)

	return PreprocessResult{Success: true, Hints: &hints}
}
