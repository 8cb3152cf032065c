package pipeline

import (
	"context"
	"errors"
	"fmt"
)

// Validate cross-checks the authoritative result against the raw text and
// the optional hint bundle using the fast provider. Every failure mode is
// absorbed into an error verdict: validation never aborts the request.
// Four terminal states exist: not configured, verified, discrepancy, and
// error.
func Validate(ctx context.Context, rt *Runtime, result *Result, rawText string, hints *HintBundle) Verdict {
	if !rt.Fast.Available() {
		return errorVerdict(ReasonNotConfigured)
	}

	prompt, err := ComposePrompt(ctx, rt.Prompts, StageValidate,
		resultSection(result),
		documentSection("", rawText),
		hintsSection(hints),
	)
	if err != nil {
		rt.Logger.ErrorContext(ctx, "validation prompt composition failed", "error", err)
		return errorVerdict(err.Error())
	}

	callCtx, cancel := context.WithTimeout(ctx, rt.Config.ValidateTimeout)
	defer cancel()

	content, err := rt.Fast.Analyze(callCtx, prompt)
	if err != nil {
		rt.Logger.WarnContext(ctx, "validation call failed",
			"provider", rt.Fast.Name(),
			"error", err,
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return errorVerdict(fmt.Sprintf("timeout after %s", rt.Config.ValidateTimeout))
		}
		return errorVerdict(err.Error())
	}

	verdict, err := decodeChecked[Verdict](content, verdictValidator)
	if err != nil {
		rt.Logger.WarnContext(ctx, "validation returned malformed output",
			"provider", rt.Fast.Name(),
		)
		return errorVerdict(ReasonMalformed)
	}

	verdict = verdict.normalize()

	if verdict.Status == StatusVerified && verdict.ConfidenceScore < rt.Config.VerifyThreshold {
		rt.Logger.InfoContext(ctx, "verdict verified below confidence threshold",
			"confidence", verdict.ConfidenceScore,
			"threshold", rt.Config.VerifyThreshold,
		)
	}

	return verdict
}
