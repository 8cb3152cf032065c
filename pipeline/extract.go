package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type deadlineResponse struct {
	Deadlines []struct {
		Date        string `json:"date"`
		Description string `json:"description"`
	} `json:"deadlines"`
}

// Extract runs the primary provider over raw text to produce the
// authoritative result for the given purpose. Hints, when present, are
// injected as an advisory prompt section only; the provider must still
// analyze the raw text independently. Malformed output (schema violation,
// out-of-domain confidence, unparseable date) is retried once, then
// surfaced as a ProviderError. There is no fallback authoritative source,
// so every error from this stage aborts the request.
func Extract(ctx context.Context, rt *Runtime, rawText string, hints *HintBundle, purpose Purpose) (*Result, error) {
	if !rt.Primary.Available() {
		return nil, fmt.Errorf("%s: %w", rt.Primary.Name(), ErrUnavailable)
	}

	stage := StageClassify
	if purpose == PurposeDeadlines {
		stage = StageDeadlines
	}

	prompt, err := ComposePrompt(ctx, rt.Prompts, stage,
		documentSection("", rawText),
		hintsSection(hints),
	)
	if err != nil {
		return nil, &ProviderError{Provider: rt.Primary.Name(), Stage: stage, Err: err}
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		result, err := extractOnce(ctx, rt, stage, prompt, purpose)
		if err == nil {
			return result, nil
		}

		lastErr = err
		if !errors.Is(err, ErrMalformed) {
			break
		}

		rt.Logger.WarnContext(ctx, "primary extraction returned malformed output",
			"provider", rt.Primary.Name(),
			"stage", stage,
			"attempt", attempt+1,
		)
	}

	return nil, &ProviderError{Provider: rt.Primary.Name(), Stage: stage, Err: lastErr}
}

func extractOnce(ctx context.Context, rt *Runtime, stage Stage, prompt string, purpose Purpose) (*Result, error) {
	callCtx, cancel := context.WithTimeout(ctx, rt.Config.ExtractTimeout)
	defer cancel()

	content, err := rt.Primary.Analyze(callCtx, prompt)
	if err != nil {
		return nil, err
	}

	switch purpose {
	case PurposeDeadlines:
		return parseDeadlines(rt, content)
	default:
		return parseClassification(content)
	}
}

func parseClassification(content string) (*Result, error) {
	c, err := decodeChecked[Classification](content, classificationValidator)
	if err != nil {
		return nil, err
	}

	if c.Confidence < 0 || c.Confidence > 1 {
		return nil, fmt.Errorf("%w: confidence %v out of range", ErrMalformed, c.Confidence)
	}

	if c.Tags == nil {
		c.Tags = []string{}
	}
	if c.KeyEntities == nil {
		c.KeyEntities = make(map[string][]string)
	}

	return &Result{Purpose: PurposeClassify, Classification: &c}, nil
}

func parseDeadlines(rt *Runtime, content string) (*Result, error) {
	resp, err := decodeChecked[deadlineResponse](content, deadlinesValidator)
	if err != nil {
		return nil, err
	}

	now := rt.now()
	cal := rt.calendar()

	deadlines := make([]Deadline, 0, len(resp.Deadlines))
	for _, d := range resp.Deadlines {
		due, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: unparseable date %q", ErrMalformed, d.Date)
		}

		days, risk := cal.Assess(now, due)
		deadlines = append(deadlines, Deadline{
			Date:        d.Date,
			Description: d.Description,
			WorkingDays: days,
			Risk:        risk,
		})
	}

	return &Result{Purpose: PurposeDeadlines, Deadlines: deadlines}, nil
}
