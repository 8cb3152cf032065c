package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ComposePrompt builds a provider payload by combining the stage's tunable
// instructions, its immutable output specification, and the stage-specific
// sections appended by the caller. Hints, when present, are always framed
// as advisory reference material so the model's own read of the source
// text takes precedence on conflict.
func ComposePrompt(ctx context.Context, ps PromptSource, stage Stage, sections ...string) (string, error) {
	instructions, err := ps.Instructions(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", stage, err)
	}

	spec, err := ps.Spec(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", stage, err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\n")
	sb.WriteString(spec)

	for _, section := range sections {
		if section == "" {
			continue
		}
		sb.WriteString("\n\n")
		sb.WriteString(section)
	}

	return sb.String(), nil
}

func documentSection(documentName, rawText string) string {
	var sb strings.Builder
	if documentName != "" {
		sb.WriteString("Document: ")
		sb.WriteString(documentName)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Document text:\n\n")
	sb.WriteString(rawText)
	return sb.String()
}

// hintsSection renders the advisory hint block. The framing is part of the
// pipeline contract: hints are reference material, never ground truth, and
// the receiving model must still analyze the source text independently.
func hintsSection(hints *HintBundle) string {
	if hints == nil {
		return ""
	}

	data, err := json.MarshalIndent(hints, "", "  ")
	if err != nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Preliminary hints from a prior fast-pass analysis. ")
	sb.WriteString("Treat these as reference, not ground truth: analyze the document text independently, ")
	sb.WriteString("and where your reading conflicts with a hint, your reading takes precedence.\n\n")
	sb.Write(data)
	return sb.String()
}

func resultSection(result *Result) string {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Extraction result to verify:\n\n")
	sb.Write(data)
	return sb.String()
}
