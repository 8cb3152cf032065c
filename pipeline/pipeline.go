package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// State bag keys for the pipeline graph.
const (
	KeyRawText      = "raw_text"
	KeyDocumentName = "document_name"
	KeyPurpose      = "purpose"
	KeyPreprocess   = "preprocess_result"
	KeyResult       = "authoritative_result"
	KeyVerdict      = "verdict"
)

// Envelope is the assembled artifact of one pipeline run. The caller owns
// persistence; the pipeline holds no state across runs. ExtractionID is
// nil whenever preprocessing did not succeed, since no preprocessing
// record exists to reference.
type Envelope struct {
	Hints        *HintBundle `json:"hint_bundle,omitempty"`
	Result       *Result     `json:"authoritative_result"`
	Verdict      Verdict     `json:"verdict"`
	ExtractionID *uuid.UUID  `json:"extraction_id,omitempty"`
}

// Run executes the three-stage pipeline for a single document: preprocess
// (degradable) → extract (fatal on failure) → validate (degradable). The
// stages run in strict sequence because each consumes the prior stage's
// possibly-absent output. Returns a FatalError only when the primary
// extraction stage cannot produce an authoritative result.
func Run(ctx context.Context, rt *Runtime, rawText, documentName string, purpose Purpose) (*Envelope, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initial := state.New(nil)
	initial = initial.Set(KeyRawText, rawText)
	initial = initial.Set(KeyDocumentName, documentName)
	initial = initial.Set(KeyPurpose, purpose)

	final, err := graph.Execute(ctx, initial)
	if err != nil {
		return nil, err
	}

	return assemble(rt, final)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("plazo-pipeline")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("preprocess", PreprocessNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("extract", ExtractNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("validate", ValidateNode(rt)); err != nil {
		return nil, err
	}

	// preprocess → extract (unconditional: absent hints are not an abort condition)
	if err := graph.AddEdge("preprocess", "extract", nil); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("extract", "validate", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("preprocess"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("validate"); err != nil {
		return nil, err
	}

	return graph, nil
}

// PreprocessNode returns a state node that runs the fast-provider hint
// extraction. The node always succeeds: every preprocessing failure mode
// is absorbed into the tagged PreprocessResult.
func PreprocessNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		rawText := stringKey(s, KeyRawText)
		documentName := stringKey(s, KeyDocumentName)

		result := ExtractHints(ctx, rt, rawText, documentName)

		s = s.Set(KeyPreprocess, result)
		return s, nil
	})
}

// ExtractNode returns a state node that runs the primary extraction. An
// error from this node aborts the graph: there is no fallback
// authoritative source.
func ExtractNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		rawText := stringKey(s, KeyRawText)

		purpose, ok := purposeKey(s)
		if !ok {
			return s, fatal(fmt.Errorf("extract: missing %s in state", KeyPurpose))
		}

		result, err := Extract(ctx, rt, rawText, hintsFromState(s), purpose)
		if err != nil {
			return s, fatal(fmt.Errorf("extract: %w", err))
		}

		rt.Logger.InfoContext(ctx, "primary extraction complete", "purpose", purpose)

		s = s.Set(KeyResult, result)
		return s, nil
	})
}

// ValidateNode returns a state node that cross-checks the authoritative
// result. Like preprocessing, it always succeeds: validation failures
// degrade into an error verdict.
func ValidateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		rawText := stringKey(s, KeyRawText)

		result, err := resultFromState(s)
		if err != nil {
			return s, fatal(fmt.Errorf("validate: %w", err))
		}

		verdict := Validate(ctx, rt, result, rawText, hintsFromState(s))

		rt.Logger.InfoContext(ctx, "validation complete",
			"status", verdict.Status,
			"confidence", verdict.ConfidenceScore,
			"discrepancies", len(verdict.Discrepancies),
		)

		s = s.Set(KeyVerdict, verdict)
		return s, nil
	})
}

func assemble(rt *Runtime, s state.State) (*Envelope, error) {
	result, err := resultFromState(s)
	if err != nil {
		return nil, err
	}

	verdictVal, ok := s.Get(KeyVerdict)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyVerdict)
	}

	verdict, ok := verdictVal.(Verdict)
	if !ok {
		return nil, fmt.Errorf("%s is not Verdict", KeyVerdict)
	}

	envelope := &Envelope{
		Result:  result,
		Verdict: verdict,
	}

	if pre, ok := preprocessFromState(s); ok && pre.Success {
		envelope.Hints = pre.Hints
		id := rt.newID()
		envelope.ExtractionID = &id
	}

	return envelope, nil
}

func stringKey(s state.State, key string) string {
	val, ok := s.Get(key)
	if !ok {
		return ""
	}

	str, _ := val.(string)
	return str
}

func purposeKey(s state.State) (Purpose, bool) {
	val, ok := s.Get(KeyPurpose)
	if !ok {
		return "", false
	}

	purpose, ok := val.(Purpose)
	return purpose, ok
}

func preprocessFromState(s state.State) (PreprocessResult, bool) {
	val, ok := s.Get(KeyPreprocess)
	if !ok {
		return PreprocessResult{}, false
	}

	pre, ok := val.(PreprocessResult)
	return pre, ok
}

func hintsFromState(s state.State) *HintBundle {
	pre, ok := preprocessFromState(s)
	if !ok || !pre.Success {
		return nil
	}
	return pre.Hints
}

func resultFromState(s state.State) (*Result, error) {
	val, ok := s.Get(KeyResult)
	if !ok {
		return nil, fmt.Errorf("missing %s in state", KeyResult)
	}

	result, ok := val.(*Result)
	if !ok {
		return nil, fmt.Errorf("%s is not *Result", KeyResult)
	}

	return result, nil
}
