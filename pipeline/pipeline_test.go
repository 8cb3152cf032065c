package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/plazo-io/plazo/pipeline"
	"github.com/plazo-io/plazo/pkg/workdays"
)

const rawText = "The defendant shall file an answer no later than 2026-09-15. Hearing set before Judge Morales in Panama City."

const hintsJSON = `{
  "entities": {
    "person": ["Judge Morales"],
    "location": ["Panama City"]
  },
  "candidate_dates": [
    {"date": "2026-09-15", "description": "answer due", "risk_tag": "high"}
  ],
  "key_facts": ["answer deadline set"],
  "doc_type_guess": "court order",
  "language": "es"
}`

const classificationJSON = `{
  "doc_type": "court_order",
  "confidence": 0.92,
  "matter_id": "2026-CV-104",
  "tags": ["civil", "deadline"],
  "key_entities": {"person": ["Judge Morales"]},
  "summary": "Order setting an answer deadline."
}`

const verifiedJSON = `{
  "validation_status": "verified",
  "confidence_score": 0.95,
  "feedback": "extraction matches the source text",
  "verified_items": ["doc_type", "deadline date"],
  "discrepancies": [],
  "missing_information": []
}`

type stubProvider struct {
	name      string
	available bool
	responses []string
	err       error
	block     bool
	calls     int
}

func (p *stubProvider) Name() string    { return p.name }
func (p *stubProvider) Available() bool { return p.available }

func (p *stubProvider) Analyze(ctx context.Context, prompt string) (string, error) {
	p.calls++

	if p.block {
		<-ctx.Done()
		return "", ctx.Err()
	}

	if p.err != nil {
		return "", p.err
	}

	idx := min(p.calls-1, len(p.responses)-1)
	return p.responses[idx], nil
}

type staticPrompts struct{}

func (staticPrompts) Instructions(_ context.Context, stage pipeline.Stage) (string, error) {
	return "instructions for " + string(stage), nil
}

func (staticPrompts) Spec(_ context.Context, stage pipeline.Stage) (string, error) {
	return "output spec for " + string(stage), nil
}

func newRuntime(fast, primary pipeline.Provider) *pipeline.Runtime {
	return &pipeline.Runtime{
		Fast:     fast,
		Primary:  primary,
		Prompts:  staticPrompts{},
		Calendar: workdays.NewCalendar(),
		Config: pipeline.Config{
			PreprocessTimeout: 5 * time.Second,
			ExtractTimeout:    5 * time.Second,
			ValidateTimeout:   50 * time.Millisecond,
			VerifyThreshold:   0.85,
		},
		Logger: slog.New(slog.DiscardHandler),
		NewID:  func() uuid.UUID { return uuid.MustParse("3e1f4aa8-33cf-4f41-9c79-6e8e43f8d012") },
		Now:    func() time.Time { return time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC) },
	}
}

func TestExtractHints(t *testing.T) {
	tests := []struct {
		name      string
		fast      *stubProvider
		rawText   string
		wantError string
		wantCalls int
	}{
		{
			"empty input skips provider",
			&stubProvider{name: "fast", available: true, responses: []string{hintsJSON}},
			"   ",
			"empty input",
			0,
		},
		{
			"unconfigured provider",
			&stubProvider{name: "fast", available: false},
			rawText,
			"not configured",
			0,
		},
		{
			"malformed response",
			&stubProvider{name: "fast", available: true, responses: []string{"not json at all"}},
			rawText,
			"malformed response",
			1,
		},
		{
			"provider error absorbed",
			&stubProvider{name: "fast", available: true, err: errors.New("connection refused")},
			rawText,
			"connection refused",
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newRuntime(tt.fast, &stubProvider{name: "primary", available: true})

			result := pipeline.ExtractHints(context.Background(), rt, tt.rawText, "order.pdf")

			if result.Success {
				t.Fatal("expected failure result")
			}
			if result.Hints != nil {
				t.Error("failed result must carry no hints")
			}
			if !strings.Contains(result.Error, tt.wantError) {
				t.Errorf("Error = %q, want containing %q", result.Error, tt.wantError)
			}
			if tt.fast.calls != tt.wantCalls {
				t.Errorf("provider calls = %d, want %d", tt.fast.calls, tt.wantCalls)
			}
		})
	}
}

func TestExtractHintsSuccess(t *testing.T) {
	fast := &stubProvider{name: "fast", available: true, responses: []string{hintsJSON}}
	rt := newRuntime(fast, &stubProvider{name: "primary", available: true})

	result := pipeline.ExtractHints(context.Background(), rt, rawText, "order.pdf")

	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.Hints == nil {
		t.Fatal("expected hints")
	}
	if result.Hints.DocTypeGuess != "court order" {
		t.Errorf("DocTypeGuess = %q", result.Hints.DocTypeGuess)
	}
	if got := result.Hints.Entities["person"]; len(got) != 1 || got[0] != "Judge Morales" {
		t.Errorf("person entities = %v", got)
	}
	if result.Hints.Language != "es" {
		t.Errorf("Language = %q, want normalized es", result.Hints.Language)
	}
}

func TestExtractUnavailableIsFatal(t *testing.T) {
	rt := newRuntime(
		&stubProvider{name: "fast", available: true, responses: []string{hintsJSON}},
		&stubProvider{name: "primary", available: false},
	)

	_, err := pipeline.Run(context.Background(), rt, rawText, "order.pdf", pipeline.PurposeClassify)

	var fatal *pipeline.FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("expected FatalError, got %v", err)
	}
	if !errors.Is(err, pipeline.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable in chain, got %v", err)
	}
}

func TestExtractTimeoutIsFatal(t *testing.T) {
	primary := &stubProvider{name: "primary", available: true, block: true}
	rt := newRuntime(&stubProvider{name: "fast", available: false}, primary)
	rt.Config.ExtractTimeout = 50 * time.Millisecond

	envelope, err := pipeline.Run(context.Background(), rt, rawText, "order.pdf", pipeline.PurposeClassify)

	if envelope != nil {
		t.Error("expected no envelope when extraction times out")
	}

	var fatal *pipeline.FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("expected FatalError, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded in chain, got %v", err)
	}

	var provErr *pipeline.ProviderError
	if !errors.As(err, &provErr) {
		t.Errorf("expected ProviderError in chain, got %v", err)
	}
	if primary.calls != 1 {
		t.Errorf("provider calls = %d, want no retry on timeout", primary.calls)
	}
}

func TestExtractRetriesMalformedOnce(t *testing.T) {
	outOfRange := `{"doc_type": "contract", "confidence": 1.4, "summary": "x"}`
	primary := &stubProvider{name: "primary", available: true, responses: []string{outOfRange, outOfRange}}
	rt := newRuntime(&stubProvider{name: "fast", available: false}, primary)

	_, err := pipeline.Extract(context.Background(), rt, rawText, nil, pipeline.PurposeClassify)

	var provErr *pipeline.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if !errors.Is(err, pipeline.ErrMalformed) {
		t.Errorf("expected ErrMalformed in chain, got %v", err)
	}
	if primary.calls != 2 {
		t.Errorf("provider calls = %d, want exactly one retry", primary.calls)
	}
}

func TestExtractRecoversOnRetry(t *testing.T) {
	primary := &stubProvider{
		name:      "primary",
		available: true,
		responses: []string{`{"confidence": -3}`, classificationJSON},
	}
	rt := newRuntime(&stubProvider{name: "fast", available: false}, primary)

	result, err := pipeline.Extract(context.Background(), rt, rawText, nil, pipeline.PurposeClassify)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if primary.calls != 2 {
		t.Errorf("provider calls = %d, want 2", primary.calls)
	}
	if result.Classification == nil || result.Classification.DocType != "court_order" {
		t.Errorf("unexpected classification: %+v", result.Classification)
	}
}

func TestExtractDeadlines(t *testing.T) {
	deadlinesJSON := `{"deadlines": [
      {"date": "2026-09-15", "description": "file answer"},
      {"date": "2026-08-28", "description": "expired notice period"}
    ]}`
	primary := &stubProvider{name: "primary", available: true, responses: []string{deadlinesJSON}}
	rt := newRuntime(&stubProvider{name: "fast", available: false}, primary)

	result, err := pipeline.Extract(context.Background(), rt, rawText, nil, pipeline.PurposeDeadlines)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(result.Deadlines) != 2 {
		t.Fatalf("got %d deadlines", len(result.Deadlines))
	}

	first := result.Deadlines[0]
	if first.WorkingDays <= 0 {
		t.Errorf("WorkingDays = %d, want positive", first.WorkingDays)
	}
	if first.Risk != workdays.RiskMedium {
		t.Errorf("Risk = %s, want medium", first.Risk)
	}

	second := result.Deadlines[1]
	if second.WorkingDays >= 0 {
		t.Errorf("WorkingDays = %d, want negative for past date", second.WorkingDays)
	}
	if second.Risk != workdays.RiskOverdue {
		t.Errorf("Risk = %s, want overdue", second.Risk)
	}
}

func TestExtractDeadlinesBadDate(t *testing.T) {
	bad := `{"deadlines": [{"date": "next Tuesday", "description": "vague"}]}`
	primary := &stubProvider{name: "primary", available: true, responses: []string{bad, bad}}
	rt := newRuntime(&stubProvider{name: "fast", available: false}, primary)

	_, err := pipeline.Extract(context.Background(), rt, rawText, nil, pipeline.PurposeDeadlines)
	if !errors.Is(err, pipeline.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if primary.calls != 2 {
		t.Errorf("provider calls = %d, want 2", primary.calls)
	}
}

func TestValidateVerdicts(t *testing.T) {
	result := &pipeline.Result{Purpose: pipeline.PurposeClassify}

	tests := []struct {
		name           string
		fast           *stubProvider
		wantStatus     pipeline.Status
		wantConfidence float64
	}{
		{
			"unconfigured provider yields error verdict",
			&stubProvider{name: "fast", available: false},
			pipeline.StatusError,
			0.0,
		},
		{
			"verified",
			&stubProvider{name: "fast", available: true, responses: []string{verifiedJSON}},
			pipeline.StatusVerified,
			0.95,
		},
		{
			"discrepancy with entries",
			&stubProvider{name: "fast", available: true, responses: []string{`{
              "validation_status": "discrepancy",
              "confidence_score": 0.6,
              "feedback": "date mismatch",
              "discrepancies": ["extracted date not present in text"]
            }`}},
			pipeline.StatusDiscrepancy,
			0.6,
		},
		{
			"discrepancy without entries resolves to verified",
			&stubProvider{name: "fast", available: true, responses: []string{`{
              "validation_status": "discrepancy",
              "confidence_score": 0.6,
              "feedback": "uncertain",
              "discrepancies": []
            }`}},
			pipeline.StatusVerified,
			0.6,
		},
		{
			"error status forces zero confidence",
			&stubProvider{name: "fast", available: true, responses: []string{`{
              "validation_status": "error",
              "confidence_score": 0.7,
              "feedback": "could not compare",
              "verified_items": ["stale"]
            }`}},
			pipeline.StatusError,
			0.0,
		},
		{
			"malformed output yields error verdict",
			&stubProvider{name: "fast", available: true, responses: []string{"no json here"}},
			pipeline.StatusError,
			0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newRuntime(tt.fast, &stubProvider{name: "primary", available: true})

			verdict := pipeline.Validate(context.Background(), rt, result, rawText, nil)

			if verdict.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", verdict.Status, tt.wantStatus)
			}
			if verdict.ConfidenceScore != tt.wantConfidence {
				t.Errorf("ConfidenceScore = %v, want %v", verdict.ConfidenceScore, tt.wantConfidence)
			}
			if verdict.Status == pipeline.StatusError {
				if len(verdict.VerifiedItems) != 0 || len(verdict.Discrepancies) != 0 || len(verdict.MissingInformation) != 0 {
					t.Error("error verdict must carry empty lists")
				}
			}
			if verdict.Status == pipeline.StatusDiscrepancy {
				if len(verdict.Discrepancies) == 0 {
					t.Error("discrepancy verdict must carry at least one discrepancy")
				}
				if verdict.ConfidenceScore >= 1.0 {
					t.Error("discrepancy verdict must carry confidence below 1.0")
				}
			}
		})
	}
}

func TestValidateTimeout(t *testing.T) {
	fast := &stubProvider{name: "fast", available: true, block: true}
	rt := newRuntime(fast, &stubProvider{name: "primary", available: true})

	verdict := pipeline.Validate(context.Background(), rt, &pipeline.Result{Purpose: pipeline.PurposeClassify}, rawText, nil)

	if verdict.Status != pipeline.StatusError {
		t.Errorf("Status = %s, want error", verdict.Status)
	}
	if verdict.ConfidenceScore != 0.0 {
		t.Errorf("ConfidenceScore = %v, want 0", verdict.ConfidenceScore)
	}
	if !strings.Contains(verdict.Feedback, "timeout") {
		t.Errorf("Feedback = %q, want containing timeout", verdict.Feedback)
	}
}

func TestRunDegradedWithoutFastProvider(t *testing.T) {
	rt := newRuntime(
		&stubProvider{name: "fast", available: false},
		&stubProvider{name: "primary", available: true, responses: []string{classificationJSON}},
	)

	envelope, err := pipeline.Run(context.Background(), rt, rawText, "order.pdf", pipeline.PurposeClassify)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if envelope.Hints != nil {
		t.Error("expected absent hints")
	}
	if envelope.ExtractionID != nil {
		t.Error("expected absent extraction id without preprocessing record")
	}
	if envelope.Result == nil || envelope.Result.Classification == nil {
		t.Fatal("expected authoritative result")
	}
	if envelope.Verdict.Status != pipeline.StatusError {
		t.Errorf("Verdict.Status = %s, want error", envelope.Verdict.Status)
	}
	if !strings.Contains(envelope.Verdict.Feedback, "not configured") {
		t.Errorf("Verdict.Feedback = %q", envelope.Verdict.Feedback)
	}
}

func TestRunEmptyText(t *testing.T) {
	primary := &stubProvider{name: "primary", available: true, responses: []string{classificationJSON}}
	rt := newRuntime(
		&stubProvider{name: "fast", available: true, responses: []string{hintsJSON, verifiedJSON}},
		primary,
	)

	envelope, err := pipeline.Run(context.Background(), rt, "", "order.pdf", pipeline.PurposeClassify)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if envelope.Hints != nil {
		t.Error("expected absent hints for empty input")
	}
	if primary.calls != 1 {
		t.Errorf("primary calls = %d, want extraction invoked despite empty preprocessing", primary.calls)
	}
}

func TestRunFullPipeline(t *testing.T) {
	rt := newRuntime(
		&stubProvider{name: "fast", available: true, responses: []string{hintsJSON, verifiedJSON}},
		&stubProvider{name: "primary", available: true, responses: []string{classificationJSON}},
	)

	envelope, err := pipeline.Run(context.Background(), rt, rawText, "order.pdf", pipeline.PurposeClassify)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if envelope.Hints == nil {
		t.Fatal("expected hints")
	}
	if envelope.ExtractionID == nil {
		t.Fatal("expected extraction id when preprocessing succeeded")
	}
	if envelope.Verdict.Status != pipeline.StatusVerified {
		t.Errorf("Verdict.Status = %s", envelope.Verdict.Status)
	}
	if envelope.Result.Classification.Confidence != 0.92 {
		t.Errorf("Confidence = %v", envelope.Result.Classification.Confidence)
	}
}

func TestRunIdempotent(t *testing.T) {
	run := func() *pipeline.Envelope {
		rt := newRuntime(
			&stubProvider{name: "fast", available: true, responses: []string{hintsJSON, verifiedJSON}},
			&stubProvider{name: "primary", available: true, responses: []string{classificationJSON}},
		)

		envelope, err := pipeline.Run(context.Background(), rt, rawText, "order.pdf", pipeline.PurposeClassify)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		return envelope
	}

	first := run()
	second := run()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("envelopes differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestRunLowConfidenceTieBreak(t *testing.T) {
	lowConfidence := `{
      "validation_status": "verified",
      "confidence_score": 0.6,
      "feedback": "weak agreement",
      "verified_items": [],
      "discrepancies": [],
      "missing_information": []
    }`
	rt := newRuntime(
		&stubProvider{name: "fast", available: true, responses: []string{hintsJSON, lowConfidence}},
		&stubProvider{name: "primary", available: true, responses: []string{classificationJSON}},
	)

	envelope, err := pipeline.Run(context.Background(), rt, rawText, "order.pdf", pipeline.PurposeClassify)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if envelope.Verdict.Status != pipeline.StatusVerified {
		t.Errorf("Status = %s, want verified despite confidence below threshold", envelope.Verdict.Status)
	}
	if envelope.Verdict.ConfidenceScore != 0.6 {
		t.Errorf("ConfidenceScore = %v, want reported low confidence preserved", envelope.Verdict.ConfidenceScore)
	}
}
