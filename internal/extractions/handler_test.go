package extractions_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/plazo-io/plazo/internal/extractions"
	"github.com/plazo-io/plazo/pipeline"
	"github.com/plazo-io/plazo/pkg/routes"
)

type stubSystem struct {
	process func(ctx context.Context, documentID uuid.UUID, purpose pipeline.Purpose) (*extractions.ProcessResult, error)
	batch   func(ctx context.Context, documentIDs []uuid.UUID, purpose pipeline.Purpose) []extractions.BatchResult
}

func (s *stubSystem) Handler() *extractions.Handler { return nil }

func (s *stubSystem) Process(ctx context.Context, documentID uuid.UUID, purpose pipeline.Purpose) (*extractions.ProcessResult, error) {
	return s.process(ctx, documentID, purpose)
}

func (s *stubSystem) ProcessBatch(ctx context.Context, documentIDs []uuid.UUID, purpose pipeline.Purpose) []extractions.BatchResult {
	return s.batch(ctx, documentIDs, purpose)
}

func (s *stubSystem) FindExtraction(ctx context.Context, documentID uuid.UUID) (*extractions.Extraction, error) {
	return nil, extractions.ErrNotFound
}

func (s *stubSystem) FindValidation(ctx context.Context, validationType string, entityID uuid.UUID) (*extractions.Validation, error) {
	return nil, extractions.ErrNotFound
}

func newMux(sys extractions.System) *http.ServeMux {
	logger := slog.New(slog.DiscardHandler)
	mux := http.NewServeMux()
	routes.Register(mux, extractions.NewHandler(sys, logger).Routes())
	return mux
}

func TestProcessEndpoint(t *testing.T) {
	docID := uuid.New()
	sys := &stubSystem{
		process: func(_ context.Context, documentID uuid.UUID, purpose pipeline.Purpose) (*extractions.ProcessResult, error) {
			if documentID != docID {
				t.Errorf("documentID = %s, want %s", documentID, docID)
			}
			if purpose != pipeline.PurposeClassify {
				t.Errorf("purpose = %q, want classify", purpose)
			}
			return &extractions.ProcessResult{DocumentID: documentID, Purpose: purpose}, nil
		},
	}

	req := httptest.NewRequest(
		"POST",
		fmt.Sprintf("/extractions/documents/%s", docID),
		strings.NewReader(`{"purpose": "classify"}`),
	)
	rec := httptest.NewRecorder()
	newMux(sys).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var result extractions.ProcessResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.DocumentID != docID {
		t.Errorf("DocumentID = %s, want %s", result.DocumentID, docID)
	}
}

func TestProcessEndpointRejectsUnknownPurpose(t *testing.T) {
	sys := &stubSystem{
		process: func(context.Context, uuid.UUID, pipeline.Purpose) (*extractions.ProcessResult, error) {
			t.Fatal("Process should not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(
		"POST",
		fmt.Sprintf("/extractions/documents/%s", uuid.New()),
		strings.NewReader(`{"purpose": "summarize"}`),
	)
	rec := httptest.NewRecorder()
	newMux(sys).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestProcessEndpointFatalMapsToBadGateway(t *testing.T) {
	sys := &stubSystem{
		process: func(context.Context, uuid.UUID, pipeline.Purpose) (*extractions.ProcessResult, error) {
			return nil, &pipeline.FatalError{Err: pipeline.ErrUnavailable}
		},
	}

	req := httptest.NewRequest(
		"POST",
		fmt.Sprintf("/extractions/documents/%s", uuid.New()),
		strings.NewReader(`{"purpose": "deadlines"}`),
	)
	rec := httptest.NewRecorder()
	newMux(sys).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestBatchEndpoint(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	sys := &stubSystem{
		batch: func(_ context.Context, documentIDs []uuid.UUID, purpose pipeline.Purpose) []extractions.BatchResult {
			results := make([]extractions.BatchResult, len(documentIDs))
			for i, id := range documentIDs {
				results[i] = extractions.BatchResult{DocumentID: id}
			}
			return results
		},
	}

	body, _ := json.Marshal(map[string]any{
		"document_ids": ids,
		"purpose":      "deadlines",
	})
	req := httptest.NewRequest("POST", "/extractions/batch", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()
	newMux(sys).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var results []extractions.BatchResult
	if err := json.NewDecoder(rec.Body).Decode(&results); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("len(results) = %d, want 2", len(results))
	}
}

func TestBatchEndpointRequiresDocuments(t *testing.T) {
	sys := &stubSystem{
		batch: func(context.Context, []uuid.UUID, pipeline.Purpose) []extractions.BatchResult {
			t.Fatal("ProcessBatch should not be called")
			return nil
		},
	}

	req := httptest.NewRequest("POST", "/extractions/batch", strings.NewReader(`{"purpose": "classify"}`))
	rec := httptest.NewRecorder()
	newMux(sys).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
