// Package extractions implements the analysis domain for Plazo. It runs
// the document pipeline against stored case files, persists each stage's
// output (preprocessing hints, authoritative classification or deadlines,
// validation verdict), and serves the validation read path.
package extractions

import (
	"time"

	"github.com/google/uuid"

	"github.com/plazo-io/plazo/internal/deadlines"
	"github.com/plazo-io/plazo/pipeline"
)

// Validation entity types for the (validation_type, entity_id) read path.
const (
	ValidationClassification = "classification"
	ValidationDeadlines      = "deadlines"
)

// Extraction is the persisted preprocessing hint record for one pipeline
// run. Its ID is the extraction identifier referenced by the envelope.
type Extraction struct {
	ID             uuid.UUID                `json:"id"`
	DocumentID     uuid.UUID                `json:"document_id"`
	Entities       map[string][]string      `json:"entities"`
	CandidateDates []pipeline.CandidateDate `json:"candidate_dates"`
	KeyFacts       []string                 `json:"key_facts"`
	DocTypeGuess   string                   `json:"doc_type_guess"`
	Language       string                   `json:"language"`
	CreatedAt      time.Time                `json:"created_at"`
}

// Classification is the persisted authoritative classification for a
// document. ExtractionID links to the hint record when preprocessing
// succeeded.
type Classification struct {
	ID           uuid.UUID           `json:"id"`
	DocumentID   uuid.UUID           `json:"document_id"`
	ExtractionID *uuid.UUID          `json:"extraction_id"`
	DocType      string              `json:"doc_type"`
	Confidence   float64             `json:"confidence"`
	MatterID     *string             `json:"matter_id"`
	Tags         []string            `json:"tags"`
	KeyEntities  map[string][]string `json:"key_entities"`
	Summary      string              `json:"summary"`
	CreatedAt    time.Time           `json:"created_at"`
}

// Validation is the persisted verdict for one pipeline run, addressable
// by (validation_type, entity_id): classification verdicts reference the
// classification record, deadline verdicts reference the document.
type Validation struct {
	ID                 uuid.UUID       `json:"id"`
	ValidationType     string          `json:"validation_type"`
	EntityID           uuid.UUID       `json:"entity_id"`
	Status             pipeline.Status `json:"validation_status"`
	ConfidenceScore    float64         `json:"confidence_score"`
	Feedback           string          `json:"feedback"`
	VerifiedItems      []string        `json:"verified_items"`
	Discrepancies      []string        `json:"discrepancies"`
	MissingInformation []string        `json:"missing_information"`
	CreatedAt          time.Time       `json:"created_at"`
}

// ProcessResult is the response for one processed document: the pipeline
// envelope plus the persisted records it produced.
type ProcessResult struct {
	DocumentID     uuid.UUID            `json:"document_id"`
	Purpose        pipeline.Purpose     `json:"purpose"`
	Envelope       *pipeline.Envelope   `json:"envelope"`
	Classification *Classification      `json:"classification,omitempty"`
	Deadlines      []deadlines.Deadline `json:"deadlines,omitempty"`
	Validation     *Validation          `json:"validation"`
}

// BatchResult reports the outcome of a single document within a batch
// processing request. On failure, Error describes the problem and Result
// is nil.
type BatchResult struct {
	DocumentID uuid.UUID      `json:"document_id"`
	Result     *ProcessResult `json:"result,omitempty"`
	Error      string         `json:"error,omitempty"`
}
