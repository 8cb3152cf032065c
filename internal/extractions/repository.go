package extractions

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/plazo-io/plazo/internal/deadlines"
	"github.com/plazo-io/plazo/internal/documents"
	"github.com/plazo-io/plazo/pipeline"
	"github.com/plazo-io/plazo/pkg/repository"
)

const (
	extractionColumns     = "id, document_id, entities, candidate_dates, key_facts, doc_type_guess, language, created_at"
	classificationColumns = "id, document_id, extraction_id, doc_type, confidence, matter_id, tags, key_entities, summary, created_at"
	validationColumns     = "id, validation_type, entity_id, validation_status, confidence_score, feedback, verified_items, discrepancies, missing_information, created_at"
)

type repo struct {
	db         *sql.DB
	runtime    *pipeline.Runtime
	documents  documents.System
	deadlines  deadlines.System
	logger     *slog.Logger
	batchLimit int
}

// New creates an extraction repository implementing the System interface.
// batchLimit bounds how many documents a batch request processes
// concurrently.
func New(
	db *sql.DB,
	runtime *pipeline.Runtime,
	docs documents.System,
	dls deadlines.System,
	logger *slog.Logger,
	batchLimit int,
) System {
	if batchLimit < 1 {
		batchLimit = 1
	}

	return &repo{
		db:         db,
		runtime:    runtime,
		documents:  docs,
		deadlines:  dls,
		logger:     logger.With("system", "extractions"),
		batchLimit: batchLimit,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) FindExtraction(ctx context.Context, documentID uuid.UUID) (*Extraction, error) {
	q := `
		SELECT ` + extractionColumns + `
		FROM extractions
		WHERE document_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	e, err := repository.QueryOne(ctx, r.db, q, []any{documentID}, scanExtraction)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &e, nil
}

func (r *repo) FindValidation(ctx context.Context, validationType string, entityID uuid.UUID) (*Validation, error) {
	if validationType != ValidationClassification && validationType != ValidationDeadlines {
		return nil, ErrInvalidType
	}

	q := `
		SELECT ` + validationColumns + `
		FROM validations
		WHERE validation_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT 1`

	v, err := repository.QueryOne(ctx, r.db, q, []any{validationType, entityID}, scanValidation)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &v, nil
}

func (r *repo) insertExtraction(ctx context.Context, tx *sql.Tx, id, documentID uuid.UUID, hints *pipeline.HintBundle) (*Extraction, error) {
	entities, err := marshalColumn(hints.Entities)
	if err != nil {
		return nil, err
	}

	dates, err := marshalColumn(hints.CandidateDates)
	if err != nil {
		return nil, err
	}

	facts, err := marshalColumn(hints.KeyFacts)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO extractions(id, document_id, entities, candidate_dates, key_facts, doc_type_guess, language)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + extractionColumns

	args := []any{id, documentID, entities, dates, facts, hints.DocTypeGuess, hints.Language}

	e, err := repository.QueryOne(ctx, tx, q, args, scanExtraction)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repo) insertClassification(ctx context.Context, tx *sql.Tx, documentID uuid.UUID, extractionID *uuid.UUID, c *pipeline.Classification) (*Classification, error) {
	tags, err := marshalColumn(c.Tags)
	if err != nil {
		return nil, err
	}

	entities, err := marshalColumn(c.KeyEntities)
	if err != nil {
		return nil, err
	}

	var matterID *string
	if c.MatterID != "" {
		matterID = &c.MatterID
	}

	q := `
		INSERT INTO classifications(document_id, extraction_id, doc_type, confidence, matter_id, tags, key_entities, summary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + classificationColumns

	args := []any{documentID, extractionID, c.DocType, c.Confidence, matterID, tags, entities, c.Summary}

	record, err := repository.QueryOne(ctx, tx, q, args, scanClassification)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repo) insertValidation(ctx context.Context, tx *sql.Tx, validationType string, entityID uuid.UUID, v pipeline.Verdict) (*Validation, error) {
	verified, err := marshalColumn(v.VerifiedItems)
	if err != nil {
		return nil, err
	}

	discreps, err := marshalColumn(v.Discrepancies)
	if err != nil {
		return nil, err
	}

	missing, err := marshalColumn(v.MissingInformation)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO validations(validation_type, entity_id, validation_status, confidence_score, feedback, verified_items, discrepancies, missing_information)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + validationColumns

	args := []any{validationType, entityID, v.Status, v.ConfidenceScore, v.Feedback, verified, discreps, missing}

	record, err := repository.QueryOne(ctx, tx, q, args, scanValidation)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
