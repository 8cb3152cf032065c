package extractions

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/plazo-io/plazo/internal/deadlines"
	"github.com/plazo-io/plazo/internal/documents"
	"github.com/plazo-io/plazo/pipeline"
)

// Process runs the pipeline for one stored document and persists the
// resulting envelope. Document status tracks progress: processing while
// the pipeline runs, processed on success, failed when the primary
// extraction aborts.
func (r *repo) Process(ctx context.Context, documentID uuid.UUID, purpose pipeline.Purpose) (*ProcessResult, error) {
	doc, err := r.documents.Find(ctx, documentID)
	if err != nil {
		return nil, err
	}

	text, err := r.documents.Text(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if err := r.documents.SetStatus(ctx, documentID, documents.StatusProcessing); err != nil {
		return nil, fmt.Errorf("mark document processing: %w", err)
	}

	envelope, err := pipeline.Run(ctx, r.runtime, text, doc.Filename, purpose)
	if err != nil {
		if statusErr := r.documents.SetStatus(ctx, documentID, documents.StatusFailed); statusErr != nil {
			r.logger.Warn("mark document failed", "id", documentID, "error", statusErr)
		}
		return nil, err
	}

	result, err := r.persist(ctx, doc.ID, purpose, envelope)
	if err != nil {
		if statusErr := r.documents.SetStatus(ctx, documentID, documents.StatusFailed); statusErr != nil {
			r.logger.Warn("mark document failed", "id", documentID, "error", statusErr)
		}
		return nil, err
	}

	if err := r.documents.SetStatus(ctx, documentID, documents.StatusProcessed); err != nil {
		r.logger.Warn("mark document processed", "id", documentID, "error", err)
	}

	r.logger.Info("document processed",
		"id", documentID,
		"purpose", purpose,
		"verdict", envelope.Verdict.Status,
	)
	return result, nil
}

// ProcessBatch processes documents concurrently, bounded by the configured
// batch limit. Every document gets a result entry; a failed document
// reports its error without affecting the others.
func (r *repo) ProcessBatch(ctx context.Context, documentIDs []uuid.UUID, purpose pipeline.Purpose) []BatchResult {
	results := make([]BatchResult, len(documentIDs))

	var g errgroup.Group
	g.SetLimit(r.batchLimit)

	for i, id := range documentIDs {
		g.Go(func() error {
			result, err := r.Process(ctx, id, purpose)
			if err != nil {
				results[i] = BatchResult{DocumentID: id, Error: err.Error()}
				return nil
			}

			results[i] = BatchResult{DocumentID: id, Result: result}
			return nil
		})
	}

	g.Wait()
	return results
}

func (r *repo) persist(ctx context.Context, documentID uuid.UUID, purpose pipeline.Purpose, envelope *pipeline.Envelope) (*ProcessResult, error) {
	result := &ProcessResult{
		DocumentID: documentID,
		Purpose:    purpose,
		Envelope:   envelope,
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if envelope.Hints != nil && envelope.ExtractionID != nil {
		if _, err := r.insertExtraction(ctx, tx, *envelope.ExtractionID, documentID, envelope.Hints); err != nil {
			return nil, fmt.Errorf("persist extraction: %w", err)
		}
	}

	validationType, entityID, err := r.persistResult(ctx, tx, documentID, envelope, result)
	if err != nil {
		return nil, err
	}

	validation, err := r.insertValidation(ctx, tx, validationType, entityID, envelope.Verdict)
	if err != nil {
		return nil, fmt.Errorf("persist validation: %w", err)
	}
	result.Validation = validation

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	// Deadlines are recorded through their own system after the envelope
	// transaction: the deadline store owns replacement semantics per
	// document.
	if envelope.Result.Purpose == pipeline.PurposeDeadlines {
		recorded, err := r.recordDeadlines(ctx, documentID, envelope)
		if err != nil {
			return nil, err
		}
		result.Deadlines = recorded
	}

	return result, nil
}

func (r *repo) persistResult(ctx context.Context, tx *sql.Tx, documentID uuid.UUID, envelope *pipeline.Envelope, result *ProcessResult) (string, uuid.UUID, error) {
	if envelope.Result.Purpose == pipeline.PurposeClassify {
		record, err := r.insertClassification(ctx, tx, documentID, envelope.ExtractionID, envelope.Result.Classification)
		if err != nil {
			return "", uuid.Nil, fmt.Errorf("persist classification: %w", err)
		}

		result.Classification = record
		return ValidationClassification, record.ID, nil
	}

	return ValidationDeadlines, documentID, nil
}

func (r *repo) recordDeadlines(ctx context.Context, documentID uuid.UUID, envelope *pipeline.Envelope) ([]deadlines.Deadline, error) {
	cmds := make([]deadlines.CreateCommand, 0, len(envelope.Result.Deadlines))
	for _, d := range envelope.Result.Deadlines {
		due, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			return nil, fmt.Errorf("parse deadline date %q: %w", d.Date, err)
		}

		cmds = append(cmds, deadlines.CreateCommand{
			DocumentID:   documentID,
			ExtractionID: envelope.ExtractionID,
			Date:         due,
			Description:  d.Description,
			WorkingDays:  d.WorkingDays,
			Risk:         d.Risk,
		})
	}

	if len(cmds) == 0 {
		return []deadlines.Deadline{}, nil
	}

	recorded, err := r.deadlines.CreateBatch(ctx, cmds)
	if err != nil {
		return nil, fmt.Errorf("persist deadlines: %w", err)
	}

	return recorded, nil
}
