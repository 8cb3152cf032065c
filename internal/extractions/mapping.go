package extractions

import (
	"encoding/json"
	"fmt"

	"github.com/plazo-io/plazo/pkg/repository"
)

func scanExtraction(s repository.Scanner) (Extraction, error) {
	var (
		e        Extraction
		entities []byte
		dates    []byte
		facts    []byte
	)

	err := s.Scan(
		&e.ID,
		&e.DocumentID,
		&entities,
		&dates,
		&facts,
		&e.DocTypeGuess,
		&e.Language,
		&e.CreatedAt,
	)
	if err != nil {
		return e, err
	}

	if err := unmarshalColumn(entities, &e.Entities); err != nil {
		return e, err
	}
	if err := unmarshalColumn(dates, &e.CandidateDates); err != nil {
		return e, err
	}
	if err := unmarshalColumn(facts, &e.KeyFacts); err != nil {
		return e, err
	}

	return e, nil
}

func scanClassification(s repository.Scanner) (Classification, error) {
	var (
		c        Classification
		tags     []byte
		entities []byte
	)

	err := s.Scan(
		&c.ID,
		&c.DocumentID,
		&c.ExtractionID,
		&c.DocType,
		&c.Confidence,
		&c.MatterID,
		&tags,
		&entities,
		&c.Summary,
		&c.CreatedAt,
	)
	if err != nil {
		return c, err
	}

	if err := unmarshalColumn(tags, &c.Tags); err != nil {
		return c, err
	}
	if err := unmarshalColumn(entities, &c.KeyEntities); err != nil {
		return c, err
	}

	return c, nil
}

func scanValidation(s repository.Scanner) (Validation, error) {
	var (
		v        Validation
		verified []byte
		discreps []byte
		missing  []byte
	)

	err := s.Scan(
		&v.ID,
		&v.ValidationType,
		&v.EntityID,
		&v.Status,
		&v.ConfidenceScore,
		&v.Feedback,
		&verified,
		&discreps,
		&missing,
		&v.CreatedAt,
	)
	if err != nil {
		return v, err
	}

	if err := unmarshalColumn(verified, &v.VerifiedItems); err != nil {
		return v, err
	}
	if err := unmarshalColumn(discreps, &v.Discrepancies); err != nil {
		return v, err
	}
	if err := unmarshalColumn(missing, &v.MissingInformation); err != nil {
		return v, err
	}

	return v, nil
}

func unmarshalColumn(data []byte, target any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode jsonb column: %w", err)
	}
	return nil
}

func marshalColumn(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode jsonb column: %w", err)
	}
	return data, nil
}
