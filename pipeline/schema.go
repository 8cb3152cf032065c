package pipeline

import (
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/plazo-io/plazo/pkg/formatting"
)

// Response schemas for structured provider output. Each stage validates the
// model's JSON against its schema before unmarshaling so downstream code
// never sees a partially-populated shape.
const (
	hintsSchema = `{
  "type": "object",
  "required": ["entities", "candidate_dates", "key_facts", "doc_type_guess"],
  "properties": {
    "entities": {
      "type": "object",
      "additionalProperties": {
        "type": "array",
        "items": { "type": "string" }
      }
    },
    "candidate_dates": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["date", "description"],
        "properties": {
          "date": { "type": "string" },
          "description": { "type": "string" },
          "risk_tag": { "type": "string" }
        }
      }
    },
    "key_facts": {
      "type": "array",
      "items": { "type": "string" }
    },
    "doc_type_guess": { "type": "string" },
    "language": { "type": "string" }
  }
}`

	classificationSchema = `{
  "type": "object",
  "required": ["doc_type", "confidence", "summary"],
  "properties": {
    "doc_type": { "type": "string" },
    "confidence": { "type": "number" },
    "matter_id": { "type": ["string", "null"] },
    "tags": {
      "type": "array",
      "items": { "type": "string" }
    },
    "key_entities": {
      "type": "object",
      "additionalProperties": {
        "type": "array",
        "items": { "type": "string" }
      }
    },
    "summary": { "type": "string" }
  }
}`

	deadlinesSchema = `{
  "type": "object",
  "required": ["deadlines"],
  "properties": {
    "deadlines": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["date", "description"],
        "properties": {
          "date": { "type": "string" },
          "description": { "type": "string" }
        }
      }
    }
  }
}`

	verdictSchema = `{
  "type": "object",
  "required": ["validation_status", "confidence_score", "feedback"],
  "properties": {
    "validation_status": {
      "type": "string",
      "enum": ["verified", "discrepancy", "error"]
    },
    "confidence_score": { "type": "number" },
    "feedback": { "type": "string" },
    "verified_items": {
      "type": "array",
      "items": { "type": "string" }
    },
    "discrepancies": {
      "type": "array",
      "items": { "type": "string" }
    },
    "missing_information": {
      "type": "array",
      "items": { "type": "string" }
    }
  }
}`
)

var (
	hintsValidator          = jsonschema.MustCompileString("hints.json", hintsSchema)
	classificationValidator = jsonschema.MustCompileString("classification.json", classificationSchema)
	deadlinesValidator      = jsonschema.MustCompileString("deadlines.json", deadlinesSchema)
	verdictValidator        = jsonschema.MustCompileString("verdict.json", verdictSchema)
)

// decodeChecked validates raw provider content against schema, then
// unmarshals it into T. Any failure is reported as ErrMalformed so callers
// can distinguish schema violations from transport errors.
func decodeChecked[T any](content string, schema *jsonschema.Schema) (T, error) {
	var result T

	raw := formatting.ExtractJSON(content)

	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return result, ErrMalformed
	}

	if err := schema.Validate(doc); err != nil {
		return result, ErrMalformed
	}

	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return result, ErrMalformed
	}

	return result, nil
}
