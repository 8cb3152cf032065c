package prompts

const preprocessSpec = `Respond with a JSON object matching this exact structure:

{
  "entities": {
    "person": ["<name>"],
    "organization": ["<name>"],
    "location": ["<name>"],
    "amount": ["<amount>"]
  },
  "candidate_dates": [
    {"date": "<YYYY-MM-DD>", "description": "<what this date refers to>", "risk_tag": "<optional risk note>"}
  ],
  "key_facts": ["<fact>"],
  "doc_type_guess": "<document type>",
  "language": "<language>"
}

Field constraints:
- entities: Include only categories with at least one entry. Entry strings
  exactly as they appear in the document.
- candidate_dates: Every date found in the text, ISO formatted. Omit
  risk_tag when no legal risk is apparent.
- key_facts: Three to seven short statements.
- doc_type_guess: A single best-guess document type.
- language: The primary language of the text.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Report only what the text states; never infer missing details`

const classifySpec = `Respond with a JSON object matching this exact structure:

{
  "doc_type": "<document type>",
  "confidence": 0.0,
  "matter_id": "<identifier or null>",
  "tags": ["<tag>"],
  "key_entities": {
    "person": ["<name>"],
    "organization": ["<name>"]
  },
  "summary": "<brief summary>"
}

Field constraints:
- doc_type: A standard legal document category.
- confidence: A number between 0.0 and 1.0. Never exceed this range.
- matter_id: The case or matter identifier cited in the document, or null
  when none appears.
- tags: Short lowercase topical tags.
- key_entities: The most significant entities, grouped by category.
- summary: Two or three sentences covering purpose and effect.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Base every field on the document text, not on provided hints`

const deadlinesSpec = `Respond with a JSON object matching this exact structure:

{
  "deadlines": [
    {"date": "<YYYY-MM-DD>", "description": "<required action and obligated party>"}
  ]
}

Field constraints:
- date: ISO format, resolved to an absolute calendar date. Exclude any
  deadline whose absolute date cannot be determined from the text.
- description: One sentence naming the action and who must take it.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- An empty deadlines array is the correct response for a document that
  imposes no deadlines
- Do not report days remaining or urgency`

const validateSpec = `Respond with a JSON object matching this exact structure:

{
  "validation_status": "<verified|discrepancy|error>",
  "confidence_score": 0.0,
  "feedback": "<overall assessment>",
  "verified_items": ["<confirmed element>"],
  "discrepancies": ["<concrete mismatch>"],
  "missing_information": ["<element missing from the extraction>"]
}

Field constraints:
- validation_status: "verified" when the extraction is consistent with the
  text; "discrepancy" only when discrepancies contains at least one entry;
  "error" only when you cannot perform the comparison at all.
- confidence_score: A number between 0.0 and 1.0 reflecting the degree of
  agreement between extraction and text.
- feedback: A short overall assessment in plain language.
- discrepancies: Each entry describes one concrete mismatch, citing the
  conflicting values.
- missing_information: Material facts present in the text but absent from
  the extraction.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Never report "discrepancy" with an empty discrepancies list
- Low confidence with no concrete mismatch is still "verified"`

var specs = map[Stage]string{
	StagePreprocess: preprocessSpec,
	StageClassify:   classifySpec,
	StageDeadlines:  deadlinesSpec,
	StageValidate:   validateSpec,
}

// Spec returns the hardcoded specification for a pipeline stage.
// Specifications define the expected output format and behavioral constraints.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
