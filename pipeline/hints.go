package pipeline

import (
	"golang.org/x/text/language"
)

// Entity categories recognized by the preprocessing pass.
const (
	EntityPerson       = "person"
	EntityOrganization = "organization"
	EntityLocation     = "location"
	EntityAmount       = "amount"
)

// CandidateDate is a date surfaced during preprocessing, before the
// primary extraction has judged whether it is an actionable deadline.
type CandidateDate struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	RiskTag     string `json:"risk_tag,omitempty"`
}

// HintBundle is the advisory output of the preprocessing pass. It is
// consumed read-only by the extraction and validation stages and is never
// treated as ground truth. A nil *HintBundle means preprocessing did not
// run or failed; downstream stages treat absence as "no hints".
type HintBundle struct {
	Entities       map[string][]string `json:"entities"`
	CandidateDates []CandidateDate     `json:"candidate_dates"`
	KeyFacts       []string            `json:"key_facts"`
	DocTypeGuess   string              `json:"doc_type_guess"`
	Language       string              `json:"language"`
}

// normalize canonicalizes free-form provider fields. Language strings are
// resolved to BCP 47 tags; unrecognized values are kept as reported.
func (h *HintBundle) normalize() {
	if h.Entities == nil {
		h.Entities = make(map[string][]string)
	}

	if h.Language != "" {
		if tag, err := language.Parse(h.Language); err == nil {
			h.Language = tag.String()
		}
	}
}

// HasDates reports whether preprocessing surfaced any candidate dates.
func (h *HintBundle) HasDates() bool {
	return h != nil && len(h.CandidateDates) > 0
}
