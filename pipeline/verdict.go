package pipeline

// Status is the terminal state of one validation call.
type Status string

const (
	StatusVerified    Status = "verified"
	StatusDiscrepancy Status = "discrepancy"
	StatusError       Status = "error"
)

// Verdict is the validation stage's cross-check report. Invariants,
// enforced by normalize: status=error carries confidence 0.0 and empty
// lists; status=discrepancy carries at least one discrepancy entry and
// confidence below 1.0.
type Verdict struct {
	Status             Status   `json:"validation_status"`
	ConfidenceScore    float64  `json:"confidence_score"`
	Feedback           string   `json:"feedback"`
	VerifiedItems      []string `json:"verified_items"`
	Discrepancies      []string `json:"discrepancies"`
	MissingInformation []string `json:"missing_information"`
}

// errorVerdict constructs the degraded verdict used when validation could
// not run or failed.
func errorVerdict(feedback string) Verdict {
	return Verdict{
		Status:             StatusError,
		ConfidenceScore:    0.0,
		Feedback:           feedback,
		VerifiedItems:      []string{},
		Discrepancies:      []string{},
		MissingInformation: []string{},
	}
}

// normalize coerces a provider-reported verdict into a valid one.
// Discrepancy status requires at least one explicit discrepancy entry;
// a low confidence score alone never downgrades verified to discrepancy.
func (v Verdict) normalize() Verdict {
	if v.VerifiedItems == nil {
		v.VerifiedItems = []string{}
	}
	if v.Discrepancies == nil {
		v.Discrepancies = []string{}
	}
	if v.MissingInformation == nil {
		v.MissingInformation = []string{}
	}

	v.ConfidenceScore = clamp(v.ConfidenceScore, 0, 1)

	switch v.Status {
	case StatusError:
		return errorVerdict(v.Feedback)
	case StatusDiscrepancy:
		if len(v.Discrepancies) == 0 {
			v.Status = StatusVerified
			return v
		}
		if v.ConfidenceScore >= 1.0 {
			v.ConfidenceScore = 0.99
		}
		return v
	case StatusVerified:
		return v
	default:
		if len(v.Discrepancies) > 0 {
			v.Status = StatusDiscrepancy
			if v.ConfidenceScore >= 1.0 {
				v.ConfidenceScore = 0.99
			}
			return v
		}
		v.Status = StatusVerified
		return v
	}
}

func clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
