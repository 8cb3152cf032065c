package workdays

import "time"

// RiskLevel categorizes a deadline by the number of working days remaining.
type RiskLevel string

const (
	RiskOverdue  RiskLevel = "overdue"
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskMedium   RiskLevel = "medium"
	RiskLow      RiskLevel = "low"
)

// Assess returns the working days remaining until due and the
// corresponding risk level.
func (c *Calendar) Assess(from, due time.Time) (int, RiskLevel) {
	days := c.Until(from, due)

	switch {
	case days < 0:
		return days, RiskOverdue
	case days <= 2:
		return days, RiskCritical
	case days <= 5:
		return days, RiskHigh
	case days <= 10:
		return days, RiskMedium
	default:
		return days, RiskLow
	}
}

// Levels lists all risk levels in ascending order of remaining time.
func Levels() []RiskLevel {
	return []RiskLevel{RiskOverdue, RiskCritical, RiskHigh, RiskMedium, RiskLow}
}

// ValidLevel reports whether s names a known risk level.
func ValidLevel(s string) bool {
	switch RiskLevel(s) {
	case RiskOverdue, RiskCritical, RiskHigh, RiskMedium, RiskLow:
		return true
	default:
		return false
	}
}
