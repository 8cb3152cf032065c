package deadlines

import (
	"testing"
	"time"

	"github.com/plazo-io/plazo/pkg/workdays"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestReassess(t *testing.T) {
	cal := workdays.NewCalendar()
	now := date(2026, time.September, 1) // Tuesday

	tests := []struct {
		name     string
		due      time.Time
		wantDays int
		wantRisk workdays.RiskLevel
	}{
		{
			name:     "next day",
			due:      date(2026, time.September, 2),
			wantDays: 1,
			wantRisk: workdays.RiskCritical,
		},
		{
			name:     "one week out",
			due:      date(2026, time.September, 8),
			wantDays: 5,
			wantRisk: workdays.RiskHigh,
		},
		{
			name:     "two weeks out",
			due:      date(2026, time.September, 15),
			wantDays: 10,
			wantRisk: workdays.RiskMedium,
		},
		{
			name:     "past due",
			due:      date(2026, time.August, 28),
			wantDays: -2,
			wantRisk: workdays.RiskOverdue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Deadline{Date: tt.due, WorkingDays: 99, Risk: workdays.RiskLow}
			d.reassess(cal, now)

			if d.WorkingDays != tt.wantDays {
				t.Errorf("WorkingDays = %d, want %d", d.WorkingDays, tt.wantDays)
			}
			if d.Risk != tt.wantRisk {
				t.Errorf("Risk = %q, want %q", d.Risk, tt.wantRisk)
			}
		})
	}
}
