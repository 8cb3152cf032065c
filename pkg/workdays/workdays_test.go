package workdays_test

import (
	"testing"
	"time"

	"github.com/plazo-io/plazo/pkg/workdays"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsWorkday(t *testing.T) {
	cal := workdays.NewCalendar()

	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{"regular weekday", date(2026, time.September, 1), true},
		{"saturday", date(2026, time.September, 5), false},
		{"sunday", date(2026, time.September, 6), false},
		{"new year", date(2026, time.January, 1), false},
		{"martyrs day", date(2026, time.January, 9), false},
		{"separation day", date(2026, time.November, 3), false},
		{"flag day", date(2026, time.November, 4), false},
		{"independence from spain", date(2026, time.November, 28), false},
		{"christmas", date(2026, time.December, 25), false},
		{"good friday 2026", date(2026, time.April, 3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cal.IsWorkday(tt.day); got != tt.want {
				t.Errorf("IsWorkday(%s) = %v, want %v", tt.day.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestUntil(t *testing.T) {
	cal := workdays.NewCalendar()

	tests := []struct {
		name string
		from time.Time
		due  time.Time
		want int
	}{
		{"same day", date(2026, time.September, 1), date(2026, time.September, 1), 0},
		{"next business day", date(2026, time.September, 1), date(2026, time.September, 2), 1},
		{"across weekend", date(2026, time.September, 4), date(2026, time.September, 7), 1},
		{"two full weeks", date(2026, time.September, 1), date(2026, time.September, 15), 10},
		{"overdue one business day", date(2026, time.September, 2), date(2026, time.September, 1), -1},
		{"overdue across weekend", date(2026, time.September, 7), date(2026, time.September, 4), -1},
		{"holidays excluded", date(2026, time.November, 2), date(2026, time.November, 6), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cal.Until(tt.from, tt.due); got != tt.want {
				t.Errorf("Until(%s, %s) = %d, want %d",
					tt.from.Format("2006-01-02"), tt.due.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestAssess(t *testing.T) {
	cal := workdays.NewCalendar()
	from := date(2026, time.September, 1)

	tests := []struct {
		name string
		due  time.Time
		want workdays.RiskLevel
	}{
		{"past due", date(2026, time.August, 28), workdays.RiskOverdue},
		{"due today", from, workdays.RiskCritical},
		{"two days out", date(2026, time.September, 3), workdays.RiskCritical},
		{"five days out", date(2026, time.September, 8), workdays.RiskHigh},
		{"ten days out", date(2026, time.September, 15), workdays.RiskMedium},
		{"far out", date(2026, time.October, 30), workdays.RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, got := cal.Assess(from, tt.due); got != tt.want {
				t.Errorf("Assess(due %s) = %s, want %s", tt.due.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	for _, level := range workdays.Levels() {
		if !workdays.ValidLevel(string(level)) {
			t.Errorf("ValidLevel(%s) = false", level)
		}
	}

	if workdays.ValidLevel("urgent") {
		t.Error("ValidLevel(urgent) = true")
	}
}
