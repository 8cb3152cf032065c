// Package workdays provides business-day calculations against the
// Panamanian holiday calendar for deadline risk assessment.
package workdays

import (
	"time"

	"github.com/rickar/cal/v2"
)

// Panamanian public holidays observed by courts and government offices.
var holidays = []*cal.Holiday{
	{Name: "Año Nuevo", Type: cal.ObservancePublic, Month: time.January, Day: 1, Func: cal.CalcDayOfMonth},
	{Name: "Día de los Mártires", Type: cal.ObservancePublic, Month: time.January, Day: 9, Func: cal.CalcDayOfMonth},
	{Name: "Martes de Carnaval", Type: cal.ObservancePublic, Offset: -47, Func: cal.CalcEasterOffset},
	{Name: "Viernes Santo", Type: cal.ObservancePublic, Offset: -2, Func: cal.CalcEasterOffset},
	{Name: "Día del Trabajo", Type: cal.ObservancePublic, Month: time.May, Day: 1, Func: cal.CalcDayOfMonth},
	{Name: "Separación de Colombia", Type: cal.ObservancePublic, Month: time.November, Day: 3, Func: cal.CalcDayOfMonth},
	{Name: "Día de la Bandera", Type: cal.ObservancePublic, Month: time.November, Day: 4, Func: cal.CalcDayOfMonth},
	{Name: "Día de Colón", Type: cal.ObservancePublic, Month: time.November, Day: 5, Func: cal.CalcDayOfMonth},
	{Name: "Primer Grito de Independencia", Type: cal.ObservancePublic, Month: time.November, Day: 10, Func: cal.CalcDayOfMonth},
	{Name: "Independencia de España", Type: cal.ObservancePublic, Month: time.November, Day: 28, Func: cal.CalcDayOfMonth},
	{Name: "Día de la Madre", Type: cal.ObservancePublic, Month: time.December, Day: 8, Func: cal.CalcDayOfMonth},
	{Name: "Navidad", Type: cal.ObservancePublic, Month: time.December, Day: 25, Func: cal.CalcDayOfMonth},
}

// Calendar wraps a business calendar configured with Panamanian holidays.
type Calendar struct {
	cal *cal.BusinessCalendar
}

// NewCalendar creates a calendar with weekends and Panamanian public
// holidays treated as non-working days.
func NewCalendar() *Calendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(holidays...)

	return &Calendar{cal: c}
}

// IsWorkday reports whether t falls on a working day.
func (c *Calendar) IsWorkday(t time.Time) bool {
	return c.cal.IsWorkday(t)
}

// Until counts working days from the day after `from` through `due`,
// inclusive. A due date on or before `from` yields a negative count of
// working days elapsed since the deadline, or zero when due falls on
// `from` itself.
func (c *Calendar) Until(from, due time.Time) int {
	from = truncate(from)
	due = truncate(due)

	if due.After(from) {
		return c.count(from.AddDate(0, 0, 1), due)
	}
	if due.Before(from) {
		return -c.count(due, from.AddDate(0, 0, -1))
	}

	return 0
}

// count returns the number of working days in [start, end], inclusive.
func (c *Calendar) count(start, end time.Time) int {
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if c.cal.IsWorkday(d) {
			days++
		}
	}

	return days
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
