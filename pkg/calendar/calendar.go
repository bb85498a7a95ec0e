package calendar

import "time"

// DayType classifies a calendar date for profile and tariff selection.
// Holidays count as Sundays.
type DayType string

const (
	Workday         DayType = "workday"
	Saturday        DayType = "saturday"
	SundayOrHoliday DayType = "sunday_or_holiday"
)

// Holidays mirrors the calendar section of the system config. Fixed
// entries are MM-DD and repeat every year, movable entries are full
// YYYY-MM-DD dates.
type Holidays struct {
	Fixed   []string
	Movable []string
}

// Classify returns the day-type for t. A holiday match wins over the
// weekday mapping.
func (h Holidays) Classify(t time.Time) DayType {
	monthDay := t.Format("01-02")
	date := t.Format("2006-01-02")

	for _, d := range h.Fixed {
		if d == monthDay {
			return SundayOrHoliday
		}
	}
	for _, d := range h.Movable {
		if d == date {
			return SundayOrHoliday
		}
	}

	switch t.Weekday() {
	case time.Saturday:
		return Saturday
	case time.Sunday:
		return SundayOrHoliday
	}
	return Workday
}
