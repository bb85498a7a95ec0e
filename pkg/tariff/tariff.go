package tariff

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sze-home/controller/pkg/calendar"
)

// Band is a G12W two-rate tariff period.
type Band string

const (
	Cheaper       Band = "cheaper"
	MoreExpensive Band = "more_expensive"
)

// DefaultNightHours applies when the system config carries no
// tariff_g12w.cheaper_night_hours entry.
const DefaultNightHours = "22:00-06:00"

// Rule is the cheaper-hours interval parsed from an "HH:MM-HH:MM" string.
// G12W band boundaries fall on full hours, so the minute component of the
// config string is ignored.
type Rule struct {
	StartHour int
	EndHour   int
}

func ParseRule(s string) (Rule, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return Rule{}, fmt.Errorf("tariff: invalid hour range %q", s)
	}
	start, err := parseHour(parts[0])
	if err != nil {
		return Rule{}, err
	}
	end, err := parseHour(parts[1])
	if err != nil {
		return Rule{}, err
	}
	return Rule{StartHour: start, EndHour: end}, nil
}

func parseHour(s string) (int, error) {
	h := strings.SplitN(strings.TrimSpace(s), ":", 2)[0]
	v, err := strconv.Atoi(h)
	if err != nil {
		return 0, fmt.Errorf("tariff: invalid hour in %q: %w", s, err)
	}
	if v < 0 || v > 23 {
		return 0, fmt.Errorf("tariff: hour %d out of range", v)
	}
	return v, nil
}

// Contains reports whether hour falls in the cheaper band. A start hour
// greater than the end hour means the interval wraps past midnight.
func (r Rule) Contains(hour int) bool {
	if r.StartHour > r.EndHour {
		return hour >= r.StartHour || hour < r.EndHour
	}
	return r.StartHour <= hour && hour < r.EndHour
}

// Classify returns the band active at t. Sundays and holidays are cheaper
// for the whole day. rule is nil when the configured string was malformed;
// every non-holiday hour is then more expensive.
func Classify(dayType calendar.DayType, rule *Rule, t time.Time) Band {
	if dayType == calendar.SundayOrHoliday {
		return Cheaper
	}
	if rule != nil && rule.Contains(t.Hour()) {
		return Cheaper
	}
	return MoreExpensive
}
