package solar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// Window is a named daily interval derived from sunrise/sunset at the PV
// installation.
type Window string

const (
	WindowMorning Window = "morning"
	WindowSolar   Window = "solar"
	WindowEvening Window = "evening"
)

// Default PV installation coordinates, used when the system config has no
// parsable pv_installation.coordinates entry.
const (
	DefaultLatitude  = 51.290050
	DefaultLongitude = 22.818633
)

// Resolver maps a location and instant to the active daily window.
type Resolver func(latitude, longitude float64, t time.Time) Window

// ParseCoordinates parses a "lat, lon" string.
func ParseCoordinates(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("solar: invalid coordinates %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("solar: invalid latitude in %q: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("solar: invalid longitude in %q: %w", s, err)
	}
	return lat, lon, nil
}

// CurrentWindow is the default Resolver: sunrise and sunset split the day
// into morning, solar production and evening windows.
func CurrentWindow(latitude, longitude float64, t time.Time) Window {
	rise, set := sunrise.SunriseSunset(latitude, longitude, t.Year(), t.Month(), t.Day())
	switch {
	case t.Before(rise):
		return WindowMorning
	case t.Before(set):
		return WindowSolar
	}
	return WindowEvening
}
