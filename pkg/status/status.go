package status

import (
	"time"

	"github.com/sze-home/controller/pkg/calendar"
	"github.com/sze-home/controller/pkg/solar"
	"github.com/sze-home/controller/pkg/tariff"
)

// SystemStatus is the consolidated snapshot served to the API, dashboard
// and MQTT subscribers. It is recomputed wholesale, never patched in place.
type SystemStatus struct {
	Timestamp time.Time `json:"timestamp"`
	DateText  string    `json:"date_text"`
	Clock     string    `json:"clock"`

	DayType calendar.DayType `json:"day_type"`
	Window  solar.Window     `json:"window"`
	Tariff  tariff.Band      `json:"tariff"`

	BoilerFromFurnace bool `json:"boiler_from_furnace"`
	HeatersLocked     bool `json:"heaters_locked"`

	SystemActive bool   `json:"system_active"`
	LastUpdate   string `json:"last_update"`

	ConfigLoaded      bool     `json:"config_loaded"`
	ProfilesAvailable []string `json:"profiles_available"`

	BoilerMorningPowerW float64 `json:"boiler_morning_power_w"`
	BoilerEveningPowerW float64 `json:"boiler_evening_power_w"`
}
