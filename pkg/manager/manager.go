package manager

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sze-home/controller/pkg/calendar"
	"github.com/sze-home/controller/pkg/config"
	"github.com/sze-home/controller/pkg/solar"
	"github.com/sze-home/controller/pkg/status"
	"github.com/sze-home/controller/pkg/tariff"
)

var polishWeekdays = map[time.Weekday]string{
	time.Monday:    "poniedziałek",
	time.Tuesday:   "wtorek",
	time.Wednesday: "środa",
	time.Thursday:  "czwartek",
	time.Friday:    "piątek",
	time.Saturday:  "sobota",
	time.Sunday:    "niedziela",
}

// Ack is returned from flag toggles.
type Ack struct {
	Status            string `json:"status"`
	BoilerFromFurnace string `json:"boiler_from_furnace"`
	HeatersLocked     bool   `json:"heaters_locked"`
}

// Manager resolves the current operating regime from the configuration
// store and the clock, and owns the two operating flags. The snapshot is
// recomputed at construction, after every refresh and after every toggle.
type Manager struct {
	store         *config.Store
	resolveWindow solar.Resolver

	mutex sync.Mutex

	boilerFromFurnace bool
	heatersLocked     bool

	// classification inputs, re-parsed from the store on each refresh so
	// the hot path never touches raw config strings
	holidays   calendar.Holidays
	nightHours *tariff.Rule
	latitude   float64
	longitude  float64

	status status.SystemStatus
}

// New builds a manager over store. resolve may be nil, which selects the
// sunrise/sunset based solar.CurrentWindow.
func New(store *config.Store, resolve solar.Resolver) *Manager {
	if resolve == nil {
		resolve = solar.CurrentWindow
	}
	m := &Manager{
		store:             store,
		resolveWindow:     resolve,
		boilerFromFurnace: true,
		heatersLocked:     true,
	}
	m.reloadConfigView()
	m.recompute(time.Now())
	logrus.Info("manager: system manager initialized")
	return m
}

// reloadConfigView pulls the classification inputs out of the store.
// Missing sections default, malformed values log a warning and fall back.
func (m *Manager) reloadConfigView() {
	sys := m.store.SystemConfig()

	m.holidays = calendar.Holidays{
		Fixed:   sys.Strings("calendar", "fixed_holidays"),
		Movable: sys.Strings("calendar", "movable_holidays"),
	}

	raw, ok := sys.String("tariff_g12w", "cheaper_night_hours")
	if !ok {
		raw = tariff.DefaultNightHours
	}
	rule, err := tariff.ParseRule(raw)
	if err != nil {
		logrus.Warnf("manager: cheaper_night_hours: %v", err)
		m.nightHours = nil
	} else {
		m.nightHours = &rule
	}

	m.latitude, m.longitude = solar.DefaultLatitude, solar.DefaultLongitude
	if coords, ok := sys.String("pv_installation", "coordinates"); ok {
		lat, lon, err := solar.ParseCoordinates(coords)
		if err != nil {
			logrus.Warnf("manager: pv coordinates: %v", err)
		} else {
			m.latitude, m.longitude = lat, lon
		}
	}
}

func (m *Manager) recompute(now time.Time) {
	dayType := m.holidays.Classify(now)

	profilesDoc := m.store.EnergyProfiles()
	profiles := profilesDoc.Section("energy_profiles")
	keys := make([]string, 0, len(profiles))
	for key := range profiles {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	sys := m.store.SystemConfig()
	morning, _ := sys.Float("boiler", "default_total_power", "morning_watts")
	evening, _ := sys.Float("boiler", "default_total_power", "evening_watts")

	m.status = status.SystemStatus{
		Timestamp: now,
		DateText:  fmt.Sprintf("%s %s", polishWeekdays[now.Weekday()], now.Format("02 January 2006")),
		Clock:     now.Format("15:04:05"),

		DayType: dayType,
		Window:  m.resolveWindow(m.latitude, m.longitude, now),
		Tariff:  tariff.Classify(dayType, m.nightHours, now),

		BoilerFromFurnace: m.boilerFromFurnace,
		HeatersLocked:     m.heatersLocked,

		SystemActive: true,
		LastUpdate:   now.Format("15:04:05"),

		ConfigLoaded:      profilesDoc != nil,
		ProfilesAvailable: keys,

		BoilerMorningPowerW: morning,
		BoilerEveningPowerW: evening,
	}
}

// Refresh reloads every configuration document and recomputes the
// snapshot. Load failures are absorbed by the store and only show up as
// lowered availability in the resulting snapshot.
func (m *Manager) Refresh() {
	m.store.ReloadAll()
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.reloadConfigView()
	m.recompute(time.Now())
	logrus.Debug("manager: system data refreshed")
}

// Status returns the current snapshot.
func (m *Manager) Status() status.SystemStatus {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.status
}

// ConfigStatus reports the store's load state.
func (m *Manager) ConfigStatus() config.Status {
	return m.store.Status()
}

// ConfigSnapshot returns all cached configuration documents.
func (m *Manager) ConfigSnapshot() map[string]any {
	return map[string]any{
		config.DocEnergyProfiles:  m.store.EnergyProfiles().Content(),
		config.DocCWUSchedule:     m.store.CWUSchedule().Content(),
		config.DocSystemConfig:    m.store.SystemConfig().Content(),
		config.DocUserCorrections: m.store.UserCorrections().Content(),
		"config_status":           m.store.Status(),
	}
}

// ToggleBoilerFromFurnace switches hot-water heating from the furnace.
// Enabling locks the electric heaters; disabling leaves the lock alone,
// the operator is then responsible for heater safety.
func (m *Manager) ToggleBoilerFromFurnace(enabled bool) Ack {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.boilerFromFurnace = enabled
	if enabled {
		m.heatersLocked = true
		logrus.Info("manager: boiler from furnace enabled, heaters locked")
	} else {
		logrus.Warn("manager: boiler from furnace disabled, watch the heaters")
	}
	m.recompute(time.Now())

	state := "off"
	if enabled {
		state = "on"
	}
	return Ack{
		Status:            "success",
		BoilerFromFurnace: state,
		HeatersLocked:     m.heatersLocked,
	}
}
