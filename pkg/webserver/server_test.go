package webserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sze-home/controller/pkg/config"
	"github.com/sze-home/controller/pkg/manager"
	"github.com/sze-home/controller/pkg/solar"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	docs := map[string]string{
		config.DocEnergyProfiles:  `{"energy_profiles": {"workday": {}}}`,
		config.DocCWUSchedule:     `{"morning": "05:30"}`,
		config.DocSystemConfig:    `{"boiler": {"default_total_power": {"morning_watts": 2000, "evening_watts": 3000}}}`,
		config.DocUserCorrections: `{}`,
	}
	for name, content := range docs {
		err := os.WriteFile(filepath.Join(dir, name+".json"), []byte(content), 0644)
		require.NoError(t, err)
	}

	resolve := func(lat, lon float64, ts time.Time) solar.Window {
		return solar.WindowSolar
	}
	m := manager.New(config.NewStore(dir), resolve)
	srv := httptest.NewServer(New(m).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestHandleStatus(t *testing.T) {
	srv := newTestServer(t)

	body := map[string]any{}
	code := getJSON(t, srv.URL+"/api/status", &body)
	assert.Equal(t, http.StatusOK, code)

	assert.Equal(t, true, body["system_active"])
	assert.Equal(t, "solar", body["window"])
	assert.Equal(t, true, body["boiler_from_furnace"])
	assert.Equal(t, true, body["heaters_locked"])
	assert.Equal(t, []any{"workday"}, body["profiles_available"])
	assert.Equal(t, 2000.0, body["boiler_morning_power_w"])
	assert.Contains(t, body, "version")
}

func TestHandleConfig(t *testing.T) {
	srv := newTestServer(t)

	body := map[string]any{}
	code := getJSON(t, srv.URL+"/api/config", &body)
	assert.Equal(t, http.StatusOK, code)

	assert.Contains(t, body, config.DocEnergyProfiles)
	assert.Contains(t, body, config.DocSystemConfig)
	assert.Contains(t, body, "config_status")
}

func TestHandleConfigStatus(t *testing.T) {
	srv := newTestServer(t)

	body := struct {
		LastLoadTime *time.Time      `json:"last_load_time"`
		Loaded       map[string]bool `json:"files_loaded"`
	}{}
	code := getJSON(t, srv.URL+"/api/config/status", &body)
	assert.Equal(t, http.StatusOK, code)
	assert.NotNil(t, body.LastLoadTime)
	assert.True(t, body.Loaded[config.DocSystemConfig])
}

func TestHandleRefresh(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/refresh", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandleToggleBoiler(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/boiler-from-furnace", "application/json",
		bytes.NewBufferString(`{"enabled": false}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ack := map[string]any{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	assert.Equal(t, "success", ack["status"])
	assert.Equal(t, "off", ack["boiler_from_furnace"])
	assert.Equal(t, true, ack["heaters_locked"])

	st := map[string]any{}
	getJSON(t, srv.URL+"/api/status", &st)
	assert.Equal(t, false, st["boiler_from_furnace"])
}

func TestHandleToggleBoilerBadBody(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []string{"", "{}", "not json"} {
		resp, err := http.Post(srv.URL+"/api/boiler-from-furnace", "application/json",
			bytes.NewBufferString(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
}
