package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "obsmon.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestApplyConfig(t *testing.T) {
	defer resetSettings()()

	path := writeConfig(t, `
serial = "/dev/ttyUSB1"
mqtt_url = "mqtt://broker:1883/obs/lidar"
metrics_addr = ":9105"
stats_interval = "30s"
sample_every = 10
`)
	require.NoError(t, applyConfig(path))
	require.Equal(t, "/dev/ttyUSB1", serialPath)
	require.Equal(t, "mqtt://broker:1883/obs/lidar", mqttURL)
	require.Equal(t, ":9105", metricsAddr)
	require.Equal(t, 30*time.Second, statsEvery)
	require.Equal(t, 10, sampleEvery)
}

func TestApplyConfigPartial(t *testing.T) {
	defer resetSettings()()

	path := writeConfig(t, `serial = "/dev/ttyUSB2"`)
	require.NoError(t, applyConfig(path))
	require.Equal(t, "/dev/ttyUSB2", serialPath)
	require.Equal(t, "mqtt://localhost:1883/obs/events", mqttURL, "undefined keys keep defaults")
	require.Equal(t, 50, sampleEvery)
}

func TestApplyConfigBadInterval(t *testing.T) {
	defer resetSettings()()

	path := writeConfig(t, `stats_interval = "soon"`)
	require.Error(t, applyConfig(path))
}

func TestApplyConfigMissingFile(t *testing.T) {
	require.Error(t, applyConfig(filepath.Join(t.TempDir(), "absent.toml")))
}

func resetSettings() func() {
	serial, mqtt, metrics := serialPath, mqttURL, metricsAddr
	stats, sample := statsEvery, sampleEvery
	return func() {
		serialPath, mqttURL, metricsAddr = serial, mqtt, metrics
		statsEvery, sampleEvery = stats, sample
	}
}
