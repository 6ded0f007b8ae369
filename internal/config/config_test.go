package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: "0.0.0.0:8080"
  html_dir: "/srv/www"
  sleep_delay: "250ms"
  shutdown_timeout: "10s"
pool:
  workers: 16
  queue_capacity: 512
metrics:
  enabled: true
  addr: "127.0.0.1:9999"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", cfg.Addr)
	require.Equal(t, "/srv/www", cfg.HTMLDir)
	require.Equal(t, 250*time.Millisecond, cfg.SleepDelay)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, 16, cfg.Workers)
	require.Equal(t, 512, cfg.QueueCapacity)
	require.True(t, cfg.MetricsEnabled)
	require.Equal(t, "127.0.0.1:9999", cfg.MetricsAddr)
}

func TestLoadPartialFileKeepsRemainingDefaults(t *testing.T) {
	path := writeConfig(t, `
pool:
  workers: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Workers)
	require.Equal(t, Default().Addr, cfg.Addr)
	require.Equal(t, Default().SleepDelay, cfg.SleepDelay)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadBadDuration(t *testing.T) {
	path := writeConfig(t, `
server:
  sleep_delay: "five seconds"
`)

	_, err := Load(path)
	require.ErrorContains(t, err, "sleep_delay")
}

func TestLoadRejectsNegativeWorkers(t *testing.T) {
	path := writeConfig(t, `
pool:
  workers: -3
`)

	_, err := Load(path)
	require.ErrorContains(t, err, "workers")
}

func TestValidateMetricsAddr(t *testing.T) {
	cfg := Default()
	cfg.MetricsEnabled = true
	cfg.MetricsAddr = ""
	require.ErrorContains(t, cfg.Validate(), "metrics.addr")
}
