package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolops/subplan/core/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
api:
  addr: ":8181"
metrics:
  prometheus_enabled: true
history:
  backend: sqlite
  path: subs.db
roster:
  path: roster.yaml
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8181", cfg.API.Addr)
	assert.True(t, cfg.Metrics.PrometheusEnabled)
	assert.Equal(t, ":9090", cfg.Metrics.PrometheusPort, "default port applies")
	assert.Equal(t, "sqlite", cfg.History.Backend)
	assert.Equal(t, "subs.db", cfg.History.Path)
	assert.Equal(t, "roster.yaml", cfg.Roster.Path)
}

func TestLoadDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", "api: {}\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.API.Addr)
	assert.Equal(t, "memory", cfg.History.Backend)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeFile(t, "config.yaml", "api:\n  addr: \":8181\"\n")
	t.Setenv("SUBPLAN_API__ADDR", ":9999")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.API.Addr)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	path := writeFile(t, "config.toml", "")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeFile(t, "config.yaml", "history:\n  backend: mongo\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRoster(t *testing.T) {
	path := writeFile(t, "roster.yaml", `
staff:
  - id: t1
    code: abc
    name: A. Abbot
  - id: t2
    code: DEF
    name: D. Field
timetables:
  t1:
    Mon:
      "8:05": Gr9 Math
      "8:50": FREE
`)
	r, err := LoadRoster(path)
	require.NoError(t, err)
	require.Len(t, r.Staff, 2)
	assert.Equal(t, "t1", r.Staff[0].ID)
	tt := r.Timetables["t1"]
	require.NotNil(t, tt)
	assert.Equal(t, "Gr9 Math", tt.Assignment(model.Monday, "8:05"))
	assert.Equal(t, model.Free, tt.Assignment(model.Monday, "8:50"))
}

func TestLoadRosterRejectsInvalidStaff(t *testing.T) {
	path := writeFile(t, "roster.yaml", "staff:\n  - id: t1\n")
	_, err := LoadRoster(path)
	assert.Error(t, err)
}
