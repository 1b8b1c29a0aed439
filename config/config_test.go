package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mbrivio/turni/core/model"
	"github.com/mbrivio/turni/core/roster"
)

const sampleYAML = `
roster:
  drivers: [Rossi, Bianchi]
  firefighters: [Anna, Bice, Carla, Dora, Elsa]
  seniors: [Anna, Bice]
  weekly_caps:
    Carla: 2
  active_weekdays: [4, 5, 6]
  months: [6, 7]
  forbidden_pairs:
    - first: Dora
      second: Elsa
      hard: true
  preferred_pairs:
    - driver: Rossi
      firefighter: Anna
      hard: false
  vacations:
    - person: Bice
      start: "2026-08-01"
      end: "2026-08-15"
rules:
  weekly_cap:
    mode: soft
  min_senior:
    mode: hard
    value: 2
special:
  enabled: true
  rotation_driver: Varchi
  gating_driver: Pogliani
  summer_excluded: Elsa
logging:
  level: debug
  format: console
export:
  output_dir: /tmp/turni-out
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "/tmp/turni-out", cfg.Export.OutputDir)
	require.True(t, cfg.Special.Enabled)
	require.Equal(t, "Varchi", cfg.Special.RotationDriver)

	rc, err := cfg.RosterConfig()
	require.NoError(t, err)
	require.Equal(t, []string{"Rossi", "Bianchi"}, rc.Drivers)
	require.Equal(t, model.Senior, rc.Seniority["Anna"])
	require.Equal(t, 2, rc.WeeklyCaps["Carla"])
	require.Equal(t, roster.DefaultWeeklyCap, rc.DefaultCap)
	require.Equal(t, []model.Weekday{model.Friday, model.Saturday, model.Sunday}, rc.ActiveWeekdays)
	require.Equal(t, []time.Month{time.June, time.July}, rc.Months)
	require.Len(t, rc.Forbidden, 1)
	require.True(t, rc.Forbidden[0].Hard)
	require.Len(t, rc.Vacations["Bice"], 1)

	require.Equal(t, roster.RuleSoft, rc.Rules.WeeklyCap.Mode)
	require.Equal(t, roster.RuleHard, rc.Rules.MinSenior.Mode)
	require.NotNil(t, rc.Rules.MinSenior.Value)
	require.Equal(t, 2, *rc.Rules.MinSenior.Value)
	// Unset rules keep the hard default.
	require.Equal(t, roster.RuleHard, rc.Rules.SummerExclusion.Mode)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TURNI_EXPORT__OUTPUT_DIR", "/srv/roster")
	t.Setenv("TURNI_LOGGING__LEVEL", "warn")
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	require.Equal(t, "/srv/roster", cfg.Export.OutputDir)
	require.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
roster:
  drivers: [Rossi]
  firefighters: [Anna]
`))
	require.NoError(t, err)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "json", cfg.Logging.Format)
	require.Equal(t, "out", cfg.Export.OutputDir)
	require.Equal(t, "9090", cfg.Metrics.PrometheusPort)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"bad weekday": `
roster:
  drivers: [Rossi]
  firefighters: [Anna]
  active_weekdays: [7]
`,
		"bad month": `
roster:
  drivers: [Rossi]
  firefighters: [Anna]
  months: [13]
`,
		"bad vacation": `
roster:
  drivers: [Rossi]
  firefighters: [Anna]
  vacations:
    - person: Anna
      start: "2026-08-15"
      end: "2026-08-01"
`,
		"bad log level": `
roster:
  drivers: [Rossi]
  firefighters: [Anna]
logging:
  level: verbose
`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			require.Error(t, err)
		})
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}
