package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mbrivio/turni/core/metrics"
	"github.com/mbrivio/turni/core/model"
	"github.com/mbrivio/turni/core/roster"
	"github.com/mbrivio/turni/infra/notify"
)

// Config is the full program configuration, resolved once per run.
type Config struct {
	Roster  RosterConfig   `json:"roster"`
	Rules   RulesConfig    `json:"rules"`
	Special SpecialConfig  `json:"special"`
	Logging LoggingConfig  `json:"logging"`
	Metrics metrics.Config `json:"metrics"`
	Notify  notify.Config  `json:"notify"`
	Export  ExportConfig   `json:"export"`
}

// RosterConfig declares the people and the scheduling constraints.
type RosterConfig struct {
	Drivers      []string `json:"drivers"`
	Firefighters []string `json:"firefighters"`
	// Seniors lists the firefighters at SENIOR level; everybody else is
	// JUNIOR.
	Seniors []string `json:"seniors"`

	// WeeklyCaps overrides the default one-shift-per-week cap per person.
	// Zero means unlimited.
	WeeklyCaps       map[string]int `json:"weekly_caps"`
	DefaultWeeklyCap *int           `json:"default_weekly_cap"`

	// ActiveWeekdays uses 0=Monday .. 6=Sunday. Empty falls back to
	// Friday, Saturday and Sunday.
	ActiveWeekdays []int `json:"active_weekdays"`
	// Months restricts generation to a subset of the year (1..12).
	Months []int `json:"months"`

	MinSeniors *int `json:"min_seniors"`

	ForbiddenPairs []PairConfig      `json:"forbidden_pairs"`
	PreferredPairs []PreferredConfig `json:"preferred_pairs"`
	Vacations      []VacationConfig  `json:"vacations"`
}

// PairConfig declares a forbidden firefighter pair.
type PairConfig struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Hard   bool   `json:"hard"`
}

// PreferredConfig links a driver to a firefighter.
type PreferredConfig struct {
	Driver      string `json:"driver"`
	Firefighter string `json:"firefighter"`
	Hard        bool   `json:"hard"`
}

// VacationConfig is an inclusive date range, dates in 2006-01-02 form.
type VacationConfig struct {
	Person string `json:"person"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// SpecialConfig names the three special roles.
type SpecialConfig struct {
	Enabled        bool   `json:"enabled"`
	RotationDriver string `json:"rotation_driver"`
	GatingDriver   string `json:"gating_driver"`
	SummerExcluded string `json:"summer_excluded"`
}

// RuleConfig sets the mode (hard/soft/off) of one generation rule; Value is
// only read for min_senior.
type RuleConfig struct {
	Mode  string `json:"mode"`
	Value *int   `json:"value"`
}

// RulesConfig collects the four named rules.
type RulesConfig struct {
	MinSenior       RuleConfig `json:"min_senior"`
	WeeklyCap       RuleConfig `json:"weekly_cap"`
	SummerExclusion RuleConfig `json:"summer_exclusion"`
	SpecialRotation RuleConfig `json:"special_rotation"`
}

// ExportConfig controls where and what the exporters write.
type ExportConfig struct {
	OutputDir string `json:"output_dir"`
}

// SetDefaults fills unset values.
func (c *ExportConfig) SetDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
}

// Load reads the configuration file (YAML or JSON) and applies TURNI_
// environment overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("TURNI_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "turni_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Logging.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Notify.SetDefaults()
	cfg.Export.SetDefaults()
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Notify.Validate(); err != nil {
		return nil, err
	}
	if _, err := cfg.RosterConfig(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RosterConfig maps the file-level configuration into the engine's input.
func (c *Config) RosterConfig() (roster.Config, error) {
	out := roster.Config{
		Drivers:      append([]string(nil), c.Roster.Drivers...),
		Firefighters: append([]string(nil), c.Roster.Firefighters...),
		Seniority:    make(map[string]model.Seniority),
		WeeklyCaps:   make(map[string]int, len(c.Roster.WeeklyCaps)),
		DefaultCap:   roster.DefaultWeeklyCap,
		Vacations:    make(map[string][]model.Vacation),
		MinSeniors:   roster.DefaultMinSeniors,

		SpecialRules:   c.Special.Enabled,
		RotationDriver: c.Special.RotationDriver,
		GatingDriver:   c.Special.GatingDriver,
		SummerExcluded: c.Special.SummerExcluded,

		Rules: c.Rules.RuleSet(),
	}

	for _, name := range c.Roster.Seniors {
		out.Seniority[name] = model.Senior
	}
	for name, cap := range c.Roster.WeeklyCaps {
		out.WeeklyCaps[name] = cap
	}
	if c.Roster.DefaultWeeklyCap != nil {
		out.DefaultCap = *c.Roster.DefaultWeeklyCap
	}
	if c.Roster.MinSeniors != nil {
		out.MinSeniors = *c.Roster.MinSeniors
	}

	for _, d := range c.Roster.ActiveWeekdays {
		w := model.Weekday(d)
		if !w.Valid() {
			return roster.Config{}, fmt.Errorf("roster: invalid weekday %d", d)
		}
		out.ActiveWeekdays = append(out.ActiveWeekdays, w)
	}
	for _, m := range c.Roster.Months {
		if m < 1 || m > 12 {
			return roster.Config{}, fmt.Errorf("roster: invalid month %d", m)
		}
		out.Months = append(out.Months, time.Month(m))
	}

	for _, p := range c.Roster.ForbiddenPairs {
		out.Forbidden = append(out.Forbidden, model.ForbiddenPair{First: p.First, Second: p.Second, Hard: p.Hard})
	}
	for _, p := range c.Roster.PreferredPairs {
		out.Preferred = append(out.Preferred, model.PreferredPair{Driver: p.Driver, Firefighter: p.Firefighter, Hard: p.Hard})
	}
	for _, v := range c.Roster.Vacations {
		start, err := time.ParseInLocation("2006-01-02", v.Start, time.UTC)
		if err != nil {
			return roster.Config{}, fmt.Errorf("vacation for %s: %w", v.Person, err)
		}
		end, err := time.ParseInLocation("2006-01-02", v.End, time.UTC)
		if err != nil {
			return roster.Config{}, fmt.Errorf("vacation for %s: %w", v.Person, err)
		}
		if end.Before(start) {
			return roster.Config{}, fmt.Errorf("vacation for %s: end before start", v.Person)
		}
		out.Vacations[v.Person] = append(out.Vacations[v.Person], model.Vacation{Start: start, End: end})
	}
	return out, nil
}

// RuleSet resolves the configured modes on top of the defaults.
func (c RulesConfig) RuleSet() roster.RuleSet {
	rs := roster.DefaultRules()
	apply := func(dst *roster.RuleConfig, src RuleConfig, hasValue bool) {
		if src.Mode != "" {
			dst.Mode = roster.RuleModeFrom(src.Mode)
		}
		if hasValue && src.Value != nil {
			v := *src.Value
			dst.Value = &v
		}
	}
	apply(&rs.MinSenior, c.MinSenior, true)
	apply(&rs.WeeklyCap, c.WeeklyCap, false)
	apply(&rs.SummerExclusion, c.SummerExclusion, false)
	apply(&rs.SpecialRotation, c.SpecialRotation, false)
	return rs
}
