package roster

import (
	"errors"
	"time"

	"github.com/mbrivio/turni/core/model"
)

// DefaultWeeklyCap applies to people with no explicit cap: one shift per ISO
// week unless configured otherwise.
const DefaultWeeklyCap = 1

// DefaultMinSeniors is the fallback minimum-senior threshold.
const DefaultMinSeniors = 1

var (
	// ErrNoDrivers aborts a run before any date is processed.
	ErrNoDrivers = errors.New("roster: driver roster is empty")
	// ErrNoFirefighters aborts a run before any date is processed.
	ErrNoFirefighters = errors.New("roster: firefighter roster is empty")
)

// Config is the resolved input of one scheduling run. It is read-only for
// the lifetime of the run.
type Config struct {
	Drivers      []string
	Firefighters []string

	// Seniority maps firefighters to their level; absent names are Junior.
	Seniority map[string]model.Seniority

	// WeeklyCaps holds per-person overrides; absent names use DefaultCap.
	// A cap of zero means unlimited.
	WeeklyCaps map[string]int
	DefaultCap int

	Forbidden []model.ForbiddenPair
	Preferred []model.PreferredPair
	Vacations map[string][]model.Vacation

	ActiveWeekdays []model.Weekday
	// Months restricts generation to a subset of the year. Empty means all.
	Months []time.Month

	// MinSeniors is the minimum senior count per team, unless overridden by
	// the min-senior rule value.
	MinSeniors int

	// SpecialRules enables the named-role ruleset below.
	SpecialRules bool
	// RotationDriver is excluded from driving outside Friday and, when
	// senior, joins Friday crews as a bonus member.
	RotationDriver string
	// GatingDriver gates the Friday exclusion: if they drive Saturday, the
	// rotation driver sits Friday out entirely.
	GatingDriver string
	// SummerExcluded is kept off July and August crews.
	SummerExcluded string

	Rules RuleSet
}

// Validate checks the fatal preconditions of a run.
func (c Config) Validate() error {
	if len(c.Drivers) == 0 {
		return ErrNoDrivers
	}
	if len(c.Firefighters) == 0 {
		return ErrNoFirefighters
	}
	return nil
}
