package roster

// RuleMode controls how one of the named generation rules is enforced.
type RuleMode string

const (
	// RuleHard filters violating candidates out entirely.
	RuleHard RuleMode = "hard"
	// RuleSoft admits violations when needed, always logging them.
	RuleSoft RuleMode = "soft"
	// RuleOff disables the rule.
	RuleOff RuleMode = "off"
)

// RuleModeFrom parses a mode label. Unknown values default to hard, which is
// also the default for every rule.
func RuleModeFrom(s string) RuleMode {
	switch RuleMode(s) {
	case RuleSoft:
		return RuleSoft
	case RuleOff:
		return RuleOff
	default:
		return RuleHard
	}
}

// RuleConfig is the resolved setting for one named rule. Value is only
// meaningful for the minimum-senior rule; nil means "use the configured
// default threshold".
type RuleConfig struct {
	Mode  RuleMode
	Value *int
}

// RuleSet groups the four configurable generation rules.
type RuleSet struct {
	MinSenior       RuleConfig
	WeeklyCap       RuleConfig
	SummerExclusion RuleConfig
	SpecialRotation RuleConfig
}

// DefaultRules returns the production defaults: everything hard, at least one
// senior per team.
func DefaultRules() RuleSet {
	one := 1
	return RuleSet{
		MinSenior:       RuleConfig{Mode: RuleHard, Value: &one},
		WeeklyCap:       RuleConfig{Mode: RuleHard},
		SummerExclusion: RuleConfig{Mode: RuleHard},
		SpecialRotation: RuleConfig{Mode: RuleHard},
	}
}

// normalized fills unset modes with the hard default so the engine never has
// to special-case an empty mode.
func (r RuleSet) normalized() RuleSet {
	norm := func(c RuleConfig) RuleConfig {
		if c.Mode == "" {
			c.Mode = RuleHard
		}
		return c
	}
	r.MinSenior = norm(r.MinSenior)
	r.WeeklyCap = norm(r.WeeklyCap)
	r.SummerExclusion = norm(r.SummerExclusion)
	r.SpecialRotation = norm(r.SpecialRotation)
	return r
}
