package roster

import (
	"testing"

	"github.com/mbrivio/turni/core/model"
)

// specialConfig has a single regular driver so that every gating decision is
// deterministic: Gino drives (and is counted for) every active day.
func specialConfig() Config {
	return Config{
		Drivers: []string{"Gino"},
		Firefighters: []string{
			"Anna", "Bice", "Carla", "Dora", "Elsa", "Fede", "Gaia", "Rino",
		},
		Seniority: map[string]model.Seniority{
			"Anna": model.Senior, "Bice": model.Senior, "Rino": model.Senior,
		},
		DefaultCap:     0,
		MinSeniors:     1,
		SpecialRules:   true,
		RotationDriver: "Rino",
	}
}

func TestFridayBonusMember(t *testing.T) {
	res := buildWith(t, specialConfig(), 21)
	for _, a := range res.Assignments {
		crew := a.CrewMembers()
		switch model.WeekdayOf(a.Date) {
		case model.Friday:
			if !containsString(crew, "Rino") {
				t.Errorf("%s: Friday crew without the bonus member", a.Date.Format("2006-01-02"))
			}
			if len(crew) != model.TeamSize {
				t.Errorf("%s: Friday crew has %d members", a.Date.Format("2006-01-02"), len(crew))
			}
		default:
			if containsString(crew, "Rino") {
				t.Errorf("%s: rotation member on a non-Friday crew", a.Date.Format("2006-01-02"))
			}
		}
	}
	if !hasDecision(res.Decisions, "Friday bonus: adding Rino") {
		t.Errorf("expected bonus log entries")
	}
}

func TestGatingDriverBlocksFriday(t *testing.T) {
	cfg := specialConfig()
	cfg.GatingDriver = "Gino"
	res := buildWith(t, cfg, 21)
	for _, a := range res.Assignments {
		if containsString(a.CrewMembers(), "Rino") {
			t.Errorf("%s: rotation member assigned while gated", a.Date.Format("2006-01-02"))
		}
	}
	if !hasDecision(res.Decisions, "excluding Rino from Friday") {
		t.Errorf("expected gating log entries")
	}
}

func TestSaturdayDisplaySubstitution(t *testing.T) {
	cfg := specialConfig()
	cfg.GatingDriver = "Gino"
	res := buildWith(t, cfg, 21)
	for _, a := range res.Assignments {
		switch model.WeekdayOf(a.Date) {
		case model.Saturday:
			if a.Driver != "Rino" {
				t.Errorf("%s: displayed Saturday driver is %s, want Rino", a.Date.Format("2006-01-02"), a.Driver)
			}
		default:
			if a.Driver != "Gino" {
				t.Errorf("%s: driver is %s, want Gino", a.Date.Format("2006-01-02"), a.Driver)
			}
		}
	}
	// The shift is still counted for the real driver.
	if got := res.DriverCounters.Annual("Gino"); got != len(res.Assignments) {
		t.Errorf("Gino counted %d shifts, want %d", got, len(res.Assignments))
	}
	if got := res.DriverCounters.Annual("Rino"); got != 0 {
		t.Errorf("Rino counted %d driver shifts, want 0", got)
	}
	if !hasDecision(res.Decisions, "displaying Rino in place of Gino") {
		t.Errorf("expected substitution log entries")
	}
}

func TestSoftRotationRetry(t *testing.T) {
	// The rotation driver is the only driver: outside Friday the rule leaves
	// the day uncovered, so soft mode must rebuild it without the rule.
	cfg := specialConfig()
	cfg.Drivers = []string{"Rino"}
	cfg.Rules.SpecialRotation.Mode = RuleSoft
	res := buildWith(t, cfg, 13)
	for _, a := range res.Assignments {
		if a.Driver != "Rino" {
			t.Errorf("%s: expected the retry to assign Rino, got %q", a.Date.Format("2006-01-02"), a.Driver)
		}
	}
	if !hasDecision(res.Decisions, "special rotation waived") {
		t.Errorf("expected retry log entries")
	}

	// Hard mode keeps the exclusion and leaves the gaps.
	cfg.Rules.SpecialRotation.Mode = RuleHard
	res = buildWith(t, cfg, 13)
	gaps := 0
	for _, a := range res.Assignments {
		if model.WeekdayOf(a.Date) != model.Friday && a.Driver != "" {
			t.Errorf("%s: rotation driver drove outside Friday under hard mode", a.Date.Format("2006-01-02"))
		}
		if a.Driver == "" {
			gaps++
		}
	}
	if gaps == 0 {
		t.Errorf("expected uncovered days under the hard rotation rule")
	}
}

func TestSpecialRotationOff(t *testing.T) {
	cfg := specialConfig()
	cfg.GatingDriver = "Gino"
	cfg.Rules.SpecialRotation.Mode = RuleOff
	res := buildWith(t, cfg, 21)
	for _, a := range res.Assignments {
		if a.Driver != "Gino" {
			t.Errorf("%s: driver is %s, want Gino with the rule off", a.Date.Format("2006-01-02"), a.Driver)
		}
	}
	if hasDecision(res.Decisions, "displaying Rino") {
		t.Errorf("substitution must not happen with the rule off")
	}
}
