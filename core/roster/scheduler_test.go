package roster

import (
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mbrivio/turni/core/model"
)

func testConfig() Config {
	return Config{
		Drivers: []string{"Dario", "Gino", "Piero"},
		Firefighters: []string{
			"Anna", "Bice", "Carla", "Dario", "Dora", "Elsa", "Fede",
			"Gaia", "Hilde", "Iris", "Lena", "Mara", "Nora",
		},
		Seniority: map[string]model.Seniority{
			"Anna": model.Senior, "Bice": model.Senior,
			"Carla": model.Senior, "Dora": model.Senior,
		},
		DefaultCap: 1,
		MinSeniors: 1,
	}
}

func buildWith(t *testing.T, cfg Config, seed int64) Result {
	t.Helper()
	s, err := New(2026, cfg, rand.New(rand.NewSource(seed)), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s.Build()
}

func TestNewValidation(t *testing.T) {
	cfg := testConfig()
	cfg.Drivers = nil
	if _, err := New(2026, cfg, nil, nil); !errors.Is(err, ErrNoDrivers) {
		t.Fatalf("expected ErrNoDrivers, got %v", err)
	}
	cfg = testConfig()
	cfg.Firefighters = nil
	if _, err := New(2026, cfg, nil, nil); !errors.Is(err, ErrNoFirefighters) {
		t.Fatalf("expected ErrNoFirefighters, got %v", err)
	}
}

func TestBuildDeterministic(t *testing.T) {
	a := buildWith(t, testConfig(), 42)
	b := buildWith(t, testConfig(), 42)
	if !reflect.DeepEqual(a.Assignments, b.Assignments) {
		t.Fatalf("same seed must reproduce the same roster")
	}
	if !reflect.DeepEqual(a.Decisions, b.Decisions) {
		t.Fatalf("same seed must reproduce the same decision log")
	}
}

func TestBuildBasics(t *testing.T) {
	res := buildWith(t, testConfig(), 7)

	want := ActiveDates(2026, nil, nil)
	if len(res.Assignments) != len(want) {
		t.Fatalf("got %d assignments, want %d", len(res.Assignments), len(want))
	}
	for i, a := range res.Assignments {
		if !a.Date.Equal(want[i]) {
			t.Fatalf("assignment %d on %s, want %s", i, a.Date.Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
		if a.Incomplete() {
			t.Errorf("%s is uncovered", a.Date.Format("2006-01-02"))
		}
		seen := make(map[string]bool)
		for _, m := range a.CrewMembers() {
			if m == a.Driver {
				t.Errorf("%s: driver %s also serves as crew", a.Date.Format("2006-01-02"), m)
			}
			if seen[m] {
				t.Errorf("%s: %s appears twice in the crew", a.Date.Format("2006-01-02"), m)
			}
			seen[m] = true
		}
	}
}

func TestBuildMonthsRestriction(t *testing.T) {
	cfg := testConfig()
	cfg.Months = []time.Month{time.June}
	res := buildWith(t, cfg, 1)
	if len(res.Assignments) == 0 {
		t.Fatal("expected assignments in June")
	}
	for _, a := range res.Assignments {
		if a.Date.Month() != time.June {
			t.Fatalf("assignment outside June: %s", a.Date.Format("2006-01-02"))
		}
	}
}

func TestHardForbiddenPairNeverTogether(t *testing.T) {
	cfg := testConfig()
	cfg.Forbidden = []model.ForbiddenPair{{First: "Anna", Second: "Bice", Hard: true}}
	res := buildWith(t, cfg, 3)
	for _, a := range res.Assignments {
		crew := a.CrewMembers()
		if containsString(crew, "Anna") && containsString(crew, "Bice") {
			t.Fatalf("%s: forbidden pair served together", a.Date.Format("2006-01-02"))
		}
	}
}

func TestWeeklyCapRespected(t *testing.T) {
	res := buildWith(t, testConfig(), 11)
	driverWeeks := make(map[string]map[model.WeekKey]int)
	crewWeeks := make(map[string]map[model.WeekKey]int)
	count := func(m map[string]map[model.WeekKey]int, name string, key model.WeekKey) {
		if m[name] == nil {
			m[name] = make(map[model.WeekKey]int)
		}
		m[name][key]++
	}
	for _, a := range res.Assignments {
		key := model.WeekKeyOf(a.Date)
		if a.Driver != "" {
			count(driverWeeks, a.Driver, key)
		}
		for _, m := range a.CrewMembers() {
			count(crewWeeks, m, key)
		}
	}
	for name, weeks := range driverWeeks {
		for key, n := range weeks {
			if n > 1 {
				t.Errorf("driver %s served %d times in %d-W%d", name, n, key.Year, key.Week)
			}
		}
	}
	for name, weeks := range crewWeeks {
		for key, n := range weeks {
			if n > 1 {
				t.Errorf("crew %s served %d times in %d-W%d", name, n, key.Year, key.Week)
			}
		}
	}
}

func TestVacationRespected(t *testing.T) {
	cfg := testConfig()
	cfg.Vacations = map[string][]model.Vacation{
		"Mara": {{Start: model.Date(2026, time.January, 1), End: model.Date(2026, time.December, 31)}},
	}
	res := buildWith(t, cfg, 5)
	for _, a := range res.Assignments {
		if containsString(a.CrewMembers(), "Mara") {
			t.Fatalf("%s: Mara assigned while on vacation", a.Date.Format("2006-01-02"))
		}
	}
}

func TestMinSeniorEnforced(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultCap = 0 // keep all seniors eligible every day
	res := buildWith(t, cfg, 9)
	for _, a := range res.Assignments {
		seniors := 0
		for _, m := range a.CrewMembers() {
			switch m {
			case "Anna", "Bice", "Carla", "Dora":
				seniors++
			}
		}
		if seniors < 1 {
			t.Errorf("%s: team without seniors", a.Date.Format("2006-01-02"))
		}
	}
}

func TestMinSeniorBypassWithoutSeniors(t *testing.T) {
	cfg := testConfig()
	cfg.Seniority = nil
	res := buildWith(t, cfg, 2)
	for _, a := range res.Assignments {
		if a.Incomplete() {
			t.Errorf("%s uncovered despite the seniority bypass", a.Date.Format("2006-01-02"))
		}
	}
	if !hasDecision(res.Decisions, "seniority waived: no SENIOR") {
		t.Errorf("expected a seniority bypass log entry")
	}
}

func TestSummerExclusion(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultCap = 0
	cfg.Months = []time.Month{time.July, time.August}
	cfg.SummerExcluded = "Anna"
	res := buildWith(t, cfg, 4)
	if len(res.Assignments) == 0 {
		t.Fatal("expected summer assignments")
	}
	for _, a := range res.Assignments {
		if containsString(a.CrewMembers(), "Anna") {
			t.Fatalf("%s: summer-excluded member assigned", a.Date.Format("2006-01-02"))
		}
	}
}

func TestPreferredHardPair(t *testing.T) {
	cfg := testConfig()
	cfg.Drivers = []string{"Dario"}
	cfg.DefaultCap = 0
	cfg.Preferred = []model.PreferredPair{{Driver: "Dario", Firefighter: "Anna", Hard: true}}
	res := buildWith(t, cfg, 6)
	for _, a := range res.Assignments {
		if a.Driver != "Dario" {
			continue
		}
		if !containsString(a.CrewMembers(), "Anna") {
			t.Fatalf("%s: hard pairing not honored", a.Date.Format("2006-01-02"))
		}
	}
}

func TestWeeklyCapSoft(t *testing.T) {
	cfg := testConfig()
	cfg.Drivers = []string{"Dario"}
	cfg.Firefighters = []string{
		"Anna", "Bice", "Carla", "Dora", "Elsa", "Fede",
		"Gaia", "Hilde", "Iris", "Lena", "Mara", "Nora",
	}
	cfg.Rules.WeeklyCap.Mode = RuleSoft
	res := buildWith(t, cfg, 8)
	for _, a := range res.Assignments {
		if a.Driver != "Dario" {
			t.Fatalf("%s: expected the only driver to cover every day", a.Date.Format("2006-01-02"))
		}
	}
	if !hasDecision(res.Decisions, "weekly cap waived: assigning Dario") {
		t.Errorf("expected a cap waiver log entry for the driver")
	}
}

func TestWeeklyCapHardLeavesGaps(t *testing.T) {
	cfg := testConfig()
	cfg.Drivers = []string{"Dario"}
	res := buildWith(t, cfg, 8)
	perWeek := make(map[model.WeekKey]int)
	for _, a := range res.Assignments {
		if a.Driver != "" {
			perWeek[model.WeekKeyOf(a.Date)]++
		}
	}
	for key, n := range perWeek {
		if n > 1 {
			t.Errorf("week %d-W%d: single capped driver drove %d times", key.Year, key.Week, n)
		}
	}
	if !hasDecision(res.Decisions, "no driver available") {
		t.Errorf("expected uncovered-driver log entries")
	}
}

func TestTinyRosterReusesTheOnlyTeam(t *testing.T) {
	cfg := Config{
		Drivers:      []string{"Dario"},
		Firefighters: []string{"Anna", "Bice", "Carla", "Dora"},
		DefaultCap:   0,
	}
	res := buildWith(t, cfg, 1)
	for _, a := range res.Assignments {
		if a.Driver != "Dario" {
			t.Fatalf("%s: driver is %q", a.Date.Format("2006-01-02"), a.Driver)
		}
		if len(a.CrewMembers()) != model.TeamSize {
			t.Fatalf("%s: expected the full roster on duty", a.Date.Format("2006-01-02"))
		}
	}
	if !hasDecision(res.Decisions, "already served this year") {
		t.Errorf("expected team reuse log entries")
	}
}

func hasDecision(entries []Entry, substr string) bool {
	for _, e := range entries {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
