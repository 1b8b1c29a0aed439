package roster

import (
	"math/rand"
	"sort"
	"time"

	"github.com/mbrivio/turni/core/logger"
	"github.com/mbrivio/turni/core/model"
)

// Result is everything a run produces, handed unmodified to the exporters.
type Result struct {
	Assignments    []model.Assignment
	DriverCounters *Counters
	CrewCounters   *Counters
	Decisions      []Entry
}

// Scheduler generates the duty roster for one year. It owns both counters,
// the decision log and the random generator; execution is strictly
// sequential because Friday's resolution reads the same week's Saturday
// result and every selection reads globally consistent counters.
type Scheduler struct {
	year int

	drivers      []string
	firefighters []string
	seniority    map[string]model.Seniority

	forbiddenHard map[model.PairKey]bool
	forbiddenSoft map[model.PairKey]bool
	prefHard      map[string][]string
	prefSoft      map[string]map[string]bool

	caps       map[string]int
	defaultCap int
	vacations  map[string][]model.Vacation

	rules      RuleSet
	minSeniors int

	special          bool
	rotationDriver   string
	gatingDriver     string
	summerExcluded   string
	rotationIsSenior bool

	dates []time.Time

	driverCount *Counters
	crewCount   *Counters
	seenTeams   map[string]bool
	decisions   *DecisionLog
	// actualDrivers maps each date to the driver the counters attribute the
	// shift to, which may differ from the displayed driver.
	actualDrivers map[time.Time]string

	rng *rand.Rand
	log logger.Logger
}

// New validates the configuration and prepares a scheduler. The random
// generator is injected so runs are reproducible; it must not be shared.
func New(year int, cfg Config, rng *rand.Rand, log logger.Logger) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	s := &Scheduler{
		year:          year,
		drivers:       sortedCopy(cfg.Drivers),
		firefighters:  sortedCopy(cfg.Firefighters),
		seniority:     make(map[string]model.Seniority),
		forbiddenHard: make(map[model.PairKey]bool),
		forbiddenSoft: make(map[model.PairKey]bool),
		prefHard:      make(map[string][]string),
		prefSoft:      make(map[string]map[string]bool),
		caps:          make(map[string]int),
		defaultCap:    cfg.DefaultCap,
		vacations:     make(map[string][]model.Vacation),
		rules:         cfg.Rules.normalized(),
		special:       cfg.SpecialRules,
		driverCount:   NewCounters(),
		crewCount:     NewCounters(),
		seenTeams:     make(map[string]bool),
		decisions:     &DecisionLog{},
		actualDrivers: make(map[time.Time]string),
		rng:           rng,
		log:           log,
	}

	for _, name := range s.firefighters {
		s.seniority[name] = model.Junior
	}
	for name, level := range cfg.Seniority {
		s.seniority[name] = level
	}
	for name, cap := range cfg.WeeklyCaps {
		if cap < 0 {
			cap = 0
		}
		s.caps[name] = cap
	}
	if s.defaultCap < 0 {
		s.defaultCap = 0
	}
	for name, vacs := range cfg.Vacations {
		s.vacations[name] = append([]model.Vacation(nil), vacs...)
	}

	for _, pair := range cfg.Forbidden {
		if pair.Hard {
			s.forbiddenHard[pair.Key()] = true
		} else {
			s.forbiddenSoft[pair.Key()] = true
		}
	}
	for _, pref := range cfg.Preferred {
		if pref.Hard {
			s.prefHard[pref.Driver] = append(s.prefHard[pref.Driver], pref.Firefighter)
		} else {
			if s.prefSoft[pref.Driver] == nil {
				s.prefSoft[pref.Driver] = make(map[string]bool)
			}
			s.prefSoft[pref.Driver][pref.Firefighter] = true
		}
	}
	for driver := range s.prefHard {
		sort.Strings(s.prefHard[driver])
	}

	s.minSeniors = cfg.MinSeniors
	if v := s.rules.MinSenior.Value; v != nil {
		s.minSeniors = *v
	}
	if s.minSeniors < 0 {
		s.minSeniors = 0
	}

	if s.special && s.rules.SpecialRotation.Mode != RuleOff {
		s.rotationDriver = cfg.RotationDriver
		s.gatingDriver = cfg.GatingDriver
	} else {
		s.special = false
	}
	if s.rules.SummerExclusion.Mode != RuleOff {
		s.summerExcluded = cfg.SummerExcluded
	}
	s.rotationIsSenior = s.special &&
		s.rotationDriver != "" &&
		containsString(s.firefighters, s.rotationDriver) &&
		s.seniority[s.rotationDriver] == model.Senior

	s.dates = ActiveDates(year, cfg.ActiveWeekdays, cfg.Months)

	for _, name := range s.drivers {
		s.driverCount.Ensure(name)
	}
	for _, name := range s.firefighters {
		s.crewCount.Ensure(name)
	}
	return s, nil
}

// Build generates the full year. Coverage gaps never abort the run; they are
// logged and surface as empty slots.
func (s *Scheduler) Build() Result {
	byWeek := make(map[model.WeekKey][]time.Time)
	for _, day := range s.dates {
		key := model.WeekKeyOf(day)
		byWeek[key] = append(byWeek[key], day)
	}
	weeks := make([]model.WeekKey, 0, len(byWeek))
	for key := range byWeek {
		weeks = append(weeks, key)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })

	built := make(map[time.Time]model.Assignment, len(s.dates))
	for _, key := range weeks {
		days := byWeek[key]
		byDow := make(map[model.Weekday]time.Time, len(days))
		for _, day := range days {
			byDow[model.WeekdayOf(day)] = day
		}
		for _, dow := range dayOrder(byDow) {
			day := byDow[dow]
			built[day] = s.buildDay(day)
		}
	}

	assignments := make([]model.Assignment, 0, len(built))
	for _, day := range s.dates {
		assignments = append(assignments, built[day])
	}
	s.log.Infof("generated %d shifts for %d (%d decision log entries)", len(assignments), s.year, s.decisions.Len())
	return Result{
		Assignments:    assignments,
		DriverCounters: s.driverCount,
		CrewCounters:   s.crewCount,
		Decisions:      s.decisions.Entries(),
	}
}

// dayOrder yields the fixed intra-week visit order: Saturday first so that
// Friday can read its result, then Friday, then Sunday, then any remaining
// active weekdays ascending.
func dayOrder(days map[model.Weekday]time.Time) []model.Weekday {
	order := make([]model.Weekday, 0, len(days))
	for _, dow := range []model.Weekday{model.Saturday, model.Friday, model.Sunday} {
		if _, ok := days[dow]; ok {
			order = append(order, dow)
		}
	}
	for dow := model.Monday; dow <= model.Sunday; dow++ {
		if dow == model.Friday || dow == model.Saturday || dow == model.Sunday {
			continue
		}
		if _, ok := days[dow]; ok {
			order = append(order, dow)
		}
	}
	return order
}

func (s *Scheduler) buildDay(day time.Time) model.Assignment {
	satDriver := s.saturdayDriver(day)
	a, actual := s.buildDayWith(day, satDriver, s.special)
	if s.special && s.rules.SpecialRotation.Mode == RuleSoft && a.Incomplete() {
		s.decisions.Logf(day, CategoryDriver, "special rotation waived: rebuilding the day without the named-role constraints")
		a, actual = s.buildDayWith(day, satDriver, false)
	}
	s.actualDrivers[day] = actual
	return a
}

func (s *Scheduler) buildDayWith(day time.Time, satDriver string, applySpecial bool) (model.Assignment, string) {
	dow := model.WeekdayOf(day)

	exclDriver := make(map[string]bool)
	if applySpecial && s.rotationDriver != "" && dow != model.Friday {
		exclDriver[s.rotationDriver] = true
	}
	if applySpecial && dow == model.Friday &&
		s.rotationDriver != "" && s.gatingDriver != "" && satDriver == s.gatingDriver {
		exclDriver[s.rotationDriver] = true
		s.decisions.Logf(day, CategoryDriver, "%s drives Saturday this week: excluding %s from Friday", s.gatingDriver, s.rotationDriver)
	}

	driver := s.pickDriver(day, exclDriver)
	display := driver
	if applySpecial && s.rotationIsSenior && dow == model.Saturday &&
		driver != "" && driver == s.gatingDriver {
		display = s.rotationDriver
		s.decisions.Logf(day, CategoryDriver, "displaying %s in place of %s (shift counted for %s)", s.rotationDriver, s.gatingDriver, s.gatingDriver)
	}

	includeBonus := applySpecial && s.rotationIsSenior && dow == model.Friday &&
		driver != s.rotationDriver &&
		(s.gatingDriver == "" || satDriver != s.gatingDriver)

	baseSize := model.TeamSize
	if includeBonus {
		baseSize--
	}

	exclCrew := make(map[string]bool)
	if driver != "" {
		exclCrew[driver] = true
	}
	if applySpecial && s.rotationDriver != "" {
		exclCrew[s.rotationDriver] = true
	}

	team, ok := s.pickCrew(day, baseSize, driver, exclCrew)
	if !ok {
		s.decisions.Logf(day, CategoryCrew, "uncovered shift: no valid team could be formed")
		return model.Assignment{Date: day, Driver: display}, driver
	}
	if includeBonus {
		team = s.appendRotationBonus(day, team)
	}

	a := model.Assignment{Date: day, Driver: display}
	copy(a.Crew[:], team)
	return a, driver
}

// saturdayDriver returns the driver actually counted for this ISO week's
// Saturday, or "" if that day is not scheduled yet.
func (s *Scheduler) saturdayDriver(day time.Time) string {
	offset := int(model.Saturday) - int(model.WeekdayOf(day))
	return s.actualDrivers[day.AddDate(0, 0, offset)]
}

func (s *Scheduler) onVacation(name string, day time.Time) bool {
	for _, v := range s.vacations[name] {
		if v.Contains(day) {
			return true
		}
	}
	return false
}

func (s *Scheduler) weeklyCap(name string) int {
	if cap, ok := s.caps[name]; ok {
		return cap
	}
	return s.defaultCap
}

// capReached is the raw weekly-cap check, independent of the rule mode.
func (s *Scheduler) capReached(c *Counters, name string, day time.Time) bool {
	cap := s.weeklyCap(name)
	if cap <= 0 {
		return false
	}
	return c.Week(name, model.WeekKeyOf(day)) >= cap
}

// capEnforced applies the rule mode on top of the raw check: soft and off
// modes never exclude anyone on this basis.
func (s *Scheduler) capEnforced(c *Counters, name string, day time.Time) bool {
	if s.rules.WeeklyCap.Mode == RuleOff {
		return false
	}
	reached := s.capReached(c, name, day)
	if reached && s.rules.WeeklyCap.Mode == RuleSoft {
		return false
	}
	return reached
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

func containsString(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}
