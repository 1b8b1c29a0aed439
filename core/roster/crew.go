package roster

import (
	"sort"
	"strings"
	"time"

	"github.com/mbrivio/turni/core/model"
)

// crewScoreLen is the width of the team score tuple: soft-forbidden
// violations, month/weekday repeats, team reuse, weekly load, monthly load,
// annual load, weekday-of-year load, last-weekday repeats, negated soft
// preference matches and the random tiebreak.
const crewScoreLen = 10

// pickCrew assembles the firefighter team for one date via constrained
// combinatorial search. It records the chosen members into the crew counters
// and returns false when no valid team exists.
func (s *Scheduler) pickCrew(day time.Time, size int, driver string, excluded map[string]bool) ([]string, bool) {
	if size <= 0 {
		return nil, true
	}

	month := day.Month()
	dow := model.WeekdayOf(day)
	week := model.WeekKeyOf(day)

	var available, fallback []string
	atCap := make(map[string]bool)
	summerBlocked := make(map[string]bool)
	for _, name := range s.firefighters {
		if excluded[name] {
			continue
		}
		if s.onVacation(name, day) {
			continue
		}
		summer := s.summerExcluded != "" && name == s.summerExcluded &&
			isSummerMonth(month) && s.rules.SummerExclusion.Mode != RuleOff
		capped := s.capReached(s.crewCount, name, day)
		if summer && s.rules.SummerExclusion.Mode == RuleHard {
			continue
		}
		if capped && s.rules.WeeklyCap.Mode == RuleHard {
			continue
		}
		atCap[name] = capped
		summerBlocked[name] = summer
		if summer || capped {
			fallback = append(fallback, name)
		} else {
			available = append(available, name)
		}
	}

	// Soft-blocked candidates are only drafted when the clean pool cannot
	// fill the team on its own.
	if len(available) < size && len(fallback) > 0 {
		var reasons []string
		if anyTrue(fallback, atCap) {
			reasons = append(reasons, "weekly cap")
		}
		if anyTrue(fallback, summerBlocked) {
			reasons = append(reasons, "summer rule")
		}
		reason := strings.Join(reasons, " and ")
		if reason == "" {
			reason = "soft constraints"
		}
		s.decisions.Logf(day, CategoryCrew, "%s waived: adding %s to the candidate pool", reason, strings.Join(fallback, ", "))
		available = append(available, fallback...)
	}

	if len(available) < size {
		s.decisions.Logf(day, CategoryCrew, "not enough candidates (%d/%d) after vacations, caps and constraints", len(available), size)
		return nil, false
	}

	poolHasSenior := false
	for _, name := range available {
		if s.seniority[name] == model.Senior {
			poolHasSenior = true
			break
		}
	}

	// Hard driver pairings claim their slots first. Missing members are
	// logged but never block the day.
	var required []string
	for _, name := range s.prefHard[driver] {
		if containsString(available, name) {
			required = append(required, name)
		} else {
			s.decisions.Logf(day, CategoryCrew, "hard driver pairing unmet (%s unavailable): picking the best alternative", name)
		}
	}
	if len(required) > size {
		s.decisions.Logf(day, CategoryCrew, "hard driver pairings exceed the team size: keeping the first %d", size)
		required = required[:size]
	}

	slots := size - len(required)
	var residual []string
	for _, name := range available {
		if !containsString(required, name) {
			residual = append(residual, name)
		}
	}
	if slots > len(residual) {
		s.decisions.Logf(day, CategoryCrew, "cannot complete the team (%d open slots, %d eligible candidates)", slots, len(residual))
		return nil, false
	}

	var (
		best          []string
		bestKey       [crewScoreLen]float64
		bestSoftViols int
		found         bool
		seniorLogged  bool
	)

	team := make([]string, 0, size)
	iter := newCombinations(len(residual), slots)
	for idx, ok := iter.next(); ok; idx, ok = iter.next() {
		team = team[:0]
		team = append(team, required...)
		for _, i := range idx {
			team = append(team, residual[i])
		}

		if s.hasHardForbidden(team) {
			continue
		}

		if s.minSeniors > 0 {
			seniors := 0
			for _, name := range team {
				if s.seniority[name] == model.Senior {
					seniors++
				}
			}
			if !poolHasSenior && !seniorLogged {
				s.decisions.Logf(day, CategoryCrew, "seniority waived: no SENIOR available among today's candidates")
				seniorLogged = true
			}
			if poolHasSenior && seniors < s.minSeniors {
				if s.rules.MinSenior.Mode == RuleSoft {
					if !seniorLogged {
						s.decisions.Logf(day, CategoryCrew, "seniority waived: team has %d SENIOR (<%d)", seniors, s.minSeniors)
						seniorLogged = true
					}
				} else {
					continue
				}
			}
		}

		softViols := s.softForbiddenCount(team)
		var key [crewScoreLen]float64
		key[0] = float64(softViols)
		key[2] = 1
		if !s.seenTeams[teamKey(team)] {
			key[2] = 0
		}
		for _, name := range team {
			if s.crewCount.MonthWeekday(name, month, dow) >= 1 {
				key[1]++
			}
			key[3] += float64(s.crewCount.Week(name, week))
			key[4] += float64(s.crewCount.Month(name, month))
			key[5] += float64(s.crewCount.Annual(name))
			key[6] += float64(s.crewCount.WeekdayOfYear(name, dow))
			if last, ok := s.crewCount.LastWeekday(name); ok && last == dow {
				key[7]++
			}
			if s.prefSoft[driver][name] {
				key[8]--
			}
		}
		key[9] = s.rng.Float64()

		if !found || lessKey(key[:], bestKey[:]) {
			best = append(best[:0], team...)
			bestKey = key
			bestSoftViols = softViols
			found = true
		}
	}

	if !found {
		s.decisions.Logf(day, CategoryCrew, "no team combination satisfies the hard constraints")
		return nil, false
	}

	if bestSoftViols > 0 {
		s.decisions.Logf(day, CategoryCrew, "accepting a team with %d discouraged pairing(s)", bestSoftViols)
	}
	if s.seenTeams[teamKey(best)] {
		s.decisions.Logf(day, CategoryCrew, "team %s already served this year: reusing it for lack of better alternatives", strings.Join(best, ", "))
	}
	if s.rules.WeeklyCap.Mode == RuleSoft {
		for _, name := range best {
			if atCap[name] {
				s.decisions.Logf(day, CategoryCrew, "weekly cap waived: assigning %s beyond their cap", name)
			}
		}
	}
	if s.rules.SummerExclusion.Mode == RuleSoft {
		for _, name := range best {
			if summerBlocked[name] {
				s.decisions.Logf(day, CategoryCrew, "summer rule waived: including %s despite the exclusion", name)
			}
		}
	}

	for _, name := range best {
		s.crewCount.Record(name, day)
	}
	s.seenTeams[teamKey(best)] = true
	return best, true
}

func (s *Scheduler) hasHardForbidden(team []string) bool {
	for i := 0; i < len(team); i++ {
		for j := i + 1; j < len(team); j++ {
			if s.forbiddenHard[model.NewPairKey(team[i], team[j])] {
				return true
			}
		}
	}
	return false
}

func (s *Scheduler) softForbiddenCount(team []string) int {
	n := 0
	for i := 0; i < len(team); i++ {
		for j := i + 1; j < len(team); j++ {
			if s.forbiddenSoft[model.NewPairKey(team[i], team[j])] {
				n++
			}
		}
	}
	return n
}

// teamKey is the order-independent identity of a team, used for the
// seen-this-year set.
func teamKey(team []string) string {
	names := append([]string(nil), team...)
	sort.Strings(names)
	return strings.Join(names, "|")
}

func anyTrue(names []string, flags map[string]bool) bool {
	for _, name := range names {
		if flags[name] {
			return true
		}
	}
	return false
}

// combinations lazily enumerates k-subsets of {0..n-1} in lexicographic
// order, avoiding materializing the full combination set. With rosters
// capped at a few dozen people and four slots the enumeration stays small.
type combinations struct {
	n, k  int
	idx   []int
	first bool
	done  bool
}

func newCombinations(n, k int) *combinations {
	c := &combinations{n: n, k: k, first: true}
	if k < 0 || k > n {
		c.done = true
		return c
	}
	c.idx = make([]int, k)
	for i := range c.idx {
		c.idx[i] = i
	}
	return c
}

// next returns the current combination and advances. The returned slice is
// only valid until the following call.
func (c *combinations) next() ([]int, bool) {
	if c.done {
		return nil, false
	}
	if c.first {
		c.first = false
		return c.idx, true
	}
	// Advance the rightmost index that still has room.
	i := c.k - 1
	for i >= 0 && c.idx[i] == c.n-c.k+i {
		i--
	}
	if i < 0 {
		c.done = true
		return nil, false
	}
	c.idx[i]++
	for j := i + 1; j < c.k; j++ {
		c.idx[j] = c.idx[j-1] + 1
	}
	return c.idx, true
}
