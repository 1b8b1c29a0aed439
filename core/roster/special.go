package roster

import (
	"time"
)

// Summer exclusion keeps the designated firefighter off July and August
// crews.
func isSummerMonth(m time.Month) bool {
	return m == time.July || m == time.August
}

// appendRotationBonus tries to add the rotation driver as the fourth, senior
// crew member on the Friday bonus day. Vacations and an already-reached
// weekly cap skip the addition with a log entry; the base team stands either
// way.
func (s *Scheduler) appendRotationBonus(day time.Time, team []string) []string {
	if s.rotationDriver == "" || containsString(team, s.rotationDriver) {
		return team
	}
	if s.onVacation(s.rotationDriver, day) {
		s.decisions.Logf(day, CategoryCrew, "%s is on vacation: Friday goes without the bonus member", s.rotationDriver)
		return team
	}
	if s.capEnforced(s.crewCount, s.rotationDriver, day) {
		s.decisions.Logf(day, CategoryCrew, "%s already reached the weekly cap: no bonus SENIOR member today", s.rotationDriver)
		return team
	}

	team = append(team, s.rotationDriver)
	s.crewCount.Record(s.rotationDriver, day)
	s.seenTeams[teamKey(team)] = true
	s.decisions.Logf(day, CategoryCrew, "Friday bonus: adding %s as fourth SENIOR crew member", s.rotationDriver)
	return team
}
