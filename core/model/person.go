package model

// Seniority marks the experience level of a firefighter. It only matters for
// crew eligibility; drivers carry it but the engine never reads it for them.
type Seniority string

const (
	Junior Seniority = "JUNIOR"
	Senior Seniority = "SENIOR"
)

// SeniorityFrom parses a seniority label, defaulting to Junior.
func SeniorityFrom(s string) Seniority {
	if s == string(Senior) {
		return Senior
	}
	return Junior
}
