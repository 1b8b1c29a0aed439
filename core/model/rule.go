package model

// PairKey is the canonical identity of an unordered pair of people. Both
// orderings of the same two names map to the same key.
type PairKey struct {
	A string
	B string
}

// NewPairKey builds the canonical key for two names.
func NewPairKey(first, second string) PairKey {
	if second < first {
		first, second = second, first
	}
	return PairKey{A: first, B: second}
}

// ForbiddenPair declares that two firefighters should not serve together.
// Hard pairs are never violated; soft pairs are only penalized in scoring.
type ForbiddenPair struct {
	First  string
	Second string
	Hard   bool
}

// Key returns the canonical pair key.
func (p ForbiddenPair) Key() PairKey { return NewPairKey(p.First, p.Second) }

// PreferredPair links a driver to a firefighter. Hard pairs force the
// firefighter into the crew whenever feasible; soft pairs act as a scoring
// tiebreaker.
type PreferredPair struct {
	Driver      string
	Firefighter string
	Hard        bool
}
