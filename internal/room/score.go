package room

import "math"

// Score bookkeeping. All three functions require s.mu held by the caller.

// penalize deducts one life from every player, clamped at zero. When the
// deduction leaves every player at exactly zero the round is lost and all
// cumulative points are wiped. Only this path can end a round as lost;
// hint costs never do.
func (s *Session) penalize() {
	for _, p := range s.players {
		p.Score = math.Max(0, p.Score-1)
	}

	for _, p := range s.players {
		if p.Score != 0 {
			return
		}
	}
	s.state = StateLost
	for _, p := range s.players {
		p.TotalPoints = 0
	}
}

// applyHintCost deducts half a life from every player, clamped at zero.
func (s *Session) applyHintCost() {
	for _, p := range s.players {
		p.Score = math.Max(0, p.Score-0.5)
	}
}

// award grants every player floor(score) points. No-op unless the round
// was just won; a round flips to won exactly once, so the award cannot
// double-apply.
func (s *Session) award() {
	if s.state != StateWon {
		return
	}
	for _, p := range s.players {
		p.TotalPoints += int(math.Floor(p.Score))
	}
}
