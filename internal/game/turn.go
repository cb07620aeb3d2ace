package game

// isOf reports whether throws classify as kind k.
// Normal matches anything; spare and strike need all pins down inside their window.
func (k TurnKind) isOf(throws []int) bool {
	if k == Normal {
		return true
	}
	r := rules[k]
	if len(throws) < r.triesNeeded {
		return false
	}
	return sum(throws[:r.triesNeeded]) == Pins
}

// score computes t's score given the turns that follow it.
// Lookahead throws come from t's own bonus throws first, then from next in order.
// Missing throws are not counted.
func (k TurnKind) score(t *Turn, next []*Turn) int {
	if k == Normal {
		return sum(t.throws)
	}
	r := rules[k]
	pts, _ := lookahead(t, next, r.lookaheadTries)
	return r.bonusPoints + pts
}

// lookahead sums up to n throws following t's classification window and
// reports whether all n were available.
func lookahead(t *Turn, next []*Turn, n int) (int, bool) {
	total, taken := 0, 0
	take := func(throws []int) {
		for _, p := range throws {
			if taken == n {
				return
			}
			total += p
			taken++
		}
	}
	take(t.throws[rules[t.kind].triesNeeded:])
	for _, nt := range next {
		if taken == n {
			break
		}
		take(nt.throws)
	}
	return total, taken == n
}

// NewTurn returns an empty, unclassified turn.
func NewTurn() *Turn { return &Turn{} }

// AddTry records a throw. It returns ErrTurnHasFinished once the turn is closed.
// Classification only moves away from Normal, strike before spare.
func (t *Turn) AddTry(pins int) error {
	if t.HasFinished() {
		return ErrTurnHasFinished
	}
	t.throws = append(t.throws, pins)
	if t.kind == Normal {
		switch {
		case Strike.isOf(t.throws):
			t.kind = Strike
		case Spare.isOf(t.throws):
			t.kind = Spare
		}
	}
	return nil
}

// EnableBonus grants the turn its kind's bonus throws. Idempotent.
func (t *Turn) EnableBonus() { t.bonus = true }

// BonusEnabled reports whether EnableBonus was called.
func (t *Turn) BonusEnabled() bool { return t.bonus }

// HasFinished reports whether the turn accepts no more throws.
func (t *Turn) HasFinished() bool {
	r := rules[t.kind]
	switch {
	case t.kind == Normal:
		return len(t.throws) >= r.triesNeeded
	case !t.bonus:
		return true
	default:
		return len(t.throws) >= r.triesNeeded+r.bonusTries
	}
}

// Score returns the turn's score given the turns that follow it.
func (t *Turn) Score(next []*Turn) int { return t.kind.score(t, next) }

// Resolved reports whether every throw the score depends on has been made.
func (t *Turn) Resolved(next []*Turn) bool {
	if t.kind == Normal {
		return t.HasFinished()
	}
	_, ok := lookahead(t, next, rules[t.kind].lookaheadTries)
	return ok
}

// Kind returns the current classification.
func (t *Turn) Kind() TurnKind { return t.kind }

// Throws returns a copy of the recorded throws.
func (t *Turn) Throws() []int { return append([]int(nil), t.throws...) }

// standing returns how many pins are up for the next throw of t.
// The rack resets after all pins fall or after two throws.
func (t *Turn) standing() int {
	down, n := 0, 0
	for _, p := range t.throws {
		down += p
		n++
		if down >= Pins || n == 2 {
			down, n = 0, 0
		}
	}
	return Pins - down
}

// strikes counts throws that cleared a full rack, bonus throws included.
func (t *Turn) strikes() int {
	down, n, count := 0, 0, 0
	for _, p := range t.throws {
		if n == 0 && p == Pins {
			count++
		}
		down += p
		n++
		if down >= Pins || n == 2 {
			down, n = 0, 0
		}
	}
	return count
}

func sum(xs []int) int {
	s := 0
	for _, x := range xs {
		s += x
	}
	return s
}
