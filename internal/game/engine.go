// internal/game/engine.go
//
// Game sequencing for a single bowling game.
// Responsibilities:
//   - Forward throws to the open turn and advance to the next one when it closes.
//   - Grant the bonus throws of a spare or strike in the last turn.
//   - Fold turn scores into a total, each turn looking ahead into the ones after it.
//
// Notes:
//   - The engine does not range-check pins; callers use ValidatePins and PinsStanding.
//   - A Game is owned by a single caller and is not safe for concurrent use.
package game

import (
	"fmt"

	"github.com/google/uuid"
)

// New constructs a game with its first turn open.
func New() *Game {
	return &Game{
		ID:    uuid.NewString(),
		turns: []*Turn{NewTurn()},
	}
}

// Replay rebuilds a game from a flat list of throws.
// It fails with ErrGameHasFinished if throws run past the end of the game.
func Replay(id string, throws []int) (*Game, error) {
	g := New()
	if id != "" {
		g.ID = id
	}
	for i, p := range throws {
		if err := g.AddTry(p); err != nil {
			return nil, fmt.Errorf("throw %d: %w", i+1, err)
		}
	}
	return g, nil
}

// AddTry records one throw.
//
// State transitions:
//   - Turns 1 to 9: a closed turn opens the next one.
//   - Turn 10 closing as a spare or strike: bonus throws are enabled (awaiting_bonus).
//   - Turn 10 closing as normal, or running out of bonus throws: finished.
func (g *Game) AddTry(pins int) error {
	if g.HasFinished() {
		return ErrGameHasFinished
	}
	cur := g.current()
	if err := cur.AddTry(pins); err != nil {
		return fmt.Errorf("turn %d: %w", len(g.turns), err)
	}
	if !cur.HasFinished() {
		return nil
	}
	switch {
	case len(g.turns) < MaxTurns:
		g.turns = append(g.turns, NewTurn())
	case cur.kind != Normal && !cur.bonus:
		cur.EnableBonus()
	}
	return nil
}

// HasFinished reports whether the tenth turn exists and is closed.
func (g *Game) HasFinished() bool {
	return len(g.turns) == MaxTurns && g.current().HasFinished()
}

// Score sums every turn's score, each against the turns after it.
// Only meaningful once HasFinished is true.
func (g *Game) Score() int {
	total := 0
	for i, t := range g.turns {
		total += t.Score(g.turns[i+1:])
	}
	return total
}

// State reports open, awaiting_bonus or finished.
func (g *Game) State() State {
	switch {
	case g.HasFinished():
		return StateFinished
	case len(g.turns) == MaxTurns && g.current().bonus:
		return StateAwaitingBonus
	default:
		return StateOpen
	}
}

// CurrentTurn returns the 1-based number of the open (or last) turn.
func (g *Game) CurrentTurn() int { return len(g.turns) }

// PinsStanding returns the pins up for the next throw, or 0 once finished.
func (g *Game) PinsStanding() int {
	if g.HasFinished() {
		return 0
	}
	return g.current().standing()
}

// Turns returns the turns played so far. The slice must not be modified.
func (g *Game) Turns() []*Turn { return g.turns }

// Throws flattens every recorded throw in order.
func (g *Game) Throws() []int {
	var out []int
	for _, t := range g.turns {
		out = append(out, t.throws...)
	}
	return out
}

// Count returns how many turns resolved to kind k.
func (g *Game) Count(k TurnKind) int {
	n := 0
	for _, t := range g.turns {
		if t.kind == k && len(t.throws) > 0 {
			n++
		}
	}
	return n
}

// StrikeThrows counts every throw that knocked down a full rack, so a
// perfect game has 12. Count(Strike) counts strike turns instead.
func (g *Game) StrikeThrows() int {
	n := 0
	for _, t := range g.turns {
		n += t.strikes()
	}
	return n
}

// Frames builds per-turn snapshots. Running totals stop at the first
// turn whose lookahead throws are not known yet.
func (g *Game) Frames() []Frame {
	out := make([]Frame, 0, len(g.turns))
	running, known := 0, true
	for i, t := range g.turns {
		if len(t.throws) == 0 {
			continue
		}
		next := g.turns[i+1:]
		f := Frame{
			Number:   i + 1,
			Throws:   t.Throws(),
			Kind:     t.kind,
			Score:    t.Score(next),
			Resolved: t.Resolved(next),
		}
		known = known && f.Resolved
		if known {
			running += f.Score
			total := running
			f.Total = &total
		}
		out = append(out, f)
	}
	return out
}

// ValidatePins checks a throw against the pins standing.
func ValidatePins(pins, standing int) error {
	if pins < 0 || pins > standing {
		return fmt.Errorf("%w: %d (0-%d standing)", ErrInvalidPins, pins, standing)
	}
	return nil
}

func (g *Game) current() *Turn { return g.turns[len(g.turns)-1] }
