// internal/game/types.go
//
// Core type definitions for the bowling scoring engine.
// Defines:
//   - TurnKind: how a turn is classified (normal, spare, strike).
//   - Turn: the throws recorded for one frame.
//   - Game: ten turns plus the bonus throws of the last one.
//   - Frame: a read-only per-turn view used by the CLI and HTTP layers.

package game

import (
	"errors"
	"fmt"
)

const (
	// Pins is the number of pins racked at the start of every turn.
	Pins = 10
	// MaxTurns is how many turns make up a game.
	MaxTurns = 10
)

var (
	// ErrTurnHasFinished is returned by Turn.AddTry once the turn accepts no more throws.
	ErrTurnHasFinished = errors.New("turn has finished")
	// ErrGameHasFinished is returned by Game.AddTry once the game is over.
	ErrGameHasFinished = errors.New("game has finished")
	// ErrInvalidPins is returned by ValidatePins for counts a lane cannot produce.
	ErrInvalidPins = errors.New("invalid pin count")
)

// TurnKind classifies a turn. The zero value is Normal.
type TurnKind int

const (
	Normal TurnKind = iota
	Spare
	Strike
)

// rule holds the constants attached to each TurnKind.
type rule struct {
	triesNeeded    int // throws inside the classification window
	bonusTries     int // extra throws granted on the last turn
	lookaheadTries int // following throws counted toward this turn
	bonusPoints    int // flat points added on top of the lookahead
}

var rules = [...]rule{
	Normal: {triesNeeded: 2},
	Spare:  {triesNeeded: 2, bonusTries: 1, lookaheadTries: 1, bonusPoints: Pins},
	Strike: {triesNeeded: 1, bonusTries: 2, lookaheadTries: 2, bonusPoints: Pins},
}

// String returns the lowercase kind name used in JSON and CLI output.
func (k TurnKind) String() string {
	switch k {
	case Spare:
		return "spare"
	case Strike:
		return "strike"
	default:
		return "normal"
	}
}

// MarshalText lets TurnKind encode as its name.
func (k TurnKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText parses a name produced by MarshalText.
func (k *TurnKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "normal":
		*k = Normal
	case "spare":
		*k = Spare
	case "strike":
		*k = Strike
	default:
		return fmt.Errorf("unknown turn kind %q", b)
	}
	return nil
}

// Turn holds the throws of a single frame and its resolved classification.
// A Turn is owned by exactly one Game.
type Turn struct {
	throws []int
	kind   TurnKind
	bonus  bool // set only on the last turn once it is a spare or strike
}

// State is a coarse string representation of a game's progress.
type State string

const (
	StateOpen          State = "open"
	StateAwaitingBonus State = "awaiting_bonus"
	StateFinished      State = "finished"
)

// Game holds the state of a single bowling game.
type Game struct {
	ID    string  // Unique game identifier (UUID).
	turns []*Turn // Played turns, the last one is the open turn.
}

// Frame is a snapshot of one turn for display.
type Frame struct {
	Number   int      `json:"number"`          // 1-based turn number
	Throws   []int    `json:"throws"`          // pins per throw, bonus throws included
	Kind     TurnKind `json:"kind"`            // normal | spare | strike
	Score    int      `json:"score"`           // this turn's score with the lookahead known so far
	Total    *int     `json:"total,omitempty"` // running total, nil until every frame up to here is resolved
	Resolved bool     `json:"resolved"`        // all lookahead throws are known
}
