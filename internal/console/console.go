// Package console is the terminal front end for a game: it prompts for
// throws, checks them against the pins standing and prints frame status.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/bowling/internal/game"
)

// ErrInputClosed is returned by Play when input ends before the game does.
var ErrInputClosed = errors.New("input closed before the game finished")

// Play reads one pin count per line from in until g finishes and returns the final score.
// Bad lines are reported on out and asked again.
func Play(in io.Reader, out io.Writer, g *game.Game) (int, error) {
	sc := bufio.NewScanner(in)
	for !g.HasFinished() {
		turn := g.CurrentTurn()
		throw := len(g.Turns()[turn-1].Throws()) + 1
		standing := g.PinsStanding()

		fmt.Fprintf(out, "Turn %d, throw %d (0-%d): ", turn, throw, standing)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return g.Score(), err
			}
			return g.Score(), ErrInputClosed
		}

		pins, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
		if err != nil {
			fmt.Fprintf(out, "please enter a number between 0 and %d\n", standing)
			continue
		}
		if err := game.ValidatePins(pins, standing); err != nil {
			fmt.Fprintf(out, "please enter a number between 0 and %d\n", standing)
			continue
		}
		before := g.State()
		if err := g.AddTry(pins); err != nil {
			return g.Score(), err
		}
		log.Debug().Int("turn", turn).Int("pins", pins).Str("state", string(g.State())).Msg("throw")

		switch {
		case g.CurrentTurn() != turn || g.HasFinished():
			frames := g.Frames()
			fmt.Fprintln(out, StatusLine(frames[len(frames)-1]))
		case before != game.StateAwaitingBonus && g.State() == game.StateAwaitingBonus:
			frames := g.Frames()
			fmt.Fprintln(out, StatusLine(frames[len(frames)-1]))
			fmt.Fprintln(out, "bonus throws earned")
		}
	}

	fmt.Fprintln(out)
	if err := WriteFrames(out, g.Frames()); err != nil {
		return g.Score(), err
	}
	fmt.Fprintf(out, "Final score: %d\n", g.Score())
	return g.Score(), nil
}

// StatusLine summarizes a frame after its last throw.
func StatusLine(f game.Frame) string {
	total := "pending"
	if f.Total != nil {
		total = strconv.Itoa(*f.Total)
	}
	return fmt.Sprintf("Turn %d: %s (%s), total %s", f.Number, Notation(f.Throws), f.Kind, total)
}

// WriteFrames prints a frame table.
func WriteFrames(w io.Writer, frames []game.Frame) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TURN\tTHROWS\tKIND\tSCORE\tTOTAL")
	for _, f := range frames {
		total := "-"
		if f.Total != nil {
			total = strconv.Itoa(*f.Total)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", f.Number, Notation(f.Throws), f.Kind, f.Score, total)
	}
	return tw.Flush()
}

// Notation renders throws the way a score sheet does: X strike, / spare, - miss.
func Notation(throws []int) string {
	marks := make([]string, 0, len(throws))
	down, n := 0, 0
	for _, p := range throws {
		switch {
		case n == 0 && p == game.Pins:
			marks = append(marks, "X")
		case n == 1 && down+p == game.Pins:
			marks = append(marks, "/")
		case p == 0:
			marks = append(marks, "-")
		default:
			marks = append(marks, strconv.Itoa(p))
		}
		down += p
		n++
		if down >= game.Pins || n == 2 {
			down, n = 0, 0
		}
	}
	return strings.Join(marks, " ")
}
