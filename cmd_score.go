package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/robalobadob/bowling/internal/console"
	"github.com/robalobadob/bowling/internal/game"
)

var scoreJSON bool

var scoreCmd = &cobra.Command{
	Use:   "score <pins>...",
	Short: "Score a list of throws",
	Example: `  bowling score 10 10 10 10 10 10 10 10 10 10 10 10
  bowling score --json 7 3 4 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := scoreThrows(args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if scoreJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"state":  g.State(),
				"score":  g.Score(),
				"frames": g.Frames(),
			})
		}
		if err := console.WriteFrames(out, g.Frames()); err != nil {
			return err
		}
		if !g.HasFinished() {
			fmt.Fprintf(out, "Score so far: %d (game not finished)\n", g.Score())
			return nil
		}
		fmt.Fprintf(out, "Final score: %d\n", g.Score())
		return nil
	},
}

func init() {
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "print frames as JSON")
}

// scoreThrows parses and applies args, rejecting counts the lane could not produce.
func scoreThrows(args []string) (*game.Game, error) {
	g := game.New()
	for i, a := range args {
		pins, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("throw %d: %q is not a number", i+1, a)
		}
		if err := game.ValidatePins(pins, g.PinsStanding()); err != nil {
			if g.HasFinished() {
				return nil, fmt.Errorf("throw %d: %w", i+1, game.ErrGameHasFinished)
			}
			return nil, fmt.Errorf("throw %d: %w", i+1, err)
		}
		if err := g.AddTry(pins); err != nil {
			return nil, fmt.Errorf("throw %d: %w", i+1, err)
		}
	}
	return g, nil
}
