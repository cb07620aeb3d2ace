package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/bowling/internal/console"
	"github.com/robalobadob/bowling/internal/game"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal, one throw per line",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := console.Play(cmd.InOrStdin(), cmd.OutOrStdout(), game.New())
		if errors.Is(err, console.ErrInputClosed) {
			fmt.Fprintln(cmd.ErrOrStderr(), "\ngame abandoned")
			return nil
		}
		return err
	},
}
