package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hersh/startris/internal/logging"
	"github.com/hersh/startris/internal/tui"
	"github.com/spf13/cobra"
)

var (
	playName string
	playSeed int64
)

func init() {
	rootCmd.AddCommand(playCmd)
	addNameFlag(playCmd, &playName)
	playCmd.Flags().Int64Var(&playSeed, "seed", 0, "piece sequence seed (0 picks one from the clock)")
	rootCmd.Flags().StringVar(&playName, "name", "", "player name (defaults to OS username)")
}

var playCmd = &cobra.Command{
	Use:               "play",
	Short:             "play a local game",
	Args:              cobra.NoArgs,
	ValidArgsFunction: noFilesArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func addNameFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "name", "", "player name (defaults to OS username)")
}

func runPlay(cmd *cobra.Command) error {
	logFile, err := logging.Setup(cfg.Debug, cfg.LogDir)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	seed := cfg.Game.Seed
	if cmd.Flags().Changed("seed") {
		seed = playSeed
	}

	model := tui.NewModel(tui.Options{
		PlayerName: playerName(playName),
		Settings:   cfg.Settings(),
		Seed:       seed,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run game: %w", err)
	}

	printSummary(cmd.OutOrStdout(), model.Registry().All())
	return nil
}
