package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hersh/startris/internal/logging"
	"github.com/hersh/startris/internal/netclient"
	"github.com/hersh/startris/internal/tui"
	"github.com/spf13/cobra"
)

const dialTimeout = 5 * time.Second

var (
	connectServer string
	connectName   string
)

func init() {
	rootCmd.AddCommand(connectCmd)
	connectCmd.Flags().StringVar(&connectServer, "server", "", "WebSocket server address (default from config, ws://localhost:8080/ws)")
	addNameFlag(connectCmd, &connectName)
}

var connectCmd = &cobra.Command{
	Use:               "connect",
	Short:             "play on a startris server",
	Args:              cobra.NoArgs,
	ValidArgsFunction: noFilesArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		logFile, err := logging.Setup(cfg.Debug, cfg.LogDir)
		if err != nil {
			return err
		}
		if logFile != nil {
			defer logFile.Close()
		}

		url := cfg.Client.ServerURL
		if connectServer != "" {
			url = connectServer
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), dialTimeout)
		client, err := netclient.Dial(ctx, url)
		cancel()
		if err != nil {
			return fmt.Errorf("connect to server: %w (is `startris serve` running?)", err)
		}
		defer client.Close()

		model := tui.NewModel(tui.Options{
			PlayerName: playerName(connectName),
			Client:     client,
		})

		p := tea.NewProgram(model, tea.WithAltScreen())

		// Wire the program into the client so readPump can send tea.Msgs
		client.SetProgram(p)
		client.Start()

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run game: %w", err)
		}

		printSummary(cmd.OutOrStdout(), model.Registry().All())
		return nil
	},
}
