package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/hersh/startris/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "address to listen on (default from config, :8080)")
}

var serveCmd = &cobra.Command{
	Use:               "serve",
	Short:             "host games over WebSocket",
	Args:              cobra.NoArgs,
	ValidArgsFunction: noFilesArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		emph := color.New(color.FgCyan, color.Bold).SprintFunc()
		fmt.Fprintf(cmd.OutOrStdout(), "Serving startris on %s, players connect with %s\n",
			emph(addr), emph("startris connect --server ws://<host>"+portOf(addr)+"/ws"))

		srv := server.New(
			server.WithSettings(cfg.Settings()),
			server.WithSeed(cfg.Game.Seed),
		)
		return srv.Run(ctx, addr)
	},
}

// portOf returns the ":port" suffix of a listen address.
func portOf(addr string) string {
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		return addr[i:]
	}
	return ""
}
