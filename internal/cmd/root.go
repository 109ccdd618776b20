package cmd

import (
	"os/user"

	"github.com/hersh/startris/internal/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
	debugFlag  bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "startris",
	Short:         "falling blocks in the terminal",
	Long:          "Startris is a falling-block puzzle game for the terminal.\n\nRun without a subcommand to play locally.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if debugFlag {
			loaded.Debug = true
		}
		cfg = loaded
		return nil
	},
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a settings.json file (default "+config.Dir()+"/settings.json)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write a debug log")
}

// Execute runs the command line and returns the first error.
func Execute() error {
	return rootCmd.Execute()
}

// playerName picks the flag value, then the configured name, then the OS user.
func playerName(flag string) string {
	if flag != "" {
		return flag
	}
	if cfg != nil && cfg.Client.PlayerName != "" {
		return cfg.Client.PlayerName
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "Player"
}

func noFilesArg(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{}, cobra.ShellCompDirectiveNoFileComp
}
