package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/marquee/internal/app"
)

// NewRootCmd creates the root command. Without a subcommand it starts the TUI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marquee",
		Short: "Browse movie showtimes from eiga.com in the terminal",
		Long: `marquee collects the schedules of the configured eiga.com theater pages
and shows them in a terminal UI, browsable by theater or by title.

Schedules are cached in memory and refreshed in the background once the
cache TTL expires. Press r in the UI to refresh immediately.`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRootCmd,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "config file path (default $XDG_CONFIG_HOME/marquee/config.toml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.Flags().String("prefs", "", "UI preferences file path (default $XDG_CONFIG_HOME/marquee/prefs.toml)")
	cmd.Flags().String("log-file", "", "log file path (default $XDG_STATE_HOME/marquee/marquee.log)")

	cmd.AddCommand(NewDumpCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func runRootCmd(cmd *cobra.Command, _ []string) error {
	opts := app.Options{}
	var err error
	if opts.ConfigPath, err = cmd.Flags().GetString("config"); err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if opts.PrefsPath, err = cmd.Flags().GetString("prefs"); err != nil {
		return fmt.Errorf("failed to get prefs flag: %w", err)
	}
	if opts.LogPath, err = cmd.Flags().GetString("log-file"); err != nil {
		return fmt.Errorf("failed to get log-file flag: %w", err)
	}
	if opts.Verbose, err = cmd.Flags().GetBool("verbose"); err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}

	return app.Run(cmd.Context(), opts)
}

// Execute runs the root command until it finishes or a signal arrives.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "marquee: %v\n", err)
		os.Exit(1)
	}
}
