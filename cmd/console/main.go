// Package main is the entry point for the console CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var flags runFlags
	root := &cobra.Command{
		Use:     "console",
		Short:   "Interactive command console with history and rich output",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.timestampsSet = cmd.Flags().Changed("timestamps")
			return runConsole(flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to console.toml (default: search upward from the working directory)")
	root.Flags().StringVar(&flags.url, "url", "", "send commands to this HTTP endpoint")
	root.Flags().StringVar(&flags.shell, "shell", "", "run commands locally through this shell instead of HTTP")
	root.Flags().BoolVar(&flags.timestamps, "timestamps", false, "prefix new messages with the time of day")

	root.AddCommand(
		initCmd(),
		serveCmd(&flags.configPath),
		historyCmd(&flags.configPath),
	)

	return root
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigs:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()
	return ctx, cancel
}
