package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/LISSConsulting/LISSTech.Console/internal/config"
	"github.com/LISSConsulting/LISSTech.Console/internal/executor"
	"github.com/LISSConsulting/LISSTech.Console/internal/history"
	"github.com/LISSConsulting/LISSTech.Console/internal/logger"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a default console.toml in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			path, err := config.InitFile(dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
}

func serveCmd(configPath *string) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the shell executor over HTTP (POST /execute)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(runFlags{configPath: *configPath})
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			logger.Configure()
			logger.SetOutput(cmd.ErrOrStderr())
			if err := logger.SetLevel(cfg.Log.Level); err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()
			return serve(ctx, cfg, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides [server].addr)")
	return cmd
}

// serve runs the executor HTTP server until ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config, out io.Writer) error {
	timeout := time.Duration(cfg.Executor.TimeoutSeconds) * time.Second
	shell := executor.NewShell(cfg.Executor.Shell, cfg.Executor.Dir, timeout)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           executor.NewHandler(shell),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Named("server").Warnf("shutdown: %v", err)
		}
	}()

	fmt.Fprintf(out, "Listening on %s (shell %s)\n", cfg.Server.Addr, cfg.Executor.Shell)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func historyCmd(configPath *string) *cobra.Command {
	var (
		clearFile bool
		limit     int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print or clear the persisted command history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(runFlags{configPath: *configPath})
			if err != nil {
				return err
			}
			return showHistory(cmd.OutOrStdout(), cfg.History.File, limit, clearFile)
		},
	}
	cmd.Flags().BoolVar(&clearFile, "clear", false, "truncate the history file")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the newest n commands (0 = all)")
	return cmd
}

// showHistory prints the commands stored at path, numbered oldest first, or
// truncates the file when clearFile is set.
func showHistory(out io.Writer, path string, limit int, clearFile bool) error {
	if path == "" {
		return errors.New("history: no history file configured ([history].file is empty)")
	}

	if clearFile {
		f, err := history.OpenFile(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := f.Clear(); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared %s\n", path)
		return nil
	}

	cmds, err := history.ReadCommands(path, limit)
	if err != nil {
		return err
	}
	if len(cmds) == 0 {
		fmt.Fprintln(out, "No history yet.")
		return nil
	}
	for i, c := range cmds {
		fmt.Fprintf(out, "%5d  %s\n", i+1, c)
	}
	return nil
}
