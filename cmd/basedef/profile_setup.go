package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"basedef/internal/prof"
)

type profKey struct{}

// setupRun runs before every command: tracing first, then profilers.
func setupRun(cmd *cobra.Command, args []string) error {
	if err := setupTracing(cmd, args); err != nil {
		return err
	}
	return setupProfiling(cmd)
}

// setupProfiling starts the profilers named by --cpu-profile, --mem-profile
// and --runtime-trace and keeps the session in the command context.
func setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Flags()
	var cfg prof.Config
	var err error
	if cfg.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !cfg.Enabled() {
		return nil
	}
	session, err := prof.Start(cfg)
	if err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}
	cmd.SetContext(context.WithValue(cmd.Context(), profKey{}, session))
	return nil
}

// finishRun stops profilers and flushes the tracer. Commands defer it:
// cobra skips post-run hooks when RunE fails.
func finishRun(cmd *cobra.Command) {
	if session, ok := cmd.Context().Value(profKey{}).(*prof.Session); ok {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}
	closeTracing(cmd)
}
