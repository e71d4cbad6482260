package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"basedef/internal/version"
)

// errHasDiagnostics is returned by commands whose output already reported
// errors; main only sets the exit status for it.
var errHasDiagnostics = errors.New("errors reported")

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "basedef",
		Short: "Generate ngBaseDef definitions for undecorated base classes",
		Long: `basedef scans TypeScript sources for classes that bind @Input/@Output
members without a @Component, @Directive or @NgModule annotation and emits the
ngBaseDef static definition for each of them.`,
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupRun,
	}

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	flags.Int("jobs", 0, "parallel workers (0 = GOMAXPROCS, overrides [compiler].jobs)")
	flags.String("core-module", "", "module trusted decorators come from (overrides [compiler].core_module)")
	flags.Bool("disk-cache", false, "reuse results from the on-disk cache")
	flags.String("trace", "", "write trace events to file ('-' for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")

	rootCmd.AddCommand(newCompileCmd())
	rootCmd.AddCommand(newDiagCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errHasDiagnostics) {
			fmt.Fprintln(os.Stderr, "basedef:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag for output written to w.
func useColor(cmd *cobra.Command, w any) (bool, error) {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return false, err
	}
	switch mode {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "auto", "":
		if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
			return false, nil
		}
		f, ok := w.(*os.File)
		return ok && isTerminal(f), nil
	}
	return false, fmt.Errorf("invalid --color value %q (must be auto, on or off)", mode)
}
