package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"basedef/internal/diag"
	"basedef/internal/diagfmt"
	"basedef/internal/driver"
	"basedef/internal/source"
)

func newDiagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [path]",
		Short: "Report diagnostics without printing generated code",
		Long: `diag compiles the sources under [path] (or the [compiler].sources of
basedef.toml) and prints only diagnostics. It exits with status 1 when any
error was reported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDiag,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().String("path-mode", "auto", "paths in output (auto|absolute|relative|basename)")
	cmd.Flags().Bool("notes", true, "show diagnostic notes")
	cmd.Flags().Int("context", 0, "source lines shown above each diagnostic")
	return cmd
}

func runDiag(cmd *cobra.Command, args []string) error {
	defer finishRun(cmd)

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	bag, fs, err := compileForDiagnostics(cmd, args)
	if err != nil {
		return err
	}
	if err := writeDiagnostics(cmd, cmd.OutOrStdout(), format, bag, fs); err != nil {
		return err
	}
	if bag.HasErrors() {
		return errHasDiagnostics
	}
	return nil
}

func compileForDiagnostics(cmd *cobra.Command, args []string) (*diag.Bag, *source.FileSet, error) {
	s, err := resolveSettings(cmd, args)
	var merr *manifestError
	if errors.As(err, &merr) {
		bag, fs := manifestFailure(merr)
		return bag, fs, nil
	}
	if err != nil {
		return nil, nil, err
	}
	res, err := driver.Compile(cmd.Context(), s.roots, s.opts)
	if err != nil {
		return nil, nil, err
	}
	return res.Diagnostics(), res.FileSet, nil
}

// writeDiagnostics prints bag in the diag command's formats.
func writeDiagnostics(cmd *cobra.Command, w io.Writer, format string, bag *diag.Bag, fs *source.FileSet) error {
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return err
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeStr)
	if !ok {
		return fmt.Errorf("invalid --path-mode %q", pathModeStr)
	}
	showNotes, err := cmd.Flags().GetBool("notes")
	if err != nil {
		return err
	}

	if format == "json" {
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     showNotes,
		})
	}

	context, err := cmd.Flags().GetInt("context")
	if err != nil {
		return err
	}
	color, err := useColor(cmd, w)
	if err != nil {
		return err
	}
	diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:     color,
		Context:   int8(min(max(context, 0), 10)), //nolint:gosec // clamped
		PathMode:  pathMode,
		ShowNotes: showNotes,
		Summary:   true,
	})
	return nil
}
