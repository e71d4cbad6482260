package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"basedef/internal/diag"
	"basedef/internal/diagfmt"
	"basedef/internal/driver"
)

func newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [path]",
		Short: "Print generated ngBaseDef definitions",
		Long: `compile reads the TypeScript sources under [path] (a directory or a single
file; defaults to the [compiler].sources of basedef.toml) and prints one
"Class.ngBaseDef = ...;" line per generated definition. Diagnostics go to
stderr; the exit status is 1 when any error was reported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompile,
	}
	cmd.Flags().String("format", "", "output format (text|json), default from [output].format")
	cmd.Flags().Bool("with-imports", false, "text format: group output per file with its import statements")
	cmd.Flags().String("path-mode", "auto", "paths in output (auto|absolute|relative|basename)")
	cmd.Flags().Bool("notes", true, "show diagnostic notes")
	cmd.Flags().Int("context", 0, "source lines shown above each diagnostic")
	return cmd
}

type compileFieldJSON struct {
	Name        string `json:"name"`
	Initializer string `json:"initializer"`
	Type        string `json:"type"`
}

type compileClassJSON struct {
	Name   string             `json:"name"`
	Fields []compileFieldJSON `json:"fields"`
}

type compileFileJSON struct {
	Path    string             `json:"path"`
	Cached  bool               `json:"cached,omitempty"`
	Imports []string           `json:"imports,omitempty"`
	Classes []compileClassJSON `json:"classes"`
}

type compileOutputJSON struct {
	Files       []compileFileJSON          `json:"files"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
}

func runCompile(cmd *cobra.Command, args []string) error {
	defer finishRun(cmd)

	s, err := resolveSettings(cmd, args)
	var merr *manifestError
	if errors.As(err, &merr) {
		bag, fs := manifestFailure(merr)
		if werr := writeDiagnostics(cmd, cmd.ErrOrStderr(), "pretty", bag, fs); werr != nil {
			return werr
		}
		return errHasDiagnostics
	}
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format == "" {
		format = s.format
	}
	if format == "" {
		format = "text"
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be text or json)", format)
	}

	res, err := driver.Compile(cmd.Context(), s.roots, s.opts)
	if err != nil {
		return err
	}
	bag := res.Diagnostics()

	if format == "json" {
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
		out := compileOutputJSON{
			Files: compileFiles(res),
			Diagnostics: diagfmt.BuildDiagnosticsOutput(bag, res.FileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				PathMode:         pathMode,
				IncludeNotes:     showNotes,
			}),
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		withImports, err := cmd.Flags().GetBool("with-imports")
		if err != nil {
			return err
		}
		writeCompileText(cmd.OutOrStdout(), res, withImports)
		// в текстовом режиме тайминги печатаются сводкой, а не заметкой с JSON
		bag.Filter(func(d diag.Diagnostic) bool { return d.Code != diag.ObsTimings })
		if bag.Len() > 0 {
			if err := writeDiagnostics(cmd, cmd.ErrOrStderr(), "pretty", bag, res.FileSet); err != nil {
				return err
			}
		}
		if s.opts.Timings {
			fmt.Fprint(cmd.ErrOrStderr(), res.Timer.Summary())
		}
	}

	if bag.HasErrors() {
		return errHasDiagnostics
	}
	return nil
}

func compileFiles(res *driver.Result) []compileFileJSON {
	files := make([]compileFileJSON, 0, len(res.Files))
	for _, f := range res.Files {
		if len(f.Classes) == 0 {
			continue
		}
		fj := compileFileJSON{
			Path:    res.FileSet.DisplayPath(f.FileID),
			Cached:  f.Cached,
			Imports: f.Imports,
		}
		for _, cls := range f.Classes {
			cj := compileClassJSON{Name: cls.Name}
			for _, fld := range cls.Fields {
				cj.Fields = append(cj.Fields, compileFieldJSON(fld))
			}
			fj.Classes = append(fj.Classes, cj)
		}
		files = append(files, fj)
	}
	return files
}

func writeCompileText(w io.Writer, res *driver.Result, withImports bool) {
	if !withImports {
		for _, line := range res.Lines() {
			fmt.Fprintln(w, line)
		}
		return
	}
	first := true
	for _, f := range res.Files {
		if len(f.Classes) == 0 {
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false
		fmt.Fprintf(w, "// %s\n", res.FileSet.DisplayPath(f.FileID))
		for _, imp := range f.Imports {
			fmt.Fprintln(w, imp)
		}
		for _, cls := range f.Classes {
			for _, fld := range cls.Fields {
				fmt.Fprintf(w, "%s.%s = %s;\n", cls.Name, fld.Name, fld.Initializer)
			}
		}
	}
}
