package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"basedef/internal/cache"
	"basedef/internal/diag"
	"basedef/internal/driver"
	"basedef/internal/project"
	"basedef/internal/source"
)

// settings is the merged view of basedef.toml and command-line flags.
type settings struct {
	roots    []string
	opts     driver.Options
	format   string // "" когда формат не задан ни флагом, ни манифестом
	manifest *project.Manifest
}

// resolveSettings loads the manifest above the target (or the working
// directory) and applies flag overrides. Flags win over the manifest.
func resolveSettings(cmd *cobra.Command, args []string) (*settings, error) {
	start := "."
	if len(args) > 0 {
		start = args[0]
	}
	manifest, _, err := project.LoadManifest(start)
	if err != nil {
		return nil, &manifestError{err: err}
	}

	s := &settings{manifest: manifest}
	switch {
	case len(args) > 0:
		s.roots = []string{args[0]}
	case manifest != nil:
		s.roots = manifest.SourceDirs()
	default:
		s.roots = []string{"."}
	}
	if manifest != nil {
		cfg := manifest.Config
		s.opts.CoreModule = cfg.Compiler.CoreModule
		s.opts.Jobs = cfg.Compiler.Jobs
		s.opts.BaseDir = manifest.Root
		s.format = cfg.Output.Format
	} else if abs, err := filepath.Abs(start); err == nil {
		s.opts.BaseDir = abs
		if len(args) > 0 && driver.IsSourceFile(abs) {
			s.opts.BaseDir = filepath.Dir(abs)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("jobs") {
		if s.opts.Jobs, err = flags.GetInt("jobs"); err != nil {
			return nil, err
		}
		if s.opts.Jobs < 0 {
			return nil, fmt.Errorf("--jobs must be >= 0, got %d", s.opts.Jobs)
		}
	}
	if flags.Changed("core-module") {
		if s.opts.CoreModule, err = flags.GetString("core-module"); err != nil {
			return nil, err
		}
	}
	if s.opts.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return nil, err
	}
	if s.opts.Timings, err = flags.GetBool("timings"); err != nil {
		return nil, err
	}
	useDisk, err := flags.GetBool("disk-cache")
	if err != nil {
		return nil, err
	}
	if useDisk {
		if s.opts.DiskCache, err = cache.OpenDiskCache("basedef"); err != nil {
			return nil, fmt.Errorf("open disk cache: %w", err)
		}
	}
	return s, nil
}

type manifestError struct {
	err error
}

func (e *manifestError) Error() string { return e.err.Error() }
func (e *manifestError) Unwrap() error { return e.err }

// manifestFailure turns a manifest error into a run-level diagnostic so it
// shows up in the selected output format.
func manifestFailure(err *manifestError) (*diag.Bag, *source.FileSet) {
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.ProjInvalidManifest, source.Span{}, err.Error()))
	return bag, source.NewFileSet("")
}
