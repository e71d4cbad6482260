package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"basedef/internal/project"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path|name]",
		Short: "Initialize a new basedef project",
		Long: `Initialize a new basedef project by creating a project manifest
(basedef.toml) and an empty src directory. If [path|name] is omitted,
initializes the current directory. A non-existing directory is created.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

// runInit writes basedef.toml into the target directory. It refuses to
// overwrite an existing manifest.
func runInit(cmd *cobra.Command, args []string) error {
	defer finishRun(cmd)

	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "basedef-project"
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	cfg := project.DefaultConfig(name)
	var buf bytes.Buffer
	buf.WriteString("# basedef project manifest\n")
	if err := project.WriteConfig(&buf, cfg); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	srcDir := filepath.Join(target, filepath.FromSlash(cfg.Compiler.Sources[0]))
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %q: %w", srcDir, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized basedef project in %s\n", target)
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	fmt.Fprintf(out, "  - %s/\n", cfg.Compiler.Sources[0])
	return nil
}
