package project

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"basedef/internal/output"
)

var (
	// ErrPackageSectionMissing indicates that [package] is missing.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing or blank.
	ErrPackageNameMissing = errors.New("missing [package].name")
	// ErrSourcesMissing indicates that [compiler].sources is missing or empty.
	ErrSourcesMissing = errors.New("missing [compiler].sources")
)

// Manifest is a loaded basedef.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package  PackageConfig  `toml:"package"`
	Compiler CompilerConfig `toml:"compiler"`
	Output   OutputConfig   `toml:"output"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type CompilerConfig struct {
	CoreModule string   `toml:"core_module"`
	Sources    []string `toml:"sources"`
	Jobs       int      `toml:"jobs"`
}

type OutputConfig struct {
	Format string `toml:"format"` // text | json
}

// DefaultConfig returns the configuration `basedef init` writes.
func DefaultConfig(name string) Config {
	return Config{
		Package:  PackageConfig{Name: name},
		Compiler: CompilerConfig{CoreModule: output.DefaultCoreModule, Sources: []string{"src"}},
		Output:   OutputConfig{Format: "text"},
	}
}

// LoadManifest finds and loads the manifest above startDir. ok is false when
// there is none.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes and validates one manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := validate(meta, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig is LoadConfig over an in-memory document.
func DecodeConfig(doc string) (Config, error) {
	var cfg Config
	meta, err := toml.Decode(doc, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if err := validate(meta, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate checks required keys and fills defaults for optional ones.
func validate(meta toml.MetaData, cfg *Config) error {
	if !meta.IsDefined("package") {
		return ErrPackageSectionMissing
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return ErrPackageNameMissing
	}
	if !meta.IsDefined("compiler", "sources") || len(cfg.Compiler.Sources) == 0 {
		return ErrSourcesMissing
	}
	for i, src := range cfg.Compiler.Sources {
		if strings.TrimSpace(src) == "" {
			return fmt.Errorf("[compiler].sources[%d] is empty", i)
		}
	}
	if !meta.IsDefined("compiler", "core_module") {
		cfg.Compiler.CoreModule = output.DefaultCoreModule
	} else if strings.TrimSpace(cfg.Compiler.CoreModule) == "" {
		return errors.New("[compiler].core_module is empty")
	}
	if cfg.Compiler.Jobs < 0 {
		return fmt.Errorf("[compiler].jobs must be >= 0, got %d", cfg.Compiler.Jobs)
	}
	switch cfg.Output.Format {
	case "":
		cfg.Output.Format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("[output].format must be text or json, got %q", cfg.Output.Format)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %s", undecoded[0])
	}
	return nil
}

// SourceDirs returns the configured source roots as absolute paths.
func (m *Manifest) SourceDirs() []string {
	out := make([]string, 0, len(m.Config.Compiler.Sources))
	for _, src := range m.Config.Compiler.Sources {
		out = append(out, filepath.Join(m.Root, filepath.FromSlash(src)))
	}
	return out
}

// WriteConfig encodes cfg as TOML.
func WriteConfig(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}
