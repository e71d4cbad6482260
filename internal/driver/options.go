package driver

import (
	"runtime"

	"basedef/internal/cache"
	"basedef/internal/output"
)

// DefaultMaxDiagnostics caps each per-file bag when Options.MaxDiagnostics is 0.
const DefaultMaxDiagnostics = 100

// Options configures a Compile run.
type Options struct {
	Jobs           int    // 0 = GOMAXPROCS
	CoreModule     string // "" = @angular/core
	MaxDiagnostics int
	BaseDir        string // пути в диагностиках показываются относительно него
	DiskCache      *cache.DiskCache
	Memory         *cache.Memory
	Timings        bool
	Observer       PhaseObserver
}

func (o Options) withDefaults() Options {
	if o.Jobs <= 0 {
		o.Jobs = runtime.GOMAXPROCS(0)
	}
	if o.CoreModule == "" {
		o.CoreModule = output.DefaultCoreModule
	}
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = DefaultMaxDiagnostics
	}
	return o
}
