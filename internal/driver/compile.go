package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"basedef/internal/annotations"
	"basedef/internal/ast"
	"basedef/internal/diag"
	"basedef/internal/eval"
	"basedef/internal/observ"
	"basedef/internal/project"
	"basedef/internal/project/dag"
	"basedef/internal/reflection"
	"basedef/internal/source"
	"basedef/internal/trace"
	"basedef/internal/transform"
)

// parsedFile is the phase-1 output for one source.
type parsedFile struct {
	path string
	id   source.FileID
	file *ast.File
	bag  *diag.Bag
	hash project.Digest // с учётом транзитивных относительных импортов
}

type run struct {
	opts    Options
	timer   *observ.Timer
	fileSet *source.FileSet
}

// Compile discovers sources under roots, parses them, and generates base
// definitions for every class that qualifies.
//
// A non-nil error means the run itself failed (I/O, cancellation); problems
// in the sources are reported as diagnostics in the Result.
func Compile(ctx context.Context, roots []string, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	r := &run{opts: opts, timer: observ.NewTimer()}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "compile")
	defer span.End("")

	absRoots := make([]string, 0, len(roots))
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", root, err)
		}
		absRoots = append(absRoots, abs)
	}
	baseDir := opts.BaseDir
	if baseDir == "" && len(absRoots) == 1 {
		baseDir = absRoots[0]
	}
	r.fileSet = source.NewFileSet(baseDir)

	res := &Result{
		FileSet: r.fileSet,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
		Timer:   r.timer,
	}

	var paths []string
	err := r.runPhase(ctx, "discover", func(context.Context) error {
		var err error
		paths, err = ListSources(absRoots...)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.timer.Add("files", len(paths))
	if len(paths) == 0 {
		res.Bag.Add(diag.NewError(diag.ProjNoSources, source.Span{},
			"no .ts sources found under "+strings.Join(roots, ", ")))
		return res, nil
	}

	var parsed []*parsedFile
	err = r.runPhase(ctx, "parse", func(ctx context.Context) error {
		var err error
		parsed, err = r.parseAll(ctx, paths, res.Bag)
		return err
	})
	if err != nil {
		return nil, err
	}

	program := eval.NewProgram()
	for _, pf := range parsed {
		program.Add(pf.file)
	}
	hashFiles(parsed, program)

	host := reflection.NewHost(opts.CoreModule)
	handler := annotations.NewBaseDefHandler(host, eval.NewPartialEvaluator(program))
	comp := transform.NewCompilation(host, transform.Erase(handler))

	err = r.runPhase(ctx, "compile", func(ctx context.Context) error {
		var err error
		res.Files, err = r.compileAll(ctx, comp, parsed)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.timer.Add("classes", res.ClassCount())

	if opts.Timings {
		appendTimingDiagnostic(res.Bag, r.timer.Report())
	}
	span.WithExtra("files", strconv.Itoa(len(res.Files)))
	return res, nil
}

// hashFiles fills pf.hash from the content hash and the relative imports that
// resolve inside program.
func hashFiles(parsed []*parsedFile, program *eval.Program) {
	metas := make([]project.FileMeta, len(parsed))
	for i, pf := range parsed {
		f := pf.file
		meta := project.FileMeta{Path: f.Path, Span: f.Span, ContentHash: pf.hash}
		for _, imp := range f.Imports {
			if target, ok := program.ResolveImport(f.Path, imp.From); ok {
				meta.Imports = append(meta.Imports, project.ImportMeta{Path: target.Path, Span: imp.FromSpan})
			}
		}
		metas[i] = meta
	}
	dag.ComputeHashes(metas)
	for i, pf := range parsed {
		pf.hash = metas[i].Hash
	}
}

// IsCanceled reports whether err is a context cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
