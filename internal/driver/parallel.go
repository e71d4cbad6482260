package driver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"basedef/internal/cache"
	"basedef/internal/diag"
	"basedef/internal/output"
	"basedef/internal/parser"
	"basedef/internal/project"
	"basedef/internal/source"
	"basedef/internal/trace"
	"basedef/internal/transform"
)

// parseAll загружает файлы последовательно (FileSet выдаёт ID по порядку),
// затем парсит их параллельно. Unreadable files are reported in runBag and
// left out.
func (r *run) parseAll(ctx context.Context, paths []string, runBag *diag.Bag) ([]*parsedFile, error) {
	loaded := make([]*parsedFile, 0, len(paths))
	for _, path := range paths {
		id, err := r.fileSet.Load(path)
		if err != nil {
			runBag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+err.Error()))
			continue
		}
		f := r.fileSet.Get(id)
		loaded = append(loaded, &parsedFile{path: f.Path, id: id, hash: project.Digest(f.Hash)})
	}
	if len(loaded) == 0 {
		return nil, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(r.opts.Jobs, len(loaded)))
	for _, pf := range loaded {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			_, span := trace.Start(gctx, trace.ScopeFile, "parse:"+r.fileSet.DisplayPath(pf.id))
			pf.bag = diag.NewBag(r.opts.MaxDiagnostics)
			pf.file = parser.ParseFile(r.fileSet.Get(pf.id), parser.Options{
				MaxErrors: uint(r.opts.MaxDiagnostics),
				Reporter:  diag.BagReporter{Bag: pf.bag},
			})
			// спекулятивный разбор стрелочных функций может лексить повторно
			pf.bag.Dedup()
			span.End("")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return loaded, nil
}

// compileAll runs the compilation per file in parallel. Results keep the
// order of parsed, which is sorted by path.
func (r *run) compileAll(ctx context.Context, comp *transform.Compilation, parsed []*parsedFile) ([]FileResult, error) {
	results := make([]FileResult, len(parsed))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(r.opts.Jobs, len(parsed)))
	for i, pf := range parsed {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// индекс i уникален для горутины, мьютекс не нужен
			results[i] = r.compileFile(gctx, comp, pf)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *run) compileFile(ctx context.Context, comp *transform.Compilation, pf *parsedFile) FileResult {
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file:"+r.fileSet.DisplayPath(pf.id))
	res := FileResult{Path: pf.path, FileID: pf.id, Bag: diag.NewBag(r.opts.MaxDiagnostics)}
	res.Bag.Merge(pf.bag)

	key := cache.Key(r.opts.CoreModule, pf.hash)
	var diags []diag.Diagnostic
	payload, hit := r.lookup(pf, key, res.Bag)
	if hit {
		r.timer.Add("cache_hits", 1)
		diags = cache.DecodeDiagnostics(pf.id, payload.Diagnostics)
	} else {
		payload, diags = r.compileFresh(ctx, comp, pf)
		if enc, ok := cache.EncodeDiagnostics(pf.id, diags); ok {
			payload.Diagnostics = enc
			r.store(pf, key, payload, res.Bag)
		}
	}

	res.Cached = hit
	res.Imports = payload.Imports
	for _, cls := range payload.Classes {
		out := ClassOutput{
			Name: cls.Name,
			Span: source.Span{File: pf.id, Start: cls.Start, End: cls.End},
		}
		for _, f := range cls.Fields {
			out.Fields = append(out.Fields, Field(f))
		}
		res.Classes = append(res.Classes, out)
	}
	for _, d := range diags {
		res.Bag.Add(d)
	}
	res.Bag.Dedup()
	res.Bag.Sort()

	if hit {
		span.End("cached")
	} else {
		span.End("")
	}
	return res
}

// compileFresh runs the handlers and prints their output into a payload.
// Diagnostics are returned separately; the caller decides whether they can
// be cached.
func (r *run) compileFresh(ctx context.Context, comp *transform.Compilation, pf *parsedFile) (*cache.Payload, []diag.Diagnostic) {
	bag := diag.NewBag(r.opts.MaxDiagnostics)
	classes := comp.CompileFile(ctx, pf.file, diag.BagReporter{Bag: bag})

	printer := output.NewPrinter()
	payload := &cache.Payload{Schema: cache.SchemaVersion, Path: pf.path, Hash: pf.hash}
	for _, cls := range classes {
		cp := cache.ClassPayload{Name: cls.Name, Start: cls.Span.Start, End: cls.Span.End}
		for _, f := range cls.Fields {
			cp.Fields = append(cp.Fields, cache.FieldPayload{
				Name:        f.Name,
				Initializer: printer.Expr(f.Initializer),
				Type:        printer.Type(f.Type),
			})
		}
		payload.Classes = append(payload.Classes, cp)
	}
	payload.Imports = printer.ImportStatements()
	return payload, bag.Items()
}

func (r *run) lookup(pf *parsedFile, key project.Digest, bag *diag.Bag) (*cache.Payload, bool) {
	if p, ok := r.opts.Memory.Get(pf.path, key); ok {
		return p, true
	}
	if r.opts.DiskCache == nil {
		return nil, false
	}
	var p cache.Payload
	ok, err := r.opts.DiskCache.Get(key, &p)
	if err != nil {
		bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: pf.id},
			fmt.Sprintf("disk cache read failed: %v", err)))
		return nil, false
	}
	if !ok || !p.Valid(pf.hash) {
		return nil, false
	}
	r.opts.Memory.Put(key, &p)
	return &p, true
}

func (r *run) store(pf *parsedFile, key project.Digest, p *cache.Payload, bag *diag.Bag) {
	r.opts.Memory.Put(key, p)
	if r.opts.DiskCache == nil {
		return
	}
	if err := r.opts.DiskCache.Put(key, p); err != nil {
		bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: pf.id},
			fmt.Sprintf("disk cache write failed: %v", err)))
	}
}
