// Package driver finds assertion invocations in source files, instruments
// each of them with the capture rewriter and splices the results back.
package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"powerassert/internal/capture"
	"powerassert/internal/diag"
	"powerassert/internal/fix"
	"powerassert/internal/format"
	"powerassert/internal/parser"
	"powerassert/internal/source"
	"powerassert/internal/syntax"
	"powerassert/internal/trace"
)

// Options configures a driver run.
type Options struct {
	// Keyword is the macro name, without '#'.
	Keyword string
	// Capture configures the rewriter; StartColumnOffset, File and Reporter
	// are set per invocation.
	Capture capture.Options
	// Jobs bounds concurrent rewrites; 0 means GOMAXPROCS.
	Jobs           int
	MaxDiagnostics int
	Cache          *DiskCache   // может быть nil
	Progress       ProgressSink // может быть nil
	Tracer         trace.Tracer // может быть nil
}

func (o Options) jobs(n int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, n))
}

func (o Options) tracer() trace.Tracer {
	if o.Tracer == nil {
		return trace.Nop
	}
	return o.Tracer
}

// SiteResult is the outcome of rewriting one invocation.
type SiteResult struct {
	Line      uint32         `json:"line" msgpack:"line"`
	Column    int            `json:"column" msgpack:"column"`
	Offset    int            `json:"offset" msgpack:"offset"`
	Condition string         `json:"condition" msgpack:"condition"`
	Rewritten string         `json:"rewritten" msgpack:"rewritten"`
	Captures  []capture.Site `json:"captures" msgpack:"captures"`
	Source    string         `json:"source" msgpack:"source"`

	args source.Span
	// Args is the rewritten text between the parentheses.
	Args   string `json:"args" msgpack:"args"`
	Cached bool   `json:"cached,omitempty" msgpack:"-"`
}

// FileResult is the outcome of processing one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Sites  []SiteResult
	Output string
	Bag    *diag.Bag
}

// RewriteFile rewrites every invocation in f. Invocations are independent
// and are rewritten concurrently; the output keeps source order.
func RewriteFile(ctx context.Context, f *source.File, opts Options) (*FileResult, error) {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 100
	}
	tracer := opts.tracer()
	span := trace.Begin(tracer, trace.ScopePass, "rewrite_file", trace.ParentID(ctx)).
		WithExtra("path", f.Path)
	ctx = trace.WithParent(ctx, span)

	bag := diag.NewBag(opts.MaxDiagnostics)
	invs := FindInvocations(f, opts.Keyword, diag.BagReporter{Bag: bag})
	results := make([]SiteResult, len(invs))
	bags := make([]*diag.Bag, len(invs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(invs)))
	for i, inv := range invs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// индекс i уникален для горутины, мьютекс не нужен
			bags[i] = diag.NewBag(opts.MaxDiagnostics)
			res, err := rewriteSite(gctx, f, inv, opts, diag.BagReporter{Bag: bags[i]})
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	err := g.Wait()
	for _, b := range bags {
		if b != nil {
			bag.Merge(b)
		}
	}
	span.WithExtra("sites", fmt.Sprint(len(invs))).End("")
	if err != nil {
		return nil, err
	}

	output, err := splice(f.Content, results)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return &FileResult{
		Path:   f.Path,
		FileID: f.ID,
		Sites:  results,
		Output: string(f.Denormalize([]byte(output))),
		Bag:    bag,
	}, nil
}

// rewriteSite парсит аргументы вызова как отдельный виртуальный файл и
// переписывает первый аргумент.
func rewriteSite(ctx context.Context, f *source.File, inv Invocation, opts Options, reporter diag.Reporter) (SiteResult, error) {
	argSpan := inv.Args()
	inner := f.Content[argSpan.Start:argSpan.End]
	start := source.NewConverter(f).Position(inv.Hash.Start)
	lineStart := inv.Hash.Start - (start.Col - 1)
	line := lineBytes(f.Content, lineStart)
	offset := source.StartColumnOffset(line, 0, int(argSpan.Start-lineStart))
	column, _ := source.ColumnAt(f.Content, inv.Hash.Start)

	res := SiteResult{
		Line:   start.Line,
		Column: column,
		Offset: offset,
		Source: string(line),
		args:   argSpan,
	}

	span := trace.Begin(opts.tracer(), trace.ScopeSite, "site", trace.ParentID(ctx)).
		WithExtra("line", fmt.Sprint(start.Line))
	defer span.End("")

	key := cacheKey(inner, offset, opts)
	if opts.Cache != nil {
		var cached SiteResult
		ok, err := opts.Cache.Get(key, &cached)
		if err != nil {
			return res, fmt.Errorf("cache read: %w", err)
		}
		if ok {
			res.Condition, res.Rewritten, res.Captures, res.Args = cached.Condition, cached.Rewritten, cached.Captures, cached.Args
			res.Cached = true
			return res, nil
		}
	}

	// у каждой точки свой FileSet: FileSet не потокобезопасен
	fs := source.NewFileSet()
	vf := fs.Get(fs.AddVirtual(fmt.Sprintf("%s:%d", f.Path, start.Line), inner))
	// парсер при восстановлении может повторить ту же ошибку
	rep := diag.NewDedupReporter(&shiftReporter{next: reporter, file: f.ID, base: argSpan.Start})

	args, _ := parser.ParseArguments(vf, parser.Options{Reporter: rep})
	if args == nil || len(args.Args()) == 0 {
		diag.ReportError(reporter, diag.DrvMissingCondition, inv.Hash.Cover(inv.RParen), "assertion has no condition").Emit()
		res.Args = string(inner)
		return res, nil
	}
	first := args.Args()[0]
	cond := first.Value()

	copts := opts.Capture
	copts.StartColumnOffset = offset
	copts.File = vf.ID
	copts.Reporter = rep
	copts.Tracer = opts.tracer()
	rw := capture.New(vf.Content, copts)
	out := rw.Rewrite(cond)

	newArgs := args.Replace(func(c *syntax.Node) *syntax.Node {
		if c != first {
			return c
		}
		return c.Replace(func(x *syntax.Node) *syntax.Node {
			if x == cond {
				return out
			}
			return x
		})
	})

	res.Condition = syntax.Text(cond)
	res.Rewritten = syntax.Text(out)
	res.Captures = rw.Captures()
	res.Args = format.Print(newArgs)

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, &res); err != nil {
			return res, fmt.Errorf("cache write: %w", err)
		}
	}
	return res, nil
}

// splice заменяет аргументы каждого вызова переписанным текстом;
// результат в нормализованном виде (LF, без BOM)
func splice(content []byte, sites []SiteResult) (string, error) {
	edits := make([]fix.TextEdit, len(sites))
	for i, s := range sites {
		edits[i] = fix.TextEdit{Span: s.args, NewText: s.Args}
	}
	out, err := fix.Apply(content, edits)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func lineBytes(content []byte, start uint32) []byte {
	end := start
	for int(end) < len(content) && content[end] != '\n' {
		end++
	}
	return content[start:end]
}

// shiftReporter переносит спаны виртуального файла в исходный
type shiftReporter struct {
	next diag.Reporter
	file source.FileID
	base uint32
}

func (r *shiftReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	if r.next == nil {
		return
	}
	shifted := make([]diag.Note, len(notes))
	for i, n := range notes {
		shifted[i] = diag.Note{Span: r.shift(n.Span), Msg: n.Msg}
	}
	r.next.Report(code, sev, r.shift(primary), msg, shifted)
}

func (r *shiftReporter) shift(sp source.Span) source.Span {
	sp = sp.ShiftRight(r.base)
	sp.File = r.file
	return sp
}

// RewriteFiles loads paths into one FileSet and rewrites them in parallel.
// Load failures are reported in the file's bag rather than aborting the run.
func RewriteFiles(ctx context.Context, paths []string, opts Options) (*source.FileSet, []FileResult, error) {
	fileSet := source.NewFileSet()
	fileIDs := make(map[string]source.FileID, len(paths))
	loadErrors := make(map[string]error)
	for _, path := range paths {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	results := make([]FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			begin := time.Now()
			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(max(opts.MaxDiagnostics, 1))
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
				})
				results[i] = FileResult{Path: path, Bag: bag}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			emit(opts.Progress, Event{File: path, Stage: StageRewrite, Status: StatusWorking})
			res, err := RewriteFile(gctx, fileSet.Get(fileIDs[path]), opts)
			if err != nil {
				emit(opts.Progress, Event{File: path, Stage: StageRewrite, Status: StatusError, Err: err, Elapsed: time.Since(begin)})
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = *res
			status := StatusDone
			if res.Bag.HasErrors() {
				status = StatusError
			}
			emit(opts.Progress, Event{File: path, Stage: StageRewrite, Status: status, Sites: len(res.Sites), Elapsed: time.Since(begin)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
