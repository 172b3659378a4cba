package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"powerassert/internal/driver"
	"powerassert/internal/fix"
	"powerassert/internal/source"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [flags] [file...]",
	Short: "Instrument assertion conditions with capture calls",
	Long: `Rewrite finds #assert(...) invocations in the given files and wraps every
meaningful subexpression of their conditions in a capture call that records
the value and its display column. With --expr a single expression is
rewritten instead.`,
	RunE: runRewrite,
}

func init() {
	rewriteCmd.Flags().StringP("expr", "e", "", "rewrite a single expression instead of files")
	rewriteCmd.Flags().Int("column-offset", 0, "start column offset added to every column of --expr")
	rewriteCmd.Flags().String("format", "source", "output format (source|json|msgpack)")
	rewriteCmd.Flags().BoolP("write", "w", false, "write rewritten sources back to their files")
	rewriteCmd.Flags().Bool("cache", false, "reuse rewrites from the disk cache")
	rewriteCmd.Flags().Bool("clear-cache", false, "drop the disk cache before running")
	rewriteCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

func runRewrite(cmd *cobra.Command, args []string) error {
	expr, err := cmd.Flags().GetString("expr")
	if err != nil {
		return fmt.Errorf("failed to get expr flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(strings.TrimSpace(format))
	var enc driver.Encoding
	if format != "source" {
		if enc, err = driver.ParseEncoding(format); err != nil {
			return err
		}
	}

	endConfig := timings.Track("config")
	cfg, err := configFromFlags(cmd)
	endConfig(cfg.pathNote())
	if err != nil {
		return err
	}
	opts, err := cfg.driverOptions(cmd)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("expr") {
		if len(args) > 0 {
			return fmt.Errorf("--expr cannot be combined with files")
		}
		offset, err := cmd.Flags().GetInt("column-offset")
		if err != nil {
			return fmt.Errorf("failed to get column-offset flag: %w", err)
		}
		opts.Capture.StartColumnOffset = offset
		return rewriteExpression(cmd, expr, opts, enc)
	}
	if len(args) == 0 {
		return fmt.Errorf("no input: pass files or --expr")
	}
	return rewriteFiles(cmd, args, cfg, opts, enc)
}

func rewriteExpression(cmd *cobra.Command, expr string, opts driver.Options, enc driver.Encoding) error {
	endRewrite := timings.Track("rewrite")
	res, err := driver.RewriteExpr(expr, opts)
	endRewrite(fmt.Sprintf("%d captures", len(res.Captures)))
	if diagErr := printDiagnostics(cmd, res.Bag, res.FileSet); diagErr != nil {
		return diagErr
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if enc == "" {
		_, err := fmt.Fprintln(out, res.Text)
		return err
	}
	site := driver.SiteResult{
		Line:      1,
		Offset:    opts.Capture.StartColumnOffset,
		Condition: expr,
		Rewritten: res.Text,
		Captures:  res.Captures,
		Source:    expr,
		Args:      res.Text,
	}
	rep := &driver.Report{Files: []driver.FileReport{{Path: res.File.Path, Sites: []driver.SiteResult{site}}}}
	return driver.Encode(out, rep, enc)
}

func rewriteFiles(cmd *cobra.Command, paths []string, cfg *config, opts driver.Options, enc driver.Encoding) error {
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	if write && enc != "" {
		return fmt.Errorf("--write requires --format=source")
	}

	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if useCache || clearCache || cfg.Cache {
		cache, err := driver.OpenDiskCache("powerassert", cfg.CacheDir)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
		}
		if useCache || cfg.Cache {
			opts.Cache = cache
		}
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	var (
		fs      *source.FileSet
		results []driver.FileResult
	)
	endRewrite := timings.Track("rewrite")
	if shouldUseTUI(mode, len(paths), !write) {
		fs, results, err = runRewriteWithUI(cmd.Context(), "rewriting", paths, opts)
	} else {
		fs, results, err = driver.RewriteFiles(cmd.Context(), paths, opts)
	}
	endRewrite(fmt.Sprintf("%d files", len(paths)))
	if err != nil {
		return fmt.Errorf("rewrite failed: %w", err)
	}
	defer timings.Track("output")("")

	failed, sites := 0, 0
	for _, res := range results {
		sites += len(res.Sites)
		if res.Bag != nil && res.Bag.HasErrors() {
			failed++
		}
		if _, loaded := fs.GetLatest(res.Path); !loaded {
			for _, d := range res.Bag.Items() {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s %s: %s\n", res.Path, d.Severity, d.Code.ID(), d.Message)
			}
			continue
		}
		if err := printDiagnostics(cmd, res.Bag, fs); err != nil {
			return err
		}
	}

	switch {
	case enc != "":
		if err := driver.Encode(cmd.OutOrStdout(), driver.NewReport(fs, results), enc); err != nil {
			return err
		}
	case write:
		for _, res := range results {
			if len(res.Sites) == 0 || res.Bag.HasErrors() {
				continue
			}
			if err := fix.WriteFile(res.Path, []byte(res.Output)); err != nil {
				return err
			}
		}
	default:
		printSources(cmd.OutOrStdout(), results)
	}

	if err := status(cmd, "rewrote %d assertion(s) in %d file(s)", sites, len(results)-failed); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

func printSources(w io.Writer, results []driver.FileResult) {
	printed := 0
	for _, res := range results {
		if res.Bag != nil && res.Bag.HasErrors() && res.Output == "" {
			continue
		}
		if len(results) > 1 {
			if printed > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "==> %s <==\n", res.Path)
		}
		io.WriteString(w, res.Output)
		printed++
	}
}

