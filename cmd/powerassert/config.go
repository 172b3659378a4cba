package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"powerassert/internal/capture"
	"powerassert/internal/driver"
	"powerassert/internal/fold"
	"powerassert/internal/trace"
)

const configFileName = "powerassert.toml"

// fileConfig is the on-disk layout of powerassert.toml:
//
//	keyword = "assert"
//
//	[capture]
//	callee = "recorder.capture"
//	label = "column"
//	type_self = true
//
//	[driver]
//	jobs = 4
//	cache = true
//
//	[[operator]]
//	text = "<>"
//	like = "+"
type fileConfig struct {
	Keyword   string           `toml:"keyword"`
	Capture   captureConfig    `toml:"capture"`
	Driver    driverConfig     `toml:"driver"`
	Operators []operatorConfig `toml:"operator"`
	Prefix    []string         `toml:"prefix_operators"`
}

type captureConfig struct {
	Callee   string `toml:"callee"`
	Label    string `toml:"label"`
	TypeSelf *bool  `toml:"type_self"`
}

type driverConfig struct {
	Jobs     int    `toml:"jobs"`
	Cache    bool   `toml:"cache"`
	CacheDir string `toml:"cache_dir"`
}

type operatorConfig struct {
	Text       string `toml:"text"`
	Precedence int    `toml:"precedence"`
	Like       string `toml:"like"`
	Assoc      string `toml:"assoc"`
}

// config is the resolved configuration, defaults applied.
type config struct {
	Path     string // пусто, если файл не найден
	Keyword  string
	Capture  capture.Options
	Jobs     int
	Cache    bool
	CacheDir string
}

func defaultConfig() *config {
	opts := capture.DefaultOptions()
	opts.Table = fold.DefaultTable()
	return &config{Keyword: "assert", Capture: opts}
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig reads path, or searches upward from startDir when path is empty.
// A missing file yields the defaults.
func loadConfig(path, startDir string) (*config, error) {
	if path == "" {
		found, ok, err := findConfig(startDir)
		if err != nil {
			return nil, err
		}
		if !ok {
			return defaultConfig(), nil
		}
		path = found
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg, err := raw.resolve()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	if cfg.CacheDir != "" && !filepath.IsAbs(cfg.CacheDir) {
		cfg.CacheDir = filepath.Join(filepath.Dir(path), cfg.CacheDir)
	}
	return cfg, nil
}

func (raw fileConfig) resolve() (*config, error) {
	cfg := defaultConfig()
	if kw := strings.TrimPrefix(strings.TrimSpace(raw.Keyword), "#"); kw != "" {
		if strings.ContainsAny(kw, " \t()#") {
			return nil, fmt.Errorf("invalid keyword %q", raw.Keyword)
		}
		cfg.Keyword = kw
	}
	if raw.Capture.Callee != "" {
		cfg.Capture.Callee = strings.TrimSpace(raw.Capture.Callee)
	}
	if raw.Capture.Label != "" {
		cfg.Capture.ColumnLabel = strings.TrimSpace(raw.Capture.Label)
	}
	if raw.Capture.TypeSelf != nil {
		cfg.Capture.TypeSelf = *raw.Capture.TypeSelf
	}
	if raw.Driver.Jobs < 0 {
		return nil, fmt.Errorf("driver.jobs must be >= 0, got %d", raw.Driver.Jobs)
	}
	cfg.Jobs = raw.Driver.Jobs
	cfg.Cache = raw.Driver.Cache
	cfg.CacheDir = raw.Driver.CacheDir

	table := cfg.Capture.Table
	for _, op := range raw.Operators {
		text := strings.TrimSpace(op.Text)
		if text == "" {
			return nil, errors.New("operator without text")
		}
		def := fold.Operator{Precedence: op.Precedence}
		if op.Like != "" {
			like, ok := table.Infix(op.Like)
			if !ok {
				return nil, fmt.Errorf("operator %q: unknown operator %q in like", text, op.Like)
			}
			def = like
		} else if op.Precedence <= 0 {
			return nil, fmt.Errorf("operator %q: precedence or like is required", text)
		}
		if op.Assoc != "" || op.Like == "" {
			assoc, err := fold.ParseAssoc(op.Assoc)
			if err != nil {
				return nil, fmt.Errorf("operator %q: %w", text, err)
			}
			def.Assoc = assoc
		}
		table.Define(text, def)
	}
	for _, p := range raw.Prefix {
		if p = strings.TrimSpace(p); p != "" {
			table.DefinePrefix(p)
		}
	}
	return cfg, nil
}

func (c *config) pathNote() string {
	if c == nil || c.Path == "" {
		return "defaults"
	}
	return c.Path
}

// configFromFlags loads the configuration named by --config.
func configFromFlags(cmd *cobra.Command) (*config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	return loadConfig(path, ".")
}

// driverOptions merges cfg with global flags.
func (c *config) driverOptions(cmd *cobra.Command) (driver.Options, error) {
	flags := cmd.Root().PersistentFlags()
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !flags.Changed("jobs") {
		jobs = c.Jobs
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return driver.Options{
		Keyword:        c.Keyword,
		Capture:        c.Capture,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		Tracer:         trace.FromContext(cmd.Context()),
	}, nil
}
