package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"powerassert/internal/fold"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" || cfg.Keyword != "assert" || cfg.Capture.Callee != "capture" || !cfg.Capture.TypeSelf {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadConfigSearchesUpward(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, `
keyword = "#expect"
prefix_operators = ["√"]

[capture]
callee = "recorder.capture"
label = "col"
type_self = false

[driver]
jobs = 3
cache = true
cache_dir = ".cache"

[[operator]]
text = "<>"
like = "+"

[[operator]]
text = "**"
precedence = 155
assoc = "right"
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig("", nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != path {
		t.Errorf("path = %q, want %q", cfg.Path, path)
	}
	if cfg.Keyword != "expect" || cfg.Capture.Callee != "recorder.capture" || cfg.Capture.ColumnLabel != "col" || cfg.Capture.TypeSelf {
		t.Errorf("capture config = %+v", cfg)
	}
	if cfg.Jobs != 3 || !cfg.Cache || cfg.CacheDir != filepath.Join(root, ".cache") {
		t.Errorf("driver config: jobs=%d cache=%v dir=%q", cfg.Jobs, cfg.Cache, cfg.CacheDir)
	}

	table := cfg.Capture.Table
	plus, _ := table.Infix("+")
	if op, ok := table.Infix("<>"); !ok || op != plus {
		t.Errorf("<> = %+v, %v; want %+v", op, ok, plus)
	}
	if op, ok := table.Infix("**"); !ok || op.Precedence != 155 || op.Assoc != fold.AssocRight {
		t.Errorf("** = %+v, %v", op, ok)
	}
	if !table.IsPrefix("√") {
		t.Error("√ must be a prefix operator")
	}
	if table.Fingerprint() == fold.DefaultTable().Fingerprint() {
		t.Error("custom operators must change the fingerprint")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "keyword = ", "failed to parse TOML"},
		{"unknown key", "colour = true", "unknown keys: colour"},
		{"keyword", `keyword = "as sert"`, "invalid keyword"},
		{"jobs", "[driver]\njobs = -1", "driver.jobs"},
		{"no precedence", "[[operator]]\ntext = \"<>\"", "precedence or like"},
		{"unknown like", "[[operator]]\ntext = \"<>\"\nlike = \"@@\"", "unknown operator"},
		{"assoc", "[[operator]]\ntext = \"<>\"\nprecedence = 1\nassoc = \"up\"", "invalid associativity"},
		{"empty text", "[[operator]]\nprecedence = 1", "operator without text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := loadConfig(path, "")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}
}
