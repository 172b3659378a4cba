package prof_test

import (
	"os"
	"path/filepath"
	"testing"

	"powerassert/internal/prof"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	opts := prof.Options{
		CPU:   filepath.Join(dir, "cpu.out"),
		Mem:   filepath.Join(dir, "mem.out"),
		Trace: filepath.Join(dir, "trace.out"),
	}
	if !opts.Enabled() {
		t.Fatal("options must be enabled")
	}
	s, err := prof.Start(opts)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	for _, p := range []string{opts.CPU, opts.Mem, opts.Trace} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing %s: %v", filepath.Base(p), err)
		}
	}
}

func TestStartFailsOnBadPath(t *testing.T) {
	dir := t.TempDir()
	_, err := prof.Start(prof.Options{
		CPU:   filepath.Join(dir, "first.out"),
		Trace: filepath.Join(dir, "missing", "trace.out"),
	})
	if err == nil {
		t.Fatal("expected error for unwritable trace path")
	}
	// CPU profiler must be free again after a failed start
	s, err := prof.Start(prof.Options{CPU: filepath.Join(dir, "cpu.out")})
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	_ = s.Stop()
}

func TestDisabledSession(t *testing.T) {
	if (prof.Options{}).Enabled() {
		t.Fatal("empty options must be disabled")
	}
	s, err := prof.Start(prof.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
}
