package ui

import (
	"strings"
	"testing"

	"powerassert/internal/driver"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("rewrite", []string{"a.swift", "b.swift"}, events).(*progressModel)

	m.Update(eventMsg{File: "a.swift", Stage: driver.StageRewrite, Status: driver.StatusWorking})
	if m.items[0].status != "rewriting" {
		t.Fatalf("status = %q", m.items[0].status)
	}
	m.Update(eventMsg{File: "a.swift", Stage: driver.StageRewrite, Status: driver.StatusDone, Sites: 3})
	m.Update(eventMsg{File: "b.swift", Stage: driver.StageLoad, Status: driver.StatusError})
	m.Update(eventMsg{File: "unknown.swift", Status: driver.StatusDone, Sites: 7})

	if m.items[0].status != "done" || m.items[1].status != "error" {
		t.Errorf("statuses = %q, %q", m.items[0].status, m.items[1].status)
	}
	if m.sites != 3 {
		t.Errorf("sites = %d, want 3", m.sites)
	}

	m.Update(doneMsg{})
	view := m.View()
	for _, want := range []string{"done: rewrite (3 assertions)", "a.swift", "b.swift"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("a/very/long/path.swift", 10); got != "a/very/..." {
		t.Errorf("truncate = %q", got)
	}
}
