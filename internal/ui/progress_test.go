package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"cstlint/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan driver.FileEvent)
	m := NewProgressModel("lint src", []string{"a.js", "b.jsx", "c.ts"}, events).(*progressModel)

	steps := []driver.FileEvent{
		{Path: "a.js", Status: driver.FileStarted},
		{Path: "a.js", Status: driver.FileDone, Diagnostics: 2},
		{Path: "b.jsx", Status: driver.FileDone, Cached: true},
		{Path: "c.ts", Status: driver.FileDone, Err: errors.New("boom")},
		{Path: "c.ts", Status: driver.FileDone, Err: errors.New("boom")},
		{Path: "unknown.js", Status: driver.FileDone, Diagnostics: 9},
	}
	for _, ev := range steps {
		m.Update(eventMsg(ev))
	}

	if m.finished != 3 || m.problems != 2 {
		t.Fatalf("finished=%d problems=%d, want 3 and 2", m.finished, m.problems)
	}
	want := []string{"2 problems", "cached", "error"}
	for i, item := range m.items {
		if item.status != want[i] {
			t.Fatalf("item %d status = %q, want %q", i, item.status, want[i])
		}
	}

	m.Update(doneMsg{})
	view := m.View()
	if !strings.Contains(view, "done: lint src (3/3 files, 2 problems)") {
		t.Fatalf("unexpected header:\n%s", view)
	}
}

func TestProgressModelResize(t *testing.T) {
	m := NewProgressModel("lint", []string{strings.Repeat("d/", 40) + "file.js"}, nil).(*progressModel)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if m.width != 40 || m.prog.Width != 36 {
		t.Fatalf("width=%d prog=%d", m.width, m.prog.Width)
	}
	if !strings.Contains(m.View(), "...") {
		t.Fatalf("long path should be truncated:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.js", 20, "short.js"},
		{"averyveryverylongname.js", 10, "averyve..."},
		{"abcdef", 2, "ab"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
