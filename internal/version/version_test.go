package version

import (
	"strings"
	"testing"
)

func TestVersionDefault(t *testing.T) {
	if Version == "" {
		t.Fatal("Version should have a default value")
	}
}

func TestColored(t *testing.T) {
	tests := []struct {
		in         string
		wantSuffix string
	}{
		{"0.1.0-dev", "-dev"},
		{"1.2.3", "3\x1b[0m"},
		{"1.2.3-rc.1+build.123", "-rc.1+build.123"},
	}
	for _, tt := range tests {
		got := Colored(tt.in)
		if !strings.Contains(got, "\x1b[") {
			t.Fatalf("Colored(%q) = %q, expected ANSI escapes", tt.in, got)
		}
		if !strings.HasSuffix(got, tt.wantSuffix) {
			t.Fatalf("Colored(%q) = %q, want suffix %q", tt.in, got, tt.wantSuffix)
		}
	}
	if got := Colored("nightly"); got != "nightly" {
		t.Fatalf("non-semver version must be left alone, got %q", got)
	}
}

func TestDescribe(t *testing.T) {
	origVersion, origCommit, origMessage, origDate := Version, GitCommit, GitMessage, BuildDate
	t.Cleanup(func() {
		Version, GitCommit, GitMessage, BuildDate = origVersion, origCommit, origMessage, origDate
	})

	Version = "1.2.3"
	GitCommit, GitMessage, BuildDate = "", "", ""
	if got := Describe(false); got != "cstlint 1.2.3\n" {
		t.Fatalf("Describe = %q", got)
	}

	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"
	want := "cstlint 1.2.3\ncommit: abc123def456\nbuilt: 2024-01-15T10:30:00Z\n"
	if got := Describe(false); got != want {
		t.Fatalf("Describe = %q, want %q", got, want)
	}
}
