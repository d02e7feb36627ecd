package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadPatternFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns")
	content := "# build output\n*.o\n\n  regex:^tmp/  \n#*.skip\nvendor\n"

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadPatternFile(path)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"*.o", "regex:^tmp/", "vendor"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadPatternFile() mismatch (-want +got):\n%s", diff)
	}

	if _, err := LoadPatternFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("LoadPatternFile(missing) succeeded, want error")
	}
}

func TestFindPatternFiles(t *testing.T) {
	home := t.TempDir()
	target := t.TempDir()
	t.Setenv("HOME", home)

	if got := FindPatternFiles(target, IgnoreFileName); len(got) != 0 {
		t.Errorf("FindPatternFiles() = %v, want none", got)
	}

	local := filepath.Join(target, IgnoreFileName)
	global := filepath.Join(home, IgnoreFileName)

	for _, path := range []string{local, global} {
		if err := os.WriteFile(path, []byte("*.tmp\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{local, global}
	if diff := cmp.Diff(want, FindPatternFiles(target, IgnoreFileName)); diff != "" {
		t.Errorf("FindPatternFiles() mismatch (-want +got):\n%s", diff)
	}

	// The home directory as target is only reported once.
	if got := FindPatternFiles(home, IgnoreFileName); len(got) != 1 {
		t.Errorf("FindPatternFiles(home) = %v, want one file", got)
	}
}

func TestCleanPatterns(t *testing.T) {
	got := cleanPatterns([]string{" a ,b", "", "c,,"})

	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("cleanPatterns() mismatch (-want +got):\n%s", diff)
	}
}
