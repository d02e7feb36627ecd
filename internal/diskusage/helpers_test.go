//go:build unix

package diskusage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
)

// makeTree creates the given entries below root. Keys ending in "/" are
// directories, other keys are files with the given length of content.
func makeTree(t *testing.T, root string, entries map[string]int) {
	t.Helper()

	for rel, size := range entries {
		path := filepath.Join(root, filepath.FromSlash(rel))

		if strings.HasSuffix(rel, "/") {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatal(err)
			}

			continue
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}

		if err := os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// symlink creates a link at root/rel pointing to target, skipping the test
// where symlinks are unavailable.
func symlink(t *testing.T, root, target, rel string) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.Symlink(target, path); err != nil {
		t.Skip("symlink not supported")
	}

	return path
}

// blocksOf returns the allocation of path the way du reports it.
func blocksOf(t *testing.T, path string, follow bool) int64 {
	t.Helper()

	var (
		info os.FileInfo
		err  error
	)

	if follow {
		info, err = os.Stat(path)
	} else {
		info, err = os.Lstat(path)
	}

	if err != nil {
		t.Fatal(err)
	}

	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		t.Skip("no stat_t on this platform")
	}

	return int64(st.Blocks) * 512 //nolint:unconvert // Blocks is int32 on some platforms
}

// tempRoot returns a temp dir with symlinks resolved, so that paths reported
// by the engine compare equal to the ones built by the test.
func tempRoot(t *testing.T) string {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	return root
}
