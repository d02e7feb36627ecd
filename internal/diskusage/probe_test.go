//go:build unix

package diskusage

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestProbe_directoryOwnBlocksOnly(t *testing.T) {
	root := tempRoot(t)
	makeTree(t, root, map[string]int{"dir/big": 256 * 1024})

	dir := filepath.Join(root, "dir")

	got, err := Probe(dir, false)
	if err != nil {
		t.Fatal(err)
	}

	if want := blocksOf(t, dir, false); got != want {
		t.Errorf("Probe(dir) = %d, want own blocks %d", got, want)
	}

	file, err := Probe(filepath.Join(dir, "big"), false)
	if err != nil {
		t.Fatal(err)
	}

	if file < 256*1024 {
		t.Errorf("Probe(big) = %d, want at least %d", file, 256*1024)
	}
}

func TestProbe_symlinkMeasuresLinkUnlessFollowing(t *testing.T) {
	root := tempRoot(t)
	makeTree(t, root, map[string]int{"target": 64 * 1024})
	link := symlink(t, root, "target", "link")

	own, err := Probe(link, false)
	if err != nil {
		t.Fatal(err)
	}

	if want := blocksOf(t, link, false); own != want {
		t.Errorf("Probe(link, false) = %d, want %d", own, want)
	}

	followed, err := Probe(link, true)
	if err != nil {
		t.Fatal(err)
	}

	if want := blocksOf(t, filepath.Join(root, "target"), false); followed != want {
		t.Errorf("Probe(link, true) = %d, want target blocks %d", followed, want)
	}
}

func TestProbe_missingEntry(t *testing.T) {
	path := filepath.Join(tempRoot(t), "gone")

	_, err := Probe(path, false)
	if !errors.Is(err, ErrAccess) {
		t.Fatalf("Probe(missing) error = %v, want ErrAccess", err)
	}

	var accessErr *AccessError
	if !errors.As(err, &accessErr) || accessErr.Path != path {
		t.Errorf("Probe(missing) error = %#v, want AccessError for %s", err, path)
	}
}
