package diskusage

// blockUnit is the size in bytes of the unit block counts are reported in.
const blockUnit = 512

// fileStat is the part of one stat call the engine needs.
type fileStat struct {
	dev     uint64
	ino     uint64
	blocks  int64
	dir     bool
	symlink bool
}

// Probe returns the disk space allocated to path itself, in bytes. For a
// directory this is only the directory's own blocks, not its contents.
// Symlinks are measured with lstat unless follow is set, in which case the
// link target is measured. Failures are returned as *AccessError.
func Probe(path string, follow bool) (int64, error) {
	st, err := statPath(path, follow)
	if err != nil {
		return 0, &AccessError{Path: path, Err: err}
	}

	return st.blocks * blockUnit, nil
}
