//go:build unix

package diskusage

import (
	"golang.org/x/sys/unix"
)

// statPath stats path, following a final symlink only when follow is set.
//
//nolint:unconvert,gosec // Stat_t field widths differ between platforms
func statPath(path string, follow bool) (fileStat, error) {
	var (
		st  unix.Stat_t
		err error
	)

	if follow {
		err = unix.Stat(path, &st)
	} else {
		err = unix.Lstat(path, &st)
	}

	if err != nil {
		return fileStat{}, err
	}

	mode := uint32(st.Mode) & unix.S_IFMT

	return fileStat{
		dev:     uint64(st.Dev),
		ino:     uint64(st.Ino),
		blocks:  int64(st.Blocks),
		dir:     mode == unix.S_IFDIR,
		symlink: mode == unix.S_IFLNK,
	}, nil
}
