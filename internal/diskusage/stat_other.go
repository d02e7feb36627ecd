//go:build !unix

package diskusage

import (
	"os"
)

// fallbackBlock is the allocation granularity assumed where the platform
// does not report block counts.
const fallbackBlock = 4096

// statPath approximates block usage from the logical size. Device and inode
// numbers are not available, so loop detection and one-filesystem checks see
// every entry on device 0.
func statPath(path string, follow bool) (fileStat, error) {
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
		return fileStat{}, err
	}

	allocated := (info.Size() + fallbackBlock - 1) / fallbackBlock * fallbackBlock

	return fileStat{
		blocks:  allocated / blockUnit,
		dir:     info.IsDir(),
		symlink: info.Mode()&os.ModeSymlink != 0,
	}, nil
}
