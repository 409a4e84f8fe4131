//go:build unix

package du

import (
	"io/fs"

	"golang.org/x/sys/unix"
)

// Stat lstats path and reports the blocks the host allocated to it.
func (OS) Stat(path string) (Entry, error) {
	var st unix.Stat_t

	for {
		err := unix.Lstat(path, &st)
		if err == unix.EINTR {
			continue
		}

		if err != nil {
			return Entry{}, &fs.PathError{Op: "lstat", Path: path, Err: err}
		}

		break
	}

	return Entry{
		Blocks: int64(st.Blocks), //nolint:unconvert // Blkcnt_t differs across platforms
		IsDir:  st.Mode&unix.S_IFMT == unix.S_IFDIR,
	}, nil
}
