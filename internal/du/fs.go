package du

import (
	"os"
	"strings"
)

// BlockSize is the size in bytes of the allocation unit all usage is reported in.
const BlockSize = 512

// Entry is the metadata of a single filesystem entry.
type Entry struct {
	// Blocks is the number of 512-byte blocks allocated to the entry.
	Blocks int64
	// IsDir reports whether the entry is a directory.
	IsDir bool
}

// FS is the filesystem surface the engines walk.
type FS interface {
	// Stat returns the metadata of path. Symbolic links are not followed.
	Stat(path string) (Entry, error)
	// ReadDir returns the names of the immediate children of the directory at path,
	// in directory order and without the "." and ".." entries.
	ReadDir(path string) ([]string, error)
}

// OS is the FS backed by the host filesystem.
type OS struct{}

// ReadDir lists the directory at path.
func (OS) ReadDir(path string) ([]string, error) {
	dir, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		return nil, err
	}

	return names, nil
}

// joinPath appends name to dir the way the paths are displayed to the user.
// Unlike filepath.Join it keeps dir verbatim, so "./a" stays "./a/name".
// Paths are not bounded by PATH_MAX here; the host rejects longer ones on access.
func joinPath(dir, name string) string {
	if strings.HasSuffix(dir, string(os.PathSeparator)) {
		return dir + name
	}

	return dir + string(os.PathSeparator) + name
}
