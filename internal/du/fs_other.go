//go:build !unix

package du

import "os"

// Stat lstats path. Hosts without a block count get the size rounded up to whole blocks.
func (OS) Stat(path string) (Entry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Blocks: (info.Size() + BlockSize - 1) / BlockSize,
		IsDir:  info.IsDir(),
	}, nil
}
