package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/idelchi/mdu/internal/du"
)

// PrintResult writes one result as "<blocks>\t<path>".
func PrintResult(result du.Result, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "%d\t%s\n", result.Blocks, result.Path); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}

	return nil
}

// diagnostics serialises the lines written to stderr by concurrent workers.
type diagnostics struct {
	mu sync.Mutex
	w  io.Writer
}

func newDiagnostics(w io.Writer) *diagnostics {
	return &diagnostics{w: w}
}

// cannotRead reports a directory that could not be listed.
func (d *diagnostics) cannotRead(path string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fmt.Fprintf(d.w, "du: cannot read directory '%s': %s\n", path, reason(err))
}

// status redraws the in-place status line; an empty msg clears it.
func (d *diagnostics) status(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if msg == "" {
		fmt.Fprint(d.w, "\r\033[2K\r")

		return
	}

	fmt.Fprintf(d.w, "\r\033[2K%s\r", msg)
}

// reason strips the operation and path from err, leaving the system reason.
func reason(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}

	return err.Error()
}
