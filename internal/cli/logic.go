package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/idelchi/mdu/internal/du"
	"github.com/idelchi/mdu/internal/logger"
)

func logic(s settings, stdout, stderr io.Writer) error {
	log := logger.New(s.debug, stderr)
	defer log.Sync() //nolint:errcheck // Nothing to do about a failed flush

	diag := newDiagnostics(stderr)

	options := s.options
	options.Logger = log
	options.OnError = diag.cannotRead

	enableProgress := s.progress && !s.debug && logger.IsTerminal(stderr)

	ctx := context.Background()

	// Progress line, redrawn through diagnostics so it never interleaves with error lines
	var progressHook func(entries, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		progressHook = func(entries, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d entries, %s",
				entries, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			diag.status(msg)
		}
	}

	log.Debug("starting",
		zap.Strings("targets", options.Targets),
		zap.String("engine", string(options.Engine)),
		zap.Int("jobs", options.Jobs),
	)

	report, err := du.Run(ctx, options, func(r du.Result) error {
		if enableProgress {
			diag.status("")
		}

		return PrintResult(r, stdout)
	}, progressHook)

	// Clear the status line
	if enableProgress {
		diag.status("")
	}

	if err != nil {
		return err
	}

	log.Debug("done", zap.Duration("elapsed", report.Elapsed), zap.Bool("failed", report.Failed))

	if report.Failed {
		return du.ErrIncomplete
	}

	return nil
}
