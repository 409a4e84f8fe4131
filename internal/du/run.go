package du

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// Engine selects how directory targets are walked.
type Engine string

const (
	// EngineSequential walks each directory recursively on one goroutine.
	EngineSequential Engine = "sequential"
	// EngineParallel walks each directory with a pool of Options.Jobs workers.
	EngineParallel Engine = "parallel"
	// EngineFastwalk walks each directory with fastwalk.
	EngineFastwalk Engine = "fastwalk"
)

// Engines lists the valid engines.
//
//nolint:gochecknoglobals // Config constant
var Engines = []Engine{EngineSequential, EngineParallel, EngineFastwalk}

// Options configures a disk usage run.
type Options struct {
	// Targets are the paths to measure, reported in this order.
	Targets []string
	// Engine is the traversal engine for directory targets (empty = sequential).
	Engine Engine
	// Jobs is the number of workers of the parallel and fastwalk engines.
	// The parallel engine runs at least one.
	Jobs int
	// FS is the filesystem to measure (nil = OS).
	FS FS
	// Logger receives debug events (nil = no logging).
	Logger *zap.Logger
	// OnError is called for every directory that could not be read.
	// It may be called from several goroutines at once.
	OnError func(path string, err error)
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
}

// Result is the usage of one target.
type Result struct {
	// Path is the target as given.
	Path string
	// Blocks is the number of 512-byte blocks allocated to the target and,
	// for a directory, to everything below it.
	Blocks int64
}

// Report holds the results of a run.
type Report struct {
	// Results has one entry per target, in target order.
	Results []Result
	// Failed is set when some directory could not be read.
	Failed bool
	// Elapsed is the total time taken.
	Elapsed time.Duration
}

// Run measures every target of opt in order and passes each result to emit as
// soon as it is known.
//
// A target or an entry that cannot be stat'ed ends the run with an error; the
// targets after it are not measured. A directory that cannot be read is passed
// to opt.OnError, left out of the total, and sets Report.Failed.
//
// Progress updates are sent to progressHook if provided until Run returns.
func Run(ctx context.Context, opt Options, emit func(Result) error, progressHook func(int64, int64)) (*Report, error) {
	if opt.Engine == "" {
		opt.Engine = EngineSequential
	}

	if !slices.Contains(Engines, opt.Engine) {
		return nil, fmt.Errorf("unknown engine %q", opt.Engine)
	}

	s := newScanner(opt.FS, opt.Logger, opt.OnError)

	// Stop the progress reporter and wait for its last tick before returning.
	ctx, cancel := context.WithCancel(ctx)
	done := startProgressReporter(ctx, s.progress, progressHook, opt.ProgressInterval)

	defer func() {
		cancel()
		<-done
	}()

	report := &Report{Results: make([]Result, 0, len(opt.Targets))}
	start := time.Now()

	for _, target := range opt.Targets {
		result, failed, err := s.measure(target, opt.Engine, opt.Jobs)
		if err != nil {
			return nil, err
		}

		report.Failed = report.Failed || failed
		report.Results = append(report.Results, result)

		if emit != nil {
			if err := emit(result); err != nil {
				return nil, err
			}
		}
	}

	report.Elapsed = time.Since(start)

	return report, nil
}

// measure stats target and, if it is a directory, walks it with engine.
func (s *scanner) measure(target string, engine Engine, jobs int) (Result, bool, error) {
	entry, err := s.fsys.Stat(target)
	if err != nil {
		return Result{}, false, fmt.Errorf("cannot access %q: %w", target, err)
	}

	result := Result{Path: target, Blocks: entry.Blocks}

	if !entry.IsDir {
		s.log.Debug("file target", zap.String("path", target), zap.Int64("blocks", entry.Blocks))

		return result, false, nil
	}

	var usage Usage

	switch engine {
	case EngineParallel:
		usage, err = s.parallel(target, jobs)
	case EngineFastwalk:
		usage, err = s.walkFast(target, jobs)
	default:
		usage, err = s.sequential(target)
	}

	if err != nil {
		return Result{}, false, err
	}

	result.Blocks += usage.Blocks

	s.log.Debug("directory target",
		zap.String("path", target),
		zap.String("engine", string(engine)),
		zap.Int64("blocks", result.Blocks),
		zap.String("size", humanize.IBytes(uint64(result.Blocks*BlockSize))), //nolint:gosec // Blocks are never negative
		zap.Bool("failed", usage.Failed),
	)

	return result, usage.Failed, nil
}
