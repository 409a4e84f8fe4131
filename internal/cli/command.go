package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idelchi/mdu/internal/config"
	"github.com/idelchi/mdu/internal/du"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// flags holds the raw flag values before they are merged with the config file.
type flags struct {
	jobs       int
	engine     string
	configPath string
	debug      bool
	progress   bool
}

// register adds the flags to set.
func (f *flags) register(set *pflag.FlagSet) {
	set.IntVarP(&f.jobs, "jobs", "j", 0, "Walk directories with N parallel workers (0 is treated as 1)")
	set.StringVarP(&f.engine, "engine", "e", config.EngineAuto,
		fmt.Sprintf("Traversal engine: %s or one of %v", config.EngineAuto, du.Engines))
	set.StringVarP(&f.configPath, "config", "c", "", "Config file (default $"+config.EnvVar+")")
	set.BoolVar(&f.debug, "debug", false, "Enable debug output")
	set.BoolVar(&f.progress, "progress", false, "Show a progress line while scanning (terminal only)")

	set.SortFlags = false
}

// settings are the resolved options of one invocation.
type settings struct {
	options  du.Options
	debug    bool
	progress bool
}

// resolve merges the config file with the flags that were set explicitly.
func (f *flags) resolve(set *pflag.FlagSet, targets []string) (settings, error) {
	cfg, err := config.Load(config.Locate(f.configPath))
	if err != nil {
		return settings{}, err
	}

	if set.Changed("engine") {
		cfg.Engine = f.engine
	}

	if set.Changed("jobs") {
		cfg.Jobs = &f.jobs
	}

	if set.Changed("debug") {
		cfg.Debug = f.debug
	}

	if set.Changed("progress") {
		cfg.Progress = f.progress
	}

	if err := cfg.Validate(); err != nil {
		return settings{}, err
	}

	options := du.Options{
		Targets:          targets,
		Engine:           du.Engine(cfg.Engine),
		ProgressInterval: cfg.ProgressInterval,
	}

	if cfg.Jobs != nil {
		options.Jobs = *cfg.Jobs
	}

	switch {
	case cfg.Engine != config.EngineAuto:
		if cfg.Jobs == nil {
			options.Jobs = defaultJobs()
		}
	case cfg.Jobs != nil:
		options.Engine = du.EngineParallel
	default:
		options.Engine = du.EngineSequential
	}

	if len(options.Targets) == 0 {
		options.Targets = []string{"."}
	}

	return settings{options: options, debug: cfg.Debug, progress: cfg.Progress}, nil
}

// defaultJobs is the worker count used when an engine is forced without -j.
func defaultJobs() int {
	return min(runtime.GOMAXPROCS(0), runtime.NumCPU())
}

// command builds the root command writing to stdout and stderr.
func (c CLI) command(stdout, stderr io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "mdu [flags] [path ...]",
		Short: "Report the disk blocks used by files and directory trees",
		Long: heredoc.Doc(`
			mdu reports, for every path given, the number of 512-byte blocks it
			occupies on disk followed by a tab and the path. Directories are counted
			with everything below them. Symbolic links are not followed.

			Without -j each directory is walked by a single goroutine. With -j N the
			walk is shared by N workers; -j 0 runs one worker.

			Unreadable directories are reported on stderr and left out of the totals;
			the exit status is then 1.
		`),
		Example: heredoc.Doc(`
			mdu .
			mdu -j 8 /var/lib /home
			mdu --engine fastwalk -j 4 src
		`),
		Version:       c.version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := f.resolve(cmd.Flags(), args)
			if err != nil {
				return err
			}

			return logic(s, stdout, stderr)
		},
	}

	f.register(cmd.Flags())
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	return cmd
}

// Run executes the CLI with args, writing results to stdout and diagnostics to stderr.
// It returns du.ErrIncomplete when some directory could not be read.
func (c CLI) Run(args []string, stdout, stderr io.Writer) error {
	cmd := c.command(stdout, stderr)
	cmd.SetArgs(args)

	return cmd.Execute()
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Run(os.Args[1:], os.Stdout, os.Stderr)
}
