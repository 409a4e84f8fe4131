package du

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, opt Options) ([]string, *Report, error) {
	t.Helper()

	var lines []string

	report, err := Run(context.Background(), opt, func(r Result) error {
		lines = append(lines, fmt.Sprintf("%d\t%s", r.Blocks, r.Path))

		return nil
	}, nil)

	return lines, report, err
}

func TestRun_DirectoryExample(t *testing.T) {
	fsys := newMemFS().
		dir("a", 8).
		file("a/f", 8).
		dir("a/b", 8).
		file("a/b/g", 16)

	for _, engine := range []Engine{EngineSequential, EngineParallel} {
		t.Run(string(engine), func(t *testing.T) {
			lines, report, err := collect(t, Options{
				Targets: []string{"a/"},
				Engine:  engine,
				Jobs:    4,
				FS:      fsys,
			})
			require.NoError(t, err)
			assert.Equal(t, []string{"40\ta/"}, lines)
			assert.False(t, report.Failed)
		})
	}
}

func TestRun_DirectoryExampleWithoutOwnAllocation(t *testing.T) {
	// With a target that allocates nothing itself the total is its contents only.
	fsys := newMemFS().
		dir("a", 0).
		file("a/f", 8).
		dir("a/b", 8).
		file("a/b/g", 16)

	lines, report, err := collect(t, Options{Targets: []string{"a/"}, Engine: EngineParallel, Jobs: 2, FS: fsys})
	require.NoError(t, err)
	assert.Equal(t, []string{"32\ta/"}, lines)
	assert.False(t, report.Failed)
}

func TestRun_FileAndUnreadableDirectory(t *testing.T) {
	fsys := newMemFS().
		file("x", 4).
		dir("y", 0).
		file("y/secret", 8)
	fsys.deny("y")

	for _, engine := range []Engine{EngineSequential, EngineParallel} {
		t.Run(string(engine), func(t *testing.T) {
			var got failures

			lines, report, err := collect(t, Options{
				Targets: []string{"x", "y"},
				Engine:  engine,
				Jobs:    3,
				FS:      fsys,
				OnError: got.record,
			})
			require.NoError(t, err)
			assert.Equal(t, []string{"4\tx", "0\ty"}, lines)
			assert.True(t, report.Failed)
			assert.Equal(t, []string{"y"}, got.paths)
		})
	}
}

func TestRun_TargetStatFailureStopsRun(t *testing.T) {
	fsys := newMemFS().file("x", 4).file("z", 4)

	lines, _, err := collect(t, Options{
		Targets: []string{"x", "missing", "z"},
		Engine:  EngineParallel,
		FS:      fsys,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, syscall.ENOENT)
	assert.Equal(t, []string{"4\tx"}, lines)
}

func TestRun_FreshRunPerTarget(t *testing.T) {
	fsys := tree("p", 2, 3).dir("q", 8).file("q/only", 16)

	lines, _, err := collect(t, Options{
		Targets: []string{"p", "q", "p"},
		Engine:  EngineParallel,
		Jobs:    4,
		FS:      fsys,
	})
	require.NoError(t, err)

	p := 8 + fsys.total("p")
	assert.Equal(t, []string{
		fmt.Sprintf("%d\tp", p),
		"24\tq",
		fmt.Sprintf("%d\tp", p),
	}, lines)
}

func TestRun_EmitErrorStopsRun(t *testing.T) {
	fsys := newMemFS().file("x", 4).file("z", 4)
	boom := errors.New("write failed")

	calls := 0
	_, err := Run(context.Background(), Options{Targets: []string{"x", "z"}, FS: fsys}, func(Result) error {
		calls++

		return boom
	}, nil)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestRun_UnknownEngine(t *testing.T) {
	_, err := Run(context.Background(), Options{Engine: "bogus"}, nil, nil)
	require.Error(t, err)
}
