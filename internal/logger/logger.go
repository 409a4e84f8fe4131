// Package logger builds the zap logger used for debug output.
package logger

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to w. When debug is true it logs at
// debug level, otherwise only warnings and errors. Levels are coloured when w
// is a terminal.
func New(debug bool, w io.Writer) *zap.Logger {
	encoder := zap.NewDevelopmentEncoderConfig()
	if IsTerminal(w) {
		encoder.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoder), zapcore.AddSync(w), level)

	return zap.New(core)
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
