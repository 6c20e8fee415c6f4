// Package logfilter implements the Log-Filter Hot-Swap: a process-wide
// handle that lets the RPC Service atomically replace the active log
// level at runtime, without a restart.
package logfilter

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/snapcore/prompting-client/perrors"
)

// Filter wraps a zap.AtomicLevel: SetLevel is safe to call concurrently
// with every logger built from Core(), giving the RPC Service a single
// handle it can swap atomically at runtime without tearing down and
// rebuilding every logger in the process.
type Filter struct {
	level zap.AtomicLevel
}

// New builds a Filter starting at the given expression (a zap level
// name: debug, info, warn, error, dpanic, panic, or fatal). An invalid
// initial expression falls back to info.
func New(initial string) *Filter {
	f := &Filter{level: zap.NewAtomicLevel()}
	if err := f.Set(initial); err != nil {
		f.level.SetLevel(zapcore.InfoLevel)
	}
	return f
}

// Level returns the currently configured zapcore.Level.
func (f *Filter) Level() zapcore.Level { return f.level.Level() }

// Core wraps an existing zapcore.Core so that it always honors the
// current level, including levels set after the core was built.
func (f *Filter) Core(inner zapcore.Core) zapcore.Core {
	return &leveledCore{Core: inner, level: f.level}
}

// Set parses expr as a zap level name and, on success, atomically
// installs it as the active level. A parse failure leaves the current
// level untouched and returns a *perrors.LogFilterInvalid.
func (f *Filter) Set(expr string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(expr)); err != nil {
		return &perrors.LogFilterInvalid{Expr: expr, Reason: err.Error()}
	}
	f.level.SetLevel(lvl)
	return nil
}

// Current returns the textual name of the active level, echoed back to
// the UI by SetLoggingFilter.
func (f *Filter) Current() string { return f.level.Level().String() }

// leveledCore re-checks the live AtomicLevel on every Enabled call
// instead of baking in the level the core was constructed with.
type leveledCore struct {
	zapcore.Core
	level zap.AtomicLevel
}

func (c *leveledCore) Enabled(lvl zapcore.Level) bool { return c.level.Enabled(lvl) }

func (c *leveledCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(ent.Level) {
		return ce
	}
	return ce.AddCore(ent, c)
}

func (c *leveledCore) With(fields []zapcore.Field) zapcore.Core {
	return &leveledCore{Core: c.Core.With(fields), level: c.level}
}
