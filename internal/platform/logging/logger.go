// Package logging is the key/value logger every component receives.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// ParseLevel accepts debug, info, warn/warning and error in any case.
// Anything else is info.
func ParseLevel(v string) Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Options configures New. The zero value logs info and above to stdout.
type Options struct {
	Level  Level
	Writer io.Writer
	// SamplePerSecond caps identical messages per second; normalizer default
	// substitutions repeat once per cell. 0 disables sampling.
	SamplePerSecond int
}

// Logger wraps zap with a key/value call style: Info(msg, "k", v, ...).
type Logger struct {
	zap    *zap.Logger
	synced atomic.Bool
}

var fallback atomic.Pointer[Logger]

func init() {
	fallback.Store(NewNop())
}

func New(opts Options) *Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	var core zapcore.Core = zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.Lock(zapcore.AddSync(w)),
		opts.Level,
	)
	if opts.SamplePerSecond > 0 {
		core = zapcore.NewSamplerWithOptions(core, time.Second, opts.SamplePerSecond, 0)
	}

	return FromZap(zap.New(core,
		zap.AddCaller(),
		// Skip the facade frames so callers, not logger.go, are reported.
		zap.AddCallerSkip(2),
		zap.AddStacktrace(zapcore.ErrorLevel),
	))
}

// NewJSON is the production logger: stdout, sampled.
func NewJSON(level Level) *Logger {
	return New(Options{Level: level, SamplePerSecond: 100})
}

func NewJSONWriter(level Level, w io.Writer) *Logger {
	return New(Options{Level: level, Writer: w})
}

func NewNop() *Logger {
	return FromZap(zap.NewNop())
}

func FromZap(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{zap: z}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// Default is the process-wide logger used when a component gets nil.
func Default() *Logger {
	if l := fallback.Load(); l != nil {
		return l
	}
	return NewNop()
}

func SetDefault(l *Logger) {
	if l == nil {
		l = NewNop()
	}
	fallback.Store(l)
}

func (l *Logger) Zap() *zap.Logger {
	if l == nil || l.zap == nil {
		return zap.NewNop()
	}
	return l.zap
}

// Sync flushes once; later calls are no-ops.
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil || !l.synced.CompareAndSwap(false, true) {
		return nil
	}
	return l.zap.Sync()
}

func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return NewNop()
	}
	return &Logger{zap: l.zap.With(toFields(args)...)}
}

// Named scopes the logger to a component, e.g. "scheduler" or "scrape.fetcher".
func (l *Logger) Named(name string) *Logger {
	if l == nil {
		return NewNop()
	}
	return &Logger{zap: l.zap.Named(name)}
}

func (l *Logger) Enabled(level Level) bool {
	if l == nil || l.zap == nil {
		return false
	}
	return l.zap.Core().Enabled(level)
}

func (l *Logger) Debug(msg string, args ...any) { l.write(context.Background(), LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.write(context.Background(), LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.write(context.Background(), LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.write(context.Background(), LevelError, msg, args) }

// The *Context variants add trace_id and span_id of the active span.

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelDebug, msg, args)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelInfo, msg, args)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelWarn, msg, args)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelError, msg, args)
}

func (l *Logger) write(ctx context.Context, level Level, msg string, args []any) {
	if l == nil || l.zap == nil {
		l = Default()
	}
	ce := l.zap.Check(level, msg)
	if ce == nil {
		return
	}
	ce.Write(append(toFields(args), spanFields(ctx)...)...)
}
