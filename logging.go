package styles

import (
	"context"
	"log/slog"
	"time"
)

// EvaluatorLogEvent describes an evaluation attempt for logging.
type EvaluatorLogEvent struct {
	Engine   string
	Expr     string
	Rule     string
	Duration time.Duration
	Err      error
}

// EvaluatorLogger records evaluator events.
type EvaluatorLogger interface {
	LogEvaluation(EvaluatorLogEvent)
}

// EvaluatorLoggerFunc adapts a function to EvaluatorLogger.
type EvaluatorLoggerFunc func(EvaluatorLogEvent)

// LogEvaluation implements EvaluatorLogger.
func (f EvaluatorLoggerFunc) LogEvaluation(event EvaluatorLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopEvaluatorLogger struct{}

func (noopEvaluatorLogger) LogEvaluation(EvaluatorLogEvent) {}

// WithEvaluatorLogger attaches an evaluator logger to the stylesheet.
func WithEvaluatorLogger(logger EvaluatorLogger) Option {
	return func(cfg *config) {
		if logger == nil {
			cfg.evalLogger = noopEvaluatorLogger{}
			return
		}
		cfg.evalLogger = logger
	}
}

// InternLogEvent describes one Table.Intern call.
type InternLogEvent struct {
	Table     string
	Index     int
	Created   bool
	Key       string
	Duration  time.Duration
	Err       error
	NotifyErr error
}

// ResolveLogEvent describes one chain resolution.
type ResolveLogEvent struct {
	Property  string
	Level     string
	Depth     int
	Probed    int
	Defaulted bool
	Duration  time.Duration
}

// StyleLogger records interning and resolution events.
type StyleLogger interface {
	LogIntern(InternLogEvent)
	LogResolve(ResolveLogEvent)
}

type noopStyleLogger struct{}

func (noopStyleLogger) LogIntern(InternLogEvent)   {}
func (noopStyleLogger) LogResolve(ResolveLogEvent) {}

// WithLogger attaches a StyleLogger to the stylesheet and its tables.
func WithLogger(logger StyleLogger) Option {
	return func(cfg *config) {
		if logger == nil {
			cfg.logger = noopStyleLogger{}
			return
		}
		cfg.logger = logger
	}
}

// SlogLogger writes style and evaluator events to a slog.Logger at debug
// level; failures go out at warn.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps logger, falling back to slog.Default when nil.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{logger: logger}
}

// LogIntern implements StyleLogger.
func (l *SlogLogger) LogIntern(event InternLogEvent) {
	attrs := []slog.Attr{
		slog.String("table", event.Table),
		slog.Int("index", event.Index),
		slog.Bool("created", event.Created),
		slog.Duration("duration", event.Duration),
	}
	switch {
	case event.Err != nil:
		attrs = append(attrs, slog.Any("error", event.Err))
		l.logger.LogAttrs(context.Background(), slog.LevelWarn, "style intern failed", attrs...)
	case event.NotifyErr != nil:
		attrs = append(attrs, slog.Any("error", event.NotifyErr))
		l.logger.LogAttrs(context.Background(), slog.LevelWarn, "style activity hook failed", attrs...)
	default:
		l.logger.LogAttrs(context.Background(), slog.LevelDebug, "style interned", attrs...)
	}
}

// LogResolve implements StyleLogger.
func (l *SlogLogger) LogResolve(event ResolveLogEvent) {
	l.logger.LogAttrs(context.Background(), slog.LevelDebug, "style property resolved",
		slog.String("property", event.Property),
		slog.String("level", event.Level),
		slog.Int("depth", event.Depth),
		slog.Int("probed", event.Probed),
		slog.Bool("defaulted", event.Defaulted),
		slog.Duration("duration", event.Duration),
	)
}

// LogEvaluation implements EvaluatorLogger.
func (l *SlogLogger) LogEvaluation(event EvaluatorLogEvent) {
	level := slog.LevelDebug
	attrs := []slog.Attr{
		slog.String("engine", event.Engine),
		slog.String("expr", event.Expr),
		slog.String("rule", event.Rule),
		slog.Duration("duration", event.Duration),
	}
	if event.Err != nil {
		level = slog.LevelWarn
		attrs = append(attrs, slog.Any("error", event.Err))
	}
	l.logger.LogAttrs(context.Background(), level, "conditional rule evaluated", attrs...)
}
