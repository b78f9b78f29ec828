package styles

import (
	"fmt"
	"time"

	"github.com/goliatone/go-styles/pkg/activity"
)

// Response stores a typed result produced by an evaluator.
type Response[T any] struct {
	Value T
}

// RuleContext carries inputs needed when evaluating a conditional formatting
// expression. Snapshot keys become top-level variables.
type RuleContext struct {
	Snapshot any
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
	Rule     string
}

func (ctx RuleContext) withDefaultNow() RuleContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx RuleContext) withDefaultMaps() RuleContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) withDefaults() RuleContext {
	return ctx.withDefaultNow().withDefaultMaps()
}

func (ctx RuleContext) ruleLabel() string {
	if ctx.Rule != "" {
		return ctx.Rule
	}
	return "unknown"
}

// Evaluator executes expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct {
	boolean bool
}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// ExpectBoolean makes a compiled rule fail when its result is not a bool.
// Conditional formatting compiles every rule with it.
func ExpectBoolean() CompileOption {
	return compileOptionFunc(func(cfg *compileConfig) {
		cfg.boolean = true
	})
}

func applyCompileOptions(opts []CompileOption) compileConfig {
	var cfg compileConfig
	for _, opt := range opts {
		if opt != nil {
			opt.applyCompileOption(&cfg)
		}
	}
	return cfg
}

func (cfg compileConfig) check(result any) (any, error) {
	if !cfg.boolean {
		return result, nil
	}
	if _, ok := result.(bool); !ok {
		return nil, fmt.Errorf("styles: expected boolean result, got %T", result)
	}
	return result, nil
}

// Option configures a Stylesheet.
type Option func(*config)

type config struct {
	evaluator     Evaluator
	programCache  ProgramCache
	functions     *FunctionRegistry
	evalLogger    EvaluatorLogger
	logger        StyleLogger
	activityHooks activity.Hooks
	locking       bool
}

func applyOptions(opts []Option) config {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (cfg config) styleLogger() StyleLogger {
	if cfg.logger != nil {
		return cfg.logger
	}
	return noopStyleLogger{}
}

func (cfg config) evaluatorLogger() EvaluatorLogger {
	if cfg.evalLogger != nil {
		return cfg.evalLogger
	}
	return noopEvaluatorLogger{}
}

// WithLocking guards every table of the stylesheet with a read/write mutex.
func WithLocking() Option {
	return func(cfg *config) {
		cfg.locking = true
	}
}

// WithEvaluator selects the expression engine used by conditional formatting.
// The expr engine is used when none is configured.
func WithEvaluator(evaluator Evaluator) Option {
	return func(cfg *config) {
		cfg.evaluator = evaluator
	}
}
