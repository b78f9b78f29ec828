package styles

import (
	"fmt"
	"maps"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprEvaluatorOption configures an expr evaluator instance.
type ExprEvaluatorOption func(*exprEvaluator)

// ExprWithProgramCache wires a ProgramCache into the expr evaluator.
func ExprWithProgramCache(cache ProgramCache) ExprEvaluatorOption {
	return func(e *exprEvaluator) {
		e.cache = cache
	}
}

// ExprWithFunctionRegistry adds registry to the builtin rule functions.
func ExprWithFunctionRegistry(registry *FunctionRegistry) ExprEvaluatorOption {
	return func(e *exprEvaluator) {
		e.registry = BuiltinFunctions().With(registry)
	}
}

// exprEvaluator runs rule expressions on github.com/expr-lang/expr. Every
// registry function is bound at compile time, so programs are cached by
// expression alone.
type exprEvaluator struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewExprEvaluator constructs an Evaluator backed by expr-lang/expr.
func NewExprEvaluator(opts ...ExprEvaluatorOption) Evaluator {
	e := &exprEvaluator{registry: BuiltinFunctions()}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Evaluate compiles expression (or loads it from the cache) and runs it.
func (e *exprEvaluator) Evaluate(ctx RuleContext, expression string) (any, error) {
	rule, err := e.Compile(expression)
	if err != nil {
		return nil, err
	}
	return rule.Evaluate(ctx)
}

// Compile returns a reusable rule for expression.
func (e *exprEvaluator) Compile(expression string, opts ...CompileOption) (CompiledRule, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("expr", fmt.Errorf("expression must not be empty"))
	}
	program, err := e.program(expression)
	if err != nil {
		return nil, err
	}
	return &exprCompiledRule{
		program:    program,
		expression: expression,
		cfg:        applyCompileOptions(opts),
	}, nil
}

func (e *exprEvaluator) program(expression string) (*exprvm.Program, error) {
	if e.cache != nil {
		if cached, ok := e.cache.Get(expression); ok {
			if program, ok := cached.(*exprvm.Program); ok {
				return program, nil
			}
		}
	}
	options := []exprlang.Option{
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
		exprlang.Function("call", e.call),
	}
	for _, name := range e.registry.Names() {
		if exprOperators[name] {
			continue
		}
		options = append(options, exprlang.Function(name, e.bind(name)))
	}
	program, err := exprlang.Compile(expression, options...)
	if err != nil {
		return nil, wrapEvaluationError("expr", expression, "", err)
	}
	if e.cache != nil {
		e.cache.Set(expression, program)
	}
	return program, nil
}

// exprOperators are keywords in the expr grammar. Registry functions with
// these names stay reachable through call("endsWith", value, text).
var exprOperators = map[string]bool{
	"in":         true,
	"not":        true,
	"matches":    true,
	"contains":   true,
	"startsWith": true,
	"endsWith":   true,
}

func (e *exprEvaluator) bind(name string) func(...any) (any, error) {
	return func(arguments ...any) (any, error) {
		return e.registry.Call(name, arguments...)
	}
}

// call implements call(name, args...) for functions picked at run time.
func (e *exprEvaluator) call(params ...any) (any, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("styles: call needs a function name")
	}
	name, ok := params[0].(string)
	if !ok {
		return nil, fmt.Errorf("styles: call name must be string, got %T", params[0])
	}
	return e.registry.Call(name, params[1:]...)
}

type exprCompiledRule struct {
	program    *exprvm.Program
	expression string
	cfg        compileConfig
}

func (r *exprCompiledRule) Evaluate(ctx RuleContext) (any, error) {
	ctx = ctx.withDefaults()
	result, err := exprlang.Run(r.program, exprEnvironment(ctx))
	if err == nil {
		result, err = r.cfg.check(result)
	}
	if err != nil {
		return nil, wrapEvaluationError("expr", r.expression, ctx.ruleLabel(), err)
	}
	return result, nil
}

// exprEnvironment exposes snapshot keys as top-level variables next to now,
// args and metadata. Snapshot keys win on a clash.
func exprEnvironment(ctx RuleContext) map[string]any {
	env := map[string]any{
		"now":      ctx.timestamp(),
		"args":     ctx.Args,
		"metadata": ctx.Metadata,
	}
	if snapshot, ok := ctx.Snapshot.(map[string]any); ok {
		maps.Copy(env, snapshot)
	}
	return env
}
