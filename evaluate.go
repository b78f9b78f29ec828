package styles

import (
	"errors"
	"fmt"
	"time"
)

var ErrNoEvaluator = errors.New("styles: evaluator not configured")

// Evaluate executes expr with the stylesheet's evaluator.
func (s *Stylesheet) Evaluate(ctx RuleContext, expr string) (Response[any], error) {
	if expr == "" {
		return Response[any]{}, fmt.Errorf("expression must not be empty")
	}
	if s.evaluator == nil {
		return Response[any]{}, ErrNoEvaluator
	}
	ctx = ctx.withDefaults()
	engine := evaluatorEngineName(s.evaluator)
	start := time.Now()
	value, evalErr := s.evaluator.Evaluate(ctx, expr)
	evalErr = wrapEvaluationError(engine, expr, ctx.ruleLabel(), evalErr)
	s.logEvaluation(engine, expr, ctx.ruleLabel(), time.Since(start), evalErr)
	if evalErr != nil {
		return Response[any]{}, evalErr
	}
	return Response[any]{Value: value}, nil
}

func (s *Stylesheet) logEvaluation(engine, expr, rule string, duration time.Duration, err error) {
	s.cfg.evaluatorLogger().LogEvaluation(EvaluatorLogEvent{
		Engine:   engine,
		Expr:     expr,
		Rule:     rule,
		Duration: duration,
		Err:      err,
	})
}

// resolveEvaluator returns the configured evaluator or an expr evaluator built
// from the configured cache and the builtin plus custom functions.
func (cfg config) resolveEvaluator() (Evaluator, error) {
	if cfg.evaluator != nil {
		return cfg.evaluator, nil
	}
	exprOpts := []ExprEvaluatorOption{ExprWithFunctionRegistry(cfg.functions)}
	if cfg.programCache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(cfg.programCache))
	}
	defaultEvaluator := NewExprEvaluator(exprOpts...)
	if defaultEvaluator == nil {
		return nil, ErrNoEvaluator
	}
	return defaultEvaluator, nil
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch fmt.Sprintf("%T", e) {
	case "*styles.exprEvaluator":
		return "expr"
	case "*styles.celEvaluator":
		return "cel"
	case "*styles.jsEvaluator":
		return "js"
	default:
		return "custom"
	}
}
