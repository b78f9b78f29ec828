//go:build !js_eval

package styles

// NewJSEvaluator is unavailable without the js_eval build tag and returns nil.
// WithEvaluator(nil) keeps the default expr engine.
func NewJSEvaluator(opts ...JSEvaluatorOption) Evaluator {
	_ = applyJSEvaluatorOptions(opts)
	return nil
}
