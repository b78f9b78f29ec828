package styles

import (
	"fmt"
	"sort"
	"sync"
)

// Function is a helper callable from rule expressions.
type Function func(args ...any) (any, error)

// Variadic marks a function that accepts any number of arguments.
const Variadic = -1

type registeredFunction struct {
	fn    Function
	arity int
}

func (f registeredFunction) call(name string, args []any) (any, error) {
	if f.arity != Variadic && len(args) != f.arity {
		return nil, fmt.Errorf("styles: function %q expects %d arguments, got %d", name, f.arity, len(args))
	}
	return f.fn(args...)
}

// FunctionRegistry holds the functions rule expressions may call. Names are
// case sensitive.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]registeredFunction
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{functions: make(map[string]registeredFunction)}
}

// Register stores a variadic fn under name.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	return r.RegisterArity(name, Variadic, fn)
}

// RegisterArity stores fn under name and rejects calls with any other number
// of arguments. Engines without variadic calls (CEL) expose fixed-arity
// functions directly and the rest through call().
func (r *FunctionRegistry) RegisterArity(name string, arity int, fn Function) error {
	switch {
	case fn == nil:
		return fmt.Errorf("styles: function %q is nil", name)
	case name == "":
		return fmt.Errorf("styles: function name must not be empty")
	case name == "call":
		return fmt.Errorf("styles: function name %q is reserved", name)
	case arity < Variadic:
		return fmt.Errorf("styles: function %q has invalid arity %d", name, arity)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]registeredFunction)
	}
	if _, exists := r.functions[name]; exists {
		return fmt.Errorf("styles: function %q already registered", name)
	}
	r.functions[name] = registeredFunction{fn: fn, arity: arity}
	return nil
}

// Clone returns a shallow copy of the registry.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{functions: make(map[string]registeredFunction, len(r.functions))}
	for name, fn := range r.functions {
		clone.functions[name] = fn
	}
	return clone
}

// With returns a copy of r extended by overrides. A function in overrides
// replaces the one of the same name in r.
func (r *FunctionRegistry) With(overrides *FunctionRegistry) *FunctionRegistry {
	out := r.Clone()
	if out == nil {
		out = NewFunctionRegistry()
	}
	if overrides == nil {
		return out
	}
	overrides.mu.RLock()
	defer overrides.mu.RUnlock()
	for name, fn := range overrides.functions {
		out.functions[name] = fn
	}
	return out
}

// Call executes the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("styles: function registry is nil")
	}
	r.mu.RLock()
	fn, ok := r.functions[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("styles: function %q not registered", name)
	}
	return fn.call(name, args)
}

// Arity returns the argument count of name, Variadic, or false when the
// function is unknown.
func (r *FunctionRegistry) Arity(name string) (int, bool) {
	if r == nil {
		return 0, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.functions[name]
	return fn.arity, ok
}

// Names returns registered function names sorted alphabetically.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithFunctionRegistry adds the functions of registry to the stylesheet's
// evaluator, next to the builtin rule functions.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *config) {
		if registry == nil {
			return
		}
		cfg.functions = cfg.functions.With(registry)
	}
}

// WithCustomFunction registers a variadic fn under name for the stylesheet.
// A nil fn, an empty or reserved name, or a name already registered through
// an earlier option is ignored.
func WithCustomFunction(name string, fn Function) Option {
	return func(cfg *config) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		_ = cfg.functions.Register(name, fn)
	}
}
