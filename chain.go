package styles

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-styles/layering"
)

// MaxChainDepth bounds the number of levels a chain may hold.
const MaxChainDepth = 8

var (
	// ErrChainEmpty reports a chain built without levels.
	ErrChainEmpty = errors.New("styles: override chain requires at least one level")
	// ErrChainDepth reports a chain deeper than MaxChainDepth.
	ErrChainDepth = errors.New("styles: override chain too deep")
	// ErrDuplicateLevelName reports two levels sharing a name.
	ErrDuplicateLevelName = errors.New("styles: duplicate chain level name")
)

// ChainLevel is one property source in an override chain. Name defaults to the
// level's string form and must be unique within the chain.
type ChainLevel[S any] struct {
	Level  layering.Level
	Name   string
	Source S
}

// Chain is an immutable, bounded list of property sources ordered from the
// most specific level to the broadest. Chains hold sources by value or
// handle; they never own the objects behind shared masters.
type Chain[S any] struct {
	levels []ChainLevel[S]
	logger StyleLogger
}

// NewChain validates levels and returns a chain.
func NewChain[S any](levels ...ChainLevel[S]) (*Chain[S], error) {
	if len(levels) == 0 {
		return nil, ErrChainEmpty
	}
	if len(levels) > MaxChainDepth {
		return nil, fmt.Errorf("%w: %d levels, max %d", ErrChainDepth, len(levels), MaxChainDepth)
	}
	order := make([]layering.Level, len(levels))
	seen := make(map[string]struct{}, len(levels))
	stored := make([]ChainLevel[S], len(levels))
	for i, level := range levels {
		if level.Name == "" {
			level.Name = level.Level.String()
		}
		if _, dup := seen[level.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLevelName, level.Name)
		}
		seen[level.Name] = struct{}{}
		order[i] = level.Level
		stored[i] = level
	}
	if err := layering.CheckOrder(order...); err != nil {
		return nil, fmt.Errorf("styles: %w", err)
	}
	return &Chain[S]{levels: stored, logger: noopStyleLogger{}}, nil
}

// MustChain is like NewChain but panics on error. Intended for static chains
// in tests and examples.
func MustChain[S any](levels ...ChainLevel[S]) *Chain[S] {
	chain, err := NewChain(levels...)
	if err != nil {
		panic(err)
	}
	return chain
}

// WithLogger returns a copy of the chain that reports resolutions to logger.
func (c *Chain[S]) WithLogger(logger StyleLogger) *Chain[S] {
	if logger == nil {
		logger = noopStyleLogger{}
	}
	return &Chain[S]{levels: c.levels, logger: logger}
}

// Levels returns a copy of the chain levels.
func (c *Chain[S]) Levels() []ChainLevel[S] {
	if c == nil {
		return nil
	}
	return append([]ChainLevel[S](nil), c.levels...)
}

// Len returns the chain depth.
func (c *Chain[S]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.levels)
}

func (c *Chain[S]) names() []string {
	out := make([]string, len(c.levels))
	for i, level := range c.levels {
		out[i] = level.Name
	}
	return out
}

// ResolvedProperty is a resolved value plus the level that supplied it.
type ResolvedProperty[T any] struct {
	Value     T
	Level     layering.Level
	Name      string
	Depth     int
	Defaulted bool
}

// Source returns the supplying level name, or "default".
func (r ResolvedProperty[T]) Source() string {
	if r.Defaulted {
		return "default"
	}
	return r.Name
}

// probe walks the chain and stops at the first level that defines the
// property. Levels past the hit are never probed.
func probe[S, T any](chain *Chain[S], fetcher PropertyFetcher[S, T], visit func(depth int, value T, found bool)) (ResolvedProperty[T], bool) {
	start := time.Now()
	property := propertyName(fetcher)
	for depth, level := range chain.levels {
		value, ok := fetcher.Probe(level.Source)
		if visit != nil {
			visit(depth, value, ok)
		}
		if ok {
			chain.logger.LogResolve(ResolveLogEvent{
				Property: property,
				Level:    level.Name,
				Depth:    depth,
				Probed:   depth + 1,
				Duration: time.Since(start),
			})
			return ResolvedProperty[T]{Value: value, Level: level.Level, Name: level.Name, Depth: depth}, true
		}
	}
	chain.logger.LogResolve(ResolveLogEvent{
		Property:  property,
		Level:     "default",
		Depth:     -1,
		Probed:    len(chain.levels),
		Defaulted: true,
		Duration:  time.Since(start),
	})
	return ResolvedProperty[T]{Depth: -1}, false
}

// Resolve returns the first value defined along chain, or def when no level
// defines it.
func Resolve[S, T any](chain *Chain[S], fetcher PropertyFetcher[S, T], def T) T {
	return ResolveWithDefault(chain, fetcher, def).Value
}

// ResolveWithDefault resolves like Resolve and also reports provenance.
func ResolveWithDefault[S, T any](chain *Chain[S], fetcher PropertyFetcher[S, T], def T) ResolvedProperty[T] {
	if chain == nil || fetcher == nil {
		return ResolvedProperty[T]{Value: def, Depth: -1, Defaulted: true}
	}
	resolved, ok := probe(chain, fetcher, nil)
	if !ok {
		return ResolvedProperty[T]{Value: def, Depth: -1, Defaulted: true}
	}
	return resolved
}

// ResolveProperty resolves without a default. It returns a *ResolveError
// wrapping ErrPropertyUnresolved when no level defines the property.
func ResolveProperty[S, T any](chain *Chain[S], fetcher PropertyFetcher[S, T]) (ResolvedProperty[T], error) {
	if chain == nil || chain.Len() == 0 {
		return ResolvedProperty[T]{Depth: -1}, ErrChainEmpty
	}
	if fetcher == nil {
		return ResolvedProperty[T]{Depth: -1}, &ResolveError{Levels: chain.names()}
	}
	resolved, ok := probe(chain, fetcher, nil)
	if !ok {
		return resolved, &ResolveError{Property: propertyName(fetcher), Levels: chain.names()}
	}
	return resolved, nil
}

// ResolveWithTrace resolves like ResolveWithDefault and records every probed
// level. Levels after the supplying one are absent from the trace.
func ResolveWithTrace[S, T any](chain *Chain[S], fetcher PropertyFetcher[S, T], def T) (ResolvedProperty[T], Trace) {
	trace := Trace{Property: propertyName(fetcher)}
	if chain == nil || fetcher == nil {
		return ResolvedProperty[T]{Value: def, Depth: -1, Defaulted: true}, trace
	}
	resolved, ok := probe(chain, fetcher, func(depth int, value T, found bool) {
		level := chain.levels[depth]
		entry := Provenance{
			Level:    level.Level.String(),
			Name:     level.Name,
			Depth:    depth,
			Property: trace.Property,
			Found:    found,
		}
		if found {
			// values that cannot be encoded leave Value empty; Found still holds
			entry.Value, _ = json.Marshal(value)
		}
		trace.Layers = append(trace.Layers, entry)
	})
	if !ok {
		return ResolvedProperty[T]{Value: def, Depth: -1, Defaulted: true}, trace
	}
	return resolved, trace
}
