package styles

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// BuiltinFunctions returns a registry with the predicates behind the
// SpreadsheetML conditional formatting operators:
//
//	between(value, lo, hi)       cellIs between, bounds in either order
//	notBetween(value, lo, hi)    cellIs notBetween
//	containsText(value, text)    containsText, case insensitive
//	notContainsText(value, text) notContainsText
//	beginsWith(value, text)      beginsWith
//	endsWith(value, text)        endsWith
//	isBlank(value)               containsBlanks (nil or only whitespace)
//	isNumber(value)
//
// Every stylesheet evaluator starts from this set.
func BuiltinFunctions() *FunctionRegistry {
	r := NewFunctionRegistry()
	must := func(name string, arity int, fn Function) {
		if err := r.RegisterArity(name, arity, fn); err != nil {
			panic(err)
		}
	}
	must("between", 3, func(args ...any) (any, error) { return between(args, true) })
	must("notBetween", 3, func(args ...any) (any, error) { return between(args, false) })
	must("containsText", 2, textPredicate(strings.Contains, true))
	must("notContainsText", 2, textPredicate(strings.Contains, false))
	must("beginsWith", 2, textPredicate(strings.HasPrefix, true))
	must("endsWith", 2, textPredicate(strings.HasSuffix, true))
	must("isBlank", 1, func(args ...any) (any, error) { return isBlank(args[0]), nil })
	must("isNumber", 1, func(args ...any) (any, error) {
		_, ok := toNumber(args[0])
		return ok, nil
	})
	return r
}

// between compares numerically. A value that is not a number never matches
// either operator; bounds that are not numbers are an error.
func between(args []any, inside bool) (bool, error) {
	lo, okLo := toNumber(args[1])
	hi, okHi := toNumber(args[2])
	if !okLo || !okHi {
		return false, fmt.Errorf("styles: between bounds must be numbers, got %T and %T", args[1], args[2])
	}
	value, ok := toNumber(args[0])
	if !ok {
		return false, nil
	}
	lo, hi = math.Min(lo, hi), math.Max(lo, hi)
	in := value >= lo && value <= hi
	return in == inside, nil
}

func textPredicate(match func(s, sub string) bool, want bool) Function {
	return func(args ...any) (any, error) {
		text, ok := args[1].(string)
		if !ok {
			return nil, fmt.Errorf("styles: text operand must be a string, got %T", args[1])
		}
		value := strings.ToLower(cellText(args[0]))
		return match(value, strings.ToLower(text)) == want, nil
	}
}

func cellText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}

func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, !math.IsNaN(v)
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
