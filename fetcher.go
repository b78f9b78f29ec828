package styles

// PropertyFetcher reads one property from a chain source. Probe reports false
// when the source does not define the property and must not mutate source.
type PropertyFetcher[S, T any] interface {
	Probe(source S) (T, bool)
}

// FetcherFunc adapts a plain function to PropertyFetcher.
type FetcherFunc[S, T any] func(source S) (T, bool)

// Probe implements PropertyFetcher. A nil func defines nothing.
func (f FetcherFunc[S, T]) Probe(source S) (T, bool) {
	if f == nil {
		var zero T
		return zero, false
	}
	return f(source)
}

// PointerFetcher builds a fetcher from an accessor that returns nil when the
// property is absent. The returned value is a copy of the pointee.
func PointerFetcher[S, T any](accessor func(S) *T) FetcherFunc[S, T] {
	return func(source S) (T, bool) {
		if accessor == nil {
			var zero T
			return zero, false
		}
		value := accessor(source)
		if value == nil {
			var zero T
			return zero, false
		}
		return *value, true
	}
}

// NamedFetcher pairs a fetcher with a property name used in errors, logs and
// traces.
type NamedFetcher[S, T any] struct {
	Property string
	Fetcher  PropertyFetcher[S, T]
}

// Probe implements PropertyFetcher.
func (n NamedFetcher[S, T]) Probe(source S) (T, bool) {
	if n.Fetcher == nil {
		var zero T
		return zero, false
	}
	return n.Fetcher.Probe(source)
}

// Named attaches property to fetcher.
func Named[S, T any](property string, fetcher PropertyFetcher[S, T]) NamedFetcher[S, T] {
	return NamedFetcher[S, T]{Property: property, Fetcher: fetcher}
}

func propertyName[S, T any](fetcher PropertyFetcher[S, T]) string {
	if named, ok := fetcher.(NamedFetcher[S, T]); ok {
		return named.Property
	}
	return ""
}
