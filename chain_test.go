package styles

import (
	"errors"
	"testing"

	"github.com/goliatone/go-styles/layering"
)

type fillSource struct {
	name string
	fill *string
}

type countingFetcher struct {
	calls map[string]int
}

func (f *countingFetcher) Probe(source fillSource) (string, bool) {
	f.calls[source.name]++
	if source.fill == nil {
		return "", false
	}
	return *source.fill, true
}

func strPtr(value string) *string { return &value }

func threeLevelChain(t *testing.T, instance, layout, master *string) *Chain[fillSource] {
	t.Helper()
	chain, err := NewChain(
		ChainLevel[fillSource]{Level: layering.LevelInstance, Source: fillSource{name: "instance", fill: instance}},
		ChainLevel[fillSource]{Level: layering.LevelLayout, Source: fillSource{name: "layout", fill: layout}},
		ChainLevel[fillSource]{Level: layering.LevelMaster, Source: fillSource{name: "master", fill: master}},
	)
	if err != nil {
		t.Fatalf("new chain: %v", err)
	}
	return chain
}

func TestResolveShortCircuitsAtFirstDefinedLevel(t *testing.T) {
	chain := threeLevelChain(t, strPtr("GREEN"), strPtr("RED"), strPtr("BLUE"))
	fetcher := &countingFetcher{calls: map[string]int{}}

	if got := Resolve[fillSource, string](chain, fetcher, "NONE"); got != "GREEN" {
		t.Fatalf("expected GREEN, got %s", got)
	}
	if fetcher.calls["instance"] != 1 || fetcher.calls["layout"] != 0 || fetcher.calls["master"] != 0 {
		t.Fatalf("expected only instance probed, got %v", fetcher.calls)
	}
}

func TestResolveLayoutWinsOverMaster(t *testing.T) {
	chain := threeLevelChain(t, nil, strPtr("RED"), strPtr("BLUE"))
	fetcher := &countingFetcher{calls: map[string]int{}}

	resolved := ResolveWithDefault[fillSource, string](chain, fetcher, "NONE")
	if resolved.Value != "RED" {
		t.Fatalf("expected RED, got %s", resolved.Value)
	}
	if resolved.Level != layering.LevelLayout || resolved.Source() != "layout" || resolved.Depth != 1 {
		t.Fatalf("unexpected provenance %+v", resolved)
	}
	if fetcher.calls["master"] != 0 {
		t.Fatalf("master must not be probed, calls=%v", fetcher.calls)
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	chain := threeLevelChain(t, nil, nil, nil)
	fetcher := &countingFetcher{calls: map[string]int{}}

	resolved := ResolveWithDefault[fillSource, string](chain, fetcher, "NONE")
	if resolved.Value != "NONE" || !resolved.Defaulted || resolved.Source() != "default" {
		t.Fatalf("expected default, got %+v", resolved)
	}
	if fetcher.calls["instance"] != 1 || fetcher.calls["layout"] != 1 || fetcher.calls["master"] != 1 {
		t.Fatalf("expected every level probed once, got %v", fetcher.calls)
	}
}

func TestResolvePropertyUnresolved(t *testing.T) {
	chain := threeLevelChain(t, nil, nil, nil)
	fetcher := Named[fillSource, string]("fill", PointerFetcher(func(s fillSource) *string { return s.fill }))

	_, err := ResolveProperty[fillSource, string](chain, fetcher)
	if !errors.Is(err, ErrPropertyUnresolved) {
		t.Fatalf("expected ErrPropertyUnresolved, got %v", err)
	}
	var resolveErr *ResolveError
	if !errors.As(err, &resolveErr) {
		t.Fatalf("expected ResolveError, got %T", err)
	}
	if resolveErr.Property != "fill" || len(resolveErr.Levels) != 3 || resolveErr.Levels[2] != "master" {
		t.Fatalf("unexpected error detail %+v", resolveErr)
	}

	defined := threeLevelChain(t, nil, nil, strPtr("BLUE"))
	resolved, err := ResolveProperty[fillSource, string](defined, fetcher)
	if err != nil || resolved.Value != "BLUE" || resolved.Level != layering.LevelMaster {
		t.Fatalf("expected BLUE from master, got %+v err=%v", resolved, err)
	}
}

func TestResolveWithTraceRecordsProbedLevels(t *testing.T) {
	chain := threeLevelChain(t, nil, strPtr("RED"), strPtr("BLUE"))
	fetcher := Named[fillSource, string]("fill", PointerFetcher(func(s fillSource) *string { return s.fill }))

	resolved, trace := ResolveWithTrace[fillSource, string](chain, fetcher, "NONE")
	if resolved.Value != "RED" {
		t.Fatalf("expected RED, got %s", resolved.Value)
	}
	if trace.Property != "fill" || len(trace.Layers) != 2 {
		t.Fatalf("expected two probed layers, got %+v", trace)
	}
	if trace.Layers[0].Found || trace.Layers[0].Name != "instance" {
		t.Fatalf("unexpected first layer %+v", trace.Layers[0])
	}
	supplier, ok := trace.Supplier()
	if !ok || supplier.Name != "layout" {
		t.Fatalf("unexpected supplier %+v", supplier)
	}
	var supplied string
	if err := supplier.DecodeValue(&supplied); err != nil || supplied != "RED" {
		t.Fatalf("expected RED recorded, got %q (%v)", supplied, err)
	}
	if err := trace.Layers[0].DecodeValue(&supplied); err == nil {
		t.Fatalf("expected missing value error on an unfound layer")
	}

	payload, err := trace.ToJSON()
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	decoded, err := TraceFromJSON(payload)
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	if len(decoded.Layers) != 2 || decoded.Layers[1].Level != "layout" {
		t.Fatalf("round trip lost layers: %+v", decoded)
	}
}

func TestTraceKeepsStructValuesThroughJSON(t *testing.T) {
	type fillLevel struct{ fill *Fill }
	tinted := Fill{Pattern: PatternSolid, Foreground: Color{Kind: ColorRGB, RGB: "4472C4", Tint: -0.25}}
	chain, err := NewChain(
		ChainLevel[fillLevel]{Level: layering.LevelInstance, Name: "cell"},
		ChainLevel[fillLevel]{Level: layering.LevelMaster, Name: "named", Source: fillLevel{fill: &tinted}},
	)
	if err != nil {
		t.Fatalf("new chain: %v", err)
	}
	fetcher := Named[fillLevel, Fill]("fill", PointerFetcher(func(s fillLevel) *Fill { return s.fill }))

	_, trace := ResolveWithTrace[fillLevel, Fill](chain, fetcher, Fill{})
	payload, err := trace.ToJSON()
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	decoded, err := TraceFromJSON(payload)
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	supplier, ok := decoded.Supplier()
	if !ok || supplier.Name != "named" {
		t.Fatalf("unexpected supplier %+v", supplier)
	}
	var fill Fill
	if err := supplier.DecodeValue(&fill); err != nil {
		t.Fatalf("decode value: %v", err)
	}
	if fill != tinted {
		t.Fatalf("round trip changed the fill: got %+v, want %+v", fill, tinted)
	}
}

func TestNewChainValidation(t *testing.T) {
	if _, err := NewChain[fillSource](); !errors.Is(err, ErrChainEmpty) {
		t.Fatalf("expected ErrChainEmpty, got %v", err)
	}

	tooDeep := make([]ChainLevel[fillSource], MaxChainDepth+1)
	for i := range tooDeep {
		tooDeep[i] = ChainLevel[fillSource]{Level: layering.LevelMaster, Name: string(rune('a' + i))}
	}
	if _, err := NewChain(tooDeep...); !errors.Is(err, ErrChainDepth) {
		t.Fatalf("expected ErrChainDepth, got %v", err)
	}

	_, err := NewChain(
		ChainLevel[fillSource]{Level: layering.LevelLayout},
		ChainLevel[fillSource]{Level: layering.LevelLayout},
	)
	if !errors.Is(err, ErrDuplicateLevelName) {
		t.Fatalf("expected ErrDuplicateLevelName, got %v", err)
	}

	_, err = NewChain(
		ChainLevel[fillSource]{Level: layering.LevelMaster},
		ChainLevel[fillSource]{Level: layering.LevelInstance},
	)
	if !errors.Is(err, layering.ErrLevelOrder) {
		t.Fatalf("expected ErrLevelOrder, got %v", err)
	}
}

func TestChainLoggerReportsResolution(t *testing.T) {
	var events []ResolveLogEvent
	logger := &recordingLogger{onResolve: func(e ResolveLogEvent) { events = append(events, e) }}
	chain := threeLevelChain(t, nil, strPtr("RED"), nil).WithLogger(logger)
	fetcher := Named[fillSource, string]("fill", PointerFetcher(func(s fillSource) *string { return s.fill }))

	Resolve[fillSource, string](chain, fetcher, "NONE")
	if len(events) != 1 {
		t.Fatalf("expected one resolve event, got %d", len(events))
	}
	if events[0].Property != "fill" || events[0].Level != "layout" || events[0].Probed != 2 || events[0].Defaulted {
		t.Fatalf("unexpected event %+v", events[0])
	}
}

func TestFetcherFuncNilDefinesNothing(t *testing.T) {
	var fetcher FetcherFunc[fillSource, string]
	if _, ok := fetcher.Probe(fillSource{fill: strPtr("RED")}); ok {
		t.Fatalf("nil fetcher must not define a value")
	}
	if _, ok := PointerFetcher[fillSource, string](nil).Probe(fillSource{}); ok {
		t.Fatalf("nil accessor must not define a value")
	}
}
