package styles

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newBufferLogger(buf *bytes.Buffer) *SlogLogger {
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(handler))
}

func TestSlogLoggerIntern(t *testing.T) {
	var buf bytes.Buffer
	sheet := NewStylesheet(WithLogger(newBufferLogger(&buf)))
	if _, err := sheet.PutBorder(bottomMedium()); err != nil {
		t.Fatalf("put border: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "style interned") || !strings.Contains(out, "table=borders") || !strings.Contains(out, "created=true") {
		t.Fatalf("unexpected log output %q", out)
	}
}

func TestSlogLoggerWarnsOnFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)
	logger.LogIntern(InternLogEvent{Table: TableFonts, Index: -1, Err: errors.New("boom")})
	logger.LogEvaluation(EvaluatorLogEvent{Engine: "expr", Expr: "value >", Rule: "broken", Err: errors.New("parse")})

	out := buf.String()
	if strings.Count(out, "level=WARN") != 2 {
		t.Fatalf("expected two warnings, got %q", out)
	}
	if !strings.Contains(out, "rule=broken") || !strings.Contains(out, "error=boom") {
		t.Fatalf("missing attributes in %q", out)
	}
}

func TestSlogLoggerResolve(t *testing.T) {
	var buf bytes.Buffer
	chain := threeLevelChain(t, nil, nil, strPtr("BLUE")).WithLogger(newBufferLogger(&buf))
	fetcher := Named[fillSource, string]("fill", PointerFetcher(func(s fillSource) *string { return s.fill }))
	Resolve[fillSource, string](chain, fetcher, "NONE")

	out := buf.String()
	if !strings.Contains(out, "property=fill") || !strings.Contains(out, "level=master") || !strings.Contains(out, "probed=3") {
		t.Fatalf("unexpected resolve log %q", out)
	}
}

func TestNewSlogLoggerDefaultsWhenNil(t *testing.T) {
	if NewSlogLogger(nil) == nil {
		t.Fatalf("expected logger")
	}
}
