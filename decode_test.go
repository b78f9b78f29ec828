package styles

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeRecordBorder(t *testing.T) {
	border, err := DecodeRecord[Border](map[string]any{
		"bottom": map[string]any{"style": "medium", "color": map[string]any{"kind": "rgb", "rgb": "FF0000"}},
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if border.Bottom.Style != BorderMedium || border.Bottom.Color != RGB("FF0000") {
		t.Fatalf("unexpected border %+v", border)
	}

	table := newBorderTable(t)
	index, err := table.Intern(border)
	if err != nil {
		t.Fatalf("intern decoded: %v", err)
	}
	if index != 1 {
		t.Fatalf("expected new index 1, got %d", index)
	}
}

func TestDecodeRecordRejectsUnknownFields(t *testing.T) {
	_, err := DecodeRecordFrom[Font]("xl/styles.xml", map[string]any{"name": "Arial", "size": 10, "shadow": true})
	if !errors.Is(err, ErrMalformedStyleRecord) {
		t.Fatalf("expected malformed record, got %v", err)
	}
	var recErr *RecordError
	if !errors.As(err, &recErr) || recErr.Kind != "font" {
		t.Fatalf("expected font RecordError, got %#v", err)
	}
	if !strings.Contains(err.Error(), "font@xl/styles.xml") {
		t.Fatalf("expected part in error, got %v", err)
	}
}

func TestDecodeRecordRequiresStructuralKey(t *testing.T) {
	_, err := DecodeRecord[Border](map[string]any{
		"left": map[string]any{"style": "thin", "color": map[string]any{"kind": "rgb", "rgb": "zzz"}},
	})
	if !errors.Is(err, ErrMalformedStyleRecord) {
		t.Fatalf("expected malformed record for bad color, got %v", err)
	}

	if _, err := DecodeRecord[Border](map[string]any{"left": map[string]any{"style": "wavy"}}); err == nil {
		t.Fatalf("expected unknown border style rejected")
	}
}

func TestDecodeRecordNilPayload(t *testing.T) {
	if _, err := DecodeRecord[Fill](nil); !errors.Is(err, ErrMalformedStyleRecord) {
		t.Fatalf("expected nil payload rejected, got %v", err)
	}
}

func TestDecodeRecordAcceptsAttributeNames(t *testing.T) {
	font, err := DecodeRecord[Font](map[string]any{"name": "Calibri", "sz": 11, "b": true})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if font.Size != 11 || !font.Bold {
		t.Fatalf("expected sz and b mapped, got %+v", font)
	}

	fill, err := DecodeRecord[Fill](map[string]any{"patternType": "solid", "fgColor": map[string]any{"kind": "rgb", "rgb": "FFC7CE"}})
	if err != nil {
		t.Fatalf("decode fill: %v", err)
	}
	if fill != SolidFill(RGB("FFC7CE")) {
		t.Fatalf("unexpected fill %+v", fill)
	}

	_, err = DecodeRecord[Font](map[string]any{"sz": 11, "size": 12})
	if !errors.Is(err, ErrMalformedStyleRecord) || !strings.Contains(err.Error(), "both") {
		t.Fatalf("expected clash rejected, got %v", err)
	}
}

func TestDecodeRecordFontCharset(t *testing.T) {
	font, err := DecodeRecord[Font](map[string]any{"rFont": "Arial", "sz": 10, "charset": 204})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if font.Charset != 204 || font.Name != "Arial" {
		t.Fatalf("expected charset 204 on Arial, got %+v", font)
	}

	_, err = DecodeRecord[Font](map[string]any{"name": "Arial", "size": 10, "charset": 256})
	if !errors.Is(err, ErrMalformedStyleRecord) {
		t.Fatalf("expected out of range charset rejected, got %v", err)
	}
}
