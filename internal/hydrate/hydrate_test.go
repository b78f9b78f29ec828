package hydrate

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

type edge struct {
	Style string `json:"style"`
	Color string `json:"color,omitempty"`
}

type border struct {
	Left   edge `json:"left"`
	Bottom edge `json:"bottom"`
}

var ctx = Context{Kind: "border", Part: "xl/styles.xml"}

func TestDecoderCases(t *testing.T) {
	cases := []struct {
		name      string
		input     map[string]any
		options   []Option[border]
		expect    border
		expectErr string
	}{
		{
			name:   "plain decode",
			input:  map[string]any{"left": map[string]any{"style": "thin"}, "bottom": map[string]any{"style": "medium", "color": "FF0000"}},
			expect: border{Left: edge{Style: "thin"}, Bottom: edge{Style: "medium", Color: "FF0000"}},
		},
		{
			name:      "unknown field rejected",
			input:     map[string]any{"left": map[string]any{"style": "thin"}, "diagonalUp": true},
			expectErr: `hydrate: border@xl/styles.xml: json: unknown field "diagonalUp"`,
		},
		{
			name:    "lenient ignores unknown field",
			input:   map[string]any{"left": map[string]any{"style": "thin"}, "diagonalUp": true},
			options: []Option[border]{WithLenientFields[border]()},
			expect:  border{Left: edge{Style: "thin"}},
		},
		{
			name:    "alias renamed",
			input:   map[string]any{"l": map[string]any{"style": "thin"}},
			options: []Option[border]{WithAliases[border](map[string]string{"l": "left", "b": "bottom"})},
			expect:  border{Left: edge{Style: "thin"}},
		},
		{
			name:      "alias clash",
			input:     map[string]any{"l": map[string]any{"style": "thin"}, "left": map[string]any{"style": "thick"}},
			options:   []Option[border]{WithAliases[border](map[string]string{"l": "left"})},
			expectErr: `both "l" and "left" set`,
		},
		{
			name:  "validator error",
			input: map[string]any{"left": map[string]any{"style": "bogus"}},
			options: []Option[border]{WithValidator(func(b border) error {
				if b.Left.Style == "bogus" {
					return errors.New("unknown style")
				}
				return nil
			})},
			expectErr: "hydrate: border@xl/styles.xml: unknown style",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := NewDecoder(tc.options...).Decode(ctx, tc.input)

			if tc.expectErr != "" {
				if err == nil {
					t.Fatalf("expected error %q, got nil", tc.expectErr)
				}
				if !strings.Contains(err.Error(), tc.expectErr) {
					t.Fatalf("expected error containing %q, got %v", tc.expectErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected decode error: %v", err)
			}
			if !reflect.DeepEqual(tc.expect, result) {
				t.Fatalf("decoded record mismatch:\nwant: %#v\n got: %#v", tc.expect, result)
			}
		})
	}
}

func TestDecoderValidatorErrorUnwraps(t *testing.T) {
	sentinel := errors.New("no key")
	_, err := NewDecoder(WithValidator(func(border) error { return sentinel })).Decode(ctx, map[string]any{})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected validator error wrapped, got %v", err)
	}
}

func TestDecoderRejectsNilPayload(t *testing.T) {
	_, err := NewDecoder[border]().Decode(Context{Kind: "border"}, nil)
	if err == nil || err.Error() != "hydrate: border: payload is nil" {
		t.Fatalf("expected nil payload error, got %v", err)
	}
}

func TestDecoderDoesNotMutateInput(t *testing.T) {
	input := map[string]any{"l": map[string]any{"style": "thin"}}
	decoder := NewDecoder(WithAliases[border](map[string]string{"l": "left"}))
	result, err := decoder.Decode(ctx, input)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Left.Style != "thin" {
		t.Fatalf("expected alias applied, got %+v", result)
	}
	if _, ok := input["l"]; !ok {
		t.Fatalf("expected caller payload untouched, got %v", input)
	}
	if _, ok := input["left"]; ok {
		t.Fatalf("rename leaked into caller payload: %v", input)
	}
}
