package styles

import (
	"fmt"
	"math"
	"strings"
)

// ColorKind identifies how a Color is addressed.
type ColorKind uint8

const (
	// ColorUnset is the zero Color and means "not specified".
	ColorUnset ColorKind = iota
	ColorRGB
	ColorIndexed
	ColorTheme
	ColorAuto
)

var colorKindNames = [...]string{"", "rgb", "indexed", "theme", "auto"}

func (k ColorKind) String() string {
	if int(k) < len(colorKindNames) {
		if k == ColorUnset {
			return "unset"
		}
		return colorKindNames[k]
	}
	return fmt.Sprintf("ColorKind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k ColorKind) MarshalText() ([]byte, error) {
	if int(k) >= len(colorKindNames) {
		return nil, fmt.Errorf("styles: invalid color kind %d", uint8(k))
	}
	return []byte(colorKindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ColorKind) UnmarshalText(text []byte) error {
	value := strings.ToLower(strings.TrimSpace(string(text)))
	for i, name := range colorKindNames {
		if name == value {
			*k = ColorKind(i)
			return nil
		}
	}
	return fmt.Errorf("styles: unknown color kind %q", value)
}

// Color is an RGB, indexed, theme or automatic color reference. RGB values are
// stored as six upper-case hex digits; an ARGB alpha prefix is dropped. Tint
// lightens or darkens rgb, indexed and theme colors.
type Color struct {
	Kind  ColorKind `json:"kind,omitempty"`
	RGB   string    `json:"rgb,omitempty"`
	Index int       `json:"index,omitempty"`
	Tint  float64   `json:"tint,omitempty"`
}

// RGB builds an RGB color from "#RRGGBB", "RRGGBB" or "AARRGGBB". Invalid input
// is kept verbatim and reported when the owning record is interned.
func RGB(hex string) Color {
	return Color{Kind: ColorRGB, RGB: normalizeHex(hex)}
}

// Indexed builds a legacy palette color.
func Indexed(index int) Color {
	return Color{Kind: ColorIndexed, Index: index}
}

// Theme builds a theme color with an optional tint in [-1, 1].
func Theme(index int, tint float64) Color {
	return Color{Kind: ColorTheme, Index: index, Tint: tint}
}

// Auto returns the system automatic color.
func Auto() Color {
	return Color{Kind: ColorAuto}
}

// IsZero reports whether the color is unset.
func (c Color) IsZero() bool {
	return c.Kind == ColorUnset
}

func (c Color) String() string {
	switch c.Kind {
	case ColorRGB:
		return "#" + c.RGB + tintSuffix(c.Tint)
	case ColorIndexed:
		return fmt.Sprintf("indexed(%d)", c.Index) + tintSuffix(c.Tint)
	case ColorTheme:
		if c.Tint != 0 {
			return fmt.Sprintf("theme(%d,%g)", c.Index, c.Tint)
		}
		return fmt.Sprintf("theme(%d)", c.Index)
	case ColorAuto:
		return "auto"
	default:
		return "unset"
	}
}

func (c Color) key() (string, error) {
	if c.Tint < -1 || c.Tint > 1 || math.IsNaN(c.Tint) {
		return "", fmt.Errorf("invalid tint %g", c.Tint)
	}
	switch c.Kind {
	case ColorUnset:
		if c.Tint != 0 {
			return "", fmt.Errorf("tint %g on unset color", c.Tint)
		}
		return "-", nil
	case ColorRGB:
		rgb := normalizeHex(c.RGB)
		if !isHex6(rgb) {
			return "", fmt.Errorf("invalid rgb %q", c.RGB)
		}
		return "rgb:" + rgb + tintSuffix(c.Tint), nil
	case ColorIndexed:
		if c.Index < 0 {
			return "", fmt.Errorf("invalid indexed color %d", c.Index)
		}
		return fmt.Sprintf("idx:%d", c.Index) + tintSuffix(c.Tint), nil
	case ColorTheme:
		if c.Index < 0 {
			return "", fmt.Errorf("invalid theme color %d", c.Index)
		}
		return fmt.Sprintf("thm:%d:%g", c.Index, c.Tint), nil
	case ColorAuto:
		if c.Tint != 0 {
			return "", fmt.Errorf("tint %g on auto color", c.Tint)
		}
		return "auto", nil
	default:
		return "", fmt.Errorf("invalid color kind %d", uint8(c.Kind))
	}
}

// tintSuffix keys the tint of rgb and indexed colors. Untinted colors keep
// the bare form.
func tintSuffix(tint float64) string {
	if tint == 0 {
		return ""
	}
	return fmt.Sprintf("~%g", tint)
}

func normalizeHex(hex string) string {
	value := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
	if len(value) == 8 {
		value = value[2:]
	}
	return value
}

func isHex6(value string) bool {
	if len(value) != 6 {
		return false
	}
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
