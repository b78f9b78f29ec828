package styles

import (
	"fmt"
	"math"
	"strings"
)

// UnderlineStyle enumerates font underline styles.
type UnderlineStyle int

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineSingleAccounting
	UnderlineDoubleAccounting
)

var underlineNames = [...]string{"none", "single", "double", "singleAccounting", "doubleAccounting"}

func (u UnderlineStyle) Valid() bool {
	return u >= 0 && int(u) < len(underlineNames)
}

func (u UnderlineStyle) String() string {
	if u.Valid() {
		return underlineNames[u]
	}
	return fmt.Sprintf("UnderlineStyle(%d)", int(u))
}

// MarshalText implements encoding.TextMarshaler.
func (u UnderlineStyle) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("styles: invalid underline %d", int(u))
	}
	return []byte(underlineNames[u]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *UnderlineStyle) UnmarshalText(text []byte) error {
	value := strings.TrimSpace(string(text))
	if value == "" {
		*u = UnderlineNone
		return nil
	}
	for i, name := range underlineNames {
		if strings.EqualFold(name, value) {
			*u = UnderlineStyle(i)
			return nil
		}
	}
	return fmt.Errorf("styles: unknown underline %q", value)
}

// VerticalAlign enumerates font baseline shifts.
type VerticalAlign int

const (
	VerticalAlignBaseline VerticalAlign = iota
	VerticalAlignSuperscript
	VerticalAlignSubscript
)

func (v VerticalAlign) String() string {
	switch v {
	case VerticalAlignBaseline:
		return "baseline"
	case VerticalAlignSuperscript:
		return "superscript"
	case VerticalAlignSubscript:
		return "subscript"
	default:
		return fmt.Sprintf("VerticalAlign(%d)", int(v))
	}
}

// Font is a font record.
type Font struct {
	Name      string         `json:"name"`
	Size      float64        `json:"size"`
	Bold      bool           `json:"bold,omitempty"`
	Italic    bool           `json:"italic,omitempty"`
	Strike    bool           `json:"strike,omitempty"`
	Underline UnderlineStyle `json:"underline,omitempty"`
	VertAlign VerticalAlign  `json:"vertAlign,omitempty"`
	Color     Color          `json:"color"`
	Family    int            `json:"family,omitempty"`
	Charset   int            `json:"charset,omitempty"`
	Scheme    string         `json:"scheme,omitempty"`
}

// DefaultFont is the font seeded at index 0 of every stylesheet.
func DefaultFont() Font {
	return Font{
		Name:   "Calibri",
		Size:   11,
		Color:  Theme(1, 0),
		Family: 2,
		Scheme: "minor",
	}
}

// StructuralKey implements Record.
func (f Font) StructuralKey() (string, error) {
	if f.Size < 0 || math.IsNaN(f.Size) || math.IsInf(f.Size, 0) {
		return "", malformed("font", "invalid size %g", f.Size)
	}
	if !f.Underline.Valid() {
		return "", malformed("font", "invalid underline %d", int(f.Underline))
	}
	if f.VertAlign < VerticalAlignBaseline || f.VertAlign > VerticalAlignSubscript {
		return "", malformed("font", "invalid vertical alignment %d", int(f.VertAlign))
	}
	if f.Charset < 0 || f.Charset > 255 {
		return "", malformed("font", "invalid charset %d", f.Charset)
	}
	switch f.Scheme {
	case "", "none", "major", "minor":
	default:
		return "", malformed("font", "invalid scheme %q", f.Scheme)
	}
	color, err := f.Color.key()
	if err != nil {
		return "", malformed("font", "color: %w", err)
	}
	return newKey("font").
		str("name", f.Name).
		float("sz", f.Size).
		bool("b", f.Bold).
		bool("i", f.Italic).
		bool("s", f.Strike).
		raw("u", f.Underline.String()).
		raw("va", f.VertAlign.String()).
		raw("color", color).
		int("family", f.Family).
		int("charset", f.Charset).
		str("scheme", f.Scheme).
		String(), nil
}
