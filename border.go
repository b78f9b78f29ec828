package styles

import (
	"fmt"
	"strings"
)

// BorderStyle enumerates the line styles of a cell border edge. Ordinals match
// the spreadsheet border style numbering used by writers.
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	BorderThin
	BorderMedium
	BorderDashed
	BorderDotted
	BorderThick
	BorderDouble
	BorderHair
	BorderMediumDashed
	BorderDashDot
	BorderMediumDashDot
	BorderDashDotDot
	BorderMediumDashDotDot
	BorderSlantDashDot
)

var borderStyleNames = [...]string{
	"none", "thin", "medium", "dashed", "dotted", "thick", "double", "hair",
	"mediumDashed", "dashDot", "mediumDashDot", "dashDotDot", "mediumDashDotDot", "slantDashDot",
}

// Valid reports whether the style is a known value.
func (s BorderStyle) Valid() bool {
	return s >= 0 && int(s) < len(borderStyleNames)
}

func (s BorderStyle) String() string {
	if s.Valid() {
		return borderStyleNames[s]
	}
	return fmt.Sprintf("BorderStyle(%d)", int(s))
}

// ParseBorderStyle converts a border style name (case-insensitive).
func ParseBorderStyle(value string) (BorderStyle, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return BorderNone, nil
	}
	for i, name := range borderStyleNames {
		if strings.EqualFold(name, value) {
			return BorderStyle(i), nil
		}
	}
	return BorderNone, fmt.Errorf("styles: unknown border style %q", value)
}

// MarshalText implements encoding.TextMarshaler.
func (s BorderStyle) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("styles: invalid border style %d", int(s))
	}
	return []byte(borderStyleNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *BorderStyle) UnmarshalText(text []byte) error {
	parsed, err := ParseBorderStyle(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// BorderSide selects one edge of a Border.
type BorderSide int

const (
	SideLeft BorderSide = iota
	SideRight
	SideTop
	SideBottom
	SideDiagonal
)

func (s BorderSide) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideDiagonal:
		return "diagonal"
	default:
		return fmt.Sprintf("BorderSide(%d)", int(s))
	}
}

// BorderEdge is the style and color of one border edge. An edge with style
// none and no color is equivalent to an absent edge.
type BorderEdge struct {
	Style BorderStyle `json:"style"`
	Color Color       `json:"color"`
}

// IsZero reports whether the edge is absent.
func (e BorderEdge) IsZero() bool {
	return e.Style == BorderNone && e.Color.IsZero()
}

func (e BorderEdge) key() (string, error) {
	if e.IsZero() {
		return "-", nil
	}
	if !e.Style.Valid() {
		return "", fmt.Errorf("invalid border style %d", int(e.Style))
	}
	color, err := e.Color.key()
	if err != nil {
		return "", err
	}
	return e.Style.String() + "/" + color, nil
}

// Border is a cell border record.
type Border struct {
	Left         BorderEdge `json:"left"`
	Right        BorderEdge `json:"right"`
	Top          BorderEdge `json:"top"`
	Bottom       BorderEdge `json:"bottom"`
	Diagonal     BorderEdge `json:"diagonal"`
	DiagonalUp   bool       `json:"diagonalUp,omitempty"`
	DiagonalDown bool       `json:"diagonalDown,omitempty"`
	Outline      bool       `json:"outline,omitempty"`
}

// Edge returns the edge for side.
func (b Border) Edge(side BorderSide) BorderEdge {
	switch side {
	case SideLeft:
		return b.Left
	case SideRight:
		return b.Right
	case SideTop:
		return b.Top
	case SideBottom:
		return b.Bottom
	case SideDiagonal:
		return b.Diagonal
	default:
		return BorderEdge{}
	}
}

// WithEdge returns a copy of b with side replaced.
func (b Border) WithEdge(side BorderSide, edge BorderEdge) Border {
	switch side {
	case SideLeft:
		b.Left = edge
	case SideRight:
		b.Right = edge
	case SideTop:
		b.Top = edge
	case SideBottom:
		b.Bottom = edge
	case SideDiagonal:
		b.Diagonal = edge
	}
	return b
}

// IsZero reports whether no edge and no flag is set.
func (b Border) IsZero() bool {
	return b == Border{}
}

// StructuralKey implements Record.
func (b Border) StructuralKey() (string, error) {
	kb := newKey("border")
	for _, side := range []BorderSide{SideLeft, SideRight, SideTop, SideBottom, SideDiagonal} {
		edge, err := b.Edge(side).key()
		if err != nil {
			return "", malformed("border", "%s edge: %w", side, err)
		}
		kb.raw(side.String(), edge)
	}
	kb.bool("du", b.DiagonalUp).bool("dd", b.DiagonalDown).bool("ol", b.Outline)
	return kb.String(), nil
}
