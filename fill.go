package styles

import (
	"fmt"
	"strings"
)

// PatternType enumerates cell fill patterns. Ordinals match the spreadsheet
// pattern numbering used by writers.
type PatternType int

const (
	PatternNone PatternType = iota
	PatternSolid
	PatternMediumGray
	PatternDarkGray
	PatternLightGray
	PatternDarkHorizontal
	PatternDarkVertical
	PatternDarkDown
	PatternDarkUp
	PatternDarkGrid
	PatternDarkTrellis
	PatternLightHorizontal
	PatternLightVertical
	PatternLightDown
	PatternLightUp
	PatternLightGrid
	PatternLightTrellis
	PatternGray125
	PatternGray0625
)

var patternTypeNames = [...]string{
	"none", "solid", "mediumGray", "darkGray", "lightGray", "darkHorizontal", "darkVertical",
	"darkDown", "darkUp", "darkGrid", "darkTrellis", "lightHorizontal", "lightVertical",
	"lightDown", "lightUp", "lightGrid", "lightTrellis", "gray125", "gray0625",
}

// Valid reports whether the pattern is a known value.
func (p PatternType) Valid() bool {
	return p >= 0 && int(p) < len(patternTypeNames)
}

func (p PatternType) String() string {
	if p.Valid() {
		return patternTypeNames[p]
	}
	return fmt.Sprintf("PatternType(%d)", int(p))
}

// ParsePatternType converts a pattern name (case-insensitive).
func ParsePatternType(value string) (PatternType, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return PatternNone, nil
	}
	for i, name := range patternTypeNames {
		if strings.EqualFold(name, value) {
			return PatternType(i), nil
		}
	}
	return PatternNone, fmt.Errorf("styles: unknown pattern type %q", value)
}

// MarshalText implements encoding.TextMarshaler.
func (p PatternType) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("styles: invalid pattern type %d", int(p))
	}
	return []byte(patternTypeNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PatternType) UnmarshalText(text []byte) error {
	parsed, err := ParsePatternType(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// GradientType selects linear or path gradients.
type GradientType uint8

const (
	GradientLinear GradientType = iota
	GradientPath
)

func (g GradientType) String() string {
	if g == GradientPath {
		return "path"
	}
	return "linear"
}

// GradientStop is one color stop at Position in [0, 1].
type GradientStop struct {
	Position float64 `json:"position"`
	Color    Color   `json:"color"`
}

// Gradient describes a gradient fill. Left/Right/Top/Bottom are the path
// rectangle in [0, 1] and only matter for path gradients.
type Gradient struct {
	Type   GradientType   `json:"type,omitempty"`
	Degree float64        `json:"degree,omitempty"`
	Left   float64        `json:"left,omitempty"`
	Right  float64        `json:"right,omitempty"`
	Top    float64        `json:"top,omitempty"`
	Bottom float64        `json:"bottom,omitempty"`
	Stops  []GradientStop `json:"stops,omitempty"`
}

// Clone returns a copy that does not share the stop slice.
func (g Gradient) Clone() Gradient {
	if g.Stops != nil {
		g.Stops = append([]GradientStop(nil), g.Stops...)
	}
	return g
}

func (g Gradient) key() (string, error) {
	if g.Type > GradientPath {
		return "", fmt.Errorf("invalid gradient type %d", g.Type)
	}
	if len(g.Stops) == 0 {
		return "", fmt.Errorf("gradient requires at least one stop")
	}
	kb := newKey("gradient").raw("type", g.Type.String()).float("deg", g.Degree)
	if g.Type == GradientPath {
		for _, edge := range []float64{g.Left, g.Right, g.Top, g.Bottom} {
			if edge < 0 || edge > 1 {
				return "", fmt.Errorf("path rectangle %g outside [0,1]", edge)
			}
		}
		kb.float("l", g.Left).float("r", g.Right).float("t", g.Top).float("b", g.Bottom)
	}
	for i, stop := range g.Stops {
		if stop.Position < 0 || stop.Position > 1 {
			return "", fmt.Errorf("stop %d position %g outside [0,1]", i, stop.Position)
		}
		color, err := stop.Color.key()
		if err != nil {
			return "", fmt.Errorf("stop %d: %w", i, err)
		}
		kb.float(fmt.Sprintf("s%d", i), stop.Position).raw(fmt.Sprintf("c%d", i), color)
	}
	return kb.String(), nil
}

// Fill is a cell fill record: either a pattern with foreground and background
// colors, or a gradient.
type Fill struct {
	Pattern    PatternType `json:"pattern"`
	Foreground Color       `json:"fg"`
	Background Color       `json:"bg"`
	Gradient   *Gradient   `json:"gradient,omitempty"`
}

// SolidFill returns a solid pattern fill of color.
func SolidFill(color Color) Fill {
	return Fill{Pattern: PatternSolid, Foreground: color}
}

// Clone implements Cloner.
func (f Fill) Clone() Fill {
	if f.Gradient != nil {
		g := f.Gradient.Clone()
		f.Gradient = &g
	}
	return f
}

// StructuralKey implements Record.
func (f Fill) StructuralKey() (string, error) {
	if f.Gradient != nil {
		gradient, err := f.Gradient.key()
		if err != nil {
			return "", malformed("fill", "%w", err)
		}
		return "fill{" + gradient + "}", nil
	}
	if !f.Pattern.Valid() {
		return "", malformed("fill", "invalid pattern %d", int(f.Pattern))
	}
	fg, err := f.Foreground.key()
	if err != nil {
		return "", malformed("fill", "foreground: %w", err)
	}
	bg, err := f.Background.key()
	if err != nil {
		return "", malformed("fill", "background: %w", err)
	}
	return newKey("fill").raw("pattern", f.Pattern.String()).raw("fg", fg).raw("bg", bg).String(), nil
}
