package slideshow

import (
	"fmt"

	styles "github.com/goliatone/go-styles"
)

// FillKind distinguishes an explicit no-fill from solid and gradient fills.
type FillKind int

const (
	FillNone FillKind = iota
	FillSolid
	FillGradient
)

func (k FillKind) String() string {
	switch k {
	case FillSolid:
		return "solid"
	case FillGradient:
		return "gradient"
	default:
		return "none"
	}
}

// Fill is a shape fill. A Fill with Kind FillNone is an explicit noFill and
// still stops inheritance; an absent fill is a nil *Fill.
type Fill struct {
	Kind     FillKind         `json:"kind"`
	Color    styles.Color     `json:"color,omitempty"`
	Gradient *styles.Gradient `json:"gradient,omitempty"`
}

// NoFill is an explicit noFill.
func NoFill() Fill { return Fill{Kind: FillNone} }

// SolidFill fills with a single color.
func SolidFill(color styles.Color) Fill { return Fill{Kind: FillSolid, Color: color} }

// DashStyle is a preset line dash.
type DashStyle string

const (
	DashSolid   DashStyle = "solid"
	DashDot     DashStyle = "dot"
	DashDash    DashStyle = "dash"
	DashLongDot DashStyle = "lgDashDot"
)

// Line is a shape outline. Width is in points.
type Line struct {
	Width float64      `json:"width"`
	Color styles.Color `json:"color,omitempty"`
	Dash  DashStyle    `json:"dash,omitempty"`
}

// HolderKind names the property container variant behind a Holder.
type HolderKind int

const (
	HolderShape HolderKind = iota
	HolderGroup
	HolderTableCell
	HolderBackground
)

func (k HolderKind) String() string {
	switch k {
	case HolderShape:
		return "spPr"
	case HolderGroup:
		return "grpSpPr"
	case HolderTableCell:
		return "tcPr"
	case HolderBackground:
		return "bgPr"
	default:
		return fmt.Sprintf("HolderKind(%d)", int(k))
	}
}

// Holder is the property container a shape carries. The set of variants is
// closed: ShapeProperties, GroupShapeProperties, TableCellProperties and
// BackgroundProperties.
type Holder interface {
	Kind() HolderKind
	sealed()
}

// ShapeProperties is the spPr container of an ordinary shape.
type ShapeProperties struct {
	Fill     *Fill  `json:"fill,omitempty"`
	Line     *Line  `json:"ln,omitempty"`
	Geometry string `json:"prstGeom,omitempty"`
}

// GroupShapeProperties is the grpSpPr container of a group. Groups carry a
// fill their children may reference but never an outline.
type GroupShapeProperties struct {
	Fill *Fill `json:"fill,omitempty"`
}

// TableCellProperties is the tcPr container of a table cell. Border applies
// to every edge of the cell.
type TableCellProperties struct {
	Fill   *Fill `json:"fill,omitempty"`
	Border *Line `json:"border,omitempty"`
}

// BackgroundProperties is the bgPr container of a sheet background.
type BackgroundProperties struct {
	Fill *Fill `json:"fill,omitempty"`
}

func (ShapeProperties) Kind() HolderKind      { return HolderShape }
func (GroupShapeProperties) Kind() HolderKind { return HolderGroup }
func (TableCellProperties) Kind() HolderKind  { return HolderTableCell }
func (BackgroundProperties) Kind() HolderKind { return HolderBackground }

func (ShapeProperties) sealed()      {}
func (GroupShapeProperties) sealed() {}
func (TableCellProperties) sealed()  {}
func (BackgroundProperties) sealed() {}

type holderAccess struct {
	fill func(Holder) *Fill
	line func(Holder) *Line
}

var holderAccessors = map[HolderKind]holderAccess{
	HolderShape: {
		fill: func(h Holder) *Fill { return h.(ShapeProperties).Fill },
		line: func(h Holder) *Line { return h.(ShapeProperties).Line },
	},
	HolderGroup: {
		fill: func(h Holder) *Fill { return h.(GroupShapeProperties).Fill },
	},
	HolderTableCell: {
		fill: func(h Holder) *Fill { return h.(TableCellProperties).Fill },
		line: func(h Holder) *Line { return h.(TableCellProperties).Border },
	},
	HolderBackground: {
		fill: func(h Holder) *Fill { return h.(BackgroundProperties).Fill },
	},
}

// holderValue dereferences pointer variants so the accessor table only sees
// values.
func holderValue(h Holder) Holder {
	switch v := h.(type) {
	case *ShapeProperties:
		if v != nil {
			return *v
		}
	case *GroupShapeProperties:
		if v != nil {
			return *v
		}
	case *TableCellProperties:
		if v != nil {
			return *v
		}
	case *BackgroundProperties:
		if v != nil {
			return *v
		}
	default:
		return h
	}
	return nil
}

// FillOf reports the fill h defines. A nil holder defines nothing.
func FillOf(h Holder) (Fill, bool) {
	if h = holderValue(h); h == nil {
		return Fill{}, false
	}
	access, ok := holderAccessors[h.Kind()]
	if !ok || access.fill == nil {
		return Fill{}, false
	}
	fill := access.fill(h)
	if fill == nil {
		return Fill{}, false
	}
	return *fill, true
}

// LineOf reports the outline h defines. Group and background holders never
// define one.
func LineOf(h Holder) (Line, bool) {
	if h = holderValue(h); h == nil {
		return Line{}, false
	}
	access, ok := holderAccessors[h.Kind()]
	if !ok || access.line == nil {
		return Line{}, false
	}
	line := access.line(h)
	if line == nil {
		return Line{}, false
	}
	return *line, true
}

var (
	// FillFetcher probes a Holder for its fill.
	FillFetcher = styles.Named[Holder, Fill]("fill", styles.FetcherFunc[Holder, Fill](FillOf))
	// LineFetcher probes a Holder for its outline.
	LineFetcher = styles.Named[Holder, Line]("line", styles.FetcherFunc[Holder, Line](LineOf))
)
