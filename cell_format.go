package styles

import "fmt"

// HorizontalAlignment enumerates horizontal cell alignment.
type HorizontalAlignment int

const (
	HorizontalGeneral HorizontalAlignment = iota
	HorizontalLeft
	HorizontalCenter
	HorizontalRight
	HorizontalFill
	HorizontalJustify
	HorizontalCenterContinuous
	HorizontalDistributed
)

var horizontalNames = [...]string{"general", "left", "center", "right", "fill", "justify", "centerContinuous", "distributed"}

func (h HorizontalAlignment) String() string {
	if h >= 0 && int(h) < len(horizontalNames) {
		return horizontalNames[h]
	}
	return fmt.Sprintf("HorizontalAlignment(%d)", int(h))
}

// VerticalAlignment enumerates vertical cell alignment. The zero value is
// bottom, matching the format default.
type VerticalAlignment int

const (
	VerticalBottom VerticalAlignment = iota
	VerticalTop
	VerticalCenter
	VerticalJustify
	VerticalDistributed
)

var verticalNames = [...]string{"bottom", "top", "center", "justify", "distributed"}

func (v VerticalAlignment) String() string {
	if v >= 0 && int(v) < len(verticalNames) {
		return verticalNames[v]
	}
	return fmt.Sprintf("VerticalAlignment(%d)", int(v))
}

// Alignment holds cell text alignment.
type Alignment struct {
	Horizontal   HorizontalAlignment `json:"horizontal,omitempty"`
	Vertical     VerticalAlignment   `json:"vertical,omitempty"`
	WrapText     bool                `json:"wrapText,omitempty"`
	ShrinkToFit  bool                `json:"shrinkToFit,omitempty"`
	Indent       int                 `json:"indent,omitempty"`
	TextRotation int                 `json:"textRotation,omitempty"`
}

func (a Alignment) key() (string, error) {
	if a.Horizontal < 0 || int(a.Horizontal) >= len(horizontalNames) {
		return "", fmt.Errorf("invalid horizontal alignment %d", int(a.Horizontal))
	}
	if a.Vertical < 0 || int(a.Vertical) >= len(verticalNames) {
		return "", fmt.Errorf("invalid vertical alignment %d", int(a.Vertical))
	}
	if a.Indent < 0 {
		return "", fmt.Errorf("negative indent %d", a.Indent)
	}
	// 0..180 degrees, or 255 for vertical stacked text.
	if (a.TextRotation < 0 || a.TextRotation > 180) && a.TextRotation != 255 {
		return "", fmt.Errorf("invalid text rotation %d", a.TextRotation)
	}
	return fmt.Sprintf("%s/%s/%t/%t/%d/%d", a.Horizontal, a.Vertical, a.WrapText, a.ShrinkToFit, a.Indent, a.TextRotation), nil
}

// Protection holds cell protection flags.
type Protection struct {
	Locked bool `json:"locked"`
	Hidden bool `json:"hidden,omitempty"`
}

// CellFormat is a composite cell format (xf) record. The *ID fields are
// indices into the owning stylesheet's tables; XfID points at the named cell
// style format the cell format derives from.
type CellFormat struct {
	NumFmtID          int        `json:"numFmtId"`
	FontID            int        `json:"fontId"`
	FillID            int        `json:"fillId"`
	BorderID          int        `json:"borderId"`
	XfID              int        `json:"xfId"`
	Alignment         Alignment  `json:"alignment"`
	Protection        Protection `json:"protection"`
	QuotePrefix       bool       `json:"quotePrefix,omitempty"`
	ApplyNumberFormat bool       `json:"applyNumberFormat,omitempty"`
	ApplyFont         bool       `json:"applyFont,omitempty"`
	ApplyFill         bool       `json:"applyFill,omitempty"`
	ApplyBorder       bool       `json:"applyBorder,omitempty"`
	ApplyAlignment    bool       `json:"applyAlignment,omitempty"`
	ApplyProtection   bool       `json:"applyProtection,omitempty"`
}

// DefaultCellFormat is the format seeded at index 0 of both xf tables.
func DefaultCellFormat() CellFormat {
	return CellFormat{Protection: Protection{Locked: true}}
}

// StructuralKey implements Record.
func (c CellFormat) StructuralKey() (string, error) {
	for name, id := range map[string]int{"numFmtId": c.NumFmtID, "fontId": c.FontID, "fillId": c.FillID, "borderId": c.BorderID, "xfId": c.XfID} {
		if id < 0 {
			return "", malformed("xf", "negative %s %d", name, id)
		}
	}
	alignment, err := c.Alignment.key()
	if err != nil {
		return "", malformed("xf", "alignment: %w", err)
	}
	return newKey("xf").
		int("numFmt", c.NumFmtID).
		int("font", c.FontID).
		int("fill", c.FillID).
		int("border", c.BorderID).
		int("xf", c.XfID).
		raw("align", alignment).
		bool("locked", c.Protection.Locked).
		bool("hidden", c.Protection.Hidden).
		bool("quote", c.QuotePrefix).
		bool("aN", c.ApplyNumberFormat).
		bool("aFo", c.ApplyFont).
		bool("aFi", c.ApplyFill).
		bool("aB", c.ApplyBorder).
		bool("aA", c.ApplyAlignment).
		bool("aP", c.ApplyProtection).
		String(), nil
}
