package styles

import "fmt"

// CellStyle is a handle to a cell format inside a stylesheet. Stored formats
// are shared by index and never edited in place: every setter builds a new
// format, interns it and moves the handle to the resulting index.
type CellStyle struct {
	sheet *Stylesheet
	index int
}

// CreateCellStyle returns a handle on the default cell format (index 0).
func (s *Stylesheet) CreateCellStyle() *CellStyle {
	return &CellStyle{sheet: s}
}

// CellStyleAt returns a handle on the cell format at index.
func (s *Stylesheet) CellStyleAt(index int) (*CellStyle, error) {
	if !s.cellXfs.Has(index) {
		return nil, &IndexError{Table: TableCellXfs, Index: index, Size: s.cellXfs.Size()}
	}
	return &CellStyle{sheet: s, index: index}, nil
}

// Index returns the cell format index the handle currently points at.
func (c *CellStyle) Index() int {
	return c.index
}

// Stylesheet returns the owning stylesheet.
func (c *CellStyle) Stylesheet() *Stylesheet {
	return c.sheet
}

// Format returns a copy of the current cell format.
func (c *CellStyle) Format() (CellFormat, error) {
	return c.sheet.cellXfs.Get(c.index)
}

func (c *CellStyle) update(property string, mutate func(*CellFormat) error) error {
	current, err := c.Format()
	if err != nil {
		return err
	}
	if err := mutate(&current); err != nil {
		return err
	}
	index, err := c.sheet.cellXfs.Intern(current)
	if err != nil {
		return err
	}
	previous := c.index
	c.index = index
	c.sheet.cellStyleMoved(previous, index, property)
	return nil
}

// SetBorderStyle sets the line style of one edge. BorderNone removes the edge
// together with its color.
func (c *CellStyle) SetBorderStyle(side BorderSide, style BorderStyle) error {
	if !style.Valid() {
		return malformed("border", "invalid border style %d", int(style))
	}
	return c.updateBorder(side, func(edge BorderEdge) BorderEdge {
		if style == BorderNone {
			return BorderEdge{}
		}
		edge.Style = style
		return edge
	})
}

// SetBorderColor sets the color of one edge.
func (c *CellStyle) SetBorderColor(side BorderSide, color Color) error {
	return c.updateBorder(side, func(edge BorderEdge) BorderEdge {
		edge.Color = color
		return edge
	})
}

func (c *CellStyle) updateBorder(side BorderSide, change func(BorderEdge) BorderEdge) error {
	if side < SideLeft || side > SideDiagonal {
		return fmt.Errorf("styles: invalid border side %d", int(side))
	}
	return c.update("border."+side.String(), func(format *CellFormat) error {
		border, err := c.sheet.borders.Get(format.BorderID)
		if err != nil {
			return err
		}
		border = border.WithEdge(side, change(border.Edge(side)))
		id, err := c.sheet.borders.Intern(border)
		if err != nil {
			return err
		}
		format.BorderID = id
		format.ApplyBorder = true
		return nil
	})
}

// SetFillPattern sets the fill pattern, dropping any gradient.
func (c *CellStyle) SetFillPattern(pattern PatternType) error {
	return c.updateFill("fill.pattern", func(fill Fill) Fill {
		fill.Gradient = nil
		fill.Pattern = pattern
		return fill
	})
}

// SetFillForeground sets the pattern foreground color.
func (c *CellStyle) SetFillForeground(color Color) error {
	return c.updateFill("fill.fg", func(fill Fill) Fill {
		fill.Gradient = nil
		fill.Foreground = color
		return fill
	})
}

// SetFillBackground sets the pattern background color.
func (c *CellStyle) SetFillBackground(color Color) error {
	return c.updateFill("fill.bg", func(fill Fill) Fill {
		fill.Gradient = nil
		fill.Background = color
		return fill
	})
}

// SetFill replaces the whole fill.
func (c *CellStyle) SetFill(fill Fill) error {
	return c.updateFill("fill", func(Fill) Fill {
		return fill.Clone()
	})
}

func (c *CellStyle) updateFill(property string, change func(Fill) Fill) error {
	return c.update(property, func(format *CellFormat) error {
		fill, err := c.sheet.fills.Get(format.FillID)
		if err != nil {
			return err
		}
		id, err := c.sheet.fills.Intern(change(fill))
		if err != nil {
			return err
		}
		format.FillID = id
		format.ApplyFill = true
		return nil
	})
}

// SetFont interns font and points the format at it.
func (c *CellStyle) SetFont(font Font) error {
	return c.update("font", func(format *CellFormat) error {
		id, err := c.sheet.fonts.Intern(font)
		if err != nil {
			return err
		}
		format.FontID = id
		format.ApplyFont = true
		return nil
	})
}

// SetDataFormat interns a number format code and points the format at it.
func (c *CellStyle) SetDataFormat(code string) error {
	return c.update("numFmt", func(format *CellFormat) error {
		id, err := c.sheet.PutNumberFormat(code)
		if err != nil {
			return err
		}
		format.NumFmtID = id
		format.ApplyNumberFormat = true
		return nil
	})
}

// SetDataFormatID points the format at an existing number format id.
func (c *CellStyle) SetDataFormatID(id int) error {
	if !c.sheet.numFmts.Has(id) {
		return fmt.Errorf("%w: number format %d", ErrIndexOutOfRange, id)
	}
	return c.update("numFmt", func(format *CellFormat) error {
		format.NumFmtID = id
		format.ApplyNumberFormat = true
		return nil
	})
}

// SetAlignment replaces the alignment.
func (c *CellStyle) SetAlignment(alignment Alignment) error {
	return c.update("alignment", func(format *CellFormat) error {
		format.Alignment = alignment
		format.ApplyAlignment = true
		return nil
	})
}

// SetWrapText toggles text wrapping.
func (c *CellStyle) SetWrapText(wrap bool) error {
	return c.update("alignment.wrapText", func(format *CellFormat) error {
		format.Alignment.WrapText = wrap
		format.ApplyAlignment = true
		return nil
	})
}

// SetProtection replaces the protection flags.
func (c *CellStyle) SetProtection(protection Protection) error {
	return c.update("protection", func(format *CellFormat) error {
		format.Protection = protection
		format.ApplyProtection = true
		return nil
	})
}

// SetQuotePrefix toggles the quote prefix flag.
func (c *CellStyle) SetQuotePrefix(quote bool) error {
	return c.update("quotePrefix", func(format *CellFormat) error {
		format.QuotePrefix = quote
		return nil
	})
}

// SetParentStyle points the format at a named cell style format.
func (c *CellStyle) SetParentStyle(xfID int) error {
	if !c.sheet.cellStyleXfs.Has(xfID) {
		return &IndexError{Table: TableCellStyleXfs, Index: xfID, Size: c.sheet.cellStyleXfs.Size()}
	}
	return c.update("xfId", func(format *CellFormat) error {
		format.XfID = xfID
		return nil
	})
}

// Font returns the font stored for this format, ignoring inheritance.
func (c *CellStyle) Font() (Font, error) {
	format, err := c.Format()
	if err != nil {
		return Font{}, err
	}
	return c.sheet.fonts.Get(format.FontID)
}

// Fill returns the fill stored for this format, ignoring inheritance.
func (c *CellStyle) Fill() (Fill, error) {
	format, err := c.Format()
	if err != nil {
		return Fill{}, err
	}
	return c.sheet.fills.Get(format.FillID)
}

// Border returns the border stored for this format, ignoring inheritance.
func (c *CellStyle) Border() (Border, error) {
	format, err := c.Format()
	if err != nil {
		return Border{}, err
	}
	return c.sheet.borders.Get(format.BorderID)
}

// DataFormat returns the number format code.
func (c *CellStyle) DataFormat() (string, error) {
	format, err := c.Format()
	if err != nil {
		return "", err
	}
	return c.sheet.numFmts.Code(format.NumFmtID)
}

// CloneStyleFrom makes c share other's format. Handles from another
// stylesheet have their records interned into c's stylesheet; the parent
// style link is reset to 0 in that case.
func (c *CellStyle) CloneStyleFrom(other *CellStyle) error {
	if other == nil {
		return fmt.Errorf("styles: clone source is nil")
	}
	if other.sheet == c.sheet {
		previous := c.index
		c.index = other.index
		c.sheet.cellStyleMoved(previous, c.index, "clone")
		return nil
	}
	source, err := other.Format()
	if err != nil {
		return err
	}
	font, err := other.sheet.fonts.Get(source.FontID)
	if err != nil {
		return err
	}
	fill, err := other.sheet.fills.Get(source.FillID)
	if err != nil {
		return err
	}
	border, err := other.sheet.borders.Get(source.BorderID)
	if err != nil {
		return err
	}
	code, err := other.sheet.numFmts.Code(source.NumFmtID)
	if err != nil {
		return err
	}
	return c.update("clone", func(format *CellFormat) error {
		cloned := source
		cloned.XfID = 0
		if cloned.FontID, err = c.sheet.fonts.Intern(font); err != nil {
			return err
		}
		if cloned.FillID, err = c.sheet.fills.Intern(fill); err != nil {
			return err
		}
		if cloned.BorderID, err = c.sheet.borders.Intern(border); err != nil {
			return err
		}
		if cloned.NumFmtID, err = c.sheet.PutNumberFormat(code); err != nil {
			return err
		}
		*format = cloned
		return nil
	})
}
