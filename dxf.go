package styles

// FontPatch overrides selected font attributes. Nil fields leave the base font
// untouched.
type FontPatch struct {
	Name      *string         `json:"name,omitempty"`
	Size      *float64        `json:"size,omitempty"`
	Bold      *bool           `json:"bold,omitempty"`
	Italic    *bool           `json:"italic,omitempty"`
	Strike    *bool           `json:"strike,omitempty"`
	Underline *UnderlineStyle `json:"underline,omitempty"`
	Color     *Color          `json:"color,omitempty"`
}

// Apply returns base with the patch's non-nil fields applied.
func (p FontPatch) Apply(base Font) Font {
	if p.Name != nil {
		base.Name = *p.Name
	}
	if p.Size != nil {
		base.Size = *p.Size
	}
	if p.Bold != nil {
		base.Bold = *p.Bold
	}
	if p.Italic != nil {
		base.Italic = *p.Italic
	}
	if p.Strike != nil {
		base.Strike = *p.Strike
	}
	if p.Underline != nil {
		base.Underline = *p.Underline
	}
	if p.Color != nil {
		base.Color = *p.Color
	}
	return base
}

func (p FontPatch) clone() FontPatch {
	out := FontPatch{}
	out.Name = clonePtr(p.Name)
	out.Size = clonePtr(p.Size)
	out.Bold = clonePtr(p.Bold)
	out.Italic = clonePtr(p.Italic)
	out.Strike = clonePtr(p.Strike)
	out.Underline = clonePtr(p.Underline)
	out.Color = clonePtr(p.Color)
	return out
}

func (p FontPatch) key() (string, error) {
	kb := newKey("fontPatch")
	if p.Name != nil {
		kb.str("name", *p.Name)
	}
	if p.Size != nil {
		if *p.Size < 0 {
			return "", malformed("dxf", "invalid font size %g", *p.Size)
		}
		kb.float("sz", *p.Size)
	}
	if p.Bold != nil {
		kb.bool("b", *p.Bold)
	}
	if p.Italic != nil {
		kb.bool("i", *p.Italic)
	}
	if p.Strike != nil {
		kb.bool("s", *p.Strike)
	}
	if p.Underline != nil {
		if !p.Underline.Valid() {
			return "", malformed("dxf", "invalid underline %d", int(*p.Underline))
		}
		kb.raw("u", p.Underline.String())
	}
	if p.Color != nil {
		color, err := p.Color.key()
		if err != nil {
			return "", malformed("dxf", "font color: %w", err)
		}
		kb.raw("color", color)
	}
	return kb.String(), nil
}

// DifferentialFormat (dxf) is the partial format applied by conditional
// formatting. Nil parts do not override the cell's own format.
type DifferentialFormat struct {
	Font         *FontPatch    `json:"font,omitempty"`
	Fill         *Fill         `json:"fill,omitempty"`
	Border       *Border       `json:"border,omitempty"`
	NumberFormat *NumberFormat `json:"numFmt,omitempty"`
}

// Clone implements Cloner.
func (d DifferentialFormat) Clone() DifferentialFormat {
	out := DifferentialFormat{}
	if d.Font != nil {
		font := d.Font.clone()
		out.Font = &font
	}
	if d.Fill != nil {
		fill := d.Fill.Clone()
		out.Fill = &fill
	}
	out.Border = clonePtr(d.Border)
	out.NumberFormat = clonePtr(d.NumberFormat)
	return out
}

// StructuralKey implements Record.
func (d DifferentialFormat) StructuralKey() (string, error) {
	kb := newKey("dxf")
	if d.Font != nil {
		font, err := d.Font.key()
		if err != nil {
			return "", err
		}
		kb.raw("font", font)
	}
	if d.Fill != nil {
		fill, err := d.Fill.StructuralKey()
		if err != nil {
			return "", err
		}
		kb.raw("fill", fill)
	}
	if d.Border != nil {
		border, err := d.Border.StructuralKey()
		if err != nil {
			return "", err
		}
		kb.raw("border", border)
	}
	if d.NumberFormat != nil {
		numFmt, err := d.NumberFormat.StructuralKey()
		if err != nil {
			return "", err
		}
		kb.raw("numFmt", numFmt)
	}
	return kb.String(), nil
}

func clonePtr[T any](value *T) *T {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}
