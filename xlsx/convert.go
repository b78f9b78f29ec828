// Package xlsx moves style records between a Stylesheet and an excelize
// workbook. excelize owns the package and XML; this package only converts
// records and keeps the stylesheet's interning invariants on import.
//
// Conversion is lossy where excelize's Style model is narrower than the
// records: border colors and fill colors travel as RGB only, pattern fills
// keep their foreground color, and gradient fills collapse to two stops.
package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	styles "github.com/goliatone/go-styles"
)

var borderSides = []struct {
	name string
	side styles.BorderSide
}{
	{"left", styles.SideLeft},
	{"right", styles.SideRight},
	{"top", styles.SideTop},
	{"bottom", styles.SideBottom},
}

// ToStyle converts the effective format of cell xf xfIndex into an excelize
// style. Parent cell styles are flattened, so the result stands alone.
func ToStyle(sheet *styles.Stylesheet, xfIndex int) (*excelize.Style, error) {
	font, err := sheet.ResolveCellFont(xfIndex, -1)
	if err != nil {
		return nil, err
	}
	fill, err := sheet.ResolveCellFill(xfIndex, -1)
	if err != nil {
		return nil, err
	}
	border, err := sheet.ResolveCellBorder(xfIndex, -1)
	if err != nil {
		return nil, err
	}
	numFmt, err := sheet.ResolveCellNumberFormat(xfIndex, -1)
	if err != nil {
		return nil, err
	}
	alignment, err := sheet.ResolveCellAlignment(xfIndex)
	if err != nil {
		return nil, err
	}
	protection, err := sheet.ResolveCellProtection(xfIndex)
	if err != nil {
		return nil, err
	}

	style := &excelize.Style{
		Font:       exportFont(font),
		Fill:       exportFill(fill.Value),
		Border:     exportBorder(border.Value),
		Alignment:  exportAlignment(alignment.Value),
		Protection: &excelize.Protection{Locked: protection.Value.Locked, Hidden: protection.Value.Hidden},
	}
	id, err := sheet.PutNumberFormat(numFmt.Value)
	if err != nil {
		return nil, err
	}
	if id < styles.FirstCustomNumberFormat {
		style.NumFmt = id
	} else {
		code := numFmt.Value
		style.CustomNumFmt = &code
	}
	return style, nil
}

// DxfToStyle converts a differential format for excelize.NewConditionalStyle.
func DxfToStyle(dxf styles.DifferentialFormat) *excelize.Style {
	style := &excelize.Style{}
	if dxf.Font != nil {
		style.Font = exportFont(dxf.Font.Apply(styles.Font{}))
		style.Font.Family = ""
	}
	if dxf.Fill != nil {
		style.Fill = exportFill(*dxf.Fill)
	}
	if dxf.Border != nil {
		style.Border = exportBorder(*dxf.Border)
	}
	if dxf.NumberFormat != nil {
		code := dxf.NumberFormat.Code
		style.CustomNumFmt = &code
	}
	return style
}

// FromStyle interns style into sheet and returns the new cell format index.
// Every part present on style sets its apply flag.
func FromStyle(sheet *styles.Stylesheet, style *excelize.Style) (int, error) {
	if style == nil {
		return 0, nil
	}
	format := styles.DefaultCellFormat()

	if style.Font != nil {
		id, err := sheet.PutFont(importFont(style.Font))
		if err != nil {
			return -1, err
		}
		format.FontID, format.ApplyFont = id, true
	}
	if style.Fill.Type != "" {
		id, err := sheet.PutFill(importFill(style.Fill))
		if err != nil {
			return -1, err
		}
		format.FillID, format.ApplyFill = id, true
	}
	if len(style.Border) > 0 {
		id, err := sheet.PutBorder(importBorder(style.Border))
		if err != nil {
			return -1, err
		}
		format.BorderID, format.ApplyBorder = id, true
	}
	switch {
	case style.CustomNumFmt != nil && *style.CustomNumFmt != "":
		id, err := sheet.PutNumberFormat(*style.CustomNumFmt)
		if err != nil {
			return -1, err
		}
		format.NumFmtID, format.ApplyNumberFormat = id, true
	case style.NumFmt != 0:
		if _, ok := styles.BuiltinNumberFormat(style.NumFmt); !ok {
			return -1, fmt.Errorf("xlsx: unknown built-in number format %d", style.NumFmt)
		}
		format.NumFmtID, format.ApplyNumberFormat = style.NumFmt, true
	}
	if style.Alignment != nil {
		format.Alignment, format.ApplyAlignment = importAlignment(style.Alignment), true
	}
	if style.Protection != nil {
		format.Protection = styles.Protection{Locked: style.Protection.Locked, Hidden: style.Protection.Hidden}
		format.ApplyProtection = true
	}
	return sheet.PutCellFormat(format)
}

func exportFont(font styles.Font) *excelize.Font {
	out := &excelize.Font{
		Family: font.Name,
		Size:   font.Size,
		Bold:   font.Bold,
		Italic: font.Italic,
		Strike: font.Strike,
	}
	switch font.Underline {
	case styles.UnderlineSingle, styles.UnderlineSingleAccounting:
		out.Underline = "single"
	case styles.UnderlineDouble, styles.UnderlineDoubleAccounting:
		out.Underline = "double"
	}
	switch font.VertAlign {
	case styles.VerticalAlignSuperscript:
		out.VertAlign = "superscript"
	case styles.VerticalAlignSubscript:
		out.VertAlign = "subscript"
	}
	if font.Charset != 0 {
		charset := font.Charset
		out.Charset = &charset
	}
	switch font.Color.Kind {
	case styles.ColorRGB:
		out.Color = font.Color.RGB
	case styles.ColorTheme:
		theme := font.Color.Index
		out.ColorTheme = &theme
	case styles.ColorIndexed:
		out.ColorIndexed = font.Color.Index
	}
	out.ColorTint = font.Color.Tint
	return out
}

func importFont(font *excelize.Font) styles.Font {
	out := styles.Font{
		Name:   font.Family,
		Size:   font.Size,
		Bold:   font.Bold,
		Italic: font.Italic,
		Strike: font.Strike,
	}
	switch font.Underline {
	case "single":
		out.Underline = styles.UnderlineSingle
	case "double":
		out.Underline = styles.UnderlineDouble
	}
	switch font.VertAlign {
	case "superscript":
		out.VertAlign = styles.VerticalAlignSuperscript
	case "subscript":
		out.VertAlign = styles.VerticalAlignSubscript
	}
	if font.Charset != nil {
		out.Charset = *font.Charset
	}
	switch {
	case font.Color != "":
		out.Color = styles.RGB(font.Color)
	case font.ColorTheme != nil:
		out.Color = styles.Theme(*font.ColorTheme, 0)
	case font.ColorIndexed != 0:
		out.Color = styles.Indexed(font.ColorIndexed)
	}
	if !out.Color.IsZero() {
		out.Color.Tint = font.ColorTint
	}
	return out
}

// excelize shading variants indexed by gradient degree; path gradients use
// the center variant.
var gradientShading = map[float64]int{90: 0, 0: 1, 45: 2, 135: 3}

const pathShading = 5

func exportFill(fill styles.Fill) excelize.Fill {
	if fill.Gradient != nil && len(fill.Gradient.Stops) > 0 {
		stops := fill.Gradient.Stops
		colors := []string{rgbOf(stops[0].Color), rgbOf(stops[len(stops)-1].Color)}
		shading := pathShading
		if fill.Gradient.Type == styles.GradientLinear {
			shading = gradientShading[fill.Gradient.Degree]
		}
		return excelize.Fill{Type: "gradient", Color: colors, Shading: shading}
	}
	if fill.Pattern == styles.PatternNone {
		return excelize.Fill{}
	}
	out := excelize.Fill{Type: "pattern", Pattern: int(fill.Pattern)}
	if color := rgbOf(fill.Foreground); color != "" {
		out.Color = []string{color}
	}
	return out
}

func importFill(fill excelize.Fill) styles.Fill {
	if strings.EqualFold(fill.Type, "gradient") && len(fill.Color) >= 2 {
		gradient := &styles.Gradient{Stops: []styles.GradientStop{
			{Position: 0, Color: styles.RGB(fill.Color[0])},
			{Position: 1, Color: styles.RGB(fill.Color[1])},
		}}
		if fill.Shading == pathShading {
			gradient.Type = styles.GradientPath
			gradient.Left, gradient.Right, gradient.Top, gradient.Bottom = 0.5, 0.5, 0.5, 0.5
		} else {
			for degree, shading := range gradientShading {
				if shading == fill.Shading {
					gradient.Degree = degree
				}
			}
		}
		return styles.Fill{Gradient: gradient}
	}
	out := styles.Fill{Pattern: styles.PatternType(fill.Pattern)}
	if len(fill.Color) > 0 && fill.Color[0] != "" {
		out.Foreground = styles.RGB(fill.Color[0])
	}
	return out
}

func exportBorder(border styles.Border) []excelize.Border {
	var out []excelize.Border
	for _, side := range borderSides {
		edge := border.Edge(side.side)
		if edge.Style == styles.BorderNone {
			continue
		}
		out = append(out, excelize.Border{Type: side.name, Color: rgbOf(edge.Color), Style: int(edge.Style)})
	}
	if border.Diagonal.Style != styles.BorderNone {
		diagonal := excelize.Border{Color: rgbOf(border.Diagonal.Color), Style: int(border.Diagonal.Style)}
		if border.DiagonalUp {
			diagonal.Type = "diagonalUp"
			out = append(out, diagonal)
		}
		if border.DiagonalDown {
			diagonal.Type = "diagonalDown"
			out = append(out, diagonal)
		}
	}
	return out
}

func importBorder(borders []excelize.Border) styles.Border {
	var out styles.Border
	for _, b := range borders {
		edge := styles.BorderEdge{Style: styles.BorderStyle(b.Style)}
		if b.Color != "" {
			edge.Color = styles.RGB(b.Color)
		}
		switch b.Type {
		case "diagonalUp":
			out.Diagonal, out.DiagonalUp = edge, true
			continue
		case "diagonalDown":
			out.Diagonal, out.DiagonalDown = edge, true
			continue
		}
		for _, side := range borderSides {
			if side.name == b.Type {
				out = out.WithEdge(side.side, edge)
			}
		}
	}
	return out
}

func exportAlignment(a styles.Alignment) *excelize.Alignment {
	out := &excelize.Alignment{
		WrapText:     a.WrapText,
		ShrinkToFit:  a.ShrinkToFit,
		Indent:       a.Indent,
		TextRotation: a.TextRotation,
	}
	if a.Horizontal != styles.HorizontalGeneral {
		out.Horizontal = a.Horizontal.String()
	}
	if a.Vertical != styles.VerticalBottom {
		out.Vertical = a.Vertical.String()
	}
	return out
}

func importAlignment(a *excelize.Alignment) styles.Alignment {
	out := styles.Alignment{
		WrapText:     a.WrapText,
		ShrinkToFit:  a.ShrinkToFit,
		Indent:       a.Indent,
		TextRotation: a.TextRotation,
	}
	for h := styles.HorizontalGeneral; h <= styles.HorizontalDistributed; h++ {
		if strings.EqualFold(h.String(), a.Horizontal) {
			out.Horizontal = h
		}
	}
	for v := styles.VerticalBottom; v <= styles.VerticalDistributed; v++ {
		if strings.EqualFold(v.String(), a.Vertical) {
			out.Vertical = v
		}
	}
	return out
}

func rgbOf(color styles.Color) string {
	if color.Kind != styles.ColorRGB {
		return ""
	}
	return color.RGB
}
