package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	styles "github.com/goliatone/go-styles"
)

func newTable(w io.Writer, title string, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	t.AppendHeader(header)
	return t
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func describeFont(f styles.Font) string {
	parts := []string{fmt.Sprintf("%s %g", f.Name, f.Size)}
	if f.Bold {
		parts = append(parts, "bold")
	}
	if f.Italic {
		parts = append(parts, "italic")
	}
	if f.Strike {
		parts = append(parts, "strike")
	}
	if f.Underline != styles.UnderlineNone {
		parts = append(parts, "underline="+f.Underline.String())
	}
	if !f.Color.IsZero() {
		parts = append(parts, f.Color.String())
	}
	return strings.Join(parts, " ")
}

func describeFill(f styles.Fill) string {
	if f.Gradient != nil {
		return fmt.Sprintf("gradient %s, %d stops", f.Gradient.Type, len(f.Gradient.Stops))
	}
	out := f.Pattern.String()
	if !f.Foreground.IsZero() {
		out += " fg=" + f.Foreground.String()
	}
	if !f.Background.IsZero() {
		out += " bg=" + f.Background.String()
	}
	return out
}

func describeBorder(b styles.Border) string {
	if b.IsZero() {
		return "none"
	}
	var parts []string
	for _, side := range []styles.BorderSide{styles.SideLeft, styles.SideRight, styles.SideTop, styles.SideBottom, styles.SideDiagonal} {
		edge := b.Edge(side)
		if edge.Style == styles.BorderNone {
			continue
		}
		part := side.String() + "=" + edge.Style.String()
		if !edge.Color.IsZero() {
			part += "(" + edge.Color.String() + ")"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}

func describeAlignment(a styles.Alignment) string {
	out := fmt.Sprintf("h=%s v=%s", a.Horizontal, a.Vertical)
	if a.WrapText {
		out += " wrap"
	}
	if a.Indent > 0 {
		out += fmt.Sprintf(" indent=%d", a.Indent)
	}
	if a.TextRotation != 0 {
		out += fmt.Sprintf(" rotate=%d", a.TextRotation)
	}
	return out
}

func describeProtection(p styles.Protection) string {
	return fmt.Sprintf("locked=%t hidden=%t", p.Locked, p.Hidden)
}
