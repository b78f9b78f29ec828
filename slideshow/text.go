package slideshow

import styles "github.com/goliatone/go-styles"

// MaxIndentLevel is the deepest list level (lvl9pPr is level 8).
const MaxIndentLevel = 8

// DefaultFontSize is the size in points used when no level defines one.
const DefaultFontSize = 18.0

// TextAlign is a paragraph alignment.
type TextAlign string

const (
	AlignLeft      TextAlign = "l"
	AlignCenter    TextAlign = "ctr"
	AlignRight     TextAlign = "r"
	AlignJustified TextAlign = "just"
)

// ParagraphProps holds the paragraph and default run properties of one list
// level. Nil fields are undefined at that level.
type ParagraphProps struct {
	Align       *TextAlign    `json:"algn,omitempty"`
	MarginLeft  *float64      `json:"marL,omitempty"`
	Indent      *float64      `json:"indent,omitempty"`
	SpaceBefore *float64      `json:"spcBef,omitempty"`
	SpaceAfter  *float64      `json:"spcAft,omitempty"`
	LineSpacing *float64      `json:"lnSpc,omitempty"`
	Bullet      *string       `json:"buChar,omitempty"`
	FontSize    *float64      `json:"sz,omitempty"`
	FontColor   *styles.Color `json:"color,omitempty"`
	Bold        *bool         `json:"b,omitempty"`
	Italic      *bool         `json:"i,omitempty"`
	Typeface    *string       `json:"latin,omitempty"`
}

// ListStyle holds paragraph properties per indent level.
type ListStyle struct {
	Levels [MaxIndentLevel + 1]*ParagraphProps `json:"levels"`
}

// Level returns the properties for level, or nil when the level is undefined
// or out of range.
func (l *ListStyle) Level(level int) *ParagraphProps {
	if l == nil || level < 0 || level > MaxIndentLevel {
		return nil
	}
	return l.Levels[level]
}

// SetLevel stores props at level. Out-of-range levels are ignored.
func (l *ListStyle) SetLevel(level int, props ParagraphProps) {
	if level < 0 || level > MaxIndentLevel {
		return
	}
	l.Levels[level] = &props
}

// TextStyles is a master's txStyles: one list style per category.
type TextStyles struct {
	Title ListStyle `json:"titleStyle"`
	Body  ListStyle `json:"bodyStyle"`
	Other ListStyle `json:"otherStyle"`
}

// ForCategory returns the list style a master applies to category.
func (t *TextStyles) ForCategory(category Category) *ListStyle {
	switch category {
	case CategoryTitle:
		return &t.Title
	case CategoryBody:
		return &t.Body
	default:
		return &t.Other
	}
}

// Paragraph is one paragraph of a text body.
type Paragraph struct {
	Level int            `json:"lvl,omitempty"`
	Props ParagraphProps `json:"pPr"`
	Text  string         `json:"text,omitempty"`
}

// TextBody is a shape's txBody.
type TextBody struct {
	ListStyle  ListStyle   `json:"lstStyle"`
	Paragraphs []Paragraph `json:"paragraphs,omitempty"`
}

func (b *TextBody) listLevel(level int) *ParagraphProps {
	if b == nil {
		return nil
	}
	return b.ListStyle.Level(level)
}

// paragraphFetcher builds a named fetcher over one ParagraphProps field.
func paragraphFetcher[T any](property string, field func(*ParagraphProps) *T) styles.NamedFetcher[*ParagraphProps, T] {
	return styles.Named[*ParagraphProps, T](property, styles.PointerFetcher(func(props *ParagraphProps) *T {
		if props == nil {
			return nil
		}
		return field(props)
	}))
}

var (
	FontSizeFetcher    = paragraphFetcher("sz", func(p *ParagraphProps) *float64 { return p.FontSize })
	AlignFetcher       = paragraphFetcher("algn", func(p *ParagraphProps) *TextAlign { return p.Align })
	MarginLeftFetcher  = paragraphFetcher("marL", func(p *ParagraphProps) *float64 { return p.MarginLeft })
	IndentFetcher      = paragraphFetcher("indent", func(p *ParagraphProps) *float64 { return p.Indent })
	BulletFetcher      = paragraphFetcher("buChar", func(p *ParagraphProps) *string { return p.Bullet })
	FontColorFetcher   = paragraphFetcher("color", func(p *ParagraphProps) *styles.Color { return p.FontColor })
	TypefaceFetcher    = paragraphFetcher("latin", func(p *ParagraphProps) *string { return p.Typeface })
	LineSpacingFetcher = paragraphFetcher("lnSpc", func(p *ParagraphProps) *float64 { return p.LineSpacing })
)
