package slideshow

import (
	"fmt"
	"strings"
)

// PlaceholderType is the ST_PlaceholderType of a placeholder shape. The zero
// value is obj, the type assumed when a placeholder omits the attribute.
type PlaceholderType int

const (
	PlaceholderObject PlaceholderType = iota
	PlaceholderTitle
	PlaceholderBody
	PlaceholderCenteredTitle
	PlaceholderSubtitle
	PlaceholderDate
	PlaceholderSlideNumber
	PlaceholderFooter
	PlaceholderHeader
	PlaceholderChart
	PlaceholderTable
	PlaceholderClipArt
	PlaceholderDiagram
	PlaceholderMedia
	PlaceholderSlideImage
	PlaceholderPicture
)

var placeholderNames = [...]string{
	"obj", "title", "body", "ctrTitle", "subTitle", "dt", "sldNum", "ftr", "hdr",
	"chart", "tbl", "clipArt", "dgm", "media", "sldImg", "pic",
}

// Valid reports whether t is a known placeholder type.
func (t PlaceholderType) Valid() bool {
	return t >= 0 && int(t) < len(placeholderNames)
}

func (t PlaceholderType) String() string {
	if t.Valid() {
		return placeholderNames[t]
	}
	return fmt.Sprintf("PlaceholderType(%d)", int(t))
}

// ParsePlaceholderType converts an OOXML placeholder type name. An empty value
// yields obj.
func ParsePlaceholderType(value string) (PlaceholderType, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return PlaceholderObject, nil
	}
	for i, name := range placeholderNames {
		if strings.EqualFold(name, value) {
			return PlaceholderType(i), nil
		}
	}
	return PlaceholderObject, fmt.Errorf("slideshow: unknown placeholder type %q", value)
}

// MarshalText implements encoding.TextMarshaler.
func (t PlaceholderType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("slideshow: invalid placeholder type %d", int(t))
	}
	return []byte(placeholderNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *PlaceholderType) UnmarshalText(text []byte) error {
	parsed, err := ParsePlaceholderType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Category is the coarse text style bucket a master applies to a placeholder.
type Category int

const (
	CategoryOther Category = iota
	CategoryTitle
	CategoryBody
)

func (c Category) String() string {
	switch c {
	case CategoryTitle:
		return "title"
	case CategoryBody:
		return "body"
	default:
		return "other"
	}
}

// Category returns the master text style bucket for t. Date, footer and
// slide number placeholders use the master's other style; every remaining
// valid type uses the body style.
func (t PlaceholderType) Category() Category {
	switch t {
	case PlaceholderTitle, PlaceholderCenteredTitle:
		return CategoryTitle
	case PlaceholderDate, PlaceholderFooter, PlaceholderSlideNumber:
		return CategoryOther
	}
	if !t.Valid() {
		return CategoryOther
	}
	return CategoryBody
}

var masterFallbacks = map[PlaceholderType]PlaceholderType{
	PlaceholderCenteredTitle: PlaceholderTitle,
	PlaceholderSubtitle:      PlaceholderBody,
	PlaceholderObject:        PlaceholderBody,
}

// MasterFallback returns the type to look up on the master when no master
// placeholder has exactly type t. ok is false when t has no fallback.
func (t PlaceholderType) MasterFallback() (PlaceholderType, bool) {
	fallback, ok := masterFallbacks[t]
	return fallback, ok
}

// Placeholder identifies a placeholder by type and, optionally, by index.
type Placeholder struct {
	Type  PlaceholderType `json:"type"`
	Index *int            `json:"idx,omitempty"`
}

// PlaceholderOf builds a placeholder without an index.
func PlaceholderOf(t PlaceholderType) *Placeholder {
	return &Placeholder{Type: t}
}

// IndexedPlaceholder builds a placeholder matched by index first.
func IndexedPlaceholder(t PlaceholderType, index int) *Placeholder {
	return &Placeholder{Type: t, Index: &index}
}

func (p Placeholder) String() string {
	if p.Index == nil {
		return p.Type.String()
	}
	return fmt.Sprintf("%s#%d", p.Type, *p.Index)
}
