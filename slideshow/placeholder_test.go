package slideshow

import (
	"encoding/json"
	"testing"
)

func TestPlaceholderCategory(t *testing.T) {
	cases := map[PlaceholderType]Category{
		PlaceholderTitle:         CategoryTitle,
		PlaceholderCenteredTitle: CategoryTitle,
		PlaceholderBody:          CategoryBody,
		PlaceholderSubtitle:      CategoryBody,
		PlaceholderObject:        CategoryBody,
		PlaceholderTable:         CategoryBody,
		PlaceholderDate:          CategoryOther,
		PlaceholderSlideNumber:   CategoryOther,
		PlaceholderFooter:        CategoryOther,
		PlaceholderHeader:        CategoryBody,
		PlaceholderSlideImage:    CategoryBody,
		PlaceholderPicture:       CategoryBody,
		PlaceholderType(99):      CategoryOther,
	}
	for typ, want := range cases {
		if got := typ.Category(); got != want {
			t.Fatalf("%s: expected %s, got %s", typ, want, got)
		}
	}
}

func TestPlaceholderMasterFallback(t *testing.T) {
	cases := []struct {
		typ  PlaceholderType
		want PlaceholderType
		ok   bool
	}{
		{typ: PlaceholderCenteredTitle, want: PlaceholderTitle, ok: true},
		{typ: PlaceholderSubtitle, want: PlaceholderBody, ok: true},
		{typ: PlaceholderObject, want: PlaceholderBody, ok: true},
		{typ: PlaceholderTitle},
		{typ: PlaceholderFooter},
	}
	for _, tc := range cases {
		got, ok := tc.typ.MasterFallback()
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("%s: expected %s/%v, got %s/%v", tc.typ, tc.want, tc.ok, got, ok)
		}
	}
}

func TestPlaceholderTypeText(t *testing.T) {
	var ph Placeholder
	if err := json.Unmarshal([]byte(`{"type":"ctrTitle","idx":3}`), &ph); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ph.Type != PlaceholderCenteredTitle || ph.Index == nil || *ph.Index != 3 {
		t.Fatalf("unexpected placeholder %+v", ph)
	}
	if ph.String() != "ctrTitle#3" {
		t.Fatalf("unexpected string %q", ph.String())
	}
	if _, err := ParsePlaceholderType("banner"); err == nil {
		t.Fatalf("expected unknown type error")
	}
	if typ, err := ParsePlaceholderType(""); err != nil || typ != PlaceholderObject {
		t.Fatalf("expected empty type to mean obj, got %s %v", typ, err)
	}
}

func TestMasterPlaceholderPrefersExactType(t *testing.T) {
	master := &Master{Shapes: []*Shape{
		{ID: 1, Placeholder: PlaceholderOf(PlaceholderTitle)},
		{ID: 2, Placeholder: PlaceholderOf(PlaceholderCenteredTitle)},
		{ID: 3, Placeholder: PlaceholderOf(PlaceholderBody)},
	}}
	if shape := master.Placeholder(PlaceholderCenteredTitle); shape == nil || shape.ID != 2 {
		t.Fatalf("expected exact ctrTitle match, got %+v", shape)
	}
	if shape := master.Placeholder(PlaceholderSubtitle); shape == nil || shape.ID != 3 {
		t.Fatalf("expected subTitle to fall back to body, got %+v", shape)
	}
	if shape := master.Placeholder(PlaceholderDate); shape != nil {
		t.Fatalf("expected no match for dt, got %+v", shape)
	}

	layout := &Layout{Shapes: []*Shape{
		{ID: 1, Placeholder: PlaceholderOf(PlaceholderBody)},
		{ID: 2, Placeholder: IndexedPlaceholder(PlaceholderBody, 4)},
	}}
	if shape := layout.Placeholder(*IndexedPlaceholder(PlaceholderBody, 4)); shape == nil || shape.ID != 2 {
		t.Fatalf("expected index match, got %+v", shape)
	}
	if shape := layout.Placeholder(*IndexedPlaceholder(PlaceholderBody, 9)); shape == nil || shape.ID != 1 {
		t.Fatalf("expected type fallback, got %+v", shape)
	}
}
