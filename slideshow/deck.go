package slideshow

import (
	"errors"
	"fmt"
	"sync"

	styles "github.com/goliatone/go-styles"
)

var (
	// ErrUnknownMaster reports a master id outside the deck.
	ErrUnknownMaster = errors.New("slideshow: unknown master")
	// ErrUnknownLayout reports a layout id outside the deck.
	ErrUnknownLayout = errors.New("slideshow: unknown layout")
	// ErrUnknownSlide reports a slide id outside the deck.
	ErrUnknownSlide = errors.New("slideshow: unknown slide")
	// ErrUnknownShape reports a shape id missing from its slide.
	ErrUnknownShape = errors.New("slideshow: unknown shape")
)

type (
	MasterID int
	LayoutID int
	SlideID  int
)

// Shape is a shape on a slide, layout or master.
type Shape struct {
	ID          int          `json:"id"`
	Name        string       `json:"name,omitempty"`
	Placeholder *Placeholder `json:"ph,omitempty"`
	Holder      Holder       `json:"-"`
	Text        *TextBody    `json:"txBody,omitempty"`
}

// Master is a slide master. It never references its layouts or slides.
type Master struct {
	Name       string                `json:"name"`
	Shapes     []*Shape              `json:"shapes"`
	TextStyles TextStyles            `json:"txStyles"`
	Background *BackgroundProperties `json:"bg,omitempty"`
}

// Layout is a slide layout bound to one master.
type Layout struct {
	Name       string                `json:"name"`
	MasterID   MasterID              `json:"master"`
	Shapes     []*Shape              `json:"shapes"`
	Background *BackgroundProperties `json:"bg,omitempty"`
}

// Slide is a slide bound to one layout.
type Slide struct {
	LayoutID   LayoutID              `json:"layout"`
	Shapes     []*Shape              `json:"shapes"`
	Background *BackgroundProperties `json:"bg,omitempty"`
}

// Shape returns the shape with id.
func (s *Slide) Shape(id int) (*Shape, bool) {
	return findShape(s.Shapes, id)
}

func findShape(shapes []*Shape, id int) (*Shape, bool) {
	for _, shape := range shapes {
		if shape != nil && shape.ID == id {
			return shape, true
		}
	}
	return nil, false
}

// placeholderByIndex and placeholderByType mirror the sheet lookups used when
// a shape inherits from its layout or master.
func placeholderByIndex(shapes []*Shape, index int) *Shape {
	for _, shape := range shapes {
		if shape != nil && shape.Placeholder != nil && shape.Placeholder.Index != nil && *shape.Placeholder.Index == index {
			return shape
		}
	}
	return nil
}

func placeholderByType(shapes []*Shape, t PlaceholderType) *Shape {
	for _, shape := range shapes {
		if shape != nil && shape.Placeholder != nil && shape.Placeholder.Type == t {
			return shape
		}
	}
	return nil
}

// Placeholder finds the layout placeholder for ph: by index first, then by
// exact type.
func (l *Layout) Placeholder(ph Placeholder) *Shape {
	if ph.Index != nil {
		if shape := placeholderByIndex(l.Shapes, *ph.Index); shape != nil {
			return shape
		}
	}
	return placeholderByType(l.Shapes, ph.Type)
}

// Placeholder finds the master placeholder for t: by exact type, then by the
// type's master fallback.
func (m *Master) Placeholder(t PlaceholderType) *Shape {
	if shape := placeholderByType(m.Shapes, t); shape != nil {
		return shape
	}
	if fallback, ok := t.MasterFallback(); ok {
		return placeholderByType(m.Shapes, fallback)
	}
	return nil
}

// DeckOption configures a Deck.
type DeckOption func(*Deck)

// WithLogger reports every resolution made through the deck's chains.
func WithLogger(logger styles.StyleLogger) DeckOption {
	return func(d *Deck) {
		d.logger = logger
	}
}

// Deck is an arena of masters, layouts and slides addressed by id. Layouts
// point at masters and slides point at layouts; nothing points back.
type Deck struct {
	mu      sync.RWMutex
	masters []*Master
	layouts []*Layout
	slides  []*Slide
	logger  styles.StyleLogger
}

// NewDeck returns an empty deck.
func NewDeck(opts ...DeckOption) *Deck {
	d := &Deck{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// AddMaster stores master and returns its id.
func (d *Deck) AddMaster(master Master) MasterID {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.masters = append(d.masters, &master)
	return MasterID(len(d.masters) - 1)
}

// AddLayout binds layout to masterID and stores it.
func (d *Deck) AddLayout(masterID MasterID, layout Layout) (LayoutID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if int(masterID) < 0 || int(masterID) >= len(d.masters) {
		return -1, fmt.Errorf("%w: %d", ErrUnknownMaster, masterID)
	}
	layout.MasterID = masterID
	d.layouts = append(d.layouts, &layout)
	return LayoutID(len(d.layouts) - 1), nil
}

// AddSlide binds slide to layoutID and stores it.
func (d *Deck) AddSlide(layoutID LayoutID, slide Slide) (SlideID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if int(layoutID) < 0 || int(layoutID) >= len(d.layouts) {
		return -1, fmt.Errorf("%w: %d", ErrUnknownLayout, layoutID)
	}
	slide.LayoutID = layoutID
	d.slides = append(d.slides, &slide)
	return SlideID(len(d.slides) - 1), nil
}

// Master returns the master with id.
func (d *Deck) Master(id MasterID) (*Master, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.master(id)
}

// Layout returns the layout with id.
func (d *Deck) Layout(id LayoutID) (*Layout, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.layout(id)
}

// Slide returns the slide with id.
func (d *Deck) Slide(id SlideID) (*Slide, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.slide(id)
}

// Counts reports the number of masters, layouts and slides.
func (d *Deck) Counts() (masters, layouts, slides int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.masters), len(d.layouts), len(d.slides)
}

func (d *Deck) master(id MasterID) (*Master, error) {
	if int(id) < 0 || int(id) >= len(d.masters) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMaster, id)
	}
	return d.masters[id], nil
}

func (d *Deck) layout(id LayoutID) (*Layout, error) {
	if int(id) < 0 || int(id) >= len(d.layouts) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLayout, id)
	}
	return d.layouts[id], nil
}

func (d *Deck) slide(id SlideID) (*Slide, error) {
	if int(id) < 0 || int(id) >= len(d.slides) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSlide, id)
	}
	return d.slides[id], nil
}

// lineage is a slide shape with the layout and master shapes it inherits
// from. layoutShape and masterShape are nil when no placeholder matches.
type lineage struct {
	shape       *Shape
	layoutShape *Shape
	masterShape *Shape
	master      *Master
	category    Category
}

func (d *Deck) lineage(slideID SlideID, shapeID int) (lineage, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	slide, err := d.slide(slideID)
	if err != nil {
		return lineage{}, err
	}
	shape, ok := slide.Shape(shapeID)
	if !ok {
		return lineage{}, fmt.Errorf("%w: %d on slide %d", ErrUnknownShape, shapeID, slideID)
	}
	layout, err := d.layout(slide.LayoutID)
	if err != nil {
		return lineage{}, err
	}
	master, err := d.master(layout.MasterID)
	if err != nil {
		return lineage{}, err
	}

	out := lineage{shape: shape, master: master, category: CategoryOther}
	if shape.Placeholder == nil {
		return out, nil
	}
	key := *shape.Placeholder
	out.layoutShape = layout.Placeholder(key)
	if out.layoutShape != nil && out.layoutShape.Placeholder != nil {
		// An index match carries the authoritative type.
		key.Type = out.layoutShape.Placeholder.Type
	}
	out.masterShape = master.Placeholder(key.Type)
	out.category = key.Type.Category()
	return out, nil
}
