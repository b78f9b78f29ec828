package slideshow

import (
	"fmt"

	styles "github.com/goliatone/go-styles"
	"github.com/goliatone/go-styles/layering"
)

// Chain level names used by the deck's chains.
const (
	LevelNameSlide      = "slide"
	LevelNameLayout     = "layout"
	LevelNameMaster     = "master"
	LevelNameParagraph  = "paragraph"
	LevelNameListStyle  = "lstStyle"
	LevelNameTextStyles = "txStyles"
)

func holderOf(shape *Shape) Holder {
	if shape == nil {
		return nil
	}
	return shape.Holder
}

func textOf(shape *Shape) *TextBody {
	if shape == nil {
		return nil
	}
	return shape.Text
}

func (d *Deck) chain(levels []styles.ChainLevel[Holder]) (*styles.Chain[Holder], error) {
	chain, err := styles.NewChain(levels...)
	if err != nil {
		return nil, err
	}
	if d.logger != nil {
		chain = chain.WithLogger(d.logger)
	}
	return chain, nil
}

// ShapeChain builds [slide shape, layout placeholder, master placeholder] for
// a shape. Placeholder levels without a match are left out.
func (d *Deck) ShapeChain(slideID SlideID, shapeID int) (*styles.Chain[Holder], error) {
	line, err := d.lineage(slideID, shapeID)
	if err != nil {
		return nil, err
	}
	levels := []styles.ChainLevel[Holder]{
		{Level: layering.LevelInstance, Name: LevelNameSlide, Source: holderOf(line.shape)},
	}
	if line.layoutShape != nil {
		levels = append(levels, styles.ChainLevel[Holder]{Level: layering.LevelLayout, Name: LevelNameLayout, Source: holderOf(line.layoutShape)})
	}
	if line.masterShape != nil {
		levels = append(levels, styles.ChainLevel[Holder]{Level: layering.LevelMaster, Name: LevelNameMaster, Source: holderOf(line.masterShape)})
	}
	return d.chain(levels)
}

// BackgroundChain builds [slide, layout, master] background levels.
func (d *Deck) BackgroundChain(slideID SlideID) (*styles.Chain[Holder], error) {
	d.mu.RLock()
	slide, err := d.slide(slideID)
	var layout *Layout
	var master *Master
	if err == nil {
		layout, err = d.layout(slide.LayoutID)
	}
	if err == nil {
		master, err = d.master(layout.MasterID)
	}
	d.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	background := func(bg *BackgroundProperties) Holder {
		if bg == nil {
			return nil
		}
		return *bg
	}
	return d.chain([]styles.ChainLevel[Holder]{
		{Level: layering.LevelInstance, Name: LevelNameSlide, Source: background(slide.Background)},
		{Level: layering.LevelLayout, Name: LevelNameLayout, Source: background(layout.Background)},
		{Level: layering.LevelMaster, Name: LevelNameMaster, Source: background(master.Background)},
	})
}

// TextChain builds the paragraph chain for one paragraph of a shape:
// [paragraph, shape list style, layout placeholder list style, master
// placeholder list style, master text style]. The paragraph's indent level
// selects the list style level, and the master text style comes from the
// placeholder category.
func (d *Deck) TextChain(slideID SlideID, shapeID, paragraph int) (*styles.Chain[*ParagraphProps], error) {
	line, err := d.lineage(slideID, shapeID)
	if err != nil {
		return nil, err
	}
	body := textOf(line.shape)
	var para *Paragraph
	if body != nil && paragraph >= 0 && paragraph < len(body.Paragraphs) {
		para = &body.Paragraphs[paragraph]
	}
	if para == nil {
		return nil, fmt.Errorf("slideshow: paragraph %d out of range on shape %d", paragraph, shapeID)
	}
	level := para.Level

	levels := []styles.ChainLevel[*ParagraphProps]{
		{Level: layering.LevelInstance, Name: LevelNameParagraph, Source: &para.Props},
		{Level: layering.LevelInstance, Name: LevelNameListStyle, Source: body.listLevel(level)},
	}
	if line.layoutShape != nil {
		levels = append(levels, styles.ChainLevel[*ParagraphProps]{Level: layering.LevelLayout, Name: LevelNameLayout, Source: textOf(line.layoutShape).listLevel(level)})
	}
	if line.masterShape != nil {
		levels = append(levels, styles.ChainLevel[*ParagraphProps]{Level: layering.LevelMaster, Name: LevelNameMaster, Source: textOf(line.masterShape).listLevel(level)})
	}
	levels = append(levels, styles.ChainLevel[*ParagraphProps]{
		Level:  layering.LevelMaster,
		Name:   LevelNameTextStyles + ":" + line.category.String(),
		Source: line.master.TextStyles.ForCategory(line.category).Level(level),
	})

	chain, err := styles.NewChain(levels...)
	if err != nil {
		return nil, err
	}
	if d.logger != nil {
		chain = chain.WithLogger(d.logger)
	}
	return chain, nil
}

// ResolveFill resolves a shape's fill. Without any definition the shape has
// no fill.
func (d *Deck) ResolveFill(slideID SlideID, shapeID int) (styles.ResolvedProperty[Fill], error) {
	chain, err := d.ShapeChain(slideID, shapeID)
	if err != nil {
		return styles.ResolvedProperty[Fill]{}, err
	}
	return styles.ResolveWithDefault[Holder, Fill](chain, FillFetcher, NoFill()), nil
}

// ResolveLine resolves a shape's outline. The default is a zero-width line.
func (d *Deck) ResolveLine(slideID SlideID, shapeID int) (styles.ResolvedProperty[Line], error) {
	chain, err := d.ShapeChain(slideID, shapeID)
	if err != nil {
		return styles.ResolvedProperty[Line]{}, err
	}
	return styles.ResolveWithDefault[Holder, Line](chain, LineFetcher, Line{}), nil
}

// ResolveBackground resolves a slide's background fill.
func (d *Deck) ResolveBackground(slideID SlideID) (styles.ResolvedProperty[Fill], error) {
	chain, err := d.BackgroundChain(slideID)
	if err != nil {
		return styles.ResolvedProperty[Fill]{}, err
	}
	return styles.ResolveWithDefault[Holder, Fill](chain, FillFetcher, NoFill()), nil
}

// ResolveFontSize resolves a paragraph's font size in points, falling back
// to DefaultFontSize.
func (d *Deck) ResolveFontSize(slideID SlideID, shapeID, paragraph int) (styles.ResolvedProperty[float64], error) {
	return ResolveParagraph[float64](d, slideID, shapeID, paragraph, FontSizeFetcher, DefaultFontSize)
}

// ResolveParagraph resolves any paragraph property through the text chain.
func ResolveParagraph[T any](d *Deck, slideID SlideID, shapeID, paragraph int, fetcher styles.PropertyFetcher[*ParagraphProps, T], def T) (styles.ResolvedProperty[T], error) {
	chain, err := d.TextChain(slideID, shapeID, paragraph)
	if err != nil {
		return styles.ResolvedProperty[T]{Value: def, Depth: -1, Defaulted: true}, err
	}
	return styles.ResolveWithDefault(chain, fetcher, def), nil
}

// TraceParagraph resolves like ResolveParagraph and returns the probe trace.
func TraceParagraph[T any](d *Deck, slideID SlideID, shapeID, paragraph int, fetcher styles.PropertyFetcher[*ParagraphProps, T], def T) (styles.ResolvedProperty[T], styles.Trace, error) {
	chain, err := d.TextChain(slideID, shapeID, paragraph)
	if err != nil {
		return styles.ResolvedProperty[T]{Value: def, Depth: -1, Defaulted: true}, styles.Trace{}, err
	}
	resolved, trace := styles.ResolveWithTrace(chain, fetcher, def)
	return resolved, trace, nil
}

// EffectiveParagraph merges every level of the text chain so each field takes
// the value of the nearest level that defines it.
func (d *Deck) EffectiveParagraph(slideID SlideID, shapeID, paragraph int) (ParagraphProps, error) {
	chain, err := d.TextChain(slideID, shapeID, paragraph)
	if err != nil {
		return ParagraphProps{}, err
	}
	var layers []ParagraphProps
	for _, level := range chain.Levels() {
		if level.Source != nil {
			layers = append(layers, *level.Source)
		}
	}
	return layering.MergeLayers(layers...), nil
}
