package styles

import (
	"fmt"

	"github.com/goliatone/go-styles/pkg/activity"
)

// Stylesheet owns the style tables of one workbook. Cell formats refer to
// fonts, fills, borders and number formats by index; every index stays valid
// for the lifetime of the stylesheet.
type Stylesheet struct {
	cfg       config
	logger    StyleLogger
	emitter   *activity.Emitter
	evaluator Evaluator

	fonts        *Table[Font]
	fills        *Table[Fill]
	borders      *Table[Border]
	numFmts      *NumberFormats
	cellStyleXfs *Table[CellFormat]
	cellXfs      *Table[CellFormat]
	dxfs         *Table[DifferentialFormat]
}

// NewStylesheet returns a stylesheet seeded with the workbook defaults: one
// font, the "none" and "gray125" fills, an empty border and one default
// format in each xf table.
func NewStylesheet(opts ...Option) *Stylesheet {
	s, err := newStylesheet(applyOptions(opts), defaultSnapshot())
	if err != nil {
		panic(fmt.Sprintf("styles: default stylesheet: %v", err))
	}
	return s
}

func defaultSnapshot() Snapshot {
	return Snapshot{
		Fonts:        []Font{DefaultFont()},
		Fills:        []Fill{{Pattern: PatternNone}, {Pattern: PatternGray125}},
		Borders:      []Border{{}},
		CellStyleXfs: []CellFormat{DefaultCellFormat()},
		CellXfs:      []CellFormat{DefaultCellFormat()},
	}
}

func newStylesheet(cfg config, snap Snapshot) (*Stylesheet, error) {
	s := &Stylesheet{
		cfg:     cfg,
		logger:  cfg.styleLogger(),
		emitter: newEmitter(cfg.activityHooks),
	}
	tableOpts := []TableOption{TableWithLogger(s.logger), TableWithAppendHook(s.recordAppended)}
	if cfg.locking {
		tableOpts = append(tableOpts, TableWithLocking())
	}

	var err error
	if s.fonts, err = NewTable(TableFonts, snap.Fonts, tableOpts...); err != nil {
		return nil, err
	}
	if s.fills, err = NewTable(TableFills, snap.Fills, tableOpts...); err != nil {
		return nil, err
	}
	if s.borders, err = NewTable(TableBorders, snap.Borders, tableOpts...); err != nil {
		return nil, err
	}
	if s.numFmts, err = NewNumberFormats(snap.NumberFormats, cfg.locking); err != nil {
		return nil, err
	}
	if s.cellStyleXfs, err = NewTable(TableCellStyleXfs, snap.CellStyleXfs, tableOpts...); err != nil {
		return nil, err
	}
	if s.cellXfs, err = NewTable(TableCellXfs, snap.CellXfs, tableOpts...); err != nil {
		return nil, err
	}
	if s.dxfs, err = NewTable(TableDxfs, snap.Dxfs, tableOpts...); err != nil {
		return nil, err
	}
	if s.evaluator, err = cfg.resolveEvaluator(); err != nil {
		return nil, err
	}
	return s, nil
}

// Fonts exposes the font table.
func (s *Stylesheet) Fonts() *Table[Font] { return s.fonts }

// Fills exposes the fill table.
func (s *Stylesheet) Fills() *Table[Fill] { return s.fills }

// Borders exposes the border table.
func (s *Stylesheet) Borders() *Table[Border] { return s.borders }

// NumberFormats exposes the number format registry.
func (s *Stylesheet) NumberFormats() *NumberFormats { return s.numFmts }

// CellStyleXfs exposes the named cell style format table.
func (s *Stylesheet) CellStyleXfs() *Table[CellFormat] { return s.cellStyleXfs }

// CellXfs exposes the cell format table.
func (s *Stylesheet) CellXfs() *Table[CellFormat] { return s.cellXfs }

// Dxfs exposes the differential format table.
func (s *Stylesheet) Dxfs() *Table[DifferentialFormat] { return s.dxfs }

// PutFont interns font.
func (s *Stylesheet) PutFont(font Font) (int, error) { return s.fonts.Intern(font) }

// FontAt returns the font at index.
func (s *Stylesheet) FontAt(index int) (Font, error) { return s.fonts.Get(index) }

// PutFill interns fill.
func (s *Stylesheet) PutFill(fill Fill) (int, error) { return s.fills.Intern(fill) }

// FillAt returns the fill at index.
func (s *Stylesheet) FillAt(index int) (Fill, error) { return s.fills.Get(index) }

// PutBorder interns border.
func (s *Stylesheet) PutBorder(border Border) (int, error) { return s.borders.Intern(border) }

// BorderAt returns the border at index.
func (s *Stylesheet) BorderAt(index int) (Border, error) { return s.borders.Get(index) }

// PutDxf interns a differential format.
func (s *Stylesheet) PutDxf(dxf DifferentialFormat) (int, error) { return s.dxfs.Intern(dxf) }

// DxfAt returns the differential format at index.
func (s *Stylesheet) DxfAt(index int) (DifferentialFormat, error) { return s.dxfs.Get(index) }

// PutNumberFormat interns a number format code and returns its id.
func (s *Stylesheet) PutNumberFormat(code string) (int, error) {
	id, created, err := s.numFmts.Put(code)
	if err != nil {
		return 0, err
	}
	if created {
		s.recordAppended(TableNumberFormats, id, code)
	}
	return id, nil
}

// NumberFormatCode returns the code for a number format id.
func (s *Stylesheet) NumberFormatCode(id int) (string, error) {
	return s.numFmts.Code(id)
}

// PutCellFormat interns a cell format after checking that every id it
// references exists.
func (s *Stylesheet) PutCellFormat(format CellFormat) (int, error) {
	if err := s.checkRefs(format, true); err != nil {
		return -1, err
	}
	return s.cellXfs.Intern(format)
}

// CellFormatAt returns the cell format at index.
func (s *Stylesheet) CellFormatAt(index int) (CellFormat, error) { return s.cellXfs.Get(index) }

// PutCellStyleFormat interns a named cell style format. Its XfID is ignored
// and stored as zero.
func (s *Stylesheet) PutCellStyleFormat(format CellFormat) (int, error) {
	format.XfID = 0
	if err := s.checkRefs(format, false); err != nil {
		return -1, err
	}
	return s.cellStyleXfs.Intern(format)
}

// CellStyleFormatAt returns the named cell style format at index.
func (s *Stylesheet) CellStyleFormatAt(index int) (CellFormat, error) {
	return s.cellStyleXfs.Get(index)
}

func (s *Stylesheet) checkRefs(format CellFormat, withParent bool) error {
	refs := []struct {
		table string
		id    int
		size  int
	}{
		{TableFonts, format.FontID, s.fonts.Size()},
		{TableFills, format.FillID, s.fills.Size()},
		{TableBorders, format.BorderID, s.borders.Size()},
	}
	if withParent {
		refs = append(refs, struct {
			table string
			id    int
			size  int
		}{TableCellStyleXfs, format.XfID, s.cellStyleXfs.Size()})
	}
	for _, ref := range refs {
		if ref.id < 0 || ref.id >= ref.size {
			return &IndexError{Table: ref.table, Index: ref.id, Size: ref.size}
		}
	}
	if !s.numFmts.Has(format.NumFmtID) {
		return fmt.Errorf("%w: number format %d", ErrIndexOutOfRange, format.NumFmtID)
	}
	return nil
}
