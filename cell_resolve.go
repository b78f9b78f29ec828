package styles

import (
	"github.com/goliatone/go-styles/layering"
)

// Chain level names used by cell chains.
const (
	LevelNameDxf         = "dxf"
	LevelNameCellXf      = "cellXf"
	LevelNameCellStyleXf = "cellStyleXf"
)

// CellLevel is one source in a cell's override chain. A conditional format
// match contributes Differential; the cell format and its named style format
// contribute Format.
type CellLevel struct {
	Differential *DifferentialFormat
	Format       *CellFormat
	Named        bool
}

// CellChain builds the chain [dxf, cellXf, cellStyleXf] for a cell using the
// cell format at xfIndex. A negative dxfIndex omits the conditional level.
func (s *Stylesheet) CellChain(xfIndex, dxfIndex int) (*Chain[CellLevel], error) {
	format, err := s.cellXfs.Get(xfIndex)
	if err != nil {
		return nil, err
	}
	named, err := s.cellStyleXfs.Get(format.XfID)
	if err != nil {
		return nil, err
	}
	levels := make([]ChainLevel[CellLevel], 0, 3)
	if dxfIndex >= 0 {
		dxf, err := s.dxfs.Get(dxfIndex)
		if err != nil {
			return nil, err
		}
		levels = append(levels, ChainLevel[CellLevel]{
			Level:  layering.LevelInstance,
			Name:   LevelNameDxf,
			Source: CellLevel{Differential: &dxf},
		})
	}
	levels = append(levels,
		ChainLevel[CellLevel]{Level: layering.LevelLayout, Name: LevelNameCellXf, Source: CellLevel{Format: &format}},
		ChainLevel[CellLevel]{Level: layering.LevelMaster, Name: LevelNameCellStyleXf, Source: CellLevel{Format: &named, Named: true}},
	)
	chain, err := NewChain(levels...)
	if err != nil {
		return nil, err
	}
	return chain.WithLogger(s.logger), nil
}

// A cell format only overrides its named style for the parts whose apply
// flag is set; the named style format always defines every part.
func (l CellLevel) applies(flag func(CellFormat) bool) bool {
	if l.Format == nil {
		return false
	}
	return l.Named || flag(*l.Format)
}

// Cell fetchers over format ids. They never consult the conditional level.
var (
	CellFontID = Named[CellLevel, int]("fontId", FetcherFunc[CellLevel, int](func(l CellLevel) (int, bool) {
		if !l.applies(func(f CellFormat) bool { return f.ApplyFont }) {
			return 0, false
		}
		return l.Format.FontID, true
	}))
	CellFillID = Named[CellLevel, int]("fillId", FetcherFunc[CellLevel, int](func(l CellLevel) (int, bool) {
		if !l.applies(func(f CellFormat) bool { return f.ApplyFill }) {
			return 0, false
		}
		return l.Format.FillID, true
	}))
	CellBorderID = Named[CellLevel, int]("borderId", FetcherFunc[CellLevel, int](func(l CellLevel) (int, bool) {
		if !l.applies(func(f CellFormat) bool { return f.ApplyBorder }) {
			return 0, false
		}
		return l.Format.BorderID, true
	}))
	CellNumFmtID = Named[CellLevel, int]("numFmtId", FetcherFunc[CellLevel, int](func(l CellLevel) (int, bool) {
		if !l.applies(func(f CellFormat) bool { return f.ApplyNumberFormat }) {
			return 0, false
		}
		return l.Format.NumFmtID, true
	}))
	CellAlignment = Named[CellLevel, Alignment]("alignment", FetcherFunc[CellLevel, Alignment](func(l CellLevel) (Alignment, bool) {
		if !l.applies(func(f CellFormat) bool { return f.ApplyAlignment }) {
			return Alignment{}, false
		}
		return l.Format.Alignment, true
	}))
	CellProtection = Named[CellLevel, Protection]("protection", FetcherFunc[CellLevel, Protection](func(l CellLevel) (Protection, bool) {
		if !l.applies(func(f CellFormat) bool { return f.ApplyProtection }) {
			return Protection{}, false
		}
		return l.Format.Protection, true
	}))
)

// CellFillFetcher resolves the fill record, letting a conditional fill
// replace the inherited one.
func (s *Stylesheet) CellFillFetcher() NamedFetcher[CellLevel, Fill] {
	return Named[CellLevel, Fill]("fill", FetcherFunc[CellLevel, Fill](func(l CellLevel) (Fill, bool) {
		if l.Differential != nil {
			if l.Differential.Fill == nil {
				return Fill{}, false
			}
			return l.Differential.Fill.Clone(), true
		}
		id, ok := CellFillID.Probe(l)
		if !ok {
			return Fill{}, false
		}
		fill, err := s.fills.Get(id)
		return fill, err == nil
	}))
}

// CellBorderFetcher resolves the border record, letting a conditional border
// replace the inherited one.
func (s *Stylesheet) CellBorderFetcher() NamedFetcher[CellLevel, Border] {
	return Named[CellLevel, Border]("border", FetcherFunc[CellLevel, Border](func(l CellLevel) (Border, bool) {
		if l.Differential != nil {
			if l.Differential.Border == nil {
				return Border{}, false
			}
			return *l.Differential.Border, true
		}
		id, ok := CellBorderID.Probe(l)
		if !ok {
			return Border{}, false
		}
		border, err := s.borders.Get(id)
		return border, err == nil
	}))
}

// CellNumberFormatFetcher resolves the number format code.
func (s *Stylesheet) CellNumberFormatFetcher() NamedFetcher[CellLevel, string] {
	return Named[CellLevel, string]("numFmt", FetcherFunc[CellLevel, string](func(l CellLevel) (string, bool) {
		if l.Differential != nil {
			if l.Differential.NumberFormat == nil {
				return "", false
			}
			return l.Differential.NumberFormat.Code, true
		}
		id, ok := CellNumFmtID.Probe(l)
		if !ok {
			return "", false
		}
		code, err := s.numFmts.Code(id)
		return code, err == nil
	}))
}

// ResolveCellFont resolves the effective font of a cell. The base font comes
// from the format levels; a conditional font patch is applied on top.
func (s *Stylesheet) ResolveCellFont(xfIndex, dxfIndex int) (Font, error) {
	chain, err := s.CellChain(xfIndex, dxfIndex)
	if err != nil {
		return Font{}, err
	}
	font, err := s.fonts.Get(Resolve[CellLevel, int](chain, CellFontID, 0))
	if err != nil {
		return Font{}, err
	}
	if dxfIndex >= 0 {
		dxf, err := s.dxfs.Get(dxfIndex)
		if err != nil {
			return Font{}, err
		}
		if dxf.Font != nil {
			font = dxf.Font.Apply(font)
		}
	}
	return font, nil
}

// ResolveCellFill resolves the effective fill of a cell.
func (s *Stylesheet) ResolveCellFill(xfIndex, dxfIndex int) (ResolvedProperty[Fill], error) {
	chain, err := s.CellChain(xfIndex, dxfIndex)
	if err != nil {
		return ResolvedProperty[Fill]{}, err
	}
	return ResolveWithDefault[CellLevel, Fill](chain, s.CellFillFetcher(), Fill{}), nil
}

// ResolveCellBorder resolves the effective border of a cell.
func (s *Stylesheet) ResolveCellBorder(xfIndex, dxfIndex int) (ResolvedProperty[Border], error) {
	chain, err := s.CellChain(xfIndex, dxfIndex)
	if err != nil {
		return ResolvedProperty[Border]{}, err
	}
	return ResolveWithDefault[CellLevel, Border](chain, s.CellBorderFetcher(), Border{}), nil
}

// ResolveCellNumberFormat resolves the effective number format code.
func (s *Stylesheet) ResolveCellNumberFormat(xfIndex, dxfIndex int) (ResolvedProperty[string], error) {
	chain, err := s.CellChain(xfIndex, dxfIndex)
	if err != nil {
		return ResolvedProperty[string]{}, err
	}
	general, _ := BuiltinNumberFormat(0)
	return ResolveWithDefault[CellLevel, string](chain, s.CellNumberFormatFetcher(), general), nil
}

// ResolveCellAlignment resolves the effective alignment.
func (s *Stylesheet) ResolveCellAlignment(xfIndex int) (ResolvedProperty[Alignment], error) {
	chain, err := s.CellChain(xfIndex, -1)
	if err != nil {
		return ResolvedProperty[Alignment]{}, err
	}
	return ResolveWithDefault[CellLevel, Alignment](chain, CellAlignment, Alignment{}), nil
}

// ResolveCellProtection resolves the effective protection flags.
func (s *Stylesheet) ResolveCellProtection(xfIndex int) (ResolvedProperty[Protection], error) {
	chain, err := s.CellChain(xfIndex, -1)
	if err != nil {
		return ResolvedProperty[Protection]{}, err
	}
	return ResolveWithDefault[CellLevel, Protection](chain, CellProtection, Protection{Locked: true}), nil
}
