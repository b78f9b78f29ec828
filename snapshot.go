package styles

import (
	"errors"
	"fmt"
)

// Snapshot is the serialisable content of a stylesheet. Slices are in index
// order, so restoring a snapshot preserves every index.
type Snapshot struct {
	Fonts         []Font               `json:"fonts"`
	Fills         []Fill               `json:"fills"`
	Borders       []Border             `json:"borders"`
	NumberFormats map[int]string       `json:"numFmts,omitempty"`
	CellStyleXfs  []CellFormat         `json:"cellStyleXfs"`
	CellXfs       []CellFormat         `json:"cellXfs"`
	Dxfs          []DifferentialFormat `json:"dxfs,omitempty"`
}

// Snapshot copies the stylesheet tables.
func (s *Stylesheet) Snapshot() Snapshot {
	snap := Snapshot{
		Fonts:        s.fonts.Records(),
		Fills:        s.fills.Records(),
		Borders:      s.borders.Records(),
		CellStyleXfs: s.cellStyleXfs.Records(),
		CellXfs:      s.cellXfs.Records(),
		Dxfs:         s.dxfs.Records(),
	}
	if custom := s.numFmts.Custom(); len(custom) > 0 {
		snap.NumberFormats = custom
	}
	if len(snap.Dxfs) == 0 {
		snap.Dxfs = nil
	}
	return snap
}

// Validate checks that every record has a structural key and every cell
// format reference points inside the snapshot.
func (snap Snapshot) Validate() error {
	var errs []error
	required := []struct {
		table string
		size  int
	}{
		{TableFonts, len(snap.Fonts)},
		{TableFills, len(snap.Fills)},
		{TableBorders, len(snap.Borders)},
		{TableCellStyleXfs, len(snap.CellStyleXfs)},
		{TableCellXfs, len(snap.CellXfs)},
	}
	for _, req := range required {
		if req.size == 0 {
			errs = append(errs, fmt.Errorf("styles: snapshot table %s is empty", req.table))
		}
	}
	errs = append(errs, validateKeys(TableFonts, snap.Fonts)...)
	errs = append(errs, validateKeys(TableFills, snap.Fills)...)
	errs = append(errs, validateKeys(TableBorders, snap.Borders)...)
	errs = append(errs, validateKeys(TableCellStyleXfs, snap.CellStyleXfs)...)
	errs = append(errs, validateKeys(TableCellXfs, snap.CellXfs)...)
	errs = append(errs, validateKeys(TableDxfs, snap.Dxfs)...)

	numFmts, err := NewNumberFormats(snap.NumberFormats, false)
	if err != nil {
		errs = append(errs, err)
	}
	check := func(table string, i int, format CellFormat, parents int) {
		refs := []struct {
			table string
			id    int
			size  int
		}{
			{TableFonts, format.FontID, len(snap.Fonts)},
			{TableFills, format.FillID, len(snap.Fills)},
			{TableBorders, format.BorderID, len(snap.Borders)},
		}
		if parents >= 0 {
			refs = append(refs, struct {
				table string
				id    int
				size  int
			}{TableCellStyleXfs, format.XfID, parents})
		}
		for _, ref := range refs {
			if ref.id < 0 || ref.id >= ref.size {
				errs = append(errs, fmt.Errorf("styles: %s[%d]: %w", table, i, &IndexError{Table: ref.table, Index: ref.id, Size: ref.size}))
			}
		}
		if numFmts != nil && !numFmts.Has(format.NumFmtID) {
			errs = append(errs, fmt.Errorf("styles: %s[%d]: %w: number format %d", table, i, ErrIndexOutOfRange, format.NumFmtID))
		}
	}
	for i, format := range snap.CellStyleXfs {
		check(TableCellStyleXfs, i, format, -1)
	}
	for i, format := range snap.CellXfs {
		check(TableCellXfs, i, format, len(snap.CellStyleXfs))
	}
	return errors.Join(errs...)
}

func validateKeys[R Record](table string, records []R) []error {
	var errs []error
	for i, record := range records {
		if _, err := record.StructuralKey(); err != nil {
			errs = append(errs, fmt.Errorf("styles: %s[%d]: %w", table, i, withTable(err, table)))
		}
	}
	return errs
}

// RestoreStylesheet rebuilds a stylesheet from snap. Records are restored
// verbatim at their original indices.
func RestoreStylesheet(snap Snapshot, opts ...Option) (*Stylesheet, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return newStylesheet(applyOptions(opts), snap)
}
