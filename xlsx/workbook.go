package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	styles "github.com/goliatone/go-styles"
)

// Export registers every cell format of sheet with f and returns the excelize
// style id for each cell xf index.
func Export(f *excelize.File, sheet *styles.Stylesheet) ([]int, error) {
	ids := make([]int, sheet.CellXfs().Size())
	for i := range ids {
		style, err := ToStyle(sheet, i)
		if err != nil {
			return nil, fmt.Errorf("xlsx: convert cellXfs/%d: %w", i, err)
		}
		id, err := f.NewStyle(style)
		if err != nil {
			return nil, fmt.Errorf("xlsx: register cellXfs/%d: %w", i, err)
		}
		ids[i] = id
	}
	return ids, nil
}

// ExportDxfs registers every differential format of sheet as a conditional
// style and returns the excelize id for each dxf index.
func ExportDxfs(f *excelize.File, sheet *styles.Stylesheet) ([]int, error) {
	records := sheet.Dxfs().Records()
	ids := make([]int, len(records))
	for i, dxf := range records {
		id, err := f.NewConditionalStyle(DxfToStyle(dxf))
		if err != nil {
			return nil, fmt.Errorf("xlsx: register dxfs/%d: %w", i, err)
		}
		ids[i] = id
	}
	return ids, nil
}

// Importer interns workbook styles into a stylesheet. Each excelize style id
// is converted once.
type Importer struct {
	file  *excelize.File
	sheet *styles.Stylesheet
	byID  map[int]int
}

// NewImporter reads from f into sheet.
func NewImporter(f *excelize.File, sheet *styles.Stylesheet) *Importer {
	return &Importer{file: f, sheet: sheet, byID: map[int]int{}}
}

// Stylesheet returns the target stylesheet.
func (im *Importer) Stylesheet() *styles.Stylesheet { return im.sheet }

// Style interns excelize style styleID and returns its cell xf index.
func (im *Importer) Style(styleID int) (int, error) {
	if xf, ok := im.byID[styleID]; ok {
		return xf, nil
	}
	style, err := im.file.GetStyle(styleID)
	if err != nil {
		return -1, fmt.Errorf("xlsx: read style %d: %w", styleID, err)
	}
	xf, err := FromStyle(im.sheet, style)
	if err != nil {
		return -1, fmt.Errorf("xlsx: import style %d: %w", styleID, err)
	}
	im.byID[styleID] = xf
	return xf, nil
}

// Cell interns the style of one cell, for example ("Sheet1", "B2").
func (im *Importer) Cell(sheetName, cell string) (int, error) {
	styleID, err := im.file.GetCellStyle(sheetName, cell)
	if err != nil {
		return -1, fmt.Errorf("xlsx: style of %s!%s: %w", sheetName, cell, err)
	}
	return im.Style(styleID)
}

// Sheet interns the style of every populated cell of sheetName and returns
// cell reference to xf index. Cells without a value are not visited.
func (im *Importer) Sheet(sheetName string) (map[string]int, error) {
	rows, err := im.file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("xlsx: rows of %s: %w", sheetName, err)
	}
	out := map[string]int{}
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			if value == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			xf, err := im.Cell(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			out[cellName] = xf
		}
	}
	return out, nil
}

// ImportFile opens path and imports the cell styles of sheetName (the first
// sheet when empty) into a new stylesheet built with opts.
func ImportFile(path, sheetName string, opts ...styles.Option) (*styles.Stylesheet, map[string]int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, fmt.Errorf("xlsx: %s has no sheets", path)
		}
		sheetName = sheets[0]
	}
	sheet := styles.NewStylesheet(opts...)
	cells, err := NewImporter(f, sheet).Sheet(sheetName)
	if err != nil {
		return nil, nil, err
	}
	return sheet, cells, nil
}
