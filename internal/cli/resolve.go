package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	styles "github.com/goliatone/go-styles"
	"github.com/goliatone/go-styles/xlsx"
)

// ResolvedCell is the resolve-cell report.
type ResolvedCell struct {
	Sheet      string             `json:"sheet"`
	Cell       string             `json:"cell"`
	XfIndex    int                `json:"xf"`
	Properties []ResolvedProperty `json:"properties"`
}

// ResolvedProperty is one resolved cell property and the level that set it.
type ResolvedProperty struct {
	Property string `json:"property"`
	Value    string `json:"value"`
	Source   string `json:"source"`
	Depth    int    `json:"depth"`
}

func newResolveCellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve-cell <file.xlsx> <cell>",
		Short: "Resolve one cell's style properties and show where each came from",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFrom(ctx)

			f, err := excelize.OpenFile(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			sheetName := cfg.Sheet
			if sheetName == "" {
				sheetName = f.GetSheetName(0)
			}
			sheet := styles.NewStylesheet(stylesheetOptions(ctx)...)
			xf, err := xlsx.NewImporter(f, sheet).Cell(sheetName, args[1])
			if err != nil {
				return err
			}
			report, err := ResolveCell(sheet, xf)
			if err != nil {
				return err
			}
			report.Sheet, report.Cell = sheetName, args[1]

			w := cmd.OutOrStdout()
			if cfg.Output == OutputJSON {
				return renderJSON(w, report)
			}
			t := newTable(w, fmt.Sprintf("%s!%s (xf %d)", sheetName, args[1], xf), table.Row{"Property", "Value", "Source", "Depth"})
			for _, p := range report.Properties {
				t.AppendRow(table.Row{p.Property, p.Value, p.Source, p.Depth})
			}
			t.Render()
			return nil
		},
	}
}

// ResolveCell resolves every property of cell format xf through its chain.
func ResolveCell(sheet *styles.Stylesheet, xf int) (*ResolvedCell, error) {
	chain, err := sheet.CellChain(xf, -1)
	if err != nil {
		return nil, err
	}
	report := &ResolvedCell{XfIndex: xf}
	add := func(property, value, source string, depth int) {
		report.Properties = append(report.Properties, ResolvedProperty{Property: property, Value: value, Source: source, Depth: depth})
	}

	fontID, err := styles.ResolveProperty[styles.CellLevel, int](chain, styles.CellFontID)
	if err != nil {
		return nil, err
	}
	font, err := sheet.ResolveCellFont(xf, -1)
	if err != nil {
		return nil, err
	}
	add("font", describeFont(font), fontID.Source(), fontID.Depth)

	fill, err := sheet.ResolveCellFill(xf, -1)
	if err != nil {
		return nil, err
	}
	add("fill", describeFill(fill.Value), fill.Source(), fill.Depth)

	border, err := sheet.ResolveCellBorder(xf, -1)
	if err != nil {
		return nil, err
	}
	add("border", describeBorder(border.Value), border.Source(), border.Depth)

	numFmt, err := sheet.ResolveCellNumberFormat(xf, -1)
	if err != nil {
		return nil, err
	}
	add("numFmt", numFmt.Value, numFmt.Source(), numFmt.Depth)

	alignment, err := sheet.ResolveCellAlignment(xf)
	if err != nil {
		return nil, err
	}
	add("alignment", describeAlignment(alignment.Value), alignment.Source(), alignment.Depth)

	protection, err := sheet.ResolveCellProtection(xf)
	if err != nil {
		return nil, err
	}
	add("protection", describeProtection(protection.Value), protection.Source(), protection.Depth)

	return report, nil
}
