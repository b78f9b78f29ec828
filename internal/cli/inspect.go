package cli

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	styles "github.com/goliatone/go-styles"
	"github.com/goliatone/go-styles/xlsx"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.xlsx>",
		Short: "Import a worksheet's cell styles and list the interned tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFrom(ctx)
			sheet, cells, err := xlsx.ImportFile(args[0], cfg.Sheet, stylesheetOptions(ctx)...)
			if err != nil {
				return err
			}
			loggerFrom(ctx).Info("imported styles", "file", args[0], "cells", len(cells), "cellXfs", sheet.CellXfs().Size())

			w := cmd.OutOrStdout()
			if cfg.Output == OutputJSON {
				return renderJSON(w, sheet.Snapshot())
			}

			fonts := newTable(w, "fonts", table.Row{"#", "Font"})
			for i, font := range sheet.Fonts().Records() {
				fonts.AppendRow(table.Row{i, describeFont(font)})
			}
			fonts.Render()

			fills := newTable(w, "fills", table.Row{"#", "Fill"})
			for i, fill := range sheet.Fills().Records() {
				fills.AppendRow(table.Row{i, describeFill(fill)})
			}
			fills.Render()

			borders := newTable(w, "borders", table.Row{"#", "Border"})
			for i, border := range sheet.Borders().Records() {
				borders.AppendRow(table.Row{i, describeBorder(border)})
			}
			borders.Render()

			if custom := sheet.NumberFormats().Custom(); len(custom) > 0 {
				numFmts := newTable(w, "numFmts", table.Row{"ID", "Code"})
				ids := make([]int, 0, len(custom))
				for id := range custom {
					ids = append(ids, id)
				}
				sort.Ints(ids)
				for _, id := range ids {
					numFmts.AppendRow(table.Row{id, custom[id]})
				}
				numFmts.Render()
			}

			xfs := newTable(w, "cellXfs", table.Row{"#", "numFmt", "font", "fill", "border", "xfId", "apply"})
			for i, xf := range sheet.CellXfs().Records() {
				xfs.AppendRow(table.Row{i, xf.NumFmtID, xf.FontID, xf.FillID, xf.BorderID, xf.XfID, applyFlags(xf)})
			}
			xfs.Render()

			_, _ = fmt.Fprintf(w, "(%d cells, %d cell formats)\n", len(cells), sheet.CellXfs().Size())
			return nil
		},
	}
}

func applyFlags(xf styles.CellFormat) string {
	flags := ""
	for _, f := range []struct {
		set  bool
		code string
	}{
		{xf.ApplyNumberFormat, "N"},
		{xf.ApplyFont, "F"},
		{xf.ApplyFill, "P"},
		{xf.ApplyBorder, "B"},
		{xf.ApplyAlignment, "A"},
		{xf.ApplyProtection, "L"},
	} {
		if f.set {
			flags += f.code
		} else {
			flags += "-"
		}
	}
	return flags
}
