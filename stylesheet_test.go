package styles

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/goliatone/go-styles/layering"
	"github.com/goliatone/go-styles/pkg/activity"
)

func TestNewStylesheetSeedsDefaults(t *testing.T) {
	sheet := NewStylesheet()

	if sheet.Fonts().Size() != 1 || sheet.Fills().Size() != 2 || sheet.Borders().Size() != 1 {
		t.Fatalf("unexpected seeded sizes fonts=%d fills=%d borders=%d",
			sheet.Fonts().Size(), sheet.Fills().Size(), sheet.Borders().Size())
	}
	if sheet.CellXfs().Size() != 1 || sheet.CellStyleXfs().Size() != 1 || sheet.Dxfs().Size() != 0 {
		t.Fatalf("unexpected seeded xf sizes")
	}
	font, err := sheet.FontAt(0)
	if err != nil {
		t.Fatalf("font: %v", err)
	}
	if font != DefaultFont() {
		t.Fatalf("expected default font, got %+v", font)
	}
	gray, err := sheet.FillAt(1)
	if err != nil || gray.Pattern != PatternGray125 {
		t.Fatalf("expected gray125 at 1, got %+v err=%v", gray, err)
	}
}

func TestCellStyleBorderSettersDoNotGrowTables(t *testing.T) {
	sheet := NewStylesheet()
	style := sheet.CreateCellStyle()

	for i := 0; i < 3; i++ {
		if err := style.SetBorderStyle(SideBottom, BorderMedium); err != nil {
			t.Fatalf("set border: %v", err)
		}
		if sheet.Borders().Size() != 2 {
			t.Fatalf("call %d: expected 2 borders, got %d", i, sheet.Borders().Size())
		}
	}
	format, err := style.Format()
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if format.BorderID != 1 || !format.ApplyBorder {
		t.Fatalf("expected border 1 applied, got %+v", format)
	}

	if err := style.SetBorderStyle(SideBottom, BorderNone); err != nil {
		t.Fatalf("clear border: %v", err)
	}
	format, _ = style.Format()
	if format.BorderID != 0 {
		t.Fatalf("expected none border to resolve to 0, got %d", format.BorderID)
	}
	if sheet.Borders().Size() != 2 {
		t.Fatalf("expected border table to stay at 2, got %d", sheet.Borders().Size())
	}
}

func TestCellStyleSettersAreCopyOnWrite(t *testing.T) {
	sheet := NewStylesheet()
	a := sheet.CreateCellStyle()
	b := sheet.CreateCellStyle()

	if err := a.SetFillForeground(RGB("FF0000")); err != nil {
		t.Fatalf("fg: %v", err)
	}
	if err := a.SetFillPattern(PatternSolid); err != nil {
		t.Fatalf("pattern: %v", err)
	}
	if b.Index() != 0 {
		t.Fatalf("other handle must stay on default, got %d", b.Index())
	}
	base, _ := sheet.CellFormatAt(0)
	if base != DefaultCellFormat() {
		t.Fatalf("default format mutated: %+v", base)
	}

	if err := b.SetFillForeground(RGB("#ff0000")); err != nil {
		t.Fatalf("fg: %v", err)
	}
	if err := b.SetFillPattern(PatternSolid); err != nil {
		t.Fatalf("pattern: %v", err)
	}
	if a.Index() != b.Index() {
		t.Fatalf("equal styles must share an index, got %d and %d", a.Index(), b.Index())
	}
	fill, err := b.Fill()
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if fill != SolidFill(RGB("FF0000")) {
		t.Fatalf("unexpected fill %+v", fill)
	}
}

func TestCellStyleFontAndDataFormat(t *testing.T) {
	sheet := NewStylesheet()
	style := sheet.CreateCellStyle()

	bold := DefaultFont()
	bold.Bold = true
	if err := style.SetFont(bold); err != nil {
		t.Fatalf("font: %v", err)
	}
	if err := style.SetDataFormat("0.00%"); err != nil {
		t.Fatalf("builtin numfmt: %v", err)
	}
	format, _ := style.Format()
	if format.NumFmtID != 10 {
		t.Fatalf("expected builtin id 10, got %d", format.NumFmtID)
	}
	if err := style.SetDataFormat("yyyy-mm-dd"); err != nil {
		t.Fatalf("custom numfmt: %v", err)
	}
	format, _ = style.Format()
	if format.NumFmtID != FirstCustomNumberFormat {
		t.Fatalf("expected first custom id, got %d", format.NumFmtID)
	}
	code, err := style.DataFormat()
	if err != nil || code != "yyyy-mm-dd" {
		t.Fatalf("expected custom code, got %q err=%v", code, err)
	}
	font, err := style.Font()
	if err != nil || !font.Bold {
		t.Fatalf("expected bold font, got %+v err=%v", font, err)
	}
	if err := style.SetDataFormatID(999); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected unknown format id rejected, got %v", err)
	}
}

func TestCloneStyleFromAcrossStylesheets(t *testing.T) {
	src := NewStylesheet()
	style := src.CreateCellStyle()
	if err := style.SetBorderStyle(SideLeft, BorderThick); err != nil {
		t.Fatalf("border: %v", err)
	}
	if err := style.SetDataFormat("#,##0.000"); err != nil {
		t.Fatalf("numfmt: %v", err)
	}

	dst := NewStylesheet()
	if _, err := dst.PutNumberFormat("0.0000"); err != nil {
		t.Fatalf("put numfmt: %v", err)
	}
	target := dst.CreateCellStyle()
	if err := target.CloneStyleFrom(style); err != nil {
		t.Fatalf("clone: %v", err)
	}
	border, err := target.Border()
	if err != nil || border.Left.Style != BorderThick {
		t.Fatalf("expected thick left border, got %+v err=%v", border, err)
	}
	code, err := target.DataFormat()
	if err != nil || code != "#,##0.000" {
		t.Fatalf("expected cloned number format, got %q err=%v", code, err)
	}
	format, _ := target.Format()
	if format.NumFmtID != FirstCustomNumberFormat+1 {
		t.Fatalf("expected re-numbered custom id, got %d", format.NumFmtID)
	}

	same := src.CreateCellStyle()
	if err := same.CloneStyleFrom(style); err != nil {
		t.Fatalf("clone same sheet: %v", err)
	}
	if same.Index() != style.Index() {
		t.Fatalf("expected shared index within one stylesheet")
	}
}

func TestPutCellFormatValidatesReferences(t *testing.T) {
	sheet := NewStylesheet()
	_, err := sheet.PutCellFormat(CellFormat{FontID: 5})
	var indexErr *IndexError
	if !errors.As(err, &indexErr) || indexErr.Table != TableFonts {
		t.Fatalf("expected font IndexError, got %v", err)
	}
	_, err = sheet.PutCellFormat(CellFormat{NumFmtID: 170})
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected number format rejected, got %v", err)
	}
	index, err := sheet.PutCellFormat(DefaultCellFormat())
	if err != nil || index != 0 {
		t.Fatalf("expected default format at 0, got %d err=%v", index, err)
	}
}

func TestResolveCellPropertiesThroughChain(t *testing.T) {
	sheet := NewStylesheet()

	redFill, _ := sheet.PutFill(SolidFill(RGB("FF0000")))
	blueFill, _ := sheet.PutFill(SolidFill(RGB("0000FF")))
	named, err := sheet.PutCellStyleFormat(CellFormat{FillID: blueFill, Protection: Protection{Locked: true}})
	if err != nil {
		t.Fatalf("named: %v", err)
	}

	// Without ApplyFill the cell format defers to its named style.
	inherit, err := sheet.PutCellFormat(CellFormat{FillID: redFill, XfID: named})
	if err != nil {
		t.Fatalf("inherit: %v", err)
	}
	resolved, err := sheet.ResolveCellFill(inherit, -1)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Value != SolidFill(RGB("0000FF")) || resolved.Name != LevelNameCellStyleXf {
		t.Fatalf("expected named blue fill, got %+v", resolved)
	}

	override, _ := sheet.PutCellFormat(CellFormat{FillID: redFill, XfID: named, ApplyFill: true})
	resolved, _ = sheet.ResolveCellFill(override, -1)
	if resolved.Value != SolidFill(RGB("FF0000")) || resolved.Level != layering.LevelLayout {
		t.Fatalf("expected cell red fill, got %+v", resolved)
	}

	green := SolidFill(RGB("00FF00"))
	dxf, _ := sheet.PutDxf(DifferentialFormat{Fill: &green})
	resolved, _ = sheet.ResolveCellFill(override, dxf)
	if resolved.Value != green || resolved.Name != LevelNameDxf {
		t.Fatalf("expected conditional green fill, got %+v", resolved)
	}

	border, _ := sheet.ResolveCellBorder(override, dxf)
	if border.Name != LevelNameCellStyleXf || !border.Value.IsZero() {
		t.Fatalf("expected empty border from named style, got %+v", border)
	}
}

func TestResolveCellFontAppliesDifferentialPatch(t *testing.T) {
	sheet := NewStylesheet()
	arial := Font{Name: "Arial", Size: 10, Color: Auto()}
	fontID, _ := sheet.PutFont(arial)
	xf, err := sheet.PutCellFormat(CellFormat{FontID: fontID, ApplyFont: true})
	if err != nil {
		t.Fatalf("xf: %v", err)
	}

	bold := true
	red := RGB("FF0000")
	dxf, _ := sheet.PutDxf(DifferentialFormat{Font: &FontPatch{Bold: &bold, Color: &red}})

	font, err := sheet.ResolveCellFont(xf, dxf)
	if err != nil {
		t.Fatalf("resolve font: %v", err)
	}
	if font.Name != "Arial" || font.Size != 10 || !font.Bold || font.Color != red {
		t.Fatalf("unexpected patched font %+v", font)
	}

	plain, _ := sheet.ResolveCellFont(xf, -1)
	if plain != arial {
		t.Fatalf("expected unpatched font, got %+v", plain)
	}

	if _, err := sheet.ResolveCellFont(99, -1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected out of range xf, got %v", err)
	}
}

func TestResolveCellNumberFormatAndProtection(t *testing.T) {
	sheet := NewStylesheet()
	style := sheet.CreateCellStyle()
	if err := style.SetDataFormat("0.0"); err != nil {
		t.Fatalf("numfmt: %v", err)
	}
	code, err := sheet.ResolveCellNumberFormat(style.Index(), -1)
	if err != nil || code.Value != "0.0" {
		t.Fatalf("expected 0.0, got %+v err=%v", code, err)
	}
	general, _ := sheet.ResolveCellNumberFormat(0, -1)
	if general.Value != "General" {
		t.Fatalf("expected General, got %q", general.Value)
	}
	protection, _ := sheet.ResolveCellProtection(0)
	if !protection.Value.Locked {
		t.Fatalf("expected locked by default")
	}
}

func TestStylesheetEmitsActivityEvents(t *testing.T) {
	capture := &activity.CaptureHook{}
	sheet := NewStylesheet(WithActivityHooks(activity.Hooks{nil, capture}))
	if len(sheet.ActivityHooks()) != 1 {
		t.Fatalf("expected nil hooks dropped")
	}

	style := sheet.CreateCellStyle()
	if err := style.SetBorderStyle(SideTop, BorderThin); err != nil {
		t.Fatalf("border: %v", err)
	}

	var verbs []string
	for _, event := range capture.Events {
		verbs = append(verbs, event.Verb)
		if event.Channel != ActivityChannel {
			t.Fatalf("expected channel %q, got %q", ActivityChannel, event.Channel)
		}
	}
	expected := []string{activity.VerbRecordInterned, activity.VerbRecordInterned, activity.VerbCellStyleUpdated}
	if len(verbs) != len(expected) {
		t.Fatalf("expected verbs %v, got %v", expected, verbs)
	}
	for i := range expected {
		if verbs[i] != expected[i] {
			t.Fatalf("expected verbs %v, got %v", expected, verbs)
		}
	}
	if capture.Events[0].ObjectID != "borders/1" || capture.Events[1].ObjectID != "cellXfs/1" {
		t.Fatalf("unexpected object ids %q %q", capture.Events[0].ObjectID, capture.Events[1].ObjectID)
	}
	if capture.Events[2].Metadata["previous_index"] != 0 {
		t.Fatalf("expected previous index metadata, got %+v", capture.Events[2].Metadata)
	}
}

func TestPutNumberFormatConcurrentEmitsOnce(t *testing.T) {
	capture := &activity.CaptureHook{}
	sheet := NewStylesheet(WithLocking(), WithActivityHooks(activity.Hooks{capture}))

	const workers = 16
	ids := make([]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := sheet.PutNumberFormat("0.000%")
			if err != nil {
				t.Errorf("put %d: %v", i, err)
			}
			ids[i] = id
		}(i)
	}
	wg.Wait()

	for i, id := range ids {
		if id != ids[0] {
			t.Fatalf("worker %d got id %d, want %d", i, id, ids[0])
		}
	}
	verbs := capture.Verbs()
	if len(verbs) != 1 || verbs[0] != activity.VerbRecordInterned {
		t.Fatalf("expected a single record.interned event, got %v", verbs)
	}

	if _, err := sheet.PutNumberFormat("0.000%"); err != nil {
		t.Fatalf("put again: %v", err)
	}
	if _, err := sheet.PutNumberFormat("0.00"); err != nil {
		t.Fatalf("put builtin: %v", err)
	}
	if got := len(capture.Verbs()); got != 1 {
		t.Fatalf("existing and builtin codes must not emit, got %d events", got)
	}
}

func TestActivityHookFailureIsLoggedNotReturned(t *testing.T) {
	var notifyErrs []error
	logger := &recordingLogger{onIntern: func(e InternLogEvent) {
		if e.NotifyErr != nil {
			notifyErrs = append(notifyErrs, e.NotifyErr)
		}
	}}
	failing := activity.HookFunc(func(context.Context, activity.Event) error { return errors.New("sink down") })
	sheet := NewStylesheet(WithActivityHooks(activity.Hooks{failing}), WithLogger(logger))

	if _, err := sheet.PutFont(Font{Name: "Arial", Size: 9}); err != nil {
		t.Fatalf("intern must not fail on hook errors: %v", err)
	}
	if len(notifyErrs) != 1 {
		t.Fatalf("expected hook failure logged once, got %d", len(notifyErrs))
	}
}

func TestSnapshotRestorePreservesIndices(t *testing.T) {
	sheet := NewStylesheet()
	style := sheet.CreateCellStyle()
	_ = style.SetBorderStyle(SideBottom, BorderDouble)
	_ = style.SetDataFormat("[h]:mm:ss.00")
	_ = style.SetFillForeground(Theme(4, -0.25))
	green := SolidFill(RGB("00FF00"))
	_, _ = sheet.PutDxf(DifferentialFormat{Fill: &green})

	payload, err := json.Marshal(sheet.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	restored, err := RestoreStylesheet(snap)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	again, err := restored.CellStyleAt(style.Index())
	if err != nil {
		t.Fatalf("cell style: %v", err)
	}
	border, _ := again.Border()
	if border.Bottom.Style != BorderDouble {
		t.Fatalf("expected double bottom border, got %+v", border)
	}
	code, _ := again.DataFormat()
	if code != "[h]:mm:ss.00" {
		t.Fatalf("expected custom code restored, got %q", code)
	}
	if restored.Dxfs().Size() != 1 || restored.Fills().Size() != sheet.Fills().Size() {
		t.Fatalf("table sizes not restored")
	}

	copyStyle := restored.CreateCellStyle()
	_ = copyStyle.SetBorderStyle(SideBottom, BorderDouble)
	_ = copyStyle.SetDataFormat("[h]:mm:ss.00")
	_ = copyStyle.SetFillForeground(Theme(4, -0.25))
	if copyStyle.Index() != style.Index() {
		t.Fatalf("expected restored tables to dedupe to %d, got %d", style.Index(), copyStyle.Index())
	}
}

func TestSnapshotValidate(t *testing.T) {
	snap := NewStylesheet().Snapshot()
	snap.CellXfs = append(snap.CellXfs, CellFormat{FontID: 3, XfID: 2})
	snap.Borders = append(snap.Borders, Border{Top: BorderEdge{Style: BorderStyle(99)}})

	err := snap.Validate()
	if !errors.Is(err, ErrIndexOutOfRange) || !errors.Is(err, ErrMalformedStyleRecord) {
		t.Fatalf("expected both reference and record errors, got %v", err)
	}
	if _, err := RestoreStylesheet(Snapshot{}); err == nil {
		t.Fatalf("expected empty snapshot rejected")
	}
}
