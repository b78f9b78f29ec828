package styles

import (
	"fmt"

	"github.com/goliatone/go-styles/internal/hydrate"
)

// DecodeRecord converts a loosely typed payload (for example a record parsed
// from a styles part) into R. Top-level SpreadsheetML attribute names such as
// "sz" or "patternType" are accepted in place of the field names. Unknown
// fields are rejected and the decoded record must produce a structural key,
// so a record that decodes can always be interned.
func DecodeRecord[R Record](payload map[string]any) (R, error) {
	return DecodeRecordFrom[R]("", payload)
}

// DecodeRecordFrom is DecodeRecord with the source part recorded in errors.
func DecodeRecordFrom[R Record](part string, payload map[string]any) (R, error) {
	var zero R
	kind := recordKind[R]()
	decoder := hydrate.NewDecoder(
		hydrate.WithAliases[R](recordAttributes[kind]),
		hydrate.WithValidator(func(record R) error {
			_, err := record.StructuralKey()
			return err
		}),
	)
	record, err := decoder.Decode(hydrate.Context{Kind: kind, Part: part}, payload)
	if err != nil {
		return zero, &RecordError{Kind: kind, Err: err}
	}
	return record, nil
}

// recordAttributes maps SpreadsheetML attribute names onto record fields.
var recordAttributes = map[string]map[string]string{
	"font": {"sz": "size", "b": "bold", "i": "italic", "u": "underline", "rFont": "name"},
	"fill": {"patternType": "pattern", "fgColor": "fg", "bgColor": "bg"},
}

func recordKind[R Record]() string {
	var zero R
	switch any(zero).(type) {
	case Font:
		return "font"
	case Fill:
		return "fill"
	case Border:
		return "border"
	case NumberFormat:
		return "numFmt"
	case CellFormat:
		return "xf"
	case DifferentialFormat:
		return "dxf"
	default:
		return fmt.Sprintf("%T", zero)
	}
}
