package styles

import (
	"fmt"
	"sort"
	"sync"
)

// FirstCustomNumberFormat is the id assigned to the first user-defined format.
const FirstCustomNumberFormat = 164

var builtinNumberFormats = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	5:  `"$"#,##0_);("$"#,##0)`,
	6:  `"$"#,##0_);[Red]("$"#,##0)`,
	7:  `"$"#,##0.00_);("$"#,##0.00)`,
	8:  `"$"#,##0.00_);[Red]("$"#,##0.00)`,
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "m/d/yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "h:mm",
	21: "h:mm:ss",
	22: "m/d/yy h:mm",
	37: "#,##0_);(#,##0)",
	38: "#,##0_);[Red](#,##0)",
	39: "#,##0.00_);(#,##0.00)",
	40: "#,##0.00_);[Red](#,##0.00)",
	41: `_(* #,##0_);_(* (#,##0);_(* "-"_);_(@_)`,
	42: `_("$"* #,##0_);_("$"* (#,##0);_("$"* "-"_);_(@_)`,
	43: `_(* #,##0.00_);_(* (#,##0.00);_(* "-"??_);_(@_)`,
	44: `_("$"* #,##0.00_);_("$"* (#,##0.00);_("$"* "-"??_);_(@_)`,
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mm:ss.0",
	48: "##0.0E+0",
	49: "@",
}

var builtinNumberFormatIDs = func() map[string]int {
	out := make(map[string]int, len(builtinNumberFormats))
	for id, code := range builtinNumberFormats {
		out[code] = id
	}
	return out
}()

// BuiltinNumberFormat returns the code of a built-in format id.
func BuiltinNumberFormat(id int) (string, bool) {
	code, ok := builtinNumberFormats[id]
	return code, ok
}

// NumberFormat is a number format record identified by its format code.
type NumberFormat struct {
	Code string `json:"code"`
}

// StructuralKey implements Record.
func (n NumberFormat) StructuralKey() (string, error) {
	if n.Code == "" {
		return "", malformed("numFmt", "empty format code")
	}
	return newKey("numFmt").str("code", n.Code).String(), nil
}

// NumberFormats interns format codes. Built-in codes resolve to their fixed
// ids; custom codes get ids from FirstCustomNumberFormat upwards. Ids are
// stable for the lifetime of the registry.
type NumberFormats struct {
	mu     *sync.RWMutex
	byCode map[string]int
	byID   map[int]string
	next   int
}

// NewNumberFormats returns a registry seeded with custom formats keyed by id.
func NewNumberFormats(custom map[int]string, locking bool) (*NumberFormats, error) {
	n := &NumberFormats{
		byCode: make(map[string]int, len(custom)),
		byID:   make(map[int]string, len(custom)),
		next:   FirstCustomNumberFormat,
	}
	if locking {
		n.mu = &sync.RWMutex{}
	}
	ids := make([]int, 0, len(custom))
	for id := range custom {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		code := custom[id]
		if _, err := (NumberFormat{Code: code}).StructuralKey(); err != nil {
			return nil, withTable(err, TableNumberFormats)
		}
		if _, builtin := builtinNumberFormats[id]; builtin || id < 0 {
			return nil, withTable(malformed("numFmt", "id %d collides with a built-in format", id), TableNumberFormats)
		}
		n.byID[id] = code
		if _, seen := n.byCode[code]; !seen {
			n.byCode[code] = id
		}
		if id >= n.next {
			n.next = id + 1
		}
	}
	return n, nil
}

// Put interns code and returns its id. created reports whether this call
// registered the code.
func (n *NumberFormats) Put(code string) (id int, created bool, err error) {
	if _, err := (NumberFormat{Code: code}).StructuralKey(); err != nil {
		return 0, false, withTable(err, TableNumberFormats)
	}
	if id, ok := builtinNumberFormatIDs[code]; ok {
		return id, false, nil
	}
	n.lock()
	defer n.unlock()
	if id, ok := n.byCode[code]; ok {
		return id, false, nil
	}
	id = n.next
	n.next++
	n.byCode[code] = id
	n.byID[id] = code
	return id, true, nil
}

// Code returns the format code for id.
func (n *NumberFormats) Code(id int) (string, error) {
	if code, ok := builtinNumberFormats[id]; ok {
		return code, nil
	}
	n.rlock()
	defer n.runlock()
	if code, ok := n.byID[id]; ok {
		return code, nil
	}
	return "", fmt.Errorf("%w: number format %d", ErrIndexOutOfRange, id)
}

// Has reports whether id is built in or registered.
func (n *NumberFormats) Has(id int) bool {
	_, err := n.Code(id)
	return err == nil
}

// Custom returns a copy of the user-defined formats keyed by id.
func (n *NumberFormats) Custom() map[int]string {
	n.rlock()
	defer n.runlock()
	out := make(map[int]string, len(n.byID))
	for id, code := range n.byID {
		out[id] = code
	}
	return out
}

// Len returns the number of custom formats.
func (n *NumberFormats) Len() int {
	n.rlock()
	defer n.runlock()
	return len(n.byID)
}

func (n *NumberFormats) lock() {
	if n.mu != nil {
		n.mu.Lock()
	}
}

func (n *NumberFormats) unlock() {
	if n.mu != nil {
		n.mu.Unlock()
	}
}

func (n *NumberFormats) rlock() {
	if n.mu != nil {
		n.mu.RLock()
	}
}

func (n *NumberFormats) runlock() {
	if n.mu != nil {
		n.mu.RUnlock()
	}
}
