package styles

import (
	"sync"
	"time"
)

// Table names used by Stylesheet.
const (
	TableFonts         = "fonts"
	TableFills         = "fills"
	TableBorders       = "borders"
	TableNumberFormats = "numFmts"
	TableCellStyleXfs  = "cellStyleXfs"
	TableCellXfs       = "cellXfs"
	TableDxfs          = "dxfs"
)

// AppendHook observes records appended by Intern. It is not called for
// defaults or for interning that hits an existing record.
type AppendHook func(table string, index int, key string)

// TableOption configures a Table.
type TableOption func(*tableConfig)

type tableConfig struct {
	locking bool
	logger  StyleLogger
	onAdd   AppendHook
}

// TableWithLocking guards the table with a read/write mutex so it can be shared
// between goroutines. Tables are single-owner without it.
func TableWithLocking() TableOption {
	return func(cfg *tableConfig) {
		cfg.locking = true
	}
}

// TableWithLogger records every Intern call.
func TableWithLogger(logger StyleLogger) TableOption {
	return func(cfg *tableConfig) {
		cfg.logger = logger
	}
}

// TableWithAppendHook registers a callback for newly appended records.
func TableWithAppendHook(hook AppendHook) TableOption {
	return func(cfg *tableConfig) {
		cfg.onAdd = hook
	}
}

// Table is a content-addressed, append-only store of style records. Records
// with equal structural keys share one index. Indices are stable for the
// lifetime of the table and Size never decreases.
type Table[R Record] struct {
	name    string
	records []R
	index   map[string]int
	mu      *sync.RWMutex
	logger  StyleLogger
	onAdd   AppendHook
}

// NewTable builds a table pre-seeded with defaults; defaults[0] becomes index
// 0. Defaults are stored verbatim, so a restored table may contain duplicates;
// lookups then resolve to the first occurrence.
func NewTable[R Record](name string, defaults []R, opts ...TableOption) (*Table[R], error) {
	cfg := tableConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	t := &Table[R]{
		name:    name,
		records: make([]R, 0, len(defaults)),
		index:   make(map[string]int, len(defaults)),
		logger:  cfg.logger,
		onAdd:   cfg.onAdd,
	}
	if t.logger == nil {
		t.logger = noopStyleLogger{}
	}
	if cfg.locking {
		t.mu = &sync.RWMutex{}
	}
	for _, record := range defaults {
		key, err := record.StructuralKey()
		if err != nil {
			return nil, withTable(err, name)
		}
		if _, exists := t.index[key]; !exists {
			t.index[key] = len(t.records)
		}
		t.records = append(t.records, cloneRecord(record))
	}
	return t, nil
}

// Name returns the table name.
func (t *Table[R]) Name() string {
	return t.name
}

// Intern returns the index of the record structurally equal to candidate,
// appending candidate when no such record exists.
func (t *Table[R]) Intern(candidate R) (int, error) {
	start := time.Now()
	key, err := candidate.StructuralKey()
	if err != nil {
		err = withTable(err, t.name)
		t.logger.LogIntern(InternLogEvent{Table: t.name, Index: -1, Duration: time.Since(start), Err: err})
		return -1, err
	}

	t.lock()
	index, exists := t.index[key]
	if !exists {
		index = len(t.records)
		t.records = append(t.records, cloneRecord(candidate))
		t.index[key] = index
	}
	t.unlock()

	t.logger.LogIntern(InternLogEvent{
		Table:    t.name,
		Index:    index,
		Created:  !exists,
		Key:      key,
		Duration: time.Since(start),
	})
	if !exists && t.onAdd != nil {
		t.onAdd(t.name, index, key)
	}
	return index, nil
}

// IndexOf looks candidate up without appending it.
func (t *Table[R]) IndexOf(candidate R) (int, bool, error) {
	key, err := candidate.StructuralKey()
	if err != nil {
		return -1, false, withTable(err, t.name)
	}
	t.rlock()
	defer t.runlock()
	index, ok := t.index[key]
	if !ok {
		return -1, false, nil
	}
	return index, true, nil
}

// Get returns a copy of the record at index.
func (t *Table[R]) Get(index int) (R, error) {
	t.rlock()
	defer t.runlock()
	if index < 0 || index >= len(t.records) {
		var zero R
		return zero, &IndexError{Table: t.name, Index: index, Size: len(t.records)}
	}
	return cloneRecord(t.records[index]), nil
}

// Has reports whether index addresses a record.
func (t *Table[R]) Has(index int) bool {
	return index >= 0 && index < t.Size()
}

// Size returns the number of records.
func (t *Table[R]) Size() int {
	t.rlock()
	defer t.runlock()
	return len(t.records)
}

// Records returns copies of all records in index order.
func (t *Table[R]) Records() []R {
	t.rlock()
	defer t.runlock()
	out := make([]R, len(t.records))
	for i, record := range t.records {
		out[i] = cloneRecord(record)
	}
	return out
}

func (t *Table[R]) lock() {
	if t.mu != nil {
		t.mu.Lock()
	}
}

func (t *Table[R]) unlock() {
	if t.mu != nil {
		t.mu.Unlock()
	}
}

func (t *Table[R]) rlock() {
	if t.mu != nil {
		t.mu.RLock()
	}
}

func (t *Table[R]) runlock() {
	if t.mu != nil {
		t.mu.RUnlock()
	}
}
