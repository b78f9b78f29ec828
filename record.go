package styles

import (
	"strconv"
	"strings"
)

// Record is a style definition that can be interned. Two records with equal
// structural keys are interchangeable and share one table index.
type Record interface {
	StructuralKey() (string, error)
}

// Cloner is implemented by records that hold pointers or slices. Tables use it
// so stored records never alias caller memory.
type Cloner[R any] interface {
	Clone() R
}

func cloneRecord[R any](record R) R {
	if c, ok := any(record).(Cloner[R]); ok {
		return c.Clone()
	}
	return record
}

// keyBuilder assembles structural keys as "name=value;" pairs so fields can
// never bleed into each other.
type keyBuilder struct {
	sb strings.Builder
}

func newKey(kind string) *keyBuilder {
	kb := &keyBuilder{}
	kb.sb.WriteString(kind)
	kb.sb.WriteByte('{')
	return kb
}

func (k *keyBuilder) str(name, value string) *keyBuilder {
	k.sb.WriteString(name)
	k.sb.WriteByte('=')
	k.sb.WriteString(strconv.Quote(value))
	k.sb.WriteByte(';')
	return k
}

func (k *keyBuilder) raw(name, value string) *keyBuilder {
	k.sb.WriteString(name)
	k.sb.WriteByte('=')
	k.sb.WriteString(value)
	k.sb.WriteByte(';')
	return k
}

func (k *keyBuilder) int(name string, value int) *keyBuilder {
	return k.raw(name, strconv.Itoa(value))
}

func (k *keyBuilder) float(name string, value float64) *keyBuilder {
	return k.raw(name, strconv.FormatFloat(value, 'g', -1, 64))
}

func (k *keyBuilder) bool(name string, value bool) *keyBuilder {
	if value {
		return k.raw(name, "1")
	}
	return k.raw(name, "0")
}

func (k *keyBuilder) String() string {
	return k.sb.String() + "}"
}
