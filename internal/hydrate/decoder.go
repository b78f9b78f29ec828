// Package hydrate decodes loosely typed style record payloads into typed
// records. Payloads usually come from a parsed styles part, so attribute
// names may follow the SpreadsheetML spelling rather than the Go field tags.
package hydrate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Context identifies the record being decoded: its kind (font, fill, ...)
// and the package part it was read from.
type Context struct {
	Kind string
	Part string
}

func (c Context) String() string {
	if c.Part == "" {
		return c.Kind
	}
	return c.Kind + "@" + c.Part
}

// Option configures a Decoder.
type Option[T any] func(*Decoder[T])

// Decoder turns a payload map into T. Unknown fields are rejected unless
// WithLenientFields is set.
type Decoder[T any] struct {
	aliases  map[string]string
	lenient  bool
	validate func(T) error
}

// WithAliases renames top-level payload keys before decoding. A payload that
// sets both an alias and the field it names is rejected.
func WithAliases[T any](aliases map[string]string) Option[T] {
	return func(d *Decoder[T]) {
		if d.aliases == nil {
			d.aliases = make(map[string]string, len(aliases))
		}
		for attr, field := range aliases {
			d.aliases[attr] = field
		}
	}
}

// WithLenientFields ignores payload keys that match no field.
func WithLenientFields[T any]() Option[T] {
	return func(d *Decoder[T]) {
		d.lenient = true
	}
}

// WithValidator runs fn on every decoded record.
func WithValidator[T any](fn func(T) error) Option[T] {
	return func(d *Decoder[T]) {
		d.validate = fn
	}
}

// NewDecoder builds a decoder from opts.
func NewDecoder[T any](opts ...Option[T]) *Decoder[T] {
	d := &Decoder[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode converts payload into T. The caller's map is never modified.
func (d *Decoder[T]) Decode(ctx Context, payload map[string]any) (T, error) {
	var zero T
	if payload == nil {
		return zero, fmt.Errorf("hydrate: %s: payload is nil", ctx)
	}

	renamed, err := d.rename(payload)
	if err != nil {
		return zero, fmt.Errorf("hydrate: %s: %w", ctx, err)
	}
	buffer, err := json.Marshal(renamed)
	if err != nil {
		return zero, fmt.Errorf("hydrate: %s: encode payload: %w", ctx, err)
	}

	dec := json.NewDecoder(bytes.NewReader(buffer))
	if !d.lenient {
		dec.DisallowUnknownFields()
	}
	var record T
	if err := dec.Decode(&record); err != nil {
		return zero, fmt.Errorf("hydrate: %s: %w", ctx, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return zero, fmt.Errorf("hydrate: %s: trailing data after record", ctx)
	}

	if d.validate != nil {
		if err := d.validate(record); err != nil {
			return zero, fmt.Errorf("hydrate: %s: %w", ctx, err)
		}
	}
	return record, nil
}

func (d *Decoder[T]) rename(payload map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(payload))
	for key, value := range payload {
		out[key] = value
	}
	for attr, field := range d.aliases {
		value, ok := out[attr]
		if !ok {
			continue
		}
		if _, clash := out[field]; clash {
			return nil, fmt.Errorf("both %q and %q set", attr, field)
		}
		delete(out, attr)
		out[field] = value
	}
	return out, nil
}
