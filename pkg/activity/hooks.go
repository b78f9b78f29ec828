package activity

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"
)

// Event is one stylesheet activity occurrence. Document names the workbook or
// deck whose styles changed; an empty Document means an unattached stylesheet.
type Event struct {
	Verb       string
	ActorID    string
	UserID     string
	TenantID   string
	ObjectType string
	ObjectID   string
	Channel    string
	Document   string
	Metadata   map[string]any
	OccurredAt time.Time
}

// Addressable reports whether the event names a verb and an object. Hooks
// only ever see addressable events.
func (e Event) Addressable() bool {
	return e.Verb != "" && e.ObjectType != "" && e.ObjectID != ""
}

// ActivityHook receives normalized activity events.
type ActivityHook interface {
	Notify(ctx context.Context, event Event) error
}

// HookFunc allows plain functions to satisfy ActivityHook.
type HookFunc func(ctx context.Context, event Event) error

// Notify dispatches to the underlying function.
func (fn HookFunc) Notify(ctx context.Context, event Event) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

// HookError reports the failure of the hook at Position in a Hooks slice.
type HookError struct {
	Position int
	Verb     string
	Err      error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("activity: hook %d failed on %s: %v", e.Position, e.Verb, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }

// Hooks fans events out to zero or more hooks.
type Hooks []ActivityHook

// Enabled reports whether there are any hooks to notify.
func (h Hooks) Enabled() bool {
	return len(h) > 0
}

// Compact returns a copy without nil hooks, or nil when nothing remains.
func (h Hooks) Compact() Hooks {
	var out Hooks
	for _, hook := range h {
		if hook != nil {
			out = append(out, hook)
		}
	}
	return out
}

// Notify normalizes the event and hands it to every hook, even after one
// fails. Each failure is wrapped in a HookError and the results are joined.
// Events that are not addressable are dropped silently.
func (h Hooks) Notify(ctx context.Context, event Event) error {
	if len(h) == 0 {
		return nil
	}
	event = NormalizeEvent(event)
	if !event.Addressable() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var errs []error
	for i, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, event); err != nil {
			errs = append(errs, &HookError{Position: i, Verb: event.Verb, Err: err})
		}
	}
	return errors.Join(errs...)
}

// Only wraps hook so it only receives events whose verb is listed. An empty
// list forwards everything.
func Only(hook ActivityHook, verbs ...string) ActivityHook {
	if len(verbs) == 0 {
		return hook
	}
	return HookFunc(func(ctx context.Context, event Event) error {
		if hook == nil || !MatchVerb(verbs, event.Verb) {
			return nil
		}
		return hook.Notify(ctx, event)
	})
}

// MatchVerb reports whether verb is in verbs, ignoring case and surrounding
// space. An empty list matches every verb.
func MatchVerb(verbs []string, verb string) bool {
	if len(verbs) == 0 {
		return true
	}
	verb = strings.TrimSpace(verb)
	for _, allowed := range verbs {
		if strings.EqualFold(strings.TrimSpace(allowed), verb) {
			return true
		}
	}
	return false
}

// NormalizeEvent trims identifiers, copies metadata, and stamps a UTC time
// when OccurredAt is zero.
func NormalizeEvent(event Event) Event {
	out := Event{
		Verb:       strings.TrimSpace(event.Verb),
		ActorID:    strings.TrimSpace(event.ActorID),
		UserID:     strings.TrimSpace(event.UserID),
		TenantID:   strings.TrimSpace(event.TenantID),
		ObjectType: strings.TrimSpace(event.ObjectType),
		ObjectID:   strings.TrimSpace(event.ObjectID),
		Channel:    strings.TrimSpace(event.Channel),
		Document:   strings.Trim(strings.TrimSpace(event.Document), "/"),
		Metadata:   cloneMetadata(event.Metadata),
		OccurredAt: event.OccurredAt,
	}
	if out.OccurredAt.IsZero() {
		out.OccurredAt = time.Now().UTC()
	}
	return out
}

func cloneMetadata(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	return maps.Clone(src)
}
