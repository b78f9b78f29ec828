package activity

import (
	"context"
	"strings"
)

// DefaultChannel is stamped on events emitted without a channel.
const DefaultChannel = "styles"

// Config controls what an Emitter stamps on outgoing events.
type Config struct {
	Enabled  bool
	Channel  string
	Document string
}

// Emitter sends events to a fixed set of hooks, filling in the channel and
// document when the event leaves them empty.
type Emitter struct {
	hooks    Hooks
	channel  string
	document string
}

// NewEmitter returns an emitter over hooks. A disabled config, or one with
// no non-nil hooks, yields an emitter that drops everything.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	e := &Emitter{
		channel:  strings.TrimSpace(cfg.Channel),
		document: strings.TrimSpace(cfg.Document),
	}
	if e.channel == "" {
		e.channel = DefaultChannel
	}
	if cfg.Enabled {
		e.hooks = hooks.Compact()
	}
	return e
}

// Enabled reports whether Emit would reach at least one hook.
func (e *Emitter) Enabled() bool {
	return e != nil && e.hooks.Enabled()
}

// Emit stamps defaults on event and notifies every hook.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() {
		return nil
	}
	if strings.TrimSpace(event.Channel) == "" {
		event.Channel = e.channel
	}
	if strings.TrimSpace(event.Document) == "" {
		event.Document = e.document
	}
	return e.hooks.Notify(ctx, event)
}
