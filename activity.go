package styles

import (
	"context"

	"github.com/goliatone/go-styles/pkg/activity"
)

// ActivityChannel is the default channel stamped on stylesheet events.
const ActivityChannel = activity.DefaultChannel

// WithActivityHooks attaches activity hooks to the stylesheet. Hooks are
// cloned and nil entries dropped.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := cloneActivityHooks(hooks)
	return func(cfg *config) {
		cfg.activityHooks = normalized
	}
}

// ActivityHooks returns a cloned slice of the configured activity hooks. The
// returned slice can be safely mutated by the caller.
func (s *Stylesheet) ActivityHooks() activity.Hooks {
	if s == nil {
		return nil
	}
	return cloneActivityHooks(s.cfg.activityHooks)
}

func cloneActivityHooks(hooks activity.Hooks) activity.Hooks {
	return hooks.Compact()
}

func newEmitter(hooks activity.Hooks) *activity.Emitter {
	return activity.NewEmitter(hooks, activity.Config{Enabled: true, Channel: ActivityChannel})
}

// recordAppended forwards a table append to the activity hooks. Hook failures
// never fail the intern; they are reported through the style logger.
func (s *Stylesheet) recordAppended(table string, index int, key string) {
	if !s.emitter.Enabled() {
		return
	}
	event := activity.BuildRecordInternedEvent(activity.StyleEventInput{
		Table:         table,
		Index:         index,
		PreviousIndex: -1,
		Key:           key,
	})
	if err := s.emitter.Emit(context.Background(), event); err != nil {
		s.logger.LogIntern(InternLogEvent{Table: table, Index: index, Created: true, Key: key, NotifyErr: err})
	}
}

func (s *Stylesheet) cellStyleMoved(previous, index int, property string) {
	if !s.emitter.Enabled() || previous == index {
		return
	}
	event := activity.BuildCellStyleUpdatedEvent(activity.StyleEventInput{
		Table:         TableCellXfs,
		Index:         index,
		PreviousIndex: previous,
		Property:      property,
	})
	if err := s.emitter.Emit(context.Background(), event); err != nil {
		s.logger.LogIntern(InternLogEvent{Table: TableCellXfs, Index: index, NotifyErr: err})
	}
}
