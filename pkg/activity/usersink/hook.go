package usersink

import (
	"context"
	"maps"
	"strings"
	"time"

	"github.com/goliatone/go-styles/pkg/activity"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Hook adapts stylesheet activity events to a go-users ActivitySink. When
// Verbs is non-empty only the listed verbs are forwarded, which keeps the
// high-volume record interning events out of audit logs.
type Hook struct {
	Sink  usertypes.ActivitySink
	Verbs []string
}

// Notify maps the event into an ActivityRecord and logs it with the sink.
// The owning document and the stylesheet metadata travel in Data.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil {
		return nil
	}
	event = activity.NormalizeEvent(event)
	if !event.Addressable() || !activity.MatchVerb(h.Verbs, event.Verb) {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return h.Sink.Log(ctx, toRecord(event))
}

func toRecord(event activity.Event) usertypes.ActivityRecord {
	record := usertypes.ActivityRecord{
		ActorID:    parseUUID(event.ActorID),
		UserID:     parseUUID(event.UserID),
		TenantID:   parseUUID(event.TenantID),
		Verb:       event.Verb,
		ObjectType: event.ObjectType,
		ObjectID:   event.ObjectID,
		Channel:    event.Channel,
		OccurredAt: event.OccurredAt,
	}
	if record.OccurredAt.IsZero() {
		record.OccurredAt = time.Now().UTC()
	}
	if len(event.Metadata) > 0 || event.Document != "" {
		record.Data = make(map[string]any, len(event.Metadata)+1)
		maps.Copy(record.Data, event.Metadata)
		if event.Document != "" {
			record.Data["document"] = event.Document
		}
	}
	return record
}

// parseUUID maps identifiers that are not UUIDs to uuid.Nil.
func parseUUID(input string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(input))
	if err != nil {
		return uuid.Nil
	}
	return id
}
