package usersink_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-styles/pkg/activity"
	"github.com/goliatone/go-styles/pkg/activity/usersink"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

type recordingSink struct {
	records []usertypes.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record usertypes.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestHookNotifyMapsEvent(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	actorID := uuid.New()
	userID := uuid.New()
	tenantID := uuid.New()
	objectID := uuid.New().String()

	event := activity.Event{
		Verb:       activity.VerbCellStyleUpdated,
		ActorID:    actorID.String(),
		UserID:     userID.String(),
		TenantID:   tenantID.String(),
		ObjectType: activity.ObjectCellStyle,
		ObjectID:   objectID,
		Channel:    "styles",
		Document:   "book.xlsx",
		Metadata: map[string]any{
			"property": "border.bottom",
		},
		OccurredAt: now,
	}

	if err := hook.Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}

	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.ActorID != actorID {
		t.Fatalf("expected actor %s got %s", actorID, record.ActorID)
	}
	if record.UserID != userID {
		t.Fatalf("expected user %s got %s", userID, record.UserID)
	}
	if record.TenantID != tenantID {
		t.Fatalf("expected tenant %s got %s", tenantID, record.TenantID)
	}
	if record.Verb != activity.VerbCellStyleUpdated || record.ObjectType != activity.ObjectCellStyle || record.ObjectID != objectID {
		t.Fatalf("unexpected record payload: %+v", record)
	}
	if record.Channel != "styles" {
		t.Fatalf("expected channel styles got %q", record.Channel)
	}
	if record.OccurredAt != now {
		t.Fatalf("expected occurred_at %v got %v", now, record.OccurredAt)
	}
	if record.Data["document"] != "book.xlsx" {
		t.Fatalf("expected document in data got %v", record.Data["document"])
	}
	if record.Data["property"] != "border.bottom" {
		t.Fatalf("expected metadata passthrough got %v", record.Data["property"])
	}
	event.Metadata["property"] = "fill.pattern"
	if record.Data["property"] != "border.bottom" {
		t.Fatalf("record data must not alias event metadata")
	}
}

func TestHookNotifySkipsMissingVerb(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	_ = hook.Notify(context.Background(), activity.Event{})

	if len(sink.records) != 0 {
		t.Fatalf("expected no records for empty event, got %d", len(sink.records))
	}
}

func TestHookNotifyDefaultsTimestamp(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	err := hook.Notify(context.Background(), activity.Event{
		Verb:       activity.VerbRecordInterned,
		ObjectType: activity.ObjectRecord,
		ObjectID:   "fonts/1",
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	if sink.records[0].OccurredAt.IsZero() {
		t.Fatalf("expected occurred_at to be defaulted")
	}
	if sink.records[0].Data != nil || sink.records[0].ActorID != uuid.Nil {
		t.Fatalf("expected empty data and nil actor, got %+v", sink.records[0])
	}
}

func TestHookNotifyFiltersVerbs(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink, Verbs: []string{activity.VerbCellStyleUpdated}}

	interned := activity.BuildRecordInternedEvent(activity.StyleEventInput{Table: "fonts", Index: 1, PreviousIndex: -1})
	if err := hook.Notify(context.Background(), interned); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sink.records) != 0 {
		t.Fatalf("expected interned event filtered, got %d records", len(sink.records))
	}

	updated := activity.BuildCellStyleUpdatedEvent(activity.StyleEventInput{Table: "cellXfs", Index: 2, PreviousIndex: 0})
	if err := hook.Notify(context.Background(), updated); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sink.records) != 1 || sink.records[0].ObjectID != "cellXfs/2" {
		t.Fatalf("expected cell style event forwarded, got %+v", sink.records)
	}
}
