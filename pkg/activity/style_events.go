package activity

import (
	"fmt"
	"strings"
	"time"
)

// Verbs emitted by stylesheets.
const (
	VerbRecordInterned   = "styles.record.interned"
	VerbCellStyleUpdated = "styles.cell_style.updated"
	VerbSnapshotSaved    = "styles.snapshot.saved"
)

// Object types attached to style events.
const (
	ObjectRecord    = "styles.record"
	ObjectCellStyle = "styles.cell_style"
	ObjectSnapshot  = "styles.snapshot"
)

// StyleEventInput describes the common fields for stylesheet events. Index and
// PreviousIndex use -1 for "not applicable".
type StyleEventInput struct {
	ActorID       string
	UserID        string
	TenantID      string
	ObjectID      string
	Channel       string
	Document      string
	Metadata      map[string]any
	Table         string
	Index         int
	PreviousIndex int
	Key           string
	Property      string
	SnapshotID    string
	OccurredAt    time.Time
}

// BuildRecordInternedEvent describes a record appended to a style table.
func BuildRecordInternedEvent(input StyleEventInput) Event {
	return buildStyleEvent(VerbRecordInterned, ObjectRecord, input)
}

// BuildCellStyleUpdatedEvent describes a cell style handle moving to another
// cell format index after a setter.
func BuildCellStyleUpdatedEvent(input StyleEventInput) Event {
	return buildStyleEvent(VerbCellStyleUpdated, ObjectCellStyle, input)
}

// BuildSnapshotSavedEvent describes a stylesheet snapshot persisted to a store.
func BuildSnapshotSavedEvent(input StyleEventInput) Event {
	return buildStyleEvent(VerbSnapshotSaved, ObjectSnapshot, input)
}

func buildStyleEvent(verb, objectType string, input StyleEventInput) Event {
	metadata := cloneMetadata(input.Metadata)
	if input.Table != "" {
		metadata = ensureMetadata(metadata)
		metadata["table"] = input.Table
		if input.Index >= 0 {
			metadata["index"] = input.Index
		}
	}
	if input.PreviousIndex >= 0 && input.PreviousIndex != input.Index {
		metadata = ensureMetadata(metadata)
		metadata["previous_index"] = input.PreviousIndex
	}
	if input.Key != "" {
		metadata = ensureMetadata(metadata)
		metadata["key"] = input.Key
	}
	if input.Property != "" {
		metadata = ensureMetadata(metadata)
		metadata["property"] = input.Property
	}
	if input.SnapshotID != "" {
		metadata = ensureMetadata(metadata)
		metadata["snapshot_id"] = input.SnapshotID
	}

	objectID := strings.TrimSpace(input.ObjectID)
	if objectID == "" && input.Table != "" && input.Index >= 0 {
		objectID = fmt.Sprintf("%s/%d", input.Table, input.Index)
	}
	if objectID == "" {
		objectID = strings.TrimSpace(input.SnapshotID)
	}
	if objectID == "" {
		objectID = objectType
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: objectType,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Document:   strings.TrimSpace(input.Document),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
